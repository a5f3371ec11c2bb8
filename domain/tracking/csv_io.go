package tracking

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/soocke/frame-tracker-go/domain/points"
)

// DefaultExportName is used when no export path was chosen.
const DefaultExportName = "tracking.csv"

// ImportCSV replaces all points with the contents of path and returns the
// number of points loaded.
func (s *Session) ImportCSV(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()
	pts, err := points.ParseCSV(f)
	if err != nil {
		return 0, fmt.Errorf("import %s: %w", filepath.Base(path), err)
	}
	s.dragged = nil
	s.store.BulkReplace(pts)
	if s.logger != nil {
		s.logger.Info("csv imported", "path", path, "points", s.store.Len())
	}
	return s.store.Len(), nil
}

// ExportCSV writes all points to path. When path cannot be written the
// export falls back to the temp directory; the returned path is the one
// actually written.
func (s *Session) ExportCSV(path string) (string, error) {
	pts := s.store.Sorted()
	if path == "" {
		path = DefaultExportName
	}
	err := writeCSVFile(path, pts)
	if err == nil {
		s.store.MarkSaved()
		return path, nil
	}
	if s.logger != nil {
		s.logger.Warn("csv export failed, using fallback", "path", path, "error", err)
	}
	fallback := filepath.Join(os.TempDir(), "frame-tracker-"+filepath.Base(path))
	if ferr := writeCSVFile(fallback, pts); ferr != nil {
		return "", errors.Join(err, ferr)
	}
	s.store.MarkSaved()
	return fallback, nil
}

func writeCSVFile(path string, pts []points.TrackPoint) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".export-*.csv")
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	name := tmp.Name()
	if err := points.WriteCSV(tmp, pts); err != nil {
		tmp.Close()
		os.Remove(name)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(name)
		return fmt.Errorf("close temp: %w", err)
	}
	if err := os.Rename(name, path); err != nil {
		os.Remove(name)
		return fmt.Errorf("rename export: %w", err)
	}
	return nil
}
