package view

import (
	"path/filepath"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

var (
	videoTypes = []FileType{
		{TypeName: "Video", Extensions: []string{".mp4", ".mov", ".mkv", ".avi", ".webm", ".m4v"}},
		{TypeName: "All files", Extensions: []string{"*"}},
	}
	csvTypes = []FileType{
		{TypeName: "CSV", Extensions: []string{".csv"}},
		{TypeName: "All files", Extensions: []string{"*"}},
	}
)

// AskVideo asks for a video file. It returns "" when cancelled.
func AskVideo(last string) string {
	return firstOf(GetOpenFile(Title("Open video"), Filetypes(videoTypes), Initialdir(dirOf(last))))
}

// AskImportCSV asks for a CSV file to import.
func AskImportCSV(last string) string {
	return firstOf(GetOpenFile(Title("Import points"), Filetypes(csvTypes), Initialdir(dirOf(last))))
}

// AskExportCSV asks for the export destination.
func AskExportCSV(last, defaultName string) string {
	name := defaultName
	if last != "" {
		name = filepath.Base(last)
	}
	return GetSaveFile(Title("Export points"), Filetypes(csvTypes), Defaultextension(".csv"),
		Initialdir(dirOf(last)), Initialfile(name))
}

// ConfirmDiscard asks whether unsaved points may be thrown away.
func ConfirmDiscard(action string) bool {
	answer := MessageBox(
		Title("Unsaved points"),
		Msg("There are points that were not exported."),
		Detail("Discard them and "+action+"?"),
		Icon("warning"),
		Type("yesno"),
		Default("no"),
	)
	return answer == "yes"
}

// ShowError reports a failed operation.
func ShowError(title, detail string) {
	MessageBox(Title(title), Msg(title), Detail(detail), Icon("error"), Type("ok"))
}

// ShowInfo reports a finished operation.
func ShowInfo(title, detail string) {
	MessageBox(Title(title), Msg(title), Detail(detail), Icon("info"), Type("ok"))
}

func firstOf(paths []string) string {
	if len(paths) == 0 {
		return ""
	}
	return paths[0]
}

func dirOf(path string) string {
	if path == "" {
		return "."
	}
	return filepath.Dir(path)
}
