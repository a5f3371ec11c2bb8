package media

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/soocke/frame-tracker-go/domain/frames"
)

// Info is the probed description of a video stream.
type Info struct {
	Path       string
	Width      int
	Height     int
	FPS        float64
	DurationMs float64
}

// FPSOrDefault returns the probed frame rate, or def when it is unknown.
func (i Info) FPSOrDefault(def float64) float64 {
	if i.FPS > 0 {
		return i.FPS
	}
	if def > 0 {
		return def
	}
	return frames.DefaultFPS
}

// ErrNoVideoStream is returned when the file has no decodable video stream.
var ErrNoVideoStream = errors.New("media: no video stream")

// ProbeBinary is the ffprobe executable used by Probe.
var ProbeBinary = "ffprobe"

type probeOutput struct {
	Streams []struct {
		Width        int    `json:"width"`
		Height       int    `json:"height"`
		AvgFrameRate string `json:"avg_frame_rate"`
		RFrameRate   string `json:"r_frame_rate"`
		Duration     string `json:"duration"`
	} `json:"streams"`
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

// Probe reads the dimensions, frame rate and duration of the first video
// stream in path. A zero FPS in the result means the rate could not be
// determined; callers fall back through FPSOrDefault.
func Probe(ctx context.Context, path string) (Info, error) {
	cmd := exec.CommandContext(ctx, ProbeBinary,
		"-v", "error",
		"-select_streams", "v:0",
		"-show_entries", "stream=width,height,avg_frame_rate,r_frame_rate,duration:format=duration",
		"-of", "json",
		path,
	)
	out, err := cmd.Output()
	if err != nil {
		return Info{Path: path}, fmt.Errorf("ffprobe: %w", err)
	}
	info, err := parseProbe(out)
	info.Path = path
	return info, err
}

func parseProbe(data []byte) (Info, error) {
	var po probeOutput
	if err := json.Unmarshal(data, &po); err != nil {
		return Info{}, fmt.Errorf("parse ffprobe output: %w", err)
	}
	if len(po.Streams) == 0 {
		return Info{}, ErrNoVideoStream
	}
	s := po.Streams[0]
	info := Info{Width: s.Width, Height: s.Height}
	info.FPS = parseRate(s.AvgFrameRate)
	if info.FPS <= 0 {
		info.FPS = parseRate(s.RFrameRate)
	}
	dur := po.Format.Duration
	if dur == "" || dur == "N/A" {
		dur = s.Duration
	}
	if secs, err := strconv.ParseFloat(strings.TrimSpace(dur), 64); err == nil && secs > 0 {
		info.DurationMs = secs * 1000
	}
	if info.Width <= 0 || info.Height <= 0 {
		return info, ErrNoVideoStream
	}
	return info, nil
}

// parseRate parses an ffprobe rational such as "30000/1001". Unknown or
// non-positive rates yield 0.
func parseRate(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	num, den, found := strings.Cut(s, "/")
	n, err := strconv.ParseFloat(num, 64)
	if err != nil || n <= 0 {
		return 0
	}
	if !found {
		return n
	}
	d, err := strconv.ParseFloat(den, 64)
	if err != nil || d <= 0 {
		return 0
	}
	return n / d
}
