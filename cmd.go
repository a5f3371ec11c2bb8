package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/soocke/frame-tracker-go/app"
	"github.com/soocke/frame-tracker-go/config"
	"github.com/soocke/frame-tracker-go/domain/points"
	"github.com/soocke/frame-tracker-go/media"
)

type rootFlags struct {
	configPath string
	video      string
	csv        string
	debug      bool
}

func newRootCmd() *cobra.Command {
	var f rootFlags
	cmd := &cobra.Command{
		Use:          "frame-tracker",
		Short:        "Manually track object positions in a video",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGUI(cmd, f)
		},
	}
	cmd.Flags().StringVar(&f.configPath, "config", config.DefaultPath(), "path of the JSON config file")
	cmd.Flags().StringVar(&f.video, "video", "", "video to open on start")
	cmd.Flags().StringVar(&f.csv, "csv", "", "CSV of points to import after the video is opened")
	cmd.Flags().BoolVar(&f.debug, "debug", false, "enable debug logging and runtime stats")

	cmd.AddCommand(newProbeCmd(), newCSVCmd())
	return cmd
}

func runGUI(cmd *cobra.Command, f rootFlags) error {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "config: %v (using defaults)\n", err)
	}
	if err := cfg.ApplyEnv(); err != nil {
		return err
	}
	if cmd.Flags().Changed("debug") {
		cfg.Debug = f.debug
	}
	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	logger := NewLogger(level)
	logger.Info("starting", "config", f.configPath, "video", f.video, "debug", cfg.Debug)

	c := app.BuildContainer(cfg, f.configPath, logger)
	app.New(c).Run(f.video, f.csv)
	return nil
}

func newProbeCmd() *cobra.Command {
	var defaultFPS float64
	cmd := &cobra.Command{
		Use:   "probe <video>",
		Short: "Print the frame rate, size and duration of a video",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
			defer cancel()
			info, err := media.Probe(ctx, args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "size:     %dx%d\n", info.Width, info.Height)
			if info.FPS > 0 {
				fmt.Fprintf(out, "fps:      %.3f\n", info.FPS)
			} else {
				fmt.Fprintf(out, "fps:      unknown (using %.3f)\n", info.FPSOrDefault(defaultFPS))
			}
			fmt.Fprintf(out, "duration: %.0f ms\n", info.DurationMs)
			return nil
		},
	}
	cmd.Flags().Float64Var(&defaultFPS, "default-fps", 30, "frame rate assumed when the video does not report one")
	return cmd
}

func newCSVCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "csv",
		Short: "Point CSV utilities",
	}
	var fps float64
	normalize := &cobra.Command{
		Use:   "normalize <in> [out]",
		Short: "Re-emit a point CSV sorted, deduplicated per frame and object, with header",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer in.Close()
			var out io.Writer = cmd.OutOrStdout()
			if len(args) == 2 {
				f, err := os.Create(args[1])
				if err != nil {
					return err
				}
				defer f.Close()
				out = f
			}
			n, err := normalizeCSV(in, out, fps)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "%d points\n", n)
			return nil
		},
	}
	normalize.Flags().Float64Var(&fps, "fps", 30, "frame rate used to detect duplicate frames")
	cmd.AddCommand(normalize)
	return cmd
}

// normalizeCSV parses r leniently and writes the deduplicated, sorted set to w.
func normalizeCSV(r io.Reader, w io.Writer, fps float64) (int, error) {
	pts, err := points.ParseCSV(r)
	if err != nil {
		return 0, fmt.Errorf("parse: %w", err)
	}
	store := points.NewStore(fps, nil)
	store.BulkReplace(pts)
	sorted := store.Sorted()
	if err := points.WriteCSV(w, sorted); err != nil {
		return 0, fmt.Errorf("write: %w", err)
	}
	return len(sorted), nil
}
