// Package cli wires the conversion pipeline behind a single cobra
// command.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/park285/pgn2gif/internal/config"
)

var (
	version string
	commit  string
)

// SetVersion sets the version information shown by --version, typically
// injected via ldflags.
func SetVersion(v, c string) {
	version = v
	commit = c
}

// Execute runs the pgn2gif CLI and returns an error if the conversion
// fails. Cobra prints the diagnostic; the caller decides the exit code.
func Execute() error {
	return newRootCmd().ExecuteContext(context.Background())
}

func newRootCmd() *cobra.Command {
	opts := config.Default()

	cmd := &cobra.Command{
		Use:   "pgn2gif",
		Short: "Convert a chess game record (PGN) into an animated GIF",
		Long: `pgn2gif replays a PGN game record and renders every position into a
frame of a looping animated GIF: move highlighting, board orientation,
coordinates, timing and palette size are all configurable.`,
		Version:      version,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.FrameRateExplicit = cmd.Flags().Changed("fps")
			if err := opts.Validate(); err != nil {
				return err
			}
			return run(cmd.Context(), opts)
		},
	}
	cmd.SetVersionTemplate("pgn2gif " + version + " (" + commit + ")\n")

	f := cmd.Flags()
	f.StringVar(&opts.RecordPath, "pgn-path", "", "path to the PGN file to read")
	f.StringVar(&opts.OutputPath, "gif-path", "", "path to the GIF file to write")
	f.BoolVar(&opts.IncludeInitialPosition, "add-initial-position", opts.IncludeInitialPosition, "include the starting position as the first frame")
	f.BoolVar(&opts.HighlightLastMove, "highlight-last-move", opts.HighlightLastMove, "highlight the origin and destination of the last move")
	f.StringVar(&opts.Orientation, "orientation", opts.Orientation, "side at the bottom of the board: white or black")
	f.IntVar(&opts.BoardSize, "size", opts.BoardSize, "board size in pixels")
	f.BoolVar(&opts.ShowCoordinates, "coordinates", opts.ShowCoordinates, "draw file and rank labels")
	f.StringVar(&opts.StylePath, "style-path", "", "path to a YAML theme override for board colors")
	f.IntVar(&opts.LoopCount, "loop", opts.LoopCount, "number of animation loops, 0 means infinite")
	f.Float64Var(&opts.FrameDuration, "duration", opts.FrameDuration, "duration of each frame in seconds")
	f.Float64Var(&opts.FrameRate, "fps", opts.FrameRate, "frames per second; overrides --duration when set to a non-default value")
	f.IntVar(&opts.PaletteSize, "palette-size", opts.PaletteSize, "number of colors each frame is quantized to")
	f.BoolVar(&opts.DeltaFrames, "delta-frames", opts.DeltaFrames, "store only the changed region of each frame")
	f.IntVar(&opts.Workers, "workers", opts.Workers, "number of parallel rasterization workers")

	cobra.CheckErr(cmd.MarkFlagRequired("pgn-path"))
	cobra.CheckErr(cmd.MarkFlagRequired("gif-path"))

	return cmd
}
