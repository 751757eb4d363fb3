package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/philipparndt/artoolbox/internal/config"
	"github.com/philipparndt/artoolbox/internal/points"
	"github.com/philipparndt/artoolbox/pkg/mesh"
	"github.com/philipparndt/artoolbox/pkg/stl"
	"github.com/philipparndt/artoolbox/pkg/tube"
	"github.com/philipparndt/artoolbox/pkg/viewer"
	"github.com/philipparndt/artoolbox/pkg/watcher"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	tubeOutput   string
	tubeBinary   bool
	tubeRadius   float64
	tubeSegments int
	tubePreview  string
	tubeWatch    bool
)

var tubeColor = mesh.Color{R: 0.95, G: 0.55, B: 0.15, A: 1}

var tubeCmd = &cobra.Command{
	Use:   "tube [file...]",
	Short: "Build tube meshes from point files",
	Long: `Simplify each point file as a stroke, extrude it into a capped tube and write
all tubes into one STL file. Several inputs are built concurrently. With --watch
the output is rebuilt whenever an input changes.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runTube,
}

func init() {
	rootCmd.AddCommand(tubeCmd)

	tubeCmd.Flags().StringVarP(&tubeOutput, "output", "o", "", "Output STL file")
	tubeCmd.Flags().BoolVar(&tubeBinary, "binary", false, "Write binary STL instead of ASCII")
	tubeCmd.Flags().Float64Var(&tubeRadius, "radius", 0, "Tube radius (overrides config)")
	tubeCmd.Flags().IntVar(&tubeSegments, "segments", 0, "Vertices per ring (overrides config)")
	tubeCmd.Flags().StringVar(&tubePreview, "preview", "", "Also render a PNG preview")
	tubeCmd.Flags().BoolVar(&tubeWatch, "watch", false, "Rebuild when an input file changes")

	_ = tubeCmd.MarkFlagRequired("output")
}

func runTube(cmd *cobra.Command, args []string) error {
	cfg := settings
	if cmd.Flags().Changed("radius") {
		cfg.Tube.Radius = tubeRadius
	}
	if cmd.Flags().Changed("segments") {
		cfg.Tube.Segments = tubeSegments
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if err := buildTubes(cmd.Context(), out, cfg, args); err != nil {
		return err
	}
	if !tubeWatch {
		return nil
	}
	return watchTubes(cmd.Context(), out, cfg, args)
}

// buildTubes builds one tube per input file and writes them together
func buildTubes(ctx context.Context, out io.Writer, cfg config.Config, files []string) error {
	builder := cfg.Builder(tube.WithLogger(logger))
	mat := mesh.NewOpaque("tube", tubeColor)
	meshes := make([]*mesh.Mesh, len(files))

	g, ctx := errgroup.WithContext(ctx)
	for i, file := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			raw, err := points.Load(file)
			if err != nil {
				return err
			}
			log := logger.With(zap.String("file", file))
			s, stats := simplifyPoints(raw, cfg.SimplifierConfig(), log)
			m := builder.Build(s.Points(), cfg.Tube.Radius, mat)
			if m == nil {
				return errors.Errorf("%s: stroke too short for a tube (%d of %d points kept)", file, s.Len(), stats.Raw)
			}
			meshes[i] = m
			log.Debug("tube built",
				zap.Int("points", s.Len()),
				zap.Int("triangles", m.TriangleCount()))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	model := stl.FromMesh("artoolbox", meshes...)
	if err := stl.Save(tubeOutput, model, tubeBinary); err != nil {
		return err
	}
	logger.Info("tubes written",
		zap.String("path", tubeOutput),
		zap.Int("tubes", len(meshes)),
		zap.Int("triangles", model.TriangleCount()))
	fmt.Fprintf(out, "Wrote %d tube(s), %d triangles to %s\n", len(meshes), model.TriangleCount(), tubeOutput)

	if tubePreview != "" {
		img := viewer.Render(viewer.DefaultOptions(), meshes...)
		if err := viewer.SavePNG(tubePreview, img); err != nil {
			return err
		}
		fmt.Fprintf(out, "Preview saved to %s\n", tubePreview)
	}
	return nil
}

// watchTubes rebuilds the output on every input change until interrupted
func watchTubes(ctx context.Context, out io.Writer, cfg config.Config, files []string) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	changed := make(chan string, 1)
	w, err := watcher.New(func(path string) {
		select {
		case changed <- path:
		default:
		}
	}, watcher.WithLogger(logger))
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.Add(files...); err != nil {
		return err
	}
	fmt.Fprintf(out, "Watching %d file(s) for changes, press Ctrl+C to stop\n", w.Files())

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return w.Run(ctx)
	})
	g.Go(func() error {
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case path := <-changed:
				logger.Info("input changed, rebuilding", zap.String("path", path))
				if err := buildTubes(ctx, out, cfg, files); err != nil {
					logger.Error("rebuild failed", zap.Error(err))
				}
			}
		}
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
