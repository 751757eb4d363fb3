package main

import (
	"fmt"
	"os"

	"github.com/philipparndt/artoolbox/internal/points"
	"github.com/philipparndt/artoolbox/pkg/analysis"
	"github.com/philipparndt/artoolbox/pkg/geometry"
	"github.com/philipparndt/artoolbox/pkg/simplify"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var simplifyOutput string

var simplifyCmd = &cobra.Command{
	Use:   "simplify [file]",
	Short: "Reduce a sampled stroke the way live drawing does",
	Long: `Feed every point of a point file through the online simplifier and print the
kept vertices together with how many samples were discarded, accepted or
merged into the previous vertex.`,
	Args: cobra.ExactArgs(1),
	RunE: runSimplify,
}

func init() {
	rootCmd.AddCommand(simplifyCmd)

	simplifyCmd.Flags().StringVarP(&simplifyOutput, "output", "o", "", "Write the simplified points to a file")
}

// strokeStats counts the simplifier's decision for every sample
type strokeStats struct {
	Raw     int
	Actions map[simplify.Action]int
}

// simplifyPoints runs pts through a fresh simplifier
func simplifyPoints(pts []geometry.Vector3, cfg simplify.Config, log *zap.Logger) (*simplify.Simplifier, strokeStats) {
	s := simplify.New(cfg, simplify.WithLogger(log))
	stats := strokeStats{Raw: len(pts), Actions: make(map[simplify.Action]int)}
	for _, p := range pts {
		stats.Actions[s.Append(p)]++
	}
	return s, stats
}

func runSimplify(cmd *cobra.Command, args []string) error {
	filename := args[0]

	raw, err := points.Load(filename)
	if err != nil {
		return err
	}

	s, stats := simplifyPoints(raw, settings.SimplifierConfig(), logger.With(zap.String("file", filename)))
	kept := s.Points()
	poly := analysis.AnalyzePolyline(kept)

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Stroke Simplification")
	fmt.Fprintln(out, "=====================")
	fmt.Fprintf(out, "File: %s\n\n", filename)

	fmt.Fprintln(out, "Samples:")
	fmt.Fprintf(out, "  Raw: %d\n", stats.Raw)
	fmt.Fprintf(out, "  Discarded: %d\n", stats.Actions[simplify.Discarded])
	fmt.Fprintf(out, "  Extended: %d\n", stats.Actions[simplify.Extended])
	fmt.Fprintf(out, "  Accepted: %d\n", stats.Actions[simplify.Accepted])
	fmt.Fprintf(out, "  Kept vertices: %d\n\n", len(kept))

	fmt.Fprintln(out, "Polyline:")
	fmt.Fprintf(out, "  Length: %.6f\n", poly.Length)
	fmt.Fprintf(out, "  Shortest segment: %.6f\n", poly.MinSegment)
	fmt.Fprintf(out, "  Longest segment: %.6f\n", poly.MaxSegment)
	fmt.Fprintf(out, "  Largest turn: %s\n\n", analysis.FormatDegrees(poly.MaxTurn))

	if simplifyOutput == "" {
		fmt.Fprintln(out, "Vertices:")
		return points.Write(out, kept)
	}

	f, err := os.Create(simplifyOutput)
	if err != nil {
		return errors.Wrap(err, "failed to create output file")
	}
	defer f.Close()
	if err := points.Write(f, kept); err != nil {
		return err
	}
	logger.Info("simplified points written", zap.String("path", simplifyOutput), zap.Int("points", len(kept)))
	fmt.Fprintf(out, "Wrote %d vertices to %s\n", len(kept), simplifyOutput)
	return f.Close()
}
