package main

import (
	"fmt"

	"github.com/philipparndt/artoolbox/internal/points"
	"github.com/philipparndt/artoolbox/pkg/analysis"
	"github.com/philipparndt/artoolbox/pkg/geometry"
	"github.com/philipparndt/artoolbox/pkg/measure"
	"github.com/philipparndt/artoolbox/pkg/mesh"
	"github.com/philipparndt/artoolbox/pkg/shapes"
	"github.com/philipparndt/artoolbox/pkg/stl"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	measureUndo   int
	measureOutput string
	measureBinary bool
)

var measureColor = mesh.Color{R: 0.9, G: 0.9, B: 0.3, A: 1}

var measureCmd = &cobra.Command{
	Use:   "measure [file]",
	Short: "Measure a chain of points",
	Long: `Place every point of a point file into one measurement chain and print the
segment distances, the chain total and the label shown next to the last point.`,
	Args: cobra.ExactArgs(1),
	RunE: runMeasure,
}

func init() {
	rootCmd.AddCommand(measureCmd)

	measureCmd.Flags().IntVar(&measureUndo, "undo", 0, "Undo the last N points before reporting")
	measureCmd.Flags().StringVarP(&measureOutput, "output", "o", "", "Write markers and connectors to an STL file")
	measureCmd.Flags().BoolVar(&measureBinary, "binary", false, "Write binary STL instead of ASCII")
}

// placeChain places pts one after the other and returns the last point
func placeChain(chain *measure.Chain, pts []geometry.Vector3) measure.ID {
	last := measure.None
	for _, p := range pts {
		last = chain.Place(p, last)
	}
	return last
}

func runMeasure(cmd *cobra.Command, args []string) error {
	filename := args[0]

	pts, err := points.Load(filename)
	if err != nil {
		return err
	}

	chain := measure.NewChain(
		measure.WithLogger(logger),
		measure.WithConnectorRadius(settings.Measure.ConnectorRadius),
	)
	last := placeChain(chain, pts)
	for i := 0; i < measureUndo && last != measure.None; i++ {
		last = chain.Undo(last)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Chain Measurement")
	fmt.Fprintln(out, "=================")
	fmt.Fprintf(out, "File: %s\n", filename)
	fmt.Fprintf(out, "Points: %d\n\n", chain.Len())

	if last == measure.None {
		fmt.Fprintln(out, "No points to measure")
		return nil
	}

	ids := chain.IDs(last)
	for i, id := range ids {
		p, _ := chain.Point(id)
		fmt.Fprintf(out, "  %d: %s\n", i+1, analysis.FormatVector(p))
	}

	fmt.Fprintln(out, "\nSegments:")
	for i, id := range ids[1:] {
		j, _ := chain.Join(id)
		fmt.Fprintf(out, "  %d -> %d: %.6f (%s)\n", i+1, i+2, j.Length, measure.FormatDistance(j.Length))
	}

	total := chain.Total(last)
	fmt.Fprintf(out, "\nTotal: %.6f (%s)\n", total, measure.FormatDistance(total))
	fmt.Fprintf(out, "Label: %s\n", chain.Format(last))

	if measureOutput == "" {
		return nil
	}
	return writeChainMesh(cmd, chain, last)
}

// writeChainMesh writes a marker sphere per point and a connector per segment
func writeChainMesh(cmd *cobra.Command, chain *measure.Chain, last measure.ID) error {
	mat := mesh.NewOpaque("measure", measureColor)
	builder := settings.Builder()

	var meshes []*mesh.Mesh
	for _, p := range chain.Path(last) {
		meshes = append(meshes, shapes.Sphere(measure.MarkerRadius, p, mat,
			shapes.DefaultSphereRings, shapes.DefaultSphereSectors))
	}
	for _, id := range chain.IDs(last)[1:] {
		j, _ := chain.Join(id)
		if m := j.Mesh(builder, mat); m != nil {
			meshes = append(meshes, m)
		}
	}

	model := stl.FromMesh("measure", meshes...)
	if err := stl.Save(measureOutput, model, measureBinary); err != nil {
		return err
	}
	logger.Info("measure mesh written", zap.String("path", measureOutput), zap.Int("triangles", model.TriangleCount()))
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d triangles to %s\n", model.TriangleCount(), measureOutput)
	return nil
}
