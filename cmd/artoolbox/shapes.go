package main

import (
	"fmt"
	"strings"

	"github.com/philipparndt/artoolbox/pkg/geometry"
	"github.com/philipparndt/artoolbox/pkg/mesh"
	"github.com/philipparndt/artoolbox/pkg/shapes"
	"github.com/philipparndt/artoolbox/pkg/stl"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	shapeOutput string
	shapeBinary bool
	shapeRadius float64
	shapeHeight float64
	shapeSize   float64
)

var shapeColor = mesh.Color{R: 0.35, G: 0.75, B: 0.45, A: 1}

var shapesCmd = &cobra.Command{
	Use:       "shapes [sphere|cube|cylinder]",
	Short:     "Write a primitive mesh",
	Long:      "Generate a sphere, cube or cylinder resting on the origin and write it as STL.",
	ValidArgs: kindNames(),
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE:      runShapes,
}

func init() {
	rootCmd.AddCommand(shapesCmd)

	shapesCmd.Flags().StringVarP(&shapeOutput, "output", "o", "", "Output STL file")
	shapesCmd.Flags().BoolVar(&shapeBinary, "binary", false, "Write binary STL instead of ASCII")
	shapesCmd.Flags().Float64Var(&shapeRadius, "radius", 0, "Sphere or cylinder radius (default depends on the shape)")
	shapesCmd.Flags().Float64Var(&shapeHeight, "height", shapes.DefaultCylinderHeight, "Cylinder height")
	shapesCmd.Flags().Float64Var(&shapeSize, "size", shapes.DefaultCubeSize, "Cube edge length")

	_ = shapesCmd.MarkFlagRequired("output")
}

func kindNames() []string {
	var names []string
	for _, k := range shapes.Kinds() {
		names = append(names, string(k))
	}
	return names
}

// buildShape generates kind resting on the origin
func buildShape(kind shapes.Kind, segments int, mat *mesh.Material) (*mesh.Mesh, error) {
	var m *mesh.Mesh
	switch kind {
	case shapes.KindSphere:
		r := shapeRadius
		if r == 0 {
			r = shapes.DefaultSphereRadius
		}
		m = shapes.Sphere(r, geometry.NewVector3(0, r, 0), mat, shapes.DefaultSphereRings, shapes.DefaultSphereSectors)
	case shapes.KindCube:
		m = shapes.Cube(shapeSize, geometry.NewVector3(0, shapeSize/2, 0), mat)
	case shapes.KindCylinder:
		r := shapeRadius
		if r == 0 {
			r = shapes.DefaultCylinderRadius
		}
		m = shapes.Cylinder(r, shapeHeight, geometry.NewVector3(0, shapeHeight/2, 0), mat, segments)
	default:
		return nil, errors.Errorf("unknown shape %q (expected %s)", kind, strings.Join(kindNames(), ", "))
	}
	if m == nil {
		return nil, errors.Errorf("invalid dimensions for %s", kind)
	}
	return m, nil
}

func runShapes(cmd *cobra.Command, args []string) error {
	kind := shapes.Kind(args[0])
	m, err := buildShape(kind, settings.Tube.Segments, mesh.NewOpaque(string(kind), shapeColor))
	if err != nil {
		return err
	}

	model := stl.FromMesh(string(kind), m)
	if err := stl.Save(shapeOutput, model, shapeBinary); err != nil {
		return err
	}
	logger.Info("shape written",
		zap.String("kind", string(kind)),
		zap.String("path", shapeOutput),
		zap.Int("triangles", model.TriangleCount()))
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d triangles, volume %.6f) to %s\n",
		kind, model.TriangleCount(), m.Volume(), shapeOutput)
	return nil
}
