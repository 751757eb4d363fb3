package main

import (
	"fmt"

	"github.com/philipparndt/artoolbox/pkg/analysis"
	"github.com/philipparndt/artoolbox/pkg/stl"
	"github.com/spf13/cobra"
)

var infoEdges int

var infoCmd = &cobra.Command{
	Use:   "info [file]",
	Short: "Display general information about an STL file",
	Long:  "Show comprehensive information including dimensions, triangle count, surface area, enclosed volume and edge statistics.",
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)

	infoCmd.Flags().IntVarP(&infoEdges, "edges", "n", 0, "Also list the N longest edges")
}

func runInfo(cmd *cobra.Command, args []string) error {
	filename := args[0]

	model, err := stl.Parse(filename)
	if err != nil {
		return err
	}

	result := analysis.AnalyzeModel(model)

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "STL File Information")
	fmt.Fprintln(out, "====================")
	if model.Name != "" {
		fmt.Fprintf(out, "Name: %s\n", model.Name)
	}
	fmt.Fprintf(out, "File: %s\n\n", filename)

	fmt.Fprintln(out, "Model Statistics:")
	fmt.Fprintf(out, "  Triangles: %d\n", result.TriangleCount)
	fmt.Fprintf(out, "  Degenerate: %d\n", result.Degenerate)
	fmt.Fprintf(out, "  Edges: %d\n", result.EdgeCount)
	fmt.Fprintf(out, "  Open edges: %d\n", result.OpenEdges)
	fmt.Fprintf(out, "  Watertight: %t\n", result.Watertight())
	fmt.Fprintf(out, "  Surface Area: %.6f square units\n", result.SurfaceArea)
	fmt.Fprintf(out, "  Enclosed Volume: %.6f cubic units\n\n", result.Volume)

	fmt.Fprintln(out, "Bounding Box:")
	fmt.Fprintf(out, "  Min: %s\n", analysis.FormatVector(result.BoundingBox.Min))
	fmt.Fprintf(out, "  Max: %s\n", analysis.FormatVector(result.BoundingBox.Max))
	fmt.Fprintf(out, "  Center: %s\n\n", analysis.FormatVector(result.BoundingBox.Center()))

	fmt.Fprintln(out, "Dimensions:")
	fmt.Fprintf(out, "  Width (X): %.6f units\n", result.Dimensions.X)
	fmt.Fprintf(out, "  Depth (Y): %.6f units\n", result.Dimensions.Y)
	fmt.Fprintf(out, "  Height (Z): %.6f units\n", result.Dimensions.Z)
	fmt.Fprintf(out, "  Diagonal: %.6f units\n", result.BoundingBox.Diagonal())
	fmt.Fprintf(out, "  Volume: %.6f cubic units\n\n", result.BoundingVolume)

	fmt.Fprintln(out, "Edge Lengths:")
	fmt.Fprintf(out, "  Minimum: %.6f units\n", result.MinEdgeLength)
	fmt.Fprintf(out, "  Maximum: %.6f units\n", result.MaxEdgeLength)
	fmt.Fprintf(out, "  Average: %.6f units\n", result.AvgEdgeLength)

	if infoEdges > 0 {
		fmt.Fprintf(out, "\nLongest %d edges:\n", infoEdges)
		for i, e := range analysis.LongestEdges(result, infoEdges) {
			fmt.Fprintf(out, "  %d. %.6f  %s -> %s (triangle %d)\n",
				i+1, e.Length, analysis.FormatVector(e.Start), analysis.FormatVector(e.End), e.TriangleID)
		}
	}
	return nil
}
