// Package points reads centerline point files. Plain text files hold one
// "x y z" point per line, separated by spaces or commas, with # comments.
// YAML files hold a list of [x, y, z] triples, either at the top level or
// under a points key.
package points

import (
	"bufio"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/philipparndt/artoolbox/pkg/geometry"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Format is a point file encoding
type Format int

const (
	// Text is whitespace or comma separated coordinates
	Text Format = iota
	// YAML is a list of coordinate triples
	YAML
)

// FormatOf picks the format from a file extension
func FormatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML
	default:
		return Text
	}
}

// Load reads a point file, choosing the format from its extension
func Load(path string) ([]geometry.Vector3, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open points")
	}
	defer f.Close()

	pts, err := Parse(f, FormatOf(path))
	if err != nil {
		return nil, errors.Wrapf(err, "points %s", path)
	}
	return pts, nil
}

// Parse reads points in the given format
func Parse(r io.Reader, format Format) ([]geometry.Vector3, error) {
	if format == YAML {
		return parseYAML(r)
	}
	return parseText(r)
}

func parseText(r io.Reader) ([]geometry.Vector3, error) {
	scanner := bufio.NewScanner(r)
	var out []geometry.Vector3

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		fields := strings.FieldsFunc(line, func(r rune) bool {
			return r == ',' || r == ' ' || r == '\t' || r == ';'
		})
		if len(fields) == 0 {
			continue
		}
		if len(fields) != 3 {
			return nil, errors.Errorf("line %d: want 3 coordinates, got %d", lineNo, len(fields))
		}

		var c [3]float64
		for i, f := range fields {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, errors.Wrapf(err, "line %d", lineNo)
			}
			c[i] = v
		}
		out = append(out, geometry.NewVector3(c[0], c[1], c[2]))
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to read points")
	}
	return out, nil
}

type document struct {
	Points [][]float64 `yaml:"points"`
}

func parseYAML(r io.Reader) ([]geometry.Vector3, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read points")
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, errors.Wrap(err, "invalid YAML")
	}

	var raw [][]float64
	root := &node
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	switch root.Kind {
	case yaml.SequenceNode:
		err = root.Decode(&raw)
	case yaml.MappingNode:
		var doc document
		err = root.Decode(&doc)
		raw = doc.Points
	default:
		return nil, errors.Errorf("line %d: expected a list of points", root.Line)
	}
	if err != nil {
		return nil, errors.Wrap(err, "invalid points")
	}

	out := make([]geometry.Vector3, len(raw))
	for i, p := range raw {
		if len(p) != 3 {
			return nil, errors.Errorf("point %d: want 3 coordinates, got %d", i, len(p))
		}
		out[i] = geometry.NewVector3(p[0], p[1], p[2])
	}
	return out, nil
}

// Write stores points as text, one per line
func Write(w io.Writer, pts []geometry.Vector3) error {
	bw := bufio.NewWriter(w)
	for _, p := range pts {
		bw.WriteString(strconv.FormatFloat(p.X, 'g', -1, 64))
		bw.WriteByte(' ')
		bw.WriteString(strconv.FormatFloat(p.Y, 'g', -1, 64))
		bw.WriteByte(' ')
		bw.WriteString(strconv.FormatFloat(p.Z, 'g', -1, 64))
		bw.WriteByte('\n')
	}
	return errors.Wrap(bw.Flush(), "failed to write points")
}
