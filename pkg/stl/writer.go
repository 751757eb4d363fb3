package stl

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/philipparndt/artoolbox/pkg/geometry"
	"github.com/pkg/errors"
)

// WriteASCII writes the model as an ASCII STL
func WriteASCII(w io.Writer, model *Model) error {
	bw := bufio.NewWriter(w)
	name := model.Name
	if name == "" {
		name = "artoolbox"
	}

	fmt.Fprintf(bw, "solid %s\n", name)
	for _, t := range model.Triangles {
		fmt.Fprintf(bw, "  facet normal %e %e %e\n", t.Normal.X, t.Normal.Y, t.Normal.Z)
		fmt.Fprintln(bw, "    outer loop")
		for _, v := range []geometry.Vector3{t.V1, t.V2, t.V3} {
			fmt.Fprintf(bw, "      vertex %e %e %e\n", v.X, v.Y, v.Z)
		}
		fmt.Fprintln(bw, "    endloop")
		fmt.Fprintln(bw, "  endfacet")
	}
	fmt.Fprintf(bw, "endsolid %s\n", name)

	return errors.Wrap(bw.Flush(), "failed to write ASCII STL")
}

// WriteBinary writes the model as a little endian binary STL. Coordinates are
// narrowed to float32.
func WriteBinary(w io.Writer, model *Model) error {
	bw := bufio.NewWriter(w)

	header := make([]byte, headerSize)
	copy(header, model.Name)
	if _, err := bw.Write(header); err != nil {
		return errors.Wrap(err, "failed to write header")
	}
	if err := binary.Write(bw, binary.LittleEndian, uint32(len(model.Triangles))); err != nil {
		return errors.Wrap(err, "failed to write triangle count")
	}

	facet := make([]byte, facetSize)
	for i, t := range model.Triangles {
		putVector(facet[0:], t.Normal)
		putVector(facet[12:], t.V1)
		putVector(facet[24:], t.V2)
		putVector(facet[36:], t.V3)
		if _, err := bw.Write(facet); err != nil {
			return errors.Wrapf(err, "failed to write triangle %d", i)
		}
	}

	return errors.Wrap(bw.Flush(), "failed to write binary STL")
}

func putVector(b []byte, v geometry.Vector3) {
	binary.LittleEndian.PutUint32(b[0:], math.Float32bits(float32(v.X)))
	binary.LittleEndian.PutUint32(b[4:], math.Float32bits(float32(v.Y)))
	binary.LittleEndian.PutUint32(b[8:], math.Float32bits(float32(v.Z)))
}

// Save writes the model to path, creating parent directories. The file is
// written next to its destination and renamed so readers never observe a
// partial model.
func Save(path string, model *Model, binaryFormat bool) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrapf(err, "failed to create %s", dir)
	}

	tmp, err := os.CreateTemp(dir, ".artoolbox-*.stl")
	if err != nil {
		return errors.Wrap(err, "failed to create temporary file")
	}
	defer os.Remove(tmp.Name())

	write := WriteASCII
	if binaryFormat {
		write = WriteBinary
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return errors.Wrapf(err, "save %s", path)
	}
	if err := write(tmp, model); err != nil {
		tmp.Close()
		return errors.Wrapf(err, "save %s", path)
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrapf(err, "save %s", path)
	}
	return errors.Wrapf(os.Rename(tmp.Name(), path), "save %s", path)
}
