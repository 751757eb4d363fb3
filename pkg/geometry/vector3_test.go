package geometry

import (
	"math"
	"testing"
)

func TestVector3Add(t *testing.T) {
	v1 := NewVector3(1, 2, 3)
	v2 := NewVector3(4, 5, 6)
	result := v1.Add(v2)

	expected := NewVector3(5, 7, 9)
	if result != expected {
		t.Errorf("Add failed: expected %v, got %v", expected, result)
	}
}

func TestVector3Sub(t *testing.T) {
	v1 := NewVector3(5, 7, 9)
	v2 := NewVector3(1, 2, 3)
	result := v1.Sub(v2)

	expected := NewVector3(4, 5, 6)
	if result != expected {
		t.Errorf("Sub failed: expected %v, got %v", expected, result)
	}
}

func TestVector3Length(t *testing.T) {
	v := NewVector3(3, 4, 0)
	length := v.Length()

	expected := 5.0
	if math.Abs(length-expected) > 1e-10 {
		t.Errorf("Length failed: expected %v, got %v", expected, length)
	}
}

func TestVector3Distance(t *testing.T) {
	v1 := NewVector3(0, 0, 0)
	v2 := NewVector3(3, 4, 0)
	distance := v1.Distance(v2)

	expected := 5.0
	if math.Abs(distance-expected) > 1e-10 {
		t.Errorf("Distance failed: expected %v, got %v", expected, distance)
	}
}

func TestVector3Normalize(t *testing.T) {
	v := NewVector3(3, 4, 0)
	normalized := v.Normalize()

	expectedLength := 1.0
	actualLength := normalized.Length()

	if math.Abs(actualLength-expectedLength) > 1e-10 {
		t.Errorf("Normalize failed: expected length %v, got %v", expectedLength, actualLength)
	}
}

func TestVector3Cross(t *testing.T) {
	v1 := NewVector3(1, 0, 0)
	v2 := NewVector3(0, 1, 0)
	result := v1.Cross(v2)

	expected := NewVector3(0, 0, 1)
	if result != expected {
		t.Errorf("Cross failed: expected %v, got %v", expected, result)
	}
}

func TestVector3Dot(t *testing.T) {
	v1 := NewVector3(1, 2, 3)
	v2 := NewVector3(4, 5, 6)
	result := v1.Dot(v2)

	expected := 32.0 // 1*4 + 2*5 + 3*6 = 32
	if math.Abs(result-expected) > 1e-10 {
		t.Errorf("Dot failed: expected %v, got %v", expected, result)
	}
}

func TestLerp(t *testing.T) {
	a := NewVector3(0, 0, 0)
	b := NewVector3(2, 4, -6)

	if got := Lerp(a, b, 0.5); got != NewVector3(1, 2, -3) {
		t.Errorf("Lerp failed: expected midpoint (1, 2, -3), got %v", got)
	}
	if got := Lerp(a, b, 0); got != a {
		t.Errorf("Lerp failed: t=0 should return a, got %v", got)
	}
	if got := Lerp(a, b, 1); got != b {
		t.Errorf("Lerp failed: t=1 should return b, got %v", got)
	}
}

func TestVector3AngleTo(t *testing.T) {
	x := NewVector3(1, 0, 0)

	tests := []struct {
		name  string
		other Vector3
		want  float64
	}{
		{"same", NewVector3(3, 0, 0), 0},
		{"right angle", NewVector3(0, 2, 0), math.Pi / 2},
		{"opposite", NewVector3(-1, 0, 0), math.Pi},
		{"diagonal", NewVector3(1, 1, 0), math.Pi / 4},
		{"zero", NewVector3(0, 0, 0), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := x.AngleTo(tt.other)
			if math.Abs(got-tt.want) > 1e-10 {
				t.Errorf("AngleTo failed: expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestVector3Perpendicular(t *testing.T) {
	inputs := []Vector3{
		NewVector3(1, 0, 0),
		NewVector3(0, 1, 0),
		NewVector3(0, 0, -5),
		NewVector3(1, 2, 3),
		NewVector3(0, 0, 0),
	}

	for _, v := range inputs {
		p := v.Perpendicular()
		if math.Abs(p.Length()-1) > 1e-10 {
			t.Errorf("Perpendicular(%v) failed: expected unit length, got %v", v, p.Length())
		}
		if math.Abs(p.Dot(v)) > 1e-10 {
			t.Errorf("Perpendicular(%v) failed: dot product %v should be zero", v, p.Dot(v))
		}
	}
}

func TestVector3Negate(t *testing.T) {
	v := NewVector3(1, -2, 3)
	if got := v.Negate(); got != NewVector3(-1, 2, -3) {
		t.Errorf("Negate failed: got %v", got)
	}
}

func TestVector3IsFinite(t *testing.T) {
	if !NewVector3(1, -2, 3).IsFinite() {
		t.Error("expected finite vector")
	}
	for _, v := range []Vector3{
		NewVector3(math.NaN(), 0, 0),
		NewVector3(0, math.Inf(1), 0),
		NewVector3(0, 0, math.Inf(-1)),
	} {
		if v.IsFinite() {
			t.Errorf("expected %v to be non-finite", v)
		}
	}
}
