package types

import (
	"math"
	"testing"
)

func approxVec4(a, b Vec4) bool {
	for i := range a {
		if math.Abs(float64(a[i]-b[i])) > 1e-4 {
			return false
		}
	}
	return true
}

func TestIdentMul(t *testing.T) {
	m := Translate4(XYZ(1, 2, 3))
	if got := m.Mul4(Ident4()); got != m {
		t.Fatalf("expected M * I to equal M; got %v", got)
	}
	if got := Ident4().Mul4(m); got != m {
		t.Fatalf("expected I * M to equal M; got %v", got)
	}
}

func TestTransformPoints(t *testing.T) {
	type spec struct {
		m   Mat4
		in  Vec4
		exp Vec4
	}
	specs := []spec{
		{Translate4(XYZ(10, 20, 30)), Point(1, 1, 1), Point(11, 21, 31)},
		{Scale4(XYZ(2, 3, 4)), Point(1, 1, 1), Point(2, 3, 4)},
		{RotateZ4(math.Pi / 2), Point(1, 0, 0), Point(0, 1, 0)},
		{RotateX4(math.Pi / 2), Point(0, 1, 0), Point(0, 0, 1)},
		{RotateY4(math.Pi / 2), Point(0, 0, 1), Point(1, 0, 0)},
		// Vectors with w=0 ignore translation
		{Translate4(XYZ(5, 5, 5)), Vec4{1, 0, 0, 0}, Vec4{1, 0, 0, 0}},
	}

	for index, s := range specs {
		got := s.m.Mul4x1(s.in)
		if !approxVec4(got, s.exp) {
			t.Fatalf("[spec %d] expected %v; got %v", index, s.exp, got)
		}
	}
}

func TestCompositionOrder(t *testing.T) {
	// Translate then scale: the scale is applied in the translated frame.
	m := Translate4(XYZ(10, 0, 0)).Mul4(Scale4(XYZ(2, 2, 2)))
	got := m.Mul4x1(Point(1, 0, 0))
	if exp := Point(12, 0, 0); !approxVec4(got, exp) {
		t.Fatalf("expected %v; got %v", exp, got)
	}
}

func TestVectorOps(t *testing.T) {
	v := XYZ(3, 0, 4)
	if v.Len() != 5 {
		t.Fatalf("expected length 5; got %f", v.Len())
	}
	if n := (Vec3{}).Normalize(); n != (Vec3{}) {
		t.Fatalf("expected zero vector to normalize to zero; got %v", n)
	}
	if c := XYZ(1, 0, 0).Cross(XYZ(0, 1, 0)); c != XYZ(0, 0, 1) {
		t.Fatalf("expected x cross y to be z; got %v", c)
	}
	if c := XYZ(-5, 100, 300).Clamp(0, 255); c != XYZ(0, 100, 255) {
		t.Fatalf("expected clamped vector; got %v", c)
	}
}
