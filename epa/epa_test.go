package epa

import (
	"math"
	"testing"

	"github.com/gear/fcl/gjk"
	"github.com/gear/fcl/shape"
	"github.com/gear/fcl/support"
	"github.com/go-gl/mathgl/mgl64"
)

func sphereBody(t *testing.T, position mgl64.Vec3, radius float64) support.Body {
	t.Helper()
	s, err := shape.NewSphere(radius)
	if err != nil {
		t.Fatalf("NewSphere: %v", err)
	}
	return support.Body{Shape: s, Transform: shape.Transform{Position: position, Rotation: mgl64.QuatIdent()}}
}

func boxBody(t *testing.T, position, halfExtents mgl64.Vec3) support.Body {
	t.Helper()
	b, err := shape.NewBox(halfExtents)
	if err != nil {
		t.Fatalf("NewBox: %v", err)
	}
	return support.Body{Shape: b, Transform: shape.Transform{Position: position, Rotation: mgl64.QuatIdent()}}
}

func runToCollision(t *testing.T, o support.Oracle) gjk.Simplex {
	t.Helper()
	res, err := gjk.Solve(o, gjk.Config{})
	if err != nil {
		t.Fatalf("gjk.Solve: %v", err)
	}
	if !res.Collision {
		t.Fatal("expected gjk to find a collision")
	}
	return res.Simplex
}

func TestSolve_OverlappingSpheres(t *testing.T) {
	a := sphereBody(t, mgl64.Vec3{0, 0, 0}, 1)
	b := sphereBody(t, mgl64.Vec3{1.5, 0, 0}, 1)
	o := support.Oracle{A: a, B: b}
	simplex := runToCollision(t, o)

	res, err := Solve(o, simplex, Config{})
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if math.Abs(res.Depth-0.5) > 1e-3 {
		t.Errorf("Depth = %v, want ~0.5", res.Depth)
	}
	wantNormal := mgl64.Vec3{1, 0, 0}
	if res.Normal.Dot(wantNormal) < 0.99 {
		t.Errorf("Normal = %v, want approximately %v", res.Normal, wantNormal)
	}
	if len(res.Contacts) == 0 {
		t.Fatal("expected at least one contact")
	}
}

func TestSolve_DeeplyOverlappingBoxes(t *testing.T) {
	a := boxBody(t, mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1, 1, 1})
	b := boxBody(t, mgl64.Vec3{1, 0, 0}, mgl64.Vec3{1, 1, 1})
	o := support.Oracle{A: a, B: b}
	simplex := runToCollision(t, o)

	res, err := Solve(o, simplex, Config{})
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if res.Depth <= 0 {
		t.Errorf("Depth = %v, want > 0", res.Depth)
	}
	if math.Abs(math.Abs(res.Normal.X())-1) > 1e-2 {
		t.Errorf("Normal = %v, want axis-aligned along X", res.Normal)
	}
}

func TestSolve_ManifoldRespectsMaxContacts(t *testing.T) {
	a := boxBody(t, mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1, 1, 1})
	b := boxBody(t, mgl64.Vec3{1.5, 0, 0}, mgl64.Vec3{1, 1, 1})
	o := support.Oracle{A: a, B: b}
	simplex := runToCollision(t, o)

	res, err := Solve(o, simplex, Config{EnableContact: true, MaxContacts: 4})
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if len(res.Contacts) == 0 || len(res.Contacts) > 4 {
		t.Errorf("Contacts = %d, want between 1 and 4", len(res.Contacts))
	}
}

func TestSolve_DegenerateTwoPointSimplex(t *testing.T) {
	a := sphereBody(t, mgl64.Vec3{0, 0, 0}, 1)
	b := sphereBody(t, mgl64.Vec3{2, 0, 0}, 1)
	o := support.Oracle{A: a, B: b}

	w1, onA1, onB1 := o.SupportVertices(mgl64.Vec3{1, 0, 0})
	w2, onA2, onB2 := o.SupportVertices(mgl64.Vec3{-1, 0, 0})

	res := degenerateResult(o, []gjk.Vertex{
		{W: w1, OnA: onA1, OnB: onB1},
		{W: w2, OnA: onA2, OnB: onB2},
	}, Config{})
	if res.Depth < 0 {
		t.Errorf("Depth = %v, want >= 0", res.Depth)
	}
	if len(res.Contacts) != 1 {
		t.Fatalf("expected a single degenerate contact, got %d", len(res.Contacts))
	}
}
