// Package triangle implements spec §4.G's shape-triangle engine: given
// a convex primitive and three triangle vertices, determine whether
// they intersect and, when requested, recover the contact normal,
// depth, and position. A triangle is treated as a degenerate convex
// polytope (shape.Triangle's support is the max of three dot
// products), so the engine either routes through a closed-form pair
// routine when one applies (plane, halfspace, sphere) or falls back
// to the general GJK/EPA machinery for everything else — the same
// split dispatch uses, layered one level down.
//
// Grounded on shape.Triangle's support definition plus the teacher's
// EPA manifold-clipping machinery (now generalized in epa/pair),
// applied to the one shape variant (Triangle) the teacher never had.
package triangle

import (
	"github.com/gear/fcl/epa"
	"github.com/gear/fcl/gjk"
	"github.com/gear/fcl/pair"
	"github.com/gear/fcl/shape"
	"github.com/gear/fcl/support"
	"github.com/go-gl/mathgl/mgl64"
)

// Options carries the tunables ShapeTriangleIntersect's callers may
// set, mirroring dispatch.Options for the same reason: a uniform knob
// set across every entry point into the core (spec §4.H).
type Options struct {
	pair.Options
	GJK gjk.Config
	EPA epa.Config
}

// Result is the outcome of a shape-triangle intersection test.
type Result struct {
	Collision bool
	Normal    mgl64.Vec3
	Depth     float64
	Position  mgl64.Vec3
}

// Intersect implements spec §4.G / §6's shape_triangle_intersect: s at
// ts against the triangle (v0, v1, v2), optionally placed at its own
// transform tt (shape.Identity() when the triangle is already in world
// coordinates).
func Intersect(ts shape.Transform, s shape.Shape, v0, v1, v2 mgl64.Vec3, tt shape.Transform, opts Options) (Result, error) {
	tri, err := shape.NewTriangle(v0, v1, v2)
	if err != nil {
		return Result{}, err
	}

	var pr pair.Result
	switch st := s.(type) {
	case *shape.Halfspace:
		pr = pair.Swap(pair.ShapeHalfspace(tt, tri, ts, st, opts.Options))
	case *shape.Plane:
		pr = pair.Swap(pair.ShapePlane(tt, tri, ts, st, opts.Options))
	case *shape.Sphere:
		pr, err = sphereTriangle(ts, st, tt, tri, opts.Options)
		if err != nil {
			return Result{}, err
		}
	default:
		pr, err = generalIntersect(ts, s, tt, tri, opts)
		if err != nil {
			return Result{}, err
		}
	}

	if !pr.Collision {
		return Result{}, nil
	}
	res := Result{Collision: true, Normal: pr.Normal, Depth: pr.Depth}
	if len(pr.Contacts) > 0 {
		res.Position = pr.Contacts[0].Position
	}
	return res, nil
}

// sphereTriangle closes a sphere against the triangle's face and its
// three edges: clamp the sphere center's projection onto the
// triangle's plane to the triangle itself (face region), else fall
// back to the nearest edge segment (edge region) — spec §4.E's
// "treat the triangle as three line segments and a face".
func sphereTriangle(ts shape.Transform, sph *shape.Sphere, tt shape.Transform, tri *shape.Triangle, opts pair.Options) (pair.Result, error) {
	center := ts.Position
	v0, v1, v2 := tt.Point(tri.V0), tt.Point(tri.V1), tt.Point(tri.V2)

	edge1 := v1.Sub(v0)
	edge2 := v2.Sub(v0)
	normal := edge1.Cross(edge2)
	length := normal.Len()
	if length < 1e-12 {
		return pair.Result{}, nil
	}
	normal = normal.Mul(1 / length)

	closest, inside := closestOnTriangle(center, v0, v1, v2, normal)
	if !inside {
		closest = closestOnTrianglePerimeter(center, v0, v1, v2)
	}

	delta := center.Sub(closest)
	dist := delta.Len()
	depth := sph.Radius - dist
	if depth < 0 {
		return pair.Result{}, nil
	}

	var n mgl64.Vec3
	if dist > 1e-9 {
		n = delta.Mul(-1 / dist)
	} else {
		n = normal.Mul(-1)
	}

	res := pair.Result{Collision: true, Normal: n, Depth: depth}
	if !opts.EnableContact {
		return res, nil
	}
	onA := center.Add(n.Mul(sph.Radius))
	res.Contacts = []pair.Contact{{Position: onA.Add(closest).Mul(0.5), OnA: onA, OnB: closest}}
	return res, nil
}

// closestOnTriangle projects p onto the triangle's plane and reports
// whether the projection lies within the triangle itself (barycentric
// coordinates all non-negative).
func closestOnTriangle(p, v0, v1, v2, normal mgl64.Vec3) (mgl64.Vec3, bool) {
	d := p.Sub(v0).Dot(normal)
	proj := p.Sub(normal.Mul(d))

	v0v1 := v1.Sub(v0)
	v0v2 := v2.Sub(v0)
	v0p := proj.Sub(v0)

	d00 := v0v1.Dot(v0v1)
	d01 := v0v1.Dot(v0v2)
	d11 := v0v2.Dot(v0v2)
	d20 := v0p.Dot(v0v1)
	d21 := v0p.Dot(v0v2)
	denom := d00*d11 - d01*d01
	if denom == 0 {
		return proj, false
	}
	v := (d11*d20 - d01*d21) / denom
	w := (d00*d21 - d01*d20) / denom
	u := 1 - v - w
	return proj, u >= 0 && v >= 0 && w >= 0
}

func closestOnTrianglePerimeter(p, v0, v1, v2 mgl64.Vec3) mgl64.Vec3 {
	c01, _ := pair.ClosestPointOnSegment(p, v0, v1)
	c12, _ := pair.ClosestPointOnSegment(p, v1, v2)
	c20, _ := pair.ClosestPointOnSegment(p, v2, v0)

	best := c01
	bestDist := p.Sub(c01).LenSqr()
	if d := p.Sub(c12).LenSqr(); d < bestDist {
		best, bestDist = c12, d
	}
	if d := p.Sub(c20).LenSqr(); d < bestDist {
		best = c20
	}
	return best
}

// generalIntersect treats the triangle as a degenerate convex shape
// and runs the general GJK/EPA pipeline, the same fallback dispatch
// uses for unsupported pairs.
func generalIntersect(ts shape.Transform, s shape.Shape, tt shape.Transform, tri *shape.Triangle, opts Options) (pair.Result, error) {
	oracle := support.Oracle{A: support.Body{Shape: s, Transform: ts}, B: support.Body{Shape: tri, Transform: tt}}
	gjkRes, err := gjk.Solve(oracle, opts.GJK)
	if err != nil {
		return pair.Result{}, err
	}
	if !gjkRes.Collision {
		return pair.Result{}, nil
	}

	epaCfg := opts.EPA
	epaCfg.EnableContact = opts.EnableContact
	epaCfg.MaxContacts = opts.MaxContacts
	epaRes, err := epa.Solve(oracle, gjkRes.Simplex, epaCfg)
	if err != nil {
		return pair.Result{}, err
	}
	res := pair.Result{Collision: true, Normal: epaRes.Normal, Depth: epaRes.Depth}
	if opts.EnableContact && len(epaRes.Contacts) > 0 {
		res.Contacts = []pair.Contact{{Position: epaRes.Contacts[0].Position, OnA: epaRes.Contacts[0].OnA, OnB: epaRes.Contacts[0].OnB}}
	}
	return res, nil
}
