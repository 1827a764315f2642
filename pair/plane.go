package pair

import (
	"github.com/gear/fcl/shape"
	"github.com/go-gl/mathgl/mgl64"
)

// ShapeHalfspace is the closed form of spec §4.E for any convex
// primitive against a Halfspace: the shape's support point in the
// halfspace's inward direction is its deepest point relative to the
// boundary; the signed distance from that point to the plane gives
// both the collision test and the depth. Grounded on actor/shape.go's
// Plane.Support/GetContactFeature generalized into closed form, since
// this core's shape.Shape interface (spec §4.A) exposes exactly the
// support operation this needs and nothing more.
func ShapeHalfspace(ta shape.Transform, s shape.Shape, tb shape.Transform, h *shape.Halfspace, opts Options) Result {
	worldNormal := tb.Direction(h.Normal).Normalize()
	planePoint := tb.Point(h.Normal.Mul(h.Offset))

	deepest := ta.Point(s.Support(ta.InverseDirection(worldNormal.Mul(-1))))
	signedDist := deepest.Sub(planePoint).Dot(worldNormal)
	depth := -signedDist
	if depth < 0 {
		return Result{}
	}

	// Normal points from A (the shape) toward B (the halfspace's
	// solid interior), i.e. opposite the halfspace's own outward
	// normal.
	normal := worldNormal.Mul(-1)

	res := Result{Collision: true, Normal: normal, Depth: depth}
	if !opts.EnableContact {
		return res
	}
	onPlane := deepest.Sub(worldNormal.Mul(signedDist))
	res.Contacts = []Contact{{Position: deepest.Add(onPlane).Mul(0.5), OnA: deepest, OnB: onPlane}}
	return res
}

// ShapePlane is the same closed form against a two-sided Plane
// (spec §4.E), with the solid side picked per-call as whichever side
// the shape's own center currently occupies — a plane of zero
// thickness has no fixed interior, so the "which side is solid" choice
// this core makes is to follow the shape rather than invent a
// convention, and is recorded as an Open Question decision.
func ShapePlane(ta shape.Transform, s shape.Shape, tb shape.Transform, p *shape.Plane, opts Options) Result {
	worldNormal := tb.Direction(p.Normal).Normalize()
	planePoint := tb.Point(p.Normal.Mul(p.Offset))

	centerSide := ta.Point(s.CenterOfMass()).Sub(planePoint).Dot(worldNormal)
	effectiveNormal := worldNormal
	if centerSide > 0 {
		effectiveNormal = worldNormal.Mul(-1)
	}

	h := shape.Halfspace{Normal: effectiveNormal, Offset: planePoint.Dot(effectiveNormal)}
	return ShapeHalfspace(ta, s, shape.Identity(), &h, opts)
}
