package shape

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// AABB is an axis-aligned bounding box, tight in whatever frame it was
// computed in (local or world). Grounded on actor/aabb.go.
type AABB struct {
	Min mgl64.Vec3
	Max mgl64.Vec3
}

// ContainsPoint reports whether point lies within the box, inclusive.
func (a AABB) ContainsPoint(point mgl64.Vec3) bool {
	return point.X() >= a.Min.X() && point.X() <= a.Max.X() &&
		point.Y() >= a.Min.Y() && point.Y() <= a.Max.Y() &&
		point.Z() >= a.Min.Z() && point.Z() <= a.Max.Z()
}

// Overlaps reports whether two AABBs intersect on all three axes.
func (a AABB) Overlaps(other AABB) bool {
	return a.Max.X() >= other.Min.X() && a.Min.X() <= other.Max.X() &&
		a.Max.Y() >= other.Min.Y() && a.Min.Y() <= other.Max.Y() &&
		a.Max.Z() >= other.Min.Z() && a.Min.Z() <= other.Max.Z()
}

// Union returns the smallest AABB containing both a and other.
func (a AABB) Union(other AABB) AABB {
	return AABB{
		Min: mgl64.Vec3{math.Min(a.Min.X(), other.Min.X()), math.Min(a.Min.Y(), other.Min.Y()), math.Min(a.Min.Z(), other.Min.Z())},
		Max: mgl64.Vec3{math.Max(a.Max.X(), other.Max.X()), math.Max(a.Max.Y(), other.Max.Y()), math.Max(a.Max.Z(), other.Max.Z())},
	}
}

// Center returns the AABB's midpoint.
func (a AABB) Center() mgl64.Vec3 {
	return a.Min.Add(a.Max).Mul(0.5)
}

// Radius returns half the AABB's diagonal length, i.e. the radius of
// the tightest bounding sphere centered at a.Center().
func (a AABB) Radius() float64 {
	return a.Max.Sub(a.Min).Len() * 0.5
}

// TransformWorld encloses a local-frame AABB in a world-space AABB
// under a general rigid transform, per spec §6's broad-phase boundary:
// "general transform: enclose the local bounding sphere." Translation
// alone would simply translate the box; when rotation is non-identity
// the rotation could tilt the box's corners arbitrarily, so the cheap
// overbound is the transformed bounding sphere.
func (a AABB) TransformWorld(t Transform) AABB {
	center := t.Point(a.Center())
	radius := a.Radius()
	r := mgl64.Vec3{radius, radius, radius}
	return AABB{Min: center.Sub(r), Max: center.Add(r)}
}

// TranslateOnly translates a local-frame AABB by t's position, valid
// only when t carries no rotation (spec §6: "translation-only:
// translate the local AABB").
func (a AABB) TranslateOnly(t Transform) AABB {
	return AABB{Min: a.Min.Add(t.Position), Max: a.Max.Add(t.Position)}
}
