// Package shape defines the closed family of convex primitives the
// narrow-phase core understands: their intrinsic parameters, local
// AABB, volume, inertia, and support-point function (spec §4.A).
//
// Shapes are immutable once constructed. Construction validates its
// parameters and returns an error rather than panicking — invalid
// parameters must never surface from deep inside the solver hot path
// (spec §7).
package shape

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// NodeType tags which variant a Shape value holds, keeping the pair
// matrix in dispatch exhaustively checkable by the compiler (spec §9:
// "tagged variant and a dispatch table keyed on variant tags").
type NodeType int

const (
	TypeBox NodeType = iota
	TypeSphere
	TypeEllipsoid
	TypeCapsule
	TypeCone
	TypeCylinder
	TypeConvex
	TypePlane
	TypeHalfspace
	TypeTriangle
	numNodeTypes
)

func (t NodeType) String() string {
	switch t {
	case TypeBox:
		return "Box"
	case TypeSphere:
		return "Sphere"
	case TypeEllipsoid:
		return "Ellipsoid"
	case TypeCapsule:
		return "Capsule"
	case TypeCone:
		return "Cone"
	case TypeCylinder:
		return "Cylinder"
	case TypeConvex:
		return "Convex"
	case TypePlane:
		return "Plane"
	case TypeHalfspace:
		return "Halfspace"
	case TypeTriangle:
		return "Triangle"
	default:
		return "Unknown"
	}
}

// Shape is the interface every convex primitive variant implements.
// It exposes exactly the four operations upper layers need (spec
// §4.A): local AABB, AABB center/radius, support, and mass properties.
type Shape interface {
	Type() NodeType
	// LocalAABB returns an axis-aligned box tight in the local frame.
	LocalAABB() AABB
	// AABBCenterRadius returns the local-frame AABB's center and the
	// radius of its bounding sphere, for cheap world-space overbounds.
	AABBCenterRadius() (mgl64.Vec3, float64)
	// Support returns the point in S maximizing d·p, in local frame.
	// Must be well-defined for d != 0; ties may be broken
	// deterministically but must be stable across calls with equal d.
	Support(d mgl64.Vec3) mgl64.Vec3
	// Volume returns the shape's analytic volume.
	Volume() float64
	// CenterOfMass returns the local-frame centroid.
	CenterOfMass() mgl64.Vec3
	// Inertia returns the local-frame inertia tensor for the given mass.
	Inertia(mass float64) mgl64.Mat3
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

func finiteVec3(v mgl64.Vec3) bool {
	return finite(v.X()) && finite(v.Y()) && finite(v.Z())
}
