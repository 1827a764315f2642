// Package support implements the support and Minkowski-difference
// oracle of spec §4.B: for any (shape, transform, direction) it
// returns the farthest point, and for a pair of (shape, transform)
// values it returns a point on their Minkowski difference.
//
// Grounded on gjk.MinkowskiSupport and actor.RigidBody.SupportWorld in
// the teacher, generalized away from *actor.RigidBody (a dynamics
// concept out of scope here) to plain shape.Shape + shape.Transform
// pairs.
package support

import (
	"github.com/gear/fcl/shape"
	"github.com/go-gl/mathgl/mgl64"
)

// Body pairs an immutable shape with the rigid transform it is placed
// at for this call. It is a value, not a retained reference: the core
// never keeps a Body around between calls (spec §5).
type Body struct {
	Shape     shape.Shape
	Transform shape.Transform
}

// World returns the support point of b in world-space direction d,
// transforming d into local frame, querying the shape, and
// transforming the result back to world space. Homogeneous of degree
// 0 in d: scaling d leaves the returned point unchanged (spec §4.B
// Invariant).
func (b Body) World(d mgl64.Vec3) mgl64.Vec3 {
	local := b.Transform.InverseDirection(d)
	s := b.Shape.Support(local)
	return b.Transform.Point(s)
}

// Oracle is the Minkowski-difference support function for a pair of
// bodies: w = support_A(d) - support_B(-d).
type Oracle struct {
	A, B Body
}

// Support returns a point on the Minkowski difference A - B farthest
// along direction d.
func (o Oracle) Support(d mgl64.Vec3) mgl64.Vec3 {
	return o.A.World(d).Sub(o.B.World(d.Mul(-1)))
}

// SupportVertices additionally returns the two world-space witness
// points (one on each shape) that produced the Minkowski-difference
// point, so callers can recover contact witnesses.
func (o Oracle) SupportVertices(d mgl64.Vec3) (w, pointOnA, pointOnB mgl64.Vec3) {
	pointOnA = o.A.World(d)
	pointOnB = o.B.World(d.Mul(-1))
	return pointOnA.Sub(pointOnB), pointOnA, pointOnB
}
