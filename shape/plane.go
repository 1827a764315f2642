package shape

import (
	"math"

	"github.com/gear/fcl/internal/errs"
	"github.com/go-gl/mathgl/mgl64"
)

const planeNormalUnitTolerance = 1e-6

// boxSupportExtent is the half-size of the large finite box used to
// stand in for an infinite Plane/Halfspace when a support query needs
// one (the GJK/EPA fallback path). Grounded on actor/shape.go's Plane
// support, which documents the same "for simplicity, a large
// width/height box" approximation.
const boxSupportExtent = 1e6

// Plane is an infinite two-sided plane: the set of points x with
// n·x = d, where n is a unit normal and d a signed offset.
type Plane struct {
	Normal mgl64.Vec3
	Offset float64
}

// NewPlane validates and constructs a Plane. The normal must already
// be unit length (spec §3); this core does not silently renormalize a
// caller's input.
func NewPlane(normal mgl64.Vec3, offset float64) (*Plane, error) {
	if !finiteVec3(normal) || !finite(offset) {
		return nil, errs.Validation("plane: normal/offset must be finite, got (%v, %v)", normal, offset)
	}
	if math.Abs(normal.Len()-1) > planeNormalUnitTolerance {
		return nil, errs.Validation("plane: normal must be unit length, got len=%v", normal.Len())
	}
	return &Plane{Normal: normal, Offset: offset}, nil
}

func (p *Plane) Type() NodeType { return TypePlane }

func (p *Plane) LocalAABB() AABB {
	base := p.Normal.Mul(p.Offset)
	e := mgl64.Vec3{boxSupportExtent, boxSupportExtent, boxSupportExtent}
	return AABB{Min: base.Sub(e), Max: base.Add(e)}
}

func (p *Plane) AABBCenterRadius() (mgl64.Vec3, float64) {
	return p.Normal.Mul(p.Offset), boxSupportExtent * math.Sqrt(3)
}

// Support stands in for the plane with a large finite box so GJK/EPA
// can still query it like any other convex set when no closed-form
// routine applies. Grounded on actor/shape.go's Plane.Support.
func (p *Plane) Support(d mgl64.Vec3) mgl64.Vec3 {
	t1, t2 := TangentBasis(p.Normal)
	onPlane := p.Normal.Mul(p.Offset)
	e := boxSupportExtent
	along := func(axis mgl64.Vec3) float64 {
		if axis.Dot(d) < 0 {
			return -e
		}
		return e
	}
	result := onPlane.Add(t1.Mul(along(t1))).Add(t2.Mul(along(t2)))
	if d.Dot(p.Normal) > 0 {
		result = result.Add(p.Normal.Mul(1e-3))
	} else {
		result = result.Sub(p.Normal.Mul(1e-3))
	}
	return result
}

func (p *Plane) Volume() float64 { return math.Inf(1) }

func (p *Plane) CenterOfMass() mgl64.Vec3 { return p.Normal.Mul(p.Offset) }

func (p *Plane) Inertia(mass float64) mgl64.Mat3 { return mgl64.Mat3{} }

// Halfspace is the set of points x with n·x <= d (inside); n is a
// unit normal, d a signed offset. Geometrically identical to Plane
// except it is solid on the inside of the boundary.
type Halfspace struct {
	Normal mgl64.Vec3
	Offset float64
}

func NewHalfspace(normal mgl64.Vec3, offset float64) (*Halfspace, error) {
	if !finiteVec3(normal) || !finite(offset) {
		return nil, errs.Validation("halfspace: normal/offset must be finite, got (%v, %v)", normal, offset)
	}
	if math.Abs(normal.Len()-1) > planeNormalUnitTolerance {
		return nil, errs.Validation("halfspace: normal must be unit length, got len=%v", normal.Len())
	}
	return &Halfspace{Normal: normal, Offset: offset}, nil
}

func (h *Halfspace) Type() NodeType { return TypeHalfspace }

func (h *Halfspace) LocalAABB() AABB {
	p := Plane{Normal: h.Normal, Offset: h.Offset}
	return p.LocalAABB()
}

func (h *Halfspace) AABBCenterRadius() (mgl64.Vec3, float64) {
	p := Plane{Normal: h.Normal, Offset: h.Offset}
	return p.AABBCenterRadius()
}

// Support is the plane's large-box support point, moved 1e-3 along
// -normal when d points to the outward side, so the returned points
// lie on or just inside the boundary plane.
func (h *Halfspace) Support(d mgl64.Vec3) mgl64.Vec3 {
	p := Plane{Normal: h.Normal, Offset: h.Offset}
	s := p.Support(d)
	if d.Dot(h.Normal) > 0 {
		// The farthest point along an outward direction is still on
		// the boundary plane, capped there since the interior extends
		// only toward -normal.
		s = s.Sub(h.Normal.Mul(1e-3))
	}
	return s
}

func (h *Halfspace) Volume() float64 { return math.Inf(1) }

func (h *Halfspace) CenterOfMass() mgl64.Vec3 { return h.Normal.Mul(h.Offset) }

func (h *Halfspace) Inertia(mass float64) mgl64.Mat3 { return mgl64.Mat3{} }

// TangentBasis constructs an orthonormal tangent basis from a unit
// normal. Grounded on epa/manifold.go's getTangentBasis and
// actor/shape.go's getTangentBasis (both teacher copies agree).
func TangentBasis(normal mgl64.Vec3) (mgl64.Vec3, mgl64.Vec3) {
	var t1 mgl64.Vec3
	if math.Abs(normal.X()) > 0.9 {
		t1 = mgl64.Vec3{0, 1, 0}
	} else {
		t1 = mgl64.Vec3{1, 0, 0}
	}
	t1 = t1.Sub(normal.Mul(t1.Dot(normal))).Normalize()
	t2 := normal.Cross(t1).Normalize()
	return t1, t2
}
