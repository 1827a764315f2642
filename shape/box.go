package shape

import (
	"math"

	"github.com/gear/fcl/internal/errs"
	"github.com/go-gl/mathgl/mgl64"
)

// Box is an axis-aligned (in its local frame) box of half-extents
// hx, hy, hz. Grounded on actor/shape.go's Box.
type Box struct {
	HalfExtents mgl64.Vec3
	aabb        AABB
}

// NewBox validates and constructs a Box. Half-extents must be finite
// and non-negative (spec §3 Invariant).
func NewBox(halfExtents mgl64.Vec3) (*Box, error) {
	if !finiteVec3(halfExtents) {
		return nil, errs.Validation("box: half-extents must be finite, got %v", halfExtents)
	}
	if halfExtents.X() < 0 || halfExtents.Y() < 0 || halfExtents.Z() < 0 {
		return nil, errs.Validation("box: half-extents must be non-negative, got %v", halfExtents)
	}
	b := &Box{HalfExtents: halfExtents}
	b.aabb = AABB{Min: halfExtents.Mul(-1), Max: halfExtents}
	return b, nil
}

func (b *Box) Type() NodeType { return TypeBox }

func (b *Box) LocalAABB() AABB { return b.aabb }

func (b *Box) AABBCenterRadius() (mgl64.Vec3, float64) {
	return mgl64.Vec3{}, b.HalfExtents.Len()
}

func (b *Box) Support(d mgl64.Vec3) mgl64.Vec3 {
	hx, hy, hz := b.HalfExtents.X(), b.HalfExtents.Y(), b.HalfExtents.Z()
	if d.X() < 0 {
		hx = -hx
	}
	if d.Y() < 0 {
		hy = -hy
	}
	if d.Z() < 0 {
		hz = -hz
	}
	return mgl64.Vec3{hx, hy, hz}
}

func (b *Box) Volume() float64 {
	return 8.0 * b.HalfExtents.X() * b.HalfExtents.Y() * b.HalfExtents.Z()
}

func (b *Box) CenterOfMass() mgl64.Vec3 { return mgl64.Vec3{} }

func (b *Box) Inertia(mass float64) mgl64.Mat3 {
	x, y, z := b.HalfExtents.X()*2, b.HalfExtents.Y()*2, b.HalfExtents.Z()*2
	factor := mass / 12.0
	return mgl64.Mat3{
		factor * (y*y + z*z), 0, 0,
		0, factor * (x*x + z*z), 0,
		0, 0, factor * (x*x + y*y),
	}
}

// Corners returns the 8 local-frame corners of the box.
func (b *Box) Corners() [8]mgl64.Vec3 {
	hx, hy, hz := b.HalfExtents.X(), b.HalfExtents.Y(), b.HalfExtents.Z()
	return [8]mgl64.Vec3{
		{-hx, -hy, -hz}, {hx, -hy, -hz}, {-hx, hy, -hz}, {hx, hy, -hz},
		{-hx, -hy, hz}, {hx, -hy, hz}, {-hx, hy, hz}, {hx, hy, hz},
	}
}

// FaceNormals returns the box's 6 outward face normals in local frame.
func (b *Box) FaceNormals() [6]mgl64.Vec3 {
	return [6]mgl64.Vec3{{1, 0, 0}, {-1, 0, 0}, {0, 1, 0}, {0, -1, 0}, {0, 0, 1}, {0, 0, -1}}
}

// FaceVertices returns the 4 local-frame vertices of the face whose
// outward normal best matches direction, ordered around the face.
// Grounded on actor/shape.go's GetContactFeature.
func (b *Box) FaceVertices(direction mgl64.Vec3) [4]mgl64.Vec3 {
	dir := direction.Normalize()
	hx, hy, hz := b.HalfExtents.X(), b.HalfExtents.Y(), b.HalfExtents.Z()

	faces := [6][4]mgl64.Vec3{
		{{hx, -hy, -hz}, {hx, -hy, hz}, {hx, hy, hz}, {hx, hy, -hz}},       // +X
		{{-hx, -hy, hz}, {-hx, -hy, -hz}, {-hx, hy, -hz}, {-hx, hy, hz}},   // -X
		{{-hx, hy, -hz}, {-hx, hy, hz}, {hx, hy, hz}, {hx, hy, -hz}},       // +Y
		{{-hx, -hy, hz}, {hx, -hy, hz}, {hx, -hy, -hz}, {-hx, -hy, -hz}},   // -Y
		{{-hx, -hy, hz}, {-hx, hy, hz}, {hx, hy, hz}, {hx, -hy, hz}},       // +Z
		{{hx, -hy, -hz}, {hx, hy, -hz}, {-hx, hy, -hz}, {-hx, -hy, -hz}},   // -Z
	}
	normals := b.FaceNormals()

	best, bestIdx := math.Inf(-1), 0
	for i, n := range normals {
		if dot := dir.Dot(n); dot > best {
			best, bestIdx = dot, i
		}
	}
	return faces[bestIdx]
}

// Sphere is a ball of a given radius, centered at the local origin.
// Grounded on actor/shape.go's Sphere.
type Sphere struct {
	Radius float64
	aabb   AABB
}

// NewSphere validates and constructs a Sphere. Radius must be finite
// and strictly positive (a zero-radius sphere is a validation
// failure, per spec §7).
func NewSphere(radius float64) (*Sphere, error) {
	if !finite(radius) {
		return nil, errs.Validation("sphere: radius must be finite, got %v", radius)
	}
	if radius <= 0 {
		return nil, errs.Validation("sphere: radius must be positive, got %v", radius)
	}
	r := mgl64.Vec3{radius, radius, radius}
	return &Sphere{Radius: radius, aabb: AABB{Min: r.Mul(-1), Max: r}}, nil
}

func (s *Sphere) Type() NodeType { return TypeSphere }

func (s *Sphere) LocalAABB() AABB { return s.aabb }

func (s *Sphere) AABBCenterRadius() (mgl64.Vec3, float64) {
	return mgl64.Vec3{}, s.Radius
}

func (s *Sphere) Support(d mgl64.Vec3) mgl64.Vec3 {
	if d.LenSqr() == 0 {
		return mgl64.Vec3{}
	}
	return d.Normalize().Mul(s.Radius)
}

func (s *Sphere) Volume() float64 {
	return (4.0 / 3.0) * math.Pi * s.Radius * s.Radius * s.Radius
}

func (s *Sphere) CenterOfMass() mgl64.Vec3 { return mgl64.Vec3{} }

func (s *Sphere) Inertia(mass float64) mgl64.Mat3 {
	i := (2.0 / 5.0) * mass * s.Radius * s.Radius
	return mgl64.Mat3{i, 0, 0, 0, i, 0, 0, 0, i}
}
