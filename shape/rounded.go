package shape

import (
	"math"

	"github.com/gear/fcl/internal/errs"
	"github.com/go-gl/mathgl/mgl64"
)

// Ellipsoid has three positive radii along the local axes. New
// relative to the teacher; support formula per spec §4.A:
// p_i = radii_i² · d_i / sqrt(Σ radii_j² d_j²).
type Ellipsoid struct {
	Radii mgl64.Vec3
	aabb  AABB
}

func NewEllipsoid(radii mgl64.Vec3) (*Ellipsoid, error) {
	if !finiteVec3(radii) {
		return nil, errs.Validation("ellipsoid: radii must be finite, got %v", radii)
	}
	if radii.X() <= 0 || radii.Y() <= 0 || radii.Z() <= 0 {
		return nil, errs.Validation("ellipsoid: radii must be positive, got %v", radii)
	}
	return &Ellipsoid{Radii: radii, aabb: AABB{Min: radii.Mul(-1), Max: radii}}, nil
}

func (e *Ellipsoid) Type() NodeType { return TypeEllipsoid }

func (e *Ellipsoid) LocalAABB() AABB { return e.aabb }

func (e *Ellipsoid) AABBCenterRadius() (mgl64.Vec3, float64) {
	return mgl64.Vec3{}, e.Radii.Len()
}

func (e *Ellipsoid) Support(d mgl64.Vec3) mgl64.Vec3 {
	rx2, ry2, rz2 := e.Radii.X()*e.Radii.X(), e.Radii.Y()*e.Radii.Y(), e.Radii.Z()*e.Radii.Z()
	num := mgl64.Vec3{rx2 * d.X(), ry2 * d.Y(), rz2 * d.Z()}
	denom := math.Sqrt(rx2*d.X()*d.X() + ry2*d.Y()*d.Y() + rz2*d.Z()*d.Z())
	if denom == 0 {
		return mgl64.Vec3{}
	}
	return num.Mul(1.0 / denom)
}

func (e *Ellipsoid) Volume() float64 {
	return (4.0 / 3.0) * math.Pi * e.Radii.X() * e.Radii.Y() * e.Radii.Z()
}

func (e *Ellipsoid) CenterOfMass() mgl64.Vec3 { return mgl64.Vec3{} }

func (e *Ellipsoid) Inertia(mass float64) mgl64.Mat3 {
	x, y, z := e.Radii.X(), e.Radii.Y(), e.Radii.Z()
	factor := mass / 5.0
	return mgl64.Mat3{
		factor * (y*y + z*z), 0, 0,
		0, factor * (x*x + z*z), 0,
		0, 0, factor * (x*x + y*y),
	}
}

// Capsule is a sphere swept along the local Z axis between
// -halfLength and +halfLength. Support is the sphere support plus the
// half-length cap chosen by sign(d_z), per spec §4.A.
type Capsule struct {
	Radius     float64
	HalfLength float64
	aabb       AABB
}

func NewCapsule(radius, halfLength float64) (*Capsule, error) {
	if !finite(radius) || !finite(halfLength) {
		return nil, errs.Validation("capsule: radius/half-length must be finite, got (%v, %v)", radius, halfLength)
	}
	if radius <= 0 {
		return nil, errs.Validation("capsule: radius must be positive, got %v", radius)
	}
	if halfLength < 0 {
		return nil, errs.Validation("capsule: half-length must be non-negative, got %v", halfLength)
	}
	r := mgl64.Vec3{radius, radius, radius + halfLength}
	return &Capsule{Radius: radius, HalfLength: halfLength, aabb: AABB{Min: r.Mul(-1), Max: r}}, nil
}

func (c *Capsule) Type() NodeType { return TypeCapsule }

func (c *Capsule) LocalAABB() AABB { return c.aabb }

func (c *Capsule) AABBCenterRadius() (mgl64.Vec3, float64) {
	return mgl64.Vec3{}, c.Radius + c.HalfLength
}

func (c *Capsule) Support(d mgl64.Vec3) mgl64.Vec3 {
	var capZ float64
	if d.Z() >= 0 {
		capZ = c.HalfLength
	} else {
		capZ = -c.HalfLength
	}
	sphere := Sphere{Radius: c.Radius}
	s := sphere.Support(d)
	return mgl64.Vec3{s.X(), s.Y(), s.Z() + capZ}
}

func (c *Capsule) Volume() float64 {
	sphereVol := (4.0 / 3.0) * math.Pi * c.Radius * c.Radius * c.Radius
	cylinderVol := math.Pi * c.Radius * c.Radius * (2 * c.HalfLength)
	return sphereVol + cylinderVol
}

func (c *Capsule) CenterOfMass() mgl64.Vec3 { return mgl64.Vec3{} }

func (c *Capsule) Inertia(mass float64) mgl64.Mat3 {
	// Approximate as a cylinder plus two hemispherical caps, using the
	// standard capsule inertia decomposition.
	r, h := c.Radius, 2*c.HalfLength
	cylVol := math.Pi * r * r * h
	capVol := (4.0 / 3.0) * math.Pi * r * r * r
	totalVol := cylVol + capVol
	if totalVol == 0 {
		return mgl64.Mat3{}
	}
	cylMass := mass * cylVol / totalVol
	capMass := mass * capVol / totalVol

	iCylZ := 0.5 * cylMass * r * r
	iCylXY := cylMass*(3*r*r+h*h)/12.0

	// Two hemispheres combined as one sphere, offset along Z.
	iCapZ := 0.4 * capMass * r * r
	d := c.HalfLength + (3.0/8.0)*r
	iCapXY := 0.4*capMass*r*r + capMass*d*d

	ixx := iCylXY + iCapXY
	izz := iCylZ + iCapZ
	return mgl64.Mat3{ixx, 0, 0, 0, ixx, 0, 0, 0, izz}
}

// Cone has its apex at +Z and its disc base at -Z, half-height h and
// base radius r. Support compares the apex against the rim.
type Cone struct {
	Radius     float64
	HalfHeight float64
	aabb       AABB
}

func NewCone(radius, halfHeight float64) (*Cone, error) {
	if !finite(radius) || !finite(halfHeight) {
		return nil, errs.Validation("cone: radius/half-height must be finite, got (%v, %v)", radius, halfHeight)
	}
	if radius <= 0 || halfHeight <= 0 {
		return nil, errs.Validation("cone: radius and half-height must be positive, got (%v, %v)", radius, halfHeight)
	}
	r := mgl64.Vec3{radius, radius, halfHeight}
	return &Cone{Radius: radius, HalfHeight: halfHeight, aabb: AABB{Min: mgl64.Vec3{-radius, -radius, -halfHeight}, Max: r}}, nil
}

func (c *Cone) Type() NodeType { return TypeCone }

func (c *Cone) LocalAABB() AABB { return c.aabb }

func (c *Cone) AABBCenterRadius() (mgl64.Vec3, float64) {
	center := mgl64.Vec3{0, 0, 0}
	return center, c.aabb.Radius()
}

func (c *Cone) Support(d mgl64.Vec3) mgl64.Vec3 {
	apex := mgl64.Vec3{0, 0, c.HalfHeight}
	dxy := math.Hypot(d.X(), d.Y())
	var rim mgl64.Vec3
	if dxy > 1e-12 {
		scale := c.Radius / dxy
		rim = mgl64.Vec3{d.X() * scale, d.Y() * scale, -c.HalfHeight}
	} else {
		rim = mgl64.Vec3{c.Radius, 0, -c.HalfHeight}
	}
	if apex.Dot(d) >= rim.Dot(d) {
		return apex
	}
	return rim
}

func (c *Cone) Volume() float64 {
	return (1.0 / 3.0) * math.Pi * c.Radius * c.Radius * (2 * c.HalfHeight)
}

func (c *Cone) CenterOfMass() mgl64.Vec3 {
	// Centroid of a solid cone is h/4 from the base, along the axis
	// toward the apex; base is at -HalfHeight, apex at +HalfHeight.
	h := 2 * c.HalfHeight
	return mgl64.Vec3{0, 0, -c.HalfHeight + h/4.0}
}

func (c *Cone) Inertia(mass float64) mgl64.Mat3 {
	r, h := c.Radius, 2*c.HalfHeight
	izz := 0.3 * mass * r * r
	ixx := mass * (3.0/20.0*r*r + 3.0/80.0*h*h)
	return mgl64.Mat3{ixx, 0, 0, 0, ixx, 0, 0, 0, izz}
}

// Cylinder has radius r and half-height h along the local Z axis.
// Support is the disc support plus the ±Z cap chosen by sign(d_z).
type Cylinder struct {
	Radius     float64
	HalfHeight float64
	aabb       AABB
}

func NewCylinder(radius, halfHeight float64) (*Cylinder, error) {
	if !finite(radius) || !finite(halfHeight) {
		return nil, errs.Validation("cylinder: radius/half-height must be finite, got (%v, %v)", radius, halfHeight)
	}
	if radius <= 0 || halfHeight <= 0 {
		return nil, errs.Validation("cylinder: radius and half-height must be positive, got (%v, %v)", radius, halfHeight)
	}
	r := mgl64.Vec3{radius, radius, halfHeight}
	return &Cylinder{Radius: radius, HalfHeight: halfHeight, aabb: AABB{Min: r.Mul(-1), Max: r}}, nil
}

func (c *Cylinder) Type() NodeType { return TypeCylinder }

func (c *Cylinder) LocalAABB() AABB { return c.aabb }

func (c *Cylinder) AABBCenterRadius() (mgl64.Vec3, float64) {
	return mgl64.Vec3{}, c.aabb.Radius()
}

func (c *Cylinder) Support(d mgl64.Vec3) mgl64.Vec3 {
	dxy := math.Hypot(d.X(), d.Y())
	var x, y float64
	if dxy > 1e-12 {
		x = c.Radius * d.X() / dxy
		y = c.Radius * d.Y() / dxy
	} else {
		x, y = c.Radius, 0
	}
	z := c.HalfHeight
	if d.Z() < 0 {
		z = -c.HalfHeight
	}
	return mgl64.Vec3{x, y, z}
}

func (c *Cylinder) Volume() float64 {
	return math.Pi * c.Radius * c.Radius * (2 * c.HalfHeight)
}

func (c *Cylinder) CenterOfMass() mgl64.Vec3 { return mgl64.Vec3{} }

func (c *Cylinder) Inertia(mass float64) mgl64.Mat3 {
	r, h := c.Radius, 2*c.HalfHeight
	izz := 0.5 * mass * r * r
	ixx := mass * (3*r*r + h*h) / 12.0
	return mgl64.Mat3{ixx, 0, 0, 0, ixx, 0, 0, 0, izz}
}
