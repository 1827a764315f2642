package pair

import (
	"math"

	"github.com/gear/fcl/shape"
	"github.com/go-gl/mathgl/mgl64"
)

// normalEpsilon is the minimum center separation before a pair is
// treated as concentric and handed the zero-vector normal convention
// spec §9's Open Question describes.
const normalEpsilon = 1e-9

// SphereSphere is the exact closed form of spec §4.E: collision iff
// the center distance is at most the combined radius; depth is the
// combined radius minus that distance; contact position is weighted
// by each radius so it lies on the line between the centers,
// proportionally nearer the smaller sphere's surface.
func SphereSphere(ta shape.Transform, a *shape.Sphere, tb shape.Transform, b *shape.Sphere, opts Options) Result {
	ca, cb := ta.Position, tb.Position
	delta := cb.Sub(ca)
	dist := delta.Len()
	depth := a.Radius + b.Radius - dist

	if depth < 0 {
		return Result{}
	}

	var normal mgl64.Vec3
	if dist > normalEpsilon {
		normal = delta.Mul(1 / dist)
	}

	res := Result{Collision: true, Normal: normal, Depth: depth}
	if !opts.EnableContact {
		return res
	}

	onA := ca.Add(normal.Mul(a.Radius))
	onB := cb.Sub(normal.Mul(b.Radius))
	// Position is the radius-ratio split of the center-to-center line
	// (spec §8 scenario 2), not the midpoint of the two surface
	// witnesses: those coincide only when the radii match or the spheres
	// just touch, and otherwise differ by depth·(r1−r2)/(2(r1+r2)).
	position := ca.Add(delta.Mul(a.Radius / (a.Radius + b.Radius)))
	res.Contacts = []Contact{{Position: position, OnA: onA, OnB: onB}}
	return res
}

// SphereBox is the closed form of spec §4.E for a sphere against a
// box: the closest point on the box surface to the sphere center
// (clamped in the box's local frame), tested against the radius. When
// the sphere center lies inside the box, the nearest face by
// penetration stands in for the closest surface point — the same
// "deepest axis wins" idea box.go's SAT uses for face contacts.
func SphereBox(ta shape.Transform, a *shape.Sphere, tb shape.Transform, b *shape.Box, opts Options) Result {
	centerLocal := tb.InversePoint(ta.Position)
	he := b.HalfExtents

	clamped := mgl64.Vec3{
		clamp(centerLocal.X(), -he.X(), he.X()),
		clamp(centerLocal.Y(), -he.Y(), he.Y()),
		clamp(centerLocal.Z(), -he.Z(), he.Z()),
	}
	diff := centerLocal.Sub(clamped)
	dist := diff.Len()

	var normalLocal mgl64.Vec3
	var depth float64
	if dist > 1e-9 {
		if dist > a.Radius {
			return Result{}
		}
		normalLocal = diff.Mul(-1 / dist)
		depth = a.Radius - dist
	} else {
		// Center is inside the box: push out along the axis with the
		// least penetration, exactly as box.go's SAT face test does.
		penetration := [3]float64{he.X() - math.Abs(centerLocal.X()), he.Y() - math.Abs(centerLocal.Y()), he.Z() - math.Abs(centerLocal.Z())}
		axis := 0
		for i := 1; i < 3; i++ {
			if penetration[i] < penetration[axis] {
				axis = i
			}
		}
		sign := 1.0
		if centerLocal[axis] < 0 {
			sign = -1.0
		}
		var axisVec mgl64.Vec3
		axisVec[axis] = sign
		normalLocal = axisVec.Mul(-1)
		depth = penetration[axis] + a.Radius
		clamped = centerLocal
		clamped[axis] = sign * he[axis]
	}

	normal := tb.Direction(normalLocal)
	res := Result{Collision: true, Normal: normal, Depth: depth}
	if !opts.EnableContact {
		return res
	}

	onB := tb.Point(clamped)
	onA := ta.Position.Add(normal.Mul(a.Radius))
	res.Contacts = []Contact{{Position: onA.Add(onB).Mul(0.5), OnA: onA, OnB: onB}}
	return res
}

// SphereCapsule closes the sphere center against the capsule's core
// segment (along local Z, length 2·HalfLength) and reuses the
// sphere-sphere formula at that closest point — a capsule's surface
// is exactly a sphere of Radius swept along that segment.
func SphereCapsule(ta shape.Transform, a *shape.Sphere, tb shape.Transform, b *shape.Capsule, opts Options) Result {
	centerLocal := tb.InversePoint(ta.Position)
	p0 := mgl64.Vec3{0, 0, -b.HalfLength}
	p1 := mgl64.Vec3{0, 0, b.HalfLength}
	closestLocal, _ := ClosestPointOnSegment(centerLocal, p0, p1)

	delta := centerLocal.Sub(closestLocal)
	dist := delta.Len()
	depth := a.Radius + b.Radius - dist
	if depth < 0 {
		return Result{}
	}

	var normalLocal mgl64.Vec3
	if dist > normalEpsilon {
		normalLocal = delta.Mul(-1 / dist)
	}
	normal := tb.Direction(normalLocal)

	res := Result{Collision: true, Normal: normal, Depth: depth}
	if !opts.EnableContact {
		return res
	}
	onA := ta.Position.Add(normal.Mul(a.Radius))
	onB := tb.Point(closestLocal).Sub(normal.Mul(b.Radius))
	res.Contacts = []Contact{{Position: onA.Add(onB).Mul(0.5), OnA: onA, OnB: onB}}
	return res
}

// SphereCylinder approximates the closest surface point of the
// cylinder to the sphere center: clamp the radial (xy) distance to
// the disc radius and the axial (z) coordinate to the cylinder's
// half-height. Exact everywhere except when the center falls strictly
// inside the cylinder volume, where the nearest-face fallback used by
// SphereBox's interior case applies along the radial/axial split.
func SphereCylinder(ta shape.Transform, a *shape.Sphere, tb shape.Transform, b *shape.Cylinder, opts Options) Result {
	centerLocal := tb.InversePoint(ta.Position)
	radial := mgl64.Vec3{centerLocal.X(), centerLocal.Y(), 0}
	radialLen := radial.Len()

	inside := radialLen <= b.Radius && math.Abs(centerLocal.Z()) <= b.HalfHeight
	var closestLocal mgl64.Vec3
	if inside {
		radialPenetration := b.Radius - radialLen
		axialPenetration := b.HalfHeight - math.Abs(centerLocal.Z())
		if radialPenetration < axialPenetration {
			if radialLen > 1e-9 {
				closestLocal = radial.Mul(b.Radius / radialLen)
			} else {
				closestLocal = mgl64.Vec3{b.Radius, 0, 0}
			}
			closestLocal[2] = centerLocal.Z()
		} else {
			z := b.HalfHeight
			if centerLocal.Z() < 0 {
				z = -b.HalfHeight
			}
			closestLocal = mgl64.Vec3{centerLocal.X(), centerLocal.Y(), z}
		}
	} else {
		var xy mgl64.Vec3
		if radialLen > b.Radius {
			xy = radial.Mul(b.Radius / radialLen)
		} else {
			xy = radial
		}
		z := clamp(centerLocal.Z(), -b.HalfHeight, b.HalfHeight)
		closestLocal = mgl64.Vec3{xy.X(), xy.Y(), z}
	}

	return sphereAgainstLocalPoint(ta, a, tb, 0, closestLocal, inside, opts)
}

// SphereCone approximates the cone surface the same way SphereCylinder
// does, clamping to the linear radius-vs-z profile instead of a
// constant radius.
func SphereCone(ta shape.Transform, a *shape.Sphere, tb shape.Transform, b *shape.Cone, opts Options) Result {
	centerLocal := tb.InversePoint(ta.Position)
	z := clamp(centerLocal.Z(), -b.HalfHeight, b.HalfHeight)
	t := (b.HalfHeight - z) / (2 * b.HalfHeight)
	radiusAtZ := b.Radius * t

	radial := mgl64.Vec3{centerLocal.X(), centerLocal.Y(), 0}
	radialLen := radial.Len()

	var xy mgl64.Vec3
	if radialLen > radiusAtZ && radialLen > 1e-9 {
		xy = radial.Mul(radiusAtZ / radialLen)
	} else {
		xy = radial
	}
	closestLocal := mgl64.Vec3{xy.X(), xy.Y(), z}
	inside := radialLen <= radiusAtZ && math.Abs(centerLocal.Z()) <= b.HalfHeight

	return sphereAgainstLocalPoint(ta, a, tb, 0, closestLocal, inside, opts)
}

// sphereAgainstLocalPoint finishes a sphere-vs-closed-form-surface
// test once the candidate closest point on the other shape (in its
// local frame) has been found: it measures the distance, builds the
// world normal/contact, and adds extraRadius to the sphere's radius in
// the depth (SphereCylinder and SphereCone both pass 0).
func sphereAgainstLocalPoint(ta shape.Transform, a *shape.Sphere, tb shape.Transform, extraRadius float64, closestLocal mgl64.Vec3, inside bool, opts Options) Result {
	centerLocal := tb.InversePoint(ta.Position)
	diff := centerLocal.Sub(closestLocal)
	dist := diff.Len()

	var depth float64
	var normalLocal mgl64.Vec3
	if inside {
		depth = a.Radius + extraRadius + dist
		if dist > 1e-9 {
			normalLocal = diff.Mul(-1 / dist)
		}
	} else {
		depth = a.Radius + extraRadius - dist
		if depth < 0 {
			return Result{}
		}
		if dist > 1e-9 {
			normalLocal = diff.Mul(-1 / dist)
		}
	}

	normal := tb.Direction(normalLocal)
	res := Result{Collision: true, Normal: normal, Depth: depth}
	if !opts.EnableContact {
		return res
	}
	onA := ta.Position.Add(normal.Mul(a.Radius))
	onB := tb.Point(closestLocal)
	res.Contacts = []Contact{{Position: onA.Add(onB).Mul(0.5), OnA: onA, OnB: onB}}
	return res
}
