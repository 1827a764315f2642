package shape

import "github.com/go-gl/mathgl/mgl64"

// Transform is a rigid transform: a rotation followed by a translation,
// applied as x ↦ R·x + t. Identity is the unit rotation and zero
// translation. Shapes are immutable once constructed; transforms are
// supplied per call and never retained inside the core (spec §3).
type Transform struct {
	Position mgl64.Vec3
	Rotation mgl64.Quat
}

// Identity returns the identity rigid transform.
func Identity() Transform {
	return Transform{Rotation: mgl64.QuatIdent()}
}

// Point maps a local-frame point into world space.
func (t Transform) Point(p mgl64.Vec3) mgl64.Vec3 {
	return t.Rotation.Rotate(p).Add(t.Position)
}

// Direction rotates a direction (no translation) into world space.
func (t Transform) Direction(d mgl64.Vec3) mgl64.Vec3 {
	return t.Rotation.Rotate(d)
}

// InverseDirection rotates a world-space direction into local space,
// i.e. by the transpose (inverse) of the rotation.
func (t Transform) InverseDirection(d mgl64.Vec3) mgl64.Vec3 {
	return t.Rotation.Conjugate().Rotate(d)
}

// InversePoint maps a world-space point into local space.
func (t Transform) InversePoint(p mgl64.Vec3) mgl64.Vec3 {
	return t.Rotation.Conjugate().Rotate(p.Sub(t.Position))
}

// Mat3 returns the transform's rotation as a 3x3 matrix.
func (t Transform) Mat3() mgl64.Mat3 {
	return t.Rotation.Mat4().Mat3()
}
