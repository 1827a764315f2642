package pair

import (
	"math"
	"testing"

	"github.com/gear/fcl/shape"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func identity(pos mgl64.Vec3) shape.Transform {
	return shape.Transform{Position: pos, Rotation: mgl64.QuatIdent()}
}

// TestSphereSphere_Scenario1 mirrors spec §8 scenario 1: two unit
// spheres whose centers are 1.5 apart overlap by 0.5 along +X.
func TestSphereSphere_Scenario1(t *testing.T) {
	a, err := shape.NewSphere(1)
	require.NoError(t, err)
	b, err := shape.NewSphere(1)
	require.NoError(t, err)

	res := SphereSphere(identity(mgl64.Vec3{0, 0, 0}), a, identity(mgl64.Vec3{1.5, 0, 0}), b, Options{EnableContact: true, MaxContacts: 4})

	require.True(t, res.Collision)
	assert.InDelta(t, 0.5, res.Depth, 1e-9)
	assert.InDelta(t, 1, res.Normal.X(), 1e-9)
	require.Len(t, res.Contacts, 1)
	assert.InDelta(t, 0, res.Contacts[0].Position.Y(), 1e-9)
}

// TestSphereSphere_Scenario2 mirrors spec §8 scenario 2: Sphere(20) at
// the origin vs Sphere(10) at (29.9,0,0). Unlike scenario 1's equal
// radii, this exercises the radius-weighted contact position split —
// the midpoint of the two surface witnesses would give a different
// (wrong) answer here.
func TestSphereSphere_Scenario2(t *testing.T) {
	a, err := shape.NewSphere(20)
	require.NoError(t, err)
	b, err := shape.NewSphere(10)
	require.NoError(t, err)

	res := SphereSphere(identity(mgl64.Vec3{0, 0, 0}), a, identity(mgl64.Vec3{29.9, 0, 0}), b, Options{EnableContact: true, MaxContacts: 1})

	require.True(t, res.Collision)
	assert.InDelta(t, 0.1, res.Depth, 1e-9)
	require.Len(t, res.Contacts, 1)
	assert.InDelta(t, 19.9333, res.Contacts[0].Position.X(), 1e-3)
}

func TestSphereSphere_NoCollision(t *testing.T) {
	a, err := shape.NewSphere(1)
	require.NoError(t, err)
	b, err := shape.NewSphere(1)
	require.NoError(t, err)

	res := SphereSphere(identity(mgl64.Vec3{0, 0, 0}), a, identity(mgl64.Vec3{5, 0, 0}), b, Options{})
	assert.False(t, res.Collision)
}

// TestSphereSphere_Concentric exercises spec §9's degenerate case: the
// zero normal with the full combined-radius depth, not a fabricated
// direction.
func TestSphereSphere_Concentric(t *testing.T) {
	a, err := shape.NewSphere(1)
	require.NoError(t, err)
	b, err := shape.NewSphere(2)
	require.NoError(t, err)

	res := SphereSphere(identity(mgl64.Vec3{0, 0, 0}), a, identity(mgl64.Vec3{0, 0, 0}), b, Options{})
	require.True(t, res.Collision)
	assert.Equal(t, mgl64.Vec3{}, res.Normal)
	assert.InDelta(t, 3, res.Depth, 1e-9)
}

func TestSphereBox_ExteriorClamp(t *testing.T) {
	box, err := shape.NewBox(mgl64.Vec3{1, 1, 1})
	require.NoError(t, err)
	sph, err := shape.NewSphere(1)
	require.NoError(t, err)

	res := SphereBox(identity(mgl64.Vec3{1.5, 0, 0}), sph, identity(mgl64.Vec3{0, 0, 0}), box, Options{EnableContact: true, MaxContacts: 1})
	require.True(t, res.Collision)
	assert.InDelta(t, 0.5, res.Depth, 1e-9)
	assert.InDelta(t, -1, res.Normal.X(), 1e-6)
	require.Len(t, res.Contacts, 1)
	assert.InDelta(t, 1, res.Contacts[0].OnB.X(), 1e-9)
}

func TestSphereBox_Separated(t *testing.T) {
	box, err := shape.NewBox(mgl64.Vec3{1, 1, 1})
	require.NoError(t, err)
	sph, err := shape.NewSphere(1)
	require.NoError(t, err)

	res := SphereBox(identity(mgl64.Vec3{10, 0, 0}), sph, identity(mgl64.Vec3{0, 0, 0}), box, Options{})
	assert.False(t, res.Collision)
}

func TestSphereCapsule_AgainstCoreSegment(t *testing.T) {
	cap, err := shape.NewCapsule(0.5, 1)
	require.NoError(t, err)
	sph, err := shape.NewSphere(0.5)
	require.NoError(t, err)

	// Capsule's core segment runs along its local Z axis from -1 to 1;
	// the sphere sits 0.8 off the segment's midpoint along X.
	res := SphereCapsule(identity(mgl64.Vec3{0.8, 0, 0}), sph, identity(mgl64.Vec3{0, 0, 0}), cap, Options{EnableContact: true, MaxContacts: 1})
	require.True(t, res.Collision)
	assert.InDelta(t, 0.2, res.Depth, 1e-9)
	assert.InDelta(t, -1, res.Normal.X(), 1e-9)
}

func TestSphereCylinder_RadialPenetration(t *testing.T) {
	cyl, err := shape.NewCylinder(1, 1)
	require.NoError(t, err)
	sph, err := shape.NewSphere(0.5)
	require.NoError(t, err)

	res := SphereCylinder(identity(mgl64.Vec3{1.2, 0, 0}), sph, identity(mgl64.Vec3{0, 0, 0}), cyl, Options{})
	require.True(t, res.Collision)
	assert.InDelta(t, 0.3, res.Depth, 1e-9)
}

func TestSphereCone_ApexRegion(t *testing.T) {
	cone, err := shape.NewCone(1, 1)
	require.NoError(t, err)
	sph, err := shape.NewSphere(0.25)
	require.NoError(t, err)

	// Far outside the cone along its axis: no collision expected.
	res := SphereCone(identity(mgl64.Vec3{0, 0, 5}), sph, identity(mgl64.Vec3{0, 0, 0}), cone, Options{})
	assert.False(t, res.Collision)
}

func TestSwap_NegatesNormalAndTradesWitnesses(t *testing.T) {
	r := Result{
		Collision: true,
		Normal:    mgl64.Vec3{1, 0, 0},
		Depth:     0.5,
		Contacts:  []Contact{{Position: mgl64.Vec3{1, 2, 3}, OnA: mgl64.Vec3{1, 0, 0}, OnB: mgl64.Vec3{2, 0, 0}}},
	}
	swapped := Swap(r)
	assert.Equal(t, mgl64.Vec3{-1, 0, 0}, swapped.Normal)
	assert.Equal(t, r.Depth, swapped.Depth)
	assert.Equal(t, r.Contacts[0].OnA, swapped.Contacts[0].OnB)
	assert.Equal(t, r.Contacts[0].OnB, swapped.Contacts[0].OnA)
}

func TestSwap_NoCollisionPassesThrough(t *testing.T) {
	assert.Equal(t, Result{}, Swap(Result{}))
}

func TestClosestPointOnSegment(t *testing.T) {
	p, param := ClosestPointOnSegment(mgl64.Vec3{0.5, 1, 0}, mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1, 0, 0})
	assert.InDelta(t, 0.5, param, 1e-9)
	assert.InDelta(t, 0, p.Y(), 1e-9)

	// Clamped beyond the segment's end.
	p, param = ClosestPointOnSegment(mgl64.Vec3{5, 0, 0}, mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1, 0, 0})
	assert.Equal(t, 1.0, param)
	assert.True(t, math.Abs(p.X()-1) < 1e-9)
}
