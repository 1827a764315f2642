package dispatch

import (
	"testing"

	"github.com/gear/fcl/shape"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func identity(pos mgl64.Vec3) shape.Transform {
	return shape.Transform{Position: pos, Rotation: mgl64.QuatIdent()}
}

func TestCollide_NaturalOrderUsesClosedForm(t *testing.T) {
	a, err := shape.NewSphere(1)
	require.NoError(t, err)
	b, err := shape.NewSphere(1)
	require.NoError(t, err)

	res, err := Collide(identity(mgl64.Vec3{0, 0, 0}), a, identity(mgl64.Vec3{1.5, 0, 0}), b, defaultOptions())
	require.NoError(t, err)
	require.True(t, res.Collision)
	assert.InDelta(t, 0.5, res.Depth, 1e-9)
}

func TestCollide_ReverseOrderSwapsNormal(t *testing.T) {
	box, err := shape.NewBox(mgl64.Vec3{1, 1, 1})
	require.NoError(t, err)
	sph, err := shape.NewSphere(1)
	require.NoError(t, err)

	// Only (Sphere, Box) is registered; (Box, Sphere) must fall
	// through to the reverse-order path and negate the normal.
	natural, err := Collide(identity(mgl64.Vec3{0, 0, 0}), sph, identity(mgl64.Vec3{1.5, 0, 0}), box, defaultOptions())
	require.NoError(t, err)
	reversed, err := Collide(identity(mgl64.Vec3{1.5, 0, 0}), box, identity(mgl64.Vec3{0, 0, 0}), sph, defaultOptions())
	require.NoError(t, err)

	require.True(t, natural.Collision)
	require.True(t, reversed.Collision)
	assert.InDelta(t, natural.Depth, reversed.Depth, 1e-9)
	assert.InDelta(t, natural.Normal.X(), -reversed.Normal.X(), 1e-9)
}

func TestCollide_FallsBackToGJKEPAForUnregisteredPair(t *testing.T) {
	a, err := shape.NewEllipsoid(mgl64.Vec3{1, 1, 1})
	require.NoError(t, err)
	b, err := shape.NewEllipsoid(mgl64.Vec3{1, 1, 1})
	require.NoError(t, err)

	res, err := Collide(identity(mgl64.Vec3{0, 0, 0}), a, identity(mgl64.Vec3{1.5, 0, 0}), b, defaultOptions())
	require.NoError(t, err)
	assert.True(t, res.Collision)
}

func TestCollide_NoCollision(t *testing.T) {
	a, err := shape.NewSphere(1)
	require.NoError(t, err)
	b, err := shape.NewSphere(1)
	require.NoError(t, err)

	res, err := Collide(identity(mgl64.Vec3{0, 0, 0}), a, identity(mgl64.Vec3{5, 0, 0}), b, defaultOptions())
	require.NoError(t, err)
	assert.False(t, res.Collision)
}

func TestDistance_SeparatedShapes(t *testing.T) {
	a, err := shape.NewSphere(1)
	require.NoError(t, err)
	b, err := shape.NewSphere(1)
	require.NoError(t, err)

	dist, _, _, err := Distance(identity(mgl64.Vec3{0, 0, 0}), a, identity(mgl64.Vec3{5, 0, 0}), b, defaultOptions().GJK)
	require.NoError(t, err)
	assert.InDelta(t, 3, dist, 1e-6)
}

func TestDistance_OverlappingShapesReportNegative(t *testing.T) {
	a, err := shape.NewSphere(1)
	require.NoError(t, err)
	b, err := shape.NewSphere(1)
	require.NoError(t, err)

	dist, _, _, err := Distance(identity(mgl64.Vec3{0, 0, 0}), a, identity(mgl64.Vec3{1, 0, 0}), b, defaultOptions().GJK)
	require.NoError(t, err)
	assert.Equal(t, -1.0, dist)
}

func defaultOptions() Options {
	return Options{}
}
