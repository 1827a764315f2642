package pair

import (
	"testing"

	"github.com/gear/fcl/shape"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestShapeHalfspace_Scenario5 mirrors spec §8 scenario 5: a unit-10
// sphere at the origin against a halfspace with normal (1,0,0) and
// offset 0 (solid region is x <= 0) penetrates by exactly its radius.
func TestShapeHalfspace_Scenario5(t *testing.T) {
	sph, err := shape.NewSphere(10)
	require.NoError(t, err)
	hs, err := shape.NewHalfspace(mgl64.Vec3{1, 0, 0}, 0)
	require.NoError(t, err)

	res := ShapeHalfspace(identity(mgl64.Vec3{0, 0, 0}), sph, shape.Identity(), hs, Options{EnableContact: true, MaxContacts: 1})
	require.True(t, res.Collision)
	assert.InDelta(t, 10, res.Depth, 1e-9)
	assert.InDelta(t, -1, res.Normal.X(), 1e-9)
	require.Len(t, res.Contacts, 1)
	assert.InDelta(t, -5, res.Contacts[0].Position.X(), 1e-9)
}

func TestShapeHalfspace_NoCollision(t *testing.T) {
	sph, err := shape.NewSphere(1)
	require.NoError(t, err)
	hs, err := shape.NewHalfspace(mgl64.Vec3{1, 0, 0}, 0)
	require.NoError(t, err)

	res := ShapeHalfspace(identity(mgl64.Vec3{5, 0, 0}), sph, shape.Identity(), hs, Options{})
	assert.False(t, res.Collision)
}

func TestShapeHalfspace_MonotonicInDepth(t *testing.T) {
	sph, err := shape.NewSphere(1)
	require.NoError(t, err)
	hs, err := shape.NewHalfspace(mgl64.Vec3{1, 0, 0}, 0)
	require.NoError(t, err)

	shallow := ShapeHalfspace(identity(mgl64.Vec3{0.5, 0, 0}), sph, shape.Identity(), hs, Options{})
	deep := ShapeHalfspace(identity(mgl64.Vec3{-0.5, 0, 0}), sph, shape.Identity(), hs, Options{})
	require.True(t, shallow.Collision)
	require.True(t, deep.Collision)
	assert.Greater(t, deep.Depth, shallow.Depth)
}

func TestShapePlane_FollowsShapeSide(t *testing.T) {
	sph, err := shape.NewSphere(1)
	require.NoError(t, err)
	pl, err := shape.NewPlane(mgl64.Vec3{1, 0, 0}, 0)
	require.NoError(t, err)

	onPositiveSide := ShapePlane(identity(mgl64.Vec3{0.5, 0, 0}), sph, shape.Identity(), pl, Options{})
	onNegativeSide := ShapePlane(identity(mgl64.Vec3{-0.5, 0, 0}), sph, shape.Identity(), pl, Options{})
	require.True(t, onPositiveSide.Collision)
	require.True(t, onNegativeSide.Collision)
	// Whichever side the sphere's center sits on is treated as solid,
	// so the two calls report normals pointing opposite ways.
	assert.InDelta(t, -1, onPositiveSide.Normal.Dot(onNegativeSide.Normal), 1e-6)
}
