package triangle

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

func TestIntersect_SphereAgainstTriangleFace(t *testing.T) {
	sph, err := shape.NewSphere(1)
	require.NoError(t, err)

	v0 := mgl64.Vec3{-1, 0, -1}
	v1 := mgl64.Vec3{1, 0, -1}
	v2 := mgl64.Vec3{0, 0, 1}

	res, err := Intersect(identity(mgl64.Vec3{0, 0.5, 0}), sph, v0, v1, v2, shape.Identity(), Options{})
	require.NoError(t, err)
	require.True(t, res.Collision)
	assert.InDelta(t, 0.5, res.Depth, 1e-9)
}

func TestIntersect_SphereAgainstTriangleEdge(t *testing.T) {
	sph, err := shape.NewSphere(0.5)
	require.NoError(t, err)

	v0 := mgl64.Vec3{-1, 0, -1}
	v1 := mgl64.Vec3{1, 0, -1}
	v2 := mgl64.Vec3{0, 0, 1}

	// Centered well past v1's corner in X: the nearest feature is the
	// v0-v1 edge, not the face interior.
	res, err := Intersect(identity(mgl64.Vec3{1.2, 0, -1}), sph, v0, v1, v2, shape.Identity(), Options{})
	require.NoError(t, err)
	require.True(t, res.Collision)
	assert.InDelta(t, 0.3, res.Depth, 1e-9)
}

func TestIntersect_SphereNoCollision(t *testing.T) {
	sph, err := shape.NewSphere(1)
	require.NoError(t, err)

	v0 := mgl64.Vec3{-1, 0, -1}
	v1 := mgl64.Vec3{1, 0, -1}
	v2 := mgl64.Vec3{0, 0, 1}

	res, err := Intersect(identity(mgl64.Vec3{0, 10, 0}), sph, v0, v1, v2, shape.Identity(), Options{})
	require.NoError(t, err)
	assert.False(t, res.Collision)
}

func TestIntersect_HalfspaceAgainstTriangle(t *testing.T) {
	hs, err := shape.NewHalfspace(mgl64.Vec3{0, 1, 0}, 0)
	require.NoError(t, err)

	v0 := mgl64.Vec3{-1, -0.5, -1}
	v1 := mgl64.Vec3{1, -0.5, -1}
	v2 := mgl64.Vec3{0, -0.5, 1}

	res, err := Intersect(shape.Identity(), hs, v0, v1, v2, shape.Identity(), Options{})
	require.NoError(t, err)
	assert.True(t, res.Collision)
}

func TestIntersect_GeneralConvexFallback(t *testing.T) {
	box, err := shape.NewBox(mgl64.Vec3{1, 1, 1})
	require.NoError(t, err)

	v0 := mgl64.Vec3{-2, 0.5, -2}
	v1 := mgl64.Vec3{2, 0.5, -2}
	v2 := mgl64.Vec3{0, 0.5, 2}

	res, err := Intersect(identity(mgl64.Vec3{0, 0, 0}), box, v0, v1, v2, shape.Identity(), Options{})
	require.NoError(t, err)
	assert.True(t, res.Collision)
}
