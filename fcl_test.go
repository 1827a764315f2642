package fcl

import (
	"testing"

	"github.com/gear/fcl/contract"
	"github.com/gear/fcl/shape"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func identity(pos mgl64.Vec3) shape.Transform {
	return shape.Transform{Position: pos, Rotation: mgl64.QuatIdent()}
}

func TestCollide_SphereSphere(t *testing.T) {
	a, err := shape.NewSphere(1)
	require.NoError(t, err)
	b, err := shape.NewSphere(1)
	require.NoError(t, err)

	res, err := Collide(identity(mgl64.Vec3{0, 0, 0}), a, identity(mgl64.Vec3{1.5, 0, 0}), b, contract.Request{MaxContacts: 4, EnableContact: true})
	require.NoError(t, err)
	require.True(t, res.Collision)
	assert.InDelta(t, 0.5, res.Depth, 1e-9)
	require.Len(t, res.Contacts, 1)
	assert.InDelta(t, 0.5, res.Contacts[0].Depth, 1e-9)
}

func TestCollide_InvalidRequestSurfacesValidationError(t *testing.T) {
	a, err := shape.NewSphere(1)
	require.NoError(t, err)
	b, err := shape.NewSphere(1)
	require.NoError(t, err)

	_, err = Collide(identity(mgl64.Vec3{}), a, identity(mgl64.Vec3{1, 0, 0}), b, contract.Request{MaxContacts: 0})
	require.Error(t, err)
}

func TestCollide_NoOverlapReturnsZeroResult(t *testing.T) {
	a, err := shape.NewSphere(1)
	require.NoError(t, err)
	b, err := shape.NewSphere(1)
	require.NoError(t, err)

	res, err := Collide(identity(mgl64.Vec3{}), a, identity(mgl64.Vec3{10, 0, 0}), b, contract.Request{MaxContacts: 1})
	require.NoError(t, err)
	assert.False(t, res.Collision)
}

func TestDistance_SeparatedSpheres(t *testing.T) {
	a, err := shape.NewSphere(1)
	require.NoError(t, err)
	b, err := shape.NewSphere(1)
	require.NoError(t, err)

	res, err := Distance(identity(mgl64.Vec3{}), a, identity(mgl64.Vec3{5, 0, 0}), b, contract.Request{MaxContacts: 1})
	require.NoError(t, err)
	assert.InDelta(t, 3, res.Distance, 1e-6)
}

func TestDistance_OverlappingSpheresReportNegative(t *testing.T) {
	a, err := shape.NewSphere(1)
	require.NoError(t, err)
	b, err := shape.NewSphere(1)
	require.NoError(t, err)

	res, err := Distance(identity(mgl64.Vec3{}), a, identity(mgl64.Vec3{1, 0, 0}), b, contract.Request{MaxContacts: 1})
	require.NoError(t, err)
	assert.Equal(t, -1.0, res.Distance)
}

func TestShapeTriangleIntersect_SphereAgainstFace(t *testing.T) {
	sph, err := shape.NewSphere(1)
	require.NoError(t, err)

	v0 := mgl64.Vec3{-1, 0, -1}
	v1 := mgl64.Vec3{1, 0, -1}
	v2 := mgl64.Vec3{0, 0, 1}

	res, err := ShapeTriangleIntersect(identity(mgl64.Vec3{0, 0.5, 0}), sph, v0, v1, v2, shape.Identity(), contract.Request{MaxContacts: 1, EnableContact: true})
	require.NoError(t, err)
	require.True(t, res.Collision)
	assert.InDelta(t, 0.5, res.Depth, 1e-9)
	require.Len(t, res.Contacts, 1)
}
