package pair

import (
	"testing"

	"github.com/gear/fcl/shape"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoxBox_FaceFaceOverlap(t *testing.T) {
	a, err := shape.NewBox(mgl64.Vec3{1, 1, 1})
	require.NoError(t, err)
	b, err := shape.NewBox(mgl64.Vec3{1, 1, 1})
	require.NoError(t, err)

	res := BoxBox(identity(mgl64.Vec3{0, 0, 0}), a, identity(mgl64.Vec3{1.5, 0, 0}), b, Options{EnableContact: true, MaxContacts: 4})
	require.True(t, res.Collision)
	assert.InDelta(t, 0.5, res.Depth, 1e-9)
	assert.InDelta(t, 1, res.Normal.X(), 1e-9)
	require.NotEmpty(t, res.Contacts)

	// The boxes overlap along +X, so every contact's OnA (on A's +X
	// face region) sits ahead of its OnB along +X.
	for _, c := range res.Contacts {
		assert.True(t, c.OnA.X() >= c.OnB.X()-1e-6)
	}
}

func TestBoxBox_Separated(t *testing.T) {
	a, err := shape.NewBox(mgl64.Vec3{1, 1, 1})
	require.NoError(t, err)
	b, err := shape.NewBox(mgl64.Vec3{1, 1, 1})
	require.NoError(t, err)

	res := BoxBox(identity(mgl64.Vec3{0, 0, 0}), a, identity(mgl64.Vec3{5, 0, 0}), b, Options{})
	assert.False(t, res.Collision)
}

func TestBoxBox_NormalPointsAToB(t *testing.T) {
	a, err := shape.NewBox(mgl64.Vec3{1, 1, 1})
	require.NoError(t, err)
	b, err := shape.NewBox(mgl64.Vec3{1, 1, 1})
	require.NoError(t, err)

	// B sits below A along Y: normal should point toward -Y.
	res := BoxBox(identity(mgl64.Vec3{0, 0, 0}), a, identity(mgl64.Vec3{0, -1.5, 0}), b, Options{})
	require.True(t, res.Collision)
	assert.InDelta(t, -1, res.Normal.Y(), 1e-9)
}

func TestBoxBox_Reversibility(t *testing.T) {
	a, err := shape.NewBox(mgl64.Vec3{1, 1, 1})
	require.NoError(t, err)
	b, err := shape.NewBox(mgl64.Vec3{0.5, 2, 0.5})
	require.NoError(t, err)

	ta := identity(mgl64.Vec3{0, 0, 0})
	tb := identity(mgl64.Vec3{1.3, 0.2, 0})

	forward := BoxBox(ta, a, tb, b, Options{EnableContact: true, MaxContacts: 4})
	backward := BoxBox(tb, b, ta, a, Options{EnableContact: true, MaxContacts: 4})

	require.True(t, forward.Collision)
	require.True(t, backward.Collision)
	assert.InDelta(t, forward.Depth, backward.Depth, 1e-9)
	swapped := Swap(backward)
	assert.InDelta(t, forward.Normal.X(), swapped.Normal.X(), 1e-9)
	assert.InDelta(t, forward.Normal.Y(), swapped.Normal.Y(), 1e-9)
}
