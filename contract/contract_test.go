package contract

import (
	"math"
	"testing"

	"github.com/gear/fcl/internal/errs"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequest_ValidateRejectsNonPositiveMaxContacts(t *testing.T) {
	req := Request{MaxContacts: 0}
	err := req.Validate()
	require.Error(t, err)
	var e *errs.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, errs.KindValidation, e.Kind)
}

func TestRequest_ValidateRejectsNegativeTolerance(t *testing.T) {
	req := Request{MaxContacts: 1, DistanceTolerance: -1}
	err := req.Validate()
	require.Error(t, err)
}

func TestRequest_ValidateRejectsNonFiniteWarmStart(t *testing.T) {
	req := Request{MaxContacts: 1, WarmStart: mgl64.Vec3{math.NaN(), 0, 0}}
	err := req.Validate()
	require.Error(t, err)
}

func TestRequest_ValidateAcceptsZeroValue(t *testing.T) {
	req := Request{MaxContacts: 1}
	assert.NoError(t, req.Validate())
}

func TestRequest_EffectiveWarmStartIgnoresTinyVectors(t *testing.T) {
	req := Request{WarmStart: mgl64.Vec3{1e-8, 0, 0}}
	assert.Equal(t, mgl64.Vec3{}, req.EffectiveWarmStart())

	req.WarmStart = mgl64.Vec3{1, 0, 0}
	assert.Equal(t, mgl64.Vec3{1, 0, 0}, req.EffectiveWarmStart())
}

func TestRequest_Defaults(t *testing.T) {
	req := Request{}
	assert.Equal(t, defaultMaxContacts, req.MaxContactsOrDefault())
	assert.Equal(t, defaultDistanceTolerance, req.ToleranceOrDefault())

	req = Request{MaxContacts: 8, DistanceTolerance: 1e-6}
	assert.Equal(t, 8, req.MaxContactsOrDefault())
	assert.Equal(t, 1e-6, req.ToleranceOrDefault())
}
