// Package contract defines the request/result value objects of spec
// §3/§4.H: the knobs a caller can set on a collision query, and the
// shapes the core hands back. Grounded on constraint.ContactPoint and
// constraint.ContactConstraint, generalized away from the teacher's
// dynamics-specific fields (compliance, restitution are downstream
// rigid-body concerns this core's Non-goals exclude) to the geometric
// quadruple (position, normal, depth, witnesses) plus the warm-start
// and tolerance fields spec §3 adds.
package contract

import (
	"math"

	"github.com/gear/fcl/internal/errs"
	"github.com/go-gl/mathgl/mgl64"
)

// defaultDistanceTolerance (the same value as gjk's own default) and
// defaultMaxContacts are what ToleranceOrDefault and
// MaxContactsOrDefault substitute when Request carries zero values
// because the caller has no opinion.
const (
	defaultDistanceTolerance = 1e-9
	defaultMaxContacts       = 4
)

// Request is the per-call parameterization of a collision query (spec
// §3, §4.H).
type Request struct {
	// MaxContacts bounds the contact manifold; must be >= 1.
	MaxContacts int
	// EnableContact, when false, asks for only the boolean/normal/depth
	// triple with no contact points populated.
	EnableContact bool
	// DistanceTolerance is the convergence tolerance threaded into GJK
	// and EPA; spec's "backend 1"/"backend 2" dispatch-table distinction
	// is a choice of Config values, not a different algorithm.
	DistanceTolerance float64
	// WarmStart is the caller's cached terminal direction from a prior
	// call on the same (or a nearby) shape pair. Propagated to GJK only
	// if its squared norm clears warmStartMinNorm (spec §4.H).
	WarmStart mgl64.Vec3
}

const warmStartMinNorm = 1e-12

// Validate checks the invariants spec §4.H states: MaxContacts >= 1,
// DistanceTolerance finite and non-negative (zero means unset, and
// ToleranceOrDefault substitutes the default), WarmStart finite.
// Returns a KindValidation error rather than silently clamping, per
// spec §7 — invalid requests must surface, not be guessed at.
func (r Request) Validate() error {
	if r.MaxContacts < 1 {
		return errs.Validation("request: max_contacts must be >= 1, got %d", r.MaxContacts)
	}
	if !finite(r.DistanceTolerance) || r.DistanceTolerance < 0 {
		return errs.Validation("request: distance_tolerance must be finite and non-negative, got %v", r.DistanceTolerance)
	}
	if !finiteVec3(r.WarmStart) {
		return errs.Validation("request: warm_start must be finite, got %v", r.WarmStart)
	}
	return nil
}

// EffectiveWarmStart returns r.WarmStart if its squared norm clears the
// minimum threshold GJK requires to trust a seed direction, else the
// zero vector (telling the solver to fall back to its own seeding).
func (r Request) EffectiveWarmStart() mgl64.Vec3 {
	if r.WarmStart.LenSqr() < warmStartMinNorm {
		return mgl64.Vec3{}
	}
	return r.WarmStart
}

// MaxContactsOrDefault returns r.MaxContacts, or defaultMaxContacts
// when the caller left it unset.
func (r Request) MaxContactsOrDefault() int {
	if r.MaxContacts < 1 {
		return defaultMaxContacts
	}
	return r.MaxContacts
}

// ToleranceOrDefault returns r.DistanceTolerance, or
// defaultDistanceTolerance when the caller left it unset.
func (r Request) ToleranceOrDefault() float64 {
	if r.DistanceTolerance <= 0 {
		return defaultDistanceTolerance
	}
	return r.DistanceTolerance
}

// ContactPoint is one point of a populated contact manifold: its
// representative world position, the witness points on each shape's
// surface, and the shared manifold depth (spec §4.D: every contact in
// a manifold reports the same penetration). Grounded on
// constraint.ContactPoint, with the dynamics-only Penetration-as-state
// field replaced by the plain geometric quadruple.
type ContactPoint struct {
	Position mgl64.Vec3
	OnA      mgl64.Vec3
	OnB      mgl64.Vec3
	Depth    float64
}

// CollisionResult is what Collide (spec §6) returns.
type CollisionResult struct {
	Collision bool
	Normal    mgl64.Vec3
	Depth     float64
	Contacts  []ContactPoint
	// NextWarmStart is the terminal GJK/EPA direction this call
	// converged on; the caller owns persisting it across calls (spec
	// §5: "the cached GJK warm-start is owned by the caller").
	NextWarmStart mgl64.Vec3
}

// DistanceResult is what Distance (spec §6) returns: a non-negative
// separation on success, or a negative scalar meaning the shapes
// overlap and the caller should switch to Collide.
type DistanceResult struct {
	Distance      float64
	ClosestA      mgl64.Vec3
	ClosestB      mgl64.Vec3
	NextWarmStart mgl64.Vec3
}

func finiteVec3(v mgl64.Vec3) bool {
	return finite(v.X()) && finite(v.Y()) && finite(v.Z())
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
