// Package gjk implements the distance-mode GJK solver of spec §4.C:
// given a support.Oracle over a shape pair, it either proves
// separation and returns an exact distance and witness points, or
// finds that the Minkowski difference contains the origin and hands
// the terminal simplex to the epa package for penetration resolution.
//
// Grounded on the simplex reduction in the teacher's GJK (same
// line/triangle/tetrahedron Voronoi tests), rewritten against
// support.Oracle instead of *actor.RigidBody and extended with the
// distance-refinement loop and witness bookkeeping spec §4.C
// requires; the teacher's boolean-only query stops at the first
// separating direction, which is sufficient for a yes/no answer but
// not for an exact distance.
package gjk

import (
	"github.com/gear/fcl/internal/errs"
	"github.com/gear/fcl/support"
	"github.com/go-gl/mathgl/mgl64"
)

// defaultMaxIterations is the solver's hard iteration cap; spec §4.C
// requires at least 128.
const defaultMaxIterations = 128

// defaultTolerance is used when a caller's Config leaves Tolerance
// unset or non-positive.
const defaultTolerance = 1e-9

// warmStartMinLenSqr: below this, a warm-start direction is treated as
// absent and a fresh seed is derived from the bodies' separation.
const warmStartMinLenSqr = 1e-18

// Config carries the per-call tunables spec §3's Request exposes to
// the solver: an iteration cap, a distance tolerance, and an optional
// warm-start direction left over from a previous call against the
// same pair.
type Config struct {
	MaxIterations int
	Tolerance     float64
	WarmStart     mgl64.Vec3
}

// Result is the outcome of a single GJK run. When Collision is true,
// Simplex holds the terminal simplex for epa.Solve to consume (the
// enclosing tetrahedron, or fewer points when the origin was reached
// on a vertex, edge or face of the Minkowski difference) and the
// distance/witness fields are meaningless. When Collision is
// false, Distance and the witness points are exact to within
// Tolerance, and Direction is the separating direction a caller should
// cache as the next call's warm start.
type Result struct {
	Collision bool
	Distance  float64
	WitnessA  mgl64.Vec3
	WitnessB  mgl64.Vec3
	Simplex   Simplex
	Direction mgl64.Vec3
}

// Solve runs GJK against the given Minkowski-difference oracle. It
// never retains o or cfg past the call (spec §5: stateless, pure core).
func Solve(o support.Oracle, cfg Config) (Result, error) {
	tol := cfg.Tolerance
	if tol <= 0 {
		tol = defaultTolerance
	}
	maxIter := cfg.MaxIterations
	if maxIter < defaultMaxIterations {
		maxIter = defaultMaxIterations
	}

	dir := cfg.WarmStart
	if dir.LenSqr() < warmStartMinLenSqr {
		dir = o.B.Transform.Position.Sub(o.A.Transform.Position)
		if dir.LenSqr() < warmStartMinLenSqr {
			dir = mgl64.Vec3{1, 0, 0}
		}
	}

	w, onA, onB := o.SupportVertices(dir)
	simplex := Simplex{}
	simplex.add(Vertex{W: w, OnA: onA, OnB: onB})
	closest := w
	closestDist := w.Len()
	witnessA, witnessB := onA, onB

	if closestDist < tol {
		return Result{Collision: true, Simplex: simplex}, nil
	}
	dir = closest.Mul(-1)

	for i := 0; i < maxIter; i++ {
		w, onA, onB := o.SupportVertices(dir)

		if dir.Dot(w) <= 0 && closestDist > tol {
			return Result{
				Collision: false,
				Distance:  closestDist,
				WitnessA:  witnessA,
				WitnessB:  witnessB,
				Direction: dir,
			}, nil
		}

		simplex.add(Vertex{W: w, OnA: onA, OnB: onB})
		newClosest, kept, weights, containsOrigin := reduce(simplex)
		if containsOrigin {
			var full Simplex
			for _, v := range kept {
				full.add(v)
			}
			return Result{Collision: true, Simplex: full}, nil
		}

		var reduced Simplex
		for _, v := range kept {
			reduced.add(v)
		}
		simplex = reduced

		newDist := newClosest.Len()
		improvement := closestDist - newDist
		witnessA, witnessB = weightedWitness(kept, weights)

		if newDist < tol {
			// The origin lies on the reduced simplex itself: the shapes
			// touch or overlap without an enclosing tetrahedron, and
			// epa.Solve resolves such lower-dimensional simplices.
			return Result{Collision: true, Simplex: simplex}, nil
		}
		if improvement < tol {
			return Result{
				Collision: false,
				Distance:  newDist,
				WitnessA:  witnessA,
				WitnessB:  witnessB,
				Direction: newClosest.Mul(-1),
			}, nil
		}

		closest = newClosest
		closestDist = newDist
		dir = closest.Mul(-1)
	}

	// The iteration cap was hit without either confirming separation or
	// enclosing the origin — but every iteration leaves closest/witness*
	// at the best approximation found so far, so this is the soft
	// tolerance-saturated outcome spec §7 describes, not a hard failure:
	// the value is returned alongside the error, not discarded.
	return Result{
		Collision: false,
		Distance:  closestDist,
		WitnessA:  witnessA,
		WitnessB:  witnessB,
		Direction: dir,
	}, errs.ToleranceSaturated("gjk: exceeded %d iterations; distance %.6g may be less accurate than requested", maxIter, closestDist)
}
