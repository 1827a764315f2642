// Package epa implements the Expanding Polytope Algorithm of spec
// §4.D: given the tetrahedron gjk.Solve found enclosing the origin, it
// expands a polytope on the Minkowski difference toward the origin
// until the closest face converges, yielding the penetration normal,
// depth, and a contact manifold.
//
// Grounded on the teacher's epa package (epa.go, face.go, polytope.go,
// manifold.go), generalized from *actor.RigidBody to support.Oracle
// and from the teacher's dynamics-flavored ContactConstraint
// (compliance, restitution) to the plain contact quadruple spec §4.D
// and §4.H describe.
package epa

import (
	"math"

	"github.com/gear/fcl/gjk"
	"github.com/gear/fcl/internal/errs"
	"github.com/gear/fcl/support"
	"github.com/go-gl/mathgl/mgl64"
)

// defaultMaxIterations bounds polytope expansion. Grounded on the
// teacher's EPAMaxIterations, doubled: this solver additionally builds
// a contact manifold, which benefits from a tighter converged face.
const defaultMaxIterations = 64

// defaultTolerance is the convergence tolerance used when a caller's
// Config leaves Tolerance unset or non-positive. Grounded on the
// teacher's EPAConvergenceTolerance.
const defaultTolerance = 1e-4

// degeneratePenetrationEstimate is the fallback depth reported when
// GJK handed over fewer than four simplex points (shapes touching at a
// single point or along an edge, so no tetrahedron could be built).
const degeneratePenetrationEstimate = 0.01

// Config carries the per-call tunables spec §3's Request exposes to
// the penetration solver.
type Config struct {
	MaxIterations int
	Tolerance     float64
	MaxContacts   int
	EnableContact bool
}

// Contact is a single point of the contact manifold: its position on
// each shape's surface, and a representative world position between
// them. Depth is shared across all contacts in a Result, matching the
// uniform per-manifold penetration spec §4.D's closed-form pair
// routines also report.
type Contact struct {
	Position mgl64.Vec3
	OnA      mgl64.Vec3
	OnB      mgl64.Vec3
}

// Result is the penetration resolution for an overlapping shape pair.
// Normal points from A toward B. Depth is the minimum translation
// distance along Normal that separates them.
type Result struct {
	Normal   mgl64.Vec3
	Depth    float64
	Contacts []Contact
}

// Solve expands simplex (the tetrahedron gjk.Solve returned when it
// found the origin enclosed) into a penetration result. It never
// retains o, simplex, or cfg past the call (spec §5).
func Solve(o support.Oracle, simplex gjk.Simplex, cfg Config) (Result, error) {
	verts := simplex.Vertices()
	if len(verts) < 4 {
		return degenerateResult(o, verts, cfg), nil
	}

	tol := cfg.Tolerance
	if tol <= 0 {
		tol = defaultTolerance
	}
	maxIter := cfg.MaxIterations
	if maxIter <= 0 {
		maxIter = defaultMaxIterations
	}

	pt := buildInitial(verts)

	for i := 0; i < maxIter; i++ {
		if len(pt.faces) == 0 {
			break
		}
		idx := pt.closestIndex()
		closest := pt.faces[idx]

		if closest.distance < minFaceDistance {
			pt.faces = append(pt.faces[:idx], pt.faces[idx+1:]...)
			continue
		}

		w, onA, onB := o.SupportVertices(closest.normal)
		distance := w.Dot(closest.normal)

		if distance-closest.distance < tol {
			return Result{
				Normal:   closest.normal,
				Depth:    closest.distance,
				Contacts: buildContacts(closest, cfg),
			}, nil
		}

		pt.expand(gjk.Vertex{W: w, OnA: onA, OnB: onB})
	}

	return Result{}, errs.NonConvergence("epa: exceeded %d iterations without converging on a penetration face", maxIter)
}

// buildContacts derives a contact manifold from the converged face.
// The primary contact is the barycentric projection of the origin onto
// the face (exact, since EPA guarantees the origin projects inside the
// closest face of a valid polytope); if the caller asked for more than
// one contact, the face's own vertices are added as additional
// candidates. This is a deliberately narrower manifold than the
// teacher's Sutherland-Hodgman clip against each shape's silhouette
// feature: shape.Shape (spec §4.A) exposes only Support, not a
// separate per-variant face query, so there is no reference/incident
// feature pair left to clip between. For the closed-form box-box pair
// (spec §4.E), which is this engine's dominant multi-contact case, the
// pair package clips real box faces directly instead of going through
// EPA at all.
func buildContacts(f face, cfg Config) []Contact {
	maxContacts := cfg.MaxContacts
	if maxContacts <= 0 {
		maxContacts = 1
	}

	onA, onB := faceBarycentricWitness(f)
	primary := Contact{
		Position: onA.Add(onB).Mul(0.5),
		OnA:      onA,
		OnB:      onB,
	}
	if !cfg.EnableContact || maxContacts == 1 {
		return []Contact{primary}
	}

	contacts := []Contact{primary}
	for _, v := range f.verts {
		if len(contacts) >= maxContacts {
			break
		}
		candidate := Contact{Position: v.OnA.Add(v.OnB).Mul(0.5), OnA: v.OnA, OnB: v.OnB}
		if candidate.Position.Sub(primary.Position).LenSqr() < 1e-12 {
			continue
		}
		duplicate := false
		for _, c := range contacts {
			if c.Position.Sub(candidate.Position).LenSqr() < 1e-12 {
				duplicate = true
				break
			}
		}
		if !duplicate {
			contacts = append(contacts, candidate)
		}
	}
	return contacts
}

// faceBarycentricWitness projects the origin onto face f's plane,
// expresses it as a convex combination of the face's three vertices,
// and applies those weights to each vertex's witnesses, recovering the
// corresponding points on A and B.
func faceBarycentricWitness(f face) (onA, onB mgl64.Vec3) {
	a, b, c := f.verts[0].W, f.verts[1].W, f.verts[2].W
	ab := b.Sub(a)
	ac := c.Sub(a)

	v0 := ab
	v1 := ac
	v2 := a.Mul(-1)
	d00 := v0.Dot(v0)
	d01 := v0.Dot(v1)
	d11 := v1.Dot(v1)
	d20 := v2.Dot(v0)
	d21 := v2.Dot(v1)
	denom := d00*d11 - d01*d01
	if math.Abs(denom) < 1e-18 {
		return f.verts[0].OnA, f.verts[0].OnB
	}
	v := (d11*d20 - d01*d21) / denom
	w := (d00*d21 - d01*d20) / denom
	u := 1 - v - w

	onA = f.verts[0].OnA.Mul(u).Add(f.verts[1].OnA.Mul(v)).Add(f.verts[2].OnA.Mul(w))
	onB = f.verts[0].OnB.Mul(u).Add(f.verts[1].OnB.Mul(v)).Add(f.verts[2].OnB.Mul(w))
	return onA, onB
}

// degenerateResult handles the rare case where GJK's terminal simplex
// had fewer than four points (shapes touching at a point or along an
// edge, never building a full tetrahedron). Grounded on the teacher's
// handleDegenerateSimplex. Every branch falls back to the zero vector,
// never a fabricated direction, when the available points don't
// separate enough to normalize (spec §9).
func degenerateResult(o support.Oracle, verts []gjk.Vertex, cfg Config) Result {
	if len(verts) >= 2 {
		a, b := verts[0], verts[1]
		distA := a.W.Len()
		distB := b.W.Len()

		var normal mgl64.Vec3
		var onA, onB mgl64.Vec3
		var depth float64
		if distA < distB {
			depth = distA
			if distA > 1e-12 {
				normal = a.W.Mul(1 / distA)
			}
			onA, onB = a.OnA, a.OnB
		} else {
			depth = distB
			if distB > 1e-12 {
				normal = b.W.Mul(1 / distB)
			}
			onA, onB = b.OnA, b.OnB
		}

		return Result{
			Normal:   normal,
			Depth:    depth,
			Contacts: []Contact{{Position: onA.Add(onB).Mul(0.5), OnA: onA, OnB: onB}},
		}
	}

	// Same zero-normal convention as the two-point branch above and as
	// pair.SphereSphere's concentric case (spec §9): don't invent a
	// direction when the bodies' separation can't supply one.
	normal := o.B.Transform.Position.Sub(o.A.Transform.Position)
	length := normal.Len()
	if length >= normalSnapThreshold {
		normal = normal.Mul(1 / length)
	} else {
		normal = mgl64.Vec3{}
	}

	var onA, onB mgl64.Vec3
	if len(verts) == 1 {
		onA, onB = verts[0].OnA, verts[0].OnB
	}

	return Result{
		Normal:   normal,
		Depth:    degeneratePenetrationEstimate,
		Contacts: []Contact{{Position: onA.Add(onB).Mul(0.5), OnA: onA, OnB: onB}},
	}
}
