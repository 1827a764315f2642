// Package pair implements the closed-form shape-pair algorithms of
// spec §4.E: analytic collision tests for shape combinations common
// enough to bypass GJK/EPA entirely. The teacher never special-cases
// any pair — every query, even sphere-sphere, runs the general
// GJK/EPA machinery — so these routines are new relative to it; they
// are grounded in *method* on the teacher's manifold-clipping style
// (epa/manifold.go's Sutherland-Hodgman clip, before this module
// replaced it) and in *formula* on the retrieved viamrobotics-rdk
// spatialmath SAT/capsule reference material.
//
// Every routine shares one convention: Normal points from the first
// (A) operand toward the second (B), and Depth is how far B would
// need to move along Normal to separate the pair — the same
// convention epa.Result documents. dispatch (spec §4.F) is
// responsible for negating Normal and swapping witnesses when it has
// to call a routine with its operands reversed; Swap below is the
// primitive that implements that.
package pair

import "github.com/go-gl/mathgl/mgl64"

// Contact is a single point of a closed-form contact manifold.
type Contact struct {
	Position mgl64.Vec3
	OnA      mgl64.Vec3
	OnB      mgl64.Vec3
}

// Options carries the caller-tunable parts of spec §4.H's Request that
// these routines need: whether to populate contacts at all, and how
// many to return at most.
type Options struct {
	EnableContact bool
	MaxContacts   int
}

// Result is a closed-form pair's collision outcome. Contacts is empty
// whenever Collision is false or Options.EnableContact was false.
type Result struct {
	Collision bool
	Normal    mgl64.Vec3
	Depth     float64
	Contacts  []Contact
}

// Swap reverses a Result as if its two operands had been passed in
// the opposite order: the normal negates and each contact's witnesses
// trade places. Grounded on spec §4.E's Reversibility invariant.
func Swap(r Result) Result {
	if !r.Collision {
		return r
	}
	out := Result{Collision: true, Normal: r.Normal.Mul(-1), Depth: r.Depth}
	if len(r.Contacts) > 0 {
		out.Contacts = make([]Contact, len(r.Contacts))
		for i, c := range r.Contacts {
			out.Contacts[i] = Contact{Position: c.Position, OnA: c.OnB, OnB: c.OnA}
		}
	}
	return out
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func maxContactsOf(o Options) int {
	if o.MaxContacts <= 0 {
		return 1
	}
	return o.MaxContacts
}

// ClosestPointOnSegment returns the closest point to p on the segment
// [a, b] and the parameter t in [0,1] it corresponds to.
func ClosestPointOnSegment(p, a, b mgl64.Vec3) (mgl64.Vec3, float64) {
	ab := b.Sub(a)
	lenSqr := ab.LenSqr()
	if lenSqr < 1e-18 {
		return a, 0
	}
	t := clamp(p.Sub(a).Dot(ab)/lenSqr, 0, 1)
	return a.Add(ab.Mul(t)), t
}
