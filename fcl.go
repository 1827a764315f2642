// Package fcl is the narrow-phase collision core's external surface
// (spec §6): Collide, Distance, and ShapeTriangleIntersect, each a
// pure function from a contract.Request and a pair of placed shapes to
// a contract result. Everything underneath — dispatch's closed-form
// table and GJK/EPA fallback, triangle's degenerate-polytope engine —
// is reachable only through this package, mirroring how the teacher's
// root package exposed BroadPhase and CollisionPair as the one surface
// actor.RigidBody callers touched.
package fcl

import (
	"github.com/gear/fcl/contract"
	"github.com/gear/fcl/dispatch"
	"github.com/gear/fcl/epa"
	"github.com/gear/fcl/gjk"
	"github.com/gear/fcl/internal/errs"
	"github.com/gear/fcl/pair"
	"github.com/gear/fcl/shape"
	"github.com/gear/fcl/triangle"
	"github.com/go-gl/mathgl/mgl64"
)

// optionsFor builds the shared dispatch.Options a Request implies:
// the same GJK/EPA tolerances and contact knobs threaded through
// whichever backend the dispatcher or triangle engine picks.
func optionsFor(req contract.Request) dispatch.Options {
	tol := req.ToleranceOrDefault()
	return dispatch.Options{
		Options: pair.Options{
			EnableContact: req.EnableContact,
			MaxContacts:   req.MaxContactsOrDefault(),
		},
		GJK: gjk.Config{Tolerance: tol, WarmStart: req.EffectiveWarmStart()},
		EPA: epa.Config{
			Tolerance:     tol,
			EnableContact: req.EnableContact,
			MaxContacts:   req.MaxContactsOrDefault(),
		},
	}
}

// Collide implements spec §6's collide operation: place a at ta and b
// at tb, run the dispatcher (closed form first, GJK/EPA fallback
// otherwise), and translate the outcome into contract's geometric
// result type. Returns a *errs.Error wrapping req.Validate()'s failure
// unchanged, so callers can branch with errors.As regardless of which
// layer produced it.
func Collide(ta shape.Transform, a shape.Shape, tb shape.Transform, b shape.Shape, req contract.Request) (contract.CollisionResult, error) {
	if err := req.Validate(); err != nil {
		return contract.CollisionResult{}, err
	}

	opts := optionsFor(req)
	res, err := dispatch.Collide(ta, a, tb, b, opts)
	if err != nil {
		return contract.CollisionResult{}, err
	}
	if !res.Collision {
		return contract.CollisionResult{}, nil
	}

	out := contract.CollisionResult{
		Collision:     true,
		Normal:        res.Normal,
		Depth:         res.Depth,
		NextWarmStart: res.Normal,
	}
	if len(res.Contacts) > 0 {
		out.Contacts = make([]contract.ContactPoint, len(res.Contacts))
		for i, c := range res.Contacts {
			out.Contacts[i] = contract.ContactPoint{Position: c.Position, OnA: c.OnA, OnB: c.OnB, Depth: res.Depth}
		}
	}
	return out, nil
}

// Distance implements spec §6's distance operation: always runs GJK,
// reporting a negative Distance when the shapes already overlap (the
// caller should switch to Collide for penetration detail, per spec
// §6's documented contract — Distance never runs EPA itself). A
// KindToleranceSaturated error is returned alongside the computed
// value rather than in place of it (spec §7): only a harder failure
// discards the result.
func Distance(ta shape.Transform, a shape.Shape, tb shape.Transform, b shape.Shape, req contract.Request) (contract.DistanceResult, error) {
	if err := req.Validate(); err != nil {
		return contract.DistanceResult{}, err
	}

	cfg := gjk.Config{Tolerance: req.ToleranceOrDefault(), WarmStart: req.EffectiveWarmStart()}
	dist, wa, wb, err := dispatch.Distance(ta, a, tb, b, cfg)
	if err != nil && !errs.IsToleranceSaturated(err) {
		return contract.DistanceResult{}, err
	}
	return contract.DistanceResult{Distance: dist, ClosestA: wa, ClosestB: wb, NextWarmStart: wb.Sub(wa)}, err
}

// ShapeTriangleIntersect implements spec §6/§4.G's shape-triangle
// operation: s at ts against the triangle (v0, v1, v2) placed at tt
// (pass shape.Identity() when the vertices are already in world
// coordinates).
func ShapeTriangleIntersect(ts shape.Transform, s shape.Shape, v0, v1, v2 mgl64.Vec3, tt shape.Transform, req contract.Request) (contract.CollisionResult, error) {
	if err := req.Validate(); err != nil {
		return contract.CollisionResult{}, err
	}

	opts := optionsFor(req)
	res, err := triangle.Intersect(ts, s, v0, v1, v2, tt, triangle.Options{Options: opts.Options, GJK: opts.GJK, EPA: opts.EPA})
	if err != nil {
		return contract.CollisionResult{}, err
	}
	if !res.Collision {
		return contract.CollisionResult{}, nil
	}

	out := contract.CollisionResult{Collision: true, Normal: res.Normal, Depth: res.Depth, NextWarmStart: res.Normal}
	if req.EnableContact {
		out.Contacts = []contract.ContactPoint{{Position: res.Position, Depth: res.Depth}}
	}
	return out, nil
}
