// Package dispatch implements spec §4.F: a static table keyed on the
// ordered pair of shape.NodeType that routes a collision query to a
// closed-form pair routine when one exists, to the closed-form routine
// for the reverse operand order with normal/witness post-processing
// when only that order has one, or to the general GJK/EPA solver when
// neither does.
//
// New relative to the teacher, which special-cases nothing and always
// runs GJK/EPA; grounded in shape on the teacher's ShapeType enum idiom
// (actor/shape.go) generalized into a full pair matrix.
package dispatch

import (
	"github.com/gear/fcl/epa"
	"github.com/gear/fcl/gjk"
	"github.com/gear/fcl/internal/errs"
	"github.com/gear/fcl/pair"
	"github.com/gear/fcl/shape"
	"github.com/gear/fcl/support"
	"github.com/go-gl/mathgl/mgl64"
)

// Options carries the per-call tunables the dispatcher threads down
// into whichever backend it picks.
type Options struct {
	pair.Options
	GJK gjk.Config
	EPA epa.Config
}

// entry is one cell of the dispatch table: a routine bound to a fixed
// operand order, or nil when no closed form exists for that order.
type entry func(ta shape.Transform, a shape.Shape, tb shape.Transform, b shape.Shape, o Options) (pair.Result, bool)

// table[i][j] holds the routine for (NodeType i, NodeType j) in that
// exact order, or nil if unsupported in that order. Built once at
// package init from the concrete closed-form routines in pair;
// entries are deliberately asymmetric — box-sphere only has a
// registered entry as (Sphere, Box) below, so (Box, Sphere) falls
// through to the reverse-order path dispatch.F describes.
var table [10][10]entry

func init() {
	reg := func(x, y shape.NodeType, fn entry) { table[x][y] = fn }

	reg(shape.TypeSphere, shape.TypeSphere, func(ta shape.Transform, a shape.Shape, tb shape.Transform, b shape.Shape, o Options) (pair.Result, bool) {
		return pair.SphereSphere(ta, a.(*shape.Sphere), tb, b.(*shape.Sphere), o.Options), true
	})
	reg(shape.TypeSphere, shape.TypeBox, func(ta shape.Transform, a shape.Shape, tb shape.Transform, b shape.Shape, o Options) (pair.Result, bool) {
		return pair.SphereBox(ta, a.(*shape.Sphere), tb, b.(*shape.Box), o.Options), true
	})
	reg(shape.TypeSphere, shape.TypeCapsule, func(ta shape.Transform, a shape.Shape, tb shape.Transform, b shape.Shape, o Options) (pair.Result, bool) {
		return pair.SphereCapsule(ta, a.(*shape.Sphere), tb, b.(*shape.Capsule), o.Options), true
	})
	reg(shape.TypeSphere, shape.TypeCylinder, func(ta shape.Transform, a shape.Shape, tb shape.Transform, b shape.Shape, o Options) (pair.Result, bool) {
		return pair.SphereCylinder(ta, a.(*shape.Sphere), tb, b.(*shape.Cylinder), o.Options), true
	})
	reg(shape.TypeSphere, shape.TypeCone, func(ta shape.Transform, a shape.Shape, tb shape.Transform, b shape.Shape, o Options) (pair.Result, bool) {
		return pair.SphereCone(ta, a.(*shape.Sphere), tb, b.(*shape.Cone), o.Options), true
	})
	reg(shape.TypeBox, shape.TypeBox, func(ta shape.Transform, a shape.Shape, tb shape.Transform, b shape.Shape, o Options) (pair.Result, bool) {
		return pair.BoxBox(ta, a.(*shape.Box), tb, b.(*shape.Box), o.Options), true
	})

	for nt := shape.NodeType(0); int(nt) < 10; nt++ {
		if nt == shape.TypeHalfspace || nt == shape.TypePlane {
			continue
		}
		nt := nt
		reg(nt, shape.TypeHalfspace, func(ta shape.Transform, a shape.Shape, tb shape.Transform, b shape.Shape, o Options) (pair.Result, bool) {
			return pair.ShapeHalfspace(ta, a, tb, b.(*shape.Halfspace), o.Options), true
		})
		reg(nt, shape.TypePlane, func(ta shape.Transform, a shape.Shape, tb shape.Transform, b shape.Shape, o Options) (pair.Result, bool) {
			return pair.ShapePlane(ta, a, tb, b.(*shape.Plane), o.Options), true
		})
	}
}

// Collide runs the dispatcher of spec §4.F: try the natural operand
// order, then the reverse order with post-processing, then fall back
// to GJK/EPA for any convex-convex pair. A contract is a pure function
// of its arguments: it neither mutates shapes nor retains transforms.
func Collide(ta shape.Transform, a shape.Shape, tb shape.Transform, b shape.Shape, o Options) (pair.Result, error) {
	if fn := table[a.Type()][b.Type()]; fn != nil {
		res, _ := fn(ta, a, tb, b, o)
		return res, nil
	}
	if fn := table[b.Type()][a.Type()]; fn != nil {
		res, _ := fn(tb, b, ta, a, o)
		return pair.Swap(res), nil
	}
	return gjkEPAFallback(ta, a, tb, b, o)
}

// gjkEPAFallback runs the general convex-convex path (spec §4.F: "When
// both orders are unsupported, dispatch falls back to GJK/EPA on the
// oracle, which works for any convex-convex pair").
func gjkEPAFallback(ta shape.Transform, a shape.Shape, tb shape.Transform, b shape.Shape, o Options) (pair.Result, error) {
	oracle := support.Oracle{A: support.Body{Shape: a, Transform: ta}, B: support.Body{Shape: b, Transform: tb}}

	gjkRes, err := gjk.Solve(oracle, o.GJK)
	if err != nil {
		return pair.Result{}, err
	}
	if !gjkRes.Collision {
		return pair.Result{}, nil
	}

	epaCfg := o.EPA
	epaCfg.EnableContact = o.EnableContact
	epaCfg.MaxContacts = o.MaxContacts
	epaRes, err := epa.Solve(oracle, gjkRes.Simplex, epaCfg)
	if err != nil {
		return pair.Result{}, err
	}

	res := pair.Result{Collision: true, Normal: epaRes.Normal, Depth: epaRes.Depth}
	if o.EnableContact {
		res.Contacts = make([]pair.Contact, len(epaRes.Contacts))
		for i, c := range epaRes.Contacts {
			res.Contacts[i] = pair.Contact{Position: c.Position, OnA: c.OnA, OnB: c.OnB}
		}
	}
	return res, nil
}

// Distance answers the separation query of spec §6's distance
// operation: always runs GJK (distance mode has no closed-form
// shortcuts in this table), returning a negative value when the
// shapes overlap — callers needing penetration detail should call
// Collide instead, per spec §6. A KindToleranceSaturated error is not
// fatal: GJK still hands back its best-known distance and witnesses
// alongside it (spec §7: "returned alongside the value"), so that
// value is still returned rather than discarded.
func Distance(ta shape.Transform, a shape.Shape, tb shape.Transform, b shape.Shape, cfg gjk.Config) (float64, mgl64.Vec3, mgl64.Vec3, error) {
	oracle := support.Oracle{A: support.Body{Shape: a, Transform: ta}, B: support.Body{Shape: b, Transform: tb}}
	res, err := gjk.Solve(oracle, cfg)
	if err != nil && !errs.IsToleranceSaturated(err) {
		return 0, mgl64.Vec3{}, mgl64.Vec3{}, err
	}
	if res.Collision {
		return -1, res.WitnessA, res.WitnessB, err
	}
	return res.Distance, res.WitnessA, res.WitnessB, err
}
