package pair

import (
	"math"

	"github.com/gear/fcl/shape"
	"github.com/go-gl/mathgl/mgl64"
)

// satAxisEpsilon is the minimum squared length of a candidate
// edge-edge cross-product axis before it is treated as degenerate
// (parallel edges) and skipped — cross products of near-parallel
// vectors don't separate anything. Grounded on the tolerance
// viamrobotics-rdk's obbSATMaxGap applies to its R-matrix entries.
const satAxisEpsilon = 1e-9

type satAxis struct {
	dir mgl64.Vec3
	// faceOwner is 0 for A, 1 for B, -1 for an edge-edge axis.
	faceOwner int
	// localIndex is the axis index (0,1,2) within its owning box's
	// local frame for a face axis, or unused for edge-edge axes.
	localIndex int
}

// BoxBox is the 15-axis separating-axis test of spec §4.E: the three
// face normals of each box plus the nine pairwise edge cross-products.
// Grounded on the Ericson precomputed-rotation-matrix SAT retrieved in
// other_examples' viamrobotics-rdk spatialmath sat_generic.go,
// reimplemented against mgl64 types (the reference works over a flat
// []float64 register file) and extended to track which axis achieves
// the minimum overlap, since a contact manifold needs to know which
// box owns the reference face, not just the gap magnitude.
//
// On a face-axis result the manifold is the Sutherland-Hodgman clip
// of the incident box's near face against the reference box's four
// side planes (spec §4.E: "contact points are derived from the
// clipped face polygon"); on an edge-axis result it is the single
// closest point between the two contributing edges. Spec §9's Open
// Question permits returning only the deepest vertex — this routine
// returns the fuller clipped polygon but guarantees that vertex is
// always included.
func BoxBox(ta shape.Transform, a *shape.Box, tb shape.Transform, b *shape.Box, opts Options) Result {
	axA := [3]mgl64.Vec3{ta.Direction(mgl64.Vec3{1, 0, 0}), ta.Direction(mgl64.Vec3{0, 1, 0}), ta.Direction(mgl64.Vec3{0, 0, 1})}
	axB := [3]mgl64.Vec3{tb.Direction(mgl64.Vec3{1, 0, 0}), tb.Direction(mgl64.Vec3{0, 1, 0}), tb.Direction(mgl64.Vec3{0, 0, 1})}
	he := [2]mgl64.Vec3{a.HalfExtents, b.HalfExtents}

	centerDelta := tb.Position.Sub(ta.Position)

	var axes []satAxis
	for i := 0; i < 3; i++ {
		axes = append(axes, satAxis{dir: axA[i], faceOwner: 0, localIndex: i})
	}
	for i := 0; i < 3; i++ {
		axes = append(axes, satAxis{dir: axB[i], faceOwner: 1, localIndex: i})
	}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			cross := axA[i].Cross(axB[j])
			if cross.LenSqr() < satAxisEpsilon {
				continue
			}
			axes = append(axes, satAxis{dir: cross.Normalize(), faceOwner: -1})
		}
	}

	bestOverlap := math.Inf(1)
	bestAxis := satAxis{}
	bestSign := 1.0

	for _, axis := range axes {
		ra := projectedRadius(axA, he[0], axis.dir)
		rb := projectedRadius(axB, he[1], axis.dir)
		centerProj := centerDelta.Dot(axis.dir)
		overlap := ra + rb - math.Abs(centerProj)
		if overlap < 0 {
			return Result{}
		}
		if overlap < bestOverlap {
			bestOverlap = overlap
			bestAxis = axis
			if centerProj < 0 {
				bestSign = -1
			} else {
				bestSign = 1
			}
		}
	}

	// Normal points from A toward B: along the separating axis, in
	// whichever sign direction the centers actually separate.
	normal := bestAxis.dir.Mul(bestSign)

	res := Result{Collision: true, Normal: normal, Depth: bestOverlap}
	if !opts.EnableContact {
		return res
	}

	if bestAxis.faceOwner >= 0 {
		res.Contacts = faceFaceContacts(ta, a, tb, b, bestAxis, bestSign, bestOverlap, maxContactsOf(opts))
	} else {
		res.Contacts = edgeEdgeContact(ta, a, tb, b, normal, bestOverlap)
	}
	return res
}

// projectedRadius returns the half-width of a box's projection onto
// axis, the Σ halfExtent_i·|axis·localAxis_i| term of the SAT overlap
// test.
func projectedRadius(localAxes [3]mgl64.Vec3, he mgl64.Vec3, axis mgl64.Vec3) float64 {
	return he.X()*math.Abs(localAxes[0].Dot(axis)) +
		he.Y()*math.Abs(localAxes[1].Dot(axis)) +
		he.Z()*math.Abs(localAxes[2].Dot(axis))
}

// faceFaceContacts clips the incident box's near face against the
// reference box's four side planes in the reference box's local
// frame, the standard Sutherland-Hodgman manifold reduction. The
// reference box is whichever operand owns the winning face axis.
func faceFaceContacts(ta shape.Transform, a *shape.Box, tb shape.Transform, b *shape.Box, axis satAxis, sign, depth float64, maxContacts int) []Contact {
	var refTransform, incTransform shape.Transform
	var refBox, incBox *shape.Box
	var refIsA bool
	if axis.faceOwner == 0 {
		refTransform, refBox, incTransform, incBox, refIsA = ta, a, tb, b, true
	} else {
		refTransform, refBox, incTransform, incBox, refIsA = tb, b, ta, a, false
	}

	// Reference-local outward normal direction for the winning axis:
	// sign is relative to A->B; flip it into "outward from the
	// reference box" terms.
	var refOutwardLocal mgl64.Vec3
	outwardSign := sign
	if !refIsA {
		outwardSign = -sign
	}
	refOutwardLocal[axis.localIndex] = outwardSign

	refOutwardWorld := refTransform.Direction(refOutwardLocal)
	incidentLocalVerts := incBox.FaceVertices(incTransform.InverseDirection(refOutwardWorld.Mul(-1)))

	he := refBox.HalfExtents
	u, v := (axis.localIndex+1)%3, (axis.localIndex+2)%3
	limits := [2]float64{he[u], he[v]}

	// Transform the incident face's vertices into the reference box's
	// local frame, carrying along their world position for later
	// depth/position recovery.
	type clipVert struct {
		local mgl64.Vec3
		world mgl64.Vec3
	}
	poly := make([]clipVert, len(incidentLocalVerts))
	for i, lv := range incidentLocalVerts {
		world := incTransform.Point(lv)
		poly[i] = clipVert{local: refTransform.InversePoint(world), world: world}
	}

	clipAxis := func(poly []clipVert, axisIdx int, limit, side float64) []clipVert {
		var out []clipVert
		n := len(poly)
		for i := 0; i < n; i++ {
			cur := poly[i]
			next := poly[(i+1)%n]
			curIn := side*cur.local[axisIdx] <= side*limit
			nextIn := side*next.local[axisIdx] <= side*limit
			if curIn {
				out = append(out, cur)
			}
			if curIn != nextIn {
				denom := next.local[axisIdx] - cur.local[axisIdx]
				if math.Abs(denom) > 1e-12 {
					t := (side*limit - side*cur.local[axisIdx]) / (side * denom)
					out = append(out, clipVert{
						local: cur.local.Add(next.local.Sub(cur.local).Mul(t)),
						world: cur.world.Add(next.world.Sub(cur.world).Mul(t)),
					})
				}
			}
		}
		return out
	}

	poly = clipAxis(poly, u, limits[0], 1)
	poly = clipAxis(poly, u, limits[0], -1)
	poly = clipAxis(poly, v, limits[1], 1)
	poly = clipAxis(poly, v, limits[1], -1)

	refFaceOffset := he[axis.localIndex]
	if outwardSign < 0 {
		refFaceOffset = -refFaceOffset
	}

	type depthVert struct {
		clipVert
		penetration float64
	}
	deepest := make([]depthVert, 0, len(poly))
	for _, p := range poly {
		pen := outwardSign * (refFaceOffset - p.local[axis.localIndex])
		if pen >= -1e-6 {
			deepest = append(deepest, depthVert{clipVert: p, penetration: pen})
		}
	}
	if len(deepest) == 0 {
		return nil
	}

	// Always keep the single deepest vertex (spec §9's Open Question
	// guarantee), then add the rest up to maxContacts.
	bestIdx := 0
	for i := 1; i < len(deepest); i++ {
		if deepest[i].penetration > deepest[bestIdx].penetration {
			bestIdx = i
		}
	}

	var contacts []Contact
	onWorldPlane := func(world mgl64.Vec3) mgl64.Vec3 {
		local := refTransform.InversePoint(world)
		local[axis.localIndex] = refFaceOffset
		return refTransform.Point(local)
	}
	toContact := func(dv depthVert) Contact {
		incidentPoint := dv.world
		refPoint := onWorldPlane(incidentPoint)
		var onA, onB mgl64.Vec3
		if refIsA {
			onA, onB = refPoint, incidentPoint
		} else {
			onA, onB = incidentPoint, refPoint
		}
		return Contact{Position: onA.Add(onB).Mul(0.5), OnA: onA, OnB: onB}
	}

	contacts = append(contacts, toContact(deepest[bestIdx]))
	for i, dv := range deepest {
		if i == bestIdx || len(contacts) >= maxContacts {
			continue
		}
		contacts = append(contacts, toContact(dv))
	}
	return contacts
}

// edgeEdgeContact computes the single closest-point contact for an
// edge-edge SAT winner: the world-space segment on each box nearest
// the axis direction, reduced to their mutual closest point.
func edgeEdgeContact(ta shape.Transform, a *shape.Box, tb shape.Transform, b *shape.Box, normal mgl64.Vec3, depth float64) []Contact {
	edgeA := boxEdgeAlong(ta, a, ta.InverseDirection(normal))
	edgeB := boxEdgeAlong(tb, b, tb.InverseDirection(normal.Mul(-1)))

	pA, pB := closestPointsSegSeg(edgeA[0], edgeA[1], edgeB[0], edgeB[1])
	mid := pA.Add(pB).Mul(0.5)
	return []Contact{{Position: mid, OnA: pA, OnB: pB}}
}

// boxEdgeAlong returns the world-space endpoints of the box edge whose
// direction is most perpendicular to localDir (the edge contributing
// to the winning edge-edge SAT axis): the edge running along the local
// axis least aligned with localDir, placed at the support vertex along
// localDir on the other two axes.
func boxEdgeAlong(t shape.Transform, box *shape.Box, localDir mgl64.Vec3) [2]mgl64.Vec3 {
	he := box.HalfExtents
	abs := mgl64.Vec3{math.Abs(localDir.X()), math.Abs(localDir.Y()), math.Abs(localDir.Z())}
	axis := 0
	if abs.Y() < abs[axis] {
		axis = 1
	}
	if abs.Z() < abs[axis] {
		axis = 2
	}

	signOf := func(v float64) float64 {
		if v < 0 {
			return -1
		}
		return 1
	}
	base := mgl64.Vec3{signOf(localDir.X()) * he.X(), signOf(localDir.Y()) * he.Y(), signOf(localDir.Z()) * he.Z()}
	p0 := base
	p1 := base
	p0[axis] = -he[axis]
	p1[axis] = he[axis]
	return [2]mgl64.Vec3{t.Point(p0), t.Point(p1)}
}

// closestPointsSegSeg finds the closest pair of points between
// segments [p1,q1] and [p2,q2]. Standard textbook derivation.
func closestPointsSegSeg(p1, q1, p2, q2 mgl64.Vec3) (mgl64.Vec3, mgl64.Vec3) {
	d1 := q1.Sub(p1)
	d2 := q2.Sub(p2)
	r := p1.Sub(p2)
	a := d1.Dot(d1)
	e := d2.Dot(d2)
	f := d2.Dot(r)

	const eps = 1e-12
	var s, t float64
	if a <= eps && e <= eps {
		return p1, p2
	}
	if a <= eps {
		s = 0
		t = clamp(f/e, 0, 1)
	} else {
		c := d1.Dot(r)
		if e <= eps {
			t = 0
			s = clamp(-c/a, 0, 1)
		} else {
			b := d1.Dot(d2)
			denom := a*e - b*b
			if denom != 0 {
				s = clamp((b*f-c*e)/denom, 0, 1)
			} else {
				s = 0
			}
			t = (b*s + f) / e
			if t < 0 {
				t = 0
				s = clamp(-c/a, 0, 1)
			} else if t > 1 {
				t = 1
				s = clamp((b-c)/a, 0, 1)
			}
		}
	}
	return p1.Add(d1.Mul(s)), p2.Add(d2.Mul(t))
}
