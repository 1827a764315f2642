package shape

import (
	"math"

	"github.com/gear/fcl/internal/errs"
	"github.com/go-gl/mathgl/mgl64"
)

// Triangle is three vertex positions in local frame. It is the
// degenerate convex polytope the shape-triangle engine (spec §4.G)
// treats BVH-supplied faces as.
type Triangle struct {
	V0, V1, V2 mgl64.Vec3
	aabb       AABB
}

func NewTriangle(v0, v1, v2 mgl64.Vec3) (*Triangle, error) {
	if !finiteVec3(v0) || !finiteVec3(v1) || !finiteVec3(v2) {
		return nil, errs.Validation("triangle: vertices must be finite, got (%v, %v, %v)", v0, v1, v2)
	}
	min := mgl64.Vec3{
		math.Min(v0.X(), math.Min(v1.X(), v2.X())),
		math.Min(v0.Y(), math.Min(v1.Y(), v2.Y())),
		math.Min(v0.Z(), math.Min(v1.Z(), v2.Z())),
	}
	max := mgl64.Vec3{
		math.Max(v0.X(), math.Max(v1.X(), v2.X())),
		math.Max(v0.Y(), math.Max(v1.Y(), v2.Y())),
		math.Max(v0.Z(), math.Max(v1.Z(), v2.Z())),
	}
	return &Triangle{V0: v0, V1: v1, V2: v2, aabb: AABB{Min: min, Max: max}}, nil
}

func (t *Triangle) Type() NodeType { return TypeTriangle }

func (t *Triangle) LocalAABB() AABB { return t.aabb }

func (t *Triangle) AABBCenterRadius() (mgl64.Vec3, float64) {
	center := t.aabb.Center()
	r := math.Max(t.V0.Sub(center).Len(), math.Max(t.V1.Sub(center).Len(), t.V2.Sub(center).Len()))
	return center, r
}

func (t *Triangle) Support(d mgl64.Vec3) mgl64.Vec3 {
	best, bestDot := t.V0, t.V0.Dot(d)
	if dot := t.V1.Dot(d); dot > bestDot {
		best, bestDot = t.V1, dot
	}
	if dot := t.V2.Dot(d); dot > bestDot {
		best, bestDot = t.V2, dot
	}
	return best
}

func (t *Triangle) Volume() float64 { return 0 }

func (t *Triangle) CenterOfMass() mgl64.Vec3 {
	return t.V0.Add(t.V1).Add(t.V2).Mul(1.0 / 3.0)
}

func (t *Triangle) Inertia(mass float64) mgl64.Mat3 { return mgl64.Mat3{} }

// Normal returns the triangle's unit face normal, right-hand oriented
// from V0->V1->V2.
func (t *Triangle) Normal() mgl64.Vec3 {
	n := t.V1.Sub(t.V0).Cross(t.V2.Sub(t.V0))
	if n.LenSqr() < 1e-20 {
		return mgl64.Vec3{0, 0, 1}
	}
	return n.Normalize()
}

// ClosestPoint returns the closest point on the (solid) triangle to p,
// and the squared distance to it. Standard region-based closest point
// on a triangle.
func (t *Triangle) ClosestPoint(p mgl64.Vec3) (mgl64.Vec3, float64) {
	a, b, c := t.V0, t.V1, t.V2
	ab := b.Sub(a)
	ac := c.Sub(a)
	ap := p.Sub(a)

	d1 := ab.Dot(ap)
	d2 := ac.Dot(ap)
	if d1 <= 0 && d2 <= 0 {
		return a, a.Sub(p).LenSqr()
	}

	bp := p.Sub(b)
	d3 := ab.Dot(bp)
	d4 := ac.Dot(bp)
	if d3 >= 0 && d4 <= d3 {
		return b, b.Sub(p).LenSqr()
	}

	vc := d1*d4 - d3*d2
	if vc <= 0 && d1 >= 0 && d3 <= 0 {
		v := d1 / (d1 - d3)
		pt := a.Add(ab.Mul(v))
		return pt, pt.Sub(p).LenSqr()
	}

	cp := p.Sub(c)
	d5 := ab.Dot(cp)
	d6 := ac.Dot(cp)
	if d6 >= 0 && d5 <= d6 {
		return c, c.Sub(p).LenSqr()
	}

	vb := d5*d2 - d1*d6
	if vb <= 0 && d2 >= 0 && d6 <= 0 {
		w := d2 / (d2 - d6)
		pt := a.Add(ac.Mul(w))
		return pt, pt.Sub(p).LenSqr()
	}

	va := d3*d6 - d5*d4
	if va <= 0 && (d4-d3) >= 0 && (d5-d6) >= 0 {
		w := (d4 - d3) / ((d4 - d3) + (d5 - d6))
		pt := b.Add(c.Sub(b).Mul(w))
		return pt, pt.Sub(p).LenSqr()
	}

	denom := 1.0 / (va + vb + vc)
	v := vb * denom
	w := vc * denom
	pt := a.Add(ab.Mul(v)).Add(ac.Mul(w))
	return pt, pt.Sub(p).LenSqr()
}
