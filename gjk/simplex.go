package gjk

import "github.com/go-gl/mathgl/mgl64"

// Vertex is one point of a GJK simplex: its position on the Minkowski
// difference plus the two world-space witness points on A and B that
// produced it, so a terminal simplex can be turned into contact
// witnesses by a weighted combination (spec §4.C step 5: "witnesses
// are the convex combinations in each shape's support history").
type Vertex struct {
	W        mgl64.Vec3
	OnA, OnB mgl64.Vec3
}

// Simplex is 1-4 affinely independent Minkowski-difference points,
// exported so epa.Solve can consume the terminal tetrahedron.
// Grounded on gjk.Simplex in the teacher, generalized to carry
// per-Vertex witnesses.
type Simplex struct {
	verts [4]Vertex
	n     int
}

// Points returns the simplex's current Minkowski-difference points.
func (s Simplex) Points() []mgl64.Vec3 {
	out := make([]mgl64.Vec3, s.n)
	for i := 0; i < s.n; i++ {
		out[i] = s.verts[i].W
	}
	return out
}

// Count returns how many points the simplex currently holds.
func (s Simplex) Count() int { return s.n }

// Vertices returns the simplex's points together with their witnesses,
// for epa.Solve to build an initial polytope from.
func (s Simplex) Vertices() []Vertex {
	out := make([]Vertex, s.n)
	copy(out, s.verts[:s.n])
	return out
}

func (s *Simplex) add(v Vertex) {
	s.verts[s.n] = v
	s.n++
}

func weightedWitness(verts []Vertex, weights []float64) (onA, onB mgl64.Vec3) {
	for i, v := range verts {
		onA = onA.Add(v.OnA.Mul(weights[i]))
		onB = onB.Add(v.OnB.Mul(weights[i]))
	}
	return onA, onB
}

const reduceEpsilon = 1e-10

// reduce finds the point of the current simplex closest to the origin
// (spec §4.C step 3: "subsimplex reduction"), dropping vertices not
// involved in that closest point's convex combination. It follows the
// canonical Vertex/edge/face/volume tie-break order spec §4.C
// requires. Returns containsOrigin=true when s is a tetrahedron
// enclosing the origin (spec §4.C step 4), in which case the caller
// should hand s off to EPA unmodified.
func reduce(s Simplex) (closest mgl64.Vec3, kept []Vertex, weights []float64, containsOrigin bool) {
	switch s.n {
	case 1:
		return s.verts[0].W, []Vertex{s.verts[0]}, []float64{1}, false
	case 2:
		c, k, w := reduceLine(s.verts[0], s.verts[1])
		return c, k, w, false
	case 3:
		c, k, w := reduceTriangle(s.verts[0], s.verts[1], s.verts[2])
		return c, k, w, false
	case 4:
		return reduceTetrahedron(s.verts[3], s.verts[2], s.verts[1], s.verts[0])
	}
	return mgl64.Vec3{}, nil, nil, false
}

// reduceLine returns the closest point to the origin on segment a-b,
// the surviving Vertex subset, and their barycentric weights.
func reduceLine(a, b Vertex) (mgl64.Vec3, []Vertex, []float64) {
	ab := b.W.Sub(a.W)
	lenSqr := ab.LenSqr()
	if lenSqr < reduceEpsilon {
		return a.W, []Vertex{a}, []float64{1}
	}
	t := -a.W.Dot(ab) / lenSqr
	if t <= 0 {
		return a.W, []Vertex{a}, []float64{1}
	}
	if t >= 1 {
		return b.W, []Vertex{b}, []float64{1}
	}
	closest := a.W.Add(ab.Mul(t))
	return closest, []Vertex{a, b}, []float64{1 - t, t}
}

// reduceTriangle implements the standard Vertex/edge/face
// Voronoi-region closest point test for the origin against triangle
// a-b-c (Ericson, "Real-Time Collision Detection" §5.1.5), specialized
// to p=origin. Degenerate (collinear) triangles fall back to the
// best edge.
func reduceTriangle(a, b, c Vertex) (mgl64.Vec3, []Vertex, []float64) {
	ab := b.W.Sub(a.W)
	ac := c.W.Sub(a.W)
	normal := ab.Cross(ac)
	if normal.LenSqr() < reduceEpsilon {
		cl, k, w := reduceLine(a, b)
		return cl, k, w
	}

	ap := a.W.Mul(-1)
	d1 := ab.Dot(ap)
	d2 := ac.Dot(ap)
	if d1 <= 0 && d2 <= 0 {
		return a.W, []Vertex{a}, []float64{1}
	}

	bp := b.W.Mul(-1)
	d3 := ab.Dot(bp)
	d4 := ac.Dot(bp)
	if d3 >= 0 && d4 <= d3 {
		return b.W, []Vertex{b}, []float64{1}
	}

	vc := d1*d4 - d3*d2
	if vc <= 0 && d1 >= 0 && d3 <= 0 {
		v := d1 / (d1 - d3)
		return a.W.Add(ab.Mul(v)), []Vertex{a, b}, []float64{1 - v, v}
	}

	cp := c.W.Mul(-1)
	d5 := ab.Dot(cp)
	d6 := ac.Dot(cp)
	if d6 >= 0 && d5 <= d6 {
		return c.W, []Vertex{c}, []float64{1}
	}

	vb := d5*d2 - d1*d6
	if vb <= 0 && d2 >= 0 && d6 <= 0 {
		w := d2 / (d2 - d6)
		return a.W.Add(ac.Mul(w)), []Vertex{a, c}, []float64{1 - w, w}
	}

	va := d3*d6 - d5*d4
	if va <= 0 && (d4-d3) >= 0 && (d5-d6) >= 0 {
		w := (d4 - d3) / ((d4 - d3) + (d5 - d6))
		return b.W.Add(c.W.Sub(b.W).Mul(w)), []Vertex{b, c}, []float64{1 - w, w}
	}

	denom := 1.0 / (va + vb + vc)
	v := vb * denom
	w := vc * denom
	u := 1 - v - w
	return a.W.Mul(u).Add(ab.Mul(v)).Add(ac.Mul(w)), []Vertex{a, b, c}, []float64{u, v, w}
}

// reduceTetrahedron tests whether the origin lies inside tetrahedron
// a-b-c-d (a is the most recently added Vertex, mirroring the
// teacher's ordering); if so it reports containsOrigin=true so the
// caller can hand the full tetrahedron to EPA. Otherwise it evaluates
// every face the origin is outside of and keeps the globally closest
// one's triangle reduction, rather than the teacher's first-match
// shortcut, since distance mode needs the true closest point.
func reduceTetrahedron(a, b, c, d Vertex) (mgl64.Vec3, []Vertex, []float64, bool) {
	ao := a.W.Mul(-1)

	ab := b.W.Sub(a.W)
	ac := c.W.Sub(a.W)
	ad := d.W.Sub(a.W)

	abc := ab.Cross(ac)
	if abc.Dot(ad) > 0 {
		abc = abc.Mul(-1)
	}
	acd := ac.Cross(ad)
	if acd.Dot(ab) > 0 {
		acd = acd.Mul(-1)
	}
	adb := ad.Cross(ab)
	if adb.Dot(ac) > 0 {
		adb = adb.Mul(-1)
	}
	bcd := b.W.Sub(c.W).Cross(d.W.Sub(c.W))
	if bcd.Dot(c.W.Sub(a.W).Mul(-1)) > 0 {
		bcd = bcd.Mul(-1)
	}

	if abc.LenSqr() < reduceEpsilon || acd.LenSqr() < reduceEpsilon || adb.LenSqr() < reduceEpsilon {
		cl, k, w := reduceTriangle(c, b, a)
		return cl, k, w, false
	}

	type candidate struct {
		outside bool
		tri     [3]Vertex
	}
	cands := []candidate{
		{abc.Dot(ao) > 0, [3]Vertex{c, b, a}},
		{acd.Dot(ao) > 0, [3]Vertex{d, c, a}},
		{adb.Dot(ao) > 0, [3]Vertex{b, d, a}},
	}

	anyOutside := false
	var bestPoint mgl64.Vec3
	var bestKept []Vertex
	var bestWeights []float64
	bestDist := mgl64.Vec3{}.LenSqr()
	first := true

	for _, cnd := range cands {
		if !cnd.outside {
			continue
		}
		anyOutside = true
		p, k, w := reduceTriangle(cnd.tri[0], cnd.tri[1], cnd.tri[2])
		dist := p.LenSqr()
		if first || dist < bestDist {
			first = false
			bestPoint, bestKept, bestWeights, bestDist = p, k, w, dist
		}
	}

	if !anyOutside {
		return mgl64.Vec3{}, []Vertex{a, b, c, d}, []float64{0.25, 0.25, 0.25, 0.25}, true
	}
	return bestPoint, bestKept, bestWeights, false
}
