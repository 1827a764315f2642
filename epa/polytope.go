package epa

import (
	"math"

	"github.com/gear/fcl/gjk"
	"github.com/go-gl/mathgl/mgl64"
)

// minFaceDistance is the minimum face distance from the origin before
// a face is treated as degenerate and skipped. Grounded on the
// teacher's EPAMinFaceDistance.
const minFaceDistance = 1e-4

// normalSnapThreshold clamps nearly-zero normal components to exactly
// zero for numerical stability on axis-aligned contacts. Grounded on
// the teacher's NormalSnapThreshold.
const normalSnapThreshold = 1e-8

// polytope is the expanding polytope itself: a plain local value, not
// pooled. Spec §5 runs narrow-phase calls single-threaded per call
// with no retained state between them, so the teacher's sync.Pool
// reuse of its builder buffers across calls buys nothing here; a
// polytope lives for exactly one Solve call.
type polytope struct {
	faces []face
}

// buildInitial constructs the four starting faces of the polytope from
// the tetrahedron GJK returned. Grounded on the teacher's
// BuildInitialFaces / createFaceOutward.
func buildInitial(verts []gjk.Vertex) polytope {
	p0, p1, p2, p3 := verts[0], verts[1], verts[2], verts[3]

	candidates := [4]face{
		makeFaceOutward(p0, p1, p2, p3),
		makeFaceOutward(p0, p2, p3, p1),
		makeFaceOutward(p0, p3, p1, p2),
		makeFaceOutward(p1, p3, p2, p0),
	}

	var pt polytope
	for _, f := range candidates {
		if f.distance >= minFaceDistance {
			pt.faces = append(pt.faces, f)
		}
	}
	if len(pt.faces) < 3 {
		pt.faces = candidates[:]
	}
	return pt
}

// makeFaceOutward builds a face from three polytope vertices, oriented
// so its normal points away from the tetrahedron's fourth (opposite)
// vertex.
func makeFaceOutward(v0, v1, v2, opposite gjk.Vertex) face {
	f := face{verts: [3]gjk.Vertex{v0, v1, v2}}

	edge1 := v1.W.Sub(v0.W)
	edge2 := v2.W.Sub(v0.W)
	normal := edge1.Cross(edge2)

	length := normal.Len()
	if length < 1e-8 {
		f.normal = mgl64.Vec3{0, 1, 0}
		f.distance = minFaceDistance
		return f
	}
	normal = normal.Mul(1 / length)

	if normal.Dot(opposite.W.Sub(v0.W)) > 0 {
		normal = normal.Mul(-1)
	}

	distance := v0.W.Dot(normal)
	if distance < 0 {
		normal = normal.Mul(-1)
		distance = -distance
	}
	if distance < minFaceDistance {
		distance = minFaceDistance
	}

	f.normal = snapNormal(normal)
	f.distance = distance
	return f
}

func (p *polytope) closestIndex() int {
	idx := 0
	for i := 1; i < len(p.faces); i++ {
		if p.faces[i].distance < p.faces[idx].distance {
			idx = i
		}
	}
	return idx
}

// expand removes every face visible from the new support vertex and
// reconnects the resulting silhouette to it, the core EPA expansion
// step. Grounded on the teacher's AddPointAndRebuildFaces.
func (p *polytope) expand(support gjk.Vertex) {
	visible := make([]int, 0, len(p.faces))
	for i, f := range p.faces {
		if support.W.Sub(f.verts[0].W).Dot(f.normal) > 0 {
			visible = append(visible, i)
		}
	}
	if len(visible) >= len(p.faces) {
		visible = []int{p.closestIndex()}
	}

	edges := boundaryEdges(p.faces, visible)

	visibleSet := make(map[int]bool, len(visible))
	for _, i := range visible {
		visibleSet[i] = true
	}
	kept := p.faces[:0]
	for i, f := range p.faces {
		if !visibleSet[i] {
			kept = append(kept, f)
		}
	}
	p.faces = kept

	for _, e := range edges {
		p.faces = append(p.faces, makeFaceOutward(e.a, e.b, support, centroid(p.faces)))
	}

	if len(p.faces) == 0 {
		p.faces = append(p.faces, face{
			verts:    [3]gjk.Vertex{support, support, support},
			normal:   mgl64.Vec3{0, 1, 0},
			distance: minFaceDistance,
		})
	}
}

// boundaryEdges collects the edges of the visible faces that occur
// exactly once: the silhouette separating the removed region from the
// rest of the polytope.
func boundaryEdges(faces []face, visible []int) []edgeEntry {
	var entries []edgeEntry
	add := func(a, b gjk.Vertex) {
		lo, hi := a, b
		if compareVec3(lo.W, hi.W) > 0 {
			lo, hi = hi, lo
		}
		for i := range entries {
			if compareVec3(entries[i].a.W, lo.W) == 0 && compareVec3(entries[i].b.W, hi.W) == 0 {
				entries[i].count++
				return
			}
		}
		entries = append(entries, edgeEntry{a: lo, b: hi, count: 1})
	}

	for _, i := range visible {
		f := faces[i]
		add(f.verts[0], f.verts[1])
		add(f.verts[1], f.verts[2])
		add(f.verts[2], f.verts[0])
	}

	boundary := entries[:0]
	for _, e := range entries {
		if e.count == 1 {
			boundary = append(boundary, e)
		}
	}
	return boundary
}

func centroid(faces []face) mgl64.Vec3 {
	seen := make(map[[3]float64]bool)
	sum := mgl64.Vec3{}
	n := 0
	for _, f := range faces {
		for _, v := range f.verts {
			key := [3]float64{v.W.X(), v.W.Y(), v.W.Z()}
			if seen[key] {
				continue
			}
			seen[key] = true
			sum = sum.Add(v.W)
			n++
		}
	}
	if n == 0 {
		return mgl64.Vec3{}
	}
	return sum.Mul(1 / float64(n))
}

func snapNormal(n mgl64.Vec3) mgl64.Vec3 {
	x, y, z := n.X(), n.Y(), n.Z()
	if math.Abs(x) < normalSnapThreshold {
		x = 0
	}
	if math.Abs(y) < normalSnapThreshold {
		y = 0
	}
	if math.Abs(z) < normalSnapThreshold {
		z = 0
	}
	clamped := mgl64.Vec3{x, y, z}
	length := clamped.Len()
	if length < 1e-8 {
		return mgl64.Vec3{0, 1, 0}
	}
	return clamped.Mul(1 / length)
}
