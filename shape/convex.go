package shape

import (
	"math"

	"github.com/gear/fcl/internal/errs"
	"github.com/go-gl/mathgl/mgl64"
)

// Face is a triangular face of a Convex's boundary, referencing
// vertex indices into the owning Convex's Vertices slice. Adjacency
// across faces lets a caller hill-climb the support query; the
// contract here is only the returned support value (spec §4.A).
type Face struct {
	A, B, C int
}

// Convex is a finite point set with a face adjacency, the catch-all
// variant for arbitrary convex polyhedra. Spec §3 invariant: at least
// four non-coplanar vertices.
type Convex struct {
	Vertices []mgl64.Vec3
	Faces    []Face
	aabb     AABB
	com      mgl64.Vec3
}

// NewConvex validates and constructs a Convex hull shape from an
// explicit vertex set and face list.
func NewConvex(vertices []mgl64.Vec3, faces []Face) (*Convex, error) {
	if len(vertices) < 4 {
		return nil, errs.Validation("convex: need at least 4 vertices, got %d", len(vertices))
	}
	for i, v := range vertices {
		if !finiteVec3(v) {
			return nil, errs.Validation("convex: vertex %d is not finite, got %v", i, v)
		}
	}
	if nonCoplanar(vertices) < 4 {
		return nil, errs.Validation("convex: vertices must not all be coplanar")
	}

	min, max := vertices[0], vertices[0]
	sum := mgl64.Vec3{}
	for _, v := range vertices {
		min = mgl64.Vec3{math.Min(min.X(), v.X()), math.Min(min.Y(), v.Y()), math.Min(min.Z(), v.Z())}
		max = mgl64.Vec3{math.Max(max.X(), v.X()), math.Max(max.Y(), v.Y()), math.Max(max.Z(), v.Z())}
		sum = sum.Add(v)
	}

	return &Convex{
		Vertices: vertices,
		Faces:    faces,
		aabb:     AABB{Min: min, Max: max},
		com:      sum.Mul(1.0 / float64(len(vertices))),
	}, nil
}

// nonCoplanar returns 4 when the vertex set spans three dimensions and
// 3 otherwise (len(vertices) when fewer than four are given), used only
// to reject a degenerate all-coplanar input at construction.
func nonCoplanar(vertices []mgl64.Vec3) int {
	if len(vertices) < 4 {
		return len(vertices)
	}
	p0 := vertices[0]
	var e1, e2 mgl64.Vec3
	foundE1 := false
	for _, v := range vertices[1:] {
		e := v.Sub(p0)
		if e.LenSqr() < 1e-18 {
			continue
		}
		if !foundE1 {
			e1 = e
			foundE1 = true
			continue
		}
		if e1.Cross(e).LenSqr() > 1e-18 {
			e2 = e
			normal := e1.Cross(e2)
			for _, w := range vertices {
				if math.Abs(w.Sub(p0).Dot(normal)) > 1e-9*normal.Len() {
					return 4
				}
			}
		}
	}
	return 3
}

func (c *Convex) Type() NodeType { return TypeConvex }

func (c *Convex) LocalAABB() AABB { return c.aabb }

func (c *Convex) AABBCenterRadius() (mgl64.Vec3, float64) {
	center := c.aabb.Center()
	radius := 0.0
	for _, v := range c.Vertices {
		if d := v.Sub(center).Len(); d > radius {
			radius = d
		}
	}
	return center, radius
}

// Support is the exhaustive max over vertices (spec §4.A). Ties are
// broken by lexicographically-smallest index, which is stable across
// calls with equal d.
func (c *Convex) Support(d mgl64.Vec3) mgl64.Vec3 {
	best := c.Vertices[0]
	bestDot := best.Dot(d)
	for _, v := range c.Vertices[1:] {
		if dot := v.Dot(d); dot > bestDot {
			best, bestDot = v, dot
		}
	}
	return best
}

func (c *Convex) Volume() float64 {
	// Divergence-theorem volume over the triangulated boundary.
	var vol float64
	for _, f := range c.Faces {
		a, b, cc := c.Vertices[f.A], c.Vertices[f.B], c.Vertices[f.C]
		vol += a.Dot(b.Cross(cc))
	}
	return math.Abs(vol) / 6.0
}

func (c *Convex) CenterOfMass() mgl64.Vec3 { return c.com }

func (c *Convex) Inertia(mass float64) mgl64.Mat3 {
	// Point-mass approximation distributing mass uniformly over the
	// vertex set about the centroid; adequate for a caller's coarse
	// dynamics estimate, not a source of narrow-phase geometry.
	if len(c.Vertices) == 0 || mass == 0 {
		return mgl64.Mat3{}
	}
	perVertex := mass / float64(len(c.Vertices))
	var ixx, iyy, izz, ixy, ixz, iyz float64
	for _, v := range c.Vertices {
		r := v.Sub(c.com)
		x, y, z := r.X(), r.Y(), r.Z()
		ixx += perVertex * (y*y + z*z)
		iyy += perVertex * (x*x + z*z)
		izz += perVertex * (x*x + y*y)
		ixy -= perVertex * x * y
		ixz -= perVertex * x * z
		iyz -= perVertex * y * z
	}
	return mgl64.Mat3{
		ixx, ixy, ixz,
		ixy, iyy, iyz,
		ixz, iyz, izz,
	}
}
