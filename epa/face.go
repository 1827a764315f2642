package epa

import (
	"github.com/gear/fcl/gjk"
	"github.com/go-gl/mathgl/mgl64"
)

// face is a triangular boundary face of the expanding polytope: three
// Minkowski-difference vertices (carrying their witnesses on A and B),
// an outward unit normal, and the face plane's distance from the
// origin. Grounded on the teacher's epa.Face, generalized to carry
// gjk.Vertex instead of a bare mgl64.Vec3 so a converged face can be
// turned directly into contact witnesses.
type face struct {
	verts    [3]gjk.Vertex
	normal   mgl64.Vec3
	distance float64
}

// edgeEntry is a polytope boundary edge seen during face removal,
// tracked by occurrence count over the removed faces: an edge of
// exactly one removed face is a silhouette edge (spec §4.D "boundary
// edge"); one shared by two removed faces is interior and must not be
// rebuilt. Grounded on the teacher's
// EdgeEntry.
type edgeEntry struct {
	a, b  gjk.Vertex
	count int
}

func compareVec3(a, b mgl64.Vec3) int {
	for i := 0; i < 3; i++ {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}
