package photonmap

import (
	"github.com/df07/go-photon-raytracer/pkg/core"
	"github.com/dhconnelly/rtreego"
)

// pointTolerance is the side of the degenerate box a stored photon occupies in the index
const pointTolerance = 1e-9

// PhotonHit is a photon recorded at the surface position it arrived at
type PhotonHit struct {
	Photon   core.Photon
	Position core.Vec3
}

// Bounds places the hit in the R-tree as a tiny box around its position
func (h *PhotonHit) Bounds() rtreego.Rect {
	return point(h.Position).ToRect(pointTolerance)
}

func point(v core.Vec3) rtreego.Point {
	return rtreego.Point{v.X, v.Y, v.Z}
}
