// Package level loads the static level geometry from glTF assets.
package level

import (
	"path/filepath"

	"github.com/thirdlf03/zawa/pkg/math"
)

// Asset is one glTF file of the level and how to build collision from it.
type Asset struct {
	Name  string    `yaml:"name"`
	Path  string    `yaml:"path"`
	Scale math.Vec3 `yaml:"scale"`
	Goal  bool      `yaml:"goal"`
}

// DefaultAssets returns the stock level: the stacked stages, the goal holes
// and the funnels and catches that connect them. Paths are relative to dir.
func DefaultAssets(dir string) []Asset {
	asset := func(name, file string, x, y, z float32, isGoal bool) Asset {
		return Asset{
			Name:  name,
			Path:  filepath.Join(dir, file),
			Scale: math.Vec3{X: x, Y: y, Z: z},
			Goal:  isGoal,
		}
	}
	return []Asset{
		asset("stages", "stages.glb", 3, 0.8, 3, false),
		asset("holes", "holes.glb", 0.49, 0.49, 0.49, true),
		asset("start", "start.glb", 2.7, 0.8, 2.7, false),
		asset("tunnel", "tunnel.glb", 1.6, 1.96, 1.74, false),
		asset("catch", "catch.glb", 0.48, 0.4, 0.48, false),
		asset("middlecatch", "middlecatch.glb", 3, 0.8, 3, false),
		asset("box", "box.glb", 0.139, 0.442, 0.442, false),
		asset("lastTunnel", "lastTunnel.glb", 1.6, 1.42, 1.6, false),
		asset("startTunnel", "startTunnel.glb", 3, 3, 3, false),
	}
}
