package main

import (
	"image/color"
	"math"

	"github.com/lixenwraith/ascii3d/scene"
	"github.com/lixenwraith/ascii3d/vmath"
)

// demoScenes builds the scenes shown when no scene file is given
func demoScenes(prefabs *scene.PrefabList, bg color.RGBA) []*scene.Scene {
	cube, _ := prefabs.Get(scene.PrefabCube)
	pyramid, _ := prefabs.Get(scene.PrefabPyramid)
	plane, _ := prefabs.Get(scene.PrefabPlane)

	one := vmath.Vec3{X: 1, Y: 1, Z: 1}
	floor := scene.NewObject("floor", plane,
		vmath.ModelMatrix(vmath.Vec3{Y: -1.5}, vmath.Vec3{}, vmath.Vec3{X: 12, Y: 1, Z: 12}), "ground")
	floor.Color = color.RGBA{70, 140, 70, 255}

	// Cube and pyramid side by side
	shapes := scene.New("shapes")
	shapes.Background = bg
	shapes.AddObject(floor)

	c := scene.NewObject("cube", cube,
		vmath.ModelMatrix(vmath.Vec3{X: -2, Z: 6}, vmath.Vec3{Y: math.Pi / 6}, one), "solid")
	c.Color = color.RGBA{220, 120, 40, 255}
	shapes.AddObject(c)

	p := scene.NewObject("pyramid", pyramid,
		vmath.ModelMatrix(vmath.Vec3{X: 2, Z: 6}, vmath.Vec3{}, one), "solid")
	p.Color = color.RGBA{200, 200, 60, 255}
	shapes.AddObject(p)

	// A ring of cubes around the origin
	ring := scene.New("ring")
	ring.Background = bg
	ring.AddObject(floor)
	const n = 8
	for i := 0; i < n; i++ {
		a := float32(i) * 2 * math.Pi / n
		s, co := math.Sincos(float64(a))
		o := scene.NewObject("ring", cube,
			vmath.ModelMatrix(vmath.Vec3{X: float32(s) * 7, Z: float32(co) * 7}, vmath.Vec3{Y: a},
				vmath.Vec3{X: 0.6, Y: 0.6 + float32(i%3)*0.4, Z: 0.6}), "ring")
		o.Color = color.RGBA{uint8(60 + i*24), 90, uint8(230 - i*20), 255}
		ring.AddObject(o)
	}

	return []*scene.Scene{shapes, ring}
}
