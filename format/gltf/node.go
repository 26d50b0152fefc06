package gltf

import (
	"github.com/jtsiomb/meshfile/math32"
)

func vec3From(v *[3]float32, dx, dy, dz float32) math32.Vector3 {

	if v == nil {
		return math32.Vector3{X: dx, Y: dy, Z: dz}
	}
	return math32.Vector3{X: v[0], Y: v[1], Z: v[2]}
}

func quatFrom(v *[4]float32) math32.Quaternion {

	if v == nil {
		return math32.Quaternion{X: 0, Y: 0, Z: 0, W: 1}
	}
	return math32.Quaternion{X: v[0], Y: v[1], Z: v[2], W: v[3]}
}
