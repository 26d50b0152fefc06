// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math32

// Vector4 is a 4-component vector, used for RGBA colors and material
// attribute values as well as homogeneous coordinates.
type Vector4 struct {
	X float32
	Y float32
	Z float32
	W float32
}

// Set sets this vector's X, Y, Z and W components.
// Returns the pointer to this updated vector.
func (v *Vector4) Set(x, y, z, w float32) *Vector4 {

	v.X = x
	v.Y = y
	v.Z = z
	v.W = w
	return v
}
