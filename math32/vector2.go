// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math32

// Vector2 is a 2D vector/point with X and Y components.
type Vector2 struct {
	X float32
	Y float32
}

// SubVectors sets this vector to a - b.
// Returns the pointer to this updated vector.
func (v *Vector2) SubVectors(a, b *Vector2) *Vector2 {

	v.X = a.X - b.X
	v.Y = a.Y - b.Y
	return v
}

// Cross returns the 2D cross product (determinant) of this vector with other.
func (v *Vector2) Cross(other *Vector2) float32 {

	return v.X*other.Y - v.Y*other.X
}
