// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math32

// ArrayF32 is a slice of float32 with additional convenience methods,
// used to accumulate mesh attribute data (positions, normals, tangents,
// texture coordinates, colors) before it is handed to a Mesh.
type ArrayF32 []float32

// NewArrayF32 creates a returns a new array of floats
// with the specified initial size and capacity.
func NewArrayF32(size, capacity int) ArrayF32 {

	return make([]float32, size, capacity)
}

// Append appends any number of values to the array.
func (a *ArrayF32) Append(v ...float32) {

	*a = append(*a, v...)
}

// GetVector3 stores in the specified Vector3 the
// values from the array starting at the specified pos.
func (a ArrayF32) GetVector3(pos int, v *Vector3) {

	v.X = a[pos]
	v.Y = a[pos+1]
	v.Z = a[pos+2]
}
