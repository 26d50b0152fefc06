// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math32

// Box3 represents a 3D bounding box defined by two points:
// the point with minimum coordinates and the point with maximum coordinates.
type Box3 struct {
	Min Vector3
	Max Vector3
}

// NewBox3 creates and returns a pointer to a new Box3 defined
// by its minimum and maximum coordinates.
func NewBox3(min, max *Vector3) *Box3 {

	b := new(Box3)
	b.Set(min, max)
	return b
}

// Set sets this bounding box minimum and maximum coordinates.
// Returns pointer to this updated bounding box.
func (b *Box3) Set(min, max *Vector3) *Box3 {

	if min != nil {
		b.Min = *min
	} else {
		b.Min.Set(Infinity, Infinity, Infinity)
	}
	if max != nil {
		b.Max = *max
	} else {
		b.Max.Set(-Infinity, -Infinity, -Infinity)
	}
	return b
}

// MakeEmpty sets this bounding box to empty.
// Returns pointer to this updated bounding box.
func (b *Box3) MakeEmpty() *Box3 {

	b.Min.X = Infinity
	b.Min.Y = Infinity
	b.Min.Z = Infinity
	b.Max.X = -Infinity
	b.Max.Y = -Infinity
	b.Max.Z = -Infinity
	return b
}

// Empty returns if this bounding box is empty.
func (b *Box3) Empty() bool {

	return (b.Max.X < b.Min.X) || (b.Max.Y < b.Min.Y) || (b.Max.Z < b.Min.Z)
}

// Center calculates the center point of this bounding box and
// stores it into optionalTarget, if not nil, and also returns it.
func (b *Box3) Center(optionalTarget *Vector3) *Vector3 {

	var result *Vector3
	if optionalTarget == nil {
		result = NewVector3(0, 0, 0)
	} else {
		result = optionalTarget
	}
	return result.AddVectors(&b.Min, &b.Max).MultiplyScalar(0.5)
}

// Size calculates the size of this bounding box: the vector from
// its minimum point to its maximum point.
// Stores it into optionalTarget, if not nil, and also returns it.
func (b *Box3) Size(optionalTarget *Vector3) *Vector3 {

	var result *Vector3
	if optionalTarget == nil {
		result = NewVector3(0, 0, 0)
	} else {
		result = optionalTarget
	}
	return result.SubVectors(&b.Max, &b.Min)
}

// ExpandByPoint may expand this bounding box to include the specified point.
// Returns pointer to this updated bounding box.
func (b *Box3) ExpandByPoint(point *Vector3) *Box3 {

	b.Min.Min(point)
	b.Max.Max(point)
	return b
}

// Equals returns if this box is equal to other.
func (b *Box3) Equals(other *Box3) bool {

	return other.Min.Equals(&b.Min) && other.Max.Equals(&b.Max)
}

// Clone creates and returns a pointer to a copy of this bounding box.
func (b *Box3) Clone() *Box3 {

	return NewBox3(&b.Min, &b.Max)
}
