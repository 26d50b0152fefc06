package math32

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBox3_MakeEmptyIsEmpty(t *testing.T) {

	var b Box3
	b.MakeEmpty()
	assert.True(t, b.Empty())
}

func TestBox3_ExpandByPointGrowsBounds(t *testing.T) {

	var b Box3
	b.MakeEmpty()
	b.ExpandByPoint(NewVector3(1, 2, 3))
	b.ExpandByPoint(NewVector3(-1, 5, 0))
	assert.False(t, b.Empty())
	assert.Equal(t, Vector3{X: -1, Y: 2, Z: 0}, b.Min)
	assert.Equal(t, Vector3{X: 1, Y: 5, Z: 3}, b.Max)
}

func TestBox3_CenterAndSize(t *testing.T) {

	b := NewBox3(NewVector3(0, 0, 0), NewVector3(2, 4, 6))

	center := b.Center(nil)
	assert.Equal(t, Vector3{X: 1, Y: 2, Z: 3}, *center)

	size := b.Size(nil)
	assert.Equal(t, Vector3{X: 2, Y: 4, Z: 6}, *size)
}

func TestBox3_EqualsAndClone(t *testing.T) {

	b := NewBox3(NewVector3(0, 0, 0), NewVector3(1, 1, 1))
	clone := b.Clone()
	assert.True(t, b.Equals(clone))

	clone.Max.X = 2
	assert.False(t, b.Equals(clone))
}
