package math32

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatrix4_Identity(t *testing.T) {

	m := NewMatrix4()
	assert.Equal(t, &Matrix4{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}, m)
}

func TestMatrix4_MultiplyMatrices(t *testing.T) {

	a := NewMatrix4().MakeTranslation(1, 2, 3)
	b := NewMatrix4()
	var m Matrix4
	m.MultiplyMatrices(a, b)
	assert.Equal(t, *a, m)
}

func TestMatrix4_GetInverse_Identity(t *testing.T) {

	var inv Matrix4
	err := inv.GetInverse(NewMatrix4())
	require.NoError(t, err)
	assert.Equal(t, *NewMatrix4(), inv)
}

func TestMatrix4_GetInverse_Singular(t *testing.T) {

	var zero Matrix4
	var inv Matrix4
	err := inv.GetInverse(&zero)
	assert.Error(t, err)
	assert.Equal(t, *NewMatrix4(), inv)
}

func TestMatrix4_GetInverse_RoundTrip(t *testing.T) {

	m := NewMatrix4().MakeTranslation(2, -3, 5)
	m.Scale(NewVector3(2, 2, 2))

	var inv Matrix4
	require.NoError(t, inv.GetInverse(m))

	var product Matrix4
	product.MultiplyMatrices(m, &inv)

	id := NewMatrix4()
	for i := range product {
		assert.InDelta(t, id[i], product[i], 1e-4)
	}
}

func TestMatrix4_ComposeDecompose(t *testing.T) {

	pos := NewVector3(1, 2, 3)
	rot := NewQuaternion(0, 0, 0, 1)
	scale := NewVector3(2, 3, 4)

	var m Matrix4
	m.Compose(pos, rot, scale)

	var outPos, outScale Vector3
	var outRot Quaternion
	m.Decompose(&outPos, &outRot, &outScale)

	assert.True(t, pos.Equals(&outPos))
	assert.InDelta(t, scale.X, outScale.X, 1e-4)
	assert.InDelta(t, scale.Y, outScale.Y, 1e-4)
	assert.InDelta(t, scale.Z, outScale.Z, 1e-4)
}
