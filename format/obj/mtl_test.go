package obj

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jtsiomb/meshfile/meshio"
	"github.com/jtsiomb/meshfile/scene"
)

func TestParseMTL_MapOptionsApplyToTexMap(t *testing.T) {

	const mtl = "newmtl m\n" +
		"map_Kd -blendu off -clamp on -o 0.25 0.5 -s 2 2 wood.png\n"

	s := scene.New()
	rw := meshio.NewMemIO([]byte(mtl))
	require.NoError(t, parseMTL(s, rw))

	require.Equal(t, 1, s.MaterialCount())
	tm := s.Material(0).Get(scene.Color).Map
	require.NotNil(t, tm)

	assert.Equal(t, "wood.png", tm.File)
	assert.Equal(t, scene.FilterNearest, tm.FilterS)
	assert.Equal(t, scene.WrapClamp, tm.WrapS)
	assert.Equal(t, scene.WrapClamp, tm.WrapT)
	assert.InDelta(t, 0.25, tm.Offset.X, 1e-5)
	assert.InDelta(t, 0.5, tm.Offset.Y, 1e-5)
	assert.InDelta(t, 2, tm.Scale.X, 1e-5)
	assert.InDelta(t, 2, tm.Scale.Y, 1e-5)
}

func TestParseMTL_BumpMultiplierAppliesToBumpValue(t *testing.T) {

	const mtl = "newmtl m\n" +
		"bump -bm 0.5 normal.png\n"

	s := scene.New()
	rw := meshio.NewMemIO([]byte(mtl))
	require.NoError(t, parseMTL(s, rw))

	bump := s.Material(0).Get(scene.Bump)
	require.NotNil(t, bump.Map)
	assert.Equal(t, "normal.png", bump.Map.File)
	assert.InDelta(t, 0.5, bump.Value.X, 1e-5)
}
