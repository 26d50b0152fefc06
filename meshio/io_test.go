package meshio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemIO_WriteReadRoundTrip(t *testing.T) {

	m := NewMemIO(nil)
	n, err := m.Write([]byte("hello"))
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	_, err = m.Seek(0, SeekSet)
	require.NoError(t, err)

	buf := make([]byte, 5)
	n, err = m.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(buf[:n]))
}

func TestMemIO_SeekEndAndOverwrite(t *testing.T) {

	m := NewMemIO([]byte("0123456789"))

	pos, err := m.Seek(-2, SeekEnd)
	require.NoError(t, err)
	assert.Equal(t, int64(8), pos)

	_, err = m.Write([]byte("XY"))
	require.NoError(t, err)
	assert.Equal(t, "01234567XY", string(m.Bytes()))
}

func TestMemIO_WritePastEndGrowsBuffer(t *testing.T) {

	m := NewMemIO(nil)
	_, err := m.Seek(4, SeekSet)
	require.NoError(t, err)
	_, err = m.Write([]byte("Z"))
	require.NoError(t, err)

	assert.Equal(t, []byte{0, 0, 0, 0, 'Z'}, m.Bytes())
}

func TestBufIO_GetcPutcRoundTrip(t *testing.T) {

	m := NewMemIO(nil)
	b := NewBufIO(m)
	require.NoError(t, b.Putc('a'))
	require.NoError(t, b.Puts("bc"))
	require.NoError(t, b.Flush())

	_, err := m.Seek(0, SeekSet)
	require.NoError(t, err)
	b2 := NewBufIO(m)
	for _, want := range []byte("abc") {
		c, err := b2.Getc()
		require.NoError(t, err)
		assert.Equal(t, int(want), c)
	}
	c, err := b2.Getc()
	require.NoError(t, err)
	assert.Equal(t, -1, c)
}

func TestBufIO_Gets(t *testing.T) {

	m := NewMemIO([]byte("line one\nline two"))
	b := NewBufIO(m)

	buf := make([]byte, 32)
	got, err := b.Gets(buf)
	require.NoError(t, err)
	assert.Equal(t, "line one\n", string(got))

	got, err = b.Gets(buf)
	require.NoError(t, err)
	assert.Equal(t, "line two", string(got))
}
