package gltf

import (
	"encoding/binary"
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"github.com/jtsiomb/meshfile/meshio"
)

const (
	compByte   = 5120
	compUByte  = 5121
	compShort  = 5122
	compUShort = 5123
	compUInt   = 5125
	compFloat  = 5126
)

var typeComponents = map[string]int{
	"SCALAR": 1,
	"VEC2":   2,
	"VEC3":   3,
	"VEC4":   4,
	"MAT2":   4,
	"MAT3":   9,
	"MAT4":   16,
}

func maxF32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

func componentSize(ct int) int {
	switch ct {
	case compByte, compUByte:
		return 1
	case compShort, compUShort:
		return 2
	default:
		return 4
	}
}

// buffer returns buffer index bi's raw bytes, loading and caching it on
// first use: embedded GLB binary chunk data when the buffer has no URI,
// a decoded base64 data URI, or an external file resolved through the
// scene's asset search path.
func (d *document) buffer(bi int) ([]byte, error) {

	b := &d.Buffers[bi]
	if b.cache != nil {
		return b.cache, nil
	}

	if b.Uri == "" {
		b.cache = d.binData
		return b.cache, nil
	}

	if strings.HasPrefix(b.Uri, "data:") {
		comma := strings.IndexByte(b.Uri, ',')
		if comma < 0 {
			return nil, fmt.Errorf("malformed data URI")
		}
		b.cache = meshio.Base64Decode(b.Uri[comma+1:], nil)
		return b.cache, nil
	}

	path := d.dir
	if d.sc != nil {
		path = d.sc.FindAsset(b.Uri)
	}
	if path == b.Uri && d.dir != "" {
		path = filepath.Join(d.dir, b.Uri)
	}
	f, err := meshio.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := readAll(f)
	if err != nil {
		return nil, err
	}
	b.cache = data
	return data, nil
}

func (d *document) bufferViewBytes(bvi int) ([]byte, error) {

	bv := d.BufferViews[bvi]
	data, err := d.buffer(bv.Buffer)
	if err != nil {
		return nil, err
	}
	end := bv.ByteOffset + bv.ByteLength
	if end > len(data) {
		return nil, fmt.Errorf("bufferView %d out of range", bvi)
	}
	return data[bv.ByteOffset:end], nil
}

// accessorFloats decodes accessor ai into a flat []float32 with
// typeComponents[acc.Type] components per element, converting integer
// component types to floats (normalized per the spec's 0..1 mapping for
// UNSIGNED_BYTE/UNSIGNED_SHORT and -1..1 mapping for BYTE/SHORT when
// Normalized is set, or the raw value range otherwise).
func (d *document) accessorFloats(ai int) ([]float32, error) {

	acc := d.Accessors[ai]
	if acc.BufferView == nil {
		return make([]float32, acc.Count*typeComponents[acc.Type]), nil
	}
	raw, err := d.bufferViewBytes(*acc.BufferView)
	if err != nil {
		return nil, err
	}
	raw = raw[acc.ByteOffset:]

	n := acc.Count * typeComponents[acc.Type]
	out := make([]float32, n)
	csize := componentSize(acc.ComponentType)

	for i := 0; i < n; i++ {
		off := i * csize
		switch acc.ComponentType {
		case compFloat:
			out[i] = math.Float32frombits(binary.LittleEndian.Uint32(raw[off:]))
		case compUByte:
			v := raw[off]
			if acc.Normalized {
				out[i] = float32(v) / 255.0
			} else {
				out[i] = float32(v)
			}
		case compByte:
			v := int8(raw[off])
			if acc.Normalized {
				out[i] = maxF32(float32(v)/127.0, -1.0)
			} else {
				out[i] = float32(v)
			}
		case compUShort:
			v := binary.LittleEndian.Uint16(raw[off:])
			if acc.Normalized {
				out[i] = float32(v) / 65535.0
			} else {
				out[i] = float32(v)
			}
		case compShort:
			v := int16(binary.LittleEndian.Uint16(raw[off:]))
			if acc.Normalized {
				out[i] = maxF32(float32(v)/32767.0, -1.0)
			} else {
				out[i] = float32(v)
			}
		default:
			return nil, fmt.Errorf("unsupported accessor componentType %d", acc.ComponentType)
		}
	}
	return out, nil
}

// accessorIndices decodes accessor ai (expected SCALAR, an unsigned
// integer component type) into a flat []uint32 index list.
func (d *document) accessorIndices(ai int) ([]uint32, error) {

	acc := d.Accessors[ai]
	if acc.BufferView == nil {
		return nil, fmt.Errorf("index accessor has no bufferView")
	}
	raw, err := d.bufferViewBytes(*acc.BufferView)
	if err != nil {
		return nil, err
	}
	raw = raw[acc.ByteOffset:]

	out := make([]uint32, acc.Count)
	switch acc.ComponentType {
	case compUInt:
		for i := range out {
			out[i] = binary.LittleEndian.Uint32(raw[i*4:])
		}
	case compUShort:
		for i := range out {
			out[i] = uint32(binary.LittleEndian.Uint16(raw[i*2:]))
		}
	case compUByte:
		for i := range out {
			out[i] = uint32(raw[i])
		}
	default:
		return nil, fmt.Errorf("unsupported index componentType %d", acc.ComponentType)
	}
	return out, nil
}
