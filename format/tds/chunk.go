package tds

import (
	"encoding/binary"
	"io"
	"math"

	"github.com/jtsiomb/meshfile/meshio"
)

// chunk header/length constants. 3DS chunk IDs, grouped by role; not
// exhaustive (some recognized-but-unused sub-IDs from the format are
// omitted since nothing in this codec reads or writes them).
const (
	cidVersion     = 0x0002
	cidRGBF        = 0x0010
	cidRGB         = 0x0011
	cidRGBGamma    = 0x0012
	cidRGBFGamma   = 0x0013
	cidPercentInt  = 0x0030
	cidPercentFlt  = 0x0031
	cidMain        = 0x4d4d
	cid3DEditor    = 0x3d3d
	cidOneUnit     = 0x0100
	cidMeshVer     = 0x3d3e
	cidObject      = 0x4000
	cidTrimesh     = 0x4100
	cidVertList    = 0x4110
	cidFaceDesc    = 0x4120
	cidFaceMtl     = 0x4130
	cidUVList      = 0x4140
	cidSmoothList  = 0x4150
	cidMeshMatrix  = 0x4160
	cidMaterial    = 0xafff
	cidMtlName     = 0xa000
	cidMtlAmbient  = 0xa010
	cidMtlDiffuse  = 0xa020
	cidMtlSpecular = 0xa030
	cidMtlShin     = 0xa040
	cidMtlShinStr  = 0xa041
	cidMtlSelfIllu = 0xa084
	cidMtlTexMap1  = 0xa200
	cidMtlAlphaMap = 0xa210
	cidMtlBumpMap  = 0xa230
	cidMtlSpecMap  = 0xa204
	cidMtlShinMap  = 0xa33c
	cidMtlReflMap  = 0xa220
	cidMapFilename = 0xa300
	cidMapUScale   = 0xa356
	cidMapVScale   = 0xa354
	cidMapUOffs    = 0xa358
	cidMapVOffs    = 0xa35a
	cidMapUVRot    = 0xa35c
)

const chdrSize = 6 // 2-byte id + 4-byte length

// chunk is one node of the 3DS length-prefixed tree: an id, a declared
// length (covering the 6-byte header and payload), and the absolute
// stream offsets it spans.
type chunk struct {
	id          uint16
	length      uint32
	start, end int64
}

func curPos(rw meshio.IO) (int64, error) {
	return rw.Seek(0, meshio.SeekCur)
}

// readChunk reads the next chunk header at the stream's current
// position. If parent is non-nil, the read is bounds-checked against
// the parent's end offset the same way the reference reader stops
// iterating a chunk's children (returns io.EOF, not a hard format error:
// running out of children is the normal way a sub-chunk loop ends).
func readChunk(rw meshio.IO, parent *chunk) (*chunk, error) {

	start, err := curPos(rw)
	if err != nil {
		return nil, err
	}
	if parent != nil && start+chdrSize > parent.end {
		return nil, io.EOF
	}
	id, err := readU16(rw)
	if err != nil {
		return nil, io.EOF
	}
	length, err := readU32(rw)
	if err != nil {
		return nil, io.EOF
	}
	return &chunk{id: id, length: length, start: start, end: start + int64(length)}, nil
}

func skipChunk(rw meshio.IO, ck *chunk) error {
	_, err := rw.Seek(ck.end, meshio.SeekSet)
	return err
}

func readU8(rw meshio.IO) (byte, error) {
	var buf [1]byte
	if _, err := io.ReadFull(structReader{rw}, buf[:]); err != nil {
		return 0, err
	}
	return buf[0], nil
}

func readU16(rw meshio.IO) (uint16, error) {
	var buf [2]byte
	if _, err := io.ReadFull(structReader{rw}, buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(buf[:]), nil
}

func readU32(rw meshio.IO) (uint32, error) {
	var buf [4]byte
	if _, err := io.ReadFull(structReader{rw}, buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(buf[:]), nil
}

func readF32(rw meshio.IO) (float32, error) {
	v, err := readU32(rw)
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(v), nil
}

func readBytes(rw meshio.IO, n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(structReader{rw}, buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// readCStr reads a NUL-terminated string, never reading past end (the
// enclosing chunk's end offset), matching read_str's bounds check.
func readCStr(rw meshio.IO, end int64) (string, error) {

	var out []byte
	for {
		pos, err := curPos(rw)
		if err != nil {
			return "", err
		}
		if pos >= end {
			break
		}
		c, err := readU8(rw)
		if err != nil {
			return "", err
		}
		if c == 0 {
			break
		}
		out = append(out, c)
	}
	return string(out), nil
}

func writeU16(rw meshio.IO, v uint16) error {
	var buf [2]byte
	binary.LittleEndian.PutUint16(buf[:], v)
	_, err := rw.Write(buf[:])
	return err
}

func writeU32(rw meshio.IO, v uint32) error {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	_, err := rw.Write(buf[:])
	return err
}

func writeF32(rw meshio.IO, v float32) error {
	return writeU32(rw, math.Float32bits(v))
}

func writeCStr(rw meshio.IO, s string) error {
	if _, err := rw.Write([]byte(s)); err != nil {
		return err
	}
	_, err := rw.Write([]byte{0})
	return err
}

func writeChunkHeader(rw meshio.IO, id uint16, size uint32) error {
	if err := writeU16(rw, id); err != nil {
		return err
	}
	return writeU32(rw, size)
}

// patchLength seeks back to a previously written chunk header's length
// field (2 bytes into the header) and rewrites it with the chunk's now-
// known total size, then returns the stream to its end position.
func patchLength(rw meshio.IO, headerStart int64) error {

	end, err := rw.Seek(0, meshio.SeekEnd)
	if err != nil {
		return err
	}
	if _, err := rw.Seek(headerStart+2, meshio.SeekSet); err != nil {
		return err
	}
	if err := writeU32(rw, uint32(end-headerStart)); err != nil {
		return err
	}
	_, err = rw.Seek(end, meshio.SeekSet)
	return err
}

// structReader adapts meshio.IO's Read to io.Reader for io.ReadFull.
type structReader struct{ rw meshio.IO }

func (r structReader) Read(p []byte) (int, error) { return r.rw.Read(p) }
