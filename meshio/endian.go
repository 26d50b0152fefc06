package meshio

import (
	"encoding/binary"
	"math"
)

// The wire formats this package reads and writes (3DS, JTF, glTF's binary
// buffers) are all defined in terms of little-endian fields regardless of
// host byte order, so every primitive here always byteswaps from little
// endian rather than branching on a runtime endianness probe.

// ReadU16LE reads a little-endian uint16 from buf at offset.
func ReadU16LE(buf []byte, offset int) uint16 {
	return binary.LittleEndian.Uint16(buf[offset:])
}

// ReadU32LE reads a little-endian uint32 from buf at offset.
func ReadU32LE(buf []byte, offset int) uint32 {
	return binary.LittleEndian.Uint32(buf[offset:])
}

// ReadF32LE reads a little-endian IEEE-754 float32 from buf at offset.
func ReadF32LE(buf []byte, offset int) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(buf[offset:]))
}

// PutU16LE writes v into buf at offset as little-endian.
func PutU16LE(buf []byte, offset int, v uint16) {
	binary.LittleEndian.PutUint16(buf[offset:], v)
}

// PutU32LE writes v into buf at offset as little-endian.
func PutU32LE(buf []byte, offset int, v uint32) {
	binary.LittleEndian.PutUint32(buf[offset:], v)
}

// PutF32LE writes v into buf at offset as a little-endian IEEE-754 float32.
func PutF32LE(buf []byte, offset int, v float32) {
	binary.LittleEndian.PutUint32(buf[offset:], math.Float32bits(v))
}

// ReadU16 reads a little-endian uint16 from b.
func (b *BufIO) ReadU16() (uint16, error) {
	var buf [2]byte
	if _, err := readFull(b, buf[:]); err != nil {
		return 0, err
	}
	return ReadU16LE(buf[:], 0), nil
}

// ReadU32 reads a little-endian uint32 from b.
func (b *BufIO) ReadU32() (uint32, error) {
	var buf [4]byte
	if _, err := readFull(b, buf[:]); err != nil {
		return 0, err
	}
	return ReadU32LE(buf[:], 0), nil
}

// ReadF32 reads a little-endian float32 from b.
func (b *BufIO) ReadF32() (float32, error) {
	var buf [4]byte
	if _, err := readFull(b, buf[:]); err != nil {
		return 0, err
	}
	return ReadF32LE(buf[:], 0), nil
}

// WriteU16 writes v to b as little-endian.
func (b *BufIO) WriteU16(v uint16) error {
	var buf [2]byte
	PutU16LE(buf[:], 0, v)
	_, err := b.bw.Write(buf[:])
	return err
}

// WriteU32 writes v to b as little-endian.
func (b *BufIO) WriteU32(v uint32) error {
	var buf [4]byte
	PutU32LE(buf[:], 0, v)
	_, err := b.bw.Write(buf[:])
	return err
}

// WriteF32 writes v to b as little-endian.
func (b *BufIO) WriteF32(v float32) error {
	var buf [4]byte
	PutF32LE(buf[:], 0, v)
	_, err := b.bw.Write(buf[:])
	return err
}

func readFull(b *BufIO, buf []byte) (int, error) {
	n := 0
	for n < len(buf) {
		c, err := b.br.ReadByte()
		if err != nil {
			return n, err
		}
		buf[n] = c
		n++
	}
	return n, nil
}
