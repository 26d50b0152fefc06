package tds

import (
	"io"

	"github.com/jtsiomb/meshfile/math32"
	"github.com/jtsiomb/meshfile/meshio"
	"github.com/jtsiomb/meshfile/scene"
)

// mapmap pairs a texture-map chunk ID with the material attribute slot it
// populates, mirroring the reference reader's table.
var mapmap = []struct {
	chunk uint16
	slot  scene.AttrSlot
}{
	{cidMtlTexMap1, scene.Color},
	{cidMtlAlphaMap, scene.Alpha},
	{cidMtlBumpMap, scene.Bump},
	{cidMtlShinMap, scene.Shininess},
	{cidMtlSpecMap, scene.Specular},
	{cidMtlReflMap, scene.Reflect},
}

func readMaterial(s *scene.Scene, rw meshio.IO, par *chunk) error {

	mtl := scene.NewMaterial("")
	var shin, shinStr float32 = 0, 1
	var selfIllum float32

	for {
		ck, err := readChunk(rw, par)
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}

		switch ck.id {
		case cidMtlName:
			name, err := readCStr(rw, ck.end)
			if err != nil {
				return err
			}
			mtl.Name = name
			skipChunk(rw, ck)

		case cidMtlDiffuse:
			if err := readColor(&mtl.Attr[scene.Color].Value, rw, ck); err != nil {
				return err
			}

		case cidMtlSpecular:
			if err := readColor(&mtl.Attr[scene.Specular].Value, rw, ck); err != nil {
				return err
			}

		case cidMtlSelfIllu:
			v, err := readPercent(rw, ck)
			if err != nil {
				return err
			}
			selfIllum = v

		case cidMtlShin:
			v, err := readPercent(rw, ck)
			if err != nil {
				return err
			}
			shin = v

		case cidMtlShinStr:
			v, err := readPercent(rw, ck)
			if err != nil {
				return err
			}
			shinStr = v

		case cidMtlTexMap1, cidMtlSpecMap, cidMtlShinMap, cidMtlAlphaMap, cidMtlBumpMap, cidMtlReflMap:
			slot, ok := slotForChunk(ck.id)
			if ok {
				if err := readMap(&mtl.Attr[slot], rw, ck); err != nil {
					return err
				}
			} else {
				skipChunk(rw, ck)
			}

		default:
			skipChunk(rw, ck)
		}
	}

	mtl.Attr[scene.Shininess].Value.X = shin * shinStr * 128.0
	mtl.Attr[scene.Emissive].Value.X = mtl.Attr[scene.Color].Value.X * selfIllum
	mtl.Attr[scene.Emissive].Value.Y = mtl.Attr[scene.Color].Value.Y * selfIllum
	mtl.Attr[scene.Emissive].Value.Z = mtl.Attr[scene.Color].Value.Z * selfIllum

	s.AddMaterial(mtl)
	return nil
}

func slotForChunk(id uint16) (scene.AttrSlot, bool) {
	for _, m := range mapmap {
		if m.chunk == id {
			return m.slot, true
		}
	}
	return 0, false
}

// readColor reads a color sub-chunk (RGB byte triple or RGBF float
// triple, gamma-corrected variants treated the same as their plain
// counterparts) into out's X/Y/Z, leaving W untouched.
func readColor(out *math32.Vector4, rw meshio.IO, par *chunk) error {

	ck, err := readChunk(rw, par)
	if err != nil {
		return err
	}

	switch ck.id {
	case cidRGB, cidRGBGamma:
		rgb, err := readBytes(rw, 3)
		if err != nil {
			return err
		}
		out.X = float32(rgb[0]) / 255.0
		out.Y = float32(rgb[1]) / 255.0
		out.Z = float32(rgb[2]) / 255.0

	case cidRGBF, cidRGBFGamma:
		x, err := readF32(rw)
		if err != nil {
			return err
		}
		y, err := readF32(rw)
		if err != nil {
			return err
		}
		z, err := readF32(rw)
		if err != nil {
			return err
		}
		out.X, out.Y, out.Z = x, y, z

	default:
		skipChunk(rw, ck)
	}
	return nil
}

// readPercent reads a percent sub-chunk (16-bit integer percent or
// 32-bit float percent) and returns it scaled to [0,1].
func readPercent(rw meshio.IO, par *chunk) (float32, error) {

	ck, err := readChunk(rw, par)
	if err != nil {
		return 0, err
	}

	switch ck.id {
	case cidPercentInt:
		v, err := readU16(rw)
		if err != nil {
			return 0, err
		}
		return float32(v) / 100.0, nil

	case cidPercentFlt:
		v, err := readF32(rw)
		if err != nil {
			return 0, err
		}
		return v / 100.0, nil

	default:
		skipChunk(rw, ck)
		return 0, nil
	}
}

// readMap reads a texture-map sub-chunk tree into attr's Map, creating
// it on first use.
func readMap(attr *scene.MtlAttr, rw meshio.IO, par *chunk) error {

	for {
		ck, err := readChunk(rw, par)
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		if attr.Map == nil {
			attr.Map = scene.NewTexMap()
		}

		switch ck.id {
		case cidMapFilename:
			if ck.length <= chdrSize+1 {
				skipChunk(rw, ck)
				continue
			}
			name, err := readCStr(rw, ck.end)
			if err != nil {
				return err
			}
			attr.Map.File = lower(name)
			skipChunk(rw, ck)

		case cidMapUOffs:
			v, err := readF32(rw)
			if err != nil {
				return err
			}
			attr.Map.Offset.X = v

		case cidMapVOffs:
			v, err := readF32(rw)
			if err != nil {
				return err
			}
			attr.Map.Offset.Y = v

		case cidMapUScale:
			v, err := readF32(rw)
			if err != nil {
				return err
			}
			attr.Map.Scale.X = v

		case cidMapVScale:
			v, err := readF32(rw)
			if err != nil {
				return err
			}
			attr.Map.Scale.Y = v

		case cidMapUVRot:
			v, err := readF32(rw)
			if err != nil {
				return err
			}
			attr.Map.Rotation = v

		default:
			skipChunk(rw, ck)
		}
	}
	return nil
}

func lower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c - 'A' + 'a'
		}
	}
	return string(b)
}
