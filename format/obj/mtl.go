package obj

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/jtsiomb/meshfile/math32"
	"github.com/jtsiomb/meshfile/meshio"
	"github.com/jtsiomb/meshfile/scene"
)

// parseBool parses the OBJ "on"/"off" boolean tokens used by -blendu,
// -blendv and -clamp. ok is false for anything else.
func parseBool(s string) (v, ok bool) {
	switch s {
	case "on":
		return true, true
	case "off":
		return false, true
	}
	return false, false
}

// parseMTL reads an MTL stream, adding one scene.Material per newmtl
// block to s.
func parseMTL(s *scene.Scene, rw meshio.IO) error {

	sc := bufio.NewScanner(asReader(rw))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var cur *scene.Material
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := sc.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		directive := fields[0]
		args := fields[1:]

		switch directive {
		case "newmtl":
			if len(args) == 0 {
				return fmt.Errorf("line %d: newmtl needs a name", lineNo)
			}
			cur = scene.NewMaterial(args[0])
			s.AddMaterial(cur)

		case "Kd":
			if err := setColor(cur, scene.Color, args); err != nil {
				return lineErr(lineNo, err)
			}
		case "Ks":
			if err := setColor(cur, scene.Specular, args); err != nil {
				return lineErr(lineNo, err)
			}
		case "Ke":
			if err := setColor(cur, scene.Emissive, args); err != nil {
				return lineErr(lineNo, err)
			}
		case "Ns":
			v, err := scalar(args)
			if err != nil {
				return lineErr(lineNo, err)
			}
			cur.Get(scene.Shininess).Value.X = v
			if v < 1 {
				cur.Get(scene.Specular).Value.Set(0, 0, 0, cur.Get(scene.Specular).Value.W)
			}
		case "d":
			v, err := scalar(args)
			if err != nil {
				return lineErr(lineNo, err)
			}
			cur.Get(scene.Alpha).Value.X = v
			cur.Get(scene.Transmit).Value.X = 1 - v
		case "Ni":
			v, err := scalar(args)
			if err != nil {
				return lineErr(lineNo, err)
			}
			cur.Get(scene.IOR).Value.X = v
		case "Pr":
			v, err := scalar(args)
			if err != nil {
				return lineErr(lineNo, err)
			}
			cur.Get(scene.Roughness).Value.X = v
		case "Pm":
			v, err := scalar(args)
			if err != nil {
				return lineErr(lineNo, err)
			}
			cur.Get(scene.Metallic).Value.X = v

		case "map_Kd":
			setMap(cur, scene.Color, args)
		case "map_Ks":
			setMap(cur, scene.Specular, args)
		case "map_Ke":
			setMap(cur, scene.Emissive, args)
		case "map_Ns":
			setMap(cur, scene.Shininess, args)
		case "map_d":
			setMap(cur, scene.Alpha, args)
		case "map_Pr":
			setMap(cur, scene.Roughness, args)
		case "map_Pm":
			setMap(cur, scene.Metallic, args)
		case "bump", "map_bump":
			setMap(cur, scene.Bump, args)
		case "refl":
			setReflMap(cur, args)

		default:
			s.Logger().Warn("obj: mtl line %d: unrecognized directive %q", lineNo, directive)
		}
	}
	if err := sc.Err(); err != nil {
		return err
	}
	return nil
}

func lineErr(line int, err error) error {
	return fmt.Errorf("line %d: %w", line, err)
}

func scalar(args []string) (float32, error) {
	if len(args) == 0 {
		return 0, fmt.Errorf("expected a value")
	}
	v, err := strconv.ParseFloat(args[0], 32)
	return float32(v), err
}

func setColor(m *scene.Material, slot scene.AttrSlot, args []string) error {
	if m == nil {
		return fmt.Errorf("color directive before newmtl")
	}
	if len(args) < 3 {
		return fmt.Errorf("expected 3 components, got %d", len(args))
	}
	v := m.Get(slot)
	for i := 0; i < 3; i++ {
		f, err := strconv.ParseFloat(args[i], 32)
		if err != nil {
			return err
		}
		switch i {
		case 0:
			v.Value.X = float32(f)
		case 1:
			v.Value.Y = float32(f)
		case 2:
			v.Value.Z = float32(f)
		}
	}
	return nil
}

// applyMapOptions consumes args' leading -blendu/-blendv/-clamp/-bm/-o/-s
// option tokens, applying each to tm (and, for -bm, to attr's scalar
// value) in the original reader's nextarg-driven, tolerant style: -o/-s
// accept 1 to 3 float components, stopping at the first token that
// doesn't parse as a float rather than failing the whole line. It
// returns the remaining tokens, expected to be the filename (or, for a
// reflection map, a "-type <face>" pair followed by the filename).
func applyMapOptions(tm *scene.TexMap, attr *scene.MtlAttr, args []string) []string {

	i := 0
	for i < len(args) && strings.HasPrefix(args[i], "-") {
		switch args[i] {
		case "-blendu":
			if i+1 < len(args) {
				if b, ok := parseBool(args[i+1]); ok {
					if b {
						tm.FilterS = scene.FilterLinear
					} else {
						tm.FilterS = scene.FilterNearest
					}
				}
			}
			i += 2

		case "-blendv":
			if i+1 < len(args) {
				if b, ok := parseBool(args[i+1]); ok {
					if b {
						tm.FilterT = scene.FilterLinear
					} else {
						tm.FilterT = scene.FilterNearest
					}
				}
			}
			i += 2

		case "-clamp":
			if i+1 < len(args) {
				if b, ok := parseBool(args[i+1]); ok {
					w := scene.WrapRepeat
					if b {
						w = scene.WrapClamp
					}
					tm.WrapS, tm.WrapT = w, w
				}
			}
			i += 2

		case "-bm":
			if i+1 < len(args) {
				if v, err := strconv.ParseFloat(args[i+1], 32); err == nil && attr != nil {
					attr.Value.X = float32(v)
					attr.Value.Y = float32(v)
					attr.Value.Z = float32(v)
				}
			}
			i += 2

		case "-o":
			i++
			i += readVec3Option(&tm.Offset, args[i:])

		case "-s":
			i++
			i += readVec3Option(&tm.Scale, args[i:])

		case "-type":
			i += 2

		default:
			i++
		}
	}
	return args[i:]
}

// readVec3Option parses up to 3 leading float tokens of args into v's
// X, Y, Z in turn, stopping at the first non-float token, and returns
// the number of tokens consumed.
func readVec3Option(v *math32.Vector3, args []string) int {

	comps := [3]*float32{&v.X, &v.Y, &v.Z}
	n := 0
	for n < 3 && n < len(args) {
		f, err := strconv.ParseFloat(args[n], 32)
		if err != nil {
			break
		}
		*comps[n] = float32(f)
		n++
	}
	return n
}

func setMap(m *scene.Material, slot scene.AttrSlot, args []string) {
	if m == nil {
		return
	}
	tm := scene.NewTexMap()
	attr := m.Get(slot)
	rest := applyMapOptions(tm, attr, args)
	if len(rest) == 0 {
		return
	}
	tm.File = rest[0]
	attr.Map = tm
}

func setReflMap(m *scene.Material, args []string) {
	if m == nil {
		return
	}
	reflType := "sphere"
	for i := 0; i < len(args)-1; i++ {
		if args[i] == "-type" {
			reflType = args[i+1]
		}
	}
	attr := m.Get(scene.Reflect)
	tm := attr.Map
	if tm == nil {
		tm = scene.NewTexMap()
	}
	rest := applyMapOptions(tm, attr, args)
	if len(rest) == 0 {
		return
	}
	attr.Map = tm
	switch reflType {
	case "sphere":
		tm.File = rest[0]
	case "cube_top":
		tm.CubeFiles[scene.ReflCubeTop-1] = rest[0]
	case "cube_bottom":
		tm.CubeFiles[scene.ReflCubeBottom-1] = rest[0]
	case "cube_front":
		tm.CubeFiles[scene.ReflCubeFront-1] = rest[0]
	case "cube_back":
		tm.CubeFiles[scene.ReflCubeBack-1] = rest[0]
	case "cube_left":
		tm.CubeFiles[scene.ReflCubeLeft-1] = rest[0]
	case "cube_right":
		tm.CubeFiles[scene.ReflCubeRight-1] = rest[0]
	}
}
