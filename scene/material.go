package scene

import "github.com/jtsiomb/meshfile/math32"

// AttrSlot identifies one of a Material's fixed attribute roles.
type AttrSlot int

const (
	Color AttrSlot = iota
	Specular
	Shininess
	Roughness
	Metallic
	Emissive
	Reflect
	Transmit
	IOR
	Alpha
	Bump
	numAttrSlots
)

var attrSlotNames = [numAttrSlots]string{
	"color", "specular", "shininess", "roughness", "metallic",
	"emissive", "reflect", "transmit", "ior", "alpha", "bump",
}

func (s AttrSlot) String() string {

	if s < 0 || int(s) >= int(numAttrSlots) {
		return "invalid"
	}
	return attrSlotNames[s]
}

// FilterMode selects how a texture map is sampled between texels.
type FilterMode int

const (
	FilterNearest FilterMode = iota
	FilterLinear
)

// WrapMode selects how a texture map handles coordinates outside [0,1].
type WrapMode int

const (
	WrapRepeat WrapMode = iota
	WrapClamp
)

// ReflMap selects which face of a reflection cube map (or the sphere-map
// fallback) a texture reference populates; relevant only to the MTL `refl`
// directive's `-type` option.
type ReflMap int

const (
	ReflSphere ReflMap = iota
	ReflCubeTop
	ReflCubeBottom
	ReflCubeFront
	ReflCubeBack
	ReflCubeLeft
	ReflCubeRight
)

// TexMap describes a texture reference attached to a material attribute
// slot: an optional flat 2D image, or up to six cube-face images, plus
// sampling and UV-transform state.
type TexMap struct {
	File      string    // 2D image filename, as read from the source file
	CubeFiles [6]string // indexed by ReflCubeTop..ReflCubeRight-1, empty if unused
	FilterS   FilterMode
	FilterT   FilterMode
	WrapS     WrapMode
	WrapT     WrapMode
	Offset    math32.Vector3 // UV translation
	Scale     math32.Vector3 // UV scale
	Rotation  float32        // UV rotation, radians
}

// NewTexMap returns a TexMap with the defaults used when an attribute
// slot carries no explicit map: identity UV transform, repeat/linear
// sampling.
func NewTexMap() *TexMap {

	return &TexMap{
		FilterS: FilterLinear,
		FilterT: FilterLinear,
		WrapS:   WrapRepeat,
		WrapT:   WrapRepeat,
		Scale:   math32.Vector3{X: 1, Y: 1, Z: 1},
	}
}

// MtlAttr is one of a Material's eleven fixed attribute slots: a 4-float
// value, an optional texture map, and an opaque user slot.
type MtlAttr struct {
	Value    math32.Vector4
	Map      *TexMap
	UserData UserData
}

// Material is a named table of eleven fixed attribute slots.
type Material struct {
	Name     string
	Attr     [numAttrSlots]MtlAttr
	UserData UserData
}

// NewMaterial returns a Material with the slot defaults given in the data
// model: color (0.7, 0.7, 0.7, 1), ior 1, shininess 1, roughness 1, alpha
// 1; every other slot and component zero.
func NewMaterial(name string) *Material {

	m := &Material{Name: name}
	m.Attr[Color].Value = math32.Vector4{X: 0.7, Y: 0.7, Z: 0.7, W: 1}
	m.Attr[IOR].Value = math32.Vector4{X: 1}
	m.Attr[Shininess].Value = math32.Vector4{X: 1}
	m.Attr[Roughness].Value = math32.Vector4{X: 1}
	m.Attr[Alpha].Value = math32.Vector4{X: 1}
	return m
}

// Get returns a pointer to the attribute slot identified by s.
func (m *Material) Get(s AttrSlot) *MtlAttr {

	return &m.Attr[s]
}
