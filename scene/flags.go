package scene

// LoadFlags controls optional post-processing performed by Load/LoadReader
// after a codec successfully decodes a stream. Transform propagation,
// bounds recomputation and (when normals are missing) normal synthesis
// always run; these flags gate the rest of the pipeline.
type LoadFlags uint32

const (
	// NoProc disables normal synthesis even when a loaded mesh has no
	// normals.
	NoProc LoadFlags = 1 << iota
	// GenTangents runs tangent-space synthesis after normal synthesis.
	GenTangents
	// ApplyXform bakes each node's global matrix into its meshes'
	// positions/normals/tangents and resets node matrices to identity.
	ApplyXform
)

// SaveFormat explicitly selects the codec used by Save/SaveWriter,
// overriding suffix-based dispatch.
type SaveFormat int

const (
	// Auto selects the codec from the destination filename's suffix,
	// falling back to OBJ when the suffix is not recognized.
	Auto SaveFormat = iota
	OBJ
	JTF
	GLTF
	TDS
	STL
)

func (f SaveFormat) String() string {

	switch f {
	case OBJ:
		return "obj"
	case JTF:
		return "jtf"
	case GLTF:
		return "gltf"
	case TDS:
		return "3ds"
	case STL:
		return "stl"
	default:
		return "auto"
	}
}
