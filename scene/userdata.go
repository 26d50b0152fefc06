package scene

// UserData is the opaque slot carried by Mesh, Material, MtlAttr and Node.
// The original C library overloads a single void* for two unrelated
// purposes depending on the caller: a host application tag, and scratch
// state a loader stashes temporarily during decode (for instance, the
// glTF codec parks a JSON mesh-index on a freshly built Mesh's user slot
// so node assembly can later look up which meshes belong to which node).
// Representing that as one Go field typed interface{} would let the two
// uses collide silently; UserData instead makes the slot a closed sum
// type so a caller can only ever be holding one kind of value at a time.
type UserData struct {
	kind userDataKind
	host uint64
	val  interface{}
}

type userDataKind int

const (
	udNone userDataKind = iota
	udHostHandle
	udLoaderScratch
)

// HostHandle wraps an arbitrary integer handle a host application wants
// to associate with a scene entity.
func HostHandle(h uint64) UserData {

	return UserData{kind: udHostHandle, host: h}
}

// LoaderScratch wraps a value a codec uses as transient state during
// decode. It is not meant to be read by anything outside the codec that
// set it.
func LoaderScratch(v interface{}) UserData {

	return UserData{kind: udLoaderScratch, val: v}
}

// IsNone reports whether this slot holds no value.
func (u UserData) IsNone() bool {

	return u.kind == udNone
}

// AsHostHandle returns the wrapped handle and true if this slot holds one.
func (u UserData) AsHostHandle() (uint64, bool) {

	if u.kind != udHostHandle {
		return 0, false
	}
	return u.host, true
}

// AsLoaderScratch returns the wrapped value and true if this slot holds
// loader scratch state.
func (u UserData) AsLoaderScratch() (interface{}, bool) {

	if u.kind != udLoaderScratch {
		return nil, false
	}
	return u.val, true
}
