package analyze

import (
	"go/types"
	"reflect"
	"strings"
)

//go:generate go tool stringer -type=TypeKind -trimprefix=TypeKind -output=typekind_string.go

// TypeID uniquely identifies a type by its package path and name.
type TypeID struct {
	PkgPath string // e.g., "entity-schema/bestiary"
	Name    string // e.g., "Creature"
}

// String returns a human-readable representation of the TypeID.
func (t TypeID) String() string {
	if t.PkgPath == "" {
		return t.Name
	}

	return t.PkgPath + "." + t.Name
}

// TypeKind represents the kind of a type.
type TypeKind int

const (
	TypeKindUnknown  TypeKind = iota
	TypeKindBasic             // int, string, bool, etc.
	TypeKindStruct            // struct type
	TypeKindPointer           // pointer to another type
	TypeKindSlice             // slice or array of another type
	TypeKindMap               // map keyed by string
	TypeKindAlias             // named type wrapping another
	TypeKindExternal          // opaque type from an unloaded package (e.g., time.Time)
)

// TypeInfo describes a Go type in the type graph.
type TypeInfo struct {
	ID         TypeID      // Unique identifier (empty for unnamed types like *T or []T)
	Kind       TypeKind    // Kind of type
	Underlying *TypeInfo   // For named types, the underlying type
	ElemType   *TypeInfo   // For pointers, slices and maps, the element type
	Fields     []FieldInfo // For structs, the list of exported fields
	GoType     types.Type  // The original go/types.Type
}

// IsNamed returns true if this type has a name (TypeID is set).
func (t *TypeInfo) IsNamed() bool {
	return t.ID.Name != ""
}

// Resolve follows pointers and aliases down to the type that decides the
// shape of a record value. It reports whether a pointer was crossed.
func (t *TypeInfo) Resolve() (*TypeInfo, bool) {
	pointer := false

	for t != nil {
		switch t.Kind {
		case TypeKindPointer:
			pointer = true
			t = t.ElemType
		case TypeKindAlias:
			t = t.Underlying
		default:
			return t, pointer
		}
	}

	return nil, pointer
}

// FieldInfo describes a struct field.
type FieldInfo struct {
	Name     string            // Go field name
	Type     *TypeInfo         // Field type
	Tag      reflect.StructTag // Raw struct tag
	Embedded bool              // Whether the field is embedded (anonymous)
	Index    int               // Field index in the struct
}

// Skipped reports whether the field is excluded with `yaml:"-"`.
func (f *FieldInfo) Skipped() bool {
	name, _, _ := strings.Cut(f.Tag.Get("yaml"), ",")
	return name == "-"
}

// OmitEmpty reports whether the yaml tag carries the omitempty option.
func (f *FieldInfo) OmitEmpty() bool {
	_, opts, _ := strings.Cut(f.Tag.Get("yaml"), ",")
	for _, opt := range strings.Split(opts, ",") {
		if opt == "omitempty" {
			return true
		}
	}

	return false
}

// TypeGraph holds all analyzed types from loaded packages.
type TypeGraph struct {
	// Types maps TypeID to TypeInfo for all named types.
	Types map[TypeID]*TypeInfo
	// Packages maps package paths to their package info.
	Packages map[string]*PackageInfo
}

// NewTypeGraph creates a new empty TypeGraph.
func NewTypeGraph() *TypeGraph {
	return &TypeGraph{
		Types:    make(map[TypeID]*TypeInfo),
		Packages: make(map[string]*PackageInfo),
	}
}

// GetType returns the TypeInfo for a given TypeID, or nil if not found.
func (g *TypeGraph) GetType(id TypeID) *TypeInfo {
	return g.Types[id]
}

// PackageInfo holds information about a loaded package.
type PackageInfo struct {
	Path  string   // Import path
	Name  string   // Package name
	Types []TypeID // Named types defined in this package
}
