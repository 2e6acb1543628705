package analyze

import (
	"entity-schema/internal/common"
	"entity-schema/internal/fieldpath"
	"entity-schema/internal/record"
)

// DefaultMaxDepth bounds how many struct levels FieldPaths descends.
const DefaultMaxDepth = 4

// Field is one path derived from a struct type.
type Field struct {
	Path     string
	Optional bool
	Type     *TypeInfo
}

// FieldPaths lists the leaf paths of a struct type in declaration order.
//
// Pointer fields are leaves: a nil pointer has nothing beneath it to
// declare. A string-keyed map is declared both as itself and through "[*]"
// so that its keys are defined; the "[*]" path is always optional since a
// nil map has no keys to select. Structs nested deeper than maxDepth are
// leaves too, which also stops recursive types.
func FieldPaths(root *TypeInfo, maxDepth int) []Field {
	if root == nil || root.Kind != TypeKindStruct {
		return nil
	}

	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}

	w := &pathWalker{maxDepth: maxDepth, seen: make(map[string]bool)}
	w.walk(root, "", false, 0, nil)

	return w.fields
}

type pathWalker struct {
	maxDepth int
	fields   []Field
	seen     map[string]bool
}

// walk visits the fields of struct t. shadow holds names declared by the
// embedding struct, which hide promoted members of the same name.
func (w *pathWalker) walk(t *TypeInfo, prefix string, optional bool, depth int, shadow map[string]bool) {
	direct := make(map[string]bool, len(t.Fields))
	for _, f := range t.Fields {
		if !f.Embedded {
			direct[f.Name] = true
		}
	}

	for i := range t.Fields {
		f := &t.Fields[i]

		if f.Skipped() || shadow[f.Name] {
			continue
		}

		resolved, pointer := f.Type.Resolve()

		if f.Embedded {
			if resolved != nil && resolved.Kind == TypeKindStruct {
				w.walk(resolved, prefix, optional || pointer, depth, direct)
			}

			continue
		}

		if !isExported(f.Name) {
			continue
		}

		path := record.JoinKey(prefix, f.Name)
		opt := optional || f.OmitEmpty()

		switch {
		case pointer || resolved == nil:
			w.emit(path, true, f.Type)

		case resolved.Kind == TypeKindStruct && len(resolved.Fields) > 0 && depth < w.maxDepth:
			w.walk(resolved, path, opt, depth+1, nil)

		case resolved.Kind == TypeKindSlice && depth < w.maxDepth:
			elem, elemPointer := resolved.ElemType.Resolve()
			if elem != nil && elem.Kind == TypeKindStruct && len(elem.Fields) > 0 && !elemPointer {
				w.walk(elem, path+"["+fieldpath.Wildcard+"]", opt, depth+1, nil)
				continue
			}

			w.emit(path, opt, f.Type)

		case resolved.Kind == TypeKindMap:
			w.emit(path, opt, f.Type)

			elem, elemPointer := resolved.ElemType.Resolve()
			keys := path + "[" + fieldpath.Wildcard + "]"

			if elem != nil && elem.Kind == TypeKindStruct && len(elem.Fields) > 0 && !elemPointer && depth < w.maxDepth {
				w.walk(elem, keys, true, depth+1, nil)
				continue
			}

			w.emit(keys, true, resolved.ElemType)

		default:
			w.emit(path, opt, f.Type)
		}
	}
}

func (w *pathWalker) emit(path string, optional bool, t *TypeInfo) {
	if w.seen[path] {
		return
	}

	w.seen[path] = true
	w.fields = append(w.fields, Field{Path: path, Optional: optional, Type: t})
}

func isExported(name string) bool {
	return name != "" && name[0] >= 'A' && name[0] <= 'Z'
}

// TypeString returns a short human-readable form of a type, qualifying
// external types with their package alias.
func TypeString(t *TypeInfo) string {
	if t == nil {
		return "<nil>"
	}

	switch t.Kind {
	case TypeKindBasic:
		return t.GoType.String()

	case TypeKindStruct:
		if t.IsNamed() {
			return t.ID.Name
		}

		return "struct{...}"

	case TypeKindPointer:
		return "*" + TypeString(t.ElemType)

	case TypeKindSlice:
		return "[]" + TypeString(t.ElemType)

	case TypeKindMap:
		return "map[string]" + TypeString(t.ElemType)

	case TypeKindAlias:
		if t.IsNamed() {
			return t.ID.Name
		}

		return TypeString(t.Underlying)

	case TypeKindExternal:
		return common.PkgAlias(t.ID.PkgPath) + "." + t.ID.Name

	default:
		if t.GoType == nil {
			return "<unknown>"
		}

		return t.GoType.String()
	}
}
