package fieldpath

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Wildcard selects every element of a sequence or every entry of a mapping.
const Wildcard = "*"

// Selector is one alternative inside an index group: a key, an index, or the
// wildcard.
type Selector string

// IsWildcard reports whether s is the wildcard token.
func (s Selector) IsWildcard() bool {
	return s == Wildcard
}

// Index returns s as a sequence index. Only plain decimal digits qualify.
func (s Selector) Index() (int, bool) {
	if s == "" {
		return 0, false
	}

	for _, r := range s {
		if !isDigit(r) {
			return 0, false
		}
	}

	n, err := strconv.Atoi(string(s))
	if err != nil {
		return 0, false
	}

	return n, true
}

// IndexGroup is one bracketed selector list.
type IndexGroup []Selector

// HasWildcard reports whether any selector in the group is the wildcard.
func (g IndexGroup) HasWildcard() bool {
	for _, s := range g {
		if s.IsWildcard() {
			return true
		}
	}

	return false
}

// FansOut reports whether applying the group can produce more than one
// branch.
func (g IndexGroup) FansOut() bool {
	return len(g) != 1 || g.HasWildcard()
}

func (g IndexGroup) String() string {
	parts := make([]string, len(g))
	for i, s := range g {
		parts[i] = string(s)
	}

	return "[" + strings.Join(parts, "|") + "]"
}

// Segment is one dot-separated component of a path.
type Segment struct {
	Key    string
	Groups []IndexGroup
}

func (s Segment) String() string {
	var b strings.Builder

	b.WriteString(s.Key)

	for _, g := range s.Groups {
		b.WriteString(g.String())
	}

	return b.String()
}

// Path is a parsed path string.
type Path []Segment

func (p Path) String() string {
	parts := make([]string, len(p))
	for i, s := range p {
		parts[i] = s.String()
	}

	return strings.Join(parts, ".")
}

// Parse splits a path string on '.' and parses every segment. The empty
// string parses to an empty path.
func Parse(path string) (Path, error) {
	if path == "" {
		return nil, nil
	}

	parts := strings.Split(path, ".")
	segments := make(Path, 0, len(parts))

	for _, part := range parts {
		if part == "" {
			return nil, syntaxError(path, "empty segment")
		}

		seg, err := ParseSegment(part)
		if err != nil {
			return nil, syntaxError(path, err.(*Error).Detail)
		}

		segments = append(segments, seg)
	}

	return segments, nil
}

// ParseSegment splits one segment into its base key and index groups.
//
// Examples:
//   - "Name"              => ("Name", [])
//   - "Skills[3]"         => ("Skills", [[3]])
//   - "Stats[HP|MP]"      => ("Stats", [[HP MP]])
//   - "Grid[3][4]"        => ("Grid", [[3] [4]])
//   - "Pools[HP|MP][*]"   => ("Pools", [[HP MP] [*]])
func ParseSegment(segment string) (Segment, error) {
	key, rest := segment, ""
	if i := strings.IndexByte(segment, '['); i >= 0 {
		key, rest = segment[:i], segment[i:]
	}

	if !isValidKey(key) {
		return Segment{}, syntaxError(segment, fmt.Sprintf("segment %q does not begin with a valid key", segment))
	}

	seg := Segment{Key: key}

	for rest != "" {
		if rest[0] != '[' {
			return Segment{}, syntaxError(segment, fmt.Sprintf("unexpected %q after index group in %q", rest, segment))
		}

		end := strings.IndexByte(rest, ']')
		if end < 0 {
			return Segment{}, syntaxError(segment, fmt.Sprintf("unterminated index group in %q", segment))
		}

		body := rest[1:end]
		if body == "" {
			return Segment{}, syntaxError(segment, fmt.Sprintf("empty index group in %q", segment))
		}

		alts := strings.Split(body, "|")
		group := make(IndexGroup, 0, len(alts))

		for _, alt := range alts {
			if !isValidSelector(alt) {
				return Segment{}, syntaxError(segment, fmt.Sprintf("invalid selector %q in %q", alt, segment))
			}

			group = append(group, Selector(alt))
		}

		seg.Groups = append(seg.Groups, group)
		rest = rest[end+1:]
	}

	return seg, nil
}

func syntaxError(path, detail string) *Error {
	return &Error{Op: "parse", Path: path, Err: ErrPathSyntax, Detail: detail}
}

// isValidKey checks that a key starts like an identifier. Later characters
// may be anything except the grammar's own punctuation, so keys such as
// "Hit Points" stay addressable.
func isValidKey(s string) bool {
	if s == "" {
		return false
	}

	for i, r := range s {
		if i == 0 {
			if !unicode.IsLetter(r) && r != '_' {
				return false
			}

			continue
		}

		if isReserved(r) {
			return false
		}
	}

	return true
}

func isValidSelector(s string) bool {
	if s == Wildcard {
		return true
	}

	if s == "" {
		return false
	}

	for _, r := range s {
		if isReserved(r) {
			return false
		}
	}

	return true
}

func isReserved(r rune) bool {
	return r == '[' || r == ']' || r == '|' || r == '.' || r == '*'
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
