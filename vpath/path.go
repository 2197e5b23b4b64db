package vpath

import (
	"strings"
	"sync"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Path is an immutable virtual path. The zero value is the root.
type Path struct {
	components []string
}

// Root is the empty path.
var Root = Path{}

// Parse normalises s into a Path. Backslashes are treated as separators,
// empty and "." components are dropped and ".." never climbs above the root.
func Parse(s string) Path {
	s = strings.ReplaceAll(s, "\\", "/")
	var result []string
	for _, comp := range strings.Split(s, "/") {
		switch comp {
		case "", ".":
			continue
		case "..":
			if len(result) > 0 {
				result = result[:len(result)-1]
			}
		default:
			result = append(result, comp)
		}
	}
	return Path{components: result}
}

// New builds a Path from already separated components.
func New(components ...string) Path {
	return Parse(strings.Join(components, "/"))
}

// A Caser is stateful and not safe for concurrent use.
var lowerPool = sync.Pool{
	New: func() any {
		c := cases.Lower(language.Und, cases.HandleFinalSigma(false))
		return &c
	},
}

// Fold returns the case-insensitive comparison form of s. It lowers runes
// one for one and never expands them, so "straße" and "strasse" stay
// distinct.
func Fold(s string) string {
	ascii := true
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			ascii = false
			break
		}
	}
	if ascii {
		return strings.ToLower(s)
	}
	c := lowerPool.Get().(*cases.Caser)
	defer lowerPool.Put(c)
	return c.String(s)
}

// String returns the path in its original casing.
func (p Path) String() string {
	return strings.Join(p.components, "/")
}

// Key returns the folded form of the path, suitable as a map key.
func (p Path) Key() string {
	return Fold(p.String())
}

// IsRoot reports whether p is the empty path.
func (p Path) IsRoot() bool {
	return len(p.components) == 0
}

// Len returns the number of components.
func (p Path) Len() int {
	return len(p.components)
}

// Components returns a copy of the components of p.
func (p Path) Components() []string {
	out := make([]string, len(p.components))
	copy(out, p.components)
	return out
}

// Component returns the i-th component.
func (p Path) Component(i int) string {
	return p.components[i]
}

// Base returns the last component, or "" for the root.
func (p Path) Base() string {
	if len(p.components) == 0 {
		return ""
	}
	return p.components[len(p.components)-1]
}

// Parent returns p without its last component. The parent of the root is the root.
func (p Path) Parent() Path {
	if len(p.components) <= 1 {
		return Root
	}
	return Path{components: p.components[:len(p.components)-1]}
}

// Ext returns the extension of the last component including the dot.
func (p Path) Ext() string {
	base := p.Base()
	if i := strings.LastIndexByte(base, '.'); i > 0 {
		return base[i:]
	}
	return ""
}

// Join appends other to p.
func (p Path) Join(other Path) Path {
	if other.IsRoot() {
		return p
	}
	if p.IsRoot() {
		return other
	}
	comps := make([]string, 0, len(p.components)+len(other.components))
	comps = append(comps, p.components...)
	comps = append(comps, other.components...)
	return Path{components: comps}
}

// Append adds a single component to p.
func (p Path) Append(name string) Path {
	return p.Join(Parse(name))
}

// Prefix returns the first n components of p.
func (p Path) Prefix(n int) Path {
	if n >= len(p.components) {
		return p
	}
	return Path{components: p.components[:n]}
}

// Equal reports whether p and other name the same path, ignoring case.
func (p Path) Equal(other Path) bool {
	if len(p.components) != len(other.components) {
		return false
	}
	for i := range p.components {
		if !EqualFold(p.components[i], other.components[i]) {
			return false
		}
	}
	return true
}

// HasPrefix reports whether prefix is a component-wise, case-insensitive
// prefix of p. Every path has the root as prefix.
func (p Path) HasPrefix(prefix Path) bool {
	if len(prefix.components) > len(p.components) {
		return false
	}
	for i := range prefix.components {
		if !EqualFold(p.components[i], prefix.components[i]) {
			return false
		}
	}
	return true
}

// TrimPrefix removes prefix from p. ok is false if prefix is not a prefix of p.
func (p Path) TrimPrefix(prefix Path) (rest Path, ok bool) {
	if !p.HasPrefix(prefix) {
		return p, false
	}
	if len(prefix.components) == len(p.components) {
		return Root, true
	}
	return Path{components: p.components[len(prefix.components):]}, true
}

// EqualFold compares two components case-insensitively.
func EqualFold(a, b string) bool {
	if a == b {
		return true
	}
	return Fold(a) == Fold(b)
}

// Less orders paths by their folded form, falling back to the original
// spelling so the order is total.
func Less(a, b Path) bool {
	ka, kb := a.Key(), b.Key()
	if ka != kb {
		return ka < kb
	}
	return a.String() < b.String()
}
