package avatar

import (
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

// Palette is the fixed, ordered set of gradient styles used for entities
// without an uploaded image. Order matters: the selection index is stable
// only as long as the palette keeps its order.
var Palette = []string{
	"gradient-purple-pink-red",
	"gradient-green-blue",
	"gradient-yellow-red-pink",
	"gradient-indigo-purple-pink",
	"gradient-blue-green",
	"gradient-red-orange-yellow",
	"gradient-green-blue-purple",
	"gradient-pink-indigo",
	"gradient-yellow-green-blue",
}

// DefaultInitial is rendered when the entity has no usable name.
const DefaultInitial = "U"

// Badge is the placeholder visual for an entity: a palette style plus the
// display initial. Embedded in list and detail responses so every client
// renders the same fallback.
type Badge struct {
	Style   string `json:"style"`
	Initial string `json:"initial"`
}

// Index maps an entity identifier to a palette index. It accumulates the
// signed 32-bit rolling hash hash = unit + (hash<<5) - hash over the
// identifier's UTF-16 code units and reduces it by abs(hash) mod
// len(Palette). Hashing code units rather than runes keeps identifiers with
// characters outside the basic plane on the same palette entry that web
// clients compute from charCodeAt. Collisions are fine; the only requirement
// is that the same identifier always lands on the same entry.
func Index(id string) int {
	var hash int32
	for _, u := range utf16.Encode([]rune(id)) {
		hash = int32(u) + (hash << 5) - hash
	}
	idx := int64(hash)
	if idx < 0 {
		idx = -idx
	}
	return int(idx % int64(len(Palette)))
}

// Style returns the palette entry selected for the identifier.
func Style(id string) string {
	return Palette[Index(id)]
}

// Initial returns the uppercased first character of name, or DefaultInitial
// when the name is blank.
func Initial(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return DefaultInitial
	}
	r, _ := utf8.DecodeRuneInString(name)
	return strings.ToUpper(string(r))
}

// For builds the fallback badge for an entity.
func For(id, name string) Badge {
	return Badge{Style: Style(id), Initial: Initial(name)}
}
