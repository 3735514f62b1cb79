package models

import "strings"

// Modifier is a bitmask of Java declaration modifiers. The String order
// matches java.lang.reflect.Modifier.toString so rendered declarations read
// like javac output.
type Modifier uint16

const (
	ModPublic Modifier = 1 << iota
	ModProtected
	ModPrivate
	ModAbstract
	ModStatic
	ModFinal
	ModTransient
	ModVolatile
	ModSynchronized
	ModNative
	ModStrictfp
	// ModDefault marks interface default methods. It never appears in
	// generated output; it only prevents a body-less-looking member from
	// being treated as abstract.
	ModDefault
)

// modifierWords maps source keywords to flags, used by the parser.
var modifierWords = map[string]Modifier{
	"public":       ModPublic,
	"protected":    ModProtected,
	"private":      ModPrivate,
	"abstract":     ModAbstract,
	"static":       ModStatic,
	"final":        ModFinal,
	"transient":    ModTransient,
	"volatile":     ModVolatile,
	"synchronized": ModSynchronized,
	"native":       ModNative,
	"strictfp":     ModStrictfp,
	"default":      ModDefault,
}

// ParseModifier maps a modifier keyword to its flag. The second result is
// false for words that are not modifiers.
func ParseModifier(word string) (Modifier, bool) {
	m, ok := modifierWords[word]
	return m, ok
}

// canonical print order, per Modifier.toString
var modifierOrder = []struct {
	flag Modifier
	word string
}{
	{ModPublic, "public"},
	{ModProtected, "protected"},
	{ModPrivate, "private"},
	{ModAbstract, "abstract"},
	{ModDefault, "default"},
	{ModStatic, "static"},
	{ModFinal, "final"},
	{ModTransient, "transient"},
	{ModVolatile, "volatile"},
	{ModSynchronized, "synchronized"},
	{ModNative, "native"},
	{ModStrictfp, "strictfp"},
}

// Has reports whether all bits of flag are set.
func (m Modifier) Has(flag Modifier) bool {
	return m&flag == flag
}

// Without returns the modifier set with the given flags cleared.
func (m Modifier) Without(flags Modifier) Modifier {
	return m &^ flags
}

// IsVisible reports whether the member is not private.
func (m Modifier) IsVisible() bool {
	return !m.Has(ModPrivate)
}

// String renders the set modifiers space-separated in canonical order.
// Empty for the package-private, flagless case.
func (m Modifier) String() string {
	var words []string
	for _, entry := range modifierOrder {
		if m.Has(entry.flag) {
			words = append(words, entry.word)
		}
	}
	return strings.Join(words, " ")
}
