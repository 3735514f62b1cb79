// Package generator renders the implementation class for a resolved
// subject: the package and declaration lines, the delegating constructor,
// and one default-value stub per retained obligation.
package generator

import (
	"fmt"
	"strings"

	"github.com/bware/jimpl/internal/models"
	"github.com/bware/jimpl/internal/resolver"
)

// strippedMods never appear on a generated member: abstract would keep the
// class abstract, native and transient are not implementable in source.
const strippedMods = models.ModAbstract | models.ModNative | models.ModTransient | models.ModDefault

const visibilityMods = models.ModPublic | models.ModProtected | models.ModPrivate

// Render produces the complete source text of the implementation class.
// constructorChoice must be nil exactly when the subject is an interface.
// The output is deterministic and 7-bit clean: every character at or above
// code point 128 is emitted as its \uXXXX escape, which Java accepts
// anywhere in a compilation unit.
func Render(subject *models.TypeDescriptor, obligations []*resolver.Obligation, constructorChoice *models.Constructor) string {
	var b strings.Builder

	if subject.PackageName != "" {
		fmt.Fprintf(&b, "package %s;\n\n", subject.PackageName)
	}
	fmt.Fprintf(&b, "public class %s %s %s {\n",
		subject.ImplName(), subject.Kind.Relation(), subject.QualifiedName)

	if constructorChoice != nil {
		writeConstructor(&b, subject, constructorChoice)
	}
	for _, obligation := range obligations {
		writeMethod(&b, obligation.Method)
	}

	b.WriteString("}\n")
	return Encode(b.String())
}

// writeConstructor emits the delegating constructor: the subject's chosen
// constructor signature with visibility normalized to public, forwarding
// every parameter positionally to super.
func writeConstructor(b *strings.Builder, subject *models.TypeDescriptor, c *models.Constructor) {
	mods := c.Mods.Without(strippedMods | visibilityMods) | models.ModPublic
	params := paramList(c.Params)

	names := make([]string, len(c.Params))
	for i := range c.Params {
		names[i] = paramName(c.Params[i], i)
	}
	body := fmt.Sprintf("super(%s);", strings.Join(names, ", "))

	writeExecutable(b, mods.String(), subject.ImplName(), params, c.Throws, body)
}

// writeMethod emits one stub: the representative's signature with abstract,
// native and transient stripped, and a body returning the type-appropriate
// default value.
func writeMethod(b *strings.Builder, m *models.Method) {
	mods := m.Mods.Without(strippedMods)
	header := m.Returns + " " + m.Name
	writeExecutable(b, mods.String(), header, paramList(m.Params), m.Throws, returnStatement(m.Returns))
}

// writeExecutable renders one member block. An empty body yields an empty
// braces pair, which is how void stubs are written.
func writeExecutable(b *strings.Builder, mods, header, params string, throws []string, body string) {
	b.WriteString("\t")
	if mods != "" {
		b.WriteString(mods)
		b.WriteString(" ")
	}
	b.WriteString(header)
	b.WriteString(params)
	if len(throws) > 0 {
		b.WriteString(" throws ")
		b.WriteString(strings.Join(throws, ", "))
	}
	b.WriteString(" {\n")
	if body != "" {
		b.WriteString("\t\t")
		b.WriteString(body)
		b.WriteString("\n")
	}
	b.WriteString("\t}\n")
}

// paramList renders "(type0 name0, type1 name1, ...)".
func paramList(params []models.Param) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = p.Type + " " + paramName(p, i)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// paramName returns the declared parameter name when it is a usable
// identifier, otherwise a positional synthetic name.
func paramName(p models.Param, index int) string {
	if isUsableIdentifier(p.Name) {
		return p.Name
	}
	return fmt.Sprintf("arg%d", index)
}

// returnStatement picks the default-value return for a stub body. Void
// methods get an empty body.
func returnStatement(returns string) string {
	switch {
	case returns == "void":
		return ""
	case returns == "boolean":
		return "return false;"
	case models.IsPrimitive(returns):
		return "return 0;"
	default:
		return "return null;"
	}
}

// reservedWords are Java keywords and literals that cannot name a
// parameter. "this" appears in source as a receiver parameter name.
var reservedWords = map[string]bool{
	"this": true, "super": true, "null": true, "true": true, "false": true,
	"class": true, "new": true, "return": true, "void": true,
}

func isUsableIdentifier(name string) bool {
	if name == "" || reservedWords[name] || models.IsPrimitive(name) {
		return false
	}
	for i, r := range name {
		letter := r == '_' || r == '$' ||
			(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		digit := r >= '0' && r <= '9'
		if !letter && !(i > 0 && digit) {
			return false
		}
	}
	return true
}
