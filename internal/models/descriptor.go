package models

import "strings"

// ImplSuffix is appended to the subject's simple name to form the name of
// the generated implementation class.
const ImplSuffix = "Impl"

// ObjectClass is the root of every Java class hierarchy. The linker stops
// ancestor traversal here and the resolver never scans it for members.
const ObjectClass = "java.lang.Object"

// EnumClass is the root of enum hierarchies and cannot be extended directly.
const EnumClass = "java.lang.Enum"

// TypeKind distinguishes class subjects from interface subjects.
type TypeKind int

const (
	KindClass TypeKind = iota
	KindInterface
)

// String returns the Java keyword for the kind
func (k TypeKind) String() string {
	if k == KindInterface {
		return "interface"
	}
	return "class"
}

// Relation returns the keyword the generated class uses to derive from the
// subject: "implements" for interfaces, "extends" for classes.
func (k TypeKind) Relation() string {
	if k == KindInterface {
		return "implements"
	}
	return "extends"
}

// Param is a single formal parameter of a method or constructor. Name may be
// empty when the declaration carries no usable identifier; the generator
// substitutes a positional name in that case.
type Param struct {
	Type string // erased type text, e.g. "java.lang.String" or "int[]"
	Name string
}

// Method describes one method declaration somewhere in the subject's
// hierarchy. Modifiers, throws list and parameter names are payload used
// only for rendering; identity lives in Signature.
type Method struct {
	Name       string
	Returns    string // erased return type text; "void" for void methods
	Params     []Param
	Throws     []string
	Mods       Modifier
	DeclaredBy string // qualified name of the declaring type
}

// Signature projects the method onto its identity key. Two declarations with
// equal name, parameter types and return type are the same signature no
// matter where in the hierarchy they appear or what they throw.
func (m *Method) Signature() Signature {
	types := make([]string, len(m.Params))
	for i, p := range m.Params {
		types[i] = p.Type
	}
	return Signature{
		Name:    m.Name,
		Params:  strings.Join(types, ","),
		Returns: m.Returns,
	}
}

// Constructor describes one constructor declared directly on a hierarchy
// level. Inherited constructors are never recorded.
type Constructor struct {
	Params     []Param
	Throws     []string
	Mods       Modifier
	DeclaredBy string
}

// Signature is the three-field identity key for method deduplication.
// It is a comparable value type usable directly as a map key; modifiers,
// exceptions and parameter names are deliberately excluded.
type Signature struct {
	Name    string
	Params  string // comma-joined erased parameter types, in order
	Returns string
}

// String renders the key for diagnostics and deterministic ordering.
func (s Signature) String() string {
	return s.Name + "(" + s.Params + ") " + s.Returns
}

// Less orders signatures by name, then parameter text, then return type.
// Used to make resolver output reproducible.
func (s Signature) Less(other Signature) bool {
	if s.Name != other.Name {
		return s.Name < other.Name
	}
	if s.Params != other.Params {
		return s.Params < other.Params
	}
	return s.Returns < other.Returns
}

// TypeLevel is one level of the subject's class chain: the members declared
// directly on that type, in declaration order.
type TypeLevel struct {
	QualifiedName string
	Methods       []*Method
	Constructors  []*Constructor
}

// TypeDescriptor is the immutable introspection snapshot of a subject type.
// The resolver and generator only ever read it.
type TypeDescriptor struct {
	QualifiedName string
	SimpleName    string
	PackageName   string // empty for the default package
	Kind          TypeKind
	Mods          Modifier

	// AncestorChain lists the subject's class chain from the subject itself
	// upward. java.lang.Object and unresolvable external ancestors are not
	// included. For interface subjects the chain holds only the subject.
	AncestorChain []*TypeLevel

	// VisibleMethods is the flattened externally reachable method set across
	// the whole hierarchy, including all transitively implemented
	// interfaces (the reflective getMethods view).
	VisibleMethods []*Method
}

// ImplName returns the simple name of the generated implementation class.
func (t *TypeDescriptor) ImplName() string {
	return t.SimpleName + ImplSuffix
}

// DeclaredConstructors returns the constructors declared directly on the
// subject. Nil for interface subjects.
func (t *TypeDescriptor) DeclaredConstructors() []*Constructor {
	if len(t.AncestorChain) == 0 {
		return nil
	}
	return t.AncestorChain[0].Constructors
}

// PackageDir maps the subject's package name onto a relative directory
// path using the given separator, e.g. "java.util" -> "java/util".
func (t *TypeDescriptor) PackageDir(separator string) string {
	return strings.ReplaceAll(t.PackageName, ".", separator)
}

// primitives is the fixed set of Java primitive type names.
var primitives = map[string]bool{
	"boolean": true,
	"byte":    true,
	"short":   true,
	"int":     true,
	"long":    true,
	"char":    true,
	"float":   true,
	"double":  true,
}

// IsPrimitive reports whether name is a Java primitive type name. "void" is
// not a primitive subject; it is handled separately by the generator.
func IsPrimitive(name string) bool {
	return primitives[name]
}

// IsArray reports whether the type identifier denotes an array type, in
// either source form ("int[]") or binary form ("[I", "[Ljava.lang.String;").
func IsArray(name string) bool {
	return strings.HasSuffix(name, "[]") || strings.HasPrefix(name, "[")
}
