package parser

import (
	"regexp"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// The grammar covers Java declaration syntax only: package, imports, type
// headers and member signatures. Method bodies, field initializers, generic
// argument lists and annotation arguments are consumed as balanced token
// groups and discarded; the introspection model never needs them.

// javaLexer tokenizes Java source. Keywords are ordinary Ident tokens and
// are matched by value in the grammar.
var javaLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "LineComment", Pattern: `//[^\n]*`},
	{Name: "BlockComment", Pattern: `/\*(?:[^*]|\*+[^*/])*\*+/`},
	{Name: "String", Pattern: `"(\\.|[^"\\])*"`},
	{Name: "Char", Pattern: `'(\\.|[^'\\])*'`},
	{Name: "Number", Pattern: `\d[\w.]*`},
	{Name: "Ident", Pattern: `[a-zA-Z_$][a-zA-Z0-9_$]*`},
	{Name: "Ellipsis", Pattern: `\.\.\.`},
	{Name: "LBrace", Pattern: `\{`},
	{Name: "RBrace", Pattern: `\}`},
	{Name: "LParen", Pattern: `\(`},
	{Name: "RParen", Pattern: `\)`},
	{Name: "LBracket", Pattern: `\[`},
	{Name: "RBracket", Pattern: `\]`},
	{Name: "Langle", Pattern: `<`},
	{Name: "Rangle", Pattern: `>`},
	{Name: "At", Pattern: `@`},
	{Name: "Comma", Pattern: `,`},
	{Name: "Semi", Pattern: `;`},
	{Name: "Dot", Pattern: `\.`},
	{Name: "Question", Pattern: `\?`},
	{Name: "Operator", Pattern: `[!%^&*/+=|:~-]+`},
	{Name: "Whitespace", Pattern: `\s+`},
})

// SourceFile is the root of one parsed compilation unit.
type SourceFile struct {
	Package *PackageDecl  `parser:"@@?"`
	Imports []*ImportDecl `parser:"@@*"`
	Types   []*TopDecl    `parser:"( @@ | ';' )*"`
}

// PackageName returns the declared package, or "" for the default package.
func (f *SourceFile) PackageName() string {
	if f.Package == nil {
		return ""
	}
	return f.Package.Name
}

// PackageDecl is the package statement.
type PackageDecl struct {
	Name string `parser:"'package' @Ident ( @'.' @Ident )* ';'"`
}

// ImportDecl is a single-type or on-demand import.
type ImportDecl struct {
	Static   bool     `parser:"'import' @'static'?"`
	First    string   `parser:"@Ident"`
	Segments []string `parser:"( '.' @( Ident | '*' ) )* ';'"`
}

// IsWildcard reports whether this is an on-demand import (trailing .*).
func (i *ImportDecl) IsWildcard() bool {
	n := len(i.Segments)
	return n > 0 && i.Segments[n-1] == "*"
}

// Path returns the imported qualified name without any trailing wildcard.
func (i *ImportDecl) Path() string {
	segments := i.Segments
	if i.IsWildcard() {
		segments = segments[:len(segments)-1]
	}
	return strings.Join(append([]string{i.First}, segments...), ".")
}

// SimpleName returns the last segment of a single-type import.
func (i *ImportDecl) SimpleName() string {
	if len(i.Segments) == 0 {
		return i.First
	}
	return i.Segments[len(i.Segments)-1]
}

// TopDecl is any top-level (or nested) type declaration. Enum bodies have a
// member syntax of their own, so they are skipped wholesale.
type TopDecl struct {
	Enum *EnumDecl `parser:"@@"`
	Type *TypeDecl `parser:"| @@"`
}

// EnumDecl records an enum's name and skips its body.
type EnumDecl struct {
	Annotations []*Annotation `parser:"@@*"`
	Mods        []string      `parser:"@( 'public' | 'protected' | 'private' | 'abstract' | 'static' | 'final' | 'strictfp' )*"`
	Name        string        `parser:"'enum' @Ident"`
	Implements  []*TypeRef    `parser:"( 'implements' @@ ( ',' @@ )* )?"`
	Body        *Block        `parser:"@@"`
}

// TypeDecl is a class, interface or record declaration.
type TypeDecl struct {
	Annotations []*Annotation `parser:"@@*"`
	Mods        []string      `parser:"@( 'public' | 'protected' | 'private' | 'abstract' | 'static' | 'final' | 'strictfp' | 'sealed' )*"`
	Kind        string        `parser:"@( 'class' | 'interface' | 'record' )"`
	Name        string        `parser:"@Ident"`
	TypeParams  *AngleGroup   `parser:"@@?"`
	RecordComps *ParenGroup   `parser:"@@?"`
	Extends     []*TypeRef    `parser:"( 'extends' @@ ( ',' @@ )* )?"`
	Implements  []*TypeRef    `parser:"( 'implements' @@ ( ',' @@ )* )?"`
	Permits     []*TypeRef    `parser:"( 'permits' @@ ( ',' @@ )* )?"`
	Members     []*Member     `parser:"'{' @@* '}'"`
}

// Member is one class-body member. Fields and initializer blocks are
// recognized but carry no information the introspection model uses.
type Member struct {
	Semi   bool         `parser:"@';'"`
	Init   *Initializer `parser:"| @@"`
	Nested *TopDecl     `parser:"| @@"`
	Exec   *ExecMember  `parser:"| @@"`
}

// Initializer is a static or instance initializer block.
type Initializer struct {
	Static bool   `parser:"@'static'?"`
	Body   *Block `parser:"@@"`
}

// ExecMember is the common shape of constructors, methods and fields:
// annotations, modifiers, an optional type-parameter list, then a leading
// type reference. What follows decides which member it is: an immediate
// parameter list makes the head a constructor name.
type ExecMember struct {
	Annotations []*Annotation `parser:"@@*"`
	Mods        []string      `parser:"@( 'public' | 'protected' | 'private' | 'abstract' | 'static' | 'final' | 'transient' | 'volatile' | 'synchronized' | 'native' | 'strictfp' | 'default' )*"`
	TypeParams  *AngleGroup   `parser:"@@?"`
	Head        *TypeRef      `parser:"@@"`
	Tail        *MemberTail   `parser:"@@"`
}

// MemberTail disambiguates constructor vs named member.
type MemberTail struct {
	Ctor  *ExecRest  `parser:"@@"`
	Named *NamedTail `parser:"| @@"`
}

// NamedTail is a method or field: the member name, then either a parameter
// list or a field declarator tail.
type NamedTail struct {
	Name string      `parser:"@Ident"`
	Rest *MemberRest `parser:"@@"`
}

// MemberRest is the part after a member name.
type MemberRest struct {
	Method *ExecRest  `parser:"@@"`
	Field  *FieldRest `parser:"| @@"`
}

// ExecRest is the signature tail shared by methods and constructors.
// A nil Body means the declaration ended with a semicolon.
type ExecRest struct {
	Params  []*FormalParam `parser:"'(' ( @@ ( ',' @@ )* )? ')'"`
	Dims    []string       `parser:"( @'[' ']' )*"`
	Throws  []*TypeRef     `parser:"( 'throws' @@ ( ',' @@ )* )?"`
	Body    *Block         `parser:"( @@ | ';' )"`
}

// FormalParam is one formal parameter.
type FormalParam struct {
	Annotations []*Annotation `parser:"@@*"`
	Final       bool          `parser:"@'final'?"`
	Type        *TypeRef      `parser:"@@"`
	Varargs     bool          `parser:"@Ellipsis?"`
	Name        string        `parser:"@Ident"`
	Dims        []string      `parser:"( @'[' ']' )*"`
}

// ErasedType returns the parameter's erased type text: varargs and C-style
// declarator dims both become array dimensions.
func (p *FormalParam) ErasedType() string {
	t := p.Type.Erased()
	if p.Varargs {
		t += "[]"
	}
	t += strings.Repeat("[]", len(p.Dims))
	return t
}

// FieldRest consumes a field declarator tail up to the terminating
// semicolon, skipping balanced brace and paren groups inside initializers.
type FieldRest struct {
	Items []*FieldTok `parser:"@@* ';'"`
}

// FieldTok is one skipped token or group inside a field declarator.
type FieldTok struct {
	Brace *Block      `parser:"@@"`
	Paren *ParenGroup `parser:"| @@"`
	Any   string      `parser:"| @~( ';' | '{' | '}' | '(' | ')' )"`
}

// TypeRef is a possibly-qualified, possibly-generic, possibly-array type
// reference. Generic arguments are erased.
type TypeRef struct {
	First string      `parser:"@Ident"`
	Rest  []string    `parser:"( '.' @Ident )*"`
	Args  *AngleGroup `parser:"@@?"`
	Dims  []string    `parser:"( @'[' ']' )*"`
}

// Name returns the dotted name without array dims.
func (t *TypeRef) Name() string {
	if len(t.Rest) == 0 {
		return t.First
	}
	return strings.Join(append([]string{t.First}, t.Rest...), ".")
}

// Erased returns the raw type text with array dims and without generic
// arguments.
func (t *TypeRef) Erased() string {
	return t.Name() + strings.Repeat("[]", len(t.Dims))
}

// AngleGroup is a balanced <...> group (type parameters or arguments).
type AngleGroup struct {
	Items []*AngleItem `parser:"'<' @@* '>'"`
}

// AngleItem is one token or nested group inside an angle group.
type AngleItem struct {
	Sub *AngleGroup `parser:"@@"`
	Any string      `parser:"| @~( '<' | '>' )"`
}

var identPattern = regexp.MustCompile(`^[a-zA-Z_$][a-zA-Z0-9_$]*$`)

// ParamNames extracts the declared names from a type-parameter list: the
// first identifier of each comma-separated segment. Bounds are ignored.
func (g *AngleGroup) ParamNames() []string {
	var names []string
	expect := true
	for _, item := range g.Items {
		if item.Sub != nil {
			continue
		}
		if item.Any == "," {
			expect = true
			continue
		}
		if expect && identPattern.MatchString(item.Any) {
			names = append(names, item.Any)
			expect = false
		}
	}
	return names
}

// Block is a balanced {...} group whose contents are discarded.
type Block struct {
	Items []*BlockItem `parser:"'{' @@* '}'"`
}

// BlockItem is one token or nested block inside a skipped block.
type BlockItem struct {
	Sub *Block `parser:"@@"`
	Any string `parser:"| @~( '{' | '}' )"`
}

// ParenGroup is a balanced (...) group whose contents are discarded.
type ParenGroup struct {
	Items []*ParenItem `parser:"'(' @@* ')'"`
}

// ParenItem is one token or nested group inside a skipped paren group.
type ParenItem struct {
	Paren *ParenGroup `parser:"@@"`
	Brace *Block      `parser:"| @@"`
	Any   string      `parser:"| @~( '(' | ')' | '{' | '}' )"`
}

// Annotation is a use-site annotation; arguments are skipped.
type Annotation struct {
	Name string      `parser:"'@' @Ident ( @'.' @Ident )*"`
	Args *ParenGroup `parser:"@@?"`
}

// buildParser constructs the participle parser for compilation units.
func buildParser() *participle.Parser[SourceFile] {
	return participle.MustBuild[SourceFile](
		participle.Lexer(javaLexer),
		participle.Elide("Whitespace", "LineComment", "BlockComment"),
		participle.UseLookahead(1024),
	)
}
