package parser

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/bware/jimpl/internal/errors"
	"github.com/bware/jimpl/internal/models"
	"github.com/bware/jimpl/internal/utils"
)

// Linker resolves fully-qualified type names against a set of source roots
// and builds immutable TypeDescriptor snapshots: the ancestor chain, the
// members declared per level, and the flattened externally visible method
// set. Parsed files and resolved types are cached, so repeated lookups of
// the same hierarchy are cheap.
type Linker struct {
	roots       []string
	parser      *SourceParser
	diagnostics *utils.DiagnosticSystem
	files       map[string]*SourceFile // parsed compilation units by path
	types       map[string]*rawType    // resolved types by qualified name (nil = known absent)
}

// rawType is one parsed top-level type together with its file scope.
type rawType struct {
	name string // qualified name
	pkg  string
	path string
	file *SourceFile
	decl *TypeDecl
	enum *EnumDecl
}

// scope carries what is needed to qualify a plain type name at a use site.
type scope struct {
	raw        *rawType
	typeParams map[string]bool
}

// NewLinker creates a linker over the given source roots.
func NewLinker(roots []string, diagnostics *utils.DiagnosticSystem) *Linker {
	if len(roots) == 0 {
		roots = []string{"."}
	}
	return &Linker{
		roots:       roots,
		parser:      NewSourceParser(),
		diagnostics: diagnostics,
		files:       make(map[string]*SourceFile),
		types:       make(map[string]*rawType),
	}
}

// Lookup resolves a fully-qualified type name to its introspection
// snapshot. It fails with TypeResolutionError when no source root contains
// the type, and with InvalidSubject for kinds that cannot structurally be
// extended (enums, records).
func (l *Linker) Lookup(qualifiedName string) (*models.TypeDescriptor, error) {
	raw, err := l.resolveType(qualifiedName)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, errors.Newf(errors.TypeResolutionErrorCode,
			"cannot resolve type '%s' in source path %s", qualifiedName, strings.Join(l.roots, string(os.PathListSeparator))).
			WithSuggestion("check the fully-qualified name and the -sourcepath roots")
	}
	if raw.enum != nil {
		return nil, errors.NewInvalidSubject(qualifiedName, "enum types cannot be extended")
	}
	if raw.decl.Kind == "record" {
		return nil, errors.NewInvalidSubject(qualifiedName, "record types are implicitly final")
	}

	kind := models.KindClass
	if raw.decl.Kind == "interface" {
		kind = models.KindInterface
	}

	mods := parseModifierWords(raw.decl.Mods)
	for _, word := range raw.decl.Mods {
		// A sealed type only admits its permitted subclasses, so treat it
		// like a final subject.
		if word == "sealed" {
			mods |= models.ModFinal
		}
	}

	simple := raw.decl.Name
	descriptor := &models.TypeDescriptor{
		QualifiedName: raw.name,
		SimpleName:    simple,
		PackageName:   raw.pkg,
		Kind:          kind,
		Mods:          mods,
	}

	chainRaws, err := l.buildChain(raw)
	if err != nil {
		return nil, err
	}
	for _, cr := range chainRaws {
		descriptor.AncestorChain = append(descriptor.AncestorChain, l.buildLevel(cr))
	}
	visible, err := l.collectVisible(chainRaws, descriptor.AncestorChain)
	if err != nil {
		return nil, err
	}
	descriptor.VisibleMethods = visible

	return descriptor, nil
}

// buildChain walks the class chain from the subject upward, stopping at
// java.lang.Object, at interfaces, and at ancestors that no source root
// provides.
func (l *Linker) buildChain(subject *rawType) ([]*rawType, error) {
	var chain []*rawType
	seen := make(map[string]bool)

	current := subject
	for current != nil && !seen[current.name] {
		seen[current.name] = true
		chain = append(chain, current)

		if current.decl.Kind != "class" {
			break
		}
		if len(current.decl.Extends) == 0 {
			break
		}
		superName := l.qualify(current.decl.Extends[0].Name(), l.scopeOf(current, nil))
		if superName == models.ObjectClass {
			break
		}
		next, err := l.resolveType(superName)
		if err != nil {
			return nil, err
		}
		if next == nil {
			l.diagnostics.Verbose("ancestor '%s' of '%s' not found in source path; chain truncated", superName, current.name)
			break
		}
		if next.enum != nil {
			break
		}
		current = next
	}
	return chain, nil
}

// buildLevel converts one raw type into its declared-member level.
// Interface members receive their implicit modifiers here, and classes that
// declare no constructor get the implicit default constructor, matching the
// reflective view of the type.
func (l *Linker) buildLevel(raw *rawType) *models.TypeLevel {
	level := &models.TypeLevel{QualifiedName: raw.name}
	isInterface := raw.decl.Kind == "interface"
	classParams := paramSet(raw.decl.TypeParams)

	for _, member := range raw.decl.Members {
		exec := member.Exec
		if exec == nil {
			continue
		}
		sc := l.scopeOf(raw, mergeParams(classParams, exec.TypeParams))

		if exec.Tail.Ctor != nil {
			if exec.Head.Name() != raw.decl.Name || len(exec.Head.Dims) > 0 {
				l.diagnostics.Verbose("skipping malformed member '%s' in %s", exec.Head.Name(), raw.path)
				continue
			}
			level.Constructors = append(level.Constructors, &models.Constructor{
				Params:     l.buildParams(exec.Tail.Ctor.Params, sc),
				Throws:     l.buildThrows(exec.Tail.Ctor.Throws, sc),
				Mods:       parseModifierWords(exec.Mods),
				DeclaredBy: raw.name,
			})
			continue
		}

		named := exec.Tail.Named
		if named == nil || named.Rest.Method == nil {
			continue // field
		}
		rest := named.Rest.Method
		mods := parseModifierWords(exec.Mods)
		if isInterface {
			mods |= models.ModPublic
			if rest.Body == nil && !mods.Has(models.ModStatic) && !mods.Has(models.ModDefault) && !mods.Has(models.ModPrivate) {
				mods |= models.ModAbstract
			}
		}
		returns := l.resolveTypeRef(exec.Head, sc) + strings.Repeat("[]", len(rest.Dims))
		level.Methods = append(level.Methods, &models.Method{
			Name:       named.Name,
			Returns:    returns,
			Params:     l.buildParams(rest.Params, sc),
			Throws:     l.buildThrows(rest.Throws, sc),
			Mods:       mods,
			DeclaredBy: raw.name,
		})
	}

	if raw.decl.Kind == "class" && len(level.Constructors) == 0 {
		// implicit default constructor
		level.Constructors = append(level.Constructors, &models.Constructor{
			Mods:       models.ModPublic,
			DeclaredBy: raw.name,
		})
	}
	return level
}

// collectVisible flattens the externally reachable method set: public
// methods of every class-chain level, then every method contributed by the
// transitively implemented interfaces. First occurrence of a signature wins,
// walking from the subject outward, which makes the representative choice
// deterministic.
func (l *Linker) collectVisible(chain []*rawType, levels []*models.TypeLevel) ([]*models.Method, error) {
	var visible []*models.Method
	taken := make(map[models.Signature]bool)
	add := func(m *models.Method) {
		if !m.Mods.Has(models.ModPublic) {
			return
		}
		sig := m.Signature()
		if taken[sig] {
			return
		}
		taken[sig] = true
		visible = append(visible, m)
	}

	for _, level := range levels {
		for _, m := range level.Methods {
			add(m)
		}
	}

	// breadth-first over the interface graph, declaration order
	var queue []string
	seenTypes := make(map[string]bool)
	enqueue := func(raw *rawType, refs []*TypeRef) {
		sc := l.scopeOf(raw, nil)
		for _, ref := range refs {
			name := l.qualify(ref.Name(), sc)
			if !seenTypes[name] {
				seenTypes[name] = true
				queue = append(queue, name)
			}
		}
	}
	for _, raw := range chain {
		if raw.decl.Kind == "interface" {
			enqueue(raw, raw.decl.Extends)
		} else {
			enqueue(raw, raw.decl.Implements)
		}
	}

	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]
		raw, err := l.resolveType(name)
		if err != nil {
			return nil, err
		}
		if raw == nil {
			l.diagnostics.Verbose("interface '%s' not found in source path; its members are not visible", name)
			continue
		}
		if raw.decl == nil || raw.decl.Kind != "interface" {
			continue
		}
		for _, m := range l.buildLevel(raw).Methods {
			add(m)
		}
		enqueue(raw, raw.decl.Extends)
	}
	return visible, nil
}

func (l *Linker) buildParams(params []*FormalParam, sc scope) []models.Param {
	var out []models.Param
	for _, p := range params {
		t := l.resolveTypeRef(p.Type, sc)
		if p.Varargs {
			t += "[]"
		}
		t += strings.Repeat("[]", len(p.Dims))
		out = append(out, models.Param{Type: t, Name: p.Name})
	}
	return out
}

func (l *Linker) buildThrows(refs []*TypeRef, sc scope) []string {
	var out []string
	for _, ref := range refs {
		out = append(out, l.resolveTypeRef(ref, sc))
	}
	return out
}

// resolveTypeRef produces the erased, qualified type text for a reference.
// Type parameters erase to java.lang.Object, mirroring reflective erasure.
func (l *Linker) resolveTypeRef(ref *TypeRef, sc scope) string {
	name := ref.Name()
	dims := strings.Repeat("[]", len(ref.Dims))
	if name == "void" || models.IsPrimitive(name) {
		return name + dims
	}
	if sc.typeParams[name] {
		return models.ObjectClass + dims
	}
	return l.qualify(name, sc) + dims
}

// qualify maps a type name used inside a compilation unit to a qualified
// name: explicit imports first, then the unit's own package, then on-demand
// imports, then the implicit java.lang import.
func (l *Linker) qualify(name string, sc scope) string {
	if strings.Contains(name, ".") {
		return name
	}
	raw := sc.raw

	for _, imp := range raw.file.Imports {
		if !imp.Static && !imp.IsWildcard() && imp.SimpleName() == name {
			return imp.Path()
		}
	}

	var samePackage string
	if raw.pkg != "" {
		samePackage = raw.pkg + "." + name
	} else {
		samePackage = name
	}
	if l.typeKnown(samePackage) {
		return samePackage
	}

	for _, imp := range raw.file.Imports {
		if imp.Static || !imp.IsWildcard() {
			continue
		}
		candidate := imp.Path() + "." + name
		if l.typeKnown(candidate) {
			return candidate
		}
	}

	if javaLangTypes[name] {
		return "java.lang." + name
	}

	l.diagnostics.Verbose("cannot qualify type name '%s' used in %s", name, raw.path)
	return name
}

// typeKnown reports whether the qualified name resolves in the source roots,
// swallowing resolution errors (a broken sibling file must not fail an
// unrelated lookup).
func (l *Linker) typeKnown(qualifiedName string) bool {
	raw, err := l.resolveType(qualifiedName)
	return err == nil && raw != nil
}

// resolveType locates and parses the type with the given qualified name.
// Returns (nil, nil) when no source root provides it.
func (l *Linker) resolveType(qualifiedName string) (*rawType, error) {
	if cached, ok := l.types[qualifiedName]; ok {
		return cached, nil
	}

	pkg, simple := splitQualified(qualifiedName)
	pkgDir := strings.ReplaceAll(pkg, ".", string(os.PathSeparator))

	for _, root := range l.roots {
		// canonical location first: <root>/<pkg dirs>/<Simple>.java
		canonical := filepath.Join(root, pkgDir, simple+".java")
		if utils.FileExists(canonical) {
			raw, err := l.findInFile(canonical, pkg, simple)
			if err != nil {
				return nil, err
			}
			if raw != nil {
				l.types[qualifiedName] = raw
				return raw, nil
			}
		}
		// secondary top-level types live in sibling files of the package dir
		dir := filepath.Join(root, pkgDir)
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".java") {
				continue
			}
			path := filepath.Join(dir, entry.Name())
			raw, err := l.findInFile(path, pkg, simple)
			if err != nil {
				// a malformed sibling must not block resolution
				l.diagnostics.Verbose("skipping unparsable file %s: %v", path, err)
				continue
			}
			if raw != nil {
				l.types[qualifiedName] = raw
				return raw, nil
			}
		}
	}

	l.types[qualifiedName] = nil
	return nil, nil
}

// findInFile parses path (cached) and returns the named top-level type if
// the file declares it in the expected package.
func (l *Linker) findInFile(path, pkg, simple string) (*rawType, error) {
	file, ok := l.files[path]
	if !ok {
		parsed, err := l.parser.ParseFile(path)
		if err != nil {
			return nil, err
		}
		l.diagnostics.Debug("parsed %s", path)
		l.files[path] = parsed
		file = parsed
	}
	if file.PackageName() != pkg {
		return nil, nil
	}
	for _, top := range file.Types {
		raw := &rawType{pkg: pkg, path: path, file: file}
		switch {
		case top.Enum != nil && top.Enum.Name == simple:
			raw.name = qualifiedName(pkg, simple)
			raw.enum = top.Enum
			return raw, nil
		case top.Type != nil && top.Type.Name == simple:
			raw.name = qualifiedName(pkg, simple)
			raw.decl = top.Type
			return raw, nil
		}
	}
	return nil, nil
}

func (l *Linker) scopeOf(raw *rawType, typeParams map[string]bool) scope {
	if typeParams == nil {
		typeParams = paramSet(raw.decl.TypeParams)
	}
	return scope{raw: raw, typeParams: typeParams}
}

func parseModifierWords(words []string) models.Modifier {
	var mods models.Modifier
	for _, word := range words {
		if m, ok := models.ParseModifier(word); ok {
			mods |= m
		}
	}
	return mods
}

func paramSet(group *AngleGroup) map[string]bool {
	set := make(map[string]bool)
	if group != nil {
		for _, name := range group.ParamNames() {
			set[name] = true
		}
	}
	return set
}

func mergeParams(base map[string]bool, group *AngleGroup) map[string]bool {
	if group == nil {
		return base
	}
	merged := make(map[string]bool, len(base))
	for name := range base {
		merged[name] = true
	}
	for _, name := range group.ParamNames() {
		merged[name] = true
	}
	return merged
}

func splitQualified(name string) (pkg, simple string) {
	idx := strings.LastIndex(name, ".")
	if idx < 0 {
		return "", name
	}
	return name[:idx], name[idx+1:]
}

func qualifiedName(pkg, simple string) string {
	if pkg == "" {
		return simple
	}
	return pkg + "." + simple
}

// javaLangTypes lists the java.lang types resolvable without an import.
// Only names that plausibly appear in signatures are needed.
var javaLangTypes = map[string]bool{
	"Object": true, "String": true, "CharSequence": true, "StringBuilder": true,
	"Number": true, "Integer": true, "Long": true, "Short": true, "Byte": true,
	"Double": true, "Float": true, "Boolean": true, "Character": true, "Void": true,
	"Class": true, "Enum": true, "Iterable": true, "Comparable": true,
	"Runnable": true, "Thread": true, "Cloneable": true, "AutoCloseable": true,
	"Throwable": true, "Exception": true, "RuntimeException": true, "Error": true,
	"IllegalArgumentException": true, "IllegalStateException": true,
	"UnsupportedOperationException": true, "NullPointerException": true,
	"IndexOutOfBoundsException": true, "ArithmeticException": true,
	"ClassCastException": true, "InterruptedException": true,
	"ClassNotFoundException": true, "CloneNotSupportedException": true,
	"ReflectiveOperationException": true, "SecurityException": true,
	"System": true, "Math": true, "Record": true,
}
