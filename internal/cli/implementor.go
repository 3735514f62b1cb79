// Package cli wires the pipeline together: introspection, obligation
// resolution, constructor selection, rendering, and the jar flow.
package cli

import (
	"path/filepath"

	"github.com/bware/jimpl/internal/errors"
	"github.com/bware/jimpl/internal/generator"
	"github.com/bware/jimpl/internal/models"
	"github.com/bware/jimpl/internal/packager"
	"github.com/bware/jimpl/internal/parser"
	"github.com/bware/jimpl/internal/resolver"
	"github.com/bware/jimpl/internal/utils"
)

// Implementor is the generation facade: it turns a fully-qualified type
// name into a written implementation source, or into a packaged jar.
type Implementor struct {
	config      Config
	linker      *parser.Linker
	sink        *utils.FileSink
	compiler    packager.Compiler
	diagnostics *utils.DiagnosticSystem
}

// NewImplementor creates an implementor for the given configuration.
func NewImplementor(config Config, diagnostics *utils.DiagnosticSystem) *Implementor {
	return &Implementor{
		config:      config,
		linker:      parser.NewLinker(config.SourcePath, diagnostics),
		sink:        utils.NewFileSink(),
		compiler:    packager.NewJavacCompiler(config.Javac),
		diagnostics: diagnostics,
	}
}

// SetCompiler substitutes the external compiler. Used by tests.
func (im *Implementor) SetCompiler(compiler packager.Compiler) {
	im.compiler = compiler
}

// Implement generates <Simple>Impl.java for the subject under outputRoot,
// mirroring the subject's package as directories. It returns the path of
// the written file.
func (im *Implementor) Implement(typeName, outputRoot string) (string, error) {
	_, path, err := im.implement(typeName, outputRoot)
	return path, err
}

// implement is Implement plus the resolved descriptor, which the jar flow
// needs to derive the class entry name.
func (im *Implementor) implement(typeName, outputRoot string) (*models.TypeDescriptor, string, error) {
	if typeName == "" || outputRoot == "" {
		return nil, "", errors.New(errors.ConfigurationErrorCode, "type name and output path must not be empty")
	}
	if err := rejectBeforeIntrospection(typeName); err != nil {
		return nil, "", err
	}

	im.diagnostics.Info("Implementing %s", typeName)
	subject, err := im.linker.Lookup(typeName)
	if err != nil {
		return nil, "", err
	}
	if err := rejectSubject(subject); err != nil {
		return nil, "", err
	}

	obligations := resolver.Resolve(subject)
	im.diagnostics.Verbose("resolved %d method obligation(s) for %s", len(obligations), subject.QualifiedName)

	constructorChoice, err := resolver.SelectConstructor(subject)
	if err != nil {
		return nil, "", err
	}

	source := generator.Render(subject, obligations, constructorChoice)

	path, err := im.sink.TargetPath(outputRoot, subject.PackageName, subject.ImplName()+".java")
	if err != nil {
		return nil, "", err
	}
	if err := im.sink.Write(path, source); err != nil {
		return nil, "", errors.WrapRenderError(path, err)
	}
	im.diagnostics.PhaseItem("generated %s", path)
	return subject, path, nil
}

// ImplementJar generates the implementation, compiles it with the external
// compiler, and packages the class file into jarPath. The temporary
// workspace next to the jar is removed on every exit path.
func (im *Implementor) ImplementJar(typeName, jarPath string) error {
	if typeName == "" || jarPath == "" {
		return errors.New(errors.ConfigurationErrorCode, "type name and jar path must not be empty")
	}
	if err := utils.EnsureParentDir(jarPath); err != nil {
		return err
	}

	workspace, err := packager.NewWorkspace(filepath.Dir(jarPath))
	if err != nil {
		return err
	}
	defer workspace.Cleanup(im.diagnostics)

	subject, sourcePath, err := im.implement(typeName, workspace.Dir)
	if err != nil {
		return err
	}

	classpath := append(append([]string{}, im.config.SourcePath...), workspace.Dir)
	if err := im.compiler.Compile(sourcePath, classpath); err != nil {
		return err
	}
	im.diagnostics.PhaseItem("compiled %s", sourcePath)

	classEntry := subject.ImplName() + ".class"
	if dir := subject.PackageDir("/"); dir != "" {
		classEntry = dir + "/" + classEntry
	}
	if err := packager.WriteJar(jarPath, workspace.Dir, classEntry); err != nil {
		return err
	}
	im.diagnostics.PhaseItem("packaged %s", jarPath)
	return nil
}

// rejectBeforeIntrospection filters subjects that can never be implemented,
// before any member introspection is attempted.
func rejectBeforeIntrospection(typeName string) error {
	switch {
	case models.IsPrimitive(typeName) || typeName == "void":
		return errors.NewInvalidSubject(typeName, "primitive types cannot be implemented")
	case models.IsArray(typeName):
		return errors.NewInvalidSubject(typeName, "array types cannot be implemented")
	case typeName == models.ObjectClass || typeName == models.EnumClass:
		return errors.NewInvalidSubject(typeName, "hierarchy root types are not supported")
	}
	return nil
}

// rejectSubject applies the modifier checks that need the resolved
// descriptor.
func rejectSubject(subject *models.TypeDescriptor) error {
	if subject.Mods.Has(models.ModFinal) {
		return errors.NewInvalidSubject(subject.QualifiedName, "final types cannot be extended")
	}
	if subject.Mods.Has(models.ModPrivate) {
		return errors.NewInvalidSubject(subject.QualifiedName, "private types are not accessible")
	}
	return nil
}
