package errors

import "fmt"

// Common error wrapping patterns used throughout the codebase.

// WrapFileSystemError wraps file system related errors
func WrapFileSystemError(operation, path string, cause error) *BaseError {
	message := fmt.Sprintf("failed to %s '%s'", operation, path)
	return Wrap(FileSystemErrorCode, message, cause)
}

// WrapParseError wraps an error with a "failed to parse" message
func WrapParseError(file string, cause error) *BaseError {
	return Wrap(SyntaxErrorCode, fmt.Sprintf("failed to parse %s", file), cause)
}

// WrapResolveError wraps an error raised while resolving a type identifier
func WrapResolveError(typeName string, cause error) *BaseError {
	return Wrap(TypeResolutionErrorCode, fmt.Sprintf("failed to resolve type '%s'", typeName), cause)
}

// WrapRenderError wraps an error raised while writing generated source
func WrapRenderError(target string, cause error) *BaseError {
	return Wrap(RenderErrorCode, fmt.Sprintf("failed to write generated source to '%s'", target), cause)
}

// WrapCompileError wraps a compiler invocation failure
func WrapCompileError(source string, cause error) *BaseError {
	return Wrap(CompilationErrorCode, fmt.Sprintf("failed to compile '%s'", source), cause)
}

// WrapPackagingError wraps a jar writing failure
func WrapPackagingError(jarPath string, cause error) *BaseError {
	return Wrap(PackagingErrorCode, fmt.Sprintf("failed to package '%s'", jarPath), cause)
}

// NewInvalidSubject builds the rejection error for subjects that cannot
// structurally be implemented.
func NewInvalidSubject(typeName, reason string) *BaseError {
	return Newf(InvalidSubjectErrorCode, "unsupported subject '%s': %s", typeName, reason)
}

// NewNoUsableConstructor builds the failure for class subjects with only
// private declared constructors.
func NewNoUsableConstructor(typeName string) *BaseError {
	return Newf(NoUsableConstructorErrorCode, "no non-private constructors found on '%s'", typeName).
		WithSuggestion("declare at least one non-private constructor on the subject class")
}
