package packager

import (
	"os"
	"os/exec"
	"strings"

	"github.com/bware/jimpl/internal/errors"
)

// Compiler compiles one generated source file against a classpath. The
// production implementation shells out to javac; tests substitute a stub.
type Compiler interface {
	Compile(sourceFile string, classpath []string) error
}

// JavacCompiler invokes an external javac binary.
type JavacCompiler struct {
	// Path is the javac executable, "javac" by default.
	Path string
}

// NewJavacCompiler creates a compiler around the given javac executable.
func NewJavacCompiler(path string) *JavacCompiler {
	if path == "" {
		path = "javac"
	}
	return &JavacCompiler{Path: path}
}

// Compile runs javac on the source file. Exit code 0 is success; anything
// else fails with the compiler's combined output as the cause.
func (c *JavacCompiler) Compile(sourceFile string, classpath []string) error {
	args := []string{
		"-cp", strings.Join(classpath, string(os.PathListSeparator)),
		sourceFile,
	}
	cmd := exec.Command(c.Path, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return errors.WrapCompileError(sourceFile, err).
			WithSuggestion(strings.TrimSpace(string(output)))
	}
	return nil
}
