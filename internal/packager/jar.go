// Package packager turns a generated implementation source into a jar:
// compile with an external javac, then bundle the class file with a
// version-1.0 manifest.
package packager

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"

	"github.com/bware/jimpl/internal/errors"
)

const (
	manifestEntry   = "META-INF/MANIFEST.MF"
	manifestContent = "Manifest-Version: 1.0\r\n\r\n"
)

// WriteJar creates jarPath with a manifest and the single class entry.
// classEntry is the slash-separated in-jar name (e.g. "com/example/FooImpl.class");
// the file content is read from the matching path under workDir. A failure
// mid-write removes the truncated jar, so no artifact is left behind.
func WriteJar(jarPath, workDir, classEntry string) (err error) {
	jarFile, err := os.Create(jarPath)
	if err != nil {
		return errors.WrapPackagingError(jarPath, err)
	}
	defer func() {
		jarFile.Close()
		if err != nil {
			os.Remove(jarPath)
		}
	}()

	writer := zip.NewWriter(jarFile)

	manifest, err := writer.Create(manifestEntry)
	if err != nil {
		return errors.WrapPackagingError(jarPath, err)
	}
	if _, err = manifest.Write([]byte(manifestContent)); err != nil {
		return errors.WrapPackagingError(jarPath, err)
	}

	entry, err := writer.Create(classEntry)
	if err != nil {
		return errors.WrapPackagingError(jarPath, err)
	}
	classFile, err := os.Open(filepath.Join(workDir, filepath.FromSlash(classEntry)))
	if err != nil {
		return errors.WrapPackagingError(jarPath, err)
	}
	defer classFile.Close()
	if _, err = io.Copy(entry, classFile); err != nil {
		return errors.WrapPackagingError(jarPath, err)
	}

	if err = writer.Close(); err != nil {
		return errors.WrapPackagingError(jarPath, err)
	}
	return nil
}
