package parser

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bware/jimpl/internal/errors"
	"github.com/bware/jimpl/internal/models"
	"github.com/bware/jimpl/internal/utils"
)

// writeTree materializes a map of relative paths to Java sources under a
// fresh temp root and returns a linker over it.
func writeTree(t *testing.T, files map[string]string) *Linker {
	t.Helper()
	tempDir, err := os.MkdirTemp("", "jimpl_linker_test")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	for rel, content := range files {
		path := filepath.Join(tempDir, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	return NewLinker([]string{tempDir}, utils.NewQuietDiagnostics())
}

func methodNames(methods []*models.Method) []string {
	names := make([]string, len(methods))
	for i, m := range methods {
		names[i] = m.Name
	}
	return names
}

func TestLookupInterface(t *testing.T) {
	linker := writeTree(t, map[string]string{
		"com/example/Sink.java": `
package com.example;

public interface Sink {
    void accept(int value);
    default int peek() { return -1; }
    static Sink empty() { return null; }
}
`,
	})

	subject, err := linker.Lookup("com.example.Sink")
	require.NoError(t, err)

	assert.Equal(t, "com.example.Sink", subject.QualifiedName)
	assert.Equal(t, "Sink", subject.SimpleName)
	assert.Equal(t, "com.example", subject.PackageName)
	assert.Equal(t, models.KindInterface, subject.Kind)
	assert.Nil(t, subject.DeclaredConstructors())

	require.Len(t, subject.AncestorChain, 1)
	level := subject.AncestorChain[0]
	require.Len(t, level.Methods, 3)

	accept := level.Methods[0]
	assert.True(t, accept.Mods.Has(models.ModPublic|models.ModAbstract), "interface methods are implicitly public abstract")
	peek := level.Methods[1]
	assert.False(t, peek.Mods.Has(models.ModAbstract), "default methods are concrete")
	empty := level.Methods[2]
	assert.False(t, empty.Mods.Has(models.ModAbstract), "static methods are concrete")
}

func TestLookupClassChain(t *testing.T) {
	linker := writeTree(t, map[string]string{
		"com/example/Top.java": `
package com.example;

public abstract class Top {
    public Top(long seed) { }
    public abstract void init();
    protected abstract int depth();
}
`,
		"com/example/Middle.java": `
package com.example;

public abstract class Middle extends Top {
    protected Middle() { super(0); }
    public abstract String label();
}
`,
		"com/example/Leaf.java": `
package com.example;

public abstract class Leaf extends Middle {
}
`,
	})

	subject, err := linker.Lookup("com.example.Leaf")
	require.NoError(t, err)
	require.Len(t, subject.AncestorChain, 3)
	assert.Equal(t, "com.example.Leaf", subject.AncestorChain[0].QualifiedName)
	assert.Equal(t, "com.example.Middle", subject.AncestorChain[1].QualifiedName)
	assert.Equal(t, "com.example.Top", subject.AncestorChain[2].QualifiedName)

	// Leaf declares no constructor; the implicit default one is synthesized.
	ctors := subject.DeclaredConstructors()
	require.Len(t, ctors, 1)
	assert.Empty(t, ctors[0].Params)
	assert.True(t, ctors[0].Mods.Has(models.ModPublic))

	// The flattened view holds the public methods of every level; the
	// protected one is only reachable through its chain level.
	assert.ElementsMatch(t, []string{"init", "label"}, methodNames(subject.VisibleMethods))
	assert.Contains(t, methodNames(subject.AncestorChain[2].Methods), "depth")
}

func TestLookupInterfaceGraphFlattening(t *testing.T) {
	linker := writeTree(t, map[string]string{
		"com/example/Closer.java": `
package com.example;

public interface Closer {
    void close();
}
`,
		"com/example/Flusher.java": `
package com.example;

public interface Flusher extends Closer {
    void flush();
}
`,
		"com/example/Stream.java": `
package com.example;

public abstract class Stream implements Flusher {
    public Stream() { }
}
`,
	})

	subject, err := linker.Lookup("com.example.Stream")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"flush", "close"}, methodNames(subject.VisibleMethods))
	for _, m := range subject.VisibleMethods {
		assert.True(t, m.Mods.Has(models.ModAbstract))
	}
}

func TestLookupQualification(t *testing.T) {
	linker := writeTree(t, map[string]string{
		"com/example/Handler.java": `
package com.example;

import com.example.io.Channel;
import com.example.util.*;

public abstract class Handler {
    public Handler() { }
    public abstract Channel open(String name) throws Exception;
    public abstract Registry registry();
    public abstract Handler self();
}
`,
		"com/example/io/Channel.java": `
package com.example.io;

public interface Channel { }
`,
		"com/example/util/Registry.java": `
package com.example.util;

public interface Registry { }
`,
	})

	subject, err := linker.Lookup("com.example.Handler")
	require.NoError(t, err)
	level := subject.AncestorChain[0]
	require.Len(t, level.Methods, 3)

	open := level.Methods[0]
	assert.Equal(t, "com.example.io.Channel", open.Returns, "single import")
	assert.Equal(t, "java.lang.String", open.Params[0].Type, "implicit java.lang import")
	assert.Equal(t, []string{"java.lang.Exception"}, open.Throws)

	assert.Equal(t, "com.example.util.Registry", level.Methods[1].Returns, "wildcard import")
	assert.Equal(t, "com.example.Handler", level.Methods[2].Returns, "same package")
}

func TestLookupTypeParameterErasure(t *testing.T) {
	linker := writeTree(t, map[string]string{
		"com/example/Box.java": `
package com.example;

public abstract class Box<T> {
    public Box() { }
    public abstract T unwrap();
    public abstract <R> R convert(T input, R seed);
    public abstract T[] toArray();
}
`,
	})

	subject, err := linker.Lookup("com.example.Box")
	require.NoError(t, err)
	level := subject.AncestorChain[0]

	assert.Equal(t, "java.lang.Object", level.Methods[0].Returns)
	convert := level.Methods[1]
	assert.Equal(t, "java.lang.Object", convert.Returns)
	assert.Equal(t, "java.lang.Object", convert.Params[0].Type)
	assert.Equal(t, "java.lang.Object", convert.Params[1].Type)
	assert.Equal(t, "java.lang.Object[]", level.Methods[2].Returns)
}

func TestLookupDefaultPackage(t *testing.T) {
	linker := writeTree(t, map[string]string{
		"Lonely.java": `
public abstract class Lonely {
    public abstract void sing();
}
`,
	})

	subject, err := linker.Lookup("Lonely")
	require.NoError(t, err)
	assert.Equal(t, "", subject.PackageName)
	assert.Equal(t, "Lonely", subject.QualifiedName)
}

func TestLookupSecondaryTopLevelType(t *testing.T) {
	linker := writeTree(t, map[string]string{
		"com/example/Pair.java": `
package com.example;

public class Pair { }

abstract class Helper {
    abstract void assist();
}
`,
	})

	subject, err := linker.Lookup("com.example.Helper")
	require.NoError(t, err)
	assert.Equal(t, "Helper", subject.SimpleName)
	assert.Contains(t, methodNames(subject.AncestorChain[0].Methods), "assist")
}

func TestLookupUnresolvedType(t *testing.T) {
	linker := writeTree(t, map[string]string{
		"com/example/Present.java": `
package com.example;

public class Present { }
`,
	})

	_, err := linker.Lookup("com.example.Absent")
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.TypeResolutionErrorCode))
}

func TestLookupRejectsEnumAndRecord(t *testing.T) {
	linker := writeTree(t, map[string]string{
		"com/example/Direction.java": `
package com.example;

public enum Direction { NORTH, SOUTH }
`,
		"com/example/Point.java": `
package com.example;

public record Point(int x, int y) { }
`,
	})

	_, err := linker.Lookup("com.example.Direction")
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.InvalidSubjectErrorCode))

	_, err = linker.Lookup("com.example.Point")
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.InvalidSubjectErrorCode))
}

func TestLookupSealedTreatedFinal(t *testing.T) {
	linker := writeTree(t, map[string]string{
		"com/example/Shape.java": `
package com.example;

public sealed class Shape permits Circle {
    public Shape() { }
}

final class Circle extends Shape { }
`,
	})

	subject, err := linker.Lookup("com.example.Shape")
	require.NoError(t, err)
	assert.True(t, subject.Mods.Has(models.ModFinal))
}

func TestLookupChainTruncatedAtUnresolvedAncestor(t *testing.T) {
	linker := writeTree(t, map[string]string{
		"com/example/Widget.java": `
package com.example;

import javax.swing.JComponent;

public abstract class Widget extends JComponent {
    public Widget() { }
    public abstract void redraw();
}
`,
	})

	subject, err := linker.Lookup("com.example.Widget")
	require.NoError(t, err)
	require.Len(t, subject.AncestorChain, 1, "external ancestor is not in the source path")
	assert.Contains(t, methodNames(subject.AncestorChain[0].Methods), "redraw")
}

func TestLookupCaching(t *testing.T) {
	linker := writeTree(t, map[string]string{
		"com/example/Cached.java": `
package com.example;

public abstract class Cached {
    public Cached() { }
    public abstract void touch();
}
`,
	})

	first, err := linker.Lookup("com.example.Cached")
	require.NoError(t, err)
	second, err := linker.Lookup("com.example.Cached")
	require.NoError(t, err)
	assert.Equal(t, first.QualifiedName, second.QualifiedName)
	assert.Len(t, linker.files, 1, "file parsed once")
}
