package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignatureIdentity(t *testing.T) {
	t.Run("ignores modifiers, throws and parameter names", func(t *testing.T) {
		a := &Method{
			Name:    "run",
			Returns: "void",
			Params:  []Param{{Type: "int", Name: "count"}},
			Mods:    ModPublic | ModAbstract,
			Throws:  []string{"java.io.IOException"},
		}
		b := &Method{
			Name:    "run",
			Returns: "void",
			Params:  []Param{{Type: "int", Name: "n"}},
			Mods:    ModProtected,
		}
		assert.Equal(t, a.Signature(), b.Signature())
	})

	t.Run("distinguishes return type", func(t *testing.T) {
		a := &Method{Name: "size", Returns: "int"}
		b := &Method{Name: "size", Returns: "long"}
		assert.NotEqual(t, a.Signature(), b.Signature())
	})

	t.Run("distinguishes parameter order", func(t *testing.T) {
		a := &Method{Name: "put", Returns: "void", Params: []Param{{Type: "int"}, {Type: "long"}}}
		b := &Method{Name: "put", Returns: "void", Params: []Param{{Type: "long"}, {Type: "int"}}}
		assert.NotEqual(t, a.Signature(), b.Signature())
	})

	t.Run("usable as map key", func(t *testing.T) {
		seen := map[Signature]bool{}
		m := &Method{Name: "close", Returns: "void"}
		seen[m.Signature()] = true
		assert.True(t, seen[(&Method{Name: "close", Returns: "void"}).Signature()])
	})
}

func TestSignatureLess(t *testing.T) {
	ordered := []Signature{
		{Name: "a", Params: "", Returns: "void"},
		{Name: "a", Params: "int", Returns: "int"},
		{Name: "a", Params: "int", Returns: "long"},
		{Name: "b", Params: "", Returns: "void"},
	}
	for i := 0; i < len(ordered)-1; i++ {
		assert.True(t, ordered[i].Less(ordered[i+1]), "%v < %v", ordered[i], ordered[i+1])
		assert.False(t, ordered[i+1].Less(ordered[i]))
	}
	assert.False(t, ordered[0].Less(ordered[0]))
}

func TestSignatureString(t *testing.T) {
	s := Signature{Name: "apply", Params: "int,java.lang.String", Returns: "boolean"}
	assert.Equal(t, "apply(int,java.lang.String) boolean", s.String())
}

func TestTypeKind(t *testing.T) {
	assert.Equal(t, "class", KindClass.String())
	assert.Equal(t, "interface", KindInterface.String())
	assert.Equal(t, "extends", KindClass.Relation())
	assert.Equal(t, "implements", KindInterface.Relation())
}

func TestTypeDescriptor(t *testing.T) {
	subject := &TypeDescriptor{
		QualifiedName: "com.example.util.Walker",
		SimpleName:    "Walker",
		PackageName:   "com.example.util",
		Kind:          KindClass,
		AncestorChain: []*TypeLevel{
			{
				QualifiedName: "com.example.util.Walker",
				Constructors:  []*Constructor{{DeclaredBy: "com.example.util.Walker"}},
			},
			{
				QualifiedName: "com.example.util.Base",
				Constructors:  []*Constructor{{DeclaredBy: "com.example.util.Base"}},
			},
		},
	}

	assert.Equal(t, "WalkerImpl", subject.ImplName())
	assert.Equal(t, "com/example/util", subject.PackageDir("/"))

	ctors := subject.DeclaredConstructors()
	require.Len(t, ctors, 1)
	assert.Equal(t, "com.example.util.Walker", ctors[0].DeclaredBy)

	iface := &TypeDescriptor{SimpleName: "Runnable", Kind: KindInterface}
	assert.Nil(t, iface.DeclaredConstructors())
}

func TestIsPrimitive(t *testing.T) {
	for _, name := range []string{"boolean", "byte", "short", "int", "long", "char", "float", "double"} {
		assert.True(t, IsPrimitive(name), name)
	}
	assert.False(t, IsPrimitive("void"))
	assert.False(t, IsPrimitive("java.lang.Integer"))
	assert.False(t, IsPrimitive("int[]"))
}

func TestIsArray(t *testing.T) {
	assert.True(t, IsArray("int[]"))
	assert.True(t, IsArray("[I"))
	assert.True(t, IsArray("[Ljava.lang.String;"))
	assert.False(t, IsArray("int"))
	assert.False(t, IsArray("java.util.List"))
}
