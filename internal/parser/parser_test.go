package parser

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/courseguard/crosscheck/domain"
)

func TestParsePython(t *testing.T) {
	source := `def total(items):
    result = 0
    for item in items:
        result = result + item
    return result
`
	result, err := New().Parse(context.Background(), domain.LanguagePython, []byte(source))
	require.NoError(t, err)
	require.NotNil(t, result.Root)

	assert.Equal(t, KindModule, result.Root.Kind)
	assert.Equal(t, 1, result.Root.CountKind(KindFunction))
	assert.Equal(t, 1, result.Root.CountKind(KindFor))
	assert.Equal(t, 1, result.Root.CountKind(KindReturn))

	// Definition names come from the grammar's name field.
	var functionName string
	result.Root.Walk(func(n *Node) {
		if n.Kind == KindFunction {
			functionName = n.Name
		}
	})
	assert.Equal(t, "total", functionName)
}

func TestParseSignature(t *testing.T) {
	result, err := New().Parse(context.Background(), domain.LanguagePython, []byte("x = 1\n"))
	require.NoError(t, err)

	assert.Equal(t, "(Module,(Expr,(Assign,(Name),(Number))))", result.Root.Signature())
}

func TestParseSyntaxError(t *testing.T) {
	_, err := New().Parse(context.Background(), domain.LanguagePython, []byte("def broken(:\n"))
	assert.Error(t, err)
}

func TestParseUnsupportedLanguage(t *testing.T) {
	_, err := New().Parse(context.Background(), domain.Language("ruby"), []byte("puts 1"))
	assert.Error(t, err)
}

func TestSupported(t *testing.T) {
	for _, lang := range []domain.Language{
		domain.LanguagePython,
		domain.LanguageJavaScript,
		domain.LanguageJava,
		domain.LanguageGo,
	} {
		assert.True(t, Supported(lang), string(lang))
	}
	assert.False(t, Supported(domain.Language("ruby")))
	assert.False(t, Supported(""))
}

func TestParseJavaScript(t *testing.T) {
	source := `function add(a, b) {
  if (a > b) {
    return a + b;
  }
  return b;
}
`
	result, err := New().Parse(context.Background(), domain.LanguageJavaScript, []byte(source))
	require.NoError(t, err)

	assert.Equal(t, KindModule, result.Root.Kind)
	assert.Equal(t, 1, result.Root.CountKind(KindFunction))
	assert.Equal(t, 1, result.Root.CountKind(KindIf))
}

func TestParseJava(t *testing.T) {
	source := `class Adder {
    int add(int a, int b) {
        return a + b;
    }
}
`
	result, err := New().Parse(context.Background(), domain.LanguageJava, []byte(source))
	require.NoError(t, err)

	assert.Equal(t, KindModule, result.Root.Kind)
	assert.Equal(t, 1, result.Root.CountKind(KindClass))
	assert.Equal(t, 1, result.Root.CountKind(KindFunction))
}

func TestParseGo(t *testing.T) {
	source := `package main

func add(a, b int) int {
	return a + b
}
`
	result, err := New().Parse(context.Background(), domain.LanguageGo, []byte(source))
	require.NoError(t, err)

	assert.Equal(t, KindModule, result.Root.Kind)
	assert.Equal(t, 1, result.Root.CountKind(KindFunction))
}

func TestLexClassifiesTokens(t *testing.T) {
	source := "x = 1  # note\ns = 'hi'\n"
	tokens, err := New().Lex(context.Background(), domain.LanguagePython, []byte(source))
	require.NoError(t, err)

	kinds := map[TokenKind][]string{}
	for _, tok := range tokens {
		kinds[tok.Kind] = append(kinds[tok.Kind], tok.Text)
	}

	assert.Contains(t, kinds[TokenIdentifier], "x")
	assert.Contains(t, kinds[TokenIdentifier], "s")
	assert.Contains(t, kinds[TokenNumber], "1")
	assert.Contains(t, kinds[TokenComment], "# note")
	assert.Contains(t, kinds[TokenString], "'hi'")
	assert.Contains(t, kinds[TokenOther], "=")
}

func TestLexToleratesSyntaxErrors(t *testing.T) {
	tokens, err := New().Lex(context.Background(), domain.LanguagePython, []byte("def broken(:\n    x = 1\n"))
	require.NoError(t, err)
	assert.NotEmpty(t, tokens)
}

func TestLexTokenPositions(t *testing.T) {
	tokens, err := New().Lex(context.Background(), domain.LanguagePython, []byte("x = 1\ny = 2\n"))
	require.NoError(t, err)

	for _, tok := range tokens {
		if tok.Text == "y" {
			assert.Equal(t, 2, tok.Line)
			assert.Equal(t, 6, tok.StartByte)
			return
		}
	}
	t.Fatal("token y not found")
}

func TestNodeWalkOrder(t *testing.T) {
	root := &Node{Kind: KindModule}
	child := &Node{Kind: KindIf}
	grandchild := &Node{Kind: KindReturn}
	child.AddChild(grandchild)
	root.AddChild(child)
	root.AddChild(nil) // ignored

	assert.Equal(t, []NodeKind{KindModule, KindIf, KindReturn}, root.KindSequence())
	assert.Len(t, root.Children, 1)
}

func TestIsControlFlow(t *testing.T) {
	assert.True(t, IsControlFlow(KindIf))
	assert.True(t, IsControlFlow(KindWhile))
	assert.False(t, IsControlFlow(KindAssign))
	assert.False(t, IsControlFlow(KindName))
}

func TestTrailingIdentifier(t *testing.T) {
	assert.Equal(t, "helper", trailingIdentifier("obj.helper"))
	assert.Equal(t, "plain", trailingIdentifier("plain"))
	assert.Equal(t, "f", trailingIdentifier("pkg.mod.f"))
	assert.Equal(t, "f", trailingIdentifier("f(x)"))
}
