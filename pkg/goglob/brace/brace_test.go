package brace_test

import (
	"testing"

	"github.com/koblas/goglob/pkg/goglob/brace"
	"github.com/stretchr/testify/assert"
)

func TestBalancedMatchNested(t *testing.T) {
	// Exercised indirectly: Parse relies on balancedMatch finding the
	// outermost pair even when multiple '{' appear before the first '}'.
	out := brace.Expand("pre{in{nest}}post")
	assert.ElementsMatch(t, out, []string{"pre{in{nest}}post"})
}

func TestExpandSimpleAlternation(t *testing.T) {
	out := brace.Expand("file-{a,b,c}.jpg")
	assert.ElementsMatch(t, out, []string{"file-a.jpg", "file-b.jpg", "file-c.jpg"})
}

func TestExpandNestedAlternation(t *testing.T) {
	out := brace.Expand("a{b,c{d,e}f}g")
	assert.ElementsMatch(t, out, []string{"abg", "acdfg", "acefg"})
}

func TestExpandMultipleGroups(t *testing.T) {
	out := brace.Expand("a{b,c}d{e,f}g")
	assert.ElementsMatch(t, out, []string{"abdeg", "abdfg", "acdeg", "acdfg"})
}

func TestExpandNoCommaIsLiteral(t *testing.T) {
	out := brace.Expand("a{b}c")
	assert.Equal(t, []string{"a{b}c"}, out)
}

func TestExpandEmptyAlternative(t *testing.T) {
	out := brace.Expand("a{b,}c")
	assert.ElementsMatch(t, out, []string{"abc", "ac"})
}

func TestExpandPathPattern(t *testing.T) {
	out := brace.Expand("{a,b}/x.k")
	assert.ElementsMatch(t, out, []string{"a/x.k", "b/x.k"})
}

func TestExpandCommaInsideCharClass(t *testing.T) {
	// A comma inside [...] must not be treated as a separator.
	out := brace.Expand("{a[x,y],b}")
	assert.ElementsMatch(t, out, []string{"a[x,y]", "b"})
}

func TestExpandEscapedComma(t *testing.T) {
	out := brace.Expand(`{a\,b,c}`)
	assert.ElementsMatch(t, out, []string{`a\,b`, "c"})
}

func TestExpandNoBraces(t *testing.T) {
	out := brace.Expand("plain.txt")
	assert.Equal(t, []string{"plain.txt"}, out)
}

func TestExpanderLazyAndClosable(t *testing.T) {
	e := brace.NewExpander("{a,b,c,d,e}")
	defer e.Close()

	first, ok := e.Next()
	assert.True(t, ok)
	assert.Equal(t, "a", first)

	e.Close()
	_, ok = e.Next()
	// Either the in-flight value drains or the channel is already closed;
	// either way a second Close must not panic and a further Next must not
	// hang forever.
	_ = ok
}

func TestExpandLargeBraceSetDoesNotBlowStack(t *testing.T) {
	var b []byte
	b = append(b, '{')
	for i := 0; i < 10000; i++ {
		if i > 0 {
			b = append(b, ',')
		}
		b = append(b, 'a')
	}
	b = append(b, '}')

	count := 0
	brace.Each(brace.Parse(string(b)), func(string) bool {
		count++
		return true
	})
	assert.Equal(t, 10000, count)
}
