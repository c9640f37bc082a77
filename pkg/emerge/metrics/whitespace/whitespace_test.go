package whitespace

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestComplexityOfTabs(t *testing.T) {
	require.Equal(t, 2.0, ComplexityOf("\t\tfoo()"))
}

func TestComplexityOfSpaces(t *testing.T) {
	require.Equal(t, 2.0, ComplexityOf("        foo()")) // 8 spaces / 4
}

func TestComplexityOfMixedTabsThenSpacesBothCounted(t *testing.T) {
	// leading run is tabs only (2), trailing spaces after a tab aren't
	// "leading" once a non-tab rune is seen by the tab-counting loop,
	// but stripping tabs first still exposes them as the new leading run.
	require.Equal(t, 2.5, ComplexityOf("\t\t  foo()"))
}

func TestComplexityOfSourceSumsNonBlankLines(t *testing.T) {
	src := "\tfoo()\n\n\t\tbar()\n   \n"
	require.Equal(t, 3.0, ComplexityOfSource(src))
}

func TestComplexityOfFlatLineIsZero(t *testing.T) {
	require.Equal(t, 0.0, ComplexityOf("foo()"))
}
