package input

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readAll(t *testing.T, in Input) string {
	t.Helper()
	rc, err := in.Open()
	require.NoError(t, err)
	defer rc.Close()
	b, err := io.ReadAll(rc)
	require.NoError(t, err)
	return string(b)
}

func TestResolveDefaultsToStdin(t *testing.T) {
	inputs, err := Resolve(nil, strings.NewReader("from stdin\n"))
	require.NoError(t, err)
	require.Len(t, inputs, 1)

	assert.Equal(t, "<stdin>", inputs[0].Name)
	assert.Equal(t, "from stdin\n", readAll(t, inputs[0]))
}

func TestResolveGlobSortedAndRecursive(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "nested"), 0o755))
	for name, body := range map[string]string{
		"b.json":        "b\n",
		"a.json":        "a\n",
		"nested/c.json": "c\n",
		"skip.txt":      "x\n",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
	}

	inputs, err := Resolve([]string{filepath.Join(dir, "**", "*.json")}, nil)
	require.NoError(t, err)
	require.Len(t, inputs, 3)

	var bodies []string
	for _, in := range inputs {
		bodies = append(bodies, readAll(t, in))
	}
	assert.ElementsMatch(t, []string{"a\n", "b\n", "c\n"}, bodies)
	assert.True(t, sortedNames(inputs))
}

func TestResolveKeepsArgumentOrder(t *testing.T) {
	dir := t.TempDir()
	second := filepath.Join(dir, "z.log")
	first := filepath.Join(dir, "a.log")
	require.NoError(t, os.WriteFile(second, []byte("z\n"), 0o644))
	require.NoError(t, os.WriteFile(first, []byte("a\n"), 0o644))

	inputs, err := Resolve([]string{second, "-", first}, strings.NewReader("s\n"))
	require.NoError(t, err)
	require.Len(t, inputs, 3)

	assert.Equal(t, "z\n", readAll(t, inputs[0]))
	assert.Equal(t, "s\n", readAll(t, inputs[1]))
	assert.Equal(t, "a\n", readAll(t, inputs[2]))
}

func TestResolveNoMatch(t *testing.T) {
	_, err := Resolve([]string{filepath.Join(t.TempDir(), "*.missing")}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no files matched")
}

func sortedNames(inputs []Input) bool {
	for i := 1; i < len(inputs); i++ {
		if inputs[i-1].Name > inputs[i].Name {
			return false
		}
	}
	return true
}
