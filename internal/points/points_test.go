package points

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/philipparndt/artoolbox/pkg/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseText(t *testing.T) {
	input := `# stroke
0 0 0
0.5, 0, 0   # comma separated
1	1	0

-1e-3;2;3
`
	pts, err := Parse(strings.NewReader(input), Text)
	require.NoError(t, err)
	assert.Equal(t, []geometry.Vector3{
		geometry.NewVector3(0, 0, 0),
		geometry.NewVector3(0.5, 0, 0),
		geometry.NewVector3(1, 1, 0),
		geometry.NewVector3(-0.001, 2, 3),
	}, pts)
}

func TestParseTextErrors(t *testing.T) {
	_, err := Parse(strings.NewReader("0 0 0\n1 2\n"), Text)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")

	_, err = Parse(strings.NewReader("0 0 zero\n"), Text)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 1")
}

func TestParseYAML(t *testing.T) {
	list, err := Parse(strings.NewReader("- [0, 0, 0]\n- [1, 2, 3]\n"), YAML)
	require.NoError(t, err)
	assert.Equal(t, []geometry.Vector3{geometry.NewVector3(0, 0, 0), geometry.NewVector3(1, 2, 3)}, list)

	keyed, err := Parse(strings.NewReader("name: stroke\npoints:\n  - [0, 0, 0]\n  - [4, 5, 6]\n"), YAML)
	require.NoError(t, err)
	assert.Equal(t, geometry.NewVector3(4, 5, 6), keyed[1])

	empty, err := Parse(strings.NewReader("\n"), YAML)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestParseYAMLErrors(t *testing.T) {
	for _, input := range []string{
		"- [0, 0]\n",
		"just a string\n",
		"- [a, b, c]\n",
		"points: [\n",
	} {
		_, err := Parse(strings.NewReader(input), YAML)
		assert.Error(t, err, "input %q", input)
	}
}

func TestLoadPicksFormat(t *testing.T) {
	dir := t.TempDir()
	txt := filepath.Join(dir, "a.txt")
	yml := filepath.Join(dir, "b.YML")
	require.NoError(t, os.WriteFile(txt, []byte("1 2 3\n"), 0o644))
	require.NoError(t, os.WriteFile(yml, []byte("points:\n  - [1, 2, 3]\n"), 0o644))

	assert.Equal(t, Text, FormatOf(txt))
	assert.Equal(t, YAML, FormatOf(yml))

	for _, path := range []string{txt, yml} {
		pts, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, []geometry.Vector3{geometry.NewVector3(1, 2, 3)}, pts)
	}

	_, err := Load(filepath.Join(dir, "missing.txt"))
	assert.Error(t, err)
}

func TestWrite(t *testing.T) {
	pts := []geometry.Vector3{geometry.NewVector3(0.1, -2, 3e-9)}
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, pts))
	assert.Equal(t, "0.1 -2 3e-09\n", buf.String())

	back, err := Parse(&buf, Text)
	require.NoError(t, err)
	assert.Equal(t, pts, back)
}
