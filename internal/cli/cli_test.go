package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleSource = `package sample

//casegen:parametrize expected, input,
//	case::empty(0, ""),
//	case(4, "spam")
func Strlen(t *testing.T, expected int, input string) {}

//casegen:matrix a => [1, 2] :: trase
func Pow(t *testing.T, a int) {}
`

func writeSample(t *testing.T, source string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sample_test.go")
	require.NoError(t, os.WriteFile(path, []byte(source), 0o644))
	return path
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestInspect(t *testing.T) {
	path := writeSample(t, sampleSource)

	out, err := runCommand(t, "inspect", path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "parametrize (Strlen) items=4")
	assert.Contains(t, lines[1], "matrix (Pow) items=1 modifiers=trase")
	assert.Contains(t, lines[2], `warning: unknown modifier "trase" (did you mean "trace"?)`)
}

func TestInspectExtraModifiersFromConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sample_test.go")
	require.NoError(t, os.WriteFile(path, []byte("//casegen:rstest f(1) :: slow\nfunc T(t *testing.T) {}\n"), 0o644))
	cfgPath := filepath.Join(dir, "casegen.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("extra_modifiers: [slow]\n"), 0o644))

	out, err := runCommand(t, "inspect", "--config", cfgPath, path)
	require.NoError(t, err)
	assert.NotContains(t, out, "warning")
}

func TestInspectParseErrorCarriesLocation(t *testing.T) {
	path := writeSample(t, "//casegen:parametrize a, => boom\nfunc T(t *testing.T) {}\n")

	_, err := runCommand(t, "inspect", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), path+":1:")
	assert.Contains(t, err.Error(), "cannot parse parametrize info")
}

func TestInspectUnknownKind(t *testing.T) {
	path := writeSample(t, "//casegen:bench f(1)\nfunc T(t *testing.T) {}\n")

	_, err := runCommand(t, "inspect", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown annotation kind "bench"`)
}

func TestExpand(t *testing.T) {
	path := writeSample(t, sampleSource)

	out, err := runCommand(t, "expand", path)
	require.NoError(t, err)

	assert.Contains(t, out, `Strlen_case_empty [expected=0 input=""]`)
	assert.Contains(t, out, `Strlen_case_2 [expected=4 input="spam"]`)
	assert.Contains(t, out, "Pow_a_1 [a=1]")
	assert.Contains(t, out, "Pow_a_2 [a=2]")
}

func TestFingerprint(t *testing.T) {
	path := writeSample(t, sampleSource)

	out, err := runCommand(t, "fingerprint", path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 2)
	hexLine := regexp.MustCompile(`^[0-9a-f]{64}  `)
	assert.Regexp(t, hexLine, lines[0])
	assert.Contains(t, lines[0], "Strlen")
	assert.Contains(t, lines[1], "Pow")
}

func TestVersionFloorEnforced(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sample_test.go")
	require.NoError(t, os.WriteFile(path, []byte(sampleSource), 0o644))
	cfgPath := filepath.Join(dir, "casegen.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("min_version: v99.0.0\n"), 0o644))

	_, err := runCommand(t, "inspect", "--config", cfgPath, path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "below the project minimum")
}
