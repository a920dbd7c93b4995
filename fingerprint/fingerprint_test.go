package fingerprint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/casegen/casegen/parser"
)

func parametrizeHex(t *testing.T, source string) string {
	t.Helper()
	info, err := parser.ParseParametrize([]byte(source))
	require.NoError(t, err)
	hx, err := Parametrize(info).Hex()
	require.NoError(t, err)
	return hx
}

func TestFingerprintDeterministic(t *testing.T) {
	source := `expected, input, case::ok("foo", 42) :: trace`

	first := parametrizeHex(t, source)
	second := parametrizeHex(t, source)

	assert.Equal(t, first, second)
	assert.Len(t, first, 64)
}

func TestFingerprintIgnoresLayout(t *testing.T) {
	compact := parametrizeHex(t, `a, case(42), case(24)`)
	reflowed := parametrizeHex(t, "a,\n\tcase(42),\n\tcase(24),\n")

	assert.Equal(t, compact, reflowed)
}

func TestFingerprintSeesContent(t *testing.T) {
	base := parametrizeHex(t, "a, case(42)")

	assert.NotEqual(t, base, parametrizeHex(t, "a, case(24)"))
	assert.NotEqual(t, base, parametrizeHex(t, "b, case(42)"))
	assert.NotEqual(t, base, parametrizeHex(t, "a, case(42) :: trace"))
	assert.NotEqual(t, base, parametrizeHex(t, "a, case::described(42)"))
}

func TestFingerprintSeesDirectiveKind(t *testing.T) {
	pinfo, err := parser.ParseParametrize([]byte("f(42)"))
	require.NoError(t, err)
	minfo, err := parser.ParseMatrix([]byte("f(42)"))
	require.NoError(t, err)

	phex, err := Parametrize(pinfo).Hex()
	require.NoError(t, err)
	mhex, err := Matrix(minfo).Hex()
	require.NoError(t, err)

	assert.NotEqual(t, phex, mhex)
}

func TestFingerprintCanonicalShape(t *testing.T) {
	info, err := parser.ParseMatrix([]byte(`input => [1, 2], ctx("dev") :: default<u32>`))
	require.NoError(t, err)

	cd := Matrix(info)
	require.Len(t, cd.Items, 2)
	assert.Equal(t, CanonicalItem{Type: "values", Name: "input", Exprs: []string{"1", "2"}}, cd.Items[0])
	assert.Equal(t, CanonicalItem{Type: "fixture", Name: "ctx", Exprs: []string{`"dev"`}}, cd.Items[1])
	require.Len(t, cd.Modifiers, 1)
	assert.Equal(t, "default", cd.Modifiers[0].Name)
	assert.Equal(t, "u32", cd.Modifiers[0].Type)
}
