package format

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"confstruct/internal/value"
)

func sampleTree() *value.Value {
	return value.Obj(value.Pairs(
		"zeta", value.Int(1),
		"alpha", value.Float(2.5),
		"nested", value.Obj(value.Pairs("flag", value.Bool(true), "none", value.Null())),
		"list", value.Arr(value.Str("a"), value.Str("b")),
	))
}

func TestEncode_RoundTrip(t *testing.T) {
	for _, tag := range []string{"json", "yaml"} {
		t.Run(tag, func(t *testing.T) {
			out, err := Encode(sampleTree(), tag)
			require.NoError(t, err)

			back, err := Parse(out, tag)
			require.NoError(t, err)

			assert.Equal(t, sampleTree(), back)
		})
	}
}

func TestEncode_JSONKeepsOrder(t *testing.T) {
	out, err := Encode(sampleTree(), "json")
	require.NoError(t, err)

	s := string(out)
	assert.Less(t, strings.Index(s, `"zeta"`), strings.Index(s, `"alpha"`))
}

func TestEncode_TOMLDropsNulls(t *testing.T) {
	out, err := Encode(sampleTree(), "toml")
	require.NoError(t, err)

	back, err := Parse(out, "toml")
	require.NoError(t, err)

	nested, _ := back.Object.Get("nested")
	assert.False(t, nested.Object.Has("none"))
	assert.True(t, nested.Object.Has("flag"))
}

func TestEncode_TOMLNeedsObject(t *testing.T) {
	_, err := Encode(value.Arr(value.Int(1)), "toml")
	assert.Error(t, err)
}
