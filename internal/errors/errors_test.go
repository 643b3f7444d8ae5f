package errors

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapPreservesCause(t *testing.T) {
	err := Wrapf(fs.ErrNotExist, "reading %s", "config.json")

	require.Error(t, err)
	assert.True(t, Is(err, fs.ErrNotExist))
	assert.Contains(t, err.Error(), "reading config.json")
}

func TestWithHint(t *testing.T) {
	err := WithHint(New("unsupported format"), "pass -format=json")

	assert.Equal(t, "unsupported format", err.Error())
	assert.Equal(t, []string{"pass -format=json"}, GetAllHints(err))
}
