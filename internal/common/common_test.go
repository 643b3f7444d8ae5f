package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFirst(t *testing.T) {
	v, ok := First([]int{4, 5})
	assert.True(t, ok)
	assert.Equal(t, 4, v)

	_, ok = First([]int(nil))
	assert.False(t, ok)
}

func TestIsEmpty(t *testing.T) {
	assert.True(t, IsEmpty([]string{}))
	assert.False(t, IsEmpty([]string{"a"}))
}

func TestSortedKeys(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, SortedKeys(map[string]int{"c": 1, "a": 2, "b": 3}))
	assert.Empty(t, SortedKeys(map[string]bool(nil)))
}

func TestPkgAlias(t *testing.T) {
	assert.Equal(t, "", PkgAlias(""))
	assert.Equal(t, "gen", PkgAlias("confstruct/internal/gen"))
}

func TestPkgNameFromDir(t *testing.T) {
	tests := []struct {
		dir  string
		want string
	}{
		{"internal/app-config", "appconfig"},
		{"./examples/basic", "basic"},
		{"pkg/V2", "v2"},
		{"/tmp/2fa", "fa"},
		{".", "main"},
		{"", "main"},
	}

	for _, tt := range tests {
		t.Run(tt.dir, func(t *testing.T) {
			assert.Equal(t, tt.want, PkgNameFromDir(tt.dir))
		})
	}
}
