package equalutil_test

import (
	"testing"

	"github.com/erraggy/oasvariant/internal/equalutil"
	"github.com/stretchr/testify/assert"
)

func TestDeep(t *testing.T) {
	a := map[string]any{"type": "string", "enum": []any{"x", "y"}}
	b := map[string]any{"type": "string", "enum": []any{"x", "y"}}
	c := map[string]any{"type": "string", "enum": []any{"y", "x"}}

	assert.True(t, equalutil.Deep(a, b))
	assert.False(t, equalutil.Deep(a, c))
	assert.Empty(t, equalutil.Diff(a, b))
	assert.NotEmpty(t, equalutil.Diff(a, c))
}

func TestSame(t *testing.T) {
	m := map[string]any{"a": 1.0}
	copied := map[string]any{"a": 1.0}
	s := []any{"x", "y"}

	assert.True(t, equalutil.Same(m, m))
	assert.False(t, equalutil.Same(m, copied), "equal content is not identity")
	assert.True(t, equalutil.Same(s, s))
	assert.False(t, equalutil.Same(s, []any{"x", "y"}))
	assert.False(t, equalutil.Same(s, s[:1]))
	assert.True(t, equalutil.Same("a", "a"))
	assert.True(t, equalutil.Same(nil, nil))
	assert.False(t, equalutil.Same(m, s))
}
