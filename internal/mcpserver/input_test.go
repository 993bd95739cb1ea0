package mcpserver

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/erraggy/oasvariant/document"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixturePath = "../../appveyor/testdata/appveyor-v1.yaml"

func TestSpecInput_ResolveFile(t *testing.T) {
	docCache.reset()
	doc, err := specInput{File: fixturePath}.resolve()
	require.NoError(t, err)
	assert.Equal(t, "3.0.2", doc["openapi"])
	assert.Equal(t, 1, docCache.size())

	again, err := specInput{File: fixturePath}.resolve()
	require.NoError(t, err)
	assert.True(t, document.Same(doc, again), "second resolve should hit the cache")
}

func TestSpecInput_ResolveContent(t *testing.T) {
	docCache.reset()
	doc, err := specInput{Content: "openapi: 3.0.2\npaths: {}\n"}.resolve()
	require.NoError(t, err)
	assert.Equal(t, document.Object{"openapi": "3.0.2", "paths": document.Object{}}, doc)
}

func TestSpecInput_ResolveInvalid(t *testing.T) {
	tests := []struct {
		name  string
		input specInput
		want  string
	}{
		{name: "none", input: specInput{}, want: "exactly one of file or content"},
		{name: "both", input: specInput{File: "a.yaml", Content: "{}"}, want: "exactly one of file or content"},
		{name: "stdin", input: specInput{File: "-"}, want: "not supported"},
		{name: "not an object", input: specInput{Content: "- a\n- b\n"}, want: "structural"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.input.resolve()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestSpecInput_CacheInvalidatedOnChange(t *testing.T) {
	docCache.reset()
	path := filepath.Join(t.TempDir(), "spec.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"openapi":"3.0.2"}`), 0o600))

	key1, _ := specInput{File: path}.cacheKey()
	require.NotEmpty(t, key1)

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.NoError(t, os.Chtimes(path, info.ModTime(), info.ModTime().Add(time.Second)))
	key2, _ := specInput{File: path}.cacheKey()
	assert.NotEqual(t, key1, key2)
}

func TestDocCache_Eviction(t *testing.T) {
	c := &docCacheStore{entries: make(map[string]*cacheEntry), maxSize: 2}
	c.put("a", document.Object{"a": true}, time.Minute)
	c.put("b", document.Object{"b": true}, time.Minute)
	c.get("a")
	c.put("c", document.Object{"c": true}, time.Minute)

	assert.Equal(t, 2, c.size())
	assert.NotNil(t, c.get("a"))
	assert.Nil(t, c.get("b"))

	c.put("d", document.Object{}, -time.Second)
	assert.Nil(t, c.get("d"))
}
