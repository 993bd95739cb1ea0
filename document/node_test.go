package document

import (
	"testing"

	"github.com/erraggy/oasvariant/oaserrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithAndWithout(t *testing.T) {
	in := Object{"a": 1.0, "b": 2.0}

	with := With(in, "c", 3.0)
	assert.Len(t, with, 3)
	assert.Len(t, in, 2)

	without := Without(in, "a")
	assert.Equal(t, Object{"b": 2.0}, without)
	assert.Len(t, in, 2)

	assert.True(t, Same(in, Without(in, "zzz")))
}

func TestDeepCopy(t *testing.T) {
	in := Object{"list": Array{Object{"x": "y"}}}
	out := DeepCopy(in).(Object)

	assert.True(t, Equal(in, out))
	assert.False(t, Same(in["list"], out["list"]))
	out["list"].(Array)[0].(Object)["x"] = "z"
	assert.Equal(t, "y", in["list"].(Array)[0].(Object)["x"])
}

func TestAccessors(t *testing.T) {
	doc := Object{
		"info": Object{"title": "API"},
		"tags": Array{Object{"name": "a"}},
	}

	title, err := StringIn(doc, "info", "title")
	require.NoError(t, err)
	assert.Equal(t, "API", title)

	tags, err := ArrayIn(doc, "tags")
	require.NoError(t, err)
	assert.Len(t, tags, 1)

	_, err = ObjectIn(doc, "info", "contact")
	require.ErrorIs(t, err, oaserrors.ErrStructural)
	assert.Contains(t, err.Error(), "info.contact")

	_, err = ObjectIn(doc, "tags")
	assert.ErrorIs(t, err, oaserrors.ErrStructural)

	_, err = StringIn(doc, "info", "version")
	assert.ErrorIs(t, err, oaserrors.ErrStructural)
}

func TestSetIn(t *testing.T) {
	doc := Object{
		"info":       Object{"title": "API"},
		"components": Object{"schemas": Object{"A": Object{}}},
	}

	out, err := SetIn(doc, []string{"components", "schemas", "B"}, Object{"type": "string"})
	require.NoError(t, err)

	assert.True(t, Same(doc["info"], out["info"]))
	assert.Len(t, out["components"].(Object)["schemas"], 2)
	assert.Len(t, doc["components"].(Object)["schemas"], 1)

	created, err := SetIn(doc, []string{"x-extra", "nested"}, true)
	require.NoError(t, err)
	assert.Equal(t, Object{"nested": true}, created["x-extra"])

	_, err = SetIn(doc, []string{"info", "title", "deeper"}, 1.0)
	require.ErrorIs(t, err, oaserrors.ErrStructural)
	assert.Contains(t, err.Error(), "info.title")
}

func TestMapOperations(t *testing.T) {
	doc := Object{
		"paths": Object{
			"/a": Object{"get": Object{"operationId": "getA"}, "parameters": Array{}},
			"/b": Object{"post": Object{"operationId": "postB"}},
		},
	}

	same, err := MapOperations(doc, func(_, _ string, op Object) (Object, error) { return op, nil })
	require.NoError(t, err)
	assert.True(t, Same(doc, same))

	out, err := MapOperations(doc, func(path, method string, op Object) (Object, error) {
		if path == "/b" {
			return With(op, "summary", method), nil
		}
		return op, nil
	})
	require.NoError(t, err)
	paths := out["paths"].(Object)
	assert.True(t, Same(doc["paths"].(Object)["/a"], paths["/a"]))
	assert.Equal(t, "post", paths["/b"].(Object)["post"].(Object)["summary"])
	assert.NotContains(t, doc["paths"].(Object)["/b"].(Object)["post"], "summary")
}

func TestIsHTTPMethod(t *testing.T) {
	assert.True(t, IsHTTPMethod("get"))
	assert.False(t, IsHTTPMethod("parameters"))
	assert.False(t, IsHTTPMethod("GET"))
}

func TestOperations(t *testing.T) {
	get := Object{"operationId": "list"}
	item := Object{
		"get":        get,
		"post":       Object{"operationId": "create"},
		"parameters": Array{},
		"summary":    "items",
		"x-get":      Object{},
		"put":        "not an operation",
	}
	ops := Operations(item)
	assert.Len(t, ops, 2)
	assert.Contains(t, ops, "post")
	assert.True(t, Same(get, ops["get"]))
	assert.Empty(t, Operations(Object{"parameters": Array{}}))
}

func TestTransform(t *testing.T) {
	doc := Object{
		"a": Object{"type": "string", "format": "binary"},
		"b": Object{"items": Object{"type": "integer"}},
	}

	out := TransformIn(doc, func(obj Object) Object {
		if obj["format"] == "binary" {
			return Object{"type": "file"}
		}
		return obj
	})

	assert.Equal(t, Object{"type": "file"}, out["a"])
	assert.True(t, Same(doc["b"], out["b"]))
	assert.Equal(t, "binary", doc["a"].(Object)["format"])

	assert.True(t, Same(doc, TransformIn(doc, func(obj Object) Object { return obj })))
}
