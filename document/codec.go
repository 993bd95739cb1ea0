package document

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/erraggy/oasvariant/internal/fileutil"
	"github.com/erraggy/oasvariant/oaserrors"
	"go.yaml.in/yaml/v4"
)

// StdioPath is the special path for standard input or standard output.
const StdioPath = "-"

// Decode parses a JSON or YAML document. YAML values are normalised to the
// types encoding/json produces (Object, Array, string, float64, bool, nil).
func Decode(data []byte) (Object, error) {
	trimmed := bytes.TrimSpace(data)
	var raw any
	if len(trimmed) > 0 && trimmed[0] == '{' {
		if err := json.Unmarshal(trimmed, &raw); err != nil {
			return nil, fmt.Errorf("document: decoding JSON: %w", err)
		}
	} else {
		if err := yaml.Unmarshal(trimmed, &raw); err != nil {
			return nil, fmt.Errorf("document: decoding YAML: %w", err)
		}
		raw = normalize(raw)
	}
	doc, ok := raw.(Object)
	if !ok {
		return nil, oaserrors.Structuralf("", "document root must be an object, found %T", raw)
	}
	return doc, nil
}

func normalize(v any) any {
	switch n := v.(type) {
	case map[string]any:
		out := make(Object, len(n))
		for k, child := range n {
			out[k] = normalize(child)
		}
		return out
	case map[any]any:
		out := make(Object, len(n))
		for k, child := range n {
			out[keyString(k)] = normalize(child)
		}
		return out
	case []any:
		out := make(Array, len(n))
		for i, child := range n {
			out[i] = normalize(child)
		}
		return out
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case uint64:
		return float64(n)
	case float32:
		return float64(n)
	default:
		return v
	}
}

func keyString(k any) string {
	switch kv := k.(type) {
	case string:
		return kv
	case int:
		return strconv.Itoa(kv)
	case bool:
		return strconv.FormatBool(kv)
	default:
		return fmt.Sprint(kv)
	}
}

// Marshal renders a document as JSON with two-space indentation and a
// trailing newline. HTML characters are not escaped.
func Marshal(doc any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("document: encoding JSON: %w", err)
	}
	return buf.Bytes(), nil
}

// Read decodes a document from r. name identifies the source in errors.
func Read(r io.Reader, name string) (Object, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &oaserrors.IOError{Op: "read", Path: name, Cause: err}
	}
	return Decode(data)
}

// Load reads a document from path, or from standard input when path is ""
// or StdioPath.
func Load(path string) (Object, error) {
	if path == "" || path == StdioPath {
		return Read(os.Stdin, "<stdin>")
	}
	data, err := os.ReadFile(path) //nolint:gosec // G304: reading the user-supplied input document is the point
	if err != nil {
		return nil, &oaserrors.IOError{Op: "read", Path: path, Cause: err}
	}
	doc, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Write renders doc and writes it to w.
func Write(w io.Writer, doc any, name string) error {
	data, err := Marshal(doc)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return &oaserrors.IOError{Op: "write", Path: name, Cause: err}
	}
	return nil
}

// Store writes doc to path, or to standard output when path is "" or
// StdioPath. Files are written with owner read/write permissions.
func Store(path string, doc any) error {
	if path == "" || path == StdioPath {
		return Write(os.Stdout, doc, "<stdout>")
	}
	data, err := Marshal(doc)
	if err != nil {
		return err
	}
	if err := fileutil.WriteFile(path, data); err != nil {
		return &oaserrors.IOError{Op: "write", Path: path, Cause: err}
	}
	return nil
}
