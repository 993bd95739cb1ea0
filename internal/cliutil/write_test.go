package cliutil

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWritef(t *testing.T) {
	tests := []struct {
		name   string
		format string
		args   []any
		want   string
	}{
		{name: "no args", format: "usage: oasvariant build", want: "usage: oasvariant build"},
		{name: "single arg", format: "Error: %v\n", args: []any{errors.New("boom")}, want: "Error: boom\n"},
		{name: "multiple args", format: "%s %s (commit %s)", args: []any{"oasvariant", "dev", "unknown"}, want: "oasvariant dev (commit unknown)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Writef(&buf, tt.format, tt.args...)
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

type errorWriter struct{}

func (errorWriter) Write([]byte) (int, error) {
	return 0, errors.New("simulated write error")
}

func TestWritef_WriteError(t *testing.T) {
	var fallback bytes.Buffer
	saved := Fallback
	Fallback = &fallback
	t.Cleanup(func() { Fallback = saved })

	Writef(errorWriter{}, "this will fail")
	assert.Equal(t, "oasvariant: write error: simulated write error\n", fallback.String())
}

func TestWriteError(t *testing.T) {
	var buf bytes.Buffer
	WriteError(&buf, errors.New("swagger: definitions: collision"))
	assert.Equal(t, "Error: swagger: definitions: collision\n", buf.String())
}
