package langdetect_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/gomdfmt/pkg/langdetect"
)

func TestDetect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		code string
		want string
	}{
		{"bash shebang", "#!/bin/bash\necho hello", "bash"},
		{"sh shebang", "#!/bin/sh\necho hello", "bash"},
		{"python shebang", "#!/usr/bin/env python3\nprint('hello')", "python"},
		{"shebang beats patterns", "#!/bin/bash\ndef foo():\n    pass", "bash"},
		{"go", "package main\n\nfunc main() {}\n", "go"},
		{"python", "def foo(x):\n    return x\n", "python"},
		{"python main guard", "if __name__ == '__main__':\n    run()\n", "python"},
		{"javascript", "const x = () => 42;\nconsole.log(x());", "javascript"},
		{"json", `{"key": "value", "n": 123}`, "json"},
		{"yaml", "key: value\nother: 123\nlist:\n  - a\n  - b\n", "yaml"},
		{"rust", "fn main() {\n    println!(\"hi\");\n}", "rust"},
		{"sql", "SELECT * FROM users WHERE id = 1;", "sql"},
		{"html", "<!DOCTYPE html>\n<html><body></body></html>", "html"},
		{"dockerfile", "FROM golang:1.25\nWORKDIR /app\nCOPY . .\nRUN go build", "dockerfile"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := langdetect.Detect([]byte(tt.code))
			assert.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDetect_Unsure(t *testing.T) {
	t.Parallel()

	for _, code := range []string{
		"",
		"just some text without any code patterns",
		"let me explain what happens next",
		"{not json at all",
		"Note: one key only",
		"select the best option from the menu",
	} {
		got, ok := langdetect.Detect([]byte(code))
		assert.False(t, ok, "%q", code)
		assert.Empty(t, got, "%q", code)
	}
}
