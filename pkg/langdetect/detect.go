// Package langdetect guesses the language of a code block so that an
// unlabeled fence can be given an info string. It prefers saying nothing to
// guessing wrong: a language is reported only when a shebang, an editor
// modeline or an unambiguous pattern identifies it.
package langdetect

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/go-enry/go-enry/v2"
	"gopkg.in/yaml.v3"
)

// rule recognizes one language from the code text.
type rule struct {
	lang  string
	match func(code string) bool
}

//nolint:gochecknoglobals // Compiled once.
var (
	pythonDef   = regexp.MustCompile(`(?m)^\s*(def|class)\s+\w+.*:\s*$`)
	sqlStmt     = regexp.MustCompile(`(?s)^\s*(SELECT\s.+\sFROM|INSERT\s+INTO|UPDATE\s.+\sSET|DELETE\s+FROM|CREATE\s+(TABLE|INDEX|VIEW))\b`)
	dockerInstr = regexp.MustCompile(`(?m)^(RUN|COPY|ADD|WORKDIR|CMD|ENTRYPOINT|ENV|EXPOSE)\s`)
	yamlKey     = regexp.MustCompile(`^[A-Za-z_][\w.-]*:(\s|$)`)
)

// rules are tried in order; the first match wins.
//
//nolint:gochecknoglobals // Read-only lookup table.
var rules = []rule{
	{"go", func(code string) bool { return strings.HasPrefix(firstLine(code), "package ") }},
	{"html", func(code string) bool {
		lower := strings.ToLower(strings.TrimSpace(code))
		return strings.HasPrefix(lower, "<!doctype html") || strings.HasPrefix(lower, "<html")
	}},
	{"json", isJSON},
	{"dockerfile", func(code string) bool {
		return strings.HasPrefix(firstLine(code), "FROM ") && dockerInstr.MatchString(code)
	}},
	{"python", func(code string) bool {
		return pythonDef.MatchString(code) || strings.Contains(code, "__name__ == ")
	}},
	{"rust", func(code string) bool {
		return strings.Contains(code, "fn main()") || strings.Contains(code, "println!(") ||
			strings.Contains(code, "let mut ")
	}},
	{"sql", sqlStmt.MatchString},
	{"javascript", func(code string) bool {
		return strings.Contains(code, "console.log(") ||
			(strings.Contains(code, "=>") && strings.Contains(code, "const "))
	}},
	{"yaml", isYAML},
}

// Detect returns the fence info string for code and true, or "" and false
// when the language cannot be told with confidence.
func Detect(code []byte) (string, bool) {
	if len(code) == 0 || enry.IsBinary(code) {
		return "", false
	}

	if lang, safe := enry.GetLanguageByShebang(code); safe {
		return fenceName(lang), true
	}
	if lang, safe := enry.GetLanguageByModeline(code); safe {
		return fenceName(lang), true
	}

	text := string(code)
	for _, r := range rules {
		if r.match(text) {
			return r.lang, true
		}
	}
	return "", false
}

// fenceName converts a linguist language name to the tag used on fences.
func fenceName(lang string) string {
	switch lang {
	case "Shell":
		return "bash"
	case "Vim Script":
		return "vim"
	default:
		return strings.ToLower(strings.ReplaceAll(lang, " ", "-"))
	}
}

func firstLine(code string) string {
	for line := range strings.Lines(code) {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

func isJSON(code string) bool {
	trimmed := strings.TrimSpace(code)
	if !strings.HasPrefix(trimmed, "{") && !strings.HasPrefix(trimmed, "[") {
		return false
	}
	return json.Valid([]byte(trimmed))
}

// isYAML requires at least two top-level keys and a document that decodes
// to a mapping.
func isYAML(code string) bool {
	keys := 0
	for line := range strings.Lines(code) {
		if yamlKey.MatchString(line) {
			keys++
		}
	}
	if keys < 2 {
		return false
	}

	var doc map[string]any
	return yaml.Unmarshal([]byte(code), &doc) == nil && len(doc) >= 2
}
