package goldmark

import (
	"bytes"

	"gopkg.in/yaml.v3"

	"github.com/yaklabco/gomdfmt/pkg/mdast"
)

// frontMatterDelimiter opens a YAML front matter block on the first line.
var frontMatterDelimiter = []byte("---")

// findFrontMatter locates a YAML front matter block at the very start of a
// file. The block runs from an opening "---" line to the next "---" or "..."
// line and must hold a YAML mapping (or nothing). The returned span ends
// before the newline of the closing line.
func findFrontMatter(file *mdast.FileSnapshot) (mdast.SourceRange, bool) {
	if len(file.Lines) < 2 || !bytes.Equal(bytes.TrimRight(file.LineContent(1), " \t"), frontMatterDelimiter) {
		return mdast.SourceRange{}, false
	}

	for idx := 1; idx < len(file.Lines); idx++ {
		line := bytes.TrimRight(file.LineContent(idx+1), " \t")
		if !bytes.Equal(line, frontMatterDelimiter) && !bytes.Equal(line, []byte("...")) {
			continue
		}

		body := file.Content[file.Lines[1].StartOffset:file.Lines[idx].StartOffset]
		if !isYAMLMapping(body) {
			return mdast.SourceRange{}, false
		}
		return mdast.SourceRange{Start: 0, End: file.Lines[idx].NewlineStart}, true
	}

	return mdast.SourceRange{}, false
}

// isYAMLMapping reports whether body is empty or decodes to a YAML mapping.
func isYAMLMapping(body []byte) bool {
	if len(bytes.TrimSpace(body)) == 0 {
		return true
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(body, &doc); err != nil {
		return false
	}
	return doc.Kind == yaml.DocumentNode && len(doc.Content) == 1 && doc.Content[0].Kind == yaml.MappingNode
}

// maskRange returns a copy of content with every byte of span except line
// breaks replaced by a space, so goldmark sees blank lines at the same
// offsets.
func maskRange(content []byte, span mdast.SourceRange) []byte {
	masked := bytes.Clone(content)
	for i := span.Start; i < span.End; i++ {
		if masked[i] != '\n' && masked[i] != '\r' {
			masked[i] = ' '
		}
	}
	return masked
}
