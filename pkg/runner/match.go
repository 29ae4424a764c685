package runner

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
)

// ErrInvalidPattern is returned for a glob that does not compile.
var ErrInvalidPattern = errors.New("invalid glob pattern")

// patterns matches slash-separated paths relative to the working directory.
// A pattern without a slash matches the base name at any depth, the way
// .gitignore entries do; "**" matches across directories.
type patterns struct {
	paths []glob.Glob
	names []glob.Glob
}

func compilePatterns(list ...[]string) (*patterns, error) {
	p := &patterns{}
	for _, group := range list {
		for _, pattern := range group {
			pattern = strings.TrimSuffix(filepath.ToSlash(strings.TrimSpace(pattern)), "/")
			if pattern == "" {
				continue
			}

			g, err := glob.Compile(pattern, '/')
			if err != nil {
				return nil, fmt.Errorf("%w %q: %w", ErrInvalidPattern, pattern, err)
			}
			if strings.Contains(pattern, "/") {
				p.paths = append(p.paths, g)
			} else {
				p.names = append(p.names, g)
			}
		}
	}
	return p, nil
}

func (p *patterns) empty() bool {
	return len(p.paths) == 0 && len(p.names) == 0
}

// match reports whether relPath, or for a directory anything below it,
// matches a pattern.
func (p *patterns) match(relPath string, dir bool) bool {
	relPath = filepath.ToSlash(relPath)

	name := relPath
	if idx := strings.LastIndexByte(relPath, '/'); idx >= 0 {
		name = relPath[idx+1:]
	}
	for _, g := range p.names {
		if g.Match(name) {
			return true
		}
	}

	candidates := []string{relPath, "/" + relPath}
	if dir {
		candidates = append(candidates, relPath+"/")
	}
	for _, g := range p.paths {
		for _, candidate := range candidates {
			if g.Match(candidate) {
				return true
			}
		}
	}
	return false
}
