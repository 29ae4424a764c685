package format

import (
	"context"

	"github.com/yaklabco/gomdfmt/pkg/mdast"
)

// Parser parses Markdown content into a FileSnapshot.
//
// The format package defines this interface in the consumer package.
// Implementations (e.g., parser/goldmark) provide the concrete parsing logic.
//
// Implementations must be:
//   - deterministic for a given (flavor, path, content) tuple,
//   - safe for concurrent use by multiple goroutines,
//   - side-effect free (no I/O, no global state mutation).
type Parser interface {
	// Parse converts raw Markdown bytes into a fully-populated FileSnapshot.
	//
	// The returned FileSnapshot must satisfy:
	//   - snapshot.Path == path
	//   - bytes.Equal(snapshot.Content, content)
	//   - snapshot.Root != nil && snapshot.Root.Kind == mdast.NodeDocument
	//   - every block node has a line-aligned span inside snapshot.Content
	//   - all nodes have node.File == snapshot
	Parse(ctx context.Context, path string, content []byte) (*mdast.FileSnapshot, error)
}
