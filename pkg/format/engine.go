package format

import (
	"bytes"
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/yaklabco/gomdfmt/internal/logging"
	"github.com/yaklabco/gomdfmt/pkg/config"
	"github.com/yaklabco/gomdfmt/pkg/layout"
	"github.com/yaklabco/gomdfmt/pkg/mdast"
	"github.com/yaklabco/gomdfmt/pkg/parser/goldmark"
)

// FileResult contains the result of formatting a single file.
type FileResult struct {
	// Path is the file path.
	Path string

	// Original is the content that was formatted.
	Original []byte

	// Formatted is the formatted content. It equals Original when the file
	// was left unchanged.
	Formatted []byte

	// Changed is true if Formatted differs from Original.
	Changed bool

	// Fallbacks counts the top-level blocks written as they appeared in the
	// source because no layout fit.
	Fallbacks int

	// Ignored counts the top-level blocks excluded by ignore directives.
	Ignored int

	// Unstable is true if formatting the output again changed it or its
	// structure. Unstable files are left unchanged.
	Unstable bool
}

// Engine formats Markdown documents.
type Engine struct {
	// Parser parses Markdown files into FileSnapshots.
	Parser Parser

	// Config holds the formatting options.
	Config *config.Config
}

// NewEngine creates an engine that parses with goldmark in the configured
// flavor. A nil cfg uses the defaults.
func NewEngine(cfg *config.Config) *Engine {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	return &Engine{
		Parser: goldmark.New(string(cfg.Flavor)),
		Config: cfg,
	}
}

// pass is the outcome of formatting content once.
type pass struct {
	text      string
	fallbacks int
	ignored   int
	blocks    []mdast.NodeKind
}

// Format formats content. The error wraps ErrParseFailure when the content
// could not be parsed and layout.ErrInternal when the syntax tree and the
// source disagree; no layout failure is ever an error.
func (e *Engine) Format(ctx context.Context, path string, content []byte) (*FileResult, error) {
	logger := logging.FromContext(ctx)

	first, err := e.format(ctx, path, content)
	if err != nil {
		return nil, err
	}

	result := &FileResult{
		Path:      path,
		Original:  content,
		Formatted: []byte(first.text),
		Fallbacks: first.fallbacks,
		Ignored:   first.ignored,
	}

	if e.Config.Verify && first.text != string(content) {
		second, err := e.format(ctx, path, result.Formatted)
		if err != nil {
			return nil, fmt.Errorf("verify: %w", err)
		}
		if second.text != first.text || !slices.Equal(second.blocks, first.blocks) {
			logger.Warn("formatting is not stable, leaving file unchanged", logging.FieldPath, path)
			result.Unstable = true
			result.Formatted = content
		}
	}

	result.Changed = !bytes.Equal(result.Formatted, content)

	logger.Debug("formatted file",
		logging.FieldPath, path,
		logging.FieldChanged, result.Changed,
		logging.FieldFallbacks, result.Fallbacks,
	)

	return result, nil
}

func (e *Engine) format(ctx context.Context, path string, content []byte) (pass, error) {
	snapshot, err := e.Parser.Parse(ctx, path, content)
	if err != nil {
		return pass{}, fmt.Errorf("%w: %w", ErrParseFailure, err)
	}

	ignored := MarkIgnored(snapshot.Root)

	memo, err := layout.NewMemo(layout.DefaultMemoSize)
	if err != nil {
		return pass{}, fmt.Errorf("format %s: %w", path, err)
	}
	formatter := NewFormatter(e.Config, memo)
	lctx := layout.NewContext(e.Config, snapshot)

	var (
		text      string
		fallbacks int
	)
	err = layout.Guard(func() error {
		text, fallbacks = formatter.Document(snapshot.Root, lctx)
		return nil
	})
	if err != nil {
		return pass{}, fmt.Errorf("format %s: %w", path, err)
	}

	if bytes.Contains(content, []byte("\r\n")) {
		text = strings.ReplaceAll(text, "\n", "\r\n")
	}

	hits, misses := memo.Stats()
	logging.FromContext(ctx).Debug("layout cache",
		logging.FieldPath, path,
		logging.FieldCacheHits, hits,
		logging.FieldCacheMisses, misses,
	)

	return pass{
		text:      text,
		fallbacks: fallbacks,
		ignored:   ignored,
		blocks:    blockKinds(snapshot.Root),
	}, nil
}

// blockKinds lists the kinds of all block nodes in document order.
func blockKinds(root *mdast.Node) []mdast.NodeKind {
	var kinds []mdast.NodeKind
	for node := range mdast.Blocks(root) {
		kinds = append(kinds, node.Kind)
	}
	return kinds
}
