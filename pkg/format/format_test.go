package format_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdfmt/pkg/config"
	"github.com/yaklabco/gomdfmt/pkg/format"
	"github.com/yaklabco/gomdfmt/pkg/layout"
)

func newConfig(width int) *config.Config {
	cfg := config.NewConfig()
	cfg.Width = width
	return cfg
}

func formatString(t *testing.T, cfg *config.Config, content string) string {
	t.Helper()

	result, err := format.NewEngine(cfg).Format(context.Background(), "test.md", []byte(content))
	require.NoError(t, err)
	return string(result.Formatted)
}

func TestFormat_Blocks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		width int
		input string
		want  string
	}{
		{"empty", 80, "", ""},
		{"blank lines only", 80, "\n\n\n", ""},
		{"joins paragraph lines", 80, "one\ntwo\nthree\n", "one two three\n"},
		{"collapses spaces", 80, "one   two\t three\n", "one two three\n"},
		{"adds final newline", 80, "text", "text\n"},
		{"separates blocks", 80, "# Title\ntext\n\n\n\nmore\n", "# Title\n\ntext\n\nmore\n"},
		{"fills paragraph", 20, "alpha beta gamma delta epsilon zeta eta theta\n",
			"alpha beta gamma\ndelta epsilon zeta\neta theta\n"},
		{"setext to atx", 80, "Title\n=====\n\nSub\n---\n", "# Title\n\n## Sub\n"},
		{"atx closing sequence", 80, "## Title ##\n", "## Title\n"},
		{"empty heading", 80, "###\n", "###\n"},
		{"thematic break", 80, "***\n", "---\n"},
		{"bullets", 80, "* a\n* b\n", "- a\n- b\n"},
		{"ordered ascending", 80, "1. a\n1. b\n1. c\n", "1.  a\n2.  b\n3.  c\n"},
		{"ordered paren", 80, "3) a\n7) b\n", "3)  a\n4)  b\n"},
		{"loose list", 80, "- a\n\n- b\n", "- a\n\n- b\n"},
		{"nested list", 80, "- a\n    - b\n", "- a\n  - b\n"},
		{"empty item", 80, "-\n- b\n", "-\n- b\n"},
		{"adjacent lists keep apart", 80, "- a\n\n* b\n", "- a\n\n* b\n"},
		{"blockquote", 80, ">one\n>two\n", "> one two\n"},
		{"blockquote paragraphs", 80, "> a\n>\n> b\n", "> a\n>\n> b\n"},
		{"blockquote fill", 10, "> one two three\n", "> one two\n> three\n"},
		{"fenced code kept", 80, "```go\nfunc  main() {}\n```\n", "```go\nfunc  main() {}\n```\n"},
		{"fence closed", 80, "```\nx\n", "```\nx\n```\n"},
		{"tilde fence", 80, "~~~~ sh\n```\n~~~~\n", "~~~~sh\n```\n~~~~\n"},
		{"indented code", 80, "    code\n      more\n", "    code\n      more\n"},
		{"html block", 80, "<div>\n  <p>hi</p>\n</div>\n", "<div>\n  <p>hi</p>\n</div>\n"},
		{"link definition", 80, "[Foo]:   /url   'title'\n", "[Foo]: /url \"title\"\n"},
		{"link definition angle", 80, "[a]: <my url>\n", "[a]: <my url>\n"},
		{"front matter", 80, "---\ntitle: x\n---\ntext\n", "---\ntitle: x\n---\n\ntext\n"},
		{"hard break spaces", 80, "foo  \nbar\n", "foo  \nbar\n"},
		{"hard break backslash", 80, "foo\\\nbar\n", "foo\\\nbar\n"},
		{"code span kept whole", 10, "see `a  b c` now\n", "see\n`a  b c`\nnow\n"},
		{"crlf", 80, "a\r\nb\r\n", "a b\r\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, formatString(t, newConfig(tt.width), tt.input))
		})
	}
}

func TestFormat_Idempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"# Title\n\nSome paragraph text that is long enough to need wrapping at a narrow width.\n",
		"- item one with several words\n- item two\n  - nested item with more words than fit\n",
		"> quoted text that wraps\n> over lines\n>\n> - list in quote\n",
		"1. first\n2. second\n\n   continued paragraph in second item\n",
		"| a | b |\n|---|---|\n| 1 | 2 |\n",
	}

	for _, input := range inputs {
		cfg := newConfig(24)
		once := formatString(t, cfg, input)
		twice := formatString(t, cfg, once)
		assert.Equal(t, once, twice, "input %q", input)
	}
}

func TestFormat_TwoLevelNesting(t *testing.T) {
	t.Parallel()

	cfg := newConfig(30)
	cfg.TabSpaces = 4

	got := formatString(t, cfg, "- a\n  - one two three four five six seven eight nine ten eleven\n")

	want := "-   a\n" +
		"    -   one two three four\n" +
		"        five six seven eight\n" +
		"        nine ten eleven\n"
	assert.Equal(t, want, got)

	lines := strings.Split(strings.TrimSuffix(got, "\n"), "\n")
	for _, line := range lines[2:] {
		assert.Equal(t, 8, layout.LeadingSpaces(line), "line %q", line)
	}
	assert.LessOrEqual(t, layout.Width(lines[len(lines)-1]), cfg.Width)
}

func TestFormat_NoLineStartsABlock(t *testing.T) {
	t.Parallel()

	got := formatString(t, newConfig(8), "aaaaaaa # b\n")
	assert.Equal(t, "aaaaaaa #\nb\n", got)

	got = formatString(t, newConfig(6), "xxxx - y 1. z\n")
	for _, line := range strings.Split(got, "\n") {
		assert.False(t, strings.HasPrefix(line, "- "), "line %q", line)
		assert.False(t, strings.HasPrefix(line, "1. "), "line %q", line)
	}
}

func TestFormat_BulletAndNumbering(t *testing.T) {
	t.Parallel()

	cfg := newConfig(80)
	cfg.Bullet = config.BulletStar
	assert.Equal(t, "* a\n* b\n", formatString(t, cfg, "- a\n- b\n"))

	cfg = newConfig(80)
	cfg.Bullet = config.BulletPreserve
	assert.Equal(t, "+ a\n", formatString(t, cfg, "+ a\n"))

	cfg = newConfig(80)
	cfg.OrderedStyle = config.OrderedOne
	assert.Equal(t, "1.  a\n1.  b\n", formatString(t, cfg, "1. a\n2. b\n"))

	cfg = newConfig(80)
	cfg.OrderedStyle = config.OrderedPreserve
	assert.Equal(t, "2.  a\n5.  b\n", formatString(t, cfg, "2. a\n5. b\n"))
}

func TestFormat_HardBreakStyle(t *testing.T) {
	t.Parallel()

	cfg := newConfig(80)
	cfg.HardBreak = config.HardBreakBackslash
	assert.Equal(t, "foo\\\nbar\n", formatString(t, cfg, "foo  \nbar\n"))

	cfg = newConfig(80)
	cfg.HardBreak = config.HardBreakSpaces
	assert.Equal(t, "foo  \nbar\n", formatString(t, cfg, "foo\\\nbar\n"))
}

func TestFormat_WideHeadingFallsBack(t *testing.T) {
	t.Parallel()

	input := "#   A heading that is much wider than twenty\n"
	result, err := format.NewEngine(newConfig(20)).Format(context.Background(), "h.md", []byte(input))
	require.NoError(t, err)

	assert.Equal(t, input, string(result.Formatted))
	assert.Equal(t, 1, result.Fallbacks)
}

func TestFormat_ThematicBreakAfterParagraphInItem(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "- text\n  ***\n", formatString(t, newConfig(80), "- text\n  ***\n"))
}

func TestFormat_Table(t *testing.T) {
	t.Parallel()

	cfg := newConfig(80)
	cfg.Flavor = config.FlavorGFM

	got := formatString(t, cfg, "|a|b|\n|-|:-:|\n|1|2|\n")
	assert.Equal(t, "| a   |  b  |\n| --- | :-: |\n| 1   |  2  |\n", got)

	cfg.Width = 12
	got = formatString(t, cfg, "| long header | b |\n|---|---|\n| x | y |\n")
	assert.Equal(t, "| long header | b |\n| --- | --- |\n| x | y |\n", got)
}

func TestFormat_TableWithExtraCellsIsKept(t *testing.T) {
	t.Parallel()

	cfg := newConfig(80)
	cfg.Flavor = config.FlavorGFM

	input := "| a |\n|---|\n| 1 | 2 |\n"
	assert.Equal(t, input, formatString(t, cfg, input))
}

func TestFormat_LinkDefinitionTitleOverflows(t *testing.T) {
	t.Parallel()

	got := formatString(t, newConfig(24), "[docs]: https://example.com/x \"Documentation\"\n")
	assert.Equal(t, "[docs]: https://example.com/x\n  \"Documentation\"\n", got)
}

func TestFormat_FallbackKeepsSource(t *testing.T) {
	t.Parallel()

	input := "[a]: /x\n[a]: /y\n"
	result, err := format.NewEngine(newConfig(80)).Format(context.Background(), "dup.md", []byte(input))
	require.NoError(t, err)

	assert.Equal(t, input, string(result.Formatted))
	assert.Equal(t, 1, result.Fallbacks)
	assert.False(t, result.Changed)
}

func TestFormat_TooNarrowFallsBack(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("x", 40)
	input := "- " + long + "\n"

	result, err := format.NewEngine(newConfig(10)).Format(context.Background(), "narrow.md", []byte(input))
	require.NoError(t, err)

	assert.Equal(t, input, string(result.Formatted))
	assert.Equal(t, 1, result.Fallbacks)
}

func TestFormat_IgnoreDirectives(t *testing.T) {
	t.Parallel()

	input := "<!-- gomdfmt-ignore -->\n\nx   y\n\nx   y\n"
	got := formatString(t, newConfig(80), input)
	assert.Equal(t, "<!-- gomdfmt-ignore -->\n\nx   y\n\nx y\n", got)

	input = "<!-- gomdfmt-ignore-start -->\n\nx   y\n\n* z\n\n<!-- gomdfmt-ignore-end -->\n\nx   y\n"
	got = formatString(t, newConfig(80), input)
	assert.Equal(t, "<!-- gomdfmt-ignore-start -->\n\nx   y\n\n* z\n\n<!-- gomdfmt-ignore-end -->\n\nx y\n", got)
}

func TestFormat_Verify(t *testing.T) {
	t.Parallel()

	cfg := newConfig(20)
	cfg.Verify = true

	result, err := format.NewEngine(cfg).Format(context.Background(), "v.md",
		[]byte("# Title\n\nsome words that will wrap around\n"))
	require.NoError(t, err)

	assert.False(t, result.Unstable)
	assert.True(t, result.Changed)
	assert.Equal(t, "# Title\n\nsome words that will\nwrap around\n", string(result.Formatted))
}

func TestFormat_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := format.NewEngine(nil).Format(ctx, "c.md", []byte("text\n"))
	require.ErrorIs(t, err, format.ErrParseFailure)
}
