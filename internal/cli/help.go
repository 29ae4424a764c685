package cli

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"
	"text/template"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/yaklabco/gomdfmt/internal/configloader"
	"github.com/yaklabco/gomdfmt/internal/ui/pretty"
)

// maxHelpWidth caps the width flag descriptions are wrapped to.
const maxHelpWidth = 100

// HelpStyles contains the lipgloss styles of command help.
type HelpStyles struct {
	Command    lipgloss.Style
	Heading    lipgloss.Style
	Subcommand lipgloss.Style
	Flag       lipgloss.Style
	Example    lipgloss.Style
	Dim        lipgloss.Style
}

// NewHelpStyles returns colored styles, or plain ones when color is off.
func NewHelpStyles(colorEnabled bool) *HelpStyles {
	plain := lipgloss.NewStyle()
	if !colorEnabled {
		return &HelpStyles{plain, plain, plain, plain, plain, plain}
	}
	return &HelpStyles{
		Command:    plain.Foreground(lipgloss.Color("14")).Bold(true),
		Heading:    plain.Foreground(lipgloss.Color("11")).Bold(true),
		Subcommand: plain.Foreground(lipgloss.Color("10")),
		Flag:       plain.Foreground(lipgloss.Color("12")),
		Example:    plain.Foreground(lipgloss.Color("8")),
		Dim:        plain.Foreground(lipgloss.Color("8")),
	}
}

// HelpFormatter renders styled help for a command tree. Color follows the
// --color flag of the root command and the terminal behind the writer.
type HelpFormatter struct {
	writer io.Writer
}

// NewHelpFormatter creates a help formatter writing to w.
func NewHelpFormatter(w io.Writer) *HelpFormatter {
	return &HelpFormatter{writer: w}
}

// ApplyToCommand installs the styled help and usage functions on cmd. Its
// subcommands inherit them.
func (h *HelpFormatter) ApplyToCommand(cmd *cobra.Command) {
	cmd.SetUsageFunc(func(command *cobra.Command) error {
		return h.render(command, "usage", usageTemplate)
	})
	cmd.SetHelpFunc(func(command *cobra.Command, _ []string) {
		if err := h.render(command, "help", helpTemplate); err != nil {
			command.PrintErrln(err)
		}
	})
}

func (h *HelpFormatter) render(cmd *cobra.Command, name, text string) error {
	colorMode := "auto"
	if flag := cmd.Root().PersistentFlags().Lookup("color"); flag != nil {
		colorMode = flag.Value.String()
	}
	styles := NewHelpStyles(pretty.IsColorEnabled(colorMode, h.writer))

	width := terminalWidth(h.writer)
	if width <= 0 || width > maxHelpWidth {
		width = maxHelpWidth
	}

	funcs := template.FuncMap{
		"styleCommand":    styles.Command.Render,
		"styleHeading":    styles.Heading.Render,
		"styleSubcommand": styles.Subcommand.Render,
		"styleExample":    styles.Example.Render,
		"styleFlags": func(flags *pflag.FlagSet) string {
			return styleFlags(styles, flags.FlagUsagesWrapped(width))
		},
		"envVars": func() string { return envVarsUsage(styles) },
		"rpad":    rpad,
		"trim":    trimTrailingWhitespace,
	}

	tmpl, err := template.New(name).Funcs(funcs).Parse(text)
	if err != nil {
		return fmt.Errorf("parse %s template: %w", name, err)
	}
	if err := tmpl.Execute(cmd.OutOrStdout(), cmd); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	return nil
}

const usageTemplate = `{{ styleHeading "Usage:" }}
{{- if .Runnable}}
  {{ styleCommand .UseLine }}{{end}}
{{- if .HasAvailableSubCommands}}
  {{ styleCommand .CommandPath }} [command]{{end}}

{{- if .HasExample}}

{{ styleHeading "Examples:" }}
{{ styleExample .Example }}
{{- end}}

{{- if .HasAvailableSubCommands}}

{{ styleHeading "Commands:" }}{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{ styleSubcommand (rpad .Name .NamePadding) }} {{ .Short }}{{end}}{{end}}
{{- end}}

{{- if .HasAvailableLocalFlags}}

{{ styleHeading "Flags:" }}
{{ styleFlags .LocalFlags }}
{{- end}}

{{- if .HasAvailableInheritedFlags}}

{{ styleHeading "Global Flags:" }}
{{ styleFlags .InheritedFlags }}
{{- end}}

{{- if not .HasParent}}

{{ styleHeading "Environment:" }}
{{ envVars }}
{{- end}}

{{- if .HasAvailableSubCommands}}

Use "{{ styleCommand (print .CommandPath " [command] --help") }}" for more information about a command.
{{- end}}
`

const helpTemplate = `{{with (or .Long .Short)}}{{ trim . }}

{{end}}` + usageTemplate

// styleFlags colors the flag names of pflag usage text.
func styleFlags(styles *HelpStyles, usages string) string {
	lines := strings.Split(strings.TrimSuffix(usages, "\n"), "\n")
	for i, line := range lines {
		lines[i] = styleFlagLine(styles, line)
	}
	return strings.Join(lines, "\n")
}

// styleFlagLine styles one line of the form "  -w, --write type   text".
// Continuation lines of wrapped descriptions start with spaces only and are
// returned as they are.
func styleFlagLine(styles *HelpStyles, line string) string {
	trimmed := strings.TrimLeft(line, " ")
	if !strings.HasPrefix(trimmed, "-") {
		return line
	}
	lead := line[:len(line)-len(trimmed)]

	names, desc, found := strings.Cut(trimmed, "  ")
	if !found {
		return lead + styleFlagNames(styles, trimmed)
	}
	pad := len(desc) - len(strings.TrimLeft(desc, " "))
	return lead + styleFlagNames(styles, names) + "  " + strings.Repeat(" ", pad) + strings.TrimLeft(desc, " ")
}

func styleFlagNames(styles *HelpStyles, names string) string {
	tokens := strings.Fields(names)
	for i, token := range tokens {
		if !strings.HasPrefix(token, "-") {
			tokens[i] = styles.Dim.Render(token)
			continue
		}
		name, comma := strings.CutSuffix(token, ",")
		tokens[i] = styles.Flag.Render(name)
		if comma {
			tokens[i] += ","
		}
	}
	return strings.Join(tokens, " ")
}

// envVarsUsage lists the GOMDFMT_* variables, one per line.
func envVarsUsage(styles *HelpStyles) string {
	vars := configloader.ListEnvVars()
	names := slices.Sorted(maps.Keys(vars))

	pad := 0
	for _, name := range names {
		pad = max(pad, len(name))
	}

	lines := make([]string, len(names))
	for i, name := range names {
		lines[i] = "  " + styles.Flag.Render(rpad(name, pad)) + "   " + vars[name]
	}
	return strings.Join(lines, "\n")
}

func rpad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

func trimTrailingWhitespace(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}
