package commands

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/ktr0731/go-fuzzyfinder"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/distcheck/internal/errors"
	"github.com/thoreinstein/distcheck/internal/metadata"
)

var fieldsInteractive bool

func init() {
	fieldsCmd.Flags().BoolVarP(&fieldsInteractive, "interactive", "i", false,
		"browse fields with a fuzzy finder")
	rootCmd.AddCommand(fieldsCmd)
}

var fieldsCmd = &cobra.Command{
	Use:   "fields [name]",
	Short: "Describe the fields of a metadata document",
	Long: `List every field recognized in a metadata document, whether it is
required, and the shape its value must have.

With a field name, print the details of that field only. Names are matched
case-insensitively.`,
	Example: `  # List all fields
  distcheck fields

  # Show one field
  distcheck fields requires-dists

  # Browse interactively
  distcheck fields -i

See Also: distcheck check`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		w := cmd.OutOrStdout()
		switch {
		case fieldsInteractive:
			return runInteractiveFields(w, metadata.Schema())
		case len(args) == 1:
			return runFieldShow(w, args[0])
		default:
			return runFieldsList(w, metadata.Schema())
		}
	},
}

func runFieldsList(w io.Writer, rules []metadata.Rule) error {
	bold := color.New(color.Bold).SprintFunc()
	green := color.New(color.FgGreen).SprintFunc()

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\t%s\t%s\n", bold("FIELD"), bold("PRESENCE"), bold("VALUE"))
	for _, r := range rules {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", green(r.Name), presence(r), metadata.Describe(r.Shape))
	}
	return errors.Wrap(tw.Flush(), "writing field table")
}

func runFieldShow(w io.Writer, name string) error {
	rule, ok := findRule(name)
	if !ok {
		err := errors.Wrapf(errors.ErrNotFound, "unknown field %q", name)
		return errors.NewUserError(err, "Run 'distcheck fields' to list recognized fields")
	}
	fmt.Fprint(w, formatRule(rule))
	return nil
}

func runInteractiveFields(w io.Writer, rules []metadata.Rule) error {
	if len(rules) == 0 {
		fmt.Fprintln(w, "No fields defined.")
		return nil
	}

	idx, err := fuzzyfinder.Find(
		rules,
		func(i int) string {
			return fmt.Sprintf("%s (%s)", rules[i].Name, presence(rules[i]))
		},
		fuzzyfinder.WithPreviewWindow(func(i, _, _ int) string {
			if i == -1 {
				return ""
			}
			return formatRule(rules[i])
		}),
	)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return nil
		}
		return errors.Wrap(err, "interactive field browser failed")
	}

	fmt.Fprint(w, formatRule(rules[idx]))
	return nil
}

// findRule looks name up exactly, then case-insensitively.
func findRule(name string) (metadata.Rule, bool) {
	if r, ok := metadata.Lookup(name); ok {
		return r, true
	}
	for _, r := range metadata.Schema() {
		if strings.EqualFold(r.Name, name) {
			return r, true
		}
	}
	return metadata.Rule{}, false
}

func formatRule(r metadata.Rule) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Field:    %s\n", r.Name)
	fmt.Fprintf(&sb, "Presence: %s\n", presence(r))
	fmt.Fprintf(&sb, "Value:    %s\n", metadata.Describe(r.Shape))
	if r.Doc != "" {
		fmt.Fprintf(&sb, "\n%s\n", r.Doc)
	}
	return sb.String()
}

func presence(r metadata.Rule) string {
	if r.Required {
		return "required"
	}
	return "optional"
}
