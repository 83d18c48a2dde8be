package main

import (
	"io"
	"strings"
	"text/template"

	"github.com/spf13/cobra"

	"github.com/lkndy/lr1-visualizer/facade"
)

var showFlags = struct {
	start *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "show <grammar-file>",
		Short:   "Print a human-readable report of states, items, and conflicts",
		Example: `  lr1table show expr.grammar --start S`,
		Args:    cobra.ExactArgs(1),
		RunE:    runShow,
	}
	showFlags.start = cmd.Flags().String("start", "", "start symbol name (required)")
	cmd.MarkFlagRequired("start")
	rootCmd.AddCommand(cmd)
}

// Grounded on nihei9-vartan/cmd/vartan/show.go's text/template
// reportTemplate idiom, pared down to the fields this report covers
// (states, items, transitions, conflicts — no Kernel/Shift/GoTo split,
// since this report prints every item of a state together).
const reportTemplate = `# Conflicts ({{ len .Conflicts }})
{{ range .Conflicts -}}
state {{ .State }}, {{ .Terminal }}: chose {{ .Chosen }}, rejected {{ range .Rejected }}{{ . }} {{ end }}({{ .Kind }})
{{ end }}
# States ({{ .StateCount }})
{{ range .States }}
## State {{ .State }}
{{ range .Items -}}
{{ . }}
{{ end -}}
{{ range .Transitions -}}
goto {{ .To }} on {{ .On }}
{{ end }}{{ end }}`

type showReport struct {
	Conflicts  []facade.ConflictView
	StateCount int
	States     []*facade.StateSnapshot
}

func runShow(cmd *cobra.Command, args []string) error {
	g, a, t, err := buildPipeline(args[0], *showFlags.start)
	if err != nil {
		return err
	}

	snap := facade.SnapshotTable(g, t)
	report := &showReport{Conflicts: snap.Conflicts, StateCount: a.StateCount()}
	for s := 0; s < a.StateCount(); s++ {
		report.States = append(report.States, facade.SnapshotState(g, a, s))
	}

	return writeReport(cmd.OutOrStdout(), report)
}

func writeReport(w io.Writer, report *showReport) error {
	tmpl, err := template.New("report").Parse(strings.TrimSpace(reportTemplate) + "\n")
	if err != nil {
		return err
	}
	return tmpl.Execute(w, report)
}
