package cmd

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/quantmind-br/qlaunch/internal/resolver"
	"github.com/quantmind-br/qlaunch/internal/ui"
	"github.com/spf13/cobra"
)

// sourceReport is one row of the sources command.
type sourceReport struct {
	Order  int    `json:"order"`
	Source string `json:"source"`
	Path   string `json:"path,omitempty"`
	Found  bool   `json:"found"`
}

// NewSourcesCmd creates the sources command
func NewSourcesCmd(env *Env) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "sources",
		Short: "Show every location searched for the target",
		Long: `Probe every search location in priority order and show what each
one yields. Unlike launch, probing does not stop at the first hit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			defer env.Close()

			r := resolver.NewDefault(env.Config, env.Store(), env.Registry, env.Paths, env.Fs, env.Log)
			reports := probeAll(r.Sources())

			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(reports)
			}

			printSourcesTable(cmd, reports)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output in JSON format")

	return cmd
}

func probeAll(sources []resolver.Source) []sourceReport {
	reports := make([]sourceReport, 0, len(sources))
	for i, src := range sources {
		path, ok := src.Probe()
		reports = append(reports, sourceReport{
			Order:  i + 1,
			Source: src.Describe(),
			Path:   path,
			Found:  ok,
		})
	}
	return reports
}

func printSourcesTable(cmd *cobra.Command, reports []sourceReport) {
	table := tablewriter.NewTable(cmd.OutOrStdout(),
		tablewriter.WithHeader([]string{"#", "Source", "Result"}),
		tablewriter.WithAlignment(tw.MakeAlign(3, tw.AlignLeft)),
		tablewriter.WithSymbols(tw.NewSymbols(tw.StyleLight)),
	)

	winner := 0
	for _, rep := range reports {
		result := ui.CrossMark
		if rep.Found {
			result = fmt.Sprintf("%s %s", ui.CheckMark, rep.Path)
			if winner == 0 {
				winner = rep.Order
			}
		}
		table.Append(strconv.Itoa(rep.Order), rep.Source, result)
	}

	table.Render()

	if winner == 0 {
		ui.PrintWarning("no source yields an executable")
		return
	}
	ui.PrintInfo("launch would use source #%d", winner)
}
