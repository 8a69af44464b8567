package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/diatonic/internal/domain"
	"github.com/aalvaropc/diatonic/internal/interval"
)

type intervalRow struct {
	Name      string `json:"name"`
	Quality   string `json:"quality"`
	Degree    int    `json:"degree"`
	Semitones int    `json:"semitones"`
}

func intervalsCmd() *cobra.Command {
	var format string

	c := &cobra.Command{
		Use:   "intervals",
		Short: "List the supported interval specifiers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return printIntervals(cmd.OutOrStdout(), format)
		},
	}

	c.Flags().StringVar(&format, "format", domain.FormatPretty, "Output format: pretty|json")
	return c
}

func printIntervals(w io.Writer, format string) error {
	specs := interval.Specifiers()
	rows := make([]intervalRow, 0, len(specs))
	for _, s := range specs {
		rows = append(rows, intervalRow{
			Name:      s.Name,
			Quality:   s.Quality.String(),
			Degree:    s.Degree,
			Semitones: s.Semitones,
		})
	}

	switch format {
	case domain.FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	case domain.FormatPretty, "":
		fmt.Fprintf(w, "%-5s %-8s %-6s %s\n", "NAME", "QUALITY", "DEGREE", "SEMITONES")
		for _, r := range rows {
			fmt.Fprintf(w, "%-5s %-8s %-6d %d\n", r.Name, r.Quality, r.Degree, r.Semitones)
		}
		return nil
	default:
		return fmt.Errorf("unsupported format %q (expected pretty|json)", format)
	}
}
