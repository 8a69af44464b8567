package cli

import (
	"github.com/spf13/cobra"

	"github.com/aalvaropc/diatonic/internal/domain"
	"github.com/aalvaropc/diatonic/internal/infra/logger"
	"github.com/aalvaropc/diatonic/internal/interval"
	"github.com/aalvaropc/diatonic/internal/usecase"
)

func constructCmd() *cobra.Command {
	return computeCmd(
		domain.OpConstruct,
		"construct <interval> <note> [asc|desc]",
		"Build the note an interval away from a start note",
		"  diatonic construct M3 C        # E\n  diatonic construct P5 D desc   # G",
	)
}

func identifyCmd() *cobra.Command {
	return computeCmd(
		domain.OpIdentify,
		"identify <note> <note> [asc|desc]",
		"Name the interval between two notes",
		"  diatonic identify C G          # P5\n  diatonic identify C Eb --format json",
	)
}

func computeCmd(op domain.Operation, use, short, example string) *cobra.Command {
	var workspace string
	var format string
	var sel string

	c := &cobra.Command{
		Use:     use,
		Short:   short,
		Example: example,
		// The engine validates the argument count.
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadSettings(workspace)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("format") {
				format = cfg.Defaults.Format
			}

			uc := usecase.NewCompute(interval.Default(), cfg.Defaults.Direction, logger.L())
			a, err := uc.Execute(op, args)
			if err != nil {
				return err
			}

			return printAnswer(cmd.OutOrStdout(), a, format, sel)
		},
	}

	c.Flags().StringVarP(&workspace, "workspace", "w", "", "Workspace root (optional; autodetected if omitted)")
	c.Flags().StringVar(&format, "format", domain.FormatPretty, "Output format: pretty|json")
	c.Flags().StringVar(&sel, "select", "", "Print only the value at this JSONPath of the answer (e.g. $.semitones)")
	return c
}
