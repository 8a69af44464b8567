package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/diatonic/internal/domain"
	"github.com/aalvaropc/diatonic/internal/infra/logger"
	"github.com/aalvaropc/diatonic/internal/usecase"
)

func sheetCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "sheet",
		Short: "Run or validate a query sheet",
	}

	c.AddCommand(sheetRunCmd(), sheetValidateCmd())
	return c
}

func sheetRunCmd() *cobra.Command {
	var workspace string
	var vars map[string]string
	var noSave bool
	var format string

	c := &cobra.Command{
		Use:   "run <sheet>",
		Short: "Run every query of a sheet and check its expectations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := loadWorkspace(workspace)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("format") {
				format = ws.cfg.Defaults.Format
			}

			sheetPath, err := resolveSheetPath(ws, args[0])
			if err != nil {
				return err
			}

			var store = ws.store
			if noSave {
				store = nil
			}

			uc := usecase.NewRunSheet(ws.sheets, ws.engine, store,
				usecase.WithRunLogger(logger.L()),
				usecase.WithDefaultDirection(ws.cfg.Defaults.Direction),
			)

			out := cmd.OutOrStdout()
			run, runID, err := uc.Execute(cmd.Context(), sheetPath, domain.Vars(vars))
			if err != nil {
				// Print what ran before the failure.
				_ = printRun(out, run, runID, format)
				return err
			}

			if err := printRun(out, run, runID, format); err != nil {
				return err
			}

			fails := countFailures(run)
			if fails > 0 {
				return fmt.Errorf("sheet failed (%d failed quer%s)", fails, plural(fails, "y", "ies"))
			}
			return nil
		},
	}

	c.Flags().StringVarP(&workspace, "workspace", "w", "", "Workspace root (optional; autodetected if omitted)")
	c.Flags().StringToStringVar(&vars, "var", nil, "Override a sheet variable (repeatable): --var root=D")
	c.Flags().BoolVar(&noSave, "no-save", false, "Do not save run artifact under runs/")
	c.Flags().StringVar(&format, "format", domain.FormatPretty, "Output format: pretty|json")
	return c
}

func sheetValidateCmd() *cobra.Command {
	var workspace string
	var vars map[string]string

	c := &cobra.Command{
		Use:   "validate <sheet>",
		Short: "Check a sheet without running it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := loadWorkspace(workspace)
			if err != nil {
				return err
			}

			sheetPath, err := resolveSheetPath(ws, args[0])
			if err != nil {
				return err
			}

			uc := usecase.NewValidateSheet(ws.sheets, ws.engine)
			if err := uc.Execute(cmd.Context(), sheetPath, domain.Vars(vars)); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "OK")
			return nil
		},
	}

	c.Flags().StringVarP(&workspace, "workspace", "w", "", "Workspace root (optional; autodetected if omitted)")
	c.Flags().StringToStringVar(&vars, "var", nil, "Override a sheet variable (repeatable): --var root=D")
	return c
}

func printRun(w io.Writer, run domain.RunResult, runID string, format string) error {
	switch format {
	case domain.FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		payload := map[string]any{
			"run_id": runID,
			"run":    run,
		}
		return enc.Encode(payload)
	case domain.FormatPretty, "":
		printPrettyRun(w, run, runID)
		return nil
	default:
		return fmt.Errorf("unsupported format %q (expected pretty|json)", format)
	}
}

func printPrettyRun(w io.Writer, run domain.RunResult, runID string) {
	total := run.EndedAt.Sub(run.StartedAt)
	if run.StartedAt.IsZero() || run.EndedAt.IsZero() {
		total = 0
	}

	fmt.Fprintf(w, "Sheet:    %s\n", run.SheetName)
	fmt.Fprintf(w, "Started:  %s\n", run.StartedAt.Format(time.RFC3339))
	fmt.Fprintf(w, "Duration: %s\n", total)
	if runID != "" {
		fmt.Fprintf(w, "Run ID:   %s\n", runID)
	}
	fmt.Fprintln(w)

	for _, r := range run.Results {
		status := "OK"
		if r.Failed() {
			status = "FAIL"
		}

		fmt.Fprintf(w, "- [%s] %s (%s %s)\n", status, r.Name, r.Op, strings.Join(r.Args, " "))

		if r.Error != nil {
			fmt.Fprintf(w, "  error: %s (%s)\n", r.Error.Message, r.Error.Kind)
		} else if r.Answer != nil {
			fmt.Fprintf(w, "  result: %s\n", r.Answer.Result)
		}

		if len(r.Assertions) > 0 {
			pass, fail := countAssertionPassFail(r.Assertions)
			fmt.Fprintf(w, "  assertions: %d pass / %d fail\n", pass, fail)
			for _, a := range r.Assertions {
				mark := "✓"
				if !a.Passed {
					mark = "✗"
				}
				fmt.Fprintf(w, "    %s %s: %s\n", mark, a.Name, a.Message)
			}
		}

		if len(r.Extracts) > 0 {
			ok, bad := countExtractPassFail(r.Extracts)
			fmt.Fprintf(w, "  extracts: %d ok / %d fail\n", ok, bad)
			for _, e := range r.Extracts {
				mark := "✓"
				if !e.Success {
					mark = "✗"
				}
				fmt.Fprintf(w, "    %s %s: %s\n", mark, e.Name, e.Message)
			}
		}

		if len(r.Extracted) > 0 {
			keys := make([]string, 0, len(r.Extracted))
			for k := range r.Extracted {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(w, "  extracted vars:\n")
			for _, k := range keys {
				fmt.Fprintf(w, "    - %s = %s\n", k, r.Extracted[k])
			}
		}

		fmt.Fprintln(w)
	}
}

func countFailures(run domain.RunResult) int {
	n := 0
	for _, r := range run.Results {
		if r.Failed() {
			n++
		}
	}
	return n
}

func countAssertionPassFail(in []domain.AssertionResult) (pass int, fail int) {
	for _, a := range in {
		if a.Passed {
			pass++
		} else {
			fail++
		}
	}
	return pass, fail
}

func countExtractPassFail(in []domain.ExtractResult) (ok int, bad int) {
	for _, e := range in {
		if e.Success {
			ok++
		} else {
			bad++
		}
	}
	return ok, bad
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
