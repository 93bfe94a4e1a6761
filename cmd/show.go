package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"
	"seatplan-viewer-cli/model"
	"seatplan-viewer-cli/seatgrid"
	"seatplan-viewer-cli/service"
)

// ErrReported means the failure was already printed for the user.
var ErrReported = errors.New("error already reported")

const (
	formatGrid  = "grid"
	formatTable = "table"
	formatJSON  = "json"
)

func newShowCmd(opts *rootOptions) *cobra.Command {
	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the seat plan of one flight",
		Long: `Look up one flight and print its seat plan.

The grid format mirrors the interactive viewer. The table format lists every
seat with its status, type and price. The json format prints the plan as
returned by the API.`,
		Example: `  seatplan show --departure TLS --arrival ORY --flight 1234 --date 2025-06-01
  seatplan show --departure TLS --arrival ORY --flight 1234 --date 2025-06-01 --format table`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, _ := cmd.Flags().GetString("format")
			switch format {
			case formatGrid, formatTable, formatJSON:
			default:
				return fmt.Errorf("unknown format %q (want grid, table or json)", format)
			}

			in, err := searchFlags(cmd)
			if err != nil {
				return err
			}
			numbers := opts.cfg.ShowSeatNumbers
			if cmd.Flags().Changed("numbers") {
				numbers, _ = cmd.Flags().GetBool("numbers")
			}

			plan, err := opts.client().GetSeatPlan(cmd.Context(), in)
			if err != nil {
				opts.logger.Warn("search failed", "error", err)
				fmt.Fprintln(cmd.ErrOrStderr(), "Error! "+service.ErrorMessage(err))
				return ErrReported
			}

			out := cmd.OutOrStdout()
			if !isTerminal(out) {
				lipgloss.SetColorProfile(termenv.Ascii)
			}
			return writePlan(out, format, in, plan, numbers)
		},
	}

	addSearchFlags(showCmd)
	showCmd.Flags().String("format", formatGrid, "output format (grid|table|json)")
	showCmd.Flags().Bool("numbers", false, "show seat numbers instead of letters")
	_ = showCmd.RegisterFlagCompletionFunc("format", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{formatGrid, formatTable, formatJSON}, cobra.ShellCompDirectiveNoFileComp
	})
	return showCmd
}

func writePlan(w io.Writer, format string, in model.SearchInput, plan model.SeatPlan, numbers bool) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(plan)
	case formatTable:
		seatgrid.Table(w, plan)
		return nil
	default:
		title := fmt.Sprintf("Seat plan - Flight %s (%s)", in.Trimmed().FlightNumber, plan.AircraftType)
		grid := seatgrid.Draw(seatgrid.Render(plan), seatgrid.DrawOptions{ShowSeatNumbers: numbers})
		_, err := fmt.Fprintf(w, "%s\n\n%s\n", lipgloss.NewStyle().Bold(true).Render(title), grid)
		return err
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
