// Package cmd holds the command-line entry points.
package cmd

import (
	"fmt"
	"log/slog"
	"net/http"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"seatplan-viewer-cli/config"
	"seatplan-viewer-cli/logging"
	"seatplan-viewer-cli/model"
	"seatplan-viewer-cli/service"
	"seatplan-viewer-cli/tui"
)

// BuildInfo is stamped at link time.
type BuildInfo struct {
	Version string
	Commit  string
}

type rootOptions struct {
	build   BuildInfo
	cfgFile string

	cfg      *config.Config
	logger   *slog.Logger
	closeLog func() error
}

// NewRootCmd creates the root command. Without a subcommand it starts the
// interactive viewer.
func NewRootCmd(build BuildInfo) *cobra.Command {
	opts := &rootOptions{build: build}

	rootCmd := &cobra.Command{
		Use:   "seatplan",
		Short: "Browse flight seat plans from the terminal",
		Long: `seatplan looks up the seat plan of a flight and shows it as a grid,
with available and unavailable seats, prices and seat types.`,
		Version:           build.Version,
		PersistentPreRunE: opts.setup,
		PersistentPostRunE: func(*cobra.Command, []string) error {
			if opts.closeLog != nil {
				return opts.closeLog()
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			in, err := searchFlags(cmd)
			if err != nil {
				return err
			}
			opts.logger.Info("starting viewer", "config", opts.cfg.FileUsed)

			program := tea.NewProgram(tui.New(tui.Options{
				Client:          opts.client(),
				Logger:          opts.logger,
				Initial:         in,
				ShowSeatNumbers: opts.cfg.ShowSeatNumbers,
			}), tea.WithAltScreen(), tea.WithContext(cmd.Context()))
			_, err = program.Run()
			return err
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetVersionTemplate(versionLine(build) + "\n")

	rootCmd.PersistentFlags().StringVar(&opts.cfgFile, "config", "", "config file (default: ./seatplan.yaml)")
	rootCmd.PersistentFlags().String("base-url", "", "seat plan API base URL")
	rootCmd.PersistentFlags().String("log-file", "", "append logs to this file")
	rootCmd.PersistentFlags().String("log-level", "", "log level (debug|info|warn|error)")
	addSearchFlags(rootCmd)

	rootCmd.AddCommand(newShowCmd(opts), newVersionCmd(build))
	return rootCmd
}

// Execute runs the root command.
func Execute(build BuildInfo) error {
	return NewRootCmd(build).Execute()
}

func (o *rootOptions) setup(cmd *cobra.Command, _ []string) error {
	switch cmd.Name() {
	case "help", "version", "completion", "__complete":
		return nil
	}

	cfg, err := config.Load(o.cfgFile, cmd.Flags())
	if err != nil {
		return err
	}
	o.cfg = cfg

	logOpts := logging.Options{Level: cfg.LogLevel, File: cfg.LogFile}
	if cmd.Name() == "show" && cfg.LogFile == "" {
		logOpts.Writer = cmd.ErrOrStderr()
		logOpts.Level = "warn"
	}
	logger, closeLog, err := logging.New(logOpts)
	if err != nil {
		return err
	}
	o.logger = logger
	o.closeLog = closeLog
	return nil
}

func (o *rootOptions) client() *service.Client {
	return service.NewClient(
		&http.Client{Timeout: o.cfg.HTTPTimeout},
		service.WithBaseURL(o.cfg.BaseURL),
		service.WithUserAgent(o.cfg.UserAgent),
		service.WithLogger(o.logger),
	)
}

func addSearchFlags(cmd *cobra.Command) {
	cmd.Flags().String("departure", "", "departure airport code (e.g. TLS)")
	cmd.Flags().String("arrival", "", "arrival airport code (e.g. ORY)")
	cmd.Flags().String("flight", "", "flight number (e.g. 1234)")
	cmd.Flags().String("date", "", "departure date (YYYY-MM-DD)")
}

func searchFlags(cmd *cobra.Command) (model.SearchInput, error) {
	var in model.SearchInput
	for name, dst := range map[string]*string{
		"departure": &in.Departure,
		"arrival":   &in.Arrival,
		"flight":    &in.FlightNumber,
		"date":      &in.Date,
	} {
		v, err := cmd.Flags().GetString(name)
		if err != nil {
			return model.SearchInput{}, fmt.Errorf("read --%s: %w", name, err)
		}
		*dst = v
	}
	return in, nil
}
