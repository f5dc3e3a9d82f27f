// Package cli implements the datalist command-line client.
package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"datalist/pkg/client"
)

var (
	version = "dev"
	commit  = "none"
)

const defaultHost = "http://localhost:3264"

// rootOptions carries the resolved persistent flags to subcommands.
type rootOptions struct {
	host    string
	output  string
	profile string
	verbose bool
	limit   int // default page size from the active profile, 0 if unset

	client *client.Client
	logger *slog.Logger
}

// Execute runs the CLI.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rootCmd := newRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		output, _ := rootCmd.PersistentFlags().GetString("output")
		if output == "json" {
			errObj := map[string]interface{}{
				"error": err.Error(),
			}
			var statusErr *client.StatusError
			if errors.As(err, &statusErr) {
				errObj["http_status"] = statusErr.HTTPStatus
			}
			_ = PrintJSON(os.Stdout, errObj)
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{client: client.NewClient(defaultHost)}

	rootCmd := &cobra.Command{
		Use:           "datalist",
		Short:         "Browse a paginated dataset",
		Long:          "Command-line client for a datalist listing server: page, sort and filter its records.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Config file is optional
			cfg, err := LoadUserConfig()
			if err != nil {
				cfg = defaultUserConfig()
			}
			p, err := cfg.ActiveProfile(opts.profile)
			if err != nil {
				return err
			}

			// Apply precedence: flag > env > profile > default
			if !cmd.Flags().Changed("host") {
				if v := os.Getenv("DATALIST_HOST"); v != "" {
					opts.host = v
				} else if p.Host != "" {
					opts.host = p.Host
				}
			}
			if !cmd.Flags().Changed("output") {
				if v := os.Getenv("DATALIST_OUTPUT"); v != "" {
					opts.output = v
				} else if p.Output != "" {
					opts.output = p.Output
				}
				_ = cmd.Root().PersistentFlags().Set("output", opts.output)
			}
			opts.limit = p.Limit

			if err := validateOutputFormat(opts.output); err != nil {
				return err
			}

			level := slog.LevelError
			if opts.verbose {
				level = slog.LevelDebug
			}
			opts.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

			*opts.client = *client.NewClient(opts.host)
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.host, "host", defaultHost, "Listing server URL")
	rootCmd.PersistentFlags().StringVarP(&opts.output, "output", "o", "table", "Output format (table, json)")
	rootCmd.PersistentFlags().StringVarP(&opts.profile, "profile", "p", "", "Config profile to use")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log requests and discarded responses to stderr")

	rootCmd.AddCommand(newListCmd(opts))
	rootCmd.AddCommand(newBrowseCmd(opts))
	rootCmd.AddCommand(newColumnsCmd(opts))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newCompletionCmd())

	return rootCmd
}

func newCompletionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			default:
				return fmt.Errorf("unsupported shell: %s", args[0])
			}
		},
	}
	return cmd
}

// outputWidth is the table width for cmd's output stream.
func outputWidth(cmd *cobra.Command) int {
	return terminalWidth(cmd.OutOrStdout())
}
