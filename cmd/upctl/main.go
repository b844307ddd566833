package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/Sid16p/Task-7---Fetch-API/internal/app/config"
	"github.com/Sid16p/Task-7---Fetch-API/internal/dev"
	"github.com/Sid16p/Task-7---Fetch-API/internal/logging"
	"github.com/Sid16p/Task-7---Fetch-API/internal/panel"
	"github.com/Sid16p/Task-7---Fetch-API/internal/scaffold"
	"github.com/Sid16p/Task-7---Fetch-API/internal/telemetry"
	"github.com/Sid16p/Task-7---Fetch-API/internal/users"
	"github.com/Sid16p/Task-7---Fetch-API/internal/view"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "upctl",
		Short:         "User panel CLI - fetch and browse the user directory",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringP("config", "c", "", "Path to config file")

	root.AddCommand(newInitCmd(), newFetchCmd(), newDevCmd(), newVersionCmd())
	return root
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	if url, _ := cmd.Flags().GetString("url"); url != "" {
		cfg.Source.URL = url
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init [dir]",
		Short: "Write a starter userpanel.yaml, .env.example and public dir",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			port, _ := cmd.Flags().GetInt("port")
			url, _ := cmd.Flags().GetString("url")
			title, _ := cmd.Flags().GetString("title")
			force, _ := cmd.Flags().GetBool("force")

			written, err := scaffold.Init(scaffold.Options{
				OutputDir: dir,
				Port:      port,
				SourceURL: url,
				Title:     title,
				Force:     force,
			})
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				return err
			}

			out := cmd.OutOrStdout()
			for _, path := range written {
				fmt.Fprintf(out, "  created %s\n", path)
			}
			fmt.Fprintln(out, "\nNext steps:")
			fmt.Fprintln(out, "  upctl dev")
			return nil
		},
	}
	cmd.Flags().IntP("port", "p", 3000, "Port written to the config")
	cmd.Flags().String("url", "", "Source URL written to the config")
	cmd.Flags().String("title", "", "Panel title written to the config")
	cmd.Flags().Bool("force", false, "Overwrite existing files")
	return cmd
}

func newFetchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch the user list once and print it",
		Long: `Run one fetch cycle against the configured source and print the result.

  upctl fetch                 Print users as cards
  upctl fetch -f table        Print a table
  upctl fetch -f json         Print raw records as JSON
  upctl fetch --url URL       Override the source URL`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
				return err
			}

			formatName, _ := cmd.Flags().GetString("format")
			format, err := view.ParseTextFormat(formatName)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				return err
			}

			return runFetch(cmd.Context(), cfg, view.NewTextView(cmd.OutOrStdout(), cmd.ErrOrStderr(), format))
		},
	}
	cmd.Flags().StringP("format", "f", "cards", "Output format (cards, table, json)")
	cmd.Flags().String("url", "", "Override the source URL")
	return cmd
}

// runFetch drives one cycle through v. It returns an error when the cycle
// failed so the process exits non-zero; the message was already shown.
func runFetch(ctx context.Context, cfg *config.Config, v panel.View) error {
	if ctx == nil {
		ctx = context.Background()
	}

	slog.SetDefault(logging.New(config.LoggingConfig{Level: "error", Format: "text"}, os.Stderr))

	shutdown, err := telemetry.Setup(ctx, cfg.Telemetry)
	if err != nil {
		return fmt.Errorf("setup telemetry: %w", err)
	}
	defer shutdown(context.WithoutCancel(ctx))

	p := panel.New(users.NewClient(cfg.Source.URL), v, slog.Default())
	p.FetchAll(ctx)

	if msg := p.State().LastError; msg != "" {
		return fmt.Errorf("fetch failed: %s", msg)
	}
	return nil
}

func newDevCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dev",
		Short: "Start the server with live reload",
		Long: `Start the user panel server in development mode:
- Panel updates pushed to open tabs over a websocket
- Browser reload when files in the public dir or the config file change`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
				return err
			}

			if port, _ := cmd.Flags().GetInt("port"); cmd.Flags().Changed("port") {
				cfg.App.Port = port
			}
			cfg.Logging.Format = "text"
			cfg.Logging.Level = "debug"
			slog.SetDefault(logging.New(cfg.Logging, os.Stdout))

			if err := dev.RunDev(cfg, version); err != nil {
				fmt.Fprintf(os.Stderr, "Dev server error: %v\n", err)
				return err
			}
			return nil
		},
	}
	cmd.Flags().IntP("port", "p", 3000, "Port to run dev server on")
	cmd.Flags().String("url", "", "Override the source URL")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "upctl v%s\n", version)
			fmt.Fprintf(out, "  Commit: %s\n", commit)
			fmt.Fprintf(out, "  Built:  %s\n", date)
		},
	}
}
