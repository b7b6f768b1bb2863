package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"lumbertrace/internal/app"
	"lumbertrace/internal/config"
	"lumbertrace/pkg/logger"
)

// --- Global Command Variables ---
var (
	configPath string
	outputPath string
	logLevel   string

	rootCmd = &cobra.Command{
		Use:           "tracectl",
		Short:         "Inspect lumber traceability data",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	bomCmd = &cobra.Command{
		Use:   "bom [material id]",
		Short: "Print the flattened bill of materials grouped by type",
		Args:  cobra.ExactArgs(1),
		RunE:  withApp(runBOM),
	}

	reportCmd = &cobra.Command{
		Use:   "report [material id]",
		Short: "Print the traceability report, or write it as PDF with --out",
		Args:  cobra.ExactArgs(1),
		RunE:  withApp(runReport),
	}

	labelCmd = &cobra.Command{
		Use:   "label [material id]",
		Short: "Render the QR label of a material as PNG",
		Args:  cobra.ExactArgs(1),
		RunE:  withApp(runLabel),
	}

	exportCmd = &cobra.Command{
		Use:   "export",
		Short: "Write a compressed backup of all suppliers and materials",
		Args:  cobra.NoArgs,
		RunE:  withApp(runExport),
	}

	importCmd = &cobra.Command{
		Use:   "import [backup file]",
		Short: "Restore suppliers and materials from a backup",
		Args:  cobra.ExactArgs(1),
		RunE:  withApp(runImport),
	}

	hashPasswordCmd = &cobra.Command{
		Use:   "hash-password [password]",
		Short: "Print the bcrypt hash to put in auth.password_hash",
		Args:  cobra.ExactArgs(1),
		RunE:  runHashPassword,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", os.Getenv("LUMBERTRACE_CONFIG"), "path to config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level")

	reportCmd.Flags().StringVarP(&outputPath, "out", "o", "", "write the report as PDF to this path")
	labelCmd.Flags().StringVarP(&outputPath, "out", "o", "", "PNG output path (default <id>.png)")
	exportCmd.Flags().StringVarP(&outputPath, "out", "o", "", "backup output path (default timestamped name)")

	rootCmd.AddCommand(bomCmd, reportCmd, labelCmd, exportCmd, importCmd, hashPasswordCmd)
}

type appRunner func(ctx context.Context, a *app.App, cmd *cobra.Command, args []string) error

// withApp opens the configured store around fn.
func withApp(fn appRunner) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}

		log, err := logger.New(logger.Config{Level: logLevel, Development: true})
		if err != nil {
			return fmt.Errorf("create logger: %w", err)
		}

		ctx := logger.WithLogger(cmd.Context(), log)
		a, err := app.New(ctx, cfg, log)
		if err != nil {
			return err
		}
		defer a.Close()

		return fn(ctx, a, cmd, args)
	}
}
