// Package commands implements the fsblheader command line.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/moffa90/go-fsbl/fsbl"
	"github.com/moffa90/go-fsbl/internal/logger"
	"github.com/moffa90/go-fsbl/stamper"
)

var (
	// Version information injected at build time.
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Execute builds the command tree and runs it against os.Args.
// This is called by main.main().
func Execute() error {
	return NewRootCmd().Execute()
}

// NewRootCmd returns a fresh root command. Each call has its own flag state.
func NewRootCmd() *cobra.Command {
	var (
		format    string
		logLevel  string
		logFormat string
	)

	cmd := &cobra.Command{
		Use:   "fsblheader <binary_file> <output_file>",
		Short: "Add an STM32MP FSBL boot header to a binary file",
		Long: `fsblheader prepends the STM32MP boot ROM header to a raw first-stage
boot loader image. The first 256 bytes of the input are reserved for the
header and are replaced; the rest is copied verbatim after the new header.

Inputs that already start with the "STM2" magic are rejected.`,
		Example: `  fsblheader u-boot-spl.bin u-boot-spl.stm32
  fsblheader --format mp2 tf-a.bin tf-a.stm32`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return logger.Init(logger.Config{
				Level:  logLevel,
				Format: logFormat,
				Output: "stderr",
			})
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := fsbl.ParseFormat(format)
			if err != nil {
				return err
			}
			return runStamp(f, args[0], args[1])
		},
	}

	cmd.Flags().StringVar(&format, "format", "mp1", "header format: mp1 or mp2")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")
	cmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log format: text or json")

	cmd.AddCommand(newInspectCmd())
	cmd.AddCommand(newVersionCmd())
	cmd.CompletionOptions.DisableDefaultCmd = true

	return cmd
}

func runStamp(format fsbl.Format, input, output string) error {
	s := stamper.New(
		stamper.WithFormat(format),
		stamper.WithLogger(logger.Adapter{}),
		stamper.WithProgressCallback(func(p stamper.Progress) {
			logger.Debug("phase", "name", p.Phase, "bytes", p.Bytes, "elapsed", p.ElapsedTime)
		}),
	)

	_, err := s.Stamp(input, output)
	return err
}
