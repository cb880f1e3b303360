package commands

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/arloliu/geddes"
)

// Version is the CLI version reported by --version.
var Version = "0.1.0"

// app carries the state shared by every command of one invocation.
type app struct {
	v      *viper.Viper
	logger *logrus.Logger
}

// NewRootCmd builds the geddes command tree with its own configuration registry.
func NewRootCmd() *cobra.Command {
	a := &app{v: viper.New(), logger: logrus.New()}

	rootCmd := &cobra.Command{
		Use:   "geddes",
		Short: "Read powder diffraction patterns",
		Long: `geddes decodes powder diffraction scans from XY, XYE, CSV, RASX, XRDML
and RAW files (GSAS text or Bruker binary) into x/y/e columns. Files may be
wrapped in gzip, zstd, lz4 or s2 compression.`,
		Version:      Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			a.logger.SetOutput(cmd.ErrOrStderr())
			if err := LoadConfig(a.v); err != nil {
				return err
			}

			return SetupLogging(a.v, a.logger)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "Configuration file path")
	flags.String("log-level", "warn", "Logging level (debug, info, warn, error)")
	flags.String("log-format", "text", "Log format (text, json)")
	flags.Int64("max-size", geddes.DefaultMaxInputSize, "Maximum input size in bytes, compressed payloads included")
	flags.String("raw-order", "gsas,bruker", "Decoder order for .raw files")

	_ = a.v.BindPFlag("config", flags.Lookup("config"))
	_ = a.v.BindPFlag("log_level", flags.Lookup("log-level"))
	_ = a.v.BindPFlag("log_format", flags.Lookup("log-format"))
	_ = a.v.BindPFlag("max_size", flags.Lookup("max-size"))
	_ = a.v.BindPFlag("raw_order", flags.Lookup("raw-order"))

	rootCmd.AddCommand(
		newReadCmd(a),
		newInspectCmd(a),
		newFormatsCmd(),
	)

	return rootCmd
}
