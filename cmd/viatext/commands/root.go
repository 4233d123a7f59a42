// Package commands implements the viatext host tool: it builds validated
// command frames for a node, renders them as hex for whatever serial shim
// carries them, and decodes response frames into readable summaries.
//
// The tool contains no protocol logic of its own; everything is delegated to
// the command and frame packages.
package commands

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/AltGrid/viatext-core-sub000/logger"
)

// CLIConfig holds the host tool configuration bound from flags.
type CLIConfig struct {
	Seq      uint8  `mapstructure:"seq"`
	LogLevel string `mapstructure:"log"`
}

// NewDefaultCLIConfig returns the default host tool configuration.
func NewDefaultCLIConfig() *CLIConfig {
	return &CLIConfig{
		Seq:      1,
		LogLevel: "info",
	}
}

var config = NewDefaultCLIConfig()

func init() {
	RootCmd.PersistentFlags().Uint8("seq", config.Seq, "request sequence number")
	RootCmd.PersistentFlags().String("log", config.LogLevel, "debug, info, warn, error")

	RootCmd.AddCommand(getCmd, setCmd, pingCmd, idCmd, decodeCmd)
}

// RootCmd is the root command for the viatext host tool.
var RootCmd = &cobra.Command{
	Use:               "viatext",
	Short:             "Build and decode ViaText node command frames",
	PersistentPreRunE: loadConfig,
}

func loadConfig(cmd *cobra.Command, args []string) error {
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return err
	}
	if err := viper.Unmarshal(config); err != nil {
		return err
	}

	logger.SetLevel(logLevel(config.LogLevel))

	return nil
}

func logLevel(l string) logger.Level {
	switch l {
	case "debug":
		return logger.DebugLevel
	case "info":
		return logger.InfoLevel
	case "warn":
		return logger.WarnLevel
	case "error":
		return logger.ErrorLevel
	default:
		return logger.InfoLevel
	}
}
