package commands

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/battlesnakeio/arena/version"
)

var rootCmd = &cobra.Command{
	Use:     "arena",
	Short:   "arena runs a multiplayer snake arena",
	Version: version.Version,
	PersistentPreRunE: func(c *cobra.Command, args []string) error {
		return setupLogging(logLevel, logFormat)
	},
	Run: func(c *cobra.Command, args []string) {
		prometheus()
		serverCmd.Run(c, args)
	},
}

var (
	logLevel  = "info"
	logFormat = "text"
)

// Execute runs the root command
func Execute() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", logLevel, "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", logFormat, "log format (text, json)")
	rootCmd.Flags().AddFlagSet(serverCmd.Flags())

	rootCmd.AddCommand(serverCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(loadTestCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func setupLogging(level, format string) error {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return errors.Wrapf(err, "invalid log level %q", level)
	}
	log.SetLevel(lvl)

	switch format {
	case "text":
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	case "json":
		log.SetFormatter(&log.JSONFormatter{})
	default:
		return errors.Errorf("invalid log format %q", format)
	}
	return nil
}
