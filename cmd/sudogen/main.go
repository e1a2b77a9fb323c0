package main

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	cfgPath  string
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:   "sudogen",
	Short: "Configurable-size sudoku engine",
	Long: `sudogen generates, serves, and solves sudoku puzzles in sizes
4x4, 6x6, and 9x9. Run "sudogen serve" for the HTTP and websocket API,
or use "generate" and "solve" directly from the command line.`,
	PersistentPreRun: func(*cobra.Command, []string) {
		configureLogging(logLevel)
	},
}

func configureLogging(level string) {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	switch strings.ToLower(level) {
	case "debug":
		logrus.SetLevel(logrus.DebugLevel)
	case "warn":
		logrus.SetLevel(logrus.WarnLevel)
	case "error":
		logrus.SetLevel(logrus.ErrorLevel)
	default:
		logrus.SetLevel(logrus.InfoLevel)
	}
}

func main() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to YAML config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "debug|info|warn|error")
	rootCmd.AddCommand(serveCmd, generateCmd, solveCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
