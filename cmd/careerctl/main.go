package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"pilot-career-service/pkg/logger"
)

var logLevel string

var rootCmd = &cobra.Command{
	Use:          "careerctl",
	Short:        "Generate pilot career schedules from a route catalog",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
}

func newLogger() *logger.ZapLogger {
	return logger.NewLoggerWithLevel(logLevel)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
