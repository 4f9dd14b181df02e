package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	baseURL string
	timeout time.Duration
)

var rootCmd = &cobra.Command{
	Use:           "agent-test",
	Short:         "Smoke tests for a running report agent",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		printHeader("NutriGen Report Agent - Test Suite")
		fmt.Printf("%sBase URL: %s%s\n\n", colorCyan, baseURL, colorReset)
	},
}

func check(fn func(*TestClient) bool) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if !fn(NewTestClient(baseURL, timeout)) {
			return fmt.Errorf("%s failed", cmd.Name())
		}
		return nil
	}
}

var allCmd = &cobra.Command{
	Use:   "all",
	Short: "Run every check",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !NewTestClient(baseURL, timeout).runAllTests() {
			return fmt.Errorf("some checks failed")
		}
		return nil
	},
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check /health",
	RunE:  check((*TestClient).testHealthCheck),
}

var cardCmd = &cobra.Command{
	Use:   "agent-card",
	Short: "Check the agent card",
	RunE:  check((*TestClient).testAgentCard),
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate a report for the sample submission over REST",
	RunE:  check((*TestClient).testReport),
}

var a2aCmd = &cobra.Command{
	Use:   "a2a",
	Short: "Generate a report for the sample submission over A2A",
	RunE:  check((*TestClient).testA2AReport),
}

var emptyCmd = &cobra.Command{
	Use:   "empty",
	Short: "Check that an empty submission is rejected",
	RunE:  check((*TestClient).testEmptyInput),
}

var concurrency int

var concurrentCmd = &cobra.Command{
	Use:   "concurrent",
	Short: "Send several submissions at once and check results are not mixed up",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !NewTestClient(baseURL, timeout).testConcurrent(concurrency) {
			return fmt.Errorf("concurrent check failed")
		}
		return nil
	},
}

var inputFile string

var customCmd = &cobra.Command{
	Use:   "custom",
	Short: "Generate a report for a submission read from a file",
	RunE: func(cmd *cobra.Command, args []string) error {
		if inputFile == "" {
			return fmt.Errorf("submission file is required, use --file")
		}
		data, err := os.ReadFile(inputFile)
		if err != nil {
			return fmt.Errorf("failed to read submission: %w", err)
		}
		if !NewTestClient(baseURL, timeout).testCustomReport(string(data)) {
			return fmt.Errorf("custom report failed")
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the agent")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 120*time.Second, "HTTP client timeout")
	customCmd.Flags().StringVarP(&inputFile, "file", "f", "", "File with one answer per line")
	concurrentCmd.Flags().IntVarP(&concurrency, "count", "n", 3, "Number of simultaneous submissions")

	rootCmd.AddCommand(allCmd, healthCmd, cardCmd, reportCmd, a2aCmd, emptyCmd, concurrentCmd, customCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		printError(err.Error())
		os.Exit(1)
	}
}
