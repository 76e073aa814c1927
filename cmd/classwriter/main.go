package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "classwriter",
		Short: "A JVMS §4.7 attribute reader and writer",
	}

	rootCmd.AddCommand(newDumpCmd())
	rootCmd.AddCommand(newRoundtripCmd())
	rootCmd.AddCommand(newBuildCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
