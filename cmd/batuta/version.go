package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/batuta-io/batuta"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("batuta %s\n", batuta.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
