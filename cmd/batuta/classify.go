package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/batuta-io/batuta/pkg/classifier"
)

var classifyCmd = &cobra.Command{
	Use:   "classify <message>",
	Short: "Show which workflow a message routes to, without executing it",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		message := strings.Join(args, " ")
		fmt.Println(classifier.New().Classify(message, nil))
	},
}

func init() {
	rootCmd.AddCommand(classifyCmd)
}
