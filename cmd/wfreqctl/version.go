package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arrowcount/wfreq"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version and build limits",
	Run: func(cmd *cobra.Command, args []string) {
		info := wfreq.BuildInfo()
		if jsonOut {
			_ = printJSON(info)
			return
		}
		fmt.Printf("wfreqctl %s\n", info.VersionNumber)
		fmt.Printf("  max token length ceiling: %d\n", info.MaxTokenCeiling)
		fmt.Printf("  min initial capacity:     %d\n", info.MinInitCapacity)
		fmt.Printf("  min block size:           %d\n", info.MinBlockSize)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
