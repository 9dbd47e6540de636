package main

import (
	"fmt"
	"os"
	"strconv"

	"golang.org/x/text/encoding/charmap"

	"github.com/spf13/cobra"

	"github.com/arrowcount/wfreq"
	"github.com/arrowcount/wfreq/internal/mmfile"
)

var countMaxTokenLen int

func init() {
	cmd := newCountCmd()
	cmd.Flags().IntVar(&countMaxTokenLen, "max-token-len", 0, "Maximum token length (0 = default)")
	rootCmd.AddCommand(cmd)
}

func newCountCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "count [file...]",
		Short: "Count word frequencies in one or more files, or stdin",
		Long: `The count command memory-maps each file argument and counts word
frequencies across all of them. With no file arguments it reads chunked
input from stdin instead, carrying any partial token across chunk
boundaries.

The BYTE_BUDGET environment variable, if set, caps the counter's total
memory use (see wfreq.Config.ByteBudget).

Example:
  wfreqctl count corpus.txt
  cat corpus.txt | wfreqctl count
  BYTE_BUDGET=1048576 wfreqctl count --max-token-len 32 corpus.txt`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCount(args)
		},
	}
}

func runCount(args []string) error {
	cfg := wfreq.Config{}
	if raw := os.Getenv("BYTE_BUDGET"); raw != "" {
		budget, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid BYTE_BUDGET %q: %w", raw, err)
		}
		cfg.ByteBudget = budget
	}

	c, err := wfreq.OpenWithConfig(countMaxTokenLen, cfg)
	if err != nil {
		return fmt.Errorf("failed to open counter: %w", err)
	}
	defer c.Close()

	if len(args) == 0 {
		if err := scanStdin(c); err != nil {
			return err
		}
	} else {
		for _, raw := range args {
			path := decodeArgBytes([]byte(raw))
			printVerbose("mapping %s\n", path)
			data, cleanup, err := mmfile.Map(raw)
			if err != nil {
				return fmt.Errorf("failed to map %s: %w", path, err)
			}
			scanErr := c.Scan(data)
			cleanupErr := cleanup()
			if scanErr != nil {
				return fmt.Errorf("failed to scan %s: %w", path, scanErr)
			}
			if cleanupErr != nil {
				return fmt.Errorf("failed to unmap %s: %w", path, cleanupErr)
			}
		}
	}

	return printSnapshot(c)
}

// decodeArgBytes decodes a command-line path argument that may carry
// non-UTF-8 bytes (e.g. a filename from a Windows-1252 filesystem):
// ASCII passes through unchanged, everything else falls back to a
// Windows-1252 decode.
func decodeArgBytes(raw []byte) string {
	if isASCII(raw) {
		return string(raw)
	}
	decoded, err := charmap.Windows1252.NewDecoder().Bytes(raw)
	if err != nil {
		return string(raw)
	}
	return string(decoded)
}

func isASCII(data []byte) bool {
	for _, b := range data {
		if b >= 0x80 {
			return false
		}
	}
	return true
}

func printSnapshot(c *wfreq.Counter) error {
	entries, err := c.Snapshot()
	if err != nil {
		return fmt.Errorf("failed to build snapshot: %w", err)
	}

	if jsonOut {
		type row struct {
			Word  string `json:"word"`
			Count uint64 `json:"count"`
		}
		rows := make([]row, 0, len(entries))
		for _, e := range entries {
			rows = append(rows, row{Word: string(e.Key), Count: e.Count})
		}
		return printJSON(rows)
	}

	printInfo("total: %d  unique: %d\n", c.Total(), c.Unique())
	for _, e := range entries {
		printInfo("%8d  %s\n", e.Count, string(e.Key))
	}
	return nil
}
