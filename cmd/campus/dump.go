package main

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/jacksmith/campus/internal/kv"
	"github.com/spf13/cobra"
)

var dumpCmd = &cobra.Command{
	Use:   "dump [pattern]",
	Short: "Print raw stored values",
	Long: `Print the raw stored value of every key matching a glob pattern.

Values are printed as stored; JSON is indented for reading. Nothing is
normalized or validated.

Examples:
  campus dump
  campus dump courses
  campus dump 'diploma*'`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDump,
}

func init() {
	rootCmd.AddCommand(dumpCmd)
}

func runDump(cmd *cobra.Command, args []string) error {
	pattern := ""
	if len(args) > 0 {
		pattern = args[0]
	}

	sess, err := openSession()
	if err != nil {
		return err
	}
	defer sess.Close()

	keys, err := kv.Match(sess.svc.Store(), pattern)
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		fmt.Println("No stored keys match.")
		return nil
	}

	for i, key := range keys {
		value, err := sess.svc.Store().Get(key)
		if err != nil {
			return err
		}
		if i > 0 {
			fmt.Println()
		}
		fmt.Printf("# %s\n", key)
		fmt.Println(formatRaw(value))
	}
	return nil
}

// formatRaw indents JSON values and returns anything else unchanged.
func formatRaw(value []byte) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, value, "", "  "); err != nil {
		return string(value)
	}
	return buf.String()
}
