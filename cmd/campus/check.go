package main

import (
	"fmt"

	"github.com/jacksmith/campus/internal/cli"
	"github.com/jacksmith/campus/internal/ops"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check [pattern]",
	Short: "Check stored data integrity",
	Long: `Check the stored collections for integrity issues.

Checks for:
- Values that cannot be read
- Records stored in an outdated shape
- Duplicate IDs and duplicate unique fields
- Records that fail form validation or the storage guards

Use --fix to rewrite every collection in the current shape. Unreadable
values are reset to an empty list. Other issues need to be fixed by hand.

An optional glob pattern limits the check to matching keys.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

var checkFix bool

func init() {
	checkCmd.Flags().BoolVar(&checkFix, "fix", false, "rewrite collections in the current shape")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	pattern := ""
	if len(args) > 0 {
		pattern = args[0]
	}

	sess, err := openSession()
	if err != nil {
		return err
	}
	defer sess.Close()

	issues, err := sess.svc.Check(pattern)
	if err != nil {
		return err
	}
	if len(issues) == 0 {
		fmt.Println(cli.Green("No issues found."))
		return nil
	}

	if !checkFix {
		printIssues(fmt.Sprintf("Found %d issue(s):", len(issues)), issues)
		return fmt.Errorf("found %d issue(s)", len(issues))
	}

	fmt.Printf("Found %d issue(s). Attempting to fix...\n\n", len(issues))
	fixed, err := sess.svc.Fix(pattern)
	if err != nil {
		return err
	}
	if len(fixed) > 0 {
		fmt.Println("Rewrote:")
		for _, key := range fixed {
			fmt.Printf("  %s\n", key)
		}
		fmt.Println()
	}

	remaining, err := sess.svc.Check(pattern)
	if err != nil {
		return err
	}
	if len(remaining) == 0 {
		fmt.Println(cli.Green("All issues resolved."))
		return nil
	}
	printIssues(fmt.Sprintf("Remaining issues (%d) that cannot be fixed automatically:", len(remaining)), remaining)
	return fmt.Errorf("%d issue(s) remain", len(remaining))
}

func printIssues(title string, issues []ops.Issue) {
	fmt.Println(title)
	fmt.Println()
	for _, issue := range issues {
		if issue.Fixable() {
			fmt.Println(cli.Yellow(issue.String()))
		} else {
			fmt.Println(cli.Red(issue.String()))
		}
	}
}
