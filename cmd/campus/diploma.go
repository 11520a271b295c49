package main

import (
	"fmt"
	"strconv"

	"github.com/jacksmith/campus/internal/cli"
	"github.com/jacksmith/campus/internal/collection"
	"github.com/jacksmith/campus/internal/model"
	"github.com/jacksmith/campus/internal/ops"
	"github.com/spf13/cobra"
)

var diplomaCmd = &cobra.Command{
	Use:   "diploma",
	Short: "Manage the diploma registry",
	Long: `Record, delete and list issued diplomas.

Each diploma has a name, a number and a year of issue. The time it was
recorded is kept as well.`,
}

var diplomaAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Record a diploma",
	Long: `Record a diploma.

Examples:
  campus diploma add "Cử nhân Tin học" --number=1024 --year=2023`,
	Args: cobra.ExactArgs(1),
	RunE: runDiplomaAdd,
}

var diplomaRmCmd = &cobra.Command{
	Use:               "rm <id>",
	Short:             "Delete a diploma",
	Args:              cobra.ExactArgs(1),
	RunE:              runDiplomaRm,
	ValidArgsFunction: completeDiplomaIDs,
}

var diplomaListCmd = &cobra.Command{
	Use:   "list",
	Short: "List diplomas",
	Long: `List diplomas in the order they were recorded, or sorted by a column.

Examples:
  campus diploma list --sort=year --desc
  campus diploma list --search="Tin học"`,
	Args: cobra.NoArgs,
	RunE: runDiplomaList,
}

var (
	diplomaNumber int
	diplomaYear   int

	diplomaListSearch string
	diplomaListSort   string
	diplomaListDesc   bool
	diplomaListPage   int
	diplomaListWatch  bool
)

func init() {
	diplomaAddCmd.Flags().IntVar(&diplomaNumber, "number", 0, "diploma number")
	diplomaAddCmd.Flags().IntVar(&diplomaYear, "year", 0, "year of issue")

	columns := make([]string, len(ops.DiplomaColumns))
	for i, c := range ops.DiplomaColumns {
		columns[i] = string(c)
	}
	diplomaListCmd.Flags().StringVarP(&diplomaListSearch, "search", "s", "", "only diplomas whose name contains this text")
	diplomaListCmd.Flags().StringVar(&diplomaListSort, "sort", "", "sort column: name, number, year or created")
	diplomaListCmd.Flags().BoolVar(&diplomaListDesc, "desc", false, "sort in descending order")
	diplomaListCmd.Flags().IntVarP(&diplomaListPage, "page", "p", 1, "page to show")
	diplomaListCmd.Flags().BoolVarP(&diplomaListWatch, "watch", "w", false, "re-render when the store changes")
	diplomaListCmd.RegisterFlagCompletionFunc("sort", cobra.FixedCompletions(columns, cobra.ShellCompDirectiveNoFileComp))

	diplomaCmd.AddCommand(diplomaAddCmd, diplomaRmCmd, diplomaListCmd)
	rootCmd.AddCommand(diplomaCmd)
}

func runDiplomaAdd(cmd *cobra.Command, args []string) error {
	sess, err := openSession()
	if err != nil {
		return err
	}
	defer sess.Close()

	d, err := sess.svc.AddDiploma(ops.DiplomaInput{
		DiplomaName:   args[0],
		DiplomaNumber: diplomaNumber,
		Year:          diplomaYear,
	})
	if err != nil {
		return err
	}
	fmt.Printf("Recorded diploma %s: %s #%d (%d)\n", d.ID, d.DiplomaName, d.DiplomaNumber, d.Year)
	return nil
}

func runDiplomaRm(cmd *cobra.Command, args []string) error {
	sess, err := openSession()
	if err != nil {
		return err
	}
	defer sess.Close()

	d, err := sess.svc.DeleteDiploma(args[0])
	if err != nil {
		return err
	}
	fmt.Printf("Deleted diploma %s: %s\n", d.ID, d.DiplomaName)
	return nil
}

func runDiplomaList(cmd *cobra.Command, args []string) error {
	filter := ops.DiplomaFilter{Name: diplomaListSearch, Descending: diplomaListDesc}
	if diplomaListSort != "" {
		col, err := cli.MatchChoice("sort", diplomaListSort, diplomaColumnChoices())
		if err != nil {
			return err
		}
		filter.SortBy = ops.DiplomaColumn(col)
	}
	q, err := ops.DiplomaQuery(filter)
	if err != nil {
		return err
	}

	sess, err := openSession()
	if err != nil {
		return err
	}
	defer sess.Close()

	l := listing[model.Diploma]{
		view:   collection.NewView(sess.svc.Diplomas, q),
		noun:   "diplomas",
		header: []string{"ID", "NAME", "NUMBER", "YEAR", "CREATED"},
		row: func(d *model.Diploma) []string {
			created := d.CreatedAt
			if t, ok := d.CreatedTime(); ok {
				created = t.Local().Format("2006-01-02 15:04")
			}
			return []string{d.ID, d.DiplomaName, strconv.Itoa(d.DiplomaNumber), strconv.Itoa(d.Year), created}
		},
		wrap: []int{1},
	}
	return l.show(sess, diplomaListPage, sess.config.PageSize, diplomaListWatch)
}
