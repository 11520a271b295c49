package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jacksmith/campus/internal/collection"
	"github.com/jacksmith/campus/internal/model"
	"github.com/jacksmith/campus/internal/ops"
	"github.com/spf13/cobra"
)

var subjectCmd = &cobra.Command{
	Use:   "subject",
	Short: "Manage the subject catalog",
	Long: `Add, edit, delete and list catalog subjects.

A subject has a unique code, a name, a number of credits and the knowledge
blocks it belongs to. Block lists are comma separated.`,
}

var subjectAddCmd = &cobra.Command{
	Use:   "add <code> <name>",
	Short: "Add a subject",
	Long: `Add a subject to the catalog. Credits must be at least 1.

Examples:
  campus subject add IT1 "Lập trình Go" --credits 3 --blocks "Cơ sở ngành,Tự chọn"`,
	Args: cobra.ExactArgs(2),
	RunE: runSubjectAdd,
}

var subjectEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit a subject",
	Long: `Edit a subject. Blocks given to --remove-blocks are dropped before the
ones given to --add-blocks are appended.

Examples:
  campus subject edit 1710000000000 --credits 4
  campus subject edit 1710000000000 --remove-blocks "Tự chọn" --add-blocks "Chuyên ngành"`,
	Args:              cobra.ExactArgs(1),
	RunE:              runSubjectEdit,
	ValidArgsFunction: completeSubjectIDs,
}

var subjectRmCmd = &cobra.Command{
	Use:               "rm <id>",
	Short:             "Delete a subject",
	Args:              cobra.ExactArgs(1),
	RunE:              runSubjectRm,
	ValidArgsFunction: completeSubjectIDs,
}

var subjectListCmd = &cobra.Command{
	Use:   "list",
	Short: "List subjects",
	Args:  cobra.NoArgs,
	RunE:  runSubjectList,
}

var (
	subjectCredits int
	subjectBlocks  string

	subjectEditCode         string
	subjectEditName         string
	subjectEditCredits      int
	subjectEditAddBlocks    string
	subjectEditRemoveBlocks string

	subjectListSearch string
	subjectListPage   int
	subjectListWatch  bool
)

func init() {
	subjectAddCmd.Flags().IntVar(&subjectCredits, "credits", 0, "number of credits")
	subjectAddCmd.Flags().StringVar(&subjectBlocks, "blocks", "", "knowledge blocks, comma separated")

	subjectEditCmd.Flags().StringVar(&subjectEditCode, "code", "", "set code")
	subjectEditCmd.Flags().StringVar(&subjectEditName, "name", "", "set name")
	subjectEditCmd.Flags().IntVar(&subjectEditCredits, "credits", 0, "set number of credits")
	subjectEditCmd.Flags().StringVar(&subjectEditAddBlocks, "add-blocks", "", "append knowledge blocks, comma separated")
	subjectEditCmd.Flags().StringVar(&subjectEditRemoveBlocks, "remove-blocks", "", "drop knowledge blocks, comma separated")

	subjectListCmd.Flags().StringVarP(&subjectListSearch, "search", "s", "", "only subjects whose code or name contains this text")
	subjectListCmd.Flags().IntVarP(&subjectListPage, "page", "p", 1, "page to show")
	subjectListCmd.Flags().BoolVarP(&subjectListWatch, "watch", "w", false, "re-render when the store changes")

	subjectCmd.AddCommand(subjectAddCmd, subjectEditCmd, subjectRmCmd, subjectListCmd)
	rootCmd.AddCommand(subjectCmd)
}

// splitBlocks splits a comma separated block list. Blank entries are
// dropped later by the service.
func splitBlocks(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return strings.Split(s, ",")
}

func runSubjectAdd(cmd *cobra.Command, args []string) error {
	sess, err := openSession()
	if err != nil {
		return err
	}
	defer sess.Close()

	sub, err := sess.svc.AddSubject(ops.SubjectInput{
		Code:            args[0],
		Name:            args[1],
		Credits:         subjectCredits,
		KnowledgeBlocks: splitBlocks(subjectBlocks),
	})
	if err != nil {
		return err
	}
	fmt.Printf("Added subject %s: %s %s (%d credits)\n", model.FormatID(sub.ID), sub.Code, sub.Name, sub.Credits)
	return nil
}

func runSubjectEdit(cmd *cobra.Command, args []string) error {
	id, err := parseSubjectID(args[0])
	if err != nil {
		return err
	}

	var changes ops.SubjectChanges
	hasChanges := false
	if cmd.Flags().Changed("code") {
		changes.Code = &subjectEditCode
		hasChanges = true
	}
	if cmd.Flags().Changed("name") {
		changes.Name = &subjectEditName
		hasChanges = true
	}
	if cmd.Flags().Changed("credits") {
		changes.Credits = &subjectEditCredits
		hasChanges = true
	}
	if cmd.Flags().Changed("add-blocks") {
		changes.AddBlocks = splitBlocks(subjectEditAddBlocks)
		hasChanges = true
	}
	if cmd.Flags().Changed("remove-blocks") {
		changes.RemoveBlocks = splitBlocks(subjectEditRemoveBlocks)
		hasChanges = true
	}
	if !hasChanges {
		return fmt.Errorf("no changes specified")
	}

	sess, err := openSession()
	if err != nil {
		return err
	}
	defer sess.Close()

	sub, err := sess.svc.UpdateSubject(id, changes)
	if err != nil {
		return err
	}
	fmt.Printf("Updated subject %s: %s %s (%d credits)\n", model.FormatID(sub.ID), sub.Code, sub.Name, sub.Credits)
	return nil
}

func runSubjectRm(cmd *cobra.Command, args []string) error {
	id, err := parseSubjectID(args[0])
	if err != nil {
		return err
	}

	sess, err := openSession()
	if err != nil {
		return err
	}
	defer sess.Close()

	sub, err := sess.svc.DeleteSubject(id)
	if err != nil {
		return err
	}
	fmt.Printf("Deleted subject %s: %s\n", sub.Code, sub.Name)
	return nil
}

func runSubjectList(cmd *cobra.Command, args []string) error {
	sess, err := openSession()
	if err != nil {
		return err
	}
	defer sess.Close()

	l := listing[model.Subject]{
		view:   collection.NewView(sess.svc.Subjects, ops.SubjectQuery(subjectListSearch)),
		noun:   "subjects",
		header: []string{"ID", "CODE", "NAME", "CREDITS", "BLOCKS"},
		row: func(s *model.Subject) []string {
			return []string{
				model.FormatID(s.ID),
				s.Code,
				s.Name,
				strconv.Itoa(s.Credits),
				strings.Join(s.KnowledgeBlocks, ", "),
			}
		},
		wrap: []int{2, 4},
	}
	return l.show(sess, subjectListPage, sess.config.PageSize, subjectListWatch)
}
