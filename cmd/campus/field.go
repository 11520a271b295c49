package main

import (
	"fmt"

	"github.com/jacksmith/campus/internal/collection"
	"github.com/jacksmith/campus/internal/model"
	"github.com/jacksmith/campus/internal/ops"
	"github.com/spf13/cobra"
)

var fieldCmd = &cobra.Command{
	Use:   "field",
	Short: "Configure diploma form fields",
	Long: `Add, edit, delete and list the configurable fields of the diploma form.

Each field has a unique name and a type: String, Number or Date.`,
}

var fieldAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a field",
	Long: `Add a diploma form field. The type defaults to String.

Examples:
  campus field add "Ngày cấp" --type=date`,
	Args: cobra.ExactArgs(1),
	RunE: runFieldAdd,
}

var fieldEditCmd = &cobra.Command{
	Use:               "edit <id>",
	Short:             "Edit a field",
	Args:              cobra.ExactArgs(1),
	RunE:              runFieldEdit,
	ValidArgsFunction: completeFieldIDs,
}

var fieldRmCmd = &cobra.Command{
	Use:               "rm <id>",
	Short:             "Delete a field",
	Args:              cobra.ExactArgs(1),
	RunE:              runFieldRm,
	ValidArgsFunction: completeFieldIDs,
}

var fieldListCmd = &cobra.Command{
	Use:   "list",
	Short: "List fields",
	Args:  cobra.NoArgs,
	RunE:  runFieldList,
}

var (
	fieldType     string
	fieldEditName string
	fieldEditType string

	fieldListPage  int
	fieldListWatch bool
)

func init() {
	fieldAddCmd.Flags().StringVar(&fieldType, "type", string(model.FieldTypeString), "value type: String, Number or Date")

	fieldEditCmd.Flags().StringVar(&fieldEditName, "name", "", "set name")
	fieldEditCmd.Flags().StringVar(&fieldEditType, "type", "", "set value type")

	fieldListCmd.Flags().IntVarP(&fieldListPage, "page", "p", 1, "page to show")
	fieldListCmd.Flags().BoolVarP(&fieldListWatch, "watch", "w", false, "re-render when the store changes")

	fieldTypes := make([]string, len(model.FieldTypes))
	for i, ft := range model.FieldTypes {
		fieldTypes[i] = string(ft)
	}
	complete := cobra.FixedCompletions(fieldTypes, cobra.ShellCompDirectiveNoFileComp)
	fieldAddCmd.RegisterFlagCompletionFunc("type", complete)
	fieldEditCmd.RegisterFlagCompletionFunc("type", complete)

	fieldCmd.AddCommand(fieldAddCmd, fieldEditCmd, fieldRmCmd, fieldListCmd)
	rootCmd.AddCommand(fieldCmd)
}

func runFieldAdd(cmd *cobra.Command, args []string) error {
	ft, err := parseFieldType(fieldType)
	if err != nil {
		return err
	}

	sess, err := openSession()
	if err != nil {
		return err
	}
	defer sess.Close()

	f, err := sess.svc.AddField(ops.FieldInput{Name: args[0], Type: ft})
	if err != nil {
		return err
	}
	fmt.Printf("Added field %s: %s (%s)\n", f.ID, f.Name, f.Type)
	return nil
}

func runFieldEdit(cmd *cobra.Command, args []string) error {
	changes := ops.FieldChanges{}
	if cmd.Flags().Changed("name") {
		changes.Name = &fieldEditName
	}
	if cmd.Flags().Changed("type") {
		ft, err := parseFieldType(fieldEditType)
		if err != nil {
			return err
		}
		changes.Type = &ft
	}
	if changes.Name == nil && changes.Type == nil {
		return fmt.Errorf("no changes specified")
	}

	sess, err := openSession()
	if err != nil {
		return err
	}
	defer sess.Close()

	f, err := sess.svc.UpdateField(args[0], changes)
	if err != nil {
		return err
	}
	fmt.Printf("Updated field %s: %s (%s)\n", f.ID, f.Name, f.Type)
	return nil
}

func runFieldRm(cmd *cobra.Command, args []string) error {
	sess, err := openSession()
	if err != nil {
		return err
	}
	defer sess.Close()

	f, err := sess.svc.DeleteField(args[0])
	if err != nil {
		return err
	}
	fmt.Printf("Deleted field %s: %s\n", f.ID, f.Name)
	return nil
}

func runFieldList(cmd *cobra.Command, args []string) error {
	sess, err := openSession()
	if err != nil {
		return err
	}
	defer sess.Close()

	l := listing[model.DiplomaField]{
		view:   collection.NewView(sess.svc.Fields, collection.Query[model.DiplomaField]{}),
		noun:   "fields",
		header: []string{"ID", "NAME", "TYPE"},
		row: func(f *model.DiplomaField) []string {
			return []string{f.ID, f.Name, string(f.Type)}
		},
		wrap: []int{1},
	}
	return l.show(sess, fieldListPage, sess.config.PageSize, fieldListWatch)
}
