package main

import (
	"fmt"
	"strings"

	"github.com/jacksmith/campus/internal/cli"
	"github.com/jacksmith/campus/internal/collection"
	"github.com/jacksmith/campus/internal/model"
	"github.com/jacksmith/campus/internal/ops"
	"github.com/spf13/cobra"
)

var todoCmd = &cobra.Command{
	Use:   "todo",
	Short: "Manage the to-do list",
}

var todoAddCmd = &cobra.Command{
	Use:   "add <text>...",
	Short: "Add a to-do item",
	Long: `Add a to-do item. Multiple arguments are joined with spaces.

Examples:
  campus todo add Chuẩn bị phòng A101`,
	Args: cobra.MinimumNArgs(1),
	RunE: runTodoAdd,
}

var todoEditCmd = &cobra.Command{
	Use:               "edit <id> [text...]",
	Short:             "Change a to-do item's text",
	Long:              `Change a to-do item's text. Without text, the item is opened in $EDITOR.`,
	Args:              cobra.MinimumNArgs(1),
	RunE:              runTodoEdit,
	ValidArgsFunction: completeTodoIDs,
}

var todoDoneCmd = &cobra.Command{
	Use:               "done <id>",
	Short:             "Toggle a to-do item between done and open",
	Args:              cobra.ExactArgs(1),
	RunE:              runTodoDone,
	ValidArgsFunction: completeTodoIDs,
}

var todoRmCmd = &cobra.Command{
	Use:               "rm <id>",
	Short:             "Delete a to-do item",
	Args:              cobra.ExactArgs(1),
	RunE:              runTodoRm,
	ValidArgsFunction: completeTodoIDs,
}

var todoListCmd = &cobra.Command{
	Use:   "list",
	Short: "List to-do items",
	Args:  cobra.NoArgs,
	RunE:  runTodoList,
}

var (
	todoListOpen  bool
	todoListPage  int
	todoListWatch bool
)

func init() {
	todoListCmd.Flags().BoolVar(&todoListOpen, "open", false, "only items not yet done")
	todoListCmd.Flags().IntVarP(&todoListPage, "page", "p", 1, "page to show")
	todoListCmd.Flags().BoolVarP(&todoListWatch, "watch", "w", false, "re-render when the store changes")

	todoCmd.AddCommand(todoAddCmd, todoEditCmd, todoDoneCmd, todoRmCmd, todoListCmd)
	rootCmd.AddCommand(todoCmd)
}

func runTodoAdd(cmd *cobra.Command, args []string) error {
	sess, err := openSession()
	if err != nil {
		return err
	}
	defer sess.Close()

	t, err := sess.svc.AddTodo(strings.Join(args, " "))
	if err != nil {
		return err
	}
	fmt.Printf("Added to-do %d: %s\n", t.ID, t.Text)
	return nil
}

func runTodoEdit(cmd *cobra.Command, args []string) error {
	id, err := parseTodoID(args[0])
	if err != nil {
		return err
	}

	sess, err := openSession()
	if err != nil {
		return err
	}
	defer sess.Close()

	text := strings.Join(args[1:], " ")
	if len(args) == 1 {
		t, err := sess.svc.FindTodo(id)
		if err != nil {
			return err
		}
		text, err = cli.EditText(t.Text, "To-do item text")
		if err != nil {
			return err
		}
	}

	t, err := sess.svc.EditTodo(id, text)
	if err != nil {
		return err
	}
	fmt.Printf("Updated to-do %d: %s\n", t.ID, t.Text)
	return nil
}

func runTodoDone(cmd *cobra.Command, args []string) error {
	id, err := parseTodoID(args[0])
	if err != nil {
		return err
	}

	sess, err := openSession()
	if err != nil {
		return err
	}
	defer sess.Close()

	t, err := sess.svc.ToggleTodo(id)
	if err != nil {
		return err
	}
	if t.Completed {
		fmt.Printf("Completed %d: %s\n", t.ID, t.Text)
	} else {
		fmt.Printf("Reopened %d: %s\n", t.ID, t.Text)
	}
	return nil
}

func runTodoRm(cmd *cobra.Command, args []string) error {
	id, err := parseTodoID(args[0])
	if err != nil {
		return err
	}

	sess, err := openSession()
	if err != nil {
		return err
	}
	defer sess.Close()

	t, err := sess.svc.DeleteTodo(id)
	if err != nil {
		return err
	}
	fmt.Printf("Deleted to-do %d: %s\n", t.ID, t.Text)
	return nil
}

func runTodoList(cmd *cobra.Command, args []string) error {
	sess, err := openSession()
	if err != nil {
		return err
	}
	defer sess.Close()

	l := listing[model.Todo]{
		view:   collection.NewView(sess.svc.Todos, ops.TodoQuery(todoListOpen)),
		noun:   "to-do items",
		header: []string{"ID", "ITEM"},
		row: func(t *model.Todo) []string {
			text := t.DisplayText()
			if t.Completed {
				text = cli.Gray(text)
			}
			return []string{model.FormatID(t.ID), text}
		},
		footer: func() string {
			sum := sess.svc.TodoSummary()
			return fmt.Sprintf("%d of %d done", sum.Completed, sum.Total)
		},
	}
	return l.show(sess, todoListPage, sess.config.PageSize, todoListWatch)
}
