package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/jacksmith/campus/internal/cli"
	"github.com/jacksmith/campus/internal/collection"
	"github.com/jacksmith/campus/internal/model"
	"github.com/jacksmith/campus/internal/ops"
	"github.com/spf13/cobra"
)

var classroomCmd = &cobra.Command{
	Use:     "classroom",
	Aliases: []string{"room"},
	Short:   "Manage classrooms",
	Long: `Add, edit, delete and list classrooms.

Room types may be given by their stored label (Lý thuyết, Thực hành,
Hội trường) or by their alias (lecture, lab, hall).

Classrooms seating 30 or more cannot be deleted.`,
}

var classroomAddCmd = &cobra.Command{
	Use:   "add <id> <name>",
	Short: "Add a classroom",
	Long: `Add a classroom. The ID is chosen by you and cannot change later.

Examples:
  campus classroom add A101 "Phòng A101" --capacity=50 --type=lecture --responsible="Nguyễn Văn A"`,
	Args: cobra.ExactArgs(2),
	RunE: runClassroomAdd,
}

var classroomEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit a classroom",
	Long: `Edit a classroom's fields. The ID cannot be changed.

Examples:
  campus classroom edit A101 --capacity=60
  campus classroom edit A101 --type=hall --responsible="Lê Văn C"`,
	Args:              cobra.ExactArgs(1),
	RunE:              runClassroomEdit,
	ValidArgsFunction: completeClassroomIDs,
}

var classroomRmCmd = &cobra.Command{
	Use:               "rm <id>",
	Short:             "Delete a classroom",
	Args:              cobra.ExactArgs(1),
	RunE:              runClassroomRm,
	ValidArgsFunction: completeClassroomIDs,
}

var classroomListCmd = &cobra.Command{
	Use:   "list",
	Short: "List classrooms",
	Long: `List classrooms, smallest first.

Examples:
  campus classroom list
  campus classroom list --type=lab
  campus classroom list --search=A1`,
	Args: cobra.NoArgs,
	RunE: runClassroomList,
}

var classroomStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize classroom capacity",
	Args:  cobra.NoArgs,
	RunE:  runClassroomStats,
}

var (
	classroomName        string
	classroomCapacity    int
	classroomType        string
	classroomResponsible string

	classroomListSearch      string
	classroomListType        string
	classroomListResponsible string
	classroomListPage        int
	classroomListWatch       bool
)

func init() {
	classroomAddCmd.Flags().IntVar(&classroomCapacity, "capacity", 0, "number of seats (10-200)")
	classroomAddCmd.Flags().StringVar(&classroomType, "type", "", "room type: lecture, lab or hall")
	classroomAddCmd.Flags().StringVar(&classroomResponsible, "responsible", "", "person responsible for the room")
	classroomAddCmd.RegisterFlagCompletionFunc("type", completeRoomTypes)
	classroomAddCmd.RegisterFlagCompletionFunc("responsible", completeResponsiblePersons)

	classroomEditCmd.Flags().StringVar(&classroomName, "name", "", "set name")
	classroomEditCmd.Flags().IntVar(&classroomCapacity, "capacity", 0, "set number of seats")
	classroomEditCmd.Flags().StringVar(&classroomType, "type", "", "set room type")
	classroomEditCmd.Flags().StringVar(&classroomResponsible, "responsible", "", "set responsible person")
	classroomEditCmd.RegisterFlagCompletionFunc("type", completeRoomTypes)
	classroomEditCmd.RegisterFlagCompletionFunc("responsible", completeResponsiblePersons)

	classroomListCmd.Flags().StringVarP(&classroomListSearch, "search", "s", "", "only rooms whose ID or name contains this text")
	classroomListCmd.Flags().StringVar(&classroomListType, "type", "", "only rooms of this type")
	classroomListCmd.Flags().StringVar(&classroomListResponsible, "responsible", "", "only rooms this person is responsible for")
	classroomListCmd.Flags().IntVarP(&classroomListPage, "page", "p", 1, "page to show")
	classroomListCmd.Flags().BoolVarP(&classroomListWatch, "watch", "w", false, "re-render when the store changes")
	classroomListCmd.RegisterFlagCompletionFunc("type", completeRoomTypes)
	classroomListCmd.RegisterFlagCompletionFunc("responsible", completeResponsiblePersons)

	classroomCmd.AddCommand(classroomAddCmd, classroomEditCmd, classroomRmCmd, classroomListCmd, classroomStatsCmd)
	rootCmd.AddCommand(classroomCmd)
}

func runClassroomAdd(cmd *cobra.Command, args []string) error {
	var roomType model.RoomType
	if classroomType != "" {
		rt, err := parseRoomType(classroomType)
		if err != nil {
			return err
		}
		roomType = rt
	}

	sess, err := openSession()
	if err != nil {
		return err
	}
	defer sess.Close()

	c, err := sess.svc.AddClassroom(ops.ClassroomInput{
		ID:                args[0],
		Name:              args[1],
		Capacity:          classroomCapacity,
		Type:              roomType,
		ResponsiblePerson: classroomResponsible,
	})
	if err != nil {
		return err
	}
	fmt.Printf("Added classroom %s: %s\n", c.ID, c.Name)
	return nil
}

func runClassroomEdit(cmd *cobra.Command, args []string) error {
	changes := ops.ClassroomChanges{}
	hasChanges := false

	if cmd.Flags().Changed("name") {
		changes.Name = &classroomName
		hasChanges = true
	}
	if cmd.Flags().Changed("capacity") {
		changes.Capacity = &classroomCapacity
		hasChanges = true
	}
	if cmd.Flags().Changed("type") {
		roomType, err := parseRoomType(classroomType)
		if err != nil {
			return err
		}
		changes.Type = &roomType
		hasChanges = true
	}
	if cmd.Flags().Changed("responsible") {
		changes.ResponsiblePerson = &classroomResponsible
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

	c, err := sess.svc.UpdateClassroom(args[0], changes)
	if err != nil {
		return err
	}
	fmt.Printf("Updated classroom %s: %s\n", c.ID, c.Name)
	return nil
}

func runClassroomRm(cmd *cobra.Command, args []string) error {
	sess, err := openSession()
	if err != nil {
		return err
	}
	defer sess.Close()

	c, err := sess.svc.DeleteClassroom(args[0])
	if err != nil {
		return err
	}
	fmt.Printf("Deleted classroom %s: %s\n", c.ID, c.Name)
	return nil
}

func runClassroomList(cmd *cobra.Command, args []string) error {
	filter := ops.ClassroomFilter{
		Search:            classroomListSearch,
		ResponsiblePerson: classroomListResponsible,
	}
	if classroomListType != "" {
		roomType, err := parseRoomType(classroomListType)
		if err != nil {
			return err
		}
		filter.Type = roomType
	}

	sess, err := openSession()
	if err != nil {
		return err
	}
	defer sess.Close()

	l := listing[model.Classroom]{
		view:   collection.NewView(sess.svc.Classrooms, ops.ClassroomQuery(filter)),
		noun:   "classrooms",
		header: []string{"ID", "NAME", "CAPACITY", "TYPE", "RESPONSIBLE"},
		row: func(c *model.Classroom) []string {
			return []string{c.ID, c.Name, strconv.Itoa(c.Capacity), string(c.Type), c.ResponsiblePerson}
		},
		wrap: []int{1},
	}
	return l.show(sess, classroomListPage, sess.config.PageSize, classroomListWatch)
}

func runClassroomStats(cmd *cobra.Command, args []string) error {
	sess, err := openSession()
	if err != nil {
		return err
	}
	defer sess.Close()

	stats := sess.svc.ClassroomStats()
	fmt.Printf("Classrooms:     %d\n", stats.Count)
	fmt.Printf("Total capacity: %d\n", stats.TotalCapacity)

	table := cli.NewTable()
	table.SetHeader("TYPE", "ROOMS")
	for _, rt := range model.RoomTypes {
		table.AddRow(string(rt), strconv.Itoa(stats.ByType[rt]))
	}
	fmt.Println()
	table.Render(os.Stdout)
	return nil
}
