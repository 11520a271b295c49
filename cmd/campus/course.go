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

var courseCmd = &cobra.Command{
	Use:   "course",
	Short: "Manage courses",
	Long: `Add, edit, delete and list training courses.

A course is open, paused or closed. Statuses may be given by their stored
label (Đang mở, Tạm dừng, Đã kết thúc) or by their alias (open, paused,
closed); any unique alias prefix works too.

A course with enrolled students cannot be deleted, and a course with no
students cannot be opened.`,
}

var courseAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a course",
	Long: `Add a course. New courses are paused unless --status is given.

Examples:
  campus course add "Algorithms" --instructor="Nguyễn Văn A" --students=25
  campus course add "Databases" --instructor="Trần Thị B" --status=open --students=12`,
	Args: cobra.ExactArgs(1),
	RunE: runCourseAdd,
}

var courseEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit a course",
	Long: `Edit a course's fields.

Use flags to change specific fields, or -i to edit the description in $EDITOR.

Examples:
  campus course edit 1710495000000 --students=30
  campus course edit 1710495000000 --name="Advanced Algorithms"
  campus course edit 1710495000000 -i`,
	Args:              cobra.ExactArgs(1),
	RunE:              runCourseEdit,
	ValidArgsFunction: completeCourseIDs,
}

var courseRmCmd = &cobra.Command{
	Use:               "rm <id>",
	Short:             "Delete a course",
	Args:              cobra.ExactArgs(1),
	RunE:              runCourseRm,
	ValidArgsFunction: completeCourseIDs,
}

var courseStatusCmd = &cobra.Command{
	Use:   "status <id> <status>",
	Short: "Change a course's status",
	Long: `Change a course's status.

Examples:
  campus course status 1710495000000 open
  campus course status 1710495000000 closed`,
	Args: cobra.ExactArgs(2),
	RunE: runCourseStatus,
	ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) == 1 {
			return completeCourseStatuses(cmd, args, toComplete)
		}
		return completeCourseIDs(cmd, args, toComplete)
	},
}

var courseListCmd = &cobra.Command{
	Use:   "list",
	Short: "List courses",
	Long: `List courses, most students first.

Examples:
  campus course list
  campus course list --status=open
  campus course list --instructor="Trần Thị B" --search=data
  campus course list --page=2`,
	Args: cobra.NoArgs,
	RunE: runCourseList,
}

var courseShowCmd = &cobra.Command{
	Use:               "show <id>",
	Short:             "Show course details",
	Args:              cobra.ExactArgs(1),
	RunE:              runCourseShow,
	ValidArgsFunction: completeCourseIDs,
}

var (
	courseInstructor  string
	courseStudents    int
	courseStatus      string
	courseDescription string

	courseEditName        string
	courseEditInteractive bool

	courseListInstructor string
	courseListStatus     string
	courseListSearch     string
	courseListPage       int
	courseListWatch      bool
)

func init() {
	courseAddCmd.Flags().StringVar(&courseInstructor, "instructor", "", "instructor teaching the course")
	courseAddCmd.Flags().IntVar(&courseStudents, "students", 0, "number of enrolled students")
	courseAddCmd.Flags().StringVar(&courseStatus, "status", "", "initial status (default paused)")
	courseAddCmd.Flags().StringVar(&courseDescription, "description", "", "course description")
	courseAddCmd.RegisterFlagCompletionFunc("instructor", completeInstructors)
	courseAddCmd.RegisterFlagCompletionFunc("status", completeCourseStatuses)

	courseEditCmd.Flags().StringVar(&courseEditName, "name", "", "set course name")
	courseEditCmd.Flags().StringVar(&courseInstructor, "instructor", "", "set instructor")
	courseEditCmd.Flags().IntVar(&courseStudents, "students", 0, "set number of students")
	courseEditCmd.Flags().StringVar(&courseStatus, "status", "", "set status")
	courseEditCmd.Flags().StringVar(&courseDescription, "description", "", "set description")
	courseEditCmd.Flags().BoolVarP(&courseEditInteractive, "interactive", "i", false, "edit the description in $EDITOR")
	courseEditCmd.RegisterFlagCompletionFunc("instructor", completeInstructors)
	courseEditCmd.RegisterFlagCompletionFunc("status", completeCourseStatuses)

	courseListCmd.Flags().StringVar(&courseListInstructor, "instructor", "", "only courses taught by this instructor")
	courseListCmd.Flags().StringVar(&courseListStatus, "status", "", "only courses with this status")
	courseListCmd.Flags().StringVarP(&courseListSearch, "search", "s", "", "only courses whose name contains this text")
	courseListCmd.Flags().IntVarP(&courseListPage, "page", "p", 1, "page to show")
	courseListCmd.Flags().BoolVarP(&courseListWatch, "watch", "w", false, "re-render when the store changes")
	courseListCmd.RegisterFlagCompletionFunc("instructor", completeInstructors)
	courseListCmd.RegisterFlagCompletionFunc("status", completeCourseStatuses)

	courseCmd.AddCommand(courseAddCmd, courseEditCmd, courseRmCmd, courseStatusCmd, courseListCmd, courseShowCmd)
	rootCmd.AddCommand(courseCmd)
}

func runCourseAdd(cmd *cobra.Command, args []string) error {
	in := ops.CourseInput{
		Name:        args[0],
		Instructor:  courseInstructor,
		Students:    courseStudents,
		Description: courseDescription,
	}
	if courseStatus != "" {
		status, err := parseCourseStatus(courseStatus)
		if err != nil {
			return err
		}
		in.Status = status
	}

	sess, err := openSession()
	if err != nil {
		return err
	}
	defer sess.Close()

	c, err := sess.svc.AddCourse(in)
	if err != nil {
		return err
	}
	fmt.Printf("Added course %s: %s\n", c.ID, c.Name)
	return nil
}

func runCourseEdit(cmd *cobra.Command, args []string) error {
	id := args[0]

	sess, err := openSession()
	if err != nil {
		return err
	}
	defer sess.Close()

	changes := ops.CourseChanges{}
	hasChanges := false

	if cmd.Flags().Changed("name") {
		changes.Name = &courseEditName
		hasChanges = true
	}
	if cmd.Flags().Changed("instructor") {
		changes.Instructor = &courseInstructor
		hasChanges = true
	}
	if cmd.Flags().Changed("students") {
		changes.Students = &courseStudents
		hasChanges = true
	}
	if cmd.Flags().Changed("status") {
		status, err := parseCourseStatus(courseStatus)
		if err != nil {
			return err
		}
		changes.Status = &status
		hasChanges = true
	}
	if cmd.Flags().Changed("description") {
		changes.Description = &courseDescription
		hasChanges = true
	}
	if courseEditInteractive {
		c, err := sess.svc.FindCourse(id)
		if err != nil {
			return err
		}
		text, err := cli.EditText(c.Description, fmt.Sprintf("Description of %s", c.Name))
		if err != nil {
			return err
		}
		changes.Description = &text
		hasChanges = true
	}

	if !hasChanges {
		return fmt.Errorf("no changes specified")
	}

	c, err := sess.svc.UpdateCourse(id, changes)
	if err != nil {
		return err
	}
	fmt.Printf("Updated course %s: %s\n", c.ID, c.Name)
	return nil
}

func runCourseRm(cmd *cobra.Command, args []string) error {
	sess, err := openSession()
	if err != nil {
		return err
	}
	defer sess.Close()

	c, err := sess.svc.DeleteCourse(args[0])
	if err != nil {
		return err
	}
	fmt.Printf("Deleted course %s: %s\n", c.ID, c.Name)
	return nil
}

func runCourseStatus(cmd *cobra.Command, args []string) error {
	status, err := parseCourseStatus(args[1])
	if err != nil {
		return err
	}

	sess, err := openSession()
	if err != nil {
		return err
	}
	defer sess.Close()

	c, err := sess.svc.ChangeCourseStatus(args[0], status)
	if err != nil {
		return err
	}
	fmt.Printf("Course %s is now %s\n", c.ID, cli.CourseStatus(c.Status))
	return nil
}

func runCourseList(cmd *cobra.Command, args []string) error {
	filter := ops.CourseFilter{
		Instructor: courseListInstructor,
		Name:       courseListSearch,
	}
	if courseListStatus != "" {
		status, err := parseCourseStatus(courseListStatus)
		if err != nil {
			return err
		}
		filter.Status = status
	}

	sess, err := openSession()
	if err != nil {
		return err
	}
	defer sess.Close()

	l := listing[model.Course]{
		view:   collection.NewView(sess.svc.Courses, ops.CourseQuery(filter)),
		noun:   "courses",
		header: []string{"ID", "NAME", "INSTRUCTOR", "STUDENTS", "STATUS"},
		row: func(c *model.Course) []string {
			return []string{c.ID, c.Name, c.Instructor, strconv.Itoa(c.Students), cli.CourseStatus(c.Status)}
		},
		wrap: []int{1},
	}
	return l.show(sess, courseListPage, sess.config.PageSize, courseListWatch)
}

func runCourseShow(cmd *cobra.Command, args []string) error {
	sess, err := openSession()
	if err != nil {
		return err
	}
	defer sess.Close()

	c, err := sess.svc.FindCourse(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("%s  %s\n", cli.Bold(c.ID), c.Name)
	fmt.Printf("Instructor: %s\n", c.Instructor)
	fmt.Printf("Students:   %d\n", c.Students)
	fmt.Printf("Status:     %s\n", cli.CourseStatus(c.Status))
	if c.Description != "" {
		fmt.Printf("\n%s\n", c.Description)
	}
	return nil
}
