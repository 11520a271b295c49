package main

import (
	"os"
	"strings"

	"github.com/jacksmith/campus/internal/model"
	"github.com/spf13/cobra"
)

var completionCmd = &cobra.Command{
	Use:   "completion",
	Short: "Generate shell completion scripts",
	Long: `Generate shell completion scripts for campus.

To load completions:

Bash:
  $ source <(campus completion bash)

Zsh:
  $ campus completion zsh > "${fpath[1]}/_campus"
  # You will need to start a new shell for this setup to take effect.

Fish:
  $ campus completion fish | source
`,
}

var completionBashCmd = &cobra.Command{
	Use:   "bash",
	Short: "Generate bash completion script",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return rootCmd.GenBashCompletion(os.Stdout)
	},
}

var completionZshCmd = &cobra.Command{
	Use:   "zsh",
	Short: "Generate zsh completion script",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return rootCmd.GenZshCompletion(os.Stdout)
	},
}

var completionFishCmd = &cobra.Command{
	Use:   "fish",
	Short: "Generate fish completion script",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return rootCmd.GenFishCompletion(os.Stdout, true)
	},
}

func init() {
	completionCmd.AddCommand(completionBashCmd)
	completionCmd.AddCommand(completionZshCmd)
	completionCmd.AddCommand(completionFishCmd)
	rootCmd.AddCommand(completionCmd)
}

type completionFunc func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective)

// completeIDs builds a completion function over the IDs a session yields.
// Completion stays silent when the workspace cannot be opened.
func completeIDs(list func(*session) []string) completionFunc {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) > 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		sess, err := openSession()
		if err != nil {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		defer sess.Close()

		var out []string
		for _, id := range list(sess) {
			if strings.HasPrefix(id, toComplete) {
				out = append(out, id)
			}
		}
		return out, cobra.ShellCompDirectiveNoFileComp
	}
}

var (
	completeCourseIDs = completeIDs(func(s *session) []string {
		return ids(s.svc.Courses.Items(), func(c *model.Course) string { return c.ID })
	})
	completeClassroomIDs = completeIDs(func(s *session) []string {
		return ids(s.svc.Classrooms.Items(), func(c *model.Classroom) string { return c.ID })
	})
	completeFieldIDs = completeIDs(func(s *session) []string {
		return ids(s.svc.Fields.Items(), func(f *model.DiplomaField) string { return f.ID })
	})
	completeDiplomaIDs = completeIDs(func(s *session) []string {
		return ids(s.svc.Diplomas.Items(), func(d *model.Diploma) string { return d.ID })
	})
	completeTodoIDs = completeIDs(func(s *session) []string {
		return ids(s.svc.Todos.Items(), func(t *model.Todo) string { return model.FormatID(t.ID) })
	})
	completeContactAddresses = completeIDs(func(s *session) []string {
		return ids(s.svc.Contacts.Items(), func(c *model.Contact) string { return c.Address })
	})
	completeSubjectIDs = completeIDs(func(s *session) []string {
		return ids(s.svc.Subjects.Items(), func(sub *model.Subject) string { return model.FormatID(sub.ID) })
	})
)

func ids[T any](items []T, id func(*T) string) []string {
	out := make([]string, len(items))
	for i := range items {
		out[i] = id(&items[i])
	}
	return out
}

// completeInstructors completes from the configured instructors.
func completeInstructors(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	sess, err := openSession()
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	defer sess.Close()
	return sess.svc.Reference().Instructors(), cobra.ShellCompDirectiveNoFileComp
}

// completeResponsiblePersons completes from the configured responsible persons.
func completeResponsiblePersons(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	sess, err := openSession()
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	defer sess.Close()
	return sess.svc.Reference().ResponsiblePersons(), cobra.ShellCompDirectiveNoFileComp
}

func completeCourseStatuses(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	var out []string
	for _, s := range model.CourseStatuses {
		out = append(out, s.Alias())
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}

func completeRoomTypes(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	var out []string
	for _, rt := range model.RoomTypes {
		out = append(out, rt.Alias())
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}
