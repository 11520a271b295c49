package main

import (
	"fmt"
	"strings"

	"github.com/jacksmith/campus/internal/collection"
	"github.com/jacksmith/campus/internal/model"
	"github.com/jacksmith/campus/internal/ops"
	"github.com/spf13/cobra"
)

var contactCmd = &cobra.Command{
	Use:   "contact",
	Short: "Manage the contact list",
	Long: `Add, edit, delete and list contacts.

Contacts are identified by address. Fields other than address and balance
that were imported with a contact are kept as they are; list shows their
names.`,
}

var contactAddCmd = &cobra.Command{
	Use:   "add <address> <balance>",
	Short: "Add a contact",
	Long: `Add a contact. New contacts are listed first.

Examples:
  campus contact add "12 Lê Lợi, Huế" "$1,250.00"`,
	Args: cobra.ExactArgs(2),
	RunE: runContactAdd,
}

var contactEditCmd = &cobra.Command{
	Use:   "edit <address>",
	Short: "Change a contact's address or balance",
	Long: `Change a contact's address or balance. The new address must not be
used by another contact.

Examples:
  campus contact edit "12 Lê Lợi, Huế" --balance "$2,000.00"
  campus contact edit "12 Lê Lợi, Huế" --address "40 Nguyễn Huệ, Huế"`,
	Args:              cobra.ExactArgs(1),
	RunE:              runContactEdit,
	ValidArgsFunction: completeContactAddresses,
}

var contactRmCmd = &cobra.Command{
	Use:               "rm <address>",
	Short:             "Delete a contact",
	Args:              cobra.ExactArgs(1),
	RunE:              runContactRm,
	ValidArgsFunction: completeContactAddresses,
}

var contactListCmd = &cobra.Command{
	Use:   "list",
	Short: "List contacts",
	Args:  cobra.NoArgs,
	RunE:  runContactList,
}

var (
	contactEditAddress string
	contactEditBalance string

	contactListSearch string
	contactListPage   int
	contactListWatch  bool
)

func init() {
	contactEditCmd.Flags().StringVar(&contactEditAddress, "address", "", "new address")
	contactEditCmd.Flags().StringVar(&contactEditBalance, "balance", "", "new balance")

	contactListCmd.Flags().StringVarP(&contactListSearch, "search", "s", "", "only contacts whose address contains this text")
	contactListCmd.Flags().IntVarP(&contactListPage, "page", "p", 1, "page to show")
	contactListCmd.Flags().BoolVarP(&contactListWatch, "watch", "w", false, "re-render when the store changes")

	contactCmd.AddCommand(contactAddCmd, contactEditCmd, contactRmCmd, contactListCmd)
	rootCmd.AddCommand(contactCmd)
}

func runContactAdd(cmd *cobra.Command, args []string) error {
	sess, err := openSession()
	if err != nil {
		return err
	}
	defer sess.Close()

	c, err := sess.svc.AddContact(ops.ContactInput{Address: args[0], Balance: args[1]})
	if err != nil {
		return err
	}
	fmt.Printf("Added contact %s (%s)\n", c.Address, c.Balance)
	return nil
}

func runContactEdit(cmd *cobra.Command, args []string) error {
	var changes ops.ContactChanges
	if cmd.Flags().Changed("address") {
		changes.Address = &contactEditAddress
	}
	if cmd.Flags().Changed("balance") {
		changes.Balance = &contactEditBalance
	}
	if changes.Address == nil && changes.Balance == nil {
		return fmt.Errorf("no changes specified")
	}

	sess, err := openSession()
	if err != nil {
		return err
	}
	defer sess.Close()

	c, err := sess.svc.UpdateContact(args[0], changes)
	if err != nil {
		return err
	}
	fmt.Printf("Updated contact %s (%s)\n", c.Address, c.Balance)
	return nil
}

func runContactRm(cmd *cobra.Command, args []string) error {
	sess, err := openSession()
	if err != nil {
		return err
	}
	defer sess.Close()

	c, err := sess.svc.DeleteContact(args[0])
	if err != nil {
		return err
	}
	fmt.Printf("Deleted contact %s\n", c.Address)
	return nil
}

func runContactList(cmd *cobra.Command, args []string) error {
	sess, err := openSession()
	if err != nil {
		return err
	}
	defer sess.Close()

	l := listing[model.Contact]{
		view:   collection.NewView(sess.svc.Contacts, ops.ContactQuery(contactListSearch)),
		noun:   "contacts",
		header: []string{"ADDRESS", "BALANCE", "OTHER FIELDS"},
		row: func(c *model.Contact) []string {
			return []string{c.Address, c.Balance, strings.Join(c.ExtraKeys(), ", ")}
		},
		wrap: []int{0, 2},
	}
	return l.show(sess, contactListPage, sess.config.PageSize, contactListWatch)
}
