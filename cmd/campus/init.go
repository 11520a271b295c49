package main

import (
	"fmt"

	"github.com/jacksmith/campus/internal/storage"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new campus workspace",
	Long: `Create a .campus/ directory holding the record store.

The dir backend keeps one JSON file per list under .campus/data/. The sqlite
backend keeps every list in .campus/campus.db.

Fails if .campus/ already exists in the target directory.`,
	RunE: runInit,
}

var initBackend string

func init() {
	initCmd.Flags().StringVar(&initBackend, "backend", string(storage.BackendDir), "storage backend: dir or sqlite")
	initCmd.RegisterFlagCompletionFunc("backend", cobra.FixedCompletions(
		[]string{string(storage.BackendDir), string(storage.BackendSQLite)}, cobra.ShellCompDirectiveNoFileComp))
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	backend, err := storage.ParseBackend(initBackend)
	if err != nil {
		return err
	}
	s, err := storage.Init(flagDir, backend)
	if err != nil {
		return err
	}
	fmt.Printf("Initialized campus in %s (%s backend)\n", s.CampusPath(), s.Backend())
	return nil
}
