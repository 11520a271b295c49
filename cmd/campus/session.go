package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/jacksmith/campus/internal/cli"
	"github.com/jacksmith/campus/internal/model"
	"github.com/jacksmith/campus/internal/ops"
	"github.com/jacksmith/campus/internal/storage"
)

// session is an opened workspace: its config, store and services.
type session struct {
	storage *storage.Storage
	config  *storage.Config
	logger  *slog.Logger
	svc     *ops.Services
}

// openSession opens the workspace in --dir and loads every collection.
func openSession() (*session, error) {
	st, err := storage.Open(flagDir)
	if err != nil {
		return nil, err
	}
	cfg, err := st.LoadConfig()
	if err != nil {
		return nil, err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return nil, err
	}
	store, err := st.KV(logger)
	if err != nil {
		return nil, err
	}

	svc := ops.New(store,
		ops.WithLogger(logger),
		ops.WithReferenceData(cfg.ReferenceData()))
	logger.Debug("opened workspace", "root", st.Root(), "backend", st.Backend(),
		"version", st.Config().Version, "config", st.ConfigPath())

	return &session{storage: st, config: cfg, logger: logger, svc: svc}, nil
}

// Close releases the store.
func (s *session) Close() error {
	return s.svc.Store().Close()
}

// newLogger builds the stderr logger. --log-level overrides the config.
func newLogger(cfg *storage.Config) (*slog.Logger, error) {
	name := cfg.LogLevel
	if flagLogLevel != "" {
		name = flagLogLevel
	}
	level, err := storage.ParseLogLevel(name)
	if err != nil {
		return nil, &cli.ValidationError{Field: "log level", Message: err.Error()}
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})), nil
}

// Choices for enumerated flags. The stored Vietnamese label and the English
// alias are both accepted.

func courseStatusChoices() []cli.Choice {
	choices := make([]cli.Choice, len(model.CourseStatuses))
	for i, s := range model.CourseStatuses {
		choices[i] = cli.Choice{Value: string(s), Aliases: []string{s.Alias()}}
	}
	return choices
}

func roomTypeChoices() []cli.Choice {
	choices := make([]cli.Choice, len(model.RoomTypes))
	for i, rt := range model.RoomTypes {
		choices[i] = cli.Choice{Value: string(rt), Aliases: []string{rt.Alias()}}
	}
	return choices
}

func fieldTypeChoices() []cli.Choice {
	choices := make([]cli.Choice, len(model.FieldTypes))
	for i, ft := range model.FieldTypes {
		choices[i] = cli.Choice{Value: string(ft), Aliases: []string{strings.ToLower(string(ft))}}
	}
	return choices
}

func diplomaColumnChoices() []cli.Choice {
	choices := make([]cli.Choice, len(ops.DiplomaColumns))
	for i, c := range ops.DiplomaColumns {
		choices[i] = cli.Choice{Value: string(c), Aliases: []string{string(c)}}
	}
	return choices
}

func parseCourseStatus(s string) (model.CourseStatus, error) {
	v, err := cli.MatchChoice("status", s, courseStatusChoices())
	return model.CourseStatus(v), err
}

func parseRoomType(s string) (model.RoomType, error) {
	v, err := cli.MatchChoice("type", s, roomTypeChoices())
	return model.RoomType(v), err
}

func parseFieldType(s string) (model.FieldType, error) {
	v, err := cli.MatchChoice("type", s, fieldTypeChoices())
	return model.FieldType(v), err
}

// parseSubjectID parses a subject ID argument.
func parseSubjectID(s string) (int64, error) {
	id, err := model.ParseSubjectID(s)
	if err != nil {
		return 0, &cli.ValidationError{Field: "subject ID", Message: fmt.Sprintf("%q is not a number", s)}
	}
	return id, nil
}

// parseTodoID parses a to-do ID argument.
func parseTodoID(s string) (int64, error) {
	id, err := model.ParseTodoID(s)
	if err != nil {
		return 0, &cli.ValidationError{Field: "to-do ID", Message: fmt.Sprintf("%q is not a number", s)}
	}
	return id, nil
}
