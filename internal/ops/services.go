// Package ops implements the campus operations: form validation, guarded
// mutations and list queries over the stored collections.
package ops

import (
	"log/slog"
	"time"

	"github.com/jacksmith/campus/internal/collection"
	"github.com/jacksmith/campus/internal/kv"
	"github.com/jacksmith/campus/internal/model"
)

// Storage keys, one per collection.
const (
	KeyCourses    = "courses"
	KeyClassrooms = "classrooms"
	KeyFields     = "diplomaFields"
	KeyDiplomas   = "diplomas"
	KeyTodos      = "todos"
	KeyContacts   = "data"
	KeySubjects   = "subjects"
)

// Keys lists every collection key.
var Keys = []string{KeyCourses, KeyClassrooms, KeyFields, KeyDiplomas, KeyTodos, KeyContacts, KeySubjects}

// Services holds one collection per entity type, loaded from a single store.
type Services struct {
	store  kv.Store
	ref    model.ReferenceData
	ids    *model.IDGenerator
	now    func() time.Time
	logger *slog.Logger
	forms  *forms

	Courses    *collection.Collection[model.Course]
	Classrooms *collection.Collection[model.Classroom]
	Fields     *collection.Collection[model.DiplomaField]
	Diplomas   *collection.Collection[model.Diploma]
	Todos      *collection.Collection[model.Todo]
	Contacts   *collection.Collection[model.Contact]
	Subjects   *collection.Collection[model.Subject]
}

// Option configures Services.
type Option func(*Services)

// WithLogger sets the logger used by the services and their collections.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Services) {
		s.logger = logger
	}
}

// WithReferenceData sets the instructor and responsible person lists.
func WithReferenceData(ref model.ReferenceData) Option {
	return func(s *Services) {
		s.ref = ref
	}
}

// WithClock sets the clock used for generated IDs and timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Services) {
		s.now = now
	}
}

// New builds the services over store and loads every collection.
func New(store kv.Store, opts ...Option) *Services {
	s := &Services{
		store: store,
		ref:   model.DefaultReferenceData(),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.New(slog.DiscardHandler)
	}
	s.ids = model.NewIDGenerator(s.now)
	s.forms = newForms(s.ref)

	withLogger := collection.WithLogger(s.logger)
	s.Courses = collection.New(store, courseSchema(), withLogger)
	s.Classrooms = collection.New(store, classroomSchema(), withLogger)
	s.Fields = collection.New(store, fieldSchema(), withLogger)
	s.Diplomas = collection.New(store, diplomaSchema(), withLogger)
	s.Todos = collection.New(store, todoSchema(), withLogger)
	s.Contacts = collection.New(store, contactSchema(), withLogger)
	s.Subjects = collection.New(store, subjectSchema(), withLogger)
	s.Reload()
	return s
}

// Reload reads every collection from the store again.
func (s *Services) Reload() {
	s.Courses.Load()
	s.Classrooms.Load()
	s.Fields.Load()
	s.Diplomas.Load()
	s.Todos.Load()
	s.Contacts.Load()
	s.Subjects.Load()
}

// Store returns the underlying key-value store.
func (s *Services) Store() kv.Store {
	return s.store
}

// Reference returns the reference data forms validate against.
func (s *Services) Reference() model.ReferenceData {
	return s.ref
}

// nextID returns a generated identity not yet used in c.
func nextID[T any](s *Services, c *collection.Collection[T]) string {
	id := s.ids.NextString()
	for c.Has(id) {
		id = s.ids.NextString()
	}
	return id
}

func courseSchema() collection.Schema[model.Course] {
	return collection.Schema[model.Course]{
		Key:  KeyCourses,
		Kind: "course",
		ID:   func(c *model.Course) string { return c.ID },
		Unique: []collection.UniqueKey[model.Course]{
			{Field: "name", Value: func(c *model.Course) string { return c.Name }},
		},
		Normalize: model.NormalizeCourse,
		CanStore:  canStoreCourse,
		CanRemove: canRemoveCourse,
	}
}

func classroomSchema() collection.Schema[model.Classroom] {
	return collection.Schema[model.Classroom]{
		Key:  KeyClassrooms,
		Kind: "classroom",
		ID:   func(c *model.Classroom) string { return c.ID },
		Unique: []collection.UniqueKey[model.Classroom]{
			{Field: "name", Value: func(c *model.Classroom) string { return c.Name }},
		},
		Normalize: model.NormalizeClassroom,
		CanRemove: canRemoveClassroom,
	}
}

func fieldSchema() collection.Schema[model.DiplomaField] {
	return collection.Schema[model.DiplomaField]{
		Key:  KeyFields,
		Kind: "field",
		ID:   func(f *model.DiplomaField) string { return f.ID },
		Unique: []collection.UniqueKey[model.DiplomaField]{
			{Field: "name", Value: func(f *model.DiplomaField) string { return f.Name }},
		},
		Normalize: model.NormalizeDiplomaField,
	}
}

func diplomaSchema() collection.Schema[model.Diploma] {
	return collection.Schema[model.Diploma]{
		Key:  KeyDiplomas,
		Kind: "diploma",
		ID:   func(d *model.Diploma) string { return d.ID },
	}
}

func todoSchema() collection.Schema[model.Todo] {
	return collection.Schema[model.Todo]{
		Key:  KeyTodos,
		Kind: "todo",
		ID:   func(t *model.Todo) string { return model.FormatID(t.ID) },
	}
}

func contactSchema() collection.Schema[model.Contact] {
	return collection.Schema[model.Contact]{
		Key:  KeyContacts,
		Kind: "contact",
		ID:   func(c *model.Contact) string { return c.Address },
	}
}

func subjectSchema() collection.Schema[model.Subject] {
	return collection.Schema[model.Subject]{
		Key:  KeySubjects,
		Kind: "subject",
		ID:   func(s *model.Subject) string { return model.FormatID(s.ID) },
		Unique: []collection.UniqueKey[model.Subject]{
			{Field: "code", Value: func(s *model.Subject) string { return s.Code }},
		},
		Normalize: model.NormalizeSubject,
	}
}
