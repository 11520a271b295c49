package ops

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"

	"github.com/jacksmith/campus/internal/collection"
	"github.com/jacksmith/campus/internal/kv"
	"github.com/jacksmith/campus/internal/model"
)

// IssueType represents the type of integrity issue.
type IssueType string

const (
	IssueUnreadable   IssueType = "unreadable"
	IssueUndecodable  IssueType = "undecodable"
	IssueLegacy       IssueType = "legacy_value"
	IssueDuplicateID  IssueType = "duplicate_id"
	IssueDuplicateKey IssueType = "duplicate_key"
	IssueInvalid      IssueType = "invalid"
	IssueGuard        IssueType = "guard"
)

// Issue represents a data integrity issue in a stored collection.
type Issue struct {
	Type    IssueType
	Key     string // storage key
	ItemID  string // empty for whole-collection issues
	Message string
}

func (i Issue) String() string {
	if i.ItemID == "" {
		return fmt.Sprintf("%s: %s - %s", i.Key, i.Type, i.Message)
	}
	return fmt.Sprintf("%s/%s: %s - %s", i.Key, i.ItemID, i.Type, i.Message)
}

// Fixable reports whether Fix resolves the issue.
func (i Issue) Fixable() bool {
	return i.Type == IssueUnreadable || i.Type == IssueLegacy
}

// Check inspects the stored collections whose key matches pattern (all if
// empty). It reads the store directly and does not change anything.
func (s *Services) Check(pattern string) ([]Issue, error) {
	var issues []Issue
	for _, key := range Keys {
		ok, err := kv.MatchKey(key, pattern)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		switch key {
		case KeyCourses:
			issues = append(issues, checkStored(s, s.Courses, func(c *model.Course) (string, any) {
				return "course", courseInput(c)
			})...)
		case KeyClassrooms:
			issues = append(issues, checkStored(s, s.Classrooms, func(c *model.Classroom) (string, any) {
				return "classroom", ClassroomInput{
					ID: c.ID, Name: c.Name, Capacity: c.Capacity, Type: c.Type, ResponsiblePerson: c.ResponsiblePerson,
				}
			})...)
		case KeyFields:
			issues = append(issues, checkStored(s, s.Fields, func(f *model.DiplomaField) (string, any) {
				return "field", FieldInput{Name: f.Name, Type: f.Type}
			})...)
		case KeyDiplomas:
			issues = append(issues, checkStored(s, s.Diplomas, func(d *model.Diploma) (string, any) {
				return "diploma", DiplomaInput{DiplomaName: d.DiplomaName, DiplomaNumber: d.DiplomaNumber, Year: d.Year}
			})...)
		case KeyTodos:
			issues = append(issues, checkStored(s, s.Todos, func(t *model.Todo) (string, any) {
				return "todo", TodoInput{Text: t.Text}
			})...)
		case KeyContacts:
			issues = append(issues, checkStored(s, s.Contacts, func(c *model.Contact) (string, any) {
				return "contact", ContactInput{Address: c.Address, Balance: c.Balance}
			})...)
		case KeySubjects:
			issues = append(issues, checkStored(s, s.Subjects, func(sub *model.Subject) (string, any) {
				return "subject", subjectInput(sub)
			})...)
		}
	}
	return issues, nil
}

// checkStored reports the issues of one stored collection.
func checkStored[T any](s *Services, c *collection.Collection[T], input func(*T) (string, any)) []Issue {
	schema := c.Schema()
	items, undecoded, err := c.Stored()
	if err != nil {
		return []Issue{{Type: IssueUnreadable, Key: schema.Key, Message: err.Error()}}
	}

	var issues []Issue
	for _, u := range undecoded {
		issues = append(issues, Issue{
			Type:    IssueUndecodable,
			Key:     schema.Key,
			ItemID:  "#" + strconv.Itoa(u.Index),
			Message: fmt.Sprintf("kept as stored: %v", u.Err),
		})
	}
	seenIDs := make(map[string]bool)
	seenKeys := make([]map[string]string, len(schema.Unique))
	for i := range seenKeys {
		seenKeys[i] = make(map[string]string)
	}

	for i := range items {
		item := items[i]
		id := schema.ID(&item)
		add := func(typ IssueType, format string, args ...any) {
			issues = append(issues, Issue{Type: typ, Key: schema.Key, ItemID: id, Message: fmt.Sprintf(format, args...)})
		}

		if seenIDs[id] {
			add(IssueDuplicateID, "id %q appears more than once", id)
		}
		seenIDs[id] = true

		if schema.Normalize != nil {
			normalized := item
			schema.Normalize(&normalized)
			if !reflect.DeepEqual(normalized, item) {
				add(IssueLegacy, "stored in an outdated shape (run check --fix)")
			}
			item = normalized
		}

		for k, u := range schema.Unique {
			v := u.Value(&item)
			if first, dup := seenKeys[k][v]; dup {
				add(IssueDuplicateKey, "%s %q is also used by %s", u.Field, v, first)
				continue
			}
			seenKeys[k][v] = id
		}

		if kind, in := input(&item); in != nil {
			var formErr *FormError
			if err := s.forms.check(kind, in); errors.As(err, &formErr) {
				for _, f := range formErr.Fields {
					add(IssueInvalid, "%s", f.Message)
				}
			}
		}

		if schema.CanStore != nil {
			if v := schema.CanStore(nil, &item); !v.OK() {
				add(IssueGuard, "%s", v.Reason)
			}
		}
	}
	return issues
}

// Fix rewrites every stored collection matching pattern through
// load, normalize and persist. Keys that were never written are skipped.
// It returns the rewritten keys.
func (s *Services) Fix(pattern string) ([]string, error) {
	rewrites := map[string]func() error{
		KeyCourses:    s.Courses.Rewrite,
		KeyClassrooms: s.Classrooms.Rewrite,
		KeyFields:     s.Fields.Rewrite,
		KeyDiplomas:   s.Diplomas.Rewrite,
		KeyTodos:      s.Todos.Rewrite,
		KeyContacts:   s.Contacts.Rewrite,
		KeySubjects:   s.Subjects.Rewrite,
	}

	var fixed []string
	for _, key := range Keys {
		ok, err := kv.MatchKey(key, pattern)
		if err != nil {
			return fixed, err
		}
		if !ok {
			continue
		}
		if _, err := s.store.Get(key); err != nil {
			if errors.Is(err, kv.ErrNotFound) {
				continue
			}
			return fixed, err
		}
		if err := rewrites[key](); err != nil {
			return fixed, err
		}
		s.logger.Info("rewrote collection", "key", key)
		fixed = append(fixed, key)
	}
	return fixed, nil
}
