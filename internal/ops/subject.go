package ops

import (
	"slices"
	"strings"

	"github.com/jacksmith/campus/internal/collection"
	"github.com/jacksmith/campus/internal/model"
)

// SubjectChanges represents fields that can be updated on a subject.
// Blocks in RemoveBlocks are dropped before AddBlocks are appended.
type SubjectChanges struct {
	Code         *string
	Name         *string
	Credits      *int
	AddBlocks    []string
	RemoveBlocks []string
}

// AddSubject adds a subject to the catalog.
func (s *Services) AddSubject(in SubjectInput) (*model.Subject, error) {
	in.Code = strings.TrimSpace(in.Code)
	in.Name = strings.TrimSpace(in.Name)
	in.KnowledgeBlocks = trimBlocks(in.KnowledgeBlocks)
	if err := s.checkForm("subject", in); err != nil {
		return nil, err
	}

	id := s.ids.Next()
	for s.Subjects.Has(model.FormatID(id)) {
		id = s.ids.Next()
	}
	sub := model.Subject{
		ID:              id,
		Code:            in.Code,
		Name:            in.Name,
		Credits:         in.Credits,
		KnowledgeBlocks: in.KnowledgeBlocks,
	}
	if err := s.Subjects.Add(sub); err != nil {
		return nil, err
	}
	return &sub, nil
}

// UpdateSubject applies changes to an existing subject.
func (s *Services) UpdateSubject(id int64, changes SubjectChanges) (*model.Subject, error) {
	sub, err := s.FindSubject(id)
	if err != nil {
		return nil, err
	}

	if changes.Code != nil {
		sub.Code = strings.TrimSpace(*changes.Code)
	}
	if changes.Name != nil {
		sub.Name = strings.TrimSpace(*changes.Name)
	}
	if changes.Credits != nil {
		sub.Credits = *changes.Credits
	}
	if len(changes.RemoveBlocks) > 0 || len(changes.AddBlocks) > 0 {
		remove := trimBlocks(changes.RemoveBlocks)
		blocks := slices.DeleteFunc(slices.Clone(sub.KnowledgeBlocks), func(b string) bool {
			return slices.Contains(remove, b)
		})
		sub.KnowledgeBlocks = append(blocks, trimBlocks(changes.AddBlocks)...)
	}

	if err := s.checkForm("subject", subjectInput(sub)); err != nil {
		return nil, err
	}
	if err := s.Subjects.Update(*sub); err != nil {
		return nil, err
	}
	return sub, nil
}

// DeleteSubject removes a subject.
func (s *Services) DeleteSubject(id int64) (*model.Subject, error) {
	sub, err := s.Subjects.Remove(model.FormatID(id))
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// FindSubject returns a copy of the subject with the given ID.
func (s *Services) FindSubject(id int64) (*model.Subject, error) {
	sub, ok := s.Subjects.Find(model.FormatID(id))
	if !ok {
		return nil, &collection.NotFoundError{Kind: "subject", ID: model.FormatID(id)}
	}
	sub.KnowledgeBlocks = slices.Clone(sub.KnowledgeBlocks)
	return &sub, nil
}

// SubjectQuery matches subjects whose code or name contains search.
func SubjectQuery(search string) collection.Query[model.Subject] {
	return collection.Query[model.Subject]{}.
		Where(collection.Search(search,
			func(s *model.Subject) string { return s.Code },
			func(s *model.Subject) string { return s.Name }))
}

// ListSubjects returns the subjects whose code or name contains search.
func (s *Services) ListSubjects(search string) []model.Subject {
	return SubjectQuery(search).Apply(s.Subjects.Items())
}

func subjectInput(s *model.Subject) SubjectInput {
	return SubjectInput{Code: s.Code, Name: s.Name, Credits: s.Credits, KnowledgeBlocks: s.KnowledgeBlocks}
}

// trimBlocks trims each block name and drops the empty ones.
func trimBlocks(blocks []string) []string {
	out := make([]string, 0, len(blocks))
	for _, b := range blocks {
		if b = strings.TrimSpace(b); b != "" {
			out = append(out, b)
		}
	}
	return out
}
