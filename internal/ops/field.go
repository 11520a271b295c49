package ops

import (
	"strings"

	"github.com/jacksmith/campus/internal/collection"
	"github.com/jacksmith/campus/internal/model"
)

// FieldChanges represents fields that can be updated on a diploma field.
type FieldChanges struct {
	Name *string
	Type *model.FieldType
}

// AddField adds a field to the diploma form configuration.
func (s *Services) AddField(in FieldInput) (*model.DiplomaField, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := s.checkForm("field", in); err != nil {
		return nil, err
	}

	f := model.DiplomaField{
		ID:   nextID(s, s.Fields),
		Name: in.Name,
		Type: in.Type,
	}
	if err := s.Fields.Add(f); err != nil {
		return nil, err
	}
	return &f, nil
}

// UpdateField applies changes to an existing field.
func (s *Services) UpdateField(id string, changes FieldChanges) (*model.DiplomaField, error) {
	f, ok := s.Fields.Find(id)
	if !ok {
		return nil, &collection.NotFoundError{Kind: "field", ID: id}
	}

	if changes.Name != nil {
		f.Name = strings.TrimSpace(*changes.Name)
	}
	if changes.Type != nil {
		f.Type = *changes.Type
	}

	if err := s.checkForm("field", FieldInput{Name: f.Name, Type: f.Type}); err != nil {
		return nil, err
	}
	if err := s.Fields.Update(f); err != nil {
		return nil, err
	}
	return &f, nil
}

// DeleteField removes a field.
func (s *Services) DeleteField(id string) (*model.DiplomaField, error) {
	f, err := s.Fields.Remove(id)
	if err != nil {
		return nil, err
	}
	return &f, nil
}
