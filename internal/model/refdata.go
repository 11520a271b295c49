package model

import "slices"

// DefaultInstructors and DefaultResponsiblePersons seed ReferenceData when
// the user config does not list any.
var (
	DefaultInstructors        = []string{"Nguyễn Văn A", "Trần Thị B", "Lê Văn C"}
	DefaultResponsiblePersons = []string{"Nguyễn Văn A", "Trần Thị B", "Lê Văn C"}
)

// ReferenceData holds the lookup lists forms choose from. It is built once at
// startup and never modified afterwards; accessors return copies.
type ReferenceData struct {
	instructors        []string
	responsiblePersons []string
}

// NewReferenceData builds reference data, falling back to the defaults for
// any empty list.
func NewReferenceData(instructors, responsiblePersons []string) ReferenceData {
	if len(instructors) == 0 {
		instructors = DefaultInstructors
	}
	if len(responsiblePersons) == 0 {
		responsiblePersons = DefaultResponsiblePersons
	}
	return ReferenceData{
		instructors:        slices.Clone(instructors),
		responsiblePersons: slices.Clone(responsiblePersons),
	}
}

// DefaultReferenceData returns reference data built from the defaults.
func DefaultReferenceData() ReferenceData {
	return NewReferenceData(nil, nil)
}

// Instructors returns the known instructors.
func (r ReferenceData) Instructors() []string {
	return slices.Clone(r.instructors)
}

// ResponsiblePersons returns the people a classroom can be assigned to.
func (r ReferenceData) ResponsiblePersons() []string {
	return slices.Clone(r.responsiblePersons)
}

// IsInstructor reports whether name is a known instructor.
func (r ReferenceData) IsInstructor(name string) bool {
	return slices.Contains(r.instructors, name)
}

// IsResponsiblePerson reports whether name is a known responsible person.
func (r ReferenceData) IsResponsiblePerson(name string) bool {
	return slices.Contains(r.responsiblePersons, name)
}
