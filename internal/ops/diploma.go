package ops

import (
	"fmt"
	"strings"

	"github.com/jacksmith/campus/internal/collection"
	"github.com/jacksmith/campus/internal/model"
)

// createdAtLayout matches the timestamps already present in stored diplomas.
const createdAtLayout = "2006-01-02T15:04:05.000Z"

// DiplomaColumn is a sortable diploma column.
type DiplomaColumn string

const (
	DiplomaByName      DiplomaColumn = "name"
	DiplomaByNumber    DiplomaColumn = "number"
	DiplomaByYear      DiplomaColumn = "year"
	DiplomaByCreatedAt DiplomaColumn = "created"
)

// DiplomaColumns lists the sortable columns.
var DiplomaColumns = []DiplomaColumn{DiplomaByName, DiplomaByNumber, DiplomaByYear, DiplomaByCreatedAt}

// DiplomaFilter specifies criteria for listing diplomas. An empty SortBy
// keeps insertion order.
type DiplomaFilter struct {
	Name       string // case-insensitive substring of diplomaName
	SortBy     DiplomaColumn
	Descending bool
}

// AddDiploma records a diploma issued now.
func (s *Services) AddDiploma(in DiplomaInput) (*model.Diploma, error) {
	in.DiplomaName = strings.TrimSpace(in.DiplomaName)
	if err := s.checkForm("diploma", in); err != nil {
		return nil, err
	}

	d := model.Diploma{
		ID:            nextID(s, s.Diplomas),
		DiplomaName:   in.DiplomaName,
		DiplomaNumber: in.DiplomaNumber,
		Year:          in.Year,
		CreatedAt:     s.now().UTC().Format(createdAtLayout),
	}
	if err := s.Diplomas.Add(d); err != nil {
		return nil, err
	}
	return &d, nil
}

// DeleteDiploma removes a diploma.
func (s *Services) DeleteDiploma(id string) (*model.Diploma, error) {
	d, err := s.Diplomas.Remove(id)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// DiplomaQuery builds the diploma list query for f.
func DiplomaQuery(f DiplomaFilter) (collection.Query[model.Diploma], error) {
	q := collection.Query[model.Diploma]{}.
		Where(collection.Search(f.Name, func(d *model.Diploma) string { return d.DiplomaName }))

	var less func(a, b *model.Diploma) bool
	switch f.SortBy {
	case "":
		return q, nil
	case DiplomaByName:
		less = func(a, b *model.Diploma) bool { return a.DiplomaName < b.DiplomaName }
	case DiplomaByNumber:
		less = func(a, b *model.Diploma) bool { return a.DiplomaNumber < b.DiplomaNumber }
	case DiplomaByYear:
		less = func(a, b *model.Diploma) bool { return a.Year < b.Year }
	case DiplomaByCreatedAt:
		less = lessCreatedAt
	default:
		return q, fmt.Errorf("unknown sort column %q", f.SortBy)
	}
	if f.Descending {
		asc := less
		less = func(a, b *model.Diploma) bool { return asc(b, a) }
	}
	return q.OrderBy(less), nil
}

// lessCreatedAt orders by issue time. Unparseable timestamps sort first.
func lessCreatedAt(a, b *model.Diploma) bool {
	ta, okA := a.CreatedTime()
	tb, okB := b.CreatedTime()
	switch {
	case !okA || !okB:
		return !okA && okB
	default:
		return ta.Before(tb)
	}
}

// ListDiplomas returns the diplomas matching f.
func (s *Services) ListDiplomas(f DiplomaFilter) ([]model.Diploma, error) {
	q, err := DiplomaQuery(f)
	if err != nil {
		return nil, err
	}
	return q.Apply(s.Diplomas.Items()), nil
}
