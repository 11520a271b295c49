package ops

import (
	"strings"

	"github.com/jacksmith/campus/internal/collection"
	"github.com/jacksmith/campus/internal/model"
)

// MaxRemovableCapacity is the largest capacity a classroom can have and
// still be deleted.
const MaxRemovableCapacity = 29

// ClassroomChanges represents fields that can be updated on a classroom.
// The ID is fixed at creation.
type ClassroomChanges struct {
	Name              *string
	Capacity          *int
	Type              *model.RoomType
	ResponsiblePerson *string
}

// ClassroomFilter specifies criteria for listing classrooms. Zero values match all.
type ClassroomFilter struct {
	Search            string // case-insensitive substring of ID or name
	Type              model.RoomType
	ResponsiblePerson string
}

// ClassroomStats summarizes the classroom inventory.
type ClassroomStats struct {
	Count         int
	TotalCapacity int
	ByType        map[model.RoomType]int
}

func canRemoveClassroom(c *model.Classroom) collection.Verdict {
	if c.Capacity > MaxRemovableCapacity {
		return collection.Reject("capacity",
			"classroom %s seats %d and cannot be deleted (only rooms under %d seats can)",
			c.ID, c.Capacity, MaxRemovableCapacity+1)
	}
	return collection.Accept()
}

// AddClassroom creates a classroom with the user supplied ID.
func (s *Services) AddClassroom(in ClassroomInput) (*model.Classroom, error) {
	in.ID = strings.TrimSpace(in.ID)
	in.Name = strings.TrimSpace(in.Name)
	if err := s.checkForm("classroom", in); err != nil {
		return nil, err
	}

	c := model.Classroom{
		ID:                in.ID,
		Name:              in.Name,
		Capacity:          in.Capacity,
		Type:              in.Type,
		ResponsiblePerson: in.ResponsiblePerson,
	}
	if err := s.Classrooms.Add(c); err != nil {
		return nil, err
	}
	return &c, nil
}

// UpdateClassroom applies changes to an existing classroom.
func (s *Services) UpdateClassroom(id string, changes ClassroomChanges) (*model.Classroom, error) {
	c, err := s.FindClassroom(id)
	if err != nil {
		return nil, err
	}

	if changes.Name != nil {
		c.Name = strings.TrimSpace(*changes.Name)
	}
	if changes.Capacity != nil {
		c.Capacity = *changes.Capacity
	}
	if changes.Type != nil {
		c.Type = *changes.Type
	}
	if changes.ResponsiblePerson != nil {
		c.ResponsiblePerson = *changes.ResponsiblePerson
	}

	in := ClassroomInput{
		ID:                c.ID,
		Name:              c.Name,
		Capacity:          c.Capacity,
		Type:              c.Type,
		ResponsiblePerson: c.ResponsiblePerson,
	}
	if err := s.checkForm("classroom", in); err != nil {
		return nil, err
	}
	if err := s.Classrooms.Update(*c); err != nil {
		return nil, err
	}
	return c, nil
}

// DeleteClassroom removes a classroom with fewer than 30 seats.
func (s *Services) DeleteClassroom(id string) (*model.Classroom, error) {
	c, err := s.Classrooms.Remove(id)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// FindClassroom returns a copy of the classroom with the given ID.
func (s *Services) FindClassroom(id string) (*model.Classroom, error) {
	c, ok := s.Classrooms.Find(id)
	if !ok {
		return nil, &collection.NotFoundError{Kind: "classroom", ID: id}
	}
	return &c, nil
}

// ClassroomQuery builds the classroom list query: filtered by f and ordered
// by capacity, smallest first.
func ClassroomQuery(f ClassroomFilter) collection.Query[model.Classroom] {
	return collection.Query[model.Classroom]{}.
		Where(collection.Search(f.Search,
			func(c *model.Classroom) string { return c.ID },
			func(c *model.Classroom) string { return c.Name })).
		Where(collection.Equals(string(f.Type), func(c *model.Classroom) string { return string(c.Type) })).
		Where(collection.Equals(f.ResponsiblePerson, func(c *model.Classroom) string { return c.ResponsiblePerson })).
		OrderBy(func(a, b *model.Classroom) bool { return a.Capacity < b.Capacity })
}

// ListClassrooms returns the classrooms matching f.
func (s *Services) ListClassrooms(f ClassroomFilter) []model.Classroom {
	return ClassroomQuery(f).Apply(s.Classrooms.Items())
}

// Stats counts the given classrooms and their seats.
func Stats(rooms []model.Classroom) ClassroomStats {
	stats := ClassroomStats{ByType: make(map[model.RoomType]int, len(model.RoomTypes))}
	for _, rt := range model.RoomTypes {
		stats.ByType[rt] = 0
	}
	for _, r := range rooms {
		stats.Count++
		stats.TotalCapacity += r.Capacity
		stats.ByType[r.Type]++
	}
	return stats
}

// ClassroomStats summarizes every stored classroom.
func (s *Services) ClassroomStats() ClassroomStats {
	return Stats(s.Classrooms.Items())
}
