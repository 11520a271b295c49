package ops

import (
	"strings"

	"github.com/jacksmith/campus/internal/collection"
	"github.com/jacksmith/campus/internal/model"
)

// CourseChanges represents fields that can be updated on a course.
type CourseChanges struct {
	Name        *string
	Instructor  *string
	Students    *int
	Status      *model.CourseStatus
	Description *string
}

// CourseFilter specifies criteria for listing courses. Zero values match all.
type CourseFilter struct {
	Instructor string
	Status     model.CourseStatus
	Name       string // case-insensitive substring
}

// canStoreCourse keeps open courses populated. It only applies when the
// mutation touches status or students, so legacy rows stay editable.
func canStoreCourse(prev, next *model.Course) collection.Verdict {
	if next.Status != model.CourseStatusOpen || next.Students > 0 {
		return collection.Accept()
	}
	if prev != nil && prev.Status == next.Status && prev.Students == next.Students {
		return collection.Accept()
	}
	return collection.Reject("status", "course %q cannot be open with no students", next.Name)
}

func canRemoveCourse(c *model.Course) collection.Verdict {
	if c.Students > 0 {
		return collection.Reject("students", "course %q has %d students and cannot be deleted", c.Name, c.Students)
	}
	return collection.Accept()
}

func courseInput(c *model.Course) CourseInput {
	return CourseInput{
		Name:        c.Name,
		Instructor:  c.Instructor,
		Students:    c.Students,
		Status:      c.Status,
		Description: c.Description,
	}
}

// AddCourse creates a course. An empty status means Paused.
func (s *Services) AddCourse(in CourseInput) (*model.Course, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := s.checkForm("course", in); err != nil {
		return nil, err
	}
	if in.Status == "" {
		in.Status = model.CourseStatusPaused
	}

	c := model.Course{
		ID:          nextID(s, s.Courses),
		Name:        in.Name,
		Instructor:  in.Instructor,
		Students:    in.Students,
		Status:      in.Status,
		Description: in.Description,
	}
	if err := s.Courses.Add(c); err != nil {
		return nil, err
	}
	return &c, nil
}

// UpdateCourse applies changes to an existing course.
func (s *Services) UpdateCourse(id string, changes CourseChanges) (*model.Course, error) {
	c, err := s.FindCourse(id)
	if err != nil {
		return nil, err
	}

	if changes.Name != nil {
		c.Name = strings.TrimSpace(*changes.Name)
	}
	if changes.Instructor != nil {
		c.Instructor = *changes.Instructor
	}
	if changes.Students != nil {
		c.Students = *changes.Students
	}
	if changes.Status != nil {
		c.Status = *changes.Status
	}
	if changes.Description != nil {
		c.Description = *changes.Description
	}

	if err := s.checkForm("course", courseInput(c)); err != nil {
		return nil, err
	}
	if err := s.Courses.Update(*c); err != nil {
		return nil, err
	}
	return c, nil
}

// ChangeCourseStatus moves a course to status. Setting the status it already
// has is reported as a warning and changes nothing.
func (s *Services) ChangeCourseStatus(id string, status model.CourseStatus) (*model.Course, error) {
	c, err := s.FindCourse(id)
	if err != nil {
		return nil, err
	}
	if !status.Valid() {
		return nil, &FormError{Kind: "course", Fields: []FieldError{{
			Field:   "status",
			Message: "status must be one of: " + joinLabels(model.CourseStatuses),
		}}}
	}
	if c.Status == status {
		return nil, collection.Warn("course %q is already %s", c.Name, status).Err()
	}

	c.Status = status
	if err := s.Courses.Update(*c); err != nil {
		return nil, err
	}
	return c, nil
}

// DeleteCourse removes a course that has no students.
func (s *Services) DeleteCourse(id string) (*model.Course, error) {
	c, err := s.Courses.Remove(id)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// FindCourse returns a copy of the course with the given ID.
func (s *Services) FindCourse(id string) (*model.Course, error) {
	c, ok := s.Courses.Find(id)
	if !ok {
		return nil, &collection.NotFoundError{Kind: "course", ID: id}
	}
	return &c, nil
}

// CourseQuery builds the course list query: filtered by f and ordered by
// students, most first.
func CourseQuery(f CourseFilter) collection.Query[model.Course] {
	return collection.Query[model.Course]{}.
		Where(collection.Equals(f.Instructor, func(c *model.Course) string { return c.Instructor })).
		Where(collection.Equals(string(f.Status), func(c *model.Course) string { return string(c.Status) })).
		Where(collection.Search(f.Name, func(c *model.Course) string { return c.Name })).
		OrderBy(func(a, b *model.Course) bool { return a.Students > b.Students })
}

// ListCourses returns the courses matching f.
func (s *Services) ListCourses(f CourseFilter) []model.Course {
	return CourseQuery(f).Apply(s.Courses.Items())
}
