package ops

import (
	"strconv"
	"strings"
	"testing"

	"github.com/jacksmith/campus/internal/model"
)

func validClassroom(id, name string, capacity int) ClassroomInput {
	return ClassroomInput{
		ID:                id,
		Name:              name,
		Capacity:          capacity,
		Type:              model.RoomTypeLecture,
		ResponsiblePerson: "Nguyễn Văn A",
	}
}

func TestAddClassroom(t *testing.T) {
	s, _ := setupTestServices(t)

	c, err := s.AddClassroom(validClassroom(" A101 ", "Room A", 50))
	if err != nil {
		t.Fatalf("AddClassroom failed: %v", err)
	}
	if c.ID != "A101" {
		t.Errorf("expected trimmed id, got %q", c.ID)
	}

	t.Run("duplicate id", func(t *testing.T) {
		_, err := s.AddClassroom(validClassroom("A101", "Room B", 40))
		requireRejection(t, err, "id")
	})

	t.Run("duplicate name", func(t *testing.T) {
		_, err := s.AddClassroom(validClassroom("B202", "Room A", 40))
		requireRejection(t, err, "name")
	})

	if s.Classrooms.Len() != 1 {
		t.Errorf("expected 1 classroom, got %d", s.Classrooms.Len())
	}
}

func TestAddClassroomForm(t *testing.T) {
	s, _ := setupTestServices(t)

	tests := []struct {
		name  string
		input ClassroomInput
		field string
	}{
		{"id too long", validClassroom("ABCDEFGHIJK", "Room", 50), "id"},
		{"blank id", validClassroom(" ", "Room", 50), "id"},
		{"name too long", validClassroom("A1", strings.Repeat("n", 51), 50), "name"},
		{"capacity too small", validClassroom("A1", "Room", 9), "capacity"},
		{"capacity too large", validClassroom("A1", "Room", 201), "capacity"},
		{"unknown type", ClassroomInput{ID: "A1", Name: "Room", Capacity: 50, Type: "Gym", ResponsiblePerson: "Nguyễn Văn A"}, "type"},
		{"unknown person", ClassroomInput{ID: "A1", Name: "Room", Capacity: 50, Type: model.RoomTypeHall, ResponsiblePerson: "Nobody"}, "responsiblePerson"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.AddClassroom(tt.input)
			requireFormError(t, err, tt.field)
		})
	}

	for _, capacity := range []int{10, 200} {
		if _, err := s.AddClassroom(validClassroom("C"+strconv.Itoa(capacity), "Room "+strconv.Itoa(capacity), capacity)); err != nil {
			t.Errorf("capacity %d should be accepted: %v", capacity, err)
		}
	}
}

func TestUpdateClassroom(t *testing.T) {
	s, _ := setupTestServices(t)
	if _, err := s.AddClassroom(validClassroom("A101", "Room A", 50)); err != nil {
		t.Fatal(err)
	}
	if _, err := s.AddClassroom(validClassroom("B202", "Room B", 20)); err != nil {
		t.Fatal(err)
	}

	c, err := s.UpdateClassroom("A101", ClassroomChanges{Capacity: ptr(60), Type: ptr(model.RoomTypeLaboratory)})
	if err != nil {
		t.Fatalf("UpdateClassroom failed: %v", err)
	}
	if c.Capacity != 60 || c.Type != model.RoomTypeLaboratory || c.ID != "A101" {
		t.Errorf("unexpected classroom %+v", c)
	}

	_, err = s.UpdateClassroom("A101", ClassroomChanges{Name: ptr("Room B")})
	requireRejection(t, err, "name")

	_, err = s.UpdateClassroom("A101", ClassroomChanges{Capacity: ptr(500)})
	requireFormError(t, err, "capacity")

	_, err = s.UpdateClassroom("Z999", ClassroomChanges{Capacity: ptr(50)})
	requireNotFound(t, err)
}

func TestDeleteClassroom(t *testing.T) {
	s, _ := setupTestServices(t)
	for _, in := range []ClassroomInput{
		validClassroom("A101", "Room A", 50),
		validClassroom("B202", "Room B", 20),
		validClassroom("C303", "Room C", 30),
		validClassroom("D404", "Room D", 29),
	} {
		if _, err := s.AddClassroom(in); err != nil {
			t.Fatal(err)
		}
	}

	_, err := s.DeleteClassroom("A101")
	requireRejection(t, err, "capacity")
	_, err = s.DeleteClassroom("C303")
	requireRejection(t, err, "capacity")

	for _, id := range []string{"B202", "D404"} {
		if _, err := s.DeleteClassroom(id); err != nil {
			t.Errorf("DeleteClassroom(%s) failed: %v", id, err)
		}
	}

	if got := s.ListClassrooms(ClassroomFilter{}); len(got) != 2 {
		t.Errorf("expected 2 classrooms left, got %d", len(got))
	}

	_, err = s.DeleteClassroom("B202")
	requireNotFound(t, err)
}

func TestListClassrooms(t *testing.T) {
	s, _ := setupTestServices(t)
	rooms := []ClassroomInput{
		{ID: "A101", Name: "Main Hall", Capacity: 150, Type: model.RoomTypeHall, ResponsiblePerson: "Lê Văn C"},
		{ID: "B202", Name: "Lab 1", Capacity: 30, Type: model.RoomTypeLaboratory, ResponsiblePerson: "Trần Thị B"},
		{ID: "C303", Name: "Lecture A", Capacity: 60, Type: model.RoomTypeLecture, ResponsiblePerson: "Lê Văn C"},
	}
	for _, in := range rooms {
		if _, err := s.AddClassroom(in); err != nil {
			t.Fatal(err)
		}
	}

	ids := func(cs []model.Classroom) string {
		out := ""
		for _, c := range cs {
			out += c.ID + " "
		}
		return out
	}

	tests := []struct {
		name   string
		filter ClassroomFilter
		want   string
	}{
		{"by capacity", ClassroomFilter{}, "B202 C303 A101 "},
		{"search id", ClassroomFilter{Search: "a1"}, "A101 "},
		{"search name", ClassroomFilter{Search: "lab"}, "B202 "},
		{"type", ClassroomFilter{Type: model.RoomTypeLecture}, "C303 "},
		{"person", ClassroomFilter{ResponsiblePerson: "Lê Văn C"}, "C303 A101 "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ids(s.ListClassrooms(tt.filter)); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestClassroomStats(t *testing.T) {
	s, _ := setupTestServices(t)

	stats := s.ClassroomStats()
	if stats.Count != 0 || stats.TotalCapacity != 0 || len(stats.ByType) != 3 {
		t.Errorf("unexpected empty stats %+v", stats)
	}

	for _, in := range []ClassroomInput{
		{ID: "A", Name: "A", Capacity: 100, Type: model.RoomTypeHall, ResponsiblePerson: "Lê Văn C"},
		{ID: "B", Name: "B", Capacity: 40, Type: model.RoomTypeLecture, ResponsiblePerson: "Lê Văn C"},
		{ID: "C", Name: "C", Capacity: 20, Type: model.RoomTypeLecture, ResponsiblePerson: "Lê Văn C"},
	} {
		if _, err := s.AddClassroom(in); err != nil {
			t.Fatal(err)
		}
	}

	stats = s.ClassroomStats()
	if stats.Count != 3 || stats.TotalCapacity != 160 {
		t.Errorf("unexpected stats %+v", stats)
	}
	if stats.ByType[model.RoomTypeLecture] != 2 || stats.ByType[model.RoomTypeHall] != 1 || stats.ByType[model.RoomTypeLaboratory] != 0 {
		t.Errorf("unexpected per-type counts %v", stats.ByType)
	}
}
