package ops

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	"github.com/jacksmith/campus/internal/collection"
	"github.com/jacksmith/campus/internal/model"
)

func validCourse(name string) CourseInput {
	return CourseInput{Name: name, Instructor: "Nguyễn Văn A", Students: 0, Status: model.CourseStatusPaused}
}

func TestAddCourse(t *testing.T) {
	s, store := setupTestServices(t)

	c, err := s.AddCourse(validCourse("Algorithms"))
	if err != nil {
		t.Fatalf("AddCourse failed: %v", err)
	}
	if c.ID == "" {
		t.Error("expected generated id")
	}

	list := s.ListCourses(CourseFilter{})
	if len(list) != 1 || list[0].Name != "Algorithms" || list[0].Status != model.CourseStatusPaused {
		t.Fatalf("unexpected list: %+v", list)
	}

	var stored []model.Course
	if err := json.Unmarshal([]byte(storedJSON(t, store, KeyCourses)), &stored); err != nil {
		t.Fatalf("stored value is not a course list: %v", err)
	}
	if len(stored) != 1 || stored[0] != list[0] {
		t.Errorf("stored list %+v does not match %+v", stored, list)
	}
}

func TestAddCourseDuplicateName(t *testing.T) {
	s, store := setupTestServices(t)
	if _, err := s.AddCourse(validCourse("Algorithms")); err != nil {
		t.Fatalf("AddCourse failed: %v", err)
	}
	before := storedJSON(t, store, KeyCourses)

	_, err := s.AddCourse(validCourse("Algorithms"))
	requireRejection(t, err, "name")

	if s.Courses.Len() != 1 {
		t.Errorf("expected 1 course, got %d", s.Courses.Len())
	}
	if after := storedJSON(t, store, KeyCourses); after != before {
		t.Errorf("storage changed on rejection:\n%s\n%s", before, after)
	}

	// Names are compared exactly.
	if _, err := s.AddCourse(validCourse("algorithms")); err != nil {
		t.Errorf("expected different case to be accepted: %v", err)
	}
}

func TestAddCourseForm(t *testing.T) {
	s, _ := setupTestServices(t)

	tests := []struct {
		name   string
		input  CourseInput
		fields []string
	}{
		{"blank name", CourseInput{Name: "  ", Instructor: "Nguyễn Văn A"}, []string{"name"}},
		{"long name", CourseInput{Name: strings.Repeat("x", 101), Instructor: "Nguyễn Văn A"}, []string{"name"}},
		{"unknown instructor", CourseInput{Name: "Go", Instructor: "Nobody"}, []string{"instructor"}},
		{"negative students", CourseInput{Name: "Go", Instructor: "Nguyễn Văn A", Students: -1}, []string{"students"}},
		{"bad status", CourseInput{Name: "Go", Instructor: "Nguyễn Văn A", Status: "Running"}, []string{"status"}},
		{"several", CourseInput{Students: -2}, []string{"name", "instructor", "students"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.AddCourse(tt.input)
			requireFormError(t, err, tt.fields...)
			if s.Courses.Len() != 0 {
				t.Error("course added despite form error")
			}
		})
	}
}

func TestAddCourseNameLimitCountsCharacters(t *testing.T) {
	s, _ := setupTestServices(t)

	// 100 two-byte characters fit.
	if _, err := s.AddCourse(validCourse(strings.Repeat("ă", 100))); err != nil {
		t.Fatalf("expected 100 characters to be accepted: %v", err)
	}
}

func TestAddCourseDefaultsToPaused(t *testing.T) {
	s, _ := setupTestServices(t)

	c, err := s.AddCourse(CourseInput{Name: "Go", Instructor: "Trần Thị B"})
	if err != nil {
		t.Fatalf("AddCourse failed: %v", err)
	}
	if c.Status != model.CourseStatusPaused {
		t.Errorf("expected paused, got %q", c.Status)
	}
}

func TestAddOpenCourseRequiresStudents(t *testing.T) {
	s, _ := setupTestServices(t)

	in := validCourse("Go")
	in.Status = model.CourseStatusOpen
	_, err := s.AddCourse(in)
	requireRejection(t, err, "status")

	in.Students = 12
	if _, err := s.AddCourse(in); err != nil {
		t.Fatalf("expected open course with students: %v", err)
	}
}

func TestUpdateCourse(t *testing.T) {
	s, _ := setupTestServices(t)
	a, _ := s.AddCourse(validCourse("Algorithms"))
	if _, err := s.AddCourse(validCourse("Databases")); err != nil {
		t.Fatal(err)
	}

	t.Run("change fields", func(t *testing.T) {
		c, err := s.UpdateCourse(a.ID, CourseChanges{
			Students:    ptr(25),
			Description: ptr("Sorting and graphs"),
		})
		if err != nil {
			t.Fatalf("UpdateCourse failed: %v", err)
		}
		if c.Students != 25 || c.Description != "Sorting and graphs" || c.Name != "Algorithms" {
			t.Errorf("unexpected course %+v", c)
		}
	})

	t.Run("keep own name", func(t *testing.T) {
		if _, err := s.UpdateCourse(a.ID, CourseChanges{Name: ptr("Algorithms")}); err != nil {
			t.Errorf("renaming to own name failed: %v", err)
		}
	})

	t.Run("name of another course", func(t *testing.T) {
		_, err := s.UpdateCourse(a.ID, CourseChanges{Name: ptr("Databases")})
		requireRejection(t, err, "name")
		c, _ := s.FindCourse(a.ID)
		if c.Name != "Algorithms" {
			t.Errorf("name changed on rejection: %q", c.Name)
		}
	})

	t.Run("invalid form", func(t *testing.T) {
		_, err := s.UpdateCourse(a.ID, CourseChanges{Students: ptr(-1)})
		requireFormError(t, err, "students")
	})

	t.Run("missing", func(t *testing.T) {
		_, err := s.UpdateCourse("nope", CourseChanges{Name: ptr("x")})
		requireNotFound(t, err)
	})
}

func TestChangeCourseStatus(t *testing.T) {
	s, _ := setupTestServices(t)
	empty, _ := s.AddCourse(validCourse("Empty"))
	in := validCourse("Full")
	in.Students = 10
	full, _ := s.AddCourse(in)

	t.Run("open without students", func(t *testing.T) {
		_, err := s.ChangeCourseStatus(empty.ID, model.CourseStatusOpen)
		requireRejection(t, err, "status")
		c, _ := s.FindCourse(empty.ID)
		if c.Status != model.CourseStatusPaused {
			t.Errorf("status changed on rejection: %q", c.Status)
		}
	})

	t.Run("open with students", func(t *testing.T) {
		c, err := s.ChangeCourseStatus(full.ID, model.CourseStatusOpen)
		if err != nil {
			t.Fatalf("ChangeCourseStatus failed: %v", err)
		}
		if c.Status != model.CourseStatusOpen {
			t.Errorf("expected open, got %q", c.Status)
		}
	})

	t.Run("same status warns", func(t *testing.T) {
		rev := s.Courses.Revision()
		_, err := s.ChangeCourseStatus(full.ID, model.CourseStatusOpen)
		rej, ok := collection.AsRejection(err)
		if !ok || !rej.Warning() {
			t.Fatalf("expected warning, got %v", err)
		}
		if s.Courses.Revision() != rev {
			t.Error("warning must not change state")
		}
	})

	t.Run("close without students", func(t *testing.T) {
		if _, err := s.ChangeCourseStatus(empty.ID, model.CourseStatusClosed); err != nil {
			t.Errorf("closing failed: %v", err)
		}
	})

	t.Run("unknown status", func(t *testing.T) {
		_, err := s.ChangeCourseStatus(full.ID, "Running")
		requireFormError(t, err, "status")
	})

	t.Run("missing", func(t *testing.T) {
		_, err := s.ChangeCourseStatus("nope", model.CourseStatusOpen)
		requireNotFound(t, err)
	})
}

func TestOpenCourseCannotDropToZeroStudents(t *testing.T) {
	s, _ := setupTestServices(t)
	in := validCourse("Go")
	in.Students = 5
	in.Status = model.CourseStatusOpen
	c, _ := s.AddCourse(in)

	_, err := s.UpdateCourse(c.ID, CourseChanges{Students: ptr(0)})
	requireRejection(t, err, "status")
}

func TestDeleteCourse(t *testing.T) {
	s, _ := setupTestServices(t)
	in := validCourse("Busy")
	in.Students = 3
	busy, _ := s.AddCourse(in)
	idle, _ := s.AddCourse(validCourse("Idle"))

	_, err := s.DeleteCourse(busy.ID)
	requireRejection(t, err, "students")
	if !s.Courses.Has(busy.ID) {
		t.Error("course with students was deleted")
	}

	removed, err := s.DeleteCourse(idle.ID)
	if err != nil {
		t.Fatalf("DeleteCourse failed: %v", err)
	}
	if removed.Name != "Idle" {
		t.Errorf("expected Idle, got %q", removed.Name)
	}

	_, err = s.DeleteCourse(idle.ID)
	requireNotFound(t, err)
}

func TestListCourses(t *testing.T) {
	s, _ := setupTestServices(t)
	add := func(name, instructor string, students int, status model.CourseStatus) {
		t.Helper()
		if _, err := s.AddCourse(CourseInput{Name: name, Instructor: instructor, Students: students, Status: status}); err != nil {
			t.Fatalf("AddCourse(%s) failed: %v", name, err)
		}
	}
	add("Go Basics", "Nguyễn Văn A", 10, model.CourseStatusOpen)
	add("Advanced Go", "Trần Thị B", 30, model.CourseStatusOpen)
	add("Databases", "Nguyễn Văn A", 20, model.CourseStatusClosed)
	add("Networks", "Lê Văn C", 0, model.CourseStatusPaused)

	names := func(cs []model.Course) []string {
		out := make([]string, len(cs))
		for i, c := range cs {
			out[i] = c.Name
		}
		return out
	}

	tests := []struct {
		name   string
		filter CourseFilter
		want   []string
	}{
		{"all by students", CourseFilter{}, []string{"Advanced Go", "Databases", "Go Basics", "Networks"}},
		{"instructor", CourseFilter{Instructor: "Nguyễn Văn A"}, []string{"Databases", "Go Basics"}},
		{"status", CourseFilter{Status: model.CourseStatusOpen}, []string{"Advanced Go", "Go Basics"}},
		{"name substring", CourseFilter{Name: "GO"}, []string{"Advanced Go", "Go Basics"}},
		{"combined", CourseFilter{Name: "go", Instructor: "Nguyễn Văn A"}, []string{"Go Basics"}},
		{"none", CourseFilter{Name: "python"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := names(s.ListCourses(tt.filter))
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("got %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestCourseViewRecomputesAfterMutation(t *testing.T) {
	s, _ := setupTestServices(t)
	v := collection.NewView(s.Courses, CourseQuery(CourseFilter{}))
	if v.Len() != 0 {
		t.Fatalf("expected empty view, got %d", v.Len())
	}

	if _, err := s.AddCourse(validCourse("Algorithms")); err != nil {
		t.Fatal(err)
	}
	if v.Len() != 1 {
		t.Errorf("expected view to see new course, got %d", v.Len())
	}
}

func TestCoursesKeepForeignRecords(t *testing.T) {
	s, store := setupTestServices(t)
	subject := `{"id":1710000000000,"code":"IT1","name":"Go","credits":3,"knowledgeBlocks":["Core"]}`
	err := store.Put(KeyCourses, []byte(`[`+subject+`,
		{"id":"1","name":"Algorithms","instructor":"Nguyễn Văn A","students":0,"status":"Tạm dừng"}]`))
	if err != nil {
		t.Fatal(err)
	}
	s.Reload()

	if s.Courses.Len() != 1 {
		t.Fatalf("expected the readable course to load, got %d", s.Courses.Len())
	}
	if _, err := s.AddCourse(validCourse("Databases")); err != nil {
		t.Fatalf("AddCourse failed: %v", err)
	}

	var stored []json.RawMessage
	if err := json.Unmarshal([]byte(storedJSON(t, store, KeyCourses)), &stored); err != nil {
		t.Fatal(err)
	}
	if len(stored) != 3 {
		t.Fatalf("expected 3 stored records, got %d", len(stored))
	}
	var kept, want any
	_ = json.Unmarshal(stored[0], &kept)
	_ = json.Unmarshal([]byte(subject), &want)
	if !reflect.DeepEqual(kept, want) {
		t.Errorf("foreign record moved or changed: %s", stored[0])
	}
}
