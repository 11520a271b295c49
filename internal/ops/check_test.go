package ops

import (
	"strings"
	"testing"
)

func issueTypes(issues []Issue) map[IssueType]int {
	out := make(map[IssueType]int)
	for _, i := range issues {
		out[i.Type]++
	}
	return out
}

func TestCheckCleanWorkspace(t *testing.T) {
	s, _ := setupTestServices(t)
	if _, err := s.AddCourse(validCourse("Algorithms")); err != nil {
		t.Fatal(err)
	}
	if _, err := s.AddClassroom(validClassroom("A101", "Room A", 50)); err != nil {
		t.Fatal(err)
	}

	issues, err := s.Check("")
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}
	if len(issues) != 0 {
		t.Errorf("expected no issues, got %v", issues)
	}
}

func TestCheckFindsIssues(t *testing.T) {
	s, store := setupTestServices(t)
	put := func(key, value string) {
		t.Helper()
		if err := store.Put(key, []byte(value)); err != nil {
			t.Fatal(err)
		}
	}
	put(KeyCourses, `[
		{"id":"1","name":"Go","instructor":"Nguyễn Văn A","students":0,"status":"Đang mở"},
		{"id":"1","name":"Go","instructor":"Nobody","students":2}
	]`)
	put(KeyClassrooms, `[{"id":"H1","name":"Hall","capacity":150,"type":"Thí nghiệm","responsiblePerson":"Lê Văn C"}]`)
	put(KeyTodos, `{broken`)

	issues, err := s.Check("")
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}
	got := issueTypes(issues)

	if got[IssueGuard] != 1 {
		t.Errorf("expected open course without students to be reported, got %v", issues)
	}
	if got[IssueDuplicateID] != 1 || got[IssueDuplicateKey] != 1 {
		t.Errorf("expected duplicate id and name, got %v", issues)
	}
	if got[IssueInvalid] != 1 {
		t.Errorf("expected unknown instructor, got %v", issues)
	}
	// The missing status and the seminar label are both outdated shapes.
	if got[IssueLegacy] != 2 {
		t.Errorf("expected 2 legacy values, got %v", issues)
	}
	if got[IssueUnreadable] != 1 {
		t.Errorf("expected unreadable todos, got %v", issues)
	}

	for _, i := range issues {
		if i.Type == IssueUnreadable {
			if i.Key != KeyTodos || !i.Fixable() || !strings.HasPrefix(i.String(), "todos: unreadable") {
				t.Errorf("unexpected issue %s", i)
			}
		}
	}

	only, err := s.Check("class*")
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}
	if len(only) != 1 || only[0].String() != "classrooms/H1: legacy_value - stored in an outdated shape (run check --fix)" {
		t.Errorf("unexpected filtered issues %v", only)
	}

	if _, err := s.Check("[bad"); err == nil {
		t.Error("expected invalid pattern to fail")
	}
}

func TestFix(t *testing.T) {
	s, store := setupTestServices(t)
	if err := store.Put(KeyClassrooms, []byte(`[{"id":"H1","name":"Hall","capacity":150,"type":"Thí nghiệm","responsiblePerson":"Lê Văn C"}]`)); err != nil {
		t.Fatal(err)
	}
	if err := store.Put(KeyTodos, []byte(`{broken`)); err != nil {
		t.Fatal(err)
	}

	fixed, err := s.Fix("")
	if err != nil {
		t.Fatalf("Fix failed: %v", err)
	}
	if strings.Join(fixed, ",") != "classrooms,todos" {
		t.Errorf("unexpected fixed keys %v", fixed)
	}

	if got := storedJSON(t, store, KeyClassrooms); !strings.Contains(got, `"type":"Hội trường"`) {
		t.Errorf("legacy type not rewritten: %s", got)
	}
	if got := storedJSON(t, store, KeyTodos); got != "[]" {
		t.Errorf("expected unreadable todos to be reset, got %s", got)
	}
	if _, err := store.Get(KeyCourses); err == nil {
		t.Error("fix must not create keys that were never written")
	}

	issues, err := s.Check("")
	if err != nil {
		t.Fatal(err)
	}
	if len(issues) != 0 {
		t.Errorf("expected no issues after fix, got %v", issues)
	}
}

func TestCheckReportsUndecodableElements(t *testing.T) {
	s, store := setupTestServices(t)
	err := store.Put(KeyCourses, []byte(`[
		{"id":"1","name":"Go","instructor":"Nguyễn Văn A","students":0,"status":"Tạm dừng"},
		{"id":1710000000000,"code":"IT1","name":"Go","credits":3}
	]`))
	if err != nil {
		t.Fatal(err)
	}

	issues, err := s.Check("courses")
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}
	if len(issues) != 1 {
		t.Fatalf("expected 1 issue, got %v", issues)
	}
	i := issues[0]
	if i.Type != IssueUndecodable || i.ItemID != "#1" || i.Fixable() {
		t.Errorf("unexpected issue %s", i)
	}

	if _, err := s.Fix("courses"); err != nil {
		t.Fatalf("Fix failed: %v", err)
	}
	if got := storedJSON(t, store, KeyCourses); !strings.Contains(got, `"code":"IT1"`) {
		t.Errorf("fix dropped the undecodable element: %s", got)
	}
}
