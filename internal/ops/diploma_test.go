package ops

import (
	"testing"

	"github.com/jacksmith/campus/internal/model"
)

func TestAddDiploma(t *testing.T) {
	s, _ := setupTestServices(t)

	d, err := s.AddDiploma(DiplomaInput{DiplomaName: " Cử nhân CNTT ", DiplomaNumber: 12, Year: 2023})
	if err != nil {
		t.Fatalf("AddDiploma failed: %v", err)
	}
	if d.DiplomaName != "Cử nhân CNTT" {
		t.Errorf("expected trimmed name, got %q", d.DiplomaName)
	}
	if d.CreatedAt != "2024-03-15T09:30:00.000Z" {
		t.Errorf("unexpected createdAt %q", d.CreatedAt)
	}
	if created, ok := d.CreatedTime(); !ok || !created.Equal(testNow) {
		t.Errorf("createdAt does not parse back: %v %v", created, ok)
	}

	// Diplomas have no uniqueness constraint.
	if _, err := s.AddDiploma(DiplomaInput{DiplomaName: "Cử nhân CNTT", DiplomaNumber: 12, Year: 2023}); err != nil {
		t.Errorf("expected duplicate diploma to be accepted: %v", err)
	}

	_, err = s.AddDiploma(DiplomaInput{DiplomaName: "", DiplomaNumber: 0, Year: 1800})
	requireFormError(t, err, "diplomaName", "diplomaNumber", "year")

	if _, err := s.DeleteDiploma(d.ID); err != nil {
		t.Fatalf("DeleteDiploma failed: %v", err)
	}
	_, err = s.DeleteDiploma(d.ID)
	requireNotFound(t, err)
}

func TestListDiplomas(t *testing.T) {
	s, store := setupTestServices(t)
	err := store.Put(KeyDiplomas, []byte(`[
		{"id":"1","diplomaName":"Kỹ sư","diplomaNumber":3,"year":2021,"createdAt":"2021-06-01T00:00:00.000Z"},
		{"id":"2","diplomaName":"Cử nhân","diplomaNumber":1,"year":2023,"createdAt":"2023-01-10"},
		{"id":"3","diplomaName":"Thạc sĩ","diplomaNumber":2,"year":2022,"createdAt":"unknown"}
	]`))
	if err != nil {
		t.Fatal(err)
	}
	s.Reload()

	ids := func(ds []model.Diploma) string {
		out := ""
		for _, d := range ds {
			out += d.ID
		}
		return out
	}

	tests := []struct {
		name   string
		filter DiplomaFilter
		want   string
	}{
		{"insertion order", DiplomaFilter{}, "123"},
		{"by number", DiplomaFilter{SortBy: DiplomaByNumber}, "231"},
		{"by year descending", DiplomaFilter{SortBy: DiplomaByYear, Descending: true}, "231"},
		{"by name", DiplomaFilter{SortBy: DiplomaByName}, "213"},
		{"by created, unparseable first", DiplomaFilter{SortBy: DiplomaByCreatedAt}, "312"},
		{"search", DiplomaFilter{Name: "SƯ"}, "1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.ListDiplomas(tt.filter)
			if err != nil {
				t.Fatalf("ListDiplomas failed: %v", err)
			}
			if ids(got) != tt.want {
				t.Errorf("got %s, want %s", ids(got), tt.want)
			}
		})
	}

	if _, err := s.ListDiplomas(DiplomaFilter{SortBy: "color"}); err == nil {
		t.Error("expected unknown sort column to fail")
	}
}
