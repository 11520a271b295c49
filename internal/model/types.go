// Package model defines the core data structures for campus.
//
// Field names and enum labels match the JSON the original browser dashboard
// wrote to local storage, so existing exports load unchanged.
package model

import (
	"fmt"
	"strings"
	"time"
)

// CourseStatus represents the status of a course.
type CourseStatus string

const (
	CourseStatusOpen   CourseStatus = "Đang mở"
	CourseStatusClosed CourseStatus = "Đã kết thúc"
	CourseStatusPaused CourseStatus = "Tạm dừng"
)

// CourseStatuses lists every course status in display order.
var CourseStatuses = []CourseStatus{CourseStatusOpen, CourseStatusPaused, CourseStatusClosed}

var courseStatusAliases = map[CourseStatus]string{
	CourseStatusOpen:   "open",
	CourseStatusClosed: "closed",
	CourseStatusPaused: "paused",
}

// Valid reports whether s is one of the known statuses.
func (s CourseStatus) Valid() bool {
	_, ok := courseStatusAliases[s]
	return ok
}

// Alias returns the English alias used on the command line.
func (s CourseStatus) Alias() string {
	return courseStatusAliases[s]
}

// ParseCourseStatus accepts either the stored label or its English alias.
func ParseCourseStatus(s string) (CourseStatus, error) {
	for status, alias := range courseStatusAliases {
		if s == string(status) || strings.EqualFold(s, alias) {
			return status, nil
		}
	}
	return "", fmt.Errorf("unknown course status %q", s)
}

// RoomType represents the kind of a classroom.
type RoomType string

const (
	RoomTypeLecture    RoomType = "Lý thuyết"
	RoomTypeLaboratory RoomType = "Thực hành"
	RoomTypeHall       RoomType = "Hội trường"

	// roomTypeSeminar is the label an older build used for halls.
	roomTypeSeminar RoomType = "Thí nghiệm"
)

// RoomTypes lists every room type in display order.
var RoomTypes = []RoomType{RoomTypeLecture, RoomTypeLaboratory, RoomTypeHall}

var roomTypeAliases = map[RoomType]string{
	RoomTypeLecture:    "lecture",
	RoomTypeLaboratory: "lab",
	RoomTypeHall:       "hall",
}

// Valid reports whether t is one of the known room types.
func (t RoomType) Valid() bool {
	_, ok := roomTypeAliases[t]
	return ok
}

// Alias returns the English alias used on the command line.
func (t RoomType) Alias() string {
	return roomTypeAliases[t]
}

// ParseRoomType accepts either the stored label or its English alias.
func ParseRoomType(s string) (RoomType, error) {
	for rt, alias := range roomTypeAliases {
		if s == string(rt) || strings.EqualFold(s, alias) {
			return rt, nil
		}
	}
	if s == string(roomTypeSeminar) {
		return RoomTypeHall, nil
	}
	return "", fmt.Errorf("unknown room type %q", s)
}

// FieldType is the value type of a configurable diploma field.
type FieldType string

const (
	FieldTypeString FieldType = "String"
	FieldTypeNumber FieldType = "Number"
	FieldTypeDate   FieldType = "Date"
)

// FieldTypes lists every diploma field type.
var FieldTypes = []FieldType{FieldTypeString, FieldTypeNumber, FieldTypeDate}

// ParseFieldType matches a field type case-insensitively.
func ParseFieldType(s string) (FieldType, error) {
	for _, ft := range FieldTypes {
		if strings.EqualFold(s, string(ft)) {
			return ft, nil
		}
	}
	return "", fmt.Errorf("unknown field type %q", s)
}

// Course is a training course offered by an instructor.
type Course struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Instructor  string       `json:"instructor"`
	Students    int          `json:"students"`
	Status      CourseStatus `json:"status"`
	Description string       `json:"description"`
}

// Classroom is a physical room. Its ID is chosen by the user.
type Classroom struct {
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	Capacity          int      `json:"capacity"`
	Type              RoomType `json:"type"`
	ResponsiblePerson string   `json:"responsiblePerson"`
}

// DiplomaField is one configurable field of the diploma form.
type DiplomaField struct {
	ID   string    `json:"id"`
	Name string    `json:"name"`
	Type FieldType `json:"type"`
}

// Diploma is an entry in the diploma registry.
type Diploma struct {
	ID            string `json:"id"`
	DiplomaName   string `json:"diplomaName"`
	DiplomaNumber int    `json:"diplomaNumber"`
	Year          int    `json:"year"`
	CreatedAt     string `json:"createdAt"`
}

// dateLayouts are the createdAt formats found in stored diplomas.
var dateLayouts = []string{time.RFC3339, "2006-01-02T15:04:05.000Z", "2006-01-02"}

// CreatedTime parses CreatedAt. The second result is false if it cannot be parsed.
func (d *Diploma) CreatedTime() (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, d.CreatedAt); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Todo is a to-do list item. Its ID is a millisecond timestamp.
type Todo struct {
	ID        int64  `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// DisplayText returns the text to show in list views.
func (t *Todo) DisplayText() string {
	if t.Completed {
		return "[x] " + t.Text
	}
	return "[ ] " + t.Text
}

// Subject is an entry of the subject catalog. Its ID is a millisecond
// timestamp.
type Subject struct {
	ID              int64    `json:"id"`
	Code            string   `json:"code"`
	Name            string   `json:"name"`
	Credits         int      `json:"credits"`
	KnowledgeBlocks []string `json:"knowledgeBlocks"`
}
