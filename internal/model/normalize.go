package model

// The Normalize functions bring a loaded record to the current shape. They
// run once per element at load time and are idempotent, so a normalized list
// persisted and loaded again is unchanged.

// NormalizeCourse defaults fields older builds did not write.
// A missing description is already the empty string after decoding.
func NormalizeCourse(c *Course) {
	if c.Status == "" {
		c.Status = CourseStatusPaused
	}
}

// NormalizeClassroom maps the legacy seminar label onto halls.
func NormalizeClassroom(c *Classroom) {
	if c.Type == roomTypeSeminar {
		c.Type = RoomTypeHall
	}
}

// NormalizeDiplomaField defaults a missing type to String.
func NormalizeDiplomaField(f *DiplomaField) {
	if f.Type == "" {
		f.Type = FieldTypeString
	}
}

// NormalizeSubject turns a missing block list into an empty one.
func NormalizeSubject(s *Subject) {
	if s.KnowledgeBlocks == nil {
		s.KnowledgeBlocks = []string{}
	}
}
