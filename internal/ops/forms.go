package ops

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"

	"github.com/jacksmith/campus/internal/model"
)

// custom validation tags
const (
	notBlankTag          = "notblank"
	instructorTag        = "instructor"
	responsiblePersonTag = "responsible_person"
	courseStatusTag      = "course_status"
	roomTypeTag          = "room_type"
	fieldTypeTag         = "field_type"
)

// CourseInput is the course form.
type CourseInput struct {
	Name        string             `json:"name" validate:"notblank,max=100"`
	Instructor  string             `json:"instructor" validate:"instructor"`
	Students    int                `json:"students" validate:"gte=0"`
	Status      model.CourseStatus `json:"status" validate:"omitempty,course_status"`
	Description string             `json:"description"`
}

// ClassroomInput is the classroom form.
type ClassroomInput struct {
	ID                string         `json:"id" validate:"notblank,max=10"`
	Name              string         `json:"name" validate:"notblank,max=50"`
	Capacity          int            `json:"capacity" validate:"gte=10,lte=200"`
	Type              model.RoomType `json:"type" validate:"room_type"`
	ResponsiblePerson string         `json:"responsiblePerson" validate:"responsible_person"`
}

// FieldInput is the diploma field form.
type FieldInput struct {
	Name string          `json:"name" validate:"notblank,max=100"`
	Type model.FieldType `json:"type" validate:"field_type"`
}

// DiplomaInput is the diploma registry form.
type DiplomaInput struct {
	DiplomaName   string `json:"diplomaName" validate:"notblank,max=100"`
	DiplomaNumber int    `json:"diplomaNumber" validate:"gte=1"`
	Year          int    `json:"year" validate:"gte=1900,lte=2100"`
}

// TodoInput is the to-do form.
type TodoInput struct {
	Text string `json:"text" validate:"notblank"`
}

// ContactInput is the contact form.
type ContactInput struct {
	Address string `json:"address" validate:"notblank"`
	Balance string `json:"balance" validate:"notblank"`
}

// SubjectInput is the subject catalog form.
type SubjectInput struct {
	Code            string   `json:"code" validate:"notblank,max=20"`
	Name            string   `json:"name" validate:"notblank,max=100"`
	Credits         int      `json:"credits" validate:"gte=1"`
	KnowledgeBlocks []string `json:"knowledgeBlocks" validate:"dive,notblank"`
}

// FieldError is one failing form field.
type FieldError struct {
	Field   string
	Message string
}

// FormError lists every failing field of a submitted form.
type FormError struct {
	Kind   string
	Fields []FieldError
}

func (e *FormError) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.Message
	}
	return fmt.Sprintf("invalid %s: %s", e.Kind, strings.Join(msgs, "; "))
}

// Field returns the message for the named field, if it failed.
func (e *FormError) Field(name string) (string, bool) {
	for _, f := range e.Fields {
		if f.Field == name {
			return f.Message, true
		}
	}
	return "", false
}

// forms validates form input against the reference data it was built with.
type forms struct {
	validate   *validator.Validate
	translator ut.Translator
}

func newForms(ref model.ReferenceData) *forms {
	v := validator.New()

	// Register the english error messages for validation errors.
	_en := en.New()
	uni := ut.New(_en, _en)
	trans, _ := uni.GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(v, trans)

	// Use JSON tag names for errors instead of Go struct names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	f := &forms{validate: v, translator: trans}

	_ = v.RegisterValidation(notBlankTag, notBlankValidation)
	_ = v.RegisterValidation(instructorTag, func(fl validator.FieldLevel) bool {
		return ref.IsInstructor(fl.Field().String())
	})
	_ = v.RegisterValidation(responsiblePersonTag, func(fl validator.FieldLevel) bool {
		return ref.IsResponsiblePerson(fl.Field().String())
	})
	_ = v.RegisterValidation(courseStatusTag, func(fl validator.FieldLevel) bool {
		return model.CourseStatus(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation(roomTypeTag, func(fl validator.FieldLevel) bool {
		return model.RoomType(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation(fieldTypeTag, func(fl validator.FieldLevel) bool {
		return slices.Contains(model.FieldTypes, model.FieldType(fl.Field().String()))
	})

	f.registerTranslation(notBlankTag, "{0} must not be blank")
	f.registerTranslation(instructorTag, "{0} must be one of: "+strings.Join(ref.Instructors(), ", "))
	f.registerTranslation(responsiblePersonTag, "{0} must be one of: "+strings.Join(ref.ResponsiblePersons(), ", "))
	f.registerTranslation(courseStatusTag, "{0} must be one of: "+joinLabels(model.CourseStatuses))
	f.registerTranslation(roomTypeTag, "{0} must be one of: "+joinLabels(model.RoomTypes))
	f.registerTranslation(fieldTypeTag, "{0} must be one of: "+joinLabels(model.FieldTypes))

	return f
}

func (f *forms) registerTranslation(tag, text string) {
	_ = f.validate.RegisterTranslation(tag, f.translator,
		func(t ut.Translator) error {
			return t.Add(tag, text, true)
		},
		func(t ut.Translator, fe validator.FieldError) string {
			msg, err := t.T(tag, fe.Field())
			if err != nil {
				return fe.Error()
			}
			return msg
		})
}

// check validates input and converts failures into a *FormError.
func (f *forms) check(kind string, input any) error {
	err := f.validate.Struct(input)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	formErr := &FormError{Kind: kind}
	for _, fe := range verrs {
		formErr.Fields = append(formErr.Fields, FieldError{
			Field:   fe.Field(),
			Message: fe.Translate(f.translator),
		})
	}
	return formErr
}

// checkForm validates input and logs a rejected form.
func (s *Services) checkForm(kind string, input any) error {
	err := s.forms.check(kind, input)
	if err != nil {
		s.logger.Info("form rejected", "kind", kind, "error", err)
	}
	return err
}

func notBlankValidation(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

func joinLabels[T ~string](values []T) string {
	labels := make([]string, len(values))
	for i, v := range values {
		labels[i] = string(v)
	}
	return strings.Join(labels, ", ")
}

