package validation

import (
	"fmt"

	"wanderlog/internal/entity"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// PostForm is the raw post-authoring payload as it arrives from a form
// or JSON body.
type PostForm struct {
	Type        string `form:"type" json:"type" validate:"required,oneof=place hostel people bus photo other"`
	Title       string `form:"title" json:"title" validate:"required,max=200"`
	Description string `form:"description" json:"description" validate:"max=2000"`
	Location    string `form:"location" json:"location" validate:"max=200"`
	Country     string `form:"country" json:"country" validate:"max=100"`
	Date        string `form:"date" json:"date" validate:"required"`
}

// PostInput is the normalized payload produced by a successful
// validation. Optional fields left blank stay empty and are stored as
// absent further down.
type PostInput struct {
	Type        entity.PostType
	Title       string
	Description string
	Location    string
	Country     string
	Date        string
}

// Errors maps a field name to the first violated rule's message.
type Errors map[string]string

func (e Errors) Error() string {
	for _, msg := range e {
		return msg
	}
	return "validation failed"
}

var fieldMessages = map[string]map[string]string{
	"type": {
		"required": "Post type is required",
		"oneof":    "Invalid post type",
	},
	"title": {
		"required": "Title is required",
		"max":      "Title must be at most 200 characters",
	},
	"description": {
		"max": "Notes must be at most 2000 characters",
	},
	"location": {
		"max": "Location must be at most 200 characters",
	},
	"country": {
		"max": "Country must be at most 100 characters",
	},
	"date": {
		"required": "Date is required",
	},
}

// ValidatePostForm checks the form against the post schema and returns
// either a normalized input or per-field error messages.
func ValidatePostForm(form PostForm) (*PostInput, Errors) {
	if err := validate.Struct(form); err != nil {
		violations, ok := err.(validator.ValidationErrors)
		if !ok {
			return nil, Errors{"form": err.Error()}
		}

		fields := Errors{}
		for _, v := range violations {
			name := jsonFieldName(v.Field())
			if _, seen := fields[name]; seen {
				continue
			}
			fields[name] = messageFor(name, v)
		}
		return nil, fields
	}

	return &PostInput{
		Type:        entity.PostType(form.Type),
		Title:       form.Title,
		Description: form.Description,
		Location:    form.Location,
		Country:     form.Country,
		Date:        form.Date,
	}, nil
}

func messageFor(field string, v validator.FieldError) string {
	if byTag, ok := fieldMessages[field]; ok {
		if msg, ok := byTag[v.Tag()]; ok {
			return msg
		}
	}
	return fmt.Sprintf("%s is invalid", field)
}

func jsonFieldName(structField string) string {
	switch structField {
	case "Type":
		return "type"
	case "Title":
		return "title"
	case "Description":
		return "description"
	case "Location":
		return "location"
	case "Country":
		return "country"
	case "Date":
		return "date"
	}
	return structField
}
