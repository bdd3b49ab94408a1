package validation

import (
	"strings"
	"testing"

	"wanderlog/internal/entity"

	"github.com/stretchr/testify/assert"
)

func validForm() PostForm {
	return PostForm{
		Type:  "hostel",
		Title: "Selina Oaxaca",
		Date:  "2024-03-01",
	}
}

func TestValidatePostForm_Valid(t *testing.T) {
	form := validForm()
	form.Description = "Great wifi, loud dorms"
	form.Location = "Centro, Oaxaca"
	form.Country = "Mexico"

	input, fields := ValidatePostForm(form)

	assert.Nil(t, fields)
	assert.NotNil(t, input)
	assert.Equal(t, entity.PostTypeHostel, input.Type)
	assert.Equal(t, "Selina Oaxaca", input.Title)
	assert.Equal(t, "Mexico", input.Country)
	assert.Equal(t, "2024-03-01", input.Date)
}

func TestValidatePostForm_OptionalBlanksStayAbsent(t *testing.T) {
	input, fields := ValidatePostForm(validForm())

	assert.Nil(t, fields)
	assert.Empty(t, input.Description)
	assert.Empty(t, input.Location)
	assert.Empty(t, input.Country)
}

func TestValidatePostForm_TitleRequired(t *testing.T) {
	form := validForm()
	form.Title = ""

	input, fields := ValidatePostForm(form)

	assert.Nil(t, input)
	assert.Equal(t, "Title is required", fields["title"])
}

func TestValidatePostForm_TitleRequired_RegardlessOfOtherFields(t *testing.T) {
	form := PostForm{Title: "", Type: "bogus", Date: ""}

	input, fields := ValidatePostForm(form)

	assert.Nil(t, input)
	assert.Equal(t, "Title is required", fields["title"])
	assert.Equal(t, "Date is required", fields["date"])
	assert.Equal(t, "Invalid post type", fields["type"])
}

func TestValidatePostForm_TitleTooLong(t *testing.T) {
	form := validForm()
	form.Title = strings.Repeat("a", 201)

	input, fields := ValidatePostForm(form)

	assert.Nil(t, input)
	assert.Equal(t, "Title must be at most 200 characters", fields["title"])
}

func TestValidatePostForm_TitleAtLimit(t *testing.T) {
	form := validForm()
	form.Title = strings.Repeat("a", 200)

	input, fields := ValidatePostForm(form)

	assert.Nil(t, fields)
	assert.NotNil(t, input)
}

func TestValidatePostForm_DateRequired(t *testing.T) {
	form := validForm()
	form.Date = ""

	input, fields := ValidatePostForm(form)

	assert.Nil(t, input)
	assert.Equal(t, "Date is required", fields["date"])
}

func TestValidatePostForm_InvalidType(t *testing.T) {
	form := validForm()
	form.Type = "train"

	input, fields := ValidatePostForm(form)

	assert.Nil(t, input)
	assert.Equal(t, "Invalid post type", fields["type"])
}

func TestValidatePostForm_DescriptionTooLong(t *testing.T) {
	form := validForm()
	form.Description = strings.Repeat("x", 2001)

	input, fields := ValidatePostForm(form)

	assert.Nil(t, input)
	assert.Equal(t, "Notes must be at most 2000 characters", fields["description"])
}

func TestErrors_Error(t *testing.T) {
	fields := Errors{"title": "Title is required"}
	assert.Equal(t, "Title is required", fields.Error())

	assert.Equal(t, "validation failed", Errors{}.Error())
}
