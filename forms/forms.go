// Package forms defines the submitted input shapes and their structural
// validation. A form that fails validation is rejected as a whole, with
// the offending fields identifiable so the page can be re-rendered with
// the prior values highlighted.
package forms

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Errors maps a field name to a human readable validation message.
type Errors map[string]string

// Any reports whether at least one field failed validation.
func (e Errors) Any() bool { return len(e) > 0 }

// PostForm carries a new or edited blog post.
type PostForm struct {
	Title    string `form:"title" validate:"required"`
	Subtitle string `form:"subtitle" validate:"required"`
	ImgURL   string `form:"img_url" validate:"required,url"`
	Body     string `form:"body" validate:"required"`
}

// RegisterForm carries a registration submission.
type RegisterForm struct {
	Email    string `form:"email" validate:"required"`
	Password string `form:"password" validate:"required"`
	Name     string `form:"name" validate:"required"`
}

// LoginForm carries a login submission.
type LoginForm struct {
	Email    string `form:"email" validate:"required"`
	Password string `form:"password" validate:"required"`
}

// CommentForm carries a comment submission on a post page.
type CommentForm struct {
	Text string `form:"comment_text" validate:"required"`
}

// ContactForm carries a contact-page submission. Every field must be
// filled before any email is sent.
type ContactForm struct {
	Name    string `form:"name" validate:"required"`
	Email   string `form:"email" validate:"required"`
	Phone   string `form:"phone" validate:"required"`
	Message string `form:"message" validate:"required"`
}

func (f *PostForm) Validate() Errors     { return check(f) }
func (f *RegisterForm) Validate() Errors { return check(f) }
func (f *LoginForm) Validate() Errors    { return check(f) }
func (f *CommentForm) Validate() Errors  { return check(f) }
func (f *ContactForm) Validate() Errors  { return check(f) }

func check(form interface{}) Errors {
	errs := Errors{}
	err := validate.Struct(form)
	if err == nil {
		return errs
	}
	invalid, ok := err.(validator.ValidationErrors)
	if !ok {
		errs["form"] = "invalid submission"
		return errs
	}
	for _, fe := range invalid {
		errs[fe.Field()] = message(fe)
	}
	return errs
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "url":
		return "This field must be a valid URL."
	default:
		return "This field is invalid."
	}
}
