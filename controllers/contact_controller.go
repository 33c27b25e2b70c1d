package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"blog/forms"
	"blog/utils"
)

// Mailer delivers one contact-form message to the blog operator.
type Mailer interface {
	Send(name, email, phone, message string) error
}

// ContactController serves the contact page and sends its submissions
// by email, synchronously.
type ContactController struct {
	mailer Mailer
}

// NewContactController creates a ContactController.
func NewContactController(mailer Mailer) *ContactController {
	return &ContactController{mailer: mailer}
}

// Show renders the empty contact form.
func (c *ContactController) Show(ctx *gin.Context) {
	render(ctx, http.StatusOK, "contact.html", gin.H{"Form": &forms.ContactForm{}})
}

// Send emails the submission to the operator. Any empty field skips the
// send and re-renders the form with an error instead.
func (c *ContactController) Send(ctx *gin.Context) {
	var form forms.ContactForm
	_ = ctx.ShouldBind(&form)
	if errs := form.Validate(); errs.Any() {
		render(ctx, http.StatusBadRequest, "contact.html", gin.H{
			"Form": &form, "Errors": errs, "Failed": true,
		})
		return
	}

	if err := c.mailer.Send(form.Name, form.Email, form.Phone, form.Message); err != nil {
		if utils.Sugar != nil {
			utils.Sugar.Errorf("contact mail delivery failed: %v", err)
		}
		serverError(ctx, "Failed to send your message, please try again later.")
		return
	}
	render(ctx, http.StatusOK, "contact.html", gin.H{"Sent": true})
}
