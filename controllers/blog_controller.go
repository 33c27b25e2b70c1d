package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"blog/forms"
	"blog/middleware"
	"blog/models"
	"blog/store"
	"blog/utils"
)

// BlogController serves the public pages: the post list, single posts
// with their comments, and the about page.
type BlogController struct {
	store *store.Store
}

// NewBlogController creates a BlogController.
func NewBlogController(st *store.Store) *BlogController {
	return &BlogController{store: st}
}

// Index renders the home page with every post.
func (b *BlogController) Index(ctx *gin.Context) {
	posts, err := b.store.ListPosts()
	if err != nil {
		serverError(ctx, "Failed to load posts.")
		return
	}
	render(ctx, http.StatusOK, "index.html", gin.H{"Posts": posts})
}

// Show renders a single post with its comments and the comment form.
func (b *BlogController) Show(ctx *gin.Context) {
	id, ok := paramID(ctx)
	if !ok {
		notFound(ctx)
		return
	}
	post, err := b.store.PostByID(id)
	if err != nil {
		notFound(ctx)
		return
	}
	render(ctx, http.StatusOK, "post.html", gin.H{"Post": post, "Form": &forms.CommentForm{}})
}

// Comment handles a comment submission on a post page. Anonymous callers
// are sent to the login page with a notice instead.
func (b *BlogController) Comment(ctx *gin.Context) {
	id, ok := paramID(ctx)
	if !ok {
		notFound(ctx)
		return
	}
	post, err := b.store.PostByID(id)
	if err != nil {
		notFound(ctx)
		return
	}

	var form forms.CommentForm
	_ = ctx.ShouldBind(&form)
	if errs := form.Validate(); errs.Any() {
		render(ctx, http.StatusBadRequest, "post.html", gin.H{
			"Post": post, "Form": &form, "Errors": errs,
		})
		return
	}

	user, ok := middleware.UserFrom(ctx)
	if !ok {
		utils.SetFlash(ctx, "You need to login or register to comment.")
		ctx.Redirect(http.StatusFound, "/login")
		return
	}

	comment := models.Comment{
		PostID: post.ID,
		UserID: user.ID,
		Text:   utils.Sanitize(form.Text),
	}
	if err := b.store.CreateComment(&comment); err != nil {
		serverError(ctx, "Failed to save comment.")
		return
	}
	ctx.Redirect(http.StatusFound, "/post/"+ctx.Param("id"))
}

// About renders the static about page.
func (b *BlogController) About(ctx *gin.Context) {
	render(ctx, http.StatusOK, "about.html", gin.H{})
}
