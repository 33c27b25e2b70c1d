package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"blog/forms"
	"blog/middleware"
	"blog/models"
	"blog/store"
	"blog/utils"
)

// PostController manages the admin-only post CRUD routes. The
// AdminRequired middleware guards every route that reaches it.
type PostController struct {
	store *store.Store
}

// NewPostController creates a PostController.
func NewPostController(st *store.Store) *PostController {
	return &PostController{store: st}
}

// ShowNew renders the empty post form.
func (p *PostController) ShowNew(ctx *gin.Context) {
	render(ctx, http.StatusOK, "make-post.html", gin.H{"Form": &forms.PostForm{}})
}

// Create adds a new post stamped with today's date and redirects home.
func (p *PostController) Create(ctx *gin.Context) {
	var form forms.PostForm
	_ = ctx.ShouldBind(&form)
	if errs := form.Validate(); errs.Any() {
		render(ctx, http.StatusBadRequest, "make-post.html", gin.H{"Form": &form, "Errors": errs})
		return
	}

	user, _ := middleware.UserFrom(ctx)
	post := models.Post{
		UserID:   user.ID,
		Title:    form.Title,
		Subtitle: form.Subtitle,
		Date:     time.Now().Format(models.DateLayout),
		Body:     utils.Sanitize(form.Body),
		ImgURL:   form.ImgURL,
	}
	if err := p.store.CreatePost(&post); err != nil {
		if errors.Is(err, store.ErrTitleTaken) {
			render(ctx, http.StatusConflict, "make-post.html", gin.H{
				"Form":   &form,
				"Errors": forms.Errors{"Title": "A post with this title already exists."},
			})
			return
		}
		serverError(ctx, "Failed to create post.")
		return
	}
	ctx.Redirect(http.StatusFound, "/")
}

// ShowEdit renders the post form pre-filled with the existing values.
func (p *PostController) ShowEdit(ctx *gin.Context) {
	id, ok := paramID(ctx)
	if !ok {
		notFound(ctx)
		return
	}
	post, err := p.store.PostByID(id)
	if err != nil {
		notFound(ctx)
		return
	}
	form := forms.PostForm{
		Title:    post.Title,
		Subtitle: post.Subtitle,
		ImgURL:   post.ImgURL,
		Body:     post.Body,
	}
	render(ctx, http.StatusOK, "make-post.html", gin.H{"Form": &form, "IsEdit": true, "PostID": post.ID})
}

// Update mutates the editable fields of a post and redirects to it. The
// creation date never changes.
func (p *PostController) Update(ctx *gin.Context) {
	id, ok := paramID(ctx)
	if !ok {
		notFound(ctx)
		return
	}
	var form forms.PostForm
	_ = ctx.ShouldBind(&form)
	if errs := form.Validate(); errs.Any() {
		render(ctx, http.StatusBadRequest, "make-post.html", gin.H{
			"Form": &form, "Errors": errs, "IsEdit": true, "PostID": id,
		})
		return
	}

	post := models.Post{
		ID:       id,
		Title:    form.Title,
		Subtitle: form.Subtitle,
		Body:     utils.Sanitize(form.Body),
		ImgURL:   form.ImgURL,
	}
	if err := p.store.UpdatePost(&post); err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			notFound(ctx)
		case errors.Is(err, store.ErrTitleTaken):
			render(ctx, http.StatusConflict, "make-post.html", gin.H{
				"Form":   &form,
				"Errors": forms.Errors{"Title": "A post with this title already exists."},
				"IsEdit": true, "PostID": id,
			})
		default:
			serverError(ctx, "Failed to update post.")
		}
		return
	}
	ctx.Redirect(http.StatusFound, "/post/"+strconv.FormatUint(uint64(id), 10))
}

// Delete removes a post together with its comments and redirects home.
func (p *PostController) Delete(ctx *gin.Context) {
	id, ok := paramID(ctx)
	if !ok {
		notFound(ctx)
		return
	}
	if err := p.store.DeletePost(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			notFound(ctx)
			return
		}
		serverError(ctx, "Failed to delete post.")
		return
	}
	ctx.Redirect(http.StatusFound, "/")
}
