package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"blog/config"
	"blog/forms"
	"blog/models"
	"blog/session"
	"blog/store"
	"blog/utils"
)

// AuthController handles registration, login, and logout.
type AuthController struct {
	store    *store.Store
	sessions session.Store
}

// NewAuthController creates an AuthController.
func NewAuthController(st *store.Store, sessions session.Store) *AuthController {
	return &AuthController{store: st, sessions: sessions}
}

// ShowRegister renders the registration form.
func (a *AuthController) ShowRegister(ctx *gin.Context) {
	render(ctx, http.StatusOK, "register.html", gin.H{"Form": &forms.RegisterForm{}})
}

// Register creates a new user, logs them in, and sends them home.
// Registering an email that already exists redirects to the login page
// with a notice instead of creating a second user.
func (a *AuthController) Register(ctx *gin.Context) {
	var form forms.RegisterForm
	_ = ctx.ShouldBind(&form)
	if errs := form.Validate(); errs.Any() {
		render(ctx, http.StatusBadRequest, "register.html", gin.H{"Form": &form, "Errors": errs})
		return
	}

	hash, err := utils.HashPassword(form.Password)
	if err != nil {
		serverError(ctx, "Failed to register.")
		return
	}

	user := models.User{
		Email:        form.Email,
		PasswordHash: hash,
		Name:         form.Name,
	}
	if err := a.store.CreateUser(&user); err != nil {
		if errors.Is(err, store.ErrEmailTaken) {
			utils.SetFlash(ctx, "You've already signed up with that email, log in instead!")
			ctx.Redirect(http.StatusFound, "/login")
			return
		}
		serverError(ctx, "Failed to register.")
		return
	}

	if err := a.establishSession(ctx, user.ID); err != nil {
		serverError(ctx, "Failed to start session.")
		return
	}
	ctx.Redirect(http.StatusFound, "/")
}

// ShowLogin renders the login form.
func (a *AuthController) ShowLogin(ctx *gin.Context) {
	render(ctx, http.StatusOK, "login.html", gin.H{"Form": &forms.LoginForm{}})
}

// Login verifies credentials and establishes a session. The session is
// left unchanged on failure.
func (a *AuthController) Login(ctx *gin.Context) {
	var form forms.LoginForm
	_ = ctx.ShouldBind(&form)
	if errs := form.Validate(); errs.Any() {
		render(ctx, http.StatusBadRequest, "login.html", gin.H{"Form": &form, "Errors": errs})
		return
	}

	user, err := a.store.UserByEmail(form.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.SetFlash(ctx, "That email does not exist, please try again.")
			ctx.Redirect(http.StatusFound, "/login")
			return
		}
		serverError(ctx, "Failed to log in.")
		return
	}

	if !utils.CheckPassword(user.PasswordHash, form.Password) {
		utils.SetFlash(ctx, "Password incorrect, please try again.")
		ctx.Redirect(http.StatusFound, "/login")
		return
	}

	if err := a.establishSession(ctx, user.ID); err != nil {
		serverError(ctx, "Failed to start session.")
		return
	}
	ctx.Redirect(http.StatusFound, "/")
}

// Logout clears the current session unconditionally and is idempotent.
func (a *AuthController) Logout(ctx *gin.Context) {
	if token, err := ctx.Cookie(session.CookieName); err == nil && token != "" {
		_ = a.sessions.Destroy(ctx.Request.Context(), token)
	}
	ctx.SetCookie(session.CookieName, "", -1, "/", "", false, true)
	ctx.Redirect(http.StatusFound, "/")
}

func (a *AuthController) establishSession(ctx *gin.Context, userID uint) error {
	token, err := a.sessions.Create(ctx.Request.Context(), userID)
	if err != nil {
		return err
	}
	maxAge := config.Get().SessionTTLHours * 3600
	ctx.SetCookie(session.CookieName, token, maxAge, "/", "", false, true)
	return nil
}
