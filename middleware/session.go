package middleware

import (
	"github.com/gin-gonic/gin"

	"blog/models"
	"blog/session"
	"blog/store"
)

// ContextUserKey is the key used to store the resolved user in the Gin
// context. Absence means the request is anonymous, which is a normal
// state and not an error.
const ContextUserKey = "current_user"

// CurrentUser resolves the session cookie, if any, to a User record for
// use by every handler.
func CurrentUser(sessions session.Store, st *store.Store) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token, err := ctx.Cookie(session.CookieName)
		if err == nil && token != "" {
			if userID, ok := sessions.UserID(ctx.Request.Context(), token); ok {
				if user, err := st.UserByID(userID); err == nil {
					ctx.Set(ContextUserKey, user)
				}
			}
		}
		ctx.Next()
	}
}

// UserFrom returns the authenticated user of the request, if any.
func UserFrom(ctx *gin.Context) (*models.User, bool) {
	v, ok := ctx.Get(ContextUserKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok && user != nil
}
