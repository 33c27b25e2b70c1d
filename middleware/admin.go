package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// AdminRequired rejects every caller except the admin (the user whose id
// equals 1) with a 403 before the wrapped handler runs. This is the only
// authorization rule in the system.
func AdminRequired() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		user, ok := UserFrom(ctx)
		if !ok || !user.IsAdmin() {
			ctx.HTML(http.StatusForbidden, "error.html", gin.H{
				"Status":  http.StatusForbidden,
				"Message": "Forbidden",
			})
			ctx.Abort()
			return
		}
		ctx.Next()
	}
}
