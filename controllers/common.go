package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"blog/middleware"
	"blog/utils"
)

// render merges the ambient page data (current user, footer year, pending
// flash notice) with the handler's own data and writes the template.
func render(ctx *gin.Context, code int, name string, data gin.H) {
	user, _ := middleware.UserFrom(ctx)
	page := gin.H{
		"CurrentUser": user,
		"IsAdmin":     user.IsAdmin(),
		"Year":        time.Now().Format("2006"),
		"Flash":       utils.TakeFlash(ctx),
	}
	for k, v := range data {
		page[k] = v
	}
	ctx.HTML(code, name, page)
}

// paramID parses the :id route parameter. A malformed id is treated the
// same as a missing record.
func paramID(ctx *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func notFound(ctx *gin.Context) {
	render(ctx, http.StatusNotFound, "error.html", gin.H{
		"Status":  http.StatusNotFound,
		"Message": "Page not found",
	})
}

func serverError(ctx *gin.Context, message string) {
	render(ctx, http.StatusInternalServerError, "error.html", gin.H{
		"Status":  http.StatusInternalServerError,
		"Message": message,
	})
}
