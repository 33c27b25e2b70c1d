package utils

import "github.com/gin-gonic/gin"

const flashCookie = "flash"

// SetFlash stores a one-shot notice shown by the next rendered page.
func SetFlash(ctx *gin.Context, message string) {
	ctx.SetCookie(flashCookie, message, 60, "/", "", false, true)
}

// TakeFlash returns the pending notice, if any, and clears it.
func TakeFlash(ctx *gin.Context) string {
	message, err := ctx.Cookie(flashCookie)
	if err != nil || message == "" {
		return ""
	}
	ctx.SetCookie(flashCookie, "", -1, "/", "", false, true)
	return message
}
