package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// getHome godoc
// @Summary Open the banking form
// @Description Redirects to the withdrawal form.
// @Tags root
// @Success 302
// @Router / [get]
func getHome(ctx *gin.Context) {
	ctx.Redirect(http.StatusFound, "/banking?action="+actionWithdraw)
}
