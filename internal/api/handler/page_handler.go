package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/martijn/miniblog/internal/api/middleware"
)

// PageHandler serves the static-ish pages.
type PageHandler struct{}

func NewPageHandler() *PageHandler {
	return &PageHandler{}
}

// Home handles GET /
func (h *PageHandler) Home(c *gin.Context) {
	c.HTML(http.StatusOK, "home.tmpl", gin.H{})
}

// About handles GET /about. Runs behind ProvideUser: the page renders
// differently for anonymous and authenticated visitors.
func (h *PageHandler) About(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	c.HTML(http.StatusOK, "about.tmpl", gin.H{
		"User": user,
	})
}

// FAQ handles GET /faq. Runs behind RequireUser.
func (h *PageHandler) FAQ(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	c.HTML(http.StatusOK, "faq.tmpl", gin.H{
		"User": user,
	})
}
