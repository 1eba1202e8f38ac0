package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/martijn/miniblog/internal/api/dto"
	"github.com/martijn/miniblog/internal/api/middleware"
	"github.com/martijn/miniblog/internal/core/service"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// redirectTarget returns the validated redirectTo query parameter.
// Only local paths are accepted.
func redirectTarget(c *gin.Context) string {
	target := c.Query("redirectTo")
	if !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") {
		return "/"
	}
	return target
}

// ShowLogin handles GET /login
func (h *AuthHandler) ShowLogin(c *gin.Context) {
	c.HTML(http.StatusOK, "login.tmpl", gin.H{
		"RedirectTo": c.Query("redirectTo"),
	})
}

// Login handles POST /login. Success sets the session cookie and
// redirects to the requested page; a credential mismatch re-renders the
// form with a message and changes no state.
func (h *AuthHandler) Login(c *gin.Context) {
	var form dto.LoginForm
	if err := c.ShouldBind(&form); err != nil {
		c.HTML(http.StatusBadRequest, "login.tmpl", gin.H{
			"Message":    "Username and password are required",
			"RedirectTo": c.Query("redirectTo"),
		})
		return
	}

	user, _, err := h.authService.Login(c.Request.Context(), form.Username, form.Password)
	if err == service.ErrInvalidCredentials {
		c.HTML(http.StatusOK, "login.tmpl", gin.H{
			"Message":    "Invalid credentials",
			"RedirectTo": c.Query("redirectTo"),
		})
		return
	}
	if err != nil {
		c.Error(err)
		return
	}

	middleware.SetSessionCookie(c, *user.SessionToken)
	c.Redirect(http.StatusFound, redirectTarget(c))
}

// Logout handles GET /logout. The client cookie is cleared whether or
// not a server-side session existed; logging out twice is fine.
func (h *AuthHandler) Logout(c *gin.Context) {
	if user, ok := middleware.CurrentUser(c); ok {
		if err := h.authService.Logout(c.Request.Context(), user.Username); err != nil {
			c.Error(err)
			return
		}
	}

	middleware.ClearSessionCookie(c)
	c.Redirect(http.StatusFound, "/")
}
