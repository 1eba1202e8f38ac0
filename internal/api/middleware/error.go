package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorHandlerMiddleware handles panics and handler errors by rendering
// the error page. Authentication failures never reach this point; the
// guards recover those into redirects before the handler runs.
func ErrorHandlerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				c.HTML(http.StatusInternalServerError, "error.tmpl", gin.H{
					"Message": "An unexpected error occurred",
				})
				c.Abort()
			}
		}()

		c.Next()

		if len(c.Errors) > 0 && !c.Writer.Written() {
			c.HTML(http.StatusInternalServerError, "error.tmpl", gin.H{
				"Message": c.Errors.Last().Error(),
			})
		}
	}
}
