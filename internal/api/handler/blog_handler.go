package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/martijn/miniblog/internal/api/dto"
	"github.com/martijn/miniblog/internal/api/middleware"
	"github.com/martijn/miniblog/internal/api/util"
	"github.com/martijn/miniblog/internal/core/repository"
	"github.com/martijn/miniblog/internal/core/service"
)

// postFilterFields are the fields accepted in query/order parameters on
// the post listing.
var postFilterFields = []string{"id", "username", "title", "created_at"}

const defaultPerPage = 20

type BlogHandler struct {
	blogService *service.BlogService
}

func NewBlogHandler(blogService *service.BlogService) *BlogHandler {
	return &BlogHandler{
		blogService: blogService,
	}
}

// ListPosts handles GET /blog. Supports query/order/page/per_page
// parameters for filtering and pagination.
func (h *BlogHandler) ListPosts(c *gin.Context) {
	filters, err := util.ParseQueryString(c.Query("query"), postFilterFields)
	if err != nil {
		c.HTML(http.StatusBadRequest, "error.tmpl", gin.H{"Message": err.Error()})
		return
	}

	order, err := util.ParseOrderString(c.Query("order"), postFilterFields)
	if err != nil {
		c.HTML(http.StatusBadRequest, "error.tmpl", gin.H{"Message": err.Error()})
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", strconv.Itoa(defaultPerPage)))
	if perPage < 1 {
		perPage = defaultPerPage
	}

	filter := repository.PostFilter{
		ListFilter: util.ListFilter{
			Filters: filters,
			Order:   order,
			Page:    page,
			PerPage: perPage,
		},
	}

	posts, total, err := h.blogService.ListPosts(c.Request.Context(), filter)
	if err != nil {
		c.Error(err)
		return
	}

	user, _ := middleware.CurrentUser(c)
	c.HTML(http.StatusOK, "blog.tmpl", gin.H{
		"User":  user,
		"Posts": posts,
		"Total": total,
		"Page":  page,
	})
}

// CreatePost handles POST /blog. The author is the identity attached by
// the Require guard.
func (h *BlogHandler) CreatePost(c *gin.Context) {
	var form dto.PostForm
	if err := c.ShouldBind(&form); err != nil {
		c.HTML(http.StatusBadRequest, "error.tmpl", gin.H{"Message": "Title and body are required"})
		return
	}

	user, _ := middleware.CurrentUser(c)
	if _, err := h.blogService.CreatePost(c.Request.Context(), user.Username, form.Title, form.Body); err != nil {
		c.Error(err)
		return
	}

	c.Redirect(http.StatusFound, "/blog")
}

// ShowPost handles GET /posts/:id
func (h *BlogHandler) ShowPost(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.HTML(http.StatusNotFound, "notfound.tmpl", gin.H{"Message": "No such post"})
		return
	}

	post, comments, err := h.blogService.GetPost(c.Request.Context(), id)
	if err == service.ErrPostNotFound {
		c.HTML(http.StatusNotFound, "notfound.tmpl", gin.H{"Message": "No such post"})
		return
	}
	if err != nil {
		c.Error(err)
		return
	}

	user, _ := middleware.CurrentUser(c)
	c.HTML(http.StatusOK, "post.tmpl", gin.H{
		"User":     user,
		"Post":     post,
		"Comments": comments,
	})
}

// AddComment handles POST /posts/:id
func (h *BlogHandler) AddComment(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.HTML(http.StatusNotFound, "notfound.tmpl", gin.H{"Message": "No such post"})
		return
	}

	var form dto.CommentForm
	if err := c.ShouldBind(&form); err != nil {
		c.HTML(http.StatusBadRequest, "error.tmpl", gin.H{"Message": "Comment body is required"})
		return
	}

	user, _ := middleware.CurrentUser(c)
	_, err = h.blogService.AddComment(c.Request.Context(), id, user.Username, form.Body)
	if err == service.ErrPostNotFound {
		c.HTML(http.StatusNotFound, "notfound.tmpl", gin.H{"Message": "No such post"})
		return
	}
	if err != nil {
		c.Error(err)
		return
	}

	c.Redirect(http.StatusFound, "/posts/"+strconv.FormatInt(id, 10))
}
