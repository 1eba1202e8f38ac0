package dto

// PostForm represents the new-post form submission
type PostForm struct {
	Title string `form:"title" binding:"required"`
	Body  string `form:"body" binding:"required"`
}

// CommentForm represents the new-comment form submission
type CommentForm struct {
	Body string `form:"body" binding:"required"`
}
