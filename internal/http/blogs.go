package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"msgboard/internal/domain"
)

type createBlogRequest struct {
	Title string `json:"title" form:"title" binding:"required"`
	Body  string `json:"body" form:"body" binding:"required"`
}

func (h *Handler) createBlog(c *gin.Context) {
	var req createBlogRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	blog, err := h.blogs.Create(c.Request.Context(), h.currentUser(c), req.Title, req.Body)
	if err != nil {
		h.jsonError(c, err)
		return
	}
	c.JSON(http.StatusCreated, blogToResponse(*blog))
}

func (h *Handler) listBlogs(c *gin.Context) {
	blogs, err := h.blogs.List(c.Request.Context())
	if err != nil {
		h.jsonError(c, err)
		return
	}

	resp := make([]BlogResponse, len(blogs))
	for i := range blogs {
		resp[i] = blogToResponse(blogs[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) getBlog(c *gin.Context) {
	blog, err := h.blogs.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.jsonError(c, err)
		return
	}
	c.JSON(http.StatusOK, blogToResponse(*blog))
}

type updateBlogRequest struct {
	Title *string `json:"title" form:"title"`
	Body  *string `json:"body" form:"body"`
}

func (h *Handler) updateBlog(c *gin.Context) {
	var req updateBlogRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	blog, err := h.blogs.Update(c.Request.Context(), h.currentUser(c), c.Param("id"), req.Title, req.Body)
	if err != nil {
		h.jsonError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "Blog updated.", "blog": blogToResponse(*blog)})
}

func (h *Handler) deleteBlog(c *gin.Context) {
	if err := h.blogs.Delete(c.Request.Context(), h.currentUser(c), c.Param("id")); err != nil {
		h.jsonError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "Blog post was deleted successfully!"})
}

type addCommentRequest struct {
	Body string `json:"body" form:"body" binding:"required"`
}

func (h *Handler) addComment(c *gin.Context) {
	var req addCommentRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment, err := h.blogs.AddComment(c.Request.Context(), h.currentUser(c), c.Param("id"), req.Body)
	if err != nil {
		h.jsonError(c, err)
		return
	}
	c.JSON(http.StatusOK, commentToResponse(*comment))
}

func (h *Handler) clearComments(c *gin.Context) {
	if err := h.blogs.ClearComments(c.Request.Context(), h.currentUser(c), c.Param("id")); err != nil {
		h.jsonError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "Comments deleted."})
}

func (h *Handler) removeComment(c *gin.Context) {
	if err := h.blogs.RemoveComment(c.Request.Context(), h.currentUser(c), c.Param("id"), c.Param("commentId")); err != nil {
		h.jsonError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "Comment deleted."})
}

type BlogResponse struct {
	ID       string            `json:"id"`
	Title    string            `json:"title"`
	Author   string            `json:"author"`
	Body     string            `json:"body"`
	Comments []CommentResponse `json:"comments"`
	Created  string            `json:"created"`
}

type CommentResponse struct {
	ID      string `json:"id"`
	Body    string `json:"body"`
	Created string `json:"created"`
}

func blogToResponse(blog domain.Blog) BlogResponse {
	resp := BlogResponse{
		ID:       blog.ID,
		Title:    blog.Title,
		Author:   blog.Author,
		Body:     blog.Body,
		Comments: make([]CommentResponse, len(blog.Comments)),
		Created:  blog.Created.Format(time.RFC3339),
	}
	for i := range blog.Comments {
		resp.Comments[i] = commentToResponse(blog.Comments[i])
	}
	return resp
}

func commentToResponse(c domain.Comment) CommentResponse {
	return CommentResponse{
		ID:      c.ID,
		Body:    c.Body,
		Created: c.Created.Format(time.RFC3339),
	}
}
