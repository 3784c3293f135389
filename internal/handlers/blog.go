package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/frencon/backend/internal/blog"
)

type BlogHandler struct {
	posts *blog.Store
}

func NewBlogHandler(posts *blog.Store) *BlogHandler {
	return &BlogHandler{posts: posts}
}

func (h *BlogHandler) List(c *gin.Context) {
	posts, err := h.posts.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load blog posts"})
		return
	}
	c.JSON(http.StatusOK, posts)
}

func (h *BlogHandler) Get(c *gin.Context) {
	post, err := h.posts.Get(c.Param("slug"))
	if err != nil {
		if errors.Is(err, blog.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Blog post not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load blog post"})
		return
	}
	c.JSON(http.StatusOK, post)
}
