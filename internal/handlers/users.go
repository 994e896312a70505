package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"taskhub/backend/internal/directory"
	"taskhub/backend/internal/pagination"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	directory directory.Client
}

func NewUserHandler(client directory.Client) *UserHandler {
	return &UserHandler{directory: client}
}

// ListUsers returns one page of usernames from the identity provider,
// optionally filtered by a username prefix.
func (h *UserHandler) ListUsers(c *gin.Context) {
	prefix := c.Query("username")
	token := c.Query("nextToken")

	limit := 10
	if limitStr := c.Query("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	page, err := h.directory.ListUsers(c.Request.Context(), prefix, limit, token)
	if err != nil {
		if errors.Is(err, pagination.ErrInvalidCursor) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid pagination token"})
			return
		}
		log.Printf("user listing failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list users"})
		return
	}

	if page.Usernames == nil {
		page.Usernames = []string{}
	}
	response := gin.H{"users": page.Usernames}
	if page.NextToken != "" {
		response["nextToken"] = page.NextToken
	}
	c.JSON(http.StatusOK, response)
}
