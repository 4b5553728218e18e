package handlers

import (
	"net/http"

	dom "propboard/internal/domain"

	"github.com/gin-gonic/gin"
)

func parseID(c *gin.Context, name string) (string, bool) {
	id, err := dom.ParseID(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return "", false
	}
	return id, true
}
