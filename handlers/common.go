package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// currentUserID reads the authenticated user's id that the auth middleware
// stored in the request context. Aborts with 401 when missing or malformed.
func currentUserID(c *gin.Context) (primitive.ObjectID, bool) {
	raw := c.GetString("userID")
	if raw == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "No autenticado"})
		return primitive.NilObjectID, false
	}
	oid, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "No autenticado"})
		return primitive.NilObjectID, false
	}
	return oid, true
}
