package middleware

import (
	"net/http"

	"drivedash/models"
	"drivedash/utils"

	"github.com/gin-gonic/gin"
)

// PermissionChecker answers whether a user holds at least role on an item.
type PermissionChecker interface {
	HasItemPermission(userID, itemID string, role models.Role) (bool, error)
}

// PermissionMiddleware guards item routes on the content service side. The
// item comes from the ":id" path parameter.
func PermissionMiddleware(checker PermissionChecker, requiredRole models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("userId")
		resourceID := c.Param("id")

		if resourceID == "" {
			utils.ErrorResponse(c, http.StatusBadRequest, "Missing resource ID", "Missing resource ID")
			c.Abort()
			return
		}

		hasPermission, err := checker.HasItemPermission(userID, resourceID, requiredRole)
		if err != nil {
			utils.NotFoundResponse(c, err.Error())
			c.Abort()
			return
		}

		if !hasPermission {
			utils.ErrorResponse(c, http.StatusForbidden, "Insufficient permissions", "Insufficient permissions")
			c.Abort()
			return
		}

		c.Next()
	}
}
