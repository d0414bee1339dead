package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"skillsync-backend/internal/model"
	"skillsync-backend/internal/utilities"
)

// CheckRole will protect endpoint from user that is not a specific roles
func CheckRole(roles ...model.Role) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		user, err := utilities.ExtractUser(ctx)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
			return
		}

		for _, role := range roles {
			if user.Role == role {
				return
			}
		}

		ctx.AbortWithStatusJSON(http.StatusForbidden, utilities.ErrorResponse{
			Error: "User doesn't have permission to access",
		})
	}
}
