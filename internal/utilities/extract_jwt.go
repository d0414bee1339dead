package utilities

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
)

// ExtractBearerToken pulls the access token from the Authorization header,
// falling back to the x-auth-token header used by older clients. Either
// header may carry the "Bearer " prefix.
func ExtractBearerToken(c *gin.Context) (string, error) {

	const BearerSchema = "Bearer "

	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		authHeader = c.GetHeader("x-auth-token")
	}
	if authHeader == "" {
		return "", fmt.Errorf("No token provided")
	}

	if strings.HasPrefix(authHeader, BearerSchema) {
		authHeader = strings.TrimSpace(authHeader[len(BearerSchema):])
	}
	if authHeader == "" {
		return "", fmt.Errorf("Invalid authorization header")
	}

	return authHeader, nil
}
