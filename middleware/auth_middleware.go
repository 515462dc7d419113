package middleware

import (
	"net/http"
	"strings"

	"drivedash/utils"

	"github.com/gin-gonic/gin"
)

// TokenSource yields the current session token, or "" when signed out.
type TokenSource interface {
	Token() string
}

// AuthTransport attaches the session token to every outgoing request. With
// no session it fails locally with utils.ErrNotLoggedIn and the request
// never reaches the network.
type AuthTransport struct {
	Base   http.RoundTripper
	Tokens TokenSource
}

func (t *AuthTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	token := t.Tokens.Token()
	if token == "" {
		if req.Body != nil {
			req.Body.Close()
		}
		return nil, utils.ErrNotLoggedIn
	}

	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}

	out := req.Clone(req.Context())
	out.Header.Set("Authorization", "Bearer "+token)
	return base.RoundTrip(out)
}

// AuthMiddleware verifies bearer tokens on the content service side.
func AuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractBearerToken(c.GetHeader("Authorization"))
		if token == "" {
			utils.UnauthorizedResponse(c, "Authorization token required")
			c.Abort()
			return
		}

		claims, err := utils.VerifyJWTTokenWithSecret(token, jwtSecret)
		if err != nil {
			utils.UnauthorizedResponse(c, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set("userId", claims.UserID)
		c.Set("email", claims.Email)
		c.Set("name", claims.Name)
		c.Set("role", claims.Role)

		c.Next()
	}
}

func extractBearerToken(authHeader string) string {
	if authHeader == "" {
		return ""
	}

	const bearerPrefix = "Bearer "
	if !strings.HasPrefix(authHeader, bearerPrefix) {
		return ""
	}

	return strings.TrimSpace(authHeader[len(bearerPrefix):])
}
