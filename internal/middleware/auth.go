package middleware

import (
	"net/http"
	"strings"

	"github.com/dfryer1193/goslider/slider/domain"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const (
	// SessionCookie holds the session token of a signed-in user.
	SessionCookie = "goslider_session"

	principalKey = "principal"
)

type SessionVerifier interface {
	VerifySession(token string) (domain.Principal, error)
}

// RequireSession rejects requests without a valid session, taken from the
// Authorization bearer header or, failing that, the session cookie. The
// verified principal is stored on the context.
func RequireSession(sessions SessionVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := sessionToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}

		principal, err := sessions.VerifySession(token)
		if err != nil {
			log.Warn().Str("path", c.Request.URL.Path).Msg("Rejected invalid session")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}

		c.Set(principalKey, principal)
		c.Next()
	}
}

// Principal returns the caller stored by RequireSession.
func Principal(c *gin.Context) (domain.Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return domain.Principal{}, false
	}
	p, ok := v.(domain.Principal)
	return p, ok
}

func sessionToken(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); header != "" {
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found {
			return ""
		}
		return strings.TrimSpace(token)
	}
	if cookie, err := c.Cookie(SessionCookie); err == nil {
		return cookie
	}
	return ""
}
