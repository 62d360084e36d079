package rest

import (
	"net/http"

	"github.com/dfryer1193/goslider/api"
	"github.com/dfryer1193/goslider/internal/middleware"
	"github.com/gin-gonic/gin"
)

// Login accepts a JSON or form body, sets the session cookie and returns the
// token for API clients.
func (h *handlers) Login(c *gin.Context) {
	var req api.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.Users.Authenticate(c.Request.Context(), req.Login, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	token, err := h.Tokens.IssueSession(user)
	if err != nil {
		respondError(c, err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, token, int(h.opts.SessionTTL.Seconds()), "/", "", h.opts.SecureCookies, true)
	c.JSON(http.StatusOK, api.LoginResponse{Token: token, Role: string(user.Role)})
}

func (h *handlers) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", h.opts.SecureCookies, true)
	c.Status(http.StatusNoContent)
}
