package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"msgboard/internal/domain"
)

const (
	sessionCookie  = "msgboard_session"
	userContextKey = "msgboard.user"
)

type sessionClaims struct {
	jwt.RegisteredClaims
	UserID int64 `json:"uid"`
}

// issueSession binds the user's identity to a signed session cookie.
func (h *Handler) issueSession(c *gin.Context, userID int64) error {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(h.sessionTTL)),
		},
		UserID: userID,
	})

	signed, err := token.SignedString(h.sessionSecret)
	if err != nil {
		return err
	}

	c.SetCookie(sessionCookie, signed, int(h.sessionTTL.Seconds()), "/", "", false, true)
	return nil
}

func (h *Handler) clearSession(c *gin.Context) {
	c.SetCookie(sessionCookie, "", -1, "/", "", false, true)
}

// currentUser resolves the session cookie to a persisted user. Returns nil for
// anonymous, expired, or tampered sessions. The result is cached on the
// request context so repeated calls cost one lookup.
func (h *Handler) currentUser(c *gin.Context) *domain.User {
	if v, ok := c.Get(userContextKey); ok {
		if user, ok := v.(*domain.User); ok {
			return user
		}
		return nil
	}

	user := h.resolveSession(c)
	c.Set(userContextKey, user)
	return user
}

func (h *Handler) resolveSession(c *gin.Context) *domain.User {
	raw, err := c.Cookie(sessionCookie)
	if err != nil || raw == "" {
		return nil
	}

	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		return h.sessionSecret, nil
	})
	if err != nil || !token.Valid {
		return nil
	}

	user, err := h.users.GetByID(c.Request.Context(), claims.UserID)
	if err != nil {
		return nil
	}
	return user
}

// refererOr returns the request referer, or fallback when there is none.
func refererOr(r *http.Request, fallback string) string {
	if ref := r.Referer(); ref != "" {
		return ref
	}
	return fallback
}
