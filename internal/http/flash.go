package http

import (
	"encoding/base64"
	"encoding/json"

	"github.com/gin-gonic/gin"
)

// Flash notices survive exactly one redirect: they are written to a transient
// cookie on the way out and popped into the next rendered page.

const (
	flashCookie     = "msgboard_flash"
	flashContextKey = "msgboard.flash"

	flashSuccess = "success"
	flashError   = "error"
)

type flashMessage struct {
	Level string `json:"level"`
	Text  string `json:"text"`
}

func (h *Handler) addFlash(c *gin.Context, level, text string) {
	var pending []flashMessage
	if v, ok := c.Get(flashContextKey); ok {
		if msgs, ok := v.([]flashMessage); ok {
			pending = msgs
		}
	}
	pending = append(pending, flashMessage{Level: level, Text: text})
	c.Set(flashContextKey, pending)

	encoded, err := json.Marshal(pending)
	if err != nil {
		h.log.Errorf("encode flash cookie: %v", err)
		return
	}
	c.SetCookie(flashCookie, base64.URLEncoding.EncodeToString(encoded), 300, "/", "", false, true)
}

// popFlashes reads the pending notices off the request and clears the cookie.
func (h *Handler) popFlashes(c *gin.Context) []flashMessage {
	raw, err := c.Cookie(flashCookie)
	if err != nil || raw == "" {
		return nil
	}
	c.SetCookie(flashCookie, "", -1, "/", "", false, true)

	decoded, err := base64.URLEncoding.DecodeString(raw)
	if err != nil {
		return nil
	}
	var msgs []flashMessage
	if err := json.Unmarshal(decoded, &msgs); err != nil {
		return nil
	}
	return msgs
}
