package http

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
)

func (h *Handler) welcome(c *gin.Context) {
	h.render(c, http.StatusOK, "welcome.html", nil)
}

func (h *Handler) composer(c *gin.Context) {
	user := h.currentUser(c)
	h.render(c, http.StatusOK, "addmessage.html", gin.H{
		"Username": user.Name,
	})
}

// account forwards to the caller's own collection, carrying the two
// visibility flags through.
func (h *Handler) account(c *gin.Context) {
	user := h.currentUser(c)

	q := url.Values{}
	q.Set("public", c.Query("public"))
	q.Set("private", c.Query("private"))
	c.Redirect(http.StatusSeeOther, "/api/messages/"+url.PathEscape(user.Name)+"?"+q.Encode())
}
