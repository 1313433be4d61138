package http

import (
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"

	"msgboard/internal/domain"
	"msgboard/internal/service"
)

// board renders the public message board: reviewed public messages, newest first.
func (h *Handler) board(c *gin.Context) {
	msgs, err := h.messages.PublicBoard(c.Request.Context())
	if err != nil {
		h.jsonError(c, err)
		return
	}
	h.render(c, http.StatusOK, "messageboard.html", gin.H{
		"Title":    "MESSAGE BOARD",
		"Messages": msgs,
	})
}

// listMessages renders a per-user collection, subject to the visibility rules.
func (h *Handler) listMessages(c *gin.Context) {
	viewer := h.currentUser(c)
	owner := c.Param("username")
	wantPublic := c.Query("public") == "true"
	wantPrivate := c.Query("private") == "true"

	listing, err := h.messages.ListForViewer(c.Request.Context(), viewer, owner, wantPublic, wantPrivate)
	if err != nil {
		h.jsonError(c, err)
		return
	}

	h.render(c, http.StatusOK, "messageboard.html", gin.H{
		"Title":          listing.Title,
		"Messages":       listing.Messages,
		"ReviewControls": listing.ReviewControls,
	})
}

func (h *Handler) createMessage(c *gin.Context) {
	user := h.currentUser(c)
	private := c.PostForm("private") == "on" || c.PostForm("private") == "true"

	_, err := h.messages.Create(c.Request.Context(), user, c.PostForm("title"), c.PostForm("body"), c.PostForm("color"), private)
	if err != nil {
		var verrs domain.ValidationErrors
		switch {
		case errors.As(err, &verrs):
			h.addFlash(c, flashError, "Please fill all fields")
			c.Redirect(http.StatusSeeOther, "/add")
		case errors.Is(err, service.ErrNotVerified):
			h.addFlash(c, flashError, "Please verify your email before posting.")
			c.Redirect(http.StatusSeeOther, "/api/messages")
		default:
			h.jsonError(c, err)
		}
		return
	}

	h.addFlash(c, flashSuccess, "Message successfully posted!")
	c.Redirect(http.StatusSeeOther, "/api/messages")
}

// publishMessage marks a public message as reviewed. Administrator action.
func (h *Handler) publishMessage(c *gin.Context) {
	user := h.currentUser(c)

	if err := h.messages.Publish(c.Request.Context(), user, c.Param("id")); err != nil {
		h.jsonError(c, err)
		return
	}

	h.addFlash(c, flashSuccess, "Message published.")
	c.Redirect(http.StatusSeeOther, "/api/messages/"+url.PathEscape(user.Name))
}

type updateMessageRequest struct {
	Title   *string `json:"title" form:"title"`
	Body    *string `json:"body" form:"body"`
	Color   *string `json:"color" form:"color"`
	Private *bool   `json:"private" form:"private"`
}

func (h *Handler) updateMessage(c *gin.Context) {
	var req updateMessageRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user := h.currentUser(c)
	msg, err := h.messages.Update(c.Request.Context(), user, c.Param("id"), service.MessageUpdate{
		Title:   req.Title,
		Body:    req.Body,
		Color:   req.Color,
		Private: req.Private,
	})
	if err != nil {
		h.jsonError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": "Message updated.", "message": messageToResponse(*msg)})
}

func (h *Handler) deleteMessage(c *gin.Context) {
	user := h.currentUser(c)

	if err := h.messages.Delete(c.Request.Context(), user, c.Param("id")); err != nil {
		h.jsonError(c, err)
		return
	}

	h.addFlash(c, flashSuccess, "Message successfully deleted!")
	c.Redirect(http.StatusSeeOther, "/api/messages/"+url.PathEscape(user.Name)+"?public=true&private=true")
}

type MessageResponse struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Author   string `json:"author"`
	Body     string `json:"body"`
	Color    string `json:"color"`
	Private  bool   `json:"private"`
	Reviewed bool   `json:"reviewed"`
	Created  string `json:"created"`
}

func messageToResponse(msg domain.Message) MessageResponse {
	return MessageResponse{
		ID:       msg.ID,
		Title:    msg.Title,
		Author:   msg.Author,
		Body:     msg.Body,
		Color:    msg.Color,
		Private:  msg.Private,
		Reviewed: msg.Reviewed,
		Created:  msg.Created.Format(time.RFC3339),
	}
}
