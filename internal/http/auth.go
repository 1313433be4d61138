package http

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"msgboard/internal/domain"
	"msgboard/internal/service"
)

func (h *Handler) registerPage(c *gin.Context) {
	h.render(c, http.StatusOK, "register.html", gin.H{"Name": "", "Email": ""})
}

// register handles the registration form. Validation failures re-render the
// form with every collected message and the submitted values; nothing is
// persisted in that case.
func (h *Handler) register(c *gin.Context) {
	form := service.RegisterForm{
		Name:     c.PostForm("name"),
		Email:    c.PostForm("email"),
		Password: c.PostForm("password"),
		Confirm:  c.PostForm("password2"),
	}

	_, err := h.users.Register(c.Request.Context(), form)
	var verrs domain.ValidationErrors
	if errors.As(err, &verrs) {
		h.render(c, http.StatusOK, "register.html", gin.H{
			"Errors": []string(verrs),
			"Name":   form.Name,
			"Email":  form.Email,
		})
		return
	}
	if err != nil {
		h.log.Errorf("register: %v", err)
		h.addFlash(c, flashError, "Something went wrong, please try again.")
		c.Redirect(http.StatusSeeOther, "/users/register")
		return
	}

	h.addFlash(c, flashSuccess, "You are now registered and can login.")
	h.addFlash(c, flashError, "Account verification link has been sent to your email.")
	c.Redirect(http.StatusSeeOther, "/users/login")
}

func (h *Handler) loginPage(c *gin.Context) {
	code := c.Query("code")

	// a logged-in verification attempt goes straight to the verify flow
	if h.currentUser(c) != nil && code != "" {
		c.Redirect(http.StatusSeeOther, "/users/verify?code="+url.QueryEscape(code))
		return
	}

	if code != "" {
		if user, err := h.users.GetByCode(c.Request.Context(), code); err == nil && user.Valid {
			h.addFlash(c, flashError, "Verification link has already been used.")
			c.Redirect(http.StatusSeeOther, "/api/messages")
			return
		}
		h.render(c, http.StatusOK, "login.html", gin.H{
			"Code":    code,
			"Message": "Please login to complete account verification!",
		})
		return
	}

	h.render(c, http.StatusOK, "login.html", nil)
}

func (h *Handler) login(c *gin.Context) {
	email := c.PostForm("email")
	password := c.PostForm("password")
	if email == "" || password == "" {
		h.addFlash(c, flashError, "Missing credentials, please enter your email and password.")
		c.Redirect(http.StatusSeeOther, "/users/login")
		return
	}

	user, err := h.users.Authenticate(c.Request.Context(), email, password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			h.addFlash(c, flashError, "Email or password is incorrect.")
			c.Redirect(http.StatusSeeOther, "/users/login")
			return
		}
		h.log.Errorf("login: %v", err)
		h.addFlash(c, flashError, "Something went wrong, please try again.")
		c.Redirect(http.StatusSeeOther, "/users/login")
		return
	}

	if err := h.issueSession(c, user.ID); err != nil {
		h.log.Errorf("issue session: %v", err)
		h.addFlash(c, flashError, "Something went wrong, please try again.")
		c.Redirect(http.StatusSeeOther, "/users/login")
		return
	}

	// a login carrying a verification code chains into the verify flow
	if code := c.Query("code"); code != "" {
		c.Redirect(http.StatusSeeOther, "/users/verify?code="+url.QueryEscape(code))
		return
	}
	c.Redirect(http.StatusSeeOther, "/api/messages")
}

func (h *Handler) verify(c *gin.Context) {
	user := h.currentUser(c)
	if user.Valid {
		c.Redirect(http.StatusSeeOther, "/api/messages")
		return
	}

	err := h.users.Verify(c.Request.Context(), user, c.Query("code"))
	if err != nil {
		if errors.Is(err, service.ErrInvalidCode) {
			// no hint about whether such a code exists
			h.addFlash(c, flashError, "Invalid request.")
			c.Redirect(http.StatusSeeOther, "/users/login")
			return
		}
		h.log.Errorf("verify: %v", err)
		h.addFlash(c, flashError, "Something went wrong, please try again.")
		c.Redirect(http.StatusSeeOther, "/users/login")
		return
	}

	h.addFlash(c, flashSuccess, "Email verification complete, you can now create messages.")
	c.Redirect(http.StatusSeeOther, "/api/messages")
}

func (h *Handler) logout(c *gin.Context) {
	if h.currentUser(c) == nil {
		h.addFlash(c, flashError, "Please login first.")
		c.Redirect(http.StatusSeeOther, refererOr(c.Request, "/"))
		return
	}

	h.clearSession(c)
	h.addFlash(c, flashSuccess, "You are logged out.")
	c.Redirect(http.StatusSeeOther, "/users/login")
}
