package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"msgboard/internal/domain"
	"msgboard/internal/service"
)

// Handler wires HTTP routes to domain services.
type Handler struct {
	users    service.UserService
	messages service.MessageService
	blogs    service.BlogService
	log      *logrus.Logger

	sessionSecret []byte
	sessionTTL    time.Duration
}

func NewHandler(users service.UserService, messages service.MessageService, blogs service.BlogService, logger *logrus.Logger, sessionSecret string, sessionTTL time.Duration) *Handler {
	if sessionTTL <= 0 {
		sessionTTL = 24 * time.Hour
	}
	return &Handler{
		users:         users,
		messages:      messages,
		blogs:         blogs,
		log:           logger,
		sessionSecret: []byte(sessionSecret),
		sessionTTL:    sessionTTL,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.GET("/", h.welcome)
	router.GET("/add", h.requireAuth(h.composer))
	router.GET("/account", h.requireAuth(h.account))

	users := router.Group("/users")
	{
		users.GET("/register", h.registerPage)
		users.POST("/register", h.register)
		users.GET("/login", h.loginPage)
		users.POST("/login", h.login)
		users.GET("/verify", h.requireAuth(h.verify))
		users.GET("/logout", h.logout)
	}

	api := router.Group("/api")
	{
		api.GET("/messages", h.board)
		api.GET("/messages/:username", h.listMessages)
		api.POST("/messages", h.requireAuth(h.createMessage))
		api.POST("/messages/:id", h.requireAuth(h.publishMessage))
		api.PATCH("/messages/:id", h.requireAuth(h.updateMessage))
		api.DELETE("/messages/:id", h.requireAuth(h.deleteMessage))

		api.GET("/blogs", h.listBlogs)
		api.GET("/blogs/:id", h.getBlog)
		api.POST("/blogs", h.requireAuth(h.createBlog))
		api.PATCH("/blogs/:id", h.requireAuth(h.updateBlog))
		api.DELETE("/blogs/:id", h.requireAuth(h.deleteBlog))
		api.PATCH("/blogs/:id/comments", h.requireAuth(h.addComment))
		api.DELETE("/blogs/:id/comments", h.requireAuth(h.clearComments))
		api.DELETE("/blogs/:id/comments/:commentId", h.requireAuth(h.removeComment))
	}
}

// requireAuth resolves the session before the wrapped handler runs. Anonymous
// requests are bounced to the login page with a notice.
func (h *Handler) requireAuth(next gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := h.currentUser(c)
		if user == nil {
			h.addFlash(c, flashError, "Please login to view this resource.")
			c.Redirect(http.StatusSeeOther, "/users/login")
			c.Abort()
			return
		}
		next(c)
	}
}

// render draws an HTML template with the per-request view context: the
// authenticated user (if any) and the flash notices popped for this response.
func (h *Handler) render(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}

	var success, failures []string
	for _, f := range h.popFlashes(c) {
		if f.Level == flashSuccess {
			success = append(success, f.Text)
		} else {
			failures = append(failures, f.Text)
		}
	}
	data["SuccessNotices"] = success
	data["ErrorNotices"] = failures
	if _, ok := data["User"]; !ok {
		data["User"] = h.currentUser(c)
	}

	c.HTML(status, name, data)
}

// jsonError translates a domain error into the API error body.
func (h *Handler) jsonError(c *gin.Context, err error) {
	var verrs domain.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		c.JSON(http.StatusBadRequest, gin.H{"error": verrs.Error()})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, domain.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	default:
		h.log.Errorf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// RequestLogger logs every request through the application logger.
func RequestLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Infof("%s %s %d %s", c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
	}
}

// MethodOverride promotes POST form submissions carrying a _method field to
// the verb HTML forms cannot express. Must wrap the router, since routing
// dispatches on the rewritten method.
func MethodOverride(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			switch strings.ToUpper(r.PostFormValue("_method")) {
			case http.MethodPatch:
				r.Method = http.MethodPatch
			case http.MethodPut:
				r.Method = http.MethodPut
			case http.MethodDelete:
				r.Method = http.MethodDelete
			}
		}
		next.ServeHTTP(w, r)
	})
}
