package web

import (
	"net/http"

	"go-staffhub/internal/auth"
	"go-staffhub/internal/employee"
	"go-staffhub/internal/shared/apperror"
	"go-staffhub/internal/shared/response"
	"go-staffhub/internal/session"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Handler serves the session-based surface the dashboard and list views
// consume. Rendering itself happens elsewhere; these endpoints return the
// data the views bind to.
type Handler struct {
	verifier   auth.Service
	employees  employee.Service
	dashboard  DashboardService
	sessions   *session.Store
	cookieName string
	secure     bool
	logger     *zap.Logger
}

func NewHandler(
	verifier auth.Service,
	employees employee.Service,
	dashboard DashboardService,
	sessions *session.Store,
	cookieName string,
	secure bool,
	logger ...*zap.Logger,
) *Handler {
	l := zap.L().Named("web.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("web.handler")
	}
	return &Handler{
		verifier:   verifier,
		employees:  employees,
		dashboard:  dashboard,
		sessions:   sessions,
		cookieName: cookieName,
		secure:     secure,
		logger:     l,
	}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("web request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	response.Error(c, httpErr.Status, httpErr.Message)
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, httpErr.Status, httpErr.Message)
		return
	}

	// Same credential primitive as the API login, different identity store.
	principal, err := h.verifier.VerifyCredentials(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	sid, err := h.sessions.Create(c.Request.Context(), principal)
	if err != nil {
		h.logger.Error("create session failed", zap.Error(err))
		response.Error(c, http.StatusInternalServerError, "An unexpected error occurred")
		return
	}

	http.SetCookie(c.Writer, &http.Cookie{
		Name:     h.cookieName,
		Value:    sid,
		Path:     "/",
		MaxAge:   int(h.sessions.TTL().Seconds()),
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
	})

	h.logger.Info("web login success", zap.String("user_id", principal.ID))
	response.Success(c, http.StatusOK, "Signed in", gin.H{
		"username": principal.Username,
		"role":     principal.Role,
	})
}

func (h *Handler) Logout(c *gin.Context) {
	if sid := c.GetString("session_id"); sid != "" {
		if err := h.sessions.Destroy(c.Request.Context(), sid); err != nil {
			h.logger.Error("destroy session failed", zap.Error(err))
		}
	}

	http.SetCookie(c.Writer, &http.Cookie{
		Name:     h.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
	})

	response.Success(c, http.StatusOK, "Signed out", nil)
}

func (h *Handler) Dashboard(c *gin.Context) {
	stats, err := h.dashboard.Stats(c.Request.Context())
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Dashboard statistics", stats)
}

// Employees backs the list view: free-text search plus department filter.
func (h *Handler) Employees(c *gin.Context) {
	ctx := c.Request.Context()

	if dept := c.Query("department"); dept != "" {
		resp, err := h.employees.GetByDepartment(ctx, dept)
		if err != nil {
			h.writeServiceError(c, err)
			return
		}
		response.Success(c, http.StatusOK, "Employees retrieved", resp)
		return
	}

	resp, err := h.employees.Search(ctx, c.Query("q"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Employees retrieved", resp)
}
