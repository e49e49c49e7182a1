package sessions

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"chempaper-backend/internal/shared/server/middleware"
	"chempaper-backend/internal/shared/server/respond"
)

// DataReset discards everything a session owns.
type DataReset interface {
	Reset(ctx context.Context, sessionID string) error
}

// Handler wires HTTP handlers to the session service.
type Handler struct {
	Svc  *Service
	Data DataReset
}

func NewHandler(svc *Service, data DataReset) *Handler {
	return &Handler{Svc: svc, Data: data}
}

// RegisterRoutes attaches auth and session routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/auth/login", h.login)
	rg.DELETE("/session", h.reset)
}

type loginRequest struct {
	Password string `json:"password"`
}

type loginResponse struct {
	SessionToken string    `json:"sessionToken"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	sess, err := h.Svc.Login(req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidPassword) {
			respond.Error(c, http.StatusUnauthorized, "invalid_password", "wrong access password", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to create session", nil)
		return
	}

	respond.OK(c, loginResponse{
		SessionToken: sess.Token,
		CreatedAt:    sess.CreatedAt,
	})
}

func (h *Handler) reset(c *gin.Context) {
	sessionID := middleware.SessionFromContext(c)

	if err := h.Data.Reset(c.Request.Context(), sessionID); err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to reset session", nil)
		return
	}
	h.Svc.Reset(sessionID)

	c.Status(http.StatusNoContent)
}
