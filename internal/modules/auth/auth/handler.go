package auth

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/studydesk/core/internal/middleware"
	"github.com/studydesk/core/internal/modules/auth/user"
	"github.com/studydesk/core/internal/pkg/response"
	"github.com/studydesk/core/internal/pkg/validate"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	rg.POST("/register", h.register)
	rg.POST("/login", h.login)

	a := rg.Group("", authMW)
	a.DELETE("/logout", h.logout)
	a.GET("/sessions", h.listSessions)
	a.DELETE("/sessions/:id", h.revokeSession)
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, user.ErrInvalidName),
		errors.Is(err, user.ErrInvalidEmail),
		errors.Is(err, errInvalidCredentials):
		response.BadRequest(c, err.Error())
	case errors.Is(err, user.ErrEmailTaken):
		response.Conflict(c, err.Error())
	case errors.Is(err, errSessionNotFound):
		response.NotFoundMsg(c, err.Error())
	default:
		response.InternalError(c, err)
	}
}

func clientOf(c *gin.Context) Client {
	return Client{IP: c.ClientIP(), UA: c.Request.UserAgent()}
}

func (h *Handler) register(c *gin.Context) {
	var dto RegisterDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, validate.Message(err))
		return
	}
	token, u, err := h.svc.Register(&dto, clientOf(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Created(c, tokenResponse{Token: token, User: u})
}

func (h *Handler) login(c *gin.Context) {
	var dto LoginDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, validate.Message(err))
		return
	}
	token, u, err := h.svc.Login(&dto, clientOf(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, tokenResponse{Token: token, User: u})
}

func (h *Handler) logout(c *gin.Context) {
	if err := h.svc.Logout(middleware.CurrentUserID(c), middleware.CurrentSessionID(c)); err != nil {
		h.fail(c, err)
		return
	}
	response.NoContent(c)
}

func (h *Handler) listSessions(c *gin.Context) {
	sessions, err := h.svc.ListSessions(middleware.CurrentUserID(c), middleware.CurrentSessionID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, sessions)
}

func (h *Handler) revokeSession(c *gin.Context) {
	if err := h.svc.RevokeSession(middleware.CurrentUserID(c), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	response.NoContent(c)
}
