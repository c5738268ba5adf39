package user

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/studydesk/core/internal/middleware"
	"github.com/studydesk/core/internal/modules/storage/upload"
	"github.com/studydesk/core/internal/pkg/response"
	"github.com/studydesk/core/internal/pkg/validate"
)

// multipart envelope allowance on top of the avatar itself
const formOverhead = 1 << 20

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	a := rg.Group("", authMW)
	a.GET("/me", h.me)
	a.PUT("/profile", h.updateProfile)
	a.PUT("/password", h.changePassword)
	a.POST("/avatar", h.uploadAvatar)
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidName),
		errors.Is(err, ErrInvalidEmail),
		errors.Is(err, errWrongPassword),
		errors.Is(err, upload.ErrNoFile),
		errors.Is(err, upload.ErrFileTooLarge),
		errors.Is(err, upload.ErrFileType):
		response.BadRequest(c, err.Error())
	case errors.Is(err, ErrEmailTaken):
		response.Conflict(c, err.Error())
	case errors.Is(err, ErrUserNotFound):
		response.NotFoundMsg(c, err.Error())
	default:
		response.InternalError(c, err)
	}
}

func (h *Handler) me(c *gin.Context) {
	u, err := h.svc.GetByID(middleware.CurrentUserID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, u)
}

func (h *Handler) updateProfile(c *gin.Context) {
	var dto UpdateProfileDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, validate.Message(err))
		return
	}
	u, err := h.svc.UpdateProfile(middleware.CurrentUserID(c), &dto)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, u)
}

func (h *Handler) changePassword(c *gin.Context) {
	var dto ChangePasswordDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, validate.Message(err))
		return
	}
	err := h.svc.ChangePassword(middleware.CurrentUserID(c), middleware.CurrentSessionID(c), &dto)
	if errors.Is(err, ErrUserNotFound) {
		// an authenticated request whose user row is gone is a server fault
		response.InternalError(c, err)
		return
	}
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, gin.H{"message": "Password updated successfully"})
}

func (h *Handler) uploadAvatar(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxAvatarSize+formOverhead)
	fh, err := c.FormFile("avatar")
	if err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			h.fail(c, upload.ErrFileTooLarge)
			return
		}
		h.fail(c, upload.ErrNoFile)
		return
	}
	url, err := h.svc.UpdateAvatar(c.Request.Context(), middleware.CurrentUserID(c), fh)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, avatarResponse{AvatarURL: url})
}
