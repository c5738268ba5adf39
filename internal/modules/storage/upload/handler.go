package upload

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/studydesk/core/internal/pkg/response"
	"github.com/studydesk/core/internal/pkg/validate"
)

// multipart envelope allowance on top of the file itself
const formOverhead = 1 << 20

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/upload", authMW)
	g.POST("/image", h.uploadImage)
	g.DELETE("/image", h.deleteImage)
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNoFile),
		errors.Is(err, ErrFileTooLarge),
		errors.Is(err, ErrFileType),
		errors.Is(err, errInvalidPath):
		response.BadRequest(c, err.Error())
	default:
		response.InternalError(c, err)
	}
}

func (h *Handler) uploadImage(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxImageSize+formOverhead)
	fh, err := c.FormFile("image")
	if err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			h.fail(c, ErrFileTooLarge)
			return
		}
		h.fail(c, ErrNoFile)
		return
	}
	info, err := h.svc.UploadImage(c.Request.Context(), fh)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, uploadResponse{Success: true, Data: *info})
}

func (h *Handler) deleteImage(c *gin.Context) {
	var dto DeleteImageDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, validate.Message(err))
		return
	}
	if err := h.svc.DeleteImage(c.Request.Context(), dto.Filename); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Image deleted successfully"})
}
