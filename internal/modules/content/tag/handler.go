package tag

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/studydesk/core/internal/middleware"
	"github.com/studydesk/core/internal/models"
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
	g := rg.Group("/tags", authMW)
	g.GET("", h.list)
	g.POST("", h.create)
	g.DELETE("/:id", h.delete)
}

func (h *Handler) list(c *gin.Context) {
	var (
		tags []models.TagModel
		err  error
	)
	if c.Query("scope") == "all" {
		tags, err = h.svc.List()
	} else {
		tags, err = h.svc.ListByUser(middleware.CurrentUserID(c))
	}
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, tags)
}

func (h *Handler) create(c *gin.Context) {
	var dto CreateTagDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, validate.Message(err))
		return
	}
	t, created, err := h.svc.Create(dto.Name)
	if err != nil {
		if errors.Is(err, errTagNameRequired) {
			response.BadRequest(c, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}
	if created {
		response.Created(c, t)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (h *Handler) delete(c *gin.Context) {
	if err := h.svc.Delete(c.Param("id")); err != nil {
		if errors.Is(err, errTagNotFound) {
			response.NotFoundMsg(c, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}
	response.NoContent(c)
}
