package note

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/studydesk/core/internal/middleware"
	"github.com/studydesk/core/internal/pkg/pagination"
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
	g := rg.Group("/notes", authMW)
	g.GET("", h.list)
	g.POST("", h.create)
	g.GET("/search", h.search)
	g.POST("/import", h.importMarkdown)
	g.GET("/:id", h.get)
	g.PUT("/:id", h.update)
	g.DELETE("/:id", h.delete)
	g.GET("/:id/export", h.export)
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errNoteNotFound):
		response.NotFoundMsg(c, err.Error())
	case errors.Is(err, errTitleTooLong), errors.Is(err, errUnknownFormat):
		response.BadRequest(c, err.Error())
	default:
		response.InternalError(c, err)
	}
}

func (h *Handler) list(c *gin.Context) {
	uid := middleware.CurrentUserID(c)
	if q, ok := pagination.FromContext(c); ok {
		notes, pag, err := h.svc.ListPage(uid, q)
		if err != nil {
			h.fail(c, err)
			return
		}
		response.Paged(c, notes, pag)
		return
	}
	notes, err := h.svc.List(uid)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, notes)
}

func (h *Handler) search(c *gin.Context) {
	notes, err := h.svc.Search(middleware.CurrentUserID(c), c.Query("q"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, notes)
}

func (h *Handler) create(c *gin.Context) {
	var dto CreateNoteDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, validate.Message(err))
		return
	}
	n, err := h.svc.Create(middleware.CurrentUserID(c), &dto)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Created(c, n)
}

func (h *Handler) importMarkdown(c *gin.Context) {
	var dto ImportNoteDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, validate.Message(err))
		return
	}
	n, err := h.svc.Import(middleware.CurrentUserID(c), &dto)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Created(c, n)
}

func (h *Handler) get(c *gin.Context) {
	n, err := h.svc.GetByID(c.Param("id"), middleware.CurrentUserID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, n)
}

func (h *Handler) update(c *gin.Context) {
	var dto UpdateNoteDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, validate.Message(err))
		return
	}
	n, err := h.svc.Update(c.Param("id"), middleware.CurrentUserID(c), &dto)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, n)
}

func (h *Handler) delete(c *gin.Context) {
	if err := h.svc.Delete(c.Param("id"), middleware.CurrentUserID(c)); err != nil {
		h.fail(c, err)
		return
	}
	response.NoContent(c)
}

func (h *Handler) export(c *gin.Context) {
	format := c.DefaultQuery("format", FormatMarkdown)
	body, err := h.svc.Export(c.Param("id"), middleware.CurrentUserID(c), format)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.Data(http.StatusOK, contentType(format), []byte(body))
}
