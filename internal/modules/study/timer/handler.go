package timer

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/studydesk/core/internal/middleware"
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
	g := rg.Group("", authMW)
	g.GET("/timer_session_show", h.listSessions)
	g.POST("/timer_sessions_store", h.createSession)
	g.GET("/timer_sessions/summary", h.summary)
	g.PUT("/timer_sessions/:id", h.updateSession)
	g.GET("/user_tasks_today", h.todayTasks)
	g.PUT("/user_tasks_hide/:subject", h.hideTask)
	g.POST("/user_tasks_store", h.upsertSetting)
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errMissingFields),
		errors.Is(err, errMissingSettingFields),
		errors.Is(err, errInvalidDate),
		errors.Is(err, errNegativeDuration),
		errors.Is(err, errInvalidRange),
		errors.Is(err, errDuplicateSubject):
		response.BadRequest(c, err.Error())
	case errors.Is(err, errUserMismatch):
		response.ForbiddenMsg(c, err.Error())
	case errors.Is(err, errSessionNotFound), errors.Is(err, errSettingNotFound):
		response.NotFoundMsg(c, err.Error())
	default:
		response.InternalError(c, err)
	}
}

func (h *Handler) listSessions(c *gin.Context) {
	uid := middleware.CurrentUserID(c)
	if requested := c.Query("user_id"); requested != "" && requested != uid {
		h.fail(c, errUserMismatch)
		return
	}
	sessions, err := h.svc.ListSessions(uid, SessionFilter{
		Date:    c.Query("date"),
		Subject: c.Query("subject"),
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, sessions)
}

func (h *Handler) createSession(c *gin.Context) {
	var dto CreateSessionDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, validate.Message(err))
		return
	}
	ts, err := h.svc.CreateSession(middleware.CurrentUserID(c), &dto)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Created(c, ts)
}

func (h *Handler) updateSession(c *gin.Context) {
	var dto UpdateSessionDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, validate.Message(err))
		return
	}
	ts, err := h.svc.UpdateSession(c.Param("id"), middleware.CurrentUserID(c), &dto)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, ts)
}

func (h *Handler) summary(c *gin.Context) {
	sum, err := h.svc.Summary(middleware.CurrentUserID(c), c.Query("from"), c.Query("to"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, sum)
}

func (h *Handler) todayTasks(c *gin.Context) {
	tasks, err := h.svc.TodayTasks(middleware.CurrentUserID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, tasks)
}

func (h *Handler) hideTask(c *gin.Context) {
	setting, err := h.svc.HideTask(middleware.CurrentUserID(c), c.Param("subject"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, setting)
}

func (h *Handler) upsertSetting(c *gin.Context) {
	var dto TaskSettingDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, validate.Message(err))
		return
	}
	setting, created, err := h.svc.UpsertTaskSetting(middleware.CurrentUserID(c), &dto)
	if err != nil {
		h.fail(c, err)
		return
	}
	if created {
		response.Created(c, setting)
		return
	}
	c.JSON(http.StatusOK, setting)
}
