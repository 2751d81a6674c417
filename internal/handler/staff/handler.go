package staff

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/clinichq/clinic-api/internal/model"
	"github.com/clinichq/clinic-api/internal/service/dashboard"
	"github.com/clinichq/clinic-api/internal/service/staff"
	"github.com/clinichq/clinic-api/pkg/httputil"
)

type Handler struct {
	staff     *staff.Service
	dashboard *dashboard.Service
}

func NewHandler(staff *staff.Service, dashboard *dashboard.Service) *Handler {
	return &Handler{staff: staff, dashboard: dashboard}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/dashboard", h.Dashboard)
	rg.GET("/staff", h.List)
	rg.POST("/staff", h.Create)
	rg.GET("/staff/:id", h.Get)
	rg.PUT("/staff/:id", h.Update)
	rg.PUT("/staff/:id/status", h.UpdateStatus)
	rg.PUT("/staff/:id/reset-password", h.ResetPassword)
}

func (h *Handler) Dashboard(c *gin.Context) {
	stats, err := h.dashboard.Stats(c.Request.Context(), time.Now())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, stats)
}

func (h *Handler) List(c *gin.Context) {
	views, err := h.staff.List(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, views)
}

func (h *Handler) Create(c *gin.Context) {
	var req model.CreateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithBadRequest(c, err.Error())
		return
	}

	created, err := h.staff.Create(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, created)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		httputil.RespondWithBadRequest(c, "invalid staff id")
		return
	}

	view, err := h.staff.Get(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, view)
}

func (h *Handler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		httputil.RespondWithBadRequest(c, "invalid staff id")
		return
	}

	var req model.UpdateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithBadRequest(c, err.Error())
		return
	}

	view, err := h.staff.Update(c.Request.Context(), id, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, view)
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		httputil.RespondWithBadRequest(c, "invalid staff id")
		return
	}

	var req model.UpdateStaffStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithBadRequest(c, err.Error())
		return
	}

	view, err := h.staff.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, view)
}

func (h *Handler) ResetPassword(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		httputil.RespondWithBadRequest(c, "invalid staff id")
		return
	}

	if err := h.staff.ResetPassword(c.Request.Context(), id); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, gin.H{"reset": true})
}
