package reception

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/clinichq/clinic-api/internal/middleware"
	"github.com/clinichq/clinic-api/internal/model"
	"github.com/clinichq/clinic-api/internal/service/reception"
	"github.com/clinichq/clinic-api/internal/service/visit"
	"github.com/clinichq/clinic-api/pkg/httputil"
)

type Handler struct {
	reception *reception.Service
	visits    *visit.Service
}

func NewHandler(reception *reception.Service, visits *visit.Service) *Handler {
	return &Handler{reception: reception, visits: visits}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/reception/dashboard", h.Dashboard)
	rg.GET("/reception/schedule", h.WeekSchedule)
	rg.GET("/reception/patients", h.SearchPatients)
	rg.GET("/reception/doctors", h.ListDoctors)
	rg.POST("/appointments", h.CreateAppointment)
	rg.GET("/appointments/:id", h.GetAppointment)
	rg.PUT("/appointments/:id/status", h.UpdateStatus)
}

func (h *Handler) Dashboard(c *gin.Context) {
	dashboard, err := h.reception.Dashboard(c.Request.Context(), time.Now())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, dashboard)
}

// WeekSchedule accepts ?week_start=2026-08-24; any day inside the wanted
// week works. Defaults to the current week.
func (h *Handler) WeekSchedule(c *gin.Context) {
	weekStart := time.Now()
	if raw := c.Query("week_start"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			httputil.RespondWithBadRequest(c, "invalid week_start, expected YYYY-MM-DD")
			return
		}
		weekStart = parsed
	}

	schedule, err := h.reception.WeekSchedule(c.Request.Context(), weekStart)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, schedule)
}

func (h *Handler) SearchPatients(c *gin.Context) {
	patients, err := h.reception.SearchPatientsByName(c.Request.Context(), c.Query("name"))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, patients)
}

func (h *Handler) ListDoctors(c *gin.Context) {
	doctors, err := h.reception.ListDoctors(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, doctors)
}

func (h *Handler) CreateAppointment(c *gin.Context) {
	var req model.CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithBadRequest(c, err.Error())
		return
	}

	view, err := h.reception.CreateAppointment(c.Request.Context(), middleware.UserID(c), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, view)
}

func (h *Handler) GetAppointment(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		httputil.RespondWithBadRequest(c, "invalid appointment id")
		return
	}

	details, err := h.visits.Details(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, details)
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		httputil.RespondWithBadRequest(c, "invalid appointment id")
		return
	}

	var req model.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithBadRequest(c, err.Error())
		return
	}

	details, err := h.visits.SetStatus(c.Request.Context(), id, req.Status, middleware.UserID(c))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, details)
}
