package doctor

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/clinichq/clinic-api/internal/middleware"
	"github.com/clinichq/clinic-api/internal/service/doctor"
	"github.com/clinichq/clinic-api/internal/service/visit"
	"github.com/clinichq/clinic-api/pkg/httputil"
)

type Handler struct {
	doctors *doctor.Service
	visits  *visit.Service
}

func NewHandler(doctors *doctor.Service, visits *visit.Service) *Handler {
	return &Handler{doctors: doctors, visits: visits}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/doctor/dashboard", h.Dashboard)
	rg.PUT("/doctor/appointments/:id/start", h.StartConsultation)
}

func (h *Handler) Dashboard(c *gin.Context) {
	dashboard, err := h.doctors.Dashboard(c.Request.Context(), middleware.UserID(c), time.Now())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, dashboard)
}

func (h *Handler) StartConsultation(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		httputil.RespondWithBadRequest(c, "invalid appointment id")
		return
	}

	details, err := h.visits.StartConsultation(c.Request.Context(), id, middleware.UserID(c))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, details)
}
