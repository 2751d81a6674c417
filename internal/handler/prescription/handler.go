package prescription

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/clinichq/clinic-api/internal/middleware"
	"github.com/clinichq/clinic-api/internal/model"
	"github.com/clinichq/clinic-api/internal/service/prescription"
	"github.com/clinichq/clinic-api/pkg/httputil"
)

type Handler struct {
	service *prescription.Service
}

func NewHandler(service *prescription.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/prescriptions/:appointmentId", h.Get)
	rg.POST("/prescriptions", h.Save)
	rg.GET("/medicines", h.SearchMedicines)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("appointmentId"), 10, 64)
	if err != nil {
		httputil.RespondWithBadRequest(c, "invalid appointment id")
		return
	}

	view, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, view)
}

func (h *Handler) Save(c *gin.Context) {
	var req model.SavePrescriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithBadRequest(c, err.Error())
		return
	}

	view, err := h.service.Save(c.Request.Context(), middleware.UserID(c), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, view)
}

func (h *Handler) SearchMedicines(c *gin.Context) {
	medicines, err := h.service.SearchMedicines(c.Request.Context(), c.Query("q"))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, medicines)
}
