package emr

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/clinichq/clinic-api/internal/middleware"
	"github.com/clinichq/clinic-api/internal/model"
	"github.com/clinichq/clinic-api/internal/service/emr"
	"github.com/clinichq/clinic-api/pkg/httputil"
)

type Handler struct {
	service *emr.Service
}

func NewHandler(service *emr.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/emr/:appointmentId", h.GetEMR)
	rg.GET("/consultations/:appointmentId", h.GetConsultation)
	rg.POST("/consultations", h.SaveConsultation)
	rg.GET("/icd10", h.SearchICD10)
}

func (h *Handler) GetEMR(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("appointmentId"), 10, 64)
	if err != nil {
		httputil.RespondWithBadRequest(c, "invalid appointment id")
		return
	}

	record, err := h.service.EMR(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, record)
}

func (h *Handler) GetConsultation(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("appointmentId"), 10, 64)
	if err != nil {
		httputil.RespondWithBadRequest(c, "invalid appointment id")
		return
	}

	data, err := h.service.ConsultationData(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, data)
}

func (h *Handler) SaveConsultation(c *gin.Context) {
	var req model.SaveConsultationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithBadRequest(c, err.Error())
		return
	}

	if err := h.service.SaveConsultation(c.Request.Context(), middleware.UserID(c), &req); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, gin.H{"saved": true})
}

func (h *Handler) SearchICD10(c *gin.Context) {
	codes, err := h.service.SearchICD10(c.Request.Context(), c.Query("q"))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, codes)
}
