package patient

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/clinichq/clinic-api/internal/model"
	"github.com/clinichq/clinic-api/internal/service/patient"
	"github.com/clinichq/clinic-api/pkg/httputil"
)

type Handler struct {
	service *patient.Service
}

func NewHandler(service *patient.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/patients", h.Create)
	rg.GET("/patients", h.Search)
	rg.GET("/patients/:id", h.Get)
	rg.PUT("/patients/:id", h.Update)
}

func (h *Handler) Create(c *gin.Context) {
	var req model.CreatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithBadRequest(c, err.Error())
		return
	}

	created, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, created)
}

// Search matches name, code or phone; without ?q= it lists everyone.
func (h *Handler) Search(c *gin.Context) {
	patients, err := h.service.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, patients)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		httputil.RespondWithBadRequest(c, "invalid patient id")
		return
	}

	found, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, found)
}

func (h *Handler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		httputil.RespondWithBadRequest(c, "invalid patient id")
		return
	}

	var req model.UpdatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithBadRequest(c, err.Error())
		return
	}

	updated, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, updated)
}
