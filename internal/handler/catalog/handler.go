package catalog

import (
	"github.com/gin-gonic/gin"

	"github.com/clinichq/clinic-api/internal/service/catalog"
	"github.com/clinichq/clinic-api/pkg/httputil"
)

type Handler struct {
	service *catalog.Service
}

func NewHandler(service *catalog.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/services", h.ListServices)
	rg.GET("/service-types", h.ListServiceTypes)
}

func (h *Handler) ListServices(c *gin.Context) {
	services, err := h.service.ListServices(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, services)
}

func (h *Handler) ListServiceTypes(c *gin.Context) {
	types, err := h.service.ListServiceTypes(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, types)
}
