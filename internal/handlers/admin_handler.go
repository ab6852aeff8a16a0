package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-scheduler/internal/domain/catalog"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/salon-scheduler/internal/usecase/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/usecase/directory"
)

// ======================================================
// HANDLER
// ======================================================

// AdminHandler serves the back-office dashboard and the service catalog.
// People and appointments have their own handlers.
type AdminHandler struct {
	dashboard *appointment.DashboardStats
	services  *directory.Services
}

func NewAdminHandler(dashboard *appointment.DashboardStats, services *directory.Services) *AdminHandler {
	return &AdminHandler{dashboard: dashboard, services: services}
}

// ======================================================
// DASHBOARD
// ======================================================

func (h *AdminHandler) Dashboard(c *gin.Context) {
	stats, err := h.dashboard.Execute(c.Request.Context())
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, stats)
}

// ======================================================
// SERVICES
// ======================================================

func (h *AdminHandler) ListServices(c *gin.Context) {
	page := pageFrom(c)

	services, total, err := h.services.List(c.Request.Context(), c.Query("category"), page)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Paged(c, "services", services, page, total)
}

func (h *AdminHandler) CreateService(c *gin.Context) {
	var req ServiceRequest
	if !bindJSON(c, &req) {
		return
	}

	svc, err := h.services.Create(c.Request.Context(), req.input())
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Created(c, svc)
}

func (h *AdminHandler) UpdateService(c *gin.Context) {
	id, ok := uuidParam(c, "id", catalog.ErrNotFound)
	if !ok {
		return
	}

	var req ServiceRequest
	if !bindJSON(c, &req) {
		return
	}

	svc, err := h.services.Update(c.Request.Context(), id, req.input())
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, svc)
}

func (h *AdminHandler) DeleteService(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id", catalog.ErrNotFound)
	if !ok {
		return
	}

	if err := h.services.Delete(c.Request.Context(), p, id); err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Message(c, "Service deleted successfully")
}
