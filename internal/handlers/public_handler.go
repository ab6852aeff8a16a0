package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-scheduler/internal/domain/catalog"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain/user"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/salon-scheduler/internal/usecase/directory"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

// PublicHandler serves the unauthenticated catalog: services and staff.
type PublicHandler struct {
	services *directory.Services
	users    *directory.Users
}

func NewPublicHandler(services *directory.Services, users *directory.Users) *PublicHandler {
	return &PublicHandler{services: services, users: users}
}

////////////////////////////////////////////////////////
// SERVICES
////////////////////////////////////////////////////////

func (h *PublicHandler) ListServices(c *gin.Context) {
	services, err := h.services.Active(c.Request.Context())
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, nonNil(services))
}

func (h *PublicHandler) GetService(c *gin.Context) {
	id, ok := uuidParam(c, "id", catalog.ErrNotFound)
	if !ok {
		return
	}

	svc, err := h.services.Get(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, svc)
}

////////////////////////////////////////////////////////
// STAFF
////////////////////////////////////////////////////////

func (h *PublicHandler) ListStaff(c *gin.Context) {
	staff, err := h.users.Staff(c.Request.Context())
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, nonNil(staff))
}

func (h *PublicHandler) GetStaff(c *gin.Context) {
	id, ok := uuidParam(c, "id", user.ErrStaffNotFound)
	if !ok {
		return
	}

	u, err := h.users.Get(c.Request.Context(), user.RoleStaff, id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, u)
}

func (h *PublicHandler) StaffServices(c *gin.Context) {
	id, ok := uuidParam(c, "id", user.ErrStaffNotFound)
	if !ok {
		return
	}

	services, err := h.users.StaffServices(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, services)
}
