package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-scheduler/internal/domain/user"
	"github.com/BruksfildServices01/salon-scheduler/internal/dto"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/usecase/directory"
)

// ======================================================
// HANDLER
// ======================================================

// UsersHandler is the admin CRUD surface for one role. The same handler
// backs /api/customers, /api/admin/users and /api/admin/staff.
type UsersHandler struct {
	users    *directory.Users
	role     user.Role
	listKey  string
	notFound error
}

func NewCustomersHandler(users *directory.Users, listKey string) *UsersHandler {
	return &UsersHandler{
		users:    users,
		role:     user.RoleCustomer,
		listKey:  listKey,
		notFound: user.ErrCustomerNotFound,
	}
}

func NewStaffHandler(users *directory.Users) *UsersHandler {
	return &UsersHandler{
		users:    users,
		role:     user.RoleStaff,
		listKey:  "staff",
		notFound: user.ErrStaffNotFound,
	}
}

func (h *UsersHandler) rows(users []models.User) any {
	if h.role == user.RoleStaff {
		return dto.AdminStaff(users)
	}
	return dto.AdminUsers(users)
}

// ======================================================
// READ
// ======================================================

func (h *UsersHandler) List(c *gin.Context) {
	page := pageFrom(c)

	users, total, err := h.users.List(c.Request.Context(), h.role, directory.ListUsersInput{
		Search:        c.Query("search"),
		SortField:     c.Query("sortField"),
		SortDirection: c.Query("sortDirection"),
		Page:          page,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		h.listKey:    h.rows(users),
		"pagination": httpresp.NewPagination(page, total),
	})
}

func (h *UsersHandler) Get(c *gin.Context) {
	id, ok := uuidParam(c, "id", h.notFound)
	if !ok {
		return
	}

	u, err := h.users.Get(c.Request.Context(), h.role, id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, u)
}

// ======================================================
// WRITE
// ======================================================

func (h *UsersHandler) Create(c *gin.Context) {
	var req UserRequest
	if !bindJSON(c, &req) {
		return
	}

	in, err := req.input()
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	u, err := h.users.Create(c.Request.Context(), h.role, in)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, u)
}

func (h *UsersHandler) Update(c *gin.Context) {
	id, ok := uuidParam(c, "id", h.notFound)
	if !ok {
		return
	}

	var req UserRequest
	if !bindJSON(c, &req) {
		return
	}

	in, err := req.input()
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	u, err := h.users.Update(c.Request.Context(), h.role, id, in)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, u)
}

func (h *UsersHandler) Delete(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id", h.notFound)
	if !ok {
		return
	}

	if err := h.users.Delete(c.Request.Context(), p, h.role, id); err != nil {
		httperr.Respond(c, err)
		return
	}

	if h.role == user.RoleStaff {
		httpresp.Message(c, "Staff member deleted successfully")
		return
	}
	httpresp.Message(c, "Customer deleted successfully")
}
