package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/dto"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/salon-scheduler/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	book   *appointment.BookAppointment
	update *appointment.UpdateAppointment
	remove *appointment.DeleteAppointment
	get    *appointment.GetAppointment
	list   *appointment.ListAppointments
	admin  *appointment.AdminListAppointments
	loc    *time.Location
}

type AppointmentUseCases struct {
	Book      *appointment.BookAppointment
	Update    *appointment.UpdateAppointment
	Delete    *appointment.DeleteAppointment
	Get       *appointment.GetAppointment
	List      *appointment.ListAppointments
	AdminList *appointment.AdminListAppointments
}

func NewAppointmentHandler(uc AppointmentUseCases, loc *time.Location) *AppointmentHandler {
	return &AppointmentHandler{
		book:   uc.Book,
		update: uc.Update,
		remove: uc.Delete,
		get:    uc.Get,
		list:   uc.List,
		admin:  uc.AdminList,
		loc:    loc,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	Customer  string `json:"customer"`
	Staff     string `json:"staff"`
	Service   string `json:"service"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Status    string `json:"status" binding:"omitempty,apptstatus"`
	Notes     string `json:"notes"`
}

type UpdateAppointmentRequest struct {
	Customer  *string `json:"customer"`
	Staff     *string `json:"staff"`
	Service   *string `json:"service"`
	StartTime *string `json:"startTime"`
	EndTime   *string `json:"endTime"`
	Status    *string `json:"status"`
	Notes     *string `json:"notes"`
}

var (
	errInvalidID   = httperr.ErrValidation("invalid_id", "Invalid identifier")
	errInvalidTime = httperr.ErrValidation("invalid_date_or_time", "Invalid date or time")
)

func (h *AppointmentHandler) idField(raw string) (uuid.UUID, error) {
	if raw == "" {
		return uuid.Nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errInvalidID
	}
	return id, nil
}

func (h *AppointmentHandler) optionalID(raw *string) (*uuid.UUID, error) {
	if raw == nil {
		return nil, nil
	}
	id, err := uuid.Parse(*raw)
	if err != nil {
		return nil, errInvalidID
	}
	return &id, nil
}

func (h *AppointmentHandler) optionalTime(raw *string) (*time.Time, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	t, err := parseTimestamp(h.loc, *raw)
	if err != nil {
		return nil, errInvalidTime
	}
	return &t, nil
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	var req CreateAppointmentRequest
	if !bindJSON(c, &req) {
		return
	}

	in := appointment.BookInput{
		Actor:  p,
		Notes:  req.Notes,
		Status: req.Status,
	}

	var err error
	if in.CustomerID, err = h.idField(req.Customer); err != nil {
		httperr.Respond(c, err)
		return
	}
	if in.StaffID, err = h.idField(req.Staff); err != nil {
		httperr.Respond(c, err)
		return
	}
	if in.ServiceID, err = h.idField(req.Service); err != nil {
		httperr.Respond(c, err)
		return
	}
	if req.StartTime != "" {
		if in.StartTime, err = parseTimestamp(h.loc, req.StartTime); err != nil {
			httperr.Respond(c, errInvalidTime)
			return
		}
	}
	if in.EndTime, err = h.optionalTime(&req.EndTime); err != nil {
		httperr.Respond(c, err)
		return
	}

	ap, err := h.book.Execute(c.Request.Context(), in)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, dto.Appointment(ap))
}

// ======================================================
// READ
// ======================================================

func (h *AppointmentHandler) List(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	in := appointment.ListInput{Actor: p}

	var err error
	if in.CustomerID, err = optionalUUID(c.Query("customer")); err != nil {
		httperr.Respond(c, errInvalidID)
		return
	}
	if in.StaffID, err = optionalUUID(c.Query("staff")); err != nil {
		httperr.Respond(c, errInvalidID)
		return
	}
	if raw := c.Query("startDate"); raw != "" {
		start, err := parseDate(h.loc, raw)
		if err != nil {
			httperr.Respond(c, errInvalidTime)
			return
		}
		in.StartDate = &start
	}
	if raw := c.Query("endDate"); raw != "" {
		end, err := endOfDay(h.loc, raw)
		if err != nil {
			httperr.Respond(c, errInvalidTime)
			return
		}
		in.EndDate = &end
	}

	apps, err := h.list.Execute(c.Request.Context(), in)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, dto.Appointments(apps))
}

func (h *AppointmentHandler) Get(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id", domain.ErrAppointmentNotFound)
	if !ok {
		return
	}

	ap, err := h.get.Execute(c.Request.Context(), p, id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, dto.Appointment(ap))
}

// AdminList is the paginated back-office listing with search, month, staff
// and status filters.
func (h *AppointmentHandler) AdminList(c *gin.Context) {
	staffID, err := optionalUUID(c.Query("staff"))
	if err != nil {
		httperr.Respond(c, errInvalidID)
		return
	}

	page := pageFrom(c)
	apps, total, err := h.admin.Execute(c.Request.Context(), appointment.AdminListInput{
		Page:          page,
		Search:        c.Query("search"),
		SortField:     c.Query("sortField"),
		SortDirection: c.Query("sortDirection"),
		Month:         c.Query("month"),
		StaffID:       staffID,
		Status:        c.Query("status"),
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Paged(c, "appointments", dto.Appointments(apps), page, total)
}

// ======================================================
// UPDATE
// ======================================================

func (h *AppointmentHandler) Update(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id", domain.ErrAppointmentNotFound)
	if !ok {
		return
	}

	var req UpdateAppointmentRequest
	if !bindJSON(c, &req) {
		return
	}

	in := appointment.UpdateInput{
		Actor:  p,
		ID:     id,
		Status: req.Status,
		Notes:  req.Notes,
	}

	var err error
	if in.CustomerID, err = h.optionalID(req.Customer); err != nil {
		httperr.Respond(c, err)
		return
	}
	if in.StaffID, err = h.optionalID(req.Staff); err != nil {
		httperr.Respond(c, err)
		return
	}
	if in.ServiceID, err = h.optionalID(req.Service); err != nil {
		httperr.Respond(c, err)
		return
	}
	if in.StartTime, err = h.optionalTime(req.StartTime); err != nil {
		httperr.Respond(c, err)
		return
	}
	if in.EndTime, err = h.optionalTime(req.EndTime); err != nil {
		httperr.Respond(c, err)
		return
	}

	ap, err := h.update.Execute(c.Request.Context(), in)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, dto.Appointment(ap))
}

// ======================================================
// DELETE
// ======================================================

func (h *AppointmentHandler) Delete(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id", domain.ErrAppointmentNotFound)
	if !ok {
		return
	}

	if err := h.remove.Execute(c.Request.Context(), p, id); err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Message(c, "Appointment deleted")
}
