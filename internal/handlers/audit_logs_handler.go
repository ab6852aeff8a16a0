package handlers

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/query"
)

const auditPageLimit = 50

type AuditLister interface {
	List(ctx context.Context, f audit.Filter, p query.Page) ([]models.AuditLog, int64, error)
}

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	logs AuditLister
	loc  *time.Location
}

func NewAuditLogsHandler(logs AuditLister, loc *time.Location) *AuditLogsHandler {
	return &AuditLogsHandler{logs: logs, loc: loc}
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	f := audit.Filter{
		Action: c.Query("action"),
		Entity: c.Query("entity"),
	}

	// unparsable bounds are ignored
	if raw := c.Query("from"); raw != "" {
		if from, err := parseDate(h.loc, raw); err == nil {
			f.From = &from
		}
	}
	if raw := c.Query("to"); raw != "" {
		if to, err := parseDate(h.loc, raw); err == nil {
			f.To = &to
		}
	}

	page := query.ParsePage(c.Query("page"), c.Query("limit"), auditPageLimit)
	if page.Limit > 200 {
		page.Limit = auditPageLimit
	}

	logs, total, err := h.logs.List(c.Request.Context(), f, page)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Paged(c, "logs", logs, page, total)
}
