package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/salon-scheduler/internal/auth"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	"github.com/BruksfildServices01/salon-scheduler/internal/query"
)

// principal returns the authenticated caller or answers 401.
func principal(c *gin.Context) (auth.Principal, bool) {
	p, ok := middleware.PrincipalFrom(c)
	if !ok {
		httperr.Unauthorized(c, "unauthorized", "Authentication required")
	}
	return p, ok
}

// uuidParam parses a path parameter. Malformed ids cannot match any row, so
// they are answered with notFound.
func uuidParam(c *gin.Context, name string, notFound error) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		httperr.Respond(c, notFound)
		return uuid.Nil, false
	}
	return id, true
}

func optionalUUID(raw string) (*uuid.UUID, error) {
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return false
	}
	return true
}

func pageFrom(c *gin.Context) query.Page {
	return query.ParsePage(c.Query("page"), c.Query("limit"), query.DefaultLimit)
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
