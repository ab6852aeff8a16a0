package httpresp

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-scheduler/internal/query"
)

type Pagination struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
}

func NewPagination(p query.Page, total int64) Pagination {
	return Pagination{
		Total:      total,
		Page:       p.Number,
		Limit:      p.Limit,
		TotalPages: query.TotalPages(total, p.Limit),
	}
}

func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, data)
}

func Message(c *gin.Context, msg string) {
	c.JSON(http.StatusOK, gin.H{"message": msg})
}

// Paged writes {<key>: items, pagination: {...}}. A nil slice is sent as [].
func Paged[T any](c *gin.Context, key string, items []T, p query.Page, total int64) {
	if items == nil {
		items = []T{}
	}
	c.JSON(http.StatusOK, gin.H{
		key:          items,
		"pagination": NewPagination(p, total),
	})
}
