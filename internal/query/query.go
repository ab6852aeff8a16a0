package query

import (
	"strconv"
	"strings"
)

const DefaultLimit = 10

// Page is a 1-based page request.
type Page struct {
	Number int
	Limit  int
}

func NewPage(number, limit, defaultLimit int) Page {
	if defaultLimit <= 0 {
		defaultLimit = DefaultLimit
	}
	if number <= 0 {
		number = 1
	}
	if limit <= 0 {
		limit = defaultLimit
	}
	return Page{Number: number, Limit: limit}
}

// ParsePage reads raw query-string values; anything unparsable falls back
// to the defaults.
func ParsePage(rawPage, rawLimit string, defaultLimit int) Page {
	n, _ := strconv.Atoi(strings.TrimSpace(rawPage))
	l, _ := strconv.Atoi(strings.TrimSpace(rawLimit))
	return NewPage(n, l, defaultLimit)
}

func (p Page) Offset() int {
	return (p.Number - 1) * p.Limit
}

// TotalPages is ceil(total / limit).
func TotalPages(total int64, limit int) int {
	if limit <= 0 || total <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}

type Sort struct {
	Field string
	Desc  bool
}

// ParseDirection accepts asc/ascending/1 and desc/descending/-1.
func ParseDirection(raw string, defaultDesc bool) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "asc", "ascending", "1":
		return false
	case "desc", "descending", "-1":
		return true
	default:
		return defaultDesc
	}
}

func (s Sort) Direction() string {
	if s.Desc {
		return "DESC"
	}
	return "ASC"
}
