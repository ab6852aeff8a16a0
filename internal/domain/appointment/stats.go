package appointment

import (
	"math"
	"sort"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

const HistogramDays = 30

type DayCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

type Stats struct {
	Count           int
	Revenue         float64
	AverageDuration int
	ByDate          []DayCount
}

// ClassifyForReporting aggregates appointments whose Service is preloaded.
// A missing service contributes nothing to revenue. The histogram covers
// appointments starting within the last HistogramDays days of now, keyed by
// UTC calendar date.
func ClassifyForReporting(apps []models.Appointment, now time.Time) Stats {
	st := Stats{Count: len(apps), ByDate: []DayCount{}}
	if len(apps) == 0 {
		return st
	}

	since := now.Add(-HistogramDays * 24 * time.Hour)
	perDay := map[string]int{}

	var minutes float64
	for i := range apps {
		ap := &apps[i]
		if ap.Service != nil {
			st.Revenue += ap.Service.Price
		}
		minutes += Window{Start: ap.StartTime, End: ap.EndTime}.Minutes()

		if !ap.StartTime.Before(since) {
			perDay[ap.StartTime.UTC().Format(time.DateOnly)]++
		}
	}

	st.AverageDuration = int(math.Round(minutes / float64(len(apps))))

	for day, n := range perDay {
		st.ByDate = append(st.ByDate, DayCount{Date: day, Count: n})
	}
	sort.Slice(st.ByDate, func(i, j int) bool {
		return st.ByDate[i].Date < st.ByDate[j].Date
	})

	return st
}
