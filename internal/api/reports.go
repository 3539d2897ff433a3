package api

import (
	"net/http"
	"time"
)

type salesReport struct {
	From       time.Time `json:"from"`
	To         time.Time `json:"to"`
	Revenue    float64   `json:"revenue"`
	SalesCount int64     `json:"sales_count"`
}

// dailySales reports paid sales for ?date=YYYY-MM-DD, today (UTC) by default.
func (h *Handler) dailySales(w http.ResponseWriter, r *http.Request) {
	day := time.Now().UTC().Truncate(24 * time.Hour)
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
			return
		}
		day = parsed
	}
	h.salesBetween(w, r, day, day.AddDate(0, 0, 1))
}

// monthlySales reports paid sales for ?month=YYYY-MM, the current month by
// default.
func (h *Handler) monthlySales(w http.ResponseWriter, r *http.Request) {
	now := time.Now().UTC()
	month := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	if raw := r.URL.Query().Get("month"); raw != "" {
		parsed, err := time.Parse("2006-01", raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, "month must be YYYY-MM")
			return
		}
		month = parsed
	}
	h.salesBetween(w, r, month, month.AddDate(0, 1, 0))
}

func (h *Handler) salesBetween(w http.ResponseWriter, r *http.Request, from, to time.Time) {
	summary, err := h.store.SalesSummary(r.Context(), from, to)
	if err != nil {
		fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, salesReport{
		From:       from,
		To:         to,
		Revenue:    summary.Revenue,
		SalesCount: summary.SalesCount,
	})
}
