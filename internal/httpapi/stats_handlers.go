package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"everyday-planner/internal/service"
)

// GET /api/stats/completion?period=&referenceDate=
func (s *Server) handleCompletionSummary(c *gin.Context) {
	period := service.SummaryPeriod(c.DefaultQuery("period", string(service.PeriodWeek)))

	reference := time.Now().In(s.loc)
	if raw := c.Query("referenceDate"); raw != "" {
		parsed, err := s.parseDate(raw, "referenceDate")
		if err != nil {
			respondErr(c, err)
			return
		}
		reference = parsed
	}

	summary, err := s.stats.Summarize(c.Request.Context(), currentUser(c).ID, period, reference)
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, summary)
}

// GET /api/stats/reviews?page=&size=&date=
func (s *Server) handleReviews(c *gin.Context) {
	page, err := intQuery(c, "page", 1)
	if err != nil {
		respondFail(c, http.StatusBadRequest, "page must be an integer")
		return
	}
	size, err := intQuery(c, "size", 10)
	if err != nil {
		respondFail(c, http.StatusBadRequest, "size must be an integer")
		return
	}

	var date *time.Time
	if raw := c.Query("date"); raw != "" {
		parsed, err := s.parseDate(raw, "date")
		if err != nil {
			respondErr(c, err)
			return
		}
		date = &parsed
	}

	reviews, err := s.stats.PaginatedReviews(c.Request.Context(), currentUser(c).ID, page, size, date)
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, reviews)
}

func intQuery(c *gin.Context, name string, fallback int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}
