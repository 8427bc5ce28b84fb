package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type upsertHolidayRequest struct {
	Date      string `json:"holidayDate"`
	IsHoliday bool   `json:"isHoliday"`
	Name      string `json:"name"`
}

// GET /api/holidays?from=&to=
func (s *Server) handleListHolidays(c *gin.Context) {
	from, err := s.parseDate(c.Query("from"), "from")
	if err != nil {
		respondErr(c, err)
		return
	}
	to, err := s.parseDate(c.Query("to"), "to")
	if err != nil {
		respondErr(c, err)
		return
	}

	days, err := s.holidays.ListRange(c.Request.Context(), currentUser(c).ID, from, to)
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, days)
}

// POST /api/holidays
func (s *Server) handleUpsertHoliday(c *gin.Context) {
	var req upsertHolidayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondFail(c, http.StatusBadRequest, "invalid request body")
		return
	}
	date, err := s.parseDate(req.Date, "holidayDate")
	if err != nil {
		respondErr(c, err)
		return
	}

	day, err := s.holidays.Upsert(c.Request.Context(), currentUser(c).ID, date, req.IsHoliday, req.Name)
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, day)
}

// DELETE /api/holidays?date=
func (s *Server) handleRemoveHoliday(c *gin.Context) {
	date, err := s.parseDate(c.Query("date"), "date")
	if err != nil {
		respondErr(c, err)
		return
	}
	if err := s.holidays.Remove(c.Request.Context(), currentUser(c).ID, date); err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, nil)
}
