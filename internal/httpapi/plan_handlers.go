package httpapi

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"everyday-planner/internal/apperr"
)

// POST /api/plans/generate?date=
func (s *Server) handleGeneratePlan(c *gin.Context) {
	date, err := s.parseDate(c.Query("date"), "date")
	if err != nil {
		respondErr(c, err)
		return
	}

	created, err := s.plans.GenerateForDate(c.Request.Context(), currentUser(c).ID, date)
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, gin.H{"generated": created})
}

// parseID reads the :id path parameter.
func parseID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, apperr.Validationf("id must be a positive integer")
	}
	return uint(id), nil
}
