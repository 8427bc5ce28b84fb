package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"everyday-planner/internal/model"
	"everyday-planner/internal/recurrence"
	"everyday-planner/internal/service"
)

type templateRequest struct {
	Title            string  `json:"title"`
	Description      string  `json:"description"`
	EstimatedMinutes int     `json:"estimatedMinutes"`
	Priority         int     `json:"priority"`
	RecurrenceType   string  `json:"recurrenceType"`
	DayOfWeek        *int    `json:"dayOfWeek"`
	SpecificDate     *string `json:"specificDate"`
	IntervalDays     *int    `json:"intervalDays"`
	DefaultStartTime *string `json:"defaultStartTime"`
	ActiveFrom       *string `json:"activeFrom"`
	ActiveTo         *string `json:"activeTo"`
	Enabled          *bool   `json:"enabled"`
}

type templateEnabledRequest struct {
	Enabled bool `json:"enabled"`
}

func (s *Server) templateInput(req templateRequest) (service.TemplateInput, error) {
	input := service.TemplateInput{
		Title:            req.Title,
		Description:      req.Description,
		EstimatedMinutes: req.EstimatedMinutes,
		Priority:         req.Priority,
		RecurrenceKind:   recurrence.Kind(req.RecurrenceType),
		DayOfWeek:        req.DayOfWeek,
		IntervalDays:     req.IntervalDays,
		DefaultStartTime: req.DefaultStartTime,
	}

	var err error
	if input.SpecificDate, err = s.parseDatePtr(req.SpecificDate, "specificDate"); err != nil {
		return input, err
	}
	if input.ActiveFrom, err = s.parseDatePtr(req.ActiveFrom, "activeFrom"); err != nil {
		return input, err
	}
	if input.ActiveTo, err = s.parseDatePtr(req.ActiveTo, "activeTo"); err != nil {
		return input, err
	}
	return input, nil
}

func (s *Server) parseDatePtr(value *string, name string) (*time.Time, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	t, err := s.parseDate(*value, name)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// GET /api/templates
func (s *Server) handleListTemplates(c *gin.Context) {
	templates, err := s.templates.List(c.Request.Context(), currentUser(c).ID)
	if err != nil {
		respondErr(c, err)
		return
	}
	if templates == nil {
		templates = []model.TaskTemplate{}
	}
	respondOK(c, templates)
}

// POST /api/templates
func (s *Server) handleCreateTemplate(c *gin.Context) {
	var req templateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondFail(c, http.StatusBadRequest, "invalid request body")
		return
	}
	input, err := s.templateInput(req)
	if err != nil {
		respondErr(c, err)
		return
	}

	template, err := s.templates.Create(c.Request.Context(), currentUser(c).ID, input)
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, template)
}

// PUT /api/templates/:id
func (s *Server) handleUpdateTemplate(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		respondErr(c, err)
		return
	}
	var req templateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondFail(c, http.StatusBadRequest, "invalid request body")
		return
	}
	input, err := s.templateInput(req)
	if err != nil {
		respondErr(c, err)
		return
	}
	enabled := true
	if req.Enabled != nil {
		enabled = *req.Enabled
	}

	template, err := s.templates.Update(c.Request.Context(), currentUser(c).ID, id, input, enabled)
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, template)
}

// PATCH /api/templates/:id/enabled
func (s *Server) handleSetTemplateEnabled(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		respondErr(c, err)
		return
	}
	var req templateEnabledRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondFail(c, http.StatusBadRequest, "invalid request body")
		return
	}

	template, err := s.templates.SetEnabled(c.Request.Context(), currentUser(c).ID, id, req.Enabled)
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, template)
}

// DELETE /api/templates/:id
func (s *Server) handleDeleteTemplate(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		respondErr(c, err)
		return
	}
	if err := s.templates.Delete(c.Request.Context(), currentUser(c).ID, id); err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, nil)
}
