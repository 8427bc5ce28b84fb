package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"everyday-planner/internal/model"
	"everyday-planner/internal/service"
)

type manualTaskRequest struct {
	Title            string  `json:"title"`
	Description      string  `json:"description"`
	PlanDate         string  `json:"planDate"`
	PlannedStartTime *string `json:"plannedStartTime"`
	PlannedMinutes   int     `json:"plannedMinutes"`
}

type updateTaskRequest struct {
	Title            string  `json:"title"`
	Description      string  `json:"description"`
	PlanDate         string  `json:"planDate"`
	PlannedStartTime *string `json:"plannedStartTime"`
	PlannedMinutes   int     `json:"plannedMinutes"`
	Status           string  `json:"status"`
}

type taskStatusRequest struct {
	Status string `json:"status"`
}

// GET /api/tasks?date=
func (s *Server) handleListTasks(c *gin.Context) {
	date, err := s.parseDate(c.Query("date"), "date")
	if err != nil {
		respondErr(c, err)
		return
	}

	tasks, err := s.instances.ListByDate(c.Request.Context(), currentUser(c).ID, date)
	if err != nil {
		respondErr(c, err)
		return
	}
	if tasks == nil {
		tasks = []model.TaskInstance{}
	}
	respondOK(c, tasks)
}

// POST /api/tasks/manual
func (s *Server) handleCreateManualTask(c *gin.Context) {
	var req manualTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondFail(c, http.StatusBadRequest, "invalid request body")
		return
	}
	planDate, err := s.parseDate(req.PlanDate, "planDate")
	if err != nil {
		respondErr(c, err)
		return
	}

	task, err := s.instances.CreateManual(c.Request.Context(), currentUser(c).ID, service.ManualTaskInput{
		Title:            req.Title,
		Description:      req.Description,
		PlanDate:         planDate,
		PlannedStartTime: req.PlannedStartTime,
		PlannedMinutes:   req.PlannedMinutes,
	})
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, task)
}

// PUT /api/tasks/:id
func (s *Server) handleUpdateTask(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		respondErr(c, err)
		return
	}
	var req updateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondFail(c, http.StatusBadRequest, "invalid request body")
		return
	}
	planDate, err := s.parseDate(req.PlanDate, "planDate")
	if err != nil {
		respondErr(c, err)
		return
	}

	task, err := s.instances.Update(c.Request.Context(), currentUser(c).ID, id, service.UpdateTaskInput{
		Title:            req.Title,
		Description:      req.Description,
		PlanDate:         planDate,
		PlannedStartTime: req.PlannedStartTime,
		PlannedMinutes:   req.PlannedMinutes,
		Status:           model.TaskStatus(req.Status),
	})
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, task)
}

// PATCH /api/tasks/:id/status
func (s *Server) handleSetTaskStatus(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		respondErr(c, err)
		return
	}
	var req taskStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondFail(c, http.StatusBadRequest, "invalid request body")
		return
	}

	task, err := s.instances.SetStatus(c.Request.Context(), currentUser(c).ID, id, model.TaskStatus(req.Status))
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, task)
}

// DELETE /api/tasks/:id
func (s *Server) handleDeleteTask(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		respondErr(c, err)
		return
	}
	if err := s.instances.Delete(c.Request.Context(), currentUser(c).ID, id); err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, nil)
}
