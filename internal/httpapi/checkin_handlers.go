package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"everyday-planner/internal/model"
	"everyday-planner/internal/service"
)

type checkinRecordRequest struct {
	ID               *uint  `json:"id"`
	TaskInstanceID   *uint  `json:"taskInstanceId"`
	Title            string `json:"title"`
	CompletedMinutes int    `json:"completedMinutes"`
	Comment          string `json:"comment"`
	ReferenceLink    string `json:"referenceLink"`
}

type submitCheckinRequest struct {
	WindowStart    string                 `json:"windowStart"`
	WindowEnd      string                 `json:"windowEnd"`
	OverallComment string                 `json:"overallComment"`
	Records        []checkinRecordRequest `json:"records"`
}

type updateCheckinRequest struct {
	OverallComment string                 `json:"overallComment"`
	Records        []checkinRecordRequest `json:"records"`
}

func recordInputs(records []checkinRecordRequest) []service.RecordInput {
	inputs := make([]service.RecordInput, 0, len(records))
	for _, r := range records {
		inputs = append(inputs, service.RecordInput{
			ID:             r.ID,
			TaskInstanceID: r.TaskInstanceID,
			Title:          r.Title,
			AddedMinutes:   r.CompletedMinutes,
			Comment:        r.Comment,
			ReferenceLink:  r.ReferenceLink,
		})
	}
	return inputs
}

// GET /api/checkins/hourly/pending?windowMinutes=&referenceTime=
func (s *Server) handlePendingCheckin(c *gin.Context) {
	windowMinutes := 60
	if raw := c.Query("windowMinutes"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			respondFail(c, http.StatusBadRequest, "windowMinutes must be an integer")
			return
		}
		windowMinutes = parsed
	}

	reference := time.Now().In(s.loc)
	if raw := c.Query("referenceTime"); raw != "" {
		parsed, err := s.parseDateTime(raw, "referenceTime")
		if err != nil {
			respondErr(c, err)
			return
		}
		reference = parsed
	}

	pending, err := s.checkins.Pending(c.Request.Context(), currentUser(c).ID, windowMinutes, reference)
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, pending)
}

// GET /api/checkins/hourly/window-tasks?windowStart=&windowEnd=
func (s *Server) handleWindowTasks(c *gin.Context) {
	start, err := s.parseDateTime(c.Query("windowStart"), "windowStart")
	if err != nil {
		respondErr(c, err)
		return
	}
	end, err := s.parseDateTime(c.Query("windowEnd"), "windowEnd")
	if err != nil {
		respondErr(c, err)
		return
	}

	tasks, err := s.checkins.WindowTasks(c.Request.Context(), currentUser(c).ID, start, end)
	if err != nil {
		respondErr(c, err)
		return
	}
	if tasks == nil {
		tasks = []model.TaskInstance{}
	}
	respondOK(c, tasks)
}

// GET /api/checkins/hourly?date=
func (s *Server) handleListCheckins(c *gin.Context) {
	date, err := s.parseDate(c.Query("date"), "date")
	if err != nil {
		respondErr(c, err)
		return
	}

	checkins, err := s.checkins.ListByDate(c.Request.Context(), currentUser(c).ID, date)
	if err != nil {
		respondErr(c, err)
		return
	}
	if checkins == nil {
		checkins = []model.HourlyCheckin{}
	}
	respondOK(c, checkins)
}

// POST /api/checkins/hourly
func (s *Server) handleSubmitCheckin(c *gin.Context) {
	var req submitCheckinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondFail(c, http.StatusBadRequest, "invalid request body")
		return
	}
	start, err := s.parseDateTime(req.WindowStart, "windowStart")
	if err != nil {
		respondErr(c, err)
		return
	}
	end, err := s.parseDateTime(req.WindowEnd, "windowEnd")
	if err != nil {
		respondErr(c, err)
		return
	}

	checkin, err := s.checkins.Submit(c.Request.Context(), currentUser(c).ID, service.SubmitCheckinInput{
		WindowStart:    start,
		WindowEnd:      end,
		OverallComment: req.OverallComment,
		Records:        recordInputs(req.Records),
	})
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, checkin)
}

// PUT /api/checkins/hourly/:id
func (s *Server) handleUpdateCheckin(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		respondErr(c, err)
		return
	}
	var req updateCheckinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondFail(c, http.StatusBadRequest, "invalid request body")
		return
	}

	checkin, err := s.checkins.Update(c.Request.Context(), currentUser(c).ID, id, service.UpdateCheckinInput{
		OverallComment: req.OverallComment,
		Records:        recordInputs(req.Records),
	})
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, checkin)
}

// DELETE /api/checkins/hourly/:id
func (s *Server) handleDeleteCheckin(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		respondErr(c, err)
		return
	}
	if err := s.checkins.Delete(c.Request.Context(), currentUser(c).ID, id); err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, nil)
}
