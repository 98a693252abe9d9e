package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"sochi-schedule/services"
)

// ScheduleHandler serves the station board as JSON and as a web page
type ScheduleHandler struct {
	schedule     *services.ScheduleService
	displayLimit int
}

// NewScheduleHandler creates a schedule handler; displayLimit applies when
// the request does not pass ?limit=
func NewScheduleHandler(schedule *services.ScheduleService, displayLimit int) *ScheduleHandler {
	return &ScheduleHandler{schedule: schedule, displayLimit: displayLimit}
}

// GetSchedule returns today's arrivals and departures
func (h *ScheduleHandler) GetSchedule(c *gin.Context) {
	limit, err := h.limit(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	schedule := h.schedule.GetSchedule(c.Request.Context(), limit)
	if schedule.Error != "" {
		log.Printf("Schedule fetched with error: %s", schedule.Error)
	}

	c.JSON(http.StatusOK, schedule)
}

// SchedulePage renders today's board as HTML
func (h *ScheduleHandler) SchedulePage(c *gin.Context) {
	limit, err := h.limit(c)
	if err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return
	}

	schedule := h.schedule.GetSchedule(c.Request.Context(), limit)
	c.HTML(http.StatusOK, scheduleTemplateName, gin.H{
		"Schedule":  schedule,
		"Truncated": len(schedule.Arrivals) < schedule.TotalArrivals || len(schedule.Departures) < schedule.TotalDepartures,
	})
}

// GetHistory returns the most recent fetch log rows
func (h *ScheduleHandler) GetHistory(c *gin.Context) {
	limit := 20
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit"})
			return
		}
		limit = n
	}

	records, err := h.schedule.History(c.Request.Context(), limit)
	if errors.Is(err, services.ErrFetchLogDisabled) {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Fetch log is disabled"})
		return
	} else if err != nil {
		log.Printf("Error reading fetch log: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read fetch log"})
		return
	}

	c.JSON(http.StatusOK, records)
}

// limit reads ?limit=N; "all" or 0 lists every train
func (h *ScheduleHandler) limit(c *gin.Context) (int, error) {
	raw := c.Query("limit")
	switch raw {
	case "":
		return h.displayLimit, nil
	case "all":
		return 0, nil
	}

	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, errors.New("invalid limit")
	}
	return n, nil
}
