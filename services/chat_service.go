package services

import (
	"context"
	"fmt"
	"strings"

	"sochi-schedule/models"
)

const helpText = `Hello! I show the train board of Sochi railway station.

Commands:
/schedule - latest arrivals and departures
/arrivals - latest arrivals
/departures - latest departures
/help - this message`

// ChatService implements the chat-bot conversation over the schedule
type ChatService struct {
	schedule *ScheduleService
	limit    int
}

// NewChatService creates a chat service showing the last limit trains per direction
func NewChatService(schedule *ScheduleService, limit int) *ChatService {
	return &ChatService{schedule: schedule, limit: limit}
}

// ProcessMessage answers one chat message
func (c *ChatService) ProcessMessage(ctx context.Context, sessionID, message string) *models.ChatResponse {
	command := parseCommand(message)

	switch command {
	case "/schedule", "/arrivals", "/departures":
		schedule := c.schedule.GetSchedule(ctx, c.limit)
		return &models.ChatResponse{
			Success: schedule.Error == "" || schedule.TotalArrivals+schedule.TotalDepartures > 0,
			Command: command,
			Message: formatSchedule(schedule, command),
			Data:    schedule,
		}
	case "/start", "/help":
		return &models.ChatResponse{Success: true, Command: command, Message: helpText}
	default:
		return &models.ChatResponse{Success: true, Message: helpText}
	}
}

// parseCommand normalizes "/Schedule@SomeBot extra" to "/schedule"
func parseCommand(message string) string {
	fields := strings.Fields(message)
	if len(fields) == 0 {
		return ""
	}

	command := strings.ToLower(fields[0])
	if at := strings.IndexByte(command, '@'); at > 0 {
		command = command[:at]
	}
	if !strings.HasPrefix(command, "/") {
		command = "/" + command
	}
	return command
}

func formatSchedule(s *models.ScheduleResponse, command string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🚆 Station %s, %s\n", s.Station, s.Date)

	if s.Error != "" {
		fmt.Fprintf(&b, "\n⚠️ %s\n", s.Error)
	}

	if command != "/departures" {
		formatDirection(&b, "Arrivals", s.Arrivals, s.TotalArrivals)
	}
	if command != "/arrivals" {
		formatDirection(&b, "Departures", s.Departures, s.TotalDepartures)
	}

	return strings.TrimRight(b.String(), "\n")
}

func formatDirection(b *strings.Builder, title string, entries []models.ScheduleEntry, total int) {
	fmt.Fprintf(b, "\n%s (%d):\n", title, total)
	if len(entries) == 0 {
		b.WriteString("  no data\n")
		return
	}
	if len(entries) < total {
		b.WriteString("  ...\n")
	}
	for _, e := range entries {
		fmt.Fprintf(b, "  %s  %s  %s\n", e.Time, e.Train, e.Route)
	}
}
