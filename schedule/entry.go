package schedule

import (
	"strings"

	"sochi-schedule/models"
)

// UnspecifiedTrain stands in for a train with neither number nor name
const UnspecifiedTrain = "unspecified"

// BuildTrainIdentifier joins the train number with the quoted train name.
// The name is left out when the number text already contains it.
func BuildTrainIdentifier(number, name string) string {
	train := strings.TrimSpace(number)
	name = strings.TrimSpace(name)
	if !strings.Contains(train, name) {
		train += " '" + name + "'"
	}

	train = strings.TrimSpace(train)
	if train == "" {
		return UnspecifiedTrain
	}
	return train
}

// NormalizeRoute collapses newlines, non-breaking spaces and other whitespace
// runs into single spaces.
func NormalizeRoute(route string) string {
	return strings.Join(strings.Fields(route), " ")
}

func entryFromSegment(s Segment) models.ScheduleEntry {
	return models.ScheduleEntry{
		Time:  strings.TrimSpace(s.Time),
		Train: BuildTrainIdentifier(s.Number, s.Name),
		Route: NormalizeRoute(s.Route),
	}
}
