package live

import (
	"fmt"
	"strings"
)

// maxRows bounds how many finished requests the table keeps.
const maxRows = 200

// Reduce applies an event to the UI state.
func Reduce(state State, event Event) State {
	switch event.Kind {
	case EventRunStart:
		state.RunID = event.RunID
		state.Model = event.Model
		state.Total = event.Total
		state.Metrics = append(state.Metrics[:0:0], event.Metrics...)
		if state.StartedAt.IsZero() {
			state.StartedAt = event.At
		}
	case EventTaskStart:
		state.Current = event.Task.Description
		state.CurrentID = event.Task.ID
		state.CurrentStarted = event.At
	case EventTaskComplete:
		state.Done++
		if state.CurrentID == event.Task.ID {
			state.Current = ""
			state.CurrentStarted = event.At
		}
	case EventAttempt:
		state = applyAttempt(state, event)
	}
	return state
}

func applyAttempt(state State, event Event) State {
	attempt := event.Attempt
	row := AttemptRow{
		RequestID: attempt.RequestID,
		Image:     attempt.Input,
		Category:  attempt.Category,
		Run:       attempt.Run,
		Runs:      attempt.Runs,
		Scores:    attempt.Scores,
		Missing:   len(attempt.Missing),
		Retries:   attempt.Retries,
		WallTime:  attempt.WallTime,
	}
	state.Rows = append(state.Rows, row)
	if len(state.Rows) > maxRows {
		state.Rows = append(state.Rows[:0:0], state.Rows[len(state.Rows)-maxRows:]...)
	}
	state.Retries += attempt.Retries
	if len(attempt.Missing) > 0 {
		state.Misses++
		missing := make([]string, 0, len(attempt.Missing))
		for _, metric := range attempt.Missing {
			missing = append(missing, string(metric))
		}
		state.LastEvent = fmt.Sprintf("%s run %d/%d: no %s in response", attempt.Category, attempt.Run, attempt.Runs, strings.Join(missing, ", "))
		return state
	}
	state.LastEvent = fmt.Sprintf("%s run %d/%d scored in %s", attempt.Category, attempt.Run, attempt.Runs, formatDuration(attempt.WallTime))
	return state
}
