package status

import (
	"fmt"
	"time"

	"homepage/internal/models"
)

// Classify turns a probe result into up, slow or down.
func Classify(r models.ProbeResult) models.Status {
	switch {
	case !r.OK:
		return models.StatusDown
	case time.Duration(r.ElapsedMS)*time.Millisecond >= SlowThreshold:
		return models.StatusSlow
	default:
		return models.StatusUp
	}
}

// Summarize formats the one-line summary of a run.
func Summarize(up, slow, down int) string {
	if down == 0 && slow == 0 {
		return fmt.Sprintf("All good — %d up.", up)
	}
	return fmt.Sprintf("%d up • %d slow • %d down", up, slow, down)
}

// ChipText is the text of a target's status chip.
func ChipText(s models.Status, r models.ProbeResult) string {
	switch s {
	case models.StatusUp, models.StatusSlow:
		return fmt.Sprintf("%s • %dms", s, r.ElapsedMS)
	case models.StatusDown:
		return "down • unreachable"
	default:
		return "checking…"
	}
}

// Aggregate classifies results and counts them into a report.
// targets and results are paired by index.
func Aggregate(targets []models.Target, results []models.ProbeResult, checkedAt time.Time) models.Report {
	rep := models.Report{
		Checks:    make([]models.Check, len(targets)),
		CheckedAt: checkedAt,
	}
	for i, t := range targets {
		s := Classify(results[i])
		rep.Checks[i] = models.Check{Target: t, Result: results[i], Status: s}
		switch s {
		case models.StatusUp:
			rep.Up++
		case models.StatusSlow:
			rep.Slow++
		case models.StatusDown:
			rep.Down++
		}
	}
	rep.Summary = Summarize(rep.Up, rep.Slow, rep.Down)
	return rep
}
