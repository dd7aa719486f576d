package scout

import (
	"time"

	"github.com/XavierBriggs/fortuna/services/scout-gateway/pkg/models"
)

// BuildReport assembles the exportable scouting document of a session
func BuildReport(snap Snapshot, now time.Time) models.ScoutReport {
	selected := snap.Selected
	if selected == nil {
		selected = []models.SelectedPlayer{}
	}
	return models.ScoutReport{
		Date:      now.UTC(),
		Formation: Formation,
		Team:      snap.Team,
		Notes:     snap.Notes,
		Selected:  selected,
		Metrics:   snap.Report,
	}
}

// ReportFilename is the download name of a report generated at now
func ReportFilename(now time.Time) string {
	return "scout-report-" + now.UTC().Format("2006-01-02") + ".json"
}
