package derive

import (
	"fmt"
	"sort"

	"devicecore/pkg/domain"
)

// DefaultActivityLimit caps RecentActivity.
const DefaultActivityLimit = 10

// ActivityKind tags an activity feed entry.
type ActivityKind string

// Activity kinds.
const (
	ActivityServiceVisit ActivityKind = "Service Visit"
	ActivityInstallation ActivityKind = "Installation"
)

// ActivityEntry is one row of the merged activity feed.
type ActivityEntry struct {
	Kind        ActivityKind      `json:"kind"`
	ID          string            `json:"id"`
	DeviceID    string            `json:"device_id"`
	Date        domain.Date       `json:"date"`
	Description string            `json:"description"`
	Status      domain.WorkStatus `json:"status"`
	Engineer    string            `json:"engineer"`
}

// RecentActivity merges service visits and installations, newest first, and
// keeps the first limit entries. Entries on the same day keep encounter
// order: visits before installations, each in input order. A non-positive
// limit uses the default.
func RecentActivity(visits []domain.ServiceVisit, installations []domain.Installation, limit int) []ActivityEntry {
	if limit <= 0 {
		limit = DefaultActivityLimit
	}
	entries := make([]ActivityEntry, 0, len(visits)+len(installations))
	for _, v := range visits {
		entries = append(entries, ActivityEntry{
			Kind:        ActivityServiceVisit,
			ID:          v.ID,
			DeviceID:    v.DeviceID,
			Date:        v.VisitDate,
			Description: fmt.Sprintf("%s - %s at %s", v.Purpose, v.DeviceType, v.FacilityName),
			Status:      v.Status,
			Engineer:    v.Engineer,
		})
	}
	for _, i := range installations {
		entries = append(entries, ActivityEntry{
			Kind:        ActivityInstallation,
			ID:          i.ID,
			DeviceID:    i.DeviceID,
			Date:        i.InstallationDate,
			Description: fmt.Sprintf("%s installation at %s", i.DeviceType, i.FacilityName),
			Status:      i.Status,
			Engineer:    i.Engineer,
		})
	}
	sort.SliceStable(entries, func(a, b int) bool {
		return entries[a].Date.After(entries[b].Date)
	})
	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries
}

// Progress is an installation checklist completion count.
type Progress struct {
	Completed int `json:"completed"`
	Total     int `json:"total"`
}

// Ratio returns Completed/Total, or 0 for an empty checklist.
func (p Progress) Ratio() float64 {
	if p.Total == 0 {
		return 0
	}
	return float64(p.Completed) / float64(p.Total)
}

// Percent returns Ratio scaled to 0..100.
func (p Progress) Percent() float64 {
	return p.Ratio() * 100
}

// InstallationProgress counts completed checklist items.
func InstallationProgress(i domain.Installation) Progress {
	done, total := i.Progress()
	return Progress{Completed: done, Total: total}
}
