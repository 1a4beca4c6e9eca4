package domain

import "time"

// KPISnapshot is the dashboard's headline numbers at a point in time.
// The numbers are synthesized on a schedule; the dashboard only ever reads
// the latest snapshot.
type KPISnapshot struct {
	InterviewsThisWeek   int       `json:"interviewsThisWeek"`
	AverageFeedbackScore int       `json:"averageFeedbackScore"`
	NoShows              int       `json:"noShows"`
	GeneratedAt          time.Time `json:"generatedAt"`
}

// Completed returns the count of interviews that actually happened.
func (k KPISnapshot) Completed() int {
	if k.NoShows > k.InterviewsThisWeek {
		return 0
	}
	return k.InterviewsThisWeek - k.NoShows
}

// ActivityEntry is one row of the dashboard's recent-activity feed.
type ActivityEntry struct {
	Kind    string `json:"kind"` // "scheduled", "feedback", "no_show"
	Title   string `json:"title"`
	Detail  string `json:"detail"`
	WhenStr string `json:"when"`
}
