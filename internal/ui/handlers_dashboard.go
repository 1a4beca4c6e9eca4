package ui

import (
	"fmt"
	"net/http"

	. "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"talentboard/internal/domain"
)

func (h *Handler) DashboardPage(w http.ResponseWriter, r *http.Request) {
	snap := h.Dashboard.Snapshot()
	activity := h.Dashboard.Activity(r.Context())
	renderHTML(w, http.StatusOK, appPage(
		pageCtx(r, "Dashboard", "dashboard"),
		dashboardBody(snap, activity),
	))
}

func dashboardBody(snap domain.KPISnapshot, activity []domain.ActivityEntry) Node {
	return Group([]Node{
		Div(
			Class("kpi-grid"),
			kpiCard("Interviews This Week", fmt.Sprintf("%d", snap.InterviewsThisWeek), ""),
			kpiCard("Average Feedback Score", fmt.Sprintf("%d", snap.AverageFeedbackScore), scoreTone(snap.AverageFeedbackScore)),
			kpiCard("No-Shows", fmt.Sprintf("%d", snap.NoShows), "kpi-danger"),
			kpiCard("Completed", fmt.Sprintf("%d", snap.Completed()), ""),
		),
		Div(
			Class(cardClass()),
			H2(Class("card-title"), Text("Recent Activity")),
			activityFeed(activity),
		),
		P(Class(mutedClass()), Text("Figures refreshed "+formatTime(snap.GeneratedAt))),
	})
}

func kpiCard(label, value, tone string) Node {
	valueClass := "kpi-value"
	if tone != "" {
		valueClass += " " + tone
	}
	return Div(
		Class(cardClass("kpi-card")),
		P(Class(mutedClass()+" mb-1"), Text(label)),
		P(Class(valueClass), Text(value)),
	)
}

func activityFeed(entries []domain.ActivityEntry) Node {
	if len(entries) == 0 {
		return emptyStateCard("No recent activity.")
	}
	rows := make([]Node, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, Div(
			Class("activity-entry activity-"+e.Kind),
			P(Class("activity-title"), Text(e.Title)),
			P(Class(mutedClass()), Text(e.Detail)),
			P(Class(mutedClass()), Text(e.WhenStr)),
		))
	}
	return Div(Class("activity-feed"), Group(rows))
}
