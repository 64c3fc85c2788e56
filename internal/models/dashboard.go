package models

import (
	"time"
)

// DashboardData aggregates the statistics shown on the admin dashboard.
type DashboardData struct {
	TotalUsers    int64           `json:"total_users"`
	TotalNotes    int64           `json:"total_notes"`
	UserGrowth    float64         `json:"user_growth"`
	NoteGrowth    float64         `json:"note_growth"`
	ActiveUsers   int64           `json:"active_users"`
	NotesPerMonth []MonthlyCount  `json:"notes_per_month"`
	LatestUsers   []DashboardUser `json:"latest_users"`
}

// MonthlyCount is one point of a per-month chart series.
type MonthlyCount struct {
	Month string `json:"month"`
	Count int64  `json:"count"`
}

// DashboardUser is the trimmed user view listed on the dashboard.
type DashboardUser struct {
	ID        int64     `json:"id"`
	FullName  string    `json:"fullname"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}
