package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/inotebook/backend/internal/database"
	"github.com/inotebook/backend/internal/models"
	"github.com/inotebook/backend/internal/utils"
)

// DashboardRepository computes the aggregates shown on the admin
// dashboard.
type DashboardRepository interface {
	GetStats(ctx context.Context) (*models.DashboardData, error)
}

// PostgresDashboardRepository is a PostgreSQL implementation of DashboardRepository
type PostgresDashboardRepository struct {
	db *database.Pool
}

// NewDashboardRepository creates a new DashboardRepository
func NewDashboardRepository(db *database.Pool) DashboardRepository {
	return &PostgresDashboardRepository{
		db: db,
	}
}

// GetStats gathers the dashboard aggregates. Growth figures compare the
// current calendar month against the previous one; active users are
// those who touched a note in the last 30 days.
func (r *PostgresDashboardRepository) GetStats(ctx context.Context) (*models.DashboardData, error) {
	data := &models.DashboardData{}

	if err := r.countTotals(ctx, data); err != nil {
		return nil, err
	}
	if err := r.computeGrowth(ctx, data); err != nil {
		return nil, err
	}
	if err := r.countActiveUsers(ctx, data); err != nil {
		return nil, err
	}
	if err := r.notesPerMonth(ctx, data); err != nil {
		return nil, err
	}
	if err := r.latestUsers(ctx, data); err != nil {
		return nil, err
	}

	return data, nil
}

func (r *PostgresDashboardRepository) countTotals(ctx context.Context, data *models.DashboardData) error {
	startTime := time.Now()

	query := `SELECT (SELECT COUNT(*) FROM users), (SELECT COUNT(*) FROM notes)`

	err := r.db.QueryRowContext(ctx, query).Scan(&data.TotalUsers, &data.TotalNotes)

	utils.LogDBQuery(query, nil, time.Since(startTime), err)

	if err != nil {
		return fmt.Errorf("failed to count totals: %w", err)
	}
	return nil
}

func (r *PostgresDashboardRepository) computeGrowth(ctx context.Context, data *models.DashboardData) error {
	startTime := time.Now()

	query := `
        SELECT
            (SELECT COUNT(*) FROM users WHERE created_at >= date_trunc('month', now())),
            (SELECT COUNT(*) FROM users WHERE created_at >= date_trunc('month', now()) - interval '1 month'
                AND created_at < date_trunc('month', now())),
            (SELECT COUNT(*) FROM notes WHERE created_at >= date_trunc('month', now())),
            (SELECT COUNT(*) FROM notes WHERE created_at >= date_trunc('month', now()) - interval '1 month'
                AND created_at < date_trunc('month', now()))
    `

	var usersThis, usersPrev, notesThis, notesPrev int64
	err := r.db.QueryRowContext(ctx, query).Scan(&usersThis, &usersPrev, &notesThis, &notesPrev)

	utils.LogDBQuery(query, nil, time.Since(startTime), err)

	if err != nil {
		return fmt.Errorf("failed to compute growth: %w", err)
	}

	data.UserGrowth = growthPercent(usersThis, usersPrev)
	data.NoteGrowth = growthPercent(notesThis, notesPrev)
	return nil
}

func (r *PostgresDashboardRepository) countActiveUsers(ctx context.Context, data *models.DashboardData) error {
	startTime := time.Now()

	query := `
        SELECT COUNT(DISTINCT user_id)
        FROM notes
        WHERE updated_at >= now() - interval '30 days'
    `

	err := r.db.QueryRowContext(ctx, query).Scan(&data.ActiveUsers)

	utils.LogDBQuery(query, nil, time.Since(startTime), err)

	if err != nil {
		return fmt.Errorf("failed to count active users: %w", err)
	}
	return nil
}

func (r *PostgresDashboardRepository) notesPerMonth(ctx context.Context, data *models.DashboardData) error {
	startTime := time.Now()

	query := `
        SELECT to_char(date_trunc('month', created_at), 'YYYY-MM') AS month, COUNT(*)
        FROM notes
        WHERE created_at >= date_trunc('month', now()) - interval '11 months'
        GROUP BY month
        ORDER BY month
    `

	rows, err := r.db.QueryContext(ctx, query)

	utils.LogDBQuery(query, nil, time.Since(startTime), err)

	if err != nil {
		return fmt.Errorf("failed to get notes per month: %w", err)
	}
	defer rows.Close()

	data.NotesPerMonth = make([]models.MonthlyCount, 0)
	for rows.Next() {
		var point models.MonthlyCount
		if err := rows.Scan(&point.Month, &point.Count); err != nil {
			return fmt.Errorf("failed to scan monthly count: %w", err)
		}
		data.NotesPerMonth = append(data.NotesPerMonth, point)
	}

	return rows.Err()
}

func (r *PostgresDashboardRepository) latestUsers(ctx context.Context, data *models.DashboardData) error {
	startTime := time.Now()

	query := `
        SELECT user_id, fullname, email, created_at
        FROM users
        ORDER BY created_at DESC
        LIMIT 5
    `

	rows, err := r.db.QueryContext(ctx, query)

	utils.LogDBQuery(query, nil, time.Since(startTime), err)

	if err != nil {
		return fmt.Errorf("failed to get latest users: %w", err)
	}
	defer rows.Close()

	data.LatestUsers = make([]models.DashboardUser, 0)
	for rows.Next() {
		var user models.DashboardUser
		if err := rows.Scan(&user.ID, &user.FullName, &user.Email, &user.CreatedAt); err != nil {
			return fmt.Errorf("failed to scan dashboard user: %w", err)
		}
		data.LatestUsers = append(data.LatestUsers, user)
	}

	return rows.Err()
}

// growthPercent computes the month-over-month change. With no prior
// activity, any current activity counts as 100% growth.
func growthPercent(current, previous int64) float64 {
	if previous == 0 {
		if current > 0 {
			return 100
		}
		return 0
	}
	return (float64(current-previous) / float64(previous)) * 100
}
