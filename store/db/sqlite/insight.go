package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"github.com/pkg/errors"

	"github.com/repgenie/repgenie/store"
)

func (d *DB) UpsertInsight(ctx context.Context, upsert *store.Insight) (*store.Insight, error) {
	fields := []string{
		"user_email", "analysis_date",
		"workout_requested", "workout_type",
		"meal_requested", "meal_type",
		"video_requested", "video_type",
		"news_requested", "news_type",
		"image_analysis_done", "image_analysis_insights",
		"conversation_summary",
		"calendar_entries_logged", "entries_count", "calendar_entries_summary",
		"created_ts", "updated_ts",
	}
	args := []any{
		upsert.UserEmail, upsert.AnalysisDate,
		upsert.WorkoutRequested, upsert.WorkoutType,
		upsert.MealRequested, upsert.MealType,
		upsert.VideoRequested, upsert.VideoType,
		upsert.NewsRequested, upsert.NewsType,
		upsert.ImageAnalysisDone, upsert.ImageAnalysisInsights,
		upsert.ConversationSummary,
		upsert.CalendarEntriesLogged, upsert.EntriesCount, upsert.CalendarSummary,
		upsert.CreatedTs, upsert.UpdatedTs,
	}

	stmt := `INSERT INTO insights (` + strings.Join(fields, ", ") + `)
		VALUES (` + placeholders(len(args)) + `)
		ON CONFLICT(user_email, analysis_date) DO UPDATE SET
			workout_requested = excluded.workout_requested,
			workout_type = excluded.workout_type,
			meal_requested = excluded.meal_requested,
			meal_type = excluded.meal_type,
			video_requested = excluded.video_requested,
			video_type = excluded.video_type,
			news_requested = excluded.news_requested,
			news_type = excluded.news_type,
			image_analysis_done = excluded.image_analysis_done,
			image_analysis_insights = excluded.image_analysis_insights,
			conversation_summary = excluded.conversation_summary,
			calendar_entries_logged = excluded.calendar_entries_logged,
			entries_count = excluded.entries_count,
			calendar_entries_summary = excluded.calendar_entries_summary,
			updated_ts = excluded.updated_ts
		RETURNING id`
	if err := d.db.QueryRowContext(ctx, stmt, args...).Scan(&upsert.ID); err != nil {
		return nil, errors.Wrap(err, "failed to upsert insight")
	}

	return upsert, nil
}

func (d *DB) GetInsight(ctx context.Context, find *store.FindInsight) (*store.Insight, error) {
	query := `SELECT id, user_email, analysis_date,
			workout_requested, workout_type, meal_requested, meal_type,
			video_requested, video_type, news_requested, news_type,
			image_analysis_done, image_analysis_insights, conversation_summary,
			calendar_entries_logged, entries_count, calendar_entries_summary,
			created_ts, updated_ts
		FROM insights WHERE user_email = ` + placeholder(1) + ` AND analysis_date = ` + placeholder(2)
	in := &store.Insight{}
	err := d.db.QueryRowContext(ctx, query, find.UserEmail, find.AnalysisDate).Scan(
		&in.ID, &in.UserEmail, &in.AnalysisDate,
		&in.WorkoutRequested, &in.WorkoutType, &in.MealRequested, &in.MealType,
		&in.VideoRequested, &in.VideoType, &in.NewsRequested, &in.NewsType,
		&in.ImageAnalysisDone, &in.ImageAnalysisInsights, &in.ConversationSummary,
		&in.CalendarEntriesLogged, &in.EntriesCount, &in.CalendarSummary,
		&in.CreatedTs, &in.UpdatedTs,
	)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to get insight")
	}

	return in, nil
}
