package postgres

import (
	"context"
	"database/sql"
	"strings"

	"github.com/pkg/errors"

	"github.com/repgenie/repgenie/store"
)

func (d *DB) CreateCalendarEntry(ctx context.Context, create *store.CalendarEntry) (*store.CalendarEntry, error) {
	fields := []string{"user_email", "entry_date", "activity_type", "custom_activity", "duration", "intensity", "additional_notes", "completed", "created_ts", "updated_ts"}
	args := []any{create.UserEmail, create.EntryDate, string(create.ActivityType), create.CustomActivity, create.Duration, create.Intensity, create.Notes, create.Completed, create.CreatedTs, create.UpdatedTs}

	stmt := `INSERT INTO calendar_entries (` + strings.Join(fields, ", ") + `)
		VALUES (` + placeholders(len(args)) + `)
		RETURNING id`
	if err := d.db.QueryRowContext(ctx, stmt, args...).Scan(&create.ID); err != nil {
		return nil, errors.Wrap(err, "failed to create calendar entry")
	}

	return create, nil
}

func (d *DB) ListCalendarEntries(ctx context.Context, find *store.FindCalendarEntry) ([]*store.CalendarEntry, error) {
	where, args := []string{"1 = 1"}, []any{}

	if find.ID != nil {
		where, args = append(where, "id = "+placeholder(len(args)+1)), append(args, *find.ID)
	}
	if find.UserEmail != nil {
		where, args = append(where, "user_email = "+placeholder(len(args)+1)), append(args, *find.UserEmail)
	}
	if find.EntryDate != nil {
		where, args = append(where, "entry_date = "+placeholder(len(args)+1)), append(args, *find.EntryDate)
	}

	query := `SELECT id, user_email, entry_date, activity_type, custom_activity, duration, intensity, additional_notes, completed, created_ts, updated_ts
		FROM calendar_entries WHERE ` + strings.Join(where, " AND ") + ` ORDER BY entry_date DESC, created_ts DESC`
	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list calendar entries")
	}
	defer rows.Close()

	list := make([]*store.CalendarEntry, 0)
	for rows.Next() {
		e := &store.CalendarEntry{}
		var activityType string
		if err := rows.Scan(&e.ID, &e.UserEmail, &e.EntryDate, &activityType, &e.CustomActivity, &e.Duration, &e.Intensity, &e.Notes, &e.Completed, &e.CreatedTs, &e.UpdatedTs); err != nil {
			return nil, errors.Wrap(err, "failed to scan calendar entry")
		}
		e.ActivityType = store.ActivityType(activityType)
		list = append(list, e)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to iterate calendar entries")
	}

	return list, nil
}

func (d *DB) UpdateCalendarEntry(ctx context.Context, update *store.UpdateCalendarEntry) (*store.CalendarEntry, error) {
	set, args := []string{}, []any{}

	if update.ActivityType != nil {
		set, args = append(set, "activity_type = "+placeholder(len(args)+1)), append(args, string(*update.ActivityType))
	}
	if update.CustomActivity != nil {
		set, args = append(set, "custom_activity = "+placeholder(len(args)+1)), append(args, *update.CustomActivity)
	}
	if update.Duration != nil {
		set, args = append(set, "duration = "+placeholder(len(args)+1)), append(args, *update.Duration)
	}
	if update.Intensity != nil {
		set, args = append(set, "intensity = "+placeholder(len(args)+1)), append(args, *update.Intensity)
	}
	if update.Notes != nil {
		set, args = append(set, "additional_notes = "+placeholder(len(args)+1)), append(args, *update.Notes)
	}
	if update.Completed != nil {
		set, args = append(set, "completed = "+placeholder(len(args)+1)), append(args, *update.Completed)
	}
	if update.UpdatedTs != nil {
		set, args = append(set, "updated_ts = "+placeholder(len(args)+1)), append(args, *update.UpdatedTs)
	}
	if len(set) == 0 {
		return nil, errors.New("no fields to update")
	}

	args = append(args, update.ID)
	stmt := `UPDATE calendar_entries SET ` + strings.Join(set, ", ") + ` WHERE id = ` + placeholder(len(args)) + `
		RETURNING id, user_email, entry_date, activity_type, custom_activity, duration, intensity, additional_notes, completed, created_ts, updated_ts`
	e := &store.CalendarEntry{}
	var activityType string
	err := d.db.QueryRowContext(ctx, stmt, args...).Scan(
		&e.ID, &e.UserEmail, &e.EntryDate, &activityType, &e.CustomActivity, &e.Duration, &e.Intensity, &e.Notes, &e.Completed, &e.CreatedTs, &e.UpdatedTs,
	)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to update calendar entry")
	}
	e.ActivityType = store.ActivityType(activityType)

	return e, nil
}

func (d *DB) DeleteCalendarEntry(ctx context.Context, delete *store.DeleteCalendarEntry) error {
	result, err := d.db.ExecContext(ctx, `DELETE FROM calendar_entries WHERE id = `+placeholder(1), delete.ID)
	if err != nil {
		return errors.Wrap(err, "failed to delete calendar entry")
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return store.ErrNotFound
	}
	return nil
}
