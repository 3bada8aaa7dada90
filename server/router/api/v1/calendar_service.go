package v1

import (
	"net/http"
	"net/mail"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	apperr "github.com/repgenie/repgenie/internal/errors"
	"github.com/repgenie/repgenie/store"
)

type createCalendarEntryRequest struct {
	UserEmail      string `json:"user_email"`
	EntryDate      string `json:"entry_date"`
	ActivityType   string `json:"activity_type"`
	CustomActivity string `json:"custom_activity"`
	Duration       int32  `json:"duration"`
	Intensity      string `json:"intensity"`
	Notes          string `json:"notes"`
}

type updateCalendarEntryRequest struct {
	ActivityType   *string `json:"activity_type"`
	CustomActivity *string `json:"custom_activity"`
	Duration       *int32  `json:"duration"`
	Intensity      *string `json:"intensity"`
	Notes          *string `json:"notes"`
	Completed      *bool   `json:"completed"`
}

type calendarEntryResponse struct {
	ID             int32  `json:"id"`
	UserEmail      string `json:"user_email"`
	EntryDate      string `json:"entry_date"`
	ActivityType   string `json:"activity_type"`
	CustomActivity string `json:"custom_activity,omitempty"`
	Duration       int32  `json:"duration"`
	Intensity      string `json:"intensity,omitempty"`
	Notes          string `json:"notes,omitempty"`
	Completed      bool   `json:"completed"`
	CreatedTs      int64  `json:"created_ts"`
	UpdatedTs      int64  `json:"updated_ts"`
}

func toCalendarEntryResponse(entry *store.CalendarEntry) *calendarEntryResponse {
	return &calendarEntryResponse{
		ID:             entry.ID,
		UserEmail:      entry.UserEmail,
		EntryDate:      entry.EntryDate,
		ActivityType:   string(entry.ActivityType),
		CustomActivity: entry.CustomActivity,
		Duration:       entry.Duration,
		Intensity:      entry.Intensity,
		Notes:          entry.Notes,
		Completed:      entry.Completed,
		CreatedTs:      entry.CreatedTs,
		UpdatedTs:      entry.UpdatedTs,
	}
}

func validIntensity(s string) bool {
	switch s {
	case "", "high", "medium", "low":
		return true
	}
	return false
}

func validEntryDate(s string) bool {
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

// POST /calendar/entries
func (s *APIV1Service) CreateCalendarEntry(c echo.Context) error {
	var req createCalendarEntryRequest
	if err := c.Bind(&req); err != nil {
		return replyError(c, apperr.InvalidArgument("malformed request body"))
	}

	email := strings.TrimSpace(strings.ToLower(req.UserEmail))
	if _, err := mail.ParseAddress(email); err != nil {
		return replyError(c, apperr.InvalidArgument("invalid user_email"))
	}
	if !validEntryDate(req.EntryDate) {
		return replyError(c, apperr.InvalidArgument("entry_date must be YYYY-MM-DD"))
	}
	activity := store.ActivityType(req.ActivityType)
	if !store.IsValidActivityType(activity) {
		return replyError(c, apperr.InvalidArgument("unknown activity_type"))
	}
	if activity == store.ActivityOther && strings.TrimSpace(req.CustomActivity) == "" {
		return replyError(c, apperr.InvalidArgument("custom_activity is required for activity_type other"))
	}
	if !validIntensity(req.Intensity) {
		return replyError(c, apperr.InvalidArgument("intensity must be high, medium or low"))
	}
	if req.Duration < 0 {
		return replyError(c, apperr.InvalidArgument("duration must not be negative"))
	}

	now := time.Now().Unix()
	entry, err := s.Store.CreateCalendarEntry(c.Request().Context(), &store.CalendarEntry{
		UserEmail:      email,
		EntryDate:      req.EntryDate,
		ActivityType:   activity,
		CustomActivity: strings.TrimSpace(req.CustomActivity),
		Duration:       req.Duration,
		Intensity:      req.Intensity,
		Notes:          req.Notes,
		CreatedTs:      now,
		UpdatedTs:      now,
	})
	if err != nil {
		return replyError(c, apperr.StorageUnavailable(err))
	}
	return c.JSON(http.StatusOK, toCalendarEntryResponse(entry))
}

// GET /calendar/entries/:user_email?date=
func (s *APIV1Service) ListCalendarEntries(c echo.Context) error {
	email := strings.TrimSpace(strings.ToLower(c.Param("user_email")))
	if email == "" {
		return replyError(c, apperr.InvalidArgument("user_email is required"))
	}

	find := &store.FindCalendarEntry{UserEmail: &email}
	if date := c.QueryParam("date"); date != "" {
		if !validEntryDate(date) {
			return replyError(c, apperr.InvalidArgument("date must be YYYY-MM-DD"))
		}
		find.EntryDate = &date
	}

	entries, err := s.Store.ListCalendarEntries(c.Request().Context(), find)
	if err != nil {
		return replyError(c, apperr.StorageUnavailable(err))
	}

	items := make([]*calendarEntryResponse, 0, len(entries))
	for _, entry := range entries {
		items = append(items, toCalendarEntryResponse(entry))
	}
	return c.JSON(http.StatusOK, items)
}

// PUT /calendar/entries/:entry_id
func (s *APIV1Service) UpdateCalendarEntry(c echo.Context) error {
	entryID, err := strconv.ParseInt(c.Param("entry_id"), 10, 32)
	if err != nil {
		return replyError(c, apperr.InvalidArgument("entry_id must be an integer"))
	}

	var req updateCalendarEntryRequest
	if err := c.Bind(&req); err != nil {
		return replyError(c, apperr.InvalidArgument("malformed request body"))
	}

	update := &store.UpdateCalendarEntry{ID: int32(entryID)}
	if req.ActivityType != nil {
		activity := store.ActivityType(*req.ActivityType)
		if !store.IsValidActivityType(activity) {
			return replyError(c, apperr.InvalidArgument("unknown activity_type"))
		}
		update.ActivityType = &activity
	}
	if req.CustomActivity != nil {
		update.CustomActivity = req.CustomActivity
	}
	if req.Duration != nil {
		if *req.Duration < 0 {
			return replyError(c, apperr.InvalidArgument("duration must not be negative"))
		}
		update.Duration = req.Duration
	}
	if req.Intensity != nil {
		if !validIntensity(*req.Intensity) {
			return replyError(c, apperr.InvalidArgument("intensity must be high, medium or low"))
		}
		update.Intensity = req.Intensity
	}
	if req.Notes != nil {
		update.Notes = req.Notes
	}
	if req.Completed != nil {
		update.Completed = req.Completed
	}
	now := time.Now().Unix()
	update.UpdatedTs = &now

	entry, err := s.Store.UpdateCalendarEntry(c.Request().Context(), update)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return replyError(c, apperr.NotFound("calendar entry not found"))
		}
		return replyError(c, apperr.StorageUnavailable(err))
	}
	return c.JSON(http.StatusOK, toCalendarEntryResponse(entry))
}

// DELETE /calendar/entries/:entry_id
func (s *APIV1Service) DeleteCalendarEntry(c echo.Context) error {
	entryID, err := strconv.ParseInt(c.Param("entry_id"), 10, 32)
	if err != nil {
		return replyError(c, apperr.InvalidArgument("entry_id must be an integer"))
	}

	if err := s.Store.DeleteCalendarEntry(c.Request().Context(), &store.DeleteCalendarEntry{ID: int32(entryID)}); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return replyError(c, apperr.NotFound("calendar entry not found"))
		}
		return replyError(c, apperr.StorageUnavailable(err))
	}
	return c.JSON(http.StatusOK, map[string]bool{"deleted": true})
}
