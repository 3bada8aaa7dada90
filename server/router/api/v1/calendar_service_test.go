package v1

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperr "github.com/repgenie/repgenie/internal/errors"
)

func createEntry(t *testing.T, s *APIV1Service, body string) *calendarEntryResponse {
	t.Helper()
	e := echo.New()
	c, rec := newJSONContext(e, "POST", "/calendar/entries", body)
	var resp calendarEntryResponse
	invoke(t, s.CreateCalendarEntry, rec, c, &resp)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	return &resp
}

func TestCreateAndListCalendarEntries(t *testing.T) {
	s := newTestService(t, &stubProvider{})
	e := echo.New()

	created := createEntry(t, s,
		`{"user_email":"a@b.com","entry_date":"2026-08-20","activity_type":"workout","duration":45,"intensity":"high","notes":"push day"}`)
	assert.NotZero(t, created.ID)
	assert.False(t, created.Completed)

	req := httptest.NewRequest(http.MethodGet, "/calendar/entries/a@b.com?date=2026-08-20", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("user_email")
	c.SetParamValues("a@b.com")

	var entries []*calendarEntryResponse
	invoke(t, s.ListCalendarEntries, rec, c, &entries)
	require.Len(t, entries, 1)
	assert.Equal(t, "workout", entries[0].ActivityType)
	assert.EqualValues(t, 45, entries[0].Duration)
}

func TestCreateCalendarEntryValidation(t *testing.T) {
	s := newTestService(t, &stubProvider{})
	e := echo.New()

	tests := []struct {
		name string
		body string
	}{
		{"bad email", `{"user_email":"nope","entry_date":"2026-08-20","activity_type":"workout"}`},
		{"bad date", `{"user_email":"a@b.com","entry_date":"20-08-2026","activity_type":"workout"}`},
		{"unknown activity", `{"user_email":"a@b.com","entry_date":"2026-08-20","activity_type":"skydiving"}`},
		{"other without custom", `{"user_email":"a@b.com","entry_date":"2026-08-20","activity_type":"other"}`},
		{"bad intensity", `{"user_email":"a@b.com","entry_date":"2026-08-20","activity_type":"workout","intensity":"extreme"}`},
		{"negative duration", `{"user_email":"a@b.com","entry_date":"2026-08-20","activity_type":"workout","duration":-5}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := newJSONContext(e, "POST", "/calendar/entries", tt.body)
			var resp errorBody
			invoke(t, s.CreateCalendarEntry, rec, c, &resp)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, apperr.ErrCodeInvalidArgument, resp.Code)
		})
	}
}

func TestUpdateCalendarEntry(t *testing.T) {
	s := newTestService(t, &stubProvider{})
	e := echo.New()
	created := createEntry(t, s,
		`{"user_email":"a@b.com","entry_date":"2026-08-20","activity_type":"yoga","duration":30}`)

	c, rec := newJSONContext(e, "PUT", "/calendar/entries/"+strconv.Itoa(int(created.ID)),
		`{"completed":true,"notes":"felt great"}`)
	c.SetParamNames("entry_id")
	c.SetParamValues(strconv.Itoa(int(created.ID)))

	var updated calendarEntryResponse
	invoke(t, s.UpdateCalendarEntry, rec, c, &updated)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, updated.Completed)
	assert.Equal(t, "felt great", updated.Notes)
	// Untouched fields survive the partial update.
	assert.Equal(t, "yoga", updated.ActivityType)
	assert.EqualValues(t, 30, updated.Duration)
}

func TestUpdateCalendarEntryNotFound(t *testing.T) {
	s := newTestService(t, &stubProvider{})
	e := echo.New()

	c, rec := newJSONContext(e, "PUT", "/calendar/entries/9999", `{"completed":true}`)
	c.SetParamNames("entry_id")
	c.SetParamValues("9999")

	var resp errorBody
	invoke(t, s.UpdateCalendarEntry, rec, c, &resp)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, apperr.ErrCodeNotFound, resp.Code)
}

func TestDeleteCalendarEntry(t *testing.T) {
	s := newTestService(t, &stubProvider{})
	e := echo.New()
	created := createEntry(t, s,
		`{"user_email":"a@b.com","entry_date":"2026-08-20","activity_type":"boxing"}`)

	del := func() (*httptest.ResponseRecorder, errorBody) {
		req := httptest.NewRequest(http.MethodDelete, "/calendar/entries/"+strconv.Itoa(int(created.ID)), nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("entry_id")
		c.SetParamValues(strconv.Itoa(int(created.ID)))
		var resp errorBody
		invoke(t, s.DeleteCalendarEntry, rec, c, &resp)
		return rec, resp
	}

	rec, _ := del()
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, resp := del()
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, apperr.ErrCodeNotFound, resp.Code)
}
