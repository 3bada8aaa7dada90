package v1

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const insightJSONReply = `{
	"workout_requested": true,
	"workout_type": "push pull legs",
	"meal_requested": false,
	"conversation_summary": "User planned a strength routine.",
	"calendar_entries_summary": "One workout planned."
}`

func getInsights(t *testing.T, s *APIV1Service, email, date string) (*httptest.ResponseRecorder, insightResponse) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/insights/"+email+"?date="+date, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("user_email")
	c.SetParamValues(email)

	var resp insightResponse
	invoke(t, s.GetInsights, rec, c, &resp)
	return rec, resp
}

func TestGetInsightsGeneratesAndCaches(t *testing.T) {
	p := &stubProvider{chatReply: insightJSONReply}
	s := newTestService(t, p)
	seedConversations(t, s, "a@b.com", 2)

	rec, resp := getInsights(t, s, "a@b.com", "2026-08-20")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, resp.WorkoutRequested)
	assert.Equal(t, "push pull legs", resp.WorkoutType)
	firstCalls := p.chatCalls.Load()
	require.NotZero(t, firstCalls)

	// A second request serves the cached row without touching the model.
	rec, resp = getInsights(t, s, "a@b.com", "2026-08-20")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "push pull legs", resp.WorkoutType)
	assert.Equal(t, firstCalls, p.chatCalls.Load())
}

func TestRegenerateInsightsForcesFreshAnalysis(t *testing.T) {
	p := &stubProvider{chatReply: insightJSONReply}
	s := newTestService(t, p)

	_, _ = getInsights(t, s, "a@b.com", "2026-08-20")
	callsAfterGet := p.chatCalls.Load()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/insights/a@b.com/regenerate?date=2026-08-20", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("user_email")
	c.SetParamValues("a@b.com")

	var resp insightResponse
	invoke(t, s.RegenerateInsights, rec, c, &resp)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Greater(t, p.chatCalls.Load(), callsAfterGet)
}

func TestGetInsightsRejectsBadDate(t *testing.T) {
	s := newTestService(t, &stubProvider{})

	rec, _ := getInsights(t, s, "a@b.com", "20-08-2026")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
