package v1

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	apperr "github.com/repgenie/repgenie/internal/errors"
	"github.com/repgenie/repgenie/store"
)

type insightResponse struct {
	UserEmail             string `json:"user_email"`
	Date                  string `json:"date"`
	WorkoutRequested      bool   `json:"workout_requested"`
	WorkoutType           string `json:"workout_type,omitempty"`
	MealRequested         bool   `json:"meal_requested"`
	MealType              string `json:"meal_type,omitempty"`
	VideoRequested        bool   `json:"video_requested"`
	VideoType             string `json:"video_type,omitempty"`
	NewsRequested         bool   `json:"news_requested"`
	NewsType              string `json:"news_type,omitempty"`
	ImageAnalysisDone     bool   `json:"image_analysis_done"`
	ImageAnalysisInsights string `json:"image_analysis_insights,omitempty"`
	ConversationSummary   string `json:"conversation_summary"`
	CalendarEntriesLogged bool   `json:"calendar_entries_logged"`
	EntriesCount          int32  `json:"entries_count"`
	CalendarSummary       string `json:"calendar_entries_summary,omitempty"`
}

func toInsightResponse(in *store.Insight) *insightResponse {
	return &insightResponse{
		UserEmail:             in.UserEmail,
		Date:                  in.AnalysisDate,
		WorkoutRequested:      in.WorkoutRequested,
		WorkoutType:           in.WorkoutType,
		MealRequested:         in.MealRequested,
		MealType:              in.MealType,
		VideoRequested:        in.VideoRequested,
		VideoType:             in.VideoType,
		NewsRequested:         in.NewsRequested,
		NewsType:              in.NewsType,
		ImageAnalysisDone:     in.ImageAnalysisDone,
		ImageAnalysisInsights: in.ImageAnalysisInsights,
		ConversationSummary:   in.ConversationSummary,
		CalendarEntriesLogged: in.CalendarEntriesLogged,
		EntriesCount:          in.EntriesCount,
		CalendarSummary:       in.CalendarSummary,
	}
}

// GET /insights/:user_email?date=
//
// Returns the cached insight for the day when one exists; otherwise
// generates, stores and returns a fresh one.
func (s *APIV1Service) GetInsights(c echo.Context) error {
	email, date, err := insightParams(c)
	if err != nil {
		return replyError(c, err)
	}

	ctx := c.Request().Context()
	cached, err := s.Store.GetInsight(ctx, &store.FindInsight{UserEmail: email, AnalysisDate: date})
	if err == nil {
		return c.JSON(http.StatusOK, toInsightResponse(cached))
	}
	if !errors.Is(err, store.ErrNotFound) {
		return replyError(c, apperr.StorageUnavailable(err))
	}

	return s.generateInsight(c, email, date)
}

// POST /insights/:user_email/regenerate?date=
func (s *APIV1Service) RegenerateInsights(c echo.Context) error {
	email, date, err := insightParams(c)
	if err != nil {
		return replyError(c, err)
	}
	return s.generateInsight(c, email, date)
}

func (s *APIV1Service) generateInsight(c echo.Context, email, date string) error {
	ctx := c.Request().Context()

	conversations, err := s.Store.ListConversations(ctx, &store.FindConversation{
		ThreadID:    &email,
		CreatedDate: &date,
	})
	if err != nil {
		return replyError(c, apperr.StorageUnavailable(err))
	}
	entries, err := s.Store.ListCalendarEntries(ctx, &store.FindCalendarEntry{
		UserEmail: &email,
		EntryDate: &date,
	})
	if err != nil {
		return replyError(c, apperr.StorageUnavailable(err))
	}

	generated := s.Analyzer.Analyze(ctx, email, date, conversations, entries)
	stored, err := s.Store.UpsertInsight(ctx, generated)
	if err != nil {
		// Still return the analysis; only the cache write failed.
		s.logger.Warn("failed to cache insight",
			slog.String("user_email", email), slog.String("error", err.Error()))
		return c.JSON(http.StatusOK, toInsightResponse(generated))
	}
	return c.JSON(http.StatusOK, toInsightResponse(stored))
}

func insightParams(c echo.Context) (email, date string, err error) {
	email = strings.TrimSpace(strings.ToLower(c.Param("user_email")))
	if email == "" {
		return "", "", apperr.InvalidArgument("user_email is required")
	}
	date = c.QueryParam("date")
	if date == "" {
		date = time.Now().UTC().Format("2006-01-02")
	} else if !validEntryDate(date) {
		return "", "", apperr.InvalidArgument("date must be YYYY-MM-DD")
	}
	return email, date, nil
}
