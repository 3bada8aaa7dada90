// Package insight generates the per-day activity analysis from a
// user's conversations and logbook entries.
package insight

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/repgenie/repgenie/plugin/ai"
	"github.com/repgenie/repgenie/store"
)

// Analyzer turns a day of user activity into a structured insight row.
// The model is asked for JSON; when the reply cannot be parsed the
// analyzer falls back to keyword heuristics so the endpoint always
// returns something.
type Analyzer struct {
	provider ai.Provider
}

// NewAnalyzer creates an insight analyzer.
func NewAnalyzer(provider ai.Provider) *Analyzer {
	return &Analyzer{provider: provider}
}

// modelInsight mirrors the JSON shape requested from the model.
type modelInsight struct {
	WorkoutRequested      bool   `json:"workout_requested"`
	WorkoutType           string `json:"workout_type"`
	MealRequested         bool   `json:"meal_requested"`
	MealType              string `json:"meal_type"`
	VideoRequested        bool   `json:"video_requested"`
	VideoType             string `json:"video_type"`
	NewsRequested         bool   `json:"news_requested"`
	NewsType              string `json:"news_type"`
	ImageAnalysisDone     bool   `json:"image_analysis_done"`
	ImageAnalysisInsights string `json:"image_analysis_insights"`
	ConversationSummary   string `json:"conversation_summary"`
	CalendarSummary       string `json:"calendar_entries_summary"`
}

// Analyze produces an insight for one user and day. It never returns an
// error for model failures; those degrade to the heuristic fallback.
func (a *Analyzer) Analyze(ctx context.Context, userEmail, date string, conversations []*store.Conversation, entries []*store.CalendarEntry) *store.Insight {
	prompt := buildAnalysisPrompt(userEmail, date, conversations, entries)

	reply, err := a.provider.Chat(ctx, []ai.Message{{Role: "user", Content: prompt}})
	if err != nil {
		slog.Warn("insight analysis failed, using keyword fallback", "error", err)
		return fallbackInsight(userEmail, date, conversations, entries)
	}

	var parsed modelInsight
	if err := json.Unmarshal([]byte(stripCodeFences(reply)), &parsed); err != nil {
		slog.Warn("insight reply was not valid JSON, using keyword fallback", "error", err)
		return fallbackInsight(userEmail, date, conversations, entries)
	}

	now := time.Now().Unix()
	return &store.Insight{
		UserEmail:             userEmail,
		AnalysisDate:          date,
		WorkoutRequested:      parsed.WorkoutRequested,
		WorkoutType:           parsed.WorkoutType,
		MealRequested:         parsed.MealRequested,
		MealType:              parsed.MealType,
		VideoRequested:        parsed.VideoRequested,
		VideoType:             parsed.VideoType,
		NewsRequested:         parsed.NewsRequested,
		NewsType:              parsed.NewsType,
		ImageAnalysisDone:     parsed.ImageAnalysisDone,
		ImageAnalysisInsights: parsed.ImageAnalysisInsights,
		ConversationSummary:   parsed.ConversationSummary,
		CalendarEntriesLogged: len(entries) > 0,
		EntriesCount:          int32(len(entries)),
		CalendarSummary:       parsed.CalendarSummary,
		CreatedTs:             now,
		UpdatedTs:             now,
	}
}

func buildAnalysisPrompt(userEmail, date string, conversations []*store.Conversation, entries []*store.CalendarEntry) string {
	var convText strings.Builder
	for _, conv := range conversations {
		fmt.Fprintf(&convText, "Agent: %s, Input: %s\n", conv.AgentType, conv.InputType)
		fmt.Fprintf(&convText, "Human: %s\n", conv.HumanMessage)
		fmt.Fprintf(&convText, "AI: %s\n\n", conv.AIMessage)
	}
	if convText.Len() == 0 {
		convText.WriteString("No conversations found for this date.\n")
	}

	var calText strings.Builder
	var totalDuration int32
	completedCount := 0
	for _, entry := range entries {
		fmt.Fprintf(&calText, "Activity: %s", entry.ActivityType)
		if entry.CustomActivity != "" {
			fmt.Fprintf(&calText, " (%s)", entry.CustomActivity)
		}
		if entry.Duration > 0 {
			fmt.Fprintf(&calText, ", Duration: %d minutes", entry.Duration)
			totalDuration += entry.Duration
		}
		if entry.Intensity != "" {
			fmt.Fprintf(&calText, ", Intensity: %s", entry.Intensity)
		}
		if entry.Notes != "" {
			fmt.Fprintf(&calText, ", Notes: %s", entry.Notes)
		}
		if entry.Completed {
			calText.WriteString(", Completed: Yes\n")
			completedCount++
		} else {
			calText.WriteString(", Completed: No\n")
		}
	}
	if calText.Len() == 0 {
		calText.WriteString("No calendar entries found for this date.\n")
	}

	return fmt.Sprintf(`You are an AI fitness data analyst. Analyze the following user data for %s on %s and provide detailed insights in JSON format.

CONVERSATION DATA (%d total):
%s
CALENDAR ENTRIES (%d total, %d completed, %d minutes planned):
%s
Look for specific patterns:
1. WORKOUT ANALYSIS: workout requests, types, goals, preferences
2. MEAL ANALYSIS: nutrition questions, diet preferences, meal planning
3. VIDEO ANALYSIS: tutorial requests, exercise demos, educational content
4. NEWS ANALYSIS: fitness news, trends, research interests
5. IMAGE ANALYSIS: physique photos, food photos, form checks

Return a JSON response (NO markdown code blocks, just pure JSON):
{
    "workout_requested": boolean,
    "workout_type": "detailed workout type and goals mentioned",
    "meal_requested": boolean,
    "meal_type": "detailed meal preferences and nutrition goals",
    "video_requested": boolean,
    "video_type": "specific video content requested",
    "news_requested": boolean,
    "news_type": "specific news topics of interest",
    "image_analysis_done": boolean,
    "image_analysis_insights": "summary of all image analysis performed",
    "conversation_summary": "summary of all user interactions and goals (200-300 chars)",
    "calendar_entries_summary": "breakdown of all planned and completed activities (150-200 chars)"
}

Be detailed in your analysis. Focus on the user's specific goals, preferences, and patterns.`,
		userEmail, date, len(conversations), convText.String(),
		len(entries), completedCount, totalDuration, calText.String())
}

// stripCodeFences removes a surrounding markdown code block, which
// models add even when told not to.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```json") {
		s = s[len("```json"):]
	} else if strings.HasPrefix(s, "```") {
		s = s[len("```"):]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

var (
	workoutKeywords = []string{"workout", "exercise", "training", "muscle", "strength", "fitness", "gym", "bodybuilding", "split", "routine"}
	mealKeywords    = []string{"meal", "nutrition", "protein", "diet", "food", "eating", "calories", "macro"}
	videoKeywords   = []string{"video", "youtube", "tutorial", "show me", "watch", "demo"}
	newsKeywords    = []string{"news", "latest", "trending", "updates", "research"}
)

// fallbackInsight derives a best-effort insight from keyword matching
// when the model is unavailable or returned garbage.
func fallbackInsight(userEmail, date string, conversations []*store.Conversation, entries []*store.CalendarEntry) *store.Insight {
	now := time.Now().Unix()
	insight := &store.Insight{
		UserEmail:             userEmail,
		AnalysisDate:          date,
		ConversationSummary:   "Analysis unavailable due to processing error",
		CalendarEntriesLogged: len(entries) > 0,
		EntriesCount:          int32(len(entries)),
		CalendarSummary:       "No activities logged",
		CreatedTs:             now,
		UpdatedTs:             now,
	}

	if len(conversations) > 0 {
		var allText strings.Builder
		imageCount := 0
		for _, conv := range conversations {
			allText.WriteString(strings.ToLower(conv.HumanMessage))
			allText.WriteString(" ")
			if conv.InputType == store.InputTypeImage {
				imageCount++
			}
		}
		text := allText.String()

		insight.WorkoutRequested = containsAny(text, workoutKeywords)
		insight.MealRequested = containsAny(text, mealKeywords)
		insight.VideoRequested = containsAny(text, videoKeywords)
		insight.NewsRequested = containsAny(text, newsKeywords)
		if imageCount > 0 {
			insight.ImageAnalysisDone = true
			insight.ImageAnalysisInsights = fmt.Sprintf("Image analysis performed on %d photos", imageCount)
		}
		insight.ConversationSummary = fmt.Sprintf(
			"User engaged in %d fitness-related conversations covering workout planning, nutrition advice, and educational content.",
			len(conversations))
	}

	if len(entries) > 0 {
		completed := 0
		var totalDuration int32
		for _, entry := range entries {
			if entry.Completed {
				completed++
			}
			totalDuration += entry.Duration
		}
		insight.CalendarSummary = fmt.Sprintf(
			"%d activities logged (%d completed, %d pending), %d minutes planned.",
			len(entries), completed, len(entries)-completed, totalDuration)
	}

	return insight
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
