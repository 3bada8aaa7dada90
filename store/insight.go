package store

// Insight is the cached AI analysis of one user's day. At most one row
// per (user_email, analysis_date); regeneration overwrites in place.
type Insight struct {
	ID                    int32
	UserEmail             string
	AnalysisDate          string // YYYY-MM-DD
	WorkoutRequested      bool
	WorkoutType           string
	MealRequested         bool
	MealType              string
	VideoRequested        bool
	VideoType             string
	NewsRequested         bool
	NewsType              string
	ImageAnalysisDone     bool
	ImageAnalysisInsights string
	ConversationSummary   string
	CalendarEntriesLogged bool
	EntriesCount          int32
	CalendarSummary       string
	CreatedTs             int64
	UpdatedTs             int64
}

type FindInsight struct {
	UserEmail    string
	AnalysisDate string
}
