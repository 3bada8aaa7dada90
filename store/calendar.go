package store

// ActivityType enumerates the logbook activity kinds.
type ActivityType string

const (
	ActivityWorkout      ActivityType = "workout"
	ActivityYoga         ActivityType = "yoga"
	ActivitySwimming     ActivityType = "swimming"
	ActivityCycling      ActivityType = "cycling"
	ActivityMeditation   ActivityType = "meditation"
	ActivityBoxing       ActivityType = "boxing"
	ActivityMealPlanning ActivityType = "meal_planning"
	ActivityOther        ActivityType = "other"
)

// ValidActivityTypes lists every accepted activity tag.
var ValidActivityTypes = []ActivityType{
	ActivityWorkout, ActivityYoga, ActivitySwimming, ActivityCycling,
	ActivityMeditation, ActivityBoxing, ActivityMealPlanning, ActivityOther,
}

func IsValidActivityType(t ActivityType) bool {
	for _, v := range ValidActivityTypes {
		if v == t {
			return true
		}
	}
	return false
}

// CalendarEntry is one logbook row for a user's planned or completed activity.
type CalendarEntry struct {
	ID             int32
	UserEmail      string
	EntryDate      string // YYYY-MM-DD
	ActivityType   ActivityType
	CustomActivity string // set when ActivityType is "other"
	Duration       int32  // minutes, 0 when not applicable
	Intensity      string // high, medium, low or ""
	Notes          string
	Completed      bool
	CreatedTs      int64
	UpdatedTs      int64
}

type FindCalendarEntry struct {
	ID        *int32
	UserEmail *string
	EntryDate *string
}

type UpdateCalendarEntry struct {
	ID             int32
	ActivityType   *ActivityType
	CustomActivity *string
	Duration       *int32
	Intensity      *string
	Notes          *string
	Completed      *bool
	UpdatedTs      *int64
}

type DeleteCalendarEntry struct {
	ID int32
}
