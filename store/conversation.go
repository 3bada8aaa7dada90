package store

// AgentType tags which agent produced a conversation entry.
type AgentType string

const (
	AgentTypeWorkout       AgentType = "workout"
	AgentTypeNews          AgentType = "news"
	AgentTypeVideo         AgentType = "video"
	AgentTypeAll           AgentType = "all"
	AgentTypeImageAnalysis AgentType = "image_analysis"
)

// InputType tags the modality the human message arrived in.
type InputType string

const (
	InputTypeText  InputType = "text"
	InputTypeImage InputType = "image"
	InputTypeAudio InputType = "audio"
)

// Conversation is one completed chat exchange. Entries are append-only
// and never mutated after insertion.
type Conversation struct {
	ID           int32
	UID          string
	ThreadID     string
	AgentType    AgentType
	UsedAgent    bool
	HumanMessage string
	AIMessage    string
	InputType    InputType
	CreatedTs    int64
}

type FindConversation struct {
	ID       *int32
	ThreadID *string
	// CreatedDate filters entries to a single UTC day, formatted YYYY-MM-DD.
	CreatedDate *string
	// Limit caps the number of returned entries; most recent entries win,
	// but the result is always in ascending creation order.
	Limit *int
}

type DeleteConversation struct {
	ThreadID string
}
