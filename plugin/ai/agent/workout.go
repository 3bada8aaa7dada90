package agent

import (
	"context"

	"github.com/repgenie/repgenie/plugin/ai"
	"github.com/repgenie/repgenie/store"
)

// WorkoutAgent answers workout and meal planning questions with a
// single coached completion.
type WorkoutAgent struct {
	provider ai.Provider
}

// NewWorkoutAgent creates the workout/meal planner agent.
func NewWorkoutAgent(provider ai.Provider) *WorkoutAgent {
	return &WorkoutAgent{provider: provider}
}

func (a *WorkoutAgent) Type() store.AgentType {
	return store.AgentTypeWorkout
}

func (a *WorkoutAgent) Respond(ctx context.Context, req *Request) (string, error) {
	return a.provider.Chat(ctx, buildMessages(workoutSystemPrompt, req.History, req.Query))
}
