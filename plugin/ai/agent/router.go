package agent

import (
	"context"

	"golang.org/x/sync/semaphore"

	"github.com/repgenie/repgenie/plugin/ai"
	apperr "github.com/repgenie/repgenie/internal/errors"
	"github.com/repgenie/repgenie/store"
)

// defaultMaxConcurrent bounds in-flight model calls across all requests.
const defaultMaxConcurrent = 8

// Router dispatches requests to the agent matching the requested type.
// A weighted semaphore bounds concurrent model work so a burst of
// composite requests cannot exhaust upstream quota.
type Router struct {
	agents map[store.AgentType]Agent
	image  *ImageAgent
	sem    *semaphore.Weighted
}

// NewRouter wires the full agent set.
func NewRouter(provider ai.Provider, news NewsSearcher, video VideoSearcher, maxConcurrent int64) *Router {
	if maxConcurrent <= 0 {
		maxConcurrent = defaultMaxConcurrent
	}

	workoutAgent := NewWorkoutAgent(provider)
	newsAgent := NewNewsAgent(provider, news)
	videoAgent := NewVideoAgent(provider, video)

	agents := map[store.AgentType]Agent{
		store.AgentTypeWorkout: workoutAgent,
		store.AgentTypeNews:    newsAgent,
		store.AgentTypeVideo:   videoAgent,
		store.AgentTypeAll:     NewCompositeAgent(workoutAgent, newsAgent, videoAgent),
	}

	return &Router{
		agents: agents,
		image:  NewImageAgent(provider),
		sem:    semaphore.NewWeighted(maxConcurrent),
	}
}

// Route dispatches a text request to the named agent.
func (r *Router) Route(ctx context.Context, agentType store.AgentType, req *Request) (string, error) {
	agent, ok := r.agents[agentType]
	if !ok {
		return "", apperr.AgentNotFound(string(agentType))
	}

	if err := r.sem.Acquire(ctx, 1); err != nil {
		return "", err
	}
	defer r.sem.Release(1)

	reply, err := agent.Respond(ctx, req)
	if err != nil {
		return "", apperr.AgentUnavailable(err)
	}
	return reply, nil
}

// AnalyzeImage dispatches an image to the vision agent.
func (r *Router) AnalyzeImage(ctx context.Context, imageData []byte, mimeType string, history []Exchange) (reply, humanMessage string, err error) {
	if err := r.sem.Acquire(ctx, 1); err != nil {
		return "", "", err
	}
	defer r.sem.Release(1)

	reply, humanMessage, err = r.image.Analyze(ctx, imageData, mimeType, history)
	if err != nil {
		return "", "", apperr.AgentUnavailable(err)
	}
	return reply, humanMessage, nil
}
