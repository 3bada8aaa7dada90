// Package agent implements the specialized chat agents and the router
// that dispatches between them.
package agent

import (
	"context"

	apperr "github.com/repgenie/repgenie/internal/errors"
	"github.com/repgenie/repgenie/store"
)

// Exchange is one prior human/assistant turn supplied as context.
type Exchange struct {
	Human string
	AI    string
}

// Request carries the user input plus conversation context into an agent.
type Request struct {
	Query   string
	History []Exchange
}

// Agent produces a reply to a request. Agents are stateless; all
// continuity comes from the history in the request.
type Agent interface {
	Type() store.AgentType
	Respond(ctx context.Context, req *Request) (string, error)
}

// ParseAgentType resolves the client-supplied agent tag. "youtube" is
// accepted as a legacy alias for the video agent. An empty tag selects
// the composite agent.
func ParseAgentType(s string) (store.AgentType, error) {
	switch s {
	case "workout":
		return store.AgentTypeWorkout, nil
	case "news":
		return store.AgentTypeNews, nil
	case "video", "youtube":
		return store.AgentTypeVideo, nil
	case "all", "":
		return store.AgentTypeAll, nil
	default:
		return "", apperr.AgentNotFound(s)
	}
}
