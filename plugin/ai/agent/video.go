package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/repgenie/repgenie/plugin/ai"
	"github.com/repgenie/repgenie/plugin/videosearch"
	"github.com/repgenie/repgenie/store"
)

const videoResultLimit = 3

// VideoSearcher is the search tool the video agent grounds its answers on.
type VideoSearcher interface {
	Search(ctx context.Context, query string, limit int) ([]videosearch.Video, error)
}

// VideoAgent recommends YouTube videos, grounded on live search results.
type VideoAgent struct {
	provider ai.Provider
	searcher VideoSearcher
}

// NewVideoAgent creates the video agent.
func NewVideoAgent(provider ai.Provider, searcher VideoSearcher) *VideoAgent {
	return &VideoAgent{provider: provider, searcher: searcher}
}

func (a *VideoAgent) Type() store.AgentType {
	return store.AgentTypeVideo
}

func (a *VideoAgent) Respond(ctx context.Context, req *Request) (string, error) {
	videos, err := a.searcher.Search(ctx, req.Query, videoResultLimit)
	if err != nil {
		return "", fmt.Errorf("video search failed: %w", err)
	}

	system := fmt.Sprintf(videoSystemPrompt, renderVideos(videos))
	return a.provider.Chat(ctx, buildMessages(system, req.History, req.Query))
}

func renderVideos(videos []videosearch.Video) string {
	var sb strings.Builder
	for i, v := range videos {
		fmt.Fprintf(&sb, "%d. %s\n   %s\n", i+1, v.Title, v.URL)
	}
	return sb.String()
}
