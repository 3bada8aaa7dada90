package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/repgenie/repgenie/plugin/ai"
	"github.com/repgenie/repgenie/plugin/newssearch"
	"github.com/repgenie/repgenie/store"
)

const newsResultLimit = 5

// NewsSearcher is the search tool the news agent grounds its answers on.
type NewsSearcher interface {
	Search(ctx context.Context, query string, limit int) ([]newssearch.Article, error)
}

// NewsAgent answers with recent fitness news, grounded on live search
// results so the model cannot invent headlines.
type NewsAgent struct {
	provider ai.Provider
	searcher NewsSearcher
}

// NewNewsAgent creates the news agent.
func NewNewsAgent(provider ai.Provider, searcher NewsSearcher) *NewsAgent {
	return &NewsAgent{provider: provider, searcher: searcher}
}

func (a *NewsAgent) Type() store.AgentType {
	return store.AgentTypeNews
}

func (a *NewsAgent) Respond(ctx context.Context, req *Request) (string, error) {
	articles, err := a.searcher.Search(ctx, req.Query, newsResultLimit)
	if err != nil {
		return "", fmt.Errorf("news search failed: %w", err)
	}

	system := fmt.Sprintf(newsSystemPrompt, renderArticles(articles))
	return a.provider.Chat(ctx, buildMessages(system, req.History, req.Query))
}

func renderArticles(articles []newssearch.Article) string {
	if len(articles) == 0 {
		return "(no articles found; tell the user no recent news matched their question)"
	}
	var sb strings.Builder
	for i, art := range articles {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, art.Title)
		if art.Source != "" {
			fmt.Fprintf(&sb, "   Source: %s\n", art.Source)
		}
		if art.Published != "" {
			fmt.Fprintf(&sb, "   Published: %s\n", art.Published)
		}
		fmt.Fprintf(&sb, "   Link: %s\n", art.Link)
		if art.Snippet != "" {
			fmt.Fprintf(&sb, "   %s\n", art.Snippet)
		}
	}
	return sb.String()
}
