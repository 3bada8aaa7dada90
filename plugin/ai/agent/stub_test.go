package agent

import (
	"context"
	"sync"

	"github.com/repgenie/repgenie/plugin/ai"
	"github.com/repgenie/repgenie/plugin/newssearch"
	"github.com/repgenie/repgenie/plugin/videosearch"
)

// stubProvider records calls and replays canned responses.
type stubProvider struct {
	mu       sync.Mutex
	chats    [][]ai.Message
	chatFn   func(messages []ai.Message) (string, error)
	visionFn func(prompt string) (string, error)
}

func (s *stubProvider) Chat(_ context.Context, messages []ai.Message) (string, error) {
	s.mu.Lock()
	s.chats = append(s.chats, messages)
	s.mu.Unlock()
	if s.chatFn != nil {
		return s.chatFn(messages)
	}
	return "stub reply", nil
}

func (s *stubProvider) ChatVision(_ context.Context, prompt string, _ []byte, _ string) (string, error) {
	if s.visionFn != nil {
		return s.visionFn(prompt)
	}
	return "stub vision reply", nil
}

func (s *stubProvider) Transcribe(_ context.Context, _ []byte, _ string) (string, error) {
	return "stub transcript", nil
}

type stubNewsSearcher struct {
	articles []newssearch.Article
	err      error
}

func (s *stubNewsSearcher) Search(_ context.Context, _ string, _ int) ([]newssearch.Article, error) {
	return s.articles, s.err
}

type stubVideoSearcher struct {
	videos []videosearch.Video
	err    error
}

func (s *stubVideoSearcher) Search(_ context.Context, _ string, _ int) ([]videosearch.Video, error) {
	return s.videos, s.err
}
