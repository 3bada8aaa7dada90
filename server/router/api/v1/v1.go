// Package v1 exposes the REST API: auth, chat, conversation history,
// calendar and insights.
package v1

import (
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/repgenie/repgenie/internal/profile"
	"github.com/repgenie/repgenie/plugin/ai"
	"github.com/repgenie/repgenie/plugin/ai/agent"
	"github.com/repgenie/repgenie/plugin/newssearch"
	"github.com/repgenie/repgenie/plugin/videosearch"
	"github.com/repgenie/repgenie/server/auth"
	"github.com/repgenie/repgenie/server/middleware"
	"github.com/repgenie/repgenie/server/service/insight"
	"github.com/repgenie/repgenie/store"
)

// maxConcurrentAgentCalls bounds in-flight model work across requests.
const maxConcurrentAgentCalls = 8

type APIV1Service struct {
	Profile *profile.Profile
	Store   *store.Store

	Provider ai.Provider
	Router   *agent.Router
	Analyzer *insight.Analyzer
	Captcha  *auth.Captcha

	// authLimiter throttles signup/login per client IP.
	authLimiter *middleware.RateLimiter
	logger      *slog.Logger
}

// NewAPIV1Service wires the API service with the live search tools.
func NewAPIV1Service(prof *profile.Profile, st *store.Store, provider ai.Provider, logger *slog.Logger) *APIV1Service {
	news := newssearch.NewClient()
	video := videosearch.NewClient()

	return &APIV1Service{
		Profile:     prof,
		Store:       st,
		Provider:    provider,
		Router:      agent.NewRouter(provider, news, video, maxConcurrentAgentCalls),
		Analyzer:    insight.NewAnalyzer(provider),
		Captcha:     auth.NewCaptcha(prof.Secret),
		authLimiter: middleware.NewRateLimiter(time.Second, 10),
		logger:      logger,
	}
}

// RegisterRoutes attaches all endpoints to the echo instance.
func (s *APIV1Service) RegisterRoutes(e *echo.Echo) {
	e.GET("/auth/captcha", s.GetCaptcha)
	e.POST("/auth/signup", s.SignUp)
	e.POST("/auth/login", s.SignIn)

	e.POST("/chat/text", s.ChatText)
	e.POST("/chat/image", s.ChatImage)
	e.POST("/chat/image_upload", s.ChatImageUpload)
	e.POST("/chat/audio", s.ChatAudio)
	e.POST("/chat/audio_base64", s.ChatAudioBase64)

	e.POST("/generate_thread_id", s.GenerateThreadID)
	e.GET("/conversation_history/:thread_id", s.GetConversationHistory)
	e.DELETE("/clear_memory/:thread_id", s.ClearMemory)

	e.POST("/calendar/entries", s.CreateCalendarEntry)
	e.GET("/calendar/entries/:user_email", s.ListCalendarEntries)
	e.PUT("/calendar/entries/:entry_id", s.UpdateCalendarEntry)
	e.DELETE("/calendar/entries/:entry_id", s.DeleteCalendarEntry)

	e.GET("/insights/:user_email", s.GetInsights)
	e.POST("/insights/:user_email/regenerate", s.RegenerateInsights)
}
