package v1

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"regexp"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/repgenie/repgenie/internal/profile"
	"github.com/repgenie/repgenie/plugin/ai"
	"github.com/repgenie/repgenie/plugin/ai/agent"
	"github.com/repgenie/repgenie/plugin/newssearch"
	"github.com/repgenie/repgenie/plugin/videosearch"
	"github.com/repgenie/repgenie/server/auth"
	"github.com/repgenie/repgenie/server/middleware"
	"github.com/repgenie/repgenie/server/service/insight"
	storetest "github.com/repgenie/repgenie/store/test"
)

// stubProvider replays canned responses and counts calls.
type stubProvider struct {
	chatCalls  atomic.Int64
	chatReply  string
	visionRepl string
	transcript string
}

func (s *stubProvider) Chat(context.Context, []ai.Message) (string, error) {
	s.chatCalls.Add(1)
	if s.chatReply != "" {
		return s.chatReply, nil
	}
	return "stub chat reply", nil
}

func (s *stubProvider) ChatVision(context.Context, string, []byte, string) (string, error) {
	if s.visionRepl != "" {
		return s.visionRepl, nil
	}
	return "stub vision reply", nil
}

func (s *stubProvider) Transcribe(context.Context, []byte, string) (string, error) {
	if s.transcript != "" {
		return s.transcript, nil
	}
	return "stub transcript", nil
}

type stubNewsSearcher struct{}

func (stubNewsSearcher) Search(context.Context, string, int) ([]newssearch.Article, error) {
	return []newssearch.Article{{Title: "Stub headline", Link: "https://example.com/a"}}, nil
}

type stubVideoSearcher struct{}

func (stubVideoSearcher) Search(context.Context, string, int) ([]videosearch.Video, error) {
	return []videosearch.Video{{ID: "dQw4w9WgXcQ", Title: "Stub video", URL: "https://www.youtube.com/watch?v=dQw4w9WgXcQ"}}, nil
}

func newTestService(t *testing.T, p *stubProvider) *APIV1Service {
	ts := storetest.NewTestingStore(context.Background(), t)
	prof := &profile.Profile{Mode: "dev", Secret: "test-secret", Version: "test"}

	return &APIV1Service{
		Profile:     prof,
		Store:       ts,
		Provider:    p,
		Router:      agent.NewRouter(p, stubNewsSearcher{}, stubVideoSearcher{}, 4),
		Analyzer:    insight.NewAnalyzer(p),
		Captcha:     auth.NewCaptcha(prof.Secret),
		authLimiter: middleware.NewRateLimiter(time.Millisecond, 1000),
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// invoke runs a handler against a recorded request and decodes the body.
func invoke(t *testing.T, handler echo.HandlerFunc, req *httptest.ResponseRecorder, c echo.Context, out any) {
	t.Helper()
	require.NoError(t, handler(c))
	if out != nil {
		require.NoError(t, json.Unmarshal(req.Body.Bytes(), out))
	}
}

func newJSONContext(e *echo.Echo, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

var captchaQuestionRE = regexp.MustCompile(`What is (\d+) ([+-]) (\d+)\?`)

// solveCaptcha issues a challenge from the service and solves it.
func solveCaptcha(t *testing.T, s *APIV1Service) (token, answer string) {
	t.Helper()
	e := echo.New()
	c, rec := newJSONContext(e, "GET", "/auth/captcha", "")

	var challenge auth.Challenge
	invoke(t, s.GetCaptcha, rec, c, &challenge)

	m := captchaQuestionRE.FindStringSubmatch(challenge.Question)
	require.NotNil(t, m, "unexpected captcha question: %s", challenge.Question)
	a, _ := strconv.Atoi(m[1])
	b, _ := strconv.Atoi(m[3])
	if m[2] == "+" {
		return challenge.Token, strconv.Itoa(a + b)
	}
	return challenge.Token, strconv.Itoa(a - b)
}

// signUpUser registers a user through the real signup flow.
func signUpUser(t *testing.T, s *APIV1Service, email, password string) {
	t.Helper()
	token, answer := solveCaptcha(t, s)
	e := echo.New()
	body, _ := json.Marshal(map[string]string{
		"email": email, "password": password,
		"captcha_token": token, "captcha_answer": answer,
	})
	c, rec := newJSONContext(e, "POST", "/auth/signup", string(body))
	require.NoError(t, s.SignUp(c))
	require.Equal(t, 200, rec.Code, rec.Body.String())
}
