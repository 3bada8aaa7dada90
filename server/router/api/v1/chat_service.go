package v1

import (
	"bytes"
	"context"
	"encoding/base64"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/labstack/echo/v4"
	"github.com/lithammer/shortuuid/v4"

	"github.com/repgenie/repgenie/plugin/ai"
	"github.com/repgenie/repgenie/plugin/ai/agent"
	apperr "github.com/repgenie/repgenie/internal/errors"
	"github.com/repgenie/repgenie/server/internal/observability"
	"github.com/repgenie/repgenie/store"
)

// maxImageWidth caps uploaded images before they go to the vision model.
const maxImageWidth = 1024

// maxUploadBytes bounds multipart file reads.
const maxUploadBytes = 20 << 20

type chatTextRequest struct {
	ThreadID      string `json:"thread_id"`
	Query         string `json:"query"`
	SelectedAgent string `json:"selected_agent"`
}

type chatImageRequest struct {
	ThreadID    string `json:"thread_id"`
	Base64Image string `json:"base64_image"`
	MimeType    string `json:"mime_type"`
}

type chatAudioBase64Request struct {
	ThreadID      string `json:"thread_id"`
	Base64Audio   string `json:"base64_audio"`
	SelectedAgent string `json:"selected_agent"`
}

type chatResponse struct {
	Response   string `json:"response"`
	AgentUsed  string `json:"agent_used"`
	Persisted  bool   `json:"persisted"`
	Transcript string `json:"transcribed_text,omitempty"`
}

// POST /chat/text
func (s *APIV1Service) ChatText(c echo.Context) error {
	var req chatTextRequest
	if err := c.Bind(&req); err != nil {
		return replyError(c, apperr.InvalidArgument("malformed request body"))
	}
	if req.ThreadID == "" || strings.TrimSpace(req.Query) == "" {
		return replyError(c, apperr.InvalidArgument("thread_id and query are required"))
	}

	agentType, err := agent.ParseAgentType(req.SelectedAgent)
	if err != nil {
		return replyError(c, err)
	}

	return s.runAgentChat(c, agentType, req.ThreadID, req.Query, req.Query, store.InputTypeText, "")
}

// POST /chat/image
func (s *APIV1Service) ChatImage(c echo.Context) error {
	var req chatImageRequest
	if err := c.Bind(&req); err != nil {
		return replyError(c, apperr.InvalidArgument("malformed request body"))
	}
	if req.ThreadID == "" || req.Base64Image == "" {
		return replyError(c, apperr.InvalidArgument("thread_id and base64_image are required"))
	}

	imageData, err := base64.StdEncoding.DecodeString(req.Base64Image)
	if err != nil {
		return replyError(c, apperr.InvalidArgument("base64_image is not valid base64"))
	}

	return s.runImageChat(c, req.ThreadID, imageData, req.MimeType, "")
}

// POST /chat/image_upload
func (s *APIV1Service) ChatImageUpload(c echo.Context) error {
	threadID := c.FormValue("thread_id")
	if threadID == "" {
		return replyError(c, apperr.InvalidArgument("thread_id is required"))
	}

	imageData, filename, err := readFormFile(c, "image_file")
	if err != nil {
		return replyError(c, err)
	}

	return s.runImageChat(c, threadID, imageData, "", filename)
}

// POST /chat/audio
func (s *APIV1Service) ChatAudio(c echo.Context) error {
	threadID := c.FormValue("thread_id")
	if threadID == "" {
		return replyError(c, apperr.InvalidArgument("thread_id is required"))
	}
	agentType, err := agent.ParseAgentType(c.FormValue("selected_agent"))
	if err != nil {
		return replyError(c, err)
	}

	audioData, _, err := readFormFile(c, "audio_file")
	if err != nil {
		return replyError(c, err)
	}

	return s.runAudioChat(c, agentType, threadID, audioData, "[Audio] ")
}

// POST /chat/audio_base64
func (s *APIV1Service) ChatAudioBase64(c echo.Context) error {
	var req chatAudioBase64Request
	if err := c.Bind(&req); err != nil {
		return replyError(c, apperr.InvalidArgument("malformed request body"))
	}
	if req.ThreadID == "" || req.Base64Audio == "" {
		return replyError(c, apperr.InvalidArgument("thread_id and base64_audio are required"))
	}
	agentType, err := agent.ParseAgentType(req.SelectedAgent)
	if err != nil {
		return replyError(c, err)
	}

	audioData, err := base64.StdEncoding.DecodeString(req.Base64Audio)
	if err != nil {
		return replyError(c, apperr.InvalidArgument("base64_audio is not valid base64"))
	}

	return s.runAudioChat(c, agentType, req.ThreadID, audioData, "[Audio Base64] ")
}

// runAgentChat routes a text query and persists the exchange.
// humanMessage may differ from query (audio prefixes the transcript);
// transcript is echoed back on the audio endpoints, empty otherwise.
func (s *APIV1Service) runAgentChat(c echo.Context, agentType store.AgentType, threadID, query, humanMessage string, inputType store.InputType, transcript string) error {
	ctx := c.Request().Context()
	rc := observability.NewRequestContext(s.logger, string(agentType), threadID)

	history := s.loadHistory(ctx, rc, threadID)
	reply, err := s.Router.Route(ctx, agentType, &agent.Request{Query: query, History: history})
	if err != nil {
		rc.Error("agent call failed", err)
		return replyError(c, err)
	}

	persisted := s.persistConversation(ctx, rc, &store.Conversation{
		UID:          shortuuid.New(),
		ThreadID:     threadID,
		AgentType:    agentType,
		UsedAgent:    true,
		HumanMessage: humanMessage,
		AIMessage:    reply,
		InputType:    inputType,
		CreatedTs:    time.Now().Unix(),
	})

	rc.Info("chat completed",
		slog.Int64(observability.LogFieldDuration, rc.DurationMs()),
		slog.Int(observability.LogFieldMessageLen, len(reply)),
		slog.String(observability.LogFieldInputType, string(inputType)))

	return c.JSON(http.StatusOK, &chatResponse{
		Response:   reply,
		AgentUsed:  string(agentType),
		Persisted:  persisted,
		Transcript: transcript,
	})
}

// runImageChat analyzes an image and persists the synthetic exchange.
// filename, when present, is folded into the stored human message.
func (s *APIV1Service) runImageChat(c echo.Context, threadID string, imageData []byte, mimeType, filename string) error {
	ctx := c.Request().Context()
	rc := observability.NewRequestContext(s.logger, string(store.AgentTypeImageAnalysis), threadID)

	imageData, mimeType = prepareImage(imageData, mimeType)

	history := s.loadHistory(ctx, rc, threadID)
	reply, humanMessage, err := s.Router.AnalyzeImage(ctx, imageData, mimeType, history)
	if err != nil {
		rc.Error("image analysis failed", err)
		return replyError(c, err)
	}
	if filename != "" {
		humanMessage = strings.Replace(humanMessage,
			"I shared an image", "I uploaded an image file '"+filename+"'", 1)
	}

	persisted := s.persistConversation(ctx, rc, &store.Conversation{
		UID:          shortuuid.New(),
		ThreadID:     threadID,
		AgentType:    store.AgentTypeImageAnalysis,
		UsedAgent:    true,
		HumanMessage: humanMessage,
		AIMessage:    reply,
		InputType:    store.InputTypeImage,
		CreatedTs:    time.Now().Unix(),
	})

	rc.Info("image chat completed",
		slog.Int64(observability.LogFieldDuration, rc.DurationMs()))

	return c.JSON(http.StatusOK, &chatResponse{
		Response:  reply,
		AgentUsed: string(store.AgentTypeImageAnalysis),
		Persisted: persisted,
	})
}

// runAudioChat transcribes the audio and routes the transcript as text.
func (s *APIV1Service) runAudioChat(c echo.Context, agentType store.AgentType, threadID string, audioData []byte, prefix string) error {
	if len(audioData) == 0 {
		return replyError(c, apperr.InvalidArgument("audio payload is empty"))
	}

	ctx := c.Request().Context()
	transcript, err := s.Provider.Transcribe(ctx, audioData, "")
	if err != nil {
		return replyError(c, apperr.AgentUnavailable(err))
	}
	transcript = strings.TrimSpace(transcript)
	if transcript == "" {
		return replyError(c, apperr.InvalidArgument("no speech detected in audio"))
	}

	return s.runAgentChat(c, agentType, threadID, transcript, prefix+transcript, store.InputTypeAudio, transcript)
}

// loadHistory fetches the context window for a thread. A read failure
// degrades to an empty history so the chat still goes through.
func (s *APIV1Service) loadHistory(ctx context.Context, rc *observability.RequestContext, threadID string) []agent.Exchange {
	limit := 10
	conversations, err := s.Store.ListConversations(ctx, &store.FindConversation{
		ThreadID: &threadID,
		Limit:    &limit,
	})
	if err != nil {
		rc.Warn("history load failed, continuing without context",
			slog.String("error", err.Error()))
		return nil
	}

	history := make([]agent.Exchange, 0, len(conversations))
	for _, conv := range conversations {
		history = append(history, agent.Exchange{Human: conv.HumanMessage, AI: conv.AIMessage})
	}
	return history
}

// persistConversation appends the exchange. The reply already exists at
// this point, so failure is logged and reported via the persisted flag
// instead of failing the request.
func (s *APIV1Service) persistConversation(ctx context.Context, rc *observability.RequestContext, conv *store.Conversation) bool {
	if _, err := s.Store.CreateConversation(ctx, conv); err != nil {
		rc.Error("failed to persist conversation", err)
		return false
	}
	return true
}

// prepareImage downscales oversized images and normalizes the MIME
// type. Undecodable payloads pass through untouched; the vision API
// will produce the user-facing error.
func prepareImage(data []byte, mimeType string) ([]byte, string) {
	if mimeType == "" {
		mimeType = ai.SniffImageMIME(data)
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return data, mimeType
	}
	if img.Bounds().Dx() <= maxImageWidth {
		return data, mimeType
	}

	resized := imaging.Resize(img, maxImageWidth, 0, imaging.Lanczos)
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, resized, imaging.JPEG); err != nil {
		return data, mimeType
	}
	return buf.Bytes(), "image/jpeg"
}

func readFormFile(c echo.Context, name string) ([]byte, string, error) {
	fh, err := c.FormFile(name)
	if err != nil {
		return nil, "", apperr.InvalidArgument(name + " is required")
	}
	f, err := fh.Open()
	if err != nil {
		return nil, "", apperr.InvalidArgument(name + " could not be read")
	}
	defer f.Close()

	// Read one byte past the cap so truncation is detectable.
	data, err := io.ReadAll(io.LimitReader(f, maxUploadBytes+1))
	if err != nil {
		return nil, "", apperr.InvalidArgument(name + " could not be read")
	}
	if len(data) > maxUploadBytes {
		return nil, "", apperr.InvalidArgument(name + " exceeds the 20MB upload limit")
	}
	return data, fh.Filename, nil
}
