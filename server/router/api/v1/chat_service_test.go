package v1

import (
	"bytes"
	"context"
	"encoding/base64"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperr "github.com/repgenie/repgenie/internal/errors"
	"github.com/repgenie/repgenie/store"
)

func TestChatTextPersistsExchange(t *testing.T) {
	s := newTestService(t, &stubProvider{chatReply: "ask me about your goals"})
	e := echo.New()

	c, rec := newJSONContext(e, "POST", "/chat/text",
		`{"thread_id":"a@b.com","query":"plan my week","selected_agent":"workout"}`)
	var resp chatResponse
	invoke(t, s.ChatText, rec, c, &resp)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ask me about your goals", resp.Response)
	assert.Equal(t, "workout", resp.AgentUsed)
	assert.True(t, resp.Persisted)

	threadID := "a@b.com"
	list, err := s.Store.ListConversations(context.Background(), &store.FindConversation{ThreadID: &threadID})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "plan my week", list[0].HumanMessage)
	assert.Equal(t, "ask me about your goals", list[0].AIMessage)
	assert.Equal(t, store.AgentTypeWorkout, list[0].AgentType)
	assert.Equal(t, store.InputTypeText, list[0].InputType)
	assert.True(t, list[0].UsedAgent)
}

func TestChatTextReturnsReplyWhenPersistenceFails(t *testing.T) {
	s := newTestService(t, &stubProvider{chatReply: "still here"})
	e := echo.New()

	// Kill the database so the append after the agent call fails.
	require.NoError(t, s.Store.GetDriver().Close())

	c, rec := newJSONContext(e, "POST", "/chat/text",
		`{"thread_id":"a@b.com","query":"plan my week","selected_agent":"workout"}`)
	var resp chatResponse
	invoke(t, s.ChatText, rec, c, &resp)

	// The reply still reaches the caller; only the persisted flag drops.
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "still here", resp.Response)
	assert.False(t, resp.Persisted)
}

func TestChatTextUnknownAgent(t *testing.T) {
	s := newTestService(t, &stubProvider{})
	e := echo.New()

	c, rec := newJSONContext(e, "POST", "/chat/text",
		`{"thread_id":"a@b.com","query":"hi","selected_agent":"astrology"}`)
	var resp errorBody
	invoke(t, s.ChatText, rec, c, &resp)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, apperr.ErrCodeAgentNotFound, resp.Code)
}

func TestChatTextMissingFields(t *testing.T) {
	s := newTestService(t, &stubProvider{})
	e := echo.New()

	c, rec := newJSONContext(e, "POST", "/chat/text", `{"thread_id":"a@b.com","query":"  "}`)
	var resp errorBody
	invoke(t, s.ChatText, rec, c, &resp)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, apperr.ErrCodeInvalidArgument, resp.Code)
}

func TestChatTextCompositeSections(t *testing.T) {
	s := newTestService(t, &stubProvider{chatReply: "section body"})
	e := echo.New()

	c, rec := newJSONContext(e, "POST", "/chat/text",
		`{"thread_id":"a@b.com","query":"everything","selected_agent":"all"}`)
	var resp chatResponse
	invoke(t, s.ChatText, rec, c, &resp)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "all", resp.AgentUsed)
	assert.Contains(t, resp.Response, "🧠 **Workout/Meal Plan**:")
	assert.Contains(t, resp.Response, "📰 **News**:")
	assert.Contains(t, resp.Response, "📺 **YouTube**:")
}

func TestChatImagePersistsSyntheticMessage(t *testing.T) {
	s := newTestService(t, &stubProvider{visionRepl: "## Physique Analysis\nSolid muscle definition."})
	e := echo.New()

	payload := base64.StdEncoding.EncodeToString([]byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00})
	c, rec := newJSONContext(e, "POST", "/chat/image",
		`{"thread_id":"a@b.com","base64_image":"`+payload+`"}`)
	var resp chatResponse
	invoke(t, s.ChatImage, rec, c, &resp)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image_analysis", resp.AgentUsed)
	assert.True(t, resp.Persisted)

	threadID := "a@b.com"
	list, err := s.Store.ListConversations(context.Background(), &store.FindConversation{ThreadID: &threadID})
	require.NoError(t, err)
	require.Len(t, list, 1)
	// The persisted human message is synthetic, not the raw payload.
	assert.Contains(t, list[0].HumanMessage, "I shared an image for fitness analysis")
	assert.Equal(t, store.InputTypeImage, list[0].InputType)
}

func TestChatImageRejectsBadBase64(t *testing.T) {
	s := newTestService(t, &stubProvider{})
	e := echo.New()

	c, rec := newJSONContext(e, "POST", "/chat/image",
		`{"thread_id":"a@b.com","base64_image":"%%%not-base64%%%"}`)
	var resp errorBody
	invoke(t, s.ChatImage, rec, c, &resp)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, apperr.ErrCodeInvalidArgument, resp.Code)
}

func TestChatAudioBase64RoutesTranscript(t *testing.T) {
	s := newTestService(t, &stubProvider{chatReply: "here is your plan", transcript: "plan my week"})
	e := echo.New()

	payload := base64.StdEncoding.EncodeToString([]byte("ID3fakeaudio"))
	c, rec := newJSONContext(e, "POST", "/chat/audio_base64",
		`{"thread_id":"a@b.com","base64_audio":"`+payload+`","selected_agent":"workout"}`)
	var resp chatResponse
	invoke(t, s.ChatAudioBase64, rec, c, &resp)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "here is your plan", resp.Response)
	assert.Equal(t, "plan my week", resp.Transcript)

	threadID := "a@b.com"
	list, err := s.Store.ListConversations(context.Background(), &store.FindConversation{ThreadID: &threadID})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "[Audio Base64] plan my week", list[0].HumanMessage)
	assert.Equal(t, store.InputTypeAudio, list[0].InputType)
}

func TestChatImageUploadRecordsFilename(t *testing.T) {
	s := newTestService(t, &stubProvider{visionRepl: "Looking lean."})
	e := echo.New()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.WriteField("thread_id", "a@b.com"))
	fw, err := mw.CreateFormFile("image_file", "progress.jpg")
	require.NoError(t, err)
	_, err = fw.Write([]byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00})
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/chat/image_upload", &body)
	req.Header.Set(echo.HeaderContentType, mw.FormDataContentType())
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var resp chatResponse
	invoke(t, s.ChatImageUpload, rec, c, &resp)
	require.Equal(t, http.StatusOK, rec.Code)

	threadID := "a@b.com"
	list, err := s.Store.ListConversations(context.Background(), &store.FindConversation{ThreadID: &threadID})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Contains(t, list[0].HumanMessage, "I uploaded an image file 'progress.jpg'")
}

func TestChatImageUploadRejectsOversizedFile(t *testing.T) {
	s := newTestService(t, &stubProvider{})
	e := echo.New()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.WriteField("thread_id", "a@b.com"))
	fw, err := mw.CreateFormFile("image_file", "huge.jpg")
	require.NoError(t, err)
	_, err = fw.Write(make([]byte, maxUploadBytes+1))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/chat/image_upload", &body)
	req.Header.Set(echo.HeaderContentType, mw.FormDataContentType())
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var resp errorBody
	invoke(t, s.ChatImageUpload, rec, c, &resp)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, apperr.ErrCodeInvalidArgument, resp.Code)
}

func TestPrepareImagePassthroughOnUndecodable(t *testing.T) {
	data := []byte("definitely not an image")
	out, mime := prepareImage(data, "")
	assert.Equal(t, data, out)
	assert.Equal(t, "image/jpeg", mime)
}
