package v1

import (
	"log/slog"
	"net/http"
	"net/mail"
	"strconv"
	"strings"

	"github.com/google/cel-go/cel"
	"github.com/labstack/echo/v4"

	"github.com/repgenie/repgenie/plugin/markdown"
	apperr "github.com/repgenie/repgenie/internal/errors"
	"github.com/repgenie/repgenie/store"
)

type generateThreadIDRequest struct {
	Email string `json:"email"`
}

type conversationItem struct {
	UID           string `json:"uid"`
	ThreadID      string `json:"thread_id"`
	AgentType     string `json:"agent_type"`
	UsedAgent     bool   `json:"used_agent"`
	HumanMessage  string `json:"human_message"`
	AIMessage     string `json:"ai_message"`
	AIMessageHTML string `json:"ai_message_html,omitempty"`
	InputType     string `json:"input_type"`
	CreatedTs     int64  `json:"created_ts"`
}

type historyResponse struct {
	ThreadID      string             `json:"thread_id"`
	Conversations []conversationItem `json:"conversations"`
}

type clearMemoryResponse struct {
	ThreadID       string `json:"thread_id"`
	Cleared        bool   `json:"cleared"`
	EntriesDeleted int64  `json:"entries_deleted"`
}

// POST /generate_thread_id
//
// The thread id is the user's email, so re-login always lands the user
// back on the same conversation.
func (s *APIV1Service) GenerateThreadID(c echo.Context) error {
	var req generateThreadIDRequest
	if err := c.Bind(&req); err != nil {
		return replyError(c, apperr.InvalidArgument("malformed request body"))
	}

	email := strings.TrimSpace(strings.ToLower(req.Email))
	if _, err := mail.ParseAddress(email); err != nil {
		return replyError(c, apperr.InvalidArgument("invalid email address"))
	}

	return c.JSON(http.StatusOK, map[string]string{"thread_id": email})
}

// GET /conversation_history/:thread_id?limit=&filter=&render=
func (s *APIV1Service) GetConversationHistory(c echo.Context) error {
	threadID := c.Param("thread_id")
	if threadID == "" {
		return replyError(c, apperr.InvalidArgument("thread_id is required"))
	}

	find := &store.FindConversation{ThreadID: &threadID}
	if raw := c.QueryParam("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit <= 0 {
			return replyError(c, apperr.InvalidArgument("limit must be a positive integer"))
		}
		find.Limit = &limit
	}

	conversations, err := s.Store.ListConversations(c.Request().Context(), find)
	if err != nil {
		s.logger.Error("failed to list conversations",
			slog.String("thread_id", threadID), slog.String("error", err.Error()))
		return replyError(c, apperr.StorageUnavailable(err))
	}

	if filter := c.QueryParam("filter"); filter != "" {
		conversations, err = filterConversations(conversations, filter)
		if err != nil {
			return replyError(c, apperr.InvalidArgument("invalid filter expression"))
		}
	}

	renderHTML := c.QueryParam("render") == "html"
	items := make([]conversationItem, 0, len(conversations))
	for _, conv := range conversations {
		item := conversationItem{
			UID:          conv.UID,
			ThreadID:     conv.ThreadID,
			AgentType:    string(conv.AgentType),
			UsedAgent:    conv.UsedAgent,
			HumanMessage: conv.HumanMessage,
			AIMessage:    conv.AIMessage,
			InputType:    string(conv.InputType),
			CreatedTs:    conv.CreatedTs,
		}
		if renderHTML {
			if html, err := markdown.ToHTML(conv.AIMessage); err == nil {
				item.AIMessageHTML = html
			}
		}
		items = append(items, item)
	}

	return c.JSON(http.StatusOK, &historyResponse{ThreadID: threadID, Conversations: items})
}

// DELETE /clear_memory/:thread_id
func (s *APIV1Service) ClearMemory(c echo.Context) error {
	threadID := c.Param("thread_id")
	if threadID == "" {
		return replyError(c, apperr.InvalidArgument("thread_id is required"))
	}

	rows, err := s.Store.DeleteConversations(c.Request().Context(), &store.DeleteConversation{ThreadID: threadID})
	if err != nil {
		return replyError(c, apperr.StorageUnavailable(err))
	}

	s.logger.Info("conversation memory cleared",
		slog.String("thread_id", threadID), slog.Int64("rows", rows))
	return c.JSON(http.StatusOK, &clearMemoryResponse{ThreadID: threadID, Cleared: true, EntriesDeleted: rows})
}

// filterConversations evaluates a CEL expression per entry. Variables:
// agent_type, input_type, used_agent.
func filterConversations(conversations []*store.Conversation, filter string) ([]*store.Conversation, error) {
	env, err := cel.NewEnv(
		cel.Variable("agent_type", cel.StringType),
		cel.Variable("input_type", cel.StringType),
		cel.Variable("used_agent", cel.BoolType),
	)
	if err != nil {
		return nil, err
	}

	ast, issues := env.Compile(filter)
	if issues != nil && issues.Err() != nil {
		return nil, issues.Err()
	}
	prg, err := env.Program(ast)
	if err != nil {
		return nil, err
	}

	filtered := make([]*store.Conversation, 0, len(conversations))
	for _, conv := range conversations {
		out, _, err := prg.Eval(map[string]any{
			"agent_type": string(conv.AgentType),
			"input_type": string(conv.InputType),
			"used_agent": conv.UsedAgent,
		})
		if err != nil {
			return nil, err
		}
		if keep, ok := out.Value().(bool); ok && keep {
			filtered = append(filtered, conv)
		}
	}
	return filtered, nil
}
