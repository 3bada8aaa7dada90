package sqlite

import (
	"context"
	"strings"

	"github.com/pkg/errors"

	"github.com/repgenie/repgenie/store"
)

func (d *DB) CreateConversation(ctx context.Context, create *store.Conversation) (*store.Conversation, error) {
	fields := []string{"uid", "thread_id", "agent_type", "used_agent", "human_message", "ai_message", "input_type", "created_ts"}
	args := []any{create.UID, create.ThreadID, string(create.AgentType), create.UsedAgent, create.HumanMessage, create.AIMessage, string(create.InputType), create.CreatedTs}

	stmt := `INSERT INTO conversations (` + strings.Join(fields, ", ") + `)
		VALUES (` + placeholders(len(args)) + `)
		RETURNING id`
	if err := d.db.QueryRowContext(ctx, stmt, args...).Scan(&create.ID); err != nil {
		return nil, errors.Wrap(err, "failed to create conversation")
	}

	return create, nil
}

func (d *DB) ListConversations(ctx context.Context, find *store.FindConversation) ([]*store.Conversation, error) {
	where, args := []string{"1 = 1"}, []any{}

	if find.ID != nil {
		where, args = append(where, "id = "+placeholder(len(args)+1)), append(args, *find.ID)
	}
	if find.ThreadID != nil {
		where, args = append(where, "thread_id = "+placeholder(len(args)+1)), append(args, *find.ThreadID)
	}
	if find.CreatedDate != nil {
		where, args = append(where, "DATE(created_ts, 'unixepoch') = "+placeholder(len(args)+1)), append(args, *find.CreatedDate)
	}

	// Entries for a thread are append-only; ascending (created_ts, id) is
	// exactly arrival order. When a limit is set, keep the most recent
	// entries but still return them oldest first.
	query := `SELECT id, uid, thread_id, agent_type, used_agent, human_message, ai_message, input_type, created_ts
		FROM conversations WHERE ` + strings.Join(where, " AND ") + ` ORDER BY created_ts ASC, id ASC`
	if find.Limit != nil {
		query = `SELECT * FROM (` +
			`SELECT id, uid, thread_id, agent_type, used_agent, human_message, ai_message, input_type, created_ts
			FROM conversations WHERE ` + strings.Join(where, " AND ") + ` ORDER BY created_ts DESC, id DESC LIMIT ` + placeholder(len(args)+1) +
			`) ORDER BY created_ts ASC, id ASC`
		args = append(args, *find.Limit)
	}

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list conversations")
	}
	defer rows.Close()

	list := make([]*store.Conversation, 0)
	for rows.Next() {
		c := &store.Conversation{}
		var agentType, inputType string
		if err := rows.Scan(&c.ID, &c.UID, &c.ThreadID, &agentType, &c.UsedAgent, &c.HumanMessage, &c.AIMessage, &inputType, &c.CreatedTs); err != nil {
			return nil, errors.Wrap(err, "failed to scan conversation")
		}
		c.AgentType = store.AgentType(agentType)
		c.InputType = store.InputType(inputType)
		list = append(list, c)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to iterate conversations")
	}

	return list, nil
}

func (d *DB) DeleteConversations(ctx context.Context, delete *store.DeleteConversation) (int64, error) {
	result, err := d.db.ExecContext(ctx, `DELETE FROM conversations WHERE thread_id = `+placeholder(1), delete.ThreadID)
	if err != nil {
		return 0, errors.Wrap(err, "failed to delete conversations")
	}
	// Clearing an already-empty thread is a no-op, not an error.
	rows, _ := result.RowsAffected()
	return rows, nil
}
