package chatdesk

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// CompletionClient abstracts the hosted language-model completion service.
// Complete sends the full conversation history, in order, and returns the
// generated reply text. A transport or service failure is returned as-is; a
// successful response without usable content is reported by wrapping
// ErrMalformedCompletion so the caller can tell the two apart.
type CompletionClient interface {
	Complete(ctx context.Context, history []Message) (string, error)
}

// ConversationManager orchestrates chat turns: it appends the user message to
// the session, calls the completion service with the accumulated history, and
// commits the assistant reply back to the session.
type ConversationManager struct {
	store         *SessionStore
	client        CompletionClient
	fallbackReply string
	timeout       time.Duration
	logger        *slog.Logger
}

// NewConversationManager wires a manager to its session store and completion
// client. fallbackReply is the text committed when the completion service
// answers with unusable content; timeout bounds each upstream call.
func NewConversationManager(store *SessionStore, client CompletionClient, fallbackReply string, timeout time.Duration, logger *slog.Logger) *ConversationManager {
	if logger == nil {
		logger = slog.Default()
	}
	return &ConversationManager{
		store:         store,
		client:        client,
		fallbackReply: fallbackReply,
		timeout:       timeout,
		logger:        logger,
	}
}

// HandleChatTurn runs one conversational round-trip for the given session and
// returns the assistant reply. The caller validates that sessionID and
// userText are non-empty before invoking this.
//
// Turns on the same session are serialized: at most one is in flight per
// session id, so the history keeps strict user/assistant alternation. Turns
// on distinct sessions proceed independently.
//
// A transport-level completion failure surfaces as ErrUpstream with only the
// user message appended, leaving the session ready for a retry. A malformed
// completion is recovered locally: the configured fallback reply is committed
// to history and the turn succeeds from the caller's perspective.
func (m *ConversationManager) HandleChatTurn(ctx context.Context, sessionID, userText string) (string, error) {
	sess := m.store.GetOrCreate(sessionID)

	sess.turnMu.Lock()
	defer sess.turnMu.Unlock()

	if err := m.store.Append(sessionID, UserMessage(userText)); err != nil {
		return "", err
	}

	callCtx := ctx
	if m.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, m.timeout)
		defer cancel()
	}

	reply, err := m.client.Complete(callCtx, sess.History())
	switch {
	case err == nil:
	case errors.Is(err, ErrMalformedCompletion):
		// Availability over correctness: a broken upstream response must not
		// break the user-visible turn. The fallback is committed to history
		// so the turn still counts as one full round-trip.
		m.logger.Warn("unusable completion, substituting fallback reply",
			"sessionID", sessionID, "error", err)
		reply = m.fallbackReply
	default:
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	if err := m.store.Append(sessionID, AssistantMessage(reply)); err != nil {
		return "", err
	}
	return reply, nil
}
