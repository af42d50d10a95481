package conversation

import (
	"context"
	"strings"
	"time"

	chatRepo "laohotel/database/repository/chat"
	"laohotel/models"
	ai "laohotel/services/intelligence"
	"laohotel/services/metrics"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const historyWriteTimeout = 5 * time.Second

type Retriever interface {
	ContextFor(ctx context.Context, query string) string
}

type Answerer interface {
	Answer(ctx context.Context, query, ragContext string) (reply, source string)
}

// Orchestrator answers one user message: it continues a booking in progress, starts one,
// or falls back to retrieval plus generation. Turns of the same session never overlap.
type Orchestrator struct {
	flow      *BookingFlow
	sessions  *SessionStore
	intents   IntentDetector
	retriever Retriever
	answerer  Answerer
	history   chatRepo.ChatRepository
	locks     *keyedMutex
	metrics   *metrics.Metrics
	logger    *zap.Logger
}

func NewOrchestrator(
	flow *BookingFlow,
	sessions *SessionStore,
	intents IntentDetector,
	retriever Retriever,
	answerer Answerer,
	history chatRepo.ChatRepository,
	m *metrics.Metrics,
	logger *zap.Logger,
) *Orchestrator {
	return &Orchestrator{
		flow:      flow,
		sessions:  sessions,
		intents:   intents,
		retriever: retriever,
		answerer:  answerer,
		history:   history,
		locks:     newKeyedMutex(),
		metrics:   m,
		logger:    logger,
	}
}

// Ask runs one turn. An empty sessionID starts a new session; the id used is returned.
func (o *Orchestrator) Ask(ctx context.Context, text, sessionID string) models.Answer {
	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	unlock := o.locks.Lock(sessionID)
	defer unlock()

	reply, source := o.turn(ctx, sessionID, text)
	o.persist(ctx, sessionID, text, reply)
	o.metrics.Turn(source)
	return models.Answer{Reply: reply, Source: source, SessionID: sessionID}
}

// ClearSession drops any booking in progress for the session.
func (o *Orchestrator) ClearSession(sessionID string) bool {
	unlock := o.locks.Lock(sessionID)
	defer unlock()
	return o.sessions.Clear(sessionID)
}

func (o *Orchestrator) turn(ctx context.Context, sessionID, text string) (reply, source string) {
	defer func() {
		if r := recover(); r != nil {
			o.logger.Error("Panic while answering", zap.String("session_id", sessionID), zap.Any("panic", r), zap.Stack("stack"))
			reply, source = msgGenericError, models.SourceError
		}
	}()

	normalized := ai.Normalize(text)
	state := o.sessions.State(sessionID)

	var err error
	switch {
	case state != models.StateNormal:
		reply, source, err = o.flow.Continue(ctx, sessionID, state, normalized)
	case o.intents.IsBookingIntent(ctx, strings.Join(ai.Tokenize(normalized), " ")):
		reply, source, err = o.flow.Start(ctx, sessionID)
	default:
		ragContext := o.retriever.ContextFor(ctx, normalized)
		reply, source = o.answerer.Answer(ctx, normalized, ragContext)
	}
	if err != nil {
		o.logger.Error("Turn failed", zap.String("session_id", sessionID), zap.Stringer("state", state), zap.Error(err))
		return msgGenericError, models.SourceError
	}
	return reply, source
}

// persist logs both sides of the turn. Failures never reach the user.
func (o *Orchestrator) persist(ctx context.Context, sessionID, userText, reply string) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), historyWriteTimeout)
	defer cancel()

	if err := o.history.Append(ctx, sessionID, models.RoleUser, userText); err != nil {
		o.logger.Error("Failed to write chat history", zap.String("session_id", sessionID), zap.Error(err))
		return
	}
	if err := o.history.Append(ctx, sessionID, models.RoleAssistant, reply); err != nil {
		o.logger.Error("Failed to write chat history", zap.String("session_id", sessionID), zap.Error(err))
	}
}
