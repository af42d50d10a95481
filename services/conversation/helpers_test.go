package conversation

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"laohotel/database"
	chatRepo "laohotel/database/repository/chat"
	roomRepo "laohotel/database/repository/room"
	"laohotel/models"
	"laohotel/services/dates"
	"laohotel/services/intent"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubRetriever struct {
	context string
	queries []string
}

func (s *stubRetriever) ContextFor(_ context.Context, query string) string {
	s.queries = append(s.queries, query)
	return s.context
}

type stubAnswerer struct {
	reply, source string
	panicWith     any
	gotContext    string
}

func (s *stubAnswerer) Answer(_ context.Context, _ string, ragContext string) (string, string) {
	if s.panicWith != nil {
		panic(s.panicWith)
	}
	s.gotContext = ragContext
	return s.reply, s.source
}

type failingHistory struct {
	chatRepo.ChatRepository
	mu    sync.Mutex
	calls int
}

func (f *failingHistory) Append(context.Context, string, string, string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return errors.New("disk full")
}

type harness struct {
	db         *sql.DB
	flow       *BookingFlow
	classifier *intent.Classifier
	orch       *Orchestrator
	sessions   *SessionStore
	rooms      roomRepo.RoomRepository
	history    chatRepo.ChatRepository
	retriever  *stubRetriever
	answerer   *stubAnswerer
}

var testRooms = []string{"101", "102", "201"}

func newHarness(t *testing.T, rooms ...string) *harness {
	t.Helper()
	db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "hotel.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	roomStore := roomRepo.NewSQLiteRoomRepo(db)
	require.NoError(t, roomStore.Seed(context.Background(), rooms))

	classifier := intent.NewClassifier(context.Background(), intent.Options{
		BookingKeywords:      []string{"ຈອງ", "book", "reserve", "booking", "reservation", "ຫ້ອງວ່າງ"},
		ConfirmationKeywords: []string{"yes", "ok", "y", "ແມ່ນ", "ຕົກລົງ", "confirm", "ແມ່ນແລ້ວ"},
		DenialKeywords:       []string{"no", "cancel", "ບໍ່", "ຍົກເລີກ"},
		PriceKeywords:        []string{"ລາຄາ", "price", "cost", "ເທົ່າໃດ", "how much", "ຄ່າຫ້ອງ", "ຄ່າໃຊ້ຈ່າຍ"},
		SimilarityThreshold:  0.65,
	}, nil, zap.NewNop())
	parser := dates.NewParser([]string{"tomorrow", "ມື້ອື່ນ"}).WithClock(func() time.Time {
		return time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	})

	sessions := NewSessionStore(0)
	flow := NewBookingFlow(roomStore, testRooms, classifier, parser, sessions, nil, zap.NewNop())
	h := &harness{
		db:         db,
		flow:       flow,
		classifier: classifier,
		sessions:   sessions,
		rooms:      roomStore,
		history:    chatRepo.NewSQLiteChatRepo(db),
		retriever:  &stubRetriever{context: "Blue Lagoon is 7 km from town"},
		answerer:   &stubAnswerer{reply: "ວັງວຽງສວຍງາມ", source: "RAG_TEST"},
	}
	h.orch = NewOrchestrator(flow, sessions, classifier, h.retriever, h.answerer, h.history, nil, zap.NewNop())
	return h
}

func (h *harness) ask(t *testing.T, sessionID, text string) models.Answer {
	t.Helper()
	return h.orch.Ask(context.Background(), text, sessionID)
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
