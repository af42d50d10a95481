package conversation

import (
	"context"
	"errors"
	"fmt"
	"time"

	roomRepo "laohotel/database/repository/room"
	"laohotel/models"
	ai "laohotel/services/intelligence"
	"laohotel/services/metrics"

	"go.uber.org/zap"
)

// IntentDetector is the part of the intent classifier the booking flow needs.
type IntentDetector interface {
	IsBookingIntent(ctx context.Context, text string) bool
	IsPriceInquiry(text string) bool
	IsConfirmation(text string) bool
}

type DateParser interface {
	Parse(text string) (start, end time.Time, ok bool)
}

// BookingFlow moves a session through room choice, dates and confirmation. Every step
// reads availability fresh; the only write is the conditional booking on confirmation.
type BookingFlow struct {
	rooms       roomRepo.RoomRepository
	roomNumbers map[string]bool
	intents     IntentDetector
	dates       DateParser
	sessions    *SessionStore
	metrics     *metrics.Metrics
	logger      *zap.Logger
}

func NewBookingFlow(
	rooms roomRepo.RoomRepository,
	roomNumbers []string,
	intents IntentDetector,
	dates DateParser,
	sessions *SessionStore,
	m *metrics.Metrics,
	logger *zap.Logger,
) *BookingFlow {
	known := make(map[string]bool, len(roomNumbers))
	for _, n := range roomNumbers {
		known[n] = true
	}
	return &BookingFlow{
		rooms:       rooms,
		roomNumbers: known,
		intents:     intents,
		dates:       dates,
		sessions:    sessions,
		metrics:     m,
		logger:      logger,
	}
}

// Start offers the available rooms and opens a booking, unless nothing is free.
func (f *BookingFlow) Start(ctx context.Context, sessionID string) (string, string, error) {
	available, err := f.rooms.ListAvailable(ctx)
	if err != nil {
		return "", "", fmt.Errorf("list available rooms: %w", err)
	}
	if len(available) == 0 {
		return msgNoRoomsAvailable, models.SourceStatusCheck, nil
	}
	f.sessions.SetState(sessionID, models.StateAwaitingRoomChoice, &models.BookingDraft{})
	return roomSuggestion(available), models.SourceBookingSuggestion, nil
}

// Continue handles a message from a session that is mid-booking.
func (f *BookingFlow) Continue(ctx context.Context, sessionID string, state models.ConversationState, text string) (string, string, error) {
	if f.intents.IsPriceInquiry(text) {
		return focusReminder(state), models.SourceFocusOnBooking, nil
	}
	switch state {
	case models.StateAwaitingRoomChoice:
		return f.chooseRoom(ctx, sessionID, text)
	case models.StateAwaitingDates:
		return f.chooseDates(sessionID, text)
	case models.StateAwaitingBookingConfirmation:
		return f.confirm(ctx, sessionID, text)
	default:
		return "", "", fmt.Errorf("no booking step for state %s", state)
	}
}

func focusReminder(state models.ConversationState) string {
	switch state {
	case models.StateAwaitingRoomChoice:
		return msgFocusRoom
	case models.StateAwaitingDates:
		return msgFocusDates
	default:
		return msgFocusConfirmation
	}
}

// extractRoom returns the first number in text that names a configured room.
func (f *BookingFlow) extractRoom(text string) string {
	for _, tok := range ai.Tokenize(text) {
		if f.roomNumbers[tok] {
			return tok
		}
	}
	return ""
}

func (f *BookingFlow) chooseRoom(ctx context.Context, sessionID, text string) (string, string, error) {
	room := f.extractRoom(text)
	if room == "" {
		return msgInvalidRoom, models.SourceInvalidRoom, nil
	}

	details, err := f.rooms.Get(ctx, room)
	if err != nil && !errors.Is(err, roomRepo.ErrRoomNotFound) {
		return "", "", fmt.Errorf("get room %s: %w", room, err)
	}
	if details == nil || !details.IsAvailable() {
		available, err := f.rooms.ListAvailable(ctx)
		if err != nil {
			return "", "", fmt.Errorf("list available rooms: %w", err)
		}
		return roomUnavailable(room, available), models.SourceStatusCheck, nil
	}

	f.sessions.SetState(sessionID, models.StateAwaitingDates, &models.BookingDraft{Room: room})
	return dateRequest(room), models.SourceDateRequest, nil
}

func (f *BookingFlow) chooseDates(sessionID, text string) (string, string, error) {
	draft := f.sessions.PendingBooking(sessionID)
	start, end, ok := f.dates.Parse(text)
	if !ok || draft == nil || draft.Room == "" {
		return msgInvalidDate, models.SourceInvalidDate, nil
	}

	draft.StartDate, draft.EndDate = start, end
	f.sessions.SetState(sessionID, models.StateAwaitingBookingConfirmation, draft)
	return confirmationRequest(draft.Room, start, end), models.SourceConfirmationRequest, nil
}

// confirm always ends the booking: the session returns to NORMAL whatever the answer.
func (f *BookingFlow) confirm(ctx context.Context, sessionID, text string) (string, string, error) {
	draft := f.sessions.PendingBooking(sessionID)
	if draft == nil || draft.Room == "" || !draft.HasDates() {
		f.sessions.SetState(sessionID, models.StateNormal, nil)
		return msgNoDraft, models.SourceError, nil
	}

	if !f.intents.IsConfirmation(text) {
		f.sessions.Clear(sessionID)
		return msgCancelled, models.SourceBookingCancelled, nil
	}

	booked, err := f.rooms.BookIfAvailable(ctx, draft.Room, draft.StartDate, draft.EndDate, bookingNote(sessionID))
	f.sessions.Clear(sessionID)
	switch {
	case err != nil:
		f.metrics.BookingCommit(metrics.CommitError)
		f.logger.Error("Booking commit failed", zap.String("session_id", sessionID), zap.String("room", draft.Room), zap.Error(err))
		return msgBookingFailed, models.SourceError, nil
	case !booked:
		f.metrics.BookingCommit(metrics.CommitConflict)
		f.logger.Info("Room was taken before confirmation", zap.String("session_id", sessionID), zap.String("room", draft.Room))
		return msgBookingFailed, models.SourceError, nil
	}
	f.metrics.BookingCommit(metrics.CommitBooked)
	f.logger.Info("Room booked",
		zap.String("session_id", sessionID),
		zap.String("room", draft.Room),
		zap.String("start", draft.StartDate.Format(dateFormat)),
		zap.String("end", draft.EndDate.Format(dateFormat)),
	)
	return bookingConfirmed(draft.Room), models.SourceBookingConfirmed, nil
}
