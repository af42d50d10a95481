package models

// Source tags reported with every reply.
const (
	SourceBookingSuggestion   = "BOOKING_SUGGESTION"
	SourceInvalidRoom         = "INVALID_ROOM"
	SourceStatusCheck         = "STATUS_CHECK"
	SourceDateRequest         = "DATE_REQUEST"
	SourceInvalidDate         = "INVALID_DATE"
	SourceConfirmationRequest = "CONFIRMATION_REQUEST"
	SourceBookingConfirmed    = "BOOKING_CONFIRMED"
	SourceBookingCancelled    = "BOOKING_CANCELLED"
	SourceFocusOnBooking      = "FOCUS_ON_BOOKING"
	SourceError               = "ERROR"

	SourceRAGPrefix            = "RAG_"
	SourceContextOnly          = "RAG_CONTEXT_ONLY"
	SourceContextOnlyTimeout   = "RAG_CONTEXT_ONLY_TIMEOUT"
	SourceLLMError             = "LLM_ERROR"
	SourceLLMResourceExhausted = "LLM_RESOURCE_EXHAUSTED"
)
