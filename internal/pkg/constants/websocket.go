package constants

// Server to client events
const (
	EventError            = "error"
	EventNewRequest       = "new_request"
	EventRequestAccepted  = "request_accepted"
	EventStatusChanged    = "status_changed"
	EventTrackProvider    = "track_provider"
	EventBillReceived     = "bill_received"
	EventRequestCancelled = "request_cancelled"
	EventOTPVerified      = "otp_verified"
	EventPaymentConfirmed = "payment_confirmed"
	EventNewAnnouncement  = "new_announcement"
	EventReceiveMessage   = "receive_message"
	EventRequestState     = "request_state"
	EventJoined           = "joined"
)

// Client to server events
const (
	EventJoinRequest  = "join_request"
	EventLeaveRequest = "leave_request"
	EventSendMessage  = "send_message"
	EventReconcile    = "reconcile"
	// EventTrackProvider is used in both directions
)

// WebSocket error codes
const (
	ErrorInvalidFormat     = "invalid_format"
	ErrorValidationFailed  = "validation_failed"
	ErrorUnauthorized      = "unauthorized"
	ErrorForbidden         = "forbidden"
	ErrorInternalError     = "internal_error"
	ErrorRateLimitExceeded = "rate_limit_exceeded"
	ErrorInvalidLocation   = "invalid_location"
	ErrorRequestNotFound   = "request_not_found"
	ErrorUnknownEvent      = "unknown_event"
)

// Room name prefixes
const (
	RoomUserPrefix    = "user:"
	RoomRequestPrefix = "request:"
)
