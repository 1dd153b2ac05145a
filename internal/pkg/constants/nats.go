package constants

// NATS Subjects
const (
	// Request lifecycle events
	SubjectRequestCreated   = "request.created"
	SubjectRequestAccepted  = "request.accepted"
	SubjectRequestArrived   = "request.arrived"
	SubjectRequestBilled    = "request.billed"
	SubjectRequestCompleted = "request.completed"
	SubjectRequestCancelled = "request.cancelled"

	// Cross node room fan-out
	SubjectRoomEmit = "dispatch.room.emit"
)

// Asynq task types
const (
	TaskRequestExpire = "request:expire"
)
