package model

import "strings"

// Canonical appointment statuses. Persisted status is free text for
// historical reasons, so every consumer goes through Classify instead of
// comparing raw strings.
const (
	StatusScheduled      = "Scheduled"
	StatusCheckedIn      = "Checked-in"
	StatusInConsultation = "In Consultation"
	StatusCompleted      = "Completed"
	StatusCancelled      = "Cancelled"
)

// Classification is the canonical tag derived from a raw status string.
type Classification int

const (
	ClassUnknown Classification = iota
	ClassScheduled
	ClassCheckedIn
	ClassInConsultation
	ClassCompleted
	ClassCancelled
)

// statusVariants maps every known historical spelling, lower-cased, to its
// classification. "check-in" shipped from an older front-desk build.
var statusVariants = map[string]Classification{
	"scheduled":       ClassScheduled,
	"checked-in":      ClassCheckedIn,
	"check-in":        ClassCheckedIn,
	"in consultation": ClassInConsultation,
	"completed":       ClassCompleted,
	"cancelled":       ClassCancelled,
}

// Classify normalizes a raw status string. Unrecognized values come back as
// ClassUnknown and must never be treated as an error downstream.
func Classify(raw string) Classification {
	if c, ok := statusVariants[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return c
	}
	return ClassUnknown
}

func (c Classification) String() string {
	switch c {
	case ClassScheduled:
		return StatusScheduled
	case ClassCheckedIn:
		return StatusCheckedIn
	case ClassInConsultation:
		return StatusInConsultation
	case ClassCompleted:
		return StatusCompleted
	case ClassCancelled:
		return StatusCancelled
	default:
		return "Unknown"
	}
}

// InLiveQueue reports whether an appointment with this classification
// belongs on the receptionist live queue and the doctor waiting queue.
func (c Classification) InLiveQueue() bool {
	return c == ClassCheckedIn || c == ClassInConsultation || c == ClassCompleted
}

// OnTodayList reports whether the appointment belongs on the receptionist
// today-list. Cancelled and unknown statuses are excluded.
func (c Classification) OnTodayList() bool {
	return c == ClassScheduled || c.InLiveQueue()
}

// Upcoming reports whether the appointment belongs on the doctor's upcoming
// list. Checked-in patients appear here and on the waiting queue at once.
func (c Classification) Upcoming() bool {
	return c == ClassScheduled || c == ClassCheckedIn
}

// QueueDisplayStatus is the presentation label for live-queue entries. It is
// derived state and must never be written back to the store.
func QueueDisplayStatus(c Classification) string {
	switch c {
	case ClassInConsultation:
		return "In Consultation"
	case ClassCompleted:
		return "Ready for Billing"
	default:
		return "Waiting"
	}
}
