package order

import "errors"

// Status is the closed set of order lifecycle states.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusPreparing Status = "PREPARING"
	StatusInTransit Status = "IN_TRANSIT"
	StatusDelivered Status = "DELIVERED"
	StatusCancelled Status = "CANCELLED"
)

var ErrInvalidStatus = errors.New("invalid order status")

func (s Status) String() string {
	return string(s)
}

// ParseStatus converts a wire status into a Status.
// The gateway sometimes spells IN_TRANSIT as OUT_FOR_DELIVERY.
func ParseStatus(v string) (Status, error) {
	switch v {
	case StatusPending.String():
		return StatusPending, nil
	case StatusConfirmed.String():
		return StatusConfirmed, nil
	case StatusPreparing.String():
		return StatusPreparing, nil
	case StatusInTransit.String(), "OUT_FOR_DELIVERY":
		return StatusInTransit, nil
	case StatusDelivered.String():
		return StatusDelivered, nil
	case StatusCancelled.String():
		return StatusCancelled, nil
	default:
		return "", ErrInvalidStatus
	}
}

// Terminal reports whether no further transitions are allowed from s.
func (s Status) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// Next returns the following pipeline status. ok is false for terminal statuses.
func (s Status) Next() (next Status, ok bool) {
	switch s {
	case StatusPending:
		return StatusConfirmed, true
	case StatusConfirmed:
		return StatusPreparing, true
	case StatusPreparing:
		return StatusInTransit, true
	case StatusInTransit:
		return StatusDelivered, true
	default:
		return s, false
	}
}

// rank is the position of a status on the delivery pipeline. Cancellation
// freezes progress, so CANCELLED carries no rank of its own.
func (s Status) rank() int {
	switch s {
	case StatusPending:
		return 0
	case StatusConfirmed:
		return 1
	case StatusPreparing:
		return 2
	case StatusInTransit:
		return 3
	case StatusDelivered:
		return 4
	default:
		return -1
	}
}
