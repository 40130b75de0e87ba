package enums

import "fmt"

// QuoteStatus tracks the lifecycle of a generated quote document.
type QuoteStatus string

const (
	QuoteStatusDraft    QuoteStatus = "draft"
	QuoteStatusSent     QuoteStatus = "sent"
	QuoteStatusAccepted QuoteStatus = "accepted"
	QuoteStatusRejected QuoteStatus = "rejected"
	QuoteStatusExpired  QuoteStatus = "expired"
)

var validQuoteStatuses = []QuoteStatus{
	QuoteStatusDraft,
	QuoteStatusSent,
	QuoteStatusAccepted,
	QuoteStatusRejected,
	QuoteStatusExpired,
}

// quoteStatusTransitions lists the allowed next states for each status.
// Terminal states map to an empty set.
var quoteStatusTransitions = map[QuoteStatus][]QuoteStatus{
	QuoteStatusDraft:    {QuoteStatusSent, QuoteStatusExpired},
	QuoteStatusSent:     {QuoteStatusAccepted, QuoteStatusRejected, QuoteStatusExpired},
	QuoteStatusAccepted: {},
	QuoteStatusRejected: {},
	QuoteStatusExpired:  {},
}

// String implements fmt.Stringer.
func (s QuoteStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known QuoteStatus.
func (s QuoteStatus) IsValid() bool {
	for _, candidate := range validQuoteStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// CanTransitionTo reports whether the status may move to the target state.
func (s QuoteStatus) CanTransitionTo(target QuoteStatus) bool {
	for _, candidate := range quoteStatusTransitions[s] {
		if candidate == target {
			return true
		}
	}
	return false
}

// ParseQuoteStatus converts raw input into a QuoteStatus.
func ParseQuoteStatus(value string) (QuoteStatus, error) {
	for _, candidate := range validQuoteStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid quote status %q", value)
}
