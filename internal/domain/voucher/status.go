package voucher

import (
	"strings"

	"voucher-engine/internal/pkg/errs"
)

type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
	StatusClaimed   Status = "claimed"
	StatusRedeemed  Status = "redeemed"
	StatusExpired   Status = "expired"
	StatusSuspended Status = "suspended"
)

// AllStatuses is in lifecycle order.
var AllStatuses = []Status{
	StatusDraft,
	StatusPublished,
	StatusClaimed,
	StatusRedeemed,
	StatusExpired,
	StatusSuspended,
}

// Forward transitions only. Suspended is entered through Suspend and is
// neither a source nor a target here.
var transitions = map[Status][]Status{
	StatusDraft:     {StatusPublished},
	StatusPublished: {StatusClaimed, StatusExpired},
	StatusClaimed:   {StatusRedeemed, StatusExpired},
	StatusRedeemed:  {StatusExpired},
	StatusExpired:   {},
	StatusSuspended: {},
}

func ParseStatus(s string) (Status, error) {
	st := Status(strings.ToLower(strings.TrimSpace(s)))
	if !st.IsValid() {
		return "", errs.Reason(ErrInvalidStatus, "unknown voucher status %q", s)
	}
	return st, nil
}

func (s Status) IsValid() bool {
	_, ok := transitions[s]
	return ok
}

func (s Status) String() string {
	return string(s)
}

func (s Status) AllowedTargets() []Status {
	out := make([]Status, len(transitions[s]))
	copy(out, transitions[s])
	return out
}

func (s Status) CanTransitionTo(target Status) bool {
	for _, t := range transitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

func (s Status) IsTerminal() bool {
	return s == StatusExpired
}

// IsLive covers the states in which a voucher can be used.
func (s Status) IsLive() bool {
	return s == StatusPublished || s == StatusClaimed || s == StatusRedeemed
}

// CanSuspend reports whether an administrative suspension may start here.
func (s Status) CanSuspend() bool {
	return s.IsValid() && !s.IsTerminal() && s != StatusSuspended
}

// ValidateTransition names the current state and the allowed set on failure.
func ValidateTransition(current, target Status) error {
	if current.CanTransitionTo(target) {
		return nil
	}
	return errs.Reason(ErrInvalidTransition,
		"cannot transition voucher from %s to %s; allowed: [%s]",
		current, target, joinStatuses(current.AllowedTargets()))
}

func joinStatuses(ss []Status) string {
	parts := make([]string, len(ss))
	for i, s := range ss {
		parts[i] = string(s)
	}
	return strings.Join(parts, ", ")
}
