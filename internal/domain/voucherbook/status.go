package voucherbook

import (
	"fmt"
	"strings"

	"voucher-engine/internal/pkg/errs"
)

type Status string

const (
	StatusDraft         Status = "draft"
	StatusReadyForPrint Status = "ready_for_print"
	StatusPublished     Status = "published"
	StatusArchived      Status = "archived"
)

var transitions = map[Status][]Status{
	StatusDraft:         {StatusReadyForPrint, StatusArchived},
	StatusReadyForPrint: {StatusPublished, StatusDraft, StatusArchived},
	StatusPublished:     {StatusArchived},
	StatusArchived:      {},
}

func ParseStatus(s string) (Status, error) {
	st := Status(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := transitions[st]; !ok {
		return "", errs.Reason(ErrInvalidStatus, "unknown book status %q", s)
	}
	return st, nil
}

func (s Status) String() string { return string(s) }

func (s Status) AllowedTargets() []Status {
	out := make([]Status, len(transitions[s]))
	copy(out, transitions[s])
	return out
}

// TransitionCheck explains a rejected transition by listing what is allowed.
type TransitionCheck struct {
	Allowed bool
	Reason  string
}

func ValidateTransition(current, target Status) TransitionCheck {
	for _, t := range transitions[current] {
		if t == target {
			return TransitionCheck{Allowed: true}
		}
	}
	names := make([]string, 0, len(transitions[current]))
	for _, t := range transitions[current] {
		names = append(names, string(t))
	}
	return TransitionCheck{
		Reason: fmt.Sprintf("cannot transition book from %s to %s; allowed: [%s]",
			current, target, strings.Join(names, ", ")),
	}
}

// RequiresReadiness marks the targets that put a book in front of a printer.
func (s Status) RequiresReadiness() bool {
	return s == StatusReadyForPrint || s == StatusPublished
}
