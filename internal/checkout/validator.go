package checkout

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/Gaut2812/TECHXAURA-2K26-main/internal/model"
	"github.com/pkg/errors"
	"golang.org/x/text/cases"
)

var ErrMissingPaymentProof = errors.New("please upload payment screenshot")

type TeamSizeError struct {
	EventID   string
	EventName string
	Size      int
	Min       int
	Max       int
}

func (e *TeamSizeError) Error() string {
	if e.Size < e.Min {
		return fmt.Sprintf("Minimum %d team members required for %s", e.Min, e.EventName)
	}
	return fmt.Sprintf("Maximum %d team members allowed for %s", e.Max, e.EventName)
}

func (e *TeamSizeError) TooSmall() bool {
	return e.Size < e.Min
}

// ParticipantConflictError names participants registered in two events of the same time slot.
type ParticipantConflictError struct {
	Slot   model.TimeSlot
	Names  []string
	Events []string
}

func (e *ParticipantConflictError) Error() string {
	return fmt.Sprintf("Conflict: %s is registered in %s at the same time!",
		strings.Join(e.Names, ", "), strings.Join(e.Events, " & "))
}

// MinTeamSize checks that the roster reaches the event minimum.
func MinTeamSize(item model.CartItem) error {
	if len(item.TeamMembers) < item.Event.TeamSizeMin {
		return teamSizeError(item.Event, len(item.TeamMembers))
	}
	return nil
}

// Roster checks a roster against both team size bounds before it is saved.
func Roster(event *model.Event, members []model.TeamMember) error {
	if len(members) < event.TeamSizeMin || len(members) > event.TeamSizeMax {
		return teamSizeError(event, len(members))
	}
	return nil
}

func teamSizeError(event *model.Event, size int) *TeamSizeError {
	return &TeamSizeError{
		EventID:   event.ID,
		EventName: event.Name,
		Size:      size,
		Min:       event.TeamSizeMin,
		Max:       event.TeamSizeMax,
	}
}

type slotEntry struct {
	eventName string
	names     []string
}

// ParticipantConflicts reports the first time slot, in cart order, where one
// participant appears in the rosters of two different events. Exempt slots are skipped.
func ParticipantConflicts(items []model.CartItem) error {
	slots := make([]model.TimeSlot, 0)
	groups := make(map[model.TimeSlot][]slotEntry)

	for _, item := range items {
		slot := item.Event.TimeSlot
		if slot.Exempt() {
			continue
		}
		if _, ok := groups[slot]; !ok {
			slots = append(slots, slot)
		}

		names := make([]string, 0, len(item.TeamMembers))
		for _, m := range item.TeamMembers {
			if n := normalizeName(m.Name); n != "" {
				names = append(names, n)
			}
		}
		groups[slot] = append(groups[slot], slotEntry{eventName: item.Event.Name, names: names})
	}

	for _, slot := range slots {
		entries := groups[slot]
		if len(entries) < 2 {
			continue
		}

		seen := make(map[string]bool)
		dup := make(map[string]bool)
		duplicates := make([]string, 0)
		for _, entry := range entries {
			// a name repeated inside one roster is not a cross-event conflict
			local := make(map[string]bool, len(entry.names))
			for _, name := range entry.names {
				if local[name] {
					continue
				}
				local[name] = true
				if seen[name] {
					if !dup[name] {
						dup[name] = true
						duplicates = append(duplicates, name)
					}
					continue
				}
				seen[name] = true
			}
		}

		if len(duplicates) == 0 {
			continue
		}

		eventNames := make([]string, 0, len(entries))
		for _, entry := range entries {
			for _, name := range entry.names {
				if dup[name] {
					eventNames = append(eventNames, entry.eventName)
					break
				}
			}
		}
		for i := range duplicates {
			duplicates[i] = displayName(duplicates[i])
		}
		return &ParticipantConflictError{Slot: slot, Names: duplicates, Events: eventNames}
	}

	return nil
}

func PaymentProof(ref string) error {
	if strings.TrimSpace(ref) == "" {
		return ErrMissingPaymentProof
	}
	return nil
}

// Validate runs every submission gate in order: team sizes, participant conflicts,
// payment proof. The first failure is returned.
func Validate(items []model.CartItem, paymentProof string) error {
	for _, item := range items {
		if err := MinTeamSize(item); err != nil {
			return err
		}
	}
	if err := ParticipantConflicts(items); err != nil {
		return err
	}
	return PaymentProof(paymentProof)
}

// normalizeName case-folds a trimmed name. Casers hold state, so one is built per call.
func normalizeName(name string) string {
	return cases.Fold().String(strings.TrimSpace(name))
}

// displayName upper-cases every letter that starts a word, where a word is a run of
// letters, digits and underscores. "o'brien" becomes "O'Brien".
func displayName(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	prevWord := false
	for _, r := range name {
		word := isWordRune(r)
		if word && !prevWord {
			r = unicode.ToUpper(r)
		}
		b.WriteRune(r)
		prevWord = word
	}
	return b.String()
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
