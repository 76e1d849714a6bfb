package booking

import (
	"errors"
	"fmt"
	"strings"

	"github.com/wolfman30/jwbeauty-studio/internal/calendar"
	"github.com/wolfman30/jwbeauty-studio/internal/i18n"
)

// ErrUnknownField is returned by Draft.Set for names outside the form.
var ErrUnknownField = errors.New("booking: unknown field")

// TimeSlot is the preferred part of the day.
type TimeSlot string

const (
	SlotMorning   TimeSlot = "morning"
	SlotAfternoon TimeSlot = "afternoon"
	SlotEvening   TimeSlot = "evening"
)

// TimeSlots lists the slots in display order.
var TimeSlots = []TimeSlot{SlotMorning, SlotAfternoon, SlotEvening}

// Valid reports whether s is one of the three slots.
func (s TimeSlot) Valid() bool {
	switch s {
	case SlotMorning, SlotAfternoon, SlotEvening:
		return true
	}
	return false
}

// LabelKey is the short radio-button label.
func (s TimeSlot) LabelKey() (i18n.Key, bool) {
	switch s {
	case SlotMorning:
		return i18n.KeyFormTimeMorning, true
	case SlotAfternoon:
		return i18n.KeyFormTimeAfternoon, true
	case SlotEvening:
		return i18n.KeyFormTimeEvening, true
	}
	return "", false
}

// PhraseKey is the full phrase, with hours, used in the WhatsApp message.
func (s TimeSlot) PhraseKey() (i18n.Key, bool) {
	switch s {
	case SlotMorning:
		return i18n.KeyFormTimeOptionMorning, true
	case SlotAfternoon:
		return i18n.KeyFormTimeOptionAfternoon, true
	case SlotEvening:
		return i18n.KeyFormTimeOptionEvening, true
	}
	return "", false
}

// Draft is the in-progress booking request of one visitor. Service is the
// human-readable label the visitor picked, not a catalog id.
type Draft struct {
	Name    string   `json:"name" validate:"required"`
	Phone   string   `json:"phone" validate:"required"`
	Service string   `json:"service" validate:"required"`
	Date    string   `json:"date" validate:"required,isodate"`
	Time    TimeSlot `json:"time" validate:"required,oneof=morning afternoon evening"`
}

// NewDraft returns the default draft: today's date and nothing else.
func NewDraft(today calendar.Date) Draft {
	return Draft{Date: today.String()}
}

// Set updates one field by its form name.
func (d *Draft) Set(field, value string) error {
	switch field {
	case "name":
		d.Name = value
	case "phone":
		d.Phone = value
	case "service":
		d.Service = value
	case "date":
		d.Date = value
	case "time":
		d.Time = TimeSlot(value)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return nil
}

// Trimmed returns a copy with surrounding whitespace removed from every field.
func (d Draft) Trimmed() Draft {
	return Draft{
		Name:    strings.TrimSpace(d.Name),
		Phone:   strings.TrimSpace(d.Phone),
		Service: strings.TrimSpace(d.Service),
		Date:    strings.TrimSpace(d.Date),
		Time:    TimeSlot(strings.TrimSpace(string(d.Time))),
	}
}
