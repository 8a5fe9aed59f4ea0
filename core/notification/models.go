package notification

import (
	"time"

	"github.com/darasani/shule/core"
)

// Options tunes what one parent notification covers.
type Options struct {
	// Day restricts the attendance/diary sections to one weekday;
	// empty means the most recent days, newest first.
	Day string `json:"day"`
	// Date picks a specific daily report; empty means the latest.
	Date string `json:"date"`
	// To overrides the student's stored parent emails.
	To []string `json:"to" validate:"omitempty,dive,required,email"`
	// PreviewOnly compiles without dispatching; an empty recipient
	// list is then permitted and surfaced as-is.
	PreviewOnly bool `json:"preview_only"`
}

func (o *Options) Validate() error {
	cleaned := o.To[:0]
	for _, e := range o.To {
		if e = core.CleanString(e, true /* lower */); e != "" {
			cleaned = append(cleaned, e)
		}
	}
	o.To = cleaned
	return core.Validate.Struct(o)
}

// Notification is a compiled subject/body pair with its resolved recipients.
// Preview marks a notification that was never handed to the mail transport.
type Notification struct {
	ID         string    `json:"id"`
	RollNo     string    `json:"roll_no"`
	Subject    string    `json:"subject"`
	Body       string    `json:"body"`
	To         []string  `json:"to"`
	Preview    bool      `json:"preview"`
	CompiledAt time.Time `json:"compiled_at"` // UTC
}
