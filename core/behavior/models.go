package behavior

import (
	"strings"
	"time"

	"github.com/darasani/shule/core"
)

// Note is one append-only behavior observation. Never mutated after append.
type Note struct {
	WithTeacher    string    `json:"with_teacher"`
	WithClassmates string    `json:"with_classmates"`
	Note           string    `json:"note"`
	RecordedAt     time.Time `json:"recorded_at"` // UTC
}

// NewNote records how a student behaved. Ratings default to "Neutral".
type NewNote struct {
	RollNo         string `json:"roll_no" validate:"required"`
	WithTeacher    string `json:"with_teacher"`
	WithClassmates string `json:"with_classmates"`
	Note           string `json:"note"`
}

func (nn *NewNote) Validate() error {
	nn.RollNo = core.CleanString(nn.RollNo)
	nn.WithTeacher = normalizeRating(nn.WithTeacher)
	nn.WithClassmates = normalizeRating(nn.WithClassmates)
	return core.Validate.Struct(nn)
}

func normalizeRating(s string) string {
	s = core.CleanString(s, true /* lower */)
	if s == "" {
		return "Neutral"
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
