package timetable

import (
	"sort"
	"strings"
	"time"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/darasani/shule/core"
)

// SlotKind tags a TimeSlot as a taught period or an inserted break.
type SlotKind string

const (
	KindAcademic SlotKind = "ACADEMIC"
	KindBreak    SlotKind = "BREAK"
)

// State is the explicit two-phase lifecycle of a grade's timetable.
// Once FINALIZED, the timetable can never be rebuilt or edited.
type State string

const (
	StateUnfinalized State = "UNFINALIZED"
	StateFinalized   State = "FINALIZED"
)

// Break labels recognized by the default configuration.
const (
	LabelShortBreak = "Short Break"
	LabelLunchBreak = "Lunch Break"
	LabelGamesBreak = "Games Break"
)

// TimeSlot is a single period within one grade's day.
// ACADEMIC slots carry subject/teacher/room; BREAK slots carry only a label.
type TimeSlot struct {
	Start   string   `json:"start"` // "09:00"
	End     string   `json:"end"`
	Kind    SlotKind `json:"kind"`
	Subject string   `json:"subject,omitempty"`
	Teacher string   `json:"teacher,omitempty"`
	Room    string   `json:"room,omitempty"`
	Label   string   `json:"label,omitempty"`
}

// Period is an intended academic period, before clock times are assigned.
type Period struct {
	Subject      string `json:"subject" validate:"required"`
	Teacher      string `json:"teacher" validate:"required"`
	Room         string `json:"room"`
	DurationMins int    `json:"duration_mins" validate:"required,gt=0"`
}

// BreakRule inserts a break once AfterPeriod academic periods have been
// placed. Rules pointing past the end of a day's period list are skipped:
// a break never exists without a preceding period.
type BreakRule struct {
	AfterPeriod  int    `json:"after_period" validate:"required,gt=0"`
	Label        string `json:"label" validate:"required"`
	DurationMins int    `json:"duration_mins" validate:"required,gt=0"`
}

type BreakConfig []BreakRule

// DefaultBreakConfig mirrors the school's standing schedule: a short break
// after the 2nd period, lunch after the 4th, games after the 6th.
func DefaultBreakConfig() BreakConfig {
	return BreakConfig{
		{AfterPeriod: 2, Label: LabelShortBreak, DurationMins: 10},
		{AfterPeriod: 4, Label: LabelLunchBreak, DurationMins: 30},
		{AfterPeriod: 6, Label: LabelGamesBreak, DurationMins: 20},
	}
}

// Timetable holds one grade's full week of slots.
type Timetable struct {
	Grade     string                `json:"grade"` // normalized grade key
	State     State                 `json:"state"`
	Days      map[string][]TimeSlot `json:"days"`
	CreatedAt time.Time             `json:"created_at"` // UTC
	UpdatedAt time.Time             `json:"updated_at"` // UTC
}

func (tt *Timetable) Finalized() bool { return tt.State == StateFinalized }

// DayNames returns the stored day keys in a stable (sorted) order.
func (tt *Timetable) DayNames() []string {
	names := make([]string, 0, len(tt.Days))
	for d := range tt.Days {
		names = append(names, d)
	}
	sort.Strings(names)
	return names
}

// Day resolves a possibly sloppy day name ("mon day", "Tuesady") to the
// stored day key and its slots. Exact matches win, then prefix/substring
// matches, then the closest similarity match.
func (tt *Timetable) Day(day string) (string, []TimeSlot, bool) {
	want := core.CleanString(day, true /* lower */)
	if want == "" {
		return "", nil, false
	}

	names := tt.DayNames()
	for _, name := range names {
		if strings.ToLower(name) == want {
			return name, tt.Days[name], true
		}
	}
	for _, name := range names {
		nl := strings.ToLower(name)
		if strings.HasPrefix(nl, want) || strings.HasPrefix(want, nl) || strings.Contains(nl, want) {
			return name, tt.Days[name], true
		}
	}

	// closest match as a typo net
	var best string
	var bestRatio float64
	for _, name := range names {
		m := difflib.NewMatcher(strings.Split(strings.ToLower(name), ""), strings.Split(want, ""))
		if r := m.QuickRatio(); r > bestRatio {
			best, bestRatio = name, r
		}
	}
	if bestRatio >= 0.75 {
		return best, tt.Days[best], true
	}
	return "", nil, false
}

// NewTimetable contains everything needed to build one grade's timetable.
type NewTimetable struct {
	Grade  string              `json:"grade" validate:"required"`
	Days   map[string][]Period `json:"days"`
	Breaks BreakConfig         `json:"breaks"` // empty means DefaultBreakConfig
}

func (nt *NewTimetable) Validate() error {
	nt.Grade = core.CleanString(nt.Grade)
	if err := core.Validate.Struct(nt); err != nil {
		return err
	}
	if len(nt.Days) == 0 {
		return core.NewValidationError(nil, core.FieldError{Field: "days", Error: "at least one day is required"})
	}
	for day, periods := range nt.Days {
		if err := core.Validate.Var(day, "dayname"); err != nil {
			return core.NewValidationError(nil, core.FieldError{Field: "days", Error: "invalid day name: " + day})
		}
		for _, p := range periods {
			if err := core.Validate.Struct(p); err != nil {
				return err
			}
		}
	}
	for _, r := range nt.Breaks {
		if err := core.Validate.Struct(r); err != nil {
			return err
		}
	}
	return nil
}
