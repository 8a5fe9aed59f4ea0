package timetable

import (
	"errors"
	"fmt"
	"time"

	"github.com/darasani/shule/core"
)

var (
	// errors
	ErrNotFound    = errors.New("no timetable for this grade")
	ErrDayNotFound = errors.New("no timetable for this grade on that day")
	ErrLocked      = errors.New("timetable is finalized and cannot be changed")
)

type (
	Repository interface {
		GetTimetable(gradeKey string) (Timetable, error)
		// SaveTimetable stores tt wholesale, replacing any unfinalized
		// timetable for the grade; fails with ErrLocked when the stored
		// timetable is finalized, leaving it untouched.
		SaveTimetable(tt Timetable) (Timetable, error)
		// FinalizeTimetable transitions the grade to FINALIZED;
		// ErrNotFound if the grade has never been built.
		FinalizeTimetable(gradeKey string) (Timetable, error)
	}

	Service struct {
		repo     Repository
		dayStart clock
	}
)

func NewService(repo Repository, conf *core.Config) (*Service, error) {
	start, err := parseClock(conf.SchoolDayStart)
	if err != nil {
		return nil, fmt.Errorf("timetable: invalid day start %q: %w", conf.SchoolDayStart, err)
	}
	return &Service{repo: repo, dayStart: start}, nil
}

// Build assembles and stores a grade's full timetable. Slot times are
// assigned contiguously from the configured day start; breaks advance the
// clock exactly like academic periods. The result stays UNFINALIZED (and
// rebuildable) until Finalize.
func (svc *Service) Build(nt NewTimetable) (Timetable, error) {
	breaks := nt.Breaks
	if len(breaks) == 0 {
		breaks = DefaultBreakConfig()
	}
	ruleAfter := make(map[int]BreakRule, len(breaks))
	for _, r := range breaks {
		ruleAfter[r.AfterPeriod] = r
	}

	days := make(map[string][]TimeSlot, len(nt.Days))
	for day, periods := range nt.Days {
		days[core.DayKey(day)] = svc.buildDay(periods, ruleAfter)
	}

	now := time.Now().UTC()
	tt := Timetable{
		Grade:     core.GradeKey(nt.Grade),
		State:     StateUnfinalized,
		Days:      days,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return svc.repo.SaveTimetable(tt)
}

func (svc *Service) buildDay(periods []Period, ruleAfter map[int]BreakRule) []TimeSlot {
	slots := make([]TimeSlot, 0, len(periods)+len(ruleAfter))
	c := svc.dayStart
	for i, p := range periods {
		end := c.add(p.DurationMins)
		slots = append(slots, TimeSlot{
			Start:   c.String(),
			End:     end.String(),
			Kind:    KindAcademic,
			Subject: p.Subject,
			Teacher: p.Teacher,
			Room:    p.Room,
		})
		c = end

		if r, ok := ruleAfter[i+1]; ok {
			end = c.add(r.DurationMins)
			slots = append(slots, TimeSlot{
				Start: c.String(),
				End:   end.String(),
				Kind:  KindBreak,
				Label: r.Label,
			})
			c = end
		}
	}
	return slots
}

// Finalize seals the grade's timetable against any further edits.
func (svc *Service) Finalize(grade string) (Timetable, error) {
	return svc.repo.FinalizeTimetable(core.GradeKey(grade))
}

func (svc *Service) Get(grade string) (Timetable, error) {
	return svc.repo.GetTimetable(core.GradeKey(grade))
}

// GetDay returns a single day's slots, resolving sloppy day names.
func (svc *Service) GetDay(grade, day string) ([]TimeSlot, error) {
	tt, err := svc.repo.GetTimetable(core.GradeKey(grade))
	if err != nil {
		return nil, err
	}
	if _, slots, ok := tt.Day(day); ok {
		return slots, nil
	}
	return nil, ErrDayNotFound
}

// clock is a wall-clock time as minutes since midnight.
type clock int

func parseClock(s string) (clock, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, err
	}
	return clock(t.Hour()*60 + t.Minute()), nil
}

func (c clock) add(mins int) clock { return c + clock(mins) }

func (c clock) String() string {
	return fmt.Sprintf("%02d:%02d", int(c)/60, int(c)%60)
}
