package attendance

import (
	"errors"

	"github.com/darasani/shule/core"
	"github.com/darasani/shule/core/student"
	"github.com/darasani/shule/core/timetable"
)

var (
	// errors
	ErrNotFound       = errors.New("no attendance records for this student")
	ErrNotReady       = errors.New("timetable for this grade and day is not finalized")
	ErrUnknownSubject = errors.New("subject was never seeded for this student on that day")
)

type (
	Repository interface {
		// SeedAttendance merges rec into the store: subjects already
		// present keep their current status, new subjects are appended in
		// rec order. The merge is atomic per (roll number, day).
		SeedAttendance(rec Record) (Record, error)
		GetAttendance(rollNo, day string) (Record, error)
		// ListAttendance returns a student's records in seeding order.
		ListAttendance(rollNo string) ([]Record, error)
		SetAttendanceStatus(rollNo, day, subject string, status Status) (Record, error)
	}

	Service struct {
		repo       Repository
		students   student.Repository
		timetables timetable.Repository
	}
)

func NewService(repo Repository, students student.Repository, timetables timetable.Repository) *Service {
	return &Service{repo: repo, students: students, timetables: timetables}
}

// Seed creates one NOT_MARKED entry per academic slot of the grade's
// finalized timetable for day, for every student in the grade. Breaks are
// excluded. Seeding an already-seeded (roll, day) is a no-op for subjects
// already present, so calling Seed twice equals calling it once.
func (svc *Service) Seed(sr SeedRequest) (map[string]Record, error) {
	gradeKey := core.GradeKey(sr.Grade)

	tt, err := svc.timetables.GetTimetable(gradeKey)
	if err != nil {
		if errors.Is(err, timetable.ErrNotFound) {
			return nil, ErrNotReady
		}
		return nil, err
	}
	if !tt.Finalized() {
		return nil, ErrNotReady
	}
	dayKey, slots, ok := tt.Day(sr.Day)
	if !ok {
		return nil, ErrNotReady
	}

	studs, err := svc.students.FilterStudentsByGrade(gradeKey)
	if err != nil {
		return nil, err
	}

	seeded := make(map[string]Record, len(studs))
	for _, stu := range studs {
		rec := Record{RollNo: stu.RollNo, Day: dayKey, Entries: placeholders(slots)}
		rec, err := svc.repo.SeedAttendance(rec)
		if err != nil {
			return nil, err
		}
		seeded[stu.RollNo] = rec
	}
	return seeded, nil
}

func placeholders(slots []timetable.TimeSlot) []Entry {
	entries := make([]Entry, 0, len(slots))
	for _, slot := range slots {
		if slot.Kind != timetable.KindAcademic {
			continue
		}
		entries = append(entries, Entry{Subject: slot.Subject, Status: StatusNotMarked})
	}
	return entries
}

// UpdateStatus marks one seeded subject. The subject must already exist in
// the student's record for that day.
func (svc *Service) UpdateStatus(su StatusUpdate) (Record, error) {
	if _, err := svc.students.GetStudent(su.RollNo); err != nil {
		return Record{}, err
	}
	return svc.repo.SetAttendanceStatus(su.RollNo, core.DayKey(su.Day), su.Subject, su.Status)
}

// List returns all of a student's attendance records, oldest day first.
func (svc *Service) List(rollNo string) ([]Record, error) {
	if _, err := svc.students.GetStudent(core.CleanString(rollNo)); err != nil {
		return nil, err
	}
	return svc.repo.ListAttendance(core.CleanString(rollNo))
}
