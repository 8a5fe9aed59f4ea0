package diary

import (
	"errors"

	"github.com/darasani/shule/core"
	"github.com/darasani/shule/core/student"
)

var (
	// errors
	ErrNotFound       = errors.New("no diary records for this student")
	ErrDayNotFound    = errors.New("no homework marked yet for that day")
	ErrHomeworkExists = errors.New("homework for this day is already set and cannot be changed")
	ErrNoHomework     = errors.New("no homework set for this day")
)

type (
	Repository interface {
		GetSharedHomework(day string) ([]Assignment, error)
		// SetSharedHomework is write-once per day: ErrHomeworkExists if set.
		SetSharedHomework(day string, tasks []Assignment) error
		// EnsureDiaryDay seeds the student's diary for day with tasks when
		// absent, then returns the stored tasks. Atomic per (roll, day).
		EnsureDiaryDay(rollNo, day string, tasks []Task) ([]Task, error)
		// UpdateDiaryStatuses applies all updates in one critical section
		// and returns the resulting tasks.
		UpdateDiaryStatuses(rollNo, day string, statuses map[int]Status) ([]Task, error)
		// GetDiary returns the student's diary days in seeding order.
		GetDiary(rollNo string) ([]DayTasks, error)
		GetDiaryDay(rollNo, day string) ([]Task, error)
	}

	Service struct {
		repo     Repository
		students student.Repository
	}
)

func NewService(repo Repository, students student.Repository) *Service {
	return &Service{repo: repo, students: students}
}

// SetHomework records the shared homework for a day, once.
func (svc *Service) SetHomework(nh NewHomework) ([]Assignment, error) {
	day := core.DayKey(nh.Day)
	if err := svc.repo.SetSharedHomework(day, nh.Tasks); err != nil {
		return nil, err
	}
	return nh.Tasks, nil
}

// MarkHomework copies the day's shared homework into the student's diary
// (first call only) and applies completion updates. Indexes out of range
// are ignored, matching the tolerant teacher-facing API.
func (svc *Service) MarkHomework(mh MarkHomework) ([]Task, error) {
	if _, err := svc.students.GetStudent(mh.RollNo); err != nil {
		return nil, err
	}

	day := core.DayKey(mh.Day)
	shared, err := svc.repo.GetSharedHomework(day)
	if err != nil {
		return nil, err
	}

	seed := make([]Task, 0, len(shared))
	for _, a := range shared {
		seed = append(seed, Task{Subject: a.Subject, Homework: a.Homework, Status: StatusPending})
	}
	tasks, err := svc.repo.EnsureDiaryDay(mh.RollNo, day, seed)
	if err != nil {
		return nil, err
	}

	updates := make(map[int]Status, len(mh.Completed)+len(mh.Statuses))
	for _, i := range mh.Completed {
		if i >= 0 && i < len(tasks) {
			updates[i] = StatusCompleted
		}
	}
	for _, st := range mh.Statuses {
		if st.Index >= 0 && st.Index < len(tasks) {
			updates[st.Index] = st.Status
		}
	}
	if len(updates) == 0 {
		return tasks, nil
	}
	return svc.repo.UpdateDiaryStatuses(mh.RollNo, day, updates)
}

// Get returns the student's whole diary, oldest day first.
func (svc *Service) Get(rollNo string) ([]DayTasks, error) {
	if _, err := svc.students.GetStudent(core.CleanString(rollNo)); err != nil {
		return nil, err
	}
	return svc.repo.GetDiary(core.CleanString(rollNo))
}

func (svc *Service) GetDay(rollNo, day string) ([]Task, error) {
	if _, err := svc.students.GetStudent(core.CleanString(rollNo)); err != nil {
		return nil, err
	}
	return svc.repo.GetDiaryDay(core.CleanString(rollNo), core.DayKey(day))
}
