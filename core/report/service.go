package report

import (
	"errors"

	"github.com/darasani/shule/core"
	"github.com/darasani/shule/core/student"
)

var ErrNotFound = errors.New("no daily reports for this student")

type (
	Repository interface {
		// SaveDailyReport inserts or replaces the report for (roll, date).
		SaveDailyReport(rep Report) (Report, error)
		// ListDailyReports returns a student's reports in logging order.
		ListDailyReports(rollNo string) ([]Report, error)
	}

	Service struct {
		repo     Repository
		students student.Repository
	}
)

func NewService(repo Repository, students student.Repository) *Service {
	return &Service{repo: repo, students: students}
}

func (svc *Service) Log(nr NewReport) (Report, error) {
	if _, err := svc.students.GetStudent(nr.RollNo); err != nil {
		return Report{}, err
	}

	lunch := "No"
	if nr.Lunch {
		lunch = "Yes"
	}
	rep := Report{
		RollNo:     nr.RollNo,
		Date:       nr.Date,
		Lunch:      lunch,
		Activities: nr.Activities,
	}
	return svc.repo.SaveDailyReport(rep)
}

func (svc *Service) List(rollNo string) ([]Report, error) {
	if _, err := svc.students.GetStudent(core.CleanString(rollNo)); err != nil {
		return nil, err
	}
	return svc.repo.ListDailyReports(core.CleanString(rollNo))
}

// Latest returns the report with the most recent date; when two reports
// share a date (impossible by construction) the later logged one wins.
func (svc *Service) Latest(rollNo string) (Report, error) {
	reps, err := svc.List(rollNo)
	if err != nil {
		return Report{}, err
	}
	return Latest(reps)
}

// Latest picks the most recent report of a non-empty list by parsed date.
func Latest(reps []Report) (Report, error) {
	if len(reps) == 0 {
		return Report{}, ErrNotFound
	}
	latest := reps[0]
	for _, r := range reps[1:] {
		if !r.When().Before(latest.When()) {
			latest = r
		}
	}
	return latest, nil
}
