package behavior

import (
	"errors"
	"time"

	"github.com/darasani/shule/core"
	"github.com/darasani/shule/core/student"
)

var ErrNotFound = errors.New("no behavior records for this student")

type (
	Repository interface {
		// AppendBehaviorNote appends; notes are never edited or removed.
		AppendBehaviorNote(rollNo string, note Note) (Note, error)
		// ListBehaviorNotes returns notes in append order.
		ListBehaviorNotes(rollNo string) ([]Note, error)
	}

	Service struct {
		repo     Repository
		students student.Repository
	}
)

func NewService(repo Repository, students student.Repository) *Service {
	return &Service{repo: repo, students: students}
}

func (svc *Service) Record(nn NewNote) (Note, error) {
	if _, err := svc.students.GetStudent(nn.RollNo); err != nil {
		return Note{}, err
	}
	note := Note{
		WithTeacher:    nn.WithTeacher,
		WithClassmates: nn.WithClassmates,
		Note:           nn.Note,
		RecordedAt:     time.Now().UTC(),
	}
	return svc.repo.AppendBehaviorNote(nn.RollNo, note)
}

func (svc *Service) List(rollNo string) ([]Note, error) {
	if _, err := svc.students.GetStudent(core.CleanString(rollNo)); err != nil {
		return nil, err
	}
	return svc.repo.ListBehaviorNotes(core.CleanString(rollNo))
}
