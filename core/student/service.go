package student

import (
	"errors"
	"time"

	"github.com/darasani/shule/core"
)

var (
	// errors
	ErrNotFound     = errors.New("student not found")
	ErrRollNoExists = errors.New("a student with this roll number already exists")
)

type (
	Repository interface {
		CreateStudent(stu Student) (Student, error)
		GetStudent(rollNo string) (Student, error)
		QueryAllStudents() ([]Student, error)
		// FilterStudentsByGrade matches on the normalized grade key,
		// preserving registration order.
		FilterStudentsByGrade(gradeKey string) ([]Student, error)
		UpdateStudentContacts(rollNo string, emails []string) (Student, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) checkRollNo(rollNo string) error {
	if _, err := svc.repo.GetStudent(rollNo); err == nil {
		return core.NewValidationError(ErrRollNoExists, core.FieldError{Field: "roll_no", Error: ErrRollNoExists.Error()})
	} else if !errors.Is(err, ErrNotFound) {
		return err
	}
	return nil
}

func (svc *Service) Register(ns NewStudent) (Student, error) {
	now := time.Now().UTC()
	stu := Student{
		RollNo:       ns.RollNo,
		Name:         ns.Name,
		Age:          ns.Age,
		Grade:        ns.Grade,
		Gender:       ns.Gender,
		FathersName:  ns.FathersName,
		MothersName:  ns.MothersName,
		BloodGroup:   ns.BloodGroup,
		Address:      ns.Address,
		ParentEmails: ns.parentEmails(),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	return svc.repo.CreateStudent(stu)
}

func (svc *Service) GetByRollNo(rollNo string) (Student, error) {
	return svc.repo.GetStudent(core.CleanString(rollNo))
}

func (svc *Service) QueryAll() ([]Student, error) {
	return svc.repo.QueryAllStudents()
}

func (svc *Service) FilterByGrade(grade string) ([]Student, error) {
	return svc.repo.FilterStudentsByGrade(core.GradeKey(grade))
}

func (svc *Service) SetParentContacts(rollNo string, uc UpdateContacts) (Student, error) {
	return svc.repo.UpdateStudentContacts(core.CleanString(rollNo), uc.ParentEmails)
}
