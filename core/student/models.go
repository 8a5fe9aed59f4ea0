package student

import (
	"time"

	"github.com/darasani/shule/core"
)

type Student struct {
	RollNo       string    `json:"roll_no"`
	Name         string    `json:"name"`
	Age          int       `json:"age"`
	Grade        string    `json:"grade"`
	Gender       string    `json:"gender"`
	FathersName  string    `json:"fathers_name"`
	MothersName  string    `json:"mothers_name"`
	BloodGroup   string    `json:"blood_group"`
	Address      string    `json:"address"`
	ParentEmails []string  `json:"parent_emails"`
	CreatedAt    time.Time `json:"created_at"` // UTC
	UpdatedAt    time.Time `json:"updated_at"` // UTC
}

// GradeKey returns the normalized timetable key of the student's grade.
func (s *Student) GradeKey() string { return core.GradeKey(s.Grade) }

// NewStudent contains information needed to register a new Student.
type NewStudent struct {
	RollNo      string `json:"roll_no" validate:"required,alphanum_"`
	Name        string `json:"name" validate:"required"`
	Age         int    `json:"age" validate:"required,gt=0"`
	Grade       string `json:"grade" validate:"required"`
	Gender      string `json:"gender" validate:"required"`
	FathersName string `json:"fathers_name" validate:"required"`
	MothersName string `json:"mothers_name" validate:"required"`
	BloodGroup  string `json:"blood_group" validate:"required"`
	Address     string `json:"address" validate:"required"`

	// optional guardian contacts, kept in this order
	ParentEmail string `json:"parent_email" validate:"omitempty,email"`
	FatherEmail string `json:"father_email" validate:"omitempty,email"`
	MotherEmail string `json:"mother_email" validate:"omitempty,email"`
}

func (ns *NewStudent) Validate(svc *Service) error {
	ns.RollNo = core.CleanString(ns.RollNo)
	ns.Name = core.CleanString(ns.Name)
	ns.Grade = core.CleanString(ns.Grade)
	ns.ParentEmail = core.CleanString(ns.ParentEmail, true /* lower */)
	ns.FatherEmail = core.CleanString(ns.FatherEmail, true /* lower */)
	ns.MotherEmail = core.CleanString(ns.MotherEmail, true /* lower */)

	if err := core.Validate.Struct(ns); err != nil {
		return err
	}
	return svc.checkRollNo(ns.RollNo)
}

func (ns *NewStudent) parentEmails() []string {
	emails := make([]string, 0, 3)
	for _, e := range []string{ns.ParentEmail, ns.FatherEmail, ns.MotherEmail} {
		if e != "" {
			emails = append(emails, e)
		}
	}
	return emails
}

// UpdateContacts replaces a student's parent email list.
type UpdateContacts struct {
	ParentEmails []string `json:"parent_emails" validate:"required,min=1,dive,required,email"`
}

func (uc *UpdateContacts) Validate() error {
	cleaned := make([]string, 0, len(uc.ParentEmails))
	for _, e := range uc.ParentEmails {
		if e = core.CleanString(e, true /* lower */); e != "" {
			cleaned = append(cleaned, e)
		}
	}
	uc.ParentEmails = cleaned
	return core.Validate.Struct(uc)
}
