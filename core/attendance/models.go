package attendance

import "github.com/darasani/shule/core"

// Status of a student for one academic period.
type Status string

const (
	StatusPresent   Status = "PRESENT"
	StatusAbsent    Status = "ABSENT"
	StatusNotMarked Status = "NOT_MARKED"
)

// Entry is one seeded (subject, status) pair.
type Entry struct {
	Subject string `json:"subject"`
	Status  Status `json:"status"`
}

// Record is a student's attendance for one day, in timetable slot order.
type Record struct {
	RollNo  string  `json:"roll_no"`
	Day     string  `json:"day"`
	Entries []Entry `json:"entries"`
}

// SeedRequest asks for a grade's attendance placeholders for one day.
type SeedRequest struct {
	Grade string `json:"grade" validate:"required"`
	Day   string `json:"day" validate:"required,dayname"`
}

func (sr *SeedRequest) Validate() error {
	sr.Grade = core.CleanString(sr.Grade)
	return core.Validate.Struct(sr)
}

// StatusUpdate marks a single seeded subject for a student.
type StatusUpdate struct {
	RollNo  string `json:"roll_no" validate:"required"`
	Day     string `json:"day" validate:"required,dayname"`
	Subject string `json:"subject" validate:"required"`
	Status  Status `json:"status" validate:"required,oneof=PRESENT ABSENT NOT_MARKED"`
}

func (su *StatusUpdate) Validate() error {
	su.RollNo = core.CleanString(su.RollNo)
	su.Subject = core.CleanString(su.Subject)
	return core.Validate.Struct(su)
}
