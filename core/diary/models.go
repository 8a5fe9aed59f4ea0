package diary

import "github.com/darasani/shule/core"

// Status of one homework task in a student's diary.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusCompleted Status = "COMPLETED"
)

// Assignment is a shared, day-wide homework task (no per-student status yet).
type Assignment struct {
	Subject  string `json:"subject" validate:"required"`
	Homework string `json:"homework" validate:"required"`
}

// Task is an Assignment as it lives in one student's diary.
type Task struct {
	Subject  string `json:"subject"`
	Homework string `json:"homework"`
	Status   Status `json:"status"`
}

// DayTasks pairs a diary day with its tasks, so days keep their order.
type DayTasks struct {
	Day   string `json:"day"`
	Tasks []Task `json:"tasks"`
}

// NewHomework sets the shared homework for one day. Write-once per day.
type NewHomework struct {
	Day   string       `json:"day" validate:"required,dayname"`
	Tasks []Assignment `json:"tasks" validate:"required,min=1,dive"`
}

func (nh *NewHomework) Validate() error { return core.Validate.Struct(nh) }

// TaskStatus addresses one task of a diary day by position.
type TaskStatus struct {
	Index  int    `json:"index" validate:"gte=0"`
	Status Status `json:"status" validate:"required,oneof=PENDING COMPLETED"`
}

// MarkHomework seeds a student's diary for a day from the shared homework
// (if not yet seeded) and applies completion updates.
type MarkHomework struct {
	RollNo    string       `json:"roll_no" validate:"required"`
	Day       string       `json:"day" validate:"required,dayname"`
	Completed []int        `json:"completed"`
	Statuses  []TaskStatus `json:"statuses" validate:"omitempty,dive"`
}

func (mh *MarkHomework) Validate() error {
	mh.RollNo = core.CleanString(mh.RollNo)
	return core.Validate.Struct(mh)
}
