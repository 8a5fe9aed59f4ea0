package report

import (
	"time"

	"github.com/darasani/shule/core"
)

// DateLayout is the wire format of report dates.
const DateLayout = "02-01-2006" // DD-MM-YYYY

// Activity is one logged activity with the teacher's remark.
type Activity struct {
	Activity string `json:"activity" validate:"required"`
	Remark   string `json:"remark"`
}

// Report is a student's daily activity report. At most one per (roll, date).
type Report struct {
	RollNo     string     `json:"roll_no"`
	Date       string     `json:"date"`
	Lunch      string     `json:"lunch"` // "Yes" | "No"
	Activities []Activity `json:"activities"`
}

// When parses the report date; stored dates are always valid.
func (r *Report) When() time.Time {
	t, _ := time.Parse(DateLayout, r.Date)
	return t
}

// NewReport logs one day of activities for a student.
type NewReport struct {
	RollNo     string     `json:"roll_no" validate:"required"`
	Date       string     `json:"date" validate:"required"`
	Lunch      bool       `json:"lunch"`
	Activities []Activity `json:"activities" validate:"omitempty,dive"`
}

func (nr *NewReport) Validate() error {
	nr.RollNo = core.CleanString(nr.RollNo)
	nr.Date = core.CleanString(nr.Date)
	if err := core.Validate.Struct(nr); err != nil {
		return err
	}
	if _, err := time.Parse(DateLayout, nr.Date); err != nil {
		return core.NewValidationError(nil, core.FieldError{Field: "date", Error: "date must be DD-MM-YYYY"})
	}
	return nil
}
