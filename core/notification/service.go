package notification

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	pkgerrors "github.com/pkg/errors"

	"github.com/darasani/shule/core"
	"github.com/darasani/shule/core/attendance"
	"github.com/darasani/shule/core/behavior"
	"github.com/darasani/shule/core/diary"
	"github.com/darasani/shule/core/report"
	"github.com/darasani/shule/core/student"
)

var ErrNoRecipient = errors.New("no parent email configured for this student")

const sectionSeparator = "\n\n----------------------\n"

// Service compiles parent notifications from the per-student stores and
// dispatches them through the mail transport. Compilation is a pure
// read-and-render: no store is ever mutated.
type Service struct {
	students   student.Repository
	attendance attendance.Repository
	diaries    diary.Repository
	reports    report.Repository
	behaviors  behavior.Repository
	mail       core.EmailService
	recentDays int
}

func NewService(
	students student.Repository,
	att attendance.Repository,
	diaries diary.Repository,
	reports report.Repository,
	behaviors behavior.Repository,
	mail core.EmailService,
	conf *core.Config,
) *Service {
	recent := conf.NotificationDays
	if recent <= 0 {
		recent = 1
	}
	return &Service{
		students:   students,
		attendance: att,
		diaries:    diaries,
		reports:    reports,
		behaviors:  behaviors,
		mail:       mail,
		recentDays: recent,
	}
}

// Compile gathers the student's attendance, diary, latest daily report and
// behavior notes into one subject/body pair plus the resolved recipients.
// Sections with no underlying data are omitted entirely.
func (svc *Service) Compile(rollNo string, opts Options) (Notification, error) {
	stu, err := svc.students.GetStudent(core.CleanString(rollNo))
	if err != nil {
		return Notification{}, err
	}

	to, err := resolveRecipients(stu, opts)
	if err != nil {
		return Notification{}, err
	}

	sections := []string{identitySection(stu)}
	if s := svc.attendanceSection(stu.RollNo, opts); s != "" {
		sections = append(sections, s)
	}
	if s := svc.diarySection(stu.RollNo, opts); s != "" {
		sections = append(sections, s)
	}
	if s := svc.reportSection(stu.RollNo, opts); s != "" {
		sections = append(sections, s)
	}
	if s := svc.behaviorSection(stu.RollNo); s != "" {
		sections = append(sections, s)
	}

	return Notification{
		ID:         uuid.New().String(),
		RollNo:     stu.RollNo,
		Subject:    fmt.Sprintf("Update for %s (Roll %s)", stu.Name, stu.RollNo),
		Body:       strings.Join(sections, sectionSeparator) + "\n",
		To:         to,
		Preview:    opts.PreviewOnly,
		CompiledAt: time.Now().UTC(),
	}, nil
}

// Notify compiles and, unless previewing, hands the message to the mail
// transport. Transport failures are propagated, never retried here.
func (svc *Service) Notify(rollNo string, opts Options) (Notification, error) {
	n, err := svc.Compile(rollNo, opts)
	if err != nil {
		return Notification{}, err
	}
	if n.Preview {
		return n, nil
	}

	msg := &core.EmailMessage{
		To:      core.ToAddresses(n.To),
		Subject: n.Subject,
		Body:    n.Body,
	}
	if err := svc.mail.SendMessages(msg); err != nil {
		return Notification{}, pkgerrors.Wrap(err, "sending parent notification")
	}
	return n, nil
}

func resolveRecipients(stu student.Student, opts Options) ([]string, error) {
	to := opts.To
	if len(to) == 0 {
		to = stu.ParentEmails
	}
	if len(to) == 0 {
		if opts.PreviewOnly {
			return []string{}, nil
		}
		return nil, ErrNoRecipient
	}
	return to, nil
}

func identitySection(stu student.Student) string {
	return fmt.Sprintf("Student Update\nName: %s\nRoll No: %s\nGrade: %s", stu.Name, stu.RollNo, stu.Grade)
}

func (svc *Service) attendanceSection(rollNo string, opts Options) string {
	recs, err := svc.attendance.ListAttendance(rollNo)
	if err != nil || len(recs) == 0 {
		return ""
	}
	recs = pickDays(recs, opts.Day, svc.recentDays)

	blocks := make([]string, 0, len(recs))
	for _, rec := range recs {
		var b strings.Builder
		fmt.Fprintf(&b, "Attendance (%s):", rec.Day)
		for _, e := range rec.Entries {
			fmt.Fprintf(&b, "\n- %s: %s", e.Subject, e.Status)
		}
		blocks = append(blocks, b.String())
	}
	if len(blocks) == 0 {
		return ""
	}
	return strings.Join(blocks, "\n\n")
}

// pickDays returns either the single requested day or the most recent
// `limit` days, newest first. Records arrive oldest first.
func pickDays(recs []attendance.Record, day string, limit int) []attendance.Record {
	if day != "" {
		want := core.DayKey(day)
		for _, rec := range recs {
			if rec.Day == want {
				return []attendance.Record{rec}
			}
		}
		return nil
	}
	out := make([]attendance.Record, 0, limit)
	for i := len(recs) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, recs[i])
	}
	return out
}

func (svc *Service) diarySection(rollNo string, opts Options) string {
	days, err := svc.diaries.GetDiary(rollNo)
	if err != nil || len(days) == 0 {
		return ""
	}
	days = pickDiaryDays(days, opts.Day, svc.recentDays)

	blocks := make([]string, 0, len(days))
	for _, dt := range days {
		if len(dt.Tasks) == 0 {
			continue
		}
		var b strings.Builder
		fmt.Fprintf(&b, "Homework Diary (%s):", dt.Day)
		for i, t := range dt.Tasks {
			fmt.Fprintf(&b, "\n- %d. %s: %s [%s]", i+1, t.Subject, t.Homework, t.Status)
		}
		blocks = append(blocks, b.String())
	}
	if len(blocks) == 0 {
		return ""
	}
	return strings.Join(blocks, "\n\n")
}

func pickDiaryDays(days []diary.DayTasks, day string, limit int) []diary.DayTasks {
	if day != "" {
		want := core.DayKey(day)
		for _, dt := range days {
			if dt.Day == want {
				return []diary.DayTasks{dt}
			}
		}
		return nil
	}
	out := make([]diary.DayTasks, 0, limit)
	for i := len(days) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, days[i])
	}
	return out
}

func (svc *Service) reportSection(rollNo string, opts Options) string {
	reps, err := svc.reports.ListDailyReports(rollNo)
	if err != nil || len(reps) == 0 {
		return ""
	}

	var rep report.Report
	if opts.Date != "" {
		found := false
		for _, r := range reps {
			if r.Date == opts.Date {
				rep, found = r, true
				break
			}
		}
		if !found {
			return ""
		}
	} else {
		rep, _ = report.Latest(reps)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Daily Report (%s):\nLunch: %s", rep.Date, rep.Lunch)
	if len(rep.Activities) == 0 {
		b.WriteString("\n(No activities)")
	}
	for _, a := range rep.Activities {
		fmt.Fprintf(&b, "\n- %s: %s", a.Activity, a.Remark)
	}
	return b.String()
}

func (svc *Service) behaviorSection(rollNo string) string {
	notes, err := svc.behaviors.ListBehaviorNotes(rollNo)
	if err != nil || len(notes) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("Behavior Records:")
	for _, n := range notes {
		fmt.Fprintf(&b, "\n- With Teacher: %s; With Classmates: %s; Note: %s", n.WithTeacher, n.WithClassmates, n.Note)
	}
	return b.String()
}
