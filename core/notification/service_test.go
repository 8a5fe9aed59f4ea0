package notification_test

import (
	"errors"
	"net/mail"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/darasani/shule/core"
	"github.com/darasani/shule/core/attendance"
	"github.com/darasani/shule/core/behavior"
	"github.com/darasani/shule/core/diary"
	"github.com/darasani/shule/core/notification"
	"github.com/darasani/shule/core/report"
	"github.com/darasani/shule/core/student"
	emailsvc "github.com/darasani/shule/services/email"
	"github.com/darasani/shule/storage/inmem"
)

type env struct {
	svc       *notification.Service
	students  student.Repository
	att       attendance.Repository
	diaries   diary.Repository
	reports   report.Repository
	behaviors behavior.Repository
}

func setup(t *testing.T) env {
	db, err := inmem.Open()
	if err != nil {
		t.Fatalf("setup(): %v", err)
	}
	conf := &core.Config{
		AppName:          "Shule",
		NotificationDays: 7,
		DefaultFromEmail: mail.Address{Name: "School Updates", Address: "noreply@localhost"},
	}
	e := env{
		students:  inmem.NewStudentRepository(db),
		att:       inmem.NewAttendanceRepository(db),
		diaries:   inmem.NewDiaryRepository(db),
		reports:   inmem.NewReportRepository(db),
		behaviors: inmem.NewBehaviorRepository(db),
	}
	e.svc = notification.NewService(
		e.students, e.att, e.diaries, e.reports, e.behaviors,
		emailsvc.NewConsoleServiceMock(conf), conf)

	emailsvc.ResetSentMessages()
	return e
}

func createStudent(t *testing.T, repo student.Repository, rollNo string, emails ...string) student.Student {
	now := time.Now().UTC()
	stu, err := repo.CreateStudent(student.Student{
		RollNo:       rollNo,
		Name:         "Jane Doe",
		Age:          9,
		Grade:        "4A",
		ParentEmails: emails,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		t.Fatalf("createStudent(): %v", err)
	}
	return stu
}

func seedEverything(t *testing.T, e env, rollNo string) {
	if _, err := e.att.SeedAttendance(attendance.Record{
		RollNo: rollNo,
		Day:    "Monday",
		Entries: []attendance.Entry{
			{Subject: "Math", Status: attendance.StatusPresent},
			{Subject: "Science", Status: attendance.StatusNotMarked},
		},
	}); err != nil {
		t.Fatalf("seedEverything(): %v", err)
	}

	if _, err := e.diaries.EnsureDiaryDay(rollNo, "Monday", []diary.Task{
		{Subject: "Math", Homework: "Ex. 4.2", Status: diary.StatusPending},
	}); err != nil {
		t.Fatalf("seedEverything(): %v", err)
	}

	if _, err := e.reports.SaveDailyReport(report.Report{
		RollNo:     rollNo,
		Date:       "12-01-2026",
		Lunch:      "Yes",
		Activities: []report.Activity{{Activity: "Painting", Remark: "Very focused"}},
	}); err != nil {
		t.Fatalf("seedEverything(): %v", err)
	}

	if _, err := e.behaviors.AppendBehaviorNote(rollNo, behavior.Note{
		WithTeacher:    "Good",
		WithClassmates: "Neutral",
		Note:           "Helped tidy the classroom",
		RecordedAt:     time.Now().UTC(),
	}); err != nil {
		t.Fatalf("seedEverything(): %v", err)
	}
}

func Test_Service_Compile_identityOnly(t *testing.T) {
	e := setup(t)
	createStudent(t, e.students, "101", "mom@example.com")

	n, err := e.svc.Compile("101", notification.Options{})
	require.NoError(t, err)

	assert.Equal(t, "Student Update\nName: Jane Doe\nRoll No: 101\nGrade: 4A\n", n.Body)
	assert.Equal(t, "Update for Jane Doe (Roll 101)", n.Subject)
	assert.NotEmpty(t, n.ID)
}

func Test_Service_Compile_sections(t *testing.T) {
	e := setup(t)
	createStudent(t, e.students, "101", "mom@example.com")
	seedEverything(t, e, "101")

	n, err := e.svc.Compile("101", notification.Options{})
	if err != nil {
		t.Fatalf("Compile(): %v", err)
	}

	wants := []string{
		"Student Update",
		"Attendance (Monday):",
		"- Math: PRESENT",
		"- Science: NOT_MARKED",
		"Homework Diary (Monday):",
		"- 1. Math: Ex. 4.2 [PENDING]",
		"Daily Report (12-01-2026):",
		"Lunch: Yes",
		"- Painting: Very focused",
		"Behavior Records:",
		"- With Teacher: Good; With Classmates: Neutral; Note: Helped tidy the classroom",
	}
	for _, w := range wants {
		if !strings.Contains(n.Body, w) {
			t.Errorf("Compile() body missing %q\nbody:\n%s", w, n.Body)
		}
	}

	// 5 sections, 4 separators
	if got := strings.Count(n.Body, "----------------------"); got != 4 {
		t.Errorf("Compile() separator count = %d; want 4", got)
	}
}

func Test_Service_Compile_deterministic(t *testing.T) {
	e := setup(t)
	createStudent(t, e.students, "101", "mom@example.com", "dad@example.com")
	seedEverything(t, e, "101")

	opts := notification.Options{}
	n1, err := e.svc.Compile("101", opts)
	require.NoError(t, err)
	n2, err := e.svc.Compile("101", opts)
	require.NoError(t, err)

	assert.Equal(t, n1.Subject, n2.Subject)
	assert.Equal(t, n1.Body, n2.Body)
	assert.Equal(t, n1.To, n2.To)
}

func Test_Service_Compile_recipients(t *testing.T) {
	e := setup(t)
	createStudent(t, e.students, "101", "mom@example.com")
	createStudent(t, e.students, "102") // no contacts

	t.Run("falls back to parent emails", func(t *testing.T) {
		n, err := e.svc.Compile("101", notification.Options{})
		require.NoError(t, err)
		assert.Equal(t, []string{"mom@example.com"}, n.To)
	})

	t.Run("explicit to wins", func(t *testing.T) {
		n, err := e.svc.Compile("101", notification.Options{To: []string{"aunt@example.com"}})
		require.NoError(t, err)
		assert.Equal(t, []string{"aunt@example.com"}, n.To)
	})

	t.Run("no recipients", func(t *testing.T) {
		if _, err := e.svc.Compile("102", notification.Options{}); !errors.Is(err, notification.ErrNoRecipient) {
			t.Errorf("Compile() error = %v; want %v", err, notification.ErrNoRecipient)
		}
	})

	t.Run("no recipients but preview", func(t *testing.T) {
		n, err := e.svc.Compile("102", notification.Options{PreviewOnly: true})
		require.NoError(t, err)
		assert.NotNil(t, n.To)
		assert.Empty(t, n.To)
		assert.True(t, n.Preview)
	})

	t.Run("unknown student", func(t *testing.T) {
		if _, err := e.svc.Compile("999", notification.Options{}); !errors.Is(err, student.ErrNotFound) {
			t.Errorf("Compile() error = %v; want %v", err, student.ErrNotFound)
		}
	})
}

func Test_Service_Compile_dayAndDateFilters(t *testing.T) {
	e := setup(t)
	createStudent(t, e.students, "101", "mom@example.com")
	seedEverything(t, e, "101")

	// a second attendance day and a second (earlier) report
	if _, err := e.att.SeedAttendance(attendance.Record{
		RollNo:  "101",
		Day:     "Tuesday",
		Entries: []attendance.Entry{{Subject: "Art", Status: attendance.StatusAbsent}},
	}); err != nil {
		t.Fatalf("SeedAttendance(): %v", err)
	}
	if _, err := e.reports.SaveDailyReport(report.Report{
		RollNo: "101", Date: "05-01-2026", Lunch: "No",
	}); err != nil {
		t.Fatalf("SaveDailyReport(): %v", err)
	}

	t.Run("day filter", func(t *testing.T) {
		n, err := e.svc.Compile("101", notification.Options{Day: "tuesday"})
		if err != nil {
			t.Fatalf("Compile(): %v", err)
		}
		if !strings.Contains(n.Body, "Attendance (Tuesday):") {
			t.Errorf("body missing Tuesday attendance:\n%s", n.Body)
		}
		if strings.Contains(n.Body, "Attendance (Monday):") {
			t.Errorf("day filter leaked Monday attendance:\n%s", n.Body)
		}
	})

	t.Run("latest report by date", func(t *testing.T) {
		n, err := e.svc.Compile("101", notification.Options{})
		if err != nil {
			t.Fatalf("Compile(): %v", err)
		}
		// 12-01 logged before 05-01 was, but 12-01 is the later date
		if !strings.Contains(n.Body, "Daily Report (12-01-2026):") {
			t.Errorf("body did not pick the latest report:\n%s", n.Body)
		}
	})

	t.Run("specific report date", func(t *testing.T) {
		n, err := e.svc.Compile("101", notification.Options{Date: "05-01-2026"})
		if err != nil {
			t.Fatalf("Compile(): %v", err)
		}
		if !strings.Contains(n.Body, "Daily Report (05-01-2026):\nLunch: No\n(No activities)") {
			t.Errorf("body missing the requested report:\n%s", n.Body)
		}
	})
}

func Test_Service_Notify(t *testing.T) {
	e := setup(t)
	createStudent(t, e.students, "101", "mom@example.com")
	seedEverything(t, e, "101")

	n, err := e.svc.Notify("101", notification.Options{})
	if err != nil {
		t.Fatalf("Notify(): %v", err)
	}

	if len(emailsvc.SentMessages) != 1 {
		t.Fatalf("sent message count = %d; want 1", len(emailsvc.SentMessages))
	}
	msg := emailsvc.SentMessages[0]
	if msg.Subject != n.Subject {
		t.Errorf("sent subject = %q; want %q", msg.Subject, n.Subject)
	}
	if msg.Body != n.Body {
		t.Errorf("sent body differs from compiled body")
	}
	if len(msg.To) != 1 || msg.To[0].Address != "mom@example.com" {
		t.Errorf("sent to = %v; want mom@example.com", msg.To)
	}
}

func Test_Service_Notify_previewSkipsDispatch(t *testing.T) {
	e := setup(t)
	createStudent(t, e.students, "101", "mom@example.com")

	n, err := e.svc.Notify("101", notification.Options{PreviewOnly: true})
	if err != nil {
		t.Fatalf("Notify(): %v", err)
	}
	if !n.Preview {
		t.Error("Notify() preview flag not set")
	}
	if len(emailsvc.SentMessages) != 0 {
		t.Errorf("preview dispatched %d message(s); want none", len(emailsvc.SentMessages))
	}
}

func Test_Options_Validate(t *testing.T) {
	tests := []struct {
		name    string
		opts    notification.Options
		wantTo  []string
		wantErr bool
	}{
		{name: "empty", opts: notification.Options{}},
		{
			name:   "cleans and lowers",
			opts:   notification.Options{To: []string{" MOM@Example.com ", ""}},
			wantTo: []string{"mom@example.com"},
		},
		{
			name:    "bad email",
			opts:    notification.Options{To: []string{"not-an-email"}},
			wantErr: true,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.opts.Validate()
			if (err != nil) != tc.wantErr {
				t.Fatalf("Validate() error = %v; wantErr %v", err, tc.wantErr)
			}
			if tc.wantTo != nil && strings.Join(tc.opts.To, ",") != strings.Join(tc.wantTo, ",") {
				t.Errorf("Validate() to = %v; want %v", tc.opts.To, tc.wantTo)
			}
		})
	}
}
