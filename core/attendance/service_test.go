package attendance_test

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/darasani/shule/core"
	"github.com/darasani/shule/core/attendance"
	"github.com/darasani/shule/core/student"
	"github.com/darasani/shule/core/timetable"
	"github.com/darasani/shule/storage/inmem"
)

type env struct {
	svc      *attendance.Service
	students student.Repository
	tts      *timetable.Service
}

func setup(t *testing.T) env {
	db, err := inmem.Open()
	if err != nil {
		t.Fatalf("setup(): %v", err)
	}
	studentRepo := inmem.NewStudentRepository(db)
	ttRepo := inmem.NewTimetableRepository(db)

	ttSvc, err := timetable.NewService(ttRepo, &core.Config{SchoolDayStart: "09:00"})
	if err != nil {
		t.Fatalf("setup(): %v", err)
	}
	return env{
		svc:      attendance.NewService(inmem.NewAttendanceRepository(db), studentRepo, ttRepo),
		students: studentRepo,
		tts:      ttSvc,
	}
}

func createStudent(t *testing.T, repo student.Repository, rollNo, grade string) student.Student {
	now := time.Now().UTC()
	stu, err := repo.CreateStudent(student.Student{
		RollNo:    rollNo,
		Name:      "Student " + rollNo,
		Age:       10,
		Grade:     grade,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("createStudent(): %v", err)
	}
	return stu
}

// buildTimetable builds (and optionally finalizes) a Monday with Math,
// English, a short break and Science.
func buildTimetable(t *testing.T, e env, grade string, finalize bool) {
	_, err := e.tts.Build(timetable.NewTimetable{
		Grade: grade,
		Days: map[string][]timetable.Period{
			"monday": {
				{Subject: "Math", Teacher: "T1", DurationMins: 45},
				{Subject: "English", Teacher: "T2", DurationMins: 45},
				{Subject: "Science", Teacher: "T3", DurationMins: 45},
			},
		},
	})
	if err != nil {
		t.Fatalf("buildTimetable(): %v", err)
	}
	if finalize {
		if _, err = e.tts.Finalize(grade); err != nil {
			t.Fatalf("buildTimetable(): %v", err)
		}
	}
}

func Test_Service_Seed_notReady(t *testing.T) {
	e := setup(t)
	createStudent(t, e.students, "101", "4A")

	// no timetable at all
	if _, err := e.svc.Seed(attendance.SeedRequest{Grade: "4A", Day: "Monday"}); !errors.Is(err, attendance.ErrNotReady) {
		t.Errorf("Seed() without timetable error = %v; want %v", err, attendance.ErrNotReady)
	}

	// built but not finalized
	buildTimetable(t, e, "4A", false)
	if _, err := e.svc.Seed(attendance.SeedRequest{Grade: "4A", Day: "Monday"}); !errors.Is(err, attendance.ErrNotReady) {
		t.Errorf("Seed() unfinalized error = %v; want %v", err, attendance.ErrNotReady)
	}

	// finalized but the requested day was never scheduled
	if _, err := e.tts.Finalize("4A"); err != nil {
		t.Fatalf("Finalize(): %v", err)
	}
	if _, err := e.svc.Seed(attendance.SeedRequest{Grade: "4A", Day: "Friday"}); !errors.Is(err, attendance.ErrNotReady) {
		t.Errorf("Seed() missing day error = %v; want %v", err, attendance.ErrNotReady)
	}
}

func Test_Service_Seed(t *testing.T) {
	e := setup(t)
	createStudent(t, e.students, "101", "4A")
	createStudent(t, e.students, "102", "4A")
	createStudent(t, e.students, "201", "5B") // other grade, never seeded
	buildTimetable(t, e, "4A", true)

	seeded, err := e.svc.Seed(attendance.SeedRequest{Grade: "4A", Day: "monday"})
	if err != nil {
		t.Fatalf("Seed(): %v", err)
	}

	if len(seeded) != 2 {
		t.Fatalf("Seed() student count = %d; want 2", len(seeded))
	}
	if _, ok := seeded["201"]; ok {
		t.Error("Seed() included a student from another grade")
	}

	wantSubjects := []string{"Math", "English", "Science"}
	for roll, rec := range seeded {
		if rec.Day != "Monday" {
			t.Errorf("Seed()[%s].Day = %q; want %q", roll, rec.Day, "Monday")
		}
		if len(rec.Entries) != len(wantSubjects) {
			t.Fatalf("Seed()[%s] entry count = %d; want %d (breaks excluded)", roll, len(rec.Entries), len(wantSubjects))
		}
		for i, e := range rec.Entries {
			if e.Subject != wantSubjects[i] {
				t.Errorf("Seed()[%s] entry[%d].Subject = %q; want %q", roll, i, e.Subject, wantSubjects[i])
			}
			if e.Status != attendance.StatusNotMarked {
				t.Errorf("Seed()[%s] entry[%d].Status = %v; want %v", roll, i, e.Status, attendance.StatusNotMarked)
			}
		}
	}
}

func Test_Service_Seed_idempotent(t *testing.T) {
	e := setup(t)
	createStudent(t, e.students, "101", "4A")
	buildTimetable(t, e, "4A", true)

	if _, err := e.svc.Seed(attendance.SeedRequest{Grade: "4A", Day: "Monday"}); err != nil {
		t.Fatalf("Seed(): %v", err)
	}
	if _, err := e.svc.UpdateStatus(attendance.StatusUpdate{
		RollNo: "101", Day: "Monday", Subject: "Math", Status: attendance.StatusPresent,
	}); err != nil {
		t.Fatalf("UpdateStatus(): %v", err)
	}

	seeded, err := e.svc.Seed(attendance.SeedRequest{Grade: "4A", Day: "Monday"})
	if err != nil {
		t.Fatalf("Seed() twice: %v", err)
	}

	rec := seeded["101"]
	if len(rec.Entries) != 3 {
		t.Fatalf("reseed entry count = %d; want 3 (no duplicates)", len(rec.Entries))
	}
	if rec.Entries[0].Status != attendance.StatusPresent {
		t.Errorf("reseed clobbered a marked status: Math = %v; want %v", rec.Entries[0].Status, attendance.StatusPresent)
	}
	if rec.Entries[1].Status != attendance.StatusNotMarked {
		t.Errorf("reseed changed an unmarked status: English = %v; want %v", rec.Entries[1].Status, attendance.StatusNotMarked)
	}
}

func Test_Service_UpdateStatus(t *testing.T) {
	e := setup(t)
	createStudent(t, e.students, "101", "4A")
	buildTimetable(t, e, "4A", true)
	if _, err := e.svc.Seed(attendance.SeedRequest{Grade: "4A", Day: "Monday"}); err != nil {
		t.Fatalf("Seed(): %v", err)
	}

	rec, err := e.svc.UpdateStatus(attendance.StatusUpdate{
		RollNo: "101", Day: "monday", Subject: "English", Status: attendance.StatusAbsent,
	})
	if err != nil {
		t.Fatalf("UpdateStatus(): %v", err)
	}
	if rec.Entries[1].Status != attendance.StatusAbsent {
		t.Errorf("UpdateStatus() English = %v; want %v", rec.Entries[1].Status, attendance.StatusAbsent)
	}

	tests := []struct {
		name    string
		su      attendance.StatusUpdate
		wantErr error
	}{
		{
			name:    "unknown student",
			su:      attendance.StatusUpdate{RollNo: "999", Day: "Monday", Subject: "Math", Status: attendance.StatusPresent},
			wantErr: student.ErrNotFound,
		},
		{
			name:    "unseeded day",
			su:      attendance.StatusUpdate{RollNo: "101", Day: "Friday", Subject: "Math", Status: attendance.StatusPresent},
			wantErr: attendance.ErrNotFound,
		},
		{
			name:    "unseeded subject",
			su:      attendance.StatusUpdate{RollNo: "101", Day: "Monday", Subject: "Karate", Status: attendance.StatusPresent},
			wantErr: attendance.ErrUnknownSubject,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := e.svc.UpdateStatus(tc.su); !errors.Is(err, tc.wantErr) {
				t.Errorf("UpdateStatus() error = %v; wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func Test_Service_List(t *testing.T) {
	e := setup(t)
	createStudent(t, e.students, "101", "4A")

	if _, err := e.svc.List("999"); !errors.Is(err, student.ErrNotFound) {
		t.Errorf("List() unknown student error = %v; want %v", err, student.ErrNotFound)
	}
	if _, err := e.svc.List("101"); !errors.Is(err, attendance.ErrNotFound) {
		t.Errorf("List() before seeding error = %v; want %v", err, attendance.ErrNotFound)
	}

	_, err := e.tts.Build(timetable.NewTimetable{
		Grade: "4A",
		Days: map[string][]timetable.Period{
			"tuesday": {{Subject: "Math", Teacher: "T1", DurationMins: 45}},
			"monday":  {{Subject: "English", Teacher: "T2", DurationMins: 45}},
		},
	})
	if err != nil {
		t.Fatalf("Build(): %v", err)
	}
	if _, err = e.tts.Finalize("4A"); err != nil {
		t.Fatalf("Finalize(): %v", err)
	}

	for _, day := range []string{"Tuesday", "Monday"} {
		if _, err = e.svc.Seed(attendance.SeedRequest{Grade: "4A", Day: day}); err != nil {
			t.Fatalf("Seed(%s): %v", day, err)
		}
	}

	recs, err := e.svc.List(" 101 ")
	if err != nil {
		t.Fatalf("List(): %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("List() count = %d; want 2", len(recs))
	}
	// seeding order, not weekday order
	if recs[0].Day != "Tuesday" || recs[1].Day != "Monday" {
		t.Errorf("List() order = [%s %s]; want [Tuesday Monday]", recs[0].Day, recs[1].Day)
	}
}

func Test_buildFinalizeSeed(t *testing.T) {
	e := setup(t)
	createStudent(t, e.students, "101", "4A")

	tt, err := e.tts.Build(timetable.NewTimetable{
		Grade: "4A",
		Days: map[string][]timetable.Period{
			"monday": {
				{Subject: "Math", Teacher: "T1", DurationMins: 45},
				{Subject: "Science", Teacher: "T2", DurationMins: 45},
			},
		},
		Breaks: timetable.BreakConfig{
			{AfterPeriod: 1, Label: timetable.LabelShortBreak, DurationMins: 10},
		},
	})
	if err != nil {
		t.Fatalf("Build(): %v", err)
	}

	wantSlots := []timetable.TimeSlot{
		{Start: "09:00", End: "09:45", Kind: timetable.KindAcademic, Subject: "Math", Teacher: "T1"},
		{Start: "09:45", End: "09:55", Kind: timetable.KindBreak, Label: timetable.LabelShortBreak},
		{Start: "09:55", End: "10:40", Kind: timetable.KindAcademic, Subject: "Science", Teacher: "T2"},
	}
	if got := tt.Days["Monday"]; !reflect.DeepEqual(got, wantSlots) {
		t.Fatalf("Build() Monday = %+v; want %+v", got, wantSlots)
	}

	if _, err = e.tts.Finalize("4A"); err != nil {
		t.Fatalf("Finalize(): %v", err)
	}

	seeded, err := e.svc.Seed(attendance.SeedRequest{Grade: "4A", Day: "Monday"})
	if err != nil {
		t.Fatalf("Seed(): %v", err)
	}
	want := attendance.Record{
		RollNo: "101",
		Day:    "Monday",
		Entries: []attendance.Entry{
			{Subject: "Math", Status: attendance.StatusNotMarked},
			{Subject: "Science", Status: attendance.StatusNotMarked},
		},
	}
	if got := seeded["101"]; !reflect.DeepEqual(got, want) {
		t.Errorf("Seed()[101] = %+v; want %+v", got, want)
	}
}

func Test_SeedRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		sr      attendance.SeedRequest
		wantErr bool
	}{
		{name: "ok", sr: attendance.SeedRequest{Grade: "4A", Day: "monday"}},
		{name: "missing grade", sr: attendance.SeedRequest{Day: "monday"}, wantErr: true},
		{name: "bad day", sr: attendance.SeedRequest{Grade: "4A", Day: "someday"}, wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.sr.Validate(); (err != nil) != tc.wantErr {
				t.Errorf("Validate() error = %v; wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func Test_StatusUpdate_Validate(t *testing.T) {
	tests := []struct {
		name    string
		su      attendance.StatusUpdate
		wantErr bool
	}{
		{name: "ok", su: attendance.StatusUpdate{RollNo: "101", Day: "monday", Subject: "Math", Status: attendance.StatusPresent}},
		{name: "bad status", su: attendance.StatusUpdate{RollNo: "101", Day: "monday", Subject: "Math", Status: "LATE"}, wantErr: true},
		{name: "missing subject", su: attendance.StatusUpdate{RollNo: "101", Day: "monday", Status: attendance.StatusAbsent}, wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.su.Validate(); (err != nil) != tc.wantErr {
				t.Errorf("Validate() error = %v; wantErr %v", err, tc.wantErr)
			}
		})
	}
}
