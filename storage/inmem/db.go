// Package inmem is the process-wide registry backing every store for the
// lifetime of the process. Each table carries its own lock, so writers to
// the same entity serialize while unrelated stores stay independent.
package inmem

import (
	"sync"

	"github.com/darasani/shule/core/attendance"
	"github.com/darasani/shule/core/behavior"
	"github.com/darasani/shule/core/diary"
	"github.com/darasani/shule/core/report"
	"github.com/darasani/shule/core/student"
	"github.com/darasani/shule/core/timetable"
)

type (
	DB struct {
		students   *studentTable
		timetables *timetableTable
		attendance *attendanceTable
		diaries    *diaryTable
		reports    *reportTable
		behaviors  *behaviorTable
	}

	studentTable struct {
		mutex  sync.RWMutex
		byRoll map[string]*student.Student
		order  []string // registration order
	}

	timetableTable struct {
		mutex   sync.RWMutex
		byGrade map[string]*timetable.Timetable
	}

	attendanceTable struct {
		mutex  sync.RWMutex
		byRoll map[string]*attendanceDays
	}

	attendanceDays struct {
		order []string // seeding order
		days  map[string][]attendance.Entry
	}

	diaryTable struct {
		mutex  sync.RWMutex
		shared map[string][]diary.Assignment
		byRoll map[string]*diaryDays
	}

	diaryDays struct {
		order []string
		days  map[string][]diary.Task
	}

	reportTable struct {
		mutex  sync.RWMutex
		byRoll map[string][]report.Report
	}

	behaviorTable struct {
		mutex  sync.RWMutex
		byRoll map[string][]behavior.Note
	}
)

func Open() (*DB, error) {
	db := &DB{}
	db.init()
	return db, nil
}

func (db *DB) init() {
	db.students = &studentTable{byRoll: make(map[string]*student.Student)}
	db.timetables = &timetableTable{byGrade: make(map[string]*timetable.Timetable)}
	db.attendance = &attendanceTable{byRoll: make(map[string]*attendanceDays)}
	db.diaries = &diaryTable{
		shared: make(map[string][]diary.Assignment),
		byRoll: make(map[string]*diaryDays),
	}
	db.reports = &reportTable{byRoll: make(map[string][]report.Report)}
	db.behaviors = &behaviorTable{byRoll: make(map[string][]behavior.Note)}
}

// Reset clears every store. This is the explicit administrative teardown;
// nothing else ever empties the registry.
func (db *DB) Reset() {
	db.students.mutex.Lock()
	db.students.byRoll = make(map[string]*student.Student)
	db.students.order = nil
	db.students.mutex.Unlock()

	db.timetables.mutex.Lock()
	db.timetables.byGrade = make(map[string]*timetable.Timetable)
	db.timetables.mutex.Unlock()

	db.attendance.mutex.Lock()
	db.attendance.byRoll = make(map[string]*attendanceDays)
	db.attendance.mutex.Unlock()

	db.diaries.mutex.Lock()
	db.diaries.shared = make(map[string][]diary.Assignment)
	db.diaries.byRoll = make(map[string]*diaryDays)
	db.diaries.mutex.Unlock()

	db.reports.mutex.Lock()
	db.reports.byRoll = make(map[string][]report.Report)
	db.reports.mutex.Unlock()

	db.behaviors.mutex.Lock()
	db.behaviors.byRoll = make(map[string][]behavior.Note)
	db.behaviors.mutex.Unlock()
}
