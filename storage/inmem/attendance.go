package inmem

import "github.com/darasani/shule/core/attendance"

type attendanceRepository struct {
	db *DB
}

func NewAttendanceRepository(db *DB) attendance.Repository {
	return &attendanceRepository{db: db}
}

func (r *attendanceRepository) SeedAttendance(rec attendance.Record) (attendance.Record, error) {
	t := r.db.attendance
	t.mutex.Lock()
	defer t.mutex.Unlock()

	dr, ok := t.byRoll[rec.RollNo]
	if !ok {
		dr = &attendanceDays{days: make(map[string][]attendance.Entry)}
		t.byRoll[rec.RollNo] = dr
	}

	stored, ok := dr.days[rec.Day]
	if !ok {
		dr.days[rec.Day] = append([]attendance.Entry(nil), rec.Entries...)
		dr.order = append(dr.order, rec.Day)
	} else {
		// keep already-seeded subjects untouched, append only new ones
		seen := make(map[string]struct{}, len(stored))
		for _, e := range stored {
			seen[e.Subject] = struct{}{}
		}
		for _, e := range rec.Entries {
			if _, dup := seen[e.Subject]; !dup {
				stored = append(stored, e)
			}
		}
		dr.days[rec.Day] = stored
	}

	return attendance.Record{
		RollNo:  rec.RollNo,
		Day:     rec.Day,
		Entries: append([]attendance.Entry(nil), dr.days[rec.Day]...),
	}, nil
}

func (r *attendanceRepository) GetAttendance(rollNo, day string) (attendance.Record, error) {
	t := r.db.attendance
	t.mutex.RLock()
	defer t.mutex.RUnlock()

	dr, ok := t.byRoll[rollNo]
	if !ok {
		return attendance.Record{}, attendance.ErrNotFound
	}
	entries, ok := dr.days[day]
	if !ok {
		return attendance.Record{}, attendance.ErrNotFound
	}
	return attendance.Record{
		RollNo:  rollNo,
		Day:     day,
		Entries: append([]attendance.Entry(nil), entries...),
	}, nil
}

func (r *attendanceRepository) ListAttendance(rollNo string) ([]attendance.Record, error) {
	t := r.db.attendance
	t.mutex.RLock()
	defer t.mutex.RUnlock()

	dr, ok := t.byRoll[rollNo]
	if !ok || len(dr.order) == 0 {
		return nil, attendance.ErrNotFound
	}
	recs := make([]attendance.Record, 0, len(dr.order))
	for _, day := range dr.order {
		recs = append(recs, attendance.Record{
			RollNo:  rollNo,
			Day:     day,
			Entries: append([]attendance.Entry(nil), dr.days[day]...),
		})
	}
	return recs, nil
}

func (r *attendanceRepository) SetAttendanceStatus(rollNo, day, subject string, status attendance.Status) (attendance.Record, error) {
	t := r.db.attendance
	t.mutex.Lock()
	defer t.mutex.Unlock()

	dr, ok := t.byRoll[rollNo]
	if !ok {
		return attendance.Record{}, attendance.ErrNotFound
	}
	entries, ok := dr.days[day]
	if !ok {
		return attendance.Record{}, attendance.ErrNotFound
	}
	for i := range entries {
		if entries[i].Subject == subject {
			entries[i].Status = status
			return attendance.Record{
				RollNo:  rollNo,
				Day:     day,
				Entries: append([]attendance.Entry(nil), entries...),
			}, nil
		}
	}
	return attendance.Record{}, attendance.ErrUnknownSubject
}
