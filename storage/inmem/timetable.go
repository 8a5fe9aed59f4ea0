package inmem

import (
	"time"

	"github.com/darasani/shule/core/timetable"
)

type timetableRepository struct {
	db *DB
}

func NewTimetableRepository(db *DB) timetable.Repository {
	return &timetableRepository{db: db}
}

func (r *timetableRepository) GetTimetable(gradeKey string) (timetable.Timetable, error) {
	t := r.db.timetables
	t.mutex.RLock()
	defer t.mutex.RUnlock()

	if tt, ok := t.byGrade[gradeKey]; ok {
		return copyTimetable(*tt), nil
	}
	return timetable.Timetable{}, timetable.ErrNotFound
}

func (r *timetableRepository) SaveTimetable(tt timetable.Timetable) (timetable.Timetable, error) {
	t := r.db.timetables
	t.mutex.Lock()
	defer t.mutex.Unlock()

	if stored, ok := t.byGrade[tt.Grade]; ok {
		if stored.Finalized() {
			return timetable.Timetable{}, timetable.ErrLocked
		}
		tt.CreatedAt = stored.CreatedAt
	}
	cp := copyTimetable(tt)
	t.byGrade[tt.Grade] = &cp
	return tt, nil
}

func (r *timetableRepository) FinalizeTimetable(gradeKey string) (timetable.Timetable, error) {
	t := r.db.timetables
	t.mutex.Lock()
	defer t.mutex.Unlock()

	tt, ok := t.byGrade[gradeKey]
	if !ok {
		return timetable.Timetable{}, timetable.ErrNotFound
	}
	if !tt.Finalized() {
		tt.State = timetable.StateFinalized
		tt.UpdatedAt = time.Now().UTC()
	}
	return copyTimetable(*tt), nil
}

func copyTimetable(tt timetable.Timetable) timetable.Timetable {
	days := make(map[string][]timetable.TimeSlot, len(tt.Days))
	for day, slots := range tt.Days {
		days[day] = append([]timetable.TimeSlot(nil), slots...)
	}
	tt.Days = days
	return tt
}
