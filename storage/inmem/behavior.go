package inmem

import "github.com/darasani/shule/core/behavior"

type behaviorRepository struct {
	db *DB
}

func NewBehaviorRepository(db *DB) behavior.Repository {
	return &behaviorRepository{db: db}
}

func (r *behaviorRepository) AppendBehaviorNote(rollNo string, note behavior.Note) (behavior.Note, error) {
	t := r.db.behaviors
	t.mutex.Lock()
	defer t.mutex.Unlock()

	t.byRoll[rollNo] = append(t.byRoll[rollNo], note)
	return note, nil
}

func (r *behaviorRepository) ListBehaviorNotes(rollNo string) ([]behavior.Note, error) {
	t := r.db.behaviors
	t.mutex.RLock()
	defer t.mutex.RUnlock()

	notes, ok := t.byRoll[rollNo]
	if !ok || len(notes) == 0 {
		return nil, behavior.ErrNotFound
	}
	return append([]behavior.Note(nil), notes...), nil
}
