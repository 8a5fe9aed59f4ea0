package inmem

import "github.com/darasani/shule/core/diary"

type diaryRepository struct {
	db *DB
}

func NewDiaryRepository(db *DB) diary.Repository {
	return &diaryRepository{db: db}
}

// ensure creates the student's empty diary. Called on registration.
func (t *diaryTable) ensure(rollNo string) {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	if _, ok := t.byRoll[rollNo]; !ok {
		t.byRoll[rollNo] = &diaryDays{days: make(map[string][]diary.Task)}
	}
}

func (r *diaryRepository) GetSharedHomework(day string) ([]diary.Assignment, error) {
	t := r.db.diaries
	t.mutex.RLock()
	defer t.mutex.RUnlock()

	tasks, ok := t.shared[day]
	if !ok {
		return nil, diary.ErrNoHomework
	}
	return append([]diary.Assignment(nil), tasks...), nil
}

func (r *diaryRepository) SetSharedHomework(day string, tasks []diary.Assignment) error {
	t := r.db.diaries
	t.mutex.Lock()
	defer t.mutex.Unlock()

	if _, ok := t.shared[day]; ok {
		return diary.ErrHomeworkExists
	}
	t.shared[day] = append([]diary.Assignment(nil), tasks...)
	return nil
}

func (r *diaryRepository) EnsureDiaryDay(rollNo, day string, tasks []diary.Task) ([]diary.Task, error) {
	t := r.db.diaries
	t.mutex.Lock()
	defer t.mutex.Unlock()

	dd, ok := t.byRoll[rollNo]
	if !ok {
		dd = &diaryDays{days: make(map[string][]diary.Task)}
		t.byRoll[rollNo] = dd
	}
	if _, ok := dd.days[day]; !ok {
		dd.days[day] = append([]diary.Task(nil), tasks...)
		dd.order = append(dd.order, day)
	}
	return append([]diary.Task(nil), dd.days[day]...), nil
}

func (r *diaryRepository) UpdateDiaryStatuses(rollNo, day string, statuses map[int]diary.Status) ([]diary.Task, error) {
	t := r.db.diaries
	t.mutex.Lock()
	defer t.mutex.Unlock()

	dd, ok := t.byRoll[rollNo]
	if !ok {
		return nil, diary.ErrDayNotFound
	}
	tasks, ok := dd.days[day]
	if !ok {
		return nil, diary.ErrDayNotFound
	}
	for i, status := range statuses {
		if i >= 0 && i < len(tasks) {
			tasks[i].Status = status
		}
	}
	return append([]diary.Task(nil), tasks...), nil
}

func (r *diaryRepository) GetDiary(rollNo string) ([]diary.DayTasks, error) {
	t := r.db.diaries
	t.mutex.RLock()
	defer t.mutex.RUnlock()

	dd, ok := t.byRoll[rollNo]
	if !ok || len(dd.order) == 0 {
		return nil, diary.ErrNotFound
	}
	res := make([]diary.DayTasks, 0, len(dd.order))
	for _, day := range dd.order {
		res = append(res, diary.DayTasks{
			Day:   day,
			Tasks: append([]diary.Task(nil), dd.days[day]...),
		})
	}
	return res, nil
}

func (r *diaryRepository) GetDiaryDay(rollNo, day string) ([]diary.Task, error) {
	t := r.db.diaries
	t.mutex.RLock()
	defer t.mutex.RUnlock()

	dd, ok := t.byRoll[rollNo]
	if !ok {
		return nil, diary.ErrDayNotFound
	}
	tasks, ok := dd.days[day]
	if !ok {
		return nil, diary.ErrDayNotFound
	}
	return append([]diary.Task(nil), tasks...), nil
}
