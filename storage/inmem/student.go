package inmem

import (
	"time"

	"github.com/darasani/shule/core/student"
)

type studentRepository struct {
	db *DB
}

func NewStudentRepository(db *DB) student.Repository {
	return &studentRepository{db: db}
}

func (r *studentRepository) CreateStudent(stu student.Student) (student.Student, error) {
	t := r.db.students
	t.mutex.Lock()
	if _, ok := t.byRoll[stu.RollNo]; ok {
		t.mutex.Unlock()
		return student.Student{}, student.ErrRollNoExists
	}
	cp := copyStudent(stu)
	t.byRoll[stu.RollNo] = &cp
	t.order = append(t.order, stu.RollNo)
	t.mutex.Unlock()

	// a registered student always has a (possibly empty) diary
	r.db.diaries.ensure(stu.RollNo)

	return stu, nil
}

func (r *studentRepository) GetStudent(rollNo string) (student.Student, error) {
	t := r.db.students
	t.mutex.RLock()
	defer t.mutex.RUnlock()

	if stu, ok := t.byRoll[rollNo]; ok {
		return copyStudent(*stu), nil
	}
	return student.Student{}, student.ErrNotFound
}

func (r *studentRepository) QueryAllStudents() ([]student.Student, error) {
	t := r.db.students
	t.mutex.RLock()
	defer t.mutex.RUnlock()

	res := make([]student.Student, 0, len(t.order))
	for _, roll := range t.order {
		res = append(res, copyStudent(*t.byRoll[roll]))
	}
	return res, nil
}

func (r *studentRepository) FilterStudentsByGrade(gradeKey string) ([]student.Student, error) {
	t := r.db.students
	t.mutex.RLock()
	defer t.mutex.RUnlock()

	res := make([]student.Student, 0)
	for _, roll := range t.order {
		if stu := t.byRoll[roll]; stu.GradeKey() == gradeKey {
			res = append(res, copyStudent(*stu))
		}
	}
	return res, nil
}

func (r *studentRepository) UpdateStudentContacts(rollNo string, emails []string) (student.Student, error) {
	t := r.db.students
	t.mutex.Lock()
	defer t.mutex.Unlock()

	stu, ok := t.byRoll[rollNo]
	if !ok {
		return student.Student{}, student.ErrNotFound
	}
	stu.ParentEmails = append([]string(nil), emails...)
	stu.UpdatedAt = time.Now().UTC()
	return copyStudent(*stu), nil
}

func copyStudent(stu student.Student) student.Student {
	// an empty contact list must read back empty, not null
	if stu.ParentEmails != nil {
		stu.ParentEmails = append([]string{}, stu.ParentEmails...)
	}
	return stu
}
