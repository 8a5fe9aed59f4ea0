package inmem

import "github.com/darasani/shule/core/report"

type reportRepository struct {
	db *DB
}

func NewReportRepository(db *DB) report.Repository {
	return &reportRepository{db: db}
}

func (r *reportRepository) SaveDailyReport(rep report.Report) (report.Report, error) {
	t := r.db.reports
	t.mutex.Lock()
	defer t.mutex.Unlock()

	rep.Activities = append([]report.Activity(nil), rep.Activities...)
	reps := t.byRoll[rep.RollNo]
	for i := range reps {
		if reps[i].Date == rep.Date {
			reps[i] = rep
			return copyReport(rep), nil
		}
	}
	t.byRoll[rep.RollNo] = append(reps, rep)
	return copyReport(rep), nil
}

func (r *reportRepository) ListDailyReports(rollNo string) ([]report.Report, error) {
	t := r.db.reports
	t.mutex.RLock()
	defer t.mutex.RUnlock()

	reps, ok := t.byRoll[rollNo]
	if !ok || len(reps) == 0 {
		return nil, report.ErrNotFound
	}
	res := make([]report.Report, 0, len(reps))
	for _, rep := range reps {
		res = append(res, copyReport(rep))
	}
	return res, nil
}

func copyReport(rep report.Report) report.Report {
	rep.Activities = append([]report.Activity(nil), rep.Activities...)
	return rep
}
