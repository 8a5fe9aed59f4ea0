package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	echoapi "github.com/darasani/shule/apps/api/echo"
	"github.com/darasani/shule/core"
	"github.com/darasani/shule/core/attendance"
	"github.com/darasani/shule/core/behavior"
	"github.com/darasani/shule/core/diary"
	"github.com/darasani/shule/core/notification"
	"github.com/darasani/shule/core/report"
	"github.com/darasani/shule/core/student"
	"github.com/darasani/shule/core/timetable"
	emailsvc "github.com/darasani/shule/services/email"
	logsvc "github.com/darasani/shule/services/logger"
	"github.com/darasani/shule/storage/inmem"
)

func main() {
	// =========================================================================
	// Set up Dependencies

	conf := core.NewConfig()

	std := log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	var logger core.Logger
	if conf.Debug {
		logger = logsvc.NewStdLogger(std)
	} else {
		rollbarLogger := logsvc.NewRollbarLogger(std, conf)
		rollbarLogger.Enable(true)
		logger = rollbarLogger
	}

	// set up storage
	db, err := inmem.Open()
	if err != nil {
		logger.Fatal(fmt.Sprintf("opening registry: %v", err), err)
	}

	studentRepo := inmem.NewStudentRepository(db)
	timetableRepo := inmem.NewTimetableRepository(db)
	attendanceRepo := inmem.NewAttendanceRepository(db)
	diaryRepo := inmem.NewDiaryRepository(db)
	reportRepo := inmem.NewReportRepository(db)
	behaviorRepo := inmem.NewBehaviorRepository(db)

	// set up services
	var mailSvc core.EmailService
	if conf.Debug {
		mailSvc = emailsvc.NewConsoleService(conf)
	} else {
		mailSvc = emailsvc.NewSendgridService(conf, logger)
	}

	studentSvc := student.NewService(studentRepo)
	timetableSvc, err := timetable.NewService(timetableRepo, conf)
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up timetable service: %v", err), err)
	}
	attendanceSvc := attendance.NewService(attendanceRepo, studentRepo, timetableRepo)
	diarySvc := diary.NewService(diaryRepo, studentRepo)
	reportSvc := report.NewService(reportRepo, studentRepo)
	behaviorSvc := behavior.NewService(behaviorRepo, studentRepo)
	notificationSvc := notification.NewService(
		studentRepo, attendanceRepo, diaryRepo, reportRepo, behaviorRepo, mailSvc, conf)

	// =========================================================================
	// Start API Service

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	server := echoapi.NewServer(&echoapi.Options{
		Addr:     conf.Server.Addr,
		Conf:     conf,
		Logger:   logger,
		Registry: db,

		StudentSvc:      studentSvc,
		TimetableSvc:    timetableSvc,
		AttendanceSvc:   attendanceSvc,
		DiarySvc:        diarySvc,
		ReportSvc:       reportSvc,
		BehaviorSvc:     behaviorSvc,
		NotificationSvc: notificationSvc,
	})

	go server.Start()

	// =========================================================================
	// Shutdown

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	sig := <-shutdown
	logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

	// give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
	defer cancel()

	if err = server.Stop(ctx); err != nil {
		logger.Fatal(fmt.Sprintf("could not stop server gracefully: %v", err), err)
	}
}
