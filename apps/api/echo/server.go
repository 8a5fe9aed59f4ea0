package echoapi

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/darasani/shule/apps/api/echo/handlers"
	"github.com/darasani/shule/core"
	"github.com/darasani/shule/core/attendance"
	"github.com/darasani/shule/core/behavior"
	"github.com/darasani/shule/core/diary"
	"github.com/darasani/shule/core/notification"
	"github.com/darasani/shule/core/report"
	"github.com/darasani/shule/core/student"
	"github.com/darasani/shule/core/timetable"
	"github.com/darasani/shule/storage/inmem"
)

type (
	Options struct {
		Addr           string
		DisableReqLogs bool

		Conf     *core.Config
		Logger   core.Logger
		Registry *inmem.DB

		StudentSvc      *student.Service
		TimetableSvc    *timetable.Service
		AttendanceSvc   *attendance.Service
		DiarySvc        *diary.Service
		ReportSvc       *report.Service
		BehaviorSvc     *behavior.Service
		NotificationSvc *notification.Service
	}

	Server interface {
		http.Handler
		Start()
		Stop(context.Context) error
	}

	server struct {
		opts *Options
		app  *echo.Echo
	}
)

var _ Server = (*server)(nil)

func NewServer(opts *Options) Server {
	s := &server{
		opts: opts,
		app:  echo.New(),
	}
	s.setup()
	return s
}

func (s *server) setup() {
	conf := s.opts.Conf

	s.app.Pre(middleware.RemoveTrailingSlash())
	if !s.opts.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(conf.Debug || conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.opts.Logger, func() { _ = s.app.Close() })
	s.app.Debug = conf.Debug

	s.app.GET("/", home(conf))

	g := s.app.Group("")
	handlers.RegisterStudentAPI(g, s.opts.StudentSvc)
	handlers.RegisterTimetableAPI(g, s.opts.TimetableSvc)
	handlers.RegisterAttendanceAPI(g, s.opts.AttendanceSvc)
	handlers.RegisterDiaryAPI(g, s.opts.DiarySvc)
	handlers.RegisterReportAPI(g, s.opts.ReportSvc)
	handlers.RegisterBehaviorAPI(g, s.opts.BehaviorSvc)
	handlers.RegisterNotificationAPI(g, s.opts.NotificationSvc)
	handlers.RegisterAdminAPI(g, s.opts.Registry, conf)
}

func (s *server) Start() {
	s.app.Logger.Fatal(s.app.Start(s.opts.Addr))
}

func (s *server) Stop(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func home(conf *core.Config) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		return ctx.String(http.StatusOK, "Welcome to "+conf.AppName+" API!")
	}
}
