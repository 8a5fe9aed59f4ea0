package echoapi

import (
	stderrors "errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/darasani/shule/core"
	"github.com/darasani/shule/core/attendance"
	"github.com/darasani/shule/core/behavior"
	"github.com/darasani/shule/core/diary"
	"github.com/darasani/shule/core/notification"
	"github.com/darasani/shule/core/report"
	"github.com/darasani/shule/core/student"
	"github.com/darasani/shule/core/timetable"
)

var (
	notFoundErrs = []error{
		student.ErrNotFound,
		timetable.ErrNotFound,
		timetable.ErrDayNotFound,
		attendance.ErrNotFound,
		diary.ErrNotFound,
		diary.ErrDayNotFound,
		report.ErrNotFound,
		behavior.ErrNotFound,
	}
	conflictErrs = []error{
		timetable.ErrLocked,
		student.ErrRollNoExists,
		diary.ErrHomeworkExists,
	}
	badRequestErrs = []error{
		attendance.ErrNotReady,
		attendance.ErrUnknownSubject,
		diary.ErrNoHomework,
		notification.ErrNoRecipient,
	}
)

// newAppHTTPErrorHandler returns a custom echo.HTTPErrorHandler that maps the
// domain error taxonomy onto HTTP statuses. signalShutdown is called whenever
// a core shutdown error is caught.
func newAppHTTPErrorHandler(logger core.Logger, signalShutdown func()) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		var code int
		var message interface{}

		switch origErr := errors.Cause(err).(type) {
		case *echo.HTTPError:
			if origErr.Internal != nil {
				if herr, ok := origErr.Internal.(*echo.HTTPError); ok {
					origErr = herr
				}
			}
			code = origErr.Code
			message = origErr.Message
		case validator.ValidationErrors:
			fldErrs := make(map[string]string, len(origErr))
			for _, vErr := range origErr {
				fldErrs[vErr.Field()] = vErr.Translate(core.Translator)
			}
			code = http.StatusBadRequest
			message = fldErrs
		case *core.ValidationError:
			if origErr.Fields != nil {
				fldErrs := make(map[string]string, len(origErr.Fields))
				for _, fErr := range origErr.Fields {
					fldErrs[fErr.Field] = fErr.Error
				}
				message = fldErrs
			} else {
				message = origErr.Error()
			}
			code = http.StatusBadRequest
		default:
			switch {
			case isAny(err, notFoundErrs...):
				code = http.StatusNotFound
				message = origErr.Error()
			case isAny(err, conflictErrs...):
				code = http.StatusConflict
				message = origErr.Error()
			case isAny(err, badRequestErrs...):
				code = http.StatusBadRequest
				message = origErr.Error()
			default: // any other error is a server error
				code = http.StatusInternalServerError
				msg := http.StatusText(http.StatusInternalServerError)
				message = msg
				logger.Error(msg, errors.Wrap(err, msg))

				// shutting down...
				if core.IsShutdown(err) {
					signalShutdown()
				}
			}
		}

		if ctx.Echo().Debug && code >= http.StatusInternalServerError {
			message = err.Error()
		}
		if m, ok := message.(string); ok {
			message = echo.Map{"error": m}
		}

		// Send response
		if !ctx.Response().Committed {
			if ctx.Request().Method == http.MethodHead { // Issue #608
				err = ctx.NoContent(code)
			} else {
				err = ctx.JSON(code, message)
			}
			if err != nil {
				ctx.Echo().Logger.Error(err)
			}
		}
	}
}

func isAny(err error, targets ...error) bool {
	for _, t := range targets {
		if stderrors.Is(err, t) {
			return true
		}
	}
	return false
}
