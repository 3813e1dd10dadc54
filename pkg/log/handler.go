package log

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

const (
	ErrAttrKey    = "error"
	ErrDetailKey  = "error.detail"
	componentAttr = "component"
)

// appendFields writes alternating key/value pairs onto a zerolog event.
// A leading error without a key is attached under ErrAttrKey. Errors carrying
// a cockroachdb stack get a StacktraceKey entry, and errors whose cause
// implements zerolog.LogObjectMarshaler are expanded under ErrDetailKey.
func appendFields(e *zerolog.Event, fields []any) *zerolog.Event {
	if len(fields)%2 == 1 {
		if err, ok := fields[0].(error); ok {
			e = appendError(e, ErrAttrKey, err)
			fields = fields[1:]
		}
	}
	for i := 0; i+1 < len(fields); i += 2 {
		key := fmt.Sprintf("%v", fields[i])
		switch v := fields[i+1].(type) {
		case error:
			e = appendError(e, key, v)
		case zerolog.LogObjectMarshaler:
			e = e.Object(key, v)
		default:
			e = e.Interface(key, v)
		}
	}
	return e
}

func appendError(e *zerolog.Event, key string, err error) *zerolog.Event {
	e = e.Str(key, err.Error())
	if st := extractStacktrace(err); st != "" {
		e = e.Str(StacktraceKey, st)
	}
	if m, ok := errors.UnwrapAll(err).(zerolog.LogObjectMarshaler); ok {
		e = e.Object(ErrDetailKey, m)
	}
	return e
}

// withFields is the zerolog.Context counterpart of appendFields used by With.
func withFields(c zerolog.Context, fields []any) zerolog.Context {
	for i := 0; i+1 < len(fields); i += 2 {
		key := fmt.Sprintf("%v", fields[i])
		switch v := fields[i+1].(type) {
		case error:
			c = c.Str(key, v.Error())
		case zerolog.LogObjectMarshaler:
			c = c.Object(key, v)
		default:
			c = c.Interface(key, v)
		}
	}
	return c
}

func extractStacktrace(err error) string {
	safeDetails := errors.GetSafeDetails(err).SafeDetails
	if len(safeDetails) > 0 {
		return safeDetails[0]
	}
	return ""
}
