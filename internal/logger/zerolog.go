package logger

import (
	"io"
	"maps"
	"os"
	"slices"
	"time"

	"github.com/rs/zerolog"
)

type ZerologAdapter struct {
	logger zerolog.Logger
}

func NewZerolog(writer io.Writer, level zerolog.Level) *ZerologAdapter {
	logger := zerolog.New(writer).
		Level(level).
		With().
		Timestamp().
		Logger()

	return &ZerologAdapter{logger: logger}
}

func NewConsoleLogger(level zerolog.Level) *ZerologAdapter {
	consoleWriter := zerolog.ConsoleWriter{Out: os.Stderr}
	return NewZerolog(consoleWriter, level)
}

// New picks JSON or console output on stderr.
func New(level zerolog.Level, json bool) *ZerologAdapter {
	return NewWriter(os.Stderr, level, json)
}

// NewWriter logs to w as JSON lines or as human-readable console output.
func NewWriter(w io.Writer, level zerolog.Level, json bool) *ZerologAdapter {
	if json {
		return NewZerolog(w, level)
	}
	return NewZerolog(zerolog.ConsoleWriter{Out: w, NoColor: true}, level)
}

// ComponentField keys the subsystem that emitted an entry.
const ComponentField = "component"

// sized matches frames and leases so they log as their dimensions.
type sized interface {
	Width() int
	Height() int
}

func (z *ZerologAdapter) Debug(component, message string, fields map[string]interface{}) {
	withFields(z.logger.Debug(), component, fields).Msg(message)
}

func (z *ZerologAdapter) Info(component, message string, fields map[string]interface{}) {
	withFields(z.logger.Info(), component, fields).Msg(message)
}

func (z *ZerologAdapter) Warning(component, message string, fields map[string]interface{}) {
	withFields(z.logger.Warn(), component, fields).Msg(message)
}

func (z *ZerologAdapter) Error(component string, err error, fields map[string]interface{}) {
	withFields(z.logger.Error().Err(err), component, fields).Msg("operation failed")
}

// withFields appends fields in key order, using typed encoders for the
// values the pipeline logs most.
func withFields(event *zerolog.Event, component string, fields map[string]interface{}) *zerolog.Event {
	event = event.Str(ComponentField, component)

	for _, k := range slices.Sorted(maps.Keys(fields)) {
		switch v := fields[k].(type) {
		case string:
			event = event.Str(k, v)
		case int:
			event = event.Int(k, v)
		case uint8:
			event = event.Uint8(k, v)
		case uint32:
			event = event.Uint32(k, v)
		case int64:
			event = event.Int64(k, v)
		case float64:
			event = event.Float64(k, v)
		case bool:
			event = event.Bool(k, v)
		case time.Duration:
			event = event.Dur(k, v)
		case error:
			event = event.AnErr(k, v)
		case sized:
			event = event.Dict(k, zerolog.Dict().Int("width", v.Width()).Int("height", v.Height()))
		default:
			event = event.Interface(k, v)
		}
	}

	return event
}
