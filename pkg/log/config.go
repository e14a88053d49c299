package log

import (
	"io"
	stdlog "log"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// DefaultServiceName tags every gateway log line when Config leaves it empty.
const DefaultServiceName = "storefront-gateway"

// Config controls the gateway logger. Level and Pretty come from the log
// section of the gateway configuration (LOG_LEVEL); Pretty switches to the
// human readable console format for local runs.
type Config struct {
	Level       string `mapstructure:"level"`
	Pretty      bool   `mapstructure:"pretty"`
	ServiceName string `mapstructure:"service_name"`
}

var (
	global zerolog.Logger
	once   sync.Once
)

func init() {
	// Used by config loading failures, which happen before Init.
	global = zerolog.New(os.Stdout).With().Timestamp().Str(FieldService, DefaultServiceName).Logger()
}

// New builds the gateway logger on stdout.
func New(cfg Config) zerolog.Logger {
	return NewWithWriter(cfg, os.Stdout)
}

// NewWithWriter builds the gateway logger on w. Tests pass a buffer and
// decode the JSON lines; every line carries the service field.
func NewWithWriter(cfg Config, w io.Writer) zerolog.Logger {
	if cfg.Pretty {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}

	service := strings.TrimSpace(cfg.ServiceName)
	if service == "" {
		service = DefaultServiceName
	}

	return zerolog.New(w).
		Level(parseLevel(cfg.Level)).
		With().
		Timestamp().
		Str(FieldService, service).
		Logger()
}

// Init installs the process logger. cmd/gateway calls it once after the
// configuration is loaded; later calls are ignored. Gorm and gin debug
// output go through the stdlib logger, which is redirected here with
// source=stdlog.
func Init(cfg Config) {
	once.Do(func() {
		global = New(cfg)

		stdlog.SetFlags(0)
		stdlog.SetOutput(global.With().Str("source", "stdlog").Logger())
	})
}

// L returns the process logger. Request scoped code should prefer Ctx,
// which carries the request id and customer id.
func L() zerolog.Logger {
	return global
}

// parseLevel maps LOG_LEVEL to a zerolog level. Unknown values log at info.
func parseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "fatal":
		return zerolog.FatalLevel
	case "disabled", "off":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}
