package logger

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// Config opciones del logger del servicio.
type Config struct {
	Service string // estampado como campo fijo en cada evento
	Env     string // development -> consola legible; cualquier otro -> JSON
	Level   string // debug, info, warn, error
}

// Logger expone los niveles que la aplicación emite: eventos operativos
// (auditoría, notificaciones, ciclo de vida), fallos recuperables y
// arranque fallido.
type Logger struct {
	zl zerolog.Logger
}

// New construye el logger. En development escribe consola legible; en
// cualquier otro entorno, una línea JSON por evento, con timestamp y el
// nombre del servicio en cada una.
func New(cfg Config) *Logger {
	var w io.Writer = os.Stdout
	if cfg.Env == "development" {
		w = zerolog.ConsoleWriter{Out: os.Stdout}
	}
	zl := zerolog.New(w).
		Level(parseLevel(cfg.Level)).
		With().
		Timestamp().
		Str("service", cfg.Service).
		Logger()
	return &Logger{zl: zl}
}

func parseLevel(s string) zerolog.Level {
	switch s {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// Info evento operativo.
func (l *Logger) Info() *zerolog.Event { return l.zl.Info() }

// Error fallo recuperable.
func (l *Logger) Error() *zerolog.Event { return l.zl.Error() }

// Fatal registra el error y termina el proceso; solo durante el arranque.
func (l *Logger) Fatal() *zerolog.Event { return l.zl.Fatal() }
