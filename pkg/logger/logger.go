package logger

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config opciones del logger.
type Config struct {
	Env   string // "development" imprime consola legible; cualquier otro valor, JSON
	Level string // trace | debug | info | warn | error
}

// Logger envuelve zerolog para inyectarlo por constructor en lugar de depender
// del logger global.
type Logger struct {
	zl zerolog.Logger
}

// New construye el logger raíz del proceso. El global de zerolog se redirige
// al mismo destino para las librerías que loguean por su cuenta.
func New(cfg Config) *Logger {
	nivel, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil || nivel == zerolog.NoLevel {
		nivel = zerolog.InfoLevel
	}

	zl := zerolog.New(os.Stdout)
	if cfg.Env == "development" {
		zl = zl.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: "15:04:05"})
	}
	zl = zl.Level(nivel).With().Timestamp().Logger()
	log.Logger = zl

	return &Logger{zl: zl}
}

// Nop devuelve un logger que descarta todo. Para tests.
func Nop() *Logger {
	return &Logger{zl: zerolog.Nop()}
}

// Con devuelve un sublogger con un campo fijo, típicamente el componente.
func (l *Logger) Con(clave, valor string) *Logger {
	return &Logger{zl: l.zl.With().Str(clave, valor).Logger()}
}

// With expone el contexto de zerolog para campos fijos arbitrarios.
func (l *Logger) With() zerolog.Context { return l.zl.With() }

func (l *Logger) Trace() *zerolog.Event { return l.zl.Trace() }
func (l *Logger) Debug() *zerolog.Event { return l.zl.Debug() }
func (l *Logger) Info() *zerolog.Event  { return l.zl.Info() }
func (l *Logger) Warn() *zerolog.Event  { return l.zl.Warn() }
func (l *Logger) Error() *zerolog.Event { return l.zl.Error() }
func (l *Logger) Fatal() *zerolog.Event { return l.zl.Fatal() }
