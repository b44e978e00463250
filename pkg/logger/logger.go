// Package logger arma el logger estructurado de la aplicación sobre
// zerolog: consola legible fuera de producción, JSON en producción.
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config salida y nivel del logger.
type Config struct {
	Env   string // production activa salida JSON
	Level string // trace, debug, info, warn, error
}

// Logger envoltorio inyectable sobre zerolog.
type Logger struct {
	zl zerolog.Logger
}

// New construye el logger según el entorno y lo instala también como
// logger global de zerolog, para las librerías que escriben ahí.
func New(cfg Config) *Logger {
	var out io.Writer = os.Stdout
	if cfg.Env != "production" {
		out = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.TimeOnly}
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	zl := zerolog.New(out).Level(lvl).With().Timestamp().Logger()
	log.Logger = zl
	return &Logger{zl: zl}
}

func (l *Logger) Debug() *zerolog.Event { return l.zl.Debug() }
func (l *Logger) Info() *zerolog.Event  { return l.zl.Info() }
func (l *Logger) Warn() *zerolog.Event  { return l.zl.Warn() }
func (l *Logger) Error() *zerolog.Event { return l.zl.Error() }

// Fatal registra y termina el proceso al emitir el evento.
func (l *Logger) Fatal() *zerolog.Event { return l.zl.Fatal() }
