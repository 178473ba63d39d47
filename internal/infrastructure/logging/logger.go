package logging

import (
	"io"
	"os"
	"time"

	"github.com/rafabene/usermanager/internal/domain/ports"
	"github.com/rs/zerolog"
)

// ZerologLogger implementa ports.Logger usando zerolog
type ZerologLogger struct {
	logger zerolog.Logger
}

// NewLogger cria um logger JSON em stdout; em development usa o console writer
func NewLogger(env, level, service string) ports.Logger {
	var out io.Writer = os.Stdout
	if env == "development" {
		out = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	}
	return NewWithWriter(out, level, service)
}

// NewWithWriter cria um logger escrevendo em w (usado pela CLI e pelos testes)
func NewWithWriter(w io.Writer, level, service string) ports.Logger {
	zerolog.TimeFieldFormat = time.RFC3339

	logger := zerolog.New(w).
		Level(ParseLevel(level)).
		With().
		Timestamp().
		Str("service", service).
		Logger()

	return &ZerologLogger{logger: logger}
}

// ParseLevel converte o nível textual; valores desconhecidos viram info
func ParseLevel(level string) zerolog.Level {
	switch level {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "disabled":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

func (l *ZerologLogger) Info(msg string, args ...any) {
	l.logger.Info().Fields(args).Msg(msg)
}

func (l *ZerologLogger) Error(msg string, args ...any) {
	l.logger.Error().Fields(args).Msg(msg)
}

func (l *ZerologLogger) Debug(msg string, args ...any) {
	l.logger.Debug().Fields(args).Msg(msg)
}

func (l *ZerologLogger) Warn(msg string, args ...any) {
	l.logger.Warn().Fields(args).Msg(msg)
}

func (l *ZerologLogger) With(args ...any) ports.Logger {
	return &ZerologLogger{
		logger: l.logger.With().Fields(args).Logger(),
	}
}

// Nop retorna um logger que descarta tudo
func Nop() ports.Logger {
	return &ZerologLogger{logger: zerolog.Nop()}
}
