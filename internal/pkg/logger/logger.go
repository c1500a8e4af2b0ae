package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Logger define a interface para logging estruturado.
// A aplicação (Handler, Service, Repository) deve depender apenas desta interface.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error)
	Fatal(msg string, err error)
}

// SimpleLogger é a implementação concreta da interface Logger.
// Escreve uma linha JSON por entrada, com os campos agrupados em "fields".
type SimpleLogger struct {
	slog *slog.Logger
	exit func(code int)
}

// NewLogger cria e retorna uma nova instância do Logger escrevendo em stdout.
// Esta função é chamada no main.go.
func NewLogger(level string) Logger {
	return NewLoggerWithWriter(level, os.Stdout)
}

// NewLoggerWithWriter permite direcionar a saída (usado nos testes).
func NewLoggerWithWriter(level string, w io.Writer) Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: parseLevel(level),
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			// Mantém os nomes de chave usados nos dashboards existentes.
			switch a.Key {
			case slog.TimeKey:
				a.Key = "timestamp"
			case slog.MessageKey:
				a.Key = "message"
			}
			return a
		},
	})
	return &SimpleLogger{slog: slog.New(handler), exit: os.Exit}
}

// parseLevel converte o nível textual da configuração. Desconhecido vira info.
func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error", "fatal":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (l *SimpleLogger) log(level slog.Level, msg string, fields map[string]interface{}, err error) {
	ctx := context.Background()
	if !l.slog.Enabled(ctx, level) {
		return
	}

	attrs := make([]slog.Attr, 0, 2)
	if len(fields) > 0 {
		group := make([]any, 0, len(fields)*2)
		for k, v := range fields {
			group = append(group, k, v)
		}
		attrs = append(attrs, slog.Group("fields", group...))
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	l.slog.LogAttrs(ctx, level, msg, attrs...)
}

// Implementações da Interface Logger

func (l *SimpleLogger) Debug(msg string, fields map[string]interface{}) {
	l.log(slog.LevelDebug, msg, fields, nil)
}

func (l *SimpleLogger) Info(msg string, fields map[string]interface{}) {
	l.log(slog.LevelInfo, msg, fields, nil)
}

func (l *SimpleLogger) Warn(msg string, fields map[string]interface{}) {
	l.log(slog.LevelWarn, msg, fields, nil)
}

func (l *SimpleLogger) Error(msg string, err error) {
	l.log(slog.LevelError, msg, nil, err)
}

// Fatal registra o erro e encerra o processo.
func (l *SimpleLogger) Fatal(msg string, err error) {
	l.log(slog.LevelError, msg, map[string]interface{}{"fatal": true}, err)
	l.exit(1)
}
