package helpers

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

type Logger interface {
	Println(v ...any)
	Printf(format string, v ...any)
	Print(v ...any)
}

type _silentLogger struct {
}

func (l *_silentLogger) Println(v ...any) {
}
func (l *_silentLogger) Printf(format string, v ...any) {
}
func (l *_silentLogger) Print(v ...any) {
}

var SilentLogger = _silentLogger{}

type _funcLogger struct {
	f func(string)
}

func FuncLogger(f func(string)) Logger {
	return &_funcLogger{f}
}

func (l *_funcLogger) Println(v ...any) {
	l.f(fmt.Sprintln(v...))
}
func (l *_funcLogger) Printf(format string, v ...any) {
	l.f(fmt.Sprintf(format, v...))
}
func (l *_funcLogger) Print(v ...any) {
	l.f(fmt.Sprint(v...))
}

// ZerologLogger forwards Logger calls to a zerolog event at the given level.
type ZerologLogger struct {
	Logger zerolog.Logger
	Level  zerolog.Level
}

var _ Logger = (*ZerologLogger)(nil)

func (l *ZerologLogger) write(s string) {
	l.Logger.WithLevel(l.Level).Msg(strings.TrimRight(s, "\n"))
}

func (l *ZerologLogger) Println(v ...any) {
	l.write(fmt.Sprintln(v...))
}
func (l *ZerologLogger) Printf(format string, v ...any) {
	l.write(fmt.Sprintf(format, v...))
}
func (l *ZerologLogger) Print(v ...any) {
	l.write(fmt.Sprint(v...))
}
