// Package analytics records gameplay events as structured log lines.
package analytics

import (
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Event names.
const (
	EventLevelStart     = "level_start"
	EventLevelComplete  = "level_complete"
	EventProblemAttempt = "problem_attempt"
	EventGameComplete   = "game_complete"
	EventError          = "game_error"
)

// Field is one key/value pair of an event.
type Field struct {
	Key   string
	Value any
}

// Format renders an event as a single logfmt-style line. Strings are quoted,
// durations are rounded to milliseconds.
func Format(event string, fields ...Field) string {
	var b strings.Builder
	b.WriteString("event=")
	b.WriteString(event)
	for _, f := range fields {
		b.WriteByte(' ')
		b.WriteString(f.Key)
		b.WriteByte('=')
		switch v := f.Value.(type) {
		case string:
			b.WriteString(strconv.Quote(v))
		case time.Duration:
			b.WriteString(v.Round(time.Millisecond).String())
		default:
			fmt.Fprint(&b, v)
		}
	}
	return b.String()
}

// Logger writes every event to a *log.Logger.
type Logger struct {
	l *log.Logger
}

// NewLogger returns a Logger writing to l, or to the standard logger when l
// is nil.
func NewLogger(l *log.Logger) *Logger {
	if l == nil {
		l = log.Default()
	}
	return &Logger{l: l}
}

func (a *Logger) emit(event string, fields ...Field) {
	a.l.Println(Format(event, fields...))
}

func (a *Logger) LevelStart(level int, enemyName string) {
	a.emit(EventLevelStart, Field{"level", level}, Field{"enemy_name", enemyName})
}

func (a *Logger) LevelComplete(level int, enemyName string, spent time.Duration) {
	a.emit(EventLevelComplete,
		Field{"level", level},
		Field{"enemy_name", enemyName},
		Field{"time_spent", spent})
}

func (a *Logger) ProblemAttempt(level int, problemType string, correct bool, spent time.Duration) {
	a.emit(EventProblemAttempt,
		Field{"level", level},
		Field{"problem_type", problemType},
		Field{"is_correct", correct},
		Field{"time_spent", spent})
}

func (a *Logger) GameComplete(total time.Duration, levelsCompleted int) {
	a.emit(EventGameComplete, Field{"total_time", total}, Field{"levels_completed", levelsCompleted})
}

func (a *Logger) Error(kind, message string) {
	a.emit(EventError, Field{"error_type", kind}, Field{"error_message", message})
}

// Summary tallies events in memory. It is safe for concurrent use.
type Summary struct {
	mu sync.Mutex

	Attempts        int
	Correct         int
	ByCategory      map[string][2]int // correct, total
	LevelsCompleted int
	Errors          int
	Finished        bool
}

func NewSummary() *Summary {
	return &Summary{ByCategory: make(map[string][2]int)}
}

func (s *Summary) LevelStart(int, string) {}

func (s *Summary) LevelComplete(int, string, time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.LevelsCompleted++
}

func (s *Summary) ProblemAttempt(_ int, problemType string, correct bool, _ time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Attempts++
	c := s.ByCategory[problemType]
	c[1]++
	if correct {
		s.Correct++
		c[0]++
	}
	s.ByCategory[problemType] = c
}

func (s *Summary) GameComplete(time.Duration, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Finished = true
}

func (s *Summary) Error(string, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Errors++
}

// Accuracy is the share of correct attempts, or 0 before any attempt.
func (s *Summary) Accuracy() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Attempts == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Attempts)
}

// Sink is the set of events a Tee forwards.
type Sink interface {
	LevelStart(level int, enemyName string)
	LevelComplete(level int, enemyName string, spent time.Duration)
	ProblemAttempt(level int, problemType string, correct bool, spent time.Duration)
	GameComplete(total time.Duration, levelsCompleted int)
	Error(kind, message string)
}

// Tee forwards every event to each of its sinks in order.
type Tee []Sink

func (t Tee) LevelStart(level int, enemyName string) {
	for _, s := range t {
		s.LevelStart(level, enemyName)
	}
}

func (t Tee) LevelComplete(level int, enemyName string, spent time.Duration) {
	for _, s := range t {
		s.LevelComplete(level, enemyName, spent)
	}
}

func (t Tee) ProblemAttempt(level int, problemType string, correct bool, spent time.Duration) {
	for _, s := range t {
		s.ProblemAttempt(level, problemType, correct, spent)
	}
}

func (t Tee) GameComplete(total time.Duration, levelsCompleted int) {
	for _, s := range t {
		s.GameComplete(total, levelsCompleted)
	}
}

func (t Tee) Error(kind, message string) {
	for _, s := range t {
		s.Error(kind, message)
	}
}
