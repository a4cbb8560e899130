package logtail

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap/zapcore"
)

// Entry is one record of the JSON log written by internal/logging.
// Lines that are not JSON keep only Message.
type Entry struct {
	Time    time.Time
	Level   zapcore.Level
	Logger  string
	Message string
	Fields  map[string]any
}

// Read returns at most maxLines from the end of the file at path. A
// non-positive maxLines returns every line. A missing file is not an error.
func Read(path string, maxLines int) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if maxLines <= 0 {
		var lines []string
		for scanner.Scan() {
			lines = append(lines, scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("read log: %w", err)
		}
		return lines, nil
	}

	ring := make([]string, maxLines)
	count, next := 0, 0
	for scanner.Scan() {
		ring[next] = scanner.Text()
		next = (next + 1) % maxLines
		if count < maxLines {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}
	if count < maxLines {
		return append([]string(nil), ring[:count]...), nil
	}
	lines := make([]string, 0, count)
	for i := 0; i < count; i++ {
		lines = append(lines, ring[(next+i)%maxLines])
	}
	return lines, nil
}

// Parse decodes one JSON log line.
func Parse(line string) Entry {
	var raw map[string]any
	if err := json.Unmarshal([]byte(line), &raw); err != nil {
		return Entry{Level: zapcore.InfoLevel, Message: line}
	}

	e := Entry{Level: zapcore.InfoLevel, Fields: map[string]any{}}
	for k, v := range raw {
		s, _ := v.(string)
		switch k {
		case "ts":
			if t, err := time.Parse("2006-01-02T15:04:05.000Z0700", s); err == nil {
				e.Time = t
			}
		case "level":
			if lvl, err := zapcore.ParseLevel(s); err == nil {
				e.Level = lvl
			}
		case "logger":
			e.Logger = s
		case "msg":
			e.Message = s
		case "caller":
		default:
			e.Fields[k] = v
		}
	}
	return e
}

// Tail returns the last n entries at or above minLevel, oldest first.
// Filtering happens after the tail is taken.
func Tail(path string, n int, minLevel zapcore.Level) ([]Entry, error) {
	lines, err := Read(path, n)
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		e := Parse(line)
		if e.Level < minLevel {
			continue
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// Format renders e on one line, fields sorted by key.
func (e Entry) Format() string {
	var b strings.Builder
	if !e.Time.IsZero() {
		b.WriteString(e.Time.Format("2006-01-02 15:04:05"))
		b.WriteString(" ")
	}
	b.WriteString(e.Level.CapitalString())
	if e.Logger != "" {
		fmt.Fprintf(&b, " [%s]", e.Logger)
	}
	b.WriteString(" ")
	b.WriteString(e.Message)

	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, e.Fields[k])
	}
	return b.String()
}
