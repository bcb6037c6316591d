package telemetry

import (
	"regexp"
	"strconv"
	"strings"
)

// Frame is the source location of a single stack trace call site.
type Frame struct {
	File string
	Line int
}

var (
	// "at getAll (/app/controllers/tasks.go:43:11)"
	parenFrame = regexp.MustCompile(`\(([^()]+):(\d+):(\d+)\)\s*$`)
	// "at /app/controllers/tasks.go:43:11"
	bareFrame = regexp.MustCompile(`\bat\s+([^\s()]+):(\d+):(\d+)\s*$`)
)

// frameMatchers are applied per line, in order; the first one that
// yields a non-empty file name and an integer line number wins.
var frameMatchers = []func(string) (Frame, bool){
	matchParenthesized,
	matchBare,
}

// Locate scans a raw newline-delimited trace for the first call frame
// carrying a usable source location. The leading message line is
// skipped. Locate is best-effort: when no line matches either frame
// format it returns (Frame{}, false) and never errors.
func Locate(trace string) (Frame, bool) {
	lines := strings.Split(trace, "\n")
	if len(lines) < 2 {
		return Frame{}, false
	}
	for _, line := range lines[1:] {
		for _, match := range frameMatchers {
			if f, ok := match(line); ok {
				return f, true
			}
		}
	}
	return Frame{}, false
}

func matchParenthesized(line string) (Frame, bool) {
	return frameFrom(parenFrame.FindStringSubmatch(line))
}

func matchBare(line string) (Frame, bool) {
	return frameFrom(bareFrame.FindStringSubmatch(line))
}

func frameFrom(m []string) (Frame, bool) {
	if len(m) < 3 {
		return Frame{}, false
	}
	file := baseName(m[1])
	line, err := strconv.Atoi(m[2])
	if file == "" || err != nil || line <= 0 {
		return Frame{}, false
	}
	return Frame{File: file, Line: line}, true
}

// baseName returns the path segment after the last separator, handling
// both slash styles since traces may originate on either platform.
func baseName(path string) string {
	if i := strings.LastIndexAny(path, `/\`); i >= 0 {
		return path[i+1:]
	}
	return path
}
