package telemetry

import (
	"testing"
)

func TestLocate(t *testing.T) {
	tests := []struct {
		name     string
		trace    string
		wantFile string
		wantLine int
		wantOK   bool
	}{
		{
			name: "parenthesized frame",
			trace: "Error: boom\n" +
				"    at getAll (/app/Controllers/TestController.js:43:11)\n" +
				"    at next (...)",
			wantFile: "TestController.js",
			wantLine: 43,
			wantOK:   true,
		},
		{
			name: "bare frame",
			trace: "Error: boom\n" +
				"    at /app/routes/index.js:17:3",
			wantFile: "index.js",
			wantLine: 17,
			wantOK:   true,
		},
		{
			name: "bare frame after unmatchable lines",
			trace: "Error: boom\n" +
				"    at <anonymous>\n" +
				"    at /srv/api/server.js:101:22",
			wantFile: "server.js",
			wantLine: 101,
			wantOK:   true,
		},
		{
			name: "windows path separators",
			trace: "Error: boom\n" +
				"    at handler (C:\\app\\controllers\\tasks.js:9:5)",
			wantFile: "tasks.js",
			wantLine: 9,
			wantOK:   true,
		},
		{
			name: "path without separator",
			trace: "Error: boom\n" +
				"    at run (tasks.js:12:1)",
			wantFile: "tasks.js",
			wantLine: 12,
			wantOK:   true,
		},
		{
			name:   "no matching frame",
			trace:  "Error: boom\n    at next (...)\n    at something strange",
			wantOK: false,
		},
		{
			name:   "message line only",
			trace:  "Error: boom",
			wantOK: false,
		},
		{
			name: "frame format in message line is skipped",
			trace: "at fake (/app/msg.js:1:1)\n" +
				"    at real (/app/real.js:2:2)",
			wantFile: "real.js",
			wantLine: 2,
			wantOK:   true,
		},
		{
			name:   "empty trace",
			trace:  "",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, ok := Locate(tt.trace)
			if ok != tt.wantOK {
				t.Fatalf("Locate() ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if f.File != tt.wantFile || f.Line != tt.wantLine {
				t.Errorf("Locate() = (%q, %d), want (%q, %d)", f.File, f.Line, tt.wantFile, tt.wantLine)
			}
		})
	}
}

func TestLocatePrefersParenthesizedStrategy(t *testing.T) {
	// Both strategies could fire on different lines; the first line
	// with any match wins, and per line the parenthesized form is
	// tried first.
	trace := "Error: boom\n" +
		"    at wrapped (/app/a.js:1:1)\n" +
		"    at /app/b.js:2:2"

	f, ok := Locate(trace)
	if !ok {
		t.Fatal("Locate() found no frame")
	}
	if f.File != "a.js" || f.Line != 1 {
		t.Errorf("Locate() = (%q, %d), want (a.js, 1)", f.File, f.Line)
	}
}
