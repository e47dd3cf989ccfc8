package logtail

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestRead(t *testing.T) {
	// Create a temporary log file
	tmpDir := t.TempDir()
	logPath := filepath.Join(tmpDir, "test.log")

	// Write 10 lines of content
	var content strings.Builder
	var expectedAll []string
	for i := 1; i <= 10; i++ {
		line := fmt.Sprintf("Line %d", i)
		content.WriteString(line + "\n")
		expectedAll = append(expectedAll, line)
	}

	if err := os.WriteFile(logPath, []byte(content.String()), 0644); err != nil {
		t.Fatalf("failed to create test log file: %v", err)
	}

	tests := []struct {
		name     string
		maxLines int
		expected []string
	}{
		{
			name:     "read all (0)",
			maxLines: 0,
			expected: expectedAll,
		},
		{
			name:     "read all (negative)",
			maxLines: -1,
			expected: expectedAll,
		},
		{
			name:     "read partial (5)",
			maxLines: 5,
			expected: expectedAll[5:],
		},
		{
			name:     "read exactly all (10)",
			maxLines: 10,
			expected: expectedAll,
		},
		{
			name:     "read more than exists (20)",
			maxLines: 20,
			expected: expectedAll,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Read(logPath, tt.maxLines)
			if err != nil {
				t.Fatalf("Read() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Read() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestRead_MissingFile(t *testing.T) {
	got, err := Read(filepath.Join(t.TempDir(), "nope.log"), 10)
	if err != nil || got != nil {
		t.Fatalf("Read(missing) = %v, %v; want nil, nil", got, err)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "plain text passes through",
			input: "panic: something odd",
			want:  "panic: something odd",
		},
		{
			name:  "broken json passes through",
			input: `{"level":"info"`,
			want:  `{"level":"info"`,
		},
		{
			name:  "info with component and fields",
			input: `{"level":"info","component":"carousel","carousel":"hero","index":3,"message":"advanced"}`,
			want:  `INF [carousel] advanced carousel=hero index=3`,
		},
		{
			name:  "warn with quoted value",
			input: `{"level":"warn","error":"dial tcp: refused","message":"home poll failed"}`,
			want:  `WRN home poll failed error="dial tcp: refused"`,
		},
		{
			name:  "nested value",
			input: `{"level":"debug","tags":["a","b"],"message":"x"}`,
			want:  `DBG x tags=["a","b"]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Parse(tt.input).String(); got != tt.want {
				t.Errorf("Parse(%q).String() = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestParse_Time(t *testing.T) {
	e := Parse(`{"level":"error","time":"2025-10-08T21:01:05Z","message":"boom"}`)
	want := time.Date(2025, 10, 8, 21, 1, 5, 0, time.UTC)
	if !e.Time.Equal(want) {
		t.Fatalf("Time = %v, want %v", e.Time, want)
	}
	if got := e.String(); !strings.HasSuffix(got, "ERR boom") || !strings.HasPrefix(got, want.Local().Format("15:04:05")) {
		t.Fatalf("String() = %q", got)
	}
}

func TestParseLines(t *testing.T) {
	if ParseLines(nil) != nil {
		t.Fatalf("ParseLines(nil) should be nil")
	}
	got := ParseLines([]string{`{"level":"info","message":"a"}`, "raw"})
	if len(got) != 2 || got[0].Message != "a" || got[1].Raw != "raw" {
		t.Fatalf("ParseLines = %#v", got)
	}
}
