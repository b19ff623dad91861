package logging

import (
	"bytes"
	"io"
	"strings"
	"sync"
	"testing"
)

func TestRecorderRetainsEntries(t *testing.T) {
	rec := NewRecorder(io.Discard, "test", "info", 8)

	rec.Infof("first %d", 1)
	rec.Warnf("second")
	rec.Errorf("third")

	entries := rec.Recent(10)
	if len(entries) != 3 {
		t.Fatalf("retained %d entries, want 3", len(entries))
	}
	if entries[0].Message != "first 1" {
		t.Errorf("entries[0].Message = %q, want %q", entries[0].Message, "first 1")
	}
	if entries[1].Level != "warn" {
		t.Errorf("entries[1].Level = %q, want warn", entries[1].Level)
	}
	if entries[2].Level != "error" {
		t.Errorf("entries[2].Level = %q, want error", entries[2].Level)
	}
}

func TestRecorderLevelFilter(t *testing.T) {
	rec := NewRecorder(io.Discard, "test", "warn", 8)

	rec.Debugf("noise")
	rec.Infof("also noise")
	rec.Warnf("kept")

	entries := rec.Recent(10)
	if len(entries) != 1 {
		t.Fatalf("retained %d entries, want 1", len(entries))
	}
	if entries[0].Message != "kept" {
		t.Errorf("entries[0].Message = %q, want kept", entries[0].Message)
	}
}

func TestRecorderRingWraps(t *testing.T) {
	rec := NewRecorder(io.Discard, "test", "info", 4)

	for i := 0; i < 10; i++ {
		rec.Infof("entry %d", i)
	}

	entries := rec.Recent(10)
	if len(entries) != 4 {
		t.Fatalf("retained %d entries, want 4 (capacity)", len(entries))
	}
	// Oldest retained is entry 6, newest is entry 9.
	if entries[0].Message != "entry 6" {
		t.Errorf("oldest = %q, want entry 6", entries[0].Message)
	}
	if entries[3].Message != "entry 9" {
		t.Errorf("newest = %q, want entry 9", entries[3].Message)
	}
}

func TestRecorderRecentTruncates(t *testing.T) {
	rec := NewRecorder(io.Discard, "test", "info", 16)

	for i := 0; i < 6; i++ {
		rec.Infof("entry %d", i)
	}

	entries := rec.Recent(2)
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	// The newest two, still oldest-first.
	if entries[0].Message != "entry 4" || entries[1].Message != "entry 5" {
		t.Errorf("entries = [%q %q], want [entry 4, entry 5]", entries[0].Message, entries[1].Message)
	}
}

func TestRecorderWritesThrough(t *testing.T) {
	var buf bytes.Buffer
	rec := NewRecorder(&buf, "checkout", "info", 8)

	rec.Infof("order placed")

	if !strings.Contains(buf.String(), "order placed") {
		t.Errorf("output %q does not contain the message", buf.String())
	}
	if !strings.Contains(buf.String(), "checkout") {
		t.Errorf("output %q does not contain the prefix", buf.String())
	}
}

func TestRecorderUnknownLevelFallsBackToInfo(t *testing.T) {
	rec := NewRecorder(io.Discard, "test", "extremely-verbose", 8)

	rec.Debugf("filtered")
	rec.Infof("kept")

	entries := rec.Recent(10)
	if len(entries) != 1 || entries[0].Message != "kept" {
		t.Errorf("entries = %v, want single info entry", entries)
	}
}

func TestRecorderConcurrent(t *testing.T) {
	rec := NewRecorder(io.Discard, "test", "info", 32)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				rec.Infof("worker %d line %d", id, j)
			}
		}(i)
	}
	wg.Wait()

	if got := rec.Len(); got != 32 {
		t.Errorf("Len() = %d, want 32 (full ring)", got)
	}
}
