package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestOpenMirrorsToConsole(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "loader.txt")
	var console bytes.Buffer

	l, err := Open(path, &console)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	l.Println("Start Program.")
	if err := l.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "Start Program.") {
		t.Errorf("Expected file to contain log line, got %q", data)
	}
	if !strings.Contains(console.String(), "Start Program.") {
		t.Errorf("Expected console to contain log line, got %q", console.String())
	}
}

func TestCloseTwice(t *testing.T) {
	l, err := Open(filepath.Join(t.TempDir(), "x.txt"), nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := l.Close(); err != nil {
		t.Fatal(err)
	}
	if err := l.Close(); err != nil {
		t.Errorf("Expected second Close to be a no-op, got %v", err)
	}
}
