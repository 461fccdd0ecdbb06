package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/bimmerbailey/squash/internal/output"
)

// syncBuffer is a bytes.Buffer safe for a writer goroutine and a reader.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func newWatchTestCmd(ctx context.Context, out, errOut *syncBuffer) *cobra.Command {
	cmd := &cobra.Command{Use: "watch"}
	cmd.SetContext(ctx)
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.Flags().String("debounce", "250ms", "quiet period before recompacting")
	cmd.Flags().Bool("follow-rotate", false, "keep watching when the file is renamed or removed")
	addEngineFlags(cmd)
	return cmd
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func TestWatchRecompactsOnChange(t *testing.T) {
	viper.Reset()

	dir := t.TempDir()
	path := writeTempFile(t, dir, "app.log", []string{"connection reset by peer alpha"})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var out, errOut syncBuffer
	cmd := newWatchTestCmd(ctx, &out, &errOut)
	if err := cmd.Flags().Set("debounce", "20ms"); err != nil {
		t.Fatal(err)
	}

	done := make(chan error, 1)
	go func() { done <- runWatch(cmd, []string{path}) }()

	waitFor(t, "initial report", func() bool {
		return strings.Contains(out.String(), "connection reset by peer alpha")
	})

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.WriteString("connection reset by peer beta\n"); err != nil {
		t.Fatal(err)
	}
	f.Close()

	waitFor(t, "recompacted report", func() bool {
		return strings.Contains(out.String(), "[2x] connection reset by peer <0>\n     <0>: alpha, beta")
	})

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("runWatch() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("runWatch did not stop after cancel")
	}
}

func TestWatchStopsOnRemoval(t *testing.T) {
	viper.Reset()

	path := writeTempFile(t, t.TempDir(), "app.log", []string{"line"})

	var out, errOut syncBuffer
	cmd := newWatchTestCmd(context.Background(), &out, &errOut)

	done := make(chan error, 1)
	go func() { done <- runWatch(cmd, []string{path}) }()

	waitFor(t, "initial report", func() bool { return strings.Contains(out.String(), "line") })

	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("removal should end the watch cleanly, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("runWatch did not stop after removal")
	}
	if !strings.Contains(errOut.String(), "removed or renamed") {
		t.Errorf("expected rotation notice on stderr, got %q", errOut.String())
	}
}

func TestWatchMissingFile(t *testing.T) {
	viper.Reset()

	var out, errOut syncBuffer
	cmd := newWatchTestCmd(context.Background(), &out, &errOut)

	if err := runWatch(cmd, []string{filepath.Join(t.TempDir(), "missing.log")}); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestWatchInvalidDebounce(t *testing.T) {
	viper.Reset()

	path := writeTempFile(t, t.TempDir(), "app.log", []string{"line"})

	var out, errOut syncBuffer
	cmd := newWatchTestCmd(context.Background(), &out, &errOut)
	if err := cmd.Flags().Set("debounce", "soon"); err != nil {
		t.Fatal(err)
	}

	if err := runWatch(cmd, []string{path}); err == nil {
		t.Error("expected error for invalid debounce")
	}
}

func TestWriteSeparator(t *testing.T) {
	tests := []struct {
		format output.Format
		want   string
	}{
		{output.FormatText, "\n"},
		{output.FormatTable, "\n"},
		{output.FormatYAML, "---\n"},
		{output.FormatJSON, ""},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			var buf bytes.Buffer
			writeSeparator(&buf, tt.format)
			if buf.String() != tt.want {
				t.Errorf("writeSeparator(%s) = %q, want %q", tt.format, buf.String(), tt.want)
			}
		})
	}
}
