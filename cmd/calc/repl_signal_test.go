//go:build unix

package main

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"testing"
	"time"
)

type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestLineREPLInterruptWhileWaiting(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_CACHE_HOME", filepath.Join(dir, "cache"))
	cfg := filepath.Join(dir, "calc.toml")
	if err := os.WriteFile(cfg, nil, 0o600); err != nil {
		t.Fatal(err)
	}

	pr, pw := io.Pipe()
	defer pw.Close()

	var stdout, stderr lockedBuffer
	root := newRootCmd()
	root.SetIn(pr)
	done := make(chan int, 1)
	go func() {
		done <- execute(root, []string{"--config", cfg, "--ui", "off", "--color", "off", "--quiet", "repl"}, &stdout, &stderr)
	}()

	if _, err := io.WriteString(pw, "1 + 1\n"); err != nil {
		t.Fatal(err)
	}
	// ответ на первую строку означает, что обработчик сигнала уже установлен
	deadline := time.Now().Add(5 * time.Second)
	for stdout.String() != "2\n" {
		if time.Now().After(deadline) {
			t.Fatalf("no result before interrupt, stdout = %q stderr = %q", stdout.String(), stderr.String())
		}
		time.Sleep(10 * time.Millisecond)
	}

	if err := syscall.Kill(os.Getpid(), syscall.SIGINT); err != nil {
		t.Fatal(err)
	}

	select {
	case code := <-done:
		if code != 0 {
			t.Errorf("exit code = %d, stderr = %q", code, stderr.String())
		}
	case <-time.After(5 * time.Second):
		t.Fatal("repl did not stop on interrupt")
	}
	if strings.Contains(stderr.String(), "context canceled") {
		t.Errorf("stderr = %q", stderr.String())
	}
	if stdout.String() != "2\n" {
		t.Errorf("stdout = %q", stdout.String())
	}

	res := runCLIWithConfig(t, cfg, "", "history", "--format", "json")
	if res.code != 0 {
		t.Fatalf("history exit code %d: %s", res.code, res.stderr)
	}
	var entries []struct {
		Expr string `json:"expr"`
	}
	if err := json.Unmarshal([]byte(res.stdout), &entries); err != nil {
		t.Fatalf("invalid json: %v\n%s", err, res.stdout)
	}
	if len(entries) != 1 || entries[0].Expr != "1 + 1" {
		t.Errorf("entries = %+v", entries)
	}
}
