package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"CASTAWAY_SAVE", "CASTAWAY_SEED", "CASTAWAY_THEME", "CASTAWAY_LOG_FILE", "CASTAWAY_LOG_LEVEL", "CASTAWAY_PLAIN"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestRunVersion(t *testing.T) {
	clearEnv(t)
	var out, errOut bytes.Buffer
	if code := run([]string{"version"}, strings.NewReader(""), &out, &errOut); code != 0 {
		t.Fatalf("exit %d: %s", code, errOut.String())
	}
	if !strings.Contains(out.String(), "castaway "+version) {
		t.Fatalf("unexpected output %q", out.String())
	}
}

func TestRunUsageErrors(t *testing.T) {
	clearEnv(t)
	var out, errOut bytes.Buffer
	if code := run([]string{"fly"}, strings.NewReader(""), &out, &errOut); code != 2 {
		t.Fatalf("unknown subcommand exit %d", code)
	}
	if code := run([]string{"migrate", "up", "data/save.json"}, strings.NewReader(""), &out, &errOut); code != 1 {
		t.Fatalf("migrate without postgres exit %d", code)
	}
	if code := run([]string{"--plain", "--log-level", "loud"}, strings.NewReader(""), &out, &errOut); code != 1 {
		t.Fatalf("bad log level exit %d", code)
	}
}

func TestRunPlainClosesLog(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	logPath := filepath.Join(dir, "castaway.log")
	args := []string{"--plain", "--seed", "reef", "--save", filepath.Join(dir, "save.json"), "--log-file", logPath}
	var out, errOut bytes.Buffer
	if code := run(args, strings.NewReader(""), &out, &errOut); code != 0 {
		t.Fatalf("exit %d: %s", code, errOut.String())
	}
	if !strings.Contains(out.String(), "Run seed: reef") || !strings.Contains(out.String(), "Goodbye!") {
		t.Fatalf("unexpected output:\n%s", out.String())
	}
	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "msg=starting") || !strings.Contains(string(data), "msg=exit") {
		t.Fatalf("log not flushed: %q", data)
	}
}
