package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vango-dev/vango-toast/internal/errors"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestVersionShort(t *testing.T) {
	out, err := run(t, "version", "--short")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.TrimSpace(out) != version {
		t.Errorf("output = %q, want %q", out, version)
	}
}

func TestRender(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    []string
		notWant []string
	}{
		{
			name: "defaults",
			args: []string{"render", "Saved"},
			want: []string{`class="toast-notification"`, `data-severity="info"`, "Saved", "progress-bar"},
		},
		{
			name:    "success without progress",
			args:    []string{"render", "Done", "--severity=success", "--no-progress"},
			want:    []string{`data-severity="success"`, "Success"},
			notWant: []string{"progress-bar"},
		},
		{
			name:    "no auto-dismiss",
			args:    []string{"render", "Sticky", "--duration=0"},
			notWant: []string{"progress-bar"},
		},
		{
			name: "entered",
			args: []string{"render", "Hi", "--entered"},
			want: []string{"opacity: 1"},
		},
		{
			name:    "escaped",
			args:    []string{"render", "<b>bold</b>"},
			want:    []string{"&lt;b&gt;bold&lt;/b&gt;"},
			notWant: []string{"data-hid"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, tt.args...)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("output missing %q:\n%s", w, out)
				}
			}
			for _, w := range tt.notWant {
				if strings.Contains(out, w) {
					t.Errorf("output should not contain %q:\n%s", w, out)
				}
			}
		})
	}
}

func TestRenderRequiresMessage(t *testing.T) {
	if _, err := run(t, "render"); err == nil {
		t.Error("render without a message should fail")
	}
}

func TestSimulate(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{
			name: "timeout",
			args: []string{"simulate"},
			want: []string{"+0s", "shown", "+1.6s", "dismissed  timeout", "+2s", "detached"},
		},
		{
			name: "click",
			args: []string{"simulate", "--click-at=500ms"},
			want: []string{"+500ms", "click", "dismissed  click", "+900ms", "detached"},
		},
		{
			name: "close button with ignored stop propagation",
			args: []string{"simulate", "--close-at=200ms", "--ignore-stop-propagation"},
			want: []string{"close button", "dismissed  close", "+600ms", "detached"},
		},
		{
			name: "sticky",
			args: []string{"simulate", "--duration=0"},
			want: []string{"shown", "still active"},
		},
		{
			name: "patches",
			args: []string{"simulate", "--patches"},
			want: []string{"InsertNode", "+10ms", "opacity: 1", "+100ms", "width: 0%", "RemoveNode"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, tt.args...)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("output missing %q:\n%s", w, out)
				}
			}
		})
	}
}

func TestSimulateCloseDismissesOnce(t *testing.T) {
	out, err := run(t, "simulate", "--close-at=200ms", "--ignore-stop-propagation")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n := strings.Count(out, "dismissed"); n != 1 {
		t.Errorf("dismissed %d times:\n%s", n, out)
	}
	if n := strings.Count(out, "detached"); n != 1 {
		t.Errorf("detached %d times:\n%s", n, out)
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "toast.yaml")
	if err := os.WriteFile(path, []byte("preview:\n  port: 4000\n"), 0644); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	for _, p := range []string{dir, path} {
		cfg, err := loadConfig(&out, p)
		if err != nil {
			t.Fatalf("loadConfig(%q): %v", p, err)
		}
		if cfg.Preview.Port != 4000 {
			t.Errorf("Port = %d, want 4000", cfg.Preview.Port)
		}
	}

	_, err := loadConfig(&out, filepath.Join(dir, "missing.toml"))
	if !errors.HasCode(err, errors.CodeConfigNotFound) {
		t.Errorf("err = %v, want %s", err, errors.CodeConfigNotFound)
	}
}
