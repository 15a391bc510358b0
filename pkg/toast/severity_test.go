package toast

import (
	"testing"
	"time"
)

func TestSeverityNormalize(t *testing.T) {
	tests := []struct {
		in    Severity
		want  Severity
		title string
	}{
		{SeveritySuccess, SeveritySuccess, "Success"},
		{SeverityError, SeverityError, "Error"},
		{SeverityWarning, SeverityWarning, "Warning"},
		{SeverityInfo, SeverityInfo, "Info"},
		{SeverityPrimary, SeverityPrimary, "Primary"},
		{"", SeverityInfo, "Info"},
		{"SUCCESS", SeverityInfo, "Info"},
		{"bogus-severity", SeverityInfo, "Info"},
	}

	for _, tt := range tests {
		t.Run(string(tt.in), func(t *testing.T) {
			if got := tt.in.Normalize(); got != tt.want {
				t.Errorf("Normalize() = %q, want %q", got, tt.want)
			}
			if got := tt.in.Title(); got != tt.title {
				t.Errorf("Title() = %q, want %q", got, tt.title)
			}
		})
	}
}

func TestThemes(t *testing.T) {
	for _, s := range Severities {
		th := ThemeFor(s)
		if th.Icon == "" || th.Gradient == "" || th.Border == "" || th.TextClass == "" {
			t.Errorf("%s: incomplete theme %+v", s, th)
		}
	}
	if ThemeFor("nope") != ThemeFor(SeverityInfo) {
		t.Error("unknown severity should use the info theme")
	}
	if got := ThemeFor(SeverityError).TextClass; got != "text-danger" {
		t.Errorf("error text class = %q", got)
	}
}

func TestConfigWithDefaults(t *testing.T) {
	got := Config{ExitDelay: time.Second}.withDefaults()
	want := DefaultConfig()
	want.ExitDelay = time.Second
	want.Defaults = Options{}
	if got != want {
		t.Errorf("withDefaults = %+v, want %+v", got, want)
	}

	custom := Config{Defaults: Options{Duration: 0, Progress: false, ClickToDismiss: true}}.withDefaults()
	if custom.Defaults.Duration != 0 || !custom.Defaults.ClickToDismiss {
		t.Errorf("explicit defaults were replaced: %+v", custom.Defaults)
	}

	off := DefaultConfig()
	off.Defaults = Options{}
	if got := off.withDefaults().Defaults; got != (Options{}) {
		t.Errorf("all-off defaults were replaced: %+v", got)
	}
}

func TestOptionsApply(t *testing.T) {
	o := DefaultOptions()
	for _, opt := range []Option{WithDuration(0), WithProgress(false), WithClickToDismiss(false)} {
		opt(&o)
	}
	if o.AutoDismiss() || o.Progress || o.ClickToDismiss {
		t.Errorf("options not applied: %+v", o)
	}
}

func TestProgressDuration(t *testing.T) {
	tests := []struct {
		duration, settle, want time.Duration
	}{
		{1600 * time.Millisecond, 100 * time.Millisecond, 1500 * time.Millisecond},
		{100 * time.Millisecond, 100 * time.Millisecond, 0},
		{10 * time.Millisecond, 100 * time.Millisecond, 0},
	}
	for _, tt := range tests {
		if got := progressDuration(tt.duration, tt.settle); got != tt.want {
			t.Errorf("progressDuration(%v, %v) = %v, want %v", tt.duration, tt.settle, got, tt.want)
		}
	}
}
