package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		wantMsg string
		wantCat Category
	}{
		{"config parse", CodeConfigParse, "Invalid configuration file", CategoryConfig},
		{"invalid port", CodeInvalidPort, "Invalid port number", CategoryConfig},
		{"preview", CodePreviewFailed, "Preview server failed", CategoryServer},
		{"toast request", CodeInvalidToastReq, "Invalid toast request", CategoryValidation},
		{"unknown error code", "E999", "Unknown error", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code)
			if err.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", err.Message, tt.wantMsg)
			}
			if err.Category != tt.wantCat {
				t.Errorf("Category = %q, want %q", err.Category, tt.wantCat)
			}
			if err.Code != tt.code {
				t.Errorf("Code = %q, want %q", err.Code, tt.code)
			}
		})
	}
}

func TestNewf(t *testing.T) {
	err := Newf(CategoryCLI, "unknown severity %q", "loud")
	if err.Error() != `unknown severity "loud"` {
		t.Errorf("Error() = %q", err.Error())
	}
	if err.Code != "" {
		t.Errorf("Code = %q, want empty", err.Code)
	}
}

func TestErrorAndUnwrap(t *testing.T) {
	cause := fmt.Errorf("address in use")
	err := New(CodePreviewFailed).Wrap(cause)

	if got := err.Error(); got != "E160: Preview server failed: address in use" {
		t.Errorf("Error() = %q", got)
	}
	if !stderrors.Is(err, cause) {
		t.Error("errors.Is should see the wrapped cause")
	}
}

func TestFromError(t *testing.T) {
	if FromError(nil, CodeConfigParse) != nil {
		t.Error("FromError(nil) should be nil")
	}

	plain := stderrors.New("boom")
	ve := FromError(plain, CodeConfigParse)
	if ve.Code != CodeConfigParse || ve.Wrapped != plain {
		t.Errorf("FromError wrapped = %+v", ve)
	}

	existing := New(CodeInvalidPort)
	wrapped := fmt.Errorf("loading: %w", existing)
	if FromError(wrapped, CodeConfigParse) != existing {
		t.Error("FromError should return the VangoError already in the chain")
	}
	if !HasCode(wrapped, CodeInvalidPort) || HasCode(plain, CodeInvalidPort) {
		t.Error("HasCode mismatch")
	}
}

func TestLocation_String(t *testing.T) {
	tests := []struct {
		loc  *Location
		want string
	}{
		{nil, ""},
		{&Location{File: "toast.yaml", Line: 3}, "toast.yaml:3"},
		{&Location{File: "toast.yaml", Line: 3, Column: 11}, "toast.yaml:3:11"},
	}
	for _, tt := range tests {
		if got := tt.loc.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestFormat(t *testing.T) {
	DisableColors()
	defer EnableColors()

	tmpFile := filepath.Join(t.TempDir(), "toast.yaml")
	content := "toast:\n  duration: 1600\n  exitDelay: [\n  progress: true\n"
	if err := os.WriteFile(tmpFile, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	err := New(CodeConfigParse).
		WithLocation(tmpFile, 3, 14).
		Wrap(stderrors.New("did not find expected node content"))

	formatted := err.Format()
	for _, want := range []string{
		"ERROR E120: Invalid configuration file",
		tmpFile + ":3:14",
		"→    3 │   exitDelay: [",
		"^",
		"Cause: did not find expected node content",
		"Hint:",
	} {
		if !strings.Contains(formatted, want) {
			t.Errorf("Format() missing %q:\n%s", want, formatted)
		}
	}
}

func TestFormatCompact(t *testing.T) {
	err := New(CodeConfigInvalid)
	err.Location = &Location{File: "toast.json", Line: 10, Column: 5}

	want := "toast.json:10:5: E121: Invalid configuration value"
	if got := err.FormatCompact(); got != want {
		t.Errorf("FormatCompact() = %q, want %q", got, want)
	}
}

func TestFormatJSON(t *testing.T) {
	err := New(CodeInvalidToastReq).Wrap(stderrors.New("message is required"))

	var out map[string]any
	if jerr := json.Unmarshal([]byte(err.FormatJSON()), &out); jerr != nil {
		t.Fatalf("FormatJSON is not valid JSON: %v", jerr)
	}
	if out["code"] != "E161" || out["category"] != "validation" || out["cause"] != "message is required" {
		t.Errorf("FormatJSON = %v", out)
	}
}

func TestFprint(t *testing.T) {
	DisableColors()
	defer EnableColors()

	var b strings.Builder
	Fprint(&b, stderrors.New("plain failure"))
	if !strings.Contains(b.String(), "ERROR: plain failure") {
		t.Errorf("Fprint plain = %q", b.String())
	}
}

func TestRegistryCodes(t *testing.T) {
	for _, code := range []string{"E120", "E121", "E122", "E141", "E160", "E161"} {
		if _, ok := GetTemplate(code); !ok {
			t.Errorf("%s should be registered", code)
		}
	}
	if len(GetAllCodes()) != 6 {
		t.Errorf("GetAllCodes() = %v", GetAllCodes())
	}
	if _, ok := GetTemplate("E999"); ok {
		t.Error("E999 should not exist")
	}
}

func TestRegister(t *testing.T) {
	Register("E999", ErrorTemplate{
		Category: CategoryCLI,
		Message:  "Custom test error",
	})
	defer delete(registry, "E999")

	if err := New("E999"); err.Message != "Custom test error" {
		t.Errorf("Message = %q, want %q", err.Message, "Custom test error")
	}
}

func TestWrapText(t *testing.T) {
	if got := wrapText("short text", 100); len(got) != 1 || got[0] != "short text" {
		t.Errorf("wrapText short text: got %v", got)
	}
	if got := wrapText("this is a longer text that should be wrapped", 20); len(got) != 3 {
		t.Errorf("wrapText long text: expected 3 lines, got %d: %v", len(got), got)
	}
	if got := wrapText("", 10); len(got) != 0 {
		t.Errorf("wrapText empty: expected empty, got %v", got)
	}
}

func TestColorFunctions(t *testing.T) {
	EnableColors()
	if !strings.Contains(red("test"), "\033[31m") {
		t.Error("red should contain ANSI code when colors enabled")
	}

	DisableColors()
	if strings.Contains(red("test"), "\033[") {
		t.Error("red should not contain ANSI code when colors disabled")
	}
	EnableColors()
}
