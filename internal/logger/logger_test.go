package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"bogus":   slog.LevelInfo,
	}

	for input, want := range tests {
		if got := ParseLevel(input); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", input, got, want)
		}
	}
}

func TestInitJSONRedactsSensitiveAttributes(t *testing.T) {
	var buf bytes.Buffer
	Init(Options{Level: "info", Format: "json", Output: &buf})

	Info("token stored", "refresh_token", "1//secret-refresh", "path", "token.json")

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("expected JSON log line, got %q: %v", buf.String(), err)
	}

	if record["refresh_token"] != "[REDACTED]" {
		t.Errorf("refresh_token not redacted: %v", record["refresh_token"])
	}
	if record["path"] != "token.json" {
		t.Errorf("unexpected path attribute: %v", record["path"])
	}
	if strings.Contains(buf.String(), "secret-refresh") {
		t.Error("log output leaked the refresh token")
	}
}

func TestInitLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	Init(Options{Level: "warn", Output: &buf})

	Info("hidden")
	Debug("hidden too")
	Warn("visible")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info/debug records written at warn level: %q", out)
	}
	if !strings.Contains(out, "visible") {
		t.Errorf("warn record missing: %q", out)
	}
}

func TestInitVerboseForcesDebug(t *testing.T) {
	var buf bytes.Buffer
	Init(Options{Level: "error", Verbose: true, Output: &buf})

	Debug("page fetched")

	if !strings.Contains(buf.String(), "page fetched") {
		t.Errorf("debug record missing in verbose mode: %q", buf.String())
	}
}

func TestInitQuiet(t *testing.T) {
	var buf bytes.Buffer
	Init(Options{Level: "debug", Quiet: true, Output: &buf})

	Info("hidden")
	Error("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, "shown") {
		t.Errorf("quiet mode should only write errors, got %q", out)
	}
}

func TestRedact(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		leaked string
		keeps  string
	}{
		{
			name:   "bearer header",
			input:  "Authorization: Bearer ya29.a0AfH6SMB",
			leaked: "ya29.a0AfH6SMB",
			keeps:  "Authorization:",
		},
		{
			name:   "json token",
			input:  `{"access_token":"ya29.abc","token_type":"Bearer"}`,
			leaked: "ya29.abc",
			keeps:  "token_type",
		},
		{
			name:   "client secret",
			input:  "client_secret=GOCSPX-abcdefgh",
			leaked: "GOCSPX-abcdefgh",
			keeps:  "client_secret",
		},
		{
			name:   "callback code",
			input:  "/?code=4/0AY0e-g7&scope=calendar",
			leaked: "4/0AY0e-g7",
			keeps:  "scope=calendar",
		},
		{
			name:  "plain message",
			input: "authorization code not found",
			keeps: "authorization code not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Redact(tt.input)
			if tt.leaked != "" && strings.Contains(got, tt.leaked) {
				t.Errorf("Redact(%q) = %q, secret leaked", tt.input, got)
			}
			if !strings.Contains(got, tt.keeps) {
				t.Errorf("Redact(%q) = %q, expected to keep %q", tt.input, got, tt.keeps)
			}
		})
	}
}

func TestRedactURL(t *testing.T) {
	got := RedactURL("http://localhost:3000/?code=abc123&state=state")
	want := "http://localhost:3000/?code=[REDACTED]&state=state"
	if got != want {
		t.Errorf("RedactURL() = %q, want %q", got, want)
	}

	if got := RedactURL("http://localhost:3000/auth"); got != "http://localhost:3000/auth" {
		t.Errorf("RedactURL() changed a URL without query: %q", got)
	}

	got = RedactURL("redirect http://a.example/?state=x&code=first then http://b.example/cb?code=second")
	if strings.Contains(got, "first") || strings.Contains(got, "second") {
		t.Errorf("RedactURL() left a code in the second URL: %q", got)
	}
	if !strings.Contains(got, "state=x") {
		t.Errorf("RedactURL() dropped a non-secret parameter: %q", got)
	}
}

type tokenDump struct{ token string }

func (d tokenDump) String() string { return "access_token=" + d.token }

func TestInitRedactsErrorAndStringerValues(t *testing.T) {
	var buf bytes.Buffer
	Init(Options{Level: "info", Format: "json", Output: &buf})

	exchangeErr := fmt.Errorf("exchange: %w", errors.New(
		`oauth2: response {"access_token":"ya29.SECRETVALUE"} client_secret=abcdefgh12345 Bearer ya29.HEADER`))
	Warn("token exchange failed", "error", exchangeErr, "dump", tokenDump{token: "ya29.STRINGER"})

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("expected JSON log line, got %q: %v", buf.String(), err)
	}

	out := buf.String()
	for _, secret := range []string{"ya29.SECRETVALUE", "abcdefgh12345", "ya29.HEADER", "ya29.STRINGER"} {
		if strings.Contains(out, secret) {
			t.Errorf("log output leaked %q: %s", secret, out)
		}
	}

	msg, ok := record["error"].(string)
	if !ok || !strings.Contains(msg, "oauth2: response") {
		t.Errorf("error attribute lost its message: %v", record["error"])
	}
}
