package session

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestResolve_EnvironmentWins(t *testing.T) {
	tokenPath := filepath.Join(t.TempDir(), TokenFileName)
	if err := SaveToken(tokenPath, "file-key"); err != nil {
		t.Fatalf("SaveToken failed: %v", err)
	}

	creds := Resolve("env-key", tokenPath, discardLogger())
	if creds == nil {
		t.Fatal("expected credentials, got nil")
	}
	if creds.APIKey != "env-key" || creds.Source != SourceEnvironment {
		t.Errorf("got %q from %q, want env-key from environment", creds.APIKey, creds.Source)
	}
}

func TestResolve_FallsBackToTokenFile(t *testing.T) {
	tokenPath := filepath.Join(t.TempDir(), TokenFileName)
	if err := SaveToken(tokenPath, "file-key"); err != nil {
		t.Fatalf("SaveToken failed: %v", err)
	}

	creds := Resolve("", tokenPath, discardLogger())
	if creds == nil {
		t.Fatal("expected credentials, got nil")
	}
	if creds.APIKey != "file-key" || creds.Source != SourceLocalFile {
		t.Errorf("got %q from %q, want file-key from local-file", creds.APIKey, creds.Source)
	}
}

func TestResolve_BlankSourcesAreSkipped(t *testing.T) {
	tokenPath := filepath.Join(t.TempDir(), TokenFileName)
	if err := SaveToken(tokenPath, "   "); err != nil {
		t.Fatalf("SaveToken failed: %v", err)
	}

	if creds := Resolve("   ", tokenPath, discardLogger()); creds != nil {
		t.Errorf("expected nil for blank sources, got %+v", creds)
	}
}

func TestResolve_NothingConfigured(t *testing.T) {
	tokenPath := filepath.Join(t.TempDir(), "missing.json")
	if creds := Resolve("", tokenPath, discardLogger()); creds != nil {
		t.Errorf("expected nil, got %+v", creds)
	}
}

func TestTokenFile_RoundTrip(t *testing.T) {
	tokenPath := filepath.Join(t.TempDir(), TokenFileName)
	if err := SaveToken(tokenPath, "round-trip-key"); err != nil {
		t.Fatalf("SaveToken failed: %v", err)
	}

	key, err := LoadToken(tokenPath)
	if err != nil {
		t.Fatalf("LoadToken failed: %v", err)
	}
	if key != "round-trip-key" {
		t.Errorf("got %q, want round-trip-key", key)
	}

	info, err := os.Stat(tokenPath)
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("token file mode = %o, want 0600", perm)
	}
}

func TestLoadToken_MalformedFile(t *testing.T) {
	tokenPath := filepath.Join(t.TempDir(), TokenFileName)
	if err := os.WriteFile(tokenPath, []byte("not json"), 0600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if _, err := LoadToken(tokenPath); err == nil {
		t.Error("expected an error for a malformed token file")
	}
}

func TestSession_Configured(t *testing.T) {
	sess := New()
	if sess.Configured() {
		t.Error("new session must not be configured")
	}
	if sess.Provenance() != SourceNotConfigured {
		t.Errorf("got %q, want not-configured", sess.Provenance())
	}
}
