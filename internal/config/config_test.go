package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"

	"github.com/jeremyhahn/go-totp/pkg/hmacalg"
	"github.com/jeremyhahn/go-totp/pkg/totp"
)

func newFlagSet(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		t.Fatalf("failed to parse flags: %v", err)
	}
	return fs
}

// chdir moves into an empty directory so no stray totpctl.yaml is picked up.
func chdir(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv("HOME", dir)
	return dir
}

func TestLoadDefaults(t *testing.T) {
	chdir(t)

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Token.Period != 30 {
		t.Errorf("Period = %d, want 30", cfg.Token.Period)
	}
	if cfg.Token.Digits != 6 {
		t.Errorf("Digits = %d, want 6", cfg.Token.Digits)
	}
	if cfg.Token.Algorithm != "SHA1" {
		t.Errorf("Algorithm = %s, want SHA1", cfg.Token.Algorithm)
	}
	if cfg.Token.Output != "standard" {
		t.Errorf("Output = %s, want standard", cfg.Token.Output)
	}
	if cfg.Token.ExtraGap != 1 {
		t.Errorf("ExtraGap = %d, want 1", cfg.Token.ExtraGap)
	}
	if cfg.Secret.Bits != 80 {
		t.Errorf("Bits = %d, want 80", cfg.Secret.Bits)
	}
	if cfg.Logger.Level != "warn" || cfg.Logger.Format != "console" {
		t.Errorf("unexpected logger defaults: %+v", cfg.Logger)
	}
}

func TestLoadPrecedence(t *testing.T) {
	dir := chdir(t)

	file := filepath.Join(dir, "custom.yaml")
	data := []byte("token:\n  period: 60\n  digits: 8\n  algorithm: sha256\n  issuer: FileIssuer\nsecret:\n  bits: 160\n")
	if err := os.WriteFile(file, data, 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	t.Setenv("TOTPCTL_TOKEN_DIGITS", "7")
	t.Setenv("TOTPCTL_TOKEN_CLOCK_OFFSET", "90s")

	fs := newFlagSet(t, "--config", file, "--period=45")

	cfg, err := Load(fs)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"flag beats file", cfg.Token.Period, uint32(45)},
		{"env beats file", cfg.Token.Digits, uint32(7)},
		{"file beats default", cfg.Token.Algorithm, "sha256"},
		{"file issuer", cfg.Token.Issuer, "FileIssuer"},
		{"file bits", cfg.Secret.Bits, uint32(160)},
		{"env duration", cfg.Token.ClockOffset, 90 * time.Second},
		{"default output", cfg.Token.Output, "standard"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s: got %v, want %v", tt.name, tt.got, tt.want)
		}
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	dir := chdir(t)

	fs := newFlagSet(t, "--config", filepath.Join(dir, "missing.yaml"))
	if _, err := Load(fs); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantKey string
	}{
		{"zero period", []string{"--period=0"}, "token.period"},
		{"unknown algorithm", []string{"--algorithm=SHA3"}, "token.algorithm"},
		{"unknown output", []string{"--output=hex"}, "token.output"},
		{"too many digits", []string{"--digits=11"}, "token.digits"},
		{"bad log level", []string{"--log-level=loud"}, "logging.level"},
		{"bad log format", []string{"--log-format=xml"}, "logging.format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chdir(t)

			_, err := Load(newFlagSet(t, tt.args...))
			if err == nil {
				t.Fatal("expected validation error")
			}

			var verr ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %T: %v", err, err)
			}
			if _, ok := verr[tt.wantKey]; !ok {
				t.Errorf("expected error for %s, got %v", tt.wantKey, verr)
			}
		})
	}
}

func TestTokenConfigTOTP(t *testing.T) {
	tc := TokenConfig{
		Period:    60,
		Digits:    5,
		Algorithm: "sm3",
		Output:    "steam",
		ExtraGap:  2,
		Issuer:    "ACME",
		Label:     "alice",
	}

	cfg, err := tc.TOTP()
	if err != nil {
		t.Fatalf("TOTP failed: %v", err)
	}

	if cfg.Period != 60 || cfg.Digits != 5 || cfg.ExtraGap != 2 {
		t.Errorf("unexpected numeric fields: %+v", cfg)
	}
	if !cfg.Algorithm.Equal(hmacalg.SM3) {
		t.Errorf("Algorithm = %s, want HMACSM3", cfg.Algorithm)
	}
	if cfg.OutputType != totp.OutputSteam {
		t.Errorf("OutputType = %v, want steam", cfg.OutputType)
	}
	if cfg.IssuerOrEmpty() != "ACME" || cfg.Label != "alice" {
		t.Errorf("unexpected issuer/label: %q %q", cfg.IssuerOrEmpty(), cfg.Label)
	}
	if cfg.Secret != "" {
		t.Error("secret should be left unset")
	}

	tc.Issuer = ""
	cfg, err = tc.TOTP()
	if err != nil {
		t.Fatalf("TOTP failed: %v", err)
	}
	if cfg.Issuer != nil {
		t.Error("empty issuer should be left absent")
	}

	tc.Algorithm = "WHIRLPOOL"
	if _, err := tc.TOTP(); !errors.Is(err, hmacalg.ErrUnsupportedAlgorithm) {
		t.Errorf("expected ErrUnsupportedAlgorithm, got %v", err)
	}
}

func TestValidationErrorMessage(t *testing.T) {
	if (ValidationError{}).Error() != "validation error" {
		t.Error("empty ValidationError should have a generic message")
	}

	err := ValidationError{"token.period": "period must be 1 or greater"}
	if err.Error() != `{"token.period":"period must be 1 or greater"}` {
		t.Errorf("unexpected message: %s", err.Error())
	}
}
