package version

import (
	"strings"
	"testing"
)

func TestGet(t *testing.T) {
	info := Get()
	if info.Version == "" {
		t.Error("version must never be empty")
	}
	if info.GoVersion == "" {
		t.Error("go version should come from build info")
	}
}

func TestShort(t *testing.T) {
	short := Short()
	if short == "" {
		t.Fatal("Short() returned empty string")
	}
	if !strings.HasPrefix(short, Get().Version) {
		t.Errorf("Short() = %s should start with version %s", short, Get().Version)
	}
}

func TestShortCommit(t *testing.T) {
	if got := shortCommit("0123456789abcdef"); got != "0123456" {
		t.Errorf("shortCommit() = %s", got)
	}
	if got := shortCommit("abc"); got != "abc" {
		t.Errorf("short revisions pass through, got %s", got)
	}
}
