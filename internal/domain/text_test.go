package domain

import (
	"strings"
	"testing"
)

func TestNewUsername_Rules(t *testing.T) {
	if _, err := NewUsername("alice123"); err != nil {
		t.Errorf("alice123: unexpected error %v", err)
	}

	invalid := []string{"", "ab", strings.Repeat("a", 21), "alice_dev", "alice dev", "山田"}
	for _, raw := range invalid {
		if _, err := NewUsername(raw); err == nil {
			t.Errorf("NewUsername(%q): expected error", raw)
		}
	}
}

func TestNewPostTitle_TrimsAndBoundsLength(t *testing.T) {
	title, err := NewPostTitle("  hello  ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if title.String() != "hello" {
		t.Errorf("String: got %q, want hello", title.String())
	}

	if _, err := NewPostTitle("   "); err == nil {
		t.Error("expected error for blank title")
	}
	if _, err := NewPostTitle(strings.Repeat("あ", 101)); err == nil {
		t.Error("expected error for 101-rune title")
	}
	if _, err := NewPostTitle(strings.Repeat("あ", 100)); err != nil {
		t.Errorf("100-rune title: unexpected error %v", err)
	}
}

func TestNewPostContent_BoundsLength(t *testing.T) {
	if _, err := NewPostContent(strings.Repeat("x", 1000)); err != nil {
		t.Errorf("1000 chars: unexpected error %v", err)
	}
	if _, err := NewPostContent(strings.Repeat("x", 1001)); err == nil {
		t.Error("expected error for 1001 chars")
	}
}

func TestNewUserDisplayName_Rules(t *testing.T) {
	if _, err := NewUserDisplayName("Alice Developer"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if _, err := NewUserDisplayName(" "); err == nil {
		t.Error("expected error for blank display name")
	}
}
