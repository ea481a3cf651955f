package domain

import "testing"

func TestNewPostGroupPath_ValidPaths(t *testing.T) {
	cases := []string{"tech", "tech/sub", "my-group/sub_group", "general"}
	for _, raw := range cases {
		path, err := NewPostGroupPath(raw)
		if err != nil {
			t.Errorf("NewPostGroupPath(%q): unexpected error %v", raw, err)
			continue
		}
		if path.String() != raw {
			t.Errorf("String: got %q, want %q", path.String(), raw)
		}
	}
}

func TestNewPostGroupPath_InvalidPaths(t *testing.T) {
	cases := []string{"", "/tech", "tech/", "tech//sub", "tech/-sub", "te--ch", "tech/.hidden"}
	for _, raw := range cases {
		if _, err := NewPostGroupPath(raw); err == nil {
			t.Errorf("NewPostGroupPath(%q): expected error", raw)
		}
	}
}

func TestPostGroupPath_Segments(t *testing.T) {
	path := MustPostGroupPath("tech/frontend/react")

	segments := path.Segments()

	want := []string{"tech", "frontend", "react"}
	if len(segments) != len(want) {
		t.Fatalf("Segments: got %d, want %d", len(segments), len(want))
	}
	for i := range want {
		if segments[i] != want[i] {
			t.Errorf("segment %d: got %q, want %q", i, segments[i], want[i])
		}
	}
}

func TestPostGroupPath_ChildAndLeaf(t *testing.T) {
	path := MustPostGroupPath("tech")

	child := path.Child(MustGroupName("frontend"))

	if child.String() != "tech/frontend" {
		t.Errorf("Child: got %q, want tech/frontend", child.String())
	}
	if child.Leaf().String() != "frontend" {
		t.Errorf("Leaf: got %q, want frontend", child.Leaf().String())
	}
}

func TestDefaultPostGroupPath_IsGeneral(t *testing.T) {
	if DefaultPostGroupPath().String() != DefaultGroupName {
		t.Errorf("default path: got %q, want %q", DefaultPostGroupPath().String(), DefaultGroupName)
	}
}

func TestNewGroupName_SeparatorRules(t *testing.T) {
	valid := []string{"tech", "my-group", "a_b", "a1"}
	for _, raw := range valid {
		if _, err := NewGroupName(raw); err != nil {
			t.Errorf("NewGroupName(%q): unexpected error %v", raw, err)
		}
	}

	invalid := []string{"", "-tech", "tech-", "te--ch", "te_-ch", "has space", "日本語"}
	for _, raw := range invalid {
		if _, err := NewGroupName(raw); err == nil {
			t.Errorf("NewGroupName(%q): expected error", raw)
		}
	}
}
