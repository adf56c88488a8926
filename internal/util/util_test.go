// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// =============================================================================
// ATOMIC WRITE TESTS
// =============================================================================

func TestAtomicWriteFile_Basic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.txt")
	data := []byte("hello, world!")

	if err := AtomicWriteFile(path, data, 0644); err != nil {
		t.Fatalf("AtomicWriteFile failed: %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file: %v", err)
	}
	if string(content) != string(data) {
		t.Errorf("Content mismatch: got %q, want %q", string(content), string(data))
	}
}

func TestAtomicWriteFile_CreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "subdir", "deep", "test.txt")

	if err := AtomicWriteFile(path, []byte("test data"), 0600); err != nil {
		t.Fatalf("AtomicWriteFile failed: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("File not created: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("perm = %o, want 600", info.Mode().Perm())
	}
}

func TestAtomicWriteFile_Overwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.txt")

	if err := AtomicWriteFile(path, []byte("initial"), 0644); err != nil {
		t.Fatalf("First write failed: %v", err)
	}
	if err := AtomicWriteFile(path, []byte("updated"), 0644); err != nil {
		t.Fatalf("Second write failed: %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file: %v", err)
	}
	if string(content) != "updated" {
		t.Errorf("Content not updated: got %q", string(content))
	}

	// No temp files left behind.
	entries, _ := os.ReadDir(filepath.Dir(path))
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".tmp-") {
			t.Errorf("leftover temp file %s", e.Name())
		}
	}
}

// =============================================================================
// STRING TESTS
// =============================================================================

func TestTruncateRunes(t *testing.T) {
	testCases := []struct {
		input    string
		max      int
		expected string
	}{
		{"hello", 10, "hello"},
		{"hello world", 8, "hello..."},
		{"hello", 0, ""},
		{"hello", 2, "he"},
		{"日本語テキスト", 5, "日本..."},
	}

	for _, tc := range testCases {
		if got := TruncateRunes(tc.input, tc.max); got != tc.expected {
			t.Errorf("TruncateRunes(%q, %d) = %q, want %q", tc.input, tc.max, got, tc.expected)
		}
	}
}

func TestTruncateWidth(t *testing.T) {
	if got := TruncateWidth("hello", 10); got != "hello" {
		t.Errorf("got %q, want unchanged", got)
	}
	got := TruncateWidth("日本語テキスト", 8)
	if w := StringWidth(got); w > 8 {
		t.Errorf("TruncateWidth produced width %d > 8 (%q)", w, got)
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("expected ellipsis, got %q", got)
	}
	if TruncateWidth("abc", 0) != "" {
		t.Error("zero width should yield empty string")
	}
}

func TestStringWidth(t *testing.T) {
	if StringWidth("abc") != 3 {
		t.Errorf("StringWidth(abc) = %d", StringWidth("abc"))
	}
	if StringWidth("日本") != 4 {
		t.Errorf("StringWidth(日本) = %d, want 4", StringWidth("日本"))
	}
}

func TestOneLine(t *testing.T) {
	if got := OneLine("  a\n\tb   c \n"); got != "a b c" {
		t.Errorf("OneLine = %q", got)
	}
}

// =============================================================================
// SECRET TESTS
// =============================================================================

func TestFingerprint(t *testing.T) {
	if Fingerprint("") != "" {
		t.Error("empty secret should have empty fingerprint")
	}
	a := Fingerprint("AIzaSyExampleKey")
	if len(a) != 8 {
		t.Fatalf("fingerprint length = %d, want 8", len(a))
	}
	if a != Fingerprint("AIzaSyExampleKey") {
		t.Error("fingerprint should be stable")
	}
	if a == Fingerprint("gsk_otherKey") {
		t.Error("different secrets should differ")
	}
	if strings.Contains(a, "AIza") {
		t.Error("fingerprint leaks secret")
	}
}

func TestMaskSecret(t *testing.T) {
	if got := MaskSecret(""); got != "[not set]" {
		t.Errorf("MaskSecret(\"\") = %q", got)
	}
	secret := "gsk_1234567890abcd"
	got := MaskSecret(secret)
	if strings.Contains(got, "abcd") || strings.Contains(got, "gsk_") {
		t.Errorf("MaskSecret leaks key material: %q", got)
	}
	if !strings.Contains(got, Fingerprint(secret)) || !strings.Contains(got, "length=18") {
		t.Errorf("MaskSecret = %q, want length and fingerprint", got)
	}
}

// =============================================================================
// IMAGE TESTS
// =============================================================================

func TestImageExtension(t *testing.T) {
	tests := []struct {
		contentType string
		want        string
	}{
		{"image/png", ".png"},
		{"image/jpeg", ".jpg"},
		{"image/jpeg; charset=binary", ".jpg"},
		{"image/webp", ".webp"},
		{"image/gif", ".gif"},
		{"application/octet-stream", ".png"},
		{"", ".png"},
		{"not a type", ".png"},
	}
	for _, tt := range tests {
		if got := ImageExtension(tt.contentType); got != tt.want {
			t.Errorf("ImageExtension(%q) = %q, want %q", tt.contentType, got, tt.want)
		}
	}
}

func TestScreenshotFileName(t *testing.T) {
	at := time.Date(2025, 3, 9, 14, 5, 7, 0, time.UTC)
	if got := ScreenshotFileName(at, "image/jpeg"); got != "screenshot_20250309_140507.jpg" {
		t.Errorf("ScreenshotFileName = %q", got)
	}
}
