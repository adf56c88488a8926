// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package credentials

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStore_EmptyIsNotReady(t *testing.T) {
	s := NewStore(NewMemoryKV())

	c, err := s.Load()
	require.NoError(t, err)
	require.Equal(t, Credentials{}, c)

	ready, err := s.Ready()
	require.NoError(t, err)
	require.False(t, ready)
}

func TestStore_SaveOneKeyIsReady(t *testing.T) {
	s := NewStore(NewMemoryKV())

	ready, err := s.Save("", "gsk_only_groq")
	require.NoError(t, err)
	require.True(t, ready)

	c, err := s.Load()
	require.NoError(t, err)
	require.Equal(t, "", c.Gemini)
	require.Equal(t, "gsk_only_groq", c.Groq)
}

func TestStore_EmptyArgumentKeepsStoredValue(t *testing.T) {
	s := NewStore(NewMemoryKV())

	_, err := s.Save("AIza-first", "gsk-first")
	require.NoError(t, err)
	_, err = s.Save("  ", "gsk-second")
	require.NoError(t, err)

	c, err := s.Load()
	require.NoError(t, err)
	require.Equal(t, "AIza-first", c.Gemini)
	require.Equal(t, "gsk-second", c.Groq)
}

func TestStore_SaveNothingOnEmptyStore(t *testing.T) {
	s := NewStore(NewMemoryKV())
	ready, err := s.Save("", "")
	require.NoError(t, err)
	require.False(t, ready)
}

func TestStore_Clear(t *testing.T) {
	s := NewStore(NewMemoryKV())
	_, err := s.Save("a", "b")
	require.NoError(t, err)
	require.NoError(t, s.Clear())

	ready, err := s.Ready()
	require.NoError(t, err)
	require.False(t, ready)
}

func TestCredentials_StringHidesSecrets(t *testing.T) {
	c := Credentials{Gemini: "AIzaSySecretValue"}
	out := c.String()
	require.NotContains(t, out, "AIzaSySecretValue")
	require.Contains(t, out, "gemini=sha256:")
	require.Contains(t, out, "groq=unset")
}

type failingKV struct{ *MemoryKV }

var errDisk = errors.New("disk full")

func (f *failingKV) Set(string, string) error { return errDisk }

func TestStore_SaveSurfacesIOError(t *testing.T) {
	s := NewStore(&failingKV{MemoryKV: NewMemoryKV()})
	_, err := s.Save("key", "")
	require.ErrorIs(t, err, errDisk)
}

func TestSQLiteKV_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "storage.db")

	kv, err := OpenSQLite(path)
	require.NoError(t, err)
	s := NewStore(kv)
	_, err = s.Save("AIza-persisted", "")
	require.NoError(t, err)
	require.NoError(t, s.Close())

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0600), info.Mode().Perm())

	kv2, err := OpenSQLite(path)
	require.NoError(t, err)
	defer kv2.Close()

	c, err := NewStore(kv2).Load()
	require.NoError(t, err)
	require.Equal(t, "AIza-persisted", c.Gemini)
	require.Equal(t, "", c.Groq)
}

func TestSQLiteKV_Overwrite(t *testing.T) {
	kv, err := OpenSQLite(filepath.Join(t.TempDir(), "kv.db"))
	require.NoError(t, err)
	defer kv.Close()

	require.NoError(t, kv.Set(KeyGroq, "one"))
	require.NoError(t, kv.Set(KeyGroq, "two"))
	v, ok, err := kv.Get(KeyGroq)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "two", v)

	require.NoError(t, kv.Delete(KeyGroq))
	_, ok, err = kv.Get(KeyGroq)
	require.NoError(t, err)
	require.False(t, ok)
	require.True(t, strings.HasSuffix(kv.Path(), "kv.db"))
}
