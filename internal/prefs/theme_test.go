package prefs

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseTheme(t *testing.T) {
	for raw, want := range map[string]Theme{
		"light":  ThemeLight,
		" DARK ": ThemeDark,
		"System": ThemeSystem,
	} {
		got, err := ParseTheme(raw)
		require.NoError(t, err, raw)
		require.Equal(t, want, got, raw)
	}

	_, err := ParseTheme("sepia")
	require.ErrorIs(t, err, ErrInvalidTheme)
	_, err = ParseTheme("")
	require.ErrorIs(t, err, ErrInvalidTheme)
}

func TestServiceDefaultsThenPersists(t *testing.T) {
	store := &MemoryStore{}
	svc, err := NewService(store, ThemeSystem)
	require.NoError(t, err)
	require.Equal(t, ThemeSystem, svc.Current())

	theme, err := svc.Set("dark")
	require.NoError(t, err)
	require.Equal(t, ThemeDark, theme)

	// A fresh service over the same store picks up the saved preference.
	svc2, err := NewService(store, ThemeSystem)
	require.NoError(t, err)
	require.Equal(t, ThemeDark, svc2.Current())
}

func TestServiceRejectsUnknownTheme(t *testing.T) {
	svc, err := NewService(&MemoryStore{}, ThemeSystem)
	require.NoError(t, err)
	_, err = svc.Set("sepia")
	require.ErrorIs(t, err, ErrInvalidTheme)
	require.Equal(t, ThemeSystem, svc.Current())
}

func TestHandlerRoundTrip(t *testing.T) {
	svc, err := NewService(&MemoryStore{}, ThemeSystem)
	require.NoError(t, err)
	h := &Handler{Svc: svc}

	rr := httptest.NewRecorder()
	h.Get(rr, httptest.NewRequest(http.MethodGet, "/api/v1/preferences/theme", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	body, _ := json.Marshal(map[string]string{"theme": "dark"})
	rr = httptest.NewRecorder()
	h.Put(rr, httptest.NewRequest(http.MethodPut, "/api/v1/preferences/theme", bytes.NewReader(body)))
	require.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		Data map[string]string `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Equal(t, "dark", resp.Data["theme"])
}

func TestHandlerRejectsBadTheme(t *testing.T) {
	svc, err := NewService(&MemoryStore{}, ThemeSystem)
	require.NoError(t, err)
	h := &Handler{Svc: svc}

	body, _ := json.Marshal(map[string]string{"theme": "sepia"})
	rr := httptest.NewRecorder()
	h.Put(rr, httptest.NewRequest(http.MethodPut, "/api/v1/preferences/theme", bytes.NewReader(body)))
	require.Equal(t, http.StatusUnprocessableEntity, rr.Code)
}
