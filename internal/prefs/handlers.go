package prefs

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/quickdash/storefront/internal/common"
)

// Handler exposes the theme preference over HTTP.
type Handler struct {
	Svc *Service
}

// Get returns the effective theme.
func (h *Handler) Get(w http.ResponseWriter, _ *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, common.CodeInternal, "preferences not configured", nil)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": map[string]string{"theme": string(h.Svc.Current())}})
}

// Put replaces the theme preference.
func (h *Handler) Put(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, common.CodeInternal, "preferences not configured", nil)
		return
	}
	var payload struct {
		Theme string `json:"theme"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, common.CodeValidation, "invalid request body", nil)
		return
	}
	theme, err := h.Svc.Set(payload.Theme)
	if err != nil {
		if errors.Is(err, ErrInvalidTheme) {
			common.JSONError(w, http.StatusUnprocessableEntity, common.CodeValidation, "theme must be light, dark or system", nil)
			return
		}
		common.JSONError(w, http.StatusInternalServerError, common.CodeInternal, "could not save preference", nil)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": map[string]string{"theme": string(theme)}})
}
