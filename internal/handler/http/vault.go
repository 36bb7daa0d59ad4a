package http

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MKhiriev/go-pass-vault/internal/app"
	"github.com/MKhiriev/go-pass-vault/internal/utils"
	"github.com/MKhiriev/go-pass-vault/models"
)

// UndecryptableHeader lists, comma separated, the ids of entries left out
// of a list response because they failed to decrypt.
const UndecryptableHeader = "X-Vault-Undecryptable"

func (h *Handler) createEntry(w http.ResponseWriter, r *http.Request) {
	owner, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, r, ErrNoUserInContext, "*Handler.createEntry")
		return
	}

	var req models.CreateEntryRequest
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		writeError(w, r, fmt.Errorf("%w: %w", ErrInvalidJSON, err), "*Handler.createEntry")
		return
	}

	entry, err := h.services.VaultService.Create(r.Context(), owner, req)
	if err != nil {
		writeError(w, r, err, "*Handler.createEntry")
		return
	}

	utils.WriteJSON(w, entry, http.StatusCreated)
}

func (h *Handler) listEntries(w http.ResponseWriter, r *http.Request) {
	owner, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, r, ErrNoUserInContext, "*Handler.listEntries")
		return
	}

	list, err := h.services.VaultService.List(r.Context(), owner)
	if err != nil {
		writeError(w, r, err, "*Handler.listEntries")
		return
	}

	if len(list.Undecryptable) > 0 {
		ids := make([]string, 0, len(list.Undecryptable))
		for _, id := range list.Undecryptable {
			ids = append(ids, id.String())
		}
		w.Header().Set(UndecryptableHeader, strings.Join(ids, ","))
	}

	entries := list.Entries
	if entries == nil {
		entries = []models.EntryResponse{}
	}

	utils.WriteJSON(w, entries, http.StatusOK)
}

func (h *Handler) getEntry(w http.ResponseWriter, r *http.Request) {
	owner, id, err := ownerAndEntryID(r)
	if err != nil {
		writeError(w, r, err, "*Handler.getEntry")
		return
	}

	entry, err := h.services.VaultService.Get(r.Context(), owner, id)
	if err != nil {
		writeError(w, r, err, "*Handler.getEntry")
		return
	}

	utils.WriteJSON(w, entry, http.StatusOK)
}

func (h *Handler) updateEntry(w http.ResponseWriter, r *http.Request) {
	owner, id, err := ownerAndEntryID(r)
	if err != nil {
		writeError(w, r, err, "*Handler.updateEntry")
		return
	}

	var req models.UpdateEntryRequest
	if err = utils.DecodeJSON(w, r, &req); err != nil {
		writeError(w, r, fmt.Errorf("%w: %w", ErrInvalidJSON, err), "*Handler.updateEntry")
		return
	}

	entry, err := h.services.VaultService.Update(r.Context(), owner, id, req)
	if err != nil {
		writeError(w, r, err, "*Handler.updateEntry")
		return
	}

	utils.WriteJSON(w, entry, http.StatusOK)
}

func (h *Handler) deleteEntry(w http.ResponseWriter, r *http.Request) {
	owner, id, err := ownerAndEntryID(r)
	if err != nil {
		writeError(w, r, err, "*Handler.deleteEntry")
		return
	}

	if err = h.services.VaultService.Delete(r.Context(), owner, id); err != nil {
		writeError(w, r, err, "*Handler.deleteEntry")
		return
	}

	utils.WriteJSON(w, models.MessageResponse{Message: app.MsgPasswordDeleted}, http.StatusOK)
}

func ownerAndEntryID(r *http.Request) (uuid.UUID, uuid.UUID, error) {
	owner, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		return uuid.Nil, uuid.Nil, ErrNoUserInContext
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, uuid.Nil, fmt.Errorf("%w: %w", ErrInvalidEntryID, err)
	}

	return owner, id, nil
}
