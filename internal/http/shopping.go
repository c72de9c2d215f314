package httpapp

import (
	"net/http"

	"github.com/cesargomez89/mekkompis/internal/domain"
	"github.com/cesargomez89/mekkompis/internal/http/dto"
)

func (h *Handler) CreateShoppingItem(w http.ResponseWriter, r *http.Request) {
	jobID, ok := h.idOr404(w, r, "job")
	if !ok {
		return
	}
	var req dto.ShoppingItemRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err, "Kunde inte skapa inköpsartikel")
		return
	}

	name := ""
	if n := req.Name(); n != nil {
		name = *n
	}
	items, err := h.Shopping.Create(r.Context(), jobID, name, req.Quantity.Value)
	if err != nil {
		h.writeError(w, r, err, "Kunde inte skapa inköpsartikel")
		return
	}
	writeJSON(w, http.StatusCreated, items)
}

func (h *Handler) UpdateShoppingItem(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idOr404(w, r, "shopping item")
	if !ok {
		return
	}
	var req dto.ShoppingItemRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err, "Kunde inte uppdatera artikel")
		return
	}

	item, err := h.Shopping.Update(r.Context(), id, req.Name(), req.Quantity.Value)
	if err != nil {
		h.writeError(w, r, err, "Kunde inte uppdatera artikel")
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Message string               `json:"message"`
		Item    *domain.ShoppingItem `json:"item"`
	}{"Artikel uppdaterad", item})
}

func (h *Handler) ToggleShoppingItem(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idOr404(w, r, "shopping item")
	if !ok {
		return
	}
	purchased, err := h.Shopping.TogglePurchased(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err, "Kunde inte uppdatera status")
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Message   string      `json:"message"`
		Purchased domain.Flag `json:"purchased"`
	}{"Status uppdaterad", purchased})
}

func (h *Handler) DeleteShoppingItem(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idOr404(w, r, "shopping item")
	if !ok {
		return
	}
	if err := h.Shopping.Delete(r.Context(), id); err != nil {
		h.writeError(w, r, err, "Kunde inte ta bort artikel")
		return
	}
	writeMessage(w, http.StatusOK, "Artikeln har tagits bort")
}
