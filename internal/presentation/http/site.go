package httppresentation

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/waveshop/waveshop/internal/application/sitesvc"
)

type siteRequest struct {
	Address string `json:"address"`
	Hours   string `json:"hours"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
}

func (h *Handler) handleGetSite(w http.ResponseWriter, r *http.Request) {
	info, err := h.site.Get(r.Context())
	if err != nil {
		serviceError(w, r, err)
		return
	}
	ok(w, envelope{"site": newSiteView(info)})
}

func (h *Handler) handleCreateSite(w http.ResponseWriter, r *http.Request) {
	var req siteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, errors.New("invalid request body"))
		return
	}

	info, err := h.site.Create(r.Context(), sitesvc.InfoInput{
		Address: req.Address,
		Hours:   req.Hours,
		Phone:   req.Phone,
		Email:   req.Email,
	})
	if err != nil {
		serviceError(w, r, err)
		return
	}
	ok(w, envelope{"site": newSiteView(info)})
}

func (h *Handler) handleUpdateSite(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		badRequest(w, errors.New("id is required"))
		return
	}
	var req siteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, errors.New("invalid request body"))
		return
	}

	info, err := h.site.Update(r.Context(), id, sitesvc.InfoInput{
		Address: req.Address,
		Hours:   req.Hours,
		Phone:   req.Phone,
		Email:   req.Email,
	})
	if err != nil {
		serviceError(w, r, err)
		return
	}
	ok(w, envelope{"site": newSiteView(info)})
}
