// ToolVerse - AI Tools Directory and Data Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/toolverse

package api

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/toolverse/internal/logging"
	"github.com/tomtom215/toolverse/internal/models"
)

// AdView is a placement as served to the page. The target URL is hidden
// behind ClickURL so that clicks are counted.
type AdView struct {
	models.AdPlacement
	ClickURL string `json:"click_url"`
}

var adSlots = map[string]struct{}{
	models.SlotHeader:  {},
	models.SlotSidebar: {},
	models.SlotInFeed:  {},
	models.SlotFooter:  {},
}

// GetAd handles GET /api/v1/ads?slot=. It answers 204 when ads are
// disabled or the slot has nothing live.
func (h *Handler) GetAd(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	slot := strings.TrimSpace(r.URL.Query().Get("slot"))
	if _, ok := adSlots[slot]; !ok {
		rw.ErrorWithDetails(http.StatusBadRequest, ErrCodeValidation,
			"slot must be one of header, sidebar, in-feed, footer",
			map[string]interface{}{"field": "slot", "value": sanitizeLogValue(slot)})
		return
	}
	if h.ads == nil {
		rw.NoContent()
		return
	}
	p, ok := h.ads.Pick(slot, h.now())
	if !ok {
		rw.NoContent()
		return
	}
	w.Header().Set("Cache-Control", "no-store")
	rw.Success(AdView{AdPlacement: p, ClickURL: "/api/v1/ads/" + p.ID + "/click"})
}

// ClickAd handles GET /api/v1/ads/{id}/click with a 302 to the sponsor.
func (h *Handler) ClickAd(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if h.ads == nil {
		WriteNotFound(w, r, "ads are disabled")
		return
	}
	target, ok := h.ads.Click(id)
	if !ok {
		WriteNotFound(w, r, "ad not found")
		return
	}
	logging.Ctx(r.Context()).Debug().Str("ad_id", sanitizeLogValue(id)).Msg("Ad click")
	w.Header().Set("Cache-Control", "no-store")
	http.Redirect(w, r, target, http.StatusFound)
}
