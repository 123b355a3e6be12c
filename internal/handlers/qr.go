package handlers

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	qrcode "github.com/skip2/go-qrcode"
)

const qrSize = 320 // mobile-friendly size

// QR serves a PNG QR code encoding the join link for an existing room.
func (h *GameHandler) QR(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]
	if _, err := h.store.Get(r.Context(), code); err != nil {
		h.writeDomainError(w, err)
		return
	}

	png, err := qrcode.Encode(h.joinURL(r, code), qrcode.Medium, qrSize)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "QR generation failed")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}

// joinURL prefers the configured public URL and otherwise reconstructs
// one from the request, respecting X-Forwarded-Proto behind a proxy.
func (h *GameHandler) joinURL(r *http.Request, code string) string {
	base := h.publicURL
	if base == "" {
		scheme := "http"
		if r.TLS != nil {
			scheme = "https"
		}
		if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
			scheme = proto
		}
		base = scheme + "://" + r.Host
	}
	return strings.TrimSuffix(base, "/") + "/join/" + code
}
