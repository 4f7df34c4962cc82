package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/sua7dev/qr-generator/qr"
)

// handleQRImage renders a code straight from query parameters, without a
// session: /qr.png?text=...&fg=%23000000&bg=%23FFFFFF&size=8&border=2.
func (s *Server) handleQRImage(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	def := qr.DefaultStyle()
	style := qr.Style{
		Foreground:  q.Get("fg"),
		Background:  q.Get("bg"),
		ModuleSize:  queryInt(r, "size", def.ModuleSize),
		BorderWidth: queryInt(r, "border", def.BorderWidth),
	}
	if style.Foreground == "" {
		style.Foreground = def.Foreground
	}
	if style.Background == "" {
		style.Background = def.Background
	}

	png, err := qr.GeneratePNG(q.Get("text"), style)
	if err != nil {
		if errors.Is(err, qr.ErrEmptyInput) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.Log.Warn("qr image generation failed", "error", err)
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(png)))
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

func queryInt(r *http.Request, key string, defaultVal int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return n
}
