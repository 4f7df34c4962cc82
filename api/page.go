package api

import (
	"bytes"
	"encoding/base64"
	"html/template"
	"net/http"
	"net/url"
	"strconv"

	"github.com/sua7dev/qr-generator/download"
	"github.com/sua7dev/qr-generator/qr"
	"github.com/sua7dev/qr-generator/session"
)

const (
	toastGenerated      = "¡Código QR generado con éxito!"
	warningEncodeFailed = "No se pudo generar el QR: el texto es demasiado largo."
	feedbackThanks      = "¡Gracias por tu opinion!"
)

type pageData struct {
	State    session.State
	Filename string
	ImageSrc template.URL
	Toast    string
	Feedback string

	MinModuleSize, MaxModuleSize   int
	MinBorderWidth, MaxBorderWidth int
}

// loadSession returns the caller's session, starting a new one (and setting
// its cookie) when the cookie is missing or the session has expired.
func (s *Server) loadSession(w http.ResponseWriter, r *http.Request) (session.Session, error) {
	if c, err := r.Cookie(s.CookieName); err == nil {
		if sess, ok := s.Sessions.Get(c.Value); ok {
			return sess, nil
		}
	}

	sess, err := s.Sessions.Create()
	if err != nil {
		return session.Session{}, err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     s.CookieName,
		Value:    sess.ID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return sess, nil
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	sess, err := s.loadSession(w, r)
	if err != nil {
		s.Log.Error("create session", "error", err)
		writeError(w, http.StatusInternalServerError, "could not start session")
		return
	}
	s.renderPage(w, sess, "", "")
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	sess, err := s.loadSession(w, r)
	if err != nil {
		s.Log.Error("create session", "error", err)
		writeError(w, http.StatusInternalServerError, "could not start session")
		return
	}
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid form")
		return
	}

	reducer := s.Sessions.Reducer()
	state, _ := reducer.Reduce(sess.State, session.StyleChange{Style: styleFromForm(r.PostForm, sess.State.Style)})
	state, effect := reducer.Reduce(state, session.Submit{Text: r.PostForm.Get("text")})

	toast := ""
	sess.Artifact = nil
	if effect == session.EffectEncode {
		artifact, err := encodeArtifact(state, sess.Filename)
		if err != nil {
			s.Log.Warn("qr generation failed", "session", sess.ID, "error", err, "text_len", len(state.Text))
			state = session.Fail(state, warningEncodeFailed)
		} else {
			state = session.Complete(state)
			sess.Artifact = &artifact
			toast = toastGenerated
			s.Log.Info("qr generated", "session", sess.ID, "bytes", len(artifact.Bytes),
				"module_size", state.Style.ModuleSize, "border", state.Style.BorderWidth)
		}
	}

	sess.State = state
	s.Sessions.Save(sess)
	s.renderPage(w, sess, toast, "")
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	sess, err := s.loadSession(w, r)
	if err != nil {
		s.Log.Error("create session", "error", err)
		writeError(w, http.StatusInternalServerError, "could not start session")
		return
	}

	sess.State, _ = s.Sessions.Reducer().Reduce(sess.State, session.Reset{})
	sess.Artifact = nil
	s.Sessions.Save(sess)
	s.renderPage(w, sess, "", "")
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	c, err := r.Cookie(s.CookieName)
	if err != nil {
		writeError(w, http.StatusNotFound, "no QR code generated")
		return
	}
	sess, ok := s.Sessions.Get(c.Value)
	if !ok || sess.Artifact == nil {
		writeError(w, http.StatusNotFound, "no QR code generated")
		return
	}

	a := sess.Artifact
	w.Header().Set("Content-Type", a.MIMEType)
	w.Header().Set("Content-Disposition", a.ContentDisposition())
	w.Header().Set("Content-Length", strconv.Itoa(len(a.Bytes)))
	w.WriteHeader(http.StatusOK)
	w.Write(a.Bytes)
}

// handleFeedback accepts the thumbs rating. Ratings are not stored.
func (s *Server) handleFeedback(w http.ResponseWriter, r *http.Request) {
	sess, err := s.loadSession(w, r)
	if err != nil {
		s.Log.Error("create session", "error", err)
		writeError(w, http.StatusInternalServerError, "could not start session")
		return
	}

	thanks := ""
	switch rating := r.PostFormValue("rating"); rating {
	case "up", "down":
		s.Log.Debug("feedback received", "session", sess.ID, "rating", rating)
		thanks = feedbackThanks
	}
	s.renderPage(w, sess, "", thanks)
}

func (s *Server) renderPage(w http.ResponseWriter, sess session.Session, toast, feedback string) {
	data := pageData{
		State:          sess.State,
		Filename:       sess.Filename,
		Toast:          toast,
		Feedback:       feedback,
		MinModuleSize:  qr.MinModuleSize,
		MaxModuleSize:  qr.MaxModuleSize,
		MinBorderWidth: qr.MinBorderWidth,
		MaxBorderWidth: qr.MaxBorderWidth,
	}
	if sess.State.Phase == session.PhaseReady && sess.Artifact != nil {
		data.ImageSrc = template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(sess.Artifact.Bytes))
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		s.Log.Error("render page", "error", err)
		writeError(w, http.StatusInternalServerError, "could not render page")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// encodeArtifact runs the encode and render steps for a state in the
// encoding phase.
func encodeArtifact(state session.State, filename string) (download.Artifact, error) {
	img, err := qr.Encode(state.Text, state.Style)
	if err != nil {
		return download.Artifact{}, err
	}
	png, err := qr.PNG(img)
	if err != nil {
		return download.Artifact{}, err
	}
	return download.Package(png, filename), nil
}

// styleFromForm reads the style controls, keeping prev for any field that
// is missing or not a number.
func styleFromForm(form url.Values, prev qr.Style) qr.Style {
	style := prev
	if v := form.Get("fg"); v != "" {
		style.Foreground = v
	}
	if v := form.Get("bg"); v != "" {
		style.Background = v
	}
	if n, err := strconv.Atoi(form.Get("module_size")); err == nil {
		style.ModuleSize = n
	}
	if n, err := strconv.Atoi(form.Get("border")); err == nil {
		style.BorderWidth = n
	}
	return style
}
