package handler

import (
	"context"
	"errors"
	"html/template"
	"image/color"
	"net/http"
	"strconv"

	"github.com/ArthurB95/linklink/pkg/core/domain"
	"github.com/ArthurB95/linklink/pkg/core/services"
	"github.com/ArthurB95/linklink/pkg/ports"
	qrcode "github.com/skip2/go-qrcode"
	"go.uber.org/zap"
)

// ProfileHandler serves the public side of the gateway: the handle decision
// (redirect vs profile), the themed profile page, the bound QR image and the
// click-registration proxy.
type ProfileHandler struct {
	resolver   *services.HandleResolver
	client     ports.BackendClient
	apiBaseURL string
	log        *zap.Logger
}

func NewProfileHandler(resolver *services.HandleResolver, client ports.BackendClient, apiBaseURL string, log *zap.Logger) *ProfileHandler {
	return &ProfileHandler{resolver: resolver, client: client, apiBaseURL: apiBaseURL, log: log}
}

// Resolve decides what a handle means. A short code becomes a hard 302 to
// the original URL and nothing is rendered; anything else falls through to
// the profile view.
func (h *ProfileHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	handle := r.PathValue("handle")
	if handle == "" {
		http.NotFound(w, r)
		return
	}

	res, err := h.resolver.Resolve(r.Context(), handle)
	if err != nil {
		http.Error(w, "resolution failed", http.StatusInternalServerError)
		return
	}

	if res.Kind == services.ResolvedAsLink {
		http.Redirect(w, r, res.URL, http.StatusFound)
		return
	}

	h.renderProfile(w, r, res.Handle)
}

// Preview renders the profile view directly, skipping the short-link probe.
// Router mounts it behind the auth middleware.
func (h *ProfileHandler) Preview(w http.ResponseWriter, r *http.Request) {
	handle := r.PathValue("handle")
	if handle == "" {
		http.NotFound(w, r)
		return
	}
	h.renderProfile(w, r, handle)
}

func (h *ProfileHandler) renderProfile(w http.ResponseWriter, r *http.Request, handle string) {
	page, err := h.client.PublicBioPage(r.Context(), handle)
	if err != nil {
		// Terminal not-found state, no retry. Any fetch error lands here,
		// not just 404s.
		if !errors.Is(err, domain.ErrNotFound) {
			h.log.Warn("public profile fetch failed", zap.String("handle", handle), zap.Error(err))
		}
		w.WriteHeader(http.StatusNotFound)
		_ = notFoundTmpl.Execute(w, nil)
		return
	}

	data := profileView{
		Page:    page,
		Handle:  handle,
		Theme:   string(domain.NormalizeTheme(page.Theme)),
		Initial: page.AvatarInitial(),
	}
	if page.CustomQRCode != nil {
		data.QRCodeURL = "/" + handle + "/qr.png"
		data.QRCodeName = page.CustomQRCode.Name
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := profileTmpl.Execute(w, data); err != nil {
		h.log.Error("profile render failed", zap.String("handle", handle), zap.Error(err))
	}
}

// QRImage renders the profile's bound custom QR code as PNG. The encoded
// value is the pure derivation: URL content goes through the backend scan
// tracker, anything else verbatim.
func (h *ProfileHandler) QRImage(w http.ResponseWriter, r *http.Request) {
	handle := r.PathValue("handle")
	page, err := h.client.PublicBioPage(r.Context(), handle)
	if err != nil || page.CustomQRCode == nil {
		http.NotFound(w, r)
		return
	}
	qr := page.CustomQRCode

	code, err := qrcode.New(qr.EncodedValue(h.apiBaseURL), qrcode.High)
	if err != nil {
		http.Error(w, "could not generate QR code", http.StatusInternalServerError)
		return
	}
	code.ForegroundColor = parseHexColor(qr.FgColor, color.Black)
	code.BackgroundColor = parseHexColor(qr.BgColor, color.White)

	png, err := code.PNG(clampQRSize(qr.Size))
	if err != nil {
		http.Error(w, "could not encode QR code", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(png)
}

// TrackClick proxies the best-effort click registration. The response never
// waits on the backend: registration failures are logged only and must not
// block the navigation they accompany.
func (h *ProfileHandler) TrackClick(w http.ResponseWriter, r *http.Request) {
	handle := r.PathValue("handle")
	linkID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if handle == "" || err != nil {
		http.Error(w, "invalid click target", http.StatusBadRequest)
		return
	}

	go func() {
		// Request context dies with this response; use background.
		if err := h.client.RegisterLinkClick(context.Background(), handle, linkID); err != nil {
			h.log.Warn("click registration failed",
				zap.String("handle", handle), zap.Int64("link_id", linkID), zap.Error(err))
		}
	}()

	w.WriteHeader(http.StatusNoContent)
}

type profileView struct {
	Page       *domain.BioPage
	Handle     string
	Theme      string
	Initial    string
	QRCodeURL  string
	QRCodeName string
}

func clampQRSize(size int) int {
	if size < 128 {
		return 256
	}
	if size > 512 {
		return 512
	}
	return size
}

func parseHexColor(s string, fallback color.Color) color.Color {
	if len(s) != 7 || s[0] != '#' {
		return fallback
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return fallback
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}
}

var profileTmpl = template.Must(template.New("profile").Parse(`<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Page.Title}}</title>
<style>
  body { margin: 0; font-family: system-ui, sans-serif; min-height: 100vh; }
  .theme-GRADIENT { background: linear-gradient(135deg, #6366f1, #a855f7); color: #fff; }
  .theme-DARK { background: linear-gradient(135deg, #111827, #1f2937); color: #fff; }
  .theme-MINIMAL { background: #fff; color: #111827; }
  .wrap { max-width: 640px; margin: 0 auto; padding: 3rem 1rem; text-align: center; }
  .avatar { width: 96px; height: 96px; border-radius: 50%; margin: 0 auto 1rem;
            display: flex; align-items: center; justify-content: center;
            font-size: 2.5rem; font-weight: 700; background: rgba(127,127,127,.25); overflow: hidden; }
  .avatar img { width: 100%; height: 100%; object-fit: cover; }
  .bio { opacity: .8; margin-bottom: 2rem; }
  .link { display: block; margin: .75rem 0; padding: 1rem; border-radius: .75rem;
          text-decoration: none; color: inherit; background: rgba(127,127,127,.18); }
  .theme-MINIMAL .link { background: #f3f4f6; }
  .empty { font-style: italic; opacity: .6; padding: 2rem 0; }
  .qr { margin-top: 2rem; }
  .qr img { background: #fff; padding: .75rem; border-radius: .75rem; }
  .footer { margin-top: 3rem; font-size: .7rem; letter-spacing: .2em;
            text-transform: uppercase; opacity: .6; }
</style>
</head>
<body class="theme-{{.Theme}}">
<div class="wrap">
  <div class="avatar">
    {{if .Page.AvatarURL}}<img src="{{.Page.AvatarURL}}" alt="{{.Page.Title}}"
      onerror="this.parentNode.textContent={{.Initial}}">{{else}}{{.Initial}}{{end}}
  </div>
  <h1>{{.Page.Title}}</h1>
  <p class="bio">{{.Page.Bio}}</p>
  {{if .Page.Links}}
    {{range .Page.Links}}
    <a class="link" href="{{.URL}}" target="_blank" rel="noopener noreferrer"
       data-link-id="{{.ID}}">{{.Title}}</a>
    {{end}}
  {{else}}
    <div class="empty">No links available right now.</div>
  {{end}}
  {{if .QRCodeURL}}
  <div class="qr">
    <p>{{.QRCodeName}}</p>
    <img src="{{.QRCodeURL}}" alt="QR code" width="200" height="200">
  </div>
  {{end}}
  <div class="footer">Powered by Link.Link.</div>
</div>
<script>
  // Best-effort click registration: fire-and-forget, never blocks the
  // navigation the anchor already performs.
  document.querySelectorAll('a[data-link-id]').forEach(function (a) {
    a.addEventListener('click', function () {
      var id = a.getAttribute('data-link-id');
      if (!id || id === '0') return;
      fetch('/{{.Handle}}/links/' + id + '/click', { method: 'POST', keepalive: true })
        .catch(function () {});
    });
  });
</script>
</body>
</html>
`))

var notFoundTmpl = template.Must(template.New("notfound").Parse(`<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Page not found</title>
<style>
  body { margin: 0; font-family: system-ui, sans-serif; background: #f9fafb;
         min-height: 100vh; display: flex; align-items: center; justify-content: center; }
  .card { background: #fff; padding: 2.5rem; border-radius: 1rem; text-align: center;
          box-shadow: 0 10px 30px rgba(0,0,0,.08); max-width: 24rem; }
  a { display: inline-block; margin-top: 1.5rem; padding: .75rem 1.5rem;
      background: #7c3aed; color: #fff; border-radius: .75rem; text-decoration: none; }
</style>
</head>
<body>
<div class="card">
  <h2>Page not found</h2>
  <p>The link you tried to reach does not exist or was removed.</p>
  <a href="/">Create my bio page</a>
</div>
</body>
</html>
`))
