/*
Package main provides a toy example use of the responder http stack.

Run it from this directory and visit http://localhost:3000.
*/
package main

import (
	"embed"
	"io"
	"io/fs"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/xy-planning-network/responder/http/interchange"
	"github.com/xy-planning-network/responder/http/resp"
	"github.com/xy-planning-network/responder/http/router"
	"github.com/xy-planning-network/responder/http/template"
	"github.com/xy-planning-network/responder/logger"
	"github.com/xy-planning-network/responder/ranger"
)

//go:embed tmpl/*.tmpl
var tmpls embed.FS

//go:embed files/*
var files embed.FS

const (
	homeTmpl    = "tmpl/home.tmpl"
	profileTmpl = "tmpl/profile.tmpl"
)

var users = []string{"ada", "kpicaza"}

// Handler shares the initialized Ranger across all example responses.
type Handler struct {
	*ranger.Ranger
	downloads fs.FS
	health    *interchange.Responder[*http.Response]
}

func main() {
	rng, err := ranger.New(ranger.WithTemplateOpts(template.WithFS(tmpls)))
	if err != nil {
		logger.New().Fatal(err.Error(), nil)
		os.Exit(1)
	}

	downloads, err := fs.Sub(files, "files")
	if err != nil {
		rng.EmitLogger().Fatal(err.Error(), nil)
		os.Exit(1)
	}

	h := &Handler{
		Ranger:    rng,
		downloads: downloads,
		health:    interchange.NewHTTPResponder(rng.Responder),
	}

	rng.HandleRoutes([]router.Route{
		{Name: "home", Path: "/", Method: http.MethodGet, Handler: h.home},
		{Name: "user_profile", Path: "/users/{username}", Method: http.MethodGet, Handler: h.profile},
		{Name: "user_json", Path: "/api/users/{username}", Method: http.MethodGet, Handler: h.userJson},
		{Name: "download", Path: "/download/{name}", Method: http.MethodGet, Handler: h.download},
		{Name: "me", Path: "/me", Method: http.MethodGet, Handler: h.me},
		{Name: "docs", Path: "/docs", Method: http.MethodGet, Handler: h.docs},
		{Name: "health", Path: "/health", Method: http.MethodGet, Handler: h.healthcheck},
	})

	if err := rng.Guide(); err != nil {
		os.Exit(1)
	}
}

// home renders a template using the functions the Ranger makes available.
func (h *Handler) home(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r)(h.Render(homeTmpl, map[string]any{"title": "Users", "users": users}))
}

// profile renders a template for the user, or 404 for unknown users.
func (h *Handler) profile(w http.ResponseWriter, r *http.Request) {
	username, ok := lookup(r)
	if !ok {
		h.serve(w, r)(h.Empty(resp.Code(http.StatusNotFound)))
		return
	}

	h.serve(w, r)(h.Render(profileTmpl, map[string]any{"username": username}))
}

// userJson serializes the user, pretty printed if ?pretty is set.
func (h *Handler) userJson(w http.ResponseWriter, r *http.Request) {
	username, ok := lookup(r)
	if !ok {
		h.serve(w, r)(h.Json(map[string]string{"error": "unknown user"}, resp.Code(http.StatusNotFound)))
		return
	}

	opts := make([]resp.Fn, 0, 1)
	if r.URL.Query().Has("pretty") {
		opts = append(opts, resp.SerializerContext(map[string]any{
			resp.JsonEncodeOptionsKey: resp.DefaultJsonEncodeOptions | resp.JsonPrettyPrint,
		}))
	}

	profile, err := h.Url("user_profile", map[string]string{"username": username})
	if err != nil {
		h.serve(w, r)(nil, err)
		return
	}

	h.serve(w, r)(h.Json(map[string]string{"username": username, "profile": profile}, opts...))
}

// download sends one of the embedded files as an attachment.
func (h *Handler) download(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	h.serve(w, r)(h.File(name, resp.FS(h.downloads), resp.Filename("export-"+name)))
}

// me redirects to a named route.
func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r)(h.Route("user_profile", map[string]string{"username": users[1]}, resp.Code(http.StatusSeeOther)))
}

// docs redirects off site.
func (h *Handler) docs(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r)(h.Redirect("https://pkg.go.dev/net/http", resp.Code(http.StatusTemporaryRedirect)))
}

// healthcheck builds a *http.Response as a framework other than net/http might consume it,
// then copies it onto w.
func (h *Handler) healthcheck(w http.ResponseWriter, r *http.Request) {
	res, err := h.health.Json(map[string]string{"status": "ok"})
	if err != nil {
		h.serve(w, r)(nil, err)
		return
	}
	defer res.Body.Close()

	for k, vals := range res.Header {
		for _, v := range vals {
			w.Header().Add(k, v)
		}
	}

	w.WriteHeader(res.StatusCode)
	io.Copy(w, res.Body)
}

// serve writes the response or, if building it failed, the error page.
func (h *Handler) serve(w http.ResponseWriter, r *http.Request) func(*resp.Response, error) {
	return func(res *resp.Response, err error) {
		if err != nil {
			h.EmitLogger().Error(err.Error(), &logger.LogContext{Error: err, Request: r})

			res, err = h.Render(
				template.ErrorTmpl,
				map[string]any{"title": "Oops", "message": "Something went wrong."},
				resp.Code(http.StatusInternalServerError),
			)
			if err != nil {
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				return
			}
		}

		res.ServeHTTP(w, r)
	}
}

func lookup(r *http.Request) (string, bool) {
	username := mux.Vars(r)["username"]
	for _, u := range users {
		if u == username {
			return u, true
		}
	}

	return "", false
}
