// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package web serves the search form, the results table and the CSV
// download.
package web

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/pdiddy/smb-search/internal/export"
	"github.com/pdiddy/smb-search/internal/search"
	"github.com/pdiddy/smb-search/internal/session"
	"github.com/pdiddy/smb-search/pkg/types"
)

// SessionCookie names the cookie that carries the session ID.
const SessionCookie = "smb_search_session"

// Paths served by Handler.
const (
	PathHome   = "/"
	PathSearch = "/search"
	PathExport = "/search/export.csv"
	PathAbout  = "/about"
	PathHealth = "/healthz"
)

// Form defaults for a session that has not searched yet.
const (
	defaultIndustry = "Accountant"
	defaultLocation = "Seattle, WA"
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = map[string]*template.Template{
	"home":   parsePage("home.html"),
	"search": parsePage("search.html"),
	"about":  parsePage("about.html"),
}

func parsePage(name string) *template.Template {
	funcs := template.FuncMap{"inc": func(i int) int { return i + 1 }}
	return template.Must(template.New(name).Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+name))
}

// Server holds the dependencies of the HTTP handlers.
type Server struct {
	provider      search.Provider
	providerCfg   types.ProviderConfig
	sessions      *session.Store
	log           io.Writer
	secureCookies bool
	startedAt     time.Time
}

// NewServer wires a provider and a session store into a Server. Log lines go
// to logw; pass io.Discard to silence them.
func NewServer(p search.Provider, cfg types.ProviderConfig, sessions *session.Store, logw io.Writer) *Server {
	if sessions == nil {
		sessions = session.NewStore(0)
	}
	if logw == nil {
		logw = io.Discard
	}
	return &Server{
		provider:    p,
		providerCfg: cfg,
		sessions:    sessions,
		log:         logw,
		startedAt:   time.Now().UTC(),
	}
}

// SetSecureCookies marks the session cookie Secure. Enable it when the
// server is reached over HTTPS.
func (s *Server) SetSecureCookies(v bool) { s.secureCookies = v }

// Handler returns the router with middleware attached.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestLogger(&middleware.DefaultLogFormatter{
		Logger:  log.New(s.log, "", log.LstdFlags),
		NoColor: true,
	}))
	r.Use(middleware.Recoverer)

	r.Get(PathHome, s.handleHome)
	r.Get(PathSearch, s.handleSearchPage)
	r.Post(PathSearch, s.handleSearch)
	r.Get(PathExport, s.handleExport)
	r.Get(PathAbout, s.handleAbout)
	r.Get(PathHealth, s.handleHealth)
	return r
}

type formValues struct {
	Industry string
	Location string
	Count    string
}

type pageData struct {
	Title        string
	Active       string
	Form         formValues
	Warning      string
	Outcome      session.Outcome
	ExportURL    string
	ProviderName string
	MinCount     int
	MaxCount     int
}

func (s *Server) newPage(title, active string) pageData {
	name := ""
	if s.provider != nil {
		name = s.provider.Name()
	}
	return pageData{
		Title:        title,
		Active:       active,
		ExportURL:    PathExport,
		ProviderName: name,
		MinCount:     search.MinCount,
		MaxCount:     search.MaxCount,
		Outcome:      session.Outcome{State: session.StateEmpty},
	}
}

func (s *Server) handleHome(w http.ResponseWriter, _ *http.Request) {
	s.render(w, http.StatusOK, "home", s.newPage("Home", "home"))
}

func (s *Server) handleAbout(w http.ResponseWriter, _ *http.Request) {
	s.render(w, http.StatusOK, "about", s.newPage("About", "about"))
}

func (s *Server) handleSearchPage(w http.ResponseWriter, r *http.Request) {
	id := s.sessionID(w, r)
	outcome, _ := s.sessions.Get(id)

	page := s.newPage("Business Search", "search")
	page.Outcome = outcome
	page.Form = formValues{
		Industry: defaultIndustry,
		Location: defaultLocation,
		Count:    strconv.Itoa(search.DefaultCount),
	}
	if outcome.State != session.StateEmpty {
		page.Form = formValues{
			Industry: outcome.Query.Industry,
			Location: outcome.Query.Location,
			Count:    strconv.Itoa(outcome.Query.Count),
		}
	}
	s.render(w, http.StatusOK, "search", page)
}

// handleSearch validates the form, runs one provider call and stores the
// outcome in the session before redirecting back to the search page. An
// invalid count re-renders the form with a warning and never reaches the
// provider.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	id := s.sessionID(w, r)

	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	form := formValues{
		Industry: r.PostFormValue("industry"),
		Location: r.PostFormValue("location"),
		Count:    strings.TrimSpace(r.PostFormValue("count")),
	}

	count, err := search.ParseCount(form.Count)
	query := search.Query{Industry: form.Industry, Location: form.Location, Count: count}
	if err == nil {
		err = query.Validate()
	}
	if err != nil {
		outcome, _ := s.sessions.Get(id)
		page := s.newPage("Business Search", "search")
		page.Form = form
		page.Outcome = outcome
		page.Warning = userMessage(err)
		s.render(w, http.StatusUnprocessableEntity, "search", page)
		return
	}

	outcome := session.Outcome{Query: query, SearchedAt: time.Now().UTC()}
	out, err := search.Search(r.Context(), query, s.provider, s.providerCfg, s.log)
	if err != nil {
		outcome.State = session.StateError
		outcome.Message = userMessage(err)
	} else {
		outcome.State = session.StateResults
		outcome.Records = out.Records
	}
	s.sessions.Put(id, outcome)

	http.Redirect(w, r, PathSearch, http.StatusSeeOther)
}

// handleExport sends the session's current records as CSV. Without results
// the file holds only the header row.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	id := s.sessionID(w, r)
	outcome, _ := s.sessions.Get(id)

	var records []types.BusinessRecord
	if outcome.State == session.StateResults {
		records = outcome.Records
	}

	var buf bytes.Buffer
	if err := export.WriteCSV(&buf, records); err != nil {
		fmt.Fprintf(s.log, "warning: CSV export failed: %v\n", err)
		http.Error(w, "export failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", export.FormatCSV.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.CSVFilename))
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	name := ""
	if s.provider != nil {
		name = s.provider.Name()
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"ok":         s.provider != nil,
		"provider":   name,
		"started_at": s.startedAt.Format(time.RFC3339),
		"uptime_sec": int(time.Since(s.startedAt).Seconds()),
	})
}

// sessionID returns the caller's session ID, issuing a new cookie when the
// request has none or carries a malformed one.
func (s *Server) sessionID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(SessionCookie); err == nil && session.ValidID(c.Value) {
		return c.Value
	}
	id := session.NewID()
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

func (s *Server) render(w http.ResponseWriter, status int, name string, data pageData) {
	var buf bytes.Buffer
	if err := pages[name].ExecuteTemplate(&buf, "layout", data); err != nil {
		fmt.Fprintf(s.log, "warning: rendering %s: %v\n", name, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
