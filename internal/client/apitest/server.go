// Package apitest runs an in-memory imitation of the IT Controller REST API
// for tests. It speaks the same JSON contract as the real server, issues
// HS256 tokens, and can be told to fail specific calls.
package apitest

import (
	"crypto/rand"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/itcontroller/internal/client/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/mux"
	"golang.org/x/crypto/bcrypt"
)

// Fault makes the next request matching Method and Path answer with Status
// and Body instead of being served.
type Fault struct {
	Method string
	Path   string
	Status int
	Body   string
}

type Server struct {
	*httptest.Server

	mu         sync.Mutex
	secret     []byte
	now        func() time.Time
	nextID     int64
	users      map[string][]byte
	tasks      []models.TaskWire
	notes      []models.NoteWire
	creds      []models.CredentialWire
	activities []models.Activity
	products   []models.Product
	faults     []Fault
	requests   []string
	hooks      map[string]func()
}

type tokenClaims struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
}

// New starts a server and stops it when the test ends.
func New(t testing.TB) *Server {
	t.Helper()
	s := &Server{
		secret: newSecret(),
		now:    time.Now,
		users:  make(map[string][]byte),
		hooks:  make(map[string]func()),
	}
	s.Server = httptest.NewServer(s.router())
	t.Cleanup(s.Close)
	return s
}

// BaseURL is the API root, the value a client is configured with.
func (s *Server) BaseURL() string {
	return s.URL + "/api"
}

func (s *Server) router() http.Handler {
	r := mux.NewRouter()
	r.Use(s.record, s.injectFaults)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/auth/register", s.handleRegister).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", s.handleLogin).Methods(http.MethodPost)

	private := api.NewRoute().Subrouter()
	private.Use(s.requireToken)
	private.HandleFunc("/auth/profile", s.handleProfile).Methods(http.MethodPost)

	mount(private, "/tareas", s.taskResource())
	mount(private, "/notas", s.noteResource())
	mount(private, "/credenciales", s.credentialResource())
	mount(private, "/productos", s.productResource())
	mount(private, "/actividades", s.activityResource())

	return r
}

// AddUser registers username directly.
func (s *Server) AddUser(username, password string) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}
	s.mu.Lock()
	s.users[username] = hash
	s.mu.Unlock()
}

// HasUser reports whether username exists.
func (s *Server) HasUser(username string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.users[username]
	return ok
}

// CheckPassword reports whether password is the current password of username.
func (s *Server) CheckPassword(username, password string) bool {
	s.mu.Lock()
	hash, ok := s.users[username]
	s.mu.Unlock()
	return ok && bcrypt.CompareHashAndPassword(hash, []byte(password)) == nil
}

// Token mints a valid token for username.
func (s *Server) Token(username string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sign(username)
}

// ExpireSessions invalidates every token issued so far.
func (s *Server) ExpireSessions() {
	s.mu.Lock()
	s.secret = newSecret()
	s.mu.Unlock()
}

// Fail queues a one-shot fault.
func (s *Server) Fail(method, path string, status int, body string) {
	s.mu.Lock()
	s.faults = append(s.faults, Fault{Method: method, Path: path, Status: status, Body: body})
	s.mu.Unlock()
}

// OnRequest runs fn, outside the server lock, whenever "METHOD /path" is
// about to be served. Tests use it to observe client state mid-request.
func (s *Server) OnRequest(method, path string, fn func()) {
	s.mu.Lock()
	s.hooks[method+" "+path] = fn
	s.mu.Unlock()
}

// Requests lists "METHOD /path" of every request received, oldest first.
func (s *Server) Requests() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.requests...)
}

func (s *Server) sign(username string) string {
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			ExpiresAt: jwt.NewNumericDate(s.now().Add(time.Hour)),
		},
		Username: username,
	}).SignedString(s.secret)
	if err != nil {
		panic(err)
	}
	return tok
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Method + " " + strings.TrimPrefix(r.URL.Path, "/api")
		s.mu.Lock()
		s.requests = append(s.requests, key)
		hook := s.hooks[key]
		s.mu.Unlock()
		if hook != nil {
			hook()
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) injectFaults(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := strings.TrimPrefix(r.URL.Path, "/api")
		s.mu.Lock()
		for i, f := range s.faults {
			if f.Method == r.Method && f.Path == path {
				s.faults = append(s.faults[:i], s.faults[i+1:]...)
				s.mu.Unlock()
				http.Error(w, f.Body, f.Status)
				return
			}
		}
		s.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

type ctxUser struct{}

func (s *Server) requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, found := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !found || raw == "" {
			http.Error(w, "", http.StatusUnauthorized)
			return
		}

		s.mu.Lock()
		secret := s.secret
		s.mu.Unlock()

		claims := &tokenClaims{}
		tok, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
			return secret, nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil || !tok.Valid {
			http.Error(w, "", http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r.WithContext(withUser(r.Context(), claims.Username)))
	})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req models.AuthRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Solicitud inválida", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Username) == "" || req.Password == "" {
		http.Error(w, "Usuario y contraseña son requeridos", http.StatusBadRequest)
		return
	}
	if s.HasUser(req.Username) {
		http.Error(w, "El usuario ya existe", http.StatusBadRequest)
		return
	}
	s.AddUser(req.Username, req.Password)
	writeJSON(w, http.StatusOK, map[string]string{"message": "Usuario registrado"})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req models.AuthRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Solicitud inválida", http.StatusBadRequest)
		return
	}
	if !s.CheckPassword(req.Username, req.Password) {
		http.Error(w, "Usuario o contraseña incorrectos", http.StatusUnauthorized)
		return
	}
	writeJSON(w, http.StatusOK, models.AuthResponse{Token: s.Token(req.Username), Username: req.Username})
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	current := userFrom(r.Context())

	var req models.ProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Solicitud inválida", http.StatusBadRequest)
		return
	}
	name := strings.TrimSpace(req.Username)
	if name == "" {
		http.Error(w, "El nombre de usuario es requerido", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	hash, ok := s.users[current]
	if !ok {
		s.mu.Unlock()
		http.Error(w, "", http.StatusUnauthorized)
		return
	}
	if _, taken := s.users[name]; taken && name != current {
		s.mu.Unlock()
		http.Error(w, "El nombre de usuario ya está en uso", http.StatusConflict)
		return
	}
	if req.Password != "" {
		var err error
		if hash, err = bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.MinCost); err != nil {
			s.mu.Unlock()
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	}
	delete(s.users, current)
	s.users[name] = hash
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, models.ProfileResponse{Username: name})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func newSecret() []byte {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		panic(fmt.Sprintf("apitest: %v", err))
	}
	return b
}
