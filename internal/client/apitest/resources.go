package apitest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/itcontroller/internal/client/models"
	"github.com/gorilla/mux"
)

func withUser(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, ctxUser{}, username)
}

func userFrom(ctx context.Context) string {
	u, _ := ctx.Value(ctxUser{}).(string)
	return u
}

// resource wires one REST collection to a slice owned by the Server. All
// callbacks run with the server lock held.
type resource[T any] struct {
	s        *Server
	items    *[]T
	id       func(*T) *int64
	validate func(*T) string
	prepare  func(*T)
	created  func(*T)
	updated  func(old, cur *T)
	deleted  func(*T)
	readOnly bool
}

func mount[T any](r *mux.Router, prefix string, res resource[T]) {
	r.HandleFunc(prefix, res.list).Methods(http.MethodGet)
	r.HandleFunc(prefix+"/{id:[0-9]+}", res.get).Methods(http.MethodGet)
	r.HandleFunc(prefix+"/{id:[0-9]+}", res.remove).Methods(http.MethodDelete)
	if res.readOnly {
		return
	}
	r.HandleFunc(prefix, res.create).Methods(http.MethodPost)
	r.HandleFunc(prefix+"/{id:[0-9]+}", res.update).Methods(http.MethodPut)
}

func (res resource[T]) list(w http.ResponseWriter, r *http.Request) {
	res.s.mu.Lock()
	out := append(make([]T, 0, len(*res.items)), *res.items...)
	res.s.mu.Unlock()
	writeJSON(w, http.StatusOK, out)
}

func (res resource[T]) get(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	res.s.mu.Lock()
	defer res.s.mu.Unlock()
	i := res.find(id)
	if i < 0 {
		http.Error(w, "No encontrado", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, (*res.items)[i])
}

func (res resource[T]) create(w http.ResponseWriter, r *http.Request) {
	var item T
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		http.Error(w, "Solicitud inválida", http.StatusBadRequest)
		return
	}

	res.s.mu.Lock()
	defer res.s.mu.Unlock()

	if msg := res.validate(&item); msg != "" {
		http.Error(w, msg, http.StatusBadRequest)
		return
	}
	res.s.nextID++
	*res.id(&item) = res.s.nextID
	if res.prepare != nil {
		res.prepare(&item)
	}
	*res.items = append(*res.items, item)
	if res.created != nil {
		res.created(&item)
	}
	writeJSON(w, http.StatusCreated, item)
}

func (res resource[T]) update(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)

	var item T
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		http.Error(w, "Solicitud inválida", http.StatusBadRequest)
		return
	}

	res.s.mu.Lock()
	defer res.s.mu.Unlock()

	i := res.find(id)
	if i < 0 {
		http.Error(w, "No encontrado", http.StatusNotFound)
		return
	}
	if got := *res.id(&item); got != 0 && got != id {
		http.Error(w, "El id no coincide", http.StatusBadRequest)
		return
	}
	if msg := res.validate(&item); msg != "" {
		http.Error(w, msg, http.StatusBadRequest)
		return
	}
	*res.id(&item) = id
	old := (*res.items)[i]
	(*res.items)[i] = item
	if res.updated != nil {
		res.updated(&old, &item)
	}
	w.WriteHeader(http.StatusNoContent)
}

func (res resource[T]) remove(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)

	res.s.mu.Lock()
	defer res.s.mu.Unlock()

	i := res.find(id)
	if i < 0 {
		http.Error(w, "No encontrado", http.StatusNotFound)
		return
	}
	item := (*res.items)[i]
	*res.items = append((*res.items)[:i], (*res.items)[i+1:]...)
	if res.deleted != nil {
		res.deleted(&item)
	}
	w.WriteHeader(http.StatusNoContent)
}

func (res resource[T]) find(id int64) int {
	for i := range *res.items {
		if *res.id(&(*res.items)[i]) == id {
			return i
		}
	}
	return -1
}

// logActivity appends to the feed; the server lock must be held.
func (s *Server) logActivity(kind models.ActivityType, description string, ref int64) {
	s.nextID++
	s.activities = append(s.activities, models.Activity{
		ID:             s.nextID,
		Type:           kind,
		Description:    description,
		ReferenceID:    &ref,
		CreatedAtStamp: models.Timestamp{Time: s.now()},
	})
}

func (s *Server) taskResource() resource[models.TaskWire] {
	return resource[models.TaskWire]{
		s:     s,
		items: &s.tasks,
		id:    func(t *models.TaskWire) *int64 { return &t.ID },
		validate: func(t *models.TaskWire) string {
			if strings.TrimSpace(t.Titulo) == "" {
				return "El título es requerido"
			}
			if _, err := models.TaskStatuses.Decode(t.Estado); err != nil {
				return err.Error()
			}
			if t.Categoria != nil {
				if _, err := models.TaskCategories.Decode(*t.Categoria); err != nil {
					return err.Error()
				}
			}
			if t.Prioridad != nil {
				if _, err := models.TaskPriorities.Decode(*t.Prioridad); err != nil {
					return err.Error()
				}
			}
			return ""
		},
		prepare: func(t *models.TaskWire) {
			t.FechaCreacion = &models.Timestamp{Time: s.now()}
		},
		created: func(t *models.TaskWire) {
			s.logActivity(models.ActivityTaskCreated, t.Titulo, t.ID)
		},
		updated: func(old, cur *models.TaskWire) {
			if cur.FechaCreacion == nil {
				cur.FechaCreacion = old.FechaCreacion
			}
			kind := models.ActivityTaskUpdated
			if cur.Estado == 2 && old.Estado != 2 {
				kind = models.ActivityTaskCompleted
			}
			s.logActivity(kind, cur.Titulo, cur.ID)
		},
		deleted: func(t *models.TaskWire) {
			s.logActivity(models.ActivityTaskDeleted, t.Titulo, t.ID)
		},
	}
}

func (s *Server) noteResource() resource[models.NoteWire] {
	return resource[models.NoteWire]{
		s:     s,
		items: &s.notes,
		id:    func(n *models.NoteWire) *int64 { return &n.ID },
		validate: func(n *models.NoteWire) string {
			if strings.TrimSpace(n.Titulo) == "" || strings.TrimSpace(n.Contenido) == "" {
				return "Título y contenido son requeridos"
			}
			return ""
		},
		prepare: func(n *models.NoteWire) {
			n.FechaCreacion = &models.Timestamp{Time: s.now()}
		},
		created: func(n *models.NoteWire) { s.logActivity(models.ActivityNoteCreated, n.Titulo, n.ID) },
		updated: func(old, cur *models.NoteWire) {
			if cur.FechaCreacion == nil {
				cur.FechaCreacion = old.FechaCreacion
			}
			s.logActivity(models.ActivityNoteUpdated, cur.Titulo, cur.ID)
		},
		deleted: func(n *models.NoteWire) { s.logActivity(models.ActivityNoteDeleted, n.Titulo, n.ID) },
	}
}

func (s *Server) credentialResource() resource[models.CredentialWire] {
	return resource[models.CredentialWire]{
		s:     s,
		items: &s.creds,
		id:    func(c *models.CredentialWire) *int64 { return &c.ID },
		validate: func(c *models.CredentialWire) string {
			if strings.TrimSpace(c.Titulo) == "" || c.Valor == "" {
				return "Título y valor son requeridos"
			}
			if c.Categoria != "" && !models.CredentialCategories.Valid(models.CredentialCategory(c.Categoria)) {
				return fmt.Sprintf("Categoría inválida: %s", c.Categoria)
			}
			return ""
		},
		prepare: func(c *models.CredentialWire) {
			c.FechaCreacion = &models.Timestamp{Time: s.now()}
		},
		created: func(c *models.CredentialWire) { s.logActivity(models.ActivityCredentialCreated, c.Titulo, c.ID) },
		deleted: func(c *models.CredentialWire) { s.logActivity(models.ActivityCredentialDeleted, c.Titulo, c.ID) },
	}
}

func (s *Server) productResource() resource[models.Product] {
	return resource[models.Product]{
		s:     s,
		items: &s.products,
		id:    func(p *models.Product) *int64 { return &p.ID },
		validate: func(p *models.Product) string {
			if strings.TrimSpace(p.Name) == "" {
				return "El nombre es requerido"
			}
			if p.Price < 0 {
				return "El precio no puede ser negativo"
			}
			return ""
		},
	}
}

func (s *Server) activityResource() resource[models.Activity] {
	return resource[models.Activity]{
		s:        s,
		items:    &s.activities,
		id:       func(a *models.Activity) *int64 { return &a.ID },
		validate: func(*models.Activity) string { return "" },
		readOnly: true,
	}
}
