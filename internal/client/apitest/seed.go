package apitest

import (
	"github.com/dmitrijs2005/itcontroller/internal/client/models"
)

// SeedTask stores t as if created earlier and returns its id. No activity
// is recorded.
func (s *Server) SeedTask(t models.TaskWire) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	t.ID = s.nextID
	if t.FechaCreacion == nil {
		t.FechaCreacion = &models.Timestamp{Time: s.now()}
	}
	s.tasks = append(s.tasks, t)
	return t.ID
}

func (s *Server) SeedNote(n models.NoteWire) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	n.ID = s.nextID
	s.notes = append(s.notes, n)
	return n.ID
}

func (s *Server) SeedCredential(c models.CredentialWire) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	c.ID = s.nextID
	s.creds = append(s.creds, c)
	return c.ID
}

func (s *Server) SeedProduct(p models.Product) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	p.ID = s.nextID
	s.products = append(s.products, p)
	return p.ID
}

func (s *Server) SeedActivity(a models.Activity) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	a.ID = s.nextID
	if a.CreatedAtStamp.IsZero() {
		a.CreatedAtStamp = models.Timestamp{Time: s.now()}
	}
	s.activities = append(s.activities, a)
	return a.ID
}

func (s *Server) Tasks() []models.TaskWire {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.TaskWire(nil), s.tasks...)
}

func (s *Server) Task(id int64) (models.TaskWire, bool) {
	for _, t := range s.Tasks() {
		if t.ID == id {
			return t, true
		}
	}
	return models.TaskWire{}, false
}

func (s *Server) Notes() []models.NoteWire {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.NoteWire(nil), s.notes...)
}

func (s *Server) Credentials() []models.CredentialWire {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.CredentialWire(nil), s.creds...)
}

func (s *Server) Products() []models.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Product(nil), s.products...)
}

func (s *Server) Activities() []models.Activity {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Activity(nil), s.activities...)
}
