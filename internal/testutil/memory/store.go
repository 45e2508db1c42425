// Package memory implementa los puertos de persistencia en memoria, con las mismas
// restricciones que el esquema PostgreSQL (unicidad, una solicitud PENDING por usuario,
// un restaurante por propietario). Es un doble de prueba: solo lo importan archivos _test.go.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jhoicas/Restaurantes-api/internal/application/review"
	"github.com/jhoicas/Restaurantes-api/internal/domain"
	"github.com/jhoicas/Restaurantes-api/internal/domain/entity"
	"github.com/jhoicas/Restaurantes-api/internal/domain/repository"
)

var (
	_ repository.UserRepository             = (*Store)(nil)
	_ repository.OwnerApplicationRepository = (*Applications)(nil)
	_ repository.RestaurantRepository       = (*Restaurants)(nil)
	_ review.ReviewTxRunner                 = (*Store)(nil)
)

type state struct {
	users       map[int64]entity.User
	apps        map[int64]entity.OwnerApplication
	restaurants map[int64]entity.Restaurant
	photos      map[int64]entity.RestaurantPhoto
	seq         int64
}

func (s state) clone() state {
	c := state{
		users:       make(map[int64]entity.User, len(s.users)),
		apps:        make(map[int64]entity.OwnerApplication, len(s.apps)),
		restaurants: make(map[int64]entity.Restaurant, len(s.restaurants)),
		photos:      make(map[int64]entity.RestaurantPhoto, len(s.photos)),
		seq:         s.seq,
	}
	for k, v := range s.users {
		c.users[k] = v
	}
	for k, v := range s.apps {
		c.apps[k] = v
	}
	for k, v := range s.restaurants {
		c.restaurants[k] = v
	}
	for k, v := range s.photos {
		c.photos[k] = v
	}
	return c
}

// Store base de datos en memoria. Implementa UserRepository directamente;
// Applications() y Restaurants() devuelven vistas sobre el mismo estado.
type Store struct {
	txMu sync.Mutex // serializa RunReview, equivalente al bloqueo de fila
	mu   sync.Mutex
	st   state
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{st: state{}.clone()}
}

// Applications vista del repositorio de solicitudes.
func (s *Store) Applications() *Applications { return &Applications{s: s} }

// Restaurants vista del repositorio de restaurantes.
func (s *Store) Restaurants() *Restaurants { return &Restaurants{s: s} }

// RunReview ejecuta fn con los tres repositorios; si fn falla restaura el estado previo.
func (s *Store) RunReview(ctx context.Context, fn func(
	appRepo repository.OwnerApplicationRepository,
	userRepo repository.UserRepository,
	restaurantRepo repository.RestaurantRepository,
) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.Lock()
	snapshot := s.st.clone()
	s.mu.Unlock()

	if err := fn(s.Applications(), s, s.Restaurants()); err != nil {
		s.mu.Lock()
		s.st = snapshot
		s.mu.Unlock()
		return err
	}
	return nil
}

func (s *Store) nextID() int64 {
	s.st.seq++
	return s.st.seq
}

// ── Usuarios ──────────────────────────────────────────────────────────────────

func (s *Store) Create(_ context.Context, u *entity.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.emailTaken(u.Email, 0) {
		return domain.ErrEmailAlreadyExists
	}
	u.ID = s.nextID()
	s.st.users[u.ID] = *u
	return nil
}

func (s *Store) GetByID(_ context.Context, id int64) (*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.st.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (s *Store) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.st.users {
		if strings.EqualFold(u.Email, email) {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func (s *Store) UpdateProfile(_ context.Context, id int64, name, email, phone string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.st.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	if s.emailTaken(email, id) {
		return domain.ErrEmailAlreadyExists
	}
	u.Name, u.Email, u.Phone, u.UpdatedAt = name, email, phone, time.Now().UTC()
	s.st.users[id] = u
	return nil
}

func (s *Store) UpdateAccess(_ context.Context, id int64, role *string, isActive *bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.st.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	if role != nil {
		u.Role = *role
	}
	if isActive != nil {
		u.IsActive = *isActive
	}
	u.UpdatedAt = time.Now().UTC()
	s.st.users[id] = u
	return nil
}

func (s *Store) UpdateRole(_ context.Context, id int64, role string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.st.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Role = role
	s.st.users[id] = u
	return nil
}

func (s *Store) List(_ context.Context, search string) ([]*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	search = strings.ToLower(search)
	out := []*entity.User{}
	for _, u := range s.st.users {
		if search != "" && !strings.Contains(strings.ToLower(u.Name), search) &&
			!strings.Contains(strings.ToLower(u.Email), search) {
			continue
		}
		u := u
		out = append(out, &u)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (s *Store) emailTaken(email string, exceptID int64) bool {
	for id, u := range s.st.users {
		if id != exceptID && strings.EqualFold(u.Email, email) {
			return true
		}
	}
	return false
}

// ── Solicitudes ───────────────────────────────────────────────────────────────

// Applications implementa OwnerApplicationRepository sobre el Store.
type Applications struct{ s *Store }

func (r *Applications) Create(_ context.Context, app *entity.OwnerApplication) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, a := range r.s.st.apps {
		if a.UserID == app.UserID && a.Status == entity.ApplicationPending {
			return domain.ErrDuplicate
		}
	}
	app.ID = r.s.nextID()
	r.s.st.apps[app.ID] = *app
	return nil
}

func (r *Applications) GetByID(_ context.Context, id int64) (*entity.ApplicationWithUsers, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.st.apps[id]
	if !ok {
		return nil, nil
	}
	return r.withUsers(a), nil
}

func (r *Applications) GetForUpdate(_ context.Context, id int64) (*entity.OwnerApplication, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.st.apps[id]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (r *Applications) FindPendingByUser(_ context.Context, userID int64) (*entity.ApplicationWithUsers, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, a := range r.s.st.apps {
		if a.UserID == userID && a.Status == entity.ApplicationPending {
			return r.withUsers(a), nil
		}
	}
	return nil, nil
}

func (r *Applications) ListByUser(_ context.Context, userID int64) ([]*entity.ApplicationWithUsers, error) {
	return r.list(func(a entity.OwnerApplication) bool { return a.UserID == userID }), nil
}

func (r *Applications) ListAll(_ context.Context) ([]*entity.ApplicationWithUsers, error) {
	return r.list(func(entity.OwnerApplication) bool { return true }), nil
}

func (r *Applications) UpdateReview(_ context.Context, app *entity.OwnerApplication) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.st.apps[app.ID]
	if !ok {
		return domain.ErrNotFound
	}
	a.Status, a.ReviewNotes, a.ReviewedBy, a.ReviewedAt = app.Status, app.ReviewNotes, app.ReviewedBy, app.ReviewedAt
	r.s.st.apps[app.ID] = a
	return nil
}

func (r *Applications) list(keep func(entity.OwnerApplication) bool) []*entity.ApplicationWithUsers {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []*entity.ApplicationWithUsers{}
	for _, a := range r.s.st.apps {
		if keep(a) {
			out = append(out, r.withUsers(a))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].SubmittedAt.Equal(out[j].SubmittedAt) {
			return out[i].SubmittedAt.After(out[j].SubmittedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out
}

func (r *Applications) withUsers(a entity.OwnerApplication) *entity.ApplicationWithUsers {
	out := &entity.ApplicationWithUsers{OwnerApplication: a}
	if u, ok := r.s.st.users[a.UserID]; ok {
		out.UserEmail, out.UserName = u.Email, u.Name
	}
	if a.ReviewedBy != nil {
		if u, ok := r.s.st.users[*a.ReviewedBy]; ok {
			out.ReviewedByEmail, out.ReviewedByName = u.Email, u.Name
		}
	}
	return out
}

// ── Restaurantes ──────────────────────────────────────────────────────────────

// Restaurants implementa RestaurantRepository sobre el Store.
type Restaurants struct{ s *Store }

func (r *Restaurants) Create(_ context.Context, rest *entity.Restaurant) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, x := range r.s.st.restaurants {
		if x.OwnerID == rest.OwnerID {
			return domain.ErrDuplicate
		}
	}
	rest.ID = r.s.nextID()
	stored := *rest
	stored.Photos = nil
	r.s.st.restaurants[rest.ID] = stored
	return nil
}

func (r *Restaurants) GetByID(_ context.Context, id int64) (*entity.Restaurant, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	x, ok := r.s.st.restaurants[id]
	if !ok {
		return nil, nil
	}
	return r.withPhotos(x), nil
}

func (r *Restaurants) GetByOwner(_ context.Context, ownerID int64) (*entity.Restaurant, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, x := range r.s.st.restaurants {
		if x.OwnerID == ownerID {
			return r.withPhotos(x), nil
		}
	}
	return nil, nil
}

func (r *Restaurants) ListActive(_ context.Context, f repository.RestaurantFilter) ([]*entity.Restaurant, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	search, city := strings.ToLower(f.Search), strings.ToLower(f.City)
	out := []*entity.Restaurant{}
	for _, x := range r.s.st.restaurants {
		if x.Status != entity.RestaurantActive {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(x.Name), search) &&
			!strings.Contains(strings.ToLower(x.Address), search) &&
			!strings.Contains(strings.ToLower(x.City), search) {
			continue
		}
		if city != "" && !strings.Contains(strings.ToLower(x.City), city) {
			continue
		}
		out = append(out, r.withPhotos(x))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *Restaurants) Update(_ context.Context, rest *entity.Restaurant) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	x, ok := r.s.st.restaurants[rest.ID]
	if !ok {
		return domain.ErrNotFound
	}
	x.Name, x.Address, x.City, x.GoogleMapsLink = rest.Name, rest.Address, rest.City, rest.GoogleMapsLink
	x.Latitude, x.Longitude, x.OperatingHours, x.Phone = rest.Latitude, rest.Longitude, rest.OperatingHours, rest.Phone
	r.s.st.restaurants[rest.ID] = x
	return nil
}

// SetStatus cambia el estado de un restaurante (la API no expone esta operación).
func (r *Restaurants) SetStatus(id int64, status string) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if x, ok := r.s.st.restaurants[id]; ok {
		x.Status = status
		r.s.st.restaurants[id] = x
	}
}

func (r *Restaurants) AddPhoto(_ context.Context, p *entity.RestaurantPhoto) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.st.restaurants[p.RestaurantID]; !ok {
		return domain.ErrNotFound
	}
	p.ID = r.s.nextID()
	r.s.st.photos[p.ID] = *p
	return nil
}

func (r *Restaurants) DeletePhotoOwnedBy(_ context.Context, photoID, ownerID int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.st.photos[photoID]
	if !ok {
		return false, nil
	}
	if x, ok := r.s.st.restaurants[p.RestaurantID]; !ok || x.OwnerID != ownerID {
		return false, nil
	}
	delete(r.s.st.photos, photoID)
	return true, nil
}

func (r *Restaurants) withPhotos(x entity.Restaurant) *entity.Restaurant {
	out := x
	out.Photos = []entity.RestaurantPhoto{}
	for _, p := range r.s.st.photos {
		if p.RestaurantID == x.ID {
			out.Photos = append(out.Photos, p)
		}
	}
	sort.Slice(out.Photos, func(i, j int) bool {
		if out.Photos[i].Order != out.Photos[j].Order {
			return out.Photos[i].Order < out.Photos[j].Order
		}
		return out.Photos[i].ID < out.Photos[j].ID
	})
	return &out
}
