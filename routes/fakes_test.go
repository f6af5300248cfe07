package routes

import (
	"context"
	"fmt"
	"sync"

	"github.com/pulok-thedeveloper/music-spot-server/models"
	"github.com/pulok-thedeveloper/music-spot-server/store"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory stand-ins for the Mongo stores. They enforce the same unique constraints as the indexes.

func parseID(id string) (primitive.ObjectID, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return objID, fmt.Errorf("%w: %q", store.ErrInvalidID, id)
	}
	return objID, nil
}

type memUsers struct {
	mu      sync.Mutex
	byID    map[primitive.ObjectID]*models.User
	inserts int
}

func newMemUsers(seed ...models.User) *memUsers {
	m := &memUsers{byID: map[primitive.ObjectID]*models.User{}}
	for i := range seed {
		u := seed[i]
		if u.ID.IsZero() {
			u.ID = primitive.NewObjectID()
		}
		m.byID[u.ID] = &u
	}
	return m
}

func (m *memUsers) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.byID {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, store.ErrNotFound
}

func (m *memUsers) FindByID(ctx context.Context, id string) (*models.User, error) {
	objID, err := parseID(id)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byID[objID]
	if !ok {
		return nil, store.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (m *memUsers) List(ctx context.Context, role string) ([]models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.User{}
	for _, u := range m.byID {
		if role == "" || u.Role == role {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (m *memUsers) Create(ctx context.Context, user *models.User) (*models.InsertResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.byID {
		if u.Email == user.Email {
			return nil, store.ErrDuplicate
		}
	}
	copied := *user
	copied.ID = primitive.NewObjectID()
	m.byID[copied.ID] = &copied
	m.inserts++
	return &models.InsertResult{Acknowledged: true, InsertedID: copied.ID}, nil
}

func (m *memUsers) set(id string, apply func(u *models.User)) (*models.UpdateResult, error) {
	objID, err := parseID(id)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byID[objID]
	if !ok {
		u = &models.User{ID: objID}
		apply(u)
		m.byID[objID] = u
		return &models.UpdateResult{Acknowledged: true, UpsertedCount: 1, UpsertedID: objID}, nil
	}
	apply(u)
	return &models.UpdateResult{Acknowledged: true, MatchedCount: 1, ModifiedCount: 1}, nil
}

func (m *memUsers) SetRole(ctx context.Context, id, role string) (*models.UpdateResult, error) {
	return m.set(id, func(u *models.User) { u.Role = role })
}

func (m *memUsers) SetVerifyStatus(ctx context.Context, id, status string) (*models.UpdateResult, error) {
	return m.set(id, func(u *models.User) { u.VerifyStatus = status })
}

func (m *memUsers) Delete(ctx context.Context, id string) (*models.DeleteResult, error) {
	objID, err := parseID(id)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[objID]; !ok {
		return &models.DeleteResult{Acknowledged: true}, nil
	}
	delete(m.byID, objID)
	return &models.DeleteResult{Acknowledged: true, DeletedCount: 1}, nil
}

func (m *memUsers) idOf(email string) string {
	u, err := m.FindByEmail(context.Background(), email)
	if err != nil {
		return ""
	}
	return u.ID.Hex()
}

type memProducts struct {
	mu       sync.Mutex
	products []models.Product
}

func (m *memProducts) List(ctx context.Context, filter models.ProductFilter) ([]models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Product{}
	for _, p := range m.products {
		if filter.Category != "" && p.Category != filter.Category {
			continue
		}
		if filter.Email != "" && p.Email != filter.Email {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (m *memProducts) ListAdvertised(ctx context.Context) ([]models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Product{}
	for _, p := range m.products {
		if p.IsAdvertise && p.Status != models.ProductUnavailable {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memProducts) Create(ctx context.Context, product *models.Product) (*models.InsertResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *product
	copied.ID = primitive.NewObjectID()
	m.products = append(m.products, copied)
	return &models.InsertResult{Acknowledged: true, InsertedID: copied.ID}, nil
}

func (m *memProducts) Advertise(ctx context.Context, id string) (*models.UpdateResult, error) {
	objID, err := parseID(id)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.products {
		if m.products[i].ID == objID {
			m.products[i].IsAdvertise = true
			return &models.UpdateResult{Acknowledged: true, MatchedCount: 1, ModifiedCount: 1}, nil
		}
	}
	m.products = append(m.products, models.Product{ID: objID, IsAdvertise: true})
	return &models.UpdateResult{Acknowledged: true, UpsertedCount: 1, UpsertedID: objID}, nil
}

func (m *memProducts) Delete(ctx context.Context, id string) (*models.DeleteResult, error) {
	objID, err := parseID(id)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.products {
		if m.products[i].ID == objID {
			m.products = append(m.products[:i], m.products[i+1:]...)
			return &models.DeleteResult{Acknowledged: true, DeletedCount: 1}, nil
		}
	}
	return &models.DeleteResult{Acknowledged: true}, nil
}

type memCategories struct {
	categories []models.Category
	err        error
}

func (m *memCategories) List(ctx context.Context) ([]models.Category, error) {
	return m.categories, m.err
}

type memBookings struct {
	mu       sync.Mutex
	bookings []models.Booking
}

func (m *memBookings) ListByEmail(ctx context.Context, email string) ([]models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Booking{}
	for _, b := range m.bookings {
		if b.Email == email {
			out = append(out, b)
		}
	}
	return out, nil
}

func (m *memBookings) Create(ctx context.Context, booking *models.Booking) (*models.InsertResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range m.bookings {
		if b.ProductName == booking.ProductName && b.Email == booking.Email {
			return nil, store.ErrDuplicate
		}
	}
	copied := *booking
	copied.ID = primitive.NewObjectID()
	m.bookings = append(m.bookings, copied)
	return &models.InsertResult{Acknowledged: true, InsertedID: copied.ID}, nil
}

func (m *memBookings) Delete(ctx context.Context, id string) (*models.DeleteResult, error) {
	objID, err := parseID(id)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.bookings {
		if m.bookings[i].ID == objID {
			m.bookings = append(m.bookings[:i], m.bookings[i+1:]...)
			return &models.DeleteResult{Acknowledged: true, DeletedCount: 1}, nil
		}
	}
	return &models.DeleteResult{Acknowledged: true}, nil
}

func (m *memBookings) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.bookings)
}

type recordingNotifier struct {
	mu       sync.Mutex
	bookings []models.Booking
	verified []models.User
}

func (n *recordingNotifier) SendBookingConfirmation(booking models.Booking) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.bookings = append(n.bookings, booking)
	return nil
}

func (n *recordingNotifier) SendSellerVerified(user models.User) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.verified = append(n.verified, user)
	return nil
}

func (n *recordingNotifier) counts() (int, int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.bookings), len(n.verified)
}
