package service

import (
	"context"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/sakif/dogmatch/internal/apperror"
	"github.com/sakif/dogmatch/internal/model"
	"github.com/sakif/dogmatch/internal/repository"
)

// Hand-written in-memory fakes for the repository interfaces and the
// catalog. Each stores copies so tests can't interfere through shared
// pointers.

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type mockShelterRepo struct {
	shelters map[string]*model.Shelter // by username
	nextID   int64
}

func newMockShelterRepo() *mockShelterRepo {
	return &mockShelterRepo{shelters: make(map[string]*model.Shelter)}
}

func (m *mockShelterRepo) Create(_ context.Context, s *model.Shelter) error {
	if _, ok := m.shelters[s.Username]; ok {
		return apperror.Duplicate("shelter username", s.Username)
	}
	m.nextID++
	s.ID = model.LocalID(m.nextID)
	stored := *s
	m.shelters[s.Username] = &stored
	return nil
}

func (m *mockShelterRepo) FindAll(_ context.Context, f repository.ShelterFilter) ([]model.Shelter, error) {
	result := []model.Shelter{}
	for _, s := range m.shelters {
		if f.City != "" && !strings.Contains(strings.ToLower(s.City), strings.ToLower(f.City)) {
			continue
		}
		copied := *s
		copied.PasswordHash = ""
		result = append(result, copied)
	}
	return result, nil
}

func (m *mockShelterRepo) Get(_ context.Context, id int64) (*model.Shelter, error) {
	for _, s := range m.shelters {
		if s.ID == model.LocalID(id) {
			copied := *s
			copied.PasswordHash = ""
			return &copied, nil
		}
	}
	return nil, apperror.NotFound("shelter", strconv.FormatInt(id, 10))
}

func (m *mockShelterRepo) GetByUsername(_ context.Context, username string) (*model.Shelter, error) {
	s, ok := m.shelters[username]
	if !ok {
		return nil, apperror.NotFound("shelter", username)
	}
	copied := *s
	copied.PasswordHash = ""
	return &copied, nil
}

func (m *mockShelterRepo) GetCredentials(_ context.Context, username string) (*model.Shelter, error) {
	s, ok := m.shelters[username]
	if !ok {
		return nil, apperror.NotFound("shelter", username)
	}
	copied := *s
	return &copied, nil
}

func (m *mockShelterRepo) Update(_ context.Context, id int64, patch *repository.Patch) (*model.Shelter, error) {
	if patch == nil || patch.Len() == 0 {
		return nil, apperror.InvalidUpdate()
	}
	for _, s := range m.shelters {
		if s.ID == model.LocalID(id) {
			for _, f := range patch.Fields() {
				if f.Name == "name" {
					s.Name = f.Value.(string)
				}
			}
			copied := *s
			copied.PasswordHash = ""
			return &copied, nil
		}
	}
	return nil, apperror.NotFound("shelter", strconv.FormatInt(id, 10))
}

func (m *mockShelterRepo) UpdatePassword(_ context.Context, id int64, passwordHash string) error {
	for _, s := range m.shelters {
		if s.ID == model.LocalID(id) {
			s.PasswordHash = passwordHash
			return nil
		}
	}
	return apperror.NotFound("shelter", strconv.FormatInt(id, 10))
}

func (m *mockShelterRepo) Delete(_ context.Context, id int64) error {
	for username, s := range m.shelters {
		if s.ID == model.LocalID(id) {
			delete(m.shelters, username)
			return nil
		}
	}
	return apperror.NotFound("shelter", strconv.FormatInt(id, 10))
}

type mockAdopterRepo struct {
	adopters map[string]*model.Adopter
	nextID   int64
}

func newMockAdopterRepo() *mockAdopterRepo {
	return &mockAdopterRepo{adopters: make(map[string]*model.Adopter)}
}

func (m *mockAdopterRepo) Create(_ context.Context, a *model.Adopter) error {
	if _, ok := m.adopters[a.Username]; ok {
		return apperror.Duplicate("adopter username", a.Username)
	}
	m.nextID++
	a.ID = m.nextID
	stored := *a
	m.adopters[a.Username] = &stored
	return nil
}

func (m *mockAdopterRepo) FindAll(_ context.Context, _ repository.AdopterFilter) ([]model.Adopter, error) {
	result := []model.Adopter{}
	for _, a := range m.adopters {
		copied := *a
		copied.PasswordHash = ""
		result = append(result, copied)
	}
	return result, nil
}

func (m *mockAdopterRepo) Get(_ context.Context, username string) (*model.Adopter, error) {
	a, ok := m.adopters[username]
	if !ok {
		return nil, apperror.NotFound("adopter", username)
	}
	copied := *a
	copied.PasswordHash = ""
	return &copied, nil
}

func (m *mockAdopterRepo) GetCredentials(_ context.Context, username string) (*model.Adopter, error) {
	a, ok := m.adopters[username]
	if !ok {
		return nil, apperror.NotFound("adopter", username)
	}
	copied := *a
	return &copied, nil
}

func (m *mockAdopterRepo) Update(_ context.Context, username string, patch *repository.Patch) (*model.Adopter, error) {
	if patch == nil || patch.Len() == 0 {
		return nil, apperror.InvalidUpdate()
	}
	a, ok := m.adopters[username]
	if !ok {
		return nil, apperror.NotFound("adopter", username)
	}
	copied := *a
	copied.PasswordHash = ""
	return &copied, nil
}

func (m *mockAdopterRepo) UpdatePassword(_ context.Context, id int64, passwordHash string) error {
	for _, a := range m.adopters {
		if a.ID == id {
			a.PasswordHash = passwordHash
			return nil
		}
	}
	return apperror.NotFound("adopter", strconv.FormatInt(id, 10))
}

func (m *mockAdopterRepo) Delete(_ context.Context, username string) error {
	if _, ok := m.adopters[username]; !ok {
		return apperror.NotFound("adopter", username)
	}
	delete(m.adopters, username)
	return nil
}

type mockDogRepo struct {
	dogs   map[int64]*model.Dog
	nextID int64
}

func newMockDogRepo() *mockDogRepo {
	return &mockDogRepo{dogs: make(map[int64]*model.Dog)}
}

func (m *mockDogRepo) Create(_ context.Context, d *model.Dog) error {
	m.nextID++
	d.ID = model.LocalID(m.nextID)
	stored := *d
	m.dogs[m.nextID] = &stored
	return nil
}

func (m *mockDogRepo) FindAll(_ context.Context, f repository.DogFilter) ([]model.Dog, error) {
	result := []model.Dog{}
	for _, d := range m.dogs {
		if f.Name != "" && !strings.Contains(strings.ToLower(d.Name), strings.ToLower(f.Name)) {
			continue
		}
		result = append(result, *d)
	}
	return result, nil
}

func (m *mockDogRepo) Get(_ context.Context, id int64) (*model.Dog, error) {
	d, ok := m.dogs[id]
	if !ok {
		return nil, apperror.NotFound("dog", strconv.FormatInt(id, 10))
	}
	copied := *d
	return &copied, nil
}

func (m *mockDogRepo) Update(_ context.Context, id int64, patch *repository.Patch) (*model.Dog, error) {
	if patch == nil || patch.Len() == 0 {
		return nil, apperror.InvalidUpdate()
	}
	d, ok := m.dogs[id]
	if !ok {
		return nil, apperror.NotFound("dog", strconv.FormatInt(id, 10))
	}
	for _, f := range patch.Fields() {
		if f.Name == "name" {
			d.Name = f.Value.(string)
		}
	}
	copied := *d
	return &copied, nil
}

func (m *mockDogRepo) Delete(_ context.Context, id int64) error {
	if _, ok := m.dogs[id]; !ok {
		return apperror.NotFound("dog", strconv.FormatInt(id, 10))
	}
	delete(m.dogs, id)
	return nil
}

type favKey struct {
	adopterID int64
	dogID     string
}

type mockFavoriteRepo struct {
	entries map[favKey]bool
	order   []favKey
}

func newMockFavoriteRepo() *mockFavoriteRepo {
	return &mockFavoriteRepo{entries: make(map[favKey]bool)}
}

func (m *mockFavoriteRepo) Add(_ context.Context, adopterID int64, dogID string) (*model.FavoriteEntry, error) {
	key := favKey{adopterID, dogID}
	if m.entries[key] {
		return nil, apperror.Duplicate("favorite", dogID)
	}
	m.entries[key] = true
	m.order = append(m.order, key)
	return &model.FavoriteEntry{AdopterID: adopterID, DogID: dogID}, nil
}

func (m *mockFavoriteRepo) Remove(_ context.Context, adopterID int64, dogID string) error {
	key := favKey{adopterID, dogID}
	if !m.entries[key] {
		return apperror.NotFound("favorite", dogID)
	}
	delete(m.entries, key)
	return nil
}

func (m *mockFavoriteRepo) ListDogIDs(_ context.Context, adopterID int64) ([]string, error) {
	ids := []string{}
	for _, key := range m.order {
		if key.adopterID == adopterID && m.entries[key] {
			ids = append(ids, key.dogID)
		}
	}
	return ids, nil
}

type mockBreedRepo struct {
	breeds map[int64]string
}

func newMockBreedRepo() *mockBreedRepo {
	return &mockBreedRepo{breeds: make(map[int64]string)}
}

func (m *mockBreedRepo) Resolve(_ context.Context, id int64) (string, error) {
	name, ok := m.breeds[id]
	if !ok {
		return "", apperror.NotFound("breed", strconv.FormatInt(id, 10))
	}
	return name, nil
}

func (m *mockBreedRepo) Upsert(_ context.Context, id int64, name string) error {
	m.breeds[id] = name
	return nil
}

func (m *mockBreedRepo) List(_ context.Context) (map[int64]string, error) {
	out := make(map[int64]string, len(m.breeds))
	for id, name := range m.breeds {
		out[id] = name
	}
	return out, nil
}

// mockCatalog serves canned remote records, keyed by remote id.
type mockCatalog struct {
	dogs     []model.Dog
	shelters []model.Shelter
	dogByID  map[string]*model.Dog
	orgByID  map[string]*model.Shelter
	breeds   []string
	err      error
}

func newMockCatalog() *mockCatalog {
	return &mockCatalog{
		dogByID: make(map[string]*model.Dog),
		orgByID: make(map[string]*model.Shelter),
	}
}

func (m *mockCatalog) ListDogs(_ context.Context, _ repository.DogFilter) ([]model.Dog, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.dogs, nil
}

func (m *mockCatalog) GetDog(_ context.Context, id string) (*model.Dog, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.dogByID[id], nil
}

func (m *mockCatalog) ListShelters(_ context.Context, _ repository.ShelterFilter) ([]model.Shelter, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.shelters, nil
}

func (m *mockCatalog) GetShelter(_ context.Context, id string) (*model.Shelter, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.orgByID[id], nil
}

func (m *mockCatalog) ListBreeds(_ context.Context) ([]string, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.breeds, nil
}
