package api

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/mercato-api/mercato/internal/domain"
	"github.com/mercato-api/mercato/internal/service/auth"
	"github.com/mercato-api/mercato/internal/store"
)

// fakeUserStore is an in-memory UserStore for handler tests.
type fakeUserStore struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]*domain.User

	createErr error
	getErr    error
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{nextID: 1, users: map[int64]*domain.User{}}
}

func (s *fakeUserStore) Create(ctx context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.createErr != nil {
		return s.createErr
	}
	for _, existing := range s.users {
		if existing.Email == user.Email {
			return store.ErrEmailExists
		}
		if user.GoogleID != "" && existing.GoogleID == user.GoogleID {
			return store.ErrGoogleIDExists
		}
	}

	user.ID = s.nextID
	s.nextID++
	copied := *user
	s.users[user.ID] = &copied
	return nil
}

func (s *fakeUserStore) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.getErr != nil {
		return nil, s.getErr
	}
	user, ok := s.users[id]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (s *fakeUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.getErr != nil {
		return nil, s.getErr
	}
	for _, user := range s.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, store.ErrUserNotFound
}

func (s *fakeUserStore) GetByGoogleID(ctx context.Context, googleID string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.getErr != nil {
		return nil, s.getErr
	}
	for _, user := range s.users {
		if user.GoogleID != "" && user.GoogleID == googleID {
			copied := *user
			return &copied, nil
		}
	}
	return nil, store.ErrUserNotFound
}

func (s *fakeUserStore) Update(ctx context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[user.ID]; !ok {
		return store.ErrUserNotFound
	}
	copied := *user
	s.users[user.ID] = &copied
	return nil
}

func (s *fakeUserStore) WithTx(tx *sql.Tx) store.UserStore { return s }

// mustAddUser seeds the store with a user, panicking on invalid input.
func (s *fakeUserStore) mustAddUser(user *domain.User) *domain.User {
	if err := s.Create(context.Background(), user); err != nil {
		panic(err)
	}
	return user
}

// fakeTokenService issues predictable tokens and validates only tokens it
// has issued.
type fakeTokenService struct {
	mu          sync.Mutex
	issued      map[string]int64
	generateErr error
	validateErr error
}

func newFakeTokenService() *fakeTokenService {
	return &fakeTokenService{issued: map[string]int64{}}
}

func (s *fakeTokenService) GenerateToken(ctx context.Context, userID int64) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.generateErr != nil {
		return "", s.generateErr
	}
	token := fmt.Sprintf("token-for-%d", userID)
	s.issued[token] = userID
	return token, nil
}

func (s *fakeTokenService) ValidateToken(ctx context.Context, tokenString string) (*auth.Claims, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.validateErr != nil {
		return nil, s.validateErr
	}
	userID, ok := s.issued[tokenString]
	if !ok {
		return nil, auth.ErrInvalidToken
	}
	return &auth.Claims{
		UserID:    userID,
		Subject:   fmt.Sprintf("%d", userID),
		IssuedAt:  time.Now(),
		ExpiresAt: time.Now().Add(time.Hour),
	}, nil
}

// fakeCategoryStore is an in-memory CategoryStore for handler tests.
type fakeCategoryStore struct {
	mu         sync.Mutex
	nextID     int64
	categories map[int64]*domain.Category

	listErr error
}

func newFakeCategoryStore() *fakeCategoryStore {
	return &fakeCategoryStore{nextID: 1, categories: map[int64]*domain.Category{}}
}

func (s *fakeCategoryStore) Create(ctx context.Context, category *domain.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.categories {
		if existing.Name == category.Name {
			return store.ErrCategoryNameExists
		}
	}

	category.ID = s.nextID
	s.nextID++
	copied := *category
	s.categories[category.ID] = &copied
	return nil
}

func (s *fakeCategoryStore) GetByID(ctx context.Context, id int64) (*domain.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	category, ok := s.categories[id]
	if !ok {
		return nil, store.ErrCategoryNotFound
	}
	copied := *category
	return &copied, nil
}

func (s *fakeCategoryStore) GetByName(ctx context.Context, name string) (*domain.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, category := range s.categories {
		if category.Name == name {
			copied := *category
			return &copied, nil
		}
	}
	return nil, store.ErrCategoryNotFound
}

func (s *fakeCategoryStore) List(ctx context.Context) ([]domain.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.listErr != nil {
		return nil, s.listErr
	}
	result := make([]domain.Category, 0, len(s.categories))
	for id := int64(1); id < s.nextID; id++ {
		if category, ok := s.categories[id]; ok {
			result = append(result, *category)
		}
	}
	return result, nil
}

func (s *fakeCategoryStore) Update(ctx context.Context, category *domain.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.categories[category.ID]; !ok {
		return store.ErrCategoryNotFound
	}
	for _, existing := range s.categories {
		if existing.ID != category.ID && existing.Name == category.Name {
			return store.ErrCategoryNameExists
		}
	}
	copied := *category
	s.categories[category.ID] = &copied
	return nil
}

func (s *fakeCategoryStore) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.categories[id]; !ok {
		return store.ErrCategoryNotFound
	}
	delete(s.categories, id)
	return nil
}

// fakeProductStore is an in-memory ProductStore for handler tests.
type fakeProductStore struct {
	mu       sync.Mutex
	nextID   int64
	products map[int64]*domain.Product
}

func newFakeProductStore() *fakeProductStore {
	return &fakeProductStore{nextID: 1, products: map[int64]*domain.Product{}}
}

func (s *fakeProductStore) Create(ctx context.Context, product *domain.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.products {
		if existing.Name == product.Name {
			return store.ErrProductNameExists
		}
	}

	product.ID = s.nextID
	s.nextID++
	copied := *product
	s.products[product.ID] = &copied
	return nil
}

func (s *fakeProductStore) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	product, ok := s.products[id]
	if !ok {
		return nil, store.ErrProductNotFound
	}
	copied := *product
	return &copied, nil
}

func (s *fakeProductStore) GetByName(ctx context.Context, name string) (*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, product := range s.products {
		if product.Name == name {
			copied := *product
			return &copied, nil
		}
	}
	return nil, store.ErrProductNotFound
}

func (s *fakeProductStore) List(ctx context.Context, filter store.ProductFilter) ([]domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]domain.Product, 0, len(s.products))
	for id := int64(1); id < s.nextID; id++ {
		product, ok := s.products[id]
		if !ok {
			continue
		}
		if filter.MinPrice != nil && product.Price < *filter.MinPrice {
			continue
		}
		if filter.MaxPrice != nil && product.Price > *filter.MaxPrice {
			continue
		}
		if len(filter.CategoryIDs) > 0 {
			matched := false
			for _, categoryID := range filter.CategoryIDs {
				if product.CategoryID == categoryID {
					matched = true
					break
				}
			}
			if !matched {
				continue
			}
		}
		result = append(result, *product)
	}
	return result, nil
}

func (s *fakeProductStore) ListByCategory(ctx context.Context, categoryID int64) ([]domain.Product, error) {
	return s.List(ctx, store.ProductFilter{CategoryIDs: []int64{categoryID}})
}

func (s *fakeProductStore) Update(ctx context.Context, product *domain.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[product.ID]; !ok {
		return store.ErrProductNotFound
	}
	for _, existing := range s.products {
		if existing.ID != product.ID && existing.Name == product.Name {
			return store.ErrProductNameExists
		}
	}
	copied := *product
	s.products[product.ID] = &copied
	return nil
}

func (s *fakeProductStore) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[id]; !ok {
		return store.ErrProductNotFound
	}
	delete(s.products, id)
	return nil
}
