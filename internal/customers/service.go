package customers

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Service wraps customer business rules.
type Service struct {
	repo     Repository
	validate *validator.Validate
}

// NewService constructs a new Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo, validate: validator.New()}
}

// Get fetches one customer.
func (s *Service) Get(ctx context.Context, id int64) (*Customer, error) {
	return s.repo.Get(ctx, id)
}

// List returns customers matching the filters.
func (s *Service) List(ctx context.Context, req ListCustomersRequest) ([]Customer, int, error) {
	return s.repo.List(ctx, req)
}

// Create validates and stores a new customer.
func (s *Service) Create(ctx context.Context, req CreateCustomerRequest) (*Customer, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Mobile = strings.TrimSpace(req.Mobile)
	if err := s.validate.Struct(req); err != nil {
		return nil, err
	}

	id, err := s.repo.Create(ctx, Customer{
		Name:    req.Name,
		Mobile:  req.Mobile,
		Email:   req.Email,
		Address: req.Address,
		GSTIN:   strings.ToUpper(req.GSTIN),
	})
	if err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, id)
}
