package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/jcmexdev/ecommerce-api/internal/core/domain/apperror"
	"github.com/jcmexdev/ecommerce-api/internal/core/domain/entity"
	"github.com/jcmexdev/ecommerce-api/internal/core/domain/identity"
	"github.com/jcmexdev/ecommerce-api/internal/core/ports"
)

// CustomerService owns customer purchasing profiles.
type CustomerService struct {
	customers ports.CustomerRepository
}

func NewCustomerService(customers ports.CustomerRepository) *CustomerService {
	return &CustomerService{customers: customers}
}

// Create attaches a customer profile to the caller's user account. A user
// gets at most one profile.
func (s *CustomerService) Create(ctx context.Context, ident identity.Identity, phoneNumber, address string) (*entity.Customer, error) {
	if _, err := s.customers.FindByUserID(ctx, ident.UserID); err == nil {
		return nil, apperror.Validationf("customer_exists", "user already has a customer profile")
	} else if apperror.KindOf(err) != apperror.KindNotFound {
		return nil, err
	}

	customer := &entity.Customer{
		ID:          uuid.NewString(),
		UserID:      ident.UserID,
		PhoneNumber: phoneNumber,
		Address:     address,
	}
	if err := s.customers.Create(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// Get is gated: admins may read any profile, users only their own.
func (s *CustomerService) Get(ctx context.Context, ident identity.Identity, id string) (*entity.Customer, error) {
	customer, err := s.customers.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ident.IsAdmin() && customer.UserID != ident.UserID {
		return nil, apperror.Authorizationf("not_profile_owner", "not authorized to view this customer")
	}
	return customer, nil
}

func (s *CustomerService) List(ctx context.Context) ([]entity.Customer, error) {
	return s.customers.List(ctx)
}

func (s *CustomerService) Update(ctx context.Context, ident identity.Identity, id, phoneNumber, address string) (*entity.Customer, error) {
	customer, err := s.customers.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ident.IsAdmin() && customer.UserID != ident.UserID {
		return nil, apperror.Authorizationf("not_profile_owner", "not authorized to update this customer")
	}

	customer.PhoneNumber = phoneNumber
	customer.Address = address
	customer.User = nil
	customer.Orders = nil
	if err := s.customers.Update(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

func (s *CustomerService) Delete(ctx context.Context, id string) error {
	return s.customers.Delete(ctx, id)
}
