package gormstore

import (
	"context"

	"gorm.io/gorm"

	"github.com/jcmexdev/ecommerce-api/internal/core/domain/apperror"
	"github.com/jcmexdev/ecommerce-api/internal/core/domain/entity"
	"github.com/jcmexdev/ecommerce-api/internal/core/ports"
)

var _ ports.RoleRepository = (*RoleRepository)(nil)

type RoleRepository struct {
	db *gorm.DB
}

func NewRoleRepository(db *gorm.DB) *RoleRepository {
	return &RoleRepository{db: db}
}

func (r *RoleRepository) List(ctx context.Context) ([]entity.Role, error) {
	var roles []entity.Role
	if err := r.db.WithContext(ctx).Find(&roles).Error; err != nil {
		return nil, apperror.Dependency("role_list", err)
	}
	return roles, nil
}

func (r *RoleRepository) Create(ctx context.Context, role *entity.Role) error {
	if err := r.db.WithContext(ctx).Create(role).Error; err != nil {
		return apperror.Dependency("role_create", err)
	}
	return nil
}

func (r *RoleRepository) FindByName(ctx context.Context, name string) (*entity.Role, error) {
	var role entity.Role
	if err := r.db.WithContext(ctx).First(&role, "name = ?", name).Error; err != nil {
		return nil, notFoundOr(err, "role_not_found", "role %q not found", name)
	}
	return &role, nil
}

var _ ports.UserRepository = (*UserRepository)(nil)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *entity.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return apperror.Dependency("user_create", err)
	}
	return nil
}

func (r *UserRepository) Update(ctx context.Context, user *entity.User) error {
	if err := r.db.WithContext(ctx).Save(user).Error; err != nil {
		return apperror.Dependency("user_update", err)
	}
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*entity.User, error) {
	var user entity.User
	err := r.db.WithContext(ctx).Preload("Role").First(&user, "id = ?", id).Error
	if err != nil {
		return nil, notFoundOr(err, "user_not_found", "user not found")
	}
	return &user, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var user entity.User
	err := r.db.WithContext(ctx).Preload("Role").First(&user, "email = ?", email).Error
	if err != nil {
		return nil, notFoundOr(err, "user_not_found", "user not found")
	}
	return &user, nil
}

func (r *UserRepository) List(ctx context.Context) ([]entity.User, error) {
	var users []entity.User
	if err := r.db.WithContext(ctx).Preload("Role").Find(&users).Error; err != nil {
		return nil, apperror.Dependency("user_list", err)
	}
	return users, nil
}

var _ ports.CustomerRepository = (*CustomerRepository)(nil)

type CustomerRepository struct {
	db *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

func (r *CustomerRepository) Create(ctx context.Context, customer *entity.Customer) error {
	if err := r.db.WithContext(ctx).Create(customer).Error; err != nil {
		return apperror.Dependency("customer_create", err)
	}
	return nil
}

func (r *CustomerRepository) Update(ctx context.Context, customer *entity.Customer) error {
	if err := r.db.WithContext(ctx).Save(customer).Error; err != nil {
		return apperror.Dependency("customer_update", err)
	}
	return nil
}

func (r *CustomerRepository) FindByID(ctx context.Context, id string) (*entity.Customer, error) {
	var customer entity.Customer
	err := r.db.WithContext(ctx).Preload("User").Preload("Orders").First(&customer, "id = ?", id).Error
	if err != nil {
		return nil, notFoundOr(err, "customer_not_found", "customer not found")
	}
	return &customer, nil
}

func (r *CustomerRepository) FindByUserID(ctx context.Context, userID string) (*entity.Customer, error) {
	var customer entity.Customer
	err := r.db.WithContext(ctx).First(&customer, "user_id = ?", userID).Error
	if err != nil {
		return nil, notFoundOr(err, "customer_profile_not_found", "customer profile not found for this user")
	}
	return &customer, nil
}

func (r *CustomerRepository) List(ctx context.Context) ([]entity.Customer, error) {
	var customers []entity.Customer
	if err := r.db.WithContext(ctx).Preload("User").Find(&customers).Error; err != nil {
		return nil, apperror.Dependency("customer_list", err)
	}
	return customers, nil
}

func (r *CustomerRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&entity.Customer{}, "id = ?", id)
	if res.Error != nil {
		return apperror.Dependency("customer_delete", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperror.NotFoundf("customer_not_found", "customer not found")
	}
	return nil
}
