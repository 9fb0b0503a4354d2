package postgres

import (
	"github.com/frahmantamala/permit-management/internal"
	"github.com/frahmantamala/permit-management/internal/core/datamodel/user"
	userDomain "github.com/frahmantamala/permit-management/internal/user"
	"gorm.io/gorm"
)

// UserRepository implements the user.Repository interface using GORM
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) userDomain.Repository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByID(id int64) (*user.User, error) {
	var u user.User
	err := r.db.Where("id = ?", id).First(&u).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, internal.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByEmail(email string) (*user.User, error) {
	var u user.User
	err := r.db.Where("email = ?", email).First(&u).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, internal.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// HRUsers returns active accounts with the hr or admin role.
func (r *UserRepository) HRUsers() ([]*user.User, error) {
	var users []*user.User
	err := r.db.
		Where("role IN ? AND is_active = ?", []string{user.RoleHR, user.RoleAdmin}, true).
		Order("id ASC").
		Find(&users).Error
	return users, err
}
