package user

import (
	"log/slog"

	userDatamodel "github.com/frahmantamala/permit-management/internal/core/datamodel/user"
)

// Repository defines the data access methods for user accounts.
type Repository interface {
	GetByID(id int64) (*userDatamodel.User, error)
	GetByEmail(email string) (*userDatamodel.User, error)
	HRUsers() ([]*userDatamodel.User, error)
}

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (s *Service) GetUser(id int64) (*User, error) {
	u, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Warn("user lookup failed", "id", id, "error", err)
		return nil, err
	}
	return FromDataModel(u), nil
}

// HRUsers returns the accounts with the HR or admin role; these are the
// permit reviewers and notification recipients.
func (s *Service) HRUsers() ([]*User, error) {
	users, err := s.repo.HRUsers()
	if err != nil {
		s.logger.Error("failed to list HR users", "error", err)
		return nil, err
	}
	return FromDataModelSlice(users), nil
}
