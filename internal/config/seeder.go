package config

import (
	"context"
	"errors"

	"edugate/internal/adapters/persistence/models"
	"edugate/internal/adapters/persistence/repositories"
	"edugate/internal/core/domain"
	"edugate/internal/pkg/password"

	"github.com/sirupsen/logrus"
)

// Seeder handles database seeding
type Seeder struct {
	userRepo repositories.UserRepository
	hasher   *password.Hasher
	seed     SeedConfig
	log      *logrus.Logger
}

// NewSeeder creates a new seeder instance
func NewSeeder(userRepo repositories.UserRepository, hasher *password.Hasher, seed SeedConfig, log *logrus.Logger) *Seeder {
	return &Seeder{
		userRepo: userRepo,
		hasher:   hasher,
		seed:     seed,
		log:      log,
	}
}

// Run executes all seeders. Failures are logged and skipped.
func (s *Seeder) Run(ctx context.Context) {
	s.log.Info("running database seeders")

	if err := s.seedDistributor(ctx); err != nil {
		s.log.WithError(err).Warn("distributor seeder skipped")
	}

	s.log.Info("database seeding completed")
}

// seedDistributor creates the first reviewer account.
// Development only; production reviewers sign up through the API.
func (s *Seeder) seedDistributor(ctx context.Context) error {
	exists, err := s.userRepo.ExistsByRole(ctx, string(domain.RoleDistributor))
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	if s.seed.DistributorPassword == "" {
		return errors.New("SEED_DISTRIBUTOR_PASSWORD is not set")
	}

	taken, err := s.userRepo.ExistsByEmail(ctx, s.seed.DistributorEmail)
	if err != nil {
		return err
	}
	if taken {
		return errors.New("seed distributor email already registered")
	}

	hashed, err := s.hasher.Hash(s.seed.DistributorPassword)
	if err != nil {
		return err
	}

	distributor := &models.User{
		FullName:     s.seed.DistributorName,
		Email:        s.seed.DistributorEmail,
		PasswordHash: hashed,
		Role:         string(domain.RoleDistributor),
	}
	if err := s.userRepo.Create(ctx, distributor); err != nil {
		return err
	}

	s.log.WithField("email", distributor.Email).Info("distributor account seeded")
	return nil
}
