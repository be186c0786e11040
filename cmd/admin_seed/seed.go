package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	apperrors "paywallet/internal/errors"
	"paywallet/internal/models"
	"paywallet/internal/services/user"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gopkg.in/yaml.v2"
)

type SeedUser struct {
	Name     string      `yaml:"name"`
	Email    string      `yaml:"email"`
	Password string      `yaml:"password"`
	Role     models.Role `yaml:"role"`
	// Approve applies to agents. CommissionRate is optional and falls back
	// to the configured default.
	Approve        bool   `yaml:"approve"`
	CommissionRate string `yaml:"commissionRate"`
}

type SeedFile struct {
	Users []SeedUser `yaml:"users"`
}

func LoadSeedFile(path string) (*SeedFile, error) {
	if !filepath.IsAbs(path) {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		path = filepath.Join(wd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read %s: %w", path, err)
	}

	var seed SeedFile
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("unable to parse %s: %w", path, err)
	}

	for i, u := range seed.Users {
		if u.Email == "" || u.Password == "" {
			return nil, fmt.Errorf("user at index %d missing email or password", i)
		}
		if u.Role != "" && !u.Role.Valid() {
			return nil, fmt.Errorf("user at index %d has unknown role %q", i, u.Role)
		}
		if u.CommissionRate != "" {
			if _, err := decimal.NewFromString(u.CommissionRate); err != nil {
				return nil, fmt.Errorf("user at index %d has invalid commissionRate: %w", i, err)
			}
		}
	}
	return &seed, nil
}

// apply registers every seed user. Existing emails are skipped so the seed
// can be rerun. It returns the number of users created.
func apply(ctx context.Context, users user.Service, seed *SeedFile) (int, error) {
	created := 0
	for _, su := range seed.Users {
		u, err := users.Register(ctx, user.RegisterInput{
			Name:     su.Name,
			Email:    su.Email,
			Password: su.Password,
			Role:     su.Role,
		})
		if errors.Is(err, apperrors.ErrDuplicateUser) {
			zap.L().Info("seed user already exists", zap.String("email", su.Email))
			continue
		}
		if err != nil {
			return created, fmt.Errorf("failed to seed %s: %w", su.Email, err)
		}
		created++

		if u.Role != models.RoleAgent || !su.Approve {
			continue
		}
		var rate *decimal.Decimal
		if su.CommissionRate != "" {
			r := decimal.RequireFromString(su.CommissionRate)
			rate = &r
		}
		if _, err := users.ApproveAgent(ctx, u.ID, rate); err != nil {
			return created, fmt.Errorf("failed to approve agent %s: %w", su.Email, err)
		}
	}
	return created, nil
}
