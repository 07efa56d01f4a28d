package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"shareit/internal/api"
	"shareit/internal/apperrors"
	"shareit/internal/models"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v2"
)

type seedFile struct {
	Users []seedUser `yaml:"users"`
}

type seedUser struct {
	models.NewUser `yaml:",inline"`
	Items          []models.NewItem `yaml:"items"`
	Requests       []string         `yaml:"requests"`
}

func seedPath() string {
	if p := os.Getenv("SEED_PATH"); p != "" {
		return p
	}
	return "configs/seed.yaml"
}

// loadSeed creates the users, items and requests listed in path. A missing file is not an error,
// and users whose email already exists are skipped together with their items.
func loadSeed(ctx context.Context, path string, services api.Services, logger *zerolog.Logger) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Debug().Str("seed_path", path).Msg("no seed file")
		return nil
	}
	if err != nil {
		return fmt.Errorf("read seed: %w", err)
	}

	var seed seedFile
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return fmt.Errorf("parse seed %s: %w", path, err)
	}

	created := 0
	for _, su := range seed.Users {
		user, err := services.Users.Create(ctx, su.NewUser)
		if apperrors.IsConflict(err) {
			logger.Debug().Str("email", su.Email).Msg("seed user exists, skipping")
			continue
		}
		if err != nil {
			return fmt.Errorf("seed user %s: %w", su.Email, err)
		}
		created++

		for _, item := range su.Items {
			if _, err := services.Items.Create(ctx, user.ID, item); err != nil {
				return fmt.Errorf("seed item %q: %w", item.Name, err)
			}
		}
		for _, description := range su.Requests {
			if _, err := services.Requests.Create(ctx, user.ID, description); err != nil {
				return fmt.Errorf("seed request for %s: %w", su.Email, err)
			}
		}
	}

	logger.Info().Int("users", created).Str("seed_path", path).Msg("seed loaded")
	return nil
}
