package main

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"shareit/internal/api"
	"shareit/internal/config"
	"shareit/internal/database"
	"shareit/internal/models"
	"shareit/internal/service"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSeed = `
users:
  - name: Al
    email: al@example.com
    items:
      - name: Drill
        description: Cordless drill
        available: true
      - name: Ladder
        description: Three metre ladder
        available: false
  - name: Bo
    email: bo@example.com
    requests:
      - Need a tent for the weekend
`

func newServices(t *testing.T) api.Services {
	t.Helper()
	logger := zerolog.New(io.Discard)
	db, err := database.NewDB(context.Background(), config.DatabaseConfig{Driver: config.DriverSQLite, Path: ":memory:"}, &logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return api.Services{
		Users:    service.NewUserService(db, &logger),
		Items:    service.NewItemService(db, nil, &logger),
		Bookings: service.NewBookingService(db, nil, &logger),
		Requests: service.NewRequestService(db, nil, &logger),
	}
}

func TestLoadSeed(t *testing.T) {
	ctx := context.Background()
	logger := zerolog.New(io.Discard)
	services := newServices(t)

	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testSeed), 0o600))

	require.NoError(t, loadSeed(ctx, path, services, &logger))
	// second run skips existing users
	require.NoError(t, loadSeed(ctx, path, services, &logger))

	users, err := services.Users.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "Al", users[0].Name)

	items, err := services.Items.ListByOwner(ctx, users[0].ID, models.DefaultPage())
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.True(t, items[0].Available)
	assert.False(t, items[1].Available)

	requests, err := services.Requests.ListByUser(ctx, users[1].ID)
	require.NoError(t, err)
	require.Len(t, requests, 1)
	assert.Equal(t, "Need a tent for the weekend", requests[0].Description)
}

func TestLoadSeedMissingFile(t *testing.T) {
	logger := zerolog.New(io.Discard)
	err := loadSeed(context.Background(), filepath.Join(t.TempDir(), "absent.yaml"), newServices(t), &logger)
	assert.NoError(t, err)
}

func TestLoadSeedInvalidYAML(t *testing.T) {
	logger := zerolog.New(io.Discard)
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte("users: [\n"), 0o600))

	err := loadSeed(context.Background(), path, newServices(t), &logger)
	assert.Error(t, err)
}
