package main

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ManuelReschke/VendaBot/app/models"
)

func TestNewApplicationWithoutToken(t *testing.T) {
	t.Setenv("DISCORD_BOT_TOKEN", "")
	t.Setenv("CACHE_HOST", "")

	application, err := NewApplication(context.Background())
	require.NoError(t, err)
	defer application.Shutdown()

	assert.Nil(t, application.Bot)
	assert.Nil(t, application.Cache)

	resp, err := application.App.Test(httptest.NewRequest(fiber.MethodGet, "/api/commands", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var commands []models.Command
	require.NoError(t, json.Unmarshal(raw, &commands))
	assert.Len(t, commands, 6)
	for _, c := range commands {
		assert.Zero(t, c.UsageCount, c.Name)
	}
}
