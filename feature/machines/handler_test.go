package machines_test

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"parts-manager/feature/machines"
	"parts-manager/feature/parts/models"
	storemocks "parts-manager/feature/parts/store/mocks"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestHandleListMachines(t *testing.T) {
	s := new(storemocks.Store)
	s.On("ListMachines", mock.Anything).Return([]models.Machine{
		{ID: 1, Model: "HX-90", Variant: "A"},
		{ID: 2, Model: "HX-90", Variant: "B"},
	}, nil)

	h := machines.NewHandler(machines.NewService(s, zap.NewNop()))
	app := fiber.New()
	h.RegisterRoutes(app)

	req := httptest.NewRequest("GET", "/machines", nil)
	resp, err := app.Test(req, 2000)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var listed []models.Machine
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&listed))
	require.Len(t, listed, 2)
	assert.Equal(t, "HX-90", listed[0].Model)
	assert.Equal(t, "A", listed[0].Variant)
}

func TestHandleListMachines_StoreFailure(t *testing.T) {
	s := new(storemocks.Store)
	s.On("ListMachines", mock.Anything).Return(nil, assert.AnError)

	h := machines.NewHandler(machines.NewService(s, zap.NewNop()))
	app := fiber.New()
	h.RegisterRoutes(app)

	req := httptest.NewRequest("GET", "/machines", nil)
	resp, err := app.Test(req, 2000)
	require.NoError(t, err)
	assert.Equal(t, 500, resp.StatusCode)
}
