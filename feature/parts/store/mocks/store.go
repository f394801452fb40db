package mocks

import (
	"context"

	"parts-manager/feature/parts/models"
	"parts-manager/feature/parts/store"

	"github.com/stretchr/testify/mock"
)

// Store is a mock implementation of store.Store
type Store struct {
	mock.Mock
}

func (m *Store) GetByRef(ctx context.Context, ref string) (*models.Part, error) {
	args := m.Called(ctx, ref)
	if part, ok := args.Get(0).(*models.Part); ok {
		return part, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Store) Insert(ctx context.Context, part *models.Part) error {
	args := m.Called(ctx, part)
	return args.Error(0)
}

func (m *Store) UpdateFields(ctx context.Context, id uint, fields map[string]any) error {
	args := m.Called(ctx, id, fields)
	return args.Error(0)
}

func (m *Store) DeleteByID(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *Store) GetWithMachines(ctx context.Context, id uint) (*models.Part, []uint, error) {
	args := m.Called(ctx, id)
	if part, ok := args.Get(0).(*models.Part); ok {
		return part, args.Get(1).([]uint), args.Error(2)
	}
	return nil, nil, args.Error(2)
}

func (m *Store) ListPaged(ctx context.Context, f store.Filter) (*store.Page, error) {
	args := m.Called(ctx, f)
	if page, ok := args.Get(0).(*store.Page); ok {
		return page, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Store) ReplaceCompatibility(ctx context.Context, partID uint, machineIDs []uint) error {
	args := m.Called(ctx, partID, machineIDs)
	return args.Error(0)
}

func (m *Store) ListMachines(ctx context.Context) ([]models.Machine, error) {
	args := m.Called(ctx)
	if machines, ok := args.Get(0).([]models.Machine); ok {
		return machines, args.Error(1)
	}
	return nil, args.Error(1)
}
