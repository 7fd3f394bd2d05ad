package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"sheet-sync/feature/migration/platform"
)

// Client is a mock implementation of platform.Client.
type Client struct {
	mock.Mock
}

func (m *Client) FindEntity(ctx context.Context, groupID, entityID string) (platform.Entity, error) {
	args := m.Called(ctx, groupID, entityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(platform.Entity), args.Error(1)
}

func (m *Client) CreateEntity(ctx context.Context, groupID string, fields platform.CreateFields) (*platform.CreateResult, error) {
	args := m.Called(ctx, groupID, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*platform.CreateResult), args.Error(1)
}

func (m *Client) FindParentGroup(ctx context.Context, groupID string) (bool, error) {
	args := m.Called(ctx, groupID)
	return args.Bool(0), args.Error(1)
}

func (m *Client) SetStatus(ctx context.Context, groupID, entityID string, status platform.Status) error {
	args := m.Called(ctx, groupID, entityID, status)
	return args.Error(0)
}

func (m *Client) EnsureLabel(ctx context.Context, name string) (bool, error) {
	args := m.Called(ctx, name)
	return args.Bool(0), args.Error(1)
}

func (m *Client) ApplyLabel(ctx context.Context, groupID, entityID, name string) error {
	args := m.Called(ctx, groupID, entityID, name)
	return args.Error(0)
}

func (m *Client) RemoveLabel(ctx context.Context, groupID, entityID, name string) error {
	args := m.Called(ctx, groupID, entityID, name)
	return args.Error(0)
}
