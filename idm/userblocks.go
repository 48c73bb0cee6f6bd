package idm

import (
	"context"

	"github.com/cloudlane/idmclient/rest"
	"github.com/cloudlane/idmclient/telemetry"
)

const userBlocksEndpoint = "/user-blocks/:id"

// UserBlocksManager manages the blocks applied to user records.
type UserBlocksManager struct {
	userBlocks *rest.Resource
	helper     rest.Helper
	metrics    *telemetry.ClientMetrics
}

// NewUserBlocksManager creates a new instance of the UserBlocksManager.
func NewUserBlocksManager(config *Config) (*UserBlocksManager, error) {
	if err := config.validate(); err != nil {
		return nil, err
	}

	options := config.resourceOptions()

	return &UserBlocksManager{
		userBlocks: rest.NewResource(userBlocksEndpoint, options),
		helper:     options.Helper,
		metrics:    config.Metrics,
	}, nil
}

// Get fetches the blocks applied to a user.
func (m *UserBlocksManager) Get(ctx context.Context, params rest.Params, cb ...rest.Callback[*UserBlock]) (*UserBlock, error) {
	return rest.Dispatch(cb, func() (*UserBlock, error) {
		body, err := m.userBlocks.Get(ctx, params)
		if err != nil {
			return nil, err
		}

		if m.metrics != nil {
			m.metrics.CountGetUserBlock()
		}

		var block UserBlock
		if err := m.helper.Unmarshal(body, &block); err != nil {
			return nil, err
		}

		return &block, nil
	})
}

// Delete removes the blocks applied to a user.
func (m *UserBlocksManager) Delete(ctx context.Context, params rest.Params, cb ...rest.ErrCallback) error {
	return rest.DispatchErr(cb, func() error {
		if _, err := m.userBlocks.Delete(ctx, params); err != nil {
			return err
		}

		if m.metrics != nil {
			m.metrics.CountDeleteUserBlock()
		}

		return nil
	})
}
