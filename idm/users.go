package idm

import (
	"context"

	"github.com/cloudlane/idmclient/rest"
	"github.com/cloudlane/idmclient/telemetry"
)

const (
	usersEndpoint       = "/users/:id"
	multifactorEndpoint = "/users/:id/multifactor/:provider"
	identitiesEndpoint  = "/users/:id/identities/:provider/:user_id"
)

// UsersManager manages the user records of the identity management API.
type UsersManager struct {
	users       *rest.Resource
	multifactor *rest.Resource
	identities  *rest.Resource
	helper      rest.Helper
	metrics     *telemetry.ClientMetrics
}

// NewUsersManager creates a new instance of the UsersManager.
func NewUsersManager(config *Config) (*UsersManager, error) {
	if err := config.validate(); err != nil {
		return nil, err
	}

	options := config.resourceOptions()

	return &UsersManager{
		users:       rest.NewResource(usersEndpoint, options),
		multifactor: rest.NewResource(multifactorEndpoint, options),
		identities:  rest.NewResource(identitiesEndpoint, options),
		helper:      options.Helper,
		metrics:     config.Metrics,
	}, nil
}

// Create creates a new user record.
func (m *UsersManager) Create(ctx context.Context, data any, cb ...rest.Callback[*User]) (*User, error) {
	return rest.Dispatch(cb, func() (*User, error) {
		body, err := m.users.Create(ctx, nil, data)
		if err != nil {
			return nil, err
		}

		if m.metrics != nil {
			m.metrics.CountCreateUser()
		}

		return m.decodeUser(body)
	})
}

// GetAll lists user records. All arguments are forwarded to the users
// resource without interpretation: rest.Params merge into the query string
// and a trailing rest.Callback switches to the callback convention.
func (m *UsersManager) GetAll(ctx context.Context, args ...any) ([]*User, error) {
	params := rest.Params{}
	var cb []rest.Callback[[]*User]

	for _, arg := range args {
		switch value := arg.(type) {
		case rest.Params:
			for k, v := range value {
				params[k] = v
			}
		case map[string]any:
			for k, v := range value {
				params[k] = v
			}
		case rest.Callback[[]*User]:
			cb = append(cb, value)
		case func([]*User, error):
			cb = append(cb, value)
		}
	}

	return rest.Dispatch(cb, func() ([]*User, error) {
		body, err := m.users.GetAll(ctx, params)
		if err != nil {
			return nil, err
		}

		if m.metrics != nil {
			m.metrics.CountListUsers()
		}

		var users []*User
		if err := m.helper.Unmarshal(body, &users); err != nil {
			return nil, err
		}

		return users, nil
	})
}

// Get fetches a user record.
func (m *UsersManager) Get(ctx context.Context, params rest.Params, cb ...rest.Callback[*User]) (*User, error) {
	return rest.Dispatch(cb, func() (*User, error) {
		body, err := m.users.Get(ctx, params)
		if err != nil {
			return nil, err
		}

		if m.metrics != nil {
			m.metrics.CountGetUser()
		}

		return m.decodeUser(body)
	})
}

// Update patches a user record with the given data.
func (m *UsersManager) Update(ctx context.Context, params rest.Params, data any, cb ...rest.Callback[*User]) (*User, error) {
	return rest.Dispatch(cb, func() (*User, error) {
		body, err := m.users.Patch(ctx, params, data)
		if err != nil {
			return nil, err
		}

		if m.metrics != nil {
			m.metrics.CountUpdateUser()
		}

		return m.decodeUser(body)
	})
}

// UpdateUserMetadata patches the user_metadata section of a user record.
// The metadata value is wrapped before it goes over the wire.
func (m *UsersManager) UpdateUserMetadata(ctx context.Context, params rest.Params, metadata any, cb ...rest.Callback[*User]) (*User, error) {
	return m.updateMetadata(ctx, params, map[string]any{"user_metadata": metadata}, cb)
}

// UpdateAppMetadata patches the app_metadata section of a user record.
// The metadata value is wrapped before it goes over the wire.
func (m *UsersManager) UpdateAppMetadata(ctx context.Context, params rest.Params, metadata any, cb ...rest.Callback[*User]) (*User, error) {
	return m.updateMetadata(ctx, params, map[string]any{"app_metadata": metadata}, cb)
}

func (m *UsersManager) updateMetadata(ctx context.Context, params rest.Params, data map[string]any, cb []rest.Callback[*User]) (*User, error) {
	return rest.Dispatch(cb, func() (*User, error) {
		body, err := m.users.Patch(ctx, params, data)
		if err != nil {
			return nil, err
		}

		if m.metrics != nil {
			m.metrics.CountUpdateUserMetadata()
		}

		return m.decodeUser(body)
	})
}

// Delete removes a user record. The id parameter must be a number.
func (m *UsersManager) Delete(ctx context.Context, params rest.Params, cb ...rest.ErrCallback) error {
	if params == nil {
		return newArgumentError("params", "must be provided")
	}

	if !numericValue(params["id"]) {
		return newArgumentError("id", "must be a number")
	}

	return rest.DispatchErr(cb, func() error {
		if _, err := m.users.Delete(ctx, params); err != nil {
			return err
		}

		if m.metrics != nil {
			m.metrics.CountDeleteUser()
		}

		return nil
	})
}

// DeleteAll removes every user record. The operation only runs in the
// callback convention.
func (m *UsersManager) DeleteAll(ctx context.Context, cb rest.ErrCallback) error {
	if cb == nil {
		return newArgumentError("deleteAll", "only accepts a callback")
	}

	return rest.DispatchErr([]rest.ErrCallback{cb}, func() error {
		if _, err := m.users.Delete(ctx, nil); err != nil {
			return err
		}

		if m.metrics != nil {
			m.metrics.CountDeleteUser()
		}

		return nil
	})
}

// DeleteMultifactorProvider removes a multifactor provider enrollment from
// a user.
func (m *UsersManager) DeleteMultifactorProvider(ctx context.Context, params rest.Params, cb ...rest.ErrCallback) error {
	if err := requireString(params, "id"); err != nil {
		return err
	}

	if err := requireString(params, "provider"); err != nil {
		return err
	}

	return rest.DispatchErr(cb, func() error {
		if _, err := m.multifactor.Delete(ctx, params); err != nil {
			return err
		}

		if m.metrics != nil {
			m.metrics.CountDeleteMultifactorProvider()
		}

		return nil
	})
}

// Link links another identity to the user with the given id. The link
// payload goes through unvalidated as the request body.
func (m *UsersManager) Link(ctx context.Context, userID string, data any, cb ...rest.Callback[[]Identity]) ([]Identity, error) {
	if userID == "" {
		return nil, newArgumentError("userId", "must be a non-empty string")
	}

	return rest.Dispatch(cb, func() ([]Identity, error) {
		body, err := m.identities.Create(ctx, rest.Params{"id": userID}, data)
		if err != nil {
			return nil, err
		}

		if m.metrics != nil {
			m.metrics.CountLinkIdentity()
		}

		return m.decodeIdentities(body)
	})
}

// Unlink unlinks an identity from a user.
func (m *UsersManager) Unlink(ctx context.Context, params rest.Params, cb ...rest.Callback[[]Identity]) ([]Identity, error) {
	for _, key := range []string{"id", "user_id", "provider"} {
		if err := requireString(params, key); err != nil {
			return nil, err
		}
	}

	return rest.Dispatch(cb, func() ([]Identity, error) {
		body, err := m.identities.Delete(ctx, params)
		if err != nil {
			return nil, err
		}

		if m.metrics != nil {
			m.metrics.CountUnlinkIdentity()
		}

		return m.decodeIdentities(body)
	})
}

func (m *UsersManager) decodeUser(body []byte) (*User, error) {
	var user User
	if err := m.helper.Unmarshal(body, &user); err != nil {
		return nil, err
	}

	return &user, nil
}

func (m *UsersManager) decodeIdentities(body []byte) ([]Identity, error) {
	if len(body) == 0 {
		return nil, nil
	}

	var identities []Identity
	if err := m.helper.Unmarshal(body, &identities); err != nil {
		return nil, err
	}

	return identities, nil
}
