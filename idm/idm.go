// Package idm exposes manager objects for the remote multi-tenant identity
// management API. Managers bind resource paths once at construction and stay
// stateless afterwards; HTTP transport, serialization and token attachment
// are handled by the rest layer.
package idm

import (
	"fmt"
	"math"

	"github.com/cloudlane/idmclient/rest"
	"github.com/cloudlane/idmclient/telemetry"
)

// ArgumentError reports caller misuse of a manager operation. It is returned
// synchronously before any network interaction; remote failures never take
// this form.
type ArgumentError struct {
	Argument string
	Reason   string
}

// Error returns the error message.
func (e *ArgumentError) Error() string {
	return fmt.Sprintf("%s %s", e.Argument, e.Reason)
}

func newArgumentError(argument, reason string) *ArgumentError {
	return &ArgumentError{Argument: argument, Reason: reason}
}

// Config identity management client configuration.
type Config struct {
	// BaseURL of the identity management API, required.
	BaseURL string
	// Headers are forwarded verbatim on every request.
	Headers map[string]string
	// Credentials optionally attach a bearer token to every request.
	Credentials rest.Credentials
	// HTTPClient overrides the transport used for API calls.
	HTTPClient rest.HTTPClient
	// Metrics optionally count client operations.
	Metrics *telemetry.ClientMetrics
}

// validate fails fast on a missing or incomplete configuration so that no
// resource binding gets created from it.
func (c *Config) validate() error {
	if c == nil {
		return newArgumentError("config", "must be provided")
	}

	if c.BaseURL == "" {
		return newArgumentError("baseUrl", "must be a non-empty string")
	}

	return nil
}

func (c *Config) resourceOptions() rest.Options {
	return rest.Options{
		BaseURL:     c.BaseURL,
		Headers:     c.Headers,
		Credentials: c.Credentials,
		HTTPClient:  c.HTTPClient,
		Helper:      rest.JsonParser{},
		Metrics:     c.Metrics,
	}
}

// Client aggregates the managers of the identity management API.
type Client struct {
	Users      *UsersManager
	UserBlocks *UserBlocksManager
}

// NewClient creates managers for every resource of the identity management
// API from a single configuration.
func NewClient(config *Config) (*Client, error) {
	users, err := NewUsersManager(config)
	if err != nil {
		return nil, err
	}

	userBlocks, err := NewUserBlocksManager(config)
	if err != nil {
		return nil, err
	}

	return &Client{
		Users:      users,
		UserBlocks: userBlocks,
	}, nil
}

// User is a user record of the identity management API.
type User struct {
	ID            string         `json:"user_id,omitempty"`
	Email         string         `json:"email,omitempty"`
	EmailVerified bool           `json:"email_verified,omitempty"`
	Name          string         `json:"name,omitempty"`
	Connection    string         `json:"connection,omitempty"`
	Blocked       bool           `json:"blocked,omitempty"`
	UserMetadata  map[string]any `json:"user_metadata,omitempty"`
	AppMetadata   map[string]any `json:"app_metadata,omitempty"`
	Identities    []Identity     `json:"identities,omitempty"`
	CreatedAt     string         `json:"created_at,omitempty"`
	UpdatedAt     string         `json:"updated_at,omitempty"`
}

// Identity is a linked identity of a user.
type Identity struct {
	Connection string `json:"connection,omitempty"`
	Provider   string `json:"provider,omitempty"`
	UserID     string `json:"user_id,omitempty"`
	IsSocial   bool   `json:"isSocial,omitempty"`
}

// UserBlock describes the blocks currently applied to a user.
type UserBlock struct {
	BlockedFor []BlockedIdentifier `json:"blocked_for"`
}

// BlockedIdentifier a single blocked identifier and its origin.
type BlockedIdentifier struct {
	Identifier string `json:"identifier"`
	IP         string `json:"ip,omitempty"`
}

// requireString checks that params carries a non-empty string under key.
func requireString(params rest.Params, key string) *ArgumentError {
	value, ok := params[key].(string)
	if !ok || value == "" {
		return newArgumentError(key, "must be a non-empty string")
	}

	return nil
}

// numericValue reports whether v is a usable numeric identifier. NaN floats
// are rejected.
func numericValue(v any) bool {
	switch value := v.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return true
	case float32:
		return !math.IsNaN(float64(value))
	case float64:
		return !math.IsNaN(value)
	default:
		return false
	}
}
