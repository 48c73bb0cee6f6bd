// Package telemetry collects metrics of the identity management client.
package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// ClientMetrics is common identity management client metrics
type ClientMetrics struct {
	createUserCounter          metric.Int64Counter
	getUserCounter             metric.Int64Counter
	listUsersCounter           metric.Int64Counter
	updateUserCounter          metric.Int64Counter
	metaUpdateCounter          metric.Int64Counter
	deleteUserCounter          metric.Int64Counter
	deleteMultifactorCounter   metric.Int64Counter
	linkIdentityCounter        metric.Int64Counter
	unlinkIdentityCounter      metric.Int64Counter
	getUserBlockCounter        metric.Int64Counter
	deleteUserBlockCounter     metric.Int64Counter
	authenticateRequestCounter metric.Int64Counter
	requestErrorCounter        metric.Int64Counter
	requestStatusErrorCounter  metric.Int64Counter
	ctx                        context.Context
}

// NewClientMetrics creates new ClientMetrics struct and registers common counters
func NewClientMetrics(ctx context.Context, meter metric.Meter) (*ClientMetrics, error) {
	createUserCounter, err := meter.Int64Counter("idm.client.create.user.counter", metric.WithUnit("1"))
	if err != nil {
		return nil, err
	}
	getUserCounter, err := meter.Int64Counter("idm.client.get.user.counter", metric.WithUnit("1"))
	if err != nil {
		return nil, err
	}
	listUsersCounter, err := meter.Int64Counter("idm.client.list.users.counter", metric.WithUnit("1"))
	if err != nil {
		return nil, err
	}
	updateUserCounter, err := meter.Int64Counter("idm.client.update.user.counter", metric.WithUnit("1"))
	if err != nil {
		return nil, err
	}
	metaUpdateCounter, err := meter.Int64Counter("idm.client.update.user.meta.counter", metric.WithUnit("1"))
	if err != nil {
		return nil, err
	}
	deleteUserCounter, err := meter.Int64Counter("idm.client.delete.user.counter", metric.WithUnit("1"))
	if err != nil {
		return nil, err
	}
	deleteMultifactorCounter, err := meter.Int64Counter("idm.client.delete.multifactor.counter", metric.WithUnit("1"))
	if err != nil {
		return nil, err
	}
	linkIdentityCounter, err := meter.Int64Counter("idm.client.link.identity.counter", metric.WithUnit("1"))
	if err != nil {
		return nil, err
	}
	unlinkIdentityCounter, err := meter.Int64Counter("idm.client.unlink.identity.counter", metric.WithUnit("1"))
	if err != nil {
		return nil, err
	}
	getUserBlockCounter, err := meter.Int64Counter("idm.client.get.user.block.counter", metric.WithUnit("1"))
	if err != nil {
		return nil, err
	}
	deleteUserBlockCounter, err := meter.Int64Counter("idm.client.delete.user.block.counter", metric.WithUnit("1"))
	if err != nil {
		return nil, err
	}
	authenticateRequestCounter, err := meter.Int64Counter("idm.client.authenticate.request.counter", metric.WithUnit("1"))
	if err != nil {
		return nil, err
	}
	requestErrorCounter, err := meter.Int64Counter("idm.client.request.error.counter", metric.WithUnit("1"))
	if err != nil {
		return nil, err
	}
	requestStatusErrorCounter, err := meter.Int64Counter("idm.client.request.status.error.counter", metric.WithUnit("1"))
	if err != nil {
		return nil, err
	}

	return &ClientMetrics{
		createUserCounter:          createUserCounter,
		getUserCounter:             getUserCounter,
		listUsersCounter:           listUsersCounter,
		updateUserCounter:          updateUserCounter,
		metaUpdateCounter:          metaUpdateCounter,
		deleteUserCounter:          deleteUserCounter,
		deleteMultifactorCounter:   deleteMultifactorCounter,
		linkIdentityCounter:        linkIdentityCounter,
		unlinkIdentityCounter:      unlinkIdentityCounter,
		getUserBlockCounter:        getUserBlockCounter,
		deleteUserBlockCounter:     deleteUserBlockCounter,
		authenticateRequestCounter: authenticateRequestCounter,
		requestErrorCounter:        requestErrorCounter,
		requestStatusErrorCounter:  requestStatusErrorCounter,
		ctx:                        ctx}, nil
}

// DefaultClientMetrics creates ClientMetrics backed by the globally
// registered meter provider.
func DefaultClientMetrics(ctx context.Context) (*ClientMetrics, error) {
	return NewClientMetrics(ctx, otel.GetMeterProvider().Meter("github.com/cloudlane/idmclient"))
}

// CountCreateUser ...
func (clientMetrics *ClientMetrics) CountCreateUser() {
	clientMetrics.createUserCounter.Add(clientMetrics.ctx, 1)
}

// CountGetUser ...
func (clientMetrics *ClientMetrics) CountGetUser() {
	clientMetrics.getUserCounter.Add(clientMetrics.ctx, 1)
}

// CountListUsers ...
func (clientMetrics *ClientMetrics) CountListUsers() {
	clientMetrics.listUsersCounter.Add(clientMetrics.ctx, 1)
}

// CountUpdateUser ...
func (clientMetrics *ClientMetrics) CountUpdateUser() {
	clientMetrics.updateUserCounter.Add(clientMetrics.ctx, 1)
}

// CountUpdateUserMetadata ...
func (clientMetrics *ClientMetrics) CountUpdateUserMetadata() {
	clientMetrics.metaUpdateCounter.Add(clientMetrics.ctx, 1)
}

// CountDeleteUser ...
func (clientMetrics *ClientMetrics) CountDeleteUser() {
	clientMetrics.deleteUserCounter.Add(clientMetrics.ctx, 1)
}

// CountDeleteMultifactorProvider ...
func (clientMetrics *ClientMetrics) CountDeleteMultifactorProvider() {
	clientMetrics.deleteMultifactorCounter.Add(clientMetrics.ctx, 1)
}

// CountLinkIdentity ...
func (clientMetrics *ClientMetrics) CountLinkIdentity() {
	clientMetrics.linkIdentityCounter.Add(clientMetrics.ctx, 1)
}

// CountUnlinkIdentity ...
func (clientMetrics *ClientMetrics) CountUnlinkIdentity() {
	clientMetrics.unlinkIdentityCounter.Add(clientMetrics.ctx, 1)
}

// CountGetUserBlock ...
func (clientMetrics *ClientMetrics) CountGetUserBlock() {
	clientMetrics.getUserBlockCounter.Add(clientMetrics.ctx, 1)
}

// CountDeleteUserBlock ...
func (clientMetrics *ClientMetrics) CountDeleteUserBlock() {
	clientMetrics.deleteUserBlockCounter.Add(clientMetrics.ctx, 1)
}

// CountAuthenticate ...
func (clientMetrics *ClientMetrics) CountAuthenticate() {
	clientMetrics.authenticateRequestCounter.Add(clientMetrics.ctx, 1)
}

// CountRequestError counts number of error that happened when doing http request (httpClient.Do)
func (clientMetrics *ClientMetrics) CountRequestError() {
	clientMetrics.requestErrorCounter.Add(clientMetrics.ctx, 1)
}

// CountRequestStatusError counts number of responses that came from the API with non success status code
func (clientMetrics *ClientMetrics) CountRequestStatusError() {
	clientMetrics.requestStatusErrorCounter.Add(clientMetrics.ctx, 1)
}
