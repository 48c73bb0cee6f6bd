package idm

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cloudlane/idmclient/rest"
)

func TestUserBlocksGet(t *testing.T) {
	reqClient := mockHTTPClient{code: 200, resBody: `{"blocked_for":[{"identifier":"ada@example.com","ip":"198.51.100.1"}]}`}
	manager, err := NewUserBlocksManager(testConfig(&reqClient))
	require.NoError(t, err)

	block, err := manager.Get(context.Background(), rest.Params{"id": "usr_1"})
	require.NoError(t, err)

	assert.Equal(t, "GET", reqClient.reqMethod)
	assert.Equal(t, "https://idm.example.com/api/v2/user-blocks/usr_1", reqClient.reqURL)
	require.Len(t, block.BlockedFor, 1)
	assert.Equal(t, "ada@example.com", block.BlockedFor[0].Identifier)
	assert.Equal(t, "198.51.100.1", block.BlockedFor[0].IP)
}

func TestUserBlocksDelete(t *testing.T) {
	reqClient := mockHTTPClient{code: 204}
	manager, err := NewUserBlocksManager(testConfig(&reqClient))
	require.NoError(t, err)

	err = manager.Delete(context.Background(), rest.Params{"id": "usr_1"})
	require.NoError(t, err)

	assert.Equal(t, "DELETE", reqClient.reqMethod)
	assert.Equal(t, "https://idm.example.com/api/v2/user-blocks/usr_1", reqClient.reqURL)
}

func TestUserBlocksDeleteCallbackConvention(t *testing.T) {
	reqClient := mockHTTPClient{code: 204}
	manager, err := NewUserBlocksManager(testConfig(&reqClient))
	require.NoError(t, err)

	done := make(chan error, 1)
	err = manager.Delete(context.Background(), rest.Params{"id": "usr_1"}, func(err error) { done <- err })
	require.NoError(t, err)

	select {
	case cbErr := <-done:
		require.NoError(t, cbErr)
	case <-time.After(time.Second):
		t.Fatal("callback was not invoked")
	}

	assert.Equal(t, "https://idm.example.com/api/v2/user-blocks/usr_1", reqClient.reqURL)
}
