package rest

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	log "github.com/sirupsen/logrus"

	"github.com/cloudlane/idmclient/telemetry"
)

// Credentials authenticates against the identity management API and hands
// out a token to attach to outgoing requests.
type Credentials interface {
	Authenticate() (JWTToken, error)
}

// JWTToken a JWT object that holds information of a token.
type JWTToken struct {
	AccessToken   string `json:"access_token"`
	ExpiresIn     int    `json:"expires_in"`
	expiresInTime time.Time
	Scope         string `json:"scope"`
	TokenType     string `json:"token_type"`
}

// StaticToken credentials backed by a pre-issued API token.
type StaticToken string

// Authenticate returns the fixed token.
func (t StaticToken) Authenticate() (JWTToken, error) {
	return JWTToken{AccessToken: string(t), TokenType: "Bearer"}, nil
}

// ClientCredentialsConfig client credentials flow configuration.
type ClientCredentialsConfig struct {
	ClientID      string
	ClientSecret  string
	Audience      string
	TokenEndpoint string
	GrantType     string
}

// ClientCredentials obtains tokens through the OAuth2 client credentials
// flow and caches them until shortly before expiry.
type ClientCredentials struct {
	clientConfig ClientCredentialsConfig
	helper       Helper
	httpClient   HTTPClient
	jwtToken     JWTToken
	mux          sync.Mutex
	metrics      *telemetry.ClientMetrics
}

// NewClientCredentials creates a new instance of ClientCredentials.
func NewClientCredentials(config ClientCredentialsConfig, httpClient HTTPClient, metrics *telemetry.ClientMetrics) (*ClientCredentials, error) {
	if config.ClientID == "" {
		return nil, fmt.Errorf("client credentials configuration is incomplete, ClientID is missing")
	}

	if config.ClientSecret == "" {
		return nil, fmt.Errorf("client credentials configuration is incomplete, ClientSecret is missing")
	}

	if config.TokenEndpoint == "" {
		return nil, fmt.Errorf("client credentials configuration is incomplete, TokenEndpoint is missing")
	}

	if config.GrantType == "" {
		config.GrantType = "client_credentials"
	}

	if httpClient == nil {
		httpTransport := http.DefaultTransport.(*http.Transport).Clone()
		httpTransport.MaxIdleConns = 5

		httpClient = &http.Client{
			Timeout:   10 * time.Second,
			Transport: httpTransport,
		}
	}

	return &ClientCredentials{
		clientConfig: config,
		helper:       JsonParser{},
		httpClient:   httpClient,
		metrics:      metrics,
	}, nil
}

// jwtStillValid returns true if the cached token is valid and has enough
// remaining lifetime to complete a request.
func (cc *ClientCredentials) jwtStillValid() bool {
	return !cc.jwtToken.expiresInTime.IsZero() && time.Now().Add(5*time.Second).Before(cc.jwtToken.expiresInTime)
}

// requestJWTToken performs request to get jwt token.
func (cc *ClientCredentials) requestJWTToken() (*http.Response, error) {
	data := url.Values{}
	data.Set("client_id", cc.clientConfig.ClientID)
	data.Set("client_secret", cc.clientConfig.ClientSecret)
	data.Set("grant_type", cc.clientConfig.GrantType)
	if cc.clientConfig.Audience != "" {
		data.Set("audience", cc.clientConfig.Audience)
	}

	payload := strings.NewReader(data.Encode())
	req, err := http.NewRequest(http.MethodPost, cc.clientConfig.TokenEndpoint, payload)
	if err != nil {
		return nil, err
	}
	req.Header.Add("content-type", "application/x-www-form-urlencoded")

	log.Debug("requesting new jwt token for the identity management API")

	resp, err := cc.httpClient.Do(req)
	if err != nil {
		if cc.metrics != nil {
			cc.metrics.CountRequestError()
		}

		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unable to get token, statusCode %d", resp.StatusCode)
	}

	return resp, nil
}

// parseRequestJWTResponse parses jwt raw response body and extracts token
// and expiry from the exp claim.
func (cc *ClientCredentials) parseRequestJWTResponse(rawBody io.ReadCloser) (JWTToken, error) {
	jwtToken := JWTToken{}
	body, err := io.ReadAll(rawBody)
	if err != nil {
		return jwtToken, err
	}

	err = cc.helper.Unmarshal(body, &jwtToken)
	if err != nil {
		return jwtToken, err
	}

	if jwtToken.ExpiresIn == 0 && jwtToken.AccessToken == "" {
		return jwtToken, fmt.Errorf("error while reading response body, expires_in: %d and access_token: %s", jwtToken.ExpiresIn, jwtToken.AccessToken)
	}

	claims := jwt.MapClaims{}
	_, _, err = jwt.NewParser().ParseUnverified(jwtToken.AccessToken, claims)
	if err != nil {
		return jwtToken, err
	}

	exp, err := claims.GetExpirationTime()
	if err != nil {
		return jwtToken, err
	}
	if exp == nil {
		return jwtToken, fmt.Errorf("token response is missing the exp claim")
	}
	jwtToken.expiresInTime = exp.Time

	return jwtToken, nil
}

// Authenticate retrieves an access token for the identity management API,
// reusing the cached one while it is still valid.
func (cc *ClientCredentials) Authenticate() (JWTToken, error) {
	cc.mux.Lock()
	defer cc.mux.Unlock()

	if cc.metrics != nil {
		cc.metrics.CountAuthenticate()
	}

	if cc.jwtStillValid() {
		return cc.jwtToken, nil
	}

	resp, err := cc.requestJWTToken()
	if err != nil {
		return cc.jwtToken, err
	}
	defer resp.Body.Close()

	jwtToken, err := cc.parseRequestJWTResponse(resp.Body)
	if err != nil {
		return cc.jwtToken, err
	}

	cc.jwtToken = jwtToken

	return cc.jwtToken, nil
}
