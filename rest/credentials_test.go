package rest

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClientCredentialsConfigValidation(t *testing.T) {
	type configValidationTest struct {
		name          string
		config        ClientCredentialsConfig
		assertErrFunc assert.ErrorAssertionFunc
	}

	configValidationTestCase1 := configValidationTest{
		name:          "Complete Config",
		config:        ClientCredentialsConfig{ClientID: "c", ClientSecret: "s", TokenEndpoint: "https://idm.example.com/oauth/token"},
		assertErrFunc: assert.NoError,
	}
	configValidationTestCase2 := configValidationTest{
		name:          "Missing ClientID",
		config:        ClientCredentialsConfig{ClientSecret: "s", TokenEndpoint: "https://idm.example.com/oauth/token"},
		assertErrFunc: assert.Error,
	}
	configValidationTestCase3 := configValidationTest{
		name:          "Missing ClientSecret",
		config:        ClientCredentialsConfig{ClientID: "c", TokenEndpoint: "https://idm.example.com/oauth/token"},
		assertErrFunc: assert.Error,
	}
	configValidationTestCase4 := configValidationTest{
		name:          "Missing TokenEndpoint",
		config:        ClientCredentialsConfig{ClientID: "c", ClientSecret: "s"},
		assertErrFunc: assert.Error,
	}

	for _, testCase := range []configValidationTest{configValidationTestCase1, configValidationTestCase2,
		configValidationTestCase3, configValidationTestCase4} {
		t.Run(testCase.name, func(t *testing.T) {
			_, err := NewClientCredentials(testCase.config, &mockHTTPClient{}, nil)
			testCase.assertErrFunc(t, err)
		})
	}
}

func TestClientCredentialsJwtStillValid(t *testing.T) {
	type jwtStillValidTest struct {
		name           string
		inputTime      time.Time
		expectedResult bool
		message        string
	}

	jwtStillValidTestCase1 := jwtStillValidTest{
		name:           "JWT still valid",
		inputTime:      time.Now().Add(10 * time.Second),
		expectedResult: true,
		message:        "should be true",
	}
	jwtStillValidTestCase2 := jwtStillValidTest{
		name:           "JWT is invalid",
		inputTime:      time.Now(),
		expectedResult: false,
		message:        "should be false",
	}

	for _, testCase := range []jwtStillValidTest{jwtStillValidTestCase1, jwtStillValidTestCase2} {
		t.Run(testCase.name, func(t *testing.T) {
			creds := ClientCredentials{}
			creds.jwtToken.expiresInTime = testCase.inputTime

			assert.Equalf(t, testCase.expectedResult, creds.jwtStillValid(), testCase.message)
		})
	}
}

func TestClientCredentialsAuthenticate(t *testing.T) {
	type authenticateTest struct {
		name                    string
		inputCode               int
		inputResBody            string
		inputExpireToken        time.Time
		expectedFuncExitErrDiff error
		expectedToken           string
	}
	exp := 5
	token := newTestJWT(t, exp)

	authenticateTestCase1 := authenticateTest{
		name:             "Get Cached Token",
		inputExpireToken: time.Now().Add(30 * time.Second),
		expectedToken:    "",
	}
	authenticateTestCase2 := authenticateTest{
		name:          "Get Good JWT Response",
		inputCode:     200,
		inputResBody:  fmt.Sprintf("{\"access_token\":\"%s\",\"scope\":\"read:users\",\"expires_in\":%d,\"token_type\":\"Bearer\"}", token, exp),
		expectedToken: token,
	}
	authenticateTestCase3 := authenticateTest{
		name:                    "Get Bad Status Code",
		inputCode:               400,
		inputResBody:            "{}",
		expectedFuncExitErrDiff: fmt.Errorf("unable to get token, statusCode 400"),
		expectedToken:           "",
	}

	for _, testCase := range []authenticateTest{authenticateTestCase1, authenticateTestCase2, authenticateTestCase3} {
		t.Run(testCase.name, func(t *testing.T) {
			jwtReqClient := mockHTTPClient{
				resBody: testCase.inputResBody,
				code:    testCase.inputCode,
			}

			creds := ClientCredentials{
				clientConfig: ClientCredentialsConfig{
					ClientID:      "c",
					ClientSecret:  "s",
					TokenEndpoint: "https://idm.example.com/oauth/token",
					GrantType:     "client_credentials",
				},
				httpClient: &jwtReqClient,
				helper:     JsonParser{},
			}
			creds.jwtToken.expiresInTime = testCase.inputExpireToken

			_, err := creds.Authenticate()
			if err != nil {
				if testCase.expectedFuncExitErrDiff != nil {
					assert.EqualError(t, err, testCase.expectedFuncExitErrDiff.Error(), "errors should be the same")
				} else {
					t.Fatal(err)
				}
			}

			assert.Equalf(t, testCase.expectedToken, creds.jwtToken.AccessToken, "two tokens should be the same")
		})
	}
}

func TestStaticTokenAuthenticate(t *testing.T) {
	jwtToken, err := StaticToken("api-token").Authenticate()
	assert.NoError(t, err)
	assert.Equal(t, "api-token", jwtToken.AccessToken)
	assert.Equal(t, "Bearer", jwtToken.TokenType)
}
