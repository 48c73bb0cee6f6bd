package idm

import (
	"bytes"
	"io"
	"net/http"
)

// mockHTTPClient is a mock implementation of rest.HTTPClient for testing
type mockHTTPClient struct {
	code      int
	resBody   string
	err       error
	reqBody   string
	reqURL    string
	reqMethod string
}

func (c *mockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	if c.err != nil {
		return nil, c.err
	}

	c.reqURL = req.URL.String()
	c.reqMethod = req.Method

	if req.Body != nil {
		body, _ := io.ReadAll(req.Body)
		c.reqBody = string(body)
	}

	return &http.Response{
		StatusCode: c.code,
		Body:       io.NopCloser(bytes.NewReader([]byte(c.resBody))),
	}, nil
}

func testConfig(reqClient *mockHTTPClient) *Config {
	return &Config{
		BaseURL:    "https://idm.example.com/api/v2",
		HTTPClient: reqClient,
	}
}
