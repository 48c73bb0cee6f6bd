// Package rest implements the resource binding layer of the identity
// management client. A Resource associates a URL template containing :name
// placeholders with the shared transport configuration and turns call
// parameters into concrete HTTP requests.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/cloudlane/idmclient/telemetry"
)

// HTTPClient http client interface for API calls.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Helper marshal/unmarshal helper.
type Helper interface {
	Marshal(v interface{}) ([]byte, error)
	Unmarshal(data []byte, v interface{}) error
}

// JsonParser default json marshal/unmarshal helper.
type JsonParser struct{}

// Marshal marshals v into json.
func (JsonParser) Marshal(v interface{}) ([]byte, error) {
	return json.Marshal(v)
}

// Unmarshal unmarshals json data into v.
func (JsonParser) Unmarshal(data []byte, v interface{}) error {
	return json.Unmarshal(data, v)
}

// Params holds the runtime values substituted into a URL template's named
// placeholders. Entries that do not match a placeholder are serialized into
// the query string.
type Params map[string]any

// Options shared configuration inherited by every Resource of a manager.
type Options struct {
	BaseURL     string
	Headers     map[string]string
	Credentials Credentials
	HTTPClient  HTTPClient
	Helper      Helper
	Metrics     *telemetry.ClientMetrics
}

// Resource a bound association between a URL template and the transport
// configuration, reused across calls. Immutable once constructed; building
// a Resource performs no network I/O.
type Resource struct {
	template    string
	baseURL     string
	headers     map[string]string
	credentials Credentials
	httpClient  HTTPClient
	helper      Helper
	metrics     *telemetry.ClientMetrics
}

// NewResource binds a URL template to the given options.
func NewResource(template string, options Options) *Resource {
	httpClient := options.HTTPClient
	if httpClient == nil {
		httpTransport := http.DefaultTransport.(*http.Transport).Clone()
		httpTransport.MaxIdleConns = 5

		httpClient = &http.Client{
			Timeout:   10 * time.Second,
			Transport: httpTransport,
		}
	}

	helper := options.Helper
	if helper == nil {
		helper = JsonParser{}
	}

	return &Resource{
		template:    template,
		baseURL:     strings.TrimSuffix(options.BaseURL, "/"),
		headers:     options.Headers,
		credentials: options.Credentials,
		httpClient:  httpClient,
		helper:      helper,
		metrics:     options.Metrics,
	}
}

// Create performs a POST request against the bound template.
func (r *Resource) Create(ctx context.Context, params Params, body any) ([]byte, error) {
	return r.do(ctx, http.MethodPost, params, body)
}

// Get performs a GET request against the bound template.
func (r *Resource) Get(ctx context.Context, params Params) ([]byte, error) {
	return r.do(ctx, http.MethodGet, params, nil)
}

// GetAll performs a GET request forwarding the given parameters unchanged.
// Placeholders left unfilled are trimmed from the tail of the template, so a
// collection listing reuses the same binding as the single-item lookup.
func (r *Resource) GetAll(ctx context.Context, params Params) ([]byte, error) {
	return r.do(ctx, http.MethodGet, params, nil)
}

// Patch performs a PATCH request against the bound template.
func (r *Resource) Patch(ctx context.Context, params Params, body any) ([]byte, error) {
	return r.do(ctx, http.MethodPatch, params, body)
}

// Delete performs a DELETE request against the bound template.
func (r *Resource) Delete(ctx context.Context, params Params) ([]byte, error) {
	return r.do(ctx, http.MethodDelete, params, nil)
}

// do builds the request URL from the template and params, attaches headers
// and credentials and performs the HTTP call.
func (r *Resource) do(ctx context.Context, method string, params Params, body any) ([]byte, error) {
	reqURL, err := r.buildURL(params)
	if err != nil {
		return nil, err
	}

	var payload *bytes.Reader
	if body != nil {
		data, err := r.helper.Marshal(body)
		if err != nil {
			return nil, err
		}
		payload = bytes.NewReader(data)
	} else {
		payload = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, payload)
	if err != nil {
		return nil, err
	}

	for k, v := range r.headers {
		req.Header.Set(k, v)
	}
	req.Header.Set("content-type", "application/json")
	req.Header.Set("x-request-id", uuid.New().String())

	if r.credentials != nil {
		jwtToken, err := r.credentials.Authenticate()
		if err != nil {
			return nil, err
		}
		req.Header.Set("authorization", "Bearer "+jwtToken.AccessToken)
	}

	log.Debugf("dispatching %s %s", method, reqURL)

	resp, err := r.httpClient.Do(req)
	if err != nil {
		if r.metrics != nil {
			r.metrics.CountRequestError()
		}

		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		if r.metrics != nil {
			r.metrics.CountRequestStatusError()
		}

		return nil, fmt.Errorf("unable to %s %s, statusCode %d", strings.ToLower(method), reqURL, resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}

// buildURL substitutes :name placeholders with values from params and
// serializes the remaining entries into the query string. Unfilled
// placeholders are dropped together with the segments that follow them,
// provided none of the following segments resolve to a value; an unfilled
// placeholder in the middle of a resolved path is a usage error.
func (r *Resource) buildURL(params Params) (string, error) {
	segments := strings.Split(strings.TrimPrefix(r.template, "/"), "/")
	used := make(map[string]bool, len(params))

	resolved := make([]string, 0, len(segments))
	trimmed := false
	for _, segment := range segments {
		name, isPlaceholder := strings.CutPrefix(segment, ":")
		if !isPlaceholder {
			if trimmed {
				return "", fmt.Errorf("unfilled URL parameter before segment %q in template %s", segment, r.template)
			}
			resolved = append(resolved, segment)
			continue
		}

		value, ok := params[name]
		if !ok || value == nil {
			trimmed = true
			continue
		}
		if trimmed {
			return "", fmt.Errorf("no value provided for a URL parameter preceding %q in template %s", name, r.template)
		}

		used[name] = true
		resolved = append(resolved, url.PathEscape(fmt.Sprint(value)))
	}

	reqURL := r.baseURL + "/" + strings.Join(resolved, "/")

	query := encodeQuery(params, used)
	if query != "" {
		reqURL += "?" + query
	}

	return reqURL, nil
}

// encodeQuery serializes params not consumed by the template. Array values
// collapse into a single comma joined value under their key; repeated keys
// are never produced.
func encodeQuery(params Params, used map[string]bool) string {
	q := url.Values{}
	for k, v := range params {
		if used[k] || v == nil {
			continue
		}

		switch value := v.(type) {
		case []string:
			q.Set(k, strings.Join(value, ","))
		case []any:
			parts := make([]string, 0, len(value))
			for _, item := range value {
				parts = append(parts, fmt.Sprint(item))
			}
			q.Set(k, strings.Join(parts, ","))
		default:
			q.Set(k, fmt.Sprint(v))
		}
	}

	return q.Encode()
}
