// Package labapi is a typed HTTP client for the lab-desk REST API.
//
// Collections are reached through Resource values (Orders, Tests, ...),
// which speak the trailing-slash URL convention and accept both bare
// arrays and paginated envelopes on list.  Only the first page of a
// paginated collection is ever read.
package labapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// maxErrorBody caps the server text kept on an Error.
const maxErrorBody = 512

// Client talks to one API origin on behalf of one Session.
type Client struct {
	httpClient *http.Client
	baseURL    string
	session    *Session
}

// New creates a Client for baseURL (scheme and host, no trailing slash
// needed).  A nil session gets a fresh one.
func New(baseURL string, timeout time.Duration, session *Session) *Client {
	return NewWithHTTPClient(baseURL, &http.Client{Timeout: timeout}, session)
}

// NewWithHTTPClient is New with a caller-supplied http.Client, used by
// tests that point the client at an httptest.Server.
func NewWithHTTPClient(baseURL string, httpClient *http.Client, session *Session) *Client {
	if session == nil {
		session = NewSession()
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		session:    session,
	}
}

// Session returns the session whose token authorizes requests.
func (client *Client) Session() *Session { return client.session }

// BaseURL returns the API origin.
func (client *Client) BaseURL() string { return client.baseURL }

// do sends one request and returns the response body of a 2xx reply.
// Any other outcome is an *Error.
func (client *Client) do(ctx context.Context, op, method, path string, body any) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, &Error{Kind: KindUnknown, Op: op, Err: err}
		}
		reader = bytes.NewReader(encoded)
	}

	request, err := http.NewRequestWithContext(ctx, method, client.baseURL+path, reader)
	if err != nil {
		return nil, &Error{Kind: KindUnknown, Op: op, Err: err}
	}
	request.Header.Set("Accept", "application/json")
	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if token := client.session.AccessToken(); token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}

	response, err := client.httpClient.Do(request)
	if err != nil {
		return nil, &Error{Kind: KindNetwork, Op: op, Err: err}
	}
	defer response.Body.Close()

	data, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, &Error{Kind: KindNetwork, Op: op, Err: err}
	}
	if response.StatusCode < 200 || response.StatusCode > 299 {
		text := strings.TrimSpace(string(data))
		if len(text) > maxErrorBody {
			text = text[:maxErrorBody] + "..."
		}
		return nil, &Error{Kind: kindForStatus(response.StatusCode), Op: op, Status: response.StatusCode, Body: text}
	}
	return data, nil
}

func decodeInto(op string, data []byte, out any) error {
	if err := json.Unmarshal(data, out); err != nil {
		return &Error{Kind: KindServer, Op: op, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

// Orders is /api/Orders/.
func (client *Client) Orders() Resource[Order, OrderPayload] {
	return Resource[Order, OrderPayload]{client: client, path: "/api/Orders/", name: "orders"}
}

// Tests is /api/Tests/.
func (client *Client) Tests() Resource[Test, TestPayload] {
	return Resource[Test, TestPayload]{client: client, path: "/api/Tests/", name: "tests"}
}

// Shows is /api/Shows/.
func (client *Client) Shows() Resource[Show, ShowPayload] {
	return Resource[Show, ShowPayload]{client: client, path: "/api/Shows/", name: "shows"}
}

// Reservations is /api/Reservations/.
func (client *Client) Reservations() Resource[Reservation, ReservationPayload] {
	return Resource[Reservation, ReservationPayload]{client: client, path: "/api/Reservations/", name: "reservations"}
}

// CatalogTypes is /api/catalog-types/.  The server offers no update.
func (client *Client) CatalogTypes() Resource[CatalogType, CatalogTypePayload] {
	return Resource[CatalogType, CatalogTypePayload]{client: client, path: "/api/catalog-types/", name: "catalog types"}
}

// OrderEvents is /api/order-events/.  The server offers no update.
func (client *Client) OrderEvents() Resource[OrderEvent, OrderEventCreate] {
	return Resource[OrderEvent, OrderEventCreate]{client: client, path: "/api/order-events/", name: "order events"}
}
