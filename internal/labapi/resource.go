package labapi

import (
	"context"
	"net/http"
	"net/url"
)

// Resource is one REST collection.  T is the record type and P the
// write payload.  Item URLs are the collection path plus "<id>/".
type Resource[T any, P any] struct {
	client *Client
	path   string
	name   string
}

// Path returns the collection path, e.g. "/api/Orders/".
func (r Resource[T, P]) Path() string { return r.path }

func (r Resource[T, P]) itemPath(id ID) string {
	return r.path + url.PathEscape(id.String()) + "/"
}

// List fetches the collection.  Paginated replies yield their first
// page of results.  The returned slice is never nil on success.
func (r Resource[T, P]) List(ctx context.Context) ([]T, error) {
	op := "list " + r.name
	data, err := r.client.do(ctx, op, http.MethodGet, r.path, nil)
	if err != nil {
		return nil, err
	}
	items, err := DecodeList[T](data)
	if err != nil {
		return nil, &Error{Kind: KindServer, Op: op, Err: err}
	}
	return items, nil
}

// Create posts payload and returns the record the server created.
func (r Resource[T, P]) Create(ctx context.Context, payload P) (T, error) {
	op := "create " + r.name
	var created T
	data, err := r.client.do(ctx, op, http.MethodPost, r.path, payload)
	if err != nil {
		return created, err
	}
	err = decodeInto(op, data, &created)
	return created, err
}

// Update replaces record id with payload.
func (r Resource[T, P]) Update(ctx context.Context, id ID, payload P) (T, error) {
	op := "update " + r.name
	var updated T
	data, err := r.client.do(ctx, op, http.MethodPut, r.itemPath(id), payload)
	if err != nil {
		return updated, err
	}
	err = decodeInto(op, data, &updated)
	return updated, err
}

// Delete removes record id.
func (r Resource[T, P]) Delete(ctx context.Context, id ID) error {
	_, err := r.client.do(ctx, "delete "+r.name, http.MethodDelete, r.itemPath(id), nil)
	return err
}
