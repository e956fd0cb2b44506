package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/lab-desk/internal/model"
)

// DocStore keeps one collection of JSON documents in Redis:
//
//	docs:<name>        hash  id -> document JSON
//	docs:<name>:order  list  ids, newest first
//
// Documents get a random UUID string as identifier on insert.
type DocStore[T any] struct {
	rdb   redis.Cmdable
	hash  string
	order string
	newID func() string
	setID func(*T, string)
}

// NewDocStore builds a store for the named collection. setID writes the
// generated identifier into a document before it is saved.
func NewDocStore[T any](rdb redis.Cmdable, name string, setID func(*T, string)) *DocStore[T] {
	return &DocStore[T]{
		rdb:   rdb,
		hash:  "docs:" + name,
		order: "docs:" + name + ":order",
		newID: uuid.NewString,
		setID: setID,
	}
}

// NewCatalogTypeStore returns the catalog-types collection.
func NewCatalogTypeStore(rdb redis.Cmdable) *DocStore[model.CatalogType] {
	return NewDocStore(rdb, "catalog-types", func(c *model.CatalogType, id string) { c.ID = id })
}

// NewOrderEventStore returns the order-events collection.
func NewOrderEventStore(rdb redis.Cmdable) *DocStore[model.OrderEvent] {
	return NewDocStore(rdb, "order-events", func(e *model.OrderEvent, id string) { e.ID = id })
}

// List returns every document, newest first. Ids whose hash entry has
// vanished (a delete racing the read) are skipped.
func (s *DocStore[T]) List(ctx context.Context) ([]T, error) {
	ids, err := s.rdb.LRange(ctx, s.order, 0, -1).Result()
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	vals, err := s.rdb.HMGet(ctx, s.hash, ids...).Result()
	if err != nil {
		return nil, err
	}
	for i, v := range vals {
		raw, ok := v.(string)
		if !ok {
			continue
		}
		var doc T
		if err := json.Unmarshal([]byte(raw), &doc); err != nil {
			return nil, fmt.Errorf("decode %s/%s: %w", s.hash, ids[i], err)
		}
		out = append(out, doc)
	}
	return out, nil
}

// Get returns the document with id or ErrNotFound.
func (s *DocStore[T]) Get(ctx context.Context, id string) (*T, error) {
	raw, err := s.rdb.HGet(ctx, s.hash, id).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	var doc T
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// WithIDs replaces the identifier generator, so callers can pin ids.
func (s *DocStore[T]) WithIDs(newID func() string) *DocStore[T] {
	s.newID = newID
	return s
}

// Create assigns a fresh id to doc, then stores it and puts it at the head
// of the collection order in one MULTI/EXEC.
func (s *DocStore[T]) Create(ctx context.Context, doc T) (T, error) {
	id := s.newID()
	s.setID(&doc, id)
	data, err := json.Marshal(doc)
	if err != nil {
		return doc, err
	}
	_, err = s.rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.HSet(ctx, s.hash, id, string(data))
		p.LPush(ctx, s.order, id)
		return nil
	})
	return doc, err
}

// Delete removes the document with id or returns ErrNotFound.
func (s *DocStore[T]) Delete(ctx context.Context, id string) error {
	n, err := s.rdb.HDel(ctx, s.hash, id).Result()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return s.rdb.LRem(ctx, s.order, 0, id).Err()
}
