package repository

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/lab-desk/internal/model"
)

func TestDocStoreListNewestFirst(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	store := NewCatalogTypeStore(rdb)

	mock.ExpectLRange("docs:catalog-types:order", 0, -1).SetVal([]string{"b", "gone", "a"})
	mock.ExpectHMGet("docs:catalog-types", "b", "gone", "a").SetVal([]interface{}{
		`{"_id":"b","test_name":"Urea","is_active":true}`,
		nil,
		`{"_id":"a","test_name":"Glucosa","is_active":false}`,
	})

	got, err := store.List(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "b", got[0].ID)
	assert.Equal(t, "Glucosa", got[1].TestName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocStoreListEmpty(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	mock.ExpectLRange("docs:order-events:order", 0, -1).SetVal([]string{})

	got, err := NewOrderEventStore(rdb).List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestDocStoreCreateAssignsID(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	store := NewCatalogTypeStore(rdb).WithIDs(func() string { return "6650f0c1" })

	want := model.CatalogType{ID: "6650f0c1", TestName: "Hemoglobina", IsActive: true}
	data, err := json.Marshal(want)
	require.NoError(t, err)
	mock.ExpectTxPipeline()
	mock.ExpectHSet("docs:catalog-types", "6650f0c1", string(data)).SetVal(1)
	mock.ExpectLPush("docs:catalog-types:order", "6650f0c1").SetVal(1)
	mock.ExpectTxPipelineExec()

	got, err := store.Create(context.Background(), model.CatalogType{TestName: "Hemoglobina", IsActive: true})
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocStoreCreateUsesGeneratedIDForOrder(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	store := NewOrderEventStore(rdb).WithIDs(func() string { return "ev-7" })

	// the hash field and the order entry carry the same generated id
	mock.ExpectTxPipeline()
	mock.Regexp().ExpectHSet("docs:order-events", "ev-7", `"_id":"ev-7"`).SetVal(1)
	mock.ExpectLPush("docs:order-events:order", "ev-7").SetVal(1)
	mock.ExpectTxPipelineExec()

	got, err := store.Create(context.Background(), model.OrderEvent{LabOrderID: 3, EventType: "RECEIVED"})
	require.NoError(t, err)
	assert.Equal(t, "ev-7", got.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocStoreCreateAbortedTransaction(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	store := NewCatalogTypeStore(rdb).WithIDs(func() string { return "x1" })

	mock.ExpectTxPipeline()
	mock.Regexp().ExpectHSet("docs:catalog-types", "x1", `.+`).SetVal(1)
	mock.ExpectLPush("docs:catalog-types:order", "x1").SetVal(1)
	mock.ExpectTxPipelineExec().SetErr(errors.New("EXECABORT"))

	_, err := store.Create(context.Background(), model.CatalogType{TestName: "Urea"})
	assert.EqualError(t, err, "EXECABORT")
}

func TestDocStoreGetMissing(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	mock.ExpectHGet("docs:order-events", "nope").RedisNil()

	_, err := NewOrderEventStore(rdb).Get(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDocStoreDelete(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	store := NewOrderEventStore(rdb)

	mock.ExpectHDel("docs:order-events", "abc").SetVal(1)
	mock.ExpectLRem("docs:order-events:order", 0, "abc").SetVal(1)
	require.NoError(t, store.Delete(context.Background(), "abc"))

	mock.ExpectHDel("docs:order-events", "abc").SetVal(0)
	assert.ErrorIs(t, store.Delete(context.Background(), "abc"), ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
