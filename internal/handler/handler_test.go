package handler_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-redis/redismock/v9"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/lab-desk/internal/config"
	"github.com/iliyamo/lab-desk/internal/handler"
	"github.com/iliyamo/lab-desk/internal/queue"
	"github.com/iliyamo/lab-desk/internal/repository"
	"github.com/iliyamo/lab-desk/internal/router"
	"github.com/iliyamo/lab-desk/internal/utils"
)

const secret = "test-secret"

type fakePublisher struct {
	got chan queue.OrderActivity
}

func (f *fakePublisher) Publish(_ context.Context, ev queue.OrderActivity) error {
	f.got <- ev
	return nil
}

type server struct {
	e     *echo.Echo
	sql   sqlmock.Sqlmock
	redis redismock.ClientMock
	pub   *fakePublisher
}

func newServer(t *testing.T, pageSize int) *server {
	t.Helper()
	db, smock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	rdb, rmock := redismock.NewClientMock()
	pub := &fakePublisher{got: make(chan queue.OrderActivity, 4)}

	e := echo.New()
	e.Validator = handler.NewValidator()
	e.Pre(echomw.AddTrailingSlash())
	router.RegisterRoutes(e)
	router.RegisterAuth(e, handler.NewAuthHandler(config.Config{JWTSecret: secret, AccessTTLMin: 5, RefreshTTLDays: 1},
		repository.NewUserRepo(db), repository.NewSessionRepo(db)), secret)
	router.RegisterLab(e,
		handler.NewTestHandler(repository.NewTestRepo(db), pageSize),
		handler.NewOrderHandler(repository.NewOrderRepo(db), pub, pageSize),
		secret)
	router.RegisterShows(e,
		handler.NewShowHandler(repository.NewShowRepo(db), pageSize),
		handler.NewReservationHandler(repository.NewReservationRepo(db), pageSize),
		secret)
	router.RegisterDocuments(e,
		handler.NewDocumentHandler(
			repository.NewCatalogTypeStore(rdb).WithIDs(func() string { return "ct-1" }),
			repository.NewOrderEventStore(rdb).WithIDs(func() string { return "ev-1" }),
			pub),
		secret)
	return &server{e: e, sql: smock, redis: rmock, pub: pub}
}

func token(t *testing.T, role string) string {
	t.Helper()
	at, err := utils.NewAccessToken(secret, 1, role, 5)
	require.NoError(t, err)
	return at.Token
}

func (s *server) do(method, path, body, bearer string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

var testCols = []string{"id", "test_name", "sample_type", "price", "is_available"}

func TestListTestsPaginates(t *testing.T) {
	s := newServer(t, 2)
	s.sql.ExpectQuery(`SELECT COUNT`).WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(3))
	s.sql.ExpectQuery(`FROM lab_tests ORDER BY id`).WithArgs(2, 0).
		WillReturnRows(sqlmock.NewRows(testCols).AddRow(1, "A", "SANGRE", "1.00", 1).AddRow(2, "B", "ORINA", "2.00", 0))

	rec := s.do(http.MethodGet, "/api/Tests/", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var page struct {
		Count    int               `json:"count"`
		Next     *string           `json:"next"`
		Previous *string           `json:"previous"`
		Results  []json.RawMessage `json:"results"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	assert.Equal(t, 3, page.Count)
	assert.Len(t, page.Results, 2)
	require.NotNil(t, page.Next)
	assert.Equal(t, "http://example.com/api/Tests/?page=2", *page.Next)
	assert.Nil(t, page.Previous)
}

func TestListTestsPageOutOfRange(t *testing.T) {
	s := newServer(t, 2)
	s.sql.ExpectQuery(`SELECT COUNT`).WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(1))
	s.sql.ExpectQuery(`FROM lab_tests`).WithArgs(2, 4).WillReturnRows(sqlmock.NewRows(testCols))

	rec := s.do(http.MethodGet, "/api/Tests/?page=3", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"detail":"Invalid page."}`, rec.Body.String())

	rec = s.do(http.MethodGet, "/api/Tests/?page=zero", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestEmptyOrdersListHasEmptyResults(t *testing.T) {
	s := newServer(t, 50)
	s.sql.ExpectQuery(`SELECT COUNT`).WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(0))
	s.sql.ExpectQuery(`FROM lab_orders`).WillReturnRows(sqlmock.NewRows(
		[]string{"id", "test_id", "patient_name", "status", "result_summary", "created_at"}))

	rec := s.do(http.MethodGet, "/api/Orders", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"count":0,"next":null,"previous":null,"results":[]}`, rec.Body.String())
}

func TestWritesNeedToken(t *testing.T) {
	s := newServer(t, 50)
	body := `{"test_name":"Urea","sample_type":"SANGRE","price":"3.10","is_available":1}`

	assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodPost, "/api/Tests/", body, "").Code)
	assert.Equal(t, http.StatusForbidden, s.do(http.MethodPost, "/api/Tests/", body, token(t, "STAFF")).Code)
	assert.NoError(t, s.sql.ExpectationsWereMet())
}

func TestCreateTestValidation(t *testing.T) {
	s := newServer(t, 50)
	rec := s.do(http.MethodPost, "/api/Tests/", `{"test_name":"   ","sample_type":"SANGRE"}`, token(t, "ADMIN"))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var body struct {
		Fields map[string]string `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body.Fields, "test_name")
	assert.Contains(t, body.Fields, "price")
	assert.Contains(t, body.Fields, "is_available")
	assert.NoError(t, s.sql.ExpectationsWereMet())
}

func TestCreateTest(t *testing.T) {
	s := newServer(t, 50)
	s.sql.ExpectExec(`INSERT INTO lab_tests`).WithArgs("Urea", "SANGRE", "3.10", uint32(1)).
		WillReturnResult(sqlmock.NewResult(5, 1))
	s.sql.ExpectQuery(`FROM lab_tests WHERE id`).WithArgs(uint64(5)).
		WillReturnRows(sqlmock.NewRows(testCols).AddRow(5, "Urea", "SANGRE", "3.10", 1))

	rec := s.do(http.MethodPost, "/api/Tests/", `{"test_name":" Urea ","sample_type":"SANGRE","price":3.10,"is_available":1}`, token(t, "ADMIN"))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.JSONEq(t, `{"id":5,"test_name":"Urea","sample_type":"SANGRE","price":"3.10","is_available":1}`, rec.Body.String())
}

func TestDeleteShowWithReservations(t *testing.T) {
	s := newServer(t, 50)
	s.sql.ExpectBegin()
	s.sql.ExpectQuery(`SELECT 1 FROM shows`).WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))
	s.sql.ExpectQuery(`SELECT COUNT\(\*\) FROM reservations`).WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(2))
	s.sql.ExpectRollback()

	rec := s.do(http.MethodDelete, "/api/Shows/4/", "", token(t, "ADMIN"))
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestReservationSeatsMustBePositive(t *testing.T) {
	s := newServer(t, 50)
	rec := s.do(http.MethodPost, "/api/Reservations/",
		`{"show":1,"customer_name":"Ana","seats":0,"status":"RESERVED"}`, token(t, "ADMIN"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestOrderStatusChangePublishes(t *testing.T) {
	s := newServer(t, 50)
	cols := []string{"id", "test_id", "patient_name", "status", "result_summary", "created_at"}
	now := time.Now().UTC()
	s.sql.ExpectQuery(`FROM lab_orders WHERE id`).WithArgs(uint64(7)).
		WillReturnRows(sqlmock.NewRows(cols).AddRow(7, 1, "Ana", "CREATED", "", now))
	s.sql.ExpectExec(`UPDATE lab_orders`).WillReturnResult(sqlmock.NewResult(0, 1))
	s.sql.ExpectQuery(`FROM lab_orders WHERE id`).WithArgs(uint64(7)).
		WillReturnRows(sqlmock.NewRows(cols).AddRow(7, 1, "Ana", "COMPLETED", "ok", now))

	rec := s.do(http.MethodPut, "/api/Orders/7/",
		`{"test_id":1,"patient_name":"Ana","status":"COMPLETED","result_summary":"ok"}`, token(t, "ADMIN"))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	select {
	case ev := <-s.pub.got:
		assert.Equal(t, uint64(7), ev.OrderID)
		assert.Equal(t, "COMPLETED", ev.EventType)
		assert.Equal(t, queue.SourceAPI, ev.Source)
	case <-time.After(time.Second):
		t.Fatal("no activity published")
	}
}

func TestOrderUpdateMissing(t *testing.T) {
	s := newServer(t, 50)
	s.sql.ExpectQuery(`FROM lab_orders WHERE id`).WithArgs(uint64(9)).WillReturnError(sql.ErrNoRows)

	rec := s.do(http.MethodPut, "/api/Orders/9/",
		`{"test_id":1,"patient_name":"Ana","status":"CREATED"}`, token(t, "ADMIN"))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListCatalogTypesIsBareArray(t *testing.T) {
	s := newServer(t, 50)
	s.redis.ExpectLRange("docs:catalog-types:order", 0, -1).SetVal([]string{"a"})
	s.redis.ExpectHMGet("docs:catalog-types", "a").SetVal([]interface{}{`{"_id":"a","test_name":"Urea","is_active":true}`})

	rec := s.do(http.MethodGet, "/api/catalog-types/", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"_id":"a","test_name":"Urea","is_active":true}]`, rec.Body.String())
}

func TestStaffCreatesOrderEvent(t *testing.T) {
	s := newServer(t, 50)
	s.redis.ExpectTxPipeline()
	s.redis.Regexp().ExpectHSet("docs:order-events", "ev-1", `"lab_order_id":12`).SetVal(1)
	s.redis.ExpectLPush("docs:order-events:order", "ev-1").SetVal(1)
	s.redis.ExpectTxPipelineExec()

	rec := s.do(http.MethodPost, "/api/order-events/",
		`{"lab_order_id":12,"event_type":"processing","source":"MOBILE","note":" tubo 2 "}`, token(t, "STAFF"))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var got map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "ev-1", got["_id"])
	assert.Equal(t, "PROCESSING", got["event_type"])
	assert.Equal(t, "tubo 2", got["note"])

	select {
	case ev := <-s.pub.got:
		assert.Equal(t, uint64(12), ev.OrderID)
		assert.Equal(t, "MOBILE", ev.Source)
	case <-time.After(time.Second):
		t.Fatal("no activity published")
	}
	assert.NoError(t, s.redis.ExpectationsWereMet())
}

func TestDeleteMissingOrderEvent(t *testing.T) {
	s := newServer(t, 50)
	s.redis.ExpectHDel("docs:order-events", "nope").SetVal(0)

	rec := s.do(http.MethodDelete, "/api/order-events/nope/", "", token(t, "ADMIN"))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRefreshRotatesSession(t *testing.T) {
	s := newServer(t, 50)
	now := time.Now().UTC()
	s.sql.ExpectBegin()
	s.sql.ExpectQuery(`FROM refresh_tokens WHERE .+ FOR UPDATE`).
		WithArgs(utils.HashRefreshRaw("old-raw"), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow(1))
	s.sql.ExpectExec(`UPDATE refresh_tokens SET revoked_at`).WillReturnResult(sqlmock.NewResult(0, 1))
	s.sql.ExpectExec(`INSERT INTO refresh_tokens`).WillReturnResult(sqlmock.NewResult(2, 1))
	s.sql.ExpectCommit()
	s.sql.ExpectQuery(`FROM users WHERE id=\?`).WithArgs(uint64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password_hash", "role", "is_active", "created_at", "updated_at"}).
			AddRow(1, "staff@lab.io", "x", "STAFF", true, now, now))

	rec := s.do(http.MethodPost, "/api/auth/refresh/", `{"refresh_token":" old-raw "}`, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var got struct {
		User    struct{ Email string }
		Access  struct{ Token string }
		Refresh struct{ Token string }
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "staff@lab.io", got.User.Email)
	assert.NotEmpty(t, got.Access.Token)
	assert.NotEqual(t, "old-raw", got.Refresh.Token)
	assert.NoError(t, s.sql.ExpectationsWereMet())
}

func TestRefreshWithSpentToken(t *testing.T) {
	s := newServer(t, 50)
	s.sql.ExpectBegin()
	s.sql.ExpectQuery(`FOR UPDATE`).WillReturnRows(sqlmock.NewRows([]string{"user_id"}))
	s.sql.ExpectRollback()

	rec := s.do(http.MethodPost, "/api/auth/refresh/", `{"refresh_token":"spent"}`, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(http.MethodPost, "/api/auth/refresh/", `{}`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.NoError(t, s.sql.ExpectationsWereMet())
}

func TestLogoutSessions(t *testing.T) {
	s := newServer(t, 50)
	s.sql.ExpectExec(`WHERE user_id = \? AND token_hash = \?`).
		WithArgs(sqlmock.AnyArg(), uint64(1), utils.HashRefreshRaw("not-mine"), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))
	rec := s.do(http.MethodPost, "/api/auth/logout/", `{"refresh_token":"not-mine"}`, token(t, "STAFF"))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	s.sql.ExpectExec(`WHERE user_id = \? AND revoked_at IS NULL`).
		WithArgs(sqlmock.AnyArg(), uint64(1)).
		WillReturnResult(sqlmock.NewResult(0, 3))
	rec = s.do(http.MethodPost, "/api/auth/logout/", "", token(t, "STAFF"))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.NoError(t, s.sql.ExpectationsWereMet())
}

func TestMeEchoesClaims(t *testing.T) {
	s := newServer(t, 50)
	rec := s.do(http.MethodGet, "/api/auth/me/", "", token(t, "STAFF"))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"user_id":1,"role":"STAFF"}`, rec.Body.String())
}

func TestHealthWithoutTrailingSlash(t *testing.T) {
	s := newServer(t, 50)
	rec := s.do(http.MethodGet, "/healthz", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}
