package screen

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/lab-desk/internal/labapi"
)

// fakeAPI routes "METHOD /path" to canned handlers and counts hits.
type fakeAPI struct {
	mu     sync.Mutex
	routes map[string]http.HandlerFunc
	hits   map[string]int
	bodies map[string]string
}

func newFakeAPI(t *testing.T) (*fakeAPI, *labapi.Client) {
	t.Helper()
	api := &fakeAPI{routes: map[string]http.HandlerFunc{}, hits: map[string]int{}, bodies: map[string]string{}}
	server := httptest.NewServer(api)
	t.Cleanup(server.Close)
	return api, labapi.New(server.URL, 5*time.Second, nil)
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	key := r.Method + " " + r.URL.Path
	body, _ := io.ReadAll(r.Body)
	f.mu.Lock()
	f.hits[key]++
	f.bodies[key] = string(body)
	h, ok := f.routes[key]
	f.mu.Unlock()
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"detail":"Not found."}`)
		return
	}
	h(w, r)
}

func (f *fakeAPI) on(method, path string, h http.HandlerFunc) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.routes[method+" "+path] = h
}

func (f *fakeAPI) reply(method, path string, status int, body string) {
	f.on(method, path, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	})
}

func (f *fakeAPI) count(method, path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hits[method+" "+path]
}

func (f *fakeAPI) body(method, path string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.bodies[method+" "+path]
}

const (
	ordersJSON = `{"count":2,"next":null,"previous":null,"results":[
		{"id":12,"test_id":1,"patient_name":"Ana","status":"CREATED"},
		{"id":13,"test_id":2,"patient_name":"Luis","status":"COMPLETED","result_summary":"Normal"}]}`
	catalogJSON = `[{"_id":"c1","test_name":"Glucosa","category":"Química","is_active":true}]`
	eventsJSON  = `[{"_id":"abc","lab_order_id":12,"event_type":"CREATED","source":"MOBILE"},
		{"id":"def","lab_order_id":99,"event_type":"PROCESSING","source":"MOBILE","note":"lost order"}]`
)

func ids[T interface{ Key() labapi.ID }](items []T) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Key().String())
	}
	return out
}

func TestEmptyOrdersEnvelope(t *testing.T) {
	api, client := newFakeAPI(t)
	api.reply(http.MethodGet, "/api/Orders/", 200, `{"count":0,"next":null,"previous":null,"results":[]}`)

	s := NewPublicOrders(client)
	require.NoError(t, s.Load(context.Background()))
	assert.Empty(t, s.Items())
	assert.Equal(t, Ready, s.Surface().State())
	assert.Empty(t, s.Surface().Message())
}

func TestRefreshKeepsServerOrder(t *testing.T) {
	api, client := newFakeAPI(t)
	api.reply(http.MethodGet, "/api/Orders/", 200, ordersJSON)

	s := NewPublicOrders(client)
	require.NoError(t, s.Load(context.Background()))
	assert.Equal(t, []string{"12", "13"}, ids(s.Items()))

	_, rows := s.Rows()
	assert.Equal(t, []string{"12", "Ana", "CREATED", noResults}, rows[0])
	assert.Equal(t, "Normal", rows[1][3])
}

func TestPublicLoadFailure(t *testing.T) {
	api, client := newFakeAPI(t)
	api.reply(http.MethodGet, "/api/Reservations/", 500, `{"error":"boom"}`)

	s := NewPublicReservations(client)
	require.NoError(t, s.Load(context.Background()))
	assert.Equal(t, Failed, s.Surface().State())
	assert.Equal(t, msgPublicLoad, s.Surface().Message())
	assert.Equal(t, labapi.KindServer, s.Surface().Kind())
}

func TestCatalogCreateTrimsAndPrepends(t *testing.T) {
	api, client := newFakeAPI(t)
	api.reply(http.MethodGet, "/api/catalog-types/", 200, catalogJSON)
	api.reply(http.MethodPost, "/api/catalog-types/", 201, `{"_id":"c2","test_name":"Hemoglobina","is_active":true}`)

	s := NewCatalogTypes(client)
	require.NoError(t, s.Load(context.Background()))
	require.NoError(t, s.Set("name", "  Hemoglobina  "))
	require.NoError(t, s.Submit(context.Background()))

	assert.Equal(t, Ready, s.Surface().State())
	assert.JSONEq(t, `{"test_name":"Hemoglobina","is_active":true}`, api.body(http.MethodPost, "/api/catalog-types/"))
	items := s.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "Hemoglobina", items[0].TestName)
	assert.Equal(t, 1, api.count(http.MethodGet, "/api/catalog-types/"), "create patches locally")
	assert.Empty(t, s.Form()[0].Value)
}

func TestEmptyRequiredFieldNeverCallsServer(t *testing.T) {
	api, client := newFakeAPI(t)
	api.reply(http.MethodPost, "/api/catalog-types/", 201, `{}`)

	s := NewCatalogTypes(client)
	require.NoError(t, s.Set("name", "   "))
	require.NoError(t, s.Submit(context.Background()))

	assert.Zero(t, api.count(http.MethodPost, "/api/catalog-types/"))
	assert.Equal(t, Failed, s.Surface().State())
	assert.Equal(t, msgCatalogName, s.Surface().Message())
	assert.Equal(t, labapi.KindValidation, s.Surface().Kind())
}

func TestCatalogDeleteFailureKeepsList(t *testing.T) {
	api, client := newFakeAPI(t)
	api.reply(http.MethodGet, "/api/catalog-types/", 200, catalogJSON)
	api.reply(http.MethodDelete, "/api/catalog-types/c1/", 500, `{"error":"x"}`)

	s := NewCatalogTypes(client)
	require.NoError(t, s.Load(context.Background()))
	require.NoError(t, s.Delete(context.Background(), "c1"))
	assert.Equal(t, msgCatalogDelete, s.Surface().Message())
	assert.Equal(t, []string{"c1"}, ids(s.Items()))
}

func loadedEvents(t *testing.T) (*fakeAPI, *OrderEvents) {
	t.Helper()
	api, client := newFakeAPI(t)
	api.reply(http.MethodGet, "/api/order-events/", 200, eventsJSON)
	api.reply(http.MethodGet, "/api/Orders/", 200, ordersJSON)
	api.reply(http.MethodGet, "/api/catalog-types/", 200, catalogJSON)

	s := NewOrderEvents(client)
	require.NoError(t, s.Load(context.Background()))
	require.Equal(t, Ready, s.Surface().State())
	return api, s
}

func TestOrderEventsCombinedLoad(t *testing.T) {
	_, s := loadedEvents(t)
	assert.Equal(t, []string{"abc", "def"}, ids(s.Items()))
	assert.Len(t, s.Orders(), 2)
	assert.Len(t, s.CatalogTypes(), 1)

	_, rows := s.Rows()
	assert.Equal(t, "Patient: Ana", rows[0][1])
	assert.Equal(t, "Order ID: 99", rows[1][1])
	assert.Equal(t, "-", rows[0][4])
}

func TestCombinedLoadIsAllOrNothing(t *testing.T) {
	api, s := loadedEvents(t)

	api.reply(http.MethodGet, "/api/order-events/", 200, `[{"_id":"zzz","lab_order_id":13,"event_type":"COMPLETED","source":"MOBILE"}]`)
	api.reply(http.MethodGet, "/api/Orders/", 503, `{"error":"down"}`)
	require.NoError(t, s.Load(context.Background()))

	assert.Equal(t, Failed, s.Surface().State())
	assert.Equal(t, msgEventsLoad, s.Surface().Message())
	assert.Equal(t, []string{"abc", "def"}, ids(s.Items()))
	assert.Equal(t, []string{"12", "13"}, ids(s.Orders()))
}

func TestCombinedLoadFailureOnFirstMount(t *testing.T) {
	api, client := newFakeAPI(t)
	api.reply(http.MethodGet, "/api/order-events/", 200, eventsJSON)
	api.reply(http.MethodGet, "/api/Orders/", 500, `{}`)
	api.reply(http.MethodGet, "/api/catalog-types/", 200, catalogJSON)

	s := NewOrderEvents(client)
	require.NoError(t, s.Load(context.Background()))
	assert.Equal(t, Failed, s.Surface().State())
	assert.Empty(t, s.Items())
	assert.Empty(t, s.Orders())
}

func TestDeleteEventByUnderscoreID(t *testing.T) {
	api, s := loadedEvents(t)
	api.reply(http.MethodDelete, "/api/order-events/abc/", 204, ``)

	require.NoError(t, s.Delete(context.Background(), "abc"))
	assert.Equal(t, Ready, s.Surface().State())
	assert.Equal(t, []string{"def"}, ids(s.Items()))
	assert.Equal(t, 1, api.count(http.MethodGet, "/api/order-events/"), "delete patches locally")
}

func TestCreateEventPayloadAndSeed(t *testing.T) {
	api, s := loadedEvents(t)
	api.reply(http.MethodPost, "/api/order-events/", 201,
		`{"_id":"new","lab_order_id":12,"event_type":"RESULT_UPDATED","source":"MOBILE","note":"ok"}`)

	assert.Equal(t, "12", s.Form()[0].Value, "first order is preselected")
	require.NoError(t, s.Set("event_type", "result_updated"))
	require.NoError(t, s.Set("note", "  ok  "))
	require.NoError(t, s.Submit(context.Background()))

	assert.JSONEq(t, `{"lab_order_id":12,"event_type":"RESULT_UPDATED","source":"MOBILE","note":"ok"}`,
		api.body(http.MethodPost, "/api/order-events/"))
	assert.Equal(t, []string{"new", "abc", "def"}, ids(s.Items()))
	assert.Empty(t, s.Form()[2].Value)
}

func TestCreateEventRejectsUnknownOrder(t *testing.T) {
	_, s := loadedEvents(t)
	assert.Error(t, s.Set("order", "404"))
	assert.Error(t, s.Set("event_type", "EXPLODED"))
	assert.Error(t, s.Set("colour", "red"))
}

func TestCreateEventWithoutOrders(t *testing.T) {
	api, client := newFakeAPI(t)
	api.reply(http.MethodGet, "/api/order-events/", 200, `[]`)
	api.reply(http.MethodGet, "/api/Orders/", 200, `[]`)
	api.reply(http.MethodGet, "/api/catalog-types/", 200, `[]`)

	s := NewOrderEvents(client)
	require.NoError(t, s.Load(context.Background()))
	require.NoError(t, s.Submit(context.Background()))
	assert.Equal(t, msgEventsOrder, s.Surface().Message())
	assert.Zero(t, api.count(http.MethodPost, "/api/order-events/"))
}

func TestAdminTestsReloadAfterWrite(t *testing.T) {
	api, client := newFakeAPI(t)
	api.reply(http.MethodGet, "/api/Tests/", 200,
		`{"count":1,"next":null,"previous":null,"results":[{"id":1,"test_name":"Hemograma","sample_type":"SANGRE","price":"12.50","is_available":1}]}`)
	api.reply(http.MethodPost, "/api/Tests/", 201, `{"id":2,"test_name":"Glucosa","sample_type":"SANGRE","price":"0.00","is_available":1}`)
	api.reply(http.MethodDelete, "/api/Tests/1/", 204, ``)

	s := NewAdminTests(client)
	require.NoError(t, s.Load(context.Background()))
	require.NoError(t, s.Set("test_name", " Glucosa "))
	require.NoError(t, s.Set("sample_type", "SANGRE"))
	require.NoError(t, s.Submit(context.Background()))
	assert.JSONEq(t, `{"test_name":"Glucosa","sample_type":"SANGRE","is_available":1}`, api.body(http.MethodPost, "/api/Tests/"))
	assert.Equal(t, 2, api.count(http.MethodGet, "/api/Tests/"))

	require.NoError(t, s.Delete(context.Background(), "1"))
	assert.Equal(t, 3, api.count(http.MethodGet, "/api/Tests/"))
	assert.Equal(t, Ready, s.Surface().State())
}

func TestAdminTestsEdit(t *testing.T) {
	api, client := newFakeAPI(t)
	api.reply(http.MethodGet, "/api/Tests/", 200, `[{"id":1,"test_name":"Hemograma","sample_type":"SANGRE","price":12.5,"is_available":1}]`)
	api.reply(http.MethodPut, "/api/Tests/1/", 200, `{"id":1}`)

	s := NewAdminTests(client)
	require.NoError(t, s.Load(context.Background()))
	assert.Error(t, s.Edit("7"))
	require.NoError(t, s.Edit("1"))
	assert.Equal(t, "12.5", s.Form()[2].Value)
	require.NoError(t, s.Set("is_available", "0"))
	assert.Error(t, s.Set("is_available", "many"))
	require.NoError(t, s.Submit(context.Background()))

	assert.JSONEq(t, `{"test_name":"Hemograma","sample_type":"SANGRE","price":"12.5","is_available":0}`, api.body(http.MethodPut, "/api/Tests/1/"))
	_, editing := s.Editing()
	assert.False(t, editing)
}

func TestAdminShowsDeleteConflict(t *testing.T) {
	api, client := newFakeAPI(t)
	api.reply(http.MethodGet, "/api/Shows/", 200, `[{"id":4,"movie_title":"Alien"}]`)
	api.reply(http.MethodDelete, "/api/Shows/4/", 409, `{"error":"show has reservations"}`)

	s := NewAdminShows(client)
	require.NoError(t, s.Load(context.Background()))
	require.NoError(t, s.Delete(context.Background(), "4"))
	assert.Equal(t, Failed, s.Surface().State())
	assert.Equal(t, msgShowsDelete, s.Surface().Message())
	assert.Equal(t, labapi.KindValidation, s.Surface().Kind())
	assert.Equal(t, []string{"4"}, ids(s.Items()))

	// The next operation clears the surface.
	require.NoError(t, s.Load(context.Background()))
	assert.Empty(t, s.Surface().Message())
}

func TestAdminShowsValidation(t *testing.T) {
	api, client := newFakeAPI(t)
	s := NewAdminShows(client)
	require.NoError(t, s.Submit(context.Background()))
	assert.Equal(t, msgShowsTitle, s.Surface().Message())
	assert.Zero(t, api.count(http.MethodPost, "/api/Shows/"))
}

func TestAdminOrdersTestsFailureDoesNotBlock(t *testing.T) {
	api, client := newFakeAPI(t)
	api.reply(http.MethodGet, "/api/Orders/", 200, ordersJSON)
	api.reply(http.MethodGet, "/api/Tests/", 500, `{}`)

	s := NewAdminOrders(client)
	require.NoError(t, s.Load(context.Background()))
	assert.Equal(t, Ready, s.Surface().State())
	assert.Len(t, s.Items(), 2)
	assert.Empty(t, s.Tests())

	_, rows := s.Rows()
	assert.Equal(t, "Test #1", rows[0][1])

	require.NoError(t, s.Set("patient_name", "Eva"))
	require.NoError(t, s.Submit(context.Background()))
	assert.Equal(t, msgOrdersTest, s.Surface().Message())
}

func TestAdminOrdersLoadFailure(t *testing.T) {
	api, client := newFakeAPI(t)
	api.reply(http.MethodGet, "/api/Orders/", 401, `{"error":"unauthorized"}`)
	api.reply(http.MethodGet, "/api/Tests/", 200, `[]`)

	s := NewAdminOrders(client)
	require.NoError(t, s.Load(context.Background()))
	assert.Equal(t, msgOrdersLoad, s.Surface().Message())
	assert.Equal(t, labapi.KindUnauthorized, s.Surface().Kind())
}

func TestAdminOrdersCreateAndEdit(t *testing.T) {
	api, client := newFakeAPI(t)
	api.reply(http.MethodGet, "/api/Orders/", 200, ordersJSON)
	api.reply(http.MethodGet, "/api/Tests/", 200, `[{"id":1,"test_name":"Hemograma"},{"id":2,"test_name":"Glucosa"}]`)
	api.reply(http.MethodPost, "/api/Orders/", 201, `{"id":14}`)
	api.reply(http.MethodPut, "/api/Orders/13/", 200, `{"id":13}`)

	s := NewAdminOrders(client)
	require.NoError(t, s.Load(context.Background()))
	_, rows := s.Rows()
	assert.Equal(t, "Hemograma", rows[0][1])
	assert.Equal(t, "1", s.Form()[0].Value)

	require.NoError(t, s.Set("patient_name", "  Eva "))
	require.NoError(t, s.Submit(context.Background()))
	assert.JSONEq(t, `{"test_id":1,"patient_name":"Eva","status":"CREATED","result_summary":""}`, api.body(http.MethodPost, "/api/Orders/"))

	require.NoError(t, s.Edit("13"))
	require.NoError(t, s.Set("status", "cancelled"))
	assert.Error(t, s.Set("status", "LOST"))
	require.NoError(t, s.Submit(context.Background()))
	assert.JSONEq(t, `{"test_id":2,"patient_name":"Luis","status":"CANCELLED","result_summary":"Normal"}`, api.body(http.MethodPut, "/api/Orders/13/"))
	assert.Equal(t, 3, api.count(http.MethodGet, "/api/Orders/"))
	assert.Equal(t, "1", s.Form()[0].Value, "reset re-seeds the test selector")
}

func loadedReservations(t *testing.T) (*fakeAPI, *AdminReservations) {
	t.Helper()
	api, client := newFakeAPI(t)
	api.reply(http.MethodGet, "/api/Shows/", 200, `[{"id":4,"movie_title":"Alien"},{"id":5,"movie_title":"Heat"}]`)
	api.reply(http.MethodGet, "/api/Reservations/", 200,
		`{"count":2,"next":null,"previous":null,"results":[
			{"id":1,"show":4,"show_title":"Alien","customer_name":"Ana","seats":2,"status":"RESERVED"},
			{"id":2,"show":5,"customer_name":"Luis","seats":1,"status":"CONFIRMED"}]}`)
	s := NewAdminReservations(client)
	require.NoError(t, s.Load(context.Background()))
	return api, s
}

func TestAdminReservationsLoadAndRows(t *testing.T) {
	_, s := loadedReservations(t)
	assert.Equal(t, Ready, s.Surface().State())
	assert.Len(t, s.Shows(), 2)
	_, rows := s.Rows()
	assert.Equal(t, []string{"1", "Alien", "Ana", "2", "RESERVED"}, rows[0])
	assert.Equal(t, "Heat", rows[1][1])
	assert.Equal(t, "4", s.Form()[0].Value)
}

func TestAdminReservationsShowColumnFallbacks(t *testing.T) {
	api, client := newFakeAPI(t)
	api.reply(http.MethodGet, "/api/Shows/", 200, `[{"id":4,"movie_title":"Alien"}]`)
	api.reply(http.MethodGet, "/api/Reservations/", 200, `[
		{"id":1,"show":4,"show_title":"Alien (VOSE)","customer_name":"Ana","seats":2,"status":"RESERVED"},
		{"id":2,"show":4,"customer_name":"Luis","seats":1,"status":"RESERVED"},
		{"id":3,"show":9,"customer_name":"Eva","seats":3,"status":"CANCELLED"}]`)
	s := NewAdminReservations(client)
	require.NoError(t, s.Load(context.Background()))

	_, rows := s.Rows()
	require.Len(t, rows, 3)
	assert.Equal(t, "Alien (VOSE)", rows[0][1], "server title wins")
	assert.Equal(t, "Alien", rows[1][1])
	assert.Equal(t, "9", rows[2][1])
}

func TestAdminReservationsSeatsMustBePositive(t *testing.T) {
	api, s := loadedReservations(t)
	require.NoError(t, s.Set("customer_name", "Eva"))
	require.NoError(t, s.Set("seats", "0"))
	require.NoError(t, s.Submit(context.Background()))

	assert.Equal(t, msgReservSeats, s.Surface().Message())
	assert.Zero(t, api.count(http.MethodPost, "/api/Reservations/"))
}

func TestAdminReservationsCreate(t *testing.T) {
	api, s := loadedReservations(t)
	api.reply(http.MethodPost, "/api/Reservations/", 201, `{"id":3}`)
	require.NoError(t, s.Set("show", "5"))
	require.NoError(t, s.Set("customer_name", "Eva"))
	require.NoError(t, s.Set("seats", "3"))
	require.NoError(t, s.Submit(context.Background()))

	var sent map[string]any
	require.NoError(t, json.Unmarshal([]byte(api.body(http.MethodPost, "/api/Reservations/")), &sent))
	assert.Equal(t, map[string]any{"show": 5.0, "customer_name": "Eva", "seats": 3.0, "status": "RESERVED"}, sent)
	assert.Equal(t, 2, api.count(http.MethodGet, "/api/Shows/"))
}

func TestAdminReservationsJointLoadFailure(t *testing.T) {
	api, client := newFakeAPI(t)
	api.reply(http.MethodGet, "/api/Shows/", 500, `{}`)
	api.reply(http.MethodGet, "/api/Reservations/", 200, `[{"id":1,"show":4,"customer_name":"Ana","seats":2,"status":"RESERVED"}]`)

	s := NewAdminReservations(client)
	require.NoError(t, s.Load(context.Background()))
	assert.Equal(t, msgReservLoad, s.Surface().Message())
	assert.Empty(t, s.Items())
}

func TestBusyScreenRejectsSubmit(t *testing.T) {
	api, client := newFakeAPI(t)
	release := make(chan struct{})
	api.on(http.MethodGet, "/api/Shows/", func(w http.ResponseWriter, r *http.Request) {
		<-release
		_, _ = io.WriteString(w, `[]`)
	})

	s := NewAdminShows(client)
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = s.Load(context.Background())
	}()
	require.Eventually(t, s.Surface().Busy, 2*time.Second, 5*time.Millisecond)

	assert.ErrorIs(t, s.Submit(context.Background()), ErrBusy)
	assert.ErrorIs(t, s.Delete(context.Background(), "1"), ErrBusy)
	close(release)
	<-done
	assert.Equal(t, Ready, s.Surface().State())
}

func TestNavigatorLoginAndLogout(t *testing.T) {
	api, client := newFakeAPI(t)
	api.reply(http.MethodPost, "/api/auth/login/", 200,
		`{"user":{"id":1,"email":"staff@lab.test","role":"STAFF"},"access":{"token":"acc"},"refresh":{"token":"ref"}}`)
	api.reply(http.MethodPost, "/api/auth/logout/", 204, ``)

	nav := NewNavigator(client)
	assert.Equal(t, ViewLogin, nav.Current())
	assert.ErrorIs(t, nav.Push(ViewCatalogTypes), ErrLoginRequired)
	require.NoError(t, nav.Push(ViewPublicOrders))
	v, ok := nav.Back()
	assert.True(t, ok)
	assert.Equal(t, ViewLogin, v)
	_, ok = nav.Back()
	assert.False(t, ok)

	login := NewLogin(client, nav, "staff@lab.test")
	require.NoError(t, login.Submit(context.Background()))
	assert.Equal(t, msgLoginRequired, login.Surface().Message())
	assert.Zero(t, api.count(http.MethodPost, "/api/auth/login/"))

	require.NoError(t, login.Set("password", "secret"))
	require.NoError(t, login.Submit(context.Background()))
	assert.Equal(t, Ready, login.Surface().State())
	assert.Equal(t, ViewMenu, nav.Current())
	assert.True(t, client.Session().LoggedIn())

	require.NoError(t, nav.Push(ViewCatalogTypes))
	require.NoError(t, nav.Logout(context.Background()))
	assert.Equal(t, ViewLogin, nav.Current())
	assert.False(t, client.Session().LoggedIn())
	assert.ErrorIs(t, nav.Push(ViewOrderEvents), ErrLoginRequired)
}

func TestLoginRejected(t *testing.T) {
	api, client := newFakeAPI(t)
	api.reply(http.MethodPost, "/api/auth/login/", 401, `{"error":"invalid credentials"}`)

	nav := NewNavigator(client)
	login := NewLogin(client, nav, "")
	require.NoError(t, login.Set("email", "x@lab.test"))
	require.NoError(t, login.Set("password", "bad"))
	require.NoError(t, login.Submit(context.Background()))

	assert.Equal(t, msgLoginFailed, login.Surface().Message())
	assert.Equal(t, labapi.KindUnauthorized, login.Surface().Kind())
	assert.Equal(t, ViewLogin, nav.Current())
	assert.Equal(t, "********", login.Form()[1].Value, "password kept after failure")
}

func TestMountEveryView(t *testing.T) {
	_, client := newFakeAPI(t)
	nav := NewNavigator(client)
	for _, v := range Views {
		s, err := Mount(v, client, nav, "")
		require.NoError(t, err, v)
		assert.Equal(t, v, s.View())
		assert.Equal(t, Idle, s.Surface().State())
	}
	_, err := Mount("nowhere", client, nav, "")
	assert.ErrorIs(t, err, ErrUnknownView)

	parsed, err := ParseView("admin-orders")
	require.NoError(t, err)
	assert.Equal(t, ViewAdminOrders, parsed)

	menu := NewMenu()
	require.NoError(t, menu.Load(context.Background()))
	_, rows := menu.Rows()
	assert.Equal(t, []string{"catalog-types"}, rows[0])
}
