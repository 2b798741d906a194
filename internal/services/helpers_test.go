package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"menulink/internal/cart"
	"menulink/internal/database"
	"menulink/internal/logger"
	"menulink/internal/metrics"
	"menulink/internal/order"
	"menulink/internal/redis"
	"menulink/internal/redis/redistest"
	"menulink/internal/repository"
	"menulink/pkg/menuapi"
	"menulink/pkg/whatsapp"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
)

// remoteAPI fakes the menu API. Handlers are keyed by "METHOD /path".
type remoteAPI struct {
	mu       sync.Mutex
	routes   map[string]http.HandlerFunc
	events   []map[string]interface{}
	requests []string
}

func (r *remoteAPI) handle(route string, h http.HandlerFunc) {
	r.mu.Lock()
	r.routes[route] = h
	r.mu.Unlock()
}

func (r *remoteAPI) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	route := req.Method + " " + req.URL.Path
	r.mu.Lock()
	r.requests = append(r.requests, route)
	h, ok := r.routes[route]
	r.mu.Unlock()

	if route == "POST /analytics/event" {
		var ev map[string]interface{}
		json.NewDecoder(req.Body).Decode(&ev)
		r.mu.Lock()
		r.events = append(r.events, ev)
		r.mu.Unlock()
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"no route"}`))
		return
	}
	h(w, req)
}

func (r *remoteAPI) eventTypes() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, fmt.Sprint(e["type"]))
	}
	return out
}

func jsonReply(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}
}

func statusReply(status int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		w.Write([]byte(`{"error":"nope"}`))
	}
}

type harness struct {
	remote   *remoteAPI
	redis    *redistest.Fake
	gateway  *fakeSender
	orders   repository.OrderRepository
	tracker  Tracker
	carts    CartService
	auth     AuthService
	menus    MenuService
	checkout OrderService
	metrics  *metrics.Metrics
}

type fakeSender struct {
	mu    sync.Mutex
	sent  []string
	phone string
	err   error
}

func (f *fakeSender) SendMessage(_ context.Context, phone, message string) (*whatsapp.SendMessageResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	f.phone = phone
	f.sent = append(f.sent, message)
	return &whatsapp.SendMessageResponse{Code: "SUCCESS"}, nil
}

func newHarness(t *testing.T, withGateway bool) *harness {
	t.Helper()

	remote := &remoteAPI{routes: map[string]http.HandlerFunc{}}
	srv := httptest.NewServer(remote)
	t.Cleanup(srv.Close)
	api := menuapi.NewClient(srv.URL)

	db, err := database.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())))
	require.NoError(t, err)

	log := logger.Nop()
	fake := redistest.NewFake()
	rc := redis.New(fake)
	m := metrics.New()

	sessions := cart.NewSessions(func(id string) cart.Repository {
		return cart.NewRedisRepository(rc, id, time.Hour)
	}, log)

	h := &harness{remote: remote, redis: fake, metrics: m}
	h.orders = repository.NewOrderRepository(db)
	h.tracker = NewTracker(api, log, time.Second)
	h.carts = NewCartService(sessions, m)
	h.auth = NewAuthService(api, rc, time.Hour, log)
	h.menus = NewMenuService(api, h.auth, h.tracker, m, "https://menu.example.com/")

	var sender MessageSender
	if withGateway {
		h.gateway = &fakeSender{}
		sender = h.gateway
	}
	h.checkout = NewOrderService(h.orders, h.carts, h.menus, h.auth, NewWhatsAppService(sender, log), h.tracker, order.NewFormatter(""), m, log)
	return h
}

const publicMenuJSON = `{
	"menu": [
		{"id":"c1","name":"Tacos","color":"#f00","isActive":true,"products":[
			{"id":"p1","name":"Taco","price":15,"isActive":true},
			{"id":"p2","name":"Oculto","price":99,"isActive":false},
			{"id":"p3","name":"Especial","price":null,"isActive":true}
		]},
		{"id":"c2","name":"Viejo","isActive":false,"products":[]}
	],
	"business": {"name":"La Casa","phone":"+57 300 123 4567"}
}`
