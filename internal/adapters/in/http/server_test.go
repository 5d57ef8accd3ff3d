package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"foodorders/internal/core/application/usecases/commands"
	"foodorders/internal/core/application/usecases/queries"
	"foodorders/internal/core/domain/model/kernel"
	"foodorders/internal/core/domain/model/order"
	"foodorders/internal/core/domain/model/tenant"
	"foodorders/internal/core/ports"
	"foodorders/internal/metrics"
	"foodorders/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memStore backs the HTTP tests with an in-memory database: one mutex stands
// in for row locks, held from GetForUpdate until Commit or Rollback.
type memStore struct {
	mu      sync.Mutex
	orders  map[string]*order.Order
	tenants map[string]*tenant.Tenant
}

func newMemStore() *memStore {
	return &memStore{
		orders:  make(map[string]*order.Order),
		tenants: make(map[string]*tenant.Tenant),
	}
}

type memUoW struct {
	store  *memStore
	locked bool
	staged []*order.Order
	events []order.Event
}

func (u *memUoW) lock() {
	if !u.locked {
		u.store.mu.Lock()
		u.locked = true
	}
}

func (u *memUoW) Begin(_ context.Context) error { return nil }

func (u *memUoW) Commit(_ context.Context) error {
	if !u.locked {
		return errors.New("commit outside transaction")
	}
	for _, aggregate := range u.staged {
		u.events = append(u.events, aggregate.PullEvents()...)
		u.store.orders[aggregate.ID().String()] = aggregate
	}
	u.staged = nil
	u.locked = false
	u.store.mu.Unlock()
	return nil
}

func (u *memUoW) Rollback(_ context.Context) error {
	if u.locked {
		u.staged = nil
		u.locked = false
		u.store.mu.Unlock()
	}
	return nil
}

func (u *memUoW) OrderRepository() ports.OrderRepository   { return memOrderRepo{u} }
func (u *memUoW) TenantRepository() ports.TenantRepository { return memTenantRepo{u} }
func (u *memUoW) PendingEvents() []order.Event             { return u.events }

type memOrderRepo struct{ uow *memUoW }

func (r memOrderRepo) Add(_ context.Context, o *order.Order) error {
	r.uow.lock()
	r.uow.staged = append(r.uow.staged, o)
	return nil
}

func (r memOrderRepo) Update(_ context.Context, o *order.Order) error {
	r.uow.lock()
	r.uow.staged = append(r.uow.staged, o)
	return nil
}

func (r memOrderRepo) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return r.GetForUpdate(ctx, id)
}

func (r memOrderRepo) GetForUpdate(_ context.Context, id kernel.UUID) (*order.Order, error) {
	r.uow.lock()
	stored, ok := r.uow.store.orders[id.String()]
	if !ok {
		return nil, errs.NewObjectNotFoundError("order", id.String())
	}
	return order.RestoreOrder(
		stored.ID(), stored.TenantID(), stored.RequesterID(),
		stored.Items(), stored.TotalCents(), stored.Status(), stored.PaymentStatus(),
	)
}

func (r memOrderRepo) CountActiveByTenant(_ context.Context, tenantID kernel.UUID) (int, error) {
	r.uow.lock()
	count := 0
	for _, o := range r.uow.store.orders {
		if o.TenantID().IsEqual(tenantID) && o.IsActive() {
			count++
		}
	}
	return count, nil
}

func (r memOrderRepo) GetAllActiveByTenant(_ context.Context, tenantID kernel.UUID) ([]*order.Order, error) {
	r.uow.lock()
	var active []*order.Order
	for _, o := range r.uow.store.orders {
		if o.TenantID().IsEqual(tenantID) && o.IsActive() {
			active = append(active, o)
		}
	}
	return active, nil
}

type memTenantRepo struct{ uow *memUoW }

func (r memTenantRepo) Add(_ context.Context, t *tenant.Tenant) error {
	r.uow.lock()
	r.uow.store.tenants[t.ID().String()] = t
	return nil
}

func (r memTenantRepo) Update(ctx context.Context, t *tenant.Tenant) error {
	return r.Add(ctx, t)
}

func (r memTenantRepo) Get(ctx context.Context, id kernel.UUID) (*tenant.Tenant, error) {
	return r.GetForUpdate(ctx, id)
}

func (r memTenantRepo) GetForUpdate(_ context.Context, id kernel.UUID) (*tenant.Tenant, error) {
	r.uow.lock()
	stored, ok := r.uow.store.tenants[id.String()]
	if !ok {
		return nil, errs.NewObjectNotFoundError("tenant", id.String())
	}
	return stored, nil
}

type memUoWFactory struct{ store *memStore }

func (f memUoWFactory) Create() commands.UoW { return &memUoW{store: f.store} }

type memOrderUoWFactory struct{ store *memStore }

func (f memOrderUoWFactory) Create() commands.OrderUoW { return &memUoW{store: f.store} }

type nopPublisher struct{}

func (nopPublisher) Publish(_ order.Event) {}

type serverFixture struct {
	echo   *echo.Echo
	store  *memStore
	tenant *tenant.Tenant
	userID kernel.UUID
}

func newServerFixture(t *testing.T, plan tenant.Plan) *serverFixture {
	t.Helper()
	store := newMemStore()
	owner, err := tenant.NewTenant(kernel.NewUUID(), "Thai Corner", kernel.NewUUID(), plan)
	require.NoError(t, err)
	store.tenants[owner.ID().String()] = owner

	server := NewServer(
		commands.NewCreateOrderCommandHandler(memUoWFactory{store}, nopPublisher{}),
		commands.NewTransitionOrderCommandHandler(memOrderUoWFactory{store}, nopPublisher{}),
		commands.NewRecordPaymentCommandHandler(memOrderUoWFactory{store}),
		queries.GetActiveOrdersQueryHandler{},
		metrics.NewRegistry(),
	)

	e := echo.New()
	server.RegisterRoutes(e)

	return &serverFixture{
		echo:   e,
		store:  store,
		tenant: owner,
		userID: kernel.NewUUID(),
	}
}

func (f *serverFixture) request(t *testing.T, method, path, role, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if role != "" {
		req.Header.Set(HeaderUserID, f.userID.String())
		req.Header.Set(HeaderUserRole, role)
	}

	rec := httptest.NewRecorder()
	f.echo.ServeHTTP(rec, req)
	return rec
}

func (f *serverFixture) createOrder(t *testing.T, role string) OrderResponse {
	t.Helper()
	body := `{"items":[{"product_name":"Pad Thai","quantity":2,"unit_price_cents":1200},{"product_name":"Cola","quantity":1,"unit_price_cents":400}]}`
	rec := f.request(t, http.MethodPost, "/api/v1/tenants/"+f.tenant.ID().String()+"/orders", role, body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp OrderResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestCreateOrder_Success(t *testing.T) {
	f := newServerFixture(t, tenant.PlanBasic)

	resp := f.createOrder(t, "manager")

	assert.Equal(t, f.tenant.ID().String(), resp.TenantID)
	assert.Equal(t, "CREATED", resp.Status)
	assert.Equal(t, "PENDING", resp.PaymentStatus)
	assert.InDelta(t, 28.0, resp.Total, 0.001)
}

func TestCreateOrder_KitchenRole_Forbidden(t *testing.T) {
	f := newServerFixture(t, tenant.PlanBasic)

	body := `{"items":[{"product_name":"Pad Thai","quantity":1,"unit_price_cents":1200}]}`
	rec := f.request(t, http.MethodPost, "/api/v1/tenants/"+f.tenant.ID().String()+"/orders", "kitchen", body)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestCreateOrder_MissingClaims_BadRequest(t *testing.T) {
	f := newServerFixture(t, tenant.PlanBasic)

	body := `{"items":[{"product_name":"Pad Thai","quantity":1,"unit_price_cents":1200}]}`
	rec := f.request(t, http.MethodPost, "/api/v1/tenants/"+f.tenant.ID().String()+"/orders", "", body)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateOrder_EmptyItems_BadRequest(t *testing.T) {
	f := newServerFixture(t, tenant.PlanBasic)

	rec := f.request(t, http.MethodPost, "/api/v1/tenants/"+f.tenant.ID().String()+"/orders", "owner", `{"items":[]}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateOrder_UnknownTenant_NotFound(t *testing.T) {
	f := newServerFixture(t, tenant.PlanBasic)

	body := `{"items":[{"product_name":"Pad Thai","quantity":1,"unit_price_cents":1200}]}`
	rec := f.request(t, http.MethodPost, "/api/v1/tenants/"+kernel.NewUUID().String()+"/orders", "owner", body)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateOrder_PlanLimitExceeded_PaymentRequired(t *testing.T) {
	f := newServerFixture(t, tenant.PlanFree)

	for range 10 {
		f.createOrder(t, "owner")
	}
	body := `{"items":[{"product_name":"Pad Thai","quantity":1,"unit_price_cents":1200}]}`
	rec := f.request(t, http.MethodPost, "/api/v1/tenants/"+f.tenant.ID().String()+"/orders", "owner", body)

	assert.Equal(t, http.StatusPaymentRequired, rec.Code)
}

func TestTransitionOrder_PayThenAccept_Success(t *testing.T) {
	f := newServerFixture(t, tenant.PlanBasic)
	created := f.createOrder(t, "manager")

	rec := f.request(t, http.MethodPost, "/api/v1/orders/"+created.ID+"/pay", "manager", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var paid OrderResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &paid))
	assert.Equal(t, "PAID", paid.Status)

	rec = f.request(t, http.MethodPost, "/api/v1/orders/"+created.ID+"/accept", "kitchen", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var accepted OrderResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &accepted))
	assert.Equal(t, "ACCEPTED", accepted.Status)
}

func TestTransitionOrder_SkippingSteps_Conflict(t *testing.T) {
	f := newServerFixture(t, tenant.PlanBasic)
	created := f.createOrder(t, "manager")

	// CREATED order cannot be accepted before payment
	rec := f.request(t, http.MethodPost, "/api/v1/orders/"+created.ID+"/accept", "kitchen", "")

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestTransitionOrder_WrongRole_Forbidden(t *testing.T) {
	f := newServerFixture(t, tenant.PlanBasic)
	created := f.createOrder(t, "manager")

	rec := f.request(t, http.MethodPost, "/api/v1/orders/"+created.ID+"/pay", "rider", "")

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestTransitionOrder_UnknownOrder_NotFound(t *testing.T) {
	f := newServerFixture(t, tenant.PlanBasic)

	rec := f.request(t, http.MethodPost, "/api/v1/orders/"+kernel.NewUUID().String()+"/pay", "owner", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTransitionOrder_InvalidOrderID_BadRequest(t *testing.T) {
	f := newServerFixture(t, tenant.PlanBasic)

	rec := f.request(t, http.MethodPost, "/api/v1/orders/not-a-uuid/pay", "owner", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTransitionOrder_CancelByManager_Success(t *testing.T) {
	f := newServerFixture(t, tenant.PlanBasic)
	created := f.createOrder(t, "manager")

	rec := f.request(t, http.MethodPost, "/api/v1/orders/"+created.ID+"/cancel", "manager", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var cancelled OrderResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cancelled))
	assert.Equal(t, "CANCELLED", cancelled.Status)
}

func TestRecordPayment_Success(t *testing.T) {
	f := newServerFixture(t, tenant.PlanBasic)
	created := f.createOrder(t, "manager")

	rec := f.request(t, http.MethodPost, "/api/v1/orders/"+created.ID+"/payment", "owner", `{"status":"AUTHORIZED"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp OrderResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "AUTHORIZED", resp.PaymentStatus)
	assert.Equal(t, "CREATED", resp.Status)
}

func TestRecordPayment_InvalidStatus_BadRequest(t *testing.T) {
	f := newServerFixture(t, tenant.PlanBasic)
	created := f.createOrder(t, "manager")

	rec := f.request(t, http.MethodPost, "/api/v1/orders/"+created.ID+"/payment", "owner", `{"status":"SETTLED"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRecordPayment_KitchenRole_Forbidden(t *testing.T) {
	f := newServerFixture(t, tenant.PlanBasic)
	created := f.createOrder(t, "manager")

	rec := f.request(t, http.MethodPost, "/api/v1/orders/"+created.ID+"/payment", "kitchen", `{"status":"PAID"}`)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}
