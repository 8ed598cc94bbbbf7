package commands_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"foodorder/internal/core/application/usecases/commands"
	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/order"
	"foodorder/internal/core/domain/model/partner"
	"foodorder/internal/core/domain/model/task"
	"foodorder/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Domain fixtures shared by the handler tests.

func fixtureAddress(t *testing.T) order.Address {
	t.Helper()
	address, err := order.NewAddress("Asha Rao", "+919876543210", "asha@example.com",
		"14 MG Road", "Bengaluru", "560001")
	require.NoError(t, err)
	return address
}

func fixtureOrder(t *testing.T, method order.PaymentMethod) *order.Order {
	t.Helper()
	price, err := kernel.NewMoney(25000)
	require.NoError(t, err)
	item, err := order.NewItem(kernel.NewUUID(), "Margherita Pizza", 1, price)
	require.NoError(t, err)

	pricing := order.NewPricing(item.LineTotal(), 4000, item.LineTotal().Percent(5))
	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), []order.Item{item},
		fixtureAddress(t), method, pricing, time.Now())
	require.NoError(t, err)
	return o
}

func fixturePartner(t *testing.T, name string) *partner.DeliveryPartner {
	t.Helper()
	p, err := partner.NewDeliveryPartner(kernel.NewUUID(), name, "+919800000001", partner.VehicleBike)
	require.NoError(t, err)
	return p
}

// Mock repositories and collaborators.

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetByProviderOrderRef(ctx context.Context, ref string) (*order.Order, error) {
	args := m.Called(ctx, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

type MockPartnerRepository struct{ mock.Mock }

func (m *MockPartnerRepository) Add(ctx context.Context, p *partner.DeliveryPartner) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPartnerRepository) Update(ctx context.Context, p *partner.DeliveryPartner) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPartnerRepository) Get(ctx context.Context, id kernel.UUID) (*partner.DeliveryPartner, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.DeliveryPartner), args.Error(1)
}

func (m *MockPartnerRepository) GetAllAvailable(ctx context.Context) ([]*partner.DeliveryPartner, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*partner.DeliveryPartner), args.Error(1)
}

func (m *MockPartnerRepository) Delete(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockTaskRepository struct{ mock.Mock }

func (m *MockTaskRepository) Add(ctx context.Context, t *task.AssignmentTask) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTaskRepository) Update(ctx context.Context, t *task.AssignmentTask) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTaskRepository) GetDue(ctx context.Context, now time.Time, limit int) ([]*task.AssignmentTask, error) {
	args := m.Called(ctx, now, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*task.AssignmentTask), args.Error(1)
}

// MockUoW satisfies every unit-of-work interface the handlers use; each test
// registers only the repository accessors its handler touches.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) PartnerRepository() ports.PartnerRepository {
	args := m.Called()
	return args.Get(0).(ports.PartnerRepository)
}

func (m *MockUoW) AssignmentTaskRepository() ports.AssignmentTaskRepository {
	args := m.Called()
	return args.Get(0).(ports.AssignmentTaskRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockCheckoutUoWFactory struct{ mock.Mock }

func (m *MockCheckoutUoWFactory) Create() commands.CheckoutUoW {
	args := m.Called()
	return args.Get(0).(commands.CheckoutUoW)
}

type MockPartnerUoWFactory struct{ mock.Mock }

func (m *MockPartnerUoWFactory) Create() commands.PartnerUoW {
	args := m.Called()
	return args.Get(0).(commands.PartnerUoW)
}

type MockOrderPartnerUoWFactory struct{ mock.Mock }

func (m *MockOrderPartnerUoWFactory) Create() commands.OrderPartnerUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderPartnerUoW)
}

type MockCatalogClient struct{ mock.Mock }

func (m *MockCatalogClient) GetProduct(ctx context.Context, id kernel.UUID) (ports.CatalogProduct, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(ports.CatalogProduct), args.Error(1)
}

type MockCartClient struct{ mock.Mock }

func (m *MockCartClient) GetCart(ctx context.Context, userID kernel.UUID) ([]ports.CartLine, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ports.CartLine), args.Error(1)
}

func (m *MockCartClient) ClearCart(ctx context.Context, userID kernel.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

type MockPaymentProvider struct{ mock.Mock }

func (m *MockPaymentProvider) CreatePaymentIntent(ctx context.Context, amount kernel.Money, currency string) (string, error) {
	args := m.Called(ctx, amount, currency)
	return args.String(0), args.Error(1)
}

type MockNotificationDispatcher struct{ mock.Mock }

func (m *MockNotificationDispatcher) Notify(ctx context.Context, event ports.NotificationEvent) {
	m.Called(ctx, event)
}
