package api

import (
	"context"
	"time"

	"shogun-be/internal/attachment"
	"shogun-be/internal/category"
	"shogun-be/internal/comment"
	"shogun-be/internal/customization"
	"shogun-be/internal/order"
	"shogun-be/internal/product"
	"shogun-be/internal/stats"

	"github.com/stretchr/testify/mock"
)

// --- product.Service ---

type MockProducts struct{ mock.Mock }

func (m *MockProducts) List(ctx context.Context, includeInactive bool) ([]*product.Product, error) {
	args := m.Called(ctx, includeInactive)
	items, _ := args.Get(0).([]*product.Product)
	return items, args.Error(1)
}

func (m *MockProducts) GetBySKU(ctx context.Context, sku string) (*product.Product, error) {
	args := m.Called(ctx, sku)
	p, _ := args.Get(0).(*product.Product)
	return p, args.Error(1)
}

func (m *MockProducts) GetByID(ctx context.Context, id string) (*product.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*product.Product)
	return p, args.Error(1)
}

func (m *MockProducts) Create(ctx context.Context, in product.CreateInput) (*product.Product, error) {
	args := m.Called(ctx, in)
	p, _ := args.Get(0).(*product.Product)
	return p, args.Error(1)
}

func (m *MockProducts) Update(ctx context.Context, id string, in product.UpdateInput) (*product.Product, error) {
	args := m.Called(ctx, id, in)
	p, _ := args.Get(0).(*product.Product)
	return p, args.Error(1)
}

func (m *MockProducts) SetActive(ctx context.Context, id string, activo bool) (bool, error) {
	args := m.Called(ctx, id, activo)
	return args.Bool(0), args.Error(1)
}

func (m *MockProducts) SKUExists(ctx context.Context, sku, excludeID string) (bool, error) {
	args := m.Called(ctx, sku, excludeID)
	return args.Bool(0), args.Error(1)
}

// --- customization.Service ---

type MockCustomizations struct{ mock.Mock }

func (m *MockCustomizations) List(ctx context.Context, includeInactive bool) ([]*customization.Customization, error) {
	args := m.Called(ctx, includeInactive)
	items, _ := args.Get(0).([]*customization.Customization)
	return items, args.Error(1)
}

func (m *MockCustomizations) GetByCode(ctx context.Context, codigo string) (*customization.Customization, error) {
	args := m.Called(ctx, codigo)
	c, _ := args.Get(0).(*customization.Customization)
	return c, args.Error(1)
}

func (m *MockCustomizations) Create(ctx context.Context, in customization.CreateInput) (*customization.Customization, error) {
	args := m.Called(ctx, in)
	c, _ := args.Get(0).(*customization.Customization)
	return c, args.Error(1)
}

func (m *MockCustomizations) Update(ctx context.Context, id string, in customization.UpdateInput) (*customization.Customization, error) {
	args := m.Called(ctx, id, in)
	c, _ := args.Get(0).(*customization.Customization)
	return c, args.Error(1)
}

func (m *MockCustomizations) SetActive(ctx context.Context, id string, activo bool) (bool, error) {
	args := m.Called(ctx, id, activo)
	return args.Bool(0), args.Error(1)
}

// --- category.Service ---

type MockCategories struct{ mock.Mock }

func (m *MockCategories) List(ctx context.Context, includeInactive bool, filter string) ([]*category.Category, error) {
	args := m.Called(ctx, includeInactive, filter)
	items, _ := args.Get(0).([]*category.Category)
	return items, args.Error(1)
}

func (m *MockCategories) Create(ctx context.Context, in category.CreateInput) (*category.Category, error) {
	args := m.Called(ctx, in)
	c, _ := args.Get(0).(*category.Category)
	return c, args.Error(1)
}

func (m *MockCategories) Update(ctx context.Context, id string, in category.UpdateInput) (*category.Category, error) {
	args := m.Called(ctx, id, in)
	c, _ := args.Get(0).(*category.Category)
	return c, args.Error(1)
}

func (m *MockCategories) SetActive(ctx context.Context, id string, activo bool) (bool, error) {
	args := m.Called(ctx, id, activo)
	return args.Bool(0), args.Error(1)
}

// --- order.Service ---

type MockOrders struct{ mock.Mock }

func (m *MockOrders) CreateOrder(ctx context.Context, in order.CreateInput) (*order.CreateResult, error) {
	args := m.Called(ctx, in)
	r, _ := args.Get(0).(*order.CreateResult)
	return r, args.Error(1)
}

func (m *MockOrders) List(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]*order.Order)
	return items, args.Error(1)
}

func (m *MockOrders) ListByPaymentDate(ctx context.Context, desde, hasta string) ([]*order.Order, error) {
	args := m.Called(ctx, desde, hasta)
	items, _ := args.Get(0).([]*order.Order)
	return items, args.Error(1)
}

func (m *MockOrders) GetByID(ctx context.Context, id string) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrders) Exists(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrders) Search(ctx context.Context, q string) ([]*order.Order, error) {
	args := m.Called(ctx, q)
	items, _ := args.Get(0).([]*order.Order)
	return items, args.Error(1)
}

func (m *MockOrders) Update(ctx context.Context, id string, fields map[string]interface{}) (order.UpdatePlan, bool, error) {
	args := m.Called(ctx, id, fields)
	plan, _ := args.Get(0).(order.UpdatePlan)
	return plan, args.Bool(1), args.Error(2)
}

func (m *MockOrders) Delete(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrders) Today() time.Time {
	return time.Date(2026, 10, 19, 0, 0, 0, 0, time.Local)
}

// --- stats.Service ---

type MockStats struct{ mock.Mock }

func (m *MockStats) Pending(ctx context.Context) ([]stats.PendingOrder, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]stats.PendingOrder)
	return items, args.Error(1)
}

func (m *MockStats) Summary(ctx context.Context, desde, hasta string) (stats.Summary, error) {
	args := m.Called(ctx, desde, hasta)
	s, _ := args.Get(0).(stats.Summary)
	return s, args.Error(1)
}

func (m *MockStats) SalesByChannel(ctx context.Context, desde, hasta string) ([]stats.ChannelSales, error) {
	args := m.Called(ctx, desde, hasta)
	items, _ := args.Get(0).([]stats.ChannelSales)
	return items, args.Error(1)
}

func (m *MockStats) SalesByStatus(ctx context.Context) ([]stats.StatusSales, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]stats.StatusSales)
	return items, args.Error(1)
}

func (m *MockStats) Customers(ctx context.Context) ([]stats.Customer, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]stats.Customer)
	return items, args.Error(1)
}

// --- comment.Service ---

type MockComments struct{ mock.Mock }

func (m *MockComments) List(ctx context.Context, pedidoID string) ([]*comment.Comment, error) {
	args := m.Called(ctx, pedidoID)
	items, _ := args.Get(0).([]*comment.Comment)
	return items, args.Error(1)
}

func (m *MockComments) Create(ctx context.Context, pedidoID string, author comment.Author, in comment.CreateInput) (*comment.Comment, error) {
	args := m.Called(ctx, pedidoID, author, in)
	c, _ := args.Get(0).(*comment.Comment)
	return c, args.Error(1)
}

func (m *MockComments) Delete(ctx context.Context, pedidoID, id string) error {
	args := m.Called(ctx, pedidoID, id)
	return args.Error(0)
}

// --- attachment.Service ---

type MockAttachments struct{ mock.Mock }

func (m *MockAttachments) List(ctx context.Context, pedidoID string) ([]*attachment.Attachment, error) {
	args := m.Called(ctx, pedidoID)
	items, _ := args.Get(0).([]*attachment.Attachment)
	return items, args.Error(1)
}

func (m *MockAttachments) Upload(ctx context.Context, pedidoID string, by attachment.Uploader, up attachment.Upload) (*attachment.Attachment, error) {
	args := m.Called(ctx, pedidoID, by, up)
	a, _ := args.Get(0).(*attachment.Attachment)
	return a, args.Error(1)
}

func (m *MockAttachments) DownloadURL(ctx context.Context, pedidoID, id string) (string, *attachment.Attachment, error) {
	args := m.Called(ctx, pedidoID, id)
	a, _ := args.Get(1).(*attachment.Attachment)
	return args.String(0), a, args.Error(2)
}

func (m *MockAttachments) Delete(ctx context.Context, pedidoID, id string) error {
	args := m.Called(ctx, pedidoID, id)
	return args.Error(0)
}

func (m *MockAttachments) MaxBytes() int64 {
	return 10 << 20
}

// --- Pinger / FileLocator ---

type MockPinger struct{ mock.Mock }

func (m *MockPinger) PingContext(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type MockFiles struct{ mock.Mock }

func (m *MockFiles) Locate(ctx context.Context, token string) (string, error) {
	args := m.Called(ctx, token)
	return args.String(0), args.Error(1)
}
