package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/example/oshxona/internal/database"
	"github.com/example/oshxona/internal/models"
	"github.com/example/oshxona/internal/storage"
)

type recordingNotifier struct {
	messages []string
}

func (n *recordingNotifier) SendText(chatID int64, text string) error {
	n.messages = append(n.messages, text)
	return nil
}

type noopCanceller struct {
	cancelled []uint
}

func (c *noopCanceller) CancelForOrder(orderID uint) error {
	c.cancelled = append(c.cancelled, orderID)
	return nil
}

type orderFixture struct {
	app      *fiber.App
	store    *storage.GormStore
	notifier *recordingNotifier
	jobs     *noopCanceller
}

func newOrderFixture(t *testing.T, allowCancelDelivered bool) *orderFixture {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(conn))

	store := storage.NewGormStore(conn)
	notifier := &recordingNotifier{}
	jobs := &noopCanceller{}

	handler := NewOrderHandler(store, jobs, notifier, allowCancelDelivered)

	app := fiber.New()
	app.Get("/orders", handler.ListOrders)
	app.Get("/orders/:id", handler.GetOrder)
	app.Patch("/orders/:id/status", handler.UpdateStatus)
	app.Patch("/orders/:id/courier", handler.UpdateCourier)
	app.Post("/orders/:id/cancel", handler.Cancel)

	return &orderFixture{app: app, store: store, notifier: notifier, jobs: jobs}
}

func (f *orderFixture) seedOrder(t *testing.T, status models.OrderStatus) *models.Order {
	t.Helper()

	user := &models.User{TelegramID: 777, Name: "Ali", NotificationsEnabled: true}
	require.NoError(t, f.store.CreateUser(user))

	order := &models.Order{UserID: user.ID, Status: status, Total: 110000, PaymentMethod: models.PaymentCash}
	require.NoError(t, f.store.CreateOrder(order))
	return order
}

func jsonRequest(method, target string, body interface{}) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestUpdateStatusForward(t *testing.T) {
	f := newOrderFixture(t, true)
	order := f.seedOrder(t, models.StatusConfirmed)

	resp, err := f.app.Test(jsonRequest(http.MethodPatch,
		fmt.Sprintf("/orders/%d/status", order.ID),
		fiber.Map{"status": "preparing"}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	updated, err := f.store.GetOrder(order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPreparing, updated.Status)

	require.Len(t, f.notifier.messages, 1)
	assert.Contains(t, f.notifier.messages[0], "Tayyorlanmoqda")
}

func TestUpdateStatusRejectsBackward(t *testing.T) {
	f := newOrderFixture(t, true)
	order := f.seedOrder(t, models.StatusOnTheWay)

	resp, err := f.app.Test(jsonRequest(http.MethodPatch,
		fmt.Sprintf("/orders/%d/status", order.ID),
		fiber.Map{"status": "confirmed"}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	unchanged, err := f.store.GetOrder(order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusOnTheWay, unchanged.Status)
}

func TestUpdateStatusRejectsCancelShortcut(t *testing.T) {
	f := newOrderFixture(t, true)
	order := f.seedOrder(t, models.StatusPending)

	resp, err := f.app.Test(jsonRequest(http.MethodPatch,
		fmt.Sprintf("/orders/%d/status", order.ID),
		fiber.Map{"status": "cancelled"}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestCancelDisarmsScheduledJobs(t *testing.T) {
	f := newOrderFixture(t, true)
	order := f.seedOrder(t, models.StatusPending)

	resp, err := f.app.Test(jsonRequest(http.MethodPost,
		fmt.Sprintf("/orders/%d/cancel", order.ID), nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancelled, err := f.store.GetOrder(order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, cancelled.Status)
	assert.Equal(t, []uint{order.ID}, f.jobs.cancelled)
}

func TestCancelDeliveredFollowsPolicy(t *testing.T) {
	permissive := newOrderFixture(t, true)
	order := permissive.seedOrder(t, models.StatusDelivered)

	resp, err := permissive.app.Test(jsonRequest(http.MethodPost,
		fmt.Sprintf("/orders/%d/cancel", order.ID), nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	strict := newOrderFixture(t, false)
	order = strict.seedOrder(t, models.StatusDelivered)

	resp, err = strict.app.Test(jsonRequest(http.MethodPost,
		fmt.Sprintf("/orders/%d/cancel", order.ID), nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestNotificationsOffSuppressesPush(t *testing.T) {
	f := newOrderFixture(t, true)
	order := f.seedOrder(t, models.StatusPending)
	require.NoError(t, f.store.UpdateUserNotifications(777, false))

	resp, err := f.app.Test(jsonRequest(http.MethodPatch,
		fmt.Sprintf("/orders/%d/status", order.ID),
		fiber.Map{"status": "confirmed"}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Empty(t, f.notifier.messages)
}

func TestGetOrderNotFound(t *testing.T) {
	f := newOrderFixture(t, true)

	resp, err := f.app.Test(httptest.NewRequest(http.MethodGet, "/orders/999", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
