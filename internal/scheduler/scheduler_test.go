package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/example/oshxona/internal/database"
	"github.com/example/oshxona/internal/models"
	"github.com/example/oshxona/internal/storage"
)

func newTestStore(t *testing.T) *storage.GormStore {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(conn))

	return storage.NewGormStore(conn)
}

func orderStatus(store storage.Store, id uint) models.OrderStatus {
	order, err := store.GetOrder(id)
	if err != nil || order == nil {
		return ""
	}
	return order.Status
}

func TestConfirmLaterConfirmsPendingOrder(t *testing.T) {
	store := newTestStore(t)

	order := &models.Order{UserID: 1, Total: 50000}
	require.NoError(t, store.CreateOrder(order))

	sched := New(store, 20*time.Millisecond)
	defer sched.Stop()
	require.NoError(t, sched.ConfirmLater(order.ID))

	assert.Eventually(t, func() bool {
		pending, err := store.ListPendingJobs()
		return err == nil && len(pending) == 0
	}, 2*time.Second, 10*time.Millisecond)

	assert.Equal(t, models.StatusConfirmed, orderStatus(store, order.ID))
}

func TestConfirmLaterSkipsCancelledOrder(t *testing.T) {
	store := newTestStore(t)

	order := &models.Order{UserID: 1, Total: 50000}
	require.NoError(t, store.CreateOrder(order))

	sched := New(store, 20*time.Millisecond)
	defer sched.Stop()
	require.NoError(t, sched.ConfirmLater(order.ID))
	require.NoError(t, store.CancelOrder(order.ID))

	assert.Eventually(t, func() bool {
		pending, err := store.ListPendingJobs()
		return err == nil && len(pending) == 0
	}, 2*time.Second, 10*time.Millisecond)

	assert.Equal(t, models.StatusCancelled, orderStatus(store, order.ID))
}

func TestCancelForOrderDisarmsTimer(t *testing.T) {
	store := newTestStore(t)

	keep := &models.Order{UserID: 1, Total: 50000}
	drop := &models.Order{UserID: 1, Total: 60000}
	require.NoError(t, store.CreateOrder(keep))
	require.NoError(t, store.CreateOrder(drop))

	sched := New(store, 30*time.Millisecond)
	defer sched.Stop()
	require.NoError(t, sched.ConfirmLater(keep.ID))
	require.NoError(t, sched.ConfirmLater(drop.ID))

	require.NoError(t, sched.CancelForOrder(drop.ID))

	assert.Eventually(t, func() bool {
		return orderStatus(store, keep.ID) == models.StatusConfirmed
	}, 2*time.Second, 10*time.Millisecond)

	assert.Equal(t, models.StatusPending, orderStatus(store, drop.ID))
}

func TestStartReArmsPastDueJobs(t *testing.T) {
	store := newTestStore(t)

	order := &models.Order{UserID: 1, Total: 50000}
	require.NoError(t, store.CreateOrder(order))

	// job persisted by a previous process that died before firing
	job := &models.ScheduledJob{
		Kind:    models.JobConfirmOrder,
		OrderID: order.ID,
		RunAt:   time.Now().Add(-time.Minute),
	}
	require.NoError(t, store.CreateJob(job))

	sched := New(store, time.Hour)
	defer sched.Stop()
	require.NoError(t, sched.Start())

	assert.Eventually(t, func() bool {
		return orderStatus(store, order.ID) == models.StatusConfirmed
	}, 2*time.Second, 10*time.Millisecond)
}
