package storage

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
)

func newTestStore(t *testing.T) *GormStore {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(conn))

	return NewGormStore(conn)
}

func TestUserLifecycle(t *testing.T) {
	store := newTestStore(t)

	user := &models.User{TelegramID: 111, Phone: "+998901234567", Name: "Ali", NotificationsEnabled: true}
	require.NoError(t, store.CreateUser(user))
	assert.NotZero(t, user.ID)

	found, err := store.GetUserByTelegramID(111)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "Ali", found.Name)
	assert.True(t, found.NotificationsEnabled)

	err = store.CreateUser(&models.User{TelegramID: 111, Name: "Vali"})
	assert.Error(t, err, "telegram_id must be unique")

	require.NoError(t, store.UpdateUserNotifications(111, false))
	require.NoError(t, store.UpdateUserName(111, "Alisher"))

	found, err = store.GetUser(user.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "Alisher", found.Name)
	assert.False(t, found.NotificationsEnabled)
}

func TestNotFoundReturnsNil(t *testing.T) {
	store := newTestStore(t)

	user, err := store.GetUserByTelegramID(404)
	assert.NoError(t, err)
	assert.Nil(t, user)

	product, err := store.GetProduct(404)
	assert.NoError(t, err)
	assert.Nil(t, product)

	order, err := store.GetOrder(404)
	assert.NoError(t, err)
	assert.Nil(t, order)
}

func TestListCategoriesOrderedByPosition(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.db.Create(&models.Category{Name: "Ichimliklar", Icon: "🥤", Position: 3}).Error)
	require.NoError(t, store.db.Create(&models.Category{Name: "Pitsa", Icon: "🍕", Position: 1}).Error)
	require.NoError(t, store.db.Create(&models.Category{Name: "Burgerlar", Icon: "🍔", Position: 2}).Error)

	categories, err := store.ListCategories()
	require.NoError(t, err)
	require.Len(t, categories, 3)
	assert.Equal(t, "Pitsa", categories[0].Name)
	assert.Equal(t, "Burgerlar", categories[1].Name)
	assert.Equal(t, "Ichimliklar", categories[2].Name)
}

func TestListProductsSkipsUnavailable(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.db.Create(&models.Product{CategoryID: 1, Name: "Margarita", BasePrice: 35000, Available: true}).Error)
	require.NoError(t, store.db.Create(&models.Product{CategoryID: 1, Name: "Pepperoni", BasePrice: 45000, Available: false}).Error)

	products, err := store.ListProductsByCategory(1)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Margarita", products[0].Name)

	// fetch by id still resolves products taken off the menu
	hidden, err := store.GetProduct(2)
	require.NoError(t, err)
	require.NotNil(t, hidden)
	assert.Equal(t, "Pepperoni", hidden.Name)
}

func TestSetDefaultAddress(t *testing.T) {
	store := newTestStore(t)

	first := &models.Address{UserID: 1, Address: "Chilonzor 5", IsDefault: true}
	second := &models.Address{UserID: 1, Address: "Yunusobod 12"}
	require.NoError(t, store.CreateAddress(first))
	require.NoError(t, store.CreateAddress(second))

	require.NoError(t, store.SetDefaultAddress(1, second.ID))

	addresses, err := store.ListAddresses(1)
	require.NoError(t, err)
	require.Len(t, addresses, 2)

	defaults := 0
	for _, a := range addresses {
		if a.IsDefault {
			defaults++
			assert.Equal(t, second.ID, a.ID)
		}
	}
	assert.Equal(t, 1, defaults)

	require.NoError(t, store.DeleteAddress(first.ID))
	addresses, err = store.ListAddresses(1)
	require.NoError(t, err)
	require.Len(t, addresses, 1)
	assert.Equal(t, second.ID, addresses[0].ID)
}

func TestCreateOrderWithItems(t *testing.T) {
	store := newTestStore(t)

	order := &models.Order{
		UserID:        1,
		Total:         110000,
		Address:       "Chilonzor tumani, 5-kvartal",
		PaymentMethod: models.PaymentCash,
		Items: []models.OrderItem{
			{ProductID: 1, ProductName: "Pitsa Margarita", Quantity: 2, Size: "30 sm", Extras: models.StringList{"Qo'shimcha pishloq"}, Price: 100000},
		},
	}
	require.NoError(t, store.CreateOrder(order))
	assert.Equal(t, models.StatusPending, order.Status)

	loaded, err := store.GetOrder(order.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	require.Len(t, loaded.Items, 1)
	assert.Equal(t, "Pitsa Margarita", loaded.Items[0].ProductName)
	assert.Equal(t, models.StringList{"Qo'shimcha pishloq"}, loaded.Items[0].Extras)

	items, err := store.ListOrderItems(order.ID)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestListAllOrdersFiltersByStatus(t *testing.T) {
	store := newTestStore(t)

	for i := 0; i < 3; i++ {
		require.NoError(t, store.CreateOrder(&models.Order{UserID: 1, Total: 50000}))
	}
	require.NoError(t, store.CreateOrder(&models.Order{UserID: 2, Total: 80000, Status: models.StatusDelivered}))

	pending, total, err := store.ListAllOrders(models.StatusPending, 10, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, pending, 3)

	all, total, err := store.ListAllOrders("", 2, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 4, total)
	assert.Len(t, all, 2)
}

func TestCancelOrderForcesStatus(t *testing.T) {
	store := newTestStore(t)

	order := &models.Order{UserID: 1, Total: 50000}
	require.NoError(t, store.CreateOrder(order))
	require.NoError(t, store.UpdateOrderStatus(order.ID, models.StatusDelivered))

	require.NoError(t, store.CancelOrder(order.ID))

	loaded, err := store.GetOrder(order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, loaded.Status)
}

func TestScheduledJobs(t *testing.T) {
	store := newTestStore(t)

	job := &models.ScheduledJob{Kind: models.JobConfirmOrder, OrderID: 7, RunAt: time.Now().Add(5 * time.Second)}
	require.NoError(t, store.CreateJob(job))

	pending, err := store.ListPendingJobs()
	require.NoError(t, err)
	require.Len(t, pending, 1)

	require.NoError(t, store.MarkJobDone(job.ID.String()))

	pending, err = store.ListPendingJobs()
	require.NoError(t, err)
	assert.Empty(t, pending)

	other := &models.ScheduledJob{Kind: models.JobConfirmOrder, OrderID: 8, RunAt: time.Now().Add(5 * time.Second)}
	require.NoError(t, store.CreateJob(other))
	require.NoError(t, store.CancelJobsForOrder(8))

	pending, err = store.ListPendingJobs()
	require.NoError(t, err)
	assert.Empty(t, pending)
}
