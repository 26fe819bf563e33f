package storage

import (
	"github.com/example/oshxona/internal/models"
)

// Store is the capability interface over the persisted tables. Fetches
// for a single record return (nil, nil) when the record is absent;
// errors are reserved for engine failures and constraint violations.
type Store interface {
	// Users
	GetUser(id uint) (*models.User, error)
	GetUserByTelegramID(telegramID int64) (*models.User, error)
	CreateUser(user *models.User) error
	UpdateUserNotifications(telegramID int64, enabled bool) error
	UpdateUserName(telegramID int64, name string) error
	UpdateUserPhone(telegramID int64, phone string) error

	// Categories
	ListCategories() ([]models.Category, error)
	GetCategory(id uint) (*models.Category, error)

	// Products
	ListProducts() ([]models.Product, error)
	ListProductsByCategory(categoryID uint) ([]models.Product, error)
	GetProduct(id uint) (*models.Product, error)

	// Addresses
	ListAddresses(userID uint) ([]models.Address, error)
	GetAddress(id uint) (*models.Address, error)
	CreateAddress(address *models.Address) error
	DeleteAddress(id uint) error
	SetDefaultAddress(userID, addressID uint) error

	// Orders
	CreateOrder(order *models.Order) error
	GetOrder(id uint) (*models.Order, error)
	ListOrders(userID uint) ([]models.Order, error)
	ListAllOrders(status models.OrderStatus, limit, offset int) ([]models.Order, int64, error)
	UpdateOrderStatus(orderID uint, status models.OrderStatus) error
	UpdateOrderCourier(orderID uint, name, phone string) error
	CancelOrder(orderID uint) error

	// Order items
	ListOrderItems(orderID uint) ([]models.OrderItem, error)

	// Scheduled jobs
	CreateJob(job *models.ScheduledJob) error
	ListPendingJobs() ([]models.ScheduledJob, error)
	MarkJobDone(id string) error
	CancelJobsForOrder(orderID uint) error
}
