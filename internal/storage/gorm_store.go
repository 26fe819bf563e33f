package storage

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/example/oshxona/internal/models"
)

// GormStore implements Store on top of a gorm connection.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore constructs a GormStore.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) GetUser(id uint) (*models.User, error) {
	var user models.User
	err := s.db.First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("fetch user: %w", err)
	}
	return &user, nil
}

func (s *GormStore) GetUserByTelegramID(telegramID int64) (*models.User, error) {
	var user models.User
	err := s.db.First(&user, "telegram_id = ?", telegramID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("fetch user: %w", err)
	}
	return &user, nil
}

// CreateUser inserts a new user. The telegram_id unique index rejects
// duplicates; callers are expected to check existence first.
func (s *GormStore) CreateUser(user *models.User) error {
	if err := s.db.Create(user).Error; err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (s *GormStore) UpdateUserNotifications(telegramID int64, enabled bool) error {
	err := s.db.Model(&models.User{}).
		Where("telegram_id = ?", telegramID).
		Update("notifications_enabled", enabled).Error
	if err != nil {
		return fmt.Errorf("update user notifications: %w", err)
	}
	return nil
}

func (s *GormStore) UpdateUserName(telegramID int64, name string) error {
	err := s.db.Model(&models.User{}).
		Where("telegram_id = ?", telegramID).
		Update("name", name).Error
	if err != nil {
		return fmt.Errorf("update user name: %w", err)
	}
	return nil
}

func (s *GormStore) UpdateUserPhone(telegramID int64, phone string) error {
	err := s.db.Model(&models.User{}).
		Where("telegram_id = ?", telegramID).
		Update("phone", phone).Error
	if err != nil {
		return fmt.Errorf("update user phone: %w", err)
	}
	return nil
}

func (s *GormStore) ListCategories() ([]models.Category, error) {
	var categories []models.Category
	if err := s.db.Order("position asc").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

func (s *GormStore) GetCategory(id uint) (*models.Category, error) {
	var category models.Category
	err := s.db.First(&category, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("fetch category: %w", err)
	}
	return &category, nil
}

func (s *GormStore) ListProducts() ([]models.Product, error) {
	var products []models.Product
	if err := s.db.Where("available = ?", true).Find(&products).Error; err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

func (s *GormStore) ListProductsByCategory(categoryID uint) ([]models.Product, error) {
	var products []models.Product
	err := s.db.Where("category_id = ? AND available = ?", categoryID, true).Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("list products by category: %w", err)
	}
	return products, nil
}

// GetProduct fetches by id regardless of availability, so order
// history keeps resolving products later taken off the menu.
func (s *GormStore) GetProduct(id uint) (*models.Product, error) {
	var product models.Product
	err := s.db.First(&product, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("fetch product: %w", err)
	}
	return &product, nil
}

func (s *GormStore) ListAddresses(userID uint) ([]models.Address, error) {
	var addresses []models.Address
	if err := s.db.Where("user_id = ?", userID).Find(&addresses).Error; err != nil {
		return nil, fmt.Errorf("list addresses: %w", err)
	}
	return addresses, nil
}

func (s *GormStore) GetAddress(id uint) (*models.Address, error) {
	var address models.Address
	err := s.db.First(&address, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("fetch address: %w", err)
	}
	return &address, nil
}

func (s *GormStore) CreateAddress(address *models.Address) error {
	if err := s.db.Create(address).Error; err != nil {
		return fmt.Errorf("create address: %w", err)
	}
	return nil
}

func (s *GormStore) DeleteAddress(id uint) error {
	if err := s.db.Delete(&models.Address{}, id).Error; err != nil {
		return fmt.Errorf("delete address: %w", err)
	}
	return nil
}

// SetDefaultAddress clears the user's previous default and flags the
// target inside one transaction, so a crash cannot leave the user
// between the two steps.
func (s *GormStore) SetDefaultAddress(userID, addressID uint) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Address{}).
			Where("user_id = ?", userID).
			Update("is_default", false).Error; err != nil {
			return err
		}
		return tx.Model(&models.Address{}).
			Where("id = ? AND user_id = ?", addressID, userID).
			Update("is_default", true).Error
	})
	if err != nil {
		return fmt.Errorf("set default address: %w", err)
	}
	return nil
}

// CreateOrder inserts the order together with its items in one
// transaction. The order arrives with Items populated from the cart.
func (s *GormStore) CreateOrder(order *models.Order) error {
	if order.Status == "" {
		order.Status = models.StatusPending
	}
	if err := s.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(order).Error
	}); err != nil {
		return fmt.Errorf("create order: %w", err)
	}
	return nil
}

func (s *GormStore) GetOrder(id uint) (*models.Order, error) {
	var order models.Order
	err := s.db.Preload("Items").First(&order, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("fetch order: %w", err)
	}
	return &order, nil
}

func (s *GormStore) ListOrders(userID uint) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

func (s *GormStore) ListAllOrders(status models.OrderStatus, limit, offset int) ([]models.Order, int64, error) {
	query := s.db.Model(&models.Order{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count orders: %w", err)
	}

	var orders []models.Order
	err := query.Preload("Items").
		Order("created_at desc").
		Limit(limit).Offset(offset).
		Find(&orders).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list all orders: %w", err)
	}
	return orders, total, nil
}

func (s *GormStore) UpdateOrderStatus(orderID uint, status models.OrderStatus) error {
	err := s.db.Model(&models.Order{}).
		Where("id = ?", orderID).
		Updates(map[string]interface{}{"status": status, "updated_at": time.Now()}).Error
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	return nil
}

func (s *GormStore) UpdateOrderCourier(orderID uint, name, phone string) error {
	err := s.db.Model(&models.Order{}).
		Where("id = ?", orderID).
		Updates(map[string]interface{}{"courier_name": name, "courier_phone": phone}).Error
	if err != nil {
		return fmt.Errorf("update order courier: %w", err)
	}
	return nil
}

// CancelOrder forces status to cancelled without inspecting the prior
// status. Cancellation policy lives with the callers.
func (s *GormStore) CancelOrder(orderID uint) error {
	return s.UpdateOrderStatus(orderID, models.StatusCancelled)
}

func (s *GormStore) ListOrderItems(orderID uint) ([]models.OrderItem, error) {
	var items []models.OrderItem
	if err := s.db.Where("order_id = ?", orderID).Find(&items).Error; err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	return items, nil
}

func (s *GormStore) CreateJob(job *models.ScheduledJob) error {
	if err := s.db.Create(job).Error; err != nil {
		return fmt.Errorf("create job: %w", err)
	}
	return nil
}

func (s *GormStore) ListPendingJobs() ([]models.ScheduledJob, error) {
	var jobs []models.ScheduledJob
	err := s.db.Where("done = ? AND cancelled = ?", false, false).
		Order("run_at asc").
		Find(&jobs).Error
	if err != nil {
		return nil, fmt.Errorf("list pending jobs: %w", err)
	}
	return jobs, nil
}

func (s *GormStore) MarkJobDone(id string) error {
	err := s.db.Model(&models.ScheduledJob{}).
		Where("id = ?", id).
		Update("done", true).Error
	if err != nil {
		return fmt.Errorf("mark job done: %w", err)
	}
	return nil
}

func (s *GormStore) CancelJobsForOrder(orderID uint) error {
	err := s.db.Model(&models.ScheduledJob{}).
		Where("order_id = ? AND done = ?", orderID, false).
		Update("cancelled", true).Error
	if err != nil {
		return fmt.Errorf("cancel jobs for order: %w", err)
	}
	return nil
}
