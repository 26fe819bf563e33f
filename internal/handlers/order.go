package handlers

import (
	"fmt"
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/example/oshxona/internal/models"
	"github.com/example/oshxona/internal/storage"
	"github.com/example/oshxona/internal/utils"
)

// CustomerNotifier is the narrow outbound surface the admin API needs.
type CustomerNotifier interface {
	SendText(chatID int64, text string) error
}

// JobCanceller disarms scheduled jobs when an order is cancelled.
type JobCanceller interface {
	CancelForOrder(orderID uint) error
}

// OrderHandler manages the staff-facing order endpoints. Status
// updates drive the server-side order lifecycle: pending → confirmed →
// preparing → on_the_way → delivered, with cancellation governed by
// the configured policy.
type OrderHandler struct {
	store                storage.Store
	jobs                 JobCanceller
	notifier             CustomerNotifier
	allowCancelDelivered bool
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(store storage.Store, jobs JobCanceller, notifier CustomerNotifier, allowCancelDelivered bool) *OrderHandler {
	return &OrderHandler{
		store:                store,
		jobs:                 jobs,
		notifier:             notifier,
		allowCancelDelivered: allowCancelDelivered,
	}
}

// ListOrders returns orders newest first, optionally filtered by status.
func (h *OrderHandler) ListOrders(c *fiber.Ctx) error {
	pg := utils.ParsePagination(c)

	status := models.OrderStatus(c.Query("status"))
	if status != "" && !status.Valid() {
		return fiber.NewError(fiber.StatusBadRequest, "unknown status")
	}

	orders, total, err := h.store.ListAllOrders(status, pg.Limit, pg.Offset)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    orders,
		"pagination": fiber.Map{
			"current_page":   pg.Page,
			"items_per_page": pg.Limit,
			"total_items":    total,
		},
	})
}

// GetOrder returns a single order with its items.
func (h *OrderHandler) GetOrder(c *fiber.Ctx) error {
	order, err := h.fetchOrder(c)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": order})
}

type statusRequest struct {
	Status models.OrderStatus `json:"status"`
}

// UpdateStatus advances an order along the status machine. Backward
// and unknown transitions are rejected.
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	order, err := h.fetchOrder(c)
	if err != nil {
		return err
	}

	var req statusRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.Status == models.StatusCancelled {
		return fiber.NewError(fiber.StatusUnprocessableEntity, "use the cancel endpoint")
	}
	if !models.CanTransition(order.Status, req.Status) {
		return fiber.NewError(fiber.StatusUnprocessableEntity,
			fmt.Sprintf("cannot move order from %s to %s", order.Status, req.Status))
	}

	if err := h.store.UpdateOrderStatus(order.ID, req.Status); err != nil {
		return err
	}

	h.notifyCustomer(order, fmt.Sprintf("📦 Buyurtma #%d holati yangilandi: %s", order.ID, statusLabel(req.Status)))

	return c.JSON(fiber.Map{"success": true, "data": fiber.Map{"id": order.ID, "status": req.Status}})
}

type courierRequest struct {
	CourierName  string `json:"courier_name"`
	CourierPhone string `json:"courier_phone"`
}

// UpdateCourier attaches courier contact details to an order.
func (h *OrderHandler) UpdateCourier(c *fiber.Ctx) error {
	order, err := h.fetchOrder(c)
	if err != nil {
		return err
	}

	var req courierRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if req.CourierName == "" {
		return fiber.NewError(fiber.StatusBadRequest, "courier_name is required")
	}

	if err := h.store.UpdateOrderCourier(order.ID, req.CourierName, req.CourierPhone); err != nil {
		return err
	}

	h.notifyCustomer(order, fmt.Sprintf("🚚 Buyurtma #%d kuryeri: %s, tel: %s", order.ID, req.CourierName, req.CourierPhone))

	return c.JSON(fiber.Map{"success": true, "data": fiber.Map{"id": order.ID}})
}

// Cancel forces an order to cancelled. Terminal orders are refused,
// except delivered ones when the permissive policy is on.
func (h *OrderHandler) Cancel(c *fiber.Ctx) error {
	order, err := h.fetchOrder(c)
	if err != nil {
		return err
	}

	switch order.Status {
	case models.StatusCancelled:
		return fiber.NewError(fiber.StatusUnprocessableEntity, "order is already cancelled")
	case models.StatusDelivered:
		if !h.allowCancelDelivered {
			return fiber.NewError(fiber.StatusUnprocessableEntity, "order is already delivered")
		}
	}

	if err := h.store.CancelOrder(order.ID); err != nil {
		return err
	}
	if err := h.jobs.CancelForOrder(order.ID); err != nil {
		log.Printf("[Order] Failed to cancel jobs for order %d: %v", order.ID, err)
	}

	h.notifyCustomer(order, fmt.Sprintf("❌ Buyurtma #%d bekor qilindi", order.ID))

	return c.JSON(fiber.Map{"success": true, "data": fiber.Map{"id": order.ID, "status": models.StatusCancelled}})
}

func (h *OrderHandler) fetchOrder(c *fiber.Ctx) (*models.Order, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	order, err := h.store.GetOrder(uint(id))
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "order not found")
	}
	return order, nil
}

// notifyCustomer pushes a status message to the order's owner unless
// they turned notifications off.
func (h *OrderHandler) notifyCustomer(order *models.Order, text string) {
	if h.notifier == nil {
		return
	}

	user, err := h.store.GetUser(order.UserID)
	if err != nil {
		log.Printf("[Order] Fetch user %d failed: %v", order.UserID, err)
		return
	}
	if user == nil || !user.NotificationsEnabled {
		return
	}

	if err := h.notifier.SendText(user.TelegramID, text); err != nil {
		log.Printf("[Order] Notify user %d failed: %v", user.TelegramID, err)
	}
}

func statusLabel(status models.OrderStatus) string {
	switch status {
	case models.StatusConfirmed:
		return "Tasdiqlandi"
	case models.StatusPreparing:
		return "Tayyorlanmoqda"
	case models.StatusOnTheWay:
		return "Yo'lda"
	case models.StatusDelivered:
		return "Yetkazildi"
	default:
		return string(status)
	}
}
