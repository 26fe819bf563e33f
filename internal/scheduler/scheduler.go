package scheduler

import (
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/example/oshxona/internal/models"
	"github.com/example/oshxona/internal/storage"
)

// Scheduler runs deferred order jobs. Every job is persisted before it
// is armed, so pending work survives a restart: Start reloads
// unfinished rows and re-arms them (past-due jobs fire immediately).
type Scheduler struct {
	store storage.Store
	delay time.Duration

	mu     sync.Mutex
	timers map[uuid.UUID]*armedJob
}

type armedJob struct {
	timer   *time.Timer
	orderID uint
}

// New constructs a Scheduler; delay is the pending → confirmed window.
func New(store storage.Store, delay time.Duration) *Scheduler {
	return &Scheduler{
		store:  store,
		delay:  delay,
		timers: make(map[uuid.UUID]*armedJob),
	}
}

// Start re-arms jobs left unfinished by a previous process.
func (s *Scheduler) Start() error {
	jobs, err := s.store.ListPendingJobs()
	if err != nil {
		return err
	}

	for _, job := range jobs {
		s.arm(job)
	}
	if len(jobs) > 0 {
		log.Printf("[Scheduler] Re-armed %d pending job(s)", len(jobs))
	}
	return nil
}

// ConfirmLater schedules the automatic pending → confirmed transition
// for a freshly placed order.
func (s *Scheduler) ConfirmLater(orderID uint) error {
	job := models.ScheduledJob{
		Kind:    models.JobConfirmOrder,
		OrderID: orderID,
		RunAt:   time.Now().Add(s.delay),
	}
	if err := s.store.CreateJob(&job); err != nil {
		return err
	}

	s.arm(job)
	return nil
}

// CancelForOrder flags the order's unfinished jobs as cancelled and
// disarms their timers. Called when an order is cancelled before the
// auto-confirm fires.
func (s *Scheduler) CancelForOrder(orderID uint) error {
	if err := s.store.CancelJobsForOrder(orderID); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for id, armed := range s.timers {
		if armed.orderID == orderID {
			armed.timer.Stop()
			delete(s.timers, id)
		}
	}
	return nil
}

// Stop disarms every timer. In-flight executions finish on their own.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, armed := range s.timers {
		armed.timer.Stop()
		delete(s.timers, id)
	}
}

func (s *Scheduler) arm(job models.ScheduledJob) {
	delay := time.Until(job.RunAt)
	if delay < 0 {
		delay = 0
	}

	s.mu.Lock()
	s.timers[job.ID] = &armedJob{
		timer:   time.AfterFunc(delay, func() { s.run(job) }),
		orderID: job.OrderID,
	}
	s.mu.Unlock()
}

func (s *Scheduler) run(job models.ScheduledJob) {
	s.mu.Lock()
	delete(s.timers, job.ID)
	s.mu.Unlock()

	switch job.Kind {
	case models.JobConfirmOrder:
		s.confirmOrder(job)
	default:
		log.Printf("[Scheduler] Unknown job kind %q (%s)", job.Kind, job.ID)
	}
}

// confirmOrder moves the order to confirmed, but only when it is still
// pending: a cancellation or an admin update in the meantime wins.
func (s *Scheduler) confirmOrder(job models.ScheduledJob) {
	order, err := s.store.GetOrder(job.OrderID)
	if err != nil {
		log.Printf("[Scheduler] Fetch order %d failed: %v", job.OrderID, err)
		return
	}

	if order != nil && order.Status == models.StatusPending {
		if err := s.store.UpdateOrderStatus(order.ID, models.StatusConfirmed); err != nil {
			log.Printf("[Scheduler] Confirm order %d failed: %v", order.ID, err)
			return
		}
		log.Printf("[Scheduler] Order %d confirmed", order.ID)
	}

	if err := s.store.MarkJobDone(job.ID.String()); err != nil {
		log.Printf("[Scheduler] Mark job %s done failed: %v", job.ID, err)
	}
}
