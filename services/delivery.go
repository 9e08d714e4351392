package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"birthday-reminder/config"
	"birthday-reminder/models"
	"birthday-reminder/utils"
)

// DeliveryService finds users whose birthday send is due and pushes their
// rendered message through the Notifier. It backs both the HTTP bulk-send
// endpoint (one transaction around the whole batch) and the hourly
// scheduler (independent per-user writes).
type DeliveryService struct {
	db         *gorm.DB
	notifier   Notifier
	matcher    BirthdayMatcher
	log        *zap.Logger
	maxRetries int
	backoff    time.Duration

	// now is swappable so tests can pin the reference instant.
	now func() time.Time
}

func NewDeliveryService(db *gorm.DB, notifier Notifier, cfg config.Config, log *zap.Logger) *DeliveryService {
	if cfg.MaxSendRetries < 1 {
		cfg.MaxSendRetries = 1
	}
	return &DeliveryService{
		db:         db,
		notifier:   notifier,
		matcher:    BirthdayMatcher{TriggerHour: cfg.TriggerHour},
		log:        log,
		maxRetries: cfg.MaxSendRetries,
		backoff:    cfg.RetryBackoff,
		now:        time.Now,
	}
}

// SendBulk processes every unsent user inside a single transaction. Either
// all matched users' status updates commit together or none do.
func (s *DeliveryService) SendBulk(ctx context.Context) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		users, err := s.fetchUnsent(tx)
		if err != nil {
			return err
		}
		return s.processBatch(ctx, tx, users)
	})
}

// SendDue processes every unsent user with immediate per-user writes. It is
// the scheduler's entry point; a failure for one user does not roll back
// deliveries already recorded for others.
func (s *DeliveryService) SendDue(ctx context.Context) {
	users, err := s.fetchUnsent(s.db.WithContext(ctx))
	if err != nil {
		s.log.Error("fetch unsent users failed", zap.Error(err))
		return
	}
	if err := s.processBatch(ctx, s.db.WithContext(ctx), users); err != nil {
		s.log.Error("delivery batch failed", zap.Error(err))
	}
}

func (s *DeliveryService) fetchUnsent(db *gorm.DB) ([]models.User, error) {
	var users []models.User
	if err := db.Where("status_message = ?", models.StatusUnsent).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// processBatch fans out one goroutine per matched user and waits for all of
// them. Updates share db, so they serialize behind a mutex; the first error
// wins and is returned after the batch drains.
func (s *DeliveryService) processBatch(ctx context.Context, db *gorm.DB, users []models.User) error {
	now := s.now()

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		batchErr error
	)

	for i := range users {
		user := users[i]
		if !s.matcher.Matches(&user, now) {
			continue
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := s.deliver(ctx, db, &mu, &user); err != nil {
				mu.Lock()
				if batchErr == nil {
					batchErr = err
				}
				mu.Unlock()
			}
		}()
	}

	wg.Wait()
	return batchErr
}

// deliver renders and sends one user's message, retrying transient failures
// up to maxRetries with a fixed backoff, then records the delivery.
func (s *DeliveryService) deliver(ctx context.Context, db *gorm.DB, mu *sync.Mutex, user *models.User) error {
	body := utils.RenderTemplate(user.Message, user)

	var (
		status  string
		sentAt  time.Time
		lastErr error
	)

	for attempt := 1; attempt <= s.maxRetries; attempt++ {
		status, sentAt, lastErr = s.notifier.Send(ctx, user.Email, body)
		if lastErr == nil {
			break
		}
		s.log.Warn("send failed",
			zap.String("email", user.Email),
			zap.Int("attempt", attempt),
			zap.Error(lastErr),
		)
		if attempt == s.maxRetries {
			return fmt.Errorf("send to %s: %w", user.Email, lastErr)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(s.backoff):
		}
	}

	newStatus := strings.ToUpper(status)
	if newStatus == "" {
		newStatus = models.StatusSent
	}

	mu.Lock()
	defer mu.Unlock()

	err := db.Model(&models.User{}).
		Where("id = ?", user.ID).
		Updates(map[string]interface{}{
			"status_message": newStatus,
			"sent_time":      sentAt,
		}).Error
	if err != nil {
		return fmt.Errorf("record delivery for %s: %w", user.Email, err)
	}

	s.log.Info("birthday email sent",
		zap.String("first_name", user.FirstName),
		zap.String("last_name", user.LastName),
		zap.String("email", user.Email),
		zap.Time("sent_time", sentAt),
	)
	return nil
}

// StartScheduler runs SendDue on a fixed period. The returned cron handle
// is owned by the caller and must be stopped on shutdown.
func (s *DeliveryService) StartScheduler(interval time.Duration) *cron.Cron {
	c := cron.New()

	c.AddFunc(fmt.Sprintf("@every %s", interval), func() {
		s.SendDue(context.Background())
	})

	c.Start()
	s.log.Info("delivery scheduler started", zap.Duration("interval", interval))
	return c
}
