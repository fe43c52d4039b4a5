package cron

import (
	"context"
	"time"

	"detailing/config"
	"detailing/models"
	"detailing/services/notification"
	"detailing/services/tasks"
	"detailing/utils"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// BookingStatusLookup lets the worker drop reminders for bookings that were cancelled meanwhile.
type BookingStatusLookup interface {
	GetByID(ctx context.Context, id string) (*models.Booking, error)
}

// QueueRedisOpt is the asynq connection for the e-mail queue.
func QueueRedisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// InitEmailWorker runs the async worker in background and returns it for shutdown.
func InitEmailWorker(sender notification.Sender, bookings BookingStatusLookup) *asynq.Server {
	logger := utils.GetLogger()

	srv := asynq.NewServer(
		QueueRedisOpt(),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeEmailSend, HandleEmailTask(sender, bookings))

	go monitorRedisConnection()

	go func() {
		logger.Info("[EmailWorker] starting async worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			err := srv.Run(mux)
			if err == nil {
				break
			}
			logger.Error("[EmailWorker] failed to start worker",
				zap.Int("attempt", attempts), zap.Int("maxAttempts", maxAttempts), zap.Error(err))
			if attempts == maxAttempts {
				logger.Fatal("[EmailWorker] max retry attempts reached, exiting")
			}
			time.Sleep(time.Duration(attempts*2) * time.Second)
		}
	}()
	return srv
}

// HandleEmailTask sends one queued e-mail.
func HandleEmailTask(sender notification.Sender, bookings BookingStatusLookup) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		logger := utils.GetLogger()

		p, err := tasks.ParseEmailPayload(task)
		if err != nil {
			logger.Error("[EmailHandler] invalid payload", zap.Error(err))
			// Retrying cannot fix a malformed payload.
			return asynq.SkipRetry
		}

		if p.Kind == notification.KindReminder && bookings != nil && p.BookingID != "" {
			b, err := bookings.GetByID(ctx, p.BookingID)
			if err != nil {
				logger.Warn("[EmailHandler] reminder for unknown booking dropped",
					zap.String("bookingID", p.BookingID), zap.Error(err))
				return nil
			}
			if b.Status == models.BookingStatusCancelled {
				logger.Info("[EmailHandler] reminder for cancelled booking dropped", zap.String("bookingID", p.BookingID))
				return nil
			}
		}

		if err := sender.Send(ctx, p.To, p.Subject, p.Body); err != nil {
			logger.Error("[EmailHandler] send failed",
				zap.String("kind", p.Kind), zap.String("bookingID", p.BookingID), zap.Error(err))
			return err
		}
		logger.Info("[EmailHandler] e-mail sent", zap.String("kind", p.Kind), zap.String("bookingID", p.BookingID))
		return nil
	}
}

// monitorRedisConnection pings Redis periodically to detect failures at runtime.
func monitorRedisConnection() {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})

	ctx := context.Background()
	for {
		if err := client.Ping(ctx).Err(); err != nil {
			utils.GetLogger().Warn("[EmailWorker] Redis connection lost", zap.Error(err))
		}
		time.Sleep(10 * time.Second)
	}
}
