package utils

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lettingshub/app-tenancy/internal/config"
	"github.com/lettingshub/app-tenancy/internal/logging"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// ActivityLog is one best-effort activity record. Failures writing these
// never propagate to the user-visible outcome of the action being logged.
type ActivityLog struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ApplicationID string             `bson:"application_id,omitempty" json:"application_id,omitempty"`
	Action        string             `bson:"action" json:"action"`
	Actor         string             `bson:"actor" json:"actor"`
	Details       string             `bson:"details,omitempty" json:"details,omitempty"`
	IPAddress     string             `bson:"ip_address,omitempty" json:"ip_address,omitempty"`
	RequestID     string             `bson:"request_id,omitempty" json:"request_id,omitempty"`
	Timestamp     time.Time          `bson:"timestamp" json:"timestamp"`
}

// Activity actions
const (
	ActivityActionSubmit       = "SUBMIT"
	ActivityActionStatusChange = "STATUS_CHANGE"
	ActivityActionExport       = "EXPORT"
	ActivityActionPDFDownload  = "PDF_DOWNLOAD"
	ActivityActionEmailSent    = "EMAIL_SENT"
	ActivityActionEmailFailed  = "EMAIL_FAILED"
)

// ActivityContext carries request attribution for activity logging.
type ActivityContext struct {
	Actor     string
	IPAddress string
	RequestID string
}

// ActivityWorker manages asynchronous activity logging
type ActivityWorker struct {
	activityChan chan ActivityLog
	workers      int
	wg           sync.WaitGroup
	ctx          context.Context
	cancel       context.CancelFunc
}

var (
	activityWorker *ActivityWorker
	once           sync.Once
)

// InitActivityWorker initializes the activity worker
func InitActivityWorker(workers int, bufferSize int) {
	once.Do(func() {
		ctx, cancel := context.WithCancel(context.Background())
		activityWorker = &ActivityWorker{
			activityChan: make(chan ActivityLog, bufferSize),
			workers:      workers,
			ctx:          ctx,
			cancel:       cancel,
		}
		activityWorker.start()
	})
}

func (aw *ActivityWorker) start() {
	aw.wg.Add(aw.workers)

	for i := 0; i < aw.workers; i++ {
		go func() {
			defer aw.wg.Done()
			aw.processActivityLogs()
		}()
	}

	logging.Logger.Info("activity worker started",
		zap.Int("workers", aw.workers),
		zap.Int("buffer_size", cap(aw.activityChan)))
}

// processActivityLogs drains the channel in batches to keep Mongo round
// trips off the request path.
func (aw *ActivityWorker) processActivityLogs() {
	batchTicker := time.NewTicker(100 * time.Millisecond)
	defer batchTicker.Stop()

	var batch []ActivityLog
	batchSize := 100

	for {
		select {
		case entry, ok := <-aw.activityChan:
			if !ok {
				if len(batch) > 0 {
					aw.flushBatch(batch)
				}
				return
			}
			batch = append(batch, entry)

			if len(batch) >= batchSize {
				aw.flushBatch(batch)
				batch = batch[:0]
			}
		case <-batchTicker.C:
			if len(batch) > 0 {
				aw.flushBatch(batch)
				batch = batch[:0]
			}
		}
	}
}

func (aw *ActivityWorker) flushBatch(batch []ActivityLog) {
	if len(batch) == 0 {
		return
	}

	logger := logging.Logger.With(
		zap.Int("batch_size", len(batch)),
		zap.String("operation", "activity_batch_insert"),
	)

	var operations []mongo.WriteModel
	for _, entry := range batch {
		operations = append(operations, mongo.NewInsertOneModel().SetDocument(entry))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	opts := options.BulkWrite().SetOrdered(false)

	result, err := config.MongoDB.Collection(config.AppConfig.ActivityLogCollection).BulkWrite(ctx, operations, opts)
	if err != nil {
		logger.Error("failed to insert activity log batch", zap.Error(err))
		return
	}

	logger.Debug("activity log batch inserted",
		zap.Int64("inserted", result.InsertedCount))
}

// Stop stops the activity worker
func (aw *ActivityWorker) Stop() {
	if aw != nil {
		aw.cancel()
		close(aw.activityChan)
		aw.wg.Wait()
	}
}

// GetActivityWorker returns the global activity worker instance
func GetActivityWorker() *ActivityWorker {
	return activityWorker
}

// LogActivity records an activity entry asynchronously. It never blocks the
// caller: a full buffer falls back to a synchronous insert, and a disabled
// or uninitialized logger drops the entry.
func LogActivity(ctx context.Context, actCtx ActivityContext, applicationID, action, details string) error {
	if config.AppConfig == nil || !config.AppConfig.ActivityLogsEnabled {
		return nil
	}

	entry := ActivityLog{
		ApplicationID: applicationID,
		Action:        action,
		Actor:         actCtx.Actor,
		Details:       details,
		IPAddress:     actCtx.IPAddress,
		RequestID:     actCtx.RequestID,
		Timestamp:     time.Now(),
	}

	if activityWorker == nil {
		return logActivitySync(entry)
	}

	select {
	case activityWorker.activityChan <- entry:
		return nil
	default:
		logging.Logger.Warn("activity channel full, falling back to synchronous logging",
			zap.String("action", action))
		return logActivitySync(entry)
	}
}

func logActivitySync(entry ActivityLog) error {
	dbCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := config.MongoDB.Collection(config.AppConfig.ActivityLogCollection).InsertOne(dbCtx, entry)
	if err != nil {
		logging.Logger.Error("failed to insert activity log",
			zap.String("action", entry.Action),
			zap.Error(err))
		return fmt.Errorf("failed to insert activity log: %w", err)
	}

	return nil
}

// GetActivityContextFromGin extracts activity attribution from a Gin context
func GetActivityContextFromGin(c *gin.Context, actor string) ActivityContext {
	return ActivityContext{
		Actor:     actor,
		IPAddress: c.ClientIP(),
		RequestID: c.GetString("RequestID"),
	}
}
