package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/vendorbuddy/marketplace-service/internal/config"
	"github.com/vendorbuddy/marketplace-service/internal/events"
)

// NotificationService handles emitting notifications for domain events,
// in particular low-stock alerts for suppliers.
type NotificationService struct {
	dispatcher        events.Dispatcher
	logger            *zap.Logger
	cfg               config.NotificationConfig
	lowStockThreshold int
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.NotificationConfig, lowStockThreshold int) *NotificationService {
	return &NotificationService{
		dispatcher:        dispatcher,
		logger:            logger,
		cfg:               cfg,
		lowStockThreshold: lowStockThreshold,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventStockAdjusted, n.handleStockAdjusted)
	n.dispatcher.Subscribe(events.EventOrderPlaced, n.handleOrderPlaced)
	n.dispatcher.Subscribe(events.EventProductCreated, n.handleProductCreated)
}

func (n *NotificationService) handleStockAdjusted(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.StockAdjustedPayload)
	if !ok {
		return nil
	}
	n.logger.Info("StockAdjusted",
		zap.String("product_id", event.ProductID),
		zap.Int("old_stock", payload.OldStock),
		zap.Int("new_stock", payload.NewStock))

	// alert only on downward crossings so restocks stay quiet
	if payload.NewStock <= n.lowStockThreshold && payload.NewStock < payload.OldStock {
		n.logger.Warn("low stock",
			zap.String("product_id", event.ProductID),
			zap.String("supplier_id", payload.SupplierID),
			zap.String("name", payload.Name),
			zap.Int("stock", payload.NewStock))
		n.sendWebhookNotificationStub(ctx, event)
	}
	return nil
}

func (n *NotificationService) handleOrderPlaced(ctx context.Context, event events.Event) error {
	n.logger.Info("OrderPlaced", zap.Any("payload", event.Payload))
	n.sendEmailNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleProductCreated(ctx context.Context, event events.Event) error {
	n.logger.Info("ProductCreated", zap.String("product_id", event.ProductID), zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) sendEmailNotificationStub(ctx context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.EmailFrom) == "" {
		return
	}
	n.logger.Debug("sendEmailNotificationStub",
		zap.String("from", n.cfg.EmailFrom),
		zap.String("event_type", string(event.Type)))
}

func (n *NotificationService) sendWebhookNotificationStub(ctx context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookNotificationStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.String("event_type", string(event.Type)))
}
