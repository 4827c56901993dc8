package event

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	apperrors "github.com/eliezerphilippe0-spec/union-digitale-sub006/pkg/errors"
	pkgkafka "github.com/eliezerphilippe0-spec/union-digitale-sub006/pkg/kafka"
	"github.com/eliezerphilippe0-spec/union-digitale-sub006/services/commission/internal/domain"
	"github.com/eliezerphilippe0-spec/union-digitale-sub006/services/commission/internal/service"
)

// TopicPaymentSucceeded carries settled payments.
var TopicPaymentSucceeded = pkgkafka.Topic("payment", "succeeded")

// Recorder is satisfied by *service.CommissionService.
type Recorder interface {
	RecordCommission(ctx context.Context, in service.RecordInput) (*domain.Entry, bool, error)
}

// PaymentSucceededData is the payload of a payment.succeeded event.
// AffiliateID takes precedence over VendorID when both are set.
type PaymentSucceededData struct {
	OrderID     string          `json:"order_id"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	AffiliateID string          `json:"affiliate_id,omitempty"`
	VendorID    string          `json:"vendor_id,omitempty"`
}

// PaymentConsumer turns settled payments into ledger entries.
type PaymentConsumer struct {
	recorder Recorder
	logger   *slog.Logger
}

func NewPaymentConsumer(r Recorder, logger *slog.Logger) *PaymentConsumer {
	return &PaymentConsumer{recorder: r, logger: logger}
}

// HandlePaymentSucceeded records the commission of one payment. Storage
// errors are retried; undecodable or invalid payloads are dead-lettered at
// once. Replays are absorbed by the unique order id in the ledger.
func (c *PaymentConsumer) HandlePaymentSucceeded(ctx context.Context, ev *pkgkafka.Event) error {
	var data PaymentSucceededData
	if err := ev.Decode(&data); err != nil {
		return pkgkafka.Permanent(err)
	}

	in := service.RecordInput{
		OrderID:    data.OrderID,
		Category:   data.Category,
		SaleAmount: data.Amount,
	}
	switch {
	case data.AffiliateID != "":
		in.BeneficiaryID, in.BeneficiaryType = data.AffiliateID, domain.BeneficiaryAffiliate
	case data.VendorID != "":
		in.BeneficiaryID, in.BeneficiaryType = data.VendorID, domain.BeneficiaryVendor
	default:
		c.logger.DebugContext(ctx, "payment has no beneficiary, no commission owed",
			slog.String("event_id", ev.EventID),
			slog.String("order_id", data.OrderID),
		)
		return nil
	}

	if _, _, err := c.recorder.RecordCommission(ctx, in); err != nil {
		err = fmt.Errorf("record commission for order %s: %w", data.OrderID, err)
		if errors.Is(err, apperrors.ErrInvalidInput) {
			return pkgkafka.Permanent(err)
		}
		return err
	}
	return nil
}
