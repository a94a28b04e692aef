// internal/domain/payment/mercadopago_service.go
package payment

import (
	"context"
	"fmt"

	mpconfig "github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/preference"
	"github.com/sirupsen/logrus"

	"github.com/socdefainder-oss/pronto-backend/internal/config"
	"github.com/socdefainder-oss/pronto-backend/internal/domain/order"
)

// MercadoPagoService creates Mercado Pago checkout preferences for
// online payment methods (Pix, credit card).
type MercadoPagoService struct {
	client       preference.Client
	config       *config.Config
	orderService *order.Service
	logger       *logrus.Logger
}

// NewMercadoPagoService creates a new Mercado Pago payment service
func NewMercadoPagoService(cfg *config.Config, orderService *order.Service, logger *logrus.Logger) (*MercadoPagoService, error) {
	mpCfg, err := mpconfig.New(cfg.External.MercadoPago.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("failed to configure mercado pago: %w", err)
	}

	return &MercadoPagoService{
		client:       preference.NewClient(mpCfg),
		config:       cfg,
		orderService: orderService,
		logger:       logger,
	}, nil
}

// CreateCheckoutSession opens a Mercado Pago preference for the order
// and returns the init point URL the customer is redirected to. A
// payment row is recorded against the order on success.
func (s *MercadoPagoService) CreateCheckoutSession(ctx context.Context, o *order.Order) (string, error) {
	if o.Status == order.OrderStatusCancelled {
		return "", fmt.Errorf("cannot open payment session for cancelled order %s", o.OrderNumber)
	}

	request := preference.Request{
		ExternalReference: o.OrderNumber,
		Items:             s.buildItems(o),
		Payer: &preference.PayerRequest{
			Name:  o.CustomerName,
			Email: o.CustomerEmail,
		},
		BackURLs: &preference.BackURLsRequest{
			Success: s.config.External.MercadoPago.SuccessURL,
			Failure: s.config.External.MercadoPago.FailureURL,
			Pending: s.config.External.MercadoPago.PendingURL,
		},
	}

	resp, err := s.client.Create(ctx, request)
	if err != nil {
		return "", fmt.Errorf("failed to create payment preference: %w", err)
	}

	payment := &order.Payment{
		PaymentMethod:     o.PaymentMethod,
		PaymentProviderID: resp.ID,
		RedirectURL:       resp.InitPoint,
		Amount:            o.TotalAmount,
		Currency:          o.Currency,
		Status:            order.PaymentStatusProcessing,
	}
	if err := s.orderService.AttachPayment(ctx, o.ID, payment); err != nil {
		// The provider session exists; losing the local row is
		// recoverable from the external reference.
		s.logger.WithFields(logrus.Fields{
			"order_number":  o.OrderNumber,
			"preference_id": resp.ID,
		}).WithError(err).Error("Failed to record payment session")
	}

	s.logger.WithFields(logrus.Fields{
		"order_number":  o.OrderNumber,
		"preference_id": resp.ID,
	}).Info("Payment session created")

	return resp.InitPoint, nil
}

// buildItems maps order lines to preference items. Discounts and the
// delivery fee are folded into a single adjustment line so the
// preference total matches the order total.
func (s *MercadoPagoService) buildItems(o *order.Order) []preference.ItemRequest {
	items := make([]preference.ItemRequest, 0, len(o.Items)+1)
	for _, line := range o.Items {
		items = append(items, preference.ItemRequest{
			ID:         fmt.Sprintf("%d", line.ProductID),
			Title:      line.Name,
			Quantity:   line.Quantity,
			UnitPrice:  float64(line.Price) / 100,
			CurrencyID: o.Currency,
		})
	}

	adjustment := o.DeliveryFeeAmount - o.DiscountAmount
	if adjustment != 0 {
		items = append(items, preference.ItemRequest{
			ID:         "adjustment",
			Title:      "Delivery fee and discounts",
			Quantity:   1,
			UnitPrice:  float64(adjustment) / 100,
			CurrencyID: o.Currency,
		})
	}

	return items
}
