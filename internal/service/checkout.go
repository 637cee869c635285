// Package service holds the marketplace use cases. Every method returns
// *apperr.Error values that handlers map straight onto HTTP statuses.
package service

import (
	"context"
	"math"
	"strconv"
	"time"

	"artisan_market/internal/apperr"
	"artisan_market/internal/domain"
	"artisan_market/internal/notify"
	"artisan_market/internal/payment"
	"artisan_market/internal/repository"
	"artisan_market/internal/utils"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// maxConcurrentUnitWrites bounds the goroutines writing purchase units of one checkout
const maxConcurrentUnitWrites = 8

// CheckoutLine is one cart line as submitted by the client
type CheckoutLine struct {
	ArtID    uint
	Quantity int
	Price    float64 // Unit price as displayed to the buyer
}

// CheckoutRequest is the validated input shared by the COD and online flows
type CheckoutRequest struct {
	BuyerID         uint
	Lines           []CheckoutLine
	ShippingAddress domain.ShippingAddress
}

// PaymentProof is what the gateway hands the client after a successful payment
type PaymentProof struct {
	IntentID      string
	TransactionID string
	Signature     string
}

// PaymentIntentResult is returned to the client to open the gateway's payment modal
type PaymentIntentResult struct {
	OrderID  string
	Amount   int64
	Currency string
	Key      string
}

// OrderReceipt describes a materialized order
type OrderReceipt struct {
	BatchID string
	Units   int
	Total   float64
	Method  string
}

// authorization proves a payment was accepted. Only authorizeCOD and
// authorizeOnline produce one, and materialize refuses to run without it.
type authorization struct {
	method    string
	reference string
}

// CheckoutService turns a cart into purchase records
type CheckoutService struct {
	arts      repository.ArtRepository
	purchases repository.PurchaseRepository
	users     repository.UserRepository
	gateway   payment.Gateway
	secret    string
	rdb       *redis.Client
	mailer    notify.Mailer
	now       func() time.Time
}

// NewCheckoutService wires the checkout pipeline. gateway may be nil when online payment is not configured.
func NewCheckoutService(
	arts repository.ArtRepository,
	purchases repository.PurchaseRepository,
	users repository.UserRepository,
	gateway payment.Gateway,
	gatewaySecret string,
	rdb *redis.Client,
	mailer notify.Mailer,
) *CheckoutService {
	if mailer == nil {
		mailer = notify.NopMailer{}
	}
	return &CheckoutService{
		arts:      arts,
		purchases: purchases,
		users:     users,
		gateway:   gateway,
		secret:    gatewaySecret,
		rdb:       rdb,
		mailer:    mailer,
		now:       time.Now,
	}
}

// PlaceCOD materializes a cash-on-delivery order
func (s *CheckoutService) PlaceCOD(ctx context.Context, req CheckoutRequest) (*OrderReceipt, error) {
	if err := validateCheckout(req); err != nil {
		return nil, err
	}
	arts, err := s.resolve(ctx, req.Lines)
	if err != nil {
		return nil, err
	}
	return s.materialize(ctx, req, arts, authorizeCOD())
}

// CreatePaymentIntent opens a gateway order for amount, given in major units
func (s *CheckoutService) CreatePaymentIntent(ctx context.Context, buyerID uint, amount float64) (*PaymentIntentResult, error) {
	if amount <= 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return nil, apperr.Validation("Invalid amount")
	}
	if s.gateway == nil {
		return nil, apperr.Internal("Error creating payment order", errGatewayNotConfigured)
	}
	receipt := "receipt_" + strconv.FormatInt(s.now().UnixMilli(), 10)
	intent, err := s.gateway.CreateIntent(ctx, payment.ToMinorUnits(amount), payment.Currency, receipt)
	if err != nil {
		return nil, apperr.Internal("Error creating payment order", err)
	}
	logrus.WithFields(logrus.Fields{
		"buyer_id":  buyerID,
		"intent_id": intent.ID,
		"amount":    intent.Amount,
		"receipt":   receipt,
		"state":     "intent_created",
	}).Info("Payment intent created")
	return &PaymentIntentResult{
		OrderID:  intent.ID,
		Amount:   intent.Amount,
		Currency: intent.Currency,
		Key:      s.gateway.KeyID(),
	}, nil
}

// VerifyAndPlace checks the gateway signature and, only when it matches, materializes the order
func (s *CheckoutService) VerifyAndPlace(ctx context.Context, proof PaymentProof, req CheckoutRequest) (*OrderReceipt, error) {
	if err := validateCheckout(req); err != nil {
		return nil, err
	}
	auth, err := s.authorizeOnline(req.BuyerID, proof)
	if err != nil {
		return nil, err
	}
	arts, err := s.resolve(ctx, req.Lines)
	if err != nil {
		return nil, err
	}
	return s.materialize(ctx, req, arts, auth)
}

func validateCheckout(req CheckoutRequest) error {
	if len(req.Lines) == 0 {
		return apperr.Validation("Cart is empty")
	}
	if req.ShippingAddress.FullName == "" {
		return apperr.Validation("Shipping address is required")
	}
	for _, l := range req.Lines {
		if l.Quantity < 1 {
			return apperr.Validation("Quantity must be at least 1")
		}
		if l.Quantity > domain.MaxLineQuantity {
			return apperr.Validation("Quantity cannot exceed " + strconv.Itoa(domain.MaxLineQuantity))
		}
		if l.Price < 0 {
			return apperr.Validation("Invalid item price")
		}
	}
	return nil
}

func authorizeCOD() authorization {
	return authorization{method: domain.PaymentCOD}
}

func (s *CheckoutService) authorizeOnline(buyerID uint, proof PaymentProof) (authorization, error) {
	if !payment.VerifySignature(s.secret, proof.IntentID, proof.TransactionID, proof.Signature) {
		logrus.WithFields(logrus.Fields{
			"buyer_id":  buyerID,
			"intent_id": proof.IntentID,
			"state":     "rejected",
		}).Warn("Payment signature mismatch")
		return authorization{}, apperr.New(apperr.KindPaymentVerification, "Payment verification failed")
	}
	return authorization{method: domain.PaymentOnline, reference: proof.TransactionID}, nil
}

// resolve looks up every requested listing. Ids are taken verbatim, so a repeated id
// or a deleted listing makes the counts differ and aborts the whole order.
func (s *CheckoutService) resolve(ctx context.Context, lines []CheckoutLine) (map[uint]domain.Art, error) {
	ids := make([]uint, len(lines))
	for i, l := range lines {
		ids[i] = l.ArtID
	}
	found, err := s.arts.FindByIDs(ctx, ids)
	if err != nil {
		return nil, apperr.Internal("Error processing order", err)
	}
	if len(found) != len(ids) {
		return nil, apperr.Integrity("Some items in your cart are no longer available")
	}
	arts := make(map[uint]domain.Art, len(found))
	for _, a := range found {
		arts[a.ID] = a
	}
	for _, l := range lines {
		if a := arts[l.ArtID]; a.Price != l.Price {
			logrus.WithFields(logrus.Fields{
				"art_id":       l.ArtID,
				"listed_price": a.Price,
				"client_price": l.Price,
			}).Warn("Checkout price differs from listing")
		}
	}
	return arts, nil
}

// materialize writes one purchase per unit of quantity. All units share a batch id;
// if any write fails the units already written are deleted again.
func (s *CheckoutService) materialize(ctx context.Context, req CheckoutRequest, arts map[uint]domain.Art, auth authorization) (*OrderReceipt, error) {
	batchID := uuid.NewString()
	now := s.now()
	eta := now.Add(domain.DeliveryWindow)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentUnitWrites)
	units := 0
	total := decimal.Zero
	for _, line := range req.Lines {
		art := arts[line.ArtID]
		for q := 0; q < line.Quantity; q++ {
			p := &domain.Purchase{
				BatchID:           batchID,
				ArtID:             art.ID,
				BuyerID:           req.BuyerID,
				ArtistID:          art.ArtistID,
				Price:             line.Price,
				ArtTitle:          art.Title,
				ArtImage:          art.ImageURL,
				ArtCategory:       art.Category,
				Status:            domain.StatusCompleted,
				ShippingStatus:    domain.ShippingProcessing,
				EstimatedDelivery: eta,
				ShippingAddress:   req.ShippingAddress,
				PaymentMethod:     auth.method,
			}
			units++
			total = total.Add(decimal.NewFromFloat(line.Price))
			g.Go(func() error {
				return s.purchases.Create(gctx, p)
			})
		}
	}

	if err := g.Wait(); err != nil {
		// The request context may already be cancelled; cleanup must still run
		removed, delErr := s.purchases.DeleteBatch(context.WithoutCancel(ctx), batchID)
		fields := logrus.Fields{
			"batch_id": batchID,
			"buyer_id": req.BuyerID,
			"units":    units,
			"removed":  removed,
			"method":   auth.method,
			"error":    err.Error(),
		}
		if delErr != nil {
			fields["cleanup_error"] = delErr.Error()
			logrus.WithFields(fields).Error("Order compensation failed")
		} else {
			logrus.WithFields(fields).Warn("Order rolled back")
		}
		return nil, apperr.Internal("Error processing order", err)
	}

	receipt := &OrderReceipt{
		BatchID: batchID,
		Units:   units,
		Total:   total.InexactFloat64(),
		Method:  auth.method,
	}
	logrus.WithFields(logrus.Fields{
		"batch_id":  batchID,
		"buyer_id":  req.BuyerID,
		"units":     units,
		"total":     total.StringFixed(2),
		"method":    auth.method,
		"reference": auth.reference,
		"state":     "authorized",
	}).Info("Order placed")

	s.afterOrder(ctx, req, arts, receipt)
	return receipt, nil
}

// afterOrder drops stale dashboards and sends the confirmation mail. Neither affects the order.
func (s *CheckoutService) afterOrder(ctx context.Context, req CheckoutRequest, arts map[uint]domain.Art, receipt *OrderReceipt) {
	keys := make([]string, 0, len(arts))
	seen := make(map[uint]bool, len(arts))
	for _, a := range arts {
		if !seen[a.ArtistID] {
			seen[a.ArtistID] = true
			keys = append(keys, utils.ArtistStatsCacheKey(a.ArtistID))
		}
	}
	if err := utils.DeleteCache(ctx, s.rdb, keys...); err != nil {
		logrus.WithError(err).Warn("Failed to invalidate artist stats cache")
	}

	buyer, err := s.users.FindByID(ctx, req.BuyerID)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"buyer_id": req.BuyerID,
			"error":    err.Error(),
		}).Warn("Skipping order confirmation mail")
		return
	}
	msg := notify.OrderConfirmation{
		To:            buyer.Email,
		BuyerName:     buyer.Name,
		PaymentMethod: receipt.Method,
		Total:         receipt.Total,
	}
	for _, l := range req.Lines {
		msg.Lines = append(msg.Lines, notify.OrderLine{Title: arts[l.ArtID].Title, Quantity: l.Quantity, Price: l.Price})
	}
	s.mailer.SendOrderConfirmation(msg)
}
