package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"artisan_market/internal/domain"
	"artisan_market/internal/notify"
	"artisan_market/internal/payment"
	"artisan_market/internal/repository"
	"artisan_market/internal/testutil"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const gatewaySecret = "gw-secret"

type fixture struct {
	db        *gorm.DB
	users     *repository.UserRepo
	arts      *repository.ArtRepo
	carts     *repository.CartRepo
	wishlists *repository.WishlistRepo
	purchases *repository.PurchaseRepo
	artist    domain.User
	buyer     domain.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gdb := testutil.NewDB(t)
	return &fixture{
		db:        gdb,
		users:     repository.NewUserRepository(gdb),
		arts:      repository.NewArtRepository(gdb),
		carts:     repository.NewCartRepository(gdb),
		wishlists: repository.NewWishlistRepository(gdb),
		purchases: repository.NewPurchaseRepository(gdb),
		artist:    testutil.CreateUser(t, gdb, "Meera", domain.RoleArtist),
		buyer:     testutil.CreateUser(t, gdb, "Arjun", domain.RoleBuyer),
	}
}

func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

// recordingMailer captures confirmations instead of sending them
type recordingMailer struct {
	mu   sync.Mutex
	sent []notify.OrderConfirmation
}

func (m *recordingMailer) SendOrderConfirmation(msg notify.OrderConfirmation) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, msg)
}

func (m *recordingMailer) messages() []notify.OrderConfirmation {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]notify.OrderConfirmation(nil), m.sent...)
}

// MockGateway is a testify mock of payment.Gateway
type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) CreateIntent(ctx context.Context, amountMinor int64, currency, receipt string) (*payment.Intent, error) {
	args := m.Called(ctx, amountMinor, currency, receipt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Intent), args.Error(1)
}

func (m *MockGateway) KeyID() string {
	return m.Called().String(0)
}

// flakyPurchases fails the n-th Create and lets every other call through
type flakyPurchases struct {
	repository.PurchaseRepository
	failOn int32
	calls  atomic.Int32
}

var errDiskFull = errors.New("disk full")

func (f *flakyPurchases) Create(ctx context.Context, p *domain.Purchase) error {
	if f.calls.Add(1) == f.failOn {
		return errDiskFull
	}
	return f.PurchaseRepository.Create(ctx, p)
}

// racingPurchases lets another writer change a purchase's shipping status right after it is read
type racingPurchases struct {
	repository.PurchaseRepository
	db         *gorm.DB
	concurrent string
}

func (r *racingPurchases) FindByID(ctx context.Context, id uint) (*domain.Purchase, error) {
	p, err := r.PurchaseRepository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	err = r.db.Model(&domain.Purchase{}).Where("id = ?", id).Update("shipping_status", r.concurrent).Error
	return p, err
}

func sampleAddress() domain.ShippingAddress {
	return domain.ShippingAddress{
		FullName:     "Arjun Rao",
		Phone:        "9876543210",
		AddressLine1: "12 MG Road",
		City:         "Bengaluru",
		State:        "Karnataka",
		Pincode:      "560001",
	}
}

func allPurchases(t *testing.T, gdb *gorm.DB) []domain.Purchase {
	t.Helper()
	var ps []domain.Purchase
	require.NoError(t, gdb.Order("id ASC").Find(&ps).Error)
	return ps
}
