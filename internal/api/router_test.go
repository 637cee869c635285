package api

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	"artisan_market/internal/app"
	"artisan_market/internal/config"
	"artisan_market/internal/domain"
	"artisan_market/internal/middleware"
	"artisan_market/internal/notify"
	"artisan_market/internal/payment"
	"artisan_market/internal/testutil"
	"artisan_market/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const gatewaySecret = "gw-secret"

type stubGateway struct{}

func (stubGateway) CreateIntent(_ context.Context, amountMinor int64, currency, receipt string) (*payment.Intent, error) {
	return &payment.Intent{ID: "order_stub", Amount: amountMinor, Currency: currency, Receipt: receipt}, nil
}

func (stubGateway) KeyID() string { return "rzp_test_key" }

type stubUploader struct{ paths []string }

func (s *stubUploader) UploadFile(_ context.Context, _ *multipart.FileHeader, path string) (string, error) {
	s.paths = append(s.paths, path)
	return "https://cdn.example.com/" + path, nil
}

type harness struct {
	router   *gin.Engine
	db       *gorm.DB
	uploader *stubUploader
	artist   domain.User
	buyer    domain.User
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	gdb := testutil.NewDB(t)
	up := &stubUploader{}
	cfg := &config.Config{JWTSecret: testutil.JWTSecret, RazorpayKeySecret: gatewaySecret, CacheTTL: time.Minute}
	a, err := app.New(context.Background(), cfg, gdb, nil,
		app.WithGateway(stubGateway{}),
		app.WithUploader(up),
		app.WithMailer(notify.NopMailer{}),
	)
	require.NoError(t, err)
	r := gin.New()
	RegisterRoutes(r, a)
	return &harness{
		router:   r,
		db:       gdb,
		uploader: up,
		artist:   testutil.CreateUser(t, gdb, "Meera", domain.RoleArtist),
		buyer:    testutil.CreateUser(t, gdb, "Arjun", domain.RoleBuyer),
	}
}

func (h *harness) do(t *testing.T, method, path string, as *domain.User, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if as != nil {
		req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: testutil.Token(t, *as)})
	}
	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	out := map[string]any{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func address() gin.H {
	return gin.H{
		"fullName":     "Arjun Rao",
		"phone":        "+919876543210",
		"addressLine1": "12 MG Road",
		"city":         "Bengaluru",
		"state":        "Karnataka",
		"pincode":      "560001",
	}
}

func TestProtectedRoutesRequireSession(t *testing.T) {
	h := newHarness(t)
	for _, path := range []string{"/api/orders", "/api/cart", "/api/profile"} {
		w := h.do(t, http.MethodGet, path, nil, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
		assert.JSONEq(t, `{"message":"Not authenticated"}`, w.Body.String())
	}
}

func TestAuthStatus(t *testing.T) {
	h := newHarness(t)
	assert.JSONEq(t, `{"isAuthenticated":false}`, h.do(t, http.MethodGet, "/api/auth/status", nil, nil).Body.String())
	assert.JSONEq(t, `{"isAuthenticated":true}`, h.do(t, http.MethodGet, "/api/auth/status", &h.buyer, nil).Body.String())
}

func TestCODCheckoutWritesOnePurchasePerUnit(t *testing.T) {
	h := newHarness(t)
	vase := testutil.CreateArt(t, h.db, h.artist.ID, "Vase", 1200, "Pottery")
	scarf := testutil.CreateArt(t, h.db, h.artist.ID, "Scarf", 850, "Textile")

	w := h.do(t, http.MethodPost, "/api/checkout", &h.buyer, gin.H{
		"items": []gin.H{
			{"id": vase.ID, "quantity": 2, "price": 1200},
			{"id": scarf.ID, "quantity": 1, "price": 850},
		},
		"shippingAddress": address(),
		"paymentMethod":   "cod",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{"message":"Order placed successfully","success":true}`, w.Body.String())
	assert.EqualValues(t, 3, testutil.CountPurchases(t, h.db))

	orders := decode(t, h.do(t, http.MethodGet, "/api/orders", &h.buyer, nil))
	assert.Len(t, orders["activeOrders"], 3)
	assert.Len(t, orders["pastOrders"], 0)
}

func TestCheckoutRejectsOnlineAndUnknownMethods(t *testing.T) {
	h := newHarness(t)
	vase := testutil.CreateArt(t, h.db, h.artist.ID, "Vase", 1200, "Pottery")
	items := []gin.H{{"id": vase.ID, "quantity": 1, "price": 1200}}

	w := h.do(t, http.MethodPost, "/api/checkout", &h.buyer, gin.H{"items": items, "shippingAddress": address(), "paymentMethod": "online"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = h.do(t, http.MethodPost, "/api/checkout", &h.buyer, gin.H{"items": items, "shippingAddress": address(), "paymentMethod": "barter"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"message":"Invalid payment method"}`, w.Body.String())

	assert.EqualValues(t, 0, testutil.CountPurchases(t, h.db))
}

func TestCheckoutRejectsMalformedPincode(t *testing.T) {
	h := newHarness(t)
	vase := testutil.CreateArt(t, h.db, h.artist.ID, "Vase", 1200, "Pottery")
	addr := address()
	addr["pincode"] = "0123"

	w := h.do(t, http.MethodPost, "/api/checkout", &h.buyer, gin.H{
		"items":           []gin.H{{"id": vase.ID, "quantity": 1, "price": 1200}},
		"shippingAddress": addr,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.EqualValues(t, 0, testutil.CountPurchases(t, h.db))
}

func TestCheckoutRejectsHugeQuantity(t *testing.T) {
	h := newHarness(t)
	vase := testutil.CreateArt(t, h.db, h.artist.ID, "Vase", 1200, "Pottery")

	w := h.do(t, http.MethodPost, "/api/checkout", &h.buyer, gin.H{
		"items":           []gin.H{{"id": vase.ID, "quantity": 10000000, "price": 1200}},
		"shippingAddress": address(),
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.EqualValues(t, 0, testutil.CountPurchases(t, h.db))
}

func TestPaymentFlow(t *testing.T) {
	h := newHarness(t)
	vase := testutil.CreateArt(t, h.db, h.artist.ID, "Vase", 1200, "Pottery")

	w := h.do(t, http.MethodPost, "/api/payment/create-order", &h.buyer, gin.H{"amount": 1200.5})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	intent := decode(t, w)
	assert.Equal(t, "order_stub", intent["orderId"])
	assert.EqualValues(t, 120050, intent["amount"])
	assert.Equal(t, "INR", intent["currency"])
	assert.Equal(t, "rzp_test_key", intent["key"])

	body := gin.H{
		"razorpay_order_id":   "order_stub",
		"razorpay_payment_id": "pay_1",
		"razorpay_signature":  payment.Sign(gatewaySecret, "order_stub", "pay_2"),
		"items":               []gin.H{{"id": vase.ID, "quantity": 1, "price": 1200}},
		"shippingAddress":     address(),
	}
	w = h.do(t, http.MethodPost, "/api/payment/verify-payment", &h.buyer, body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.EqualValues(t, 0, testutil.CountPurchases(t, h.db))

	body["razorpay_signature"] = payment.Sign(gatewaySecret, "order_stub", "pay_1")
	w = h.do(t, http.MethodPost, "/api/payment/verify-payment", &h.buyer, body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.EqualValues(t, 1, testutil.CountPurchases(t, h.db))

	var method string
	require.NoError(t, h.db.Model(&domain.Purchase{}).Select("payment_method").Scan(&method).Error)
	assert.Equal(t, domain.PaymentOnline, method)
}

func TestCreatePaymentOrderRejectsNonPositiveAmount(t *testing.T) {
	h := newHarness(t)
	w := h.do(t, http.MethodPost, "/api/payment/create-order", &h.buyer, gin.H{"amount": 0})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestArtistOnlyRoutes(t *testing.T) {
	h := newHarness(t)

	w := h.do(t, http.MethodGet, "/api/profile/artist-stats", &h.buyer, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.JSONEq(t, `{"message":"Access denied. Artists only."}`, w.Body.String())

	w = h.do(t, http.MethodGet, "/api/profile/artist-stats", &h.artist, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = h.do(t, http.MethodPost, "/api/art", &h.buyer, gin.H{"title": "Vase", "price": 10, "category": "Pottery", "imageUrl": "https://img.example.com/v.jpg"})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestShippingUpdateThroughRouter(t *testing.T) {
	h := newHarness(t)
	vase := testutil.CreateArt(t, h.db, h.artist.ID, "Vase", 1200, "Pottery")
	p := testutil.CreatePurchase(t, h.db, vase, h.buyer.ID, 1200, domain.ShippingProcessing, time.Now())
	path := "/api/orders/" + utils.UintToString(p.ID) + "/shipping"

	w := h.do(t, http.MethodPatch, path, &h.artist, gin.H{"shippingStatus": "shipped"})
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = h.do(t, http.MethodPatch, path, &h.artist, gin.H{"shippingStatus": "processing"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = h.do(t, http.MethodPatch, "/api/orders/abc/shipping", &h.artist, gin.H{"shippingStatus": "shipped"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCartAndWishlistRoutes(t *testing.T) {
	h := newHarness(t)
	vase := testutil.CreateArt(t, h.db, h.artist.ID, "Vase", 1200, "Pottery")

	w := h.do(t, http.MethodPost, "/api/cart", &h.buyer, gin.H{"artId": vase.ID})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	w = h.do(t, http.MethodPost, "/api/cart", &h.buyer, gin.H{"artId": vase.ID})
	require.Equal(t, http.StatusOK, w.Code)
	cart := decode(t, w)["cart"].(map[string]any)
	items := cart["items"].([]any)
	require.Len(t, items, 1)
	assert.EqualValues(t, 2, items[0].(map[string]any)["quantity"])

	w = h.do(t, http.MethodPost, "/api/cart", &h.buyer, gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = h.do(t, http.MethodPost, "/api/wishlist", &h.buyer, gin.H{"artId": vase.ID})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	w = h.do(t, http.MethodDelete, "/api/wishlist/"+utils.UintToString(vase.ID), &h.buyer, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func (h *harness) upload(t *testing.T, filename, contentType string, content []byte) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	hdr := textproto.MIMEHeader{}
	hdr.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	hdr.Set("Content-Type", contentType)
	part, err := mw.CreatePart(hdr)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/upload-image", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: testutil.Token(t, h.artist)})
	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, req)
	return w
}

var pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func TestUploadImage(t *testing.T) {
	h := newHarness(t)

	w := h.upload(t, "Vase.PNG", "image/png", pngBytes)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.Len(t, h.uploader.paths, 1)
	assert.Regexp(t, `^art/\d{4}/\d{2}/[0-9a-f-]{36}\.png$`, h.uploader.paths[0])
	assert.Equal(t, "https://cdn.example.com/"+h.uploader.paths[0], decode(t, w)["secure_url"])
}

func TestUploadRejectsHTMLDisguisedAsImage(t *testing.T) {
	h := newHarness(t)

	w := h.upload(t, "evil.html", "image/png", []byte("<html><script>fetch('/api/profile')</script></html>"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"message":"Only image uploads are allowed"}`, w.Body.String())
	assert.Empty(t, h.uploader.paths)
}

func TestUploadStoresUnderDetectedExtension(t *testing.T) {
	h := newHarness(t)

	w := h.upload(t, "evil.html", "application/octet-stream", pngBytes)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.Len(t, h.uploader.paths, 1)
	assert.Regexp(t, `\.png$`, h.uploader.paths[0])
}
