package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignMatchesHMACOverPipeJoinedIDs(t *testing.T) {
	mac := hmac.New(sha256.New, []byte("s3cret"))
	mac.Write([]byte("order_123|pay_456"))
	want := hex.EncodeToString(mac.Sum(nil))

	assert.Equal(t, want, Sign("s3cret", "order_123", "pay_456"))
	assert.True(t, VerifySignature("s3cret", "order_123", "pay_456", want))
}

func TestVerifySignatureRejectsEverySingleBitFlip(t *testing.T) {
	sig := Sign("s3cret", "order_123", "pay_456")
	raw := []byte(sig)
	for i := range raw {
		for bit := 0; bit < 8; bit++ {
			mutated := append([]byte(nil), raw...)
			mutated[i] ^= 1 << bit
			assert.False(t, VerifySignature("s3cret", "order_123", "pay_456", string(mutated)),
				"byte %d bit %d", i, bit)
		}
	}
}

func TestVerifySignatureRejectsSwappedOrWrongInputs(t *testing.T) {
	sig := Sign("s3cret", "order_123", "pay_456")

	assert.False(t, VerifySignature("s3cret", "pay_456", "order_123", sig))
	assert.False(t, VerifySignature("other", "order_123", "pay_456", sig))
	assert.False(t, VerifySignature("", "order_123", "pay_456", Sign("", "order_123", "pay_456")))
	assert.False(t, VerifySignature("s3cret", "order_123", "pay_456", ""))
}

func TestToMinorUnits(t *testing.T) {
	cases := map[float64]int64{
		1200:    120000,
		850.5:   85050,
		19.99:   1999,
		0.005:   1,
		1234.56: 123456,
	}
	for in, want := range cases {
		assert.Equal(t, want, ToMinorUnits(in), "amount %v", in)
	}
}
