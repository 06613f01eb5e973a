package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// codeLength is the number of hex characters in an issued code.
const codeLength = 20

// CodeGenerator derives confirmation codes from a stable user
// identifier and a time bucket: HMAC-SHA256(secret, user_id|bucket),
// truncated. A code cannot be forged without the secret and stops
// verifying once the bucket it was minted in rolls over (the previous
// bucket is still accepted so a code issued near a boundary survives).
type CodeGenerator struct {
	secret []byte
	bucket time.Duration
	now    func() time.Time
}

func NewCodeGenerator(secret string, bucket time.Duration) *CodeGenerator {
	return &CodeGenerator{
		secret: []byte(secret),
		bucket: bucket,
		now:    time.Now,
	}
}

// Generate returns the code for the current time bucket.
func (g *CodeGenerator) Generate(userID string) string {
	return g.codeFor(userID, g.currentBucket())
}

// Verify recomputes the code for the current and previous bucket and
// compares in constant time.
func (g *CodeGenerator) Verify(userID, code string) bool {
	current := g.currentBucket()
	for _, bucket := range []int64{current, current - 1} {
		expected := g.codeFor(userID, bucket)
		if hmac.Equal([]byte(expected), []byte(code)) {
			return true
		}
	}
	return false
}

func (g *CodeGenerator) currentBucket() int64 {
	return g.now().Unix() / int64(g.bucket.Seconds())
}

func (g *CodeGenerator) codeFor(userID string, bucket int64) string {
	mac := hmac.New(sha256.New, g.secret)
	fmt.Fprintf(mac, "%s|%d", userID, bucket)
	return hex.EncodeToString(mac.Sum(nil))[:codeLength]
}
