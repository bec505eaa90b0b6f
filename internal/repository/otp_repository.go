package repository

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/soict-hust/gradadmit-api/pkg/config"
)

// OTPRepository stores short-lived password reset codes in Redis.
type OTPRepository struct {
	client *redis.Client
	cfg    config.OTPConfig
	logger *zap.Logger
}

// NewOTPRepository constructs an OTP repository.
func NewOTPRepository(client *redis.Client, cfg config.OTPConfig, logger *zap.Logger) *OTPRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OTPRepository{client: client, cfg: cfg, logger: logger}
}

func otpKey(email string) string {
	return "otp:password_reset:" + email
}

// Generate creates a numeric code for the email and stores it with the
// configured TTL, replacing any previous code.
func (r *OTPRepository) Generate(ctx context.Context, email string) (string, error) {
	code, err := randomDigits(r.cfg.Length)
	if err != nil {
		return "", fmt.Errorf("generate otp: %w", err)
	}
	if err := r.client.Set(ctx, otpKey(email), code, r.cfg.TTL).Err(); err != nil {
		return "", fmt.Errorf("store otp: %w", err)
	}
	return code, nil
}

// Verify reports whether the code matches the stored one for the email.
// Expired or absent codes simply fail the match.
func (r *OTPRepository) Verify(ctx context.Context, email, code string) (bool, error) {
	stored, err := r.client.Get(ctx, otpKey(email)).Result()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, fmt.Errorf("read otp: %w", err)
	}
	return stored == code, nil
}

// Delete removes the stored code after a successful reset.
func (r *OTPRepository) Delete(ctx context.Context, email string) error {
	if err := r.client.Del(ctx, otpKey(email)).Err(); err != nil {
		return fmt.Errorf("delete otp: %w", err)
	}
	return nil
}

func randomDigits(n int) (string, error) {
	if n <= 0 {
		n = 6
	}
	digits := make([]byte, n)
	for i := range digits {
		v, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		digits[i] = byte('0' + v.Int64())
	}
	return string(digits), nil
}
