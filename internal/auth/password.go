package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/baharkarakas/ong-backend/internal/worker"
)

func HashPassword(p string, cost int) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(p), cost)
	return string(b), err
}

// VerifyPassword reports a mismatch as (false, nil). Any other bcrypt error
// means the stored digest is unusable.
func VerifyPassword(plain, hash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, err
}

// PasswordHasher runs bcrypt on a bounded worker pool so hashing bursts
// cannot occupy the request goroutines.
type PasswordHasher struct {
	pool *worker.Pool
	cost int
}

func NewPasswordHasher(pool *worker.Pool, cost int) *PasswordHasher {
	return &PasswordHasher{pool: pool, cost: cost}
}

func (h *PasswordHasher) Hash(plain string) (string, error) {
	var (
		digest string
		err    error
	)
	h.pool.Do(func() { digest, err = HashPassword(plain, h.cost) })
	return digest, err
}

func (h *PasswordHasher) Verify(plain, digest string) (bool, error) {
	var (
		ok  bool
		err error
	)
	h.pool.Do(func() { ok, err = VerifyPassword(plain, digest) })
	return ok, err
}
