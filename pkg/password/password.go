// Package password hashes and verifies account passwords with bcrypt.
package password

import (
	"sync"

	"golang.org/x/crypto/bcrypt"
)

var (
	dummyOnce sync.Once
	dummyHash []byte
)

// Hash returns the bcrypt hash of plain.
func Hash(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// compare is swapped out in tests to count bcrypt comparisons.
var compare = bcrypt.CompareHashAndPassword

// Verify reports whether plain matches hash. A nil hash belongs to an account
// without a local password and never matches; it still pays for one
// comparison so it cannot be told apart by timing.
func Verify(hash *string, plain string) bool {
	if hash == nil || *hash == "" {
		Burn(plain)
		return false
	}
	return compare([]byte(*hash), []byte(plain)) == nil
}

// Burn performs a comparison against a fixed hash so that a lookup miss costs
// about as much as a real verification.
func Burn(plain string) {
	dummyOnce.Do(func() {
		dummyHash, _ = bcrypt.GenerateFromPassword([]byte("terranova-dummy-password"), bcrypt.DefaultCost)
	})
	_ = compare(dummyHash, []byte(plain))
}
