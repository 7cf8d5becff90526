package projects

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// NewPublicID mints a listing id like "muse-48210-7713". The digits carry no
// meaning; uniqueness is enforced by the database, and Create retries on a
// collision.
func NewPublicID(prefix string) (string, error) {
	major, err := randInt(10000, 99999)
	if err != nil {
		return "", err
	}
	minor, err := randInt(1000, 9999)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s-%05d-%04d", prefix, major, minor), nil
}

func randInt(min, max int64) (int64, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(max-min+1))
	if err != nil {
		return 0, err
	}
	return min + n.Int64(), nil
}
