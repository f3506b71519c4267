package password

import "golang.org/x/crypto/bcrypt"

// Cost is the bcrypt work factor used for stored hashes
const Cost = 10

// Hash returns the bcrypt hash of plain
func Hash(plain string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(plain), Cost)
	return string(bytes), err
}

// Check reports whether plain matches hash. An empty hash never matches.
func Check(plain, hash string) bool {
	if hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
