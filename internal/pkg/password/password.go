package password

import "golang.org/x/crypto/bcrypt"

// Hash produces the bcrypt form stored in access_password_hash. It is
// used when provisioning an instance, not on the request path.
func Hash(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Verify checks a presented access password against the configured
// hash. A nil return means the gate is passed.
func Verify(hash, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
}
