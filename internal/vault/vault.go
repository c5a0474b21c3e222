// Package vault protects the credentials kept in the configuration file.
//
// Sensitive values are sealed as Fernet tokens (AES-128-CBC + HMAC-SHA256,
// URL-safe base64). The Fernet key is derived with PBKDF2-HMAC-SHA256 from
// a machine identity (host name and user name) and a fixed salt, so the
// file only decrypts on the machine and account that wrote it.
//
// A value is encrypted Rounds times with the same key, each round sealing
// the token produced by the previous one. Decryption peels exactly Rounds
// layers; a count mismatch or a foreign key fails with *DecryptionError.
//
// # Example Usage
//
//	v := vault.New(vault.DefaultOptions(), nil)
//
//	if err := v.Save(rec, path); err != nil {
//		return err
//	}
//
//	rec, err := v.Load(path) // rec is always usable
package vault

import (
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"os"
	"strings"

	"github.com/fernet/fernet-go"
	"golang.org/x/crypto/pbkdf2"
)

const (
	// DefaultIterations is the PBKDF2 iteration count.
	DefaultIterations = 100000

	// DefaultRounds is the number of nested encryption passes.
	DefaultRounds = 3

	// KeyLength is the derived key length in bytes (256 bits).
	KeyLength = 32

	// TokenPrefix starts every Fernet token: the version byte followed by
	// the zero high bytes of the timestamp.
	TokenPrefix = "gAAAAA"
)

// defaultSalt is fixed so the key can be recomputed on every run.
var defaultSalt = []byte("NotionPresence_Security_Salt_2025")

// Options holds the immutable parameters of a Vault.
type Options struct {
	// Salt is the PBKDF2 salt.
	Salt []byte

	// Rounds is the number of nested Fernet encryptions per value.
	Rounds int

	// Iterations is the PBKDF2 iteration count.
	Iterations int
}

// DefaultOptions returns the parameters used for the on-disk format.
func DefaultOptions() Options {
	salt := make([]byte, len(defaultSalt))
	copy(salt, defaultSalt)
	return Options{
		Salt:       salt,
		Rounds:     DefaultRounds,
		Iterations: DefaultIterations,
	}
}

// IdentityFunc returns the machine identity the key is bound to.
type IdentityFunc func() string

// MachineID combines the host name and user name as "<host>_<user>".
// Missing parts become empty strings.
func MachineID() string {
	host := os.Getenv("COMPUTERNAME")
	if host == "" {
		host, _ = os.Hostname()
	}
	user := os.Getenv("USERNAME")
	if user == "" {
		user = os.Getenv("USER")
	}
	return host + "_" + user
}

// Vault encrypts and decrypts credential values. It has no mutable state
// and is safe for concurrent use.
type Vault struct {
	opts     Options
	identity IdentityFunc
}

// New creates a Vault. Zero-valued options fall back to DefaultOptions and
// a nil identity uses MachineID.
func New(opts Options, identity IdentityFunc) *Vault {
	def := DefaultOptions()
	if len(opts.Salt) == 0 {
		opts.Salt = def.Salt
	} else {
		salt := make([]byte, len(opts.Salt))
		copy(salt, opts.Salt)
		opts.Salt = salt
	}
	if opts.Rounds <= 0 {
		opts.Rounds = def.Rounds
	}
	if opts.Iterations <= 0 {
		opts.Iterations = def.Iterations
	}
	if identity == nil {
		identity = MachineID
	}

	return &Vault{
		opts:     opts,
		identity: identity,
	}
}

// Rounds returns the configured number of encryption passes.
func (v *Vault) Rounds() int {
	return v.opts.Rounds
}

// DeriveKey derives the URL-safe base64 encoded Fernet key for machineID.
// The result is deterministic for a given machineID and Options.
func (v *Vault) DeriveKey(machineID string) string {
	raw := pbkdf2.Key([]byte(machineID), v.opts.Salt, v.opts.Iterations, KeyLength, sha256.New)
	return base64.URLEncoding.EncodeToString(raw)
}

func (v *Vault) key() (*fernet.Key, error) {
	k, err := fernet.DecodeKey(v.DeriveKey(v.identity()))
	if err != nil {
		return nil, fmt.Errorf("failed to decode derived key: %w", err)
	}
	return k, nil
}

// EncryptValue seals plaintext Rounds times.
func (v *Vault) EncryptValue(plaintext string) (string, error) {
	k, err := v.key()
	if err != nil {
		return "", &EncryptionError{Err: err}
	}

	sealed := []byte(plaintext)
	for round := 1; round <= v.opts.Rounds; round++ {
		tok, err := fernet.EncryptAndSign(sealed, k)
		if err != nil {
			return "", &EncryptionError{Round: round, Err: err}
		}
		sealed = tok
	}

	return string(sealed), nil
}

// DecryptValue opens a value produced by EncryptValue. It fails if any
// round does not verify, or if the result of the last round is itself a
// token under the same key (the value was sealed more times than Rounds).
func (v *Vault) DecryptValue(ciphertext string) (string, error) {
	k, err := v.key()
	if err != nil {
		return "", &DecryptionError{Err: err}
	}
	keys := []*fernet.Key{k}

	opened := []byte(ciphertext)
	for round := 1; round <= v.opts.Rounds; round++ {
		msg := fernet.VerifyAndDecrypt(opened, 0, keys)
		if msg == nil {
			return "", &DecryptionError{Round: round, Err: ErrInvalidToken}
		}
		opened = msg
	}

	if fernet.VerifyAndDecrypt(opened, 0, keys) != nil {
		return "", &DecryptionError{Round: v.opts.Rounds, Err: ErrRoundMismatch}
	}

	return string(opened), nil
}

// IsEncrypted reports whether value looks like a Fernet token. It is a
// cheap hint only; DecryptConfig already tolerates plaintext values.
func IsEncrypted(value string) bool {
	return value != "" && strings.HasPrefix(value, TokenPrefix)
}
