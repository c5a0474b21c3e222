package vault

import (
	"errors"
	"fmt"
)

// Sentinel causes wrapped by DecryptionError.
var (
	// ErrInvalidToken indicates a round failed Fernet verification: wrong
	// key, corrupted data, or a value never produced by this vault.
	ErrInvalidToken = errors.New("token verification failed")

	// ErrRoundMismatch indicates the value was sealed more times than the
	// vault's round count.
	ErrRoundMismatch = errors.New("value still sealed after final round")
)

// EncryptionError reports a failed EncryptValue call.
type EncryptionError struct {
	Round int
	Err   error
}

func (e *EncryptionError) Error() string {
	if e.Round == 0 {
		return fmt.Sprintf("vault: encryption failed: %v", e.Err)
	}
	return fmt.Sprintf("vault: encryption failed at round %d: %v", e.Round, e.Err)
}

func (e *EncryptionError) Unwrap() error {
	return e.Err
}

// DecryptionError reports a failed DecryptValue call.
type DecryptionError struct {
	Round int
	Err   error
}

func (e *DecryptionError) Error() string {
	if e.Round == 0 {
		return fmt.Sprintf("vault: decryption failed: %v", e.Err)
	}
	return fmt.Sprintf("vault: decryption failed at round %d: %v", e.Round, e.Err)
}

func (e *DecryptionError) Unwrap() error {
	return e.Err
}

// ReadReason classifies why a credentials file could not be used.
type ReadReason string

const (
	ReasonMissing    ReadReason = "missing"
	ReasonEmpty      ReadReason = "empty"
	ReasonCorrupt    ReadReason = "corrupt"
	ReasonUnreadable ReadReason = "unreadable"
)

// ConfigReadError reports that a credentials file was unusable. Load
// returns it alongside the default record it substituted.
type ConfigReadError struct {
	Path   string
	Reason ReadReason
	Err    error
}

func (e *ConfigReadError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("vault: config %s is %s", e.Path, e.Reason)
	}
	return fmt.Sprintf("vault: config %s is %s: %v", e.Path, e.Reason, e.Err)
}

func (e *ConfigReadError) Unwrap() error {
	return e.Err
}
