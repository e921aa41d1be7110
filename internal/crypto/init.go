// init.go - One-time initialization gate for the hashing and curve backends.

package crypto

import (
	"errors"
	"fmt"
	"math/big"
	"sync"
	"sync/atomic"

	"github.com/iden3/go-iden3-crypto/poseidon"
)

// ErrNotInitialized is returned when a Poseidon or babyjubjub operation is
// invoked before Initialize has completed. Hitting it is a programming error
// in the caller, not a recoverable condition.
var ErrNotInitialized = errors.New("crypto primitives not initialized")

var (
	initOnce sync.Once
	initErr  error
	ready    atomic.Bool
)

// Initialize runs the one-time self-check of the hashing and curve backends.
// It is idempotent and safe for concurrent use: every caller observes the
// outcome of the first invocation. A failure is fatal for the process; no
// derivation or hashing can proceed without initialized primitives.
func Initialize() error {
	initOnce.Do(func() {
		initErr = selfCheck()
		if initErr == nil {
			ready.Store(true)
		}
	})
	return initErr
}

// selfCheck exercises each primitive once so that parameter-loading failures
// surface here rather than mid-derivation.
func selfCheck() error {
	one, err := poseidon.Hash([]*big.Int{big.NewInt(1)})
	if err != nil {
		return fmt.Errorf("poseidon self-check failed: %w", err)
	}
	two, err := poseidon.Hash([]*big.Int{big.NewInt(2)})
	if err != nil {
		return fmt.Errorf("poseidon self-check failed: %w", err)
	}
	if one.Sign() == 0 || one.Cmp(two) == 0 {
		return errors.New("poseidon self-check produced degenerate output")
	}
	probe := make([]byte, 32)
	probe[31] = 0x01
	if _, _, err := spendingPublicKey(probe); err != nil {
		return fmt.Errorf("babyjubjub self-check failed: %w", err)
	}
	return nil
}

func ensureReady() error {
	if !ready.Load() {
		return ErrNotInitialized
	}
	return nil
}
