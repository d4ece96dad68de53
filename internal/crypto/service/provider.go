package service

import (
	"sync"
)

// CipherProvider owns the process-wide SecretCipher instance.
//
// Construction is deferred to the first Get call so the master key is only
// required once cryptographic work actually happens. Concurrent first calls
// are safe: exactly one construction attempt runs and every caller observes
// its outcome. A failed load is cached and returned on every subsequent call
// rather than silently retried, since a missing or malformed master key is a
// configuration problem requiring operator intervention.
//
// Reset discards the cached instance (or cached failure) so the next Get
// re-runs the factory. It exists for tests and explicit reconfiguration;
// there is no module-reload trick here.
type CipherProvider struct {
	factory func() (SecretCipher, error)

	mu     sync.Mutex
	cipher SecretCipher
	err    error
	done   bool
}

// NewCipherProvider creates a provider that builds the cipher with factory
// on first use.
func NewCipherProvider(factory func() (SecretCipher, error)) *CipherProvider {
	return &CipherProvider{factory: factory}
}

// Get returns the cached cipher, constructing it on first call.
func (p *CipherProvider) Get() (SecretCipher, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.done {
		p.cipher, p.err = p.factory()
		p.done = true
	}

	return p.cipher, p.err
}

// Reset invalidates the cached instance so the next Get reconstructs it.
func (p *CipherProvider) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.cipher = nil
	p.err = nil
	p.done = false
}
