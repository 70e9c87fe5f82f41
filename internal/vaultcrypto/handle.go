package vaultcrypto

// Handle is the only place a derived vault key lives after a successful
// unlock. It is threaded explicitly through every call that needs the key;
// there is no ambient "unlocked" state. Callers must Zero the handle when
// done, including on early error returns.
type Handle struct {
	key []byte
}

// NewHandle wraps a derived key. The handle takes ownership of the slice.
func NewHandle(key []byte) *Handle {
	return &Handle{key: key}
}

// Key returns the derived key, or nil after Zero.
func (h *Handle) Key() []byte {
	return h.key
}

// Zero overwrites the key bytes and drops the reference. Safe to call more
// than once.
func (h *Handle) Zero() {
	if h == nil {
		return
	}
	Zero(h.key)
	h.key = nil
}

// Zero overwrites a byte slice in place.
func Zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
