package cache

// ScopedKeyer wraps a Keyer with a prefix, so that several deployments (or
// several users of one deployment) can share a cache backend without
// seeing each other's entries:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "staging:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

func (k *ScopedKeyer) TreeKey(source string) string {
	return k.prefix + k.inner.TreeKey(source)
}

func (k *ScopedKeyer) DrawKey(treeHash string, opts DrawKeyOpts) string {
	return k.prefix + k.inner.DrawKey(treeHash, opts)
}

func (k *ScopedKeyer) ArtifactKey(treeHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(treeHash, opts)
}
