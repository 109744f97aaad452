package cache

// ScopedKeyer wraps a Keyer with a prefix so several deployments can share
// one redis database.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "topcoll:staging:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix. A nil inner keyer means
// the default scheme.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// PlanKey generates a prefixed plan key.
func (k *ScopedKeyer) PlanKey(courseID string, opts PlanKeyOpts) string {
	return k.prefix + k.inner.PlanKey(courseID, opts)
}

// SettingsKey generates a prefixed settings key.
func (k *ScopedKeyer) SettingsKey(courseID string) string {
	return k.prefix + k.inner.SettingsKey(courseID)
}

// ToggleKey generates a prefixed toggle-state key.
func (k *ScopedKeyer) ToggleKey(courseID, userID string) string {
	return k.prefix + k.inner.ToggleKey(courseID, userID)
}
