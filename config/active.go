package config

import "sync/atomic"

var active atomic.Pointer[Rates]

func init() {
	active.Store(Default())
}

// Active returns the currently installed rate configuration.
func Active() *Rates {
	return active.Load()
}

// SetActive installs a rate configuration. main calls this once at startup;
// tests use it to swap tables without touching resolver or ledger code.
func SetActive(r *Rates) {
	active.Store(r)
}
