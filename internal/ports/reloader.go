package ports

// HostReloader restarts the hosting context after the wallet switched
// networks. Reload must return promptly; the host tears down asynchronously.
type HostReloader interface {
	Reload()
}

type ReloadFunc func()

func (f ReloadFunc) Reload() {
	f()
}
