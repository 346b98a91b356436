package disposable

// Disposable undoes a registration. Dispose is idempotent.
type Disposable interface {
	Dispose()
}
