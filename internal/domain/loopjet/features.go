package loopjet

// Features captures deployment-level behavior switches resolved once at
// startup from configuration. They never change at runtime.
type Features struct {
	// StrictPreconditions requires a non-empty extracted context before a
	// generation call may start. When false, an empty context is sent as-is
	// and the model works from the customer snapshot alone.
	StrictPreconditions bool

	// AllowNewItemsToggle exposes a per-request switch letting the user
	// permit items outside the synced catalog. When false the request
	// always pins AllowNewItems to false regardless of user input.
	AllowNewItemsToggle bool

	// AutoSyncProducts pushes a product to the remote catalog immediately
	// after it is written locally without a remote ID, so the next
	// generation can match it. When false the product waits for the next
	// batch sync.
	AutoSyncProducts bool

	// UnitFallback is the unit-of-measure literal used when a product or
	// line carries no unit of its own.
	UnitFallback string
}

// DefaultFeatures returns the conservative defaults
func DefaultFeatures() Features {
	return Features{
		StrictPreconditions: true,
		AllowNewItemsToggle: false,
		UnitFallback:        "unit",
	}
}
