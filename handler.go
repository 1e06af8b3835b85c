package typeroute

// HandlerFunc is an inline route handler. Inline handlers are invoked
// directly by the dispatcher; the generator cannot resolve them to a
// controller source file, so routes using them contribute no type entries.
type HandlerFunc func(*Context) error
