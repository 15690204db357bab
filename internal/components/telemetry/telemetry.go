package telemetry

// API is how components report what happens to them. Nothing outside this
// package calls slog or otel for reporting, so tests can swap in a Recorder.
type API interface {
	// ReportBroken means a component failed and someone should look at it.
	// `id` names the component, ex. "client.fetch-sales", lowercase with dashes
	// between the component and the method. Details go in params.
	ReportBroken(id string, params ...any)
	// ReportWarning is for something odd that did not stop the component,
	// ex. a table row that had to be skipped.
	ReportWarning(id string, params ...any)
	// ReportDebug is dropped unless verbose logging is on.
	ReportDebug(msg string, params ...any)
	// ReportCount reports a gauge-like value at the current time.
	ReportCount(id string, count int64)
}

// ScopedAPI prefixes every id with "<namespace>: ".
type ScopedAPI struct {
	prefix string
	inner  API
}

func NewScopedAPI(namespace string, inner API) ScopedAPI {
	return ScopedAPI{prefix: namespace + ": ", inner: inner}
}

func (s ScopedAPI) ReportBroken(id string, params ...any) {
	s.inner.ReportBroken(s.prefix+id, params...)
}

func (s ScopedAPI) ReportWarning(id string, params ...any) {
	s.inner.ReportWarning(s.prefix+id, params...)
}

func (s ScopedAPI) ReportDebug(msg string, params ...any) {
	s.inner.ReportDebug(s.prefix+msg, params...)
}

func (s ScopedAPI) ReportCount(id string, count int64) {
	s.inner.ReportCount(s.prefix+id, count)
}
