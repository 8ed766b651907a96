package logging

// NewNop creates a logger that discards all output.
func NewNop() Logger {
	return &nopLogger{}
}

type nopLogger struct{}

var _ Logger = (*nopLogger)(nil)

func (l *nopLogger) Debug(string, ...any) {}
func (l *nopLogger) Info(string, ...any)  {}
func (l *nopLogger) Warn(string, ...any)  {}
func (l *nopLogger) Error(string, ...any) {}
