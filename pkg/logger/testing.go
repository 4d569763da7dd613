package logger

// NewNopLogger returns a logger that discards everything. Intended for tests.
func NewNopLogger() Logger {
	return &nopLogger{}
}

type nopLogger struct{}

func (l *nopLogger) Debug(msg string) {}
func (l *nopLogger) Info(msg string)  {}
func (l *nopLogger) Warn(msg string)  {}
func (l *nopLogger) Error(msg string) {}
func (l *nopLogger) Fatal(msg string) {}

func (l *nopLogger) WithField(key string, value interface{}) Logger { return l }

func (l *nopLogger) WithFields(fields map[string]interface{}) Logger { return l }
