package logger

// NopLogger discards everything. Handy for tests and optional wiring.
type NopLogger struct{}

func NewNopLogger() ILogger {
	return &NopLogger{}
}

func (NopLogger) Debug(string, string, map[string]interface{}) {}
func (NopLogger) Info(string, string, map[string]interface{})  {}
func (NopLogger) Warn(string, string, map[string]interface{})  {}
func (NopLogger) Error(string, string, map[string]interface{}) {}
func (NopLogger) Sync() error                                  { return nil }
