package logger

type nopLogger struct{}

func NewNop() Logger {
	return &nopLogger{}
}

func (n *nopLogger) Info(string, ...Field)  {}
func (n *nopLogger) Error(string, ...Field) {}
func (n *nopLogger) Debug(string, ...Field) {}
func (n *nopLogger) Warn(string, ...Field)  {}

func (n *nopLogger) With(...Field) Logger {
	return n
}
