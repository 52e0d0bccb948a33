package model

// Logger receives diagnostic messages from the builder and merger. *log.Logger
// satisfies it.
type Logger interface {
	Printf(format string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Printf(string, ...any) {}

// Options configures the behaviour of the Builder. Options are constructed by
// the public adapter in pkg/model and passed into New.
type Options struct {
	TypeMap     *TypeMap
	DefaultKind InputKind
	Labeler     func(string) string
	Logger      Logger
}

func defaultOptions() Options {
	types := DefaultTypeMap()
	return Options{
		TypeMap: &types,
		Labeler: DefaultLabeler,
		Logger:  nopLogger{},
	}
}
