package mdtodocx

// Option configures a Converter.
type Option func(*Converter)

// WithParser swaps the Markdown parsing capability. The default is the
// goldmark-backed parser; tests and embedders can substitute their own.
func WithParser(p Parser) Option {
	return func(c *Converter) {
		c.parser = p
	}
}

// WithSource registers a custom input source alongside the built-ins.
// Lower priority values are tried first.
func WithSource(name string, s Source, priority float64) Option {
	return func(c *Converter) {
		c.RegisterSource(name, s, priority)
	}
}
