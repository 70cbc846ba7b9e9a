package elfwriter

type Option func(w *writer)

// WithStandardSizes fills zero e_ehsize, e_phentsize and e_shentsize with the
// sizes mandated for the header's class.
func WithStandardSizes(b bool) Option {
	return func(w *writer) {
		w.standardSizes = b
	}
}
