package assets

// Resolver looks assets up in a custom directory first and falls back to
// the embedded set when the custom directory does not have them.
type Resolver struct {
	custom   Loader // nil without a custom base path
	embedded *EmbeddedLoader
}

var _ Loader = (*Resolver)(nil)

// NewResolver creates a Resolver. An empty customBasePath uses embedded
// assets only; an invalid one is an error.
func NewResolver(customBasePath string) (*Resolver, error) {
	r := &Resolver{embedded: NewEmbeddedLoader()}
	if customBasePath != "" {
		fsLoader, err := NewFilesystemLoader(customBasePath)
		if err != nil {
			return nil, err
		}
		r.custom = fsLoader
	}
	return r, nil
}

// LoadStyle loads a style, custom first.
func (r *Resolver) LoadStyle(name string) (string, error) {
	return r.loadWithFallback(func(l Loader) (string, error) { return l.LoadStyle(name) })
}

// LoadTemplate loads a template, custom first.
func (r *Resolver) LoadTemplate(name string) (string, error) {
	return r.loadWithFallback(func(l Loader) (string, error) { return l.LoadTemplate(name) })
}

// ListStyles returns the embedded style names.
func (r *Resolver) ListStyles() []string {
	return r.embedded.ListStyles()
}

// HasCustomLoader reports whether a custom directory is configured.
func (r *Resolver) HasCustomLoader() bool {
	return r.custom != nil
}

// loadWithFallback only falls back on not-found errors; validation and
// I/O errors from the custom directory are returned as is.
func (r *Resolver) loadWithFallback(load func(Loader) (string, error)) (string, error) {
	if r.custom == nil {
		return load(r.embedded)
	}
	content, err := load(r.custom)
	if err == nil {
		return content, nil
	}
	if !isNotFound(err) {
		return "", err
	}
	return load(r.embedded)
}
