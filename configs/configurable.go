package configs

// Configurable is a setting type that names its own path in the config files.
type Configurable interface {
	ConfigPath() string
}

// Get decodes the first value at T's config path, or returns the zero T.
func Get[T Configurable](loader Loader) T {
	var zero T
	return First[T](loader, zero.ConfigPath())
}
