package cmds

// Var defines `name <value>` and `name.` (reset to zero) on the global executor.
func Var[T any](name string, desc string) *T {
	var value T

	// set
	Define(name, Func(func(v T) {
		value = v
	}).Desc(desc))

	// set zero
	var zero T
	Define(name+".", Func(func() {
		value = zero
	}).Desc("reset "+name))

	return &value
}

// Switch defines `name` and `!name`.
func Switch(name string, desc string) *bool {
	var value bool

	// set true
	Define(name, Func(func() {
		value = true
	}).Desc(desc))

	// set false
	Define("!"+name, Func(func() {
		value = false
	}).Desc("unset "+name))

	return &value
}

// Collect defines `name <value>`, appending on each use.
func Collect[T any](name string, desc string) *[]T {
	var value []T
	// append
	Define(name, Func(func(v T) {
		value = append(value, v)
	}).Desc(desc))
	return &value
}
