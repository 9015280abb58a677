package validator

// Validator validates annotated structs.
type Validator interface {
	Validate(data any) error
}

// ValidationError exposes per-field validation messages.
type ValidationError interface {
	error
	Values() map[string]string
}
