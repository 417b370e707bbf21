package council

import "errors"

var (
	// ErrNoPersonas is returned when a service is created without personas.
	ErrNoPersonas = errors.New("council: no personas")

	// ErrNilFactory is returned when a service is created without a producer factory.
	ErrNilFactory = errors.New("council: nil producer factory")

	// ErrEmptyPrompt is returned when a session is started with an empty prompt.
	ErrEmptyPrompt = errors.New("council: empty prompt")

	// ErrUnknownProvider is returned when a provider name has no factory.
	ErrUnknownProvider = errors.New("council: unknown provider")
)
