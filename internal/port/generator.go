package port

// Generator is the external text-generation step. It is a black box; a
// failure propagates to the caller as a query-level failure.
type Generator interface {
	Generate(prompt string) (string, error)

	// ModelName returns the name of the generation model.
	ModelName() string
}
