package config

// EnvFileExtensions are all recognized environment file extensions
var EnvFileExtensions = []string{".yaml", ".yml"}

// Built-in type names
const (
	RootTypeName = "object"
	ListTypeName = "List"
)

// Variance marker spellings accepted in environment files
const (
	InvariantName     = "invariant"
	CovariantName     = "covariant"
	ContravariantName = "contravariant"
)
