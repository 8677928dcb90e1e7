package types

// Constraint is a single version clause attached to a dependency name.
// A conda match spec like "numpy >=1.8,<2" produces two constraints.
// Source records where the clause came from (section or pin group) for
// conflict reporting.
type Constraint struct {
	Name    string
	Op      ConstraintOp
	Version string
	Source  string
}

// Dependency is a named requirement within one recipe section. Build
// holds an optional build-string pattern ("py38*") from the third match
// spec field.
type Dependency struct {
	Name        string
	Section     DependencySection
	Constraints []Constraint
	Build       string
}
