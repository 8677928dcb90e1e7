package types

type DependencySection string

const (
	SectionBuild DependencySection = "build"
	SectionHost  DependencySection = "host"
	SectionRun   DependencySection = "run"
	SectionTest  DependencySection = "test"
)

type ConstraintOp string

const (
	ConstraintOpNone   ConstraintOp = ""
	ConstraintOpEq     ConstraintOp = "="
	ConstraintOpEq2    ConstraintOp = "=="
	ConstraintOpNe     ConstraintOp = "!="
	ConstraintOpCompat ConstraintOp = "~="
	ConstraintOpGte    ConstraintOp = ">="
	ConstraintOpLte    ConstraintOp = "<="
	ConstraintOpGt     ConstraintOp = ">"
	ConstraintOpLt     ConstraintOp = "<"
)

const (
	PlatformLinux  = "linux"
	PlatformOSX    = "osx"
	PlatformWin    = "win"
	PlatformNoarch = "noarch"
)
