package ports

import "condarecipe/internal/types"

type OutputPort interface {
	WriteLockFile(entries []types.LockEntry) error
	WriteEnvSpec(spec types.EnvSpec) error
	WriteLockIntent(intent types.LockIntent) error
	WriteResolutionReport(report types.ResolutionReport) error
	WriteRenderedRecipe(text string) error
}

type OutputReaderPort interface {
	ReadLockFile(path string) ([]types.LockEntry, error)
	ReadLockIntent(path string) (types.LockIntent, error)
}
