package app

import (
	"time"

	"condarecipe/internal/adapters"
	"condarecipe/internal/ports"
)

type Service struct {
	Recipes      ports.RecipeLoaderPort
	LockConfig   ports.LockConfigPort
	Workspace    ports.WorkspacePort
	OutputReader ports.OutputReaderPort
	IndexBuilder ports.ChannelIndexBuilderPort
	IndexWriter  ports.ChannelIndexWriterPort
	Verifier     ports.SourceVerifierPort
	Clock        func() time.Time
}

func NewService() Service {
	recipes := adapters.NewRecipeFileAdapter()
	workspace := adapters.NewWorkspaceAdapter()
	return Service{
		Recipes:      recipes,
		LockConfig:   adapters.NewLockConfigFileAdapter(),
		Workspace:    workspace,
		OutputReader: adapters.NewOutputReaderAdapter(),
		IndexBuilder: adapters.NewChannelIndexBuilderAdapter(workspace, recipes),
		IndexWriter:  adapters.NewChannelIndexWriterAdapter(),
		Verifier:     adapters.NewSourceVerifierAdapter(),
		Clock:        time.Now,
	}
}
