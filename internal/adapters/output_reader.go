package adapters

import (
	"os"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"condarecipe/internal/ports"
	"condarecipe/internal/types"
)

type OutputReaderAdapter struct{}

func NewOutputReaderAdapter() OutputReaderAdapter {
	return OutputReaderAdapter{}
}

func (a OutputReaderAdapter) ReadLockFile(path string) ([]types.LockEntry, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("conda.lock not found").
			WithCause(err)
	}
	var entries []types.LockEntry
	for _, line := range strings.Split(string(content), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("invalid conda.lock format")
		}
		parts := strings.Split(fields[1], "=")
		if len(parts) != 3 {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("invalid conda.lock format")
		}
		entries = append(entries, types.LockEntry{
			Section: types.DependencySection(fields[0]),
			Package: parts[0],
			Version: parts[1],
			Build:   parts[2],
		})
	}
	return entries, nil
}

func (a OutputReaderAdapter) ReadLockIntent(path string) (types.LockIntent, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return types.LockIntent{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("lock.intent not found").
			WithCause(err)
	}
	intent := types.LockIntent{}
	for _, line := range strings.Split(string(content), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			return types.LockIntent{}, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("invalid lock.intent format")
		}
		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])
		switch key {
		case "recipe":
			intent.Recipe = value
		case "channel":
			intent.Channel = value
		case "subdir":
			intent.Subdir = value
		case "lock_id":
			intent.LockID = value
		case "created_at":
			intent.CreatedAt = value
		}
	}
	if strings.TrimSpace(intent.LockID) == "" {
		return types.LockIntent{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("lock.intent missing lock_id")
	}
	return intent, nil
}

var _ ports.OutputReaderPort = OutputReaderAdapter{}
