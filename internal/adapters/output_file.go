package adapters

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"condarecipe/internal/ports"
	"condarecipe/internal/types"
)

type OutputFileAdapter struct {
	Dir string
}

func NewOutputFileAdapter(dir string) OutputFileAdapter {
	return OutputFileAdapter{Dir: dir}
}

var lockSectionOrder = map[types.DependencySection]int{
	types.SectionBuild: 0,
	types.SectionHost:  1,
	types.SectionRun:   2,
	types.SectionTest:  3,
}

// WriteLockFile emits conda.lock: one "section name=version=build" line
// per entry, sorted for stable diffs.
func (a OutputFileAdapter) WriteLockFile(entries []types.LockEntry) error {
	path, err := a.ensurePath("conda.lock")
	if err != nil {
		return err
	}
	ordered := append([]types.LockEntry(nil), entries...)
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].Section != ordered[j].Section {
			return lockSectionOrder[ordered[i].Section] < lockSectionOrder[ordered[j].Section]
		}
		return ordered[i].Package < ordered[j].Package
	})
	var lines []string
	for _, entry := range ordered {
		lines = append(lines, fmt.Sprintf("%s %s=%s=%s", entry.Section, entry.Package, entry.Version, entry.Build))
	}
	return os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0644)
}

func (a OutputFileAdapter) WriteEnvSpec(spec types.EnvSpec) error {
	path, err := a.ensurePath("env.yaml")
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(spec)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to marshal env spec").
			WithCause(err)
	}
	return os.WriteFile(path, data, 0644)
}

func (a OutputFileAdapter) WriteLockIntent(intent types.LockIntent) error {
	path, err := a.ensurePath("lock.intent")
	if err != nil {
		return err
	}
	content := fmt.Sprintf(
		"recipe=%s\nchannel=%s\nsubdir=%s\nlock_id=%s\ncreated_at=%s\n",
		intent.Recipe,
		intent.Channel,
		intent.Subdir,
		intent.LockID,
		intent.CreatedAt,
	)
	return os.WriteFile(path, []byte(content), 0644)
}

func (a OutputFileAdapter) WriteResolutionReport(report types.ResolutionReport) error {
	path, err := a.ensurePath("resolution.report")
	if err != nil {
		return err
	}
	ordered := append([]types.ResolutionRecord(nil), report.Records...)
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].Dependency != ordered[j].Dependency {
			return ordered[i].Dependency < ordered[j].Dependency
		}
		if ordered[i].Action != ordered[j].Action {
			return ordered[i].Action < ordered[j].Action
		}
		return ordered[i].Value < ordered[j].Value
	})
	var lines []string
	for _, record := range ordered {
		lines = append(lines, fmt.Sprintf(
			"%s,%s,%s,%s,%s,%s",
			record.Dependency,
			record.Action,
			record.Value,
			record.Reason,
			record.Owner,
			record.ExpiresAt,
		))
	}
	return os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0644)
}

func (a OutputFileAdapter) WriteRenderedRecipe(text string) error {
	path, err := a.ensurePath("meta.rendered.yaml")
	if err != nil {
		return err
	}
	return os.WriteFile(path, []byte(text), 0644)
}

func (a OutputFileAdapter) ensurePath(filename string) (string, error) {
	if a.Dir == "" {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("output directory is empty")
	}
	if err := os.MkdirAll(a.Dir, 0755); err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create output directory").
			WithCause(err)
	}
	return filepath.Join(a.Dir, filename), nil
}

var _ ports.OutputPort = OutputFileAdapter{}
