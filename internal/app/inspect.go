package app

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"condarecipe/internal/types"
)

var inspectSectionOrder = map[types.DependencySection]int{
	types.SectionBuild: 0,
	types.SectionHost:  1,
	types.SectionRun:   2,
	types.SectionTest:  3,
}

func (s Service) Inspect(req InspectRequest) (InspectResult, error) {
	outputDir := strings.TrimSpace(req.OutputDir)
	if outputDir == "" {
		return InspectResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("output directory is required")
	}
	entries, err := s.OutputReader.ReadLockFile(filepath.Join(outputDir, "conda.lock"))
	if err != nil {
		return InspectResult{}, err
	}
	intent, err := s.OutputReader.ReadLockIntent(filepath.Join(outputDir, "lock.intent"))
	if err != nil {
		return InspectResult{}, err
	}

	grouped := map[types.DependencySection][]string{}
	for _, entry := range entries {
		grouped[entry.Section] = append(grouped[entry.Section], entry.Package)
	}
	var sections []InspectSectionSummary
	for section, packages := range grouped {
		sort.Strings(packages)
		sections = append(sections, InspectSectionSummary{
			Section:  section,
			Count:    len(packages),
			Packages: packages,
		})
	}
	sort.Slice(sections, func(i, j int) bool {
		return inspectSectionOrder[sections[i].Section] < inspectSectionOrder[sections[j].Section]
	})
	return InspectResult{
		LockEntryCount: len(entries),
		Sections:       sections,
		Intent:         intent,
	}, nil
}
