package usecase

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"devflow/internal/adapter/analyzer"
	"devflow/internal/adapter/fs"
	"devflow/internal/domain"
)

// ProjectUseCase walks a directory and analyzes every matching source
// file through the session, so the whole run shares one concurrency
// bound and one result cache.
type ProjectUseCase struct {
	session *Session
	walker  *fs.Walker
}

// NewProjectUseCase creates a project analyzer.
func NewProjectUseCase(session *Session, walker *fs.Walker) *ProjectUseCase {
	return &ProjectUseCase{
		session: session,
		walker:  walker,
	}
}

// AnalyzeProject analyzes all matching files under root. Per-file
// provider failures are recorded in the report instead of aborting the
// run. onFile, if non-nil, is called once per finished file (progress
// reporting). The returned report lists files in path order.
func (u *ProjectUseCase) AnalyzeProject(ctx context.Context, root string, onFile func(fs.SourceFile)) (domain.ProjectReport, error) {
	files, err := u.walker.Walk(root)
	if err != nil {
		return domain.ProjectReport{}, err
	}

	report := domain.ProjectReport{
		Root:        root,
		Languages:   make(map[string]int),
		GeneratedAt: time.Now().UTC(),
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(u.session.Config().MaxConcurrentAnalyses)

	for _, file := range files {
		file := file
		g.Go(func() error {
			fr := u.analyzeOne(gctx, file)

			mu.Lock()
			report.Files = append(report.Files, fr)
			mu.Unlock()

			if onFile != nil {
				onFile(file)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return domain.ProjectReport{}, err
	}

	sort.Slice(report.Files, func(i, j int) bool {
		return report.Files[i].Path < report.Files[j].Path
	})

	aggregate(&report)
	return report, nil
}

func (u *ProjectUseCase) analyzeOne(ctx context.Context, file fs.SourceFile) domain.FileReport {
	fr := domain.FileReport{
		Path:     file.RelPath,
		Language: file.Language,
	}

	content, err := fs.ReadFile(file.Path)
	if err != nil {
		fr.Err = err.Error()
		return fr
	}

	fr.Metrics = analyzer.Measure(content)

	result, err := u.session.Analyze(ctx, domain.AnalysisContext{
		FilePath: file.Path,
		Content:  content,
		Language: file.Language,
	})
	if err != nil {
		logrus.Warnf("Analysis failed for %s: %v", file.RelPath, err)
		fr.Err = err.Error()
		return fr
	}

	fr.Result = &result
	return fr
}

// maxHotspots caps how many files the report calls out by finding count.
const maxHotspots = 3

func aggregate(report *domain.ProjectReport) {
	var qualitySum float64
	type hotspot struct {
		path  string
		count int
	}
	var hotspots []hotspot

	for _, fr := range report.Files {
		report.Languages[fr.Language]++
		if fr.Result == nil {
			continue
		}
		report.FilesAnalyzed++
		report.SecurityCount += len(fr.Result.Security)
		qualitySum += fr.Result.QualityScore
		if n := len(fr.Result.Security); n > 0 {
			hotspots = append(hotspots, hotspot{path: fr.Path, count: n})
		}
	}
	if report.FilesAnalyzed > 0 {
		report.AvgQuality = qualitySum / float64(report.FilesAnalyzed)
	}

	sort.SliceStable(hotspots, func(i, j int) bool {
		return hotspots[i].count > hotspots[j].count
	})
	for i, h := range hotspots {
		if i == maxHotspots {
			break
		}
		report.Hotspots = append(report.Hotspots, h.path)
	}
}
