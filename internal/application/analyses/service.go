package analyses

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/bryanwahyu/song-critic/internal/application"
	domain "github.com/bryanwahyu/song-critic/internal/domain/analysis"
	"github.com/bryanwahyu/song-critic/internal/export"
)

const historyLimit = 50

// Service implements the analysis use-cases. Repo and Artifacts are optional:
// a nil Repo disables history, a nil Artifacts keeps exports inline.
type Service struct {
	Analyzer  domain.Analyzer
	Repo      domain.Repository
	Artifacts domain.ArtifactStore
	Clock     application.Clock
}

//
// ==== USE CASES ====
//

// Analyze runs one model round trip. When an owner identity is present and the
// history store is up, the result is persisted and comes back with its id and
// timestamp. A failed save never fails the analysis: the result is returned
// transient and the error goes to the log only.
func (s *Service) Analyze(ctx context.Context, owner string, req domain.Request) (*domain.Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	res, err := s.Analyzer.Analyze(ctx, req)
	if err != nil {
		return nil, err
	}

	if owner == "" || s.Repo == nil {
		return res, nil
	}

	saved := *res
	saved.ID = uuid.New().String()
	saved.OwnerID = owner
	saved.CreatedAt = s.Clock.Now()
	if err := s.Repo.Save(ctx, &saved); err != nil {
		// Persistence is an enhancement, not the product. Keep the
		// transient result and report nothing to the caller.
		log.Printf("analysis save failed, result stays transient: %v", err)
		return res, nil
	}
	return &saved, nil
}

// HistoryEnabled reports whether a history store was configured at startup.
func (s *Service) HistoryEnabled() bool { return s.Repo != nil }

// History lists the owner's saved analyses, newest first.
func (s *Service) History(ctx context.Context, owner string) ([]*domain.Result, error) {
	if s.Repo == nil || owner == "" {
		return nil, nil
	}
	return s.Repo.ListByOwner(ctx, owner, historyLimit)
}

// Get fetches one saved analysis scoped to its owner.
func (s *Service) Get(ctx context.Context, owner, id string) (*domain.Result, error) {
	if s.Repo == nil {
		return nil, fmt.Errorf("%w: history is disabled", domain.ErrNotFound)
	}
	return s.Repo.Get(ctx, owner, id)
}

// Example returns the canned demo report. No provider call is made.
func (s *Service) Example() *domain.Result {
	return domain.Example()
}

// Artifact is one rendered export. URL is set only when the artifact store
// accepted the upload; otherwise callers serve Data inline.
type Artifact struct {
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
	Data        []byte `json:"-"`
	URL         string `json:"url,omitempty"`
}

// Export fetches a saved analysis and renders it.
func (s *Service) Export(ctx context.Context, owner, id, format string) (*Artifact, error) {
	res, err := s.Get(ctx, owner, id)
	if err != nil {
		return nil, err
	}
	return s.ExportResult(ctx, owner, res, format)
}

// ExportResult renders an already-held result (saved or transient) and pushes
// it to the artifact store when one is configured. Upload failure is absorbed
// like a save failure; the artifact is still served inline.
func (s *Service) ExportResult(ctx context.Context, owner string, res *domain.Result, format string) (*Artifact, error) {
	data, contentType, ext, err := export.Render(format, res)
	if err != nil {
		return nil, err
	}

	name := export.FileName(res.Title, ext)
	art := &Artifact{FileName: name, ContentType: contentType, Data: data}

	if s.Artifacts != nil {
		key := fmt.Sprintf("%s/%s/%s", ownerOrAnon(owner), idOrTransient(res.ID), name)
		url, err := s.Artifacts.Put(ctx, key, contentType, data)
		if err != nil {
			log.Printf("export upload failed, serving inline: %v", err)
		} else {
			art.URL = url
		}
	}
	return art, nil
}

func ownerOrAnon(owner string) string {
	if owner == "" {
		return "anonymous"
	}
	return owner
}

func idOrTransient(id string) string {
	if id == "" {
		return "transient"
	}
	return id
}
