package app

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/bensternthal/basket/internal/domain/news"
	"github.com/bensternthal/basket/internal/pkg/logger"
	"github.com/google/uuid"
)

// catalogTTL bounds how long the newsletter catalog is served from memory
// before it is reloaded from storage.
const catalogTTL = 12 * time.Hour

// newsletterService implements the NewsletterService interface. Reads come
// from an in-memory copy of the catalog; every write invalidates it.
type newsletterService struct {
	repo   news.NewsletterRepository
	logger logger.Logger

	mu      sync.RWMutex
	catalog map[string]*news.Newsletter
	fetched time.Time
}

// NewNewsletterService creates a new instance of NewsletterService
func NewNewsletterService(repo news.NewsletterRepository, logger logger.Logger) (news.NewsletterService, error) {
	return &newsletterService{
		repo:   repo,
		logger: logger,
	}, nil
}

// Catalog returns every newsletter keyed by slug, loading from storage when
// the cached copy is missing or stale. Callers must treat the map as
// read-only.
func (s *newsletterService) Catalog(ctx context.Context) (map[string]*news.Newsletter, error) {
	s.mu.RLock()
	if s.catalog != nil && time.Since(s.fetched) < catalogTTL {
		catalog := s.catalog
		s.mu.RUnlock()
		return catalog, nil
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	// Another request may have reloaded while we waited for the lock
	if s.catalog != nil && time.Since(s.fetched) < catalogTTL {
		return s.catalog, nil
	}

	newsletters, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load newsletter catalog: %w", err)
	}

	catalog := make(map[string]*news.Newsletter, len(newsletters))
	for _, newsletter := range newsletters {
		catalog[newsletter.Slug] = newsletter
	}

	s.catalog = catalog
	s.fetched = time.Now()
	s.logger.Info("Newsletter catalog reloaded with ", len(catalog), " entries")

	return catalog, nil
}

// Slugs returns the sorted set of known newsletter slugs.
func (s *newsletterService) Slugs(ctx context.Context) ([]string, error) {
	catalog, err := s.Catalog(ctx)
	if err != nil {
		return nil, err
	}

	slugs := make([]string, 0, len(catalog))
	for slug := range catalog {
		slugs = append(slugs, slug)
	}
	sort.Strings(slugs)

	return slugs, nil
}

// Languages returns the sorted union of all newsletter language codes.
func (s *newsletterService) Languages(ctx context.Context) ([]string, error) {
	catalog, err := s.Catalog(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var languages []string
	for _, newsletter := range catalog {
		for _, lang := range newsletter.Languages {
			if !seen[lang] {
				seen[lang] = true
				languages = append(languages, lang)
			}
		}
	}
	sort.Strings(languages)

	return languages, nil
}

// VendorIDs returns the sorted vendor-side field identifiers of all newsletters.
func (s *newsletterService) VendorIDs(ctx context.Context) ([]string, error) {
	catalog, err := s.Catalog(ctx)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(catalog))
	for _, newsletter := range catalog {
		ids = append(ids, newsletter.VendorID)
	}
	sort.Strings(ids)

	return ids, nil
}

// Create stores a new newsletter and clears the cached catalog.
func (s *newsletterService) Create(ctx context.Context, newsletter *news.Newsletter) error {
	if newsletter.ID == "" {
		newsletter.ID = uuid.New().String()
	}
	if newsletter.Created.IsZero() {
		newsletter.Created = time.Now()
	}

	if err := s.repo.Create(ctx, newsletter); err != nil {
		return fmt.Errorf("failed to create newsletter %s: %w", newsletter.Slug, err)
	}

	s.invalidate()
	return nil
}

// Update stores newsletter changes and clears the cached catalog.
func (s *newsletterService) Update(ctx context.Context, newsletter *news.Newsletter) error {
	if err := s.repo.Update(ctx, newsletter); err != nil {
		return fmt.Errorf("failed to update newsletter %s: %w", newsletter.Slug, err)
	}

	s.invalidate()
	return nil
}

// DeleteBySlug removes a newsletter and clears the cached catalog.
func (s *newsletterService) DeleteBySlug(ctx context.Context, slug string) error {
	if err := s.repo.DeleteBySlug(ctx, slug); err != nil {
		return fmt.Errorf("failed to delete newsletter %s: %w", slug, err)
	}

	s.invalidate()
	return nil
}

func (s *newsletterService) invalidate() {
	s.mu.Lock()
	s.catalog = nil
	s.mu.Unlock()
}
