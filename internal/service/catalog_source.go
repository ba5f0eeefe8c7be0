package service

import (
	"context"
	"fmt"
	"time"

	"campus-guide-be/internal/pkg/serverutils"
	"campus-guide-be/internal/repository/contract"
	"campus-guide-be/internal/repository/specification"
	"campus-guide-be/pkg/guide/catalog"

	"github.com/patrickmn/go-cache"
	"golang.org/x/sync/errgroup"
)

var ErrStudentNotFound = fmt.Errorf("student record: %w", serverutils.ErrNotFound)

// ICatalogSource hands each session the catalog.Provider of its student.
type ICatalogSource interface {
	ForUser(ctx context.Context, userID string) (catalog.Provider, error)
}

type staticCatalogSource struct {
	provider catalog.Provider
}

// NewStaticCatalogSource serves one catalog to every user. Used when no
// database is configured.
func NewStaticCatalogSource(c *catalog.Catalog) ICatalogSource {
	return &staticCatalogSource{provider: catalog.NewStatic(c)}
}

func (s *staticCatalogSource) ForUser(ctx context.Context, userID string) (catalog.Provider, error) {
	return s.provider, nil
}

type repositoryCatalogSource struct {
	repo  contract.CatalogRepository
	cache *cache.Cache
	ttl   time.Duration
}

func NewRepositoryCatalogSource(repo contract.CatalogRepository, ttl time.Duration) ICatalogSource {
	return &repositoryCatalogSource{
		repo:  repo,
		cache: cache.New(ttl, 2*ttl),
		ttl:   ttl,
	}
}

func (s *repositoryCatalogSource) ForUser(ctx context.Context, userID string) (catalog.Provider, error) {
	p := &repositoryCatalog{source: s, userID: userID}
	if _, err := p.Catalog(ctx); err != nil {
		return nil, err
	}
	return p, nil
}

// repositoryCatalog reloads the student's records once the cached copy
// expires, so registrar updates reach live sessions.
type repositoryCatalog struct {
	source *repositoryCatalogSource
	userID string
}

func (p *repositoryCatalog) Catalog(ctx context.Context) (*catalog.Catalog, error) {
	if x, ok := p.source.cache.Get(p.userID); ok {
		return x.(*catalog.Catalog), nil
	}

	c, err := p.source.load(ctx, p.userID)
	if err != nil {
		return nil, err
	}
	p.source.cache.Set(p.userID, c, p.source.ttl)
	return c, nil
}

func (s *repositoryCatalogSource) load(ctx context.Context, userID string) (*catalog.Catalog, error) {
	student, err := s.repo.FindStudent(ctx, specification.ByUserID{UserID: userID})
	if err != nil {
		return nil, fmt.Errorf("load student: %w", err)
	}
	if student == nil {
		return nil, ErrStudentNotFound
	}

	c := &catalog.Catalog{Student: *student}
	owned := []specification.Specification{specification.ByUserID{UserID: userID}}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		c.Courses, err = s.repo.FindCourses(gctx, append(owned, specification.DeclaredOrder{})...)
		return err
	})
	g.Go(func() (err error) {
		c.Exams, err = s.repo.FindExams(gctx, append(owned, specification.OrderBy{Field: "date"})...)
		return err
	})
	g.Go(func() (err error) {
		c.Fees, err = s.repo.FindFees(gctx, append(owned, specification.DeclaredOrder{})...)
		return err
	})
	g.Go(func() (err error) {
		c.Announcements, err = s.repo.FindAnnouncements(gctx, specification.OrderBy{Field: "date", Desc: true})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	return c, nil
}
