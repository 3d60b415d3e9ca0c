package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/patrickmn/go-cache"

	"rpvscraper/internal/model"
	"rpvscraper/internal/repository"
	"rpvscraper/internal/storage"
)

var (
	ErrIDRequired      = errors.New("id is required")
	ErrNotFound        = errors.New("publication not found")
	ErrArchiveDisabled = errors.New("source archive is not configured")
)

const (
	DefaultLimit      = 10
	MaxLimit          = 100
	DefaultBoardLimit = 30
)

// PublicationListResult is the service-level DTO for paginated publications.
type PublicationListResult struct {
	Items []model.Record `json:"data"`
	Total int            `json:"total"`
}

// BoardColumn is one status column of the review board.
type BoardColumn struct {
	Total       int            `json:"total"`
	Publicacoes []model.Record `json:"publicacoes"`
}

// boardColumns lists the review board columns in display order.
var boardColumns = []struct {
	key    string
	status string
}{
	{"nova", model.StatusNew},
	{"lida", model.StatusRead},
	{"processada", model.StatusProcessed},
	{"concluida", model.StatusDone},
}

// PublicationService exposes the stored RPV publications read-only.
type PublicationService interface {
	// List returns publications matching filter using limit/offset and a total count.
	List(ctx context.Context, filter repository.RecordFilter, limit, offset int) (*PublicationListResult, error)

	// Board returns one page per review status, keyed by column name.
	Board(ctx context.Context, limit, offset int) (map[string]BoardColumn, error)

	// Get returns a single publication by its ID.
	Get(ctx context.Context, id int64) (*model.Record, error)

	// SourceURL returns a presigned download URL for the gazette a publication came from.
	SourceURL(ctx context.Context, id int64) (string, error)

	// Source streams the archived gazette a publication came from.
	Source(ctx context.Context, id int64) (io.ReadCloser, storage.ObjectInfo, error)
}

type publicationService struct {
	repo    repository.RecordRepository
	store   storage.Storage
	expiry  time.Duration
	presign *cache.Cache
}

// NewPublicationService constructs a PublicationService. store may be nil,
// in which case the source operations return ErrArchiveDisabled.
func NewPublicationService(repo repository.RecordRepository, store storage.Storage, presignExpiry time.Duration) PublicationService {
	if presignExpiry <= 0 {
		presignExpiry = 15 * time.Minute
	}
	// Cached URLs expire before the presigned ones do.
	ttl := presignExpiry * 9 / 10
	return &publicationService{
		repo:    repo,
		store:   store,
		expiry:  presignExpiry,
		presign: cache.New(ttl, 2*ttl),
	}
}

func clampPage(limit, offset, def int) (int, int) {
	if limit <= 0 {
		limit = def
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

func (s *publicationService) List(ctx context.Context, filter repository.RecordFilter, limit, offset int) (*PublicationListResult, error) {
	limit, offset = clampPage(limit, offset, DefaultLimit)
	res, err := s.repo.List(ctx, filter, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &PublicationListResult{Items: res.Items, Total: res.Total}, nil
}

func (s *publicationService) Board(ctx context.Context, limit, offset int) (map[string]BoardColumn, error) {
	limit, offset = clampPage(limit, offset, DefaultBoardLimit)
	board := make(map[string]BoardColumn, len(boardColumns))
	for _, col := range boardColumns {
		res, err := s.repo.List(ctx,
			repository.RecordFilter{Status: col.status},
			repository.PageQuery{Limit: limit, Offset: offset},
		)
		if err != nil {
			return nil, fmt.Errorf("board column %s: %w", col.key, err)
		}
		board[col.key] = BoardColumn{Total: res.Total, Publicacoes: res.Items}
	}
	return board, nil
}

func (s *publicationService) Get(ctx context.Context, id int64) (*model.Record, error) {
	if id <= 0 {
		return nil, ErrIDRequired
	}
	rec, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return rec, nil
}

func (s *publicationService) SourceURL(ctx context.Context, id int64) (string, error) {
	if s.store == nil {
		return "", ErrArchiveDisabled
	}
	rec, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}

	key := storage.GazetteKey(rec.SourceFilename)
	if u, ok := s.presign.Get(key); ok {
		return u.(string), nil
	}
	u, err := s.store.PresignGet(ctx, key, s.expiry)
	if err != nil {
		return "", fmt.Errorf("presign source: %w", err)
	}
	s.presign.SetDefault(key, u)
	return u, nil
}

func (s *publicationService) Source(ctx context.Context, id int64) (io.ReadCloser, storage.ObjectInfo, error) {
	if s.store == nil {
		return nil, storage.ObjectInfo{}, ErrArchiveDisabled
	}
	rec, err := s.Get(ctx, id)
	if err != nil {
		return nil, storage.ObjectInfo{}, err
	}
	rc, info, err := s.store.Get(ctx, storage.GazetteKey(rec.SourceFilename))
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return nil, storage.ObjectInfo{}, ErrNotFound
		}
		return nil, storage.ObjectInfo{}, fmt.Errorf("open source: %w", err)
	}
	return rc, info, nil
}
