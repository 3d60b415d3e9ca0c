package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"rpvscraper/internal/model"
	"rpvscraper/internal/repository"
	repoMocks "rpvscraper/internal/repository/mocks"
	"rpvscraper/internal/storage"
	storeMocks "rpvscraper/internal/storage/mocks"
)

func TestPublicationService_List(t *testing.T) {
	ctx := context.Background()
	filter := repository.RecordFilter{Party: "silva"}

	tests := []struct {
		name          string
		limit, offset int
		wantPage      repository.PageQuery
	}{
		{"explicit page", 20, 40, repository.PageQuery{Limit: 20, Offset: 40}},
		{"defaults", 0, -5, repository.PageQuery{Limit: DefaultLimit, Offset: 0}},
		{"limit capped", 1000, 0, repository.PageQuery{Limit: MaxLimit, Offset: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mRepo := new(repoMocks.MockRecordRepository)
			mRepo.On("List", ctx, filter, tt.wantPage).Return(&repository.PageResult[model.Record]{
				Items: []model.Record{{ID: 1}},
				Total: 7,
			}, nil)

			res, err := NewPublicationService(mRepo, nil, time.Minute).List(ctx, filter, tt.limit, tt.offset)

			require.NoError(t, err)
			assert.Equal(t, 7, res.Total)
			assert.Len(t, res.Items, 1)
			mRepo.AssertExpectations(t)
		})
	}

	t.Run("repository error", func(t *testing.T) {
		mRepo := new(repoMocks.MockRecordRepository)
		mRepo.On("List", ctx, filter, mock.Anything).Return(nil, errors.New("db down"))

		res, err := NewPublicationService(mRepo, nil, time.Minute).List(ctx, filter, 10, 0)

		assert.EqualError(t, err, "db down")
		assert.Nil(t, res)
	})
}

func TestPublicationService_Board(t *testing.T) {
	ctx := context.Background()
	page := repository.PageQuery{Limit: DefaultBoardLimit, Offset: 0}

	mRepo := new(repoMocks.MockRecordRepository)
	for i, status := range []string{model.StatusNew, model.StatusRead, model.StatusProcessed, model.StatusDone} {
		mRepo.On("List", ctx, repository.RecordFilter{Status: status}, page).Return(&repository.PageResult[model.Record]{
			Items: []model.Record{{ID: int64(i + 1), Status: status}},
			Total: i,
		}, nil)
	}

	board, err := NewPublicationService(mRepo, nil, time.Minute).Board(ctx, 0, 0)

	require.NoError(t, err)
	assert.Len(t, board, 4)
	assert.Equal(t, 0, board["nova"].Total)
	assert.Equal(t, model.StatusRead, board["lida"].Publicacoes[0].Status)
	assert.Equal(t, 2, board["processada"].Total)
	assert.Equal(t, model.StatusDone, board["concluida"].Publicacoes[0].Status)
	mRepo.AssertExpectations(t)
}

func TestPublicationService_Board_Error(t *testing.T) {
	ctx := context.Background()
	mRepo := new(repoMocks.MockRecordRepository)
	mRepo.On("List", ctx, mock.Anything, mock.Anything).Return(nil, errors.New("timeout"))

	board, err := NewPublicationService(mRepo, nil, time.Minute).Board(ctx, 5, 0)

	assert.EqualError(t, err, "board column nova: timeout")
	assert.Nil(t, board)
}

func TestPublicationService_Get(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		id      int64
		setup   func(m *repoMocks.MockRecordRepository)
		wantErr error
	}{
		{
			name: "found",
			id:   3,
			setup: func(m *repoMocks.MockRecordRepository) {
				m.On("FindByID", ctx, int64(3)).Return(&model.Record{ID: 3}, nil)
			},
		},
		{
			name:    "invalid id",
			id:      0,
			setup:   func(m *repoMocks.MockRecordRepository) {},
			wantErr: ErrIDRequired,
		},
		{
			name: "not found",
			id:   9,
			setup: func(m *repoMocks.MockRecordRepository) {
				m.On("FindByID", ctx, int64(9)).Return(nil, sql.ErrNoRows)
			},
			wantErr: ErrNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mRepo := new(repoMocks.MockRecordRepository)
			tt.setup(mRepo)

			rec, err := NewPublicationService(mRepo, nil, time.Minute).Get(ctx, tt.id)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, rec)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.id, rec.ID)
			mRepo.AssertExpectations(t)
		})
	}
}

func TestPublicationService_SourceURL_CachesPresignedURL(t *testing.T) {
	ctx := context.Background()
	mRepo := new(repoMocks.MockRecordRepository)
	mStore := new(storeMocks.MockStorage)

	mRepo.On("FindByID", ctx, int64(1)).Return(&model.Record{ID: 1, SourceFilename: "dje.pdf"}, nil)
	mStore.On("PresignGet", ctx, "gazettes/dje.pdf", 10*time.Minute).
		Return("http://minio/gazettes/dje.pdf?X-Amz-Signature=abc", nil).Once()

	svc := NewPublicationService(mRepo, mStore, 10*time.Minute)
	for range 3 {
		u, err := svc.SourceURL(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, "http://minio/gazettes/dje.pdf?X-Amz-Signature=abc", u)
	}

	mStore.AssertNumberOfCalls(t, "PresignGet", 1)
	mRepo.AssertNumberOfCalls(t, "FindByID", 3)
}

func TestPublicationService_SourceURL_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("archive disabled", func(t *testing.T) {
		_, err := NewPublicationService(new(repoMocks.MockRecordRepository), nil, time.Minute).SourceURL(ctx, 1)
		assert.ErrorIs(t, err, ErrArchiveDisabled)
	})

	t.Run("not found", func(t *testing.T) {
		mRepo := new(repoMocks.MockRecordRepository)
		mRepo.On("FindByID", ctx, int64(2)).Return(nil, sql.ErrNoRows)

		_, err := NewPublicationService(mRepo, new(storeMocks.MockStorage), time.Minute).SourceURL(ctx, 2)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("presign failure", func(t *testing.T) {
		mRepo := new(repoMocks.MockRecordRepository)
		mStore := new(storeMocks.MockStorage)
		mRepo.On("FindByID", ctx, int64(3)).Return(&model.Record{ID: 3, SourceFilename: "x.pdf"}, nil)
		mStore.On("PresignGet", ctx, "gazettes/x.pdf", time.Minute).Return("", errors.New("no credentials"))

		_, err := NewPublicationService(mRepo, mStore, time.Minute).SourceURL(ctx, 3)
		assert.EqualError(t, err, "presign source: no credentials")
	})
}

func TestPublicationService_Source(t *testing.T) {
	ctx := context.Background()

	t.Run("streams archived gazette", func(t *testing.T) {
		mRepo := new(repoMocks.MockRecordRepository)
		mStore := new(storeMocks.MockStorage)
		mRepo.On("FindByID", ctx, int64(1)).Return(&model.Record{ID: 1, SourceFilename: "dje.pdf"}, nil)
		body := io.NopCloser(strings.NewReader("%PDF-1.7"))
		mStore.On("Get", ctx, "gazettes/dje.pdf").
			Return(body, storage.ObjectInfo{Key: "gazettes/dje.pdf", Size: 8, ContentType: "application/pdf"}, nil)

		rc, info, err := NewPublicationService(mRepo, mStore, time.Minute).Source(ctx, 1)

		require.NoError(t, err)
		defer rc.Close()
		data, _ := io.ReadAll(rc)
		assert.Equal(t, "%PDF-1.7", string(data))
		assert.Equal(t, int64(8), info.Size)
	})

	t.Run("missing object", func(t *testing.T) {
		mRepo := new(repoMocks.MockRecordRepository)
		mStore := new(storeMocks.MockStorage)
		mRepo.On("FindByID", ctx, int64(1)).Return(&model.Record{ID: 1, SourceFilename: "dje.pdf"}, nil)
		mStore.On("Get", ctx, "gazettes/dje.pdf").
			Return(nil, storage.ObjectInfo{}, fmt.Errorf("stat gazettes/dje.pdf: %w", storage.ErrObjectNotFound))

		_, _, err := NewPublicationService(mRepo, mStore, time.Minute).Source(ctx, 1)

		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("archive disabled", func(t *testing.T) {
		_, _, err := NewPublicationService(new(repoMocks.MockRecordRepository), nil, time.Minute).Source(ctx, 1)
		assert.ErrorIs(t, err, ErrArchiveDisabled)
	})
}
