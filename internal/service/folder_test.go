package service

import (
	"context"
	"database/sql"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"docvault/internal/model"
	"docvault/internal/repository/memory"
	repoMocks "docvault/internal/repository/mocks"
)

func strPtr(s string) *string { return &s }

func TestFolderService_List(t *testing.T) {
	ctx := context.Background()
	mRepo := new(repoMocks.MockFolderRepository)
	svc := NewFolderService(mRepo)

	mRepo.On("ListByVault", ctx, "v1").Return([]model.Folder{{ID: "a"}, {ID: "b"}}, nil)
	mRepo.On("ListChildren", ctx, "v1", (*string)(nil)).Return([]model.Folder{{ID: "a"}}, nil)

	all, err := svc.List(ctx, "v1", true)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	roots, err := svc.List(ctx, "v1", false)
	require.NoError(t, err)
	assert.Len(t, roots, 1)

	_, err = svc.List(ctx, "", true)
	assert.ErrorIs(t, err, ErrIDRequired)
	mRepo.AssertExpectations(t)
}

func TestFolderService_FindOrCreate(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		parentID   *string
		folderName string
		setupMocks func(mRepo *repoMocks.MockFolderRepository)
		wantErr    error
	}{
		{
			name:       "root level",
			folderName: " Tax ",
			setupMocks: func(mRepo *repoMocks.MockFolderRepository) {
				mRepo.On("FindOrCreate", ctx, "v1", (*string)(nil), "Tax").Return(&model.Folder{ID: "f1", Name: "Tax"}, nil)
			},
		},
		{
			name:       "under parent",
			parentID:   strPtr("p1"),
			folderName: "2025",
			setupMocks: func(mRepo *repoMocks.MockFolderRepository) {
				mRepo.On("FindByID", ctx, "p1").Return(&model.Folder{ID: "p1", VaultID: "v1"}, nil)
				mRepo.On("FindOrCreate", ctx, "v1", strPtr("p1"), "2025").Return(&model.Folder{ID: "f2"}, nil)
			},
		},
		{
			name:       "parent missing",
			parentID:   strPtr("p1"),
			folderName: "2025",
			setupMocks: func(mRepo *repoMocks.MockFolderRepository) {
				mRepo.On("FindByID", ctx, "p1").Return(nil, sql.ErrNoRows)
			},
			wantErr: ErrFolderNotFound,
		},
		{
			name:       "parent in another vault",
			parentID:   strPtr("p1"),
			folderName: "2025",
			setupMocks: func(mRepo *repoMocks.MockFolderRepository) {
				mRepo.On("FindByID", ctx, "p1").Return(&model.Folder{ID: "p1", VaultID: "v2"}, nil)
			},
			wantErr: ErrValidation,
		},
		{
			name:       "blank name",
			folderName: "   ",
			setupMocks: func(*repoMocks.MockFolderRepository) {},
			wantErr:    ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mRepo := new(repoMocks.MockFolderRepository)
			svc := NewFolderService(mRepo)
			tt.setupMocks(mRepo)

			f, err := svc.FindOrCreate(ctx, "v1", tt.parentID, tt.folderName)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, f)
			}
			mRepo.AssertExpectations(t)
		})
	}
}

func TestFolderService_Move(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewFolderRepository(
		model.Folder{ID: "a", VaultID: "v1", Name: "A"},
		model.Folder{ID: "b", VaultID: "v1", Name: "B", ParentID: strPtr("a")},
		model.Folder{ID: "c", VaultID: "v1", Name: "C", ParentID: strPtr("b")},
		model.Folder{ID: "x", VaultID: "v2", Name: "X"},
	)
	svc := NewFolderService(repo)

	assert.ErrorIs(t, svc.Move(ctx, "a", strPtr("a")), ErrCircularMove)
	assert.ErrorIs(t, svc.Move(ctx, "a", strPtr("c")), ErrCircularMove)
	assert.ErrorIs(t, svc.Move(ctx, "a", strPtr("x")), ErrCrossVaultMove)
	assert.ErrorIs(t, svc.Move(ctx, "missing", nil), ErrFolderNotFound)

	require.NoError(t, svc.Move(ctx, "c", nil))
	c, err := svc.Get(ctx, "c")
	require.NoError(t, err)
	assert.Nil(t, c.ParentID)

	require.NoError(t, svc.Move(ctx, "a", strPtr("c")))
}

func TestDedupFolderService_CollapsesConcurrentCalls(t *testing.T) {
	ctx := context.Background()
	mInner := &mockSlowFolders{release: make(chan struct{})}
	svc := NewDedupFolderService(mInner)

	var wg sync.WaitGroup
	results := make([]*model.Folder, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			f, err := svc.FindOrCreate(ctx, "v1", nil, "Tax")
			require.NoError(t, err)
			results[i] = f
		}(i)
	}
	time.Sleep(100 * time.Millisecond)
	close(mInner.release)
	wg.Wait()

	assert.Equal(t, int32(1), mInner.calls.Load())
	for _, f := range results {
		assert.Equal(t, "f1", f.ID)
	}
	results[0].Name = "mutated"
	assert.Equal(t, "Tax", results[1].Name)
}

func TestDedupFolderService_DelegatesOtherMethods(t *testing.T) {
	ctx := context.Background()
	mRepo := new(repoMocks.MockFolderRepository)
	mRepo.On("FindByID", ctx, "f1").Return(&model.Folder{ID: "f1"}, nil)
	mRepo.On("UpdateParent", ctx, "f1", mock.Anything).Return(nil)

	svc := NewDedupFolderService(NewFolderService(mRepo))
	f, err := svc.Get(ctx, "f1")
	require.NoError(t, err)
	assert.Equal(t, "f1", f.ID)
	require.NoError(t, svc.Move(ctx, "f1", nil))
	mRepo.AssertExpectations(t)
}

func TestVaultService_Get(t *testing.T) {
	ctx := context.Background()
	svc := NewVaultService(memory.NewVaultRepository(model.Vault{ID: "v1", Kind: model.VaultPersonal}))

	v, err := svc.Get(ctx, "v1")
	require.NoError(t, err)
	assert.True(t, v.IsPersonal())

	_, err = svc.Get(ctx, "v9")
	assert.ErrorIs(t, err, ErrVaultNotFound)
	_, err = svc.Get(ctx, "")
	assert.ErrorIs(t, err, ErrIDRequired)
}

// mockSlowFolders holds FindOrCreate open until release is closed.
type mockSlowFolders struct {
	FolderService
	calls   atomic.Int32
	release chan struct{}
}

func (m *mockSlowFolders) FindOrCreate(_ context.Context, vaultID string, _ *string, name string) (*model.Folder, error) {
	m.calls.Add(1)
	<-m.release
	return &model.Folder{ID: "f1", VaultID: vaultID, Name: name}, nil
}
