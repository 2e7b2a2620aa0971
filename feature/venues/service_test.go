package venues

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"venue-manager/core/storage/mocks"
	"venue-manager/core/table"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// writeServiceFixtures lays out curated tables, a user override, and a
// bibliography in a temp dir and returns the matching config.
func writeServiceFixtures(t *testing.T) Config {
	t.Helper()
	dir := t.TempDir()

	conferences := `{
    "ICML": {
        "names_full": ["International Conference on Machine Learning"],
        "names_abbr": ["ICML"]
    }
}`
	journals := `{
    "JMLR": {
        "names_full": ["Journal of Machine Learning Research"],
        "names_abbr": ["JMLR"]
    }
}`
	user := `{
    "springer": {
        "Conferences": {
            "ICML": {
                "names_full": ["International Conference on Machine Learning (User)"],
                "names_abbr": ["ICML"]
            }
        }
    }
}`
	bib := `
@inproceedings{C_NIPS_2020,
    booktitle={Advances in Neural Information Processing Systems},
    eventtitle={NeurIPS}
}
@article{J_TMLR_2023,
    journaltitle={Transactions on Machine Learning Research},
    shortjournal={TMLR}
}
`

	cfg := Config{
		DefaultConferences: filepath.Join(dir, "conferences.json"),
		DefaultJournals:    filepath.Join(dir, "journals.json"),
		UserConferences:    filepath.Join(dir, "user_conferences.json"),
		Bibliography:       filepath.Join(dir, "library.bib"),
	}
	require.NoError(t, os.WriteFile(cfg.DefaultConferences, []byte(conferences), 0644))
	require.NoError(t, os.WriteFile(cfg.DefaultJournals, []byte(journals), 0644))
	require.NoError(t, os.WriteFile(cfg.UserConferences, []byte(user), 0644))
	require.NoError(t, os.WriteFile(cfg.Bibliography, []byte(bib), 0644))
	return cfg
}

func TestServiceRun_ReconcilesBothNamespaces(t *testing.T) {
	cfg := writeServiceFixtures(t)
	svc := NewService(cfg, zap.NewNop())

	report, err := svc.Run(context.Background(), RunOptions{})
	require.NoError(t, err)

	assert.True(t, report.Safe)
	assert.NotEmpty(t, report.RunID)
	require.Len(t, report.Namespaces, 2)

	conferences := report.Namespaces[0]
	assert.Equal(t, "conferences", conferences.Namespace)
	assert.True(t, conferences.ExistingValid)
	assert.True(t, conferences.ParsedValid)
	assert.Equal(t, []string{"NIPS"}, conferences.NewKeys)

	// The user override wins over the curated record.
	rec, ok := conferences.Merged.Get("ICML")
	require.True(t, ok)
	assert.Equal(t, []string{"International Conference on Machine Learning (User)"}, rec.FullNames)

	journals := report.Namespaces[1]
	assert.Equal(t, "journals", journals.Namespace)
	assert.Equal(t, []string{"TMLR"}, journals.NewKeys)
}

func TestServiceRun_IsSideEffectFree(t *testing.T) {
	cfg := writeServiceFixtures(t)
	before, err := os.ReadFile(cfg.DefaultConferences)
	require.NoError(t, err)

	svc := NewService(cfg, zap.NewNop())
	_, err = svc.Run(context.Background(), RunOptions{})
	require.NoError(t, err)

	after, err := os.ReadFile(cfg.DefaultConferences)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestServiceRun_MissingBibliographyExtractsNothing(t *testing.T) {
	cfg := writeServiceFixtures(t)
	svc := NewService(cfg, zap.NewNop())

	report, err := svc.Run(context.Background(), RunOptions{
		Bibliography: filepath.Join(t.TempDir(), "missing.bib"),
	})
	require.NoError(t, err)

	assert.True(t, report.Safe)
	for _, ns := range report.Namespaces {
		assert.Empty(t, ns.NewKeys)
	}
}

func TestServicePersist_WritesMergedTables(t *testing.T) {
	cfg := writeServiceFixtures(t)
	svc := NewService(cfg, zap.NewNop())

	report, err := svc.Run(context.Background(), RunOptions{})
	require.NoError(t, err)
	require.NoError(t, svc.Persist(context.Background(), report))

	assert.True(t, report.Persisted)

	saved := table.Load(cfg.DefaultConferences, zap.NewNop())
	assert.True(t, saved.Has("NIPS"))
	assert.True(t, saved.Has("ICML"))

	// A second run over the persisted tables finds nothing new.
	again, err := svc.Run(context.Background(), RunOptions{})
	require.NoError(t, err)
	for _, ns := range again.Namespaces {
		assert.Empty(t, ns.NewKeys)
	}
}

func TestServicePersist_RefusesUnsafeReport(t *testing.T) {
	cfg := writeServiceFixtures(t)
	svc := NewService(cfg, zap.NewNop())

	report, err := svc.Run(context.Background(), RunOptions{})
	require.NoError(t, err)
	report.Safe = false

	assert.Error(t, svc.Persist(context.Background(), report))
	assert.False(t, report.Persisted)
}

func TestServicePersist_UploadsBackups(t *testing.T) {
	cfg := writeServiceFixtures(t)
	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "venues").Return(true, nil).Once()
	client.On("PutObject", mock.Anything, "venues", "tables/conferences.json",
		mock.Anything, mock.Anything, mock.Anything).Return(minio.UploadInfo{}, nil)
	client.On("PutObject", mock.Anything, "venues", "tables/journals.json",
		mock.Anything, mock.Anything, mock.Anything).Return(minio.UploadInfo{}, nil)

	svc := NewService(cfg, zap.NewNop()).WithBackup(client, "venues")

	report, err := svc.Run(context.Background(), RunOptions{})
	require.NoError(t, err)
	require.NoError(t, svc.Persist(context.Background(), report))

	client.AssertExpectations(t)
}

func TestServicePersist_CreatesMissingBucket(t *testing.T) {
	cfg := writeServiceFixtures(t)
	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "venues").Return(false, nil).Once()
	client.On("MakeBucket", mock.Anything, "venues", mock.Anything).Return(nil).Once()
	client.On("PutObject", mock.Anything, "venues", mock.Anything,
		mock.Anything, mock.Anything, mock.Anything).Return(minio.UploadInfo{}, nil)

	svc := NewService(cfg, zap.NewNop()).WithBackup(client, "venues")

	report, err := svc.Run(context.Background(), RunOptions{})
	require.NoError(t, err)
	require.NoError(t, svc.Persist(context.Background(), report))

	client.AssertExpectations(t)
}

func TestServiceRestoreBackup(t *testing.T) {
	cfg := writeServiceFixtures(t)
	backup := `{
    "NIPS": {
        "names_full": ["Advances in Neural Information Processing Systems"],
        "names_abbr": ["NeurIPS"]
    }
}`
	client := new(mocks.Client)
	client.On("GetObject", mock.Anything, "venues", "tables/conferences.json", mock.Anything).
		Return(io.NopCloser(strings.NewReader(backup)), nil)

	svc := NewService(cfg, zap.NewNop()).WithBackup(client, "venues")
	require.NoError(t, svc.RestoreBackup(context.Background(), KindInproceedings))

	restored := table.Load(cfg.DefaultConferences, zap.NewNop())
	assert.Equal(t, []string{"NIPS"}, restored.Keys())
	client.AssertExpectations(t)
}

func TestServiceRestoreBackup_CorruptPayloadLeavesTable(t *testing.T) {
	cfg := writeServiceFixtures(t)
	before, err := os.ReadFile(cfg.DefaultConferences)
	require.NoError(t, err)

	client := new(mocks.Client)
	client.On("GetObject", mock.Anything, "venues", "tables/conferences.json", mock.Anything).
		Return(io.NopCloser(strings.NewReader("not json")), nil)

	svc := NewService(cfg, zap.NewNop()).WithBackup(client, "venues")
	assert.Error(t, svc.RestoreBackup(context.Background(), KindInproceedings))

	after, err := os.ReadFile(cfg.DefaultConferences)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestServiceDeleteBackup(t *testing.T) {
	cfg := writeServiceFixtures(t)
	client := new(mocks.Client)
	client.On("RemoveObject", mock.Anything, "venues", "tables/journals.json", mock.Anything).
		Return(nil).Once()

	svc := NewService(cfg, zap.NewNop()).WithBackup(client, "venues")
	require.NoError(t, svc.DeleteBackup(context.Background(), KindArticle))
	client.AssertExpectations(t)
}

func TestServiceBackup_UnconfiguredClient(t *testing.T) {
	svc := NewService(writeServiceFixtures(t), zap.NewNop())

	assert.Error(t, svc.RestoreBackup(context.Background(), KindArticle))
	assert.Error(t, svc.DeleteBackup(context.Background(), KindArticle))
}

func TestServiceTable_MergesUserTier(t *testing.T) {
	cfg := writeServiceFixtures(t)
	svc := NewService(cfg, zap.NewNop())

	tbl, err := svc.Table(KindInproceedings)
	require.NoError(t, err)

	rec, ok := tbl.Get("ICML")
	require.True(t, ok)
	assert.Equal(t, []string{"International Conference on Machine Learning (User)"}, rec.FullNames)

	_, err = svc.Table(Kind("book"))
	assert.Error(t, err)
}

func TestServiceResolve(t *testing.T) {
	cfg := writeServiceFixtures(t)
	svc := NewService(cfg, zap.NewNop())

	acronym, found, err := svc.Resolve(KindArticle, "journal of machine learning research")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "JMLR", acronym)

	_, found, err = svc.Resolve(KindArticle, "Unknown Venue")
	require.NoError(t, err)
	assert.False(t, found)
}
