package orm

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImportBatchStartThenCacheHit(t *testing.T) {
	mock := newMockDB(t)
	mock.ExpectExec("INSERT INTO `import_batches`").WillReturnResult(sqlmock.NewResult(1, 1))

	batch := ImportBatch{FileName: "f.csv", FileSize: 42, Uploader: "uploader-cache-hit"}
	require.NoError(t, batch.Start())
	assert.Equal(t, ImportBatchStatusReceived, batch.Status)

	// Start가 캐시에 올렸으므로 DB 조회 없이 돌아와야 한다
	var latest ImportBatch
	require.NoError(t, latest.GetLatest("uploader-cache-hit"))
	assert.Equal(t, "f.csv", latest.FileName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestImportBatchGetLatestFromDB(t *testing.T) {
	mock := newMockDB(t)
	rows := sqlmock.NewRows([]string{"id", "file_name", "uploader", "status"}).
		AddRow(9, "old.csv", "uploader-db-only", string(ImportBatchStatusCommitted))
	mock.ExpectQuery("SELECT (.+) FROM `import_batches`").WillReturnRows(rows)

	var batch ImportBatch
	require.NoError(t, batch.GetLatest("uploader-db-only"))
	assert.Equal(t, "old.csv", batch.FileName)
	assert.Equal(t, ImportBatchStatusCommitted, batch.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestImportBatchGetLatestNotFound(t *testing.T) {
	mock := newMockDB(t)
	mock.ExpectQuery("SELECT (.+) FROM `import_batches`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	var batch ImportBatch
	assert.Error(t, batch.GetLatest("uploader-missing"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestImportBatchMarkParsed(t *testing.T) {
	mock := newMockDB(t)
	mock.ExpectExec("INSERT INTO `import_batches`").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("UPDATE `import_batches`").WillReturnResult(sqlmock.NewResult(0, 1))

	batch := ImportBatch{FileName: "f.csv", Uploader: "uploader-parsed"}
	require.NoError(t, batch.Start())
	require.NoError(t, batch.MarkParsed(12, 3))
	assert.Equal(t, ImportBatchStatusParsed, batch.Status)
	assert.Equal(t, 12, batch.RowCount)
	assert.Equal(t, 3, batch.GroupCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestImportBatchFinishAndFail(t *testing.T) {
	mock := newMockDB(t)
	mock.ExpectExec("INSERT INTO `import_batches`").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("UPDATE `import_batches`").WillReturnResult(sqlmock.NewResult(0, 1))

	batch := ImportBatch{FileName: "f.csv", Uploader: "uploader-finish"}
	require.NoError(t, batch.Start())
	require.NoError(t, batch.Finish(4, 1))
	assert.Equal(t, ImportBatchStatusCommitted, batch.Status)
	assert.Equal(t, 4, batch.CreatedCount)
	assert.Equal(t, 1, batch.ErrorCount)

	mock.ExpectExec("UPDATE `import_batches`").WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, batch.Fail(ImportBatchStatusFailed, "commit transaction failed"))
	assert.Equal(t, ImportBatchStatusFailed, batch.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}
