package users

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collectBonusReq(body string) (*httptest.ResponseRecorder, *http.Request) {
	req := httptest.NewRequest(http.MethodPost, "/api/bonus/collect", strings.NewReader(body))
	return httptest.NewRecorder(), req
}

func bonusFixtureRows() *sqlmock.Rows {
	return sqlmock.NewRows(userCols).
		AddRow(1, 1, nil, "Root", "0500000001", "active").
		AddRow(2, 2, 1, "Child", "0500000002", "active")
}

func TestCollectBonusHandler_PaysOutOnce(t *testing.T) {
	mock := newMockDB(t)
	expectUsersFetch(mock, bonusFixtureRows())
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `bonuses`").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("UPDATE `users` SET").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectQuery("SELECT \\* FROM `users` WHERE user_id = \\?").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "balance"}).AddRow(1, 1, 125))

	rr, req := collectBonusReq(`{"userId":1,"fromUserId":2,"generation":"gen1"}`)
	CollectBonusHandler(rr, req)

	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCollectBonusHandler_RejectsReplay(t *testing.T) {
	mock := newMockDB(t)
	expectUsersFetch(mock, bonusFixtureRows())
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `bonuses`").WillReturnError(duplicateKeyErr())
	mock.ExpectRollback()

	rr, req := collectBonusReq(`{"userId":1,"fromUserId":2,"generation":"gen1"}`)
	CollectBonusHandler(rr, req)

	require.Equal(t, http.StatusBadRequest, rr.Code, rr.Body.String())
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "Bonus already collected", resp["message"])
	// Strict expectations: once the ledger insert is refused, no balance
	// update may run.
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCollectBonusHandler_NormalizesGenerationLabel(t *testing.T) {
	mock := newMockDB(t)
	expectUsersFetch(mock, bonusFixtureRows())
	mock.ExpectBegin()
	// "gen01" must hit the same ledger key as "gen1", so the insert carries
	// the canonical label and collides with the earlier claim.
	mock.ExpectExec("INSERT INTO `bonuses`").
		WithArgs(int64(1), int64(2), "gen1", true,
			sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnError(duplicateKeyErr())
	mock.ExpectRollback()

	rr, req := collectBonusReq(`{"userId":1,"fromUserId":2,"generation":"gen01"}`)
	CollectBonusHandler(rr, req)

	require.Equal(t, http.StatusBadRequest, rr.Code, rr.Body.String())
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "Bonus already collected", resp["message"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestParseGeneration(t *testing.T) {
	for _, tc := range []struct {
		label string
		gen   int
		ok    bool
	}{
		{"gen1", 1, true},
		{"gen10", 10, true},
		{"gen01", 1, true},
		{"gen0", 0, false},
		{"gen11", 0, false},
		{"g1", 0, false},
		{"gen+1", 0, false},
		{"", 0, false},
	} {
		gen, ok := parseGeneration(tc.label)
		assert.Equal(t, tc.ok, ok, tc.label)
		if tc.ok {
			assert.Equal(t, tc.gen, gen, tc.label)
		}
	}
}
