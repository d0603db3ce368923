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

// Three gen1 branches of size 3 each, so user 1 meets Bronze [3,3,3].
func bronzeFixtureRows() *sqlmock.Rows {
	rows := sqlmock.NewRows(userCols).
		AddRow(1, 1, nil, "Root", "0500000001", "active").
		AddRow(2, 2, 1, "B1", "0500000002", "active").
		AddRow(3, 3, 1, "B2", "0500000003", "active").
		AddRow(4, 4, 1, "B3", "0500000004", "active")
	rows.AddRow(5, 5, 2, "L1", "0500000005", "active").
		AddRow(6, 6, 2, "L2", "0500000006", "active").
		AddRow(7, 7, 3, "L3", "0500000007", "active").
		AddRow(8, 8, 3, "L4", "0500000008", "active").
		AddRow(9, 9, 4, "L5", "0500000009", "active").
		AddRow(10, 10, 4, "L6", "0500000010", "active")
	return rows
}

func collectRewardReq(body string) (*httptest.ResponseRecorder, *http.Request) {
	req := httptest.NewRequest(http.MethodPost, "/api/users/collect-reward", strings.NewReader(body))
	return httptest.NewRecorder(), req
}

func TestCollectRankRewardHandler_PaysOutOnce(t *testing.T) {
	mock := newMockDB(t)
	expectUsersFetch(mock, bronzeFixtureRows())
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `rank_bonuses`").
		WithArgs(int64(1), "bronze_all", 300.0, 1.05, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("UPDATE `users` SET").
		WithArgs(300.0, 1.05, sqlmock.AnyArg(), int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	rr, req := collectRewardReq(`{"userId":1,"rank":"Bronze"}`)
	CollectRankRewardHandler(rr, req)

	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCollectRankRewardHandler_RejectsReplay(t *testing.T) {
	mock := newMockDB(t)
	expectUsersFetch(mock, bronzeFixtureRows())
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `rank_bonuses`").WillReturnError(duplicateKeyErr())
	mock.ExpectRollback()

	rr, req := collectRewardReq(`{"userId":1,"rank":"Bronze"}`)
	CollectRankRewardHandler(rr, req)

	require.Equal(t, http.StatusBadRequest, rr.Code, rr.Body.String())
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "Reward already collected", resp["message"])
	// The SAR and gold credits must not run after a refused claim insert.
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCollectRankRewardHandler_RequiresCompleteTier(t *testing.T) {
	mock := newMockDB(t)
	expectUsersFetch(mock, bronzeFixtureRows())
	mock.ExpectBegin()
	mock.ExpectRollback()

	// Silver needs [7,7,7]; the fixture only supports Bronze.
	rr, req := collectRewardReq(`{"userId":1,"rank":"Silver"}`)
	CollectRankRewardHandler(rr, req)

	require.Equal(t, http.StatusBadRequest, rr.Code, rr.Body.String())
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "Rank requirements not met", resp["message"])
	require.NoError(t, mock.ExpectationsWereMet())
}
