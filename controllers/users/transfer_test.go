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

func transferReq(body string) (*httptest.ResponseRecorder, *http.Request) {
	req := httptest.NewRequest(http.MethodPost, "/api/transfer", strings.NewReader(body))
	return httptest.NewRecorder(), req
}

func TestTransferHandler_MissingSenderIsNotFound(t *testing.T) {
	mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT \\* FROM `users` WHERE user_id = \\?").
		WillReturnRows(sqlmock.NewRows(userCols).AddRow(2, 2, nil, "Receiver", "0500000002", "active"))
	mock.ExpectExec("UPDATE `users` SET").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT \\* FROM `users` WHERE user_id = \\?").
		WillReturnRows(sqlmock.NewRows(userCols))
	mock.ExpectRollback()

	rr, req := transferReq(`{"fromUserId":99,"toUserId":2,"amount":50}`)
	TransferHandler(rr, req)

	require.Equal(t, http.StatusNotFound, rr.Code, rr.Body.String())
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "Sender not found", resp["message"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTransferHandler_InsufficientAgentBalance(t *testing.T) {
	mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT \\* FROM `users` WHERE user_id = \\?").
		WillReturnRows(sqlmock.NewRows(userCols).AddRow(2, 2, nil, "Receiver", "0500000002", "active"))
	mock.ExpectExec("UPDATE `users` SET").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT \\* FROM `users` WHERE user_id = \\?").
		WillReturnRows(sqlmock.NewRows(userCols).AddRow(1, 1, nil, "Sender", "0500000001", "active"))
	mock.ExpectRollback()

	rr, req := transferReq(`{"fromUserId":1,"toUserId":2,"amount":50}`)
	TransferHandler(rr, req)

	require.Equal(t, http.StatusBadRequest, rr.Code, rr.Body.String())
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "Insufficient agent balance", resp["message"])
	require.NoError(t, mock.ExpectationsWereMet())
}
