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

func activateReq(body string) (*httptest.ResponseRecorder, *http.Request) {
	req := httptest.NewRequest(http.MethodPost, "/api/users/activate", strings.NewReader(body))
	return httptest.NewRecorder(), req
}

func TestActivateHandler_MissingPayerIsNotFound(t *testing.T) {
	mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT \\* FROM `users` WHERE user_id = \\?").
		WillReturnRows(sqlmock.NewRows(userCols).AddRow(1, 1, nil, "New", "0500000001", "inactive"))
	mock.ExpectExec("UPDATE `users` SET").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT \\* FROM `users` WHERE user_id = \\?").
		WillReturnRows(sqlmock.NewRows(userCols))
	mock.ExpectRollback()

	rr, req := activateReq(`{"userId":1,"payerId":99}`)
	ActivateHandler(rr, req)

	require.Equal(t, http.StatusNotFound, rr.Code, rr.Body.String())
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "Payer not found", resp["message"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestActivateHandler_InsufficientPayerBalance(t *testing.T) {
	mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT \\* FROM `users` WHERE user_id = \\?").
		WillReturnRows(sqlmock.NewRows(userCols).AddRow(1, 1, nil, "New", "0500000001", "inactive"))
	mock.ExpectExec("UPDATE `users` SET").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT \\* FROM `users` WHERE user_id = \\?").
		WillReturnRows(sqlmock.NewRows(userCols).AddRow(1, 1, nil, "New", "0500000001", "inactive"))
	mock.ExpectRollback()

	rr, req := activateReq(`{"userId":1}`)
	ActivateHandler(rr, req)

	require.Equal(t, http.StatusBadRequest, rr.Code, rr.Body.String())
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "Insufficient balance for activation", resp["message"])
	require.NoError(t, mock.ExpectationsWereMet())
}
