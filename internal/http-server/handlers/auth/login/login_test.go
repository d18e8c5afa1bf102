package login

import (
	"autoDetailing/internal/http-server/handlers/auth/login/mocks"
	"autoDetailing/internal/identity"
	"autoDetailing/internal/lib/logger/handlers/slogdiscard"
	"autoDetailing/internal/models"
	"bytes"
	"encoding/json"
	"errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestLoginHandler(t *testing.T) {
	t.Parallel()

	logger := slogdiscard.NewDiscardLogger()

	sess := &models.Session{
		ID:    "sess-1",
		Token: "token-1",
		User:  models.User{ID: "user-1", Email: "jane@example.com", Role: models.RoleCustomer},
	}

	testCases := []struct {
		name           string
		requestBody    string
		mockSetup      func(m *mocks.Authenticator)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:        "Success",
			requestBody: `{"email":"jane@example.com","password":"secret1"}`,
			mockSetup: func(m *mocks.Authenticator) {
				m.On("Authenticate", mock.Anything, "jane@example.com", "secret1").Return(sess, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Invalid JSON",
			requestBody:    `{`,
			mockSetup:      func(m *mocks.Authenticator) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"failed to decode request"}`,
		},
		{
			name:           "Missing fields",
			requestBody:    `{}`,
			mockSetup:      func(m *mocks.Authenticator) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"field Email is a required field, field Password is a required field"}`,
		},
		{
			name:        "Bad credentials",
			requestBody: `{"email":"jane@example.com","password":"nope"}`,
			mockSetup: func(m *mocks.Authenticator) {
				m.On("Authenticate", mock.Anything, "jane@example.com", "nope").Return(nil, identity.ErrInvalidCredentials)
			},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"status":"Error","error":"invalid email or password"}`,
		},
		{
			name:        "Internal error",
			requestBody: `{"email":"jane@example.com","password":"secret1"}`,
			mockSetup: func(m *mocks.Authenticator) {
				m.On("Authenticate", mock.Anything, "jane@example.com", "secret1").Return(nil, errors.New("redis down"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"failed to sign in"}`,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			authenticator := mocks.NewAuthenticator(t)
			tc.mockSetup(authenticator)

			handler := New(logger, authenticator)

			req, err := http.NewRequest(http.MethodPost, "/auth/login", bytes.NewBufferString(tc.requestBody))
			require.NoError(t, err)

			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)

			if tc.expectedBody != "" {
				assert.JSONEq(t, tc.expectedBody, rr.Body.String())
				return
			}

			var resp Response
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			assert.Equal(t, "OK", resp.Status)
			require.NotNil(t, resp.Session)
			assert.Equal(t, "jane@example.com", resp.Session.User.Email)
		})
	}
}
