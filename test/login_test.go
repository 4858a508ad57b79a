//go:build integration

package test

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *IntegrationTestSuite) TestLogin() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, s.redisDataCleanup(ctx))

	cases := map[string]struct {
		email, password    string
		expectedStatusCode int
		expectedBody       string
	}{
		"bad password": {
			email:              testEmail,
			password:           "bad-password",
			expectedStatusCode: http.StatusUnauthorized,
			expectedBody:       "Invalid email or password.",
		},
		"unknown email": {
			email:              "nobody@example.com",
			password:           testPassword,
			expectedStatusCode: http.StatusUnauthorized,
			expectedBody:       "Invalid email or password.",
		},
		"missing password": {
			email:              testEmail,
			expectedStatusCode: http.StatusBadRequest,
			expectedBody:       "Please enter your email and password.",
		},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			resp := s.doJSON(ctx, t, http.MethodPost, "/a/login", "", map[string]string{
				"email":    tc.email,
				"password": tc.password,
			})
			require.Equal(t, tc.expectedStatusCode, resp.StatusCode)
			assert.Equal(t, tc.expectedBody, strings.TrimSpace(readBody(t, resp)))
		})
	}

	t.Run("good creds, then logout", func(t *testing.T) {
		loginResp := s.doLogin(ctx, t)
		assert.Equal(t, s.testUserID, loginResp.UserID)

		resp := s.doJSON(ctx, t, http.MethodGet, "/profile", loginResp.Token, nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, readBody(t, resp), testEmail)

		resp = s.doJSON(ctx, t, http.MethodGet, "/a/logout", loginResp.Token, nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "logged-out", readBody(t, resp))

		// the token is gone
		resp = s.doJSON(ctx, t, http.MethodGet, "/profile", loginResp.Token, nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "no can do", strings.TrimSpace(readBody(t, resp)))
	})

	t.Run("rate limiting", func(t *testing.T) {
		// simulate login requests brute force attack
		require.NoError(t, s.redisDataCleanup(ctx))

		for i := 1; i <= loginsPerMinute+3; i++ {
			resp := s.doJSON(ctx, t, http.MethodPost, "/a/login", "", map[string]string{
				"email":    testEmail,
				"password": "bad-password",
			})
			body := readBody(t, resp)

			if i <= loginsPerMinute {
				require.Equal(t, http.StatusUnauthorized, resp.StatusCode, "iteration: %d", i)
			} else {
				require.Equal(t, http.StatusTooEarly, resp.StatusCode, "iteration: %d", i)
				assert.True(t, strings.HasPrefix(body, "retry after"), "iteration: %d", i)
			}
		}

		require.NoError(t, s.redisDataCleanup(ctx))
	})
}
