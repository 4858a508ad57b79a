//go:build integration

package test

import (
	"context"
	"net/http"
	"strings"

	"github.com/2beens/coachportal/internal/profile"
	"github.com/2beens/coachportal/pkg"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *IntegrationTestSuite) TestProfile() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, s.redisDataCleanup(ctx))

	token := s.doLogin(ctx, t).Token

	resp := s.doJSON(ctx, t, http.MethodPut, "/profile", token, map[string]any{
		"name":        "Test Client",
		"dateOfBirth": "1990-05-17",
		"height":      "180",
		"gender":      "female",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Profile updated successfully.", decodeBody[pkg.MessageResponse](t, resp).Message)

	resp = s.doJSON(ctx, t, http.MethodGet, "/profile", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	p := decodeBody[profile.UserProfile](t, resp)
	assert.Equal(t, "Test Client", p.Name)
	assert.Equal(t, testEmail, p.Email)
	require.NotNil(t, p.Age)
	assert.Greater(t, *p.Age, 30)
	// signing in leaves an audit entry
	require.NotNil(t, p.LastLogin)
	assert.Equal(t, "password", p.LastLogin.Method)

	resp = s.doJSON(ctx, t, http.MethodPut, "/profile/password", token, map[string]string{
		"password":        "a",
		"confirmPassword": "b",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Passwords do not match.", strings.TrimSpace(readBody(t, resp)))

	resp = s.doJSON(ctx, t, http.MethodPut, "/profile/email", token, map[string]string{"email": "not-an-email"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Invalid email address.", strings.TrimSpace(readBody(t, resp)))
}
