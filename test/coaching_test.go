//go:build integration

package test

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"
	"testing"

	"github.com/2beens/coachportal/internal/coaching"
	"github.com/2beens/coachportal/internal/coaching/programs"
	"github.com/2beens/coachportal/internal/middleware"
	"github.com/2beens/coachportal/internal/userprograms"
	"github.com/2beens/coachportal/pkg"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *IntegrationTestSuite) create(ctx context.Context, t *testing.T, token, path string, body any) string {
	t.Helper()
	resp := s.doJSON(ctx, t, http.MethodPost, path, token, body)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decodeBody[pkg.MessageResponse](t, resp)
	require.NotEmpty(t, created.ID)
	return created.ID
}

func (s *IntegrationTestSuite) TestCoachingFlow() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, s.redisDataCleanup(ctx))

	token := s.doLogin(ctx, t).Token

	pushUpID := s.create(ctx, t, token, "/exercises", map[string]any{
		"name":        "Push Up",
		"bodyParts":   []string{"chest", "triceps"},
		"measurement": "reps",
	})
	squatID := s.create(ctx, t, token, "/exercises", map[string]any{
		"name":        "Squat",
		"bodyParts":   []string{"quadriceps", "glutes"},
		"measurement": "reps",
		"weights":     true,
	})

	setID := s.create(ctx, t, token, "/sets", map[string]any{
		"name":      "Full Body A",
		"exercises": []string{pushUpID, squatID},
	})

	// a set pointing at a foreign exercise is rejected
	resp := s.doJSON(ctx, t, http.MethodPost, "/sets", token, map[string]any{
		"name":      "Broken",
		"exercises": []string{"no-such-exercise"},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	readBody(t, resp)

	routineID := s.create(ctx, t, token, "/routines", map[string]any{
		"name": "Monday",
		"type": "total_body",
		"sets": []string{setID, setID},
	})

	resp = s.doJSON(ctx, t, http.MethodGet, "/programs/options", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	options := decodeBody[programs.Options](t, resp)
	require.Len(t, options.Routines, 1)
	assert.Equal(t, "Monday", options.Routines[0].Name)

	resp = s.doJSON(ctx, t, http.MethodPost, "/programs/draft", token, map[string]any{
		"name":           "Beginner Strength",
		"numberOfWeeks":  "2",
		"numberOfPhases": 1,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	draft := decodeBody[programs.DraftResponse](t, resp)
	require.Len(t, draft.Phases, 1)
	require.Len(t, draft.Phases[0].Days, programs.DefaultDaysPerPhase)

	phase := draft.Phases[0]
	phase.PhaseName = "Foundation"
	phase.ApplicableWeeks = []int{1, 2}
	for i := range phase.Days {
		phase.Days[i].Routine = &coaching.Option{Value: routineID}
	}

	resp = s.doJSON(ctx, t, http.MethodPost, "/programs/phases/validate", token, programs.ValidatePhaseRequest{
		PhaseNumber: 1,
		Phase:       phase,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Phase 1 saved successfully!", decodeBody[pkg.MessageResponse](t, resp).Message)

	programID := s.create(ctx, t, token, "/programs", map[string]any{
		"program": map[string]any{"name": "Beginner Strength", "numberOfWeeks": 2, "numberOfPhases": 1},
		"phases":  []programs.PhaseTemplate{phase},
	})

	resp = s.doJSON(ctx, t, http.MethodGet, "/programs/"+programID, token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	view := decodeBody[programs.ProgramView](t, resp)
	require.Len(t, view.PhaseSummaries, 1)
	assert.Equal(t, "Foundation", view.PhaseSummaries[0].PhaseName)
	assert.Equal(t, "Monday", view.PhaseSummaries[0].Days[0].Routine)

	resp = s.doJSON(ctx, t, http.MethodGet, "/active-program", token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "No active program found. Please assign a program first.", strings.TrimSpace(readBody(t, resp)))

	resp = s.doJSON(ctx, t, http.MethodPost, "/user-programs", token, userprograms.StartRequest{ProgramID: programID})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "Program started successfully!", decodeBody[pkg.MessageResponse](t, resp).Message)

	resp = s.doJSON(ctx, t, http.MethodGet, "/active-program/today", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	today := decodeBody[userprograms.Today](t, resp)
	assert.Equal(t, 1, today.Week)
	assert.Equal(t, 1, today.Day)
	require.NotNil(t, today.Routine)
	assert.Equal(t, routineID, today.Routine.Value)

	// measurements with a start photo
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.WriteField("weight", "82.5"))
	require.NoError(t, mw.WriteField("waist", "90"))
	fw, err := mw.CreateFormFile("photo", "start.jpg")
	require.NoError(t, err)
	_, err = fw.Write([]byte("\xff\xd8\xff\xe0 not really a jpeg"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, serverEndpoint+"/active-program/measurements", &body)
	require.NoError(t, err)
	req.Header.Set("User-Agent", "test-agent")
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set(middleware.AuthTokenHeader, token)
	resp, err = s.httpClient.Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Measurements saved!", decodeBody[pkg.MessageResponse](t, resp).Message)

	resp = s.doJSON(ctx, t, http.MethodGet, "/active-program", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	active := decodeBody[userprograms.ActiveProgram](t, resp)
	assert.Equal(t, programID, active.UserProgram.ProgramID)
	require.NotNil(t, active.UserProgram.Measurements)
	require.NotNil(t, active.UserProgram.Measurements.Weight)
	assert.Equal(t, 82.5, *active.UserProgram.Measurements.Weight)
	require.NotNil(t, active.UserProgram.StartPhoto)
	assert.True(t, strings.HasPrefix(*active.UserProgram.StartPhoto, fmt.Sprintf("%s/files/userProgramPhotos/%s/", serverEndpoint, s.testUserID)))

	// photo links are public
	photoResp, err := s.httpClient.Get(*active.UserProgram.StartPhoto)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, photoResp.StatusCode)
	assert.Equal(t, "image/jpeg", photoResp.Header.Get("Content-Type"))
	assert.Equal(t, "nosniff", photoResp.Header.Get("X-Content-Type-Options"))
	readBody(t, photoResp)
}
