package composing

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-guard/internal/debugstore"
	"github.com/jonathan/resume-guard/internal/llm"
	"github.com/jonathan/resume-guard/internal/types"
)

type fakeClient struct {
	responses []string
	err       error
	calls     int
	prompts   []string
}

func (f *fakeClient) next() (string, error) {
	if f.err != nil {
		return "", f.err
	}
	if f.calls >= len(f.responses) {
		return "", errors.New("fake client exhausted")
	}
	resp := f.responses[f.calls]
	f.calls++
	return resp, nil
}

func (f *fakeClient) GenerateContent(_ context.Context, prompt string, _ llm.ModelTier) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.next()
}

func (f *fakeClient) GenerateWithTemperature(_ context.Context, prompt string, _ llm.ModelTier, _ float32) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.next()
}

func (f *fakeClient) GenerateJSON(_ context.Context, prompt string, _ llm.ModelTier) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.next()
}

func (f *fakeClient) GetModel(llm.ModelTier) string { return "fake-model" }
func (f *fakeClient) GetProvider() string           { return "fake" }
func (f *fakeClient) Close() error                  { return nil }

func composeSourceProfile() *types.CandidateProfile {
	return &types.CandidateProfile{
		Basics:  types.Basics{Name: "Robin Fixture", Email: "robin@example.com"},
		Summary: "Engineer who mentors a robotics club.",
		Skills: types.Skills{
			Technical: []string{"Go", "Kafka"},
			Tools:     []string{"Docker"},
		},
		Experience: []types.Experience{
			{Title: "Engineer", Company: "Acme", StartDate: "2020-01", EndDate: "present",
				Bullets: []string{"Built streaming pipelines"}},
		},
		Education: []types.Education{
			{Institution: "State University", Degree: "BS", Coursework: "Distributed Systems, Databases"},
		},
		Community: []types.CommunityEntry{
			{Organization: "Robotics Club", Role: "Mentor", Bullets: []string{"Mentored 10 students"}},
		},
	}
}

func validComposedJSON(t *testing.T) string {
	t.Helper()
	output := types.ComposeResumeOutput{
		Basics:  types.Basics{Name: "Robin Fixture", Email: "robin@example.com"},
		Summary: "Engineer who mentors a robotics club.",
		Skills: types.Skills{
			Technical: []string{"Go", "Kafka"},
			Tools:     []string{"Docker"},
			Soft:      []string{},
		},
		Experience: []types.ComposedExperience{
			{Title: "Engineer", Company: "Acme", StartDate: "2020-01", EndDate: "present",
				Bullets: []string{"Built streaming pipelines"}},
		},
		Education: []types.Education{
			{Institution: "State University", Degree: "BS", Coursework: "Distributed Systems, Databases"},
		},
		Projects: []types.Project{},
		Community: []types.CommunityEntry{
			{Organization: "Robotics Club", Role: "Mentor", Bullets: []string{"Mentored 10 students"}},
		},
	}
	payload, err := json.Marshal(output)
	require.NoError(t, err)
	return string(payload)
}

func TestCompose_FirstAttemptSucceeds(t *testing.T) {
	client := &fakeClient{responses: []string{validComposedJSON(t)}}
	composer := &Composer{Client: client, Debug: debugstore.NopStore{}}

	output, attempts, err := composer.Compose(context.Background(), "req-1", composeSourceProfile(), nil, &types.JobProfile{})
	require.NoError(t, err)
	require.NotNil(t, output)
	assert.Len(t, attempts, 1)
	assert.Empty(t, attempts[0].Errors)
	assert.Equal(t, "Robin Fixture", output.Basics.Name)
	assert.Len(t, output.Community, 1)
}

func TestCompose_RetryAfterInvariantFailure(t *testing.T) {
	missingCommunity := validComposedJSON(t)
	var broken types.ComposeResumeOutput
	require.NoError(t, json.Unmarshal([]byte(missingCommunity), &broken))
	broken.Community = []types.CommunityEntry{}
	brokenJSON, err := json.Marshal(broken)
	require.NoError(t, err)

	client := &fakeClient{responses: []string{string(brokenJSON), validComposedJSON(t)}}
	composer := &Composer{Client: client, Debug: debugstore.NopStore{}}

	output, attempts, err := composer.Compose(context.Background(), "req-2", composeSourceProfile(), nil, &types.JobProfile{})
	require.NoError(t, err)
	require.NotNil(t, output)
	require.Len(t, attempts, 2)
	assert.Contains(t, attempts[0].Errors[0], "TEST C-6 FAILED")

	// The retry prompt carries the first attempt's failures.
	require.Len(t, client.prompts, 2)
	assert.Contains(t, client.prompts[1], "TEST C-6 FAILED")
}

func TestCompose_TotalFailureCarriesAllAttempts(t *testing.T) {
	client := &fakeClient{responses: []string{"not json", "also not json"}}
	composer := &Composer{Client: client, Debug: debugstore.NopStore{}}

	output, attempts, err := composer.Compose(context.Background(), "req-3", composeSourceProfile(), nil, &types.JobProfile{})
	assert.Nil(t, output)
	assert.Len(t, attempts, 2)
	require.Error(t, err)

	var composeErr *ComposeError
	require.ErrorAs(t, err, &composeErr)
	assert.Len(t, composeErr.Failures, 2)
}

func TestCompose_SchemaViolationReported(t *testing.T) {
	client := &fakeClient{responses: []string{`{"summary": "missing everything"}`, `{"summary": "still"}`}}
	composer := &Composer{Client: client, Debug: debugstore.NopStore{}}

	_, attempts, err := composer.Compose(context.Background(), "req-4", composeSourceProfile(), nil, &types.JobProfile{})
	require.Error(t, err)
	require.Len(t, attempts, 2)
	assert.Contains(t, attempts[0].Errors[0], "TEST C-1 FAILED")
}

func TestCompose_SavesRawAndParsedForEveryAttempt(t *testing.T) {
	store := debugstore.NewMemoryStore()
	client := &fakeClient{responses: []string{validComposedJSON(t)}}
	composer := &Composer{Client: client, Debug: store}

	_, _, err := composer.Compose(context.Background(), "req-5", composeSourceProfile(), nil, &types.JobProfile{})
	require.NoError(t, err)

	assert.Equal(t, 2, store.Stages("req-5"))
	raw, ok := store.Get("req-5", "compose_attempt_1_raw")
	require.True(t, ok)
	assert.JSONEq(t, validComposedJSON(t), string(raw))
	_, ok = store.Get("req-5", "compose_attempt_1_parsed")
	assert.True(t, ok)
}
