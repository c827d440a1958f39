package orchestration

import (
	"bytes"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/imamik/slsfw/internal/config"
	"github.com/imamik/slsfw/internal/config/node"
	"github.com/imamik/slsfw/internal/provisioning"
	"github.com/imamik/slsfw/internal/state"
	testutil "github.com/imamik/slsfw/internal/testing"
)

const stateName = "express-dev"

type phaseCall struct {
	phase string
	err   error
}

type recordingMetrics struct {
	calls []phaseCall
}

func (m *recordingMetrics) ObservePhase(phase string, _ float64, err error) {
	m.calls = append(m.calls, phaseCall{phase: phase, err: err})
}

func prepareOptions() Option {
	return WithPrepareOptions(config.Options{WorkDir: "/work", Suffix: testutil.FixedSuffix})
}

func TestReconciler_DeploySavesState(t *testing.T) {
	ctx := testutil.TestContext(t)
	store := state.NewFileStore(t.TempDir())
	fixture := testutil.NewComponentsFixture().SuccessfulDeploy("ap-guangzhou")
	metrics := &recordingMetrics{}

	r := NewReconciler(store, fixture.Components(), stateName, prepareOptions(), WithMetrics(metrics))
	in := testutil.NewInputsBuilder().WithCustomDomain("api.example.com").Build()

	result, err := r.Deploy(ctx, in)
	require.NoError(t, err)
	fixture.AssertExpectations(t)

	assert.Equal(t, "express_component_abc123", result.Outputs.FunctionName)
	assert.Equal(t, []string{"example.com"}, result.Record.CNS)
	assert.Equal(t, "tencent-express", result.Record.FromClientRemark)

	out := result.Node()
	fnName, _ := out.Get("functionName").AsString()
	url, _ := out.Get("url").AsString()
	assert.Equal(t, "express_component_abc123", fnName)
	assert.Equal(t, "https://service-ap-guangzhou.apigw.example.com/release/", url)

	saved, err := store.Load(ctx, stateName)
	require.NoError(t, err)
	assert.Equal(t, result.Record.DeploymentID, saved.DeploymentID)
	assert.Equal(t, "express_component_abc123", saved.FunctionName)
	assert.Equal(t, []string{"ap-guangzhou"}, saved.Regions)

	phases := make([]string, 0, len(metrics.calls))
	for _, c := range metrics.calls {
		phases = append(phases, c.phase)
	}
	assert.Equal(t, []string{"function", "gateway", "dns"}, phases)
}

func TestReconciler_RedeployKeepsIdentity(t *testing.T) {
	ctx := testutil.TestContext(t)
	store := state.NewFileStore(t.TempDir())
	require.NoError(t, store.Save(ctx, stateName, &state.Record{
		DeploymentID: "deployment-1",
		Framework:    "express",
		FunctionName: "express_component_prior1",
	}))

	fixture := testutil.NewComponentsFixture().SuccessfulDeploy("ap-guangzhou")
	r := NewReconciler(store, fixture.Components(), stateName, prepareOptions())

	result, err := r.Deploy(ctx, testutil.NewInputsBuilder().Build())
	require.NoError(t, err)
	assert.Equal(t, "express_component_prior1", result.Config.Function.Name)
	assert.Equal(t, "deployment-1", result.Record.DeploymentID)

	fixture.Function.AssertCalled(t, "DeployFunction", mock.Anything,
		mock.MatchedBy(func(fn *config.FunctionConfig) bool { return fn.Name == "express_component_prior1" }))
}

func TestReconciler_DeployFailureKeepsState(t *testing.T) {
	ctx := testutil.TestContext(t)
	store := &testutil.MockStore{}
	store.On("Load", mock.Anything, stateName).Return(&state.Record{}, nil)

	fixture := testutil.NewComponentsFixture()
	fixture.Function.On("DeployFunction", mock.Anything, mock.Anything).Return(nil, errors.New("quota exceeded"))

	r := NewReconciler(store, fixture.Components(), stateName, prepareOptions())
	_, err := r.Deploy(ctx, testutil.NewInputsBuilder().Build())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota exceeded")

	store.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)
	fixture.Gateway.AssertNotCalled(t, "DeployGateway", mock.Anything, mock.Anything)
}

func TestReconciler_DeployInvalidInputs(t *testing.T) {
	ctx := testutil.TestContext(t)
	store := &testutil.MockStore{}
	store.On("Load", mock.Anything, stateName).Return(nil, nil)

	fixture := testutil.NewComponentsFixture()
	r := NewReconciler(store, fixture.Components(), stateName, prepareOptions())

	in := testutil.NewInputsBuilder().WithFunctionConf("timeout", node.Number(1.5)).Build()
	_, err := r.Deploy(ctx, in)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid inputs")

	var verr *config.ValidationError
	assert.ErrorAs(t, err, &verr)
	fixture.Function.AssertNotCalled(t, "DeployFunction", mock.Anything, mock.Anything)
}

func TestReconciler_StateErrors(t *testing.T) {
	ctx := testutil.TestContext(t)

	t.Run("load", func(t *testing.T) {
		store := &testutil.MockStore{}
		store.On("Load", mock.Anything, stateName).Return(nil, errors.New("bucket unreachable"))

		r := NewReconciler(store, testutil.NewComponentsFixture().Components(), stateName)
		_, err := r.Deploy(ctx, testutil.NewInputsBuilder().Build())
		assert.ErrorContains(t, err, "failed to load state express-dev: bucket unreachable")
	})

	t.Run("save", func(t *testing.T) {
		store := &testutil.MockStore{}
		store.On("Load", mock.Anything, stateName).Return(&state.Record{}, nil)
		store.On("Save", mock.Anything, stateName, mock.Anything).Return(errors.New("read-only"))

		fixture := testutil.NewComponentsFixture().SuccessfulDeploy("ap-guangzhou")
		r := NewReconciler(store, fixture.Components(), stateName, prepareOptions())
		_, err := r.Deploy(ctx, testutil.NewInputsBuilder().Build())
		assert.ErrorContains(t, err, "deployed but failed to save state")
	})
}

func TestReconciler_Render(t *testing.T) {
	ctx := testutil.TestContext(t)
	store := state.NewFileStore(t.TempDir())
	fixture := testutil.NewComponentsFixture()

	r := NewReconciler(store, fixture.Components(), stateName, prepareOptions())
	p, err := r.Render(ctx, testutil.NewInputsBuilder().WithRegions("ap-guangzhou", "ap-shanghai").Build())
	require.NoError(t, err)

	assert.Equal(t, []string{"ap-guangzhou", "ap-shanghai"}, p.Regions)
	assert.Equal(t, "express_component_abc123", p.Function.Name)
	fixture.AssertExpectations(t)
}

func TestReconciler_Remove(t *testing.T) {
	ctx := testutil.TestContext(t)
	store := state.NewFileStore(t.TempDir())
	require.NoError(t, store.Save(ctx, stateName, &state.Record{
		DeploymentID: "deployment-1",
		Framework:    "express",
		CNS:          []string{"a.example.com", "b.example.com"},
	}))

	fixture := testutil.NewComponentsFixture().SuccessfulRemove()
	var logs bytes.Buffer
	observer := provisioning.NewLogObserver(zerolog.New(&logs))
	r := NewReconciler(store, fixture.Components(), stateName, WithObserver(observer))

	require.NoError(t, r.Remove(ctx, ""))
	fixture.AssertExpectations(t)
	fixture.DNS.AssertNumberOfCalls(t, "RemoveDNS", 2)
	fixture.Function.AssertCalled(t, "RemoveFunction", mock.Anything,
		provisioning.RemoveRequest{FromClientRemark: "tencent-express"})

	record, err := store.Load(ctx, stateName)
	require.NoError(t, err)
	assert.True(t, record.IsEmpty())
	assert.Contains(t, logs.String(), "resource.removed")
	assert.Contains(t, logs.String(), "Deleted express-dev")
}

func TestReconciler_RemoveFailureKeepsState(t *testing.T) {
	ctx := testutil.TestContext(t)
	store := &testutil.MockStore{}
	store.On("Load", mock.Anything, stateName).Return(&state.Record{DeploymentID: "d", Framework: "koa"}, nil)

	fixture := testutil.NewComponentsFixture()
	fixture.Function.On("RemoveFunction", mock.Anything, mock.Anything).Return(errors.New("denied"))

	r := NewReconciler(store, fixture.Components(), stateName)
	err := r.Remove(ctx, "")
	assert.ErrorContains(t, err, "denied")
	store.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestReconciler_RemoveWithoutFramework(t *testing.T) {
	ctx := testutil.TestContext(t)
	store := state.NewFileStore(t.TempDir())

	r := NewReconciler(store, testutil.NewComponentsFixture().Components(), stateName)
	assert.ErrorContains(t, r.Remove(ctx, ""), "no framework configured or recorded")
}
