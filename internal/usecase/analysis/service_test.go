package analysis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clientwatch-team/clientwatch/internal/domain/entities"
	"github.com/clientwatch-team/clientwatch/internal/infrastructure/external/notify"
	usecaseErrors "github.com/clientwatch-team/clientwatch/internal/usecase/errors"
)

// fakes

type fakeAnalysisRepo struct {
	records map[uuid.UUID]*entities.AnalysisRecord
	created int
	updated int
}

func newFakeAnalysisRepo() *fakeAnalysisRepo {
	return &fakeAnalysisRepo{records: make(map[uuid.UUID]*entities.AnalysisRecord)}
}

func (f *fakeAnalysisRepo) Create(_ context.Context, r *entities.AnalysisRecord) error {
	f.created++
	cp := *r
	f.records[r.ID] = &cp
	return nil
}

func (f *fakeAnalysisRepo) Update(_ context.Context, r *entities.AnalysisRecord) error {
	f.updated++
	cp := *r
	f.records[r.ID] = &cp
	return nil
}

func (f *fakeAnalysisRepo) FindByID(_ context.Context, id uuid.UUID) (*entities.AnalysisRecord, error) {
	r, ok := f.records[id]
	if !ok {
		return nil, nil
	}
	cp := *r
	return &cp, nil
}

func (f *fakeAnalysisRepo) ListByClient(_ context.Context, clientID uuid.UUID, _ int) ([]*entities.AnalysisRecord, error) {
	var out []*entities.AnalysisRecord
	for _, r := range f.records {
		if r.ClientID == clientID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeAnalysisRepo) CountByClient(_ context.Context, clientID uuid.UUID) (int64, error) {
	rs, _ := f.ListByClient(context.Background(), clientID, 0)
	return int64(len(rs)), nil
}

type fakeClientRepo struct {
	clients map[uuid.UUID]*entities.ClientProfile
}

func (f *fakeClientRepo) Create(_ context.Context, c *entities.ClientProfile) error {
	f.clients[c.ID] = c
	return nil
}
func (f *fakeClientRepo) Update(_ context.Context, c *entities.ClientProfile) error {
	f.clients[c.ID] = c
	return nil
}
func (f *fakeClientRepo) FindByID(_ context.Context, id uuid.UUID) (*entities.ClientProfile, error) {
	return f.clients[id], nil
}
func (f *fakeClientRepo) List(_ context.Context) ([]*entities.ClientProfile, error) {
	var out []*entities.ClientProfile
	for _, c := range f.clients {
		out = append(out, c)
	}
	return out, nil
}

type fakeQueueRepo struct {
	queues    map[uuid.UUID]*entities.ClientTranscriptQueue
	processed map[uuid.UUID]time.Time
}

func (f *fakeQueueRepo) Find(_ context.Context, clientID uuid.UUID) (*entities.ClientTranscriptQueue, error) {
	return f.queues[clientID], nil
}
func (f *fakeQueueRepo) Save(_ context.Context, q *entities.ClientTranscriptQueue) error {
	f.queues[q.ClientID] = q
	return nil
}
func (f *fakeQueueRepo) MarkProcessed(_ context.Context, clientID uuid.UUID, at time.Time) error {
	f.processed[clientID] = at
	if q, ok := f.queues[clientID]; ok {
		q.LastProcessed = &at
	}
	return nil
}

type fakePodLeaderRepo struct {
	leaders map[string]*entities.PodLeaderProfile
}

func (f *fakePodLeaderRepo) Find(_ context.Context, id string) (*entities.PodLeaderProfile, error) {
	return f.leaders[id], nil
}
func (f *fakePodLeaderRepo) FindByEmail(_ context.Context, email string) (*entities.PodLeaderProfile, error) {
	for _, l := range f.leaders {
		if l.Email == email {
			return l, nil
		}
	}
	return nil, nil
}
func (f *fakePodLeaderRepo) Save(_ context.Context, p *entities.PodLeaderProfile) error {
	f.leaders[p.ID] = p
	return nil
}

type fakePrefsRepo struct {
	prefs map[uuid.UUID]*entities.NotificationPreferences
}

func (f *fakePrefsRepo) Find(_ context.Context, clientID uuid.UUID) (*entities.NotificationPreferences, error) {
	return f.prefs[clientID], nil
}
func (f *fakePrefsRepo) Save(_ context.Context, p *entities.NotificationPreferences) error {
	f.prefs[p.ClientID] = p
	return nil
}

type fakeHistorySvc struct {
	context *entities.HistoricalContext
	updates chan uuid.UUID
	reworks chan uuid.UUID
	err     error
}

func (f *fakeHistorySvc) Get(_ context.Context, _ uuid.UUID) (*entities.ClientRelationshipHistory, error) {
	return nil, nil
}
func (f *fakeHistorySvc) BuildContext(_ context.Context, _ uuid.UUID) (*entities.HistoricalContext, error) {
	return f.context, nil
}
func (f *fakeHistorySvc) Update(_ context.Context, clientID uuid.UUID, _ string, _ entities.AnalysisResult, _ time.Time) (*entities.ClientRelationshipHistory, error) {
	if f.updates != nil {
		f.updates <- clientID
	}
	return nil, f.err
}
func (f *fakeHistorySvc) Rework(_ context.Context, clientID uuid.UUID, _ string, _ entities.AnalysisResult, _ time.Time) (*entities.ClientRelationshipHistory, error) {
	if f.reworks != nil {
		f.reworks <- clientID
	}
	return nil, f.err
}
func (f *fakeHistorySvc) TrendLabel(_ *entities.ClientRelationshipHistory) string {
	return "First analysis"
}

type fakeAnalyzer struct {
	configured bool
	result     *entities.AnalysisResult
	err        error
	calls      int
	lastData   entities.TranscriptData
	reply      string
}

func (f *fakeAnalyzer) Analyze(_ context.Context, data entities.TranscriptData) (*entities.AnalysisResult, error) {
	f.calls++
	f.lastData = data
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}
func (f *fakeAnalyzer) Compress(_ context.Context, _ string, _ entities.AnalysisResult, _ string) (string, error) {
	return "compressed", nil
}
func (f *fakeAnalyzer) FollowUp(_ context.Context, _ entities.TranscriptData, _ entities.AnalysisResult, _ []ChatMessage, question string) (string, error) {
	return f.reply, nil
}
func (f *fakeAnalyzer) IsConfigured() bool { return f.configured }

type fakeNotifier struct {
	alerts chan notify.AnalysisAlert
	err    error
}

func (f *fakeNotifier) NotifyPodLeader(_ context.Context, _ *entities.NotificationPreferences, alert notify.AnalysisAlert) error {
	if f.alerts != nil {
		f.alerts <- alert
	}
	return f.err
}

func (f *fakeNotifier) NotifyTranscriptReceived(_ context.Context, _ *entities.NotificationPreferences, _, _ string) error {
	return nil
}

// fixture

type fixture struct {
	svc       Service
	analyses  *fakeAnalysisRepo
	queues    *fakeQueueRepo
	analyzer  *fakeAnalyzer
	historian *fakeHistorySvc
	notifier  *fakeNotifier
	client    *entities.ClientProfile
}

func goodResult() *entities.AnalysisResult {
	return &entities.AnalysisResult{
		BottomLine: entities.BottomLine{
			Trajectory:       entities.TrajectoryDeclining,
			ChurnRisk:        entities.ChurnRiskHigh,
			ClientConfidence: 4,
		},
	}
}

func fullQueue(clientID uuid.UUID) *entities.ClientTranscriptQueue {
	q := entities.NewClientTranscriptQueue(clientID)
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	for i, id := range []string{"a", "b", "c"} {
		q.Append(entities.TranscriptEntry{
			FathomMeetingID: id,
			Transcript:      "transcript " + id,
			MeetingDate:     base.AddDate(0, 0, i),
			AddedAt:         base.AddDate(0, 0, i),
		})
	}
	return q
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	client := entities.NewClientProfile("leader-1", "Acme Corp")
	clients := &fakeClientRepo{clients: map[uuid.UUID]*entities.ClientProfile{client.ID: client}}
	queues := &fakeQueueRepo{
		queues:    map[uuid.UUID]*entities.ClientTranscriptQueue{client.ID: fullQueue(client.ID)},
		processed: map[uuid.UUID]time.Time{},
	}
	leaders := &fakePodLeaderRepo{leaders: map[string]*entities.PodLeaderProfile{
		"leader-1": {ID: "leader-1", PersonalitySummary: "optimistic, conflict-avoidant"},
	}}
	prefs := &fakePrefsRepo{prefs: map[uuid.UUID]*entities.NotificationPreferences{
		client.ID: {ClientID: client.ID, SlackWebhookURL: "https://hooks.example.com/x", NotifyOnAutoAnalysis: true},
	}}
	analyses := newFakeAnalysisRepo()
	analyzer := &fakeAnalyzer{configured: true, result: goodResult()}
	historian := &fakeHistorySvc{updates: make(chan uuid.UUID, 4), reworks: make(chan uuid.UUID, 4)}
	notifier := &fakeNotifier{alerts: make(chan notify.AnalysisAlert, 4)}

	svc := NewService(analyses, clients, queues, leaders, prefs, historian, analyzer, notifier, nil,
		"https://dash.example.com", nil)

	return &fixture{
		svc:       svc,
		analyses:  analyses,
		queues:    queues,
		analyzer:  analyzer,
		historian: historian,
		notifier:  notifier,
		client:    client,
	}
}

func waitFor[T any](t *testing.T, ch chan T, what string) T {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for %s", what)
		panic("unreachable")
	}
}

// tests

func TestAnalysisService_Run_PersistsAndFansOut(t *testing.T) {
	f := newFixture(t)

	record, err := f.svc.Run(context.Background(), f.client.ID, "leader-1", RunOptions{Context: "renewal coming up"})
	require.NoError(t, err)
	require.NotNil(t, record)

	assert.Equal(t, 1, f.analyses.created)
	assert.Equal(t, f.client.ID, record.ClientID)
	assert.Equal(t, "leader-1", record.OwnerID)

	data := record.TranscriptData.Data()
	assert.Equal(t, "transcript a", data.Oldest)
	assert.Equal(t, "transcript b", data.Middle)
	assert.Equal(t, "transcript c", data.Recent)
	assert.Equal(t, "renewal coming up", data.Context)
	assert.Equal(t, "optimistic, conflict-avoidant", data.PersonalitySummary)
	require.NotNil(t, data.ClientProfile)
	assert.Equal(t, "Acme Corp", data.ClientProfile.Name)

	// queue stamped synchronously
	_, stamped := f.queues.processed[f.client.ID]
	assert.True(t, stamped)

	// history and notification run detached
	assert.Equal(t, f.client.ID, waitFor(t, f.historian.updates, "history update"))
	alert := waitFor(t, f.notifier.alerts, "pod leader alert")
	assert.Equal(t, "Acme Corp", alert.ClientName)
	assert.Equal(t, entities.ChurnRiskHigh, alert.ChurnRisk)
	assert.Contains(t, alert.DashboardURL, f.client.ID.String())
}

func TestAnalysisService_Run_NothingPersistedOnAnalyzerFailure(t *testing.T) {
	f := newFixture(t)
	f.analyzer.err = errors.New("model exploded")

	_, err := f.svc.Run(context.Background(), f.client.ID, "leader-1", RunOptions{})
	require.ErrorIs(t, err, usecaseErrors.ErrAnalysisFailed)

	assert.Equal(t, 0, f.analyses.created, "failed runs must not persist")
	_, stamped := f.queues.processed[f.client.ID]
	assert.False(t, stamped, "failed runs must not stamp the queue")
}

func TestAnalysisService_Run_RequiresFullWindow(t *testing.T) {
	f := newFixture(t)
	q := entities.NewClientTranscriptQueue(f.client.ID)
	q.Append(entities.TranscriptEntry{FathomMeetingID: "a", Transcript: "t", MeetingDate: time.Now()})
	f.queues.queues[f.client.ID] = q

	_, err := f.svc.Run(context.Background(), f.client.ID, "leader-1", RunOptions{})
	assert.ErrorIs(t, err, usecaseErrors.ErrQueueNotReady)
}

func TestAnalysisService_Run_IgnoresAutoAnalysisToggle(t *testing.T) {
	f := newFixture(t)
	f.queues.queues[f.client.ID].AutoAnalysisEnabled = false

	record, err := f.svc.Run(context.Background(), f.client.ID, "leader-1", RunOptions{})
	require.NoError(t, err)
	assert.NotNil(t, record, "manual runs ignore the auto-analysis toggle")
}

func TestAnalysisService_Run_UnknownClient(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Run(context.Background(), uuid.New(), "leader-1", RunOptions{})
	assert.ErrorIs(t, err, usecaseErrors.ErrClientNotFound)
}

func TestAnalysisService_Run_AnalyzerNotConfigured(t *testing.T) {
	f := newFixture(t)
	f.analyzer.configured = false

	_, err := f.svc.Run(context.Background(), f.client.ID, "leader-1", RunOptions{})
	assert.ErrorIs(t, err, usecaseErrors.ErrAnalyzerNotConfigured)
}

func TestAnalysisService_RunAuto_SkipsWhenToggleOff(t *testing.T) {
	f := newFixture(t)
	f.queues.queues[f.client.ID].AutoAnalysisEnabled = false

	record, err := f.svc.RunAuto(context.Background(), f.client.ID)
	require.NoError(t, err)
	assert.Nil(t, record)
	assert.Equal(t, 0, f.analyzer.calls)
}

func TestAnalysisService_RunAuto_SkipsAlreadyProcessedWindow(t *testing.T) {
	f := newFixture(t)

	first, err := f.svc.RunAuto(context.Background(), f.client.ID)
	require.NoError(t, err)
	require.NotNil(t, first)

	// same window again, e.g. a replayed webhook
	second, err := f.svc.RunAuto(context.Background(), f.client.ID)
	require.NoError(t, err)
	assert.Nil(t, second, "unchanged window should not re-run")
	assert.Equal(t, 1, f.analyzer.calls)

	// a fresh transcript makes the window eligible again
	f.queues.queues[f.client.ID].Append(entities.TranscriptEntry{
		FathomMeetingID: "d",
		Transcript:      "transcript d",
		MeetingDate:     time.Now(),
		AddedAt:         time.Now(),
	})
	third, err := f.svc.RunAuto(context.Background(), f.client.ID)
	require.NoError(t, err)
	assert.NotNil(t, third)
	assert.Equal(t, 2, f.analyzer.calls)
}

func TestAnalysisService_Rerun_ReplacesRecordInPlace(t *testing.T) {
	f := newFixture(t)

	record, err := f.svc.Run(context.Background(), f.client.ID, "leader-1", RunOptions{})
	require.NoError(t, err)

	f.analyzer.result = &entities.AnalysisResult{
		BottomLine: entities.BottomLine{
			Trajectory:       entities.TrajectoryStable,
			ChurnRisk:        entities.ChurnRiskMedium,
			ClientConfidence: 6,
		},
	}

	feedback := entities.AnalysisFeedback{
		Inaccuracies: "Sarah was on PTO, not disengaged",
		FocusAreas:   []string{"budget discussion"},
	}
	updated, err := f.svc.Rerun(context.Background(), record.ID, feedback)
	require.NoError(t, err)

	assert.Equal(t, record.ID, updated.ID, "rerun must keep the record id")
	assert.Equal(t, 1, f.analyses.created)
	assert.Equal(t, 1, f.analyses.updated)
	assert.Equal(t, entities.ChurnRiskMedium, updated.Result.Data().BottomLine.ChurnRisk)

	data := updated.TranscriptData.Data()
	require.NotNil(t, data.Feedback)
	assert.Equal(t, "Sarah was on PTO, not disengaged", data.Feedback.Inaccuracies)

	// the analyzer saw the feedback
	require.NotNil(t, f.analyzer.lastData.Feedback)
}

func TestAnalysisService_Rerun_RefreshesHistoryAndNotifies(t *testing.T) {
	f := newFixture(t)

	record, err := f.svc.Run(context.Background(), f.client.ID, "leader-1", RunOptions{})
	require.NoError(t, err)
	waitFor(t, f.historian.updates, "initial history update")
	waitFor(t, f.notifier.alerts, "initial alert")

	f.analyzer.result = &entities.AnalysisResult{
		BottomLine: entities.BottomLine{
			Trajectory:       entities.TrajectoryStable,
			ChurnRisk:        entities.ChurnRiskLow,
			ClientConfidence: 7,
		},
	}
	_, err = f.svc.Rerun(context.Background(), record.ID, entities.AnalysisFeedback{
		Inaccuracies: "renewal was already signed",
	})
	require.NoError(t, err)

	// replacing a result refreshes the history and re-alerts the pod leader
	assert.Equal(t, f.client.ID, waitFor(t, f.historian.reworks, "history rework"))
	alert := waitFor(t, f.notifier.alerts, "rerun alert")
	assert.Equal(t, entities.ChurnRiskLow, alert.ChurnRisk)
}

func TestAnalysisService_Run_SurvivesDetachedFailures(t *testing.T) {
	f := newFixture(t)
	f.historian.err = errors.New("history save failed")
	f.notifier.err = errors.New("slack unreachable")

	record, err := f.svc.Run(context.Background(), f.client.ID, "leader-1", RunOptions{})
	require.NoError(t, err, "run must not surface detached task failures")
	require.NotNil(t, record)
	assert.Equal(t, 1, f.analyses.created)

	// both continuations were attempted despite failing
	waitFor(t, f.historian.updates, "history update attempt")
	waitFor(t, f.notifier.alerts, "alert attempt")

	saved, err := f.analyses.FindByID(context.Background(), record.ID)
	require.NoError(t, err)
	assert.NotNil(t, saved, "record stays persisted when continuations fail")
}

func TestAnalysisService_Rerun_UnknownAnalysis(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Rerun(context.Background(), uuid.New(), entities.AnalysisFeedback{})
	assert.ErrorIs(t, err, usecaseErrors.ErrAnalysisNotFound)
}

func TestAnalysisService_AppendTranscripts(t *testing.T) {
	f := newFixture(t)

	record, err := f.svc.Run(context.Background(), f.client.ID, "leader-1", RunOptions{})
	require.NoError(t, err)

	updated, err := f.svc.AppendTranscripts(context.Background(), record.ID, []string{"extra call notes"})
	require.NoError(t, err)

	data := updated.TranscriptData.Data()
	require.Len(t, data.AdditionalTranscripts, 1)
	assert.Equal(t, "extra call notes", data.AdditionalTranscripts[0])

	_, err = f.svc.AppendTranscripts(context.Background(), record.ID, nil)
	assert.ErrorIs(t, err, usecaseErrors.ErrInvalidInput)
}

func TestAnalysisService_FollowUp(t *testing.T) {
	f := newFixture(t)
	f.analyzer.reply = "They are worried about ROI."

	record, err := f.svc.Run(context.Background(), f.client.ID, "leader-1", RunOptions{})
	require.NoError(t, err)

	answer, err := f.svc.FollowUp(context.Background(), record.ID,
		[]ChatMessage{{Role: "user", Content: "earlier question"}}, "What is Sarah worried about?")
	require.NoError(t, err)
	assert.Equal(t, "They are worried about ROI.", answer)

	_, err = f.svc.FollowUp(context.Background(), record.ID, nil, "")
	assert.ErrorIs(t, err, usecaseErrors.ErrInvalidInput)

	_, err = f.svc.FollowUp(context.Background(), uuid.New(), nil, "anything?")
	assert.ErrorIs(t, err, usecaseErrors.ErrAnalysisNotFound)
}
