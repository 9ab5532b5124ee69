package tui

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/potax/internal/export"
	"github.com/Veraticus/potax/internal/flow"
	"github.com/Veraticus/potax/internal/testutil"
	"github.com/Veraticus/potax/internal/tui/themes"
	"github.com/Veraticus/potax/internal/viewmodel"
)

func newTestModel(t *testing.T, response string, opts ...Option) (Model, *testutil.Classifier) {
	t.Helper()
	classifier := testutil.NewClassifier().Reply(response)
	cfg := defaultConfig()
	cfg.Submitter = flow.New(classifier, flow.WithLogger(testutil.DiscardLogger()))
	cfg.Width = 120
	cfg.Height = 40
	for _, opt := range opts {
		opt(&cfg)
	}
	return newModel(context.Background(), cfg), classifier
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok)
	return model, cmd
}

func ctrl(k tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: k}
}

// collect runs cmd and flattens batches. Only use it on commands that do
// not block, such as submissions and exports.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var msgs []tea.Msg
		for _, c := range batch {
			msgs = append(msgs, collect(c)...)
		}
		return msgs
	}
	return []tea.Msg{msg}
}

func findOutcome(t *testing.T, msgs []tea.Msg) outcomeMsg {
	t.Helper()
	for _, msg := range msgs {
		if o, ok := msg.(outcomeMsg); ok {
			return o
		}
	}
	t.Fatalf("no outcome message in %v", msgs)
	return outcomeMsg{}
}

func TestModel_InitialViewIsIdle(t *testing.T) {
	m, _ := newTestModel(t, `{}`)

	assert.Equal(t, flow.StateIdle, m.Outcome().State)
	view := m.View()
	assert.Contains(t, view, flow.MessageIdle)
	assert.Contains(t, view, "PO Description")
	assert.Contains(t, view, "AI-powered Procurement Categorization Tool v1.1")
}

func TestModel_SubmitSuccess(t *testing.T) {
	m, classifier := newTestModel(t, testutil.ReplyCloudHosting,
		WithInitialRequest(flow.Request{
			Description: "Annual subscription for cloud hosting services",
			Supplier:    "Amazon Web Services",
		}))

	m, cmd := update(t, m, ctrl(tea.KeyCtrlS))
	require.NotNil(t, cmd)
	assert.True(t, m.busy)
	assert.Contains(t, m.View(), viewmodel.SpinnerText)

	msg := findOutcome(t, collect(cmd))
	m, _ = update(t, m, msg)

	assert.False(t, m.busy)
	assert.Equal(t, 1, classifier.CallCount())
	assert.Equal(t, []testutil.Call{{
		Description: "Annual subscription for cloud hosting services",
		Supplier:    "Amazon Web Services",
	}}, classifier.Calls())
	assert.Equal(t, flow.StateSuccess, m.Outcome().State)

	view := m.View()
	assert.Contains(t, view, flow.MessageSuccess)
	assert.Contains(t, view, "Information Technology")
	assert.Contains(t, view, "Cloud Services")
	assert.Contains(t, view, "Hosting")
}

func TestModel_SecondSubmitIgnoredWhileBusy(t *testing.T) {
	m, classifier := newTestModel(t, `{"L1":"IT"}`,
		WithInitialRequest(flow.Request{Description: "Laptops"}))

	m, first := update(t, m, ctrl(tea.KeyCtrlS))
	require.NotNil(t, first)

	m, second := update(t, m, ctrl(tea.KeyCtrlS))
	assert.Nil(t, second)

	msg := findOutcome(t, collect(first))
	m, _ = update(t, m, msg)

	assert.Equal(t, 1, classifier.CallCount())
	assert.False(t, m.busy)
}

func TestModel_EmptyDescription(t *testing.T) {
	m, classifier := newTestModel(t, `{"L1":"IT"}`,
		WithInitialRequest(flow.Request{Description: "   ", Supplier: "Dell"}))

	m, cmd := update(t, m, ctrl(tea.KeyCtrlS))
	m, _ = update(t, m, findOutcome(t, collect(cmd)))

	assert.Equal(t, flow.StateInvalidInput, m.Outcome().State)
	assert.Zero(t, classifier.CallCount())
	assert.Contains(t, m.View(), flow.MessageInvalidInput)
}

func TestModel_ParseErrorShowsRawOutput(t *testing.T) {
	m, _ := newTestModel(t, testutil.ReplyNotJSON, WithInitialRequest(flow.Request{Description: "Chairs"}))

	m, cmd := update(t, m, ctrl(tea.KeyCtrlS))
	m, _ = update(t, m, findOutcome(t, collect(cmd)))

	assert.Equal(t, flow.StateParseError, m.Outcome().State)
	view := m.View()
	assert.Contains(t, view, flow.MessageParseError)
	assert.Contains(t, view, "NOT_JSON")
}

func TestModel_MissingLevelsShowSentinel(t *testing.T) {
	m, _ := newTestModel(t, `{"L1":"IT"}`, WithInitialRequest(flow.Request{Description: "Software"}))

	m, cmd := update(t, m, ctrl(tea.KeyCtrlS))
	m, _ = update(t, m, findOutcome(t, collect(cmd)))

	assert.Equal(t, 2, strings.Count(m.View(), flow.Unclassified))
}

func TestModel_ToggleRaw(t *testing.T) {
	m, _ := newTestModel(t, `{"L1":"IT","L2":"Cloud","L3":"Hosting"}`,
		WithInitialRequest(flow.Request{Description: "Hosting"}))

	m, _ = update(t, m, ctrl(tea.KeyCtrlT))
	assert.Equal(t, TabLevels, m.tab, "raw tab needs a result")

	m, cmd := update(t, m, ctrl(tea.KeyCtrlS))
	m, _ = update(t, m, findOutcome(t, collect(cmd)))

	m, _ = update(t, m, ctrl(tea.KeyCtrlT))
	assert.Equal(t, TabRaw, m.tab)
	assert.Contains(t, m.View(), `"L3": "Hosting"`)

	m, _ = update(t, m, ctrl(tea.KeyCtrlT))
	assert.Equal(t, TabLevels, m.tab)
}

func TestModel_Export(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", export.DefaultFilename)
	m, _ := newTestModel(t, `{"L1":"IT","L2":"Cloud","L3":"Hosting"}`,
		WithInitialRequest(flow.Request{Description: "Hosting"}),
		WithExportPath(path))

	m, cmd := update(t, m, ctrl(tea.KeyCtrlE))
	assert.Nil(t, cmd)
	assert.Contains(t, m.View(), "Nothing to export yet.")

	m, cmd = update(t, m, ctrl(tea.KeyCtrlS))
	m, _ = update(t, m, findOutcome(t, collect(cmd)))

	m, cmd = update(t, m, ctrl(tea.KeyCtrlE))
	require.NotNil(t, cmd)
	msgs := collect(cmd)
	require.Len(t, msgs, 1)
	m, _ = update(t, m, msgs[0])

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{\n    \"L1\": \"IT\",\n    \"L2\": \"Cloud\",\n    \"L3\": \"Hosting\"\n}", string(data))
	assert.Contains(t, m.View(), "Saved")
}

func TestModel_ResetDropsInFlightResult(t *testing.T) {
	m, _ := newTestModel(t, `{"L1":"IT"}`, WithInitialRequest(flow.Request{Description: "Hosting"}))

	m, cmd := update(t, m, ctrl(tea.KeyCtrlS))
	m, _ = update(t, m, ctrl(tea.KeyCtrlR))

	assert.False(t, m.busy)
	assert.Empty(t, m.description.Value())

	m, _ = update(t, m, findOutcome(t, collect(cmd)))
	assert.Equal(t, flow.StateIdle, m.Outcome().State)
	assert.Contains(t, m.View(), flow.MessageIdle)
}

// blockingSubmitter holds each submission until its context ends or release
// is signaled, tracking how many run at once.
type blockingSubmitter struct {
	release   chan struct{}
	ctxs      []context.Context
	active    int
	maxActive int
	mu        sync.Mutex
}

func (b *blockingSubmitter) Submit(ctx context.Context, req flow.Request) flow.Outcome {
	b.mu.Lock()
	b.ctxs = append(b.ctxs, ctx)
	b.active++
	if b.active > b.maxActive {
		b.maxActive = b.active
	}
	b.mu.Unlock()

	defer func() {
		b.mu.Lock()
		b.active--
		b.mu.Unlock()
	}()

	select {
	case <-ctx.Done():
		return flow.Outcome{State: flow.StateUnavailable, Message: flow.MessageUnavailable, Request: req, Err: ctx.Err()}
	case <-b.release:
		return flow.Outcome{State: flow.StateSuccess, Message: flow.MessageSuccess, Request: req, Result: flow.Result{"L1": "Facilities"}}
	}
}

func (b *blockingSubmitter) started() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.ctxs)
}

func runAsync(cmd tea.Cmd) <-chan []tea.Msg {
	done := make(chan []tea.Msg, 1)
	go func() { done <- collect(cmd) }()
	return done
}

func waitMsgs(t *testing.T, done <-chan []tea.Msg) []tea.Msg {
	t.Helper()
	select {
	case msgs := <-done:
		return msgs
	case <-time.After(2 * time.Second):
		t.Fatal("submission did not finish")
		return nil
	}
}

func TestModel_ResetCancelsRunningSubmission(t *testing.T) {
	sub := &blockingSubmitter{release: make(chan struct{})}
	cfg := defaultConfig()
	cfg.Submitter = sub
	cfg.Initial = flow.Request{Description: "Hosting"}
	m := newModel(context.Background(), cfg)

	m, first := update(t, m, ctrl(tea.KeyCtrlS))
	firstDone := runAsync(first)
	require.Eventually(t, func() bool { return sub.started() == 1 }, time.Second, 5*time.Millisecond)

	m, _ = update(t, m, ctrl(tea.KeyCtrlR))
	assert.ErrorIs(t, sub.ctxs[0].Err(), context.Canceled)
	stale := findOutcome(t, waitMsgs(t, firstDone))

	m.description.SetValue("Office chairs")
	m, second := update(t, m, ctrl(tea.KeyCtrlS))
	require.NotNil(t, second)
	secondDone := runAsync(second)
	require.Eventually(t, func() bool { return sub.started() == 2 }, time.Second, 5*time.Millisecond)

	m, _ = update(t, m, stale)
	assert.True(t, m.busy, "a result from before the reset must be dropped")

	close(sub.release)
	msgs := waitMsgs(t, secondDone)
	assert.NoError(t, sub.ctxs[1].Err(), "the live submission keeps its context until it finishes")
	m, _ = update(t, m, findOutcome(t, msgs))

	assert.Equal(t, 1, sub.maxActive)
	assert.Equal(t, flow.StateSuccess, m.Outcome().State)
	assert.Equal(t, "Office chairs", m.Outcome().Request.Description)
	assert.ErrorIs(t, sub.ctxs[1].Err(), context.Canceled, "finished submissions release their context")
}

func TestModel_QuitCancelsRunningSubmission(t *testing.T) {
	sub := &blockingSubmitter{release: make(chan struct{})}
	cfg := defaultConfig()
	cfg.Submitter = sub
	cfg.Initial = flow.Request{Description: "Hosting"}
	m := newModel(context.Background(), cfg)

	m, cmd := update(t, m, ctrl(tea.KeyCtrlS))
	done := runAsync(cmd)
	require.Eventually(t, func() bool { return sub.started() == 1 }, time.Second, 5*time.Millisecond)

	_, _ = update(t, m, ctrl(tea.KeyEsc))

	msg := findOutcome(t, waitMsgs(t, done))
	assert.ErrorIs(t, msg.outcome.Err, context.Canceled)
}

func TestModel_FocusCycling(t *testing.T) {
	m, _ := newTestModel(t, `{}`)
	assert.Equal(t, FieldDescription, m.focus)

	m, _ = update(t, m, ctrl(tea.KeyTab))
	assert.Equal(t, FieldSupplier, m.focus)
	assert.True(t, m.supplier.Focused())
	assert.False(t, m.description.Focused())

	m, _ = update(t, m, ctrl(tea.KeyTab))
	assert.Equal(t, FieldDescription, m.focus)

	m, _ = update(t, m, ctrl(tea.KeyShiftTab))
	assert.Equal(t, FieldSupplier, m.focus)
}

func TestModel_TypingGoesToFocusedField(t *testing.T) {
	m, _ := newTestModel(t, `{}`)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("Toner")})
	m, _ = update(t, m, ctrl(tea.KeyTab))
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("HP")})

	assert.Equal(t, "Toner", m.description.Value())
	assert.Equal(t, "HP", m.supplier.Value())
}

func TestModel_EnterOnSupplierSubmits(t *testing.T) {
	m, classifier := newTestModel(t, `{"L1":"IT"}`, WithInitialRequest(flow.Request{Description: "Toner"}))

	m, _ = update(t, m, ctrl(tea.KeyTab))
	m, cmd := update(t, m, ctrl(tea.KeyEnter))
	require.NotNil(t, cmd)
	m, _ = update(t, m, findOutcome(t, collect(cmd)))

	assert.Equal(t, 1, classifier.CallCount())
	assert.Equal(t, flow.StateSuccess, m.Outcome().State)
}

func TestModel_Quit(t *testing.T) {
	for _, k := range []tea.KeyType{tea.KeyEsc, tea.KeyCtrlC} {
		m, _ := newTestModel(t, `{}`)

		m, cmd := update(t, m, ctrl(k))
		require.NotNil(t, cmd)
		assert.IsType(t, tea.QuitMsg{}, cmd())
		assert.Empty(t, m.View())
	}
}

func TestModel_NarrowLayout(t *testing.T) {
	m, _ := newTestModel(t, `{}`, WithTheme(themes.CatppuccinMocha))

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 60, Height: 30})

	assert.Equal(t, 60, m.formWidth())
	assert.Contains(t, m.View(), flow.MessageIdle)
}

func TestRun_RequiresSubmitter(t *testing.T) {
	_, err := Run(context.Background())
	assert.Error(t, err)
}
