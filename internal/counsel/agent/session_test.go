package agent

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/globalgrad/counsellor/internal/counsel/domain"
	"github.com/globalgrad/counsellor/pkg/slogx"
)

func runSession(t *testing.T, s *Session) <-chan error {
	t.Helper()
	errc := make(chan error, 1)
	go func() { errc <- s.Run(context.Background()) }()
	return errc
}

func waitErr(t *testing.T, errc <-chan error) error {
	t.Helper()
	select {
	case err := <-errc:
		return err
	case <-time.After(5 * time.Second):
		t.Fatal("session did not end")
		return nil
	}
}

func TestSession_Lifecycle(t *testing.T) {
	st := newTestStore(t)
	uid := createUser(t, st, "voice@example.com")

	room := newFakeRoom(domain.RoomName(uid))
	ms := newFakeModelSession()
	model := &fakeModel{session: ms}
	bus := &recordingBus{}
	cfg := SessionConfig{Instructions: "be nice", Voice: DefaultVoice, Language: DefaultLanguage, Temperature: DefaultTemperature}

	s := NewSession(room, model, NewRegistry(CounsellorTools(st)...), bus, cfg, slogx.Discard())
	require.Equal(t, StateAwaitingParticipant, s.State())

	errc := runSession(t, s)
	room.participants <- Participant{Identity: itoa(uid), Name: "Voice"}

	require.Eventually(t, func() bool { return len(ms.Replies()) == 1 }, 5*time.Second, 10*time.Millisecond)
	require.Equal(t, StateActive, s.State())
	require.Equal(t, uid, s.UserID())
	require.Equal(t, []string{GreetingInstruction()}, ms.Replies())

	configs := model.Configs()
	require.Len(t, configs, 1)
	require.Equal(t, "be nice", configs[0].Instructions)
	require.Equal(t, "Puck", configs[0].Voice)
	require.Equal(t, "en-US", configs[0].Language)
	require.InDelta(t, 0.8, configs[0].Temperature, 1e-6)
	require.Len(t, configs[0].Tools, 4)

	ms.events <- ModelEvent{Kind: EventUserTranscript, Transcript: "shortlist MIT please", Final: true}
	ms.events <- ModelEvent{Kind: EventToolCall, ToolCall: ToolCall{
		ID:   "call-1",
		Name: ToolAddToShortlist,
		Args: Args{"university_id": "usa-1"},
	}}

	select {
	case res := <-ms.results:
		require.Equal(t, "call-1", res.call.ID)
		require.Equal(t, "Successfully added usa-1 to shortlist.", res.result)
	case <-time.After(5 * time.Second):
		t.Fatal("no tool result")
	}
	require.Equal(t, []domain.UniversityUpdate{domain.NewUniversityUpdate(domain.ActionShortlist, "usa-1")}, bus.Events())

	ms.events <- ModelEvent{Kind: EventError, Err: errors.New("transient")}
	ms.events <- ModelEvent{Kind: EventAgentState, OldState: "listening", NewState: "speaking"}

	room.finish()
	require.NoError(t, waitErr(t, errc))
	require.Equal(t, StateEnded, s.State())
	require.True(t, ms.Closed())

	require.Error(t, s.Run(context.Background()))
}

func TestSession_ToolFailureKeepsSessionOpen(t *testing.T) {
	st := newTestStore(t)
	uid := createUser(t, st, "flaky@example.com")
	require.NoError(t, st.Close())

	room := newFakeRoom(domain.RoomName(uid))
	ms := newFakeModelSession()
	bus := &recordingBus{}
	s := NewSession(room, &fakeModel{session: ms}, NewRegistry(CounsellorTools(st)...), bus, SessionConfig{}, slogx.Discard())

	errc := runSession(t, s)
	room.participants <- Participant{Identity: itoa(uid)}
	require.Eventually(t, func() bool { return len(ms.Replies()) == 1 }, 5*time.Second, 10*time.Millisecond)

	nextResult := func() toolResult {
		t.Helper()
		select {
		case res := <-ms.results:
			return res
		case <-time.After(5 * time.Second):
			t.Fatal("no tool result")
			return toolResult{}
		}
	}

	ms.events <- ModelEvent{Kind: EventToolCall, ToolCall: ToolCall{
		ID:   "call-lock",
		Name: ToolLockUniversity,
		Args: Args{"university_id": "usa-2"},
	}}
	res := nextResult()
	require.Equal(t, "call-lock", res.call.ID)
	require.Equal(t, "Failed to lock university.", res.result)

	// The session is still reading model events after the failure.
	ms.events <- ModelEvent{Kind: EventToolCall, ToolCall: ToolCall{ID: "call-list", Name: ToolGetMyList}}
	res = nextResult()
	require.Equal(t, "call-list", res.call.ID)
	require.Equal(t, "Failed to load the university list.", res.result)
	require.Equal(t, StateActive, s.State())

	require.Empty(t, room.Published())
	require.Empty(t, bus.Events())

	room.finish()
	require.NoError(t, waitErr(t, errc))
	require.Equal(t, StateEnded, s.State())
}

func TestSession_NonNumericIdentity(t *testing.T) {
	room := newFakeRoom("counsellor-guest")
	ms := newFakeModelSession()
	s := NewSession(room, &fakeModel{session: ms}, NewRegistry(), nil, SessionConfig{}, slogx.Discard())

	errc := runSession(t, s)
	room.participants <- Participant{Identity: "guest-abc"}
	require.Eventually(t, func() bool { return s.State() == StateActive }, 5*time.Second, 10*time.Millisecond)
	require.Equal(t, int64(0), s.UserID())
	require.Equal(t, "guest-abc", s.Identity())

	close(ms.events)
	require.NoError(t, waitErr(t, errc))
	require.Equal(t, StateEnded, s.State())
}

func TestSession_ConnectFailure(t *testing.T) {
	room := newFakeRoom("counsellor-7")
	s := NewSession(room, &fakeModel{err: errors.New("no key")}, NewRegistry(), nil, SessionConfig{}, slogx.Discard())

	errc := runSession(t, s)
	room.participants <- Participant{Identity: "7"}
	err := waitErr(t, errc)
	require.ErrorContains(t, err, "no key")
	require.Equal(t, StateEnded, s.State())
}

func TestSession_RoomClosedBeforeParticipant(t *testing.T) {
	room := newFakeRoom("counsellor-8")
	model := &fakeModel{session: newFakeModelSession()}
	s := NewSession(room, model, NewRegistry(), nil, SessionConfig{}, slogx.Discard())

	errc := runSession(t, s)
	room.finish()
	require.NoError(t, waitErr(t, errc))
	require.Empty(t, model.Configs())
	require.Equal(t, StateEnded, s.State())
}

func TestSession_ContextCancel(t *testing.T) {
	room := newFakeRoom("counsellor-9")
	ms := newFakeModelSession()
	s := NewSession(room, &fakeModel{session: ms}, NewRegistry(), nil, SessionConfig{}, slogx.Discard())

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- s.Run(ctx) }()
	room.participants <- Participant{Identity: "9"}
	require.Eventually(t, func() bool { return len(ms.Replies()) == 1 }, 5*time.Second, 10*time.Millisecond)

	cancel()
	require.NoError(t, waitErr(t, errc))
	require.True(t, ms.Closed())
}

func TestStateString(t *testing.T) {
	require.Equal(t, "awaiting_participant", StateAwaitingParticipant.String())
	require.Equal(t, "active", StateActive.String())
	require.Equal(t, "ended", StateEnded.String())
	require.Equal(t, "user_input_transcribed", EventUserTranscript.String())
}
