package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"doctor-roster/internal/delivery/dto"
	"doctor-roster/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type chatFixture struct {
	*leaveFixture
	chat  LineChatUsecase
	dedup *stubDeduplicator
}

func newChatFixture(t *testing.T) *chatFixture {
	t.Helper()

	f := &chatFixture{leaveFixture: newLeaveFixture(t), dedup: &stubDeduplicator{}}
	f.chat = NewLineChatUsecase(newTestLogger(), f.sessions, f.doctors, f.usecase, f.notifier, f.dedup, time.Second)
	return f
}

func (f *chatFixture) say(t *testing.T, handle, text string) string {
	t.Helper()
	require.NoError(t, f.chat.HandleMessage(context.Background(), handle, text))
	return f.notifier.last(handle)
}

func TestChat_LeaveScenario_SecondReplyGetsAlreadyTaken(t *testing.T) {
	f := newChatFixture(t)

	leave, err := f.usecase.SubmitLeave(context.Background(), &dto.CreateLeaveRequest{
		DoctorID:             f.requester.ID,
		LeaveType:            "annual",
		StartDate:            "2024-01-01",
		EndDate:              "2024-01-02",
		ReplacementDoctorIDs: []uuid.UUID{f.doctorA.ID, f.doctorB.ID},
	})
	require.NoError(t, err)

	for _, handle := range []string{"U-a", "U-b"} {
		session, ok := f.sessions.session(handle)
		require.True(t, ok)
		assert.Equal(t, entity.ChatStateWaitingAcceptLeave, session.State)
	}

	reply := f.say(t, "U-a", "ok")
	assert.Equal(t, fmt.Sprintf(msgAcceptSuccess, f.requester.ThaiFullName, "2024-01-01", "2024-01-02"), reply)

	stored := f.leaves.stored(leave.ID)
	assert.Equal(t, entity.LeaveStatusMatched, stored.Status)
	assert.Equal(t, entity.CandidateStatusMatched, stored.Candidate(f.doctorA.ID).Status)

	reply = f.say(t, "U-b", " OK ")
	assert.Equal(t, msgAlreadyTaken, reply)

	stored = f.leaves.stored(leave.ID)
	assert.Equal(t, entity.CandidateStatusPending, stored.Candidate(f.doctorB.ID).Status)
	require.NotNil(t, stored.AcceptedBy.DoctorID)
	assert.Equal(t, f.doctorA.ID, *stored.AcceptedBy.DoctorID)

	for _, handle := range []string{"U-a", "U-b"} {
		session, _ := f.sessions.session(handle)
		assert.Equal(t, entity.ChatStateIdle, session.State)
	}
}

func TestChat_WaitingAccept_OtherInputLeavesSessionUntouched(t *testing.T) {
	f := newChatFixture(t)
	leave := f.submit(t, f.doctorA.ID)

	before, _ := f.sessions.session("U-a")
	writes := f.sessions.writeCount()

	for _, text := range []string{"okay", "yes", "", "1"} {
		reply := f.say(t, "U-a", text)
		assert.Equal(t, msgReplyOK, reply)
	}

	after, _ := f.sessions.session("U-a")
	assert.Equal(t, writes, f.sessions.writeCount())
	assert.Equal(t, before.State, after.State)
	assert.Equal(t, before.Context, after.Context)
	assert.Equal(t, entity.LeaveStatusWaitingReplacement, f.leaves.stored(leave.ID).Status)
}

func TestChat_Idle_UnknownCodeStaysIdle(t *testing.T) {
	f := newChatFixture(t)

	reply := f.say(t, "U-new", "NOPE-999")

	assert.Equal(t, msgDoctorNotFound, reply)
	session, ok := f.sessions.session("U-new")
	if ok {
		assert.Equal(t, entity.ChatStateIdle, session.State)
	}
}

func TestChat_Registration(t *testing.T) {
	t.Run("confirm binds handle", func(t *testing.T) {
		f := newChatFixture(t)

		reply := f.say(t, "U-new", " D004 ")
		assert.Equal(t, fmt.Sprintf(msgConfirmDoctor, f.doctorC.ThaiFullName), reply)
		session, _ := f.sessions.session("U-new")
		assert.Equal(t, entity.ChatStateConfirm, session.State)
		assert.Equal(t, f.doctorC.ID.String(), session.Context[entity.ChatContextDoctorID])

		assert.Equal(t, msgConfirmReprompt, f.say(t, "U-new", "maybe"))

		reply = f.say(t, "U-new", "1")
		assert.Equal(t, fmt.Sprintf(msgRegisterSuccess, f.doctorC.ThaiFullName), reply)

		doctor, err := f.doctors.FindByID(context.Background(), f.doctorC.ID)
		require.NoError(t, err)
		assert.Equal(t, "U-new", doctor.ContactHandle())
		session, _ = f.sessions.session("U-new")
		assert.Equal(t, entity.ChatStateIdle, session.State)
	})

	t.Run("rebinding moves the handle", func(t *testing.T) {
		f := newChatFixture(t)

		f.say(t, "U-a", "D004")
		f.say(t, "U-a", "1")

		previous, err := f.doctors.FindByID(context.Background(), f.doctorA.ID)
		require.NoError(t, err)
		assert.False(t, previous.IsRegistered())

		bound, err := f.doctors.FindByLineID(context.Background(), "U-a")
		require.NoError(t, err)
		assert.Equal(t, f.doctorC.ID, bound.ID)
	})

	t.Run("cancel", func(t *testing.T) {
		f := newChatFixture(t)

		f.say(t, "U-new", "D004")
		assert.Equal(t, msgRegisterCancelled, f.say(t, "U-new", "2"))

		doctor, err := f.doctors.FindByID(context.Background(), f.doctorC.ID)
		require.NoError(t, err)
		assert.False(t, doctor.IsRegistered())
		session, _ := f.sessions.session("U-new")
		assert.Equal(t, entity.ChatStateIdle, session.State)
	})
}

func TestChat_WaitingAccept_UnregisteredHandle(t *testing.T) {
	f := newChatFixture(t)
	leave := f.submit(t, f.doctorA.ID)

	// The handle is moved to another doctor before the answer arrives
	_, err := f.doctors.BindLineID(context.Background(), f.doctorC.ID, "U-a")
	require.NoError(t, err)
	_, err = f.doctors.BindLineID(context.Background(), f.doctorC.ID, "U-other")
	require.NoError(t, err)

	assert.Equal(t, msgNotRegistered, f.say(t, "U-a", "ok"))
	assert.Equal(t, entity.LeaveStatusWaitingReplacement, f.leaves.stored(leave.ID).Status)
}

func TestChat_HandleWebhook(t *testing.T) {
	f := newChatFixture(t)

	textEvent := func(id, user, text string) dto.LineWebhookEvent {
		return dto.LineWebhookEvent{
			Type:           "message",
			WebhookEventID: id,
			Source:         dto.LineEventSource{Type: "user", UserID: user},
			Message:        &dto.LineEventMessage{Type: "text", Text: text},
		}
	}

	req := &dto.LineWebhookRequest{Events: []dto.LineWebhookEvent{
		textEvent("ev-1", "U-new", "D004"),
		textEvent("ev-1", "U-new", "D004"),
		{Type: "follow", WebhookEventID: "ev-2", Source: dto.LineEventSource{UserID: "U-new"}},
		{Type: "message", WebhookEventID: "ev-3", Source: dto.LineEventSource{UserID: "U-new"}, Message: &dto.LineEventMessage{Type: "sticker"}},
		textEvent("ev-4", "", "D004"),
		textEvent("ev-5", "U-new", "1"),
	}}

	resp, err := f.chat.HandleWebhook(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 6, resp.Received)
	assert.Equal(t, 2, resp.Processed)
	assert.Equal(t, 4, resp.Skipped)

	doctor, err := f.doctors.FindByID(context.Background(), f.doctorC.ID)
	require.NoError(t, err)
	assert.Equal(t, "U-new", doctor.ContactHandle())
	assert.Len(t, f.notifier.sent("U-new"), 2)
}

func TestChat_HandleWebhook_FailedEventIsProcessedOnRedelivery(t *testing.T) {
	f := newChatFixture(t)

	req := &dto.LineWebhookRequest{Events: []dto.LineWebhookEvent{{
		Type:           "message",
		WebhookEventID: "ev-9",
		Source:         dto.LineEventSource{Type: "user", UserID: "U-new"},
		Message:        &dto.LineEventMessage{Type: "text", Text: "D004"},
	}}}

	f.sessions.mu.Lock()
	f.sessions.findErr = errors.New("connection reset")
	f.sessions.mu.Unlock()

	resp, err := f.chat.HandleWebhook(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 0, resp.Processed)
	assert.Equal(t, 1, resp.Skipped)

	f.sessions.mu.Lock()
	f.sessions.findErr = nil
	f.sessions.mu.Unlock()

	resp, err = f.chat.HandleWebhook(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Processed)
	assert.Equal(t, 0, resp.Skipped)

	session, ok := f.sessions.session("U-new")
	require.True(t, ok)
	assert.Equal(t, entity.ChatStateConfirm, session.State)
}
