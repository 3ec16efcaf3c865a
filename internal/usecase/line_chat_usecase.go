package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"doctor-roster/internal/delivery/dto"
	"doctor-roster/internal/domain/entity"
	"doctor-roster/internal/domain/repository"
	"doctor-roster/internal/service"

	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
)

const (
	lineEventTypeMessage = "message"
	lineMessageTypeText  = "text"

	confirmInputYes = "1"
	confirmInputNo  = "2"
	acceptInput     = "ok"
)

// WebhookDeduplicator reports whether a webhook event id is seen for the first time.
// Forget releases an id so a redelivery of a failed event is processed again.
type WebhookDeduplicator interface {
	FirstDelivery(ctx context.Context, eventID string) bool
	Forget(ctx context.Context, eventID string)
}

type LineChatUsecase interface {
	HandleWebhook(ctx context.Context, req *dto.LineWebhookRequest) (*dto.LineWebhookResponse, error)
	HandleMessage(ctx context.Context, handle, text string) error
}

type lineChatUsecase struct {
	log             *logrus.Logger
	chatSessionRepo repository.ChatSessionRepository
	doctorRepo      repository.DoctorRepository
	leaveUsecase    LeaveRequestUsecase
	notifier        service.Notifier
	dedup           WebhookDeduplicator
	replyTimeout    time.Duration
}

func NewLineChatUsecase(
	log *logrus.Logger,
	chatSessionRepo repository.ChatSessionRepository,
	doctorRepo repository.DoctorRepository,
	leaveUsecase LeaveRequestUsecase,
	notifier service.Notifier,
	dedup WebhookDeduplicator,
	replyTimeout time.Duration,
) LineChatUsecase {
	if replyTimeout <= 0 {
		replyTimeout = 5 * time.Second
	}

	return &lineChatUsecase{
		log:             log,
		chatSessionRepo: chatSessionRepo,
		doctorRepo:      doctorRepo,
		leaveUsecase:    leaveUsecase,
		notifier:        notifier,
		dedup:           dedup,
		replyTimeout:    replyTimeout,
	}
}

// HandleWebhook processes text message events in delivery order.
// A failing event is logged and does not stop the rest of the batch.
func (u *lineChatUsecase) HandleWebhook(ctx context.Context, req *dto.LineWebhookRequest) (*dto.LineWebhookResponse, error) {
	resp := &dto.LineWebhookResponse{Received: len(req.Events)}

	for _, event := range req.Events {
		if event.Type != lineEventTypeMessage || event.Message == nil ||
			event.Message.Type != lineMessageTypeText || event.Source.UserID == "" {
			resp.Skipped++
			continue
		}

		if u.dedup != nil && !u.dedup.FirstDelivery(ctx, event.WebhookEventID) {
			u.log.Infof("Dropping redelivered LINE event %s", event.WebhookEventID)
			resp.Skipped++
			continue
		}

		if err := u.HandleMessage(ctx, event.Source.UserID, event.Message.Text); err != nil {
			u.log.Warnf("Failed to handle LINE message from %s: %+v", event.Source.UserID, err)
			if u.dedup != nil {
				u.dedup.Forget(ctx, event.WebhookEventID)
			}
			resp.Skipped++
			continue
		}
		resp.Processed++
	}

	return resp, nil
}

// HandleMessage advances the chat session of handle by one input and replies to it
func (u *lineChatUsecase) HandleMessage(ctx context.Context, handle, text string) error {
	session, err := u.chatSessionRepo.FindByLineUserID(ctx, handle)
	if err != nil {
		u.log.Warnf("Failed to find chat session: %+v", err)
		return err
	}
	if session == nil {
		session = entity.NewIdleSession(handle)
	}

	input := strings.TrimSpace(text)

	var reply string
	switch session.State {
	case entity.ChatStateConfirm:
		reply, err = u.handleConfirm(ctx, session, input)
	case entity.ChatStateWaitingAcceptLeave:
		reply, err = u.handleWaitingAccept(ctx, session, input)
	default:
		reply, err = u.handleIdle(ctx, session, input)
	}
	if err != nil {
		return err
	}

	u.reply(ctx, handle, reply)
	return nil
}

func (u *lineChatUsecase) handleIdle(ctx context.Context, session *entity.ChatSession, input string) (string, error) {
	if input == "" {
		return msgDoctorNotFound, nil
	}

	doctor, err := u.doctorRepo.FindByCareProviderCode(ctx, input)
	if err != nil {
		u.log.Warnf("Failed to find doctor by care provider code: %+v", err)
		return "", err
	}
	if doctor == nil {
		return msgDoctorNotFound, nil
	}

	session.State = entity.ChatStateConfirm
	session.Context = datatypes.JSONMap{entity.ChatContextDoctorID: doctor.ID.String()}
	if err := u.chatSessionRepo.Upsert(ctx, session); err != nil {
		u.log.Warnf("Failed to save chat session: %+v", err)
		return "", err
	}

	return fmt.Sprintf(msgConfirmDoctor, doctor.DisplayName()), nil
}

func (u *lineChatUsecase) handleConfirm(ctx context.Context, session *entity.ChatSession, input string) (string, error) {
	switch input {
	case confirmInputYes:
		doctorID, ok := session.ContextUUID(entity.ChatContextDoctorID)
		if !ok {
			u.resetSession(ctx, session)
			return msgSessionExpired, nil
		}

		doctor, err := u.doctorRepo.FindByID(ctx, doctorID)
		if err != nil {
			u.log.Warnf("Failed to find doctor: %+v", err)
			return "", err
		}
		if doctor == nil {
			u.resetSession(ctx, session)
			return msgSessionExpired, nil
		}

		if _, err := u.doctorRepo.BindLineID(ctx, doctor.ID, session.LineUserID); err != nil {
			u.log.Warnf("Failed to bind LINE id: %+v", err)
			return "", err
		}
		u.log.Infof("LINE user %s registered as doctor %s", session.LineUserID, doctor.ID)

		u.resetSession(ctx, session)
		return fmt.Sprintf(msgRegisterSuccess, doctor.DisplayName()), nil

	case confirmInputNo:
		u.resetSession(ctx, session)
		return msgRegisterCancelled, nil

	default:
		return msgConfirmReprompt, nil
	}
}

func (u *lineChatUsecase) handleWaitingAccept(ctx context.Context, session *entity.ChatSession, input string) (string, error) {
	if !strings.EqualFold(input, acceptInput) {
		return msgReplyOK, nil
	}

	doctor, err := u.doctorRepo.FindByLineID(ctx, session.LineUserID)
	if err != nil {
		u.log.Warnf("Failed to find doctor by LINE id: %+v", err)
		return "", err
	}
	if doctor == nil {
		u.resetSession(ctx, session)
		return msgNotRegistered, nil
	}

	leaveID, ok := session.ContextUUID(entity.ChatContextLeaveID)
	if !ok {
		u.resetSession(ctx, session)
		return msgLeaveGone, nil
	}

	leave, err := u.leaveUsecase.AttemptAccept(ctx, leaveID, doctor.ID)

	var reply string
	switch {
	case err == nil:
		reply = fmt.Sprintf(msgAcceptSuccess, leave.ThaiFullName, leave.StartDate, leave.EndDate)
	case errors.Is(err, ErrAlreadyMatched), errors.Is(err, ErrLeaveClosed):
		reply = msgAlreadyTaken
	case errors.Is(err, ErrNotEligible):
		reply = msgNotEligible
	case errors.Is(err, ErrLeaveNotFound):
		reply = msgLeaveGone
	default:
		// Keep waiting so the doctor can answer "ok" again
		u.log.Warnf("Failed to accept leave %s for doctor %s: %+v", leaveID, doctor.ID, err)
		return msgAcceptFailed, nil
	}

	u.resetSession(ctx, session)
	return reply, nil
}

// resetSession returns the session to idle; write failures are only logged
func (u *lineChatUsecase) resetSession(ctx context.Context, session *entity.ChatSession) {
	session.State = entity.ChatStateIdle
	session.Context = datatypes.JSONMap{}
	if err := u.chatSessionRepo.Upsert(ctx, session); err != nil {
		u.log.Warnf("Failed to reset chat session %s: %+v", session.LineUserID, err)
	}
}

func (u *lineChatUsecase) reply(ctx context.Context, handle, text string) {
	ctx, cancel := context.WithTimeout(ctx, u.replyTimeout)
	defer cancel()

	if err := u.notifier.Send(ctx, handle, text); err != nil {
		u.log.Warnf("Failed to reply to LINE user %s: %+v", handle, err)
	}
}
