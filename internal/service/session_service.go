package service

import (
	"coachpro_backend/internal/model"
	"coachpro_backend/internal/repository"
	"coachpro_backend/internal/util"
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type SessionService struct {
	SessionRepo *repository.SessionRepository
}

func NewSessionService(sessionRepo *repository.SessionRepository) *SessionService {
	return &SessionService{SessionRepo: sessionRepo}
}

// SessionHandle names an open coaching conversation. Starting a session
// only establishes the addressing triple; no row is written until the
// first message.
type SessionHandle struct {
	SessionID string `json:"sessionId"`
	StudentID uint   `json:"studentId"`
	CoachID   uint   `json:"coachId"`
	ProgramID uint   `json:"programId"`
}

func (s *SessionService) StartSession(studentID, coachID, programID uint) *SessionHandle {
	return &SessionHandle{
		SessionID: uuid.New().String(),
		StudentID: studentID,
		CoachID:   coachID,
		ProgramID: programID,
	}
}

type SendMessageRequest struct {
	StudentID     uint           `json:"studentId" binding:"required"`
	CoachID       uint           `json:"coachId" binding:"required"`
	ProgramID     uint           `json:"programId" binding:"required"`
	Message       string         `json:"message"`
	AttachmentURL string         `json:"attachmentUrl"`
	Meta          datatypes.JSON `json:"meta"`
}

// SendMessage appends one immutable row. A message with neither text nor
// attachment is rejected.
func (s *SessionService) SendMessage(ctx context.Context, req SendMessageRequest) (*model.Session, error) {
	if strings.TrimSpace(req.Message) == "" && req.AttachmentURL == "" {
		return nil, util.ErrEmptyMessage
	}

	ctx, cancel := storeCtx(ctx)
	defer cancel()

	msg := &model.Session{
		StudentID:     req.StudentID,
		CoachID:       req.CoachID,
		ProgramID:     req.ProgramID,
		Message:       req.Message,
		AttachmentURL: req.AttachmentURL,
		Meta:          req.Meta,
	}
	if err := s.SessionRepo.Append(ctx, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

func (s *SessionService) ListMessages(ctx context.Context, studentID, programID uint, page, limit int) ([]model.Session, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 200 {
		limit = 50
	}

	ctx, cancel := storeCtx(ctx)
	defer cancel()
	return s.SessionRepo.ListMessages(ctx, studentID, programID, page, limit)
}
