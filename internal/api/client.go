package api

import (
	"context"
	"io"

	"github.com/bz888/docask/internal/api/client"
	"github.com/bz888/docask/internal/logger"
	"go.uber.org/zap"
)

// Backend is the part of client.Client the service needs.
type Backend interface {
	Upload(ctx context.Context, filename string, content io.Reader) (*client.UploadResponse, error)
	Ask(ctx context.Context, docID, question string) (*client.AskResponse, error)
}

// Service turns every reply or failure from the backend into a result value.
type Service struct {
	backend     Backend
	localLogger *logger.Logger
}

func NewService(backend Backend) *Service {
	return &Service{
		backend:     backend,
		localLogger: logger.NewLogger("api client"),
	}
}

func (s *Service) Upload(ctx context.Context, filename string, content io.Reader) UploadResult {
	resp, err := s.backend.Upload(ctx, filename, content)
	if err != nil {
		s.localLogger.Error("upload failed", zap.String("filename", filename), zap.Error(err))
		return UploadResult{Status: StatusTransportError, Error: err.Error()}
	}

	if resp.Error != "" {
		s.localLogger.Warn("upload rejected", zap.String("filename", filename), zap.String("error", resp.Error))
		return UploadResult{Status: StatusAppError, Error: resp.Error}
	}

	s.localLogger.Info("uploaded", zap.String("filename", resp.Filename), zap.String("doc_id", resp.DocID.String()))
	return UploadResult{
		Status:   StatusSuccess,
		Filename: resp.Filename,
		DocID:    resp.DocID.String(),
	}
}

func (s *Service) Ask(ctx context.Context, docID, question string) AskResult {
	resp, err := s.backend.Ask(ctx, docID, question)
	if err != nil {
		s.localLogger.Error("ask failed", zap.String("doc_id", docID), zap.Error(err))
		return AskResult{Status: StatusTransportError, Error: err.Error()}
	}

	switch {
	case resp.Response != "":
		s.localLogger.Info("answer received", zap.String("doc_id", docID), zap.Int("length", len(resp.Response)))
		return AskResult{Status: StatusSuccess, Response: resp.Response}
	case resp.Error != "":
		s.localLogger.Warn("ask rejected", zap.String("doc_id", docID), zap.String("error", resp.Error))
		return AskResult{Status: StatusAppError, Error: resp.Error}
	default:
		s.localLogger.Warn("reply had neither response nor error", zap.String("doc_id", docID))
		return AskResult{Status: StatusEmpty}
	}
}
