package api

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/bz888/docask/internal/api/client"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockBackend struct {
	mock.Mock
}

func (m *MockBackend) Upload(ctx context.Context, filename string, content io.Reader) (*client.UploadResponse, error) {
	args := m.Called(ctx, filename, content)
	resp, _ := args.Get(0).(*client.UploadResponse)
	return resp, args.Error(1)
}

func (m *MockBackend) Ask(ctx context.Context, docID, question string) (*client.AskResponse, error) {
	args := m.Called(ctx, docID, question)
	resp, _ := args.Get(0).(*client.AskResponse)
	return resp, args.Error(1)
}

func TestServiceUpload(t *testing.T) {
	tests := []struct {
		name string
		resp *client.UploadResponse
		err  error
		want UploadResult
	}{
		{
			name: "success",
			resp: &client.UploadResponse{Filename: "a.pdf", DocID: "42"},
			want: UploadResult{Status: StatusSuccess, Filename: "a.pdf", DocID: "42"},
		},
		{
			name: "application error",
			resp: &client.UploadResponse{Error: "PDF extraction failed"},
			want: UploadResult{Status: StatusAppError, Error: "PDF extraction failed"},
		},
		{
			name: "error wins over payload",
			resp: &client.UploadResponse{Filename: "a.pdf", Error: "quota"},
			want: UploadResult{Status: StatusAppError, Error: "quota"},
		},
		{
			name: "transport error",
			err:  &client.NetworkError{Err: errors.New("connection refused")},
			want: UploadResult{Status: StatusTransportError, Error: "network error: connection refused"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := new(MockBackend)
			content := strings.NewReader("%PDF-1.4")
			backend.On("Upload", mock.Anything, "a.pdf", content).Return(tt.resp, tt.err)

			got := NewService(backend).Upload(context.Background(), "a.pdf", content)

			assert.Equal(t, tt.want, got)
			backend.AssertExpectations(t)
		})
	}
}

func TestServiceAsk(t *testing.T) {
	tests := []struct {
		name string
		resp *client.AskResponse
		err  error
		want AskResult
	}{
		{
			name: "answer",
			resp: &client.AskResponse{Response: "line1\nline2"},
			want: AskResult{Status: StatusSuccess, Response: "line1\nline2"},
		},
		{
			name: "response wins over error",
			resp: &client.AskResponse{Response: "ok", Error: "ignored"},
			want: AskResult{Status: StatusSuccess, Response: "ok"},
		},
		{
			name: "application error",
			resp: &client.AskResponse{Error: "bad doc"},
			want: AskResult{Status: StatusAppError, Error: "bad doc"},
		},
		{
			name: "neither field",
			resp: &client.AskResponse{},
			want: AskResult{Status: StatusEmpty},
		},
		{
			name: "http error",
			err:  &client.HTTPError{StatusCode: 502, Message: "Bad Gateway"},
			want: AskResult{Status: StatusTransportError, Error: "HTTP 502: Bad Gateway"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := new(MockBackend)
			backend.On("Ask", mock.Anything, "42", "why?").Return(tt.resp, tt.err)

			got := NewService(backend).Ask(context.Background(), "42", "why?")

			assert.Equal(t, tt.want, got)
			backend.AssertExpectations(t)
		})
	}
}

func TestStatusFailed(t *testing.T) {
	assert.True(t, StatusAppError.Failed())
	assert.True(t, StatusTransportError.Failed())
	assert.False(t, StatusSuccess.Failed())
	assert.False(t, StatusEmpty.Failed())
	assert.Equal(t, "transport error", StatusTransportError.String())
}
