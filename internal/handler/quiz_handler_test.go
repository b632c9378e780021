package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"coursequiz/internal/domain"
	"coursequiz/internal/dto"
	"coursequiz/internal/handler"
	"coursequiz/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Manual Mocks ---

// MockSessionService
type MockSessionService struct {
	BeginSessionFunc    func(ctx context.Context, courseID string, req *dto.BeginSessionRequest) (*dto.BeginSessionResponse, error)
	FinalizeSessionFunc func(ctx context.Context, courseID string, req *dto.FinalizeRequest) (*dto.FinalizeResponse, error)
}

func (m *MockSessionService) BeginSession(ctx context.Context, courseID string, req *dto.BeginSessionRequest) (*dto.BeginSessionResponse, error) {
	if m.BeginSessionFunc != nil {
		return m.BeginSessionFunc(ctx, courseID, req)
	}
	panic("MockSessionService.BeginSessionFunc not implemented")
}

func (m *MockSessionService) FinalizeSession(ctx context.Context, courseID string, req *dto.FinalizeRequest) (*dto.FinalizeResponse, error) {
	if m.FinalizeSessionFunc != nil {
		return m.FinalizeSessionFunc(ctx, courseID, req)
	}
	panic("MockSessionService.FinalizeSessionFunc not implemented")
}

func newQuizApp(sessions *MockSessionService) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
	h := handler.NewQuizHandler(sessions)
	api := app.Group("/api")
	api.Post("/check_user", h.BeginSessionDefault)
	api.Post("/finalize", h.FinalizeSessionDefault)
	api.Post("/:courseID/check_user", h.BeginSession)
	api.Post("/:courseID/finalize", h.FinalizeSession)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, body any) *http.Response {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, out))
}

func TestQuizHandler_BeginSession(t *testing.T) {
	t.Run("returns the assigned questions", func(t *testing.T) {
		sessions := &MockSessionService{
			BeginSessionFunc: func(ctx context.Context, courseID string, req *dto.BeginSessionRequest) (*dto.BeginSessionResponse, error) {
				assert.Equal(t, "ml101", courseID)
				assert.Equal(t, "alice", req.Username)
				return &dto.BeginSessionResponse{
					Taken:      false,
					Questions:  []dto.QuestionPayload{{Q: "What is overfitting?"}},
					TakenCount: 0,
					CourseID:   "ml101",
				}, nil
			},
		}
		app := newQuizApp(sessions)

		resp := postJSON(t, app, "/api/ml101/check_user",
			dto.BeginSessionRequest{Username: "alice", FullName: "Alice Kim"})

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var body dto.BeginSessionResponse
		decodeBody(t, resp, &body)
		assert.False(t, body.Taken)
		require.Len(t, body.Questions, 1)
		assert.Equal(t, "What is overfitting?", body.Questions[0].Q)
	})

	t.Run("attempt cap is a 200 with the error payload", func(t *testing.T) {
		sessions := &MockSessionService{
			BeginSessionFunc: func(ctx context.Context, courseID string, req *dto.BeginSessionRequest) (*dto.BeginSessionResponse, error) {
				return &dto.BeginSessionResponse{
					Taken:      true,
					TakenCount: domain.MaxAttempts,
					Error:      "Max attempts reached",
				}, nil
			},
		}
		app := newQuizApp(sessions)

		resp := postJSON(t, app, "/api/ml101/check_user",
			dto.BeginSessionRequest{Username: "alice", FullName: "Alice Kim"})

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var body map[string]any
		decodeBody(t, resp, &body)
		assert.Equal(t, "Max attempts reached", body["error"])
		assert.Equal(t, true, body["taken"])
		assert.Equal(t, float64(domain.MaxAttempts), body["taken_count"])
	})

	t.Run("unknown course maps to 404", func(t *testing.T) {
		sessions := &MockSessionService{
			BeginSessionFunc: func(ctx context.Context, courseID string, req *dto.BeginSessionRequest) (*dto.BeginSessionResponse, error) {
				return nil, domain.NewCourseNotFoundError(courseID)
			},
		}
		app := newQuizApp(sessions)

		resp := postJSON(t, app, "/api/ghost/check_user",
			dto.BeginSessionRequest{Username: "alice", FullName: "Alice Kim"})

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		var body dto.ErrorResponse
		decodeBody(t, resp, &body)
		assert.Equal(t, "Course ghost not found", body.Error)
	})

	t.Run("missing fields map to 400", func(t *testing.T) {
		app := newQuizApp(&MockSessionService{})

		resp := postJSON(t, app, "/api/ml101/check_user",
			dto.BeginSessionRequest{Username: "alice"})

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var body dto.ErrorResponse
		decodeBody(t, resp, &body)
		assert.Equal(t, "username and full_name required", body.Error)
	})

	t.Run("legacy route targets the default course", func(t *testing.T) {
		var gotCourseID string
		sessions := &MockSessionService{
			BeginSessionFunc: func(ctx context.Context, courseID string, req *dto.BeginSessionRequest) (*dto.BeginSessionResponse, error) {
				gotCourseID = courseID
				return &dto.BeginSessionResponse{TakenCount: 0}, nil
			},
		}
		app := newQuizApp(sessions)

		resp := postJSON(t, app, "/api/check_user",
			dto.BeginSessionRequest{Username: "alice", FullName: "Alice Kim"})

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, handler.DefaultCourseID, gotCourseID)
	})
}

func TestQuizHandler_FinalizeSession(t *testing.T) {
	finalizeBody := dto.FinalizeRequest{
		Username: "alice",
		Answers:  []dto.SubmittedAnswer{{Index: 0, Question: "q0", Answer: "a0"}},
	}

	t.Run("returns the summed score", func(t *testing.T) {
		sessions := &MockSessionService{
			FinalizeSessionFunc: func(ctx context.Context, courseID string, req *dto.FinalizeRequest) (*dto.FinalizeResponse, error) {
				return &dto.FinalizeResponse{
					FinalScore: 2.0,
					Total:      3,
					Answers: []dto.EvaluatedAnswerPayload{
						{Index: 0, Question: "q0", Answer: "a0", Score: 0.8, Feedback: "good"},
					},
				}, nil
			},
		}
		app := newQuizApp(sessions)

		resp := postJSON(t, app, "/api/ml101/finalize", finalizeBody)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var body dto.FinalizeResponse
		decodeBody(t, resp, &body)
		assert.InDelta(t, 2.0, body.FinalScore, 1e-9)
		assert.Equal(t, 3, body.Total)
	})

	t.Run("already finalized maps to 409", func(t *testing.T) {
		sessions := &MockSessionService{
			FinalizeSessionFunc: func(ctx context.Context, courseID string, req *dto.FinalizeRequest) (*dto.FinalizeResponse, error) {
				return nil, domain.NewAlreadyFinalizedError()
			},
		}
		app := newQuizApp(sessions)

		resp := postJSON(t, app, "/api/ml101/finalize", finalizeBody)

		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})

	t.Run("absent session maps to 404", func(t *testing.T) {
		sessions := &MockSessionService{
			FinalizeSessionFunc: func(ctx context.Context, courseID string, req *dto.FinalizeRequest) (*dto.FinalizeResponse, error) {
				return nil, domain.NewSessionNotFoundError()
			},
		}
		app := newQuizApp(sessions)

		resp := postJSON(t, app, "/api/ml101/finalize", finalizeBody)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		var body dto.ErrorResponse
		decodeBody(t, resp, &body)
		assert.Equal(t, "session not found", body.Error)
	})

	t.Run("missing answers map to 400", func(t *testing.T) {
		app := newQuizApp(&MockSessionService{})

		resp := postJSON(t, app, "/api/ml101/finalize", dto.FinalizeRequest{Username: "alice"})

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var body dto.ErrorResponse
		decodeBody(t, resp, &body)
		assert.Equal(t, "username and answers required", body.Error)
	})
}
