// Package client is the EduGPT frontend brought over as a Go library: an
// API client for the backend, a session controller persisting the signed-in
// state, and the local scripted tutor.
package client

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"edugpt/backend/models"
	"edugpt/backend/tutor"
)

// Client wraps the backend HTTP API. Failures surface the backend's error
// string; there is no retry or backoff.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

func New(baseURL string) *Client {
	return &Client{BaseURL: baseURL, HTTPClient: http.DefaultClient}
}

type envelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func (c *Client) do(method, path, token string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, c.BaseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return fmt.Errorf("request failed: %s", resp.Status)
	}
	if resp.StatusCode >= 400 || !env.Success {
		if env.Error != "" {
			return errors.New(env.Error)
		}
		return fmt.Errorf("request failed: %s", resp.Status)
	}
	if out != nil {
		return json.Unmarshal(data, out)
	}
	return nil
}

// AuthResult is the response of register and login calls.
type AuthResult struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

type RegisterInput struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      string `json:"role"`
}

func (c *Client) Register(input RegisterInput) (*AuthResult, error) {
	var result AuthResult
	if err := c.do(http.MethodPost, "/api/auth/register", "", input, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) Login(email, password string) (*AuthResult, error) {
	var result AuthResult
	body := map[string]string{"email": email, "password": password}
	if err := c.do(http.MethodPost, "/api/auth/login", "", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// SyncUser is the best-effort profile sync made after sign-in/sign-up.
func (c *Client) SyncUser(token, email, displayName, role string) error {
	body := map[string]string{"email": email, "displayName": displayName, "role": role}
	return c.do(http.MethodPost, "/api/auth/sync-user", token, body, nil)
}

func (c *Client) Verify(token string) (*models.User, error) {
	var result struct {
		User models.User `json:"user"`
	}
	if err := c.do(http.MethodGet, "/api/auth/verify", token, nil, &result); err != nil {
		return nil, err
	}
	return &result.User, nil
}

func (c *Client) GetUserProfile(token, userID string) (*models.User, error) {
	var result struct {
		User models.User `json:"user"`
	}
	if err := c.do(http.MethodGet, "/api/users/"+userID, token, nil, &result); err != nil {
		return nil, err
	}
	return &result.User, nil
}

func (c *Client) UpdateUserProfile(token, userID string, update models.UserUpdate) error {
	return c.do(http.MethodPut, "/api/users/"+userID, token, update, nil)
}

// Dashboard is the aggregated view returned by the dashboard endpoint.
type Dashboard struct {
	User             models.User          `json:"user"`
	Progress         float64              `json:"progress"`
	StudyStreak      int                  `json:"studyStreak"`
	CurrentCourse    string               `json:"currentCourse"`
	Achievements     []models.Achievement `json:"achievements"`
	TotalStudyTime   float64              `json:"totalStudyTime"`
	CompletedLessons int                  `json:"completedLessons"`
	ChatSessions     int64                `json:"chatSessions"`
}

func (c *Client) GetDashboard(token, userID string) (*Dashboard, error) {
	var result struct {
		Dashboard Dashboard `json:"dashboard"`
	}
	if err := c.do(http.MethodGet, "/api/users/"+userID+"/dashboard", token, nil, &result); err != nil {
		return nil, err
	}
	return &result.Dashboard, nil
}

func (c *Client) SendChatMessage(userID, message string) (string, error) {
	var result struct {
		Response string `json:"response"`
	}
	body := map[string]string{"userId": userID, "message": message}
	if err := c.do(http.MethodPost, "/api/ai/chat", "", body, &result); err != nil {
		return "", err
	}
	return result.Response, nil
}

func (c *Client) GetChatHistory(userID string) ([]models.Message, error) {
	var result struct {
		Messages []models.Message `json:"messages"`
	}
	if err := c.do(http.MethodGet, "/api/ai/chat/history/"+userID, "", nil, &result); err != nil {
		return nil, err
	}
	return result.Messages, nil
}

func (c *Client) ClearChatHistory(userID string) error {
	return c.do(http.MethodDelete, "/api/ai/chat/history/"+userID, "", nil, nil)
}

func (c *Client) GenerateQuiz(userID, subject, difficulty string) (*tutor.Quiz, error) {
	if difficulty == "" {
		difficulty = "beginner"
	}
	var result struct {
		Quiz tutor.Quiz `json:"quiz"`
	}
	body := map[string]string{"userId": userID, "subject": subject, "difficulty": difficulty}
	if err := c.do(http.MethodPost, "/api/ai/quiz/generate", "", body, &result); err != nil {
		return nil, err
	}
	return &result.Quiz, nil
}

func (c *Client) UpdateProgress(userID string, update models.ProgressUpdate) error {
	body := struct {
		UserID       string                `json:"userId"`
		ProgressData models.ProgressUpdate `json:"progressData"`
	}{UserID: userID, ProgressData: update}
	return c.do(http.MethodPost, "/api/ai/progress/update", "", body, nil)
}

func (c *Client) GetProgress(userID string) (*models.Progress, error) {
	var result struct {
		Progress models.Progress `json:"progress"`
	}
	if err := c.do(http.MethodGet, "/api/ai/progress/"+userID, "", nil, &result); err != nil {
		return nil, err
	}
	return &result.Progress, nil
}
