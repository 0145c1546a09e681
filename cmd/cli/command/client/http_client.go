package client

// http_client.go talks to the foodreview REST API.

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"foodreview/internal/microservices/http-api/dto"
	"foodreview/internal/microservices/http-api/models"
)

// APIError is a non-2xx answer from the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("request failed with status %d", e.Status)
	}
	return fmt.Sprintf("%s (status %d)", e.Message, e.Status)
}

type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	token      string
	userID     string
}

func NewHTTPClient(apiURL string) *HTTPClient {
	return &HTTPClient{
		baseURL: apiURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// SetToken authenticates requests with a Bearer token.
func (c *HTTPClient) SetToken(token string) {
	c.token = token
}

// SetUserID sends an X-User-Id header when no token is set.
func (c *HTTPClient) SetUserID(userID string) {
	c.userID = userID
}

// do sends body as JSON and decodes the answer into out when out is non-nil.
func (c *HTTPClient) do(method, path string, body, out any) (http.Header, error) {
	var reader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	switch {
	case c.token != "":
		req.Header.Set("Authorization", "Bearer "+c.token)
	case c.userID != "":
		req.Header.Set("X-User-Id", c.userID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		return resp.Header, &APIError{Status: resp.StatusCode, Message: apiErr.Error}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp.Header, fmt.Errorf("decode response: %w", err)
		}
	}
	return resp.Header, nil
}

// Auth

func (c *HTTPClient) Login(request *dto.LoginRequest) (*dto.AuthResponse, error) {
	var result dto.AuthResponse
	if _, err := c.do(http.MethodPost, "/api/auth/login", request, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// RefreshToken trades a refresh token for a new pair. The old one stops working.
func (c *HTTPClient) RefreshToken(refreshToken string) (*dto.TokenResponse, error) {
	var result dto.TokenResponse
	req := dto.RefreshTokenRequest{RefreshToken: refreshToken}
	if _, err := c.do(http.MethodPost, "/api/auth/refresh-token", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *HTTPClient) RevokeToken(refreshToken string) error {
	_, err := c.do(http.MethodPost, "/api/auth/revoke", dto.RefreshTokenRequest{RefreshToken: refreshToken}, nil)
	return err
}

func (c *HTTPClient) Register(request *dto.RegisterRequest) (*dto.UserResponse, error) {
	var result dto.UserResponse
	if _, err := c.do(http.MethodPost, "/api/auth/register", request, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *HTTPClient) Profile() (*dto.UserResponse, error) {
	var result dto.UserResponse
	if _, err := c.do(http.MethodGet, "/api/auth/profile", nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Reviews

// ReviewQuery mirrors the list endpoint's query parameters.
type ReviewQuery struct {
	Search      string
	Cuisine     []string
	Area        []string
	DiningStyle []string
	Sort        string
	Page        int
	PageSize    int
}

func (q ReviewQuery) encode() string {
	v := url.Values{}
	if q.Search != "" {
		v.Set("q", q.Search)
	}
	for _, s := range q.Cuisine {
		v.Add("cuisine", s)
	}
	for _, s := range q.Area {
		v.Add("area", s)
	}
	for _, s := range q.DiningStyle {
		v.Add("diningStyle", s)
	}
	if q.Sort != "" {
		v.Set("sort", q.Sort)
	}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.PageSize > 0 {
		v.Set("page_size", strconv.Itoa(q.PageSize))
	}
	if len(v) == 0 {
		return ""
	}
	return "?" + v.Encode()
}

// ListReviews returns one page and the total match count.
func (c *HTTPClient) ListReviews(q ReviewQuery) ([]dto.ReviewResponse, int64, error) {
	var result []dto.ReviewResponse
	header, err := c.do(http.MethodGet, "/api/foodreviews"+q.encode(), nil, &result)
	if err != nil {
		return nil, 0, err
	}
	total, _ := strconv.ParseInt(header.Get("X-Total-Count"), 10, 64)
	return result, total, nil
}

func (c *HTTPClient) GetReview(id string) (*dto.ReviewResponse, error) {
	var result dto.ReviewResponse
	if _, err := c.do(http.MethodGet, "/api/foodreviews/"+url.PathEscape(id), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *HTTPClient) CreateReview(request *dto.CreateReviewRequest) (*dto.ReviewResponse, error) {
	var result dto.ReviewResponse
	if _, err := c.do(http.MethodPost, "/api/foodreviews", request, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *HTTPClient) Like(id string) (*dto.ReactionResponse, error) {
	return c.react(id, "like")
}

func (c *HTTPClient) Dislike(id string) (*dto.ReactionResponse, error) {
	return c.react(id, "dislike")
}

func (c *HTTPClient) react(id, kind string) (*dto.ReactionResponse, error) {
	var result dto.ReactionResponse
	if _, err := c.do(http.MethodPost, "/api/foodreviews/"+url.PathEscape(id)+"/"+kind, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *HTTPClient) Report(id, reason string) (*dto.ReportResponse, error) {
	var result dto.ReportResponse
	if _, err := c.do(http.MethodPost, "/api/foodreviews/"+url.PathEscape(id)+"/report", dto.ReportRequest{Reason: reason}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Comments

func (c *HTTPClient) ListComments(reviewID string) ([]models.Comment, error) {
	var result []models.Comment
	if _, err := c.do(http.MethodGet, "/api/foodreviews/"+url.PathEscape(reviewID)+"/comments", nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *HTTPClient) AddComment(reviewID, text, name string) (*models.Comment, error) {
	var result models.Comment
	if _, err := c.do(http.MethodPost, "/api/foodreviews/"+url.PathEscape(reviewID)+"/comments", dto.CommentRequest{Text: text, Name: name}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *HTTPClient) DeleteComment(reviewID, commentID string) error {
	_, err := c.do(http.MethodDelete, "/api/foodreviews/"+url.PathEscape(reviewID)+"/comments/"+url.PathEscape(commentID), nil, nil)
	return err
}

// Complaints

func (c *HTTPClient) CreateComplaint(request *dto.CreateComplaintRequest) (*models.Complaint, error) {
	var result models.Complaint
	if _, err := c.do(http.MethodPost, "/api/complaints", request, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *HTTPClient) ListComplaints(status, search string) ([]models.Complaint, error) {
	v := url.Values{}
	if status != "" {
		v.Set("status", status)
	}
	if search != "" {
		v.Set("q", search)
	}
	path := "/api/complaints"
	if len(v) > 0 {
		path += "?" + v.Encode()
	}

	var result []models.Complaint
	if _, err := c.do(http.MethodGet, path, nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}
