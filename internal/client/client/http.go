package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/dmitrijs2005/ragdesk/internal/client/models"
	"github.com/dmitrijs2005/ragdesk/internal/common"
	"github.com/dmitrijs2005/ragdesk/internal/logging"
	"github.com/dmitrijs2005/ragdesk/internal/netx"
	"github.com/google/uuid"
)

// HTTPClient talks to the backend over HTTP/JSON. It implements Client for
// both contracts.
type HTTPClient struct {
	baseURL  string
	contract Contract
	hc       *http.Client
	log      logging.Logger
	newID    func() string
}

// NewHTTPClient creates a client for the backend at baseURL.
// The underlying http.Client has no timeout; cancel through ctx.
func NewHTTPClient(baseURL string, contract Contract, log logging.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL:  strings.TrimRight(baseURL, "/"),
		contract: contract,
		hc:       &http.Client{},
		log:      log,
		newID:    uuid.NewString,
	}
}

func (c *HTTPClient) Contract() Contract { return c.contract }

func (c *HTTPClient) legacy() bool { return c.contract == ContractLegacy }

// envelope is the bearer contract's response wrapper. FastAPI rejects a bad
// or missing token with {"detail": "..."} instead.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Detail  json.RawMessage `json:"detail"`
	Data    json.RawMessage `json:"data"`
}

func (e envelope) message() string {
	if e.Message != "" || len(e.Detail) == 0 {
		return e.Message
	}
	var s string
	if json.Unmarshal(e.Detail, &s) == nil {
		return s
	}
	return ""
}

// send performs one request and returns the status code and the full body.
func (c *HTTPClient) send(ctx context.Context, method, path string, s *models.Session, body io.Reader, contentType string) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return 0, nil, fmt.Errorf("build request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if s != nil && !c.legacy() && s.Token != "" {
		req.Header.Set(common.AuthorizationHeaderName, "Bearer "+s.Token)
	}
	id := c.newID()
	req.Header.Set(common.RequestIDHeaderName, id)

	resp, err := c.hc.Do(req)
	if err != nil {
		c.log.Debug(ctx, "request failed", "method", method, "path", path, "request_id", id, "error", err)
		return 0, nil, unavailable(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, unavailable(err)
	}
	c.log.Debug(ctx, "request done", "method", method, "path", path, "status", resp.StatusCode, "request_id", id)
	return resp.StatusCode, raw, nil
}

func (c *HTTPClient) sendJSON(ctx context.Context, method, path string, s *models.Session, payload any) (int, []byte, error) {
	if payload == nil {
		return c.send(ctx, method, path, s, nil, "")
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return 0, nil, fmt.Errorf("encode request: %w", err)
	}
	return c.send(ctx, method, path, s, bytes.NewReader(b), "application/json")
}

// decodeEnvelope checks success and unmarshals data into out (if non-nil).
func decodeEnvelope(raw []byte, out any) (envelope, error) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return env, badResponse(err)
	}
	if !env.Success {
		return env, &ServerError{Message: env.message()}
	}
	if out != nil && len(env.Data) > 0 && string(env.Data) != "null" {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return env, badResponse(err)
		}
	}
	return env, nil
}

func decodeBare(raw []byte, out any) error {
	if err := json.Unmarshal(raw, out); err != nil {
		return badResponse(err)
	}
	return nil
}

// callEnvelope sends a JSON request and decodes the {success,message,data}
// reply. The legacy API uses the same top-level shape for its auth calls.
func (c *HTTPClient) callEnvelope(ctx context.Context, method, path string, s *models.Session, payload, out any) (envelope, error) {
	_, raw, err := c.sendJSON(ctx, method, path, s, payload)
	if err != nil {
		return envelope{}, err
	}
	return decodeEnvelope(raw, out)
}

func userPath(prefix, username string) string {
	return prefix + "/" + url.PathEscape(username)
}

func (c *HTTPClient) Login(ctx context.Context, username, password string) (string, error) {
	req := struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}{username, password}

	var data struct {
		Token string `json:"token"`
	}
	env, err := c.callEnvelope(ctx, http.MethodPost, "/auth/login", nil, req, &data)
	if err != nil {
		return "", err
	}
	if c.legacy() {
		return "", nil
	}
	if data.Token == "" {
		return "", &ServerError{Message: env.message()}
	}
	return data.Token, nil
}

func (c *HTTPClient) Signup(ctx context.Context, username, email, password string) error {
	req := struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}{username, email, password}

	_, err := c.callEnvelope(ctx, http.MethodPost, "/auth/signup", nil, req, nil)
	return err
}

func (c *HTTPClient) ForgotPassword(ctx context.Context, email string) (string, error) {
	req := struct {
		Email string `json:"email"`
	}{email}

	env, err := c.callEnvelope(ctx, http.MethodPost, "/auth/forgot-password", nil, req, nil)
	if err != nil {
		return "", err
	}
	return env.message(), nil
}

func (c *HTTPClient) ResetPassword(ctx context.Context, token, newPassword string) error {
	req := struct {
		Token       string `json:"token"`
		NewPassword string `json:"new_password"`
	}{token, newPassword}

	_, err := c.callEnvelope(ctx, http.MethodPost, "/auth/reset-password", nil, req, nil)
	return err
}

func (c *HTTPClient) ChangePassword(ctx context.Context, s models.Session, oldPassword, newPassword string) error {
	req := struct {
		Username    string `json:"username,omitempty"`
		OldPassword string `json:"old_password"`
		NewPassword string `json:"new_password"`
	}{OldPassword: oldPassword, NewPassword: newPassword}
	if c.legacy() {
		req.Username = s.Username
	}

	_, err := c.callEnvelope(ctx, http.MethodPost, "/auth/change-password", &s, req, nil)
	return err
}

type documentList struct {
	Documents []string `json:"documents"`
}

func (c *HTTPClient) ListDocuments(ctx context.Context, s models.Session) ([]string, error) {
	var out documentList
	if c.legacy() {
		_, raw, err := c.send(ctx, http.MethodGet, userPath("/documents", s.Username), &s, nil, "")
		if err != nil {
			return nil, err
		}
		if err := decodeBare(raw, &out); err != nil {
			return nil, err
		}
		return out.Documents, nil
	}

	if _, err := c.callEnvelope(ctx, http.MethodGet, "/documents", &s, nil, &out); err != nil {
		return nil, err
	}
	return out.Documents, nil
}

// UploadDocument sends one file as multipart field "file". The legacy API
// reports success through the HTTP status only.
func (c *HTTPClient) UploadDocument(ctx context.Context, s models.Session, path string) error {
	var fields []netx.FormField
	if c.legacy() {
		fields = append(fields, netx.FormField{Name: "username", Value: s.Username})
	}
	body, ct, err := netx.NewFileForm("file", path, fields...)
	if err != nil {
		return err
	}

	status, raw, err := c.send(ctx, http.MethodPost, "/rag/upload", &s, body, ct)
	if err != nil {
		return err
	}
	if c.legacy() {
		if status < 200 || status > 299 {
			return &ServerError{Message: http.StatusText(status)}
		}
		return nil
	}
	_, err = decodeEnvelope(raw, nil)
	return err
}

func (c *HTTPClient) DeleteDocument(ctx context.Context, s models.Session, doc string) error {
	path := "/documents/" + url.PathEscape(doc)
	if c.legacy() {
		path = userPath("/documents", s.Username) + "/" + url.PathEscape(doc)
	}
	_, err := c.callEnvelope(ctx, http.MethodDelete, path, &s, nil, nil)
	return err
}

func (c *HTTPClient) Query(ctx context.Context, s models.Session, q models.Query) (*models.Answer, error) {
	req := models.QueryRequest{Question: q.Question, TopK: q.TopK}
	if q.Filter == models.FilterSelected {
		req.SelectedDocuments = q.Selected
	}
	if c.legacy() {
		req.Username = s.Username
	}

	out := &models.Answer{}
	if c.legacy() {
		_, raw, err := c.sendJSON(ctx, http.MethodPost, "/rag/query", &s, req)
		if err != nil {
			return nil, err
		}
		if err := decodeBare(raw, out); err != nil {
			return nil, err
		}
		return out, nil
	}

	env, err := c.callEnvelope(ctx, http.MethodPost, "/rag/query", &s, req, out)
	if err != nil {
		return nil, err
	}
	if out.Answer == "" {
		return nil, &ServerError{Message: env.message()}
	}
	return out, nil
}

type historyList struct {
	History []models.ConversationEntry `json:"history"`
}

func (c *HTTPClient) History(ctx context.Context, s models.Session) ([]models.ConversationEntry, error) {
	var out historyList
	if c.legacy() {
		_, raw, err := c.send(ctx, http.MethodGet, userPath("/history", s.Username), &s, nil, "")
		if err != nil {
			return nil, err
		}
		if err := decodeBare(raw, &out); err != nil {
			return nil, err
		}
		return out.History, nil
	}

	if _, err := c.callEnvelope(ctx, http.MethodGet, "/history", &s, nil, &out); err != nil {
		return nil, err
	}
	return out.History, nil
}

func (c *HTTPClient) Profile(ctx context.Context, s models.Session) (*models.Profile, error) {
	out := &models.Profile{}
	if c.legacy() {
		_, raw, err := c.send(ctx, http.MethodGet, userPath("/profile", s.Username), &s, nil, "")
		if err != nil {
			return nil, err
		}
		if err := decodeBare(raw, out); err != nil {
			return nil, err
		}
		return out, nil
	}

	if _, err := c.callEnvelope(ctx, http.MethodGet, "/profile", &s, nil, out); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateProfile returns the username the server confirmed, which may differ
// from the session's after a rename. An empty result means the server did
// not say.
func (c *HTTPClient) UpdateProfile(ctx context.Context, s models.Session, newUsername, newEmail string) (string, error) {
	req := struct {
		NewUsername string `json:"new_username"`
		NewEmail    string `json:"new_email"`
	}{newUsername, newEmail}

	if c.legacy() {
		_, raw, err := c.sendJSON(ctx, http.MethodPut, userPath("/profile", s.Username), &s, req)
		if err != nil {
			return "", err
		}
		var out struct {
			envelope
			Username string `json:"username"`
		}
		if err := decodeBare(raw, &out); err != nil {
			return "", err
		}
		if !out.Success {
			return "", &ServerError{Message: out.message()}
		}
		return out.Username, nil
	}

	var data struct {
		Username string `json:"username"`
	}
	if _, err := c.callEnvelope(ctx, http.MethodPut, "/profile", &s, req, &data); err != nil {
		return "", err
	}
	return data.Username, nil
}

func (c *HTTPClient) UploadData(ctx context.Context, s models.Session, path string) (*models.DataUpload, error) {
	if c.legacy() {
		return nil, ErrUnsupported
	}
	body, ct, err := netx.NewFileForm("file", path)
	if err != nil {
		return nil, err
	}

	_, raw, err := c.send(ctx, http.MethodPost, "/data/upload", &s, body, ct)
	if err != nil {
		return nil, err
	}
	out := &models.DataUpload{}
	if _, err := decodeEnvelope(raw, out); err != nil {
		return nil, err
	}
	if out.Filename == "" {
		return nil, badResponse(errors.New("upload reply carries no filename"))
	}
	return out, nil
}

func (c *HTTPClient) DataInsights(ctx context.Context, s models.Session, filename string) (string, error) {
	if c.legacy() {
		return "", ErrUnsupported
	}
	var data struct {
		Insights string `json:"llm_insights"`
	}
	if _, err := c.callEnvelope(ctx, http.MethodGet, "/data/analysis/"+url.PathEscape(filename), &s, nil, &data); err != nil {
		return "", err
	}
	return data.Insights, nil
}

func (c *HTTPClient) DataCharts(ctx context.Context, s models.Session, filename string) ([]models.ChartSpec, error) {
	if c.legacy() {
		return nil, ErrUnsupported
	}
	var data struct {
		Charts []models.ChartSpec `json:"charts"`
	}
	if _, err := c.callEnvelope(ctx, http.MethodGet, "/data/charts/"+url.PathEscape(filename), &s, nil, &data); err != nil {
		return nil, err
	}
	return data.Charts, nil
}

func (c *HTTPClient) DataQuery(ctx context.Context, s models.Session, filename, question string) (string, error) {
	if c.legacy() {
		return "", ErrUnsupported
	}
	req := struct {
		Filename string `json:"filename"`
		Question string `json:"question"`
	}{filename, question}

	var data struct {
		Answer string `json:"answer"`
	}
	if _, err := c.callEnvelope(ctx, http.MethodPost, "/data/query", &s, req, &data); err != nil {
		return "", err
	}
	return data.Answer, nil
}
