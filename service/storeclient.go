package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/SlickbitTechnologies/ContractFlow/config"
	"github.com/SlickbitTechnologies/ContractFlow/model"
)

// StoreClient talks to the external contract store, the service of record
// for contract documents. It exposes the four logical operations: create
// (by file upload), list, update, delete. Any non-success response is an
// undifferentiated transport failure; there are no retries.
type StoreClient struct {
	baseURL    string
	httpClient *http.Client
}

// CreateResponse is the remote store's answer to a contract upload. The
// store parses the document server-side and may extract several contracts
// from one file.
type CreateResponse struct {
	Status    string           `json:"status"`
	Contracts []model.Contract `json:"contracts"`
}

type ackResponse struct {
	Status string `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func NewStoreClient(cfg *config.StoreConfig) *StoreClient {
	return &StoreClient{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		},
	}
}

// Create uploads a document to the remote store, which parses it and
// creates one or more contract records.
func (s *StoreClient) Create(ctx context.Context, filename string, data io.Reader) (*CreateResponse, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("failed to build form: %w", err)
	}
	if _, err := io.Copy(part, data); err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/upload_contract/", &body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("contract store returned status %d", resp.StatusCode)
	}

	var result CreateResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	return &result, nil
}

// List fetches the full contract collection. This is the refresh
// primitive invoked after every mutation.
func (s *StoreClient) List(ctx context.Context) ([]model.Contract, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/contracts/", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("contract store returned status %d", resp.StatusCode)
	}

	var contracts []model.Contract
	if err := json.NewDecoder(resp.Body).Decode(&contracts); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	return contracts, nil
}

// Update replaces the full record identified by id.
func (s *StoreClient) Update(ctx context.Context, id string, contract *model.Contract) error {
	payload, err := json.Marshal(contract)
	if err != nil {
		return fmt.Errorf("failed to marshal contract: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut,
		fmt.Sprintf("%s/contracts/%s", s.baseURL, id), bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return s.expectAck(req)
}

// Delete removes the record identified by id.
func (s *StoreClient) Delete(ctx context.Context, id string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete,
		fmt.Sprintf("%s/contracts/%s", s.baseURL, id), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	return s.expectAck(req)
}

func (s *StoreClient) expectAck(req *http.Request) error {
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("contract store returned status %d", resp.StatusCode)
	}

	var ack ackResponse
	if err := json.NewDecoder(resp.Body).Decode(&ack); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	if ack.Status != "success" {
		return fmt.Errorf("contract store reported failure: %s", ack.Detail)
	}

	return nil
}
