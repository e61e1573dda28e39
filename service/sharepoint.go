package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/SlickbitTechnologies/ContractFlow/config"
)

// SharePointService is the document-sync collaborator: it discovers files
// on a SharePoint site and downloads them so they can be re-packaged as
// upload batch inputs. It authenticates with the Microsoft Graph
// client-credentials flow.
type SharePointService struct {
	config     *config.SharePointConfig
	httpClient *http.Client
	tokenURL   string
	graphURL   string

	mu          sync.Mutex
	accessToken string
	driveID     string
}

// DriveItem is one entry of a drive listing.
type DriveItem struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Size   int64  `json:"size"`
	Folder *struct {
		ChildCount int `json:"childCount"`
	} `json:"folder,omitempty"`
	ParentReference struct {
		DriveID string `json:"driveId"`
	} `json:"parentReference"`
}

type driveListing struct {
	Value    []DriveItem `json:"value"`
	NextLink string      `json:"@odata.nextLink"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

// Site is one entry of a site search.
type Site struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
	WebURL      string `json:"webUrl"`
}

type siteListing struct {
	Value []Site `json:"value"`
}

func NewSharePointService(cfg *config.SharePointConfig) *SharePointService {
	tokenURL := cfg.TokenURL
	if tokenURL == "" {
		tokenURL = fmt.Sprintf("https://login.microsoftonline.com/%s/oauth2/v2.0/token", cfg.TenantID)
	}
	return &SharePointService{
		config: cfg,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		tokenURL: tokenURL,
		graphURL: strings.TrimRight(cfg.GraphBaseURL, "/"),
	}
}

// fetchToken acquires an access token via the client-credentials grant.
func (s *SharePointService) fetchToken(ctx context.Context) (string, error) {
	form := url.Values{
		"client_id":     {s.config.ClientID},
		"client_secret": {s.config.ClientSecret},
		"grant_type":    {"client_credentials"},
		"scope":         {"https://graph.microsoft.com/.default"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch token: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("token endpoint returned status %d", resp.StatusCode)
	}

	var token tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return "", fmt.Errorf("failed to parse token response: %w", err)
	}
	if token.AccessToken == "" {
		return "", fmt.Errorf("token endpoint returned no access token")
	}

	s.mu.Lock()
	s.accessToken = token.AccessToken
	s.mu.Unlock()

	return token.AccessToken, nil
}

// CheckStatus verifies the integration can authenticate.
func (s *SharePointService) CheckStatus(ctx context.Context) error {
	_, err := s.fetchToken(ctx)
	return err
}

func (s *SharePointService) authGet(ctx context.Context, rawURL string) (*http.Response, error) {
	s.mu.Lock()
	token := s.accessToken
	s.mu.Unlock()

	if token == "" {
		var err error
		token, err = s.fetchToken(ctx)
		if err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("graph API returned status %d", resp.StatusCode)
	}

	return resp, nil
}

// Sites searches SharePoint sites matching the term.
func (s *SharePointService) Sites(ctx context.Context, searchTerm string) ([]Site, error) {
	if searchTerm == "" {
		searchTerm = "Contracts"
	}

	resp, err := s.authGet(ctx, fmt.Sprintf("%s/sites?search=%s", s.graphURL, url.QueryEscape(searchTerm)))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var listing siteListing
	if err := json.NewDecoder(resp.Body).Decode(&listing); err != nil {
		return nil, fmt.Errorf("failed to parse site listing: %w", err)
	}

	return listing.Value, nil
}

// SiteFiles lists every file on the configured site, descending into
// folders and following pagination links. Folders themselves are not
// returned.
func (s *SharePointService) SiteFiles(ctx context.Context) ([]DriveItem, error) {
	rootURL := fmt.Sprintf("%s/sites/%s/drive/root/children", s.graphURL, s.config.SiteID)

	resp, err := s.authGet(ctx, rootURL)
	if err != nil {
		return nil, err
	}
	var listing driveListing
	decodeErr := json.NewDecoder(resp.Body).Decode(&listing)
	resp.Body.Close()
	if decodeErr != nil {
		return nil, fmt.Errorf("failed to parse drive listing: %w", decodeErr)
	}

	// Cache the drive id for folder descent and downloads.
	if len(listing.Value) > 0 && listing.Value[0].ParentReference.DriveID != "" {
		s.mu.Lock()
		s.driveID = listing.Value[0].ParentReference.DriveID
		s.mu.Unlock()
	}

	var files []DriveItem
	if err := s.collectFiles(ctx, listing, &files); err != nil {
		return nil, err
	}

	return files, nil
}

// collectFiles walks one listing: plain files accumulate, folders recurse
// through their children, and pagination links continue the walk.
func (s *SharePointService) collectFiles(ctx context.Context, listing driveListing, files *[]DriveItem) error {
	for _, item := range listing.Value {
		if item.Folder != nil {
			driveID := s.cachedDriveID()
			if driveID == "" {
				driveID = item.ParentReference.DriveID
			}
			if driveID == "" {
				continue
			}
			childURL := fmt.Sprintf("%s/drives/%s/items/%s/children", s.graphURL, driveID, item.ID)
			if err := s.fetchInto(ctx, childURL, files); err != nil {
				return err
			}
			continue
		}
		*files = append(*files, item)
	}

	if listing.NextLink != "" {
		return s.fetchInto(ctx, listing.NextLink, files)
	}

	return nil
}

func (s *SharePointService) fetchInto(ctx context.Context, rawURL string, files *[]DriveItem) error {
	resp, err := s.authGet(ctx, rawURL)
	if err != nil {
		return err
	}
	var listing driveListing
	decodeErr := json.NewDecoder(resp.Body).Decode(&listing)
	resp.Body.Close()
	if decodeErr != nil {
		return fmt.Errorf("failed to parse drive listing: %w", decodeErr)
	}
	return s.collectFiles(ctx, listing, files)
}

func (s *SharePointService) cachedDriveID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.driveID
}

// Download fetches a file's content by drive item id. The result is
// compatible with an upload batch input.
func (s *SharePointService) Download(ctx context.Context, fileID string) ([]byte, error) {
	driveID := s.cachedDriveID()
	if driveID == "" {
		// Listing the site populates the drive id.
		if _, err := s.SiteFiles(ctx); err != nil {
			return nil, err
		}
		driveID = s.cachedDriveID()
	}
	if driveID == "" {
		return nil, fmt.Errorf("drive id not available")
	}

	resp, err := s.authGet(ctx, fmt.Sprintf("%s/drives/%s/items/%s/content", s.graphURL, driveID, fileID))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read file content: %w", err)
	}

	return content, nil
}
