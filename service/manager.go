package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/SlickbitTechnologies/ContractFlow/model"
	"github.com/SlickbitTechnologies/ContractFlow/pkg/logger"
	"github.com/google/uuid"
)

// UploadFile is one document in an upload batch.
type UploadFile struct {
	Name        string
	Data        []byte
	ContentType string
}

// FileResult is the per-file outcome of an upload batch. Batch uploads
// are best-effort: a failed file does not abort the rest, it is reported
// here instead of being swallowed.
type FileResult struct {
	Filename   string `json:"filename"`
	OK         bool   `json:"ok"`
	Error      string `json:"error,omitempty"`
	ArchiveURL string `json:"archive_url,omitempty"`
}

// ContractManager keeps the local contract view consistent with the
// remote store. Every mutation goes to the store first and is followed by
// a full collection refresh; the local snapshot is never mutated
// optimistically. A single-slot busy gate serializes mutating operations.
type ContractManager struct {
	store      *StoreClient
	archive    *ArchiveService // optional, nil disables archiving
	cache      *CollectionCache
	busy       busyState
	windowDays int
}

func NewContractManager(store *StoreClient, archive *ArchiveService, windowDays int) *ContractManager {
	if windowDays <= 0 {
		windowDays = DefaultExpiryWindowDays
	}
	return &ContractManager{
		store:      store,
		archive:    archive,
		cache:      NewCollectionCache(),
		windowDays: windowDays,
	}
}

// Busy returns the operation in flight and its status message, or empty
// strings when idle.
func (m *ContractManager) Busy() (Operation, string) {
	op := m.busy.Current()
	return op, op.Message()
}

// Contracts returns the last refreshed collection in store order.
func (m *ContractManager) Contracts() []model.Contract {
	return m.cache.All()
}

// LastRefresh returns when the collection was last fetched.
func (m *ContractManager) LastRefresh() time.Time {
	return m.cache.LastRefresh()
}

// WindowDays returns the configured expiry horizon.
func (m *ContractManager) WindowDays() int {
	return m.windowDays
}

// Refresh refetches the full collection from the remote store and
// replaces the local snapshot.
func (m *ContractManager) Refresh(ctx context.Context) error {
	contracts, err := m.store.List(ctx)
	if err != nil {
		return fmt.Errorf("refresh failed: %w", err)
	}
	m.cache.Replace(contracts)
	return nil
}

// Upload processes a batch of files strictly sequentially: one remote
// create per file, in input order, then exactly one collection refresh
// regardless of individual failures. The busy gate is held for the whole
// batch; a concurrent trigger gets ErrBusy.
func (m *ContractManager) Upload(ctx context.Context, files []UploadFile) ([]FileResult, error) {
	if err := m.busy.begin(OpUploading); err != nil {
		return nil, err
	}
	defer m.busy.end()

	ctx = context.WithValue(ctx, logger.OperationKey, string(OpUploading))

	results := make([]FileResult, 0, len(files))
	for _, f := range files {
		result := FileResult{Filename: f.Name}

		if m.archive != nil {
			result.ArchiveURL = m.archiveCopy(ctx, f)
		}

		_, err := m.store.Create(ctx, f.Name, bytes.NewReader(f.Data))
		if err != nil {
			logger.Warn(ctx, "upload failed", "filename", f.Name, "error", err)
			result.Error = err.Error()
		} else {
			result.OK = true
		}
		results = append(results, result)
	}

	// One refresh for the whole batch, on every path.
	if err := m.Refresh(ctx); err != nil {
		logger.Error(ctx, "post-upload refresh failed", "error", err)
		return results, err
	}

	return results, nil
}

// archiveCopy mirrors the file into the archive bucket. Best-effort: the
// upload proceeds whether or not the copy succeeds.
func (m *ContractManager) archiveCopy(ctx context.Context, f UploadFile) string {
	objectName := fmt.Sprintf("%s/%s", uuid.New().String(), f.Name)
	err := m.archive.Store(ctx, objectName, bytes.NewReader(f.Data), int64(len(f.Data)), f.ContentType)
	if err != nil {
		logger.Warn(ctx, "archive copy failed", "filename", f.Name, "error", err)
		return ""
	}
	url, err := m.archive.PresignedURL(ctx, objectName)
	if err != nil {
		logger.Warn(ctx, "archive presign failed", "object", objectName, "error", err)
		return ""
	}
	return url
}

// Update replaces the full record on the remote store, then refreshes.
// It fails fast without a network call if the contract lacks a remote id
// and never merges partial fields.
func (m *ContractManager) Update(ctx context.Context, contract model.Contract) error {
	if !contract.HasID() {
		return ErrMissingID
	}
	if err := m.busy.begin(OpSaving); err != nil {
		return err
	}
	defer m.busy.end()

	ctx = context.WithValue(ctx, logger.OperationKey, string(OpSaving))

	if err := m.store.Update(ctx, contract.ID, &contract); err != nil {
		return err
	}
	return m.Refresh(ctx)
}

// Delete removes the record from the remote store, then refreshes. The
// caller must confirm explicitly before any network call is made; a
// missing id or a transport failure leaves the local view untouched.
func (m *ContractManager) Delete(ctx context.Context, contract model.Contract, confirmed bool) error {
	if !contract.HasID() {
		return ErrMissingID
	}
	if !confirmed {
		return ErrNotConfirmed
	}
	if err := m.busy.begin(OpDeleting); err != nil {
		return err
	}
	defer m.busy.end()

	ctx = context.WithValue(ctx, logger.OperationKey, string(OpDeleting))

	if err := m.store.Delete(ctx, contract.ID); err != nil {
		return err
	}
	return m.Refresh(ctx)
}

// Filter applies the compound predicate to the last refreshed collection.
func (m *ContractManager) Filter(q FilterQuery) []model.Contract {
	return Filter(m.cache.All(), q)
}

// ExpiringSoon returns the contracts whose end date falls inside the
// window relative to now, in collection order. It is recomputed from the
// snapshot on every call; untracked and unparsable end dates are never
// included.
func (m *ContractManager) ExpiringSoon(now time.Time, windowDays int) []model.Contract {
	if windowDays <= 0 {
		windowDays = m.windowDays
	}
	var result []model.Contract
	for _, c := range m.cache.All() {
		if Classify(now, c.Ends, windowDays).State == ExpiryExpiringSoon {
			result = append(result, c)
		}
	}
	return result
}
