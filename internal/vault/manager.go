// Package vault implements the dual-credential document lifecycle: one
// record per document, two independently hashed passwords, each unlocking
// a different rendition.
package vault

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Lllllllleong/pdfvault/internal/models"
	"github.com/Lllllllleong/pdfvault/internal/observability"
	"github.com/Lllllllleong/pdfvault/internal/pipeline"
)

// Blur radius bounds mirror the range the upload form offers. Zero means
// "use the default"; anything else outside the range is rejected rather
// than clamped.
const (
	MinBlurRadius     = 5
	MaxBlurRadius     = 20
	DefaultBlurRadius = 10
)

// DefaultCallTimeout bounds each individual object-store or database call.
const DefaultCallTimeout = 60 * time.Second

// Processor runs the redaction pipeline for one document.
// *pipeline.Pipeline is the production implementation.
type Processor interface {
	Run(logCtx *slog.Logger, data []byte, blurRadius float64) (*pipeline.Result, error)
}

// Manager orchestrates document creation and access. All collaborators
// are injected at construction and reused for the manager's lifetime.
type Manager struct {
	pipeline Processor
	creds    *CredentialManager
	objects  ObjectStore
	records  RecordStore
	metrics  *observability.Metrics
	timeout  time.Duration
}

// NewManager wires the lifecycle manager. metrics may be nil.
func NewManager(p Processor, creds *CredentialManager, objects ObjectStore, records RecordStore, metrics *observability.Metrics) *Manager {
	return &Manager{
		pipeline: p,
		creds:    creds,
		objects:  objects,
		records:  records,
		metrics:  metrics,
		timeout:  DefaultCallTimeout,
	}
}

// CreateInput carries everything the caller supplies for one document.
type CreateInput struct {
	ID            string
	Filename      string
	Data          []byte
	OwnerPassword string
	UserPassword  string
	BlurRadius    float64
}

// CreateOutput reports what the pipeline found and produced.
type CreateOutput struct {
	PageCount  int
	Redactions []models.RedactionEntry
}

// AccessOutput is returned on a successful credential check.
type AccessOutput struct {
	Filename string
	Location string
	Role     models.Role
}

// Create runs the full creation flow: validation, duplicate check,
// redaction pipeline, password hashing, rendition uploads, record write.
// It is all-or-nothing with respect to the record: on any pipeline or
// storage failure no record is written. Renditions uploaded before a
// failed record write are accepted orphans.
func (m *Manager) Create(ctx context.Context, in CreateInput) (*CreateOutput, error) {
	if err := validateCreateInput(in); err != nil {
		return nil, err
	}
	logCtx := slog.With("documentId", in.ID, "filename", in.Filename)

	if err := m.checkIDAvailable(ctx, in.ID); err != nil {
		return nil, err
	}

	radius := in.BlurRadius
	if radius == 0 {
		radius = DefaultBlurRadius
	}

	start := time.Now()
	result, err := m.pipeline.Run(logCtx, in.Data, radius)
	if err != nil {
		logCtx.Error("Redaction pipeline failed.", "error", err)
		return nil, fmt.Errorf("%w: %s", ErrPipeline, err)
	}
	if m.metrics != nil {
		m.metrics.ObservePipelineDuration(time.Since(start))
		for _, entry := range result.Redactions {
			m.metrics.RegionsDetected.WithLabelValues(entry.Kind).Inc()
		}
	}

	ownerHash, err := m.creds.Hash(in.OwnerPassword)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidation, err)
	}
	userHash, err := m.creds.Hash(in.UserPassword)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidation, err)
	}

	originalLoc, redactedLoc, err := m.uploadRenditions(ctx, logCtx, in, result)
	if err != nil {
		return nil, err
	}

	record := &models.DocumentRecord{
		Filename:          in.Filename,
		OwnerPasswordHash: ownerHash,
		UserPasswordHash:  userHash,
		OriginalLocation:  originalLoc,
		RedactedLocation:  redactedLoc,
		Redactions:        result.Redactions,
		CreatedAt:         time.Now().UTC(),
		AccessCount:       0,
	}

	callCtx, cancel := m.callContext(ctx)
	defer cancel()
	if err := m.records.CreateRecord(callCtx, in.ID, record); err != nil {
		if errors.Is(err, ErrDuplicateID) {
			// Lost the race to another creation. The objects uploaded
			// above are unreferenced orphans; cleanup is out of scope.
			logCtx.Warn("Document id taken between check and write; uploaded renditions orphaned.")
			return nil, err
		}
		logCtx.Warn("Record write failed after both uploads; renditions orphaned.", "error", err)
		return nil, fmt.Errorf("%w: %s", ErrStorage, err)
	}

	if m.metrics != nil {
		m.metrics.DocumentsCreated.Inc()
	}
	logCtx.Info("Document created.", "pageCount", result.PageCount, "regions", len(result.Redactions))
	return &CreateOutput{PageCount: result.PageCount, Redactions: result.Redactions}, nil
}

// Access checks the presented password against the owner hash first, then
// the user hash. A password can only match one stored hash, so the order
// only determines which role is reported. On a match the access counter is
// incremented; on any failure the record is left untouched.
func (m *Manager) Access(ctx context.Context, id, password string) (*AccessOutput, error) {
	if id == "" || password == "" {
		return nil, fmt.Errorf("%w: document id and password are required", ErrValidation)
	}
	logCtx := slog.With("documentId", id)

	callCtx, cancel := m.callContext(ctx)
	defer cancel()
	record, err := m.records.GetRecord(callCtx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %s", ErrStorage, err)
	}

	var out *AccessOutput
	switch {
	case m.creds.Verify(password, record.OwnerPasswordHash):
		out = &AccessOutput{Filename: record.Filename, Location: record.OriginalLocation, Role: models.RoleOwner}
	case m.creds.Verify(password, record.UserPasswordHash):
		out = &AccessOutput{Filename: record.Filename, Location: record.RedactedLocation, Role: models.RoleUser}
	default:
		if m.metrics != nil {
			m.metrics.Accesses.WithLabelValues("none", "denied").Inc()
		}
		logCtx.Warn("Invalid password attempt.")
		return nil, ErrInvalidCredential
	}

	incCtx, cancelInc := m.callContext(ctx)
	defer cancelInc()
	if err := m.records.IncrementAccessCount(incCtx, id); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrStorage, err)
	}

	if m.metrics != nil {
		m.metrics.Accesses.WithLabelValues(string(out.Role), "granted").Inc()
	}
	logCtx.Info("Access granted.", "role", out.Role)
	return out, nil
}

func validateCreateInput(in CreateInput) error {
	switch {
	case in.ID == "":
		return fmt.Errorf("%w: document id is required", ErrValidation)
	case in.Filename == "":
		return fmt.Errorf("%w: filename is required", ErrValidation)
	case len(in.Data) == 0:
		return fmt.Errorf("%w: document bytes are required", ErrValidation)
	case in.OwnerPassword == "" || in.UserPassword == "":
		return fmt.Errorf("%w: both passwords are required", ErrValidation)
	case in.OwnerPassword == in.UserPassword:
		// Identical passwords would make the two tiers indistinguishable.
		return fmt.Errorf("%w: owner and user passwords must differ", ErrValidation)
	case in.BlurRadius != 0 && (in.BlurRadius < MinBlurRadius || in.BlurRadius > MaxBlurRadius):
		return fmt.Errorf("%w: blur radius must be between %d and %d", ErrValidation, MinBlurRadius, MaxBlurRadius)
	}
	return nil
}

func (m *Manager) checkIDAvailable(ctx context.Context, id string) error {
	callCtx, cancel := m.callContext(ctx)
	defer cancel()
	_, err := m.records.GetRecord(callCtx, id)
	switch {
	case err == nil:
		return fmt.Errorf("%w: %q", ErrDuplicateID, id)
	case errors.Is(err, ErrNotFound):
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrStorage, err)
	}
}

// uploadRenditions stores both byte streams concurrently. Object names are
// derived from the document id and filename, so renditions of different
// documents can never collide.
func (m *Manager) uploadRenditions(ctx context.Context, logCtx *slog.Logger, in CreateInput, result *pipeline.Result) (string, string, error) {
	var originalLoc, redactedLoc string

	eg, gctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		callCtx, cancel := m.callContext(gctx)
		defer cancel()
		loc, err := m.objects.Put(callCtx, renditionObjectName(in.ID, "original", in.Filename), result.Original, "application/pdf")
		if err != nil {
			return fmt.Errorf("original rendition: %w", err)
		}
		originalLoc = loc
		return nil
	})
	eg.Go(func() error {
		callCtx, cancel := m.callContext(gctx)
		defer cancel()
		loc, err := m.objects.Put(callCtx, renditionObjectName(in.ID, "redacted", in.Filename), result.Redacted, "application/pdf")
		if err != nil {
			return fmt.Errorf("redacted rendition: %w", err)
		}
		redactedLoc = loc
		return nil
	})
	if err := eg.Wait(); err != nil {
		logCtx.Error("Rendition upload failed; no record will be written.", "error", err)
		return "", "", fmt.Errorf("%w: %s", ErrStorage, err)
	}
	return originalLoc, redactedLoc, nil
}

func renditionObjectName(id, rendition, filename string) string {
	return fmt.Sprintf("pdfs/%s/%s_%s", id, rendition, filename)
}

func (m *Manager) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if m.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, m.timeout)
}
