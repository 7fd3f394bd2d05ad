package platform

import (
	"context"
	"fmt"
)

// Status is the serving state of a remote entity.
type Status string

const (
	StatusEnabled  Status = "enabled"
	StatusPaused   Status = "paused"
	StatusDisabled Status = "disabled"
)

// ParseStatus maps a declared sheet value to a Status. An empty value
// means paused; anything else unknown is an error the caller records.
func ParseStatus(raw string) (Status, error) {
	switch Status(raw) {
	case "":
		return StatusPaused, nil
	case StatusEnabled, StatusPaused, StatusDisabled:
		return Status(raw), nil
	default:
		return "", fmt.Errorf("unknown status %q", raw)
	}
}

// Entity is the common capability surface over the two remote
// representations: a live entity fetched from the platform and a
// read-only snapshot taken from a report extract. Reconciliation code
// never branches on which one it holds.
type Entity interface {
	// ID returns the entity identifier.
	ID() string
	// GroupID returns the identifier of the owning group.
	GroupID() string
	// Status returns the entity's serving state.
	Status() Status
	// Labels returns the entity's free-text labels.
	Labels() []string
	// ApprovalStatus returns the platform's approval verdict.
	ApprovalStatus() string
}

// RemoteEntity is a live entity resolved from the platform.
type RemoteEntity struct {
	EntityID     string   `json:"id"`
	Group        string   `json:"group_id"`
	EntityStatus Status   `json:"status"`
	EntityLabels []string `json:"labels"`
	Approval     string   `json:"approval_status"`
}

func (e *RemoteEntity) ID() string             { return e.EntityID }
func (e *RemoteEntity) GroupID() string        { return e.Group }
func (e *RemoteEntity) Status() Status         { return e.EntityStatus }
func (e *RemoteEntity) Labels() []string       { return e.EntityLabels }
func (e *RemoteEntity) ApprovalStatus() string { return e.Approval }

// ReportSnapshot is an entity view reconstructed from a report extract.
// It satisfies the same capability surface as a live entity but cannot
// be mutated; mutations always go through the Client by identifier.
type ReportSnapshot struct {
	EntityID string
	Group    string
	State    Status
	Tags     []string
	Approval string
}

func (s *ReportSnapshot) ID() string             { return s.EntityID }
func (s *ReportSnapshot) GroupID() string        { return s.Group }
func (s *ReportSnapshot) Status() Status         { return s.State }
func (s *ReportSnapshot) Labels() []string       { return s.Tags }
func (s *ReportSnapshot) ApprovalStatus() string { return s.Approval }

// CreateFields are the validated inputs for entity creation.
type CreateFields struct {
	FinalURL         string            `json:"final_url"`
	MobileFinalURL   string            `json:"mobile_final_url,omitempty"`
	Headline1        string            `json:"headline1"`
	Headline2        string            `json:"headline2"`
	Description      string            `json:"description"`
	Path1            string            `json:"path1,omitempty"`
	Path2            string            `json:"path2,omitempty"`
	CustomParameters map[string]string `json:"custom_parameters,omitempty"`
}

// CreateResult is the outcome of an entity creation attempt. When OK is
// false, Errors carries the platform's diagnostics.
type CreateResult struct {
	OK     bool
	Entity *RemoteEntity
	Errors []string
}

// Client is the contract against the remote entity platform. All calls
// are synchronous; retries and backoff are the implementation's concern,
// the engine only sees "succeeded" or "failed now".
type Client interface {
	// FindEntity resolves an entity by identity, or nil when absent.
	FindEntity(ctx context.Context, groupID, entityID string) (Entity, error)
	// CreateEntity attempts to create an entity in the given group.
	CreateEntity(ctx context.Context, groupID string, fields CreateFields) (*CreateResult, error)
	// FindParentGroup reports whether the group exists.
	FindParentGroup(ctx context.Context, groupID string) (bool, error)
	// SetStatus changes an entity's serving state.
	SetStatus(ctx context.Context, groupID, entityID string, status Status) error
	// EnsureLabel creates the label definition if needed.
	EnsureLabel(ctx context.Context, name string) (bool, error)
	// ApplyLabel attaches a label to an entity.
	ApplyLabel(ctx context.Context, groupID, entityID, name string) error
	// RemoveLabel detaches a label from an entity.
	RemoveLabel(ctx context.Context, groupID, entityID, name string) error
}
