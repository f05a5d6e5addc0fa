package repo

import "context"

// ContentRepo is the content-posting collaborator interface.
// Responsible for submitting replies to the host platform and for
// resolving the agent's own identity.
type ContentRepo interface {
	// SubmitReply posts text as a reply attached to the target content
	SubmitReply(ctx context.Context, targetID, text string) error

	// CurrentIdentity returns the agent's own author identifier
	CurrentIdentity(ctx context.Context) (string, error)
}
