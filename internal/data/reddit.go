package data

import (
	"context"

	"github.com/redditor-labs/redditor/internal/biz/repo"
	"github.com/redditor-labs/redditor/reddit"
)

// redditRepo implements the content-posting collaborator on the Reddit API
type redditRepo struct {
	client *reddit.Client
}

// NewRedditRepo creates a Reddit-backed content repository
func NewRedditRepo(client *reddit.Client) repo.ContentRepo {
	return &redditRepo{client: client}
}

func (r *redditRepo) SubmitReply(ctx context.Context, targetID, text string) error {
	return r.client.SubmitComment(ctx, targetID, text)
}

func (r *redditRepo) CurrentIdentity(ctx context.Context) (string, error) {
	return r.client.Me(ctx)
}
