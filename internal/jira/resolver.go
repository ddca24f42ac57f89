package jira

import "context"

// IDResolver maps an issue key to its id.
type IDResolver interface {
	ResolveIssueID(ctx context.Context, issueName string) (string, error)
}

// CachingResolver remembers successful lookups for the life of one run.
// It is not safe for concurrent use.
type CachingResolver struct {
	next  IDResolver
	cache map[string]string
}

// NewCachingResolver wraps next with a lookup cache.
func NewCachingResolver(next IDResolver) *CachingResolver {
	return &CachingResolver{next: next, cache: map[string]string{}}
}

// ResolveIssueID implements IDResolver.
func (r *CachingResolver) ResolveIssueID(ctx context.Context, issueName string) (string, error) {
	if id, ok := r.cache[issueName]; ok {
		return id, nil
	}
	id, err := r.next.ResolveIssueID(ctx, issueName)
	if err != nil {
		return "", err
	}
	r.cache[issueName] = id
	return id, nil
}
