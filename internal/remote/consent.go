package remote

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/recipeway/recipeway/internal/family"
)

// User is the service's public view of an account.
type User struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

type putEdgeRequest struct {
	Status family.Status `json:"status"`
}

// GetUser fetches the account for email, or ErrNotFound.
func (c *Client) GetUser(ctx context.Context, email string) (*User, error) {
	var u User
	err := c.do(ctx, http.MethodGet, "/api/user/"+url.PathEscape(email), nil, &u)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// UserExists reports whether an account exists for email, keeping the
// missing-user case apart from transport failures.
func (c *Client) UserExists(ctx context.Context, email string) (bool, error) {
	_, err := c.GetUser(ctx, email)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// ListEdges returns every consent edge whose subject is subject.
func (c *Client) ListEdges(ctx context.Context, subject string) ([]family.Edge, error) {
	var edges []family.Edge
	err := c.do(ctx, http.MethodGet, "/api/consent/"+url.PathEscape(subject), nil, &edges)
	if err != nil {
		return nil, err
	}
	return edges, nil
}

// PutEdge writes one direction of a consent pair.
func (c *Client) PutEdge(ctx context.Context, subject, other string, status family.Status) error {
	path := "/api/consent/" + url.PathEscape(subject) + "/" + url.PathEscape(other)
	return c.do(ctx, http.MethodPut, path, putEdgeRequest{Status: status}, nil)
}

// DeleteEdge removes one direction of a consent pair.
func (c *Client) DeleteEdge(ctx context.Context, subject, other string) error {
	path := "/api/consent/" + url.PathEscape(subject) + "/" + url.PathEscape(other)
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}
