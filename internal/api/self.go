package api

import "context"

// Self describes the workspace an API key belongs to.
type Self struct {
	Active        bool   `json:"active"`
	Scope         string `json:"scope"`
	WorkspaceID   string `json:"workspace_id"`
	WorkspaceName string `json:"workspace_name"`
	WorkspaceSlug string `json:"workspace_slug"`
}

// Self identifies the current API key.
func (c Client) Self(ctx context.Context) (Self, error) {
	var out Self
	if err := c.Get(ctx, "/v2/self", nil, &out); err != nil {
		return Self{}, err
	}
	return out, nil
}
