package resources

import (
	"context"
	"net/url"
	"strings"

	"golang.org/x/sync/singleflight"

	"github.com/attio-tui/attio-tui/internal/model"
)

// StatusProber looks up a list's first status-typed attribute. Concurrent probes for
// the same list share one request.
type StatusProber struct {
	api   API
	group singleflight.Group
}

func NewStatusProber(c API) *StatusProber {
	return &StatusProber{api: c}
}

// ProbeStatus returns nil (and no error) when the list has no status attribute.
func (p *StatusProber) ProbeStatus(ctx context.Context, listID string) (*model.Attribute, error) {
	listID = strings.TrimSpace(listID)
	v, err, _ := p.group.Do(listID, func() (any, error) {
		var env listEnvelope
		if err := p.api.Get(ctx, "/v2/lists/"+url.PathEscape(listID)+"/attributes", nil, &env); err != nil {
			return nil, err
		}
		for _, raw := range env.Data {
			if str(raw, "type") != "status" || str(raw, "is_archived") == "true" {
				continue
			}
			return &model.Attribute{
				ID:    str(raw, "id", "attribute_id"),
				Slug:  str(raw, "api_slug"),
				Title: str(raw, "title"),
				Type:  "status",
			}, nil
		}
		return (*model.Attribute)(nil), nil
	})
	if err != nil {
		return nil, err
	}
	attr, _ := v.(*model.Attribute)
	return attr, nil
}
