package resources

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"github.com/attio-tui/attio-tui/internal/model"
)

// DefaultWebhookEvents are subscribed when a webhook is created from the TUI.
var DefaultWebhookEvents = []string{"record.created", "record.updated", "record.deleted"}

type Webhooks struct {
	api API
}

func NewWebhooks(c API) Webhooks { return Webhooks{api: c} }

type singleEnvelope struct {
	Data map[string]any `json:"data"`
}

func (w Webhooks) Create(ctx context.Context, targetURL string) (model.Item, error) {
	subs := make([]map[string]any, 0, len(DefaultWebhookEvents))
	for _, ev := range DefaultWebhookEvents {
		subs = append(subs, map[string]any{"event_type": ev, "filter": nil})
	}
	payload := map[string]any{"data": map[string]any{
		"target_url":    strings.TrimSpace(targetURL),
		"subscriptions": subs,
	}}
	var env singleEnvelope
	if err := w.api.Post(ctx, "/v2/webhooks", payload, &env); err != nil {
		return model.Item{}, err
	}
	return toItem(model.ResourceWebhooks, env.Data), nil
}

func (w Webhooks) Update(ctx context.Context, id, targetURL string) (model.Item, error) {
	if strings.TrimSpace(id) == "" {
		return model.Item{}, errors.New("missing webhook id")
	}
	payload := map[string]any{"data": map[string]any{"target_url": strings.TrimSpace(targetURL)}}
	var env singleEnvelope
	if err := w.api.Patch(ctx, "/v2/webhooks/"+url.PathEscape(id), payload, &env); err != nil {
		return model.Item{}, err
	}
	return toItem(model.ResourceWebhooks, env.Data), nil
}

func (w Webhooks) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return errors.New("missing webhook id")
	}
	return w.api.Delete(ctx, "/v2/webhooks/"+url.PathEscape(id))
}
