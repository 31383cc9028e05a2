// Package resources fetches pages of Attio data for a drill context. Each resource kind
// has its own pager; Registry picks one from the context.
package resources

import (
	"context"
	"fmt"
	"net/url"

	"github.com/attio-tui/attio-tui/internal/model"
)

// API is the subset of api.Client the pagers use.
type API interface {
	Get(ctx context.Context, path string, query url.Values, out any) error
	Query(ctx context.Context, path string, payload any, out any) error
	Post(ctx context.Context, path string, payload any, out any) error
	Patch(ctx context.Context, path string, payload any, out any) error
	Delete(ctx context.Context, path string) error
}

type Pager interface {
	FetchPage(ctx context.Context, dc model.DrillContext, cursor string) (model.Page, error)
}

type Prober interface {
	ProbeStatus(ctx context.Context, listID string) (*model.Attribute, error)
}

// PagerFunc adapts a function to Pager.
type PagerFunc func(ctx context.Context, dc model.DrillContext, cursor string) (model.Page, error)

func (f PagerFunc) FetchPage(ctx context.Context, dc model.DrillContext, cursor string) (model.Page, error) {
	return f(ctx, dc, cursor)
}

type Registry struct {
	pagers map[model.Resource]Pager
}

// NewRegistry wires one pager per resource kind. limit <= 0 uses the default page size.
func NewRegistry(c API, limit int) *Registry {
	return &Registry{pagers: map[model.Resource]Pager{
		model.ResourceObjects:  objectsPager{api: c, limit: limit},
		model.ResourceRecords:  recordsPager{api: c, limit: limit},
		model.ResourceLists:    listsPager{api: c, limit: limit},
		model.ResourceEntries:  entriesPager{api: c, limit: limit},
		model.ResourceStatuses: statusesPager{api: c, limit: limit},
		model.ResourceNotes:    notesPager{api: c, limit: limit},
		model.ResourceTasks:    tasksPager{api: c, limit: limit},
		model.ResourceMeetings: meetingsPager{api: c, limit: limit},
		model.ResourceWebhooks: webhooksPager{api: c, limit: limit},
	}}
}

// Register replaces the pager for r.
func (r *Registry) Register(res model.Resource, p Pager) {
	r.pagers[res] = p
}

func (r *Registry) FetchPage(ctx context.Context, dc model.DrillContext, cursor string) (model.Page, error) {
	p, ok := r.pagers[dc.Resource()]
	if !ok {
		return model.Page{}, fmt.Errorf("no pager for %s", dc.Resource())
	}
	return p.FetchPage(ctx, dc, cursor)
}
