// Package integrations delivers finished RFP documents to external services
// the planner's team already lives in. Delivery is always best-effort: the
// planner has the document in hand by the time these run, so a failed target
// is logged and skipped, never surfaced.
package integrations

import (
	"context"
	"log"

	"github.com/barenakeddev/intelliplan-sub000/internal/models"
)

// Deliverer sends a generated RFP document to one external destination.
type Deliverer interface {
	// Name identifies the destination in logs.
	Name() string

	// Deliver pushes the document to the destination.
	Deliver(ctx context.Context, doc *models.RFPDocument) error
}

// Registry holds the configured delivery targets.
type Registry struct {
	targets []Deliverer
}

// NewRegistry creates an empty delivery registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds a delivery target.
func (r *Registry) Register(d Deliverer) {
	r.targets = append(r.targets, d)
	log.Printf("[Integrations] registered delivery target: %s", d.Name())
}

// Deliver fans the document out to every registered target. Per-target
// failures are logged and do not stop the remaining targets.
func (r *Registry) Deliver(ctx context.Context, doc *models.RFPDocument) {
	for _, target := range r.targets {
		if err := target.Deliver(ctx, doc); err != nil {
			log.Printf("WARN [Integrations] delivery to %s failed for conversation %s: %v", target.Name(), doc.ConversationID, err)
			continue
		}
		log.Printf("[Integrations] delivered RFP for conversation %s to %s", doc.ConversationID, target.Name())
	}
}
