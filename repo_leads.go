package catalog

import (
	"context"

	"github.com/goliatone/go-errors"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Leads persists write-once lead email records
type Leads interface {
	Create(ctx context.Context, lead *LeadEmail) (*LeadEmail, error)
}

type leads struct {
	db *bun.DB
}

var _ Leads = (*leads)(nil)

// NewLeadsRepository creates the Bun backed Leads repository
func NewLeadsRepository(db *bun.DB) Leads {
	return &leads{db: db}
}

func (r *leads) Create(ctx context.Context, lead *LeadEmail) (*LeadEmail, error) {
	if lead.ID == uuid.Nil {
		lead.ID = uuid.New()
	}

	if _, err := r.db.NewInsert().Model(lead).Exec(ctx); err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to store lead email")
	}

	return lead, nil
}
