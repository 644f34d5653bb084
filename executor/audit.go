package executor

import (
	"context"

	"github.com/qjebbs/go-qb"
)

// Action is the kind of change reported to the audit hook.
type Action string

// audit actions
const (
	ActionAdd    Action = "add"
	ActionEdit   Action = "edit"
	ActionDelete Action = "delete"
)

// AuditEvent describes a successful change.
type AuditEvent struct {
	Action Action
	Table  string
	// ID is the inserted id of an INSERT, or the id an UPDATE / DELETE
	// was restricted to.
	ID any
	// Changes holds the changed fields of an UPDATE.
	Changes []qb.Diff
	// Caller is the "file:line" executing the statement.
	Caller string
}

// auditEvent returns the event of s, or false if it should not be audited.
func auditEvent(s *qb.Statement, r *Result, c caller) (AuditEvent, bool) {
	e := AuditEvent{
		Table:  s.Table,
		ID:     s.ID,
		Caller: c.String(),
	}
	switch s.Kind {
	case qb.KindInsert:
		e.Action = ActionAdd
		switch {
		case r.LastInsertID > 0:
			e.ID = r.LastInsertID
		case r.InsertedID != nil:
			e.ID = r.InsertedID
		}
	case qb.KindUpdate:
		e.Action = ActionEdit
		e.Changes = s.Audit
	case qb.KindDelete:
		e.Action = ActionDelete
	default:
		return e, false
	}
	// updates and deletes not restricted to a single row are not audited
	if e.Action != ActionAdd && e.ID == nil {
		return e, false
	}
	return e, true
}

func (o *Options) dispatch(ctx context.Context, s *qb.Statement, r *Result, c caller) {
	if o.audit == nil {
		return
	}
	if e, ok := auditEvent(s, r, c); ok {
		o.audit(ctx, e)
	}
}
