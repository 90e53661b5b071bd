package models

import "time"

// Revision kinds and actions recorded by the history store.
const (
	RevisionKindPain      = "pain"
	RevisionKindTranslate = "translate"
	RevisionKindReaction  = "reaction"
	RevisionKindComment   = "comment"

	RevisionActionCreate = "create"
	RevisionActionUpdate = "update"
	RevisionActionDelete = "delete"
)

// Revision is one append-only history document (MongoDB). Revisions are
// numbered from 1 per (kind, entity id) and never rewritten.
type Revision struct {
	Kind       string      `bson:"kind" json:"kind"`
	EntityID   uint        `bson:"entity_id" json:"entity_id"`
	Revision   int         `bson:"revision" json:"revision"`
	Action     string      `bson:"action" json:"action"`
	Snapshot   interface{} `bson:"snapshot" json:"snapshot"`
	RecordedAt time.Time   `bson:"recorded_at" json:"recorded_at"`
}
