package domain

import "time"

// AuditAction names a mutating console operation.
type AuditAction string

const (
	AuditCreate  AuditAction = "create"
	AuditUpdate  AuditAction = "update"
	AuditDelete  AuditAction = "delete"
	AuditVerify  AuditAction = "verify"
	AuditReject  AuditAction = "reject"
	AuditResolve AuditAction = "resolve"
)

// AuditEntry records one admin action taken through the console.
// Entries are written asynchronously; ordering is guaranteed per actor only.
type AuditEntry struct {
	Actor     string      `json:"actor" bson:"actor"`
	Action    AuditAction `json:"action" bson:"action"`
	Entity    string      `json:"entity" bson:"entity"`
	EntityID  int64       `json:"entity_id" bson:"entity_id"`
	Detail    string      `json:"detail,omitempty" bson:"detail,omitempty"`
	Timestamp time.Time   `json:"timestamp" bson:"timestamp"`
}
