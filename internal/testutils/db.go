package testutils

import (
	"github.com/google/uuid"
	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"
)

// NewUserRecordID returns a fresh record ID in the user table, shaped like
// the IDs both user stores hand out.
func NewUserRecordID() *surrealmodels.RecordID {
	id := surrealmodels.NewRecordID("user", uuid.NewString())
	return &id
}
