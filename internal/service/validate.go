package service

import (
	"github.com/projectflow/projectflow/internal/structs"
	"github.com/projectflow/projectflow/pkg/ecode"
)

// validateEnums rejects unknown status or priority values. Bound requests
// already enforce this at the edge; callers that skip the HTTP surface get
// the same rule here.
func validateEnums(status structs.Status, priority structs.Priority) error {
	if status != "" && !status.Valid() {
		return ecode.Validation("invalid status")
	}
	if priority != "" && !priority.Valid() {
		return ecode.Validation("invalid priority")
	}
	return nil
}
