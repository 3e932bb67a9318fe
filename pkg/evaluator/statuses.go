package evaluator

import (
	"sort"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/cloudformation/types"
	"github.com/samber/lo"

	errUtils "github.com/cloudposse/driftwatch/errors"
)

// DefaultMaxDriftAge is how old a drift check may be before the stack is
// re-checked.
const DefaultMaxDriftAge = 48 * time.Hour

// DefaultHealthyStatuses are the lifecycle states that do not page anyone:
// successful terminal states plus benign in-progress states.
// UPDATE_ROLLBACK_COMPLETE counts as healthy because the stack is stable at
// the previous version; failed and rollback-in-flight states are not.
var DefaultHealthyStatuses = []types.StackStatus{
	types.StackStatusCreateComplete,
	types.StackStatusUpdateComplete,
	types.StackStatusUpdateRollbackComplete,
	types.StackStatusImportComplete,
	types.StackStatusImportRollbackComplete,
	types.StackStatusDeleteComplete,
	types.StackStatusCreateInProgress,
	types.StackStatusDeleteInProgress,
	types.StackStatusUpdateInProgress,
	types.StackStatusUpdateCompleteCleanupInProgress,
	types.StackStatusUpdateRollbackCompleteCleanupInProgress,
	types.StackStatusReviewInProgress,
	types.StackStatusImportInProgress,
}

// DefaultDriftCheckableStatuses are the states CloudFormation accepts
// DetectStackDrift in.
var DefaultDriftCheckableStatuses = []types.StackStatus{
	types.StackStatusCreateComplete,
	types.StackStatusUpdateComplete,
	types.StackStatusUpdateRollbackComplete,
	types.StackStatusImportComplete,
	types.StackStatusImportRollbackComplete,
}

// ParseStackStatuses converts configured status names into SDK values,
// rejecting names CloudFormation does not define.
func ParseStackStatuses(names []string) ([]types.StackStatus, error) {
	if len(names) == 0 {
		return nil, nil
	}

	known := statusSet(types.StackStatus("").Values())

	statuses := make([]types.StackStatus, 0, len(names))
	for _, name := range names {
		status := types.StackStatus(strings.ToUpper(strings.TrimSpace(name)))
		if _, ok := known[status]; !ok {
			return nil, errUtils.Build(errUtils.ErrInvalidStackStatus).
				WithContext("status", name).
				WithHintf("Valid statuses: %s", strings.Join(knownStatusNames(known), ", ")).
				Err()
		}
		statuses = append(statuses, status)
	}
	return statuses, nil
}

func knownStatusNames(known map[types.StackStatus]struct{}) []string {
	names := lo.Map(lo.Keys(known), func(s types.StackStatus, _ int) string {
		return string(s)
	})
	sort.Strings(names)
	return names
}
