package stageconfigs

import (
	"github.com/reusee/stagecoach/cmds"
	"github.com/reusee/stagecoach/configs"
	"github.com/reusee/stagecoach/threads"
	"github.com/reusee/stagecoach/vars"
)

// BatchBudget is the loop budget pushed by a batch scope without an explicit one.
type BatchBudget int

var batchBudgetFlag = cmds.Var[int]("-batch-budget")

func (Module) BatchBudget(
	loader configs.Loader,
) BatchBudget {
	n := vars.FirstNonZero(
		*batchBudgetFlag,
		configs.First[int](loader, "batch_budget"),
	)
	if n <= 0 {
		n = threads.Unbounded
	}
	return BatchBudget(n)
}
