package threads

// Batch runs body with an unbounded loop budget, then suspends once.
func (t *Thread) Batch(body func() error) error {
	return t.BatchN(Unbounded, body)
}

// BatchN pushes budget n for the duration of body. The budget is popped on
// every exit path. A normal exit always suspends the Thread once, even if no
// loop inside ran out of budget; a failing body propagates without
// suspending.
func (t *Thread) BatchN(n int, body func() error) (err error) {
	if err := t.Budgets.Push(n); err != nil {
		return err
	}
	depth := t.Budgets.Depth()
	func() {
		defer t.Budgets.truncate(depth - 1)
		err = body()
	}()
	if err != nil {
		return err
	}
	t.Suspend()
	return nil
}
