package guard

// Action is the kind of access an operation performs.
type Action string

const (
	ActionRead   Action = "read"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Operation describes a route for the guard chain.
type Operation struct {
	Name   string
	Action Action
	// Public operations skip authentication entirely.
	Public bool
	// OwnershipChecked enables the ownership guard. Create operations are
	// checked against the store named in the request, every other action
	// against the product in the path.
	OwnershipChecked bool
}

// Public describes an operation open to anonymous callers.
func Public(name string) Operation {
	return Operation{Name: name, Action: ActionRead, Public: true}
}

// Protected describes an operation that requires an authenticated caller.
func Protected(name string, action Action) Operation {
	return Operation{Name: name, Action: action}
}

// Owned describes a protected operation that also requires the caller to own
// the target store or product.
func Owned(name string, action Action) Operation {
	return Operation{Name: name, Action: action, OwnershipChecked: true}
}
