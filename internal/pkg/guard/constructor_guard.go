// Package guard ensures value objects, entities and commands are only created
// through their designated constructor functions, never as bare zero values.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when a nil error is
// passed as the validation error, so validation always fails with a
// meaningful message.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard detects whether the embedding struct was created through
// its constructor. The zero value is "not constructed"; only
// NewConstructorGuard produces a constructed guard.
//
// Embed a ConstructorGuard in a struct and call its Validate method from the
// struct's own Validate to reject zero-value instances:
//
//	type ReconcilePaymentCommand struct {
//	    providerOrderRef string
//	    guard            guard.ConstructorGuard
//	}
//
//	func (c ReconcilePaymentCommand) Validate() error {
//	    return c.guard.Validate(ErrReconcilePaymentCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard marks an object as properly constructed. Call it inside
// the constructor of the guarded type.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil when the guarded object was built via its constructor.
// Otherwise it returns validationError, or ErrDefaultConstructorGuard when
// validationError is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
