package rpc

import "context"

// Caller is the call capability a Method dispatches through, normally
// (*Session).Call.
type Caller func(ctx context.Context, method string, args ...any) (any, error)

// Method is an immutable proxy for a dotted remote method name. Extending the
// name and invoking the method are distinct operations: Get never performs a
// call, and Call never extends the name.
type Method struct {
	caller Caller
	name   string
}

// NewMethod creates a proxy dispatching name through caller.
func NewMethod(caller Caller, name string) Method {
	return Method{caller: caller, name: name}
}

// Name returns the accumulated dotted method name.
func (m Method) Name() string {
	return m.name
}

// Get returns a new proxy with the dotted name extended by name. The
// receiver is unchanged.
func (m Method) Get(name string) Method {
	return Method{caller: m.caller, name: m.name + "." + name}
}

// Call invokes the accumulated method name with the given positional
// arguments and returns the caller's result directly.
func (m Method) Call(ctx context.Context, args ...any) (any, error) {
	return m.caller(ctx, m.name, args...)
}
