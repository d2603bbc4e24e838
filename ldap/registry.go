package ldap

import (
	"sync"

	"go.uber.org/zap"
)

// ControlFactory decodes and encodes the controlValue of one control type.
type ControlFactory interface {
	// OID returns the controlType this factory serves.
	OID() string
	// NewValue decodes a controlValue. value is nil when the control carries
	// none. A failure is scoped to this one control.
	NewValue(value []byte) (ControlValue, error)
	// EncodeValue renders a controlValue. A nil result omits the
	// controlValue from the wire.
	EncodeValue(v ControlValue) ([]byte, error)
}

// ExtOpFactory decodes and encodes the payload of one extended operation.
type ExtOpFactory interface {
	// OID returns the requestName/responseName this factory serves.
	OID() string
	// NewRequest decodes a requestValue. Operations without a request side
	// return nil, nil.
	NewRequest(value []byte) (ExtendedValue, error)
	// NewResponse decodes a responseValue.
	NewResponse(value []byte) (ExtendedValue, error)
	// EncodeValue renders a payload. A nil result omits the value from the
	// wire.
	EncodeValue(v ExtendedValue) ([]byte, error)
}

// Registry maps OIDs to control and extended operation factories. It is
// expected to be populated during startup and read-only afterwards; lookups
// may run concurrently with each other.
type Registry struct {
	mu       sync.RWMutex
	controls map[string]ControlFactory
	extops   map[string]ExtOpFactory
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		controls: map[string]ControlFactory{},
		extops:   map[string]ExtOpFactory{},
	}
}

// RegisterControl inserts or replaces the factory for its OID.
// It reports whether a previous registration was displaced.
func (r *Registry) RegisterControl(f ControlFactory) (replaced bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, replaced = r.controls[f.OID()]
	r.controls[f.OID()] = f
	if replaced {
		logger.Warn("control factory replaced", zap.String("oid", f.OID()))
	}
	return replaced
}

// RegisterExtOp inserts or replaces the factory for its OID.
// It reports whether a previous registration was displaced.
func (r *Registry) RegisterExtOp(f ExtOpFactory) (replaced bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, replaced = r.extops[f.OID()]
	r.extops[f.OID()] = f
	if replaced {
		logger.Warn("extended operation factory replaced", zap.String("oid", f.OID()))
	}
	return replaced
}

// Control looks up the control factory for oid.
func (r *Registry) Control(oid string) (ControlFactory, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.controls[oid]
	return f, ok
}

// ExtOp looks up the extended operation factory for oid.
func (r *Registry) ExtOp(oid string) (ExtOpFactory, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.extops[oid]
	return f, ok
}
