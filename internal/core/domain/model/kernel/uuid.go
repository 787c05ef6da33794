package kernel

import (
	"fmt"

	"production/internal/pkg/errs"

	"github.com/google/uuid"
)

// ErrUUIDIsNotConstructed is returned when validating a zero-value UUID.
// Every aggregate constructor checks its identifiers with Validate, so a UUID
// that skipped the constructors is rejected before it reaches storage.
var ErrUUIDIsNotConstructed = errs.NewValueIsRequiredError("UUID must be created via NewUUID, UUIDFromString, or UUIDFromBytes")

// UUID is the identifier value object of the production domain. It wraps
// github.com/google/uuid and is used for both identities a production order
// carries: its own id and the orderRef of the upstream customer order.
//
// The zero value is invalid. Build a UUID with NewUUID, UUIDFromString,
// UUIDFromBytes or UUIDFromGoogle.
//
// UUID is a comparable value type. It is immutable and safe for concurrent
// use, and it can be used directly as a map key.
//
// Example usage:
//
//	// a fresh identity for a new production order
//	id := kernel.NewUUID()
//
//	// the orderId field of an incoming order-created notification
//	orderRef, err := kernel.UUIDFromString("0b5c5e0e-4d5a-4a0c-9b6e-2f0d3c1a7e11")
//	if err != nil {
//	    return fmt.Errorf("invalid orderId: %w", err)
//	}
//
//	// identities are compared with IsEqual
//	if existing.OrderRef().IsEqual(orderRef) {
//	    return existing, nil
//	}
type UUID struct {
	id uuid.UUID
}

// NewUUID generates a random (version 4) identifier. order.NewOrder uses it
// for the id of every new production order.
//
// Example:
//
//	id := kernel.NewUUID()
//	fmt.Println(id) // e.g. "7f1c2a9e-93b1-4c62-8a0d-5e6f4b3c2d10"
func NewUUID() UUID {
	return UUID{id: uuid.New()}
}

// UUIDFromString parses an identifier received from outside the domain, such
// as a path parameter or a notification payload. Accepted forms:
//   - "6ba7b810-9dad-11d1-80b4-00c04fd430c8"
//   - "{6ba7b810-9dad-11d1-80b4-00c04fd430c8}"
//   - "urn:uuid:6ba7b810-9dad-11d1-80b4-00c04fd430c8"
//   - "6ba7b8109dad11d180b400c04fd430c8"
//
// The nil UUID parses without error; Validate rejects it.
func UUIDFromString(s string) (UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return UUID{}, fmt.Errorf("invalid UUID format: %w", err)
	}
	return UUID{id: id}, nil
}

// UUIDFromBytes builds a UUID from its 16-byte binary form. Unlike
// UUIDFromString it rejects the nil UUID right away.
func UUIDFromBytes(b []byte) (UUID, error) {
	id, err := uuid.FromBytes(b)
	if err != nil {
		return UUID{}, fmt.Errorf("invalid UUID format: %w", err)
	}
	newID := UUID{id: id}
	if err = newID.Validate(); err != nil {
		return UUID{}, err
	}
	return newID, nil
}

// UUIDFromGoogle wraps an identifier that was already parsed, rejecting uuid.Nil.
// The persistence and HTTP layers receive uuid.UUID values and convert them here.
//
// Example:
//
//	id, err := kernel.UUIDFromGoogle(dto.ID)
//	if err != nil {
//	    return nil, err
//	}
func UUIDFromGoogle(id uuid.UUID) (UUID, error) {
	newID := UUID{id: id}
	if err := newID.Validate(); err != nil {
		return UUID{}, err
	}
	return newID, nil
}

// String returns the canonical lower-case hyphenated form. Log attributes,
// error messages and JSON payloads all use it.
func (u UUID) String() string {
	return u.id.String()
}

// Bytes returns the underlying uuid.UUID, for adapters that hand the value to
// gorm or oapi-codegen types.
func (u UUID) Bytes() uuid.UUID {
	return u.id
}

func (u UUID) IsEqual(other UUID) bool {
	return u.id == other.id
}

// IsZero reports whether u was never constructed.
func (u UUID) IsZero() bool {
	return u.id == uuid.Nil
}

// Validate returns ErrUUIDIsNotConstructed for the zero value.
//
// Example:
//
//	func (o *Order) setOrderRef(orderRef kernel.UUID) error {
//	    if err := orderRef.Validate(); err != nil {
//	        return err
//	    }
//	    o.orderRef = orderRef
//	    return nil
//	}
func (u UUID) Validate() error {
	if u.id == uuid.Nil {
		return ErrUUIDIsNotConstructed
	}
	return nil
}

// MarshalText lets UUID appear directly in event payloads and log attributes.
func (u UUID) MarshalText() ([]byte, error) {
	return u.id.MarshalText()
}

// UnmarshalText accepts every form UUIDFromString does, so order-created
// payloads decode straight into UUID fields.
func (u *UUID) UnmarshalText(data []byte) error {
	parsed, err := UUIDFromString(string(data))
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}
