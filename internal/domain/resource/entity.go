package resource

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyLabel      = errors.New("resource label cannot be empty")
	ErrLabelTooLong    = errors.New("resource label is too long (max 64 characters)")
	ErrInvalidClass    = errors.New("unknown resource class")
	ErrInvalidCapacity = errors.New("capacity must be at least 1")
)

const MaxLabelLength = 64

// Resource is one bookable unit: a parking slot, desk, table or room.
// Everything but the active flag is immutable after creation.
type Resource struct {
	id        uuid.UUID
	class     Class
	label     string
	capacity  int
	active    bool
	createdAt time.Time
}

func NewResource(class Class, label string, capacity int, now time.Time) (*Resource, error) {
	label = strings.TrimSpace(label)
	if err := validateLabel(label); err != nil {
		return nil, err
	}
	if !class.IsValid() {
		return nil, ErrInvalidClass
	}
	if capacity < 1 {
		return nil, ErrInvalidCapacity
	}

	return &Resource{
		id:        uuid.New(),
		class:     class,
		label:     label,
		capacity:  capacity,
		active:    true,
		createdAt: now,
	}, nil
}

func Reconstruct(id uuid.UUID, class Class, label string, capacity int, active bool, createdAt time.Time) *Resource {
	return &Resource{
		id:        id,
		class:     class,
		label:     label,
		capacity:  capacity,
		active:    active,
		createdAt: createdAt,
	}
}

func validateLabel(label string) error {
	if label == "" {
		return ErrEmptyLabel
	}
	if len(label) > MaxLabelLength {
		return ErrLabelTooLong
	}
	return nil
}

func (r *Resource) Retire() {
	r.active = false
}

func (r *Resource) Activate() {
	r.active = true
}

func (r *Resource) ID() uuid.UUID        { return r.id }
func (r *Resource) Class() Class         { return r.class }
func (r *Resource) Label() string        { return r.label }
func (r *Resource) Capacity() int        { return r.capacity }
func (r *Resource) Active() bool         { return r.active }
func (r *Resource) CreatedAt() time.Time { return r.createdAt }
