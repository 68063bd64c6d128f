package resource

// Class partitions the pool: requests never cross classes.
type Class string

const (
	ClassParking Class = "parking"
	ClassDesk    Class = "desk"
	ClassTable   Class = "table"
	ClassRoom    Class = "room"
)

func (c Class) String() string {
	return string(c)
}

func (c Class) IsValid() bool {
	switch c {
	case ClassParking, ClassDesk, ClassTable, ClassRoom:
		return true
	default:
		return false
	}
}

// WholeDay reports whether a resource of this class holds at most one
// active reservation per date, with no sub-day granularity.
func (c Class) WholeDay() bool {
	switch c {
	case ClassParking, ClassDesk:
		return true
	default:
		return false
	}
}
