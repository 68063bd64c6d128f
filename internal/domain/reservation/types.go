package reservation

type Status string

const (
	StatusActive   Status = "active"
	StatusReleased Status = "released"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusActive, StatusReleased:
		return true
	default:
		return false
	}
}
