package message

type ErrMsg struct{ Err error }

func (e ErrMsg) Error() string { return e.Err.Error() }

// ItemsLoadedMsg carries the raw collection once it has been read from disk or generated
type ItemsLoadedMsg[T any] struct {
	Items  []T
	Source string
}

type ToastTimeoutMsg struct {
	ID int
}
