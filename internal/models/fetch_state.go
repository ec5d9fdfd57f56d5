package models

// LoadingState is the lifecycle of a fetch as shown by a view.
type LoadingState string

const (
	StateIdle    LoadingState = "idle"
	StateLoading LoadingState = "loading"
	StateSuccess LoadingState = "success"
	StateError   LoadingState = "error"
)
