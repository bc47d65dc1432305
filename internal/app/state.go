package app

// ViewState is the lifecycle of a dashboard view.
type ViewState string

const (
	StateUnauthorized ViewState = "unauthorized"
	StateAuthorized   ViewState = "authorized"
	StateLoading      ViewState = "loading"
	StateActive       ViewState = "active"
	StateError        ViewState = "error"
)

// StateFor returns the view state a finished cycle lands in.
func StateFor(err error) ViewState {
	if err == nil {
		return StateActive
	}
	if ClassifyError(err) == DashboardErrUnauthorized {
		return StateUnauthorized
	}
	return StateError
}
