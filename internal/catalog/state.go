package catalog

import "github.com/angelmondragon/shopfront/pkg/enums"

// UnknownErrorReason is used when a failure carries no usable text.
const UnknownErrorReason = "Unknown error"

// FetchState is a tagged variant over Idle, Loading, Success(items) and Failed(reason).
// Only the payload that belongs to Status is populated.
type FetchState struct {
	Status enums.FetchStatus `json:"status"`
	Items  []Item            `json:"items,omitempty"`
	Reason string            `json:"reason,omitempty"`
}

func Idle() FetchState { return FetchState{Status: enums.FetchStatusIdle} }

func Loading() FetchState { return FetchState{Status: enums.FetchStatusLoading} }

func Succeeded(items []Item) FetchState {
	if items == nil {
		items = []Item{}
	}
	return FetchState{Status: enums.FetchStatusSuccess, Items: items}
}

func Failed(reason string) FetchState {
	if reason == "" {
		reason = UnknownErrorReason
	}
	return FetchState{Status: enums.FetchStatusFailed, Reason: reason}
}

func (s FetchState) IsLoading() bool { return s.Status == enums.FetchStatusLoading }

func (s FetchState) IsSuccess() bool { return s.Status == enums.FetchStatusSuccess }

func (s FetchState) IsFailed() bool { return s.Status == enums.FetchStatusFailed }

func (s FetchState) clone() FetchState {
	if s.Items == nil {
		return s
	}
	items := make([]Item, len(s.Items))
	copy(items, s.Items)
	s.Items = items
	return s
}
