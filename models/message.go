package models

// ErrorResponse is the failure envelope: a human-readable msg plus the
// underlying error text when a store failure is echoed back.
type ErrorResponse struct {
	Msg   string `json:"msg"`
	Error string `json:"error,omitempty"`
}

// MessageResponse is the bare confirmation envelope.
type MessageResponse struct {
	Msg string `json:"msg"`
}

// OKRResponse wraps a single OKR with a confirmation message.
type OKRResponse struct {
	Msg string `json:"msg"`
	OKR *OKR   `json:"okr"`
}

type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

type OKRListResponse struct {
	OKRs       []OKR      `json:"okrs"`
	Pagination Pagination `json:"pagination"`
}

type OwnerOKRsResponse struct {
	OKRs  []OKR `json:"okrs"`
	Count int   `json:"count"`
}

// OKRStats is the summary produced by a full scan over matching OKRs.
type OKRStats struct {
	Total           int            `json:"total"`
	ByStatus        map[string]int `json:"byStatus"`
	AverageProgress int            `json:"averageProgress"`
	Completed       int            `json:"completed"`
	InProgress      int            `json:"inProgress"`
}

type AuthResponse struct {
	Msg   string       `json:"msg"`
	Token string       `json:"token,omitempty"`
	User  *UserSummary `json:"user"`
}

func NewErrorResponse(msg string, err error) ErrorResponse {
	resp := ErrorResponse{Msg: msg}
	if err != nil {
		resp.Error = err.Error()
	}
	return resp
}

func NewMessageResponse(msg string) MessageResponse {
	return MessageResponse{Msg: msg}
}

func NewOKRResponse(msg string, okr *OKR) OKRResponse {
	return OKRResponse{Msg: msg, OKR: okr}
}
