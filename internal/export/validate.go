package export

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// Validator checks the session credential against the local validation
// endpoint. Credentials travel via the client's cookie jar.
type Validator struct {
	httpClient  *http.Client
	validateURL string
	sessions    SessionStore
}

// NewValidator creates a validator for the given endpoint.
func NewValidator(httpClient *http.Client, validateURL string, sessions SessionStore) *Validator {
	return &Validator{
		httpClient:  httpClient,
		validateURL: validateURL,
		sessions:    sessions,
	}
}

// Validate reports whether the stored session is usable. An empty stored
// credential short-circuits without a network call.
func (v *Validator) Validate(ctx context.Context) (bool, string) {
	if v.sessions.Get() == "" {
		return false, "세션이 설정되지 않았습니다"
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.validateURL, nil)
	if err != nil {
		return false, fmt.Sprintf("세션 검증 요청 실패: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := v.httpClient.Do(req)
	if err != nil {
		return false, fmt.Sprintf("세션 검증 오류: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return false, fmt.Sprintf("세션 검증 응답 오류: %v", err)
	}

	var out struct {
		Valid   bool   `json:"valid"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return false, fmt.Sprintf("세션 검증 응답 파싱 실패: %v", err)
	}

	return out.Valid, out.Message
}
