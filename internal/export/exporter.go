package export

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/sangwon514/room-search-map/internal/domain"
)

// DefaultFilename is used when the response carries no usable
// Content-Disposition header.
const DefaultFilename = "월별예약률.xlsx"

// Precondition failures. Checked in order before any network call; each
// maps to a distinct user-visible rejection.
var (
	ErrSessionRequired = errors.New("세션이 설정되지 않았습니다")
	ErrNoRooms         = errors.New("다운로드할 데이터가 없습니다")
	ErrInvertedPeriod  = errors.New("시작 기간이 종료 기간보다 늦을 수 없습니다")
)

// ErrSessionInvalid marks a server-side session rejection. The local
// credential has already been cleared when this is returned; the user
// must re-authenticate.
var ErrSessionInvalid = errors.New("세션이 만료되었거나 유효하지 않습니다")

// FileSaver lands the spreadsheet bytes somewhere the user can open them.
type FileSaver interface {
	Save(filename string, r io.Reader) (path string, err error)
}

// DirSaver writes downloads into a directory.
type DirSaver struct {
	Dir string
}

func (s DirSaver) Save(filename string, r io.Reader) (string, error) {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", fmt.Errorf("can't create download dir: %w", err)
	}

	path := filepath.Join(s.Dir, filepath.Base(filename))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("can't create file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return "", fmt.Errorf("can't write file: %w", err)
	}
	return path, nil
}

type roomRef struct {
	RID  int64  `json:"rid"`
	Name string `json:"rname"`
}

type downloadRequest struct {
	RoomList   []roomRef `json:"room_list"`
	StartYear  int       `json:"start_year"`
	StartMonth int       `json:"start_month"`
	EndYear    int       `json:"end_year"`
	EndMonth   int       `json:"end_month"`
}

// Exporter issues the one-shot reservation-rate download.
type Exporter struct {
	httpClient  *http.Client
	downloadURL string
	sessions    SessionStore
	saver       FileSaver
}

// NewExporter creates an exporter for the given endpoint.
func NewExporter(httpClient *http.Client, downloadURL string, sessions SessionStore, saver FileSaver) *Exporter {
	return &Exporter{
		httpClient:  httpClient,
		downloadURL: downloadURL,
		sessions:    sessions,
		saver:       saver,
	}
}

// Download checks the preconditions, requests the spreadsheet for the
// given rooms and period, and saves it. Returns the saved path.
//
// A 401/403 response, or any failure whose message mentions the session,
// clears the stored credential and returns ErrSessionInvalid (wrapped);
// other failures leave the session intact.
func (e *Exporter) Download(ctx context.Context, rooms []domain.Room, period domain.Period) (string, error) {
	if e.sessions.Get() == "" {
		return "", ErrSessionRequired
	}
	if len(rooms) == 0 {
		return "", ErrNoRooms
	}
	if period.Inverted() {
		return "", ErrInvertedPeriod
	}

	reqBody := downloadRequest{
		RoomList:   make([]roomRef, 0, len(rooms)),
		StartYear:  period.StartYear,
		StartMonth: period.StartMonth,
		EndYear:    period.EndYear,
		EndMonth:   period.EndMonth,
	}
	for _, r := range rooms {
		reqBody.RoomList = append(reqBody.RoomList, roomRef{RID: r.RID, Name: r.Name})
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("can't marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.downloadURL, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("can't create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("다운로드 요청 실패: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", e.downloadFailure(resp)
	}

	filename := filenameFromDisposition(resp.Header.Get("Content-Disposition"))
	if filename == "" {
		filename = DefaultFilename
	}

	path, err := e.saver.Save(filename, resp.Body)
	if err != nil {
		return "", err
	}
	return path, nil
}

func (e *Exporter) downloadFailure(resp *http.Response) error {
	detail := fmt.Sprintf("HTTP %d", resp.StatusCode)

	var out struct {
		Detail string `json:"detail"`
	}
	if body, err := io.ReadAll(resp.Body); err == nil {
		if json.Unmarshal(body, &out) == nil && out.Detail != "" {
			detail = out.Detail
		}
	}

	if resp.StatusCode == http.StatusUnauthorized ||
		resp.StatusCode == http.StatusForbidden ||
		strings.Contains(detail, "세션") {
		e.sessions.Clear()
		return fmt.Errorf("%w: %s", ErrSessionInvalid, detail)
	}

	return fmt.Errorf("예약률 다운로드 실패: %s", detail)
}

var dispositionRe = regexp.MustCompile(`filename\*=UTF-8''([^;]+)`)

// filenameFromDisposition extracts the RFC 5987 encoded filename from a
// Content-Disposition header. Empty when absent or undecodable.
func filenameFromDisposition(header string) string {
	m := dispositionRe.FindStringSubmatch(header)
	if m == nil {
		return ""
	}
	name, err := url.PathUnescape(strings.TrimSpace(m[1]))
	if err != nil {
		return ""
	}
	return name
}
