// Package searchclient issues room searches against the external listing
// API. Failures are recovered into an empty result, never returned as
// errors: the search flow degrades to an empty list instead of an error
// page.
package searchclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/sangwon514/room-search-map/internal/domain"
)

// TransportFailure is the error code reported for network errors,
// timeouts, and malformed response bodies.
const TransportFailure = -1

// Hard-coded request defaults; explicit caller values take precedence.
const (
	defaultSort      = "popular"
	defaultPage      = 1
	defaultItemCount = 1000
	defaultMapLevel  = 7
	defaultMinFee    = 0
	defaultMaxFee    = 1_000_000
)

// Params is the request-parameter projection of the filter state. Zero
// string and nil slice/pointer members mean "not supplied" and fall back
// to the defaults; supplied values, including explicit false and 0, win.
type Params struct {
	Keyword       string
	ThemeType     string
	RoomCounts    []string
	PropertyTypes []string

	Animal           *bool
	Subway           *bool
	LongtermDiscount *bool
	EarlyDiscount    *bool
	ParkingPlace     *bool

	MinUsingFee *int
	MaxUsingFee *int

	Sort      string
	NowPage   *int
	ItemCount *int

	ByLocation *bool
	Viewport   *domain.Viewport
}

// ParamsFromFilter projects a full filter snapshot into request
// parameters, carrying every field explicitly.
func ParamsFromFilter(f domain.Filter) Params {
	var vp *domain.Viewport
	if !f.Viewport.IsZero() {
		v := f.Viewport
		vp = &v
	}
	return Params{
		Keyword:          f.Keyword,
		ThemeType:        f.ThemeType,
		RoomCounts:       f.RoomCounts,
		PropertyTypes:    f.PropertyTypes,
		Animal:           Bool(f.Animal),
		Subway:           Bool(f.Subway),
		LongtermDiscount: Bool(f.LongtermDiscount),
		EarlyDiscount:    Bool(f.EarlyDiscount),
		ParkingPlace:     Bool(f.ParkingPlace),
		MinUsingFee:      Int(f.MinUsingFee),
		MaxUsingFee:      Int(f.MaxUsingFee),
		Sort:             f.Sort,
		NowPage:          Int(f.NowPage),
		ItemCount:        Int(f.ItemCount),
		ByLocation:       Bool(f.ByLocation),
		Viewport:         vp,
	}
}

// Bool supplies an explicit boolean parameter.
func Bool(v bool) *bool { return &v }

// Int supplies an explicit integer parameter.
func Int(v int) *int { return &v }

// Result is what a search resolves to. ErrorCode 0 means success; any
// other value carries an empty room list.
type Result struct {
	ErrorCode  int
	CDNBaseURL string
	Rooms      []domain.Room
	Seq        uint64
}

type responseBody struct {
	ErrorCode  int           `json:"error_code"`
	CDNBaseURL string        `json:"aws_cloudfront_url"`
	List       []domain.Room `json:"list"`
}

// Client posts searches to the listing endpoint. Each search carries a
// monotonic sequence number so consumers can drop responses superseded by
// a later request.
type Client struct {
	httpClient *http.Client
	searchURL  string
	seq        atomic.Uint64
}

// New creates a client. searchURL is the full search endpoint URL.
func New(httpClient *http.Client, searchURL string) *Client {
	return &Client{
		httpClient: httpClient,
		searchURL:  searchURL,
	}
}

// Latest returns the sequence number of the most recently issued search.
// A result is current iff result.Seq == Latest().
func (c *Client) Latest() uint64 {
	return c.seq.Load()
}

// Search merges the supplied parameters over the hard-coded defaults and
// issues one POST. The returned result is always usable: server-reported
// failure codes and transport failures both yield an empty room list
// tagged with the failing code.
func (c *Client) Search(ctx context.Context, p Params) Result {
	seq := c.seq.Add(1)

	form := encodeForm(p)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.searchURL, strings.NewReader(form))
	if err != nil {
		return failure(seq, fmt.Errorf("can't create request: %w", err))
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("X-Requested-With", "XMLHttpRequest")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return failure(seq, fmt.Errorf("can't do request: %w", err))
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return failure(seq, fmt.Errorf("can't read response body: %w", err))
	}
	if resp.StatusCode != http.StatusOK {
		return failure(seq, fmt.Errorf("server sent http error: %d, %s", resp.StatusCode, respBody))
	}

	var body responseBody
	if err := json.Unmarshal(respBody, &body); err != nil {
		return failure(seq, fmt.Errorf("can't parse response body: %w", err))
	}

	if body.ErrorCode != 0 {
		slog.Warn("search rejected by server", "error_code", body.ErrorCode)
		return Result{ErrorCode: body.ErrorCode, Rooms: []domain.Room{}, Seq: seq}
	}

	rooms := body.List
	if rooms == nil {
		rooms = []domain.Room{}
	}
	return Result{CDNBaseURL: body.CDNBaseURL, Rooms: rooms, Seq: seq}
}

func failure(seq uint64, err error) Result {
	slog.Warn("search failed", "err", err)
	return Result{ErrorCode: TransportFailure, Rooms: []domain.Room{}, Seq: seq}
}

// encodeForm merges defaults with supplied values and encodes the result
// as a form body: arrays comma-joined, booleans as "true"/"false",
// numbers as decimal strings.
func encodeForm(p Params) string {
	form := url.Values{}

	setStr := func(key, v, def string) {
		if v == "" {
			v = def
		}
		if v != "" {
			form.Set(key, v)
		}
	}
	setBool := func(key string, v *bool, def bool) {
		val := def
		if v != nil {
			val = *v
		}
		form.Set(key, strconv.FormatBool(val))
	}
	setInt := func(key string, v *int, def int) {
		val := def
		if v != nil {
			val = *v
		}
		form.Set(key, strconv.Itoa(val))
	}

	setStr("sort", p.Sort, defaultSort)
	setInt("now_page", p.NowPage, defaultPage)
	setInt("itemcount", p.ItemCount, defaultItemCount)
	setBool("by_location", p.ByLocation, true)
	setInt("min_using_fee", p.MinUsingFee, defaultMinFee)
	setInt("max_using_fee", p.MaxUsingFee, defaultMaxFee)

	setStr("keyword", p.Keyword, "")
	setStr("theme_type", p.ThemeType, "")
	if len(p.RoomCounts) > 0 {
		form.Set("room_cnt", strings.Join(p.RoomCounts, ","))
	}
	if len(p.PropertyTypes) > 0 {
		form.Set("property_type", strings.Join(p.PropertyTypes, ","))
	}
	if p.Animal != nil {
		form.Set("animal", strconv.FormatBool(*p.Animal))
	}
	if p.Subway != nil {
		form.Set("subway", strconv.FormatBool(*p.Subway))
	}
	if p.LongtermDiscount != nil {
		form.Set("longterm_discount", strconv.FormatBool(*p.LongtermDiscount))
	}
	if p.EarlyDiscount != nil {
		form.Set("early_discount", strconv.FormatBool(*p.EarlyDiscount))
	}
	if p.ParkingPlace != nil {
		form.Set("parking_place", strconv.FormatBool(*p.ParkingPlace))
	}

	if p.Viewport != nil {
		form.Set("north_east_lat", formatCoord(p.Viewport.NorthEastLat))
		form.Set("north_east_lng", formatCoord(p.Viewport.NorthEastLng))
		form.Set("south_west_lat", formatCoord(p.Viewport.SouthWestLat))
		form.Set("south_west_lng", formatCoord(p.Viewport.SouthWestLng))
		form.Set("map_level", strconv.Itoa(p.Viewport.Level))
	} else {
		form.Set("map_level", strconv.Itoa(defaultMapLevel))
	}

	return form.Encode()
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
