package schedule

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Segment is the raw text of one train's block on the schedule page.
// The Has* flags tell an absent element apart from an empty one.
type Segment struct {
	Time, Number, Name, Route             string
	HasTime, HasNumber, HasName, HasRoute bool

	// Err is set when extracting this segment failed unexpectedly
	Err error
}

// Complete reports whether the segment carries the fields an entry needs
func (s Segment) Complete() bool {
	return s.Err == nil && s.HasTime && s.HasRoute
}

// Page is everything an extractor found in one schedule document
type Page struct {
	Segments []Segment

	// Notice is the text of the site's "no trains" message, if shown
	Notice string
}

// SegmentExtractor isolates the site's markup from the fetch and aggregation logic
type SegmentExtractor interface {
	Extract(r io.Reader, dir Direction) (Page, error)
}

// Selectors names the CSS selectors of the schedule markup
type Selectors struct {
	Segment        string
	ArrivalTime    string
	DepartureTime  string
	Number         string
	NumberFallback string
	Name           string
	Route          string
	EmptyNotice    string
}

// YandexSelectors matches rasp.yandex.ru station pages
var YandexSelectors = Selectors{
	Segment:        "article.SearchSegment",
	ArrivalTime:    ".SearchSegment__arrival .SegmentTime__time",
	DepartureTime:  ".SearchSegment__departure .SegmentTime__time",
	Number:         ".TransportIcon__number",
	NumberFallback: ".SearchSegment__transport .TransportIcon",
	Name:           ".SearchSegment__headerTitle",
	Route:          ".SearchSegment__headerSubtitle",
	EmptyNotice:    ".ScheduleEmpty",
}

// SelectorExtractor extracts segments with goquery CSS selectors
type SelectorExtractor struct {
	Selectors Selectors
}

// NewYandexExtractor returns an extractor for rasp.yandex.ru station pages
func NewYandexExtractor() *SelectorExtractor {
	return &SelectorExtractor{Selectors: YandexSelectors}
}

func (e *SelectorExtractor) Extract(r io.Reader, dir Direction) (Page, error) {
	var page Page

	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return page, fmt.Errorf("parsing schedule document: %w", err)
	}

	timeSelector, err := e.timeSelector(dir)
	if err != nil {
		return page, err
	}

	segments := doc.Find(e.Selectors.Segment)
	if segments.Length() == 0 {
		if notice := doc.Find(e.Selectors.EmptyNotice).First(); notice.Length() > 0 {
			page.Notice = strings.TrimSpace(notice.Text())
		}
		return page, nil
	}

	page.Segments = make([]Segment, 0, segments.Length())
	segments.Each(func(_ int, s *goquery.Selection) {
		page.Segments = append(page.Segments, e.segment(s, timeSelector))
	})
	return page, nil
}

func (e *SelectorExtractor) timeSelector(dir Direction) (string, error) {
	switch dir {
	case Arrival:
		return e.Selectors.ArrivalTime, nil
	case Departure:
		return e.Selectors.DepartureTime, nil
	default:
		return "", fmt.Errorf("unknown direction: %q", string(dir))
	}
}

func (e *SelectorExtractor) segment(s *goquery.Selection, timeSelector string) (seg Segment) {
	defer func() {
		if r := recover(); r != nil {
			seg = Segment{Err: fmt.Errorf("extracting segment: %v", r)}
		}
	}()

	seg.Time, seg.HasTime = firstText(s, timeSelector)
	seg.Number, seg.HasNumber = firstText(s, e.Selectors.Number)
	if !seg.HasNumber {
		seg.Number, seg.HasNumber = firstText(s, e.Selectors.NumberFallback)
	}
	seg.Name, seg.HasName = firstText(s, e.Selectors.Name)
	seg.Route, seg.HasRoute = firstText(s, e.Selectors.Route)
	return seg
}

func firstText(s *goquery.Selection, selector string) (string, bool) {
	found := s.Find(selector).First()
	if found.Length() == 0 {
		return "", false
	}
	return strings.TrimSpace(found.Text()), true
}
