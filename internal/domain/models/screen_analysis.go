package models

import (
	"bytes"
	"encoding/json"
)

type PageType string

const (
	PageTypeSearchResults PageType = "search_results"
	PageTypeArticle       PageType = "article"
	PageTypeForm          PageType = "form"
	PageTypeDashboard     PageType = "dashboard"
	PageTypeHomepage      PageType = "homepage"
	PageTypeOther         PageType = "other"
)

type UIElementType string

const (
	UIElementButton UIElementType = "button"
	UIElementLink   UIElementType = "link"
	UIElementInput  UIElementType = "input"
	UIElementText   UIElementType = "text"
	UIElementImage  UIElementType = "image"
	UIElementNav    UIElementType = "nav"
	UIElementMenu   UIElementType = "menu"
)

type UILocation string

const (
	UILocationTop    UILocation = "top"
	UILocationCenter UILocation = "center"
	UILocationBottom UILocation = "bottom"
	UILocationLeft   UILocation = "left"
	UILocationRight  UILocation = "right"
)

type UIElement struct {
	Type     UIElementType `json:"type"`
	Label    string        `json:"label"`
	Location UILocation    `json:"location"`
}

// PageAnalysis is the typed view of the schema the vision prompt asks for.
type PageAnalysis struct {
	PageType          PageType    `json:"page_type"`
	PageTitle         string      `json:"page_title"`
	PageSummary       string      `json:"page_summary"`
	CurrentURLVisible *string     `json:"current_url_visible"`
	MainContent       string      `json:"main_content"`
	UIElements        []UIElement `json:"ui_elements"`
	SuggestedActions  []string    `json:"suggested_actions"`
}

type AnalysisKind string

const (
	AnalysisParsed      AnalysisKind = "parsed"
	AnalysisRawFallback AnalysisKind = "raw_fallback"
	AnalysisNoArtifact  AnalysisKind = "no_artifact"
)

const (
	NoScreenshotMessage = "No screenshot found. Please attach a screenshot of your browser " +
		"or screen in the chat before asking me to analyze it."
	RawResponseNote = "Raw vision response (could not parse as JSON)"
)

// ScreenAnalysis is the result of one analyzer invocation. Every kind
// serializes to a JSON object; Record holds that object.
type ScreenAnalysis struct {
	Kind     AnalysisKind
	Artifact string
	Record   json.RawMessage
}

type noArtifactRecord struct {
	Error            string      `json:"error"`
	PageSummary      string      `json:"page_summary"`
	UIElements       []UIElement `json:"ui_elements"`
	SuggestedActions []string    `json:"suggested_actions"`
}

type rawFallbackRecord struct {
	PageSummary      string      `json:"page_summary"`
	UIElements       []UIElement `json:"ui_elements"`
	SuggestedActions []string    `json:"suggested_actions"`
	Note             string      `json:"note"`
}

// NewParsedAnalysis keeps the model's object as-is. The caller must have
// checked that record is a single JSON object.
func NewParsedAnalysis(artifact string, record []byte) *ScreenAnalysis {
	var buf bytes.Buffer
	if err := json.Compact(&buf, record); err != nil {
		buf.Reset()
		buf.Write(record)
	}
	return &ScreenAnalysis{
		Kind:     AnalysisParsed,
		Artifact: artifact,
		Record:   buf.Bytes(),
	}
}

func NewRawFallbackAnalysis(artifact string, raw string) *ScreenAnalysis {
	record, _ := json.Marshal(rawFallbackRecord{
		PageSummary:      raw,
		UIElements:       []UIElement{},
		SuggestedActions: []string{},
		Note:             RawResponseNote,
	})
	return &ScreenAnalysis{
		Kind:     AnalysisRawFallback,
		Artifact: artifact,
		Record:   record,
	}
}

func NewNoArtifactAnalysis() *ScreenAnalysis {
	record, _ := json.Marshal(noArtifactRecord{
		Error:            NoScreenshotMessage,
		PageSummary:      "",
		UIElements:       []UIElement{},
		SuggestedActions: []string{},
	})
	return &ScreenAnalysis{
		Kind:   AnalysisNoArtifact,
		Record: record,
	}
}

func (a *ScreenAnalysis) MarshalJSON() ([]byte, error) {
	if len(a.Record) == 0 {
		return []byte(`{}`), nil
	}
	return a.Record, nil
}

// Fields decodes the record into a generic map. Numbers stay json.Number so
// nothing is lost to float conversion.
func (a *ScreenAnalysis) Fields() (map[string]any, error) {
	fields := map[string]any{}
	dec := json.NewDecoder(bytes.NewReader(a.Record))
	dec.UseNumber()
	if err := dec.Decode(&fields); err != nil {
		return nil, err
	}
	return fields, nil
}

// Typed decodes the record into PageAnalysis. Fields the model left out stay
// at their zero value.
func (a *ScreenAnalysis) Typed() (*PageAnalysis, error) {
	var page PageAnalysis
	if err := json.Unmarshal(a.Record, &page); err != nil {
		return nil, err
	}
	return &page, nil
}
