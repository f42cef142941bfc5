package proxy

import (
	"net/http"
	"reflect"
	"strings"
	"testing"

	"github.com/kbukum/scribeproxy/errors"
	"github.com/kbukum/scribeproxy/transcription"
)

func TestResolveFile(t *testing.T) {
	tests := []struct {
		name, fileName, contentType string
		wantName, wantType          string
	}{
		{"extension kept", "clip.ogg", "audio/ogg", "clip.ogg", "audio/ogg"},
		{"extension kept with empty type", "clip.mp3", "", "clip.mp3", ""},
		{"mpeg", "clip", "audio/mpeg", "audio.mp3", "audio/mpeg"},
		{"mp3 alias", "clip", "audio/mp3", "audio.mp3", "audio/mpeg"},
		{"wav", "clip", "audio/wav", "audio.wav", "audio/wav"},
		{"wave alias", "blob", "audio/wave", "audio.wav", "audio/wav"},
		{"mp4", "clip", "audio/mp4", "audio.m4a", "audio/mp4"},
		{"m4a alias", "clip", "audio/m4a", "audio.m4a", "audio/mp4"},
		{"unknown type retained", "clip", "application/octet-stream", "audio.webm", "application/octet-stream"},
		{"missing type", "clip", "", "audio.webm", "audio/webm"},
		{"missing name", "", "audio/wav", "audio.wav", "audio/wav"},
		{"missing both", "", "", "audio.webm", "audio/webm"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			gotName, gotType := ResolveFile(tc.fileName, tc.contentType)
			if gotName != tc.wantName || gotType != tc.wantType {
				t.Errorf("ResolveFile(%q, %q) = (%q, %q), want (%q, %q)",
					tc.fileName, tc.contentType, gotName, gotType, tc.wantName, tc.wantType)
			}
		})
	}
}

func TestParseEntityDetection(t *testing.T) {
	log := testLogger()
	tests := []struct {
		raw  string
		want []any
	}{
		{"", nil},
		{`["person","location"]`, []any{"person", "location"}},
		{`[]`, nil},
		{`{"a":1}`, nil},
		{`"person"`, nil},
		{`not json`, nil},
	}
	for _, tc := range tests {
		if got := ParseEntityDetection(tc.raw, log); !reflect.DeepEqual(got, tc.want) {
			t.Errorf("ParseEntityDetection(%q) = %#v, want %#v", tc.raw, got, tc.want)
		}
	}
}

func TestParseKeyterms_FiltersAndTrims(t *testing.T) {
	raw := `["  foo  ", "", "` + strings.Repeat("x", 51) + `", "bar"]`
	got, err := ParseKeyterms(raw, testLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(got, []string{"foo", "bar"}) {
		t.Errorf("keyterms = %#v, want [foo bar]", got)
	}
}

func TestParseKeyterms_TooMany(t *testing.T) {
	terms := make([]string, 101)
	for i := range terms {
		terms[i] = `""`
	}
	_, err := ParseKeyterms("["+strings.Join(terms, ",")+"]", testLogger())
	appErr, ok := errors.AsAppError(err)
	if !ok {
		t.Fatalf("expected AppError, got %v", err)
	}
	if appErr.HTTPStatus != http.StatusBadRequest || appErr.Message != "Maximum 100 keyterms allowed" {
		t.Errorf("unexpected error %+v", appErr)
	}
}

func TestParseKeyterms_ExactlyHundredAllowed(t *testing.T) {
	terms := make([]string, 100)
	for i := range terms {
		terms[i] = `"t"`
	}
	got, err := ParseKeyterms("["+strings.Join(terms, ",")+"]", testLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 100 {
		t.Errorf("len = %d, want 100", len(got))
	}
}

func TestParseKeyterms_Ignored(t *testing.T) {
	for _, raw := range []string{"", "not json", `{"a":"b"}`, `"foo"`, `[]`, `["", "   "]`} {
		got, err := ParseKeyterms(raw, testLogger())
		if err != nil || got != nil {
			t.Errorf("ParseKeyterms(%q) = %#v, %v; want nil, nil", raw, got, err)
		}
	}
}

func TestParseKeyterms_Coercion(t *testing.T) {
	raw := `[42, 1.5, true, null, {"k":"v"}, ["a", null, 2], 1e21, 0.0000001, "\ufeffbom\ufeff "]`
	got, err := ParseKeyterms(raw, testLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"42", "1.5", "true", "null", "[object Object]", "a,,2", "1e+21", "1e-7", "bom"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("keyterms = %#v, want %#v", got, want)
	}
}

func TestParseKeyterms_LengthCountsUTF16Units(t *testing.T) {
	// 25 astral characters are 50 UTF-16 units; 26 are 52.
	ok := strings.Repeat("😀", 25)
	tooLong := strings.Repeat("😀", 26)
	got, err := ParseKeyterms(`["`+ok+`","`+tooLong+`","`+strings.Repeat("é", 50)+`"]`, testLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(got, []string{ok, strings.Repeat("é", 50)}) {
		t.Errorf("keyterms = %#v", got)
	}
}

func TestParseFlag(t *testing.T) {
	tests := []struct {
		in   any
		want bool
	}{
		{true, true},
		{"true", true},
		{false, false},
		{"false", false},
		{"TRUE", false},
		{"1", false},
		{1, false},
		{nil, false},
		{"", false},
	}
	for _, tc := range tests {
		if got := ParseFlag(tc.in); got != tc.want {
			t.Errorf("ParseFlag(%#v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestTranslate_MissingUpload(t *testing.T) {
	_, err := Translate(nil, Form{}, testLogger())
	appErr, ok := errors.AsAppError(err)
	if !ok {
		t.Fatalf("expected AppError, got %v", err)
	}
	if appErr.HTTPStatus != http.StatusBadRequest {
		t.Errorf("status = %d", appErr.HTTPStatus)
	}
	resp := appErr.ToResponse()
	if resp.Error != "No audio file provided" || resp.Details != nil {
		t.Errorf("unexpected response %+v", resp)
	}
}

func TestTranslate_NoOptions(t *testing.T) {
	req, err := Translate(&transcription.Upload{Data: []byte("a"), FileName: "clip", ContentType: "audio/wav"}, Form{}, testLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.Upload.FileName != "audio.wav" || req.Upload.ContentType != "audio/wav" {
		t.Errorf("upload = %+v", req.Upload)
	}
	if !reflect.DeepEqual(req.Options, transcription.Options{}) {
		t.Errorf("options = %+v, want zero", req.Options)
	}
}

func TestTranslate_AllOptions(t *testing.T) {
	form := Form{
		EntityDetection: `["person"]`,
		Keyterms:        `["alpha"]`,
		LanguageCode:    "en",
		Diarize:         "true",
		TagAudioEvents:  true,
	}
	req, err := Translate(&transcription.Upload{FileName: "a.mp3", ContentType: "audio/mpeg"}, form, testLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := transcription.Options{
		EntityDetection: []any{"person"},
		Keyterms:        []string{"alpha"},
		LanguageCode:    "en",
		Diarize:         true,
		TagAudioEvents:  true,
	}
	if !reflect.DeepEqual(req.Options, want) {
		t.Errorf("options = %+v, want %+v", req.Options, want)
	}
}

func TestTranslate_DiarizeFalseOmitted(t *testing.T) {
	req, err := Translate(&transcription.Upload{FileName: "a.mp3"}, Form{Diarize: "false", TagAudioEvents: false}, testLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.Options.Diarize || req.Options.TagAudioEvents {
		t.Errorf("flags should be off: %+v", req.Options)
	}
}
