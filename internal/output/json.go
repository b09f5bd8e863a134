package output

import (
	"encoding/json"

	"github.com/pitchslap/pitchslap/internal/domains"
	"github.com/pitchslap/pitchslap/internal/gamify"
	"github.com/pitchslap/pitchslap/internal/pitch"
)

// JSONFormatter renders results as JSON.
type JSONFormatter struct {
	Indent bool
}

func (f *JSONFormatter) FormatResponse(resp pitch.Response) (string, error) {
	return f.marshal(resp)
}

func (f *JSONFormatter) FormatDomains(results []domains.Result) (string, error) {
	if results == nil {
		results = []domains.Result{}
	}
	return f.marshal(results)
}

func (f *JSONFormatter) FormatLeaderboard(profiles []gamify.Profile) (string, error) {
	if profiles == nil {
		profiles = []gamify.Profile{}
	}
	return f.marshal(profiles)
}

func (f *JSONFormatter) marshal(v any) (string, error) {
	var (
		data []byte
		err  error
	)

	if f.Indent {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return "", err
	}

	return string(data), nil
}
