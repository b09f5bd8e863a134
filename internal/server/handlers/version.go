package handlers

import (
	"net/http"
	"runtime"

	"github.com/fulmenhq/gofulmen/crucible"

	"github.com/pitchslap/pitchslap/internal/config"
	"github.com/pitchslap/pitchslap/internal/gamify"
	"github.com/pitchslap/pitchslap/internal/investor"
	"github.com/pitchslap/pitchslap/internal/pitch"
	"github.com/pitchslap/pitchslap/internal/speech"
)

// BuildInfo is set from main through SetVersionInfo.
var (
	AppVersion   = "dev"
	AppCommit    = "unknown"
	AppBuildDate = "unknown"
)

// SetVersionInfo sets the version information for the handler
func SetVersionInfo(version, commit, buildDate string) {
	AppVersion = version
	AppCommit = commit
	AppBuildDate = buildDate
}

// VersionResponse is the body of GET /version and `version -o json`.
type VersionResponse struct {
	App          AppInfo     `json:"app"`
	Engine       EngineInfo  `json:"engine"`
	Dependencies DepInfo     `json:"dependencies"`
	Runtime      RuntimeInfo `json:"runtime"`
}

// EngineInfo lists what this build can generate, so clients can build
// their mode and voice pickers without hardcoding them.
type EngineInfo struct {
	Modes         []pitch.Mode `json:"modes"`
	Voices        []string     `json:"voices"`
	PlayerRanks   int          `json:"player_ranks"`
	InvestorRanks int          `json:"investor_ranks"`
}

// AppInfo contains application version details
type AppInfo struct {
	Name      string `json:"name"`
	Version   string `json:"version"`
	Commit    string `json:"git_commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version,omitempty"`
}

// DepInfo contains dependency version information
type DepInfo struct {
	Gofulmen string `json:"gofulmen"`
	Crucible string `json:"crucible"`
}

// RuntimeInfo contains runtime environment information
type RuntimeInfo struct {
	Platform      string `json:"platform"`
	NumCPU        int    `json:"num_cpu"`
	NumGoroutines int    `json:"num_goroutines"`
}

// CurrentVersion assembles the version report shared by /version and the CLI.
func CurrentVersion() VersionResponse {
	deps := crucible.GetVersion()

	voices := make([]string, 0, len(speech.Personalities()))
	for _, p := range speech.Personalities() {
		voices = append(voices, p.ID)
	}

	return VersionResponse{
		App: AppInfo{
			Name:      config.AppName,
			Version:   AppVersion,
			Commit:    AppCommit,
			BuildDate: AppBuildDate,
			GoVersion: runtime.Version(),
		},
		Engine: EngineInfo{
			Modes:         pitch.Modes(),
			Voices:        voices,
			PlayerRanks:   len(gamify.Ranks()),
			InvestorRanks: len(investor.Ranks()),
		},
		Dependencies: DepInfo{
			Gofulmen: deps.Gofulmen,
			Crucible: deps.Crucible,
		},
		Runtime: RuntimeInfo{
			Platform:      runtime.GOOS + "/" + runtime.GOARCH,
			NumCPU:        runtime.NumCPU(),
			NumGoroutines: runtime.NumGoroutine(),
		},
	}
}

// VersionHandler handles GET /version.
func VersionHandler(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, CurrentVersion())
}
