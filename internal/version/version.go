package version

// Version se fija en build:
//
//	go build -ldflags "-X withings-health-sync/internal/version.Version=1.2.3" ./cmd/api
var Version = "dev"
