package app

import (
	"time"

	"license-audit/internal/adapters"
	"license-audit/internal/ports"
)

type Service struct {
	Locator      ports.ManifestLocatorPort
	PolicySource ports.PolicySourcePort
	ReportReader ports.ReportReaderPort
	Clock        func() time.Time
}

func NewService() Service {
	return Service{
		Locator:      adapters.NewManifestLocatorAdapter(),
		PolicySource: adapters.NewPolicyFileAdapter(),
		ReportReader: adapters.NewReportReaderAdapter(),
		Clock:        time.Now,
	}
}
