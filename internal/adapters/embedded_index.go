package adapters

import (
	"context"

	"license-audit/internal/ports"
)

// EmbeddedIndexSourceAdapter answers lookups from a compiled-in table of
// well-known PyPI packages. It sits last in the default chain as a
// fallback when no installed metadata or override is available. The table
// records declared license identifiers, not legal conclusions.
type EmbeddedIndexSourceAdapter struct{}

func NewEmbeddedIndexSourceAdapter() EmbeddedIndexSourceAdapter {
	return EmbeddedIndexSourceAdapter{}
}

func (a EmbeddedIndexSourceAdapter) Name() string {
	return "embedded-index"
}

func (a EmbeddedIndexSourceAdapter) Lookup(_ context.Context, name string, _ string) (string, bool, error) {
	license, ok := embeddedLicenses[name]
	return license, ok, nil
}

// embeddedLicenses is keyed by PEP 503 normalized name.
var embeddedLicenses = map[string]string{
	"requests":           "Apache-2.0",
	"urllib3":            "MIT",
	"certifi":            "MPL-2.0",
	"idna":               "BSD-3-Clause",
	"charset-normalizer": "MIT",
	"chardet":            "LGPL-2.1",
	"numpy":              "BSD-3-Clause",
	"pandas":             "BSD-3-Clause",
	"scipy":              "BSD-3-Clause",
	"matplotlib":         "Python-2.0",
	"flask":              "BSD-3-Clause",
	"django":             "BSD-3-Clause",
	"jinja2":             "BSD-3-Clause",
	"werkzeug":           "BSD-3-Clause",
	"click":              "BSD-3-Clause",
	"itsdangerous":       "BSD-3-Clause",
	"markupsafe":         "BSD-3-Clause",
	"sqlalchemy":         "MIT",
	"pyyaml":             "MIT",
	"toml":               "MIT",
	"tomli":              "MIT",
	"packaging":          "Apache-2.0 OR BSD-2-Clause",
	"attrs":              "MIT",
	"six":                "MIT",
	"python-dateutil":    "Apache-2.0 OR BSD-3-Clause",
	"pytz":               "MIT",
	"cryptography":       "Apache-2.0 OR BSD-3-Clause",
	"pyopenssl":          "Apache-2.0",
	"paramiko":           "LGPL-2.1",
	"pillow":             "HPND",
	"boto3":              "Apache-2.0",
	"botocore":           "Apache-2.0",
	"pydantic":           "MIT",
	"fastapi":            "MIT",
	"uvicorn":            "BSD-3-Clause",
	"httpx":              "BSD-3-Clause",
	"aiohttp":            "Apache-2.0",
	"rich":               "MIT",
	"tqdm":               "MPL-2.0 OR MIT",
	"psycopg2":           "LGPL-3.0",
	"pymysql":            "MIT",
	"redis":              "MIT",
	"celery":             "BSD-3-Clause",
	"gunicorn":           "MIT",
	"lxml":               "BSD-3-Clause",
	"beautifulsoup4":     "MIT",
	"pyqt5":              "GPL-3.0",
	"pyside6":            "LGPL-3.0",
	"readline":           "GPL-3.0",
	"docutils":           "Public Domain; BSD-2-Clause; GPL-3.0",
	"pexpect":            "ISC",
	"ptyprocess":         "ISC",
	"setuptools":         "MIT",
	"wheel":              "MIT",
	"pip":                "MIT",
}

var _ ports.LicenseSourcePort = EmbeddedIndexSourceAdapter{}
