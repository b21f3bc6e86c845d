package types

// PolicyFile is the on-disk risk policy. Category and decision values are
// validated when the policy is compiled.
type PolicyFile struct {
	APIVersion     string   `yaml:"api_version"`
	Blocked        []string `yaml:"blocked"`
	Flagged        []string `yaml:"flagged"`
	TreatUnknownAs string   `yaml:"treat_unknown_as,omitempty"`
	DualLicenses   string   `yaml:"dual_licenses,omitempty"`
}
