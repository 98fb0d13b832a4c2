package devops

// Context carries user and environment information for DevOps operations.
// It is constructed once at startup and passed explicitly into service
// wrappers and agent runs; there is no global instance.
type Context struct {
	UserID      string            `json:"user_id,omitempty"`
	AWSRegion   string            `json:"aws_region,omitempty"`
	GitHubOrg   string            `json:"github_org,omitempty"`
	Environment string            `json:"environment,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// Metadatum returns the metadata value for key, or def when absent.
func (c Context) Metadatum(key, def string) string {
	if v, ok := c.Metadata[key]; ok {
		return v
	}
	return def
}

// WithAWSRegion returns a copy of the context with the AWS region replaced.
func (c Context) WithAWSRegion(region string) Context {
	c.Metadata = cloneMetadata(c.Metadata)
	c.AWSRegion = region
	return c
}

// WithGitHubOrg returns a copy of the context with the GitHub org replaced.
func (c Context) WithGitHubOrg(org string) Context {
	c.Metadata = cloneMetadata(c.Metadata)
	c.GitHubOrg = org
	return c
}

// WithEnvironment returns a copy of the context with the environment replaced.
func (c Context) WithEnvironment(env string) Context {
	c.Metadata = cloneMetadata(c.Metadata)
	c.Environment = env
	return c
}

func cloneMetadata(m map[string]string) map[string]string {
	if m == nil {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
