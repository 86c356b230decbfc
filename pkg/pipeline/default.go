package pipeline

// Default returns the built-in container-first pipeline used when a
// repository has no .parity.yaml. It mirrors the usual documentation-repo
// CI: build the tool images, then lint markdown, verify links, validate the
// compose file, and scan for vulnerabilities.
func Default() *Pipeline {
	return &Pipeline{
		Name: "local-ci",
		Prerequisites: []Prerequisite{
			{Tool: "docker"},
			{Tool: "docker-compose"},
		},
		Setup: []Stage{
			{Name: "build", Commands: []string{"docker-compose build"}},
		},
		Checks: []Check{
			{Name: "markdown-lint", Run: "docker-compose run --rm markdownlint"},
			{Name: "link-check", Run: "docker-compose run --rm linkcheck"},
			{Name: "compose-config", Run: "docker-compose config -q"},
			{Name: "security-scan", Run: "docker-compose run --rm trivy"},
		},
	}
}
