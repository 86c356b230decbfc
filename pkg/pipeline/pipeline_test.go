package pipeline

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fullPipeline = `
name: docs-ci
prerequisites:
  - tool: docker
    min: "24.0"
  - tool: docker-compose
    probe: [version, --short]
setup:
  - name: build
    commands:
      - docker-compose build markdownlint linkcheck
services:
  up:
    - docker-compose up -d azurite
  down:
    - docker-compose stop azurite
  ready:
    - localhost:10000
checks:
  - name: lint
    run: docker-compose run --rm markdownlint
  - name: link-check
    run: docker-compose run --rm linkcheck
  - name: coverage
    coverage:
      file: coverage.json
      path: totals.percent_covered
      min: 80
`

func TestParse(t *testing.T) {
	p, err := Parse([]byte(fullPipeline))
	require.NoError(t, err)

	assert.Equal(t, "docs-ci", p.Name)
	require.Len(t, p.Prerequisites, 2)
	assert.Equal(t, "docker", p.Prerequisites[0].Tool)
	assert.Equal(t, "24.0", p.Prerequisites[0].Min)
	assert.Equal(t, []string{"version", "--short"}, p.Prerequisites[1].Probe)

	require.Len(t, p.Setup, 1)
	assert.Equal(t, "build", p.Setup[0].Name)

	require.NotNil(t, p.Services)
	assert.Equal(t, []string{"docker-compose up -d azurite"}, p.Services.Up)
	assert.Equal(t, []string{"localhost:10000"}, p.Services.Ready)

	require.Len(t, p.Checks, 3)
	assert.Equal(t, "lint", p.Checks[0].Name)
	require.NotNil(t, p.Checks[2].Coverage)
	assert.Equal(t, 80.0, p.Checks[2].Coverage.Min)
}

func TestParseInvalidYAML(t *testing.T) {
	_, err := Parse([]byte("checks: [unclosed"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name:    "no checks",
			yaml:    "name: empty",
			wantErr: "declares no checks",
		},
		{
			name: "empty check name",
			yaml: `
checks:
  - run: "true"
`,
			wantErr: "empty name",
		},
		{
			name: "duplicate check name",
			yaml: `
checks:
  - name: lint
    run: make lint
  - name: lint
    run: make lint-again
`,
			wantErr: `duplicate check name "lint"`,
		},
		{
			name: "both run and coverage",
			yaml: `
checks:
  - name: lint
    run: make lint
    coverage:
      file: cov.json
      path: total
      min: 1
`,
			wantErr: "exactly one of run and coverage",
		},
		{
			name: "neither run nor coverage",
			yaml: `
checks:
  - name: lint
`,
			wantErr: "exactly one of run and coverage",
		},
		{
			name: "coverage missing path",
			yaml: `
checks:
  - name: cov
    coverage:
      file: cov.json
      min: 80
`,
			wantErr: "coverage needs both file and path",
		},
		{
			name: "stage without commands",
			yaml: `
setup:
  - name: build
checks:
  - name: lint
    run: make lint
`,
			wantErr: "has no commands",
		},
		{
			name: "prerequisite without tool",
			yaml: `
prerequisites:
  - min: "1.0"
checks:
  - name: lint
    run: make lint
`,
			wantErr: "empty tool name",
		},
		{
			name: "bad ready address",
			yaml: `
services:
  up: [docker-compose up -d azurite]
  ready: [no-port-here]
checks:
  - name: lint
    run: make lint
`,
			wantErr: "invalid ready address",
		},
		{
			name: "bad min version",
			yaml: `
prerequisites:
  - tool: docker
    min: not-a-version
checks:
  - name: lint
    run: make lint
`,
			wantErr: "invalid min version",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.True(t, strings.Contains(err.Error(), tt.wantErr),
				"error %q should contain %q", err.Error(), tt.wantErr)
		})
	}
}

func TestFindCheck(t *testing.T) {
	p, err := Parse([]byte(fullPipeline))
	require.NoError(t, err)

	c, ok := p.FindCheck("link-check")
	require.True(t, ok)
	assert.Equal(t, "docker-compose run --rm linkcheck", c.Run)

	_, ok = p.FindCheck("no-such-check")
	assert.False(t, ok)
}

func TestDefaultIsValid(t *testing.T) {
	p := Default()
	require.NoError(t, p.Validate())

	// The built-in pipeline must keep its fixed declaration order.
	names := make([]string, len(p.Checks))
	for i, c := range p.Checks {
		names[i] = c.Name
	}
	assert.Equal(t, []string{"markdown-lint", "link-check", "compose-config", "security-scan"}, names)
}
